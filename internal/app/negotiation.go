package app

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"wordduel/internal/domain"
)

// offerTTL is how long an unanswered challenge stays live.
const offerTTL = 5 * time.Minute

// Offer is a pending challenge from one player to another. Rematch offers
// are tracked separately from fresh challenges, so a rematch invite does
// not collide with a plain one between the same pair.
type Offer struct {
	From     domain.PlayerRef
	To       string
	Rematch  bool
	HardMode bool
	SentAt   time.Time

	// RelatedDuelID points a rematch offer back at the duel it follows.
	RelatedDuelID string
}

type offerKey struct {
	from    string
	to      string
	rematch bool
}

// Negotiator tracks challenge offers between players and turns accepted
// offers into duels. An offer is recorded even when the target is offline;
// the caller decides whether an undeliverable invite should stand.
type Negotiator struct {
	mu     sync.Mutex
	offers map[offerKey]Offer
	hub    *DuelHub
	logger *zap.SugaredLogger
}

// NewNegotiator creates a negotiator backed by hub.
func NewNegotiator(hub *DuelHub, logger *zap.SugaredLogger) *Negotiator {
	return &Negotiator{
		offers: make(map[offerKey]Offer),
		hub:    hub,
		logger: logger,
	}
}

// Invite records a challenge from one player to another, replacing any
// earlier offer of the same kind between the pair. relatedDuelID names the
// finished duel a rematch follows and may be empty.
func (n *Negotiator) Invite(from domain.PlayerRef, to string, rematch, hardMode bool, relatedDuelID string) (Offer, error) {
	if from.ID == "" || to == "" {
		return Offer{}, domain.ErrInvalidInput
	}
	if from.ID == to {
		return Offer{}, domain.ErrSelfChallenge
	}

	offer := Offer{
		From:          from,
		To:            to,
		Rematch:       rematch,
		HardMode:      hardMode,
		SentAt:        time.Now(),
		RelatedDuelID: relatedDuelID,
	}

	n.mu.Lock()
	n.offers[offerKey{from: from.ID, to: to, rematch: rematch}] = offer
	n.mu.Unlock()

	n.logger.Debugw("challenge sent", "from", from.ID, "to", to, "rematch", rematch)
	return offer, nil
}

// Cancel withdraws any pending offer from one player to another, both the
// plain and the rematch variant. It reports whether anything was pending.
func (n *Negotiator) Cancel(from, to string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	found := false
	for _, rematch := range []bool{false, true} {
		key := offerKey{from: from, to: to, rematch: rematch}
		if _, ok := n.offers[key]; ok {
			delete(n.offers, key)
			found = true
		}
	}
	if found {
		n.logger.Debugw("challenge cancelled", "from", from, "to", to)
	}
	return found
}

// Respond settles the offer from challengerID to responder. A decline just
// clears the offer; an accept creates the duel with the responder moving
// first. The settled offer is returned so the caller can relay the outcome
// to both players.
func (n *Negotiator) Respond(responder domain.PlayerRef, challengerID string, accepted, rematch bool) (Offer, *DuelSession, error) {
	key := offerKey{from: challengerID, to: responder.ID, rematch: rematch}

	n.mu.Lock()
	offer, ok := n.offers[key]
	if ok && time.Since(offer.SentAt) > offerTTL {
		delete(n.offers, key)
		ok = false
	}
	if !ok {
		n.mu.Unlock()
		return Offer{}, nil, domain.ErrNoPendingOffer
	}
	delete(n.offers, key)
	n.mu.Unlock()

	if !accepted {
		n.logger.Debugw("challenge declined", "from", challengerID, "to", responder.ID)
		return offer, nil, nil
	}

	session, err := n.hub.CreateDuel(responder, offer.From, offer.HardMode)
	if err != nil {
		return offer, nil, err
	}

	n.logger.Infow("challenge accepted",
		"duelId", session.ID(),
		"challenger", challengerID,
		"responder", responder.ID,
		"rematch", rematch,
	)
	return offer, session, nil
}

// PendingCount returns the number of live offers.
func (n *Negotiator) PendingCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.offers)
}
