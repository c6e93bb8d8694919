package app

import (
	"sync"

	"go.uber.org/zap"

	"wordduel/internal/domain"
)

// Match is the outcome of a successful pairing: the created session and the
// two tickets that were consumed.
type Match struct {
	Session *DuelSession
	First   Ticket
	Second  Ticket
}

// Ticket is one waiting player and their matchmaking connection.
type Ticket struct {
	Player domain.PlayerRef
	Conn   Connection
}

// Matchmaker pairs queued players first-come first-served. The queue holds
// at most one ticket per player; a player already waiting cannot enqueue
// again. Pairing and duel creation happen atomically under the queue lock,
// so a creation failure requeues the waiting player instead of losing them.
type Matchmaker struct {
	mu     sync.Mutex
	queue  []Ticket
	hub    *DuelHub
	logger *zap.SugaredLogger
}

// NewMatchmaker creates a matchmaker backed by hub.
func NewMatchmaker(hub *DuelHub, logger *zap.SugaredLogger) *Matchmaker {
	return &Matchmaker{
		hub:    hub,
		logger: logger,
	}
}

// Enqueue adds player to the queue. When a second player is waiting the two
// are paired immediately and the created match is returned; otherwise the
// returned match is nil and the player waits.
func (m *Matchmaker) Enqueue(player domain.PlayerRef, conn Connection) (*Match, error) {
	if player.ID == "" {
		return nil, domain.ErrInvalidInput
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.queue {
		if t.Player.ID == player.ID {
			return nil, domain.ErrAlreadyQueued
		}
	}

	entrant := Ticket{Player: player, Conn: conn}
	if len(m.queue) == 0 {
		m.queue = append(m.queue, entrant)
		m.logger.Debugw("player queued", "playerId", player.ID)
		return nil, nil
	}

	waiting := m.queue[0]
	m.queue = m.queue[1:]

	session, err := m.hub.CreateMatchedDuel(waiting.Player, entrant.Player)
	if err != nil {
		m.queue = append([]Ticket{waiting}, m.queue...)
		return nil, err
	}

	m.logger.Infow("players matched",
		"duelId", session.ID(),
		"firstPlayer", waiting.Player.ID,
		"secondPlayer", entrant.Player.ID,
	)

	return &Match{Session: session, First: waiting, Second: entrant}, nil
}

// Dequeue removes playerID from the queue, typically when their connection
// drops while waiting. It reports whether the player was queued.
func (m *Matchmaker) Dequeue(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, t := range m.queue {
		if t.Player.ID == playerID {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			m.logger.Debugw("player left queue", "playerId", playerID)
			return true
		}
	}
	return false
}

// QueueLength returns the number of waiting players.
func (m *Matchmaker) QueueLength() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
