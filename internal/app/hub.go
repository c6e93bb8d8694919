package app

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wordduel/internal/domain"
	"wordduel/internal/history"
	"wordduel/internal/wordlist"
)

const (
	// cleanupInterval is how often the hub sweeps expired and finished duels
	cleanupInterval = time.Minute

	// finishedRetention is how long a finished duel stays available for
	// reconnecting clients before the sweep removes it
	finishedRetention = 10 * time.Minute
)

// DuelHub manages all active duel sessions.
type DuelHub struct {
	sessions map[string]*DuelSession
	mu       sync.RWMutex
	words    *wordlist.List
	router   *Router
	recorder history.Recorder
	options  domain.DuelOptions
	logger   *zap.SugaredLogger
	done     chan struct{}

	finishedAt map[string]time.Time
}

// NewDuelHub creates a hub and starts its cleanup loop.
func NewDuelHub(words *wordlist.List, router *Router, recorder history.Recorder, options domain.DuelOptions, logger *zap.SugaredLogger) *DuelHub {
	hub := &DuelHub{
		sessions:   make(map[string]*DuelSession),
		words:      words,
		router:     router,
		recorder:   recorder,
		options:    options,
		logger:     logger,
		done:       make(chan struct{}),
		finishedAt: make(map[string]time.Time),
	}

	go hub.cleanupLoop()

	return hub
}

// CreateDuel creates a duel between two players with a freshly drawn
// solution and returns its session.
func (h *DuelHub) CreateDuel(first, second domain.PlayerRef, hardMode bool) (*DuelSession, error) {
	if first.ID == "" || second.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	if first.ID == second.ID {
		return nil, domain.ErrSelfChallenge
	}

	opts := h.options
	opts.HardMode = hardMode

	id := uuid.NewString()
	duel := domain.NewDuel(id, first, second, h.words.RandomAnswer(), opts)
	session := NewDuelSession(duel, h.words, h.router, h.recorder, h.logger)

	h.mu.Lock()
	h.sessions[id] = session
	h.mu.Unlock()

	h.logger.Infow("duel created",
		"duelId", id,
		"firstPlayer", first.ID,
		"secondPlayer", second.ID,
		"hardMode", hardMode,
	)

	return session, nil
}

// CreateMatchedDuel creates a duel with the hub's configured hard-mode
// setting, for matchmade pairs that never negotiated the option.
func (h *DuelHub) CreateMatchedDuel(first, second domain.PlayerRef) (*DuelSession, error) {
	return h.CreateDuel(first, second, h.options.HardMode)
}

// GetSession returns a duel session by ID.
func (h *DuelHub) GetSession(id string) (*DuelSession, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	session, ok := h.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// SessionCount returns the number of active sessions.
func (h *DuelHub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Close stops the cleanup loop and drops all sessions.
func (h *DuelHub) Close() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()

	for id := range h.sessions {
		h.router.CloseSession(id)
	}
	h.sessions = make(map[string]*DuelSession)
	h.finishedAt = make(map[string]time.Time)
}

// cleanupLoop periodically abandons expired duels and sweeps finished ones.
func (h *DuelHub) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.sweep(time.Now())
		}
	}
}

// sweep abandons duels that never started within their grace period and
// removes finished duels past their retention window.
func (h *DuelHub) sweep(now time.Time) {
	h.mu.RLock()
	sessions := make([]*DuelSession, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.RUnlock()

	for _, s := range sessions {
		if s.Expired(now) && s.Abandon() {
			h.logger.Infow("duel abandoned", "duelId", s.ID())
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, s := range h.sessions {
		if !s.Finished() {
			continue
		}
		doneSince, seen := h.finishedAt[id]
		if !seen {
			h.finishedAt[id] = now
			continue
		}
		if now.Sub(doneSince) > finishedRetention {
			delete(h.sessions, id)
			delete(h.finishedAt, id)
			h.router.CloseSession(id)
			h.logger.Infow("finished duel swept", "duelId", id)
		}
	}
}
