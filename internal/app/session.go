package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"wordduel/internal/domain"
	"wordduel/internal/history"
	"wordduel/internal/wordlist"
)

// DuelSession wraps a domain.Duel with the locking, word validation and
// broadcasting it needs to be driven by concurrent connections. All duel
// mutation goes through it.
type DuelSession struct {
	mu       sync.Mutex
	duel     *domain.Duel
	words    *wordlist.List
	router   *Router
	recorder history.Recorder
	logger   *zap.SugaredLogger
}

// NewDuelSession creates a session for duel.
func NewDuelSession(duel *domain.Duel, words *wordlist.List, router *Router, recorder history.Recorder, logger *zap.SugaredLogger) *DuelSession {
	return &DuelSession{
		duel:     duel,
		words:    words,
		router:   router,
		recorder: recorder,
		logger:   logger,
	}
}

// ID returns the duel's identifier.
func (s *DuelSession) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duel.ID
}

// Snapshot returns the duel's current wire state.
func (s *DuelSession) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duel.Snapshot()
}

// Players returns the two participants.
func (s *DuelSession) Players() (first, second domain.PlayerRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duel.FirstPlayer, s.duel.SecondPlayer
}

// Finished reports whether the duel has ended.
func (s *DuelSession) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duel.Finished()
}

// CreatedAt returns when the duel was created.
func (s *DuelSession) CreatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duel.CreatedAt
}

// Join registers conn on the duel's broadcast channel and marks playerID as
// present. The joining connection always receives the current snapshot;
// when the join starts the duel everyone gets the new state. Snapshots go
// out while the session lock is held, so they reach each connection's queue
// in mutation order; router sends never block.
func (s *DuelSession) Join(playerID string, conn Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasInProgress := s.duel.Status == domain.StatusInProgress
	if err := s.duel.Join(playerID); err != nil {
		return err
	}
	snap := s.duel.Snapshot()
	started := !wasInProgress && s.duel.Status == domain.StatusInProgress

	s.router.JoinSession(snap.ID, conn)
	if started {
		s.logger.Infow("duel started", "duelId", snap.ID)
		s.router.BroadcastSession(snap.ID, snap)
		return nil
	}
	return conn.Send(snap)
}

// Watch registers conn for broadcasts without marking any player present,
// for connections that have not identified themselves yet.
func (s *DuelSession) Watch(conn Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.duel.Snapshot()
	s.router.JoinSession(snap.ID, conn)
	return conn.Send(snap)
}

// Leave removes conn from the duel's broadcast channel.
func (s *DuelSession) Leave(conn Connection) {
	s.router.LeaveSession(s.ID(), conn)
}

// SubmitGuess applies a guess for playerID and broadcasts the resulting
// state. Validation runs turn order first, then word-list membership, then
// hard-mode constraints; the first failure is returned and nothing changes.
func (s *DuelSession) SubmitGuess(playerID, guess string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	duel := s.duel
	if duel.Finished() {
		return domain.ErrDuelFinished
	}
	if !duel.IsParticipant(playerID) {
		return domain.ErrNotParticipant
	}
	if playerID != duel.CurrentPlayer {
		return domain.ErrNotYourTurn
	}

	trimmed := strings.ToUpper(strings.TrimSpace(guess))
	if len(trimmed) != duel.Options.WordLength {
		return domain.ErrInvalidInput
	}
	if !s.words.IsAllowed(trimmed) {
		return domain.ErrInvalidWord
	}

	record, err := duel.SubmitGuess(playerID, trimmed)
	if err != nil {
		return err
	}
	snap := duel.Snapshot()

	s.logger.Debugw("guess accepted",
		"duelId", snap.ID,
		"playerId", playerID,
		"guess", record.Guess,
		"turn", len(snap.Guesses),
	)

	// Broadcast before releasing the lock so a racing guess cannot push an
	// older snapshot behind a newer one.
	s.router.BroadcastSession(snap.ID, snap)

	if duel.Finished() {
		s.logger.Infow("duel finished", "duelId", snap.ID, "result", derefResult(snap.Result))
		go s.record(snap)
	}
	return nil
}

// Abandon finishes a duel that never started and broadcasts the final state.
func (s *DuelSession) Abandon() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.duel.Abandon() {
		return false
	}
	snap := s.duel.Snapshot()
	s.router.BroadcastSession(snap.ID, snap)
	go s.record(snap)
	return true
}

// Expired reports whether a waiting duel has outlived its grace period.
func (s *DuelSession) Expired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duel.Expired(now)
}

func (s *DuelSession) record(snap domain.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.recorder.RecordResult(ctx, snap); err != nil {
		s.logger.Warnw("failed to record duel result", "duelId", snap.ID, "error", err)
	}
}

func derefResult(r *string) string {
	if r == nil {
		return ""
	}
	return *r
}
