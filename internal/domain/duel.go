package domain

import (
	"strings"
	"time"
)

// Result values. A decided duel records the losing guesser as
// "lose:<playerID>"; the guesser who reveals the target loses.
const (
	ResultDraw      = "draw"
	ResultAbandoned = "abandoned"

	losePrefix = "lose:"
)

// ResultLose builds the result string recording playerID as the loser.
func ResultLose(playerID string) string {
	return losePrefix + playerID
}

// DuelOptions holds the configurable parameters of a duel.
type DuelOptions struct {
	WordLength int           `json:"wordLength"`
	MaxTurns   int           `json:"maxTurns"`
	HardMode   bool          `json:"hardMode"`
	JoinGrace  time.Duration `json:"joinGrace"` // how long a Waiting duel may sit unjoined
}

// DefaultDuelOptions returns the default duel options.
func DefaultDuelOptions() DuelOptions {
	return DuelOptions{
		WordLength: 5,
		MaxTurns:   6,
		HardMode:   false,
		JoinGrace:  2 * time.Minute,
	}
}

// TurnRecord is one accepted guess with its verdict, appended to the duel's
// ordered log. Order matters: hard-mode constraints fold over it.
type TurnRecord struct {
	Guess    string `json:"guess"`
	Verdict  []Mark `json:"verdict"`
	ByPlayer string `json:"byPlayer"`
}

// Duel is the state of a single two-player word duel. It holds the game
// rules only; locking and broadcasting live in the app layer.
type Duel struct {
	ID            string
	FirstPlayer   PlayerRef
	SecondPlayer  PlayerRef
	Solution      string
	CurrentPlayer string
	Status        Status
	Result        string // empty while undecided
	Log           []TurnRecord
	Options       DuelOptions
	CreatedAt     time.Time
	UpdatedAt     time.Time

	joined map[string]bool
}

// NewDuel creates a duel between two players over the given solution word.
// The first player moves first.
func NewDuel(id string, first, second PlayerRef, solution string, opts DuelOptions) *Duel {
	now := time.Now().UTC()
	return &Duel{
		ID:            id,
		FirstPlayer:   first,
		SecondPlayer:  second,
		Solution:      strings.ToUpper(solution),
		CurrentPlayer: first.ID,
		Status:        StatusWaiting,
		Log:           make([]TurnRecord, 0, opts.MaxTurns),
		Options:       opts,
		CreatedAt:     now,
		UpdatedAt:     now,
		joined:        make(map[string]bool),
	}
}

// IsParticipant reports whether playerID is one of the two duel players.
func (d *Duel) IsParticipant(playerID string) bool {
	return playerID == d.FirstPlayer.ID || playerID == d.SecondPlayer.ID
}

// Opponent returns the other participant.
func (d *Duel) Opponent(playerID string) (PlayerRef, bool) {
	switch playerID {
	case d.FirstPlayer.ID:
		return d.SecondPlayer, true
	case d.SecondPlayer.ID:
		return d.FirstPlayer, true
	}
	return PlayerRef{}, false
}

// Finished reports whether the duel has reached a terminal state.
func (d *Duel) Finished() bool {
	return d.Status == StatusFinished
}

// Loser returns the losing player's ID for a decided duel, or "" for a
// draw, abandonment, or a duel still in progress.
func (d *Duel) Loser() string {
	if strings.HasPrefix(d.Result, losePrefix) {
		return strings.TrimPrefix(d.Result, losePrefix)
	}
	return ""
}

// Join marks a participant as connected. Once both participants have joined
// a Waiting duel it moves to InProgress. Joining is idempotent per player,
// so reconnects after a dropped connection are harmless; joining a finished
// duel is a no-op (the caller still gets the final snapshot).
func (d *Duel) Join(playerID string) error {
	if !d.IsParticipant(playerID) {
		return ErrNotParticipant
	}
	if d.Finished() {
		return nil
	}

	d.joined[playerID] = true
	if d.Status == StatusWaiting && d.joined[d.FirstPlayer.ID] && d.joined[d.SecondPlayer.ID] {
		if err := d.setStatus(StatusInProgress); err != nil {
			return err
		}
		d.UpdatedAt = time.Now().UTC()
	}
	return nil
}

// SubmitGuess validates and applies a guess for playerID. Word-list
// membership is checked by the caller; turn order, guess shape, hard-mode
// constraints, scoring and termination all happen here. A rejected guess
// leaves the duel untouched.
func (d *Duel) SubmitGuess(playerID, guess string) (*TurnRecord, error) {
	if d.Finished() {
		return nil, ErrDuelFinished
	}
	if d.Status == StatusWaiting {
		return nil, ErrInvalidTransition
	}
	if !d.IsParticipant(playerID) {
		return nil, ErrNotParticipant
	}
	if playerID != d.CurrentPlayer {
		return nil, ErrNotYourTurn
	}

	guess = strings.ToUpper(strings.TrimSpace(guess))
	if len(guess) != d.Options.WordLength || !isAlpha(guess) {
		return nil, ErrInvalidInput
	}

	if d.Options.HardMode {
		if err := CheckHardMode(guess, d.Log); err != nil {
			return nil, err
		}
	}

	verdict, err := Feedback(guess, d.Solution)
	if err != nil {
		return nil, err
	}

	record := TurnRecord{Guess: guess, Verdict: verdict, ByPlayer: playerID}
	d.Log = append(d.Log, record)
	d.UpdatedAt = time.Now().UTC()

	if AllCorrect(verdict) {
		// Revealing the target loses; the turn does not flip.
		d.Result = ResultLose(playerID)
		if err := d.setStatus(StatusFinished); err != nil {
			return nil, err
		}
		return &record, nil
	}

	if opponent, ok := d.Opponent(playerID); ok {
		d.CurrentPlayer = opponent.ID
	}

	if len(d.Log) >= d.Options.MaxTurns {
		d.Result = ResultDraw
		if err := d.setStatus(StatusFinished); err != nil {
			return nil, err
		}
	}
	return &record, nil
}

// Abandon finishes a duel that never left Waiting within its grace period.
// It returns false if the duel had already progressed.
func (d *Duel) Abandon() bool {
	if d.Status != StatusWaiting {
		return false
	}
	d.Result = ResultAbandoned
	if err := d.setStatus(StatusFinished); err != nil {
		return false
	}
	d.UpdatedAt = time.Now().UTC()
	return true
}

// setStatus moves the duel to target, refusing invalid transitions.
func (d *Duel) setStatus(target Status) error {
	if !d.Status.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	d.Status = target
	return nil
}

// Expired reports whether a Waiting duel has outlived its join grace period.
func (d *Duel) Expired(now time.Time) bool {
	return d.Status == StatusWaiting && now.Sub(d.CreatedAt) > d.Options.JoinGrace
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return len(s) > 0
}
