package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidInput          = errors.New("guess and target must be words of the same length")
	ErrInvalidWord           = errors.New("word is not in the permitted word list")
	ErrNotYourTurn           = errors.New("not your turn to guess")
	ErrNotParticipant        = errors.New("player is not part of this duel")
	ErrDuelFinished          = errors.New("duel is already finished")
	ErrSessionNotFound       = errors.New("session not found")
	ErrAlreadyQueued         = errors.New("player is already in the matchmaking queue")
	ErrNoPendingOffer        = errors.New("no pending challenge offer for this pair")
	ErrSelfChallenge         = errors.New("cannot challenge yourself")
	ErrConnectionUnavailable = errors.New("no live connection registered for player")
	ErrInvalidTransition     = errors.New("invalid status transition")
)

// ConstraintRule identifies which hard-mode rule a guess violated.
type ConstraintRule string

const (
	RuleRequiredPosition  ConstraintRule = "required_position"
	RuleForbiddenLetter   ConstraintRule = "forbidden_letter"
	RuleMinimumCount      ConstraintRule = "minimum_count"
	RuleForbiddenPosition ConstraintRule = "forbidden_position"
)

// ConstraintViolation reports the first hard-mode rule a candidate guess
// breaks. Position is 1-based to match what players see on the board.
type ConstraintViolation struct {
	Rule     ConstraintRule
	Letter   string
	Position int
	MinCount int
}

// Error returns the player-facing violation message.
func (v *ConstraintViolation) Error() string {
	switch v.Rule {
	case RuleRequiredPosition:
		return fmt.Sprintf("hard mode: must use %s in position %d", v.Letter, v.Position)
	case RuleForbiddenLetter:
		return fmt.Sprintf("hard mode: cannot use %s (marked absent)", v.Letter)
	case RuleMinimumCount:
		return fmt.Sprintf("hard mode: must use %s at least %d time(s)", v.Letter, v.MinCount)
	case RuleForbiddenPosition:
		return fmt.Sprintf("hard mode: %s cannot be in position %d", v.Letter, v.Position)
	default:
		return "hard mode: constraint violated"
	}
}

// AsConstraintViolation unwraps err as a *ConstraintViolation if it is one.
func AsConstraintViolation(err error) (*ConstraintViolation, bool) {
	var v *ConstraintViolation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
