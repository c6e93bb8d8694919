// Package history persists finished duels and maintains player ratings.
package history

import (
	"context"
	"time"

	"wordduel/internal/domain"
)

// Record is one finished duel as stored.
type Record struct {
	ID             string     `json:"id"`
	FirstPlayerID  string     `json:"first_player_id"`
	SecondPlayerID string     `json:"second_player_id"`
	Result         string     `json:"result"`
	Solution       string     `json:"solution"`
	Turns          int        `json:"turns"`
	HardMode       bool       `json:"hard_mode"`
	Guesses        []string   `json:"guesses"`
	Feedback       [][]string `json:"feedback"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        time.Time  `json:"ended_at"`
}

// Rating is a player's current standing.
type Rating struct {
	PlayerID string `json:"player_id"`
	Elo      int    `json:"elo"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Draws    int    `json:"draws"`
}

// Recorder stores finished duels. Implementations must tolerate repeated
// calls for the same duel.
type Recorder interface {
	RecordResult(ctx context.Context, snap domain.Snapshot) error
	GetGame(ctx context.Context, id string) (*Record, error)
	GamesByPlayer(ctx context.Context, playerID string, limit int) ([]Record, error)
	Leaderboard(ctx context.Context, limit int) ([]Rating, error)
	Close() error
}

// NopRecorder discards everything. Used when no database is configured.
type NopRecorder struct{}

// RecordResult discards the result.
func (NopRecorder) RecordResult(context.Context, domain.Snapshot) error { return nil }

// GetGame always reports not found.
func (NopRecorder) GetGame(context.Context, string) (*Record, error) {
	return nil, domain.ErrSessionNotFound
}

// GamesByPlayer returns no games.
func (NopRecorder) GamesByPlayer(context.Context, string, int) ([]Record, error) {
	return nil, nil
}

// Leaderboard returns no ratings.
func (NopRecorder) Leaderboard(context.Context, int) ([]Rating, error) { return nil, nil }

// Close is a no-op.
func (NopRecorder) Close() error { return nil }
