package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"wordduel/internal/domain"
)

// Repository stores finished duels and ratings in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository opens a connection pool for databaseURL, verifies it with a
// ping and ensures the schema exists.
func NewRepository(ctx context.Context, databaseURL string) (*Repository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("database URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}

	r := &Repository{db: db}
	if err := r.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// Close releases the connection pool.
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) ensureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS duels (
	id               TEXT PRIMARY KEY,
	first_player_id  TEXT NOT NULL,
	second_player_id TEXT NOT NULL,
	result           TEXT NOT NULL,
	solution         TEXT NOT NULL,
	turns            INTEGER NOT NULL,
	hard_mode        BOOLEAN NOT NULL,
	guesses          JSONB NOT NULL,
	feedback         JSONB NOT NULL,
	started_at       TIMESTAMPTZ NOT NULL,
	ended_at         TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS duels_first_player_idx ON duels (first_player_id);
CREATE INDEX IF NOT EXISTS duels_second_player_idx ON duels (second_player_id);

CREATE TABLE IF NOT EXISTS ratings (
	player_id TEXT PRIMARY KEY,
	elo       INTEGER NOT NULL,
	wins      INTEGER NOT NULL DEFAULT 0,
	losses    INTEGER NOT NULL DEFAULT 0,
	draws     INTEGER NOT NULL DEFAULT 0
);`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// RecordResult upserts the finished duel and, for decided duels, moves both
// players' ratings. The ratings update is skipped when the duel row already
// existed, so retries do not double-count.
func (r *Repository) RecordResult(ctx context.Context, snap domain.Snapshot) error {
	if snap.Result == nil {
		return domain.ErrInvalidInput
	}
	result := *snap.Result

	guessesRaw, err := json.Marshal(snap.Guesses)
	if err != nil {
		return err
	}
	feedbackRaw, err := json.Marshal(snap.Feedback)
	if err != nil {
		return err
	}
	solution := ""
	if snap.Solution != nil {
		solution = *snap.Solution
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const insert = `
INSERT INTO duels (
	id, first_player_id, second_player_id, result, solution,
	turns, hard_mode, guesses, feedback, started_at, ended_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
ON CONFLICT (id) DO NOTHING`

	res, err := tx.ExecContext(ctx, insert,
		snap.ID,
		snap.FirstPlayer.ID,
		snap.SecondPlayer.ID,
		result,
		solution,
		len(snap.Guesses),
		snap.HardMode,
		guessesRaw,
		feedbackRaw,
		snap.CreatedAt,
		snap.UpdatedAt,
	)
	if err != nil {
		return err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if inserted > 0 {
		if err := r.applyRatings(ctx, tx, snap, result); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repository) applyRatings(ctx context.Context, tx *sql.Tx, snap domain.Snapshot, result string) error {
	first, second := snap.FirstPlayer.ID, snap.SecondPlayer.ID

	switch {
	case result == domain.ResultDraw:
		if err := bumpRating(ctx, tx, first, 0, 0, 0, 1); err != nil {
			return err
		}
		return bumpRating(ctx, tx, second, 0, 0, 0, 1)
	case strings.HasPrefix(result, "lose:"):
		loser := strings.TrimPrefix(result, "lose:")
		winner := first
		if loser == first {
			winner = second
		}
		winnerElo, err := currentElo(ctx, tx, winner)
		if err != nil {
			return err
		}
		loserElo, err := currentElo(ctx, tx, loser)
		if err != nil {
			return err
		}
		newWinner, newLoser := UpdateElo(winnerElo, loserElo)
		if err := bumpRating(ctx, tx, winner, newWinner-winnerElo, 1, 0, 0); err != nil {
			return err
		}
		return bumpRating(ctx, tx, loser, newLoser-loserElo, 0, 1, 0)
	default:
		// abandoned duels carry no rating change
		return nil
	}
}

func currentElo(ctx context.Context, tx *sql.Tx, playerID string) (int, error) {
	var elo int
	err := tx.QueryRowContext(ctx, `SELECT elo FROM ratings WHERE player_id = $1`, playerID).Scan(&elo)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultElo, nil
	}
	if err != nil {
		return 0, err
	}
	return elo, nil
}

func bumpRating(ctx context.Context, tx *sql.Tx, playerID string, eloDelta, wins, losses, draws int) error {
	const q = `
INSERT INTO ratings (player_id, elo, wins, losses, draws)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (player_id) DO UPDATE SET
	elo    = ratings.elo + $6,
	wins   = ratings.wins + $3,
	losses = ratings.losses + $4,
	draws  = ratings.draws + $5`
	_, err := tx.ExecContext(ctx, q, playerID, DefaultElo+eloDelta, wins, losses, draws, eloDelta)
	return err
}

// GetGame returns a stored duel by ID.
func (r *Repository) GetGame(ctx context.Context, id string) (*Record, error) {
	const q = `
SELECT id, first_player_id, second_player_id, result, solution,
       turns, hard_mode, guesses, feedback, started_at, ended_at
FROM duels WHERE id = $1`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GamesByPlayer returns a player's most recent duels, newest first.
func (r *Repository) GamesByPlayer(ctx context.Context, playerID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, first_player_id, second_player_id, result, solution,
       turns, hard_mode, guesses, feedback, started_at, ended_at
FROM duels
WHERE first_player_id = $1 OR second_player_id = $1
ORDER BY ended_at DESC
LIMIT $2`

	rows, err := r.db.QueryContext(ctx, q, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// Leaderboard returns the top-rated players.
func (r *Repository) Leaderboard(ctx context.Context, limit int) ([]Rating, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
SELECT player_id, elo, wins, losses, draws
FROM ratings
ORDER BY elo DESC
LIMIT $1`

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Rating
	for rows.Next() {
		var rt Rating
		if err := rows.Scan(&rt.PlayerID, &rt.Elo, &rt.Wins, &rt.Losses, &rt.Draws); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		rec         Record
		guessesRaw  []byte
		feedbackRaw []byte
	)
	err := row.Scan(
		&rec.ID,
		&rec.FirstPlayerID,
		&rec.SecondPlayerID,
		&rec.Result,
		&rec.Solution,
		&rec.Turns,
		&rec.HardMode,
		&guessesRaw,
		&feedbackRaw,
		&rec.StartedAt,
		&rec.EndedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(guessesRaw, &rec.Guesses); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(feedbackRaw, &rec.Feedback); err != nil {
		return nil, err
	}
	return &rec, nil
}
