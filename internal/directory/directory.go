// Package directory stores player display names keyed by player ID, so a
// challenge invite can carry the challenger's name even when the target
// has never seen them before.
package directory

import (
	"context"
	"strings"

	"wordduel/internal/domain"
)

// Directory resolves player IDs to display names.
type Directory interface {
	Save(ctx context.Context, playerID, name string) error
	Lookup(ctx context.Context, playerID string) (string, error)
	Close() error
}

// Resolve returns a PlayerRef for playerID, falling back to the provided
// name when the directory has no entry or is unreachable.
func Resolve(ctx context.Context, d Directory, playerID, fallback string) domain.PlayerRef {
	name, err := d.Lookup(ctx, playerID)
	if err != nil || strings.TrimSpace(name) == "" {
		name = fallback
	}
	return domain.NewPlayerRef(playerID, name)
}
