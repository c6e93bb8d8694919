package directory

import (
	"context"
	"strings"
	"sync"

	"wordduel/internal/domain"
)

// MemoryDirectory is an in-process Directory used when no Redis address is
// configured. Names are lost on restart.
type MemoryDirectory struct {
	mu    sync.RWMutex
	names map[string]string
}

// NewMemoryDirectory creates an empty in-memory directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{names: make(map[string]string)}
}

// Save stores the display name for playerID.
func (d *MemoryDirectory) Save(_ context.Context, playerID, name string) error {
	playerID = strings.TrimSpace(playerID)
	name = strings.TrimSpace(name)
	if playerID == "" || name == "" {
		return domain.ErrInvalidInput
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.names[playerID] = name
	return nil
}

// Lookup returns the stored name for playerID, or "" when none is known.
func (d *MemoryDirectory) Lookup(_ context.Context, playerID string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.names[strings.TrimSpace(playerID)], nil
}

// Close is a no-op.
func (d *MemoryDirectory) Close() error {
	return nil
}
