package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"wordduel/internal/domain"
)

func newTestRedisDirectory(t *testing.T) *RedisDirectory {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	d, err := NewRedisDirectory(context.Background(), mr.Addr(), "", time.Hour)
	if err != nil {
		t.Fatalf("NewRedisDirectory: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestRedisSaveAndLookup(t *testing.T) {
	d := newTestRedisDirectory(t)
	ctx := context.Background()

	if err := d.Save(ctx, "p1", "Alice"); err != nil {
		t.Fatalf("save: %v", err)
	}

	name, err := d.Lookup(ctx, "p1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if name != "Alice" {
		t.Errorf("name = %q, want Alice", name)
	}
}

func TestRedisLookupUnknown(t *testing.T) {
	d := newTestRedisDirectory(t)

	name, err := d.Lookup(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if name != "" {
		t.Errorf("unknown player should resolve to empty name, got %q", name)
	}
}

func TestRedisSaveValidatesInput(t *testing.T) {
	d := newTestRedisDirectory(t)
	ctx := context.Background()

	if err := d.Save(ctx, "", "Alice"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("empty ID: expected ErrInvalidInput, got %v", err)
	}
	if err := d.Save(ctx, "p1", "  "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("blank name: expected ErrInvalidInput, got %v", err)
	}
}

func TestRedisSaveOverwrites(t *testing.T) {
	d := newTestRedisDirectory(t)
	ctx := context.Background()

	d.Save(ctx, "p1", "Alice")
	d.Save(ctx, "p1", "Alicia")

	name, _ := d.Lookup(ctx, "p1")
	if name != "Alicia" {
		t.Errorf("name = %q, want Alicia", name)
	}
}

func TestMemoryDirectory(t *testing.T) {
	d := NewMemoryDirectory()
	ctx := context.Background()

	if err := d.Save(ctx, "p1", "Alice"); err != nil {
		t.Fatalf("save: %v", err)
	}
	name, err := d.Lookup(ctx, "p1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if name != "Alice" {
		t.Errorf("name = %q, want Alice", name)
	}

	if err := d.Save(ctx, "", "x"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestResolveFallsBack(t *testing.T) {
	d := NewMemoryDirectory()
	ctx := context.Background()

	ref := Resolve(ctx, d, "p1", "Guest")
	if ref.Name != "Guest" {
		t.Errorf("name = %q, want fallback Guest", ref.Name)
	}

	d.Save(ctx, "p1", "Alice")
	ref = Resolve(ctx, d, "p1", "Guest")
	if ref.Name != "Alice" {
		t.Errorf("name = %q, want stored Alice", ref.Name)
	}
}
