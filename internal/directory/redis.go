package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"wordduel/internal/domain"
)

// RedisDirectory keeps player names in Redis with a sliding TTL, so names
// survive server restarts but idle players eventually age out.
type RedisDirectory struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisDirectory connects to Redis at addr and verifies the connection
// with a ping.
func NewRedisDirectory(ctx context.Context, addr, password string, ttl time.Duration) (*RedisDirectory, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisDirectory{rdb: rdb, ttl: ttl}, nil
}

func (d *RedisDirectory) key(playerID string) string {
	return "player:name:" + strings.TrimSpace(playerID)
}

// Save stores the display name for playerID.
func (d *RedisDirectory) Save(ctx context.Context, playerID, name string) error {
	playerID = strings.TrimSpace(playerID)
	name = strings.TrimSpace(name)
	if playerID == "" || name == "" {
		return domain.ErrInvalidInput
	}
	return d.rdb.Set(ctx, d.key(playerID), name, d.ttl).Err()
}

// Lookup returns the stored name for playerID, or "" when none is known.
// A hit refreshes the TTL.
func (d *RedisDirectory) Lookup(ctx context.Context, playerID string) (string, error) {
	name, err := d.rdb.Get(ctx, d.key(playerID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	_ = d.rdb.Expire(ctx, d.key(playerID), d.ttl).Err()
	return name, nil
}

// Close releases the Redis connection.
func (d *RedisDirectory) Close() error {
	return d.rdb.Close()
}
