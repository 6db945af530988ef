package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"exchange-frontend/internal/config"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Get when no value exists under the key.
var ErrNotFound = errors.New("kv: key not found")

// Store is a string key-value store with optional per-key TTL. It backs the
// redirect intent slot so the production Redis store can be swapped for an
// in-memory one in tests.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// NewStore returns a Store for the configured backend.
func NewStore(kind string, cfg *config.Config, logger *slog.Logger) (Store, error) {
	switch kind {
	case "redis":
		if cfg.Redis == nil {
			return nil, fmt.Errorf("redis kv store requested but redis is not configured")
		}

		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Address,
			Username:     cfg.Redis.Username,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.IntentIndex,
			MinIdleConns: 2,
		})

		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}

		return NewRedisStore(client, logger), nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported kv store: %s", kind)
	}
}
