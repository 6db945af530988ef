package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "exchange:kv:"

// RedisStore is the Store used when multiple instances serve the same
// browser session; a redirect intent written before the OAuth hop must be
// readable by whichever instance answers the callback.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisStore(client *redis.Client, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		logger: logger,
	}
}

func (r *RedisStore) key(key string) string {
	return keyPrefix + key
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("redis GET failed: %w", err)
	}

	return value, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis SET failed: %w", err)
	}

	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis DEL failed: %w", err)
	}

	return nil
}

// Client exposes the underlying connection for metrics collectors.
func (r *RedisStore) Client() *redis.Client {
	return r.client
}

// Close releases the underlying client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
