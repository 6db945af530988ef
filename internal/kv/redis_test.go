package kv

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	return NewRedisStore(client, logger), mr
}

func TestRedisStoreSetGet(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "intent", "/strategy-room/5", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	value, err := store.Get(ctx, "intent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "/strategy-room/5" {
		t.Errorf("expected /strategy-room/5, got %s", value)
	}
}

func TestRedisStoreGetMissing(t *testing.T) {
	store, _ := newTestRedisStore(t)

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisStoreTTLExpiry(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "intent", "value", time.Minute); err != nil {
		t.Fatal(err)
	}

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "intent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after TTL, got %v", err)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "intent", "value", time.Minute); err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(ctx, "intent"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Get(ctx, "intent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := store.Delete(ctx, "intent"); err != nil {
		t.Errorf("second delete should be idempotent: %v", err)
	}
}

func TestRedisStoreKeysAreNamespaced(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "intent", "value", time.Minute); err != nil {
		t.Fatal(err)
	}

	if !mr.Exists("exchange:kv:intent") {
		t.Error("expected namespaced key exchange:kv:intent in redis")
	}
}
