package redirect

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"exchange-frontend/internal/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *kv.MemoryStore) {
	t.Helper()

	backing := kv.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	return NewStore(backing, 10*time.Minute, logger), backing
}

func TestSaveThenRead(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", "/strategy-room/5/applications"))

	url, ok := store.Read(ctx, "sess-1")
	require.True(t, ok)
	assert.Equal(t, "/strategy-room/5/applications", url)
}

func TestReadNeverWritten(t *testing.T) {
	store, _ := newTestStore(t)

	url, ok := store.Read(context.Background(), "sess-1")
	assert.False(t, ok)
	assert.Empty(t, url)
}

func TestSaveOverwrites(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", "/foo"))
	require.NoError(t, store.Save(ctx, "sess-1", "/bar"))

	url, ok := store.Read(ctx, "sess-1")
	require.True(t, ok)
	assert.Equal(t, "/bar", url)
}

func TestExpiryBoundaries(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	base := time.Now()
	store.now = func() time.Time { return base }

	require.NoError(t, store.Save(ctx, "sess-1", "/foo"))

	// 9 minutes in: still valid.
	store.now = func() time.Time { return base.Add(9 * time.Minute) }
	url, ok := store.Read(ctx, "sess-1")
	require.True(t, ok)
	assert.Equal(t, "/foo", url)

	// 11 minutes in: expired.
	store.now = func() time.Time { return base.Add(11 * time.Minute) }
	_, ok = store.Read(ctx, "sess-1")
	assert.False(t, ok)
}

func TestExpiredEntryIsPurgedPermanently(t *testing.T) {
	store, backing := newTestStore(t)
	ctx := context.Background()

	base := time.Now()
	store.now = func() time.Time { return base }

	require.NoError(t, store.Save(ctx, "sess-1", "/foo"))

	store.now = func() time.Time { return base.Add(11 * time.Minute) }

	_, ok := store.Read(ctx, "sess-1")
	require.False(t, ok)

	// the purge deleted the backing entry, not just hid it
	_, err := backing.Get(ctx, "sess-1")
	assert.True(t, errors.Is(err, kv.ErrNotFound))

	// a later read within a fresh window still finds nothing
	store.now = func() time.Time { return base }
	_, ok = store.Read(ctx, "sess-1")
	assert.False(t, ok)
}

func TestCorruptEntryIsPurged(t *testing.T) {
	store, backing := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, backing.Set(ctx, "sess-1", "{not valid json", 0))

	_, ok := store.Read(ctx, "sess-1")
	require.False(t, ok)

	_, err := backing.Get(ctx, "sess-1")
	assert.True(t, errors.Is(err, kv.ErrNotFound))
}

func TestConsumeClearsOnHit(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", "/foo"))

	url, ok := store.Consume(ctx, "sess-1")
	require.True(t, ok)
	assert.Equal(t, "/foo", url)

	_, ok = store.Read(ctx, "sess-1")
	assert.False(t, ok)
}

func TestClearIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", "/foo"))
	require.NoError(t, store.Clear(ctx, "sess-1"))
	require.NoError(t, store.Clear(ctx, "sess-1"))

	_, ok := store.Read(ctx, "sess-1")
	assert.False(t, ok)
}

func TestSlotBindsKey(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	slot := store.Bind("sess-1")
	require.NoError(t, slot.Save(ctx, "/foo"))

	// visible under the bound key only
	url, ok := store.Read(ctx, "sess-1")
	require.True(t, ok)
	assert.Equal(t, "/foo", url)

	_, ok = store.Read(ctx, "sess-2")
	assert.False(t, ok)

	require.NoError(t, slot.Clear(ctx))
	_, ok = slot.Read(ctx)
	assert.False(t, ok)
}
