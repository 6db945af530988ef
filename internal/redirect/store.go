// Package redirect persists "return here after auth" intent across the
// navigation to an external OAuth or verification step and back. One slot per
// session, last write wins, gated by an expiry checked lazily at read time.
package redirect

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"exchange-frontend/internal/kv"
	"exchange-frontend/internal/metrics"
)

type intent struct {
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
	Expires   int64  `json:"expires"`   // duration milliseconds
}

type Store struct {
	kv     kv.Store
	expiry time.Duration
	logger *slog.Logger

	now func() time.Time
}

func NewStore(kvStore kv.Store, expiry time.Duration, logger *slog.Logger) *Store {
	return &Store{
		kv:     kvStore,
		expiry: expiry,
		logger: logger,
		now:    time.Now,
	}
}

// Save writes the intent for the key, overwriting any existing one. The
// underlying TTL is set slightly past the logical expiry so the payload
// timestamp stays the authority.
func (s *Store) Save(ctx context.Context, key, url string) error {
	entry := intent{
		URL:       url,
		Timestamp: s.now().UnixMilli(),
		Expires:   s.expiry.Milliseconds(),
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	if err := s.kv.Set(ctx, key, string(encoded), s.expiry+time.Minute); err != nil {
		metrics.RedirectIntentOperations.WithLabelValues(metrics.IntentOperationSave, "error").Inc()
		return err
	}

	metrics.RedirectIntentOperations.WithLabelValues(metrics.IntentOperationSave, "ok").Inc()
	return nil
}

// Read returns the saved url when one exists and is unexpired. A corrupt or
// expired entry is treated as absent and purged; a never-written key performs
// no deletion. Storage failures are logged and reported as absent, matching
// the rest of the auth core: the user lands on the default page instead of
// seeing an error.
func (s *Store) Read(ctx context.Context, key string) (string, bool) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Warn("failed to read redirect intent", "error", err)
		}
		metrics.RedirectIntentOperations.WithLabelValues(metrics.IntentOperationRead, metrics.IntentReadOutcomeMiss).Inc()
		return "", false
	}

	var entry intent
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		s.logger.Warn("purging corrupt redirect intent", "error", err)
		s.purge(ctx, key)
		metrics.RedirectIntentOperations.WithLabelValues(metrics.IntentOperationRead, metrics.IntentReadOutcomeCorrupt).Inc()
		return "", false
	}

	if s.now().UnixMilli()-entry.Timestamp > entry.Expires {
		s.purge(ctx, key)
		metrics.RedirectIntentOperations.WithLabelValues(metrics.IntentOperationRead, metrics.IntentReadOutcomeExpired).Inc()
		return "", false
	}

	metrics.RedirectIntentOperations.WithLabelValues(metrics.IntentOperationRead, metrics.IntentReadOutcomeHit).Inc()
	return entry.URL, true
}

// Consume reads and, on a hit, clears the intent so it is used at most once.
func (s *Store) Consume(ctx context.Context, key string) (string, bool) {
	url, ok := s.Read(ctx, key)
	if ok {
		s.purge(ctx, key)
	}

	return url, ok
}

// Clear deletes the intent unconditionally. Idempotent.
func (s *Store) Clear(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, key); err != nil {
		metrics.RedirectIntentOperations.WithLabelValues(metrics.IntentOperationClear, "error").Inc()
		return err
	}

	metrics.RedirectIntentOperations.WithLabelValues(metrics.IntentOperationClear, "ok").Inc()
	return nil
}

func (s *Store) purge(ctx context.Context, key string) {
	if err := s.kv.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to purge redirect intent", "error", err)
	}
}

// Bind fixes the session key, yielding the single-slot view the session
// store and guard operate on.
func (s *Store) Bind(key string) *Slot {
	return &Slot{store: s, key: key}
}

// Slot is a Store bound to one session's key.
type Slot struct {
	store *Store
	key   string
}

func (s *Slot) Save(ctx context.Context, url string) error {
	return s.store.Save(ctx, s.key, url)
}

func (s *Slot) Read(ctx context.Context) (string, bool) {
	return s.store.Read(ctx, s.key)
}

func (s *Slot) Consume(ctx context.Context) (string, bool) {
	return s.store.Consume(ctx, s.key)
}

func (s *Slot) Clear(ctx context.Context) error {
	return s.store.Clear(ctx, s.key)
}
