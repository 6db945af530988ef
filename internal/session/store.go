// Package session holds the current-user authentication state for one
// browser session. The store is the single source of truth consulted by the
// route guard; it is constructed explicitly and injected, never reached
// through a package global.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"exchange-frontend/internal/backend"
	"exchange-frontend/internal/metrics"
	"exchange-frontend/internal/models"
)

// State is the three-field session snapshot. IsLoggedIn is stored explicitly
// but must always equal (User != nil); every mutation goes through setState
// which enforces that.
type State struct {
	User       *models.User
	IsLoading  bool
	IsLoggedIn bool
}

// TokenSource yields the backend credential for the session, the same way a
// browser carries its cookie implicitly.
type TokenSource func() string

// IntentClearer is the slice of the redirect intent store that logout needs.
type IntentClearer interface {
	Clear(ctx context.Context) error
}

type Store struct {
	mu          sync.Mutex
	state       State
	generation  uint64
	client      backend.Client
	tokens      TokenSource
	intents     IntentClearer
	logger      *slog.Logger
	subscribers []chan State
}

// NewStore returns a store in the initial unresolved state: no user, loading
// true until the first FetchUser resolves.
func NewStore(client backend.Client, tokens TokenSource, intents IntentClearer, logger *slog.Logger) *Store {
	return &Store{
		state:   State{User: nil, IsLoading: true, IsLoggedIn: false},
		client:  client,
		tokens:  tokens,
		intents: intents,
		logger:  logger,
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe returns a channel that receives the state after each transition.
// Delivery is latest-wins: a slow receiver sees the newest state, not every
// intermediate one.
func (s *Store) Subscribe() <-chan State {
	ch := make(chan State, 1)

	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()

	return ch
}

// FetchUser resolves the session against the identity endpoint. Any failure
// (network, non-2xx, malformed body) collapses to the logged-out state; the
// cause is logged, never returned, because callers treat "unauthenticated"
// and "could not determine identity" identically.
//
// Each call captures a generation; a resolution is applied only while its
// generation is still the latest, so a slow earlier fetch cannot overwrite
// the outcome of a later call.
func (s *Store) FetchUser(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.setStateLocked(State{User: s.state.User, IsLoading: true, IsLoggedIn: s.state.IsLoggedIn})
	s.mu.Unlock()

	start := time.Now()
	user, err := s.client.CurrentUser(ctx, s.tokens())
	metrics.IdentityFetchDuration.Observe(time.Since(start).Seconds())

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debug("discarding stale identity resolution", "generation", gen, "latest", s.generation)
		return
	}

	if err != nil {
		s.setStateLocked(State{User: s.collapseIdentityFailure(err), IsLoading: false, IsLoggedIn: false})
		return
	}

	metrics.IdentityFetchesTotal.WithLabelValues(metrics.IdentityResultOK).Inc()
	s.setStateLocked(State{User: user, IsLoading: false, IsLoggedIn: true})
}

// SetUser overrides the session synchronously, used after an explicit login
// already returned the user record. Also invalidates any in-flight fetch.
func (s *Store) SetUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.setStateLocked(State{User: user, IsLoading: false, IsLoggedIn: user != nil})
}

// Logout attempts the external logout call, then clears the redirect intent
// and resets local state. Remote failure never blocks the reset: logout is
// always locally effective.
func (s *Store) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx, s.tokens()); err != nil {
		s.logger.Warn("backend logout call failed, resetting session anyway", "error", err)
	}

	if s.intents != nil {
		if err := s.intents.Clear(ctx); err != nil {
			s.logger.Warn("failed to clear redirect intent on logout", "error", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.setStateLocked(State{User: nil, IsLoading: false, IsLoggedIn: false})
}

// collapseIdentityFailure is the single place where distinct failure causes
// (network error, 401, malformed body) become "unauthenticated". Future
// differentiation is a one-place change.
func (s *Store) collapseIdentityFailure(err error) *models.User {
	if errors.Is(err, backend.ErrUnauthorized) {
		metrics.IdentityFetchesTotal.WithLabelValues(metrics.IdentityResultUnauthorized).Inc()
		s.logger.Debug("identity endpoint rejected session", "error", err)
	} else {
		metrics.IdentityFetchesTotal.WithLabelValues(metrics.IdentityResultError).Inc()
		s.logger.Warn("failed to resolve identity, treating as unauthenticated", "error", err)
	}

	return nil
}

func (s *Store) setStateLocked(state State) {
	state.IsLoggedIn = state.User != nil
	s.state = state

	for _, ch := range s.subscribers {
		select {
		case ch <- state:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- state:
			default:
			}
		}
	}
}
