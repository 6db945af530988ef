// Package guard decides whether a protected area may render for the current
// session. The decision is a pure function of the session snapshot and a
// verification predicate; the Guard type adds the side effects around it
// (persisting redirect intent, naming the handoff target).
package guard

import (
	"context"
	"log/slog"

	"exchange-frontend/internal/metrics"
	"exchange-frontend/internal/models"
	"exchange-frontend/internal/redirect"
	"exchange-frontend/internal/session"
)

type Decision int

const (
	// Unresolved: identity fetch still in flight. Hold, decide nothing.
	Unresolved Decision = iota
	// Unauthenticated: resolved, no user. Save intent, hand off to login.
	Unauthenticated
	// Unverified: logged in but the verification predicate fails. Save
	// intent, hand off to verification.
	Unverified
	// Authorized: render the protected content.
	Authorized
)

func (d Decision) String() string {
	switch d {
	case Unresolved:
		return "unresolved"
	case Unauthenticated:
		return "unauthenticated"
	case Unverified:
		return "unverified"
	case Authorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Predicate is the secondary check a logged-in user must pass.
type Predicate func(user *models.User) bool

// VerifiedSchoolEmail gates the application wizard and strategy room.
func VerifiedSchoolEmail(user *models.User) bool {
	return user != nil && user.VerifiedSchoolEmail
}

// Evaluate maps a session snapshot to a decision. A failed identity fetch has
// already been collapsed to the logged-out state by the session store, so it
// deterministically lands on Unauthenticated here; there is no error state.
func Evaluate(state session.State, verified Predicate) Decision {
	switch {
	case state.IsLoading:
		return Unresolved
	case !state.IsLoggedIn:
		return Unauthenticated
	case verified != nil && !verified(state.User):
		return Unverified
	default:
		return Authorized
	}
}

// Targets are the opaque navigation destinations the guard hands off to.
type Targets struct {
	Login        string
	Verification string
}

type Guard struct {
	store    *session.Store
	intents  *redirect.Slot
	verified Predicate
	targets  Targets
	logger   *slog.Logger
}

func New(store *session.Store, intents *redirect.Slot, verified Predicate, targets Targets, logger *slog.Logger) *Guard {
	return &Guard{
		store:    store,
		intents:  intents,
		verified: verified,
		targets:  targets,
		logger:   logger,
	}
}

// Check evaluates the current session state for a protected area at
// currentURL. For the two handoff decisions it saves the current location to
// the redirect intent slot and returns the destination; Unresolved and
// Authorized return no destination. Check is re-run whenever session state
// changes; it performs no retries and holds in Unresolved for as long as the
// identity fetch stays unresolved.
func (g *Guard) Check(ctx context.Context, currentURL string) (Decision, string) {
	decision := Evaluate(g.store.State(), g.verified)
	metrics.GuardDecisionsTotal.WithLabelValues(decision.String()).Inc()

	switch decision {
	case Unauthenticated:
		g.saveIntent(ctx, currentURL)
		return decision, g.targets.Login
	case Unverified:
		g.saveIntent(ctx, currentURL)
		return decision, g.targets.Verification
	default:
		return decision, ""
	}
}

func (g *Guard) saveIntent(ctx context.Context, currentURL string) {
	if g.intents == nil || currentURL == "" {
		return
	}

	if err := g.intents.Save(ctx, currentURL); err != nil {
		g.logger.Warn("failed to save redirect intent", "error", err, "url", currentURL)
	}
}
