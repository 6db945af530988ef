package guard_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"exchange-frontend/internal/backend"
	"exchange-frontend/internal/guard"
	"exchange-frontend/internal/kv"
	"exchange-frontend/internal/mocks"
	"exchange-frontend/internal/models"
	"exchange-frontend/internal/redirect"
	"exchange-frontend/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEvaluate(t *testing.T) {
	verified := &models.User{ID: 1, VerifiedSchoolEmail: true}
	unverified := &models.User{ID: 2, VerifiedSchoolEmail: false}

	tests := []struct {
		name  string
		state session.State
		want  guard.Decision
	}{
		{
			name:  "loading holds unresolved",
			state: session.State{IsLoading: true},
			want:  guard.Unresolved,
		},
		{
			name:  "loading with stale user still holds",
			state: session.State{User: verified, IsLoggedIn: true, IsLoading: true},
			want:  guard.Unresolved,
		},
		{
			name:  "resolved without user",
			state: session.State{IsLoading: false},
			want:  guard.Unauthenticated,
		},
		{
			name:  "logged in but unverified",
			state: session.State{User: unverified, IsLoggedIn: true},
			want:  guard.Unverified,
		},
		{
			name:  "logged in and verified",
			state: session.State{User: verified, IsLoggedIn: true},
			want:  guard.Authorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, guard.Evaluate(tt.state, guard.VerifiedSchoolEmail))
		})
	}
}

func TestEvaluateWithoutPredicate(t *testing.T) {
	state := session.State{User: &models.User{ID: 1}, IsLoggedIn: true}
	assert.Equal(t, guard.Authorized, guard.Evaluate(state, nil))
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "unresolved", guard.Unresolved.String())
	assert.Equal(t, "unauthenticated", guard.Unauthenticated.String())
	assert.Equal(t, "unverified", guard.Unverified.String())
	assert.Equal(t, "authorized", guard.Authorized.String())
}

type guardFixture struct {
	guard   *guard.Guard
	store   *session.Store
	client  *mocks.MockClient
	intents *redirect.Store
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	intents := redirect.NewStore(kv.NewMemoryStore(), 10*time.Minute, logger)
	slot := intents.Bind("sess-1")

	store := session.NewStore(client, func() string { return "token" }, slot, logger)

	g := guard.New(store, slot, guard.VerifiedSchoolEmail, guard.Targets{
		Login:        "/login",
		Verification: "/verify-school-email",
	}, logger)

	return &guardFixture{guard: g, store: store, client: client, intents: intents}
}

// Scenario: the identity endpoint never responds. The guard holds in
// Unresolved and no redirect intent is saved.
func TestCheckUnresolvedSavesNoIntent(t *testing.T) {
	f := newGuardFixture(t)
	ctx := context.Background()

	decision, target := f.guard.Check(ctx, "/strategy-room/5/applications")

	assert.Equal(t, guard.Unresolved, decision)
	assert.Empty(t, target)

	_, ok := f.intents.Read(ctx, "sess-1")
	assert.False(t, ok)
}

// Scenario: identity endpoint returns 401. The guard saves the current path
// and hands off to login.
func TestCheckUnauthenticatedHandsOffToLogin(t *testing.T) {
	f := newGuardFixture(t)
	ctx := context.Background()

	f.client.EXPECT().CurrentUser(gomock.Any(), "token").Return(nil, backend.ErrUnauthorized)
	f.store.FetchUser(ctx)

	decision, target := f.guard.Check(ctx, "/strategy-room/5/applications")

	assert.Equal(t, guard.Unauthenticated, decision)
	assert.Equal(t, "/login", target)

	url, ok := f.intents.Read(ctx, "sess-1")
	require.True(t, ok)
	assert.Equal(t, "/strategy-room/5/applications", url)
}

// Scenario: logged in without a verified school email. Distinct handoff
// destination from the unauthenticated case.
func TestCheckUnverifiedHandsOffToVerification(t *testing.T) {
	f := newGuardFixture(t)
	ctx := context.Background()

	f.store.SetUser(&models.User{ID: 42, VerifiedSchoolEmail: false})

	decision, target := f.guard.Check(ctx, "/strategy-room/5/applications")

	assert.Equal(t, guard.Unverified, decision)
	assert.Equal(t, "/verify-school-email", target)

	url, ok := f.intents.Read(ctx, "sess-1")
	require.True(t, ok)
	assert.Equal(t, "/strategy-room/5/applications", url)
}

func TestCheckAuthorized(t *testing.T) {
	f := newGuardFixture(t)
	ctx := context.Background()

	f.store.SetUser(&models.User{ID: 42, VerifiedSchoolEmail: true})

	decision, target := f.guard.Check(ctx, "/strategy-room/5/applications")

	assert.Equal(t, guard.Authorized, decision)
	assert.Empty(t, target)

	_, ok := f.intents.Read(ctx, "sess-1")
	assert.False(t, ok, "authorized access saves no intent")
}

// A failed fetch is a valid terminal decision, not an error state: the guard
// re-evaluated after resolution lands on Unauthenticated.
func TestCheckAfterFailedFetchIsDeterministic(t *testing.T) {
	f := newGuardFixture(t)
	ctx := context.Background()

	decision, _ := f.guard.Check(ctx, "/apply")
	assert.Equal(t, guard.Unresolved, decision)

	f.client.EXPECT().CurrentUser(gomock.Any(), "token").Return(nil, backend.ErrUnauthorized)
	f.store.FetchUser(ctx)

	decision, target := f.guard.Check(ctx, "/apply")
	assert.Equal(t, guard.Unauthenticated, decision)
	assert.Equal(t, "/login", target)
}

func TestCheckReactsToSubscription(t *testing.T) {
	f := newGuardFixture(t)
	ctx := context.Background()

	updates := f.store.Subscribe()

	f.client.EXPECT().CurrentUser(gomock.Any(), "token").
		Return(&models.User{ID: 42, VerifiedSchoolEmail: true}, nil)

	go f.store.FetchUser(ctx)

	select {
	case <-updates:
	case <-time.After(time.Second):
		t.Fatal("no state change delivered")
	}

	// wait for the final (resolved) state if the first update was the
	// loading transition
	deadline := time.After(time.Second)
	for {
		decision, _ := f.guard.Check(ctx, "/apply")
		if decision == guard.Authorized {
			return
		}
		select {
		case <-updates:
		case <-deadline:
			t.Fatalf("guard never reached Authorized, last decision %v", decision)
		}
	}
}
