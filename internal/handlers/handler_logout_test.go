package handlers

import (
	"errors"
	"net/http"
	"testing"

	"exchange-frontend/internal/models"
	"exchange-frontend/internal/testutil"

	"go.uber.org/mock/gomock"
)

func TestLogoutHandler_ShouldDestroySessionAndClearIntent(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "POST", "/api/auth/logout")
	defer tc.Finish()

	if err := tc.Intents.Save(tc.Request.Context(), "sess-1", "/strategy-room/5"); err != nil {
		t.Fatalf("failed to seed intent: %v", err)
	}

	testUser := &models.User{ID: 42, Nickname: "mina"}

	tc.ExpectSessionGetUser(testUser, true)
	tc.ExpectSessionBackendToken("token-xyz")
	tc.MockBackend.EXPECT().Logout(gomock.Any(), "token-xyz").Return(nil)
	tc.ExpectSessionIntentKey("sess-1")
	tc.MockSession.EXPECT().Destroy(tc.AppContext).Return(nil)

	tc.CallHandler(POSTLogoutHandler)

	tc.AssertStatus(t, http.StatusOK)

	if _, ok := tc.Intents.Read(tc.Request.Context(), "sess-1"); ok {
		t.Error("expected redirect intent to be cleared on logout")
	}
}

func TestLogoutHandler_ShouldSucceedLocallyWhenBackendLogoutFails(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "POST", "/api/auth/logout")
	defer tc.Finish()

	tc.ExpectSessionGetUser(nil, false)
	tc.ExpectSessionBackendToken("token-xyz")
	tc.MockBackend.EXPECT().Logout(gomock.Any(), "token-xyz").Return(errors.New("connection refused"))
	tc.ExpectSessionIntentKey("sess-1")
	tc.MockSession.EXPECT().Destroy(tc.AppContext).Return(nil)

	tc.CallHandler(POSTLogoutHandler)

	tc.AssertStatus(t, http.StatusOK)
}

func TestLogoutHandler_ShouldSkipBackendWithoutToken(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "POST", "/api/auth/logout")
	defer tc.Finish()

	tc.ExpectSessionGetUser(nil, false)
	tc.ExpectSessionBackendToken("")
	tc.ExpectSessionIntentKey("sess-1")
	tc.MockSession.EXPECT().Destroy(tc.AppContext).Return(nil)

	tc.CallHandler(POSTLogoutHandler)

	tc.AssertStatus(t, http.StatusOK)
}

func TestLogoutHandler_ShouldClearSessionStateWhenDestroyFails(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "POST", "/api/auth/logout")
	defer tc.Finish()

	tc.ExpectSessionGetUser(nil, false)
	tc.ExpectSessionBackendToken("")
	tc.ExpectSessionIntentKey("sess-1")
	tc.MockSession.EXPECT().Destroy(tc.AppContext).Return(errors.New("session store unavailable"))
	tc.MockSession.EXPECT().ClearUser(tc.AppContext)
	tc.MockSession.EXPECT().SetBackendToken(tc.AppContext, "")

	tc.CallHandler(POSTLogoutHandler)

	tc.AssertStatus(t, http.StatusInternalServerError)
}
