package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"exchange-frontend/internal/backend"
	"exchange-frontend/internal/models"
	"exchange-frontend/internal/testutil"

	"go.uber.org/mock/gomock"
)

func TestLoginHandler_ShouldReturnOKWhenAlreadyAuthenticated(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/api/auth/login")
	defer tc.Finish()

	tc.ExpectSessionIsAuthenticated(true)

	tc.CallHandler(GETLoginHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONField(t, "status", "ok")
}

func TestLoginHandler_ShouldSaveIntentAndReturnRedirect(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/api/auth/login")
	defer tc.Finish()

	tc.WithQueryParam("rd", "/strategy-room/5/applications")

	tc.ExpectSessionIsAuthenticated(false)
	tc.ExpectSessionIntentKey("sess-1")
	tc.MockOAuth.EXPECT().StartLogin(tc.AppContext).Return("https://idp.example.com/authorize?state=abc", nil)

	tc.CallHandler(GETLoginHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONString(t, "status", "redirect_required")
	tc.AssertJSONString(t, "redirect_url", "https://idp.example.com/authorize?state=abc")

	saved, ok := tc.Intents.Read(tc.Request.Context(), "sess-1")
	if !ok {
		t.Fatal("expected redirect intent to be saved")
	}
	if saved != "/strategy-room/5/applications" {
		t.Errorf("expected saved intent %q, got %q", "/strategy-room/5/applications", saved)
	}
}

func TestLoginHandler_ShouldNotOverwriteExistingIntent(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/api/auth/login")
	defer tc.Finish()

	if err := tc.Intents.Save(tc.Request.Context(), "sess-1", "/api/slots/5/applications"); err != nil {
		t.Fatalf("failed to seed intent: %v", err)
	}

	tc.WithHeader("Referer", "/login")

	tc.ExpectSessionIsAuthenticated(false)
	tc.ExpectSessionIntentKey("sess-1")
	tc.MockOAuth.EXPECT().StartLogin(tc.AppContext).Return("https://idp.example.com/authorize", nil)

	tc.CallHandler(GETLoginHandler)

	tc.AssertStatus(t, http.StatusOK)

	saved, ok := tc.Intents.Read(tc.Request.Context(), "sess-1")
	if !ok {
		t.Fatal("expected redirect intent to survive the login entry point")
	}
	if saved != "/api/slots/5/applications" {
		t.Errorf("expected intent %q to be kept, got %q", "/api/slots/5/applications", saved)
	}
}

func TestLoginHandler_ShouldOverrideExistingIntentWithExplicitParam(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/api/auth/login")
	defer tc.Finish()

	if err := tc.Intents.Save(tc.Request.Context(), "sess-1", "/api/slots/5/applications"); err != nil {
		t.Fatalf("failed to seed intent: %v", err)
	}

	tc.WithQueryParam("rd", "/profile")

	tc.ExpectSessionIsAuthenticated(false)
	tc.ExpectSessionIntentKey("sess-1")
	tc.MockOAuth.EXPECT().StartLogin(tc.AppContext).Return("https://idp.example.com/authorize", nil)

	tc.CallHandler(GETLoginHandler)

	tc.AssertStatus(t, http.StatusOK)

	saved, ok := tc.Intents.Read(tc.Request.Context(), "sess-1")
	if !ok {
		t.Fatal("expected redirect intent to be saved")
	}
	if saved != "/profile" {
		t.Errorf("expected explicit rd %q to win, got %q", "/profile", saved)
	}
}

func TestLoginHandler_ShouldFallBackToRefererAndSkipErrorPages(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/api/auth/login")
	defer tc.Finish()

	tc.WithHeader("Referer", "/error?error=auth_failed")

	tc.ExpectSessionIsAuthenticated(false)
	tc.ExpectSessionIntentKey("sess-1")
	tc.MockOAuth.EXPECT().StartLogin(tc.AppContext).Return("https://idp.example.com/authorize", nil)

	tc.CallHandler(GETLoginHandler)

	tc.AssertStatus(t, http.StatusOK)

	saved, ok := tc.Intents.Read(tc.Request.Context(), "sess-1")
	if !ok {
		t.Fatal("expected redirect intent to be saved")
	}
	if saved != "/" {
		t.Errorf("expected error page referer to fall back to %q, got %q", "/", saved)
	}
}

func TestLoginHandler_ShouldReturnServerErrorWhenStartLoginFails(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/api/auth/login")
	defer tc.Finish()

	tc.ExpectSessionIsAuthenticated(false)
	tc.ExpectSessionIntentKey("sess-1")
	tc.MockOAuth.EXPECT().StartLogin(tc.AppContext).Return("", errors.New("issuer unreachable"))

	tc.CallHandler(GETLoginHandler)

	tc.AssertStatus(t, http.StatusInternalServerError)
}

func TestPasswordLoginHandler_ShouldEstablishSessionOnSuccess(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "POST", "/api/auth/login")
	defer tc.Finish()

	body := `{"email":"mina@example.com","password":"hunter2"}`
	tc.WithRequest(httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body)))

	testUser := &models.User{
		ID:        42,
		Email:     "mina@example.com",
		Nickname:  "mina",
		LoginType: models.LoginTypePassword,
	}

	tc.MockBackend.EXPECT().Login(gomock.Any(), "mina@example.com", "hunter2").Return(testUser, "token-xyz", nil)
	tc.MockSession.EXPECT().SetUser(tc.AppContext, testUser)
	tc.MockSession.EXPECT().SetBackendToken(tc.AppContext, "token-xyz")
	tc.ExpectSessionIntentKey("sess-1")

	tc.CallHandler(POSTPasswordLoginHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONString(t, "status", "ok")
	tc.AssertJSONString(t, "redirect_url", "/")
	tc.AssertUser(t, "user", testUser)
}

func TestPasswordLoginHandler_ShouldConsumeSavedIntent(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "POST", "/api/auth/login")
	defer tc.Finish()

	body := `{"email":"mina@example.com","password":"hunter2"}`
	tc.WithRequest(httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body)))

	if err := tc.Intents.Save(tc.Request.Context(), "sess-1", "/strategy-room/5"); err != nil {
		t.Fatalf("failed to seed intent: %v", err)
	}

	testUser := &models.User{ID: 42, Email: "mina@example.com"}

	tc.MockBackend.EXPECT().Login(gomock.Any(), "mina@example.com", "hunter2").Return(testUser, "token-xyz", nil)
	tc.MockSession.EXPECT().SetUser(tc.AppContext, testUser)
	tc.MockSession.EXPECT().SetBackendToken(tc.AppContext, "token-xyz")
	tc.ExpectSessionIntentKey("sess-1")

	tc.CallHandler(POSTPasswordLoginHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONString(t, "redirect_url", "/strategy-room/5")

	if _, ok := tc.Intents.Read(tc.Request.Context(), "sess-1"); ok {
		t.Error("expected intent to be consumed after login")
	}
}

func TestPasswordLoginHandler_ShouldRejectInvalidCredentials(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "POST", "/api/auth/login")
	defer tc.Finish()

	body := `{"email":"mina@example.com","password":"wrong"}`
	tc.WithRequest(httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body)))

	tc.MockBackend.EXPECT().Login(gomock.Any(), "mina@example.com", "wrong").Return(nil, "", backend.ErrUnauthorized)

	tc.CallHandler(POSTPasswordLoginHandler)

	tc.AssertStatus(t, http.StatusUnauthorized)
}

func TestPasswordLoginHandler_ShouldRejectMalformedBody(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "POST", "/api/auth/login")
	defer tc.Finish()

	tc.WithRequest(httptest.NewRequest("POST", "/api/auth/login", strings.NewReader("{not json")))

	tc.CallHandler(POSTPasswordLoginHandler)

	tc.AssertStatus(t, http.StatusBadRequest)
}

func TestPasswordLoginHandler_ShouldRejectMissingFields(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "POST", "/api/auth/login")
	defer tc.Finish()

	tc.WithRequest(httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"mina@example.com"}`)))

	tc.CallHandler(POSTPasswordLoginHandler)

	tc.AssertStatus(t, http.StatusBadRequest)
}

func TestPasswordLoginHandler_ShouldReturnBadGatewayWhenBackendDown(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "POST", "/api/auth/login")
	defer tc.Finish()

	body := `{"email":"mina@example.com","password":"hunter2"}`
	tc.WithRequest(httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body)))

	tc.MockBackend.EXPECT().Login(gomock.Any(), "mina@example.com", "hunter2").Return(nil, "", errors.New("connection refused"))

	tc.CallHandler(POSTPasswordLoginHandler)

	tc.AssertStatus(t, http.StatusBadGateway)
}
