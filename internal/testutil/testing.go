package testutil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"exchange-frontend/internal/config"
	"exchange-frontend/internal/kv"
	"exchange-frontend/internal/middlewares"
	"exchange-frontend/internal/mocks"
	"exchange-frontend/internal/models"
	"exchange-frontend/internal/redirect"

	"go.uber.org/mock/gomock"
)

// TestContext holds everything needed for testing a handler
type TestContext struct {
	AppContext     *middlewares.AppContext
	Request        *http.Request
	Response       *httptest.ResponseRecorder
	MockController *gomock.Controller
	MockBackend    *mocks.MockClient
	MockSession    *mocks.MockSessionProvider
	MockOAuth      *mocks.MockOAuthProvider
	Intents        *redirect.Store
	LogHandler     *TestLogHandler
}

// NewTestContextWithURL creates a complete test setup with sensible defaults.
// Redirect intents are backed by a real in-memory store so tests exercise
// actual save/read/purge behavior rather than mock expectations.
func NewTestContextWithURL(t *testing.T, method, url string) *TestContext {
	cfg := &config.Config{}
	cfg.OAuth.DefaultLanding = config.DefaultOAuthConfig.DefaultLanding
	cfg.OAuth.LoginURL = config.DefaultOAuthConfig.LoginURL
	cfg.OAuth.VerificationURL = config.DefaultOAuthConfig.VerificationURL

	logHandler := NewTestLogHandler()
	logger := slog.New(logHandler)

	ctrl := gomock.NewController(t)

	mockBackend := mocks.NewMockClient(ctrl)
	mockSession := mocks.NewMockSessionProvider(ctrl)
	mockOAuth := mocks.NewMockOAuthProvider(ctrl)

	intents := redirect.NewStore(kv.NewMemoryStore(), 10*time.Minute, logger)

	req := httptest.NewRequest(method, url, nil)
	rr := httptest.NewRecorder()

	appCtx := &middlewares.AppContext{
		Context:        req.Context(),
		Config:         cfg,
		Logger:         logger,
		SessionManager: mockSession,
		OAuthProvider:  mockOAuth,
		Backend:        mockBackend,
		Intents:        intents,
		Request:        req,
		Response:       rr,
	}

	return &TestContext{
		AppContext:     appCtx,
		Request:        req,
		Response:       rr,
		MockController: ctrl,
		MockBackend:    mockBackend,
		MockSession:    mockSession,
		MockOAuth:      mockOAuth,
		Intents:        intents,
		LogHandler:     logHandler,
	}
}

// NewTestContext creates a test setup without a request attached.
func NewTestContext(t *testing.T) *TestContext {
	tc := NewTestContextWithURL(t, "GET", "/")
	tc.Request = nil
	tc.AppContext.Request = nil
	tc.AppContext.Context = context.Background()
	return tc
}

// Finish should be called at the end of tests to clean up mocks
func (tc *TestContext) Finish() {
	if tc.MockController != nil {
		tc.MockController.Finish()
	}
}

// CallHandler executes a handler with the test context
func (tc *TestContext) CallHandler(handler middlewares.AppHandler) {
	handler(tc.AppContext)
}

// AssertStatus checks the HTTP status code
func (tc *TestContext) AssertStatus(t *testing.T, expectedStatus int) {
	if tc.Response.Code != expectedStatus {
		t.Errorf("Expected status %d, got %d", expectedStatus, tc.Response.Code)
	}
}

// AssertContentType checks the content type header
func (tc *TestContext) AssertContentType(t *testing.T, expectedType string) {
	if ct := tc.Response.Header().Get("Content-Type"); ct != expectedType {
		t.Errorf("Expected content type %s, got %s", expectedType, ct)
	}
}

// GetJSONResponse parses the response body as JSON
func (tc *TestContext) GetJSONResponse(t *testing.T) map[string]interface{} {
	var response map[string]interface{}
	if err := json.Unmarshal(tc.Response.Body.Bytes(), &response); err != nil {
		t.Fatalf("Could not parse JSON response: %v", err)
	}
	return response
}

// AssertJSONField checks a specific field in a JSON response
func (tc *TestContext) AssertJSONField(t *testing.T, field string, expected any) {
	response := tc.GetJSONResponse(t)
	if actual, ok := response[field]; !ok || actual != expected {
		t.Errorf("Expected %s to be %v, got %v", field, expected, response[field])
	}
}

func (tc *TestContext) AssertJSONBool(t *testing.T, field string, expected bool) {
	response := tc.GetJSONResponse(t)
	actual, exists := response[field]

	if !exists {
		t.Errorf("Field %s not found in response", field)
		return
	}

	actualBool, ok := actual.(bool)
	if !ok {
		t.Errorf("Expected %s to be a boolean, got %T", field, actual)
		return
	}

	if actualBool != expected {
		t.Errorf("Expected %s to be %v, got %v", field, expected, actualBool)
	}
}

// AssertJSONString checks a specific string field in a JSON response
func (tc *TestContext) AssertJSONString(t *testing.T, field string, expected string) {
	response := tc.GetJSONResponse(t)
	actual, exists := response[field]

	if !exists {
		t.Errorf("Field %s not found in response", field)
		return
	}

	actualString, ok := actual.(string)
	if !ok {
		t.Errorf("Expected %s to be a string, got %T", field, actual)
		return
	}

	if actualString != expected {
		t.Errorf("Expected %s to be %q, got %q", field, expected, actualString)
	}
}

// AssertUser validates a user object in the JSON response by comparing the
// non-zero fields of the expected user.
func (tc *TestContext) AssertUser(t *testing.T, field string, expectedUser *models.User) {
	response := tc.GetJSONResponse(t)
	actual, exists := response[field]

	if !exists {
		t.Errorf("Field %s not found in response", field)
		return
	}

	user, ok := actual.(map[string]interface{})
	if !ok {
		t.Errorf("Expected %s to be a user object, got %T", field, actual)
		return
	}

	userBytes, err := json.Marshal(expectedUser)
	if err != nil {
		t.Errorf("Failed to marshal expected user: %v", err)
		return
	}

	var expectedUserMap map[string]interface{}
	if err := json.Unmarshal(userBytes, &expectedUserMap); err != nil {
		t.Errorf("Failed to unmarshal expected user: %v", err)
		return
	}

	for key, expectedValue := range expectedUserMap {
		if expectedValue == nil || expectedValue == "" {
			continue
		}

		if actualValue, keyExists := user[key]; !keyExists {
			t.Errorf("Expected field %s.%s to exist", field, key)
		} else if actualValue != expectedValue {
			t.Errorf("Expected %s.%s to be %v, got %v", field, key, expectedValue, actualValue)
		}
	}
}

func (tc *TestContext) AssertLogContains(t *testing.T, level slog.Level, message string) {
	if !tc.LogHandler.ContainsMessage(level, message) {
		t.Errorf("Expected to find log entry with level %v containing message: %s", level, message)
	}
}

// WithConfig allows you to override the default config for specific tests
func (tc *TestContext) WithConfig(cfg *config.Config) *TestContext {
	tc.AppContext.Config = cfg
	return tc
}

// WithQueryParam adds a query parameter to the request
func (tc *TestContext) WithQueryParam(key, value string) *TestContext {
	q := tc.Request.URL.Query()
	q.Add(key, value)
	tc.Request.URL.RawQuery = q.Encode()
	return tc
}

// WithHeader adds a header to the request
func (tc *TestContext) WithHeader(key, value string) *TestContext {
	tc.Request.Header.Set(key, value)
	return tc
}

// WithRequest allows you to set a custom request
func (tc *TestContext) WithRequest(req *http.Request) *TestContext {
	tc.Request = req
	tc.AppContext.Request = req
	tc.AppContext.Context = req.Context()
	return tc
}

// ExpectSessionIsAuthenticated sets up an expectation for session.IsAuthenticated()
func (tc *TestContext) ExpectSessionIsAuthenticated(result bool) *gomock.Call {
	return tc.MockSession.EXPECT().IsAuthenticated(tc.AppContext).Return(result)
}

// ExpectSessionGetUser sets up an expectation for session.GetUser()
func (tc *TestContext) ExpectSessionGetUser(user *models.User, ok bool) *gomock.Call {
	return tc.MockSession.EXPECT().GetUser(tc.AppContext).Return(user, ok)
}

// ExpectSessionIntentKey sets up an expectation for session.IntentKey()
func (tc *TestContext) ExpectSessionIntentKey(key string) *gomock.Call {
	return tc.MockSession.EXPECT().IntentKey(tc.AppContext).Return(key)
}

// ExpectSessionBackendToken sets up an expectation for session.GetBackendToken()
func (tc *TestContext) ExpectSessionBackendToken(token string) *gomock.Call {
	return tc.MockSession.EXPECT().GetBackendToken(tc.AppContext).Return(token)
}
