package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"exchange-frontend/internal/config"
	"exchange-frontend/internal/metrics"
	"exchange-frontend/internal/models"
)

//go:generate mockgen -source=client.go -destination=../mocks/backend.go -package=mocks

var (
	// ErrUnauthorized is returned for 401/403 responses from the platform API.
	ErrUnauthorized = errors.New("backend: unauthorized")
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("backend: not found")
)

// Client is the remote platform API. Business rules (eligibility, scoring,
// slot allocation) live behind it and are opaque here.
type Client interface {
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
	ExchangeSlots(ctx context.Context, token string) ([]models.ExchangeSlot, error)
	SlotApplicants(ctx context.Context, token string, slotID int64) (*models.ExchangeSlot, error)
	RequestSchoolEmailVerification(ctx context.Context, token, schoolEmail string) error
	ConfirmSchoolEmailVerification(ctx context.Context, token, code string) (*models.User, error)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewHTTPClient(cfg config.BackendConfig, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

func (c *HTTPClient) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/v1/auth/me", token, nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", "", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, "", err
	}

	if resp.User == nil {
		return nil, "", fmt.Errorf("backend: login response missing user")
	}

	return resp.User, resp.Token, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/logout", token, nil, nil)
}

func (c *HTTPClient) ExchangeSlots(ctx context.Context, token string) ([]models.ExchangeSlot, error) {
	var slots []models.ExchangeSlot
	if err := c.do(ctx, http.MethodGet, "/v1/slots", token, nil, &slots); err != nil {
		return nil, err
	}

	return models.NormalizeSlots(slots), nil
}

func (c *HTTPClient) SlotApplicants(ctx context.Context, token string, slotID int64) (*models.ExchangeSlot, error) {
	var slot models.ExchangeSlot
	if err := c.do(ctx, http.MethodGet, "/v1/slots/"+strconv.FormatInt(slotID, 10)+"/applications", token, nil, &slot); err != nil {
		return nil, err
	}

	slot.Normalize()

	return &slot, nil
}

type verificationRequest struct {
	SchoolEmail string `json:"school_email,omitempty"`
	Code        string `json:"code,omitempty"`
}

func (c *HTTPClient) RequestSchoolEmailVerification(ctx context.Context, token, schoolEmail string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/school-email/request", token, verificationRequest{SchoolEmail: schoolEmail}, nil)
}

func (c *HTTPClient) ConfirmSchoolEmailVerification(ctx context.Context, token, code string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/v1/auth/school-email/confirm", token, verificationRequest{Code: code}, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// do performs one API round trip. Responses outside 2xx are translated to
// sentinel errors where the caller distinguishes them, otherwise wrapped.
func (c *HTTPClient) do(ctx context.Context, method, endpoint, token string, body any, out any) error {
	start := time.Now()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	metrics.BackendRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("backend returned status %d for %s", resp.StatusCode, endpoint)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}

	return nil
}
