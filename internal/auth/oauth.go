package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"

	"exchange-frontend/internal/config"
	"exchange-frontend/internal/middlewares"
	"exchange-frontend/internal/models"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// NewOAuthProvider creates the real OAuth provider against the configured
// issuer.
func NewOAuthProvider(ctx context.Context, cfg config.OAuthConfig) (middlewares.OAuthProvider, error) {
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	oauth2Config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     provider.Endpoint(),
		Scopes:       cfg.Scopes,
		RedirectURL:  cfg.RedirectURI,
	}

	return &RealOAuthProvider{
		provider:     provider,
		oauth2Config: oauth2Config,
	}, nil
}

type RealOAuthProvider struct {
	provider     *oidc.Provider
	oauth2Config *oauth2.Config
}

func (r *RealOAuthProvider) generateRandString(bytes int) string {
	if bytes <= 0 {
		bytes = 32
	}

	b := make([]byte, bytes)
	_, _ = rand.Read(b)

	return base64.URLEncoding.EncodeToString(b)
}

func (r *RealOAuthProvider) generateCodeVerifier() (string, string) {
	b := make([]byte, 56)
	_, _ = rand.Read(b)

	codeVerifier := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b)
	hash := sha256.Sum256([]byte(codeVerifier))
	codeChallenge := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(hash[:])
	return codeVerifier, codeChallenge
}

func (r *RealOAuthProvider) StartLogin(ctx *middlewares.AppContext) (string, error) {
	state := r.generateRandString(32)
	nonce := r.generateRandString(32)
	codeVerifier, codeChallenge := r.generateCodeVerifier()

	ctx.SessionManager.SetOauthNonce(ctx, nonce)
	ctx.SessionManager.SetOauthState(ctx, state)
	ctx.SessionManager.SetOauthCodeVerifier(ctx, codeVerifier)

	authURL := r.oauth2Config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("nonce", nonce),
		oauth2.SetAuthURLParam("response_type", "code"),
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)

	return authURL, nil
}

func (r *RealOAuthProvider) HandleCallback(ctx *middlewares.AppContext) (*models.User, string, error) {
	if errorParam := ctx.Request.URL.Query().Get("error"); errorParam != "" {
		errorDescription := ctx.Request.URL.Query().Get("error_description")

		errorURL := "/error?error=" + url.QueryEscape(errorParam)
		if errorDescription != "" {
			errorURL += "&error_description=" + url.QueryEscape(errorDescription)
		}

		return nil, "", &OAuthError{RedirectURL: errorURL, Message: errorParam}
	}

	storedState := ctx.SessionManager.GetOauthState(ctx)
	if storedState == "" {
		return nil, "", &OAuthError{
			RedirectURL: "/error?error=invalid_request&error_description=" + url.QueryEscape("No oauth state found in session"),
			Message:     "no oauth state found in session",
		}
	}

	receivedState := ctx.Request.URL.Query().Get("state")
	if receivedState != storedState {
		return nil, "", &OAuthError{
			RedirectURL: "/error?error=invalid_request&error_description=" + url.QueryEscape("Invalid state parameter"),
			Message:     "invalid state parameter",
		}
	}

	ctx.SessionManager.ClearOauthState(ctx)

	code := ctx.Request.URL.Query().Get("code")
	if code == "" {
		return nil, "", &OAuthError{
			RedirectURL: "/error?error=invalid_request&error_description=" + url.QueryEscape("No authorization code received"),
			Message:     "no authorization code received",
		}
	}

	verifierCode := ctx.SessionManager.GetOauthCodeVerifier(ctx)
	ctx.SessionManager.ClearOauthCodeVerifier(ctx)

	token, err := r.oauth2Config.Exchange(ctx.Request.Context(), code, oauth2.VerifierOption(verifierCode))
	if err != nil {
		return nil, "", &OAuthError{
			RedirectURL: "/error?error=invalid_grant&error_description=" + url.QueryEscape("Failed to exchange code for token"),
			Message:     fmt.Sprintf("failed to exchange code for token: %v", err),
		}
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, "", &OAuthError{
			RedirectURL: "/error?error=invalid_token&error_description=" + url.QueryEscape("No id_token found in oauth2 token"),
			Message:     "no id_token found in oauth2 token",
		}
	}

	verifier := r.provider.Verifier(&oidc.Config{ClientID: r.oauth2Config.ClientID})

	idToken, err := verifier.Verify(ctx.Request.Context(), rawIDToken)
	if err != nil {
		return nil, "", &OAuthError{
			RedirectURL: "/error?error=invalid_token&error_description=" + url.QueryEscape("Failed to verify ID Token"),
			Message:     fmt.Sprintf("failed to verify ID Token: %v", err),
		}
	}

	user, nonce, err := extractUserClaims(idToken)
	if err != nil {
		return nil, "", &OAuthError{
			RedirectURL: "/error?error=server_error&error_description=" + url.QueryEscape("Failed to extract user from ID Token"),
			Message:     fmt.Sprintf("failed to extract user from ID Token: %v", err),
		}
	}

	if nonce != ctx.SessionManager.GetOauthNonce(ctx) {
		return nil, "", &OAuthError{
			RedirectURL: "/error?error=server_error&error_description=" + url.QueryEscape("Invalid Nonce"),
			Message:     "nonce in ID Token is invalid",
		}
	}

	ctx.SessionManager.ClearOauthNonce(ctx)

	return user, token.AccessToken, nil
}
