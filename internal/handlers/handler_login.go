package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"exchange-frontend/internal/backend"
	"exchange-frontend/internal/middlewares"
	"exchange-frontend/internal/models"
)

func GETLoginHandler(ctx *middlewares.AppContext) {
	if ctx.SessionManager.IsAuthenticated(ctx) {
		ctx.Logger.Debug("User already authenticated")
		ctx.SetJSONStatus(http.StatusOK, "ok")
		return
	}

	if ctx.OAuthProvider == nil {
		ctx.SetJSONError(http.StatusNotFound, "OAuth login is not configured")
		return
	}

	intentKey := ctx.SessionManager.IntentKey(ctx)

	// The route guard owns the intent slot. An explicit rd overrides it, but
	// an intent already saved by the guard is never clobbered by the Referer,
	// which at this point is usually the login page itself.
	redirectTo := ctx.Request.URL.Query().Get("rd")
	if redirectTo == "" {
		if _, ok := ctx.Intents.Read(ctx.Request.Context(), intentKey); ok {
			ctx.Logger.Debug("Keeping existing redirect intent")
		} else {
			redirectTo = ctx.Request.Header.Get("Referer")
			if redirectTo == "" {
				redirectTo = ctx.Config.OAuth.DefaultLanding
			}
		}
	}

	if redirectTo != "" {
		if strings.Contains(redirectTo, "/error") {
			ctx.Logger.Debug("Referer is error page, redirecting to landing instead", "original_referer", redirectTo)
			redirectTo = ctx.Config.OAuth.DefaultLanding
		}

		if err := ctx.Intents.Save(ctx.Request.Context(), intentKey, redirectTo); err != nil {
			ctx.Logger.Warn("Failed to save redirect intent before login", "error", err)
		}
	}

	authURL, err := ctx.OAuthProvider.StartLogin(ctx)
	if err != nil {
		ctx.Logger.Error("Failed to start login", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	ctx.Logger.Debug("Redirecting to OAuth provider", "url", authURL)

	ctx.WriteJSON(http.StatusOK, map[string]string{
		"status":       "redirect_required",
		"redirect_url": authURL,
	})
}

type PasswordLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Status      string       `json:"status"`
	User        *models.User `json:"user,omitempty"`
	RedirectURL string       `json:"redirect_url,omitempty"`
}

func POSTPasswordLoginHandler(ctx *middlewares.AppContext) {
	var req PasswordLoginRequest
	if err := json.NewDecoder(ctx.Request.Body).Decode(&req); err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		ctx.SetJSONError(http.StatusBadRequest, "Email and password are required")
		return
	}

	user, token, err := ctx.Backend.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			ctx.Logger.Debug("Password login rejected", "email", RedactEmail(req.Email))
			ctx.SetJSONError(http.StatusUnauthorized, "Invalid email or password")
			return
		}

		ctx.Logger.Error("Password login failed", "error", err)
		ctx.SetJSONError(http.StatusBadGateway, "Login is temporarily unavailable")
		return
	}

	ctx.SessionManager.SetUser(ctx, user)
	ctx.SessionManager.SetBackendToken(ctx, token)

	ctx.Logger.Info("User logged in with password", "user_id", user.ID, "email", RedactEmail(user.Email))

	redirectTo, ok := ctx.Intents.Consume(ctx.Request.Context(), ctx.SessionManager.IntentKey(ctx))
	if !ok {
		redirectTo = ctx.Config.OAuth.DefaultLanding
	}

	ctx.WriteJSON(http.StatusOK, LoginResponse{
		Status:      "ok",
		User:        user,
		RedirectURL: redirectTo,
	})
}
