package handlers

import (
	"errors"
	"net/http"

	"exchange-frontend/internal/auth"
	"exchange-frontend/internal/middlewares"
)

func GETCallbackHandler(ctx *middlewares.AppContext) {
	if ctx.OAuthProvider == nil {
		ctx.SetJSONError(http.StatusNotFound, "OAuth login is not configured")
		return
	}

	user, token, err := ctx.OAuthProvider.HandleCallback(ctx)
	if err != nil {
		var oauthErr *auth.OAuthError
		if errors.As(err, &oauthErr) {
			ctx.Logger.Warn("OAuth callback failed", "error", oauthErr.Message)
			ctx.Redirect(oauthErr.RedirectURL, http.StatusFound)
			return
		}

		ctx.Logger.Error("Failed to handle OAuth callback", "error", err)
		ctx.Redirect("/error?error=auth_failed", http.StatusFound)
		return
	}

	ctx.SessionManager.SetUser(ctx, user)
	ctx.SessionManager.SetBackendToken(ctx, token)

	ctx.Logger.Info("User successfully authenticated",
		"user_id", user.ID,
		"nickname", user.Nickname,
		"email", RedactEmail(user.Email),
	)

	redirectTo, ok := ctx.Intents.Consume(ctx.Request.Context(), ctx.SessionManager.IntentKey(ctx))
	if !ok {
		redirectTo = ctx.Config.OAuth.DefaultLanding
	}

	ctx.Redirect(redirectTo, http.StatusFound)
}
