package handlers

import (
	"net/http"

	"exchange-frontend/internal/middlewares"
)

// POSTLogoutHandler always leaves the caller logged out locally. The backend
// revocation is best effort: a failure there must not keep the session alive.
func POSTLogoutHandler(ctx *middlewares.AppContext) {
	logger := ctx.Logger

	user, _ := ctx.SessionManager.GetUser(ctx)

	if token := ctx.SessionManager.GetBackendToken(ctx); token != "" {
		if err := ctx.Backend.Logout(ctx.Request.Context(), token); err != nil {
			logger.Warn("Backend logout failed, continuing with local logout", "error", err)
		}
	}

	if err := ctx.Intents.Clear(ctx.Request.Context(), ctx.SessionManager.IntentKey(ctx)); err != nil {
		logger.Warn("Failed to clear redirect intent on logout", "error", err)
	}

	if err := ctx.SessionManager.Destroy(ctx); err != nil {
		// The session store may be down, but the caller still ends up
		// logged out: drop the user and the revoked token from the session
		// data before reporting the failure.
		logger.Error("Failed to destroy session, clearing session state instead", "error", err)
		ctx.SessionManager.ClearUser(ctx)
		ctx.SessionManager.SetBackendToken(ctx, "")
		ctx.SetJSONError(http.StatusInternalServerError, "Failed to logout")
		return
	}

	if user != nil {
		logger.Info("User logged out", "user_id", user.ID, "nickname", user.Nickname)
	}

	ctx.SetJSONStatus(http.StatusOK, "OK")
}
