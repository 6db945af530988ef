package handlers

import (
	"net/http"

	"exchange-frontend/internal/middlewares"
	"exchange-frontend/internal/models"
)

type AuthStatusResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *models.User `json:"user,omitempty"`
}

func GETAuthStatusHandler(ctx *middlewares.AppContext) {
	state := middlewares.ResolveSessionState(ctx)

	if !state.IsLoggedIn {
		ctx.WriteJSON(http.StatusUnauthorized, AuthStatusResponse{Authenticated: false})
		return
	}

	ctx.WriteJSON(http.StatusOK, AuthStatusResponse{
		Authenticated: true,
		User:          state.User,
	})
}
