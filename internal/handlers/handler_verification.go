package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"exchange-frontend/internal/backend"
	"exchange-frontend/internal/middlewares"
)

type VerificationRequest struct {
	SchoolEmail string `json:"school_email"`
}

type VerificationConfirm struct {
	Code string `json:"code"`
}

func POSTVerificationRequestHandler(ctx *middlewares.AppContext) {
	var req VerificationRequest
	if err := json.NewDecoder(ctx.Request.Body).Decode(&req); err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "Invalid request body")
		return
	}

	if !strings.Contains(req.SchoolEmail, "@") {
		ctx.SetJSONError(http.StatusBadRequest, "A school email address is required")
		return
	}

	token := ctx.SessionManager.GetBackendToken(ctx)

	err := ctx.Backend.RequestSchoolEmailVerification(ctx.Request.Context(), token, req.SchoolEmail)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			ctx.SetJSONError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
			return
		}

		ctx.Logger.Error("Failed to request school email verification", "error", err)
		ctx.SetJSONError(http.StatusBadGateway, "Verification is temporarily unavailable")
		return
	}

	ctx.Logger.Info("School email verification requested", "school_email", RedactEmail(req.SchoolEmail))
	ctx.SetJSONStatus(http.StatusAccepted, "verification_sent")
}

func POSTVerificationConfirmHandler(ctx *middlewares.AppContext) {
	var req VerificationConfirm
	if err := json.NewDecoder(ctx.Request.Body).Decode(&req); err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Code == "" {
		ctx.SetJSONError(http.StatusBadRequest, "A verification code is required")
		return
	}

	token := ctx.SessionManager.GetBackendToken(ctx)

	user, err := ctx.Backend.ConfirmSchoolEmailVerification(ctx.Request.Context(), token, req.Code)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			ctx.SetJSONError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
			return
		}
		if errors.Is(err, backend.ErrNotFound) {
			ctx.SetJSONError(http.StatusBadRequest, "Invalid or expired verification code")
			return
		}

		ctx.Logger.Error("Failed to confirm school email verification", "error", err)
		ctx.SetJSONError(http.StatusBadGateway, "Verification is temporarily unavailable")
		return
	}

	// The confirmed user replaces the cached one so the guard sees the new
	// verification flag on the next request.
	ctx.SessionManager.SetUser(ctx, user)

	ctx.Logger.Info("School email verified", "user_id", user.ID, "school_email", RedactEmail(user.SchoolEmail))

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
