package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"exchange-frontend/internal/backend"
	"exchange-frontend/internal/middlewares"

	"github.com/go-chi/chi/v5"
)

func GETSlotsHandler(ctx *middlewares.AppContext) {
	token := ctx.SessionManager.GetBackendToken(ctx)

	slots, err := ctx.Backend.ExchangeSlots(ctx.Request.Context(), token)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			ctx.SetJSONError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
			return
		}

		ctx.Logger.Error("Failed to fetch exchange slots", "error", err)
		ctx.SetJSONError(http.StatusBadGateway, "Exchange slots are temporarily unavailable")
		return
	}

	ctx.WriteJSON(http.StatusOK, slots)
}

func GETSlotApplicantsHandler(ctx *middlewares.AppContext) {
	slotID, err := strconv.ParseInt(chi.URLParam(ctx.Request, "slotID"), 10, 64)
	if err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "Invalid slot id")
		return
	}

	token := ctx.SessionManager.GetBackendToken(ctx)

	slot, err := ctx.Backend.SlotApplicants(ctx.Request.Context(), token, slotID)
	if err != nil {
		switch {
		case errors.Is(err, backend.ErrUnauthorized):
			ctx.SetJSONError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		case errors.Is(err, backend.ErrNotFound):
			ctx.SetJSONError(http.StatusNotFound, "Slot not found")
		default:
			ctx.Logger.Error("Failed to fetch slot applicants", "error", err, "slot_id", slotID)
			ctx.SetJSONError(http.StatusBadGateway, "Applicant data is temporarily unavailable")
		}
		return
	}

	ctx.WriteJSON(http.StatusOK, slot)
}
