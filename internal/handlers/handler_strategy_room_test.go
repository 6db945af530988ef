package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"exchange-frontend/internal/backend"
	"exchange-frontend/internal/models"
	"exchange-frontend/internal/testutil"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"
)

func withSlotID(tc *testutil.TestContext, method, url, slotID string) {
	req := httptest.NewRequest(method, url, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slotID", slotID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	tc.WithRequest(req)
}

func TestSlotsHandler_ShouldReturnSlots(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/api/slots")
	defer tc.Finish()

	slots := []models.ExchangeSlot{
		{ID: 1, Country: "Germany", Capacity: 3, Semester: "2026-2"},
		{ID: 2, Country: "Japan", Capacity: 2, Semester: "2026-2"},
	}

	tc.ExpectSessionBackendToken("token-xyz")
	tc.MockBackend.EXPECT().ExchangeSlots(gomock.Any(), "token-xyz").Return(slots, nil)

	tc.CallHandler(GETSlotsHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertContentType(t, "application/json")
}

func TestSlotsHandler_ShouldPassThroughUnauthorized(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/api/slots")
	defer tc.Finish()

	tc.ExpectSessionBackendToken("token-stale")
	tc.MockBackend.EXPECT().ExchangeSlots(gomock.Any(), "token-stale").Return(nil, backend.ErrUnauthorized)

	tc.CallHandler(GETSlotsHandler)

	tc.AssertStatus(t, http.StatusUnauthorized)
}

func TestSlotsHandler_ShouldReturnBadGatewayWhenBackendDown(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/api/slots")
	defer tc.Finish()

	tc.ExpectSessionBackendToken("token-xyz")
	tc.MockBackend.EXPECT().ExchangeSlots(gomock.Any(), "token-xyz").Return(nil, errors.New("connection refused"))

	tc.CallHandler(GETSlotsHandler)

	tc.AssertStatus(t, http.StatusBadGateway)
}

func TestSlotApplicantsHandler_ShouldReturnSlotWithApplicants(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/api/slots/5/applications")
	defer tc.Finish()

	withSlotID(tc, "GET", "/api/slots/5/applications", "5")

	gpa := 3.8
	slot := &models.ExchangeSlot{
		ID:      5,
		Country: "Germany",
		Applicants: []models.ApplicantScore{
			{Nickname: "mina", GPA: &gpa, Rank: 1, IsMine: true},
		},
	}

	tc.ExpectSessionBackendToken("token-xyz")
	tc.MockBackend.EXPECT().SlotApplicants(gomock.Any(), "token-xyz", int64(5)).Return(slot, nil)

	tc.CallHandler(GETSlotApplicantsHandler)

	tc.AssertStatus(t, http.StatusOK)
}

func TestSlotApplicantsHandler_ShouldRejectInvalidSlotID(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/api/slots/abc/applications")
	defer tc.Finish()

	withSlotID(tc, "GET", "/api/slots/abc/applications", "abc")

	tc.CallHandler(GETSlotApplicantsHandler)

	tc.AssertStatus(t, http.StatusBadRequest)
}

func TestSlotApplicantsHandler_ShouldReturnNotFoundForUnknownSlot(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/api/slots/999/applications")
	defer tc.Finish()

	withSlotID(tc, "GET", "/api/slots/999/applications", "999")

	tc.ExpectSessionBackendToken("token-xyz")
	tc.MockBackend.EXPECT().SlotApplicants(gomock.Any(), "token-xyz", int64(999)).Return(nil, backend.ErrNotFound)

	tc.CallHandler(GETSlotApplicantsHandler)

	tc.AssertStatus(t, http.StatusNotFound)
}
