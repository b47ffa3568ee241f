package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"skylane/concourse/internal/auth"
	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/models/dtos"
)

// CreateBooking handles POST /bookings — opens a hold.
func (h *Handlers) CreateBooking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.CreateBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		claims := auth.GetUserClaims(r.Context())
		// Customers always book for themselves; staff may book on behalf.
		if claims.Role == constants.RoleCustomer {
			req.UserID = claims.UserID
		} else if req.UserID == 0 {
			req.UserID = claims.UserID
		}

		booking, err := h.deps.Svc.Bookings.CreateHold(r.Context(), req)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, booking)
	}
}

// PayBooking handles POST /bookings/pay — settles a hold.
func (h *Handlers) PayBooking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.PaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		if req.BookingReference == "" {
			respondWithError(w, http.StatusBadRequest, "booking_reference is required")
			return
		}

		booking, err := h.deps.Svc.Bookings.Pay(r.Context(), req)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, booking)
	}
}

// GetBooking handles GET /bookings/{pnr}
func (h *Handlers) GetBooking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		booking, err := h.deps.Svc.Bookings.GetByPNR(r.Context(), chi.URLParam(r, "pnr"), claims.UserID, claims.Role)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, booking)
	}
}

// CancelBooking handles DELETE /bookings/{pnr}
func (h *Handlers) CancelBooking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		booking, err := h.deps.Svc.Bookings.Cancel(r.Context(), chi.URLParam(r, "pnr"), claims.UserID, claims.Role)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, booking)
	}
}

// PNRStatus handles GET /public/pnr/{pnr} — the redacted public view.
func (h *Handlers) PNRStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := h.deps.Svc.Bookings.StatusByPNR(r.Context(), chi.URLParam(r, "pnr"))
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, view)
	}
}

// IssueReceipt handles GET /bookings/{pnr}/receipt. The response is the
// rendered document itself, not the JSON envelope.
func (h *Handlers) IssueReceipt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		pnr := chi.URLParam(r, "pnr")

		// Ownership check rides on the booking lookup.
		if _, err := h.deps.Svc.Bookings.GetByPNR(r.Context(), pnr, claims.UserID, claims.Role); err != nil {
			respondWithAppError(w, err)
			return
		}

		body, contentType, err := h.deps.Svc.Receipts.Render(r.Context(), pnr)
		if err != nil {
			respondWithAppError(w, err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

// GetPayment handles GET /payments/{transaction_id}
func (h *Handlers) GetPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := h.deps.Svc.Bookings.PaymentByTransaction(r.Context(), chi.URLParam(r, "transaction_id"))
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, info)
	}
}
