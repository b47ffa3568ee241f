package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skylane/concourse/internal/auth"
	"skylane/concourse/internal/models/dtos"
)

// UpdateFlightStatus handles PATCH /staff/flights/{id}/status
func (h *Handlers) UpdateFlightStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "flight id must be an integer")
			return
		}

		var req dtos.FlightOpsUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		claims := auth.GetUserClaims(r.Context())
		flight, err := h.deps.Svc.FlightOps.UpdateStatus(r.Context(), id, req, claims.Role, claims.AirlineCode)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, flight)
	}
}

// AssignGate handles PATCH /airport/flights/{id}/gate
func (h *Handlers) AssignGate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "flight id must be an integer")
			return
		}

		var req dtos.AssignGateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		claims := auth.GetUserClaims(r.Context())
		flight, err := h.deps.Svc.FlightOps.AssignGate(r.Context(), id, req.Gate, claims.Role)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, flight)
	}
}
