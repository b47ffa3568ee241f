package api

import (
	"encoding/json"
	"net/http"

	"skylane/concourse/internal/models/dtos"
)

// Register handles POST /users/register
func (h *Handlers) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		resp, err := h.deps.Svc.Users.Register(r.Context(), req)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, resp)
	}
}

// Login handles POST /users/login
func (h *Handlers) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		resp, err := h.deps.Svc.Users.Login(r.Context(), req)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, resp)
	}
}
