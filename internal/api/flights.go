package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/services"
)

// SearchFlights handles GET /flights/search
func (h *Handlers) SearchFlights() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		params := services.SearchParams{
			Origin:      q.Get("origin"),
			Destination: q.Get("destination"),
			Passengers:  1,
			SortBy:      services.SortKey(q.Get("sort")),
		}

		if params.Origin == "" || params.Destination == "" {
			respondWithError(w, http.StatusBadRequest, "origin and destination are required")
			return
		}

		if v := q.Get("passengers"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "passengers must be an integer")
				return
			}
			params.Passengers = n
		}
		if v := q.Get("date"); v != "" {
			day, err := time.Parse("2006-01-02", v)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
				return
			}
			params.Date = &day
		}
		if v := q.Get("tier"); v != "" {
			tier, ok := constants.ParseTier(v)
			if !ok {
				respondWithError(w, http.StatusBadRequest, "unknown tier")
				return
			}
			params.Tier = &tier
		}
		params.Page, _ = strconv.Atoi(q.Get("page"))
		params.PageSize, _ = strconv.Atoi(q.Get("page_size"))

		result, err := h.deps.Svc.Search.Search(r.Context(), params)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, result)
	}
}

// GetFlight handles GET /flights/{id}
func (h *Handlers) GetFlight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "flight id must be an integer")
			return
		}

		summary, err := h.deps.Svc.Search.Summary(r.Context(), id)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, summary)
	}
}

// AirlineFeed handles GET /feed/{airline} — the synthetic schedule feed.
func (h *Handlers) AirlineFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		feed, err := h.deps.Svc.Feed.Schedule(r.Context(), chi.URLParam(r, "airline"))
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, feed)
	}
}
