package routes

import (
	"github.com/go-chi/chi/v5"

	"skylane/concourse/internal/api"
	"skylane/concourse/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers.
// This keeps API route registration separate from the main router setup.
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, deps *api.Dependencies) {

	r.Route("/api/v1", func(v1 chi.Router) {

		// Public routes: search, flight detail, the feed stub, PNR
		// status lookup, and auth.
		v1.Get("/flights/search", handlers.SearchFlights())
		v1.Get("/flights/{id}", handlers.GetFlight())
		v1.Get("/feed/{airline}", handlers.AirlineFeed())
		v1.Get("/public/pnr/{pnr}", handlers.PNRStatus())
		v1.Post("/users/register", handlers.Register())
		v1.Post("/users/login", handlers.Login())

		// Authenticated routes
		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.AuthMiddleware(deps.Cfg.JWTSecret))

			authed.Post("/bookings", handlers.CreateBooking())
			authed.Post("/bookings/pay", handlers.PayBooking())
			authed.Get("/bookings/{pnr}", handlers.GetBooking())
			authed.Delete("/bookings/{pnr}", handlers.CancelBooking())
			authed.Get("/bookings/{pnr}/receipt", handlers.IssueReceipt())
			authed.Get("/payments/{transaction_id}", handlers.GetPayment())

			// Airline staff group
			authed.Group(func(staff chi.Router) {
				staff.Use(middleware.IsStaffMiddleware())
				staff.Patch("/staff/flights/{id}/status", handlers.UpdateFlightStatus())
			})

			// Airport authority group
			authed.Group(func(airport chi.Router) {
				airport.Use(middleware.IsAirportAuthorityMiddleware())
				airport.Patch("/airport/flights/{id}/gate", handlers.AssignGate())
			})
		})
	})
}
