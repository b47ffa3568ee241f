// Package store defines the transactional boundary of the reservation
// core. The postgres implementation (pgstore) backs production; the
// in-memory implementation (memstore) backs tests and local runs without
// a database.
package store

import (
	"context"
	"time"

	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/models/entities"
)

// SeatCount pairs remaining and total seats for one tier of one flight.
type SeatCount struct {
	Available int
	Total     int
}

// Tx is the set of operations available inside one transaction. Lock
// order is fixed: Flight row first, then its Seats in ascending
// seat_number. Lookups return (nil, nil) when the row does not exist.
type Tx interface {
	// LockFlight takes the exclusive flight row lock that serializes
	// booking attempts and demand updates on the same flight.
	LockFlight(ctx context.Context, flightID int64) (*entities.Flight, error)

	// SeatsByIDsForUpdate locks the given seats. Seats not belonging to
	// the flight are simply absent from the result.
	SeatsByIDsForUpdate(ctx context.Context, flightID int64, seatIDs []int64) ([]entities.Seat, error)

	// AvailableSeatsForUpdate locks up to limit Available seats of the
	// tier, in ascending seat_number order.
	AvailableSeatsForUpdate(ctx context.Context, flightID int64, tier constants.CabinTier, limit int) ([]entities.Seat, error)

	// UpdateSeatStatus moves the given seats to status, linking or
	// clearing their booking reference.
	UpdateSeatStatus(ctx context.Context, seatIDs []int64, status constants.SeatStatus, bookingID *int64) error

	// SeatCounts returns per-tier availability for the flight.
	SeatCounts(ctx context.Context, flightID int64) (map[constants.CabinTier]SeatCount, error)

	InsertBooking(ctx context.Context, b *entities.Booking) error
	BookingByReferenceForUpdate(ctx context.Context, ref string) (*entities.Booking, error)
	BookingByPNRForUpdate(ctx context.Context, pnr string) (*entities.Booking, error)
	BookingByIDForUpdate(ctx context.Context, id int64) (*entities.Booking, error)
	UpdateBooking(ctx context.Context, b *entities.Booking) error

	SeatIDsByBooking(ctx context.Context, bookingID int64) ([]int64, error)

	InsertTickets(ctx context.Context, tickets []entities.Ticket) error
	TicketsByBooking(ctx context.Context, bookingID int64) ([]entities.Ticket, error)
	SetTicketIssued(ctx context.Context, ticketID int64, ticketNumber string, issuedAt time.Time) error

	InsertPayment(ctx context.Context, p *entities.Payment) error

	// PNRInUse reports whether a not-Expired booking already carries pnr.
	PNRInUse(ctx context.Context, pnr string) (bool, error)

	UpdateFlightDemand(ctx context.Context, flightID int64, demandIndex float64) error
	InsertFareSamples(ctx context.Context, samples []entities.FareHistorySample) error
}

// Store opens transactions and serves the read paths that must not hold
// locks (reaper scans, booking lookups, the simulator's flight list).
type Store interface {
	// WithTx runs fn in one transaction, committing iff fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	FlightByID(ctx context.Context, id int64) (*entities.Flight, error)
	BookingByPNR(ctx context.Context, pnr string) (*entities.Booking, error)
	BookingByReference(ctx context.Context, ref string) (*entities.Booking, error)
	TicketsByBooking(ctx context.Context, bookingID int64) ([]entities.Ticket, error)
	PaymentByTransactionID(ctx context.Context, transactionID string) (*entities.Payment, error)

	// ExpirableBookingIDs lists Held/PendingPayment bookings whose hold
	// expired at or before now.
	ExpirableBookingIDs(ctx context.Context, now time.Time) ([]int64, error)

	// SimulatorFlights lists flights the demand simulator should touch:
	// departing after now and not Cancelled/Departed/Landed.
	SimulatorFlights(ctx context.Context, now time.Time) ([]entities.Flight, error)
}
