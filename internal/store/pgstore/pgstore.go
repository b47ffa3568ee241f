// Package pgstore implements the store interfaces on Postgres via sqlx.
// Row locks (SELECT ... FOR UPDATE) serialize booking attempts per
// flight; serialization failures bubble up for the retry combinator.
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/models/entities"
	"skylane/concourse/internal/store"
)

type PgStore struct {
	db *sqlx.DB
}

var _ store.Store = (*PgStore)(nil)

func New(db *sqlx.DB) *PgStore {
	return &PgStore{db: db}
}

// WithTx runs fn inside one database transaction. The transaction is
// rolled back on error or panic, committed otherwise.
func (s *PgStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) (err error) {
	txx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = txx.Rollback()
			panic(p)
		}
	}()

	if err = fn(&pgTx{tx: txx}); err != nil {
		_ = txx.Rollback()
		return err
	}

	if err = txx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *PgStore) FlightByID(ctx context.Context, id int64) (*entities.Flight, error) {
	var f entities.Flight
	err := s.db.GetContext(ctx, &f, constants.FlightByID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *PgStore) BookingByPNR(ctx context.Context, pnr string) (*entities.Booking, error) {
	var b entities.Booking
	err := s.db.GetContext(ctx, &b, constants.BookingByPNR, pnr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *PgStore) BookingByReference(ctx context.Context, ref string) (*entities.Booking, error) {
	var b entities.Booking
	err := s.db.GetContext(ctx, &b, constants.BookingByReference, ref)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *PgStore) TicketsByBooking(ctx context.Context, bookingID int64) ([]entities.Ticket, error) {
	var tickets []entities.Ticket
	if err := s.db.SelectContext(ctx, &tickets, constants.TicketsByBooking, bookingID); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *PgStore) PaymentByTransactionID(ctx context.Context, transactionID string) (*entities.Payment, error) {
	var p entities.Payment
	err := s.db.GetContext(ctx, &p, constants.PaymentByTransactionID, transactionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PgStore) ExpirableBookingIDs(ctx context.Context, now time.Time) ([]int64, error) {
	var ids []int64
	if err := s.db.SelectContext(ctx, &ids, constants.ExpirableBookingIDs, now); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *PgStore) SimulatorFlights(ctx context.Context, now time.Time) ([]entities.Flight, error) {
	var flights []entities.Flight
	if err := s.db.SelectContext(ctx, &flights, constants.SimulatorFlights, now); err != nil {
		return nil, err
	}
	return flights, nil
}

// pgTx adapts one sqlx transaction to store.Tx.
type pgTx struct {
	tx *sqlx.Tx
}

var _ store.Tx = (*pgTx)(nil)

func (t *pgTx) LockFlight(ctx context.Context, flightID int64) (*entities.Flight, error) {
	var f entities.Flight
	err := t.tx.GetContext(ctx, &f, constants.LockFlightByID, flightID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (t *pgTx) SeatsByIDsForUpdate(ctx context.Context, flightID int64, seatIDs []int64) ([]entities.Seat, error) {
	var seats []entities.Seat
	if err := t.tx.SelectContext(ctx, &seats, constants.SeatsByIDsForUpdate, flightID, pq.Array(seatIDs)); err != nil {
		return nil, err
	}
	return seats, nil
}

func (t *pgTx) AvailableSeatsForUpdate(ctx context.Context, flightID int64, tier constants.CabinTier, limit int) ([]entities.Seat, error) {
	var seats []entities.Seat
	if err := t.tx.SelectContext(ctx, &seats, constants.AvailableSeatsForUpdate, flightID, tier, limit); err != nil {
		return nil, err
	}
	return seats, nil
}

func (t *pgTx) UpdateSeatStatus(ctx context.Context, seatIDs []int64, status constants.SeatStatus, bookingID *int64) error {
	_, err := t.tx.ExecContext(ctx, constants.UpdateSeatStatus, status, bookingID, pq.Array(seatIDs))
	return err
}

func (t *pgTx) SeatCounts(ctx context.Context, flightID int64) (map[constants.CabinTier]store.SeatCount, error) {
	rows, err := t.tx.QueryxContext(ctx, constants.SeatTierCounts, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[constants.CabinTier]store.SeatCount)
	for rows.Next() {
		var (
			tier      constants.CabinTier
			available int
			total     int
		)
		if err := rows.Scan(&tier, &available, &total); err != nil {
			return nil, err
		}
		counts[tier] = store.SeatCount{Available: available, Total: total}
	}
	return counts, rows.Err()
}

func (t *pgTx) InsertBooking(ctx context.Context, b *entities.Booking) error {
	return t.tx.QueryRowxContext(ctx, constants.InsertBooking,
		b.BookingReference,
		b.PNR,
		b.UserID,
		b.FlightID,
		b.Tier,
		b.Status,
		b.TotalFare,
		b.PaidAmount,
		b.HoldExpiresAt,
		b.TransactionID,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (t *pgTx) BookingByReferenceForUpdate(ctx context.Context, ref string) (*entities.Booking, error) {
	var b entities.Booking
	err := t.tx.GetContext(ctx, &b, constants.BookingByReferenceForUpdate, ref)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (t *pgTx) BookingByPNRForUpdate(ctx context.Context, pnr string) (*entities.Booking, error) {
	var b entities.Booking
	err := t.tx.GetContext(ctx, &b, constants.BookingByPNRForUpdate, pnr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (t *pgTx) BookingByIDForUpdate(ctx context.Context, id int64) (*entities.Booking, error) {
	var b entities.Booking
	err := t.tx.GetContext(ctx, &b, constants.BookingByIDForUpdate, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (t *pgTx) UpdateBooking(ctx context.Context, b *entities.Booking) error {
	_, err := t.tx.ExecContext(ctx, constants.UpdateBooking,
		b.ID,
		b.PNR,
		b.Status,
		b.TotalFare,
		b.PaidAmount,
		b.HoldExpiresAt,
		b.TransactionID,
	)
	return err
}

func (t *pgTx) SeatIDsByBooking(ctx context.Context, bookingID int64) ([]int64, error) {
	var ids []int64
	if err := t.tx.SelectContext(ctx, &ids, constants.SeatIDsByBooking, bookingID); err != nil {
		return nil, err
	}
	return ids, nil
}

func (t *pgTx) InsertTickets(ctx context.Context, tickets []entities.Ticket) error {
	for i := range tickets {
		tk := &tickets[i]
		err := t.tx.QueryRowxContext(ctx, constants.InsertTicket,
			tk.BookingID,
			tk.FlightID,
			tk.SeatID,
			tk.PassengerName,
			tk.PassengerAge,
			tk.PassengerGender,
			tk.AirlineName,
			tk.FlightNumber,
			tk.Route,
			tk.DepartureAirport,
			tk.ArrivalAirport,
			tk.DepartureCity,
			tk.ArrivalCity,
			tk.DepartureTime,
			tk.ArrivalTime,
			tk.SeatNumber,
			tk.SeatClass,
			tk.PricePaid,
			tk.Currency,
			tk.TicketNumber,
			tk.IssuedAt,
		).Scan(&tk.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *pgTx) TicketsByBooking(ctx context.Context, bookingID int64) ([]entities.Ticket, error) {
	var tickets []entities.Ticket
	if err := t.tx.SelectContext(ctx, &tickets, constants.TicketsByBooking, bookingID); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (t *pgTx) SetTicketIssued(ctx context.Context, ticketID int64, ticketNumber string, issuedAt time.Time) error {
	_, err := t.tx.ExecContext(ctx, constants.SetTicketIssued, ticketID, ticketNumber, issuedAt)
	return err
}

func (t *pgTx) InsertPayment(ctx context.Context, p *entities.Payment) error {
	return t.tx.QueryRowxContext(ctx, constants.InsertPayment,
		p.BookingReference,
		p.Amount,
		p.Method,
		p.Status,
		p.TransactionID,
	).Scan(&p.ID, &p.CreatedAt)
}

func (t *pgTx) PNRInUse(ctx context.Context, pnr string) (bool, error) {
	var exists bool
	if err := t.tx.GetContext(ctx, &exists, constants.PNRInUse, pnr); err != nil {
		return false, err
	}
	return exists, nil
}

func (t *pgTx) UpdateFlightDemand(ctx context.Context, flightID int64, demandIndex float64) error {
	_, err := t.tx.ExecContext(ctx, constants.UpdateFlightDemand, flightID, demandIndex)
	return err
}

func (t *pgTx) InsertFareSamples(ctx context.Context, samples []entities.FareHistorySample) error {
	for _, s := range samples {
		if _, err := t.tx.ExecContext(ctx, constants.InsertFareSample,
			s.FlightID, s.Tier, s.Fare, s.DemandIndex, s.SampledAt); err != nil {
			return err
		}
	}
	return nil
}
