// Package memstore is an in-memory store.Store used by tests and by
// local runs without Postgres. WithTx serializes callers on one mutex,
// which models the per-flight row lock conservatively, and restores a
// snapshot of the state when the callback fails, which models rollback.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/models/entities"
	"skylane/concourse/internal/store"
)

type state struct {
	flights     map[int64]*entities.Flight
	seats       map[int64]*entities.Seat
	bookings    map[int64]*entities.Booking
	tickets     map[int64]*entities.Ticket
	payments    map[int64]*entities.Payment
	fareSamples []entities.FareHistorySample
	nextID      int64
}

func newState() *state {
	return &state{
		flights:  make(map[int64]*entities.Flight),
		seats:    make(map[int64]*entities.Seat),
		bookings: make(map[int64]*entities.Booking),
		tickets:  make(map[int64]*entities.Ticket),
		payments: make(map[int64]*entities.Payment),
		nextID:   1,
	}
}

func (s *state) clone() *state {
	c := newState()
	c.nextID = s.nextID
	for id, f := range s.flights {
		fc := *f
		c.flights[id] = &fc
	}
	for id, st := range s.seats {
		sc := *st
		c.seats[id] = &sc
	}
	for id, b := range s.bookings {
		bc := *b
		c.bookings[id] = &bc
	}
	for id, t := range s.tickets {
		tc := *t
		c.tickets[id] = &tc
	}
	for id, p := range s.payments {
		pc := *p
		c.payments[id] = &pc
	}
	c.fareSamples = append([]entities.FareHistorySample(nil), s.fareSamples...)
	return c
}

type MemStore struct {
	mu sync.Mutex
	st *state
}

var _ store.Store = (*MemStore)(nil)

func New() *MemStore {
	return &MemStore{st: newState()}
}

// WithTx holds the store lock for the whole callback. On error the
// pre-transaction snapshot is restored.
func (m *MemStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := m.st.clone()
	if err := fn(&memTx{st: m.st}); err != nil {
		m.st = snapshot
		return err
	}
	return nil
}

/* ---------- seeding and inspection helpers for tests ---------- */

func (m *MemStore) SeedFlight(f entities.Flight) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.ID == 0 {
		f.ID = m.st.nextID
		m.st.nextID++
	} else if f.ID >= m.st.nextID {
		m.st.nextID = f.ID + 1
	}
	m.st.flights[f.ID] = &f
	return f.ID
}

func (m *MemStore) SeedSeat(s entities.Seat) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == 0 {
		s.ID = m.st.nextID
		m.st.nextID++
	} else if s.ID >= m.st.nextID {
		m.st.nextID = s.ID + 1
	}
	m.st.seats[s.ID] = &s
	return s.ID
}

func (m *MemStore) SeatByID(id int64) *entities.Seat {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.st.seats[id]; ok {
		sc := *s
		return &sc
	}
	return nil
}

func (m *MemStore) SeatsByFlight(flightID int64) []entities.Seat {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.Seat
	for _, s := range m.st.seats {
		if s.FlightID == flightID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeatNumber < out[j].SeatNumber })
	return out
}

func (m *MemStore) BookingByID(id int64) *entities.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.st.bookings[id]; ok {
		bc := *b
		return &bc
	}
	return nil
}

func (m *MemStore) FareSamples(flightID int64) []entities.FareHistorySample {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.FareHistorySample
	for _, s := range m.st.fareSamples {
		if s.FlightID == flightID {
			out = append(out, s)
		}
	}
	return out
}

/* ---------- read-side Store methods ---------- */

func (m *MemStore) FlightByID(ctx context.Context, id int64) (*entities.Flight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.st.flights[id]; ok {
		fc := *f
		return &fc, nil
	}
	return nil, nil
}

func (m *MemStore) BookingByPNR(ctx context.Context, pnr string) (*entities.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return findBookingByPNR(m.st, pnr), nil
}

func (m *MemStore) BookingByReference(ctx context.Context, ref string) (*entities.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.st.bookings {
		if b.BookingReference == ref {
			bc := *b
			return &bc, nil
		}
	}
	return nil, nil
}

func (m *MemStore) TicketsByBooking(ctx context.Context, bookingID int64) ([]entities.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ticketsByBooking(m.st, bookingID), nil
}

func (m *MemStore) PaymentByTransactionID(ctx context.Context, transactionID string) (*entities.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.st.payments {
		if p.TransactionID == transactionID {
			pc := *p
			return &pc, nil
		}
	}
	return nil, nil
}

func (m *MemStore) ExpirableBookingIDs(ctx context.Context, now time.Time) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int64
	for _, b := range m.st.bookings {
		if b.Status.Payable() && !b.HoldExpiresAt.After(now) {
			ids = append(ids, b.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *MemStore) SimulatorFlights(ctx context.Context, now time.Time) ([]entities.Flight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.Flight
	for _, f := range m.st.flights {
		if f.DepartureTime.After(now) && f.Status.Bookable() {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

/* ---------- transaction ---------- */

type memTx struct {
	st *state
}

var _ store.Tx = (*memTx)(nil)

func (t *memTx) LockFlight(ctx context.Context, flightID int64) (*entities.Flight, error) {
	if f, ok := t.st.flights[flightID]; ok {
		fc := *f
		return &fc, nil
	}
	return nil, nil
}

func (t *memTx) SeatsByIDsForUpdate(ctx context.Context, flightID int64, seatIDs []int64) ([]entities.Seat, error) {
	var out []entities.Seat
	for _, id := range seatIDs {
		if s, ok := t.st.seats[id]; ok && s.FlightID == flightID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeatNumber < out[j].SeatNumber })
	return out, nil
}

func (t *memTx) AvailableSeatsForUpdate(ctx context.Context, flightID int64, tier constants.CabinTier, limit int) ([]entities.Seat, error) {
	var out []entities.Seat
	for _, s := range t.st.seats {
		if s.FlightID == flightID && s.Class == tier && s.Status == constants.SeatAvailable {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeatNumber < out[j].SeatNumber })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (t *memTx) UpdateSeatStatus(ctx context.Context, seatIDs []int64, status constants.SeatStatus, bookingID *int64) error {
	for _, id := range seatIDs {
		if s, ok := t.st.seats[id]; ok {
			s.Status = status
			if bookingID == nil {
				s.BookingID = nil
			} else {
				v := *bookingID
				s.BookingID = &v
			}
		}
	}
	return nil
}

func (t *memTx) SeatCounts(ctx context.Context, flightID int64) (map[constants.CabinTier]store.SeatCount, error) {
	counts := make(map[constants.CabinTier]store.SeatCount)
	for _, s := range t.st.seats {
		if s.FlightID != flightID {
			continue
		}
		c := counts[s.Class]
		c.Total++
		if s.Status == constants.SeatAvailable {
			c.Available++
		}
		counts[s.Class] = c
	}
	return counts, nil
}

func (t *memTx) InsertBooking(ctx context.Context, b *entities.Booking) error {
	b.ID = t.st.nextID
	t.st.nextID++
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	bc := *b
	t.st.bookings[b.ID] = &bc
	return nil
}

func (t *memTx) BookingByReferenceForUpdate(ctx context.Context, ref string) (*entities.Booking, error) {
	for _, b := range t.st.bookings {
		if b.BookingReference == ref {
			bc := *b
			return &bc, nil
		}
	}
	return nil, nil
}

func (t *memTx) BookingByPNRForUpdate(ctx context.Context, pnr string) (*entities.Booking, error) {
	return findBookingByPNR(t.st, pnr), nil
}

func (t *memTx) BookingByIDForUpdate(ctx context.Context, id int64) (*entities.Booking, error) {
	if b, ok := t.st.bookings[id]; ok {
		bc := *b
		return &bc, nil
	}
	return nil, nil
}

func (t *memTx) UpdateBooking(ctx context.Context, b *entities.Booking) error {
	existing, ok := t.st.bookings[b.ID]
	if !ok {
		return nil
	}
	b.UpdatedAt = time.Now().UTC()
	b.CreatedAt = existing.CreatedAt
	bc := *b
	t.st.bookings[b.ID] = &bc
	return nil
}

func (t *memTx) SeatIDsByBooking(ctx context.Context, bookingID int64) ([]int64, error) {
	type pair struct {
		id  int64
		num string
	}
	var pairs []pair
	for _, s := range t.st.seats {
		if s.BookingID != nil && *s.BookingID == bookingID {
			pairs = append(pairs, pair{s.ID, s.SeatNumber})
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].num < pairs[j].num })
	ids := make([]int64, len(pairs))
	for i, p := range pairs {
		ids[i] = p.id
	}
	return ids, nil
}

func (t *memTx) InsertTickets(ctx context.Context, tickets []entities.Ticket) error {
	for i := range tickets {
		tickets[i].ID = t.st.nextID
		t.st.nextID++
		tc := tickets[i]
		t.st.tickets[tc.ID] = &tc
	}
	return nil
}

func (t *memTx) TicketsByBooking(ctx context.Context, bookingID int64) ([]entities.Ticket, error) {
	return ticketsByBooking(t.st, bookingID), nil
}

func (t *memTx) SetTicketIssued(ctx context.Context, ticketID int64, ticketNumber string, issuedAt time.Time) error {
	if tk, ok := t.st.tickets[ticketID]; ok {
		num := ticketNumber
		at := issuedAt
		tk.TicketNumber = &num
		tk.IssuedAt = &at
	}
	return nil
}

func (t *memTx) InsertPayment(ctx context.Context, p *entities.Payment) error {
	p.ID = t.st.nextID
	t.st.nextID++
	p.CreatedAt = time.Now().UTC()
	pc := *p
	t.st.payments[p.ID] = &pc
	return nil
}

func (t *memTx) PNRInUse(ctx context.Context, pnr string) (bool, error) {
	return findBookingByPNR(t.st, pnr) != nil, nil
}

func (t *memTx) UpdateFlightDemand(ctx context.Context, flightID int64, demandIndex float64) error {
	if f, ok := t.st.flights[flightID]; ok {
		f.DemandIndex = demandIndex
	}
	return nil
}

func (t *memTx) InsertFareSamples(ctx context.Context, samples []entities.FareHistorySample) error {
	for _, s := range samples {
		s.ID = t.st.nextID
		t.st.nextID++
		t.st.fareSamples = append(t.st.fareSamples, s)
	}
	return nil
}

func findBookingByPNR(st *state, pnr string) *entities.Booking {
	for _, b := range st.bookings {
		if b.PNR != nil && *b.PNR == pnr && b.Status != constants.BookingExpired {
			bc := *b
			return &bc
		}
	}
	return nil
}

func ticketsByBooking(st *state, bookingID int64) []entities.Ticket {
	var out []entities.Ticket
	for _, tk := range st.tickets {
		if tk.BookingID == bookingID {
			out = append(out, *tk)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
