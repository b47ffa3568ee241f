package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skylane/concourse/internal/common"
	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/models/dtos"
	"skylane/concourse/internal/models/entities"
	gormModels "skylane/concourse/internal/models/gorm"
	"skylane/concourse/internal/store"
	"skylane/concourse/internal/store/memstore"
)

// stubCatalog keeps booking tests off the catalog database.
type stubCatalog struct{}

func (stubCatalog) Airport(ctx context.Context, code string) (*gormModels.Airport, error) {
	cities := map[string]string{"DEL": "New Delhi", "BOM": "Mumbai"}
	return &gormModels.Airport{Code: code, Name: code + " Airport", City: cities[code]}, nil
}

func (stubCatalog) AirlineName(ctx context.Context, code string) (string, error) {
	return "IndiGo", nil
}

// stubGateway approves or refuses every charge.
type stubGateway struct {
	approve bool
	calls   int
}

func (g *stubGateway) Charge(ctx context.Context, ref string, amount float64, method constants.PaymentMethod) (string, bool, error) {
	g.calls++
	return fmt.Sprintf("tx-%d", g.calls), g.approve, nil
}

func testClock() time.Time {
	return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
}

// seedEconomyFlight creates flight 6E123 DEL->BOM departing in 72h with
// the given number of Available economy seats at base fare 5000.
func seedEconomyFlight(ms *memstore.MemStore, seats int) int64 {
	flightID := ms.SeedFlight(entities.Flight{
		FlightNumber:    "6E123",
		ScheduledDate:   "2026-03-04",
		AirlineCode:     "6E",
		OriginCode:      "DEL",
		DestinationCode: "BOM",
		AircraftID:      1,
		DepartureTime:   testClock().Add(72 * time.Hour),
		ArrivalTime:     testClock().Add(74 * time.Hour),
		BaseFares:       constants.FareMap{constants.TierEconomy: 5000},
		DemandIndex:     10,
		Status:          constants.FlightScheduled,
	})
	for i := 0; i < seats; i++ {
		ms.SeedSeat(entities.Seat{
			FlightID:   flightID,
			SeatNumber: fmt.Sprintf("1%c", 'A'+i),
			Class:      constants.TierEconomy,
			Position:   constants.PositionWindow,
			Status:     constants.SeatAvailable,
		})
	}
	return flightID
}

func newTestBookingService(ms *memstore.MemStore, gateway PaymentGateway) *BookingService {
	svc := NewBookingService(ms, stubCatalog{}, gateway, nil, nil, BookingConfig{
		HoldTTL:             15 * time.Minute,
		PriceDriftTolerance: 0.01,
	})
	svc.SetClock(testClock)
	return svc
}

func holdRequest(flightID int64, passengers int) dtos.CreateBookingRequest {
	req := dtos.CreateBookingRequest{
		UserID:   7,
		FlightID: flightID,
		Tier:     "economy",
	}
	for i := 0; i < passengers; i++ {
		req.Passengers = append(req.Passengers, dtos.PassengerInput{
			Name: fmt.Sprintf("Passenger %d", i+1), Age: 30, Gender: "F",
		})
	}
	return req
}

func TestHappyPath_HoldPayConfirm(t *testing.T) {
	ms := memstore.New()
	flightID := seedEconomyFlight(ms, 3)
	svc := newTestBookingService(ms, &stubGateway{approve: true})
	ctx := context.Background()

	hold, err := svc.CreateHold(ctx, holdRequest(flightID, 1))
	require.NoError(t, err)
	assert.Equal(t, constants.BookingHeld, hold.Status)
	// 72h out, empty cabin, demand 10: only the time factor applies.
	assert.Equal(t, 5750.0, hold.TotalFare)
	assert.Nil(t, hold.PNR)
	require.Len(t, hold.Tickets, 1)
	assert.Equal(t, "1A", hold.Tickets[0].SeatNumber)
	assert.Nil(t, hold.Tickets[0].TicketNumber)

	paid, err := svc.Pay(ctx, dtos.PaymentRequest{
		BookingReference: hold.BookingReference,
		Amount:           hold.TotalFare,
		Method:           "Card",
	})
	require.NoError(t, err)
	assert.Equal(t, constants.BookingConfirmed, paid.Status)
	assert.Equal(t, hold.TotalFare, paid.PaidAmount)
	require.NotNil(t, paid.PNR)
	assert.Len(t, *paid.PNR, 6)
	require.NotNil(t, paid.TransactionID)
	require.NotNil(t, paid.Tickets[0].TicketNumber)

	// One seat Sold, two still Available.
	var sold, available int
	for _, seat := range ms.SeatsByFlight(flightID) {
		switch seat.Status {
		case constants.SeatSold:
			sold++
		case constants.SeatAvailable:
			available++
		}
	}
	assert.Equal(t, 1, sold)
	assert.Equal(t, 2, available)
}

func TestConcurrentHolds_ExactlyOneWinsLastSeat(t *testing.T) {
	ms := memstore.New()
	flightID := seedEconomyFlight(ms, 1)
	svc := newTestBookingService(ms, &stubGateway{approve: true})

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.CreateHold(context.Background(), holdRequest(flightID, 1))
		}(i)
	}
	wg.Wait()

	var successes, seatUnavailable int
	for _, err := range results {
		if err == nil {
			successes++
		} else if common.IsKind(err, constants.KindSeatUnavailable) {
			seatUnavailable++
		}
	}
	assert.Equal(t, 1, successes, "exactly one hold must win")
	assert.Equal(t, 1, seatUnavailable, "the loser must see SeatUnavailable")

	seats := ms.SeatsByFlight(flightID)
	require.Len(t, seats, 1)
	assert.Equal(t, constants.SeatHeld, seats[0].Status)
}

func TestHoldExpiry_ReaperReleasesSeats(t *testing.T) {
	ms := memstore.New()
	flightID := seedEconomyFlight(ms, 3)
	svc := newTestBookingService(ms, &stubGateway{approve: true})
	ctx := context.Background()

	hold, err := svc.CreateHold(ctx, holdRequest(flightID, 2))
	require.NoError(t, err)

	// Nothing is due before the TTL lapses.
	expired, err := svc.ExpireDue(ctx, testClock().Add(14*time.Minute))
	require.NoError(t, err)
	assert.Zero(t, expired)

	expired, err = svc.ExpireDue(ctx, testClock().Add(16*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	updated, err := ms.BookingByReference(ctx, hold.BookingReference)
	require.NoError(t, err)
	assert.Equal(t, constants.BookingExpired, updated.Status)

	for _, seat := range ms.SeatsByFlight(flightID) {
		assert.Equal(t, constants.SeatAvailable, seat.Status)
		assert.Nil(t, seat.BookingID)
	}
}

func TestPriceDrift_RejectsStaleQuote(t *testing.T) {
	ms := memstore.New()
	flightID := seedEconomyFlight(ms, 3)
	svc := newTestBookingService(ms, &stubGateway{approve: true})
	ctx := context.Background()

	// Client quoted at demand 10; the simulator then pushed demand to 95.
	req := holdRequest(flightID, 1)
	req.QuotedUnitFare = 5750

	require.NoError(t, ms.WithTx(ctx, func(tx store.Tx) error {
		return tx.UpdateFlightDemand(ctx, flightID, 95)
	}))

	_, err := svc.CreateHold(ctx, req)
	require.Error(t, err)
	assert.Equal(t, constants.KindPriceChanged, common.KindOf(err))

	// No seats leaked from the aborted hold.
	for _, seat := range ms.SeatsByFlight(flightID) {
		assert.Equal(t, constants.SeatAvailable, seat.Status)
	}
}

func TestCancelConfirmed_SeatsFreedPaidAmountRetained(t *testing.T) {
	ms := memstore.New()
	flightID := seedEconomyFlight(ms, 3)
	svc := newTestBookingService(ms, &stubGateway{approve: true})
	ctx := context.Background()

	hold, err := svc.CreateHold(ctx, holdRequest(flightID, 1))
	require.NoError(t, err)
	paid, err := svc.Pay(ctx, dtos.PaymentRequest{
		BookingReference: hold.BookingReference, Amount: hold.TotalFare, Method: "UPI",
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, *paid.PNR, 7, constants.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, constants.BookingCancelled, cancelled.Status)
	assert.Equal(t, paid.PaidAmount, cancelled.PaidAmount, "paid amount survives for the refund flow")

	for _, seat := range ms.SeatsByFlight(flightID) {
		assert.Equal(t, constants.SeatAvailable, seat.Status)
	}

	// Cancelling again is a no-op returning the same state.
	again, err := svc.Cancel(ctx, *paid.PNR, 7, constants.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, constants.BookingCancelled, again.Status)
}

func TestExpireHeld_NoTicketNumbersLeak(t *testing.T) {
	ms := memstore.New()
	flightID := seedEconomyFlight(ms, 3)
	svc := newTestBookingService(ms, &stubGateway{approve: true})
	ctx := context.Background()

	hold, err := svc.CreateHold(ctx, holdRequest(flightID, 2))
	require.NoError(t, err)

	// A held booking has no PNR yet, so release rides the expiry path.
	expired, err := svc.ExpireDue(ctx, hold.HoldExpiresAt.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	tickets, err := ms.TicketsByBooking(ctx, mustBookingID(t, ms, hold.BookingReference))
	require.NoError(t, err)
	for _, tk := range tickets {
		assert.Nil(t, tk.TicketNumber, "no ticket numbers before confirmation")
	}
}

func TestPassengerLimit_NineOkTenRejected(t *testing.T) {
	ms := memstore.New()
	flightID := seedEconomyFlight(ms, 12)
	svc := newTestBookingService(ms, &stubGateway{approve: true})
	ctx := context.Background()

	_, err := svc.CreateHold(ctx, holdRequest(flightID, 9))
	require.NoError(t, err)

	_, err = svc.CreateHold(ctx, holdRequest(flightID, 10))
	require.Error(t, err)
	assert.Equal(t, constants.KindInvalidArgument, common.KindOf(err))
}

func TestPayment_BoundaryAroundHoldExpiry(t *testing.T) {
	ms := memstore.New()
	flightID := seedEconomyFlight(ms, 3)
	gateway := &stubGateway{approve: true}
	svc := newTestBookingService(ms, gateway)
	ctx := context.Background()

	hold, err := svc.CreateHold(ctx, holdRequest(flightID, 1))
	require.NoError(t, err)

	// Just before expiry: succeeds.
	svc.SetClock(func() time.Time { return hold.HoldExpiresAt.Add(-time.Second) })
	_, err = svc.Pay(ctx, dtos.PaymentRequest{
		BookingReference: hold.BookingReference, Amount: hold.TotalFare, Method: "Card",
	})
	require.NoError(t, err)

	// A second booking paid just after expiry: HoldExpired.
	svc.SetClock(testClock)
	hold2, err := svc.CreateHold(ctx, holdRequest(flightID, 1))
	require.NoError(t, err)

	svc.SetClock(func() time.Time { return hold2.HoldExpiresAt.Add(time.Second) })
	_, err = svc.Pay(ctx, dtos.PaymentRequest{
		BookingReference: hold2.BookingReference, Amount: hold2.TotalFare, Method: "Card",
	})
	require.Error(t, err)
	assert.Equal(t, constants.KindHoldExpired, common.KindOf(err))
}

func TestPaymentRefused_BookingRetryable(t *testing.T) {
	ms := memstore.New()
	flightID := seedEconomyFlight(ms, 3)
	gateway := &stubGateway{approve: false}
	svc := newTestBookingService(ms, gateway)
	ctx := context.Background()

	hold, err := svc.CreateHold(ctx, holdRequest(flightID, 1))
	require.NoError(t, err)

	_, err = svc.Pay(ctx, dtos.PaymentRequest{
		BookingReference: hold.BookingReference, Amount: hold.TotalFare, Method: "Wallet",
	})
	require.Error(t, err)
	assert.Equal(t, constants.KindPaymentFailed, common.KindOf(err))

	parked, err := ms.BookingByReference(ctx, hold.BookingReference)
	require.NoError(t, err)
	assert.Equal(t, constants.BookingPendingPayment, parked.Status)

	// Seats stay Held while the booking is retryable.
	held := 0
	for _, seat := range ms.SeatsByFlight(flightID) {
		if seat.Status == constants.SeatHeld {
			held++
		}
	}
	assert.Equal(t, 1, held)

	// The retry goes through once the processor recovers.
	gateway.approve = true
	paid, err := svc.Pay(ctx, dtos.PaymentRequest{
		BookingReference: hold.BookingReference, Amount: hold.TotalFare, Method: "Wallet",
	})
	require.NoError(t, err)
	assert.Equal(t, constants.BookingConfirmed, paid.Status)
}

func TestAmountShortfall_Rejected(t *testing.T) {
	ms := memstore.New()
	flightID := seedEconomyFlight(ms, 3)
	svc := newTestBookingService(ms, &stubGateway{approve: true})
	ctx := context.Background()

	hold, err := svc.CreateHold(ctx, holdRequest(flightID, 1))
	require.NoError(t, err)

	_, err = svc.Pay(ctx, dtos.PaymentRequest{
		BookingReference: hold.BookingReference, Amount: hold.TotalFare - 100, Method: "Card",
	})
	require.Error(t, err)
	assert.Equal(t, constants.KindInvalidArgument, common.KindOf(err))
}

func TestRequestedSeat_RespectedAndConflictsDetected(t *testing.T) {
	ms := memstore.New()
	flightID := seedEconomyFlight(ms, 3)
	svc := newTestBookingService(ms, &stubGateway{approve: true})
	ctx := context.Background()

	seats := ms.SeatsByFlight(flightID)
	target := seats[2] // 1C

	req := holdRequest(flightID, 1)
	req.Passengers[0].SeatID = &target.ID
	hold, err := svc.CreateHold(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "1C", hold.Tickets[0].SeatNumber)

	// The same seat again: SeatUnavailable.
	req2 := holdRequest(flightID, 1)
	req2.Passengers[0].SeatID = &target.ID
	_, err = svc.CreateHold(ctx, req2)
	require.Error(t, err)
	assert.Equal(t, constants.KindSeatUnavailable, common.KindOf(err))
}

func TestConfirmedBookings_DisjointSeatSets(t *testing.T) {
	ms := memstore.New()
	flightID := seedEconomyFlight(ms, 4)
	svc := newTestBookingService(ms, &stubGateway{approve: true})
	ctx := context.Background()

	seatsOf := func(ref string) map[string]bool {
		set := map[string]bool{}
		booking, err := ms.BookingByReference(ctx, ref)
		require.NoError(t, err)
		for _, seat := range ms.SeatsByFlight(flightID) {
			if seat.BookingID != nil && *seat.BookingID == booking.ID {
				set[seat.SeatNumber] = true
			}
		}
		return set
	}

	var refs []string
	for i := 0; i < 2; i++ {
		hold, err := svc.CreateHold(ctx, holdRequest(flightID, 2))
		require.NoError(t, err)
		_, err = svc.Pay(ctx, dtos.PaymentRequest{
			BookingReference: hold.BookingReference, Amount: hold.TotalFare, Method: "Card",
		})
		require.NoError(t, err)
		refs = append(refs, hold.BookingReference)
	}

	first, second := seatsOf(refs[0]), seatsOf(refs[1])
	for seatNumber := range first {
		assert.False(t, second[seatNumber], "seat %s assigned to both bookings", seatNumber)
	}
}

func TestTotalFare_FrozenAtHold(t *testing.T) {
	ms := memstore.New()
	flightID := seedEconomyFlight(ms, 3)
	svc := newTestBookingService(ms, &stubGateway{approve: true})
	ctx := context.Background()

	hold, err := svc.CreateHold(ctx, holdRequest(flightID, 1))
	require.NoError(t, err)

	// Demand spikes between hold and payment; the quote must not move.
	require.NoError(t, ms.WithTx(ctx, func(tx store.Tx) error {
		return tx.UpdateFlightDemand(ctx, flightID, 100)
	}))

	paid, err := svc.Pay(ctx, dtos.PaymentRequest{
		BookingReference: hold.BookingReference, Amount: hold.TotalFare, Method: "Card",
	})
	require.NoError(t, err)
	assert.Equal(t, hold.TotalFare, paid.TotalFare)
}

func TestPNR_AlphabetExcludesAmbiguousCharacters(t *testing.T) {
	ms := memstore.New()
	flightID := seedEconomyFlight(ms, 9)
	svc := newTestBookingService(ms, &stubGateway{approve: true})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		hold, err := svc.CreateHold(ctx, holdRequest(flightID, 1))
		require.NoError(t, err)
		paid, err := svc.Pay(ctx, dtos.PaymentRequest{
			BookingReference: hold.BookingReference, Amount: hold.TotalFare, Method: "Card",
		})
		require.NoError(t, err)

		require.NotNil(t, paid.PNR)
		assert.Len(t, *paid.PNR, 6)
		assert.NotContains(t, *paid.PNR, "0")
		assert.NotContains(t, *paid.PNR, "O")
		assert.NotContains(t, *paid.PNR, "1")
		assert.NotContains(t, *paid.PNR, "I")
		assert.Equal(t, strings.ToUpper(*paid.PNR), *paid.PNR)
	}
}

func mustBookingID(t *testing.T, ms *memstore.MemStore, ref string) int64 {
	t.Helper()
	booking, err := ms.BookingByReference(context.Background(), ref)
	require.NoError(t, err)
	require.NotNil(t, booking)
	return booking.ID
}
