package workers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/models/dtos"
	"skylane/concourse/internal/models/entities"
	gormModels "skylane/concourse/internal/models/gorm"
	"skylane/concourse/internal/services"
	"skylane/concourse/internal/store/memstore"
)

type reaperCatalog struct{}

func (reaperCatalog) Airport(ctx context.Context, code string) (*gormModels.Airport, error) {
	return &gormModels.Airport{Code: code, City: code}, nil
}

func (reaperCatalog) AirlineName(ctx context.Context, code string) (string, error) {
	return "IndiGo", nil
}

type approveAllGateway struct{ n int }

func (g *approveAllGateway) Charge(ctx context.Context, ref string, amount float64, method constants.PaymentMethod) (string, bool, error) {
	g.n++
	return fmt.Sprintf("tx-%d", g.n), true, nil
}

func TestReaper_ExpiresLapsedHoldsAndFreesSeats(t *testing.T) {
	ctx := context.Background()
	ms := memstore.New()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	flightID := ms.SeedFlight(entities.Flight{
		FlightNumber:    "UK811",
		AirlineCode:     "UK",
		OriginCode:      "DEL",
		DestinationCode: "BOM",
		AircraftID:      1,
		DepartureTime:   now.Add(24 * time.Hour),
		ArrivalTime:     now.Add(26 * time.Hour),
		BaseFares:       constants.FareMap{constants.TierEconomy: 6000},
		DemandIndex:     30,
		Status:          constants.FlightScheduled,
	})
	for i := 0; i < 2; i++ {
		ms.SeedSeat(entities.Seat{
			FlightID:   flightID,
			SeatNumber: fmt.Sprintf("2%c", 'A'+i),
			Class:      constants.TierEconomy,
			Position:   constants.PositionWindow,
			Status:     constants.SeatAvailable,
		})
	}

	bookings := services.NewBookingService(ms, reaperCatalog{}, &approveAllGateway{}, nil, nil, services.BookingConfig{
		HoldTTL:             2 * time.Second,
		PriceDriftTolerance: 0.01,
	})
	bookings.SetClock(func() time.Time { return now })

	_, err := bookings.CreateHold(ctx, dtos.CreateBookingRequest{
		UserID:     1,
		FlightID:   flightID,
		Tier:       "ECONOMY",
		Passengers: []dtos.PassengerInput{{Name: "Lone Traveller", Age: 41, Gender: "M"}},
	})
	require.NoError(t, err)

	reaper := NewHoldReaper(bookings, nil, time.Minute)

	// Before the TTL: nothing to do.
	reaper.SetClock(func() time.Time { return now.Add(time.Second) })
	expired, err := reaper.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, expired)

	// Three seconds later the hold has lapsed.
	reaper.SetClock(func() time.Time { return now.Add(3 * time.Second) })
	expired, err = reaper.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	for _, seat := range ms.SeatsByFlight(flightID) {
		assert.Equal(t, constants.SeatAvailable, seat.Status)
		assert.Nil(t, seat.BookingID)
	}
}
