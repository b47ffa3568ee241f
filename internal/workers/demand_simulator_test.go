package workers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/models/entities"
	"skylane/concourse/internal/store/memstore"
)

func simClock() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func seedSimFlight(ms *memstore.MemStore, demand float64, status constants.FlightStatus) int64 {
	flightID := ms.SeedFlight(entities.Flight{
		FlightNumber:    "6E450",
		ScheduledDate:   "2026-03-03",
		AirlineCode:     "6E",
		OriginCode:      "DEL",
		DestinationCode: "BLR",
		AircraftID:      1,
		DepartureTime:   simClock().Add(48 * time.Hour),
		ArrivalTime:     simClock().Add(51 * time.Hour),
		BaseFares:       constants.FareMap{constants.TierEconomy: 5000},
		DemandIndex:     demand,
		Status:          status,
	})
	for i := 0; i < 4; i++ {
		ms.SeedSeat(entities.Seat{
			FlightID:   flightID,
			SeatNumber: fmt.Sprintf("1%c", 'A'+i),
			Class:      constants.TierEconomy,
			Position:   constants.PositionAisle,
			Status:     constants.SeatAvailable,
		})
	}
	return flightID
}

func newTestSimulator(ms *memstore.MemStore) *DemandSimulator {
	sim := NewDemandSimulator(ms, nil, time.Minute, 1)
	sim.SetClock(simClock)
	return sim
}

func TestSimulator_DemandStaysClamped(t *testing.T) {
	ctx := context.Background()

	for _, step := range []float64{+500, -500} {
		ms := memstore.New()
		flightID := seedSimFlight(ms, 50, constants.FlightScheduled)
		sim := newTestSimulator(ms)
		sim.SetStep(func(current, hours float64) float64 { return current + step })

		updated, err := sim.RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, updated)

		flight, err := ms.FlightByID(ctx, flightID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, flight.DemandIndex, 0.0)
		assert.LessOrEqual(t, flight.DemandIndex, 100.0)
	}
}

func TestSimulator_FareHistoryMonotoneUnderRisingDemand(t *testing.T) {
	ctx := context.Background()
	ms := memstore.New()
	flightID := seedSimFlight(ms, 10, constants.FlightScheduled)
	sim := newTestSimulator(ms)

	// Force the demand walk through a rising sequence over four ticks
	// with stable inventory.
	sequence := []float64{10, 40, 70, 95}
	tick := 0
	sim.SetStep(func(current, hours float64) float64 {
		v := sequence[tick]
		tick++
		return v
	})

	for range sequence {
		_, err := sim.RunOnce(ctx)
		require.NoError(t, err)
	}

	samples := ms.FareSamples(flightID)
	require.Len(t, samples, len(sequence))

	prev := 0.0
	for i, sample := range samples {
		assert.Equal(t, constants.TierEconomy, sample.Tier)
		assert.Equal(t, sequence[i], sample.DemandIndex)
		assert.GreaterOrEqual(t, sample.Fare, prev, "fare history dipped at tick %d", i)
		prev = sample.Fare
	}
}

func TestSimulator_SkipsFinishedAndCancelledFlights(t *testing.T) {
	ctx := context.Background()
	ms := memstore.New()
	seedSimFlight(ms, 50, constants.FlightCancelled)

	departed := ms.SeedFlight(entities.Flight{
		FlightNumber:    "AI202",
		AirlineCode:     "AI",
		OriginCode:      "BOM",
		DestinationCode: "DEL",
		AircraftID:      1,
		DepartureTime:   simClock().Add(-2 * time.Hour),
		ArrivalTime:     simClock().Add(-1 * time.Hour),
		BaseFares:       constants.FareMap{constants.TierEconomy: 4000},
		DemandIndex:     50,
		Status:          constants.FlightDeparted,
	})

	sim := newTestSimulator(ms)
	updated, err := sim.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, updated)
	assert.Empty(t, ms.FareSamples(departed))
}

func TestSimulator_DefaultStepPullsHarderNearDeparture(t *testing.T) {
	ms := memstore.New()
	sim := newTestSimulator(ms)

	// Average many draws; the noise is zero-mean, the pull is not.
	avg := func(hours float64) float64 {
		total := 0.0
		for i := 0; i < 2000; i++ {
			total += sim.defaultStep(50, hours) - 50
		}
		return total / 2000
	}

	farOut := avg(720)
	imminent := avg(2)
	assert.Greater(t, imminent, farOut, "booking pressure must grow as departure approaches")
}
