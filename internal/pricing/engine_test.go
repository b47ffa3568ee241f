package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skylane/concourse/internal/common"
	"skylane/concourse/internal/constants"
)

func baseSnapshot(departureIn time.Duration) Snapshot {
	return Snapshot{
		BaseFares: constants.FareMap{
			constants.TierEconomy:  5000,
			constants.TierBusiness: 12000,
		},
		SeatsAvailable: 100,
		SeatsTotal:     100,
		DepartureTime:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC).Add(departureIn),
		DemandIndex:    10,
	}
}

func nowFor(snap Snapshot, before time.Duration) time.Time {
	return snap.DepartureTime.Add(-before)
}

func TestFare_QuietFlightPricesNearBase(t *testing.T) {
	snap := baseSnapshot(0)
	now := nowFor(snap, 72*time.Hour)

	fare, err := Fare(snap, now, constants.TierEconomy)
	require.NoError(t, err)

	// Empty cabin, low demand, 72h out: only the time factor applies.
	assert.Equal(t, 5750.0, fare)
}

func TestFare_BoundsHoldAcrossInputs(t *testing.T) {
	snap := baseSnapshot(0)
	now := nowFor(snap, 6*time.Hour)

	for _, avail := range []int{0, 1, 20, 50, 99, 100} {
		for _, demand := range []float64{0, 24, 49, 74, 100} {
			snap.SeatsAvailable = avail
			snap.DemandIndex = demand

			fare, err := Fare(snap, now, constants.TierEconomy)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, fare, 5000.0, "floor violated at avail=%d demand=%v", avail, demand)
			assert.LessOrEqual(t, fare, 50000.0, "cap violated at avail=%d demand=%v", avail, demand)
		}
	}
}

func TestFare_MonotoneInInventory(t *testing.T) {
	snap := baseSnapshot(0)
	now := nowFor(snap, 100*time.Hour)

	prev := 0.0
	for avail := 100; avail >= 0; avail -= 5 {
		snap.SeatsAvailable = avail
		fare, err := Fare(snap, now, constants.TierEconomy)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, fare, prev, "fare dropped as seats filled (avail=%d)", avail)
		prev = fare
	}
}

func TestFare_MonotoneAsDepartureApproaches(t *testing.T) {
	snap := baseSnapshot(0)

	prev := 0.0
	for _, hoursOut := range []time.Duration{800 * time.Hour, 300 * time.Hour, 100 * time.Hour, 24 * time.Hour, time.Hour} {
		fare, err := Fare(snap, nowFor(snap, hoursOut), constants.TierEconomy)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, fare, prev, "fare dropped approaching departure (%v out)", hoursOut)
		prev = fare
	}
}

func TestFare_MonotoneInDemand(t *testing.T) {
	snap := baseSnapshot(0)
	now := nowFor(snap, 48*time.Hour)

	prev := 0.0
	for demand := 0.0; demand <= 100; demand += 10 {
		snap.DemandIndex = demand
		fare, err := Fare(snap, now, constants.TierEconomy)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, fare, prev)
		prev = fare
	}
}

func TestFare_ClassFactorsOrdering(t *testing.T) {
	snap := Snapshot{
		BaseFares: constants.FareMap{
			constants.TierEconomy:     1000,
			constants.TierEconomyFlex: 1000,
			constants.TierBusiness:    1000,
			constants.TierFirst:       1000,
		},
		SeatsAvailable: 10,
		SeatsTotal:     10,
		DepartureTime:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		DemandIndex:    0,
	}
	now := snap.DepartureTime.Add(-1000 * time.Hour)

	var fares []float64
	for _, tier := range []constants.CabinTier{constants.TierEconomy, constants.TierEconomyFlex, constants.TierBusiness, constants.TierFirst} {
		fare, err := Fare(snap, now, tier)
		require.NoError(t, err)
		fares = append(fares, fare)
	}

	assert.Equal(t, []float64{1000, 1200, 1800, 2500}, fares)
}

func TestFare_DeparturePassedReturnsCap(t *testing.T) {
	snap := baseSnapshot(0)
	now := snap.DepartureTime.Add(time.Minute)

	fare, err := Fare(snap, now, constants.TierEconomy)
	require.NoError(t, err)
	assert.Equal(t, 50000.0, fare)
}

func TestFare_Deterministic(t *testing.T) {
	snap := baseSnapshot(0)
	snap.SeatsAvailable = 37
	snap.DemandIndex = 63
	now := nowFor(snap, 30*time.Hour)

	first, err := Fare(snap, now, constants.TierBusiness)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Fare(snap, now, constants.TierBusiness)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFare_InvalidInputs(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		mut  func(*Snapshot)
		tier constants.CabinTier
	}{
		{"missing tier", func(s *Snapshot) {}, constants.TierFirst},
		{"zero base fare", func(s *Snapshot) { s.BaseFares[constants.TierEconomy] = 0 }, constants.TierEconomy},
		{"negative base fare", func(s *Snapshot) { s.BaseFares[constants.TierEconomy] = -10 }, constants.TierEconomy},
		{"zero total seats", func(s *Snapshot) { s.SeatsTotal = 0 }, constants.TierEconomy},
		{"negative available", func(s *Snapshot) { s.SeatsAvailable = -1 }, constants.TierEconomy},
		{"available exceeds total", func(s *Snapshot) { s.SeatsAvailable = 101 }, constants.TierEconomy},
		{"demand below range", func(s *Snapshot) { s.DemandIndex = -0.5 }, constants.TierEconomy},
		{"demand above range", func(s *Snapshot) { s.DemandIndex = 100.5 }, constants.TierEconomy},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := baseSnapshot(0)
			snap.DepartureTime = now.Add(72 * time.Hour)
			tc.mut(&snap)

			_, err := Fare(snap, now, tc.tier)
			require.Error(t, err)
			assert.Equal(t, constants.KindInvalidArgument, common.KindOf(err))
		})
	}
}
