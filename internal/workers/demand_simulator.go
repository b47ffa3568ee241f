package workers

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"skylane/concourse/internal/logging"
	"skylane/concourse/internal/metrics"
	"skylane/concourse/internal/models/entities"
	"skylane/concourse/internal/pricing"
	"skylane/concourse/internal/store"
)

// simulatorConcurrency bounds the per-tick fan-out so one tick cannot
// monopolize the connection pool.
const simulatorConcurrency = 4

// DemandSimulator is the periodic actor that drifts each upcoming
// flight's demand index and appends the fare history time series. Each
// flight is updated in its own short transaction; a tick never holds a
// flight lock across the whole sweep, and a failure on one flight is
// logged and skipped.
type DemandSimulator struct {
	store   store.Store
	metrics *metrics.MetricsRegistry
	period  time.Duration
	now     func() time.Time

	// step computes the next demand index; swapped out in tests.
	step func(current float64, hoursToDeparture float64) float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewDemandSimulator(st store.Store, metricsReg *metrics.MetricsRegistry, period time.Duration, seed int64) *DemandSimulator {
	s := &DemandSimulator{
		store:   st,
		metrics: metricsReg,
		period:  period,
		now:     time.Now,
		rng:     rand.New(rand.NewSource(seed)),
	}
	s.step = s.defaultStep
	return s
}

// SetClock overrides the actor clock. Test hook.
func (s *DemandSimulator) SetClock(now func() time.Time) { s.now = now }

// SetStep overrides the demand walk. Test hook.
func (s *DemandSimulator) SetStep(step func(current, hoursToDeparture float64) float64) {
	s.step = step
}

// Start runs the tick loop until ctx is cancelled. The in-flight tick
// finishes its current flight updates before the actor exits.
func (s *DemandSimulator) Start(ctx context.Context) {
	logging.Info("Demand simulator started", "period", s.period.String())
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info("Demand simulator stopping")
			return
		case <-ticker.C:
			start := time.Now()
			updated, err := s.RunOnce(ctx)
			if err != nil {
				logging.Error("Demand simulator tick failed", "error", err.Error())
				continue
			}
			if s.metrics != nil {
				s.metrics.SimulatorTickDuration.Observe(time.Since(start).Seconds())
			}
			logging.Info("Demand simulator tick complete",
				"flights_updated", updated,
				"took_ms", time.Since(start).Milliseconds(),
			)
		}
	}
}

// RunOnce performs one simulation tick and returns the number of flights
// updated. Missing a tick only degrades realism, so the method is safe
// to call at any cadence.
func (s *DemandSimulator) RunOnce(ctx context.Context) (int, error) {
	now := s.now().UTC()

	flights, err := s.store.SimulatorFlights(ctx, now)
	if err != nil {
		return 0, err
	}
	if len(flights) == 0 {
		return 0, nil
	}

	var updated int64
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(simulatorConcurrency)
	for _, flight := range flights {
		flight := flight
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return nil
			}
			// A started update completes even if ctx is cancelled meanwhile.
			if err := s.updateFlight(context.WithoutCancel(gctx), flight.ID, now); err != nil {
				logging.Error("Demand update failed, skipping flight",
					"flight_id", flight.ID,
					"flight_number", flight.FlightNumber,
					"error", err.Error(),
				)
				return nil
			}
			mu.Lock()
			updated++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if s.metrics != nil {
		s.metrics.FlightsSimulatedTotal.Add(float64(updated))
	}
	return int(updated), nil
}

// updateFlight drifts one flight's demand and appends one fare sample
// per priced tier, all inside one short transaction.
func (s *DemandSimulator) updateFlight(ctx context.Context, flightID int64, now time.Time) error {
	return s.store.WithTx(ctx, func(tx store.Tx) error {
		flight, err := tx.LockFlight(ctx, flightID)
		if err != nil {
			return err
		}
		if flight == nil || !flight.Status.Bookable() || !flight.DepartureTime.After(now) {
			// Raced with a staff update; nothing to do.
			return nil
		}

		hours := flight.DepartureTime.Sub(now).Hours()
		demand := clamp(s.step(flight.DemandIndex, hours), 0, 100)

		if err := tx.UpdateFlightDemand(ctx, flight.ID, demand); err != nil {
			return err
		}

		counts, err := tx.SeatCounts(ctx, flight.ID)
		if err != nil {
			return err
		}

		var samples []entities.FareHistorySample
		for tier, c := range counts {
			if c.Total == 0 {
				continue
			}
			fare, err := pricing.Fare(pricing.Snapshot{
				BaseFares:      flight.BaseFares,
				SeatsAvailable: c.Available,
				SeatsTotal:     c.Total,
				DepartureTime:  flight.DepartureTime,
				DemandIndex:    demand,
			}, now, tier)
			if err != nil {
				// Tier without a base fare; not sampled.
				continue
			}
			samples = append(samples, entities.FareHistorySample{
				FlightID:    flight.ID,
				Tier:        tier,
				Fare:        fare,
				DemandIndex: demand,
				SampledAt:   now,
			})
		}
		return tx.InsertFareSamples(ctx, samples)
	})
}

// defaultStep is a bounded random walk pulled upward as departure
// approaches, simulating booking pressure.
func (s *DemandSimulator) defaultStep(current, hoursToDeparture float64) float64 {
	pull := (1 - clamp(hoursToDeparture/336, 0, 1)) * 4

	s.mu.Lock()
	noise := s.rng.NormFloat64() * 6
	s.mu.Unlock()

	return current + pull + noise
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
