package workers

import (
	"context"
	"time"

	"skylane/concourse/internal/logging"
	"skylane/concourse/internal/metrics"
	"skylane/concourse/internal/services"
)

// HoldReaper expires lapsed holds and reclaims their seats. Each booking
// is handled in its own transaction, so the reaper is cancellable
// between bookings and a failure on one never blocks the rest.
type HoldReaper struct {
	bookings *services.BookingService
	metrics  *metrics.MetricsRegistry
	period   time.Duration
	now      func() time.Time
}

func NewHoldReaper(bookings *services.BookingService, metricsReg *metrics.MetricsRegistry, period time.Duration) *HoldReaper {
	return &HoldReaper{
		bookings: bookings,
		metrics:  metricsReg,
		period:   period,
		now:      time.Now,
	}
}

// SetClock overrides the actor clock. Test hook.
func (r *HoldReaper) SetClock(now func() time.Time) { r.now = now }

// Start runs the reap loop until ctx is cancelled.
func (r *HoldReaper) Start(ctx context.Context) {
	logging.Info("Hold reaper started", "period", r.period.String())
	ticker := time.NewTicker(r.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info("Hold reaper stopping")
			return
		case <-ticker.C:
			start := time.Now()
			expired, err := r.RunOnce(ctx)
			if err != nil {
				logging.Error("Hold reaper tick failed", "error", err.Error())
				continue
			}
			if r.metrics != nil {
				r.metrics.ReaperTickDuration.Observe(time.Since(start).Seconds())
			}
			if expired > 0 {
				logging.Info("Holds reaped", "expired", expired)
			}
		}
	}
}

// RunOnce expires everything due as of the actor clock.
func (r *HoldReaper) RunOnce(ctx context.Context) (int, error) {
	return r.bookings.ExpireDue(ctx, r.now().UTC())
}
