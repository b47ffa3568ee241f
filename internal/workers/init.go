package workers

import (
	"context"
	"time"

	"skylane/concourse/internal/common"
	"skylane/concourse/internal/db/repositories"
	"skylane/concourse/internal/metrics"
	"skylane/concourse/internal/services"
	"skylane/concourse/internal/store"
)

type WorkersContainer struct {
	Simulator *DemandSimulator
	Reaper    *HoldReaper
	Mailer    *ReceiptMailer
}

// InitWorkers starts the two periodic actors plus the receipt mailer.
// Each runs on its own goroutine under the shared cancellation context.
func InitWorkers(
	ctx context.Context,
	st store.Store,
	bookings *services.BookingService,
	receipts *services.ReceiptService,
	users *repositories.UserRepository,
	queue *common.RedisQueueService,
	metricsReg *metrics.MetricsRegistry,
	simulatorPeriod time.Duration,
	reaperPeriod time.Duration,
	mailerCfg MailerConfig,
) *WorkersContainer {
	simulator := NewDemandSimulator(st, metricsReg, simulatorPeriod, time.Now().UnixNano())
	reaper := NewHoldReaper(bookings, metricsReg, reaperPeriod)

	go simulator.Start(ctx)
	go reaper.Start(ctx)

	container := &WorkersContainer{
		Simulator: simulator,
		Reaper:    reaper,
	}

	if queue != nil {
		mailer := NewReceiptMailer(queue, receipts, st, users, mailerCfg)
		go mailer.Start(ctx)
		container.Mailer = mailer
	}

	return container
}
