package workers

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"skylane/concourse/internal/common"
	"skylane/concourse/internal/db/repositories"
	"skylane/concourse/internal/logging"
	"skylane/concourse/internal/services"
	"skylane/concourse/internal/store"
)

const (
	receiptGroup    = "receipt_mailers"
	receiptConsumer = "mailer-1"
	dequeueBlock    = 5 * time.Second
)

// MailerConfig holds SMTP settings. An empty Host puts the mailer in
// dev mode: jobs are consumed and logged, nothing is sent.
type MailerConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// ReceiptMailer consumes post-commit receipt jobs from the Redis stream
// and emails the rendered receipt. A mail failure is logged and the job
// acknowledged; the confirmation it belongs to is long since committed.
type ReceiptMailer struct {
	queue    *common.RedisQueueService
	receipts *services.ReceiptService
	store    store.Store
	users    *repositories.UserRepository
	cfg      MailerConfig
}

func NewReceiptMailer(queue *common.RedisQueueService, receipts *services.ReceiptService, st store.Store, users *repositories.UserRepository, cfg MailerConfig) *ReceiptMailer {
	return &ReceiptMailer{
		queue:    queue,
		receipts: receipts,
		store:    st,
		users:    users,
		cfg:      cfg,
	}
}

// Start consumes jobs until ctx is cancelled.
func (m *ReceiptMailer) Start(ctx context.Context) {
	if err := m.queue.CreateConsumerGroup(ctx, services.ReceiptStream, receiptGroup); err != nil {
		logging.Error("Receipt mailer could not create consumer group", "error", err.Error())
		return
	}
	logging.Info("Receipt mailer started", "stream", services.ReceiptStream)

	for {
		if ctx.Err() != nil {
			logging.Info("Receipt mailer stopping")
			return
		}

		job, msgID, err := m.queue.DequeueReceipt(ctx, services.ReceiptStream, receiptGroup, receiptConsumer, dequeueBlock)
		if err != nil {
			logging.Error("Receipt dequeue failed", "error", err.Error())
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue
		}

		if err := m.process(ctx, job); err != nil {
			logging.Error("Receipt delivery failed",
				"pnr", job.PNR,
				"booking_reference", job.BookingReference,
				"error", err.Error(),
			)
		}
		// Ack regardless: receipt delivery is best effort by contract.
		if err := m.queue.AckReceipt(ctx, services.ReceiptStream, receiptGroup, msgID); err != nil {
			logging.Error("Receipt ack failed", "message_id", msgID, "error", err.Error())
		}
	}
}

func (m *ReceiptMailer) process(ctx context.Context, job *common.ReceiptJob) error {
	email := job.Email
	if email == "" {
		booking, err := m.store.BookingByPNR(ctx, job.PNR)
		if err != nil {
			return err
		}
		if booking == nil {
			return fmt.Errorf("booking for PNR %s vanished", job.PNR)
		}
		user, err := m.users.FindByID(ctx, booking.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("user %d not found", booking.UserID)
		}
		email = user.Email
	}

	body, contentType, err := m.receipts.Render(ctx, job.PNR)
	if err != nil {
		return err
	}

	if m.cfg.Host == "" {
		logging.Info("SMTP not configured, receipt logged instead of sent",
			"pnr", job.PNR,
			"to", email,
			"bytes", len(body),
		)
		return nil
	}

	subject := fmt.Sprintf("Your booking %s", job.PNR)
	if job.Cancellation {
		subject = fmt.Sprintf("Cancellation receipt for %s", job.PNR)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", subject)
	msg.SetBody(contentType, string(body))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Pass)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	logging.Info("Receipt emailed", "pnr", job.PNR, "to", email)
	return nil
}
