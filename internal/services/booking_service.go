package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thanhpk/randstr"

	"skylane/concourse/internal/common"
	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/logging"
	"skylane/concourse/internal/metrics"
	"skylane/concourse/internal/models/dtos"
	"skylane/concourse/internal/models/entities"
	"skylane/concourse/internal/pricing"
	"skylane/concourse/internal/store"
)

const (
	// MaxPassengersPerBooking caps one hold at nine travellers.
	MaxPassengersPerBooking = 9

	// pnrAlphabet drops 0/O and 1/I so a PNR survives being read aloud.
	pnrAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	pnrLength      = 6
	pnrMaxAttempts = 8

	// ReceiptStream is the Redis stream carrying post-commit receipt jobs.
	ReceiptStream = "receipt_jobs"

	fareCurrency = "INR"
)

// BookingConfig is the tunable part of the pipeline.
type BookingConfig struct {
	HoldTTL             time.Duration
	PriceDriftTolerance float64
}

// BookingService drives the Held -> Confirmed / Cancelled / Expired state
// machine. Holds, payments and cancellations each run in one store
// transaction wrapped in the serialization-failure retry policy; expiry
// runs one transaction per booking without retry. CreateHold takes the
// flight row lock first, which serializes competing holds on the same
// flight.
type BookingService struct {
	store   store.Store
	catalog Catalog
	gateway PaymentGateway
	queue   *common.RedisQueueService
	metrics *metrics.MetricsRegistry
	cfg     BookingConfig
	retry   common.RetryPolicy
	now     func() time.Time
}

// NewBookingService wires the pipeline. queue and metricsReg may be nil
// (tests, single-shot tools); every use is guarded.
func NewBookingService(
	st store.Store,
	catalog Catalog,
	gateway PaymentGateway,
	queue *common.RedisQueueService,
	metricsReg *metrics.MetricsRegistry,
	cfg BookingConfig,
) *BookingService {
	return &BookingService{
		store:   st,
		catalog: catalog,
		gateway: gateway,
		queue:   queue,
		metrics: metricsReg,
		cfg:     cfg,
		retry:   common.DefaultTxRetryPolicy(),
		now:     time.Now,
	}
}

// SetClock overrides the service clock. Test hook.
func (s *BookingService) SetClock(now func() time.Time) { s.now = now }

// CreateHold runs the seat-assignment transaction of a new booking:
// flight lock, fare check against the client's quote, seat locks in
// seat_number order, booking + tentative tickets. PNR is not issued yet.
func (s *BookingService) CreateHold(ctx context.Context, req dtos.CreateBookingRequest) (*dtos.BookingResponse, error) {
	if len(req.Passengers) < 1 {
		return nil, common.NewError(constants.KindInvalidArgument, "at least one passenger required")
	}
	if len(req.Passengers) > MaxPassengersPerBooking {
		return nil, common.NewError(constants.KindInvalidArgument,
			"passenger count exceeds limit of %d", MaxPassengersPerBooking)
	}
	tier, ok := constants.ParseTier(req.Tier)
	if !ok {
		return nil, common.NewError(constants.KindInvalidArgument, "invalid tier %q", req.Tier)
	}
	for _, p := range req.Passengers {
		if strings.TrimSpace(p.Name) == "" {
			return nil, common.NewError(constants.KindInvalidArgument, "passenger name required")
		}
	}

	var requestedSeatIDs []int64
	for _, p := range req.Passengers {
		if p.SeatID != nil {
			requestedSeatIDs = append(requestedSeatIDs, *p.SeatID)
		}
	}
	if len(requestedSeatIDs) > 0 && len(requestedSeatIDs) != len(req.Passengers) {
		return nil, common.NewError(constants.KindInvalidArgument,
			"either every passenger names a seat or none does")
	}

	var resp *dtos.BookingResponse
	err := common.Retry(ctx, s.retry, func() error {
		r, err := s.createHoldTx(ctx, req, tier, requestedSeatIDs)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsCreatedTotal.Inc()
	}
	logging.Info("Hold created",
		"booking_reference", resp.BookingReference,
		"flight_id", req.FlightID,
		"tier", tier.String(),
		"passengers", len(req.Passengers),
		"total_fare", resp.TotalFare,
	)
	return resp, nil
}

func (s *BookingService) createHoldTx(ctx context.Context, req dtos.CreateBookingRequest, tier constants.CabinTier, requestedSeatIDs []int64) (*dtos.BookingResponse, error) {
	now := s.now().UTC()
	var resp *dtos.BookingResponse

	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		flight, err := tx.LockFlight(ctx, req.FlightID)
		if err != nil {
			return err
		}
		if flight == nil {
			return common.NewError(constants.KindNotFound, "flight %d not found", req.FlightID)
		}
		if !flight.Status.Bookable() {
			return common.NewError(constants.KindFlightNotBookable,
				"flight %s is %s", flight.FlightNumber, flight.Status)
		}
		if !now.Before(flight.DepartureTime) {
			return common.NewError(constants.KindFlightNotBookable,
				"flight %s has already departed", flight.FlightNumber)
		}

		counts, err := tx.SeatCounts(ctx, flight.ID)
		if err != nil {
			return err
		}
		tierCount, ok := counts[tier]
		if !ok || tierCount.Total == 0 {
			return common.NewError(constants.KindInvalidArgument,
				"flight %s has no %s cabin", flight.FlightNumber, tier)
		}

		unitFare, err := pricing.Fare(pricing.Snapshot{
			BaseFares:      flight.BaseFares,
			SeatsAvailable: tierCount.Available,
			SeatsTotal:     tierCount.Total,
			DepartureTime:  flight.DepartureTime,
			DemandIndex:    flight.DemandIndex,
		}, now, tier)
		if err != nil {
			return err
		}
		if s.metrics != nil {
			s.metrics.FareComputationsTotal.Inc()
		}

		// The quote freshness check: the client re-quotes on drift.
		if req.QuotedUnitFare > 0 {
			drift := math.Abs(unitFare-req.QuotedUnitFare) / req.QuotedUnitFare
			if drift > s.cfg.PriceDriftTolerance {
				return common.NewError(constants.KindPriceChanged,
					"fare moved from %.2f to %.2f, please re-quote", req.QuotedUnitFare, unitFare)
			}
		}

		seats, err := s.allocateSeats(ctx, tx, flight.ID, tier, requestedSeatIDs, len(req.Passengers))
		if err != nil {
			return err
		}

		totalFare := unitFare * float64(len(seats))
		for _, seat := range seats {
			totalFare += seat.Surcharge
		}
		totalFare = math.Round(totalFare*100) / 100

		booking := &entities.Booking{
			BookingReference: uuid.NewString(),
			UserID:           req.UserID,
			FlightID:         flight.ID,
			Tier:             tier,
			Status:           constants.BookingHeld,
			TotalFare:        totalFare,
			HoldExpiresAt:    now.Add(s.cfg.HoldTTL),
		}
		if err := tx.InsertBooking(ctx, booking); err != nil {
			return err
		}

		seatIDs := make([]int64, len(seats))
		for i, seat := range seats {
			seatIDs[i] = seat.ID
		}
		if err := tx.UpdateSeatStatus(ctx, seatIDs, constants.SeatHeld, &booking.ID); err != nil {
			return err
		}

		tickets, err := s.buildTickets(ctx, flight, booking, seats, req.Passengers, unitFare)
		if err != nil {
			return err
		}
		if err := tx.InsertTickets(ctx, tickets); err != nil {
			return err
		}

		resp = bookingResponse(booking, tickets)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// allocateSeats locks and validates the seats backing the hold. Requested
// seats must exist, belong to the tier, and be Available; auto-allocation
// takes the lowest seat numbers first.
func (s *BookingService) allocateSeats(ctx context.Context, tx store.Tx, flightID int64, tier constants.CabinTier, requestedSeatIDs []int64, passengers int) ([]entities.Seat, error) {
	if len(requestedSeatIDs) > 0 {
		seats, err := tx.SeatsByIDsForUpdate(ctx, flightID, requestedSeatIDs)
		if err != nil {
			return nil, err
		}
		if len(seats) != len(requestedSeatIDs) {
			return nil, common.NewError(constants.KindSeatUnavailable, "requested seat does not exist on this flight")
		}
		for _, seat := range seats {
			if seat.Class != tier {
				return nil, common.NewError(constants.KindInvalidArgument,
					"seat %s is in %s, not %s", seat.SeatNumber, seat.Class, tier)
			}
			if seat.Status != constants.SeatAvailable {
				return nil, common.NewError(constants.KindSeatUnavailable,
					"seat %s is no longer available", seat.SeatNumber)
			}
		}
		return seats, nil
	}

	seats, err := tx.AvailableSeatsForUpdate(ctx, flightID, tier, passengers)
	if err != nil {
		return nil, err
	}
	if len(seats) < passengers {
		return nil, common.NewError(constants.KindSeatUnavailable,
			"only %d %s seats left, need %d", len(seats), tier, passengers)
	}
	return seats, nil
}

// buildTickets denormalizes the flight summary into tentative tickets.
// Passengers map to seats positionally: requested seats keep their
// pairing, auto-allocated seats follow seat_number order.
func (s *BookingService) buildTickets(ctx context.Context, flight *entities.Flight, booking *entities.Booking, seats []entities.Seat, passengers []dtos.PassengerInput, unitFare float64) ([]entities.Ticket, error) {
	airlineName, err := s.catalog.AirlineName(ctx, flight.AirlineCode)
	if err != nil {
		return nil, err
	}
	origin, err := s.catalog.Airport(ctx, flight.OriginCode)
	if err != nil {
		return nil, err
	}
	dest, err := s.catalog.Airport(ctx, flight.DestinationCode)
	if err != nil {
		return nil, err
	}

	seatByID := make(map[int64]entities.Seat, len(seats))
	for _, seat := range seats {
		seatByID[seat.ID] = seat
	}

	tickets := make([]entities.Ticket, 0, len(passengers))
	for i, p := range passengers {
		seat := seats[i]
		if p.SeatID != nil {
			seat = seatByID[*p.SeatID]
		}
		tickets = append(tickets, entities.Ticket{
			BookingID:        booking.ID,
			FlightID:         flight.ID,
			SeatID:           seat.ID,
			PassengerName:    strings.TrimSpace(p.Name),
			PassengerAge:     p.Age,
			PassengerGender:  p.Gender,
			AirlineName:      airlineName,
			FlightNumber:     flight.FlightNumber,
			Route:            fmt.Sprintf("%s-%s", flight.OriginCode, flight.DestinationCode),
			DepartureAirport: flight.OriginCode,
			ArrivalAirport:   flight.DestinationCode,
			DepartureCity:    origin.City,
			ArrivalCity:      dest.City,
			DepartureTime:    flight.DepartureTime,
			ArrivalTime:      flight.ArrivalTime,
			SeatNumber:       seat.SeatNumber,
			SeatClass:        seat.Class,
			PricePaid:        math.Round((unitFare+seat.Surcharge)*100) / 100,
			Currency:         fareCurrency,
		})
	}
	return tickets, nil
}

// Pay settles a hold. A refused charge parks the booking in
// PendingPayment (retryable until the hold expires); success confirms
// the booking, sells its seats, and issues PNR and ticket numbers.
func (s *BookingService) Pay(ctx context.Context, req dtos.PaymentRequest) (*dtos.BookingResponse, error) {
	method := constants.PaymentMethod(req.Method)
	if !method.Valid() {
		return nil, common.NewError(constants.KindInvalidArgument, "unknown payment method %q", req.Method)
	}
	if req.Amount <= 0 {
		return nil, common.NewError(constants.KindInvalidArgument, "amount must be positive")
	}

	var (
		resp    *dtos.BookingResponse
		refused bool
	)

	err := common.Retry(ctx, s.retry, func() error {
		refused = false
		return s.store.WithTx(ctx, func(tx store.Tx) error {
			now := s.now().UTC()

			booking, err := tx.BookingByReferenceForUpdate(ctx, req.BookingReference)
			if err != nil {
				return err
			}
			if booking == nil {
				return common.NewError(constants.KindNotFound, "booking %s not found", req.BookingReference)
			}
			if !booking.Status.Payable() {
				return common.NewError(constants.KindInvalidState,
					"booking is %s, cannot pay", booking.Status)
			}
			if !now.Before(booking.HoldExpiresAt) {
				return common.NewError(constants.KindHoldExpired,
					"hold expired at %s", booking.HoldExpiresAt.Format(time.RFC3339))
			}
			// Tolerate minor-unit rounding on the wire.
			if booking.TotalFare-req.Amount > 0.01 {
				return common.NewError(constants.KindInvalidArgument,
					"amount %.2f does not cover total fare %.2f", req.Amount, booking.TotalFare)
			}

			transactionID, ok, err := s.gateway.Charge(ctx, booking.BookingReference, req.Amount, method)
			if err != nil {
				return common.WrapError(constants.KindInternal, err, "payment gateway unreachable")
			}

			payment := &entities.Payment{
				BookingReference: booking.BookingReference,
				Amount:           req.Amount,
				Method:           method,
				TransactionID:    transactionID,
			}

			if !ok {
				// Commit the failed attempt so the client can retry.
				refused = true
				payment.Status = constants.PaymentFailure
				if err := tx.InsertPayment(ctx, payment); err != nil {
					return err
				}
				booking.Status = constants.BookingPendingPayment
				if err := tx.UpdateBooking(ctx, booking); err != nil {
					return err
				}
				resp = bookingResponse(booking, nil)
				return nil
			}

			payment.Status = constants.PaymentSuccess
			if err := tx.InsertPayment(ctx, payment); err != nil {
				return err
			}

			pnr, err := s.newPNR(ctx, tx)
			if err != nil {
				return err
			}

			booking.Status = constants.BookingConfirmed
			booking.PaidAmount = req.Amount
			booking.PNR = &pnr
			booking.TransactionID = &transactionID
			if err := tx.UpdateBooking(ctx, booking); err != nil {
				return err
			}

			seatIDs, err := tx.SeatIDsByBooking(ctx, booking.ID)
			if err != nil {
				return err
			}
			if err := tx.UpdateSeatStatus(ctx, seatIDs, constants.SeatSold, &booking.ID); err != nil {
				return err
			}

			tickets, err := tx.TicketsByBooking(ctx, booking.ID)
			if err != nil {
				return err
			}
			for i := range tickets {
				number := "TKT" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
				if err := tx.SetTicketIssued(ctx, tickets[i].ID, number, now); err != nil {
					return err
				}
				tickets[i].TicketNumber = &number
				issued := now
				tickets[i].IssuedAt = &issued
			}

			resp = bookingResponse(booking, tickets)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if refused {
		if s.metrics != nil {
			s.metrics.PaymentFailuresTotal.Inc()
		}
		return resp, common.NewError(constants.KindPaymentFailed,
			"payment was refused, booking is retryable until the hold expires")
	}

	if s.metrics != nil {
		s.metrics.BookingsConfirmedTotal.Inc()
	}
	logging.Info("Booking confirmed",
		"booking_reference", resp.BookingReference,
		"pnr", *resp.PNR,
		"paid_amount", resp.PaidAmount,
	)

	// Post-commit, fire-and-forget: a receipt failure never unwinds a
	// confirmation.
	s.enqueueReceipt(ctx, resp, "", false)

	return resp, nil
}

// Cancel releases a booking by PNR. A PNR is issued only at confirmation,
// so the lookup reaches confirmed and already-cancelled bookings, not
// unpaid holds (those are released by ExpireDue). A confirmed booking
// returns its seats to the pool and keeps paid_amount for the downstream
// refund. Cancelled or Expired bookings are a no-op.
func (s *BookingService) Cancel(ctx context.Context, pnr string, actorUserID int64, actorRole constants.Role) (*dtos.BookingResponse, error) {
	var (
		resp      *dtos.BookingResponse
		wasActive bool
	)

	err := common.Retry(ctx, s.retry, func() error {
		wasActive = false
		return s.store.WithTx(ctx, func(tx store.Tx) error {
			booking, err := tx.BookingByPNRForUpdate(ctx, strings.ToUpper(pnr))
			if err != nil {
				return err
			}
			if booking == nil {
				return common.NewError(constants.KindNotFound, "no booking for PNR %s", pnr)
			}
			if actorRole == constants.RoleCustomer && booking.UserID != actorUserID {
				return common.NewError(constants.KindForbidden, "booking belongs to another user")
			}

			if booking.Status == constants.BookingCancelled || booking.Status == constants.BookingExpired {
				tickets, err := tx.TicketsByBooking(ctx, booking.ID)
				if err != nil {
					return err
				}
				resp = bookingResponse(booking, tickets)
				return nil
			}

			seatIDs, err := tx.SeatIDsByBooking(ctx, booking.ID)
			if err != nil {
				return err
			}
			if err := tx.UpdateSeatStatus(ctx, seatIDs, constants.SeatAvailable, nil); err != nil {
				return err
			}

			booking.Status = constants.BookingCancelled
			if err := tx.UpdateBooking(ctx, booking); err != nil {
				return err
			}

			tickets, err := tx.TicketsByBooking(ctx, booking.ID)
			if err != nil {
				return err
			}
			wasActive = true
			resp = bookingResponse(booking, tickets)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if wasActive {
		if s.metrics != nil {
			s.metrics.BookingsCancelledTotal.Inc()
		}
		logging.Info("Booking cancelled",
			"booking_reference", resp.BookingReference,
			"pnr", pnr,
			"paid_amount_retained", resp.PaidAmount,
		)
		if resp.PaidAmount > 0 {
			s.enqueueReceipt(ctx, resp, "", true)
		}
	}
	return resp, nil
}

// ExpireDue reaps lapsed holds, one short transaction per booking so no
// lock spans the sweep. Returns the number of bookings expired.
func (s *BookingService) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.store.ExpirableBookingIDs(ctx, now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return expired, err
		}
		// A started expiry completes even if ctx is cancelled meanwhile.
		txCtx := context.WithoutCancel(ctx)
		err := s.store.WithTx(txCtx, func(tx store.Tx) error {
			booking, err := tx.BookingByIDForUpdate(txCtx, id)
			if err != nil {
				return err
			}
			// Re-check under lock; a payment may have landed since the scan.
			if booking == nil || !booking.Status.Payable() || now.Before(booking.HoldExpiresAt) {
				return nil
			}

			seatIDs, err := tx.SeatIDsByBooking(txCtx, booking.ID)
			if err != nil {
				return err
			}
			if err := tx.UpdateSeatStatus(txCtx, seatIDs, constants.SeatAvailable, nil); err != nil {
				return err
			}

			booking.Status = constants.BookingExpired
			if err := tx.UpdateBooking(txCtx, booking); err != nil {
				return err
			}
			expired++
			return nil
		})
		if err != nil {
			logging.Error("Failed to expire booking", "booking_id", id, "error", err.Error())
			continue
		}
	}

	if expired > 0 && s.metrics != nil {
		s.metrics.BookingsExpiredTotal.Add(float64(expired))
	}
	return expired, nil
}

// GetByPNR returns the full booking record for its owner or staff.
func (s *BookingService) GetByPNR(ctx context.Context, pnr string, actorUserID int64, actorRole constants.Role) (*dtos.BookingResponse, error) {
	booking, err := s.store.BookingByPNR(ctx, strings.ToUpper(pnr))
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, common.NewError(constants.KindNotFound, "no booking for PNR %s", pnr)
	}
	if actorRole == constants.RoleCustomer && booking.UserID != actorUserID {
		return nil, common.NewError(constants.KindForbidden, "booking belongs to another user")
	}
	tickets, err := s.store.TicketsByBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	return bookingResponse(booking, tickets), nil
}

// GetByReference returns the booking for its opaque reference (used
// before a PNR exists).
func (s *BookingService) GetByReference(ctx context.Context, ref string) (*dtos.BookingResponse, error) {
	booking, err := s.store.BookingByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, common.NewError(constants.KindNotFound, "booking %s not found", ref)
	}
	tickets, err := s.store.TicketsByBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	return bookingResponse(booking, tickets), nil
}

// StatusByPNR is the redacted public view.
func (s *BookingService) StatusByPNR(ctx context.Context, pnr string) (*dtos.PNRStatusView, error) {
	booking, err := s.store.BookingByPNR(ctx, strings.ToUpper(pnr))
	if err != nil {
		return nil, err
	}
	if booking == nil || booking.PNR == nil {
		return nil, common.NewError(constants.KindNotFound, "no booking for PNR %s", pnr)
	}
	flight, err := s.store.FlightByID(ctx, booking.FlightID)
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, common.NewError(constants.KindInternal, "booking references missing flight %d", booking.FlightID)
	}
	tickets, err := s.store.TicketsByBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	return &dtos.PNRStatusView{
		PNR:           *booking.PNR,
		Status:        booking.Status,
		FlightNumber:  flight.FlightNumber,
		OriginCode:    flight.OriginCode,
		DestCode:      flight.DestinationCode,
		DepartureTime: flight.DepartureTime,
		Passengers:    len(tickets),
	}, nil
}

// PaymentByTransaction looks up one settlement record.
func (s *BookingService) PaymentByTransaction(ctx context.Context, transactionID string) (*dtos.PaymentInfo, error) {
	p, err := s.store.PaymentByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, common.NewError(constants.KindNotFound, "transaction %s not found", transactionID)
	}
	return &dtos.PaymentInfo{
		BookingReference: p.BookingReference,
		Amount:           p.Amount,
		Method:           p.Method,
		Status:           p.Status,
		TransactionID:    p.TransactionID,
		CreatedAt:        p.CreatedAt,
	}, nil
}

// newPNR draws from the restricted alphabet until the candidate is free
// among not-Expired bookings. The unique partial index is the final
// arbiter; this loop just keeps collisions out of the common path.
func (s *BookingService) newPNR(ctx context.Context, tx store.Tx) (string, error) {
	for attempt := 0; attempt < pnrMaxAttempts; attempt++ {
		candidate := randstr.String(pnrLength, pnrAlphabet)
		inUse, err := tx.PNRInUse(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !inUse {
			return candidate, nil
		}
	}
	return "", common.NewError(constants.KindInternal,
		"could not allocate a unique PNR after %d attempts", pnrMaxAttempts)
}

// enqueueReceipt pushes the post-commit receipt job. Best effort.
func (s *BookingService) enqueueReceipt(ctx context.Context, b *dtos.BookingResponse, email string, cancellation bool) {
	if s.queue == nil || b.PNR == nil {
		return
	}
	job := &common.ReceiptJob{
		PNR:              *b.PNR,
		BookingReference: b.BookingReference,
		Email:            email,
		Cancellation:     cancellation,
		EnqueuedAt:       s.now().UTC().Format(time.RFC3339),
	}
	if err := s.queue.EnqueueReceipt(ctx, ReceiptStream, job); err != nil {
		logging.Error("Failed to enqueue receipt job",
			"booking_reference", b.BookingReference,
			"error", err.Error(),
		)
	}
}

func bookingResponse(b *entities.Booking, tickets []entities.Ticket) *dtos.BookingResponse {
	resp := &dtos.BookingResponse{
		BookingReference: b.BookingReference,
		PNR:              b.PNR,
		FlightID:         b.FlightID,
		Tier:             b.Tier,
		Status:           b.Status,
		TotalFare:        b.TotalFare,
		PaidAmount:       b.PaidAmount,
		HoldExpiresAt:    b.HoldExpiresAt,
		TransactionID:    b.TransactionID,
		CreatedAt:        b.CreatedAt,
	}
	for _, t := range tickets {
		resp.Tickets = append(resp.Tickets, ticketInfo(t))
	}
	return resp
}

func ticketInfo(t entities.Ticket) dtos.TicketInfo {
	return dtos.TicketInfo{
		ID:               t.ID,
		PassengerName:    t.PassengerName,
		PassengerAge:     t.PassengerAge,
		PassengerGender:  t.PassengerGender,
		AirlineName:      t.AirlineName,
		FlightNumber:     t.FlightNumber,
		Route:            t.Route,
		DepartureAirport: t.DepartureAirport,
		ArrivalAirport:   t.ArrivalAirport,
		DepartureTime:    t.DepartureTime,
		ArrivalTime:      t.ArrivalTime,
		SeatNumber:       t.SeatNumber,
		SeatClass:        t.SeatClass,
		PricePaid:        t.PricePaid,
		Currency:         t.Currency,
		TicketNumber:     t.TicketNumber,
		IssuedAt:         t.IssuedAt,
	}
}
