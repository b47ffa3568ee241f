package services

import (
	"context"
	"strings"

	"skylane/concourse/internal/common"
	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/models/dtos"
	"skylane/concourse/internal/store"
)

// ReceiptService assembles the structured receipt record for a paid
// booking and hands it to a renderer. The record is the contract; the
// bytes are whatever the configured renderer produces.
type ReceiptService struct {
	store    store.Store
	renderer common.ReceiptRenderer
}

func NewReceiptService(st store.Store, renderer common.ReceiptRenderer) *ReceiptService {
	return &ReceiptService{store: st, renderer: renderer}
}

// Record builds the receipt record for a PNR. Only bookings that saw a
// successful payment have receipts.
func (s *ReceiptService) Record(ctx context.Context, pnr string) (*dtos.ReceiptRecord, error) {
	booking, err := s.store.BookingByPNR(ctx, strings.ToUpper(pnr))
	if err != nil {
		return nil, err
	}
	if booking == nil || booking.PNR == nil {
		return nil, common.NewError(constants.KindNotFound, "no booking for PNR %s", pnr)
	}
	if booking.TransactionID == nil || booking.PaidAmount == 0 {
		return nil, common.NewError(constants.KindInvalidState,
			"booking %s has no completed payment", *booking.PNR)
	}

	tickets, err := s.store.TicketsByBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if len(tickets) == 0 {
		return nil, common.NewError(constants.KindInternal, "booking %s has no tickets", *booking.PNR)
	}

	payment, err := s.store.PaymentByTransactionID(ctx, *booking.TransactionID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, common.NewError(constants.KindInternal,
			"payment %s missing for booking %s", *booking.TransactionID, *booking.PNR)
	}

	record := &dtos.ReceiptRecord{
		PNR:              *booking.PNR,
		BookingReference: booking.BookingReference,
		FlightNumber:     tickets[0].FlightNumber,
		AirlineName:      tickets[0].AirlineName,
		Route:            tickets[0].Route,
		DepartureTime:    tickets[0].DepartureTime,
		ArrivalTime:      tickets[0].ArrivalTime,
		TotalFare:        booking.TotalFare,
		PaidAmount:       booking.PaidAmount,
		PaidAt:           payment.CreatedAt,
		TransactionID:    payment.TransactionID,
		Cancelled:        booking.Status == constants.BookingCancelled,
	}
	for _, t := range tickets {
		record.Tickets = append(record.Tickets, ticketInfo(t))
	}
	return record, nil
}

// Render produces the receipt document bytes for a PNR.
func (s *ReceiptService) Render(ctx context.Context, pnr string) ([]byte, string, error) {
	record, err := s.Record(ctx, pnr)
	if err != nil {
		return nil, "", err
	}
	body, err := s.renderer.Render(*record)
	if err != nil {
		return nil, "", common.WrapError(constants.KindInternal, err, "receipt rendering failed")
	}
	return body, s.renderer.ContentType(), nil
}
