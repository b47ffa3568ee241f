package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skylane/concourse/internal/common"
	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/models/dtos"
	"skylane/concourse/internal/store/memstore"
)

func confirmedBooking(t *testing.T, ms *memstore.MemStore, svc *BookingService) *dtos.BookingResponse {
	t.Helper()
	ctx := context.Background()

	hold, err := svc.CreateHold(ctx, holdRequest(seedEconomyFlight(ms, 3), 1))
	require.NoError(t, err)
	paid, err := svc.Pay(ctx, dtos.PaymentRequest{
		BookingReference: hold.BookingReference, Amount: hold.TotalFare, Method: "Card",
	})
	require.NoError(t, err)
	return paid
}

func TestReceipt_RenderContainsBookingFacts(t *testing.T) {
	ms := memstore.New()
	bookings := newTestBookingService(ms, &stubGateway{approve: true})
	paid := confirmedBooking(t, ms, bookings)

	receipts := NewReceiptService(ms, common.NewHTMLReceiptRenderer())
	body, contentType, err := receipts.Render(context.Background(), *paid.PNR)
	require.NoError(t, err)

	html := string(body)
	assert.Contains(t, contentType, "text/html")
	assert.Contains(t, html, *paid.PNR)
	assert.Contains(t, html, paid.BookingReference)
	assert.Contains(t, html, "DEL-BOM")
	assert.Contains(t, html, "Passenger 1")
	assert.NotContains(t, html, "BOOKING CANCELLED")
}

func TestReceipt_CancellationFlagAfterCancel(t *testing.T) {
	ms := memstore.New()
	bookings := newTestBookingService(ms, &stubGateway{approve: true})
	paid := confirmedBooking(t, ms, bookings)

	_, err := bookings.Cancel(context.Background(), *paid.PNR, 7, constants.RoleCustomer)
	require.NoError(t, err)

	receipts := NewReceiptService(ms, common.NewHTMLReceiptRenderer())
	record, err := receipts.Record(context.Background(), strings.ToLower(*paid.PNR))
	require.NoError(t, err)
	assert.True(t, record.Cancelled)
	assert.Equal(t, paid.PaidAmount, record.PaidAmount)
}

func TestReceipt_UnpaidHoldHasNoReceipt(t *testing.T) {
	ms := memstore.New()
	bookings := newTestBookingService(ms, &stubGateway{approve: true})
	flightID := seedEconomyFlight(ms, 3)

	_, err := bookings.CreateHold(context.Background(), holdRequest(flightID, 1))
	require.NoError(t, err)

	receipts := NewReceiptService(ms, common.NewHTMLReceiptRenderer())
	_, _, err = receipts.Render(context.Background(), "ZZZZZZ")
	require.Error(t, err)
	assert.Equal(t, constants.KindNotFound, common.KindOf(err))
}
