package common

import (
	"bytes"
	"html/template"

	"skylane/concourse/internal/models/dtos"
)

// ReceiptRenderer turns a structured receipt record into document bytes.
// PDF rendering is delegated to an external service implementing this
// same interface; the HTML renderer below ships in-tree for local use.
type ReceiptRenderer interface {
	Render(record dtos.ReceiptRecord) ([]byte, error)
	ContentType() string
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head><title>{{if .Cancelled}}Cancellation{{else}}Booking{{end}} Receipt {{.PNR}}</title></head>
<body>
<h1>{{.AirlineName}} — {{.FlightNumber}}</h1>
{{if .Cancelled}}<p><strong>BOOKING CANCELLED</strong></p>{{end}}
<p>PNR: <strong>{{.PNR}}</strong> · Reference: {{.BookingReference}}</p>
<p>{{.Route}} · Departs {{.DepartureTime.Format "02 Jan 2006 15:04 MST"}} · Arrives {{.ArrivalTime.Format "02 Jan 2006 15:04 MST"}}</p>
<table border="1" cellpadding="4">
<tr><th>Passenger</th><th>Seat</th><th>Class</th><th>Ticket</th><th>Fare</th></tr>
{{range .Tickets}}<tr>
<td>{{.PassengerName}}</td>
<td>{{.SeatNumber}}</td>
<td>{{.SeatClass}}</td>
<td>{{if .TicketNumber}}{{.TicketNumber}}{{end}}</td>
<td>{{printf "%.2f" .PricePaid}} {{.Currency}}</td>
</tr>{{end}}
</table>
<p>Total fare: {{printf "%.2f" .TotalFare}} · Paid: {{printf "%.2f" .PaidAmount}}</p>
<p>Transaction {{.TransactionID}} · {{.PaidAt.Format "02 Jan 2006 15:04 MST"}}</p>
</body>
</html>
`))

// HTMLReceiptRenderer is the in-process fallback renderer.
type HTMLReceiptRenderer struct{}

var _ ReceiptRenderer = (*HTMLReceiptRenderer)(nil)

func NewHTMLReceiptRenderer() *HTMLReceiptRenderer { return &HTMLReceiptRenderer{} }

func (r *HTMLReceiptRenderer) Render(record dtos.ReceiptRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, record); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *HTMLReceiptRenderer) ContentType() string { return "text/html; charset=utf-8" }
