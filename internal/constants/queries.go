package constants

const (
	LockFlightByID = `
	SELECT * FROM flights WHERE id = $1 FOR UPDATE
	`

	SeatsByIDsForUpdate = `
	SELECT * FROM seats
	WHERE flight_id = $1 AND id = ANY($2)
	ORDER BY seat_number
	FOR UPDATE
	`

	AvailableSeatsForUpdate = `
	SELECT * FROM seats
	WHERE flight_id = $1 AND class = $2 AND status = 'Available'
	ORDER BY seat_number
	LIMIT $3
	FOR UPDATE
	`

	UpdateSeatStatus = `
	UPDATE seats SET status = $1, booking_id = $2 WHERE id = ANY($3)
	`

	SeatTierCounts = `
	SELECT class,
	       COUNT(*) FILTER (WHERE status = 'Available') AS available,
	       COUNT(*) AS total
	FROM seats WHERE flight_id = $1
	GROUP BY class
	`

	InsertBooking = `
	INSERT INTO bookings (
		booking_reference, pnr, user_id, flight_id, tier,
		status, total_fare, paid_amount, hold_expires_at, transaction_id,
		created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
	RETURNING id, created_at, updated_at
	`

	BookingByReferenceForUpdate = `
	SELECT * FROM bookings WHERE booking_reference = $1 FOR UPDATE
	`

	BookingByPNRForUpdate = `
	SELECT * FROM bookings WHERE pnr = $1 AND status <> 'Expired' FOR UPDATE
	`

	BookingByIDForUpdate = `
	SELECT * FROM bookings WHERE id = $1 FOR UPDATE
	`

	UpdateBooking = `
	UPDATE bookings
	SET pnr = $2, status = $3, total_fare = $4, paid_amount = $5,
	    hold_expires_at = $6, transaction_id = $7, updated_at = now()
	WHERE id = $1
	`

	SeatIDsByBooking = `
	SELECT id FROM seats WHERE booking_id = $1 ORDER BY seat_number
	`

	InsertTicket = `
	INSERT INTO tickets (
		booking_id, flight_id, seat_id,
		passenger_name, passenger_age, passenger_gender,
		airline_name, flight_number, route,
		departure_airport, arrival_airport, departure_city, arrival_city,
		departure_time, arrival_time, seat_number, seat_class,
		price_paid, currency, ticket_number, issued_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	RETURNING id
	`

	TicketsByBooking = `
	SELECT * FROM tickets WHERE booking_id = $1 ORDER BY id
	`

	SetTicketIssued = `
	UPDATE tickets SET ticket_number = $2, issued_at = $3 WHERE id = $1
	`

	InsertPayment = `
	INSERT INTO payments (booking_reference, amount, method, status, transaction_id, created_at)
	VALUES ($1, $2, $3, $4, $5, now())
	RETURNING id, created_at
	`

	PNRInUse = `
	SELECT EXISTS (SELECT 1 FROM bookings WHERE pnr = $1 AND status <> 'Expired')
	`

	UpdateFlightDemand = `
	UPDATE flights SET demand_index = $2, updated_at = now() WHERE id = $1
	`

	InsertFareSample = `
	INSERT INTO fare_history (flight_id, tier, fare, demand_index, sampled_at)
	VALUES ($1, $2, $3, $4, $5)
	`

	FlightByID = `
	SELECT * FROM flights WHERE id = $1
	`

	BookingByPNR = `
	SELECT * FROM bookings WHERE pnr = $1 AND status <> 'Expired'
	`

	BookingByReference = `
	SELECT * FROM bookings WHERE booking_reference = $1
	`

	PaymentByTransactionID = `
	SELECT * FROM payments WHERE transaction_id = $1
	`

	ExpirableBookingIDs = `
	SELECT id FROM bookings
	WHERE status IN ('Held', 'PendingPayment') AND hold_expires_at <= $1
	ORDER BY id
	`

	SimulatorFlights = `
	SELECT * FROM flights
	WHERE departure_time > $1 AND status NOT IN ('Cancelled', 'Departed', 'Landed')
	ORDER BY id
	`
)
