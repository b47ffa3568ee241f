package constants

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// CabinTier is a fare bucket. The wire format matches the seat map column.
type CabinTier string

const (
	TierEconomy     CabinTier = "ECONOMY"
	TierEconomyFlex CabinTier = "ECONOMY_FLEX"
	TierBusiness    CabinTier = "BUSINESS"
	TierFirst       CabinTier = "FIRST"
)

// AllTiers in cabin order, front to back.
var AllTiers = []CabinTier{TierFirst, TierBusiness, TierEconomyFlex, TierEconomy}

func (t CabinTier) String() string { return string(t) }

func (t CabinTier) Valid() bool {
	switch t {
	case TierEconomy, TierEconomyFlex, TierBusiness, TierFirst:
		return true
	}
	return false
}

// ParseTier normalizes client input ("economy", "Economy_Flex", ...).
func ParseTier(s string) (CabinTier, bool) {
	t := CabinTier(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.Valid()
}

func (t *CabinTier) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case string:
		*t = CabinTier(v)
	case []byte:
		*t = CabinTier(v)
	default:
		return fmt.Errorf("CabinTier: cannot scan type %T", src)
	}
	return nil
}

func (t CabinTier) Value() (driver.Value, error) { return string(t), nil }

// FlightStatus mirrors the Postgres ENUM 'flight_status'
type FlightStatus string

const (
	FlightScheduled FlightStatus = "Scheduled"
	FlightBoarding  FlightStatus = "Boarding"
	FlightDelayed   FlightStatus = "Delayed"
	FlightDeparted  FlightStatus = "Departed"
	FlightLanded    FlightStatus = "Landed"
	FlightCancelled FlightStatus = "Cancelled"
)

func (s FlightStatus) String() string { return string(s) }

func (s FlightStatus) Valid() bool {
	switch s {
	case FlightScheduled, FlightBoarding, FlightDelayed, FlightDeparted, FlightLanded, FlightCancelled:
		return true
	}
	return false
}

// Bookable reports whether new holds may be created against the flight.
func (s FlightStatus) Bookable() bool {
	switch s {
	case FlightCancelled, FlightDeparted, FlightLanded:
		return false
	}
	return true
}

func (s *FlightStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = ""
	case string:
		*s = FlightStatus(v)
	case []byte:
		*s = FlightStatus(v)
	default:
		return fmt.Errorf("FlightStatus: cannot scan type %T", src)
	}
	return nil
}

func (s FlightStatus) Value() (driver.Value, error) { return string(s), nil }

// SeatStatus mirrors the Postgres ENUM 'seat_status'
type SeatStatus string

const (
	SeatAvailable SeatStatus = "Available"
	SeatHeld      SeatStatus = "Held"
	SeatSold      SeatStatus = "Sold"
)

func (s SeatStatus) String() string { return string(s) }

func (s *SeatStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = ""
	case string:
		*s = SeatStatus(v)
	case []byte:
		*s = SeatStatus(v)
	default:
		return fmt.Errorf("SeatStatus: cannot scan type %T", src)
	}
	return nil
}

func (s SeatStatus) Value() (driver.Value, error) { return string(s), nil }

// SeatPosition is the physical placement of a seat in its row.
type SeatPosition string

const (
	PositionWindow SeatPosition = "Window"
	PositionMiddle SeatPosition = "Middle"
	PositionAisle  SeatPosition = "Aisle"
)

func (p *SeatPosition) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = ""
	case string:
		*p = SeatPosition(v)
	case []byte:
		*p = SeatPosition(v)
	default:
		return fmt.Errorf("SeatPosition: cannot scan type %T", src)
	}
	return nil
}

func (p SeatPosition) Value() (driver.Value, error) { return string(p), nil }

// BookingStatus mirrors the Postgres ENUM 'booking_status'
type BookingStatus string

const (
	BookingHeld           BookingStatus = "Held"
	BookingPendingPayment BookingStatus = "PendingPayment"
	BookingConfirmed      BookingStatus = "Confirmed"
	BookingCancelled      BookingStatus = "Cancelled"
	BookingExpired        BookingStatus = "Expired"
)

func (s BookingStatus) String() string { return string(s) }

// Payable reports whether the booking can still accept a payment attempt.
func (s BookingStatus) Payable() bool {
	return s == BookingHeld || s == BookingPendingPayment
}

func (s *BookingStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = ""
	case string:
		*s = BookingStatus(v)
	case []byte:
		*s = BookingStatus(v)
	default:
		return fmt.Errorf("BookingStatus: cannot scan type %T", src)
	}
	return nil
}

func (s BookingStatus) Value() (driver.Value, error) { return string(s), nil }

// PaymentMethod mirrors the Postgres ENUM 'payment_method'
type PaymentMethod string

const (
	MethodCard       PaymentMethod = "Card"
	MethodUPI        PaymentMethod = "UPI"
	MethodNetBanking PaymentMethod = "NetBanking"
	MethodWallet     PaymentMethod = "Wallet"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCard, MethodUPI, MethodNetBanking, MethodWallet:
		return true
	}
	return false
}

func (m *PaymentMethod) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = ""
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(v)
	default:
		return fmt.Errorf("PaymentMethod: cannot scan type %T", src)
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) { return string(m), nil }

// PaymentStatus mirrors the Postgres ENUM 'payment_status'
type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "Success"
	PaymentFailure PaymentStatus = "Failed"
)

func (s *PaymentStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = ""
	case string:
		*s = PaymentStatus(v)
	case []byte:
		*s = PaymentStatus(v)
	default:
		return fmt.Errorf("PaymentStatus: cannot scan type %T", src)
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) { return string(s), nil }
