package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusRefunded  BookingStatus = "refunded"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Extra is a named add-on charged once on top of the daily rate
// (child seat, GPS, insurance).
type Extra struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Location is a pickup or dropoff address block.
type Location struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

// DriverLicense is the license the requester will drive on, captured at
// booking time.
type DriverLicense struct {
	Number     string    `json:"number"`
	ExpiryDate time.Time `json:"expiry_date"`
}

// ValidAt reports whether the license is still valid at the given instant.
// Checked once, at creation; a license expiring mid-rental is the rental
// desk's problem, not the booking core's.
func (d DriverLicense) ValidAt(now time.Time) bool {
	return d.ExpiryDate.After(now)
}

type Booking struct {
	BaseNoDelete
	BookingRef    string        `db:"booking_ref"`
	CarID         uuid.UUID     `db:"car_id"`
	UserID        uuid.UUID     `db:"user_id"`
	Range         DateRange
	PricePerDay   float64       `db:"price_per_day"`
	TotalDays     int           `db:"total_days"`
	TotalAmount   float64       `db:"total_amount"`
	Extras        []Extra       `db:"extras"`
	Status        BookingStatus `db:"status"`
	PaymentStatus PaymentStatus `db:"payment_status"`
	PaymentRef    *string       `db:"payment_ref"`
	Pickup        Location      `db:"pickup_location"`
	Dropoff       Location      `db:"dropoff_location"`
	DriverLicense DriverLicense `db:"driver_license"`
	Notes         string        `db:"notes"`

	CancellationReason *string    `db:"cancellation_reason"`
	CancellationDate   *time.Time `db:"cancellation_date"`
}

// HoldsInterval reports whether the booking still occupies its date range for
// conflict purposes. Cancelled, refunded and completed bookings free their
// interval.
func (b *Booking) HoldsInterval() bool {
	switch b.Status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusActive:
		return true
	}
	return false
}
