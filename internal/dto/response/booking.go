package response

import (
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/dto/request"
)

type BookingResponse struct {
	ID            string               `json:"id"`
	BookingRef    string               `json:"booking_ref"`
	CarID         string               `json:"car_id"`
	UserID        string               `json:"user_id"`
	StartDate     string               `json:"start_date"`
	EndDate       string               `json:"end_date"`
	TotalDays     int                  `json:"total_days"`
	PricePerDay   float64              `json:"price_per_day"`
	TotalAmount   float64              `json:"total_amount"`
	Extras        []entity.Extra       `json:"extras,omitempty"`
	Status        entity.BookingStatus `json:"status"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	PaymentRef    *string              `json:"payment_ref,omitempty"`
	Pickup        entity.Location      `json:"pickup_location"`
	Dropoff       entity.Location      `json:"dropoff_location"`
	DriverLicense entity.DriverLicense `json:"driver_license"`
	Notes         string               `json:"notes,omitempty"`

	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancellationDate   *time.Time `json:"cancellation_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AvailabilityResponse struct {
	CarID     string `json:"car_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Available bool   `json:"available"`
}

// Helper converter
func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            booking.ID.String(),
		BookingRef:    booking.BookingRef,
		CarID:         booking.CarID.String(),
		UserID:        booking.UserID.String(),
		StartDate:     booking.Range.Start.Format(request.DateLayout),
		EndDate:       booking.Range.End.Format(request.DateLayout),
		TotalDays:     booking.TotalDays,
		PricePerDay:   booking.PricePerDay,
		TotalAmount:   booking.TotalAmount,
		Extras:        booking.Extras,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		PaymentRef:    booking.PaymentRef,
		Pickup:        booking.Pickup,
		Dropoff:       booking.Dropoff,
		DriverLicense: booking.DriverLicense,
		Notes:         booking.Notes,

		CancellationReason: booking.CancellationReason,
		CancellationDate:   booking.CancellationDate,

		CreatedAt: booking.CreatedAt,
		UpdatedAt: booking.UpdatedAt,
	}
}
