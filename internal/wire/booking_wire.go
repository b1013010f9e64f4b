package wire

import (
	"car-rental/internal/adaptor"
	"car-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	log *zap.Logger,
) {
	// ==================== REQUESTER ROUTES (identity required) ====================
	// The upstream gateway authenticates and passes the requester in X-User-ID.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// POST /api/bookings - Reserve a car for a date range
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/user/bookings - Requester's booking history
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)

		// Lifecycle transitions
		r.Put("/api/bookings/{id}/confirm", bookingHandler.ConfirmBooking)
		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)
		r.Put("/api/bookings/{id}/complete", bookingHandler.CompleteBooking)
		r.Put("/api/bookings/{id}/refund", bookingHandler.RefundBooking)

		// GET /api/bookings/{id} - Booking details
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

		// GET /api/cars/{id}/bookings - Bookings on a car, optional ?status=
		r.Get("/api/cars/{id}/bookings", bookingHandler.GetCarBookings)
	})

	// ==================== PUBLIC ROUTES ====================
	// GET /api/cars/{id}/availability?start=&end= - Advisory availability check
	r.Get("/api/cars/{id}/availability", bookingHandler.CheckAvailability)

	// ==================== COLLABORATOR ROUTES ====================
	// POST /api/payments/callback - Payment provider outcome webhook
	r.Post("/api/payments/callback", bookingHandler.PaymentCallback)
}
