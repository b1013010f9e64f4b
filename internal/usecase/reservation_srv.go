package usecase

import (
	"context"
	"fmt"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"
	"car-rental/pkg/lock"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	// Booking creation and queries
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetCarBookings(ctx context.Context, carID string, statusFilter string) ([]response.BookingResponse, error)
	CheckAvailability(ctx context.Context, carID, startDate, endDate string) (*response.AvailabilityResponse, error)

	// Lifecycle
	ConfirmBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string, req *request.CancelBookingRequest) (*response.BookingResponse, error)
	CompleteBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	RefundBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)

	// Payment collaborator callback
	RecordPayment(ctx context.Context, req *request.PaymentCallbackRequest) (*response.BookingResponse, error)

	// Activation sweep, invoked periodically by the scheduler
	ActivateDue(ctx context.Context, now time.Time) (int, error)
}

type reservationService struct {
	repo  *repository.Repository
	locks *lock.Keyed
	log   *zap.Logger
	now   func() time.Time
}

func NewReservationService(repo *repository.Repository, locks *lock.Keyed, log *zap.Logger) ReservationService {
	return &reservationService{
		repo:  repo,
		locks: locks,
		log:   log.With(zap.String("service", "reservation")),
		now:   time.Now,
	}
}

func carLockKey(id uuid.UUID) string     { return "car:" + id.String() }
func bookingLockKey(id uuid.UUID) string { return "booking:" + id.String() }

func (s *reservationService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	// Parse IDs
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID %s", entity.ErrInvalidInput, userID)
	}

	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid car ID %s", entity.ErrInvalidInput, req.CarID)
	}

	rng, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	// Rejecting past start dates happens once, here. The range is immutable
	// afterwards; changing dates means cancel + recreate.
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if rng.Start.Before(today) {
		return nil, fmt.Errorf("%w: start date cannot be in the past", entity.ErrInvalidInput)
	}

	license, err := parseDriverLicense(req.DriverLicense)
	if err != nil {
		return nil, err
	}
	if !license.ValidAt(now) {
		return nil, fmt.Errorf("%w: driver license expired on %s", entity.ErrInvalidInput, license.ExpiryDate.Format(request.DateLayout))
	}

	// Capture the car's current daily rate. Later catalog price changes must
	// not touch existing bookings.
	car, err := s.repo.Car.FindByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if !car.Bookable() {
		return nil, fmt.Errorf("%w: car %s is not available for booking (status %s)", entity.ErrInvalidInput, carID.String(), car.Status)
	}

	extras := make([]entity.Extra, len(req.Extras))
	for i, extra := range req.Extras {
		extras[i] = entity.Extra{Name: extra.Name, Amount: extra.Amount}
	}

	totalDays := rng.Days()
	totalAmount, err := Quote(car.PricePerDay, totalDays, extras)
	if err != nil {
		return nil, err
	}

	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingRef:    utils.GenerateBookingRef(),
		CarID:         carID,
		UserID:        userUUID,
		Range:         rng,
		PricePerDay:   car.PricePerDay,
		TotalDays:     totalDays,
		TotalAmount:   totalAmount,
		Extras:        extras,
		Status:        entity.BookingStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
		Pickup:        locationFromRequest(req.Pickup),
		Dropoff:       locationFromRequest(req.Dropoff),
		DriverLicense: license,
		Notes:         req.Notes,
	}

	// Check-then-insert must be atomic per car: two concurrent creates for
	// overlapping ranges must not both pass the overlap check. Different cars
	// proceed in parallel. Nothing under this lock waits on external I/O
	// beyond the store itself, and the DB exclusion constraint backstops us.
	unlock := s.locks.Lock(carLockKey(carID))
	defer unlock()

	conflicts, err := s.repo.Booking.FindOverlapping(ctx, carID, rng)
	if err != nil {
		s.log.Error("Failed to check booking conflicts",
			zap.Error(err),
			zap.String("car_id", carID.String()),
		)
		return nil, err
	}
	if len(conflicts) > 0 {
		s.log.Info("Booking rejected, dates conflict",
			zap.String("car_id", carID.String()),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
			zap.String("conflicting_ref", conflicts[0].BookingRef),
		)
		return nil, fmt.Errorf("%w: car %s is already booked from %s to %s",
			entity.ErrConflict,
			carID.String(),
			conflicts[0].Range.Start.Format(request.DateLayout),
			conflicts[0].Range.End.Format(request.DateLayout),
		)
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_ref", booking.BookingRef),
		zap.String("car_id", carID.String()),
		zap.String("user_id", userID),
		zap.Int("total_days", totalDays),
		zap.Float64("total_amount", totalAmount),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *reservationService) GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking ID %s", entity.ErrInvalidInput, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *reservationService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID %s", entity.ErrInvalidInput, userID)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, err
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, err
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *reservationService) GetCarBookings(ctx context.Context, carID string, statusFilter string) ([]response.BookingResponse, error) {
	id, err := uuid.Parse(carID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid car ID %s", entity.ErrInvalidInput, carID)
	}

	var statuses []entity.BookingStatus
	if statusFilter != "" {
		status, err := parseStatus(statusFilter)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}

	bookings, err := s.repo.Booking.FindByCarID(ctx, id, statuses)
	if err != nil {
		s.log.Error("Failed to get car bookings",
			zap.Error(err),
			zap.String("car_id", carID),
		)
		return nil, err
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return bookingResponses, nil
}

// CheckAvailability answers the same overlap question a create would, without
// mutating anything. It is advisory: the answer can go stale the moment it is
// returned, and a later create failing with a conflict is authoritative.
func (s *reservationService) CheckAvailability(ctx context.Context, carID, startDate, endDate string) (*response.AvailabilityResponse, error) {
	id, err := uuid.Parse(carID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid car ID %s", entity.ErrInvalidInput, carID)
	}

	rng, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	// Same catalog gate as create: a car that cannot be booked is never
	// available, whatever its booking calendar says.
	car, err := s.repo.Car.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !car.Bookable() {
		return &response.AvailabilityResponse{
			CarID:     carID,
			StartDate: startDate,
			EndDate:   endDate,
			Available: false,
		}, nil
	}

	conflicts, err := s.repo.Booking.FindOverlapping(ctx, id, rng)
	if err != nil {
		s.log.Error("Failed to check availability",
			zap.Error(err),
			zap.String("car_id", carID),
		)
		return nil, err
	}

	return &response.AvailabilityResponse{
		CarID:     carID,
		StartDate: startDate,
		EndDate:   endDate,
		Available: len(conflicts) == 0,
	}, nil
}

func (s *reservationService) ConfirmBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	return s.transition(ctx, bookingID, "confirm", func(booking *entity.Booking) error {
		return booking.Confirm(s.now())
	})
}

func (s *reservationService) CancelBooking(ctx context.Context, bookingID string, req *request.CancelBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking ID %s", entity.ErrInvalidInput, bookingID)
	}

	unlockBooking := s.locks.Lock(bookingLockKey(id))
	defer unlockBooking()

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Cancelling releases the interval from the car's conflict set, so the
	// car lock is held until the cancelled row is persisted. Lock order is
	// booking then car; create takes only the car lock, so no cycle.
	unlockCar := s.locks.Lock(carLockKey(booking.CarID))
	defer unlockCar()

	previous := booking.Status
	if err := booking.Cancel(req.Reason, s.now()); err != nil {
		s.log.Warn("Booking transition rejected",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("event", "cancel"),
			zap.String("status", string(previous)),
		)
		return nil, err
	}

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info("Booking transitioned",
		zap.String("booking_id", bookingID),
		zap.String("booking_ref", booking.BookingRef),
		zap.String("event", "cancel"),
		zap.String("from", string(previous)),
		zap.String("to", string(booking.Status)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *reservationService) CompleteBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	return s.transition(ctx, bookingID, "complete", func(booking *entity.Booking) error {
		return booking.Complete(s.now())
	})
}

func (s *reservationService) RefundBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	return s.transition(ctx, bookingID, "refund", func(booking *entity.Booking) error {
		return booking.Refund(s.now())
	})
}

func (s *reservationService) RecordPayment(ctx context.Context, req *request.PaymentCallbackRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Payment callback validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	outcome := entity.PaymentOutcome(req.Outcome)

	resp, err := s.transition(ctx, req.BookingID, "record payment", func(booking *entity.Booking) error {
		return booking.RecordPayment(outcome, req.PaymentRef, s.now())
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Payment outcome recorded",
		zap.String("booking_id", req.BookingID),
		zap.String("outcome", req.Outcome),
		zap.String("status", string(resp.Status)),
		zap.String("payment_status", string(resp.PaymentStatus)),
	)

	return resp, nil
}

// ActivateDue sweeps confirmed bookings whose rental period has started into
// active. Idempotent: re-running on the same bookings is a no-op, so the
// external scheduler may fire at-least-once. Returns how many bookings were
// activated this pass.
func (s *reservationService) ActivateDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.repo.Booking.FindDueForActivation(ctx, now)
	if err != nil {
		s.log.Error("Failed to find bookings due for activation", zap.Error(err))
		return 0, err
	}

	activated := 0
	for _, candidate := range due {
		if _, err := s.transition(ctx, candidate.ID.String(), "activate", func(booking *entity.Booking) error {
			return booking.Activate(now)
		}); err != nil {
			// A booking cancelled between the query and the lock is fine;
			// log and keep sweeping.
			s.log.Warn("Failed to activate booking",
				zap.Error(err),
				zap.String("booking_id", candidate.ID.String()),
			)
			continue
		}
		activated++
	}

	if activated > 0 {
		s.log.Info("Activation sweep finished",
			zap.Int("due", len(due)),
			zap.Int("activated", activated),
		)
	}

	return activated, nil
}

// transition loads a booking under its per-booking lock, applies one
// lifecycle event and persists the result. The apply func only mutates the
// booking when the transition is legal, so a failure leaves no partial state.
func (s *reservationService) transition(ctx context.Context, bookingID string, event string, apply func(*entity.Booking) error) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking ID %s", entity.ErrInvalidInput, bookingID)
	}

	unlock := s.locks.Lock(bookingLockKey(id))
	defer unlock()

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := booking.Status
	if err := apply(booking); err != nil {
		s.log.Warn("Booking transition rejected",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("event", event),
			zap.String("status", string(previous)),
		)
		return nil, err
	}

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		return nil, err
	}

	if booking.Status != previous {
		s.log.Info("Booking transitioned",
			zap.String("booking_id", bookingID),
			zap.String("booking_ref", booking.BookingRef),
			zap.String("event", event),
			zap.String("from", string(previous)),
			zap.String("to", string(booking.Status)),
		)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func parseRange(startDate, endDate string) (entity.DateRange, error) {
	start, err := time.Parse(request.DateLayout, startDate)
	if err != nil {
		return entity.DateRange{}, fmt.Errorf("%w: invalid start date %q, want YYYY-MM-DD", entity.ErrInvalidInput, startDate)
	}
	end, err := time.Parse(request.DateLayout, endDate)
	if err != nil {
		return entity.DateRange{}, fmt.Errorf("%w: invalid end date %q, want YYYY-MM-DD", entity.ErrInvalidInput, endDate)
	}
	return entity.NewDateRange(start, end)
}

func parseStatus(status string) (entity.BookingStatus, error) {
	switch s := entity.BookingStatus(status); s {
	case entity.BookingStatusPending, entity.BookingStatusConfirmed, entity.BookingStatusActive,
		entity.BookingStatusCompleted, entity.BookingStatusCancelled, entity.BookingStatusRefunded:
		return s, nil
	}
	return "", fmt.Errorf("%w: unknown booking status %q", entity.ErrInvalidInput, status)
}

func parseDriverLicense(req request.DriverLicenseRequest) (entity.DriverLicense, error) {
	expiry, err := time.Parse(request.DateLayout, req.ExpiryDate)
	if err != nil {
		return entity.DriverLicense{}, fmt.Errorf("%w: invalid license expiry date %q, want YYYY-MM-DD", entity.ErrInvalidInput, req.ExpiryDate)
	}
	return entity.DriverLicense{Number: req.Number, ExpiryDate: expiry}, nil
}

func locationFromRequest(loc request.LocationRequest) entity.Location {
	return entity.Location{
		Address: loc.Address,
		City:    loc.City,
		State:   loc.State,
		ZipCode: loc.ZipCode,
	}
}
