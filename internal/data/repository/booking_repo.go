package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error

	// Business queries
	FindByCarID(ctx context.Context, carID uuid.UUID, statuses []entity.BookingStatus) ([]*entity.Booking, error)
	FindOverlapping(ctx context.Context, carID uuid.UUID, rng entity.DateRange) ([]*entity.Booking, error)
	FindDueForActivation(ctx context.Context, now time.Time) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_ref, car_id, user_id, start_date, end_date,
	price_per_day, total_days, total_amount, extras, status, payment_status, payment_ref,
	pickup_location, dropoff_location, driver_license, notes, cancellation_reason, cancellation_date,
	created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.BookingRef,
		&booking.CarID,
		&booking.UserID,
		&booking.Range.Start,
		&booking.Range.End,
		&booking.PricePerDay,
		&booking.TotalDays,
		&booking.TotalAmount,
		&booking.Extras,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentRef,
		&booking.Pickup,
		&booking.Dropoff,
		&booking.DriverLicense,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancellationDate,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_ref, car_id, user_id, start_date, end_date,
			price_per_day, total_days, total_amount, extras, status, payment_status, payment_ref,
			pickup_location, dropoff_location, driver_license, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.BookingRef,
		booking.CarID,
		booking.UserID,
		booking.Range.Start,
		booking.Range.End,
		booking.PricePerDay,
		booking.TotalDays,
		booking.TotalAmount,
		booking.Extras,
		booking.Status,
		booking.PaymentStatus,
		booking.PaymentRef,
		booking.Pickup,
		booking.Dropoff,
		booking.DriverLicense,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		// The bookings table carries an exclusion constraint on
		// (car_id, daterange) for active statuses. Hitting it means another
		// writer got the interval first.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23P01" || pgErr.Code == "23505") {
			return fmt.Errorf("%w: car %s is already booked for the requested dates", entity.ErrConflict, booking.CarID.String())
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_ref", booking.BookingRef),
			zap.String("car_id", booking.CarID.String()),
		)
		return fmt.Errorf("%w: create booking %s: %v", entity.ErrUnavailable, booking.BookingRef, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: booking %s", entity.ErrNotFound, id.String())
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("%w: find booking %s: %v", entity.ErrUnavailable, id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("%w: find bookings by user %s: %v", entity.ErrUnavailable, userID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("%w: count bookings by user %s: %v", entity.ErrUnavailable, userID.String(), err)
	}

	return count, nil
}

// Update persists the mutable part of a booking: lifecycle status, payment
// fields and cancellation info. Identity, dates and captured price never
// change after creation.
func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, payment_status = $3, payment_ref = $4,
		    cancellation_reason = $5, cancellation_date = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Status,
		booking.PaymentStatus,
		booking.PaymentRef,
		booking.CancellationReason,
		booking.CancellationDate,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("%w: update booking %s: %v", entity.ErrUnavailable, booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: booking %s", entity.ErrNotFound, booking.ID.String())
	}

	return nil
}

func (r *bookingRepository) FindByCarID(ctx context.Context, carID uuid.UUID, statuses []entity.BookingStatus) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE car_id = $1 AND ($2::text[] IS NULL OR status = ANY($2))
		ORDER BY start_date
	`

	var filter []string
	for _, s := range statuses {
		filter = append(filter, string(s))
	}

	rows, err := r.db.Query(ctx, query, carID, filter)
	if err != nil {
		r.log.Error("Failed to find bookings by car ID",
			zap.Error(err),
			zap.String("car_id", carID.String()),
		)
		return nil, fmt.Errorf("%w: find bookings by car %s: %v", entity.ErrUnavailable, carID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// FindOverlapping returns bookings on the car that still hold their interval
// and intersect the half-open range. Served by the
// (car_id, start_date, end_date, status) index, no full scan.
func (r *bookingRepository) FindOverlapping(ctx context.Context, carID uuid.UUID, rng entity.DateRange) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE car_id = $1
		  AND status IN ('pending', 'confirmed', 'active')
		  AND start_date < $3
		  AND end_date > $2
		ORDER BY start_date
	`

	rows, err := r.db.Query(ctx, query, carID, rng.Start, rng.End)
	if err != nil {
		r.log.Error("Failed to find overlapping bookings",
			zap.Error(err),
			zap.String("car_id", carID.String()),
			zap.Time("start_date", rng.Start),
			zap.Time("end_date", rng.End),
		)
		return nil, fmt.Errorf("%w: find overlapping bookings for car %s: %v", entity.ErrUnavailable, carID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) FindDueForActivation(ctx context.Context, now time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'confirmed' AND start_date <= $1
		ORDER BY start_date
	`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to find bookings due for activation", zap.Error(err))
		return nil, fmt.Errorf("%w: find bookings due for activation: %v", entity.ErrUnavailable, err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan booking row: %v", entity.ErrUnavailable, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate booking rows: %v", entity.ErrUnavailable, err)
	}
	return bookings, nil
}
