package repository

import (
	"context"
	"errors"
	"fmt"

	"car-rental/internal/data/entity"
	"car-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CarRepository is the booking core's read-only view of the car catalog.
// Catalog writes happen elsewhere.
type CarRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error)
}

type carRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCarRepository(db database.PgxIface, log *zap.Logger) CarRepository {
	return &carRepository{
		db:  db,
		log: log.With(zap.String("repository", "car")),
	}
}

func (r *carRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	query := `
		SELECT id, make, model, year, license_plate, price_per_day, status,
		       created_at, updated_at, deleted_at
		FROM cars
		WHERE id = $1 AND deleted_at IS NULL
	`

	var car entity.Car
	err := r.db.QueryRow(ctx, query, id).Scan(
		&car.ID,
		&car.Make,
		&car.Model,
		&car.Year,
		&car.LicensePlate,
		&car.PricePerDay,
		&car.Status,
		&car.CreatedAt,
		&car.UpdatedAt,
		&car.DeletedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: car %s", entity.ErrNotFound, id.String())
	}
	if err != nil {
		r.log.Error("Failed to find car by ID",
			zap.Error(err),
			zap.String("car_id", id.String()),
		)
		return nil, fmt.Errorf("%w: find car %s: %v", entity.ErrUnavailable, id.String(), err)
	}

	return &car, nil
}
