package repository

import (
	"car-rental/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Booking BookingRepository
	Car     CarRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Booking: NewBookingRepository(db, log),
		Car:     NewCarRepository(db, log),
	}
}
