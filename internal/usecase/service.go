package usecase

import (
	"car-rental/internal/data/repository"
	"car-rental/pkg/lock"
	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Reservation ReservationService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	locks := lock.NewKeyed()
	return &Service{
		Reservation: NewReservationService(repo, locks, log),
	}
}
