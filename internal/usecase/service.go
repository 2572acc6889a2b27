package usecase

import (
	"rental-booking/internal/data/repository"
	"rental-booking/internal/queue"
	"rental-booking/pkg/cache"
	"rental-booking/pkg/database"
	"rental-booking/pkg/gateway"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking BookingService
	Payment PaymentService
}

func NewService(
	repo *repository.Repository,
	db database.PgxIface,
	gw gateway.Client,
	publisher *queue.Publisher,
	dedupe *cache.Dedupe,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Booking: NewBookingService(repo, db, publisher, log),
		Payment: NewPaymentService(repo, gw, dedupe, publisher, config.Paystack.ReferencePrefix, log),
	}
}
