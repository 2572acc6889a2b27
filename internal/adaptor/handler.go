package adaptor

import (
	"errors"
	"net/http"

	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking *BookingHandler
	Payment *PaymentHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Booking: NewBookingHandler(service.Booking, log),
		Payment: NewPaymentHandler(service.Payment, config.Paystack.WebhookSecret, log),
	}
}

// handleServiceError maps usecase sentinels onto HTTP statuses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrPastCheckIn),
		errors.Is(err, usecase.ErrInvalidStatus):
		log.Warn(operation+" failed - invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrInventoryUnavailable):
		log.Warn(operation+" failed - no stock", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrAlreadyCancelled),
		errors.Is(err, usecase.ErrTerminalState):
		log.Warn(operation+" failed - invalid transition", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrGateway):
		log.Error(operation+" failed - gateway", zap.Error(err))
		utils.ResponseBadGateway(w, errMsg)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
