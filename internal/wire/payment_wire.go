package wire

import (
	"rental-booking/internal/adaptor"
	"rental-booking/internal/data/repository"
	"rental-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/payments/initialize - Start a hosted-checkout session
		r.Post("/api/payments/initialize", paymentHandler.InitializePayment)

		// GET /api/payments/verify/{reference} - Poll gateway and confirm
		r.Get("/api/payments/verify/{reference}", paymentHandler.VerifyPayment)
	})

	// ==================== PUBLIC ROUTES ====================
	// POST /api/payments/webhook - Gateway push, HMAC signature checked in handler
	r.Post("/api/payments/webhook", paymentHandler.Webhook)
}
