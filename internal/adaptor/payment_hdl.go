package adaptor

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"rental-booking/internal/dto/request"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service       usecase.PaymentService
	webhookSecret string
	log           *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, webhookSecret string, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service:       service,
		webhookSecret: webhookSecret,
		log:           log.With(zap.String("handler", "payment")),
	}
}

// InitializePayment handles POST /api/payments/initialize (protected)
func (h *PaymentHandler) InitializePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.InitializePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	payment, err := h.service.InitializePayment(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "initialize payment")
		return
	}

	utils.ResponseSuccess(w, "success", payment)
}

// VerifyPayment handles GET /api/payments/verify/{reference} (protected)
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reference := chi.URLParam(r, "reference")
	if reference == "" {
		utils.ResponseBadRequest(w, "Payment reference is required", nil)
		return
	}

	result, err := h.service.VerifyPayment(r.Context(), userID.String(), reference)
	if err != nil {
		handleServiceError(w, h.log, err, "verify payment")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// Webhook handles POST /api/payments/webhook (public, signature-checked).
// Unknown references are acknowledged with 200 so the gateway does not
// retry an unrecoverable mismatch forever.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if !h.verifySignature(body, r.Header.Get("x-paystack-signature")) {
		h.log.Warn("Webhook signature mismatch", zap.String("ip", r.RemoteAddr))
		utils.ResponseUnauthorized(w, "Invalid signature")
		return
	}

	var event request.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		utils.ResponseBadRequest(w, "Invalid webhook payload", nil)
		return
	}

	if err := h.service.HandleWebhook(r.Context(), &event); err != nil {
		handleServiceError(w, h.log, err, "process webhook")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// verifySignature checks the provider's HMAC-SHA512 body signature. An
// unset secret disables the check (local/test environments).
func (h *PaymentHandler) verifySignature(body []byte, signature string) bool {
	if h.webhookSecret == "" {
		return true
	}
	if signature == "" {
		return false
	}

	mac := hmac.New(sha512.New, []byte(h.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
