package adaptor

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakePaymentService struct {
	handled *request.WebhookEvent
}

func (s *fakePaymentService) InitializePayment(ctx context.Context, userID string, req *request.InitializePaymentRequest) (*response.InitializePaymentResponse, error) {
	return nil, nil
}

func (s *fakePaymentService) VerifyPayment(ctx context.Context, userID string, reference string) (*response.VerifyPaymentResponse, error) {
	return nil, nil
}

func (s *fakePaymentService) HandleWebhook(ctx context.Context, event *request.WebhookEvent) error {
	s.handled = event
	return nil
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestWebhookAcceptsSignedPayload(t *testing.T) {
	service := &fakePaymentService{}
	handler := NewPaymentHandler(service, "whsec_test", zap.NewNop())

	body := []byte(`{"event":"charge.success","data":{"reference":"RB_abc_1","status":"success"}}`)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(body))
	req.Header.Set("x-paystack-signature", sign("whsec_test", body))
	rec := httptest.NewRecorder()

	handler.Webhook(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.NotNil(t, service.handled) {
		assert.Equal(t, "charge.success", service.handled.Event)
		assert.Equal(t, "RB_abc_1", service.handled.Data.Reference)
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	service := &fakePaymentService{}
	handler := NewPaymentHandler(service, "whsec_test", zap.NewNop())

	body := []byte(`{"event":"charge.success","data":{"reference":"RB_abc_2"}}`)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(body))
	req.Header.Set("x-paystack-signature", sign("wrong_secret", body))
	rec := httptest.NewRecorder()

	handler.Webhook(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, service.handled)
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	service := &fakePaymentService{}
	handler := NewPaymentHandler(service, "whsec_test", zap.NewNop())

	body := []byte(`{"event":"charge.success","data":{"reference":"RB_abc_3"}}`)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Webhook(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookSkipsCheckWithoutSecret(t *testing.T) {
	service := &fakePaymentService{}
	handler := NewPaymentHandler(service, "", zap.NewNop())

	body := []byte(`{"event":"charge.success","data":{"reference":"RB_abc_4"}}`)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Webhook(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, service.handled)
}
