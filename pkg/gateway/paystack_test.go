package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rental-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewPaystackClient(utils.PaystackConfig{
		SecretKey:   "sk_test_123",
		BaseURL:     server.URL,
		CallbackURL: "https://app.example.com/payments/callback",
	}, zap.NewNop())
}

func TestInitializeTransaction(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req InitializeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "guest@example.com", req.Email)
		assert.Equal(t, int64(10800), req.Amount)
		assert.Equal(t, "RB_abc_1", req.Reference)
		assert.Equal(t, "https://app.example.com/payments/callback", req.CallbackURL)

		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]any{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code":       "abc123",
				"reference":         req.Reference,
			},
		})
	})

	data, err := client.InitializeTransaction(context.Background(), InitializeRequest{
		Email:     "guest@example.com",
		Amount:    10800,
		Currency:  "NGN",
		Reference: "RB_abc_1",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.paystack.com/abc123", data.AuthorizationURL)
	assert.Equal(t, "abc123", data.AccessCode)
	assert.Equal(t, "RB_abc_1", data.Reference)
}

func TestVerifyTransaction(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transaction/verify/RB_abc_2", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]any{
				"status":    "success",
				"reference": "RB_abc_2",
				"amount":    10800,
				"currency":  "NGN",
				"paid_at":   "2026-08-31T10:00:00Z",
				"customer": map[string]any{
					"email": "guest@example.com",
					"phone": "+2348012345678",
				},
			},
		})
	})

	data, err := client.VerifyTransaction(context.Background(), "RB_abc_2")
	require.NoError(t, err)

	assert.Equal(t, TransactionStatusSuccess, data.Status)
	assert.Equal(t, int64(10800), data.Amount)
	assert.Equal(t, "+2348012345678", data.Customer.Phone)
}

func TestRejectedEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "Invalid key",
		})
	})

	_, err := client.VerifyTransaction(context.Background(), "RB_abc_3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid key")
}

func TestFalseStatusWithOKResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "Transaction reference not found",
		})
	})

	_, err := client.VerifyTransaction(context.Background(), "RB_abc_4")
	assert.Error(t, err)
}
