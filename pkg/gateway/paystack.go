// Package gateway talks to the hosted-checkout payment provider.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

// TransactionStatusSuccess is the provider's status for a settled charge.
const TransactionStatusSuccess = "success"

// Client abstracts the payment provider so services can be tested against
// a fake.
type Client interface {
	InitializeTransaction(ctx context.Context, req InitializeRequest) (*InitializeData, error)
	VerifyTransaction(ctx context.Context, reference string) (*VerifyData, error)
}

type InitializeRequest struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"` // smallest currency subunit
	Currency    string `json:"currency,omitempty"`
	Reference   string `json:"reference"`
	CallbackURL string `json:"callback_url,omitempty"`
}

type InitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type Customer struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type VerifyData struct {
	Status    string   `json:"status"`
	Reference string   `json:"reference"`
	Amount    int64    `json:"amount"`
	Currency  string   `json:"currency"`
	PaidAt    string   `json:"paid_at"`
	Customer  Customer `json:"customer"`
}

// envelope is the provider's uniform response wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type paystackClient struct {
	baseURL     string
	secretKey   string
	callbackURL string
	http        *http.Client
	log         *zap.Logger
}

func NewPaystackClient(config utils.PaystackConfig, log *zap.Logger) Client {
	return &paystackClient{
		baseURL:     config.BaseURL,
		secretKey:   config.SecretKey,
		callbackURL: config.CallbackURL,
		http:        &http.Client{Timeout: 15 * time.Second},
		log:         log.With(zap.String("component", "paystack")),
	}
}

func (c *paystackClient) InitializeTransaction(ctx context.Context, req InitializeRequest) (*InitializeData, error) {
	if req.CallbackURL == "" {
		req.CallbackURL = c.callbackURL
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal initialize request: %w", err)
	}

	var data InitializeData
	if err := c.request(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(body), &data); err != nil {
		return nil, fmt.Errorf("initialize transaction %s: %w", req.Reference, err)
	}

	return &data, nil
}

func (c *paystackClient) VerifyTransaction(ctx context.Context, reference string) (*VerifyData, error) {
	path := "/transaction/verify/" + url.PathEscape(reference)

	var data VerifyData
	if err := c.request(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, fmt.Errorf("verify transaction %s: %w", reference, err)
	}

	return &data, nil
}

func (c *paystackClient) request(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read gateway response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.log.Error("Gateway returned malformed response",
			zap.Int("status_code", resp.StatusCode),
			zap.String("path", path),
		)
		return fmt.Errorf("decode gateway response (HTTP %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Status {
		return fmt.Errorf("gateway rejected request (HTTP %d): %s", resp.StatusCode, env.Message)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode gateway data: %w", err)
		}
	}

	return nil
}
