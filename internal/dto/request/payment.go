package request

type InitializePaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
}

// WebhookEvent is the provider-defined envelope pushed to the webhook
// receiver.
type WebhookEvent struct {
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}

type WebhookData struct {
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	Amount    int64           `json:"amount"`
	Currency  string          `json:"currency"`
	PaidAt    string          `json:"paid_at"`
	Customer  WebhookCustomer `json:"customer"`
}

type WebhookCustomer struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}
