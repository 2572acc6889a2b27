package response

type InitializePaymentResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// GatewayPayment mirrors the provider's view of the charge. Amount is in
// the smallest currency subunit, as the provider reports it.
type GatewayPayment struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	PaidAt    string `json:"paid_at,omitempty"`
}

type VerifyPaymentResponse struct {
	Booking BookingResponse `json:"booking"`
	Gateway GatewayPayment  `json:"gateway"`
}
