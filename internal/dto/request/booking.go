package request

type CreateBookingRequest struct {
	PropertyID  string `json:"property_id" validate:"required,uuid4"`
	RoomTypeID  string `json:"room_type_id" validate:"required,uuid4"`
	CheckInDate string `json:"check_in_date" validate:"required,datetime=2006-01-02"`
}

// UpdateBookingStatusRequest is the generic administrative transition. The
// status value is checked by the service so an unknown value reports a
// proper invalid-status error rather than a generic validation failure.
type UpdateBookingStatusRequest struct {
	Status           string  `json:"status" validate:"required"`
	PaymentReference *string `json:"payment_reference,omitempty"`
}
