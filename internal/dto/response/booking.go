package response

import (
	"time"

	"rental-booking/internal/data/entity"
)

type BookingResponse struct {
	ID               string               `json:"id"`
	UserID           string               `json:"user_id"`
	PropertyID       string               `json:"property_id"`
	PropertyName     string               `json:"property_name,omitempty"`
	RoomTypeID       string               `json:"room_type_id"`
	RoomTypeName     string               `json:"room_type_name,omitempty"`
	CheckInDate      string               `json:"check_in_date"`
	TotalAmount      float64              `json:"total_amount"`
	Currency         string               `json:"currency"`
	Status           entity.BookingStatus `json:"status"`
	PaymentReference *string              `json:"payment_reference,omitempty"`
	IsPaid           bool                 `json:"is_paid"`
	CreatedAt        time.Time            `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking) *BookingResponse {
	return &BookingResponse{
		ID:               booking.ID.String(),
		UserID:           booking.UserID.String(),
		PropertyID:       booking.PropertyID.String(),
		RoomTypeID:       booking.RoomTypeID.String(),
		CheckInDate:      booking.CheckInDate.Format("2006-01-02"),
		TotalAmount:      booking.TotalAmount,
		Currency:         booking.Currency,
		Status:           booking.Status,
		PaymentReference: booking.PaymentReference,
		IsPaid:           booking.IsPaid,
		CreatedAt:        booking.CreatedAt,
	}
}
