// Package queue publishes booking lifecycle events to the message broker
// for the external notification collaborators.
package queue

import (
	"time"

	"rental-booking/internal/data/entity"
)

const (
	QueueBookingCreated   = "booking.created"
	QueueBookingConfirmed = "booking.confirmed"
	QueueBookingCancelled = "booking.cancelled"
)

// BookingEvent carries enough information for downstream consumers to
// notify or log without querying the primary database.
type BookingEvent struct {
	BookingID   string  `json:"booking_id"`
	UserID      string  `json:"user_id"`
	PropertyID  string  `json:"property_id"`
	RoomTypeID  string  `json:"room_type_id"`
	Status      string  `json:"status"`
	CheckInDate string  `json:"check_in_date"`
	TotalAmount float64 `json:"total_amount"`
	Currency    string  `json:"currency"`
	IsPaid      bool    `json:"is_paid"`
	OccurredAt  string  `json:"occurred_at"`
}

func NewBookingEvent(b *entity.Booking) BookingEvent {
	return BookingEvent{
		BookingID:   b.ID.String(),
		UserID:      b.UserID.String(),
		PropertyID:  b.PropertyID.String(),
		RoomTypeID:  b.RoomTypeID.String(),
		Status:      string(b.Status),
		CheckInDate: b.CheckInDate.Format("2006-01-02"),
		TotalAmount: b.TotalAmount,
		Currency:    b.Currency,
		IsPaid:      b.IsPaid,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	}
}
