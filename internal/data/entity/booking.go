package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// ValidStatus reports whether s is one of the four known lifecycle values.
func ValidStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

type Booking struct {
	Base
	UserID           uuid.UUID     `db:"user_id"`
	PropertyID       uuid.UUID     `db:"property_id"`
	RoomTypeID       uuid.UUID     `db:"room_type_id"`
	CheckInDate      time.Time     `db:"check_in_date"`
	TotalAmount      float64       `db:"total_amount"`
	Currency         string        `db:"currency"`
	Status           BookingStatus `db:"status"`
	PaymentReference *string       `db:"payment_reference"`
	IsPaid           bool          `db:"is_paid"`
}

// IsTerminal reports whether the booking can never transition again.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCancelled || b.Status == BookingStatusCompleted
}

// CanCancel reports whether a cancel request is allowed. Pending and
// confirmed bookings release their unit back to inventory; terminal
// bookings are rejected.
func (b *Booking) CanCancel() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// CanConfirm reports whether a payment confirmation should mutate the
// booking. Confirming an already-confirmed booking is treated as a no-op
// by callers to keep verify and webhook idempotent.
func (b *Booking) CanConfirm() bool {
	return b.Status == BookingStatusPending
}
