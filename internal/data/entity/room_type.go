package entity

import "github.com/google/uuid"

type RoomType struct {
	Base
	PropertyID     uuid.UUID `db:"property_id"`
	Name           string    `db:"name"`
	Price          float64   `db:"price"`
	Currency       string    `db:"currency"`
	Capacity       int       `db:"capacity"` // occupants per unit, informational only
	TotalRooms     int       `db:"total_rooms"`
	AvailableRooms int       `db:"available_rooms"`
	IsAvailable    bool      `db:"is_available"`
	IsActive       bool      `db:"is_active"`
}

// Bookable reports whether the room type accepts new reservations at all.
// The stock count is checked separately by the conditional decrement.
func (rt *RoomType) Bookable() bool {
	return rt.IsActive && rt.IsAvailable
}
