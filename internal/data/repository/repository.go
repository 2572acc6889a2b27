package repository

import (
	"rental-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Property PropertyRepository
	RoomType RoomTypeRepository
	Booking  BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Property: NewPropertyRepository(db, log),
		RoomType: NewRoomTypeRepository(db, log),
		Booking:  NewBookingRepository(db, log),
	}
}
