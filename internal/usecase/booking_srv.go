package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/internal/queue"
	"rental-booking/pkg/database"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Public endpoints (require auth)
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	CancelUserBooking(ctx context.Context, userID string, bookingID string) (*response.BookingResponse, error)

	// Admin endpoints
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo      *repository.Repository
	db        database.PgxIface
	publisher *queue.Publisher
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, db database.PgxIface, publisher *queue.Publisher, log *zap.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		db:        db,
		publisher: publisher,
		log:       log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, ErrValidation)
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("invalid property ID format %s: %w", req.PropertyID, ErrValidation)
	}

	roomTypeID, err := uuid.Parse(req.RoomTypeID)
	if err != nil {
		return nil, fmt.Errorf("invalid room type ID format %s: %w", req.RoomTypeID, ErrValidation)
	}

	// Date check comes first: a past check-in must be rejected before any
	// inventory state is read.
	checkInDate, err := time.ParseInLocation("2006-01-02", req.CheckInDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid check-in date %q: %w", req.CheckInDate, ErrValidation)
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if checkInDate.Before(today) {
		return nil, fmt.Errorf("check-in date %s: %w", req.CheckInDate, ErrPastCheckIn)
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	property, err := s.repo.Property.FindByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("load property: %w", err)
	}
	if property == nil || !property.IsActive {
		return nil, fmt.Errorf("property %s: %w", req.PropertyID, ErrNotFound)
	}

	roomType, err := s.repo.RoomType.FindByID(ctx, roomTypeID)
	if err != nil {
		return nil, fmt.Errorf("load room type: %w", err)
	}
	if roomType == nil || roomType.PropertyID != propertyID {
		return nil, fmt.Errorf("room type %s: %w", req.RoomTypeID, ErrNotFound)
	}

	if !roomType.Bookable() || roomType.AvailableRooms <= 0 {
		return nil, fmt.Errorf("room type %s: %w", req.RoomTypeID, ErrInventoryUnavailable)
	}

	// Price and currency are frozen onto the booking at creation time.
	totalAmount, err := ComputeTotal(roomType.Price)
	if err != nil {
		s.log.Error("Room type has an invalid price",
			zap.Error(err),
			zap.String("room_type_id", req.RoomTypeID),
			zap.Float64("price", roomType.Price),
		)
		return nil, fmt.Errorf("compute total for room type %s: %w", req.RoomTypeID, err)
	}

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      userUUID,
		PropertyID:  propertyID,
		RoomTypeID:  roomTypeID,
		CheckInDate: checkInDate,
		TotalAmount: totalAmount,
		Currency:    roomType.Currency,
		Status:      entity.BookingStatusPending,
	}

	// The conditional decrement and the booking insert commit together, so
	// a failed insert can never leave a reserved-but-orphaned unit and a
	// lost race on the last unit aborts before anything is persisted.
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.RoomType.ReserveUnitTx(ctx, tx, roomTypeID); err != nil {
		if errors.Is(err, repository.ErrNoUnits) {
			return nil, fmt.Errorf("room type %s: %w", req.RoomTypeID, ErrInventoryUnavailable)
		}
		return nil, fmt.Errorf("reserve unit: %w", err)
	}

	if err := s.repo.Booking.CreateTx(ctx, tx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("room_type_id", req.RoomTypeID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit booking transaction: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID),
		zap.String("room_type_id", req.RoomTypeID),
		zap.Float64("total_amount", totalAmount),
		zap.String("currency", booking.Currency),
	)

	s.publisher.Publish(ctx, queue.QueueBookingCreated, queue.NewBookingEvent(booking))

	return s.buildBookingResponse(ctx, booking), nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, ErrValidation)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = *s.buildBookingResponse(ctx, booking)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) CancelUserBooking(ctx context.Context, userID string, bookingID string) (*response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, ErrValidation)
	}

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// A foreign booking is reported as missing, not as forbidden.
	if booking.UserID != userUUID {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	return s.cancel(ctx, booking)
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.buildBookingResponse(ctx, booking), nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, booking)
}

func (s *bookingService) UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	newStatus := entity.BookingStatus(req.Status)
	if !entity.ValidStatus(newStatus) {
		return nil, fmt.Errorf("status %q: %w", req.Status, ErrInvalidStatus)
	}

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Terminal bookings reject every transition, including a restatement
	// of their own status.
	if booking.Status == entity.BookingStatusCancelled {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrAlreadyCancelled)
	}
	if booking.IsTerminal() {
		return nil, fmt.Errorf("booking %s is %s: %w", bookingID, booking.Status, ErrTerminalState)
	}

	if newStatus == booking.Status {
		return s.buildBookingResponse(ctx, booking), nil
	}

	switch newStatus {
	case entity.BookingStatusCancelled:
		// Cancellation always goes through the releasing path, whichever
		// entry point triggered it.
		return s.cancel(ctx, booking)

	case entity.BookingStatusConfirmed:
		if req.PaymentReference != nil && *req.PaymentReference != "" {
			if err := s.repo.Booking.SetPaymentReference(ctx, booking.ID, *req.PaymentReference); err != nil {
				return nil, fmt.Errorf("set payment reference: %w", err)
			}
			if err := s.repo.Booking.Confirm(ctx, booking.ID); err != nil {
				return nil, fmt.Errorf("confirm booking: %w", err)
			}
			booking.PaymentReference = req.PaymentReference
			booking.IsPaid = true
		} else {
			if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, newStatus); err != nil {
				return nil, fmt.Errorf("update booking status: %w", err)
			}
		}
		booking.Status = entity.BookingStatusConfirmed
		s.publisher.Publish(ctx, queue.QueueBookingConfirmed, queue.NewBookingEvent(booking))

	default:
		if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, newStatus); err != nil {
			return nil, fmt.Errorf("update booking status: %w", err)
		}
		booking.Status = newStatus
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("status", string(newStatus)),
	)

	return s.buildBookingResponse(ctx, booking), nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) loadBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, ErrValidation)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	return booking, nil
}

// cancel transitions the booking to cancelled and returns its unit to the
// room type's pool in one transaction. Double-cancel and cancel of a
// completed booking are rejected before anything is written.
func (s *bookingService) cancel(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	if booking.Status == entity.BookingStatusCancelled {
		return nil, fmt.Errorf("booking %s: %w", booking.ID.String(), ErrAlreadyCancelled)
	}
	if !booking.CanCancel() {
		return nil, fmt.Errorf("booking %s is %s: %w", booking.ID.String(), booking.Status, ErrTerminalState)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin cancel transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.Booking.UpdateStatusTx(ctx, tx, booking.ID, entity.BookingStatusCancelled); err != nil {
		return nil, fmt.Errorf("cancel booking %s: %w", booking.ID.String(), err)
	}

	if err := s.repo.RoomType.ReleaseUnitTx(ctx, tx, booking.RoomTypeID); err != nil {
		return nil, fmt.Errorf("release unit: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit cancel transaction: %w", err)
	}

	booking.Status = entity.BookingStatusCancelled

	s.log.Info("Booking cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("room_type_id", booking.RoomTypeID.String()),
	)

	s.publisher.Publish(ctx, queue.QueueBookingCancelled, queue.NewBookingEvent(booking))

	return s.buildBookingResponse(ctx, booking), nil
}

func (s *bookingService) buildBookingResponse(ctx context.Context, booking *entity.Booking) *response.BookingResponse {
	var propertyName, roomTypeName string

	property, _ := s.repo.Property.FindByID(ctx, booking.PropertyID)
	if property != nil {
		propertyName = property.Name
	}

	roomType, _ := s.repo.RoomType.FindByID(ctx, booking.RoomTypeID)
	if roomType != nil {
		roomTypeName = roomType.Name
	}

	resp := response.BookingToResponse(booking)
	resp.PropertyName = propertyName
	resp.RoomTypeName = roomTypeName
	return resp
}
