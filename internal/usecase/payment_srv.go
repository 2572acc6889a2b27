package usecase

import (
	"context"
	"fmt"
	"math"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/internal/queue"
	"rental-booking/pkg/cache"
	"rental-booking/pkg/gateway"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// webhookEventChargeSuccess is the only gateway event that mutates state.
const webhookEventChargeSuccess = "charge.success"

type PaymentService interface {
	InitializePayment(ctx context.Context, userID string, req *request.InitializePaymentRequest) (*response.InitializePaymentResponse, error)
	VerifyPayment(ctx context.Context, userID string, reference string) (*response.VerifyPaymentResponse, error)

	// HandleWebhook processes a gateway push. It only returns an error for
	// conditions the gateway should retry; an unknown reference is logged
	// and swallowed so the HTTP layer can answer 200.
	HandleWebhook(ctx context.Context, event *request.WebhookEvent) error
}

type paymentService struct {
	repo      *repository.Repository
	gateway   gateway.Client
	dedupe    *cache.Dedupe
	publisher *queue.Publisher
	refPrefix string
	log       *zap.Logger
}

func NewPaymentService(
	repo *repository.Repository,
	gw gateway.Client,
	dedupe *cache.Dedupe,
	publisher *queue.Publisher,
	refPrefix string,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		repo:      repo,
		gateway:   gw,
		dedupe:    dedupe,
		publisher: publisher,
		refPrefix: refPrefix,
		log:       log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) InitializePayment(ctx context.Context, userID string, req *request.InitializePaymentRequest) (*response.InitializePaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Initialize payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, ErrValidation)
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", req.BookingID, ErrValidation)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil || booking.UserID != userUUID {
		return nil, fmt.Errorf("booking %s: %w", req.BookingID, ErrNotFound)
	}

	if booking.Status != entity.BookingStatusPending {
		return nil, fmt.Errorf("booking %s is %s: %w", req.BookingID, booking.Status, ErrTerminalState)
	}

	email := req.Email
	if email == "" {
		user, err := s.repo.User.FindByID(ctx, userUUID)
		if err != nil {
			return nil, fmt.Errorf("load user: %w", err)
		}
		if user == nil {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		email = user.Email
	}

	// A booking that was already initialized keeps its stored reference, so
	// a webhook for the earlier checkout session still resolves to it.
	var reference string
	if booking.PaymentReference != nil && *booking.PaymentReference != "" {
		reference = *booking.PaymentReference
		s.log.Info("Re-initializing payment with stored reference",
			zap.String("booking_id", req.BookingID),
			zap.String("reference", reference),
		)
	} else {
		reference = utils.GeneratePaymentReference(s.refPrefix, booking.ID)
	}

	// Gateway works in the smallest currency subunit.
	amount := int64(math.Round(booking.TotalAmount * 100))

	init, err := s.gateway.InitializeTransaction(ctx, gateway.InitializeRequest{
		Email:     email,
		Amount:    amount,
		Currency:  booking.Currency,
		Reference: reference,
	})
	if err != nil {
		// The booking and its reserved unit stay untouched so the client
		// can retry initialization.
		s.log.Error("Gateway initialize failed",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
			zap.String("reference", reference),
		)
		return nil, fmt.Errorf("initialize transaction for booking %s: %w", req.BookingID, ErrGateway)
	}

	if booking.PaymentReference == nil || *booking.PaymentReference != reference {
		if err := s.repo.Booking.SetPaymentReference(ctx, booking.ID, reference); err != nil {
			return nil, fmt.Errorf("persist payment reference: %w", err)
		}
	}

	s.log.Info("Payment initialized",
		zap.String("booking_id", req.BookingID),
		zap.String("reference", reference),
		zap.Int64("amount", amount),
		zap.String("currency", booking.Currency),
	)

	return &response.InitializePaymentResponse{
		AuthorizationURL: init.AuthorizationURL,
		AccessCode:       init.AccessCode,
		Reference:        init.Reference,
	}, nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, userID string, reference string) (*response.VerifyPaymentResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, ErrValidation)
	}

	booking, err := s.repo.Booking.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("load booking by reference: %w", err)
	}
	if booking == nil || booking.UserID != userUUID {
		return nil, fmt.Errorf("reference %s: %w", reference, ErrNotFound)
	}

	verify, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		// Booking stays pending, unit stays reserved; the user may still
		// complete payment and re-verify.
		s.log.Error("Gateway verify failed",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return nil, fmt.Errorf("verify transaction %s: %w", reference, ErrGateway)
	}

	if verify.Status == gateway.TransactionStatusSuccess {
		if err := s.confirmBooking(ctx, booking, verify.Customer.Phone); err != nil {
			return nil, err
		}
	}

	return &response.VerifyPaymentResponse{
		Booking: *response.BookingToResponse(booking),
		Gateway: response.GatewayPayment{
			Status:    verify.Status,
			Reference: verify.Reference,
			Amount:    verify.Amount,
			Currency:  verify.Currency,
			PaidAt:    verify.PaidAt,
		},
	}, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, event *request.WebhookEvent) error {
	if event.Event != webhookEventChargeSuccess {
		s.log.Debug("Ignoring webhook event", zap.String("event", event.Event))
		return nil
	}

	reference := event.Data.Reference
	if reference == "" {
		s.log.Warn("Webhook charge.success without reference")
		return nil
	}

	// Only deliveries whose confirm already completed are skipped; the key
	// is recorded after the transition, so a failed confirm leaves the
	// gateway's retry path open.
	dedupeKey := "webhook:" + reference
	if s.dedupe.Seen(ctx, dedupeKey) {
		s.log.Info("Duplicate webhook delivery skipped", zap.String("reference", reference))
		return nil
	}

	booking, err := s.repo.Booking.FindByReference(ctx, reference)
	if err != nil {
		return fmt.Errorf("load booking by reference: %w", err)
	}
	if booking == nil {
		// Unrecoverable mismatch: acknowledge so the gateway stops
		// retrying.
		s.log.Warn("Webhook for unknown payment reference",
			zap.String("reference", reference),
		)
		return nil
	}

	if err := s.confirmBooking(ctx, booking, event.Data.Customer.Phone); err != nil {
		return err
	}

	s.dedupe.MarkDelivered(ctx, dedupeKey)

	return nil
}

// confirmBooking is the single convergence point for both confirmation
// paths (client-polled verify and gateway webhook). Re-confirming an
// already-confirmed booking is a no-op; a terminal booking is left alone
// and logged.
func (s *paymentService) confirmBooking(ctx context.Context, booking *entity.Booking, phone string) error {
	s.backfillPhone(ctx, booking.UserID, phone)

	if !booking.CanConfirm() {
		if booking.Status != entity.BookingStatusConfirmed {
			s.log.Warn("Payment succeeded for a booking that is no longer confirmable",
				zap.String("booking_id", booking.ID.String()),
				zap.String("status", string(booking.Status)),
			)
		}
		return nil
	}

	if err := s.repo.Booking.Confirm(ctx, booking.ID); err != nil {
		return fmt.Errorf("confirm booking %s: %w", booking.ID.String(), err)
	}

	booking.Status = entity.BookingStatusConfirmed
	booking.IsPaid = true

	s.log.Info("Booking confirmed",
		zap.String("booking_id", booking.ID.String()),
	)

	s.publisher.Publish(ctx, queue.QueueBookingConfirmed, queue.NewBookingEvent(booking))

	return nil
}

// backfillPhone copies the payer's phone number onto the user record when
// the user has none. Failures are logged and never block confirmation.
func (s *paymentService) backfillPhone(ctx context.Context, userID uuid.UUID, phone string) {
	if phone == "" {
		return
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil || user == nil {
		s.log.Warn("Phone backfill: failed to load user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return
	}

	if user.Phone != nil && *user.Phone != "" {
		return
	}

	if err := s.repo.User.UpdatePhone(ctx, userID, phone); err != nil {
		s.log.Warn("Phone backfill failed",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
	}
}
