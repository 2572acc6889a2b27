package usecase

import (
	"context"
	"sync"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/pkg/cache"
	"rental-booking/pkg/database"
	"rental-booking/pkg/gateway"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// fakeTx records commit/rollback calls. The repository fakes never touch
// the SQL surface, so Query/QueryRow/Exec are inert.
type fakeTx struct {
	commits   int
	rollbacks int
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.commits++
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rollbacks++
	return nil
}

type fakeDB struct {
	mu       sync.Mutex
	tx       *fakeTx
	beginErr error
}

func (d *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (d *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (d *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (d *fakeDB) Begin(ctx context.Context) (database.Tx, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.beginErr != nil {
		return nil, d.beginErr
	}
	d.tx = &fakeTx{}
	return d.tx, nil
}

func (d *fakeDB) Ping(ctx context.Context) error { return nil }

func (d *fakeDB) Close() {}

type fakeUserRepo struct {
	findByID    func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	updatePhone func(ctx context.Context, id uuid.UUID, phone string) error
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if r.findByID == nil {
		return nil, nil
	}
	return r.findByID(ctx, id)
}

func (r *fakeUserRepo) UpdatePhone(ctx context.Context, id uuid.UUID, phone string) error {
	if r.updatePhone == nil {
		return nil
	}
	return r.updatePhone(ctx, id, phone)
}

type fakeSessionRepo struct {
	findValidSession func(ctx context.Context, token string) (*entity.Session, error)
}

func (r *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if r.findValidSession == nil {
		return nil, nil
	}
	return r.findValidSession(ctx, token)
}

type fakePropertyRepo struct {
	findByID func(ctx context.Context, id uuid.UUID) (*entity.Property, error)
}

func (r *fakePropertyRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	if r.findByID == nil {
		return nil, nil
	}
	return r.findByID(ctx, id)
}

type fakeRoomTypeRepo struct {
	findByID      func(ctx context.Context, id uuid.UUID) (*entity.RoomType, error)
	reserveUnitTx func(ctx context.Context, tx database.Tx, id uuid.UUID) error
	releaseUnitTx func(ctx context.Context, tx database.Tx, id uuid.UUID) error

	mu           sync.Mutex
	reserveCalls int
	releaseCalls int
}

func (r *fakeRoomTypeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.RoomType, error) {
	if r.findByID == nil {
		return nil, nil
	}
	return r.findByID(ctx, id)
}

func (r *fakeRoomTypeRepo) ReserveUnitTx(ctx context.Context, tx database.Tx, id uuid.UUID) error {
	r.mu.Lock()
	r.reserveCalls++
	r.mu.Unlock()

	if r.reserveUnitTx == nil {
		return nil
	}
	return r.reserveUnitTx(ctx, tx, id)
}

func (r *fakeRoomTypeRepo) ReleaseUnitTx(ctx context.Context, tx database.Tx, id uuid.UUID) error {
	r.mu.Lock()
	r.releaseCalls++
	r.mu.Unlock()

	if r.releaseUnitTx == nil {
		return nil
	}
	return r.releaseUnitTx(ctx, tx, id)
}

type fakeBookingRepo struct {
	createTx            func(ctx context.Context, tx database.Tx, booking *entity.Booking) error
	findByID            func(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	findByReference     func(ctx context.Context, reference string) (*entity.Booking, error)
	findByUserID        func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	countByUserID       func(ctx context.Context, userID uuid.UUID) (int64, error)
	updateStatus        func(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
	updateStatusTx      func(ctx context.Context, tx database.Tx, bookingID uuid.UUID, status entity.BookingStatus) error
	setPaymentReference func(ctx context.Context, bookingID uuid.UUID, reference string) error
	confirm             func(ctx context.Context, bookingID uuid.UUID) error

	mu           sync.Mutex
	createCalls  int
	confirmCalls int
}

func (r *fakeBookingRepo) CreateTx(ctx context.Context, tx database.Tx, booking *entity.Booking) error {
	r.mu.Lock()
	r.createCalls++
	r.mu.Unlock()

	if r.createTx == nil {
		return nil
	}
	return r.createTx(ctx, tx, booking)
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if r.findByID == nil {
		return nil, nil
	}
	return r.findByID(ctx, id)
}

func (r *fakeBookingRepo) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	if r.findByReference == nil {
		return nil, nil
	}
	return r.findByReference(ctx, reference)
}

func (r *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	if r.findByUserID == nil {
		return nil, nil
	}
	return r.findByUserID(ctx, userID, limit, offset)
}

func (r *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	if r.countByUserID == nil {
		return 0, nil
	}
	return r.countByUserID(ctx, userID)
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	if r.updateStatus == nil {
		return nil
	}
	return r.updateStatus(ctx, bookingID, status)
}

func (r *fakeBookingRepo) UpdateStatusTx(ctx context.Context, tx database.Tx, bookingID uuid.UUID, status entity.BookingStatus) error {
	if r.updateStatusTx == nil {
		return nil
	}
	return r.updateStatusTx(ctx, tx, bookingID, status)
}

func (r *fakeBookingRepo) SetPaymentReference(ctx context.Context, bookingID uuid.UUID, reference string) error {
	if r.setPaymentReference == nil {
		return nil
	}
	return r.setPaymentReference(ctx, bookingID, reference)
}

func (r *fakeBookingRepo) Confirm(ctx context.Context, bookingID uuid.UUID) error {
	r.mu.Lock()
	r.confirmCalls++
	r.mu.Unlock()

	if r.confirm == nil {
		return nil
	}
	return r.confirm(ctx, bookingID)
}

type fakeGateway struct {
	initializeTransaction func(ctx context.Context, req gateway.InitializeRequest) (*gateway.InitializeData, error)
	verifyTransaction     func(ctx context.Context, reference string) (*gateway.VerifyData, error)
}

func (g *fakeGateway) InitializeTransaction(ctx context.Context, req gateway.InitializeRequest) (*gateway.InitializeData, error) {
	if g.initializeTransaction == nil {
		return &gateway.InitializeData{
			AuthorizationURL: "https://checkout.example.com/abc",
			AccessCode:       "abc",
			Reference:        req.Reference,
		}, nil
	}
	return g.initializeTransaction(ctx, req)
}

func (g *fakeGateway) VerifyTransaction(ctx context.Context, reference string) (*gateway.VerifyData, error) {
	if g.verifyTransaction == nil {
		return &gateway.VerifyData{Status: gateway.TransactionStatusSuccess, Reference: reference}, nil
	}
	return g.verifyTransaction(ctx, reference)
}

// testFixture wires the fakes into concrete services. The nil publisher
// and nil-client dedupe exercise the same degraded paths production uses
// when the broker or redis is down.
type testFixture struct {
	users      *fakeUserRepo
	properties *fakePropertyRepo
	roomTypes  *fakeRoomTypeRepo
	bookings   *fakeBookingRepo
	db         *fakeDB
	gateway    *fakeGateway

	booking BookingService
	payment PaymentService
}

func newTestFixture() *testFixture {
	f := &testFixture{
		users:      &fakeUserRepo{},
		properties: &fakePropertyRepo{},
		roomTypes:  &fakeRoomTypeRepo{},
		bookings:   &fakeBookingRepo{},
		db:         &fakeDB{},
		gateway:    &fakeGateway{},
	}

	repo := &repository.Repository{
		User:     f.users,
		Session:  &fakeSessionRepo{},
		Property: f.properties,
		RoomType: f.roomTypes,
		Booking:  f.bookings,
	}

	log := zap.NewNop()
	dedupe := cache.NewDedupe(nil, time.Hour, log)

	f.booking = NewBookingService(repo, f.db, nil, log)
	f.payment = NewPaymentService(repo, f.gateway, dedupe, nil, "RB", log)

	return f
}
