package repository

import (
	"context"
	"fmt"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoomTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RoomType, error)

	// ReserveUnitTx decrements available_rooms by exactly one, but only when
	// the room type is active, open for booking and has stock left. The
	// check and the decrement are a single statement so two concurrent
	// reservations can never both pass on the last unit. Returns ErrNoUnits
	// when no row matched.
	ReserveUnitTx(ctx context.Context, tx database.Tx, id uuid.UUID) error

	// ReleaseUnitTx returns one unit to the pool, clamped at total_rooms so
	// a retried release can never drift the ledger above capacity.
	ReleaseUnitTx(ctx context.Context, tx database.Tx, id uuid.UUID) error
}

type roomTypeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomTypeRepository(db database.PgxIface, log *zap.Logger) RoomTypeRepository {
	return &roomTypeRepository{
		db:  db,
		log: log.With(zap.String("repository", "room_type")),
	}
}

func (r *roomTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RoomType, error) {
	query := `
		SELECT id, property_id, name, price, currency, capacity,
		       total_rooms, available_rooms, is_available, is_active,
		       created_at, updated_at, deleted_at
		FROM room_types
		WHERE id = $1 AND deleted_at IS NULL
	`

	var rt entity.RoomType
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rt.ID,
		&rt.PropertyID,
		&rt.Name,
		&rt.Price,
		&rt.Currency,
		&rt.Capacity,
		&rt.TotalRooms,
		&rt.AvailableRooms,
		&rt.IsAvailable,
		&rt.IsActive,
		&rt.CreatedAt,
		&rt.UpdatedAt,
		&rt.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room type by ID",
			zap.Error(err),
			zap.String("room_type_id", id.String()),
		)
		return nil, fmt.Errorf("find room type by ID %s: %w", id.String(), err)
	}

	return &rt, nil
}

func (r *roomTypeRepository) ReserveUnitTx(ctx context.Context, tx database.Tx, id uuid.UUID) error {
	query := `
		UPDATE room_types
		SET available_rooms = available_rooms - 1, updated_at = NOW()
		WHERE id = $1
		  AND deleted_at IS NULL
		  AND is_active = true
		  AND is_available = true
		  AND available_rooms > 0
	`

	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to reserve unit",
			zap.Error(err),
			zap.String("room_type_id", id.String()),
		)
		return fmt.Errorf("reserve unit for room type %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reserve unit for room type %s: %w", id.String(), ErrNoUnits)
	}

	return nil
}

func (r *roomTypeRepository) ReleaseUnitTx(ctx context.Context, tx database.Tx, id uuid.UUID) error {
	query := `
		UPDATE room_types
		SET available_rooms = LEAST(available_rooms + 1, total_rooms), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to release unit",
			zap.Error(err),
			zap.String("room_type_id", id.String()),
		)
		return fmt.Errorf("release unit for room type %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("room type %s not found", id.String())
	}

	return nil
}
