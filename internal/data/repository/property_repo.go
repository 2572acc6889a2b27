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

type PropertyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error)
}

type propertyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPropertyRepository(db database.PgxIface, log *zap.Logger) PropertyRepository {
	return &propertyRepository{
		db:  db,
		log: log.With(zap.String("repository", "property")),
	}
}

func (r *propertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	query := `
		SELECT id, owner_id, name, city, address, is_active,
		       created_at, updated_at, deleted_at
		FROM properties
		WHERE id = $1 AND deleted_at IS NULL
	`

	var property entity.Property
	err := r.db.QueryRow(ctx, query, id).Scan(
		&property.ID,
		&property.OwnerID,
		&property.Name,
		&property.City,
		&property.Address,
		&property.IsActive,
		&property.CreatedAt,
		&property.UpdatedAt,
		&property.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find property by ID",
			zap.Error(err),
			zap.String("property_id", id.String()),
		)
		return nil, fmt.Errorf("find property by ID %s: %w", id.String(), err)
	}

	return &property, nil
}
