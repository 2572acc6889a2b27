package entity

import "github.com/google/uuid"

type Property struct {
	Base
	OwnerID  uuid.UUID `db:"owner_id"`
	Name     string    `db:"name"`
	City     string    `db:"city"`
	Address  string    `db:"address"`
	IsActive bool      `db:"is_active"`
}
