package domain

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Create persists the tariff and its compositions.
	Create(ctx context.Context, db *gorm.DB, tariff *PowerTariff) error
	// Associate links the tariff to metering grid areas.
	Associate(ctx context.Context, db *gorm.DB, associations []AreaAssociation) error
	FindAll(ctx context.Context, db *gorm.DB) ([]PowerTariff, error)
	// FindByMGA returns the tariffs associated with one metering grid
	// area, scoped by country code. Zero matches is not an error.
	FindByMGA(ctx context.Context, db *gorm.DB, countryCode, mgaCode string) ([]PowerTariff, error)
	AssociationsByTariff(ctx context.Context, db *gorm.DB, tariffUID uuid.UUID) ([]AreaAssociation, error)
	// CountAssociationsByMGA backs the importer's "already has tariffs"
	// existence check.
	CountAssociationsByMGA(ctx context.Context, db *gorm.DB, mgaCode string) (int64, error)
}
