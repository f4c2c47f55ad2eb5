package domain

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, area *MeteringGridArea) error
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*MeteringGridArea, error)
	FindByOperator(ctx context.Context, db *gorm.DB, operatorUID uuid.UUID) ([]MeteringGridArea, error)
}
