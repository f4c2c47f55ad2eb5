package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, operator *GridOperator) error
	FindByEdiel(ctx context.Context, db *gorm.DB, ediel int) (*GridOperator, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*GridOperator, error)
	FindByUID(ctx context.Context, db *gorm.DB, uid string) (*GridOperator, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]GridOperator, error)
}
