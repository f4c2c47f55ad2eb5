package repository

import (
	"context"
	"errors"

	"github.com/engrate/eg-power-tariffs-plugin/internal/gridarea/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, area *domain.MeteringGridArea) error {
	return db.WithContext(ctx).Create(area).Error
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.MeteringGridArea, error) {
	var area domain.MeteringGridArea
	err := db.WithContext(ctx).Where("code = ?", code).First(&area).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *repo) FindByOperator(ctx context.Context, db *gorm.DB, operatorUID uuid.UUID) ([]domain.MeteringGridArea, error) {
	var areas []domain.MeteringGridArea
	err := db.WithContext(ctx).Where("grid_operator_uid = ?", operatorUID).Order("code asc").Find(&areas).Error
	if err != nil {
		return nil, err
	}
	return areas, nil
}
