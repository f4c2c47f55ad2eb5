package repository

import (
	"context"
	"errors"

	"github.com/engrate/eg-power-tariffs-plugin/internal/operator/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, operator *domain.GridOperator) error {
	return db.WithContext(ctx).Create(operator).Error
}

func (r *repo) FindByEdiel(ctx context.Context, db *gorm.DB, ediel int) (*domain.GridOperator, error) {
	return r.findOne(ctx, db, "ediel = ?", ediel)
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.GridOperator, error) {
	return r.findOne(ctx, db, "name = ?", name)
}

func (r *repo) FindByUID(ctx context.Context, db *gorm.DB, uid string) (*domain.GridOperator, error) {
	return r.findOne(ctx, db, "uid = ?", uid)
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.GridOperator, error) {
	var operators []domain.GridOperator
	err := db.WithContext(ctx).Order("name asc").Find(&operators).Error
	if err != nil {
		return nil, err
	}
	return operators, nil
}

func (r *repo) findOne(ctx context.Context, db *gorm.DB, query string, arg any) (*domain.GridOperator, error) {
	var operator domain.GridOperator
	err := db.WithContext(ctx).Where(query, arg).First(&operator).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &operator, nil
}
