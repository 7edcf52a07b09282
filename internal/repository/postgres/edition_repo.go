package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dvfactor/dv-factor/internal/domain"
)

type editionRepository struct {
	db *gorm.DB
}

func NewEditionRepository(db *gorm.DB) *editionRepository {
	return &editionRepository{db: db}
}

func (r *editionRepository) Create(ctx context.Context, edition *domain.Edition) error {
	return r.db.WithContext(ctx).Create(edition).Error
}

func (r *editionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Edition, error) {
	var edition domain.Edition
	err := r.db.WithContext(ctx).First(&edition, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &edition, nil
}

func (r *editionRepository) GetOpenByYear(ctx context.Context, year int) (*domain.Edition, error) {
	var edition domain.Edition
	err := r.db.WithContext(ctx).
		Where("year = ? AND status = ?", year, domain.EditionStatusOpen).
		First(&edition).Error
	if err != nil {
		return nil, err
	}
	return &edition, nil
}

func (r *editionRepository) GetCurrentOpen(ctx context.Context) (*domain.Edition, error) {
	var edition domain.Edition
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.EditionStatusOpen).
		Order("year DESC").
		First(&edition).Error
	if err != nil {
		return nil, err
	}
	return &edition, nil
}

func (r *editionRepository) Update(ctx context.Context, edition *domain.Edition) error {
	return r.db.WithContext(ctx).Save(edition).Error
}

func (r *editionRepository) List(ctx context.Context) ([]*domain.Edition, error) {
	var editions []*domain.Edition
	err := r.db.WithContext(ctx).Order("year DESC").Find(&editions).Error
	if err != nil {
		return nil, err
	}
	return editions, nil
}
