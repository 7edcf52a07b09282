package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dvfactor/dv-factor/internal/domain"
)

type payoutTableRepository struct {
	db *gorm.DB
}

func NewPayoutTableRepository(db *gorm.DB) *payoutTableRepository {
	return &payoutTableRepository{db: db}
}

func (r *payoutTableRepository) GetAll(ctx context.Context) ([]*domain.PayoutRow, error) {
	var rows []*domain.PayoutRow
	err := r.db.WithContext(ctx).Order("month, bettors_count").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateMany loads payout rows, overwriting the percentage of any
// existing (month, bettors_count) cell.
func (r *payoutTableRepository) CreateMany(ctx context.Context, rows []*domain.PayoutRow) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "month"}, {Name: "bettors_count"}},
			DoUpdates: clause.AssignmentColumns([]string{"percentage"}),
		}).
		Create(rows).Error
}

type settlementRepository struct {
	db *gorm.DB
}

func NewSettlementRepository(db *gorm.DB) *settlementRepository {
	return &settlementRepository{db: db}
}

func (r *settlementRepository) Create(ctx context.Context, settlement *domain.Settlement) error {
	return r.db.WithContext(ctx).Create(settlement).Error
}

func (r *settlementRepository) GetByEditionID(ctx context.Context, editionID uuid.UUID) (*domain.Settlement, error) {
	var settlement domain.Settlement
	err := r.db.WithContext(ctx).First(&settlement, "edition_id = ?", editionID).Error
	if err != nil {
		return nil, err
	}
	return &settlement, nil
}
