package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dvfactor/dv-factor/internal/domain"
)

type betRepository struct {
	db *gorm.DB
}

func NewBetRepository(db *gorm.DB) *betRepository {
	return &betRepository{db: db}
}

// Upsert replaces a user's previous bet for the edition in one
// statement, so concurrent double submits cannot create two rows.
func (r *betRepository) Upsert(ctx context.Context, bet *domain.Bet) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "edition_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"employee1_id", "employee2_id", "employee3_id",
				"chiringuito_employee_id", "updated_at",
			}),
		}).
		Create(bet).Error
}

func (r *betRepository) GetByUserAndEdition(ctx context.Context, userID, editionID uuid.UUID) (*domain.Bet, error) {
	var bet domain.Bet
	err := r.db.WithContext(ctx).
		Preload("Employee1").
		Preload("Employee2").
		Preload("Employee3").
		Where("user_id = ? AND edition_id = ?", userID, editionID).
		First(&bet).Error
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

func (r *betRepository) ListByEdition(ctx context.Context, editionID uuid.UUID) ([]*domain.Bet, error) {
	var bets []*domain.Bet
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Employee1").
		Preload("Employee2").
		Preload("Employee3").
		Where("edition_id = ?", editionID).
		Order("created_at").
		Find(&bets).Error
	if err != nil {
		return nil, err
	}
	return bets, nil
}

func (r *betRepository) RevealByEdition(ctx context.Context, editionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Bet{}).
		Where("edition_id = ?", editionID).
		Update("is_revealed", true).Error
}
