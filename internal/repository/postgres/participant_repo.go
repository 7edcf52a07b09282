package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dvfactor/dv-factor/internal/domain"
)

type participantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *participantRepository {
	return &participantRepository{db: db}
}

// CreateIfAbsent relies on the (user_id, edition_id) unique index so
// concurrent first-visit enrollments collapse to a single row.
func (r *participantRepository) CreateIfAbsent(ctx context.Context, participant *domain.Participant) (*domain.Participant, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "edition_id"}},
			DoNothing: true,
		}).
		Create(participant).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUserAndEdition(ctx, participant.UserID, participant.EditionID)
}

func (r *participantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Participant, error) {
	var participant domain.Participant
	err := r.db.WithContext(ctx).First(&participant, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepository) GetByUserAndEdition(ctx context.Context, userID, editionID uuid.UUID) (*domain.Participant, error) {
	var participant domain.Participant
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND edition_id = ?", userID, editionID).
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepository) ListByEdition(ctx context.Context, editionID uuid.UUID) ([]*domain.Participant, error) {
	var participants []*domain.Participant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("edition_id = ?", editionID).
		Order("created_at").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *participantRepository) Update(ctx context.Context, participant *domain.Participant) error {
	return r.db.WithContext(ctx).Save(participant).Error
}
