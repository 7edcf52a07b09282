package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dvfactor/dv-factor/internal/config"
	"github.com/dvfactor/dv-factor/internal/domain"
	"github.com/dvfactor/dv-factor/internal/engine"
	"github.com/dvfactor/dv-factor/internal/repository"
)

type EditionService struct {
	editionRepo     repository.EditionRepository
	participantRepo repository.ParticipantRepository
	defaultEntryFee decimal.Decimal
}

func NewEditionService(editionRepo repository.EditionRepository, participantRepo repository.ParticipantRepository, cfg *config.Config) *EditionService {
	return &EditionService{
		editionRepo:     editionRepo,
		participantRepo: participantRepo,
		defaultEntryFee: cfg.DefaultEntryFee,
	}
}

type CreateEditionInput struct {
	Year            int
	EntryFee        decimal.Decimal
	Jackpot         decimal.Decimal
	StartDate       time.Time
	BettingDeadline time.Time
	EndDate         time.Time
}

func (s *EditionService) CreateEdition(ctx context.Context, input CreateEditionInput) (*domain.Edition, error) {
	// Editions created without an explicit fee use the configured default.
	entryFee := input.EntryFee
	if entryFee.IsZero() {
		entryFee = s.defaultEntryFee
	}

	edition := &domain.Edition{
		ID:              uuid.New(),
		Year:            input.Year,
		EntryFee:        entryFee,
		Jackpot:         input.Jackpot,
		TotalPool:       input.Jackpot,
		StartDate:       input.StartDate,
		BettingDeadline: input.BettingDeadline,
		EndDate:         input.EndDate,
		Status:          domain.EditionStatusOpen,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.editionRepo.Create(ctx, edition); err != nil {
		return nil, err
	}
	return edition, nil
}

func (s *EditionService) GetEdition(ctx context.Context, id uuid.UUID) (*domain.Edition, error) {
	edition, err := s.editionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEditionNotFound
		}
		return nil, err
	}
	return edition, nil
}

// GetCurrentEdition returns the single open edition, if any.
func (s *EditionService) GetCurrentEdition(ctx context.Context) (*domain.Edition, error) {
	edition, err := s.editionRepo.GetCurrentOpen(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEditionNotFound
		}
		return nil, err
	}
	return edition, nil
}

func (s *EditionService) ListEditions(ctx context.Context) ([]*domain.Edition, error) {
	return s.editionRepo.List(ctx)
}

// TransitionStatus moves an edition along open -> closed -> finished.
// Skipping a step or going backwards is rejected.
func (s *EditionService) TransitionStatus(ctx context.Context, id uuid.UUID, next domain.EditionStatus) (*domain.Edition, error) {
	edition, err := s.GetEdition(ctx, id)
	if err != nil {
		return nil, err
	}

	if !edition.CanTransitionTo(next) {
		return nil, domain.ErrInvalidStatusTransition
	}

	edition.Status = next
	edition.UpdatedAt = time.Now()
	if err := s.editionRepo.Update(ctx, edition); err != nil {
		return nil, err
	}
	return edition, nil
}

// RecalculatePool recomputes the total pool from the jackpot and the
// confirmed payments, persists it on the edition, and returns it.
func (s *EditionService) RecalculatePool(ctx context.Context, editionID uuid.UUID) (decimal.Decimal, error) {
	edition, err := s.GetEdition(ctx, editionID)
	if err != nil {
		return decimal.Zero, err
	}

	participants, err := s.participantRepo.ListByEdition(ctx, editionID)
	if err != nil {
		return decimal.Zero, err
	}

	pool := engine.ComputePool(edition.Jackpot, participants)
	if !pool.Equal(edition.TotalPool) {
		edition.TotalPool = pool
		edition.UpdatedAt = time.Now()
		if err := s.editionRepo.Update(ctx, edition); err != nil {
			return decimal.Zero, err
		}
	}
	return pool, nil
}
