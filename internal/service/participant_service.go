package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dvfactor/dv-factor/internal/domain"
	"github.com/dvfactor/dv-factor/internal/repository"
)

type ParticipantService struct {
	participantRepo repository.ParticipantRepository
	editionService  *EditionService
}

func NewParticipantService(participantRepo repository.ParticipantRepository, editionService *EditionService) *ParticipantService {
	return &ParticipantService{
		participantRepo: participantRepo,
		editionService:  editionService,
	}
}

// EnsureEnrollment enrolls the user in the edition at its entry fee.
// Calling it again for the same pair returns the existing enrollment
// untouched, so a double-submit never resets a confirmed payment.
func (s *ParticipantService) EnsureEnrollment(ctx context.Context, userID, editionID uuid.UUID) (*domain.Participant, error) {
	edition, err := s.editionService.GetEdition(ctx, editionID)
	if err != nil {
		return nil, err
	}
	if !edition.IsOpen() {
		return nil, domain.ErrEditionNotOpen
	}

	participant := &domain.Participant{
		ID:            uuid.New(),
		UserID:        userID,
		EditionID:     editionID,
		PaymentAmount: edition.EntryFee,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	return s.participantRepo.CreateIfAbsent(ctx, participant)
}

func (s *ParticipantService) GetEnrollment(ctx context.Context, userID, editionID uuid.UUID) (*domain.Participant, error) {
	participant, err := s.participantRepo.GetByUserAndEdition(ctx, userID, editionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, err
	}
	return participant, nil
}

func (s *ParticipantService) ListByEdition(ctx context.Context, editionID uuid.UUID) ([]*domain.Participant, error) {
	return s.participantRepo.ListByEdition(ctx, editionID)
}

// ConfirmPayment marks the enrollment as paid and returns the
// recomputed pool, so callers can show the new total immediately.
func (s *ParticipantService) ConfirmPayment(ctx context.Context, participantID uuid.UUID) (*domain.Participant, decimal.Decimal, error) {
	return s.setPaymentConfirmed(ctx, participantID, true)
}

// CancelPayment reverts a confirmation and returns the recomputed pool.
func (s *ParticipantService) CancelPayment(ctx context.Context, participantID uuid.UUID) (*domain.Participant, decimal.Decimal, error) {
	return s.setPaymentConfirmed(ctx, participantID, false)
}

func (s *ParticipantService) setPaymentConfirmed(ctx context.Context, participantID uuid.UUID, confirmed bool) (*domain.Participant, decimal.Decimal, error) {
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, domain.ErrParticipantNotFound
		}
		return nil, decimal.Zero, err
	}

	if participant.PaymentConfirmed != confirmed {
		participant.PaymentConfirmed = confirmed
		if confirmed {
			now := time.Now()
			participant.PaymentDate = &now
		} else {
			participant.PaymentDate = nil
		}
		participant.UpdatedAt = time.Now()
		if err := s.participantRepo.Update(ctx, participant); err != nil {
			return nil, decimal.Zero, err
		}
	}

	pool, err := s.editionService.RecalculatePool(ctx, participant.EditionID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return participant, pool, nil
}
