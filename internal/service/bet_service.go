package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dvfactor/dv-factor/internal/domain"
	"github.com/dvfactor/dv-factor/internal/repository"
)

var ErrBetNotFound = errors.New("bet not found")

type BetService struct {
	betRepo         repository.BetRepository
	participantRepo repository.ParticipantRepository
	employeeRepo    repository.EmployeeRepository
	editionService  *EditionService
}

func NewBetService(betRepo repository.BetRepository, participantRepo repository.ParticipantRepository, employeeRepo repository.EmployeeRepository, editionService *EditionService) *BetService {
	return &BetService{
		betRepo:         betRepo,
		participantRepo: participantRepo,
		employeeRepo:    employeeRepo,
		editionService:  editionService,
	}
}

type PlaceBetInput struct {
	Employee1ID         uuid.UUID
	Employee2ID         uuid.UUID
	Employee3ID         uuid.UUID
	ChiringuitoEmployee *uuid.UUID
}

// PlaceBet stores the user's wager for an open edition, replacing any
// previous one. The edition must be open and the user's payment
// confirmed before the bet is accepted.
func (s *BetService) PlaceBet(ctx context.Context, userID, editionID uuid.UUID, input PlaceBetInput) (*domain.Bet, error) {
	edition, err := s.editionService.GetEdition(ctx, editionID)
	if err != nil {
		return nil, err
	}
	if !edition.IsOpen() {
		return nil, domain.ErrEditionNotOpen
	}

	participant, err := s.participantRepo.GetByUserAndEdition(ctx, userID, editionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, err
	}
	if !participant.PaymentConfirmed {
		return nil, domain.ErrPaymentRequired
	}

	for _, employeeID := range []uuid.UUID{input.Employee1ID, input.Employee2ID, input.Employee3ID} {
		employee, err := s.employeeRepo.GetByID(ctx, employeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrEmployeeNotFound
			}
			return nil, err
		}
		if !employee.IsActive {
			return nil, domain.ErrAlreadyResigned
		}
	}

	bet := &domain.Bet{
		ID:                  uuid.New(),
		UserID:              userID,
		EditionID:           editionID,
		Employee1ID:         input.Employee1ID,
		Employee2ID:         input.Employee2ID,
		Employee3ID:         input.Employee3ID,
		ChiringuitoEmployee: input.ChiringuitoEmployee,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
	if err := bet.Validate(); err != nil {
		return nil, err
	}

	if err := s.betRepo.Upsert(ctx, bet); err != nil {
		return nil, err
	}

	if !participant.HasBet {
		participant.HasBet = true
		participant.UpdatedAt = time.Now()
		if err := s.participantRepo.Update(ctx, participant); err != nil {
			return nil, err
		}
	}

	return s.GetMyBet(ctx, userID, editionID)
}

func (s *BetService) GetMyBet(ctx context.Context, userID, editionID uuid.UUID) (*domain.Bet, error) {
	bet, err := s.betRepo.GetByUserAndEdition(ctx, userID, editionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBetNotFound
		}
		return nil, err
	}
	return bet, nil
}

// ListBets returns every bet of the edition. Unrevealed bets of other
// users are only listed once the edition's bets have been revealed;
// callers enforce who may see what.
func (s *BetService) ListBets(ctx context.Context, editionID uuid.UUID) ([]*domain.Bet, error) {
	return s.betRepo.ListByEdition(ctx, editionID)
}

// RevealBets flips every bet of the edition to revealed. Reveal only
// makes sense once betting is over, so open editions are rejected.
func (s *BetService) RevealBets(ctx context.Context, editionID uuid.UUID) error {
	edition, err := s.editionService.GetEdition(ctx, editionID)
	if err != nil {
		return err
	}
	if edition.IsOpen() {
		return domain.ErrEditionStillOpen
	}
	return s.betRepo.RevealByEdition(ctx, editionID)
}
