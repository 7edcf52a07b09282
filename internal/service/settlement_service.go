package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dvfactor/dv-factor/internal/domain"
	"github.com/dvfactor/dv-factor/internal/engine"
	"github.com/dvfactor/dv-factor/internal/repository"
)

var ErrAlreadySettled = errors.New("edition is already settled")

type SettlementService struct {
	settlementRepo  repository.SettlementRepository
	payoutTableRepo repository.PayoutTableRepository
	employeeRepo    repository.EmployeeRepository
	betRepo         repository.BetRepository
	editionRepo     repository.EditionRepository
	editionService  *EditionService
}

func NewSettlementService(
	settlementRepo repository.SettlementRepository,
	payoutTableRepo repository.PayoutTableRepository,
	employeeRepo repository.EmployeeRepository,
	betRepo repository.BetRepository,
	editionRepo repository.EditionRepository,
	editionService *EditionService,
) *SettlementService {
	return &SettlementService{
		settlementRepo:  settlementRepo,
		payoutTableRepo: payoutTableRepo,
		employeeRepo:    employeeRepo,
		betRepo:         betRepo,
		editionRepo:     editionRepo,
		editionService:  editionService,
	}
}

// Settle computes and persists the final distribution for a closed
// edition, then marks the edition finished. Settling twice, or settling
// an edition that is not closed yet, is rejected.
func (s *SettlementService) Settle(ctx context.Context, editionID uuid.UUID) (*domain.Settlement, error) {
	edition, err := s.editionService.GetEdition(ctx, editionID)
	if err != nil {
		return nil, err
	}
	if edition.Status == domain.EditionStatusOpen {
		return nil, domain.ErrEditionStillOpen
	}
	if edition.Status == domain.EditionStatusFinished {
		return nil, ErrAlreadySettled
	}

	if existing, err := s.settlementRepo.GetByEditionID(ctx, editionID); err == nil && existing != nil {
		return nil, ErrAlreadySettled
	}

	pool, err := s.editionService.RecalculatePool(ctx, editionID)
	if err != nil {
		return nil, err
	}

	rows, err := s.payoutTableRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	resolver, err := engine.NewResolver(rows)
	if err != nil {
		return nil, fmt.Errorf("loading payout table: %w", err)
	}

	// Only resignations inside the edition's own window rank for payout;
	// a prior edition's resignations must not consume the 70/25/5 shares.
	resigned, err := s.employeeRepo.ListResignedBetween(ctx, edition.StartDate, edition.EndDate)
	if err != nil {
		return nil, err
	}
	bets, err := s.betRepo.ListByEdition(ctx, editionID)
	if err != nil {
		return nil, err
	}

	result, err := engine.Settle(pool, resolver, resigned, bets)
	if err != nil {
		return nil, err
	}

	breakdown, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encoding settlement breakdown: %w", err)
	}

	settlement := &domain.Settlement{
		ID:          uuid.New(),
		EditionID:   editionID,
		TotalPool:   result.TotalPool,
		Distributed: result.Distributed,
		Forfeited:   result.Forfeited,
		Breakdown:   breakdown,
		SettledAt:   time.Now(),
	}
	if err := s.settlementRepo.Create(ctx, settlement); err != nil {
		return nil, err
	}

	edition.Status = domain.EditionStatusFinished
	edition.UpdatedAt = time.Now()
	if err := s.editionRepo.Update(ctx, edition); err != nil {
		return nil, err
	}

	return settlement, nil
}

func (s *SettlementService) GetByEdition(ctx context.Context, editionID uuid.UUID) (*domain.Settlement, error) {
	settlement, err := s.settlementRepo.GetByEditionID(ctx, editionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEditionNotFinished
		}
		return nil, err
	}
	return settlement, nil
}
