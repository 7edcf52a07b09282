package service

import (
	"github.com/dvfactor/dv-factor/internal/config"
	"github.com/dvfactor/dv-factor/internal/repository"
)

// Services holds all service instances
type Services struct {
	Auth        *AuthService
	Profile     *ProfileService
	Edition     *EditionService
	Participant *ParticipantService
	Bet         *BetService
	Employee    *EmployeeService
	Settlement  *SettlementService
}

// NewServices creates all services with their dependencies
func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	editionService := NewEditionService(repos.Edition, repos.Participant, cfg)

	return &Services{
		Auth:        NewAuthService(repos.User, repos.Session, cfg),
		Profile:     NewProfileService(repos.User),
		Edition:     editionService,
		Participant: NewParticipantService(repos.Participant, editionService),
		Bet:         NewBetService(repos.Bet, repos.Participant, repos.Employee, editionService),
		Employee:    NewEmployeeService(repos.Employee),
		Settlement:  NewSettlementService(repos.Settlement, repos.PayoutTable, repos.Employee, repos.Bet, repos.Edition, editionService),
	}
}
