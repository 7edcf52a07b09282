package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dvfactor/dv-factor/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]*domain.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type EditionRepository interface {
	Create(ctx context.Context, edition *domain.Edition) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Edition, error)
	GetOpenByYear(ctx context.Context, year int) (*domain.Edition, error)
	GetCurrentOpen(ctx context.Context) (*domain.Edition, error)
	Update(ctx context.Context, edition *domain.Edition) error
	List(ctx context.Context) ([]*domain.Edition, error)
}

type ParticipantRepository interface {
	// CreateIfAbsent inserts the enrollment unless one already exists
	// for the (user, edition) pair, then returns the stored row.
	CreateIfAbsent(ctx context.Context, participant *domain.Participant) (*domain.Participant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Participant, error)
	GetByUserAndEdition(ctx context.Context, userID, editionID uuid.UUID) (*domain.Participant, error)
	ListByEdition(ctx context.Context, editionID uuid.UUID) ([]*domain.Participant, error)
	Update(ctx context.Context, participant *domain.Participant) error
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	ListActive(ctx context.Context) ([]*domain.Employee, error)
	ListResigned(ctx context.Context) ([]*domain.Employee, error)
	// ListResignedBetween returns employees whose resignation date falls
	// inside [from, to], in resignation order.
	ListResignedBetween(ctx context.Context, from, to time.Time) ([]*domain.Employee, error)
	Update(ctx context.Context, employee *domain.Employee) error
}

type BetRepository interface {
	// Upsert stores the bet, overwriting any previous bet for the same
	// (user, edition) pair.
	Upsert(ctx context.Context, bet *domain.Bet) error
	GetByUserAndEdition(ctx context.Context, userID, editionID uuid.UUID) (*domain.Bet, error)
	ListByEdition(ctx context.Context, editionID uuid.UUID) ([]*domain.Bet, error)
	RevealByEdition(ctx context.Context, editionID uuid.UUID) error
}

type PayoutTableRepository interface {
	GetAll(ctx context.Context) ([]*domain.PayoutRow, error)
	CreateMany(ctx context.Context, rows []*domain.PayoutRow) error
}

type SettlementRepository interface {
	Create(ctx context.Context, settlement *domain.Settlement) error
	GetByEditionID(ctx context.Context, editionID uuid.UUID) (*domain.Settlement, error)
}

type Repositories struct {
	User        UserRepository
	Session     SessionRepository
	Edition     EditionRepository
	Participant ParticipantRepository
	Employee    EmployeeRepository
	Bet         BetRepository
	PayoutTable PayoutTableRepository
	Settlement  SettlementRepository
}
