package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dvfactor/dv-factor/internal/domain"
	"github.com/dvfactor/dv-factor/internal/repository"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.Edition{},
		&domain.Participant{},
		&domain.Employee{},
		&domain.Bet{},
		&domain.PayoutRow{},
		&domain.Settlement{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:        NewUserRepository(db),
		Session:     NewSessionRepository(db),
		Edition:     NewEditionRepository(db),
		Participant: NewParticipantRepository(db),
		Employee:    NewEmployeeRepository(db),
		Bet:         NewBetRepository(db),
		PayoutTable: NewPayoutTableRepository(db),
		Settlement:  NewSettlementRepository(db),
	}
}
