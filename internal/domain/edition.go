package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EditionStatus represents the lifecycle state of a yearly edition
type EditionStatus string

const (
	EditionStatusOpen     EditionStatus = "open"
	EditionStatusClosed   EditionStatus = "closed"
	EditionStatusFinished EditionStatus = "finished"
)

// Edition is one yearly run of the game. TotalPool is derived:
// jackpot plus all confirmed participant payments.
type Edition struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Year            int             `json:"year" gorm:"uniqueIndex;not null"`
	EntryFee        decimal.Decimal `json:"entryFee" gorm:"type:decimal(10,2);not null"`
	Jackpot         decimal.Decimal `json:"jackpot" gorm:"type:decimal(10,2);not null"`
	TotalPool       decimal.Decimal `json:"totalPool" gorm:"type:decimal(10,2);not null"`
	StartDate       time.Time       `json:"startDate" gorm:"not null"`
	BettingDeadline time.Time       `json:"bettingDeadline" gorm:"not null"`
	EndDate         time.Time       `json:"endDate" gorm:"not null"`
	Status          EditionStatus   `json:"status" gorm:"type:varchar(20);not null;default:'open'"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// TableName returns the table name for GORM
func (Edition) TableName() string {
	return "editions"
}

// IsOpen reports whether the edition still accepts enrollments and bets.
func (e *Edition) IsOpen() bool {
	return e.Status == EditionStatusOpen
}

// CanTransitionTo enforces the open -> closed -> finished order.
func (e *Edition) CanTransitionTo(next EditionStatus) bool {
	switch e.Status {
	case EditionStatusOpen:
		return next == EditionStatusClosed
	case EditionStatusClosed:
		return next == EditionStatusFinished
	default:
		return false
	}
}
