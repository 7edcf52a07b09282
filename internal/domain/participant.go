package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Participant is a user's enrollment in one edition. At most one row
// exists per (user, edition); payment confirmation is admin-only.
type Participant struct {
	ID               uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID       `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_participant_user_edition"`
	EditionID        uuid.UUID       `json:"editionId" gorm:"type:uuid;not null;uniqueIndex:idx_participant_user_edition"`
	PaymentAmount    decimal.Decimal `json:"paymentAmount" gorm:"type:decimal(10,2);not null"`
	PaymentConfirmed bool            `json:"paymentConfirmed" gorm:"not null;default:false"`
	PaymentDate      *time.Time      `json:"paymentDate"`
	HasBet           bool            `json:"hasBet" gorm:"not null;default:false"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`

	// Relations
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Edition *Edition `json:"-" gorm:"foreignKey:EditionID"`
}

// TableName returns the table name for GORM
func (Participant) TableName() string {
	return "participants"
}
