package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PayoutRow is one cell of the payout percentage table: the share of the
// pool awarded when an employee resigns in Month and BettorsCount
// distinct users had selected them. Rows with 0% mean the resignation
// came too late, or was picked by too many users, to pay out.
type PayoutRow struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Month        int             `json:"month" gorm:"not null;uniqueIndex:idx_payout_month_count"`
	BettorsCount int             `json:"bettorsCount" gorm:"not null;uniqueIndex:idx_payout_month_count"`
	Percentage   decimal.Decimal `json:"percentage" gorm:"type:decimal(5,2);not null"`
}

// TableName returns the table name for GORM
func (PayoutRow) TableName() string {
	return "payout_table"
}

// Settlement is the persisted result of settling a finished edition:
// the full per-bettor distribution plus the forfeited remainder.
type Settlement struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	EditionID   uuid.UUID       `json:"editionId" gorm:"type:uuid;not null;uniqueIndex"`
	TotalPool   decimal.Decimal `json:"totalPool" gorm:"type:decimal(10,2);not null"`
	Distributed decimal.Decimal `json:"distributed" gorm:"type:decimal(10,2);not null"`
	Forfeited   decimal.Decimal `json:"forfeited" gorm:"type:decimal(10,2);not null"`
	Breakdown   datatypes.JSON  `json:"breakdown" gorm:"type:jsonb"`
	SettledAt   time.Time       `json:"settledAt"`

	// Relations
	Edition *Edition `json:"-" gorm:"foreignKey:EditionID"`
}

// TableName returns the table name for GORM
func (Settlement) TableName() string {
	return "settlements"
}
