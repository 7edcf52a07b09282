package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bet is a user's single wager for one edition: three distinct employee
// selections plus an optional Chiringuito bonus on one of the three.
// Exactly one bet exists per (user, edition); writes are upserts.
type Bet struct {
	ID                  uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID              uuid.UUID  `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_bet_user_edition"`
	EditionID           uuid.UUID  `json:"editionId" gorm:"type:uuid;not null;uniqueIndex:idx_bet_user_edition"`
	Employee1ID         uuid.UUID  `json:"employee1Id" gorm:"type:uuid;not null"`
	Employee2ID         uuid.UUID  `json:"employee2Id" gorm:"type:uuid;not null"`
	Employee3ID         uuid.UUID  `json:"employee3Id" gorm:"type:uuid;not null"`
	ChiringuitoEmployee *uuid.UUID `json:"chiringuitoEmployeeId" gorm:"type:uuid;column:chiringuito_employee_id"`
	IsRevealed          bool       `json:"isRevealed" gorm:"not null;default:false"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`

	// Relations
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Employee1 *Employee `json:"employee1,omitempty" gorm:"foreignKey:Employee1ID"`
	Employee2 *Employee `json:"employee2,omitempty" gorm:"foreignKey:Employee2ID"`
	Employee3 *Employee `json:"employee3,omitempty" gorm:"foreignKey:Employee3ID"`
}

// TableName returns the table name for GORM
func (Bet) TableName() string {
	return "bets"
}

// Selections returns the three chosen employee IDs.
func (b *Bet) Selections() [3]uuid.UUID {
	return [3]uuid.UUID{b.Employee1ID, b.Employee2ID, b.Employee3ID}
}

// Selected reports whether the bet includes the given employee.
func (b *Bet) Selected(employeeID uuid.UUID) bool {
	return b.Employee1ID == employeeID || b.Employee2ID == employeeID || b.Employee3ID == employeeID
}

// BonusOn reports whether the Chiringuito bonus is active on the given
// employee.
func (b *Bet) BonusOn(employeeID uuid.UUID) bool {
	return b.ChiringuitoEmployee != nil && *b.ChiringuitoEmployee == employeeID
}

// Validate checks the selection invariants: pairwise distinct employees
// and, if present, a bonus selection that is one of the three.
func (b *Bet) Validate() error {
	if b.Employee1ID == b.Employee2ID || b.Employee1ID == b.Employee3ID || b.Employee2ID == b.Employee3ID {
		return ErrDuplicateSelection
	}
	if b.ChiringuitoEmployee != nil && !b.Selected(*b.ChiringuitoEmployee) {
		return ErrBonusNotSelected
	}
	return nil
}
