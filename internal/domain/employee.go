package domain

import (
	"time"

	"github.com/google/uuid"
)

// Employee is a person eligible to be bet on.
type Employee struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FirstName        string     `json:"firstName" gorm:"not null"`
	LastName         string     `json:"lastName" gorm:"not null"`
	EmployeeCode     string     `json:"employeeCode"`
	HireDate         *time.Time `json:"hireDate"`
	IsActive         bool       `json:"isActive" gorm:"not null;default:true"`
	ResignationDate  *time.Time `json:"resignationDate"`
	ResignationMonth *int       `json:"resignationMonth"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// Resign records the resignation exactly once, deriving the month from
// the date. Re-activation is not modeled.
func (e *Employee) Resign(date time.Time) error {
	if !e.IsActive || e.ResignationDate != nil {
		return ErrAlreadyResigned
	}
	month := int(date.Month())
	e.IsActive = false
	e.ResignationDate = &date
	e.ResignationMonth = &month
	return nil
}
