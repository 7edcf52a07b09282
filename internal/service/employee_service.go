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

type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
}

func NewEmployeeService(employeeRepo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

type CreateEmployeeInput struct {
	FirstName    string
	LastName     string
	EmployeeCode string
	HireDate     *time.Time
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, input CreateEmployeeInput) (*domain.Employee, error) {
	employee := &domain.Employee{
		ID:           uuid.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		EmployeeCode: input.EmployeeCode,
		HireDate:     input.HireDate,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context) ([]*domain.Employee, error) {
	return s.employeeRepo.List(ctx)
}

func (s *EmployeeService) ListActiveEmployees(ctx context.Context) ([]*domain.Employee, error) {
	return s.employeeRepo.ListActive(ctx)
}

func (s *EmployeeService) ListResignedEmployees(ctx context.Context) ([]*domain.Employee, error) {
	return s.employeeRepo.ListResigned(ctx)
}

// RecordResignation marks the employee as resigned on the given date.
// The resignation month, which drives the payout lookup, is derived
// from the date. An employee resigns at most once.
func (s *EmployeeService) RecordResignation(ctx context.Context, id uuid.UUID, date time.Time) (*domain.Employee, error) {
	employee, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := employee.Resign(date); err != nil {
		return nil, err
	}
	employee.UpdatedAt = time.Now()

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}
