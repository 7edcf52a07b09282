package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dvfactor/dv-factor/internal/domain"
	"github.com/dvfactor/dv-factor/internal/service"
)

type EmployeeHandler struct {
	employeeService *service.EmployeeService
}

func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

type CreateEmployeeRequest struct {
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	EmployeeCode string     `json:"employeeCode"`
	HireDate     *time.Time `json:"hireDate"`
}

type ResignationRequest struct {
	ResignationDate time.Time `json:"resignationDate"`
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.FirstName == "" || req.LastName == "" {
		http.Error(w, "First and last name are required", http.StatusBadRequest)
		return
	}

	employee, err := h.employeeService.CreateEmployee(r.Context(), service.CreateEmployeeInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmployeeCode: req.EmployeeCode,
		HireDate:     req.HireDate,
	})
	if err != nil {
		log.Printf("ERROR [EmployeeHandler.Create] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(employee)
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		employees []*domain.Employee
		err       error
	)
	switch r.URL.Query().Get("status") {
	case "active":
		employees, err = h.employeeService.ListActiveEmployees(r.Context())
	case "resigned":
		employees, err = h.employeeService.ListResignedEmployees(r.Context())
	default:
		employees, err = h.employeeService.ListEmployees(r.Context())
	}
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(employees)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	employeeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid employee ID", http.StatusBadRequest)
		return
	}

	employee, err := h.employeeService.GetEmployee(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			http.Error(w, "Employee not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(employee)
}

func (h *EmployeeHandler) Resign(w http.ResponseWriter, r *http.Request) {
	employeeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid employee ID", http.StatusBadRequest)
		return
	}

	var req ResignationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ResignationDate.IsZero() {
		http.Error(w, "Resignation date is required", http.StatusBadRequest)
		return
	}

	employee, err := h.employeeService.RecordResignation(r.Context(), employeeID, req.ResignationDate)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmployeeNotFound):
			http.Error(w, "Employee not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrAlreadyResigned):
			http.Error(w, "Employee has already resigned", http.StatusConflict)
		default:
			log.Printf("ERROR [EmployeeHandler.Resign] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(employee)
}
