package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/dvfactor/dv-factor/internal/api/middleware"
	"github.com/dvfactor/dv-factor/internal/domain"
	"github.com/dvfactor/dv-factor/internal/repository"
	"github.com/dvfactor/dv-factor/internal/service"
)

type DashboardHandler struct {
	editionService     *service.EditionService
	participantService *service.ParticipantService
	betService         *service.BetService
	employeeService    *service.EmployeeService
	payoutTableRepo    repository.PayoutTableRepository
}

func NewDashboardHandler(
	editionService *service.EditionService,
	participantService *service.ParticipantService,
	betService *service.BetService,
	employeeService *service.EmployeeService,
	payoutTableRepo repository.PayoutTableRepository,
) *DashboardHandler {
	return &DashboardHandler{
		editionService:     editionService,
		participantService: participantService,
		betService:         betService,
		employeeService:    employeeService,
		payoutTableRepo:    payoutTableRepo,
	}
}

type DashboardParticipant struct {
	ID               string `json:"id"`
	DisplayName      string `json:"displayName"`
	PaymentConfirmed bool   `json:"paymentConfirmed"`
	HasBet           bool   `json:"hasBet"`
}

type DashboardResponse struct {
	Edition      *domain.Edition        `json:"edition"`
	TotalPool    decimal.Decimal        `json:"totalPool"`
	Enrolled     bool                   `json:"enrolled"`
	Participants []DashboardParticipant `json:"participants"`
	Me           *domain.Participant    `json:"me,omitempty"`
	MyBet        *domain.Bet            `json:"myBet,omitempty"`
	Employees    []*domain.Employee     `json:"employees"`
	PayoutTable  []*domain.PayoutRow    `json:"payoutTable"`
}

// Get assembles the home screen for the current open edition: the live
// pool total, everyone's payment and bet status, the bettable employees
// and payout table, and the caller's own enrollment and bet. Visiting
// the dashboard of an open edition enrolls the caller automatically.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	edition, err := h.editionService.GetCurrentEdition(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrEditionNotFound) {
			http.Error(w, "No open edition", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	me, err := h.participantService.EnsureEnrollment(r.Context(), userID, edition.ID)
	if err != nil {
		log.Printf("ERROR [DashboardHandler.Get] auto-enroll: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	participants, err := h.participantService.ListByEdition(r.Context(), edition.ID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	employees, err := h.employeeService.ListActiveEmployees(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	payoutRows, err := h.payoutTableRepo.GetAll(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := DashboardResponse{
		Edition:     edition,
		TotalPool:   edition.TotalPool,
		Enrolled:    me != nil,
		Me:          me,
		Employees:   employees,
		PayoutTable: payoutRows,
	}
	for _, p := range participants {
		displayName := ""
		if p.User != nil {
			displayName = p.User.DisplayName()
		}
		resp.Participants = append(resp.Participants, DashboardParticipant{
			ID:               p.ID.String(),
			DisplayName:      displayName,
			PaymentConfirmed: p.PaymentConfirmed,
			HasBet:           p.HasBet,
		})
	}

	if bet, err := h.betService.GetMyBet(r.Context(), userID, edition.ID); err == nil {
		resp.MyBet = bet
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
