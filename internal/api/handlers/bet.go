package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dvfactor/dv-factor/internal/api/middleware"
	"github.com/dvfactor/dv-factor/internal/domain"
	"github.com/dvfactor/dv-factor/internal/service"
	"github.com/dvfactor/dv-factor/internal/websocket"
)

type BetHandler struct {
	betService *service.BetService
	hub        *websocket.Hub
}

func NewBetHandler(betService *service.BetService, hub *websocket.Hub) *BetHandler {
	return &BetHandler{
		betService: betService,
		hub:        hub,
	}
}

type PlaceBetRequest struct {
	Employee1ID         uuid.UUID  `json:"employee1Id"`
	Employee2ID         uuid.UUID  `json:"employee2Id"`
	Employee3ID         uuid.UUID  `json:"employee3Id"`
	ChiringuitoEmployee *uuid.UUID `json:"chiringuitoEmployeeId"`
}

func (h *BetHandler) Place(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	editionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid edition ID", http.StatusBadRequest)
		return
	}

	var req PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	bet, err := h.betService.PlaceBet(r.Context(), userID, editionID, service.PlaceBetInput{
		Employee1ID:         req.Employee1ID,
		Employee2ID:         req.Employee2ID,
		Employee3ID:         req.Employee3ID,
		ChiringuitoEmployee: req.ChiringuitoEmployee,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditionNotFound):
			http.Error(w, "Edition not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrEditionNotOpen):
			http.Error(w, "Edition is not open", http.StatusConflict)
		case errors.Is(err, domain.ErrParticipantNotFound):
			http.Error(w, "Enroll in the edition first", http.StatusConflict)
		case errors.Is(err, domain.ErrPaymentRequired):
			http.Error(w, "Payment must be confirmed before betting", http.StatusConflict)
		case errors.Is(err, domain.ErrEmployeeNotFound):
			http.Error(w, "Selected employee not found", http.StatusBadRequest)
		case errors.Is(err, domain.ErrAlreadyResigned):
			http.Error(w, "Selected employee has already resigned", http.StatusBadRequest)
		case errors.Is(err, domain.ErrDuplicateSelection):
			http.Error(w, "The three selections must be distinct", http.StatusBadRequest)
		case errors.Is(err, domain.ErrBonusNotSelected):
			http.Error(w, "Chiringuito bonus must be on one of the three selections", http.StatusBadRequest)
		default:
			log.Printf("ERROR [BetHandler.Place] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(bet)
}

func (h *BetHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	editionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid edition ID", http.StatusBadRequest)
		return
	}

	bet, err := h.betService.GetMyBet(r.Context(), userID, editionID)
	if err != nil {
		if errors.Is(err, service.ErrBetNotFound) {
			http.Error(w, "No bet placed", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bet)
}

// List returns the edition's bets. Before the reveal, other users' bets
// are reduced to who has bet; selections stay hidden.
func (h *BetHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	editionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid edition ID", http.StatusBadRequest)
		return
	}

	bets, err := h.betService.ListBets(r.Context(), editionID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	visible := make([]*domain.Bet, 0, len(bets))
	for _, bet := range bets {
		if bet.IsRevealed || bet.UserID == userID || middleware.IsAdmin(r.Context()) {
			visible = append(visible, bet)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(visible)
}

func (h *BetHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	editionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid edition ID", http.StatusBadRequest)
		return
	}

	if err := h.betService.RevealBets(r.Context(), editionID); err != nil {
		switch {
		case errors.Is(err, domain.ErrEditionNotFound):
			http.Error(w, "Edition not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrEditionStillOpen):
			http.Error(w, "Edition is still open", http.StatusConflict)
		default:
			log.Printf("ERROR [BetHandler.Reveal] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.hub.Publish(&websocket.Event{
		Type:      websocket.EventTypeBetsRevealed,
		EditionID: editionID,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
