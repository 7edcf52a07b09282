package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvfactor/dv-factor/internal/domain"
	"github.com/dvfactor/dv-factor/internal/service"
	"github.com/dvfactor/dv-factor/internal/websocket"
)

type EditionHandler struct {
	editionService *service.EditionService
	hub            *websocket.Hub
}

func NewEditionHandler(editionService *service.EditionService, hub *websocket.Hub) *EditionHandler {
	return &EditionHandler{
		editionService: editionService,
		hub:            hub,
	}
}

type CreateEditionRequest struct {
	Year            int             `json:"year"`
	EntryFee        decimal.Decimal `json:"entryFee"`
	Jackpot         decimal.Decimal `json:"jackpot"`
	StartDate       time.Time       `json:"startDate"`
	BettingDeadline time.Time       `json:"bettingDeadline"`
	EndDate         time.Time       `json:"endDate"`
}

type TransitionRequest struct {
	Status string `json:"status"`
}

func (h *EditionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEditionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Year == 0 {
		http.Error(w, "Year is required", http.StatusBadRequest)
		return
	}

	edition, err := h.editionService.CreateEdition(r.Context(), service.CreateEditionInput{
		Year:            req.Year,
		EntryFee:        req.EntryFee,
		Jackpot:         req.Jackpot,
		StartDate:       req.StartDate,
		BettingDeadline: req.BettingDeadline,
		EndDate:         req.EndDate,
	})
	if err != nil {
		log.Printf("ERROR [EditionHandler.Create] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(edition)
}

func (h *EditionHandler) List(w http.ResponseWriter, r *http.Request) {
	editions, err := h.editionService.ListEditions(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(editions)
}

func (h *EditionHandler) Get(w http.ResponseWriter, r *http.Request) {
	editionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid edition ID", http.StatusBadRequest)
		return
	}

	edition, err := h.editionService.GetEdition(r.Context(), editionID)
	if err != nil {
		if errors.Is(err, domain.ErrEditionNotFound) {
			http.Error(w, "Edition not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(edition)
}

func (h *EditionHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	edition, err := h.editionService.GetCurrentEdition(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrEditionNotFound) {
			http.Error(w, "No open edition", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(edition)
}

func (h *EditionHandler) Transition(w http.ResponseWriter, r *http.Request) {
	editionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid edition ID", http.StatusBadRequest)
		return
	}

	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	next := domain.EditionStatus(req.Status)
	if next != domain.EditionStatusClosed && next != domain.EditionStatusFinished {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	edition, err := h.editionService.TransitionStatus(r.Context(), editionID, next)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditionNotFound):
			http.Error(w, "Edition not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrInvalidStatusTransition):
			http.Error(w, "Invalid status transition", http.StatusConflict)
		default:
			log.Printf("ERROR [EditionHandler.Transition] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.publishEditionUpdated(edition)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(edition)
}

// RecalculatePool forces a pool recomputation for the edition and
// returns the stored total.
func (h *EditionHandler) RecalculatePool(w http.ResponseWriter, r *http.Request) {
	editionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid edition ID", http.StatusBadRequest)
		return
	}

	pool, err := h.editionService.RecalculatePool(r.Context(), editionID)
	if err != nil {
		if errors.Is(err, domain.ErrEditionNotFound) {
			http.Error(w, "Edition not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [EditionHandler.RecalculatePool] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]decimal.Decimal{"totalPool": pool})
}

func (h *EditionHandler) publishEditionUpdated(edition *domain.Edition) {
	payload, err := json.Marshal(websocket.EditionUpdatedPayload{Status: string(edition.Status)})
	if err != nil {
		log.Printf("ERROR [EditionHandler] marshal edition update: %v", err)
		return
	}
	h.hub.Publish(&websocket.Event{
		Type:      websocket.EventTypeEditionUpdated,
		EditionID: edition.ID,
		Payload:   payload,
	})
}
