package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvfactor/dv-factor/internal/domain"
	"github.com/dvfactor/dv-factor/internal/repository"
	"github.com/dvfactor/dv-factor/internal/service"
	"github.com/dvfactor/dv-factor/internal/websocket"
)

type SettlementHandler struct {
	settlementService *service.SettlementService
	payoutTableRepo   repository.PayoutTableRepository
	hub               *websocket.Hub
}

func NewSettlementHandler(settlementService *service.SettlementService, payoutTableRepo repository.PayoutTableRepository, hub *websocket.Hub) *SettlementHandler {
	return &SettlementHandler{
		settlementService: settlementService,
		payoutTableRepo:   payoutTableRepo,
		hub:               hub,
	}
}

type PayoutRowRequest struct {
	Month        int             `json:"month"`
	BettorsCount int             `json:"bettorsCount"`
	Percentage   decimal.Decimal `json:"percentage"`
}

func (h *SettlementHandler) GetPayoutTable(w http.ResponseWriter, r *http.Request) {
	rows, err := h.payoutTableRepo.GetAll(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

// SeedPayoutTable loads the payout percentage rows. Existing rows for
// the same (month, bettors count) pairs are overwritten.
func (h *SettlementHandler) SeedPayoutTable(w http.ResponseWriter, r *http.Request) {
	var reqs []PayoutRowRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(reqs) == 0 {
		http.Error(w, "At least one payout row is required", http.StatusBadRequest)
		return
	}

	rows := make([]*domain.PayoutRow, 0, len(reqs))
	for _, req := range reqs {
		if req.Month < 1 || req.Month > 12 || req.BettorsCount < 1 {
			http.Error(w, "Invalid payout row", http.StatusBadRequest)
			return
		}
		rows = append(rows, &domain.PayoutRow{
			ID:           uuid.New(),
			Month:        req.Month,
			BettorsCount: req.BettorsCount,
			Percentage:   req.Percentage,
		})
	}

	if err := h.payoutTableRepo.CreateMany(r.Context(), rows); err != nil {
		log.Printf("ERROR [SettlementHandler.SeedPayoutTable] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rows)
}

func (h *SettlementHandler) Settle(w http.ResponseWriter, r *http.Request) {
	editionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid edition ID", http.StatusBadRequest)
		return
	}

	settlement, err := h.settlementService.Settle(r.Context(), editionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditionNotFound):
			http.Error(w, "Edition not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrEditionStillOpen):
			http.Error(w, "Close the edition before settling", http.StatusConflict)
		case errors.Is(err, service.ErrAlreadySettled):
			http.Error(w, "Edition is already settled", http.StatusConflict)
		default:
			log.Printf("ERROR [SettlementHandler.Settle] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.publishEditionFinished(editionID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(settlement)
}

func (h *SettlementHandler) Get(w http.ResponseWriter, r *http.Request) {
	editionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid edition ID", http.StatusBadRequest)
		return
	}

	settlement, err := h.settlementService.GetByEdition(r.Context(), editionID)
	if err != nil {
		if errors.Is(err, domain.ErrEditionNotFinished) {
			http.Error(w, "Edition is not settled", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settlement)
}

func (h *SettlementHandler) publishEditionFinished(editionID uuid.UUID) {
	payload, err := json.Marshal(websocket.EditionUpdatedPayload{Status: string(domain.EditionStatusFinished)})
	if err != nil {
		log.Printf("ERROR [SettlementHandler] marshal edition update: %v", err)
		return
	}
	h.hub.Publish(&websocket.Event{
		Type:      websocket.EventTypeEditionUpdated,
		EditionID: editionID,
		Payload:   payload,
	})
}
