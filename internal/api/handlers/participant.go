package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvfactor/dv-factor/internal/api/middleware"
	"github.com/dvfactor/dv-factor/internal/domain"
	"github.com/dvfactor/dv-factor/internal/service"
	"github.com/dvfactor/dv-factor/internal/websocket"
)

type ParticipantHandler struct {
	participantService *service.ParticipantService
	hub                *websocket.Hub
}

func NewParticipantHandler(participantService *service.ParticipantService, hub *websocket.Hub) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: participantService,
		hub:                hub,
	}
}

type PaymentResponse struct {
	Participant *domain.Participant `json:"participant"`
	TotalPool   decimal.Decimal     `json:"totalPool"`
}

// Enroll joins the calling user to the edition at its entry fee.
func (h *ParticipantHandler) Enroll(w http.ResponseWriter, r *http.Request) {
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

	participant, err := h.participantService.EnsureEnrollment(r.Context(), userID, editionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditionNotFound):
			http.Error(w, "Edition not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrEditionNotOpen):
			http.Error(w, "Edition is not open", http.StatusConflict)
		default:
			log.Printf("ERROR [ParticipantHandler.Enroll] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(participant)
}

func (h *ParticipantHandler) ListByEdition(w http.ResponseWriter, r *http.Request) {
	editionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid edition ID", http.StatusBadRequest)
		return
	}

	participants, err := h.participantService.ListByEdition(r.Context(), editionID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(participants)
}

func (h *ParticipantHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	h.setPayment(w, r, true)
}

func (h *ParticipantHandler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	h.setPayment(w, r, false)
}

func (h *ParticipantHandler) setPayment(w http.ResponseWriter, r *http.Request, confirmed bool) {
	participantID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid participant ID", http.StatusBadRequest)
		return
	}

	var (
		participant *domain.Participant
		pool        decimal.Decimal
	)
	if confirmed {
		participant, pool, err = h.participantService.ConfirmPayment(r.Context(), participantID)
	} else {
		participant, pool, err = h.participantService.CancelPayment(r.Context(), participantID)
	}
	if err != nil {
		if errors.Is(err, domain.ErrParticipantNotFound) {
			http.Error(w, "Participant not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [ParticipantHandler.setPayment] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.publishPoolUpdated(participant.EditionID, pool)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PaymentResponse{
		Participant: participant,
		TotalPool:   pool,
	})
}

func (h *ParticipantHandler) publishPoolUpdated(editionID uuid.UUID, pool decimal.Decimal) {
	payload, err := json.Marshal(websocket.PoolUpdatedPayload{TotalPool: pool})
	if err != nil {
		log.Printf("ERROR [ParticipantHandler] marshal pool update: %v", err)
		return
	}
	h.hub.Publish(&websocket.Event{
		Type:      websocket.EventTypePoolUpdated,
		EditionID: editionID,
		Payload:   payload,
	})
}
