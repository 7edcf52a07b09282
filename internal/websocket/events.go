package websocket

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventTypePoolUpdated    EventType = "pool_updated"
	EventTypeEditionUpdated EventType = "edition_updated"
	EventTypeBetsRevealed   EventType = "bets_revealed"
)

// Event is what the server pushes to dashboards subscribed to an
// edition. Payload shape depends on Type.
type Event struct {
	Type      EventType       `json:"type"`
	EditionID uuid.UUID       `json:"editionId"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type PoolUpdatedPayload struct {
	TotalPool decimal.Decimal `json:"totalPool"`
}

type EditionUpdatedPayload struct {
	Status string `json:"status"`
}

// Messages from the client: subscribe to one edition's updates.
type MessageType string

const (
	MessageTypeSubscribe MessageType = "subscribe"
)

type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type SubscribePayload struct {
	EditionID uuid.UUID `json:"editionId"`
}
