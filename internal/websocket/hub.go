// Package websocket pushes edition updates (pool changes, status
// transitions, bet reveals) to connected dashboards, so clients never
// poll or guess when a payment confirmation has landed.
package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
)

type Hub struct {
	clients    map[*Client]bool
	byEdition  map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	subscribe  chan *SubscribeRequest
	broadcast  chan *Event
	stop       chan struct{}
	done       chan struct{}
	stopped    bool
	mu         sync.RWMutex
}

type SubscribeRequest struct {
	Client    *Client
	EditionID uuid.UUID
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		byEdition:  make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		subscribe:  make(chan *SubscribeRequest),
		broadcast:  make(chan *Event, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.byEdition = make(map[uuid.UUID]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					if client.editionID != nil {
						delete(h.byEdition[*client.editionID], client)
					}
					client.Close()
				}
			}
			h.mu.Unlock()

		case req := <-h.subscribe:
			h.mu.Lock()
			if !h.stopped {
				if req.Client.editionID != nil {
					delete(h.byEdition[*req.Client.editionID], req.Client)
				}
				editionID := req.EditionID
				req.Client.editionID = &editionID
				if h.byEdition[editionID] == nil {
					h.byEdition[editionID] = make(map[*Client]bool)
				}
				h.byEdition[editionID][req.Client] = true
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

// Stop gracefully shuts down the hub and waits for Run to exit.
func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}

// Register adds a newly upgraded connection to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Publish queues an event for every client subscribed to its edition.
func (h *Hub) Publish(event *Event) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}

	select {
	case h.broadcast <- event:
	default:
		log.Printf("websocket hub: dropping %s event for edition %s, broadcast queue full", event.Type, event.EditionID)
	}
}

func (h *Hub) deliver(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("websocket hub: failed to marshal %s event: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.byEdition[event.EditionID] {
		select {
		case client.send <- data:
		default:
			// Slow consumer; it will be dropped by its own pump.
		}
	}
}
