package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesSubscribers(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	editionID := uuid.New()
	subscribed := &Client{hub: hub, send: make(chan []byte, 4), userID: uuid.New()}
	other := &Client{hub: hub, send: make(chan []byte, 4), userID: uuid.New()}

	hub.Register(subscribed)
	hub.Register(other)
	hub.subscribe <- &SubscribeRequest{Client: subscribed, EditionID: editionID}
	hub.subscribe <- &SubscribeRequest{Client: other, EditionID: uuid.New()}

	hub.Publish(&Event{Type: EventTypeBetsRevealed, EditionID: editionID})

	select {
	case data := <-subscribed.send:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, EventTypeBetsRevealed, event.Type)
		assert.Equal(t, editionID, event.EditionID)
	case <-time.After(time.Second):
		t.Fatal("subscribed client never received the event")
	}

	select {
	case <-other.send:
		t.Fatal("client subscribed to another edition received the event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_ResubscribeMovesClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	first := uuid.New()
	second := uuid.New()
	client := &Client{hub: hub, send: make(chan []byte, 4), userID: uuid.New()}

	hub.Register(client)
	hub.subscribe <- &SubscribeRequest{Client: client, EditionID: first}
	hub.subscribe <- &SubscribeRequest{Client: client, EditionID: second}

	hub.Publish(&Event{Type: EventTypePoolUpdated, EditionID: second})

	select {
	case data := <-client.send:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, second, event.EditionID)
	case <-time.After(time.Second):
		t.Fatal("client never received the event for its new edition")
	}

	hub.Publish(&Event{Type: EventTypePoolUpdated, EditionID: first})
	select {
	case <-client.send:
		t.Fatal("client still receives events for its old edition")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_PublishAfterStopIsNoop(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	// Must not panic or block.
	hub.Publish(&Event{Type: EventTypePoolUpdated, EditionID: uuid.New()})
}
