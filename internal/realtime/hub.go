// Package realtime pushes activity events (persona changes, chat turns,
// history clears) to connected browser sessions over WebSocket.
package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/agentkit/agentkit/internal/logging"
)

// Message is the wire frame exchanged with clients
type Message struct {
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Activity event types pushed by the server
const (
	ActivityPersonaSaved   = "persona_saved"
	ActivityPersonaDeleted = "persona_deleted"
	ActivityMessageSent    = "message_sent"
	ActivityHistoryCleared = "history_cleared"
	ActivityKeySaved       = "key_saved"
	ActivityKeyDeleted     = "key_deleted"
)

// Hub routes activity events to each user's open connections
type Hub struct {
	// userID -> set of clients; only the run loop touches this map
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	events     chan userEvent
}

type userEvent struct {
	userID string
	data   []byte
}

// NewHub creates an idle hub; call Run to start it
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan userEvent, 64),
	}
}

// Run owns the client map until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			if h.clients[client.UserID] == nil {
				h.clients[client.UserID] = make(map[*Client]bool)
			}
			h.clients[client.UserID][client] = true
			logging.Infof("realtime: client %s connected for user %s", client.ID, client.UserID)

		case client := <-h.unregister:
			if conns, ok := h.clients[client.UserID]; ok && conns[client] {
				delete(conns, client)
				if len(conns) == 0 {
					delete(h.clients, client.UserID)
				}
				client.close()
			}

		case ev := <-h.events:
			for client := range h.clients[ev.userID] {
				select {
				case client.send <- ev.data:
				default:
					// Slow consumer, drop the connection
					delete(h.clients[ev.userID], client)
					client.close()
				}
			}

		case <-ctx.Done():
			for _, conns := range h.clients {
				for client := range conns {
					client.close()
				}
			}
			return
		}
	}
}

// Notify pushes an activity event to all of a user's connections.
// Non-blocking: events are dropped if the hub is saturated.
func (h *Hub) Notify(userID, activity string, payload map[string]interface{}) {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payload["activity"] = activity

	data, err := json.Marshal(Message{
		Type:      "activity",
		Data:      payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		logging.Errorf("realtime: failed to marshal event: %v", err)
		return
	}

	select {
	case h.events <- userEvent{userID: userID, data: data}:
	default:
		logging.Warn("realtime: event queue full, dropping event")
	}
}
