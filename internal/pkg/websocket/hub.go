package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of active clients, organized per trip chat room,
// and broadcasts messages to them.
type Hub struct {
	// Registered clients keyed by trip ID
	rooms map[int64]map[*Client]bool

	// Inbound messages from clients and services
	broadcast chan *Message

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	logger zerolog.Logger
}

// Message represents a chat event sent over the WebSocket connection
type Message struct {
	// Type of event: "message", "reply"
	Type string `json:"type"`

	// Trip whose chat room receives the event
	TripID int64 `json:"tripId"`

	SenderID   int64  `json:"senderId"`
	SenderName string `json:"senderName,omitempty"`
	Content    string `json:"content"`

	// Parent message when the event is a threaded reply
	ParentID *int64 `json:"parentId,omitempty"`

	// Message ID from the database, once persisted
	ID int64 `json:"id,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		rooms:      make(map[int64]map[*Client]bool),
		broadcast:  make(chan *Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run processes registrations and broadcasts until the process exits
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[client.tripID]; !ok {
		h.rooms[client.tripID] = make(map[*Client]bool)
	}
	h.rooms[client.tripID][client] = true

	h.logger.Info().
		Int64("tripID", client.tripID).
		Int64("userID", client.userID).
		Msg("Chat client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.tripID]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}

	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.tripID)
	}

	h.logger.Info().
		Int64("tripID", client.tripID).
		Int64("userID", client.userID).
		Msg("Chat client unregistered")
}

func (h *Hub) broadcastMessage(message *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[message.TripID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Int64("tripID", message.TripID).
			Msg("Failed to marshal message for broadcast")
		return
	}

	for client := range room {
		select {
		case client.send <- data:
		default:
			// Send buffer full, the client is slow or gone
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

// BroadcastToTrip sends a message to every client connected to the trip's
// chat room.
func (h *Hub) BroadcastToTrip(message *Message) {
	h.broadcast <- message
}

// ClientCount returns the number of clients connected to a trip room
func (h *Hub) ClientCount(tripID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[tripID])
}
