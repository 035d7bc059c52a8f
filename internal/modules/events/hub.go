package events

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	TypeBookingCreated      = "booking_created"
	TypePaymentLinkAttached = "payment_link_attached"
)

// Event is one entry on the operator feed.
type Event struct {
	Type        string    `json:"type"`
	BookingID   int64     `json:"booking_id"`
	PaymentLink string    `json:"payment_link,omitempty"`
	At          time.Time `json:"at"`
}

// client serializes writes to one connection; gorilla/websocket allows a
// single concurrent writer per connection.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) send(ev Event) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.conn.WriteJSON(ev)
}

// Hub fans booking lifecycle events out to connected operator clients.
// Connections are keyed by an opaque client id; a reconnect with the same id
// replaces the old connection.
type Hub struct {
	clients map[string]*client
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
	}
}

func (h *Hub) Register(clientID string, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.clients[clientID]; exists && old != nil {
		_ = old.conn.Close()
	}

	h.clients[clientID] = &client{conn: conn}
}

func (h *Hub) Unregister(clientID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if c, exists := h.clients[clientID]; exists && c != nil {
		_ = c.conn.Close()
		delete(h.clients, clientID)
	}
}

// Broadcast sends the event to every connected client, dropping connections
// that fail to write. Safe to call from concurrent requests.
func (h *Hub) Broadcast(ev Event) {
	h.mutex.RLock()
	targets := make(map[string]*client, len(h.clients))
	for id, c := range h.clients {
		targets[id] = c
	}
	h.mutex.RUnlock()

	for id, c := range targets {
		if c == nil {
			continue
		}
		if err := c.send(ev); err != nil {
			h.Unregister(id)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, c := range h.clients {
		if c != nil {
			_ = c.conn.Close()
		}
		delete(h.clients, id)
	}
}

// BookingCreated implements the notifier interface used by the invoice
// service.
func (h *Hub) BookingCreated(bookingID int64) {
	h.Broadcast(Event{Type: TypeBookingCreated, BookingID: bookingID, At: time.Now().UTC()})
}

func (h *Hub) PaymentLinkAttached(bookingID int64, url string) {
	h.Broadcast(Event{Type: TypePaymentLinkAttached, BookingID: bookingID, PaymentLink: url, At: time.Now().UTC()})
}
