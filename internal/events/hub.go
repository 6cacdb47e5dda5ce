package events

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"sportarea/internal/domain"
)

// Event is what admin dashboards receive over the websocket feed.
type Event struct {
	Type      string    `json:"type"`
	BookingID int64     `json:"booking_id"`
	FieldType string    `json:"field_type,omitempty"`
	Date      string    `json:"date,omitempty"`
	TimeSlot  string    `json:"time_slot,omitempty"`
	Status    string    `json:"status,omitempty"`
	At        time.Time `json:"at"`
}

const (
	EventBookingCreated = "booking.created"
	EventBookingDecided = "booking.decided"
	EventBookingDeleted = "booking.deleted"
)

// client wraps a connection with a write mutex: gorilla/websocket
// allows at most one concurrent writer per connection, and Broadcast
// can be called from any request goroutine.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (cl *client) write(ev Event) error {
	cl.writeMu.Lock()
	defer cl.writeMu.Unlock()
	return cl.conn.WriteJSON(ev)
}

// Hub fans booking lifecycle events out to connected admin clients.
// One connection per user id; a reconnect replaces the old socket.
type Hub struct {
	clients map[int64]*client
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]*client),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.clients[userID]; exists && old != nil {
		_ = old.conn.Close()
	}

	h.clients[userID] = &client{conn: conn}
}

// unregister drops the client only while conn is still the one
// registered for userID; a stale socket replaced by a reconnect must
// not tear down its successor.
func (h *Hub) unregister(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	cl, exists := h.clients[userID]
	if !exists || cl == nil || cl.conn != conn {
		return
	}
	_ = cl.conn.Close()
	delete(h.clients, userID)
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

// Broadcast writes the event to every connected client, dropping
// connections that fail mid-write.
func (h *Hub) Broadcast(ev Event) {
	h.mutex.RLock()
	targets := make(map[int64]*client, len(h.clients))
	for id, cl := range h.clients {
		targets[id] = cl
	}
	h.mutex.RUnlock()

	for id, cl := range targets {
		if cl == nil {
			continue
		}
		if err := cl.write(ev); err != nil {
			h.unregister(id, cl.conn)
		}
	}
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, cl := range h.clients {
		if cl != nil {
			_ = cl.conn.Close()
		}
		delete(h.clients, userID)
	}
}

// The hub is the booking service's event sink.

func (h *Hub) NotifyBookingCreated(_ context.Context, b *domain.Booking) error {
	h.Broadcast(Event{
		Type:      EventBookingCreated,
		BookingID: b.ID,
		FieldType: string(b.FieldType),
		Date:      b.Date.Format("2006-01-02"),
		TimeSlot:  b.TimeSlot,
		Status:    string(b.Status),
		At:        time.Now(),
	})
	return nil
}

func (h *Hub) NotifyBookingDecided(_ context.Context, b *domain.Booking) error {
	h.Broadcast(Event{
		Type:      EventBookingDecided,
		BookingID: b.ID,
		FieldType: string(b.FieldType),
		Date:      b.Date.Format("2006-01-02"),
		TimeSlot:  b.TimeSlot,
		Status:    string(b.Status),
		At:        time.Now(),
	})
	return nil
}

func (h *Hub) NotifyBookingDeleted(_ context.Context, bookingID int64) error {
	h.Broadcast(Event{
		Type:      EventBookingDeleted,
		BookingID: bookingID,
		At:        time.Now(),
	})
	return nil
}
