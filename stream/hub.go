// ABOUTME: Websocket hub managing the live-stream subscriber registry
// ABOUTME: Fans out serialized events and evicts subscribers whose sends fail

package stream

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// writeWait bounds a single send so one stalled subscriber cannot stall a
// whole broadcast pass indefinitely.
const writeWait = 5 * time.Second

// Conn is the subset of *websocket.Conn the hub needs. Tests substitute
// in-memory stubs.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Subscriber is one connected viewer. Its lifecycle runs from Register to
// Unregister, or to the first failed delivery.
type Subscriber struct {
	id   string
	conn Conn

	mu sync.Mutex // serializes frames on the connection
}

// ID returns the subscriber's registry key.
func (s *Subscriber) ID() string {
	return s.id
}

func (s *Subscriber) send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub tracks the set of live subscribers and fans broadcasts out to them.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]*Subscriber
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]*Subscriber),
	}
}

// Register adds a connection to the registry and returns its handle.
func (h *Hub) Register(conn Conn) *Subscriber {
	sub := &Subscriber{
		id:   uuid.New().String(),
		conn: conn,
	}

	h.mu.Lock()
	h.subscribers[sub.id] = sub
	total := len(h.subscribers)
	h.mu.Unlock()

	slog.Info("Subscriber connected", "id", sub.id, "total", total)
	return sub
}

// Unregister removes a subscriber. Safe to call more than once.
func (h *Hub) Unregister(sub *Subscriber) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	_, present := h.subscribers[sub.id]
	delete(h.subscribers, sub.id)
	total := len(h.subscribers)
	h.mu.Unlock()

	if present {
		slog.Info("Subscriber disconnected", "id", sub.id, "total", total)
	}
}

// Count returns current registry membership.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Broadcast delivers payload to every subscriber registered when the call
// starts. Membership is snapshotted first, so connects and disconnects during
// the pass never disturb the iteration. A failed send evicts that subscriber
// before Broadcast returns; the rest still get their delivery.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.Lock()
	subs := make([]*Subscriber, 0, len(h.subscribers))
	for _, sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	var failed []*Subscriber
	for _, sub := range subs {
		if err := sub.send(payload); err != nil {
			slog.Warn("Dropping subscriber after failed delivery", "id", sub.id, "error", err)
			failed = append(failed, sub)
		}
	}

	for _, sub := range failed {
		h.Unregister(sub)
		sub.conn.Close()
	}
}
