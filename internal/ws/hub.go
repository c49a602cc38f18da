package ws

import (
	"encoding/json"
	"sync"

	"dulpton/internal/domain"
	"dulpton/internal/logger"
)

// Event is the wire envelope for feed messages.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Hub fans activity events out to the owning user's open feed connections.
// A user may hold several connections (multiple tabs); each gets every event.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]map[*Client]bool)}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.clients[c.userID]
	if !ok {
		conns = make(map[*Client]bool)
		h.clients[c.userID] = conns
	}
	conns[c] = true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if conns[c] {
		delete(conns, c)
		close(c.send)
	}
	if len(conns) == 0 {
		delete(h.clients, c.userID)
	}
}

// Notify implements the ledger's notifier: every appended activity is pushed
// to the user's live feed. A slow connection is dropped rather than blocking
// the ledger.
func (h *Hub) Notify(a domain.UserActivity) {
	payload, err := json.Marshal(Event{Type: "activity", Data: a})
	if err != nil {
		logger.Error("failed to encode feed event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[a.UserID] {
		select {
		case c.send <- payload:
		default:
			go c.conn.Close()
		}
	}
}
