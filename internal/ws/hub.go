package ws

import (
	"encoding/json"
	"sync"
)

// Client is one dashboard connection, scoped to a business.
type Client struct {
	StaffID    string
	BusinessID string
	Send       chan []byte
	hub        *Hub
	mu         sync.Mutex
	closed     bool
}

func NewClient(staffID, businessID string) *Client {
	return &Client{
		StaffID:    staffID,
		BusinessID: businessID,
		Send:       make(chan []byte, 256),
	}
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.hub != nil {
		c.hub.unregister(c)
	}
	close(c.Send)
}

// Hub fans order events out to the dashboards of each business.
type Hub struct {
	mu         sync.RWMutex
	byBusiness map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{byBusiness: make(map[string]map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.hub = h
	if h.byBusiness[c.BusinessID] == nil {
		h.byBusiness[c.BusinessID] = make(map[*Client]struct{})
	}
	h.byBusiness[c.BusinessID][c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m := h.byBusiness[c.BusinessID]; m != nil {
		delete(m, c)
		if len(m) == 0 {
			delete(h.byBusiness, c.BusinessID)
		}
	}
}

// PublishOrderEvent sends the payload to every dashboard of the business. Slow clients drop messages.
func (h *Hub) PublishOrderEvent(businessID string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.byBusiness[businessID] {
		select {
		case c.Send <- data:
		default:
		}
	}
}

func (h *Hub) ClientCount(businessID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byBusiness[businessID])
}
