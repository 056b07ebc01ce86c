package websocket

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
)

// Hub maintains the set of active Clients and broadcasts engine events
// to them. There is no addressing: every client is a toolbar instance
// for the same agent and receives everything.
type Hub struct {
	// clients is the set of active connections
	clients map[*Client]bool

	// broadcast channel for events
	broadcast chan domain.Event

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// mu protects the clients map
	mu sync.RWMutex

	// logger for the hub
	logger *slog.Logger
}

// Ensure Hub implements the EventBroadcaster interface.
var _ ports.EventBroadcaster = (*Hub)(nil)

// NewHub creates a new WebSocket hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan domain.Event, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		logger:     logger.With("component", "websocket_hub"),
	}
}

// Broadcast hands an event to the hub's event loop. If the loop is
// saturated the event is dropped; every payload is a full snapshot, so
// the next tick repairs any gap.
func (h *Hub) Broadcast(event domain.Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("broadcast channel full, dropping event", "event_type", event.Type)
	}
}

// Run starts the hub's event loop. This MUST be run as a goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.logger.Info("client registered", "client_id", client.ID, "total_connections", len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.CloseSend()
		h.logger.Info("client unregistered", "client_id", client.ID, "total_connections", len(h.clients))
	}
}

// broadcastEvent fans an event out to every client. Clients whose send
// buffer is full are collected and dropped after the lock is released;
// unregistering re-takes the write lock.
func (h *Hub) broadcastEvent(event domain.Event) {
	h.mu.RLock()
	var stale []*Client
	for client := range h.clients {
		select {
		case client.Send <- event:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.logger.Warn("client send buffer full, dropping connection", "client_id", client.ID)
		h.unregisterClient(client)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.CloseSend()
		delete(h.clients, client)
	}
}
