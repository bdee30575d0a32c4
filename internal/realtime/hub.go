package realtime

import (
	"encoding/json"
	"sync"

	"project-board-api/internal/logutils"
)

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub tracks clients subscribed to project boards and fans board events out
// to them. Events are refetch hints for the frontend, not state transfer:
// on any failure the client refetches the whole board.
type Hub struct {
	mu               sync.RWMutex
	projectToClients map[string]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = &Hub{
			projectToClients: make(map[string]map[Client]struct{}),
		}
	})
	return hubInstance
}

// Register subscribes a client to a project's board events.
func (h *Hub) Register(projectID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.projectToClients[projectID]; !ok {
		h.projectToClients[projectID] = make(map[Client]struct{})
	}
	h.projectToClients[projectID][client] = struct{}{}
}

// Unregister removes a client; if the project has no more clients, cleans up the map.
func (h *Hub) Unregister(projectID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.projectToClients[projectID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.projectToClients, projectID)
		}
	}
}

// Broadcast sends a message to all clients watching a project's board.
func (h *Hub) Broadcast(projectID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := h.projectToClients[projectID]
	for c := range clients {
		// a failed write is left for the handler to clean up on its side
		_ = c.Send(message)
	}
}

// BroadcastEvent marshals and broadcasts a board event for a project.
func (h *Hub) BroadcastEvent(projectID, eventType string, fields map[string]any) {
	evt := map[string]any{
		"type":      eventType,
		"projectId": projectID,
		"version":   1,
	}
	for k, v := range fields {
		evt[k] = v
	}
	bytes, err := json.Marshal(evt)
	if err != nil {
		logutils.Log.WithField("event", eventType).Warn("failed to marshal board event")
		return
	}
	h.Broadcast(projectID, bytes)
}
