package services

import (
	"sync"
)

// EntityEvent represents a real-time entity change notification
type EntityEvent struct {
	Entity    string `json:"entity"` // project, task, milestone, user
	Action    string `json:"action"` // created, updated, deleted
	ID        uint   `json:"id"`
	ProjectID uint   `json:"project_id,omitempty"`
}

// EventHub manages SSE client connections and event broadcasting
type EventHub struct {
	clients map[string]chan EntityEvent
	mu      sync.RWMutex
}

// NewEventHub creates a new event hub instance
func NewEventHub() *EventHub {
	return &EventHub{
		clients: make(map[string]chan EntityEvent),
	}
}

// Subscribe registers a new client and returns a channel for receiving events
func (h *EventHub) Subscribe(clientID string) <-chan EntityEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Create buffered channel to prevent blocking
	ch := make(chan EntityEvent, 100)
	h.clients[clientID] = ch
	return ch
}

// Unsubscribe removes a client from the hub
func (h *EventHub) Unsubscribe(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.clients[clientID]; ok {
		close(ch)
		delete(h.clients, clientID)
	}
}

// Publish broadcasts an event to all connected clients
func (h *EventHub) Publish(event EntityEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.clients {
		// Non-blocking send - drop event if client buffer is full
		select {
		case ch <- event:
		default:
			// Client is slow, skip this event
		}
	}
}

// ClientCount returns the number of connected clients
func (h *EventHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Global event hub instance
var globalEventHub *EventHub
var eventHubOnce sync.Once

// GetEventHub returns the global event hub singleton
func GetEventHub() *EventHub {
	eventHubOnce.Do(func() {
		globalEventHub = NewEventHub()
	})
	return globalEventHub
}

// PublishEntityEvent is a convenience function to publish entity change events
func PublishEntityEvent(entity, action string, id, projectID uint) {
	GetEventHub().Publish(EntityEvent{
		Entity:    entity,
		Action:    action,
		ID:        id,
		ProjectID: projectID,
	})
}
