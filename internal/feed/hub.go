package feed

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/mtcnamibia/careers/internal/model"
)

// Event is a recruitment activity notification pushed to connected HR
// dashboards.
type Event struct {
	Type    string         `json:"type"`
	ID      int64          `json:"id,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Event types broadcast on the HR feed.
const (
	EventApplicationSubmitted = "application_submitted"
	EventApplicationStatus    = "application_status_changed"
	EventJobPublished         = "job_published"
	EventJobClosed            = "job_closed"
)

// ApplicationSubmitted builds the event for a new application.
func ApplicationSubmitted(d *model.ApplicationDetail) Event {
	return Event{
		Type: EventApplicationSubmitted,
		ID:   d.ID,
		Payload: map[string]any{
			"job_id":    d.JobID,
			"job_title": d.Job.Title,
			"applicant": d.Applicant.DisplayName(),
		},
	}
}

// ApplicationStatusChanged builds the event for an HR status update.
func ApplicationStatusChanged(d *model.ApplicationDetail) Event {
	return Event{
		Type: EventApplicationStatus,
		ID:   d.ID,
		Payload: map[string]any{
			"job_id":    d.JobID,
			"job_title": d.Job.Title,
			"status":    d.Status,
		},
	}
}

// JobStatusChanged builds the event for a job moving in or out of the
// published state. Other transitions produce no event.
func JobStatusChanged(j *model.Job) (Event, bool) {
	switch j.Status {
	case model.JobStatusPublished:
		return Event{Type: EventJobPublished, ID: j.ID, Payload: map[string]any{"title": j.Title}}, true
	case model.JobStatusClosed:
		return Event{Type: EventJobClosed, ID: j.ID, Payload: map[string]any{"title": j.Title}}, true
	}
	return Event{}, false
}

// Hub maintains the set of connected HR dashboard clients and broadcasts
// events to all of them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends an event to all connected clients.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("marshal feed event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Slow client, drop rather than block the broadcast.
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
