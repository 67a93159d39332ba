// Package websocket streams curriculum change events to editors watching a
// programme.
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event is pushed to every client watching the programme it belongs to.
type Event struct {
	// Kind of change, e.g. "course.created"
	Kind string `json:"kind"`

	ProgrammeID int64 `json:"programmeId"`

	// Zero for programme-level changes
	CourseID int64 `json:"courseId,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// eventQueueSize bounds how far publishers may run ahead of the hub.
const eventQueueSize = 64

// Hub maintains the set of active clients and broadcasts events to them
type Hub struct {
	// Registered clients organized by programme ID
	clients map[int64]map[*Client]bool

	events     chan Event
	register   chan *Client
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	allowedOrigins []string
	now            func() time.Time
	logger         zerolog.Logger
}

// NewHub creates a new Hub instance. Browser connections are accepted from
// allowedOrigins only; "*" accepts any origin.
func NewHub(allowedOrigins []string, logger zerolog.Logger) *Hub {
	return &Hub{
		clients:        make(map[int64]map[*Client]bool),
		events:         make(chan Event, eventQueueSize),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		done:           make(chan struct{}),
		allowedOrigins: allowedOrigins,
		now:            time.Now,
		logger:         logger,
	}
}

// Run handles registrations and broadcasts until ctx is cancelled, then
// closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.events:
			h.broadcast(event)
		}
	}
}

// Notify queues a change event. It never blocks; events are dropped when
// the queue is full or the hub has stopped.
func (h *Hub) Notify(programmeID int64, kind string, courseID int64) {
	event := Event{
		Kind:        kind,
		ProgrammeID: programmeID,
		CourseID:    courseID,
		Timestamp:   h.now().UTC(),
	}

	select {
	case <-h.done:
		return
	default:
	}

	select {
	case h.events <- event:
	default:
		h.logger.Warn().
			Int64("programmeID", programmeID).
			Str("kind", kind).
			Msg("Event queue full, dropping event")
	}
}

// clientsCount returns the number of connected clients for a programme
func (h *Hub) clientsCount(programmeID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[programmeID])
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	programmeID := client.programmeID
	if _, ok := h.clients[programmeID]; !ok {
		h.clients[programmeID] = make(map[*Client]bool)
	}
	h.clients[programmeID][client] = true

	h.logger.Info().
		Int64("programmeID", programmeID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(client)
}

// removeLocked drops client and closes its send channel. Callers hold mu.
func (h *Hub) removeLocked(client *Client) {
	programmeID := client.programmeID
	clients, ok := h.clients[programmeID]
	if !ok || !clients[client] {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, programmeID)
	}

	h.logger.Info().
		Int64("programmeID", programmeID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client unregistered")
}

func (h *Hub) broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Int64("programmeID", event.ProgrammeID).Msg("Failed to marshal event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[event.ProgrammeID]
	for client := range clients {
		select {
		case client.send <- data:
		default:
			// Slow reader; its write pump closes the connection.
			h.removeLocked(client)
		}
	}

	h.logger.Debug().
		Int64("programmeID", event.ProgrammeID).
		Str("kind", event.Kind).
		Int("clientCount", len(clients)).
		Msg("Event broadcasted to programme")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}
