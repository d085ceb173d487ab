// Package hooks provides an event-driven hook system for agent core
// lifecycle events. A future transport to the companion app attaches here
// without changing the supervisor loop.
package hooks

import (
	"context"
	"sync"

	"github.com/soyeahso/agentcore/internal/logging"
	"github.com/soyeahso/agentcore/internal/supervisor"
)

// Event names for the hook system.
const (
	EventAgentStart = "agent_start"
	EventHeartbeat  = "heartbeat"
	EventTickError  = "tick_error"
	EventAgentStop  = "agent_stop"
)

// AllEvents lists all known hook event names.
var AllEvents = []string{
	EventAgentStart,
	EventHeartbeat,
	EventTickError,
	EventAgentStop,
}

// Payload carries event data to hook handlers.
type Payload struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data,omitempty"`
}

// Handler is a function that handles a hook event.
// Returning an error logs the failure but does not stop processing.
type Handler func(ctx context.Context, p Payload) error

// Manager manages hook registrations and dispatches events.
type Manager struct {
	mu       sync.RWMutex
	handlers map[string][]namedHandler
	log      *logging.Logger
}

type namedHandler struct {
	name    string
	handler Handler
}

// NewManager creates a hook manager.
func NewManager(log *logging.Logger) *Manager {
	return &Manager{
		handlers: make(map[string][]namedHandler),
		log:      log.Sub("hooks"),
	}
}

// On registers a handler for the given event.
// The name identifies the handler for logging and debugging.
func (m *Manager) On(event, name string, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[event] = append(m.handlers[event], namedHandler{name: name, handler: handler})
	m.log.Debug().Str("event", event).Str("handler", name).Msg("hook registered")
}

// Off removes all handlers with the given name from the event.
func (m *Manager) Off(event, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	handlers := m.handlers[event]
	filtered := make([]namedHandler, 0, len(handlers))
	for _, h := range handlers {
		if h.name != name {
			filtered = append(filtered, h)
		}
	}
	m.handlers[event] = filtered
}

// Emit dispatches an event to all registered handlers synchronously.
// Handlers are called in registration order. Errors are logged but do not
// prevent subsequent handlers from running.
func (m *Manager) Emit(ctx context.Context, event string, data map[string]any) {
	m.mu.RLock()
	handlers := make([]namedHandler, len(m.handlers[event]))
	copy(handlers, m.handlers[event])
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	payload := Payload{Event: event, Data: data}

	for _, h := range handlers {
		if err := h.handler(ctx, payload); err != nil {
			m.log.Warn().
				Err(err).
				Str("event", event).
				Str("handler", h.name).
				Msg("hook handler error")
		}
	}
}

// EventSink adapts the hook manager into a supervisor event sink, mapping
// supervisor event kinds onto hook event names.
type EventSink struct {
	mgr *Manager
}

// NewEventSink wraps a manager as a supervisor.Sink.
func NewEventSink(mgr *Manager) *EventSink {
	return &EventSink{mgr: mgr}
}

// Emit dispatches the supervisor event to the matching hook.
func (s *EventSink) Emit(ev supervisor.Event) {
	event := ""
	switch ev.Kind {
	case supervisor.KindStarted:
		event = EventAgentStart
	case supervisor.KindHeartbeat:
		event = EventHeartbeat
	case supervisor.KindError:
		event = EventTickError
	case supervisor.KindStopping:
		event = EventAgentStop
	default:
		return
	}

	s.mgr.Emit(context.Background(), event, map[string]any{
		"run_id":    ev.RunID,
		"message":   ev.Message,
		"timestamp": ev.Timestamp,
	})
}
