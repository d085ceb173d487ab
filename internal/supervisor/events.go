package supervisor

import (
	"sync"
	"time"

	"github.com/soyeahso/agentcore/internal/logging"
)

// Source identifies the component in emitted events.
const Source = "agentcore"

// Kind classifies a supervisor event.
type Kind string

const (
	KindStarted   Kind = "started"
	KindHeartbeat Kind = "heartbeat"
	KindStopping  Kind = "stopping"
	KindError     Kind = "error"
)

// Level is the severity of an event.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
)

// Event is a single supervisor lifecycle or tick outcome notification.
type Event struct {
	Kind      Kind
	Timestamp time.Time
	Level     Level
	Source    string
	RunID     string
	Message   string
}

// Sink receives supervisor events. Implementations must be safe for use
// from the supervisor goroutine; Emit is never called concurrently.
type Sink interface {
	Emit(ev Event)
}

// LogSink writes events to a logger.
type LogSink struct {
	log *logging.Logger
}

// NewLogSink creates a sink backed by the given logger.
func NewLogSink(log *logging.Logger) *LogSink {
	return &LogSink{log: log.Sub("supervisor")}
}

// Emit writes the event as a structured log line.
func (s *LogSink) Emit(ev Event) {
	evt := s.log.Info()
	if ev.Level == LevelError {
		evt = s.log.Error()
	}
	evt.
		Str("source", ev.Source).
		Str("kind", string(ev.Kind)).
		Str("run_id", ev.RunID).
		Msg(ev.Message)
}

// MemorySink records events for inspection in tests.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

// NewMemorySink creates an empty recording sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Emit records the event.
func (s *MemorySink) Emit(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

// Events returns a copy of all recorded events.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Kinds returns the kinds of all recorded events in order.
func (s *MemorySink) Kinds() []Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	kinds := make([]Kind, len(s.events))
	for i, ev := range s.events {
		kinds[i] = ev.Kind
	}
	return kinds
}

// Count returns the number of recorded events of the given kind.
func (s *MemorySink) Count(kind Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ev := range s.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// Clear discards all recorded events.
func (s *MemorySink) Clear() {
	s.mu.Lock()
	s.events = nil
	s.mu.Unlock()
}

// MultiSink fans an event out to several sinks in order.
type MultiSink []Sink

// Emit forwards the event to every sink.
func (m MultiSink) Emit(ev Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(ev)
		}
	}
}
