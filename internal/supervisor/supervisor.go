// Package supervisor owns the run/stop lifecycle of the agent core process.
// It emits periodic heartbeat events, isolates failures in the per-tick work
// unit so a single failure never terminates the process, and responds to
// cancellation within one in-flight sleep interval.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/soyeahso/agentcore/internal/config"
	"github.com/soyeahso/agentcore/internal/logging"
)

// ErrAlreadyStarted is returned by Run when the supervisor has already run.
// A supervisor runs at most once per process lifetime.
var ErrAlreadyStarted = errors.New("supervisor already started")

// State of the supervisor lifecycle.
type State string

const (
	StateCreated  State = "created"
	StateRunning  State = "running"
	StateStopping State = "stopping"
	StateStopped  State = "stopped"
)

// TickFunc is the per-tick work unit. In the full system this is where task
// dispatch and transport calls happen; the default is a no-op success.
// Returning an error marks the tick failed; the loop backs off and continues.
type TickFunc func(ctx context.Context) error

// Config holds the supervisor timing knobs. Both durations must be > 0.
type Config struct {
	// Interval is the pause between heartbeat ticks.
	Interval time.Duration
	// ErrorBackoff is the pause after a failed tick before the next one.
	ErrorBackoff time.Duration
}

// DefaultConfig returns the stock 10s interval / 5s backoff configuration.
func DefaultConfig() Config {
	return Config{
		Interval:     10 * time.Second,
		ErrorBackoff: 5 * time.Second,
	}
}

// Supervisor runs the agent heartbeat loop. Construct with New, run with Run.
type Supervisor struct {
	interval time.Duration
	backoff  time.Duration
	tick     TickFunc
	sink     Sink
	log      *logging.Logger
	runID    string

	mu       sync.Mutex
	state    State
	lastBeat time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
}

// Option customizes a Supervisor.
type Option func(*Supervisor)

// WithTick sets the per-tick work unit.
func WithTick(tick TickFunc) Option {
	return func(s *Supervisor) { s.tick = tick }
}

// WithSink sets the event sink. Defaults to a discarding sink.
func WithSink(sink Sink) Option {
	return func(s *Supervisor) { s.sink = sink }
}

// WithLogger sets the debug logger. Defaults to silent.
func WithLogger(log *logging.Logger) Option {
	return func(s *Supervisor) { s.log = log.Sub("supervisor") }
}

// New creates a supervisor. Non-positive durations are rejected with a
// *config.ConfigError before any loop state exists.
func New(cfg Config, opts ...Option) (*Supervisor, error) {
	if cfg.Interval <= 0 {
		return nil, &config.ConfigError{Message: fmt.Sprintf("interval must be > 0, got %s", cfg.Interval)}
	}
	if cfg.ErrorBackoff <= 0 {
		return nil, &config.ConfigError{Message: fmt.Sprintf("error backoff must be > 0, got %s", cfg.ErrorBackoff)}
	}

	s := &Supervisor{
		interval: cfg.Interval,
		backoff:  cfg.ErrorBackoff,
		sink:     MultiSink(nil),
		log:      logging.New(io.Discard, "silent"),
		runID:    uuid.NewString(),
		state:    StateCreated,
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// RunID returns the identifier attached to all events from this run.
func (s *Supervisor) RunID() string { return s.runID }

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastHeartbeat returns the time of the most recent successful tick.
// The second return is false if no tick has completed yet.
func (s *Supervisor) LastHeartbeat() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBeat, !s.lastBeat.IsZero()
}

// Run executes the heartbeat loop until ctx is cancelled or Stop is called.
// It blocks for the lifetime of the loop and returns nil on a clean stop.
// A second call returns ErrAlreadyStarted; a stopped supervisor never restarts.
func (s *Supervisor) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateCreated {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.state = StateRunning
	s.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}

	s.emit(KindStarted, LevelInfo, "agent core started")
	s.log.Debug().Str("run_id", s.runID).Dur("interval", s.interval).Msg("loop entered")

	for {
		if !s.sleep(ctx, s.interval) {
			return s.shutdown()
		}

		if err := s.runTick(ctx); err != nil {
			// Only the message reaches the heartbeat stream, never a stack.
			s.emit(KindError, LevelError, "error in agent loop: "+err.Error())
			if !s.sleep(ctx, s.backoff) {
				return s.shutdown()
			}
			continue
		}

		s.mu.Lock()
		s.lastBeat = time.Now()
		s.mu.Unlock()
		s.emit(KindHeartbeat, LevelInfo, "agent heartbeat")
	}
}

// Stop cancels the loop without an external context. Safe to call from any
// goroutine and a no-op once the supervisor has stopped.
func (s *Supervisor) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// sleep pauses for d, waking early on cancellation.
// Returns false if the pause was interrupted.
func (s *Supervisor) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-s.stopCh:
		return false
	case <-t.C:
		return true
	}
}

// runTick executes the work unit, converting panics into tick errors so one
// bad tick cannot take the loop down.
func (s *Supervisor) runTick(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tick panic: %v", r)
		}
	}()
	if s.tick == nil {
		return nil
	}
	return s.tick(ctx)
}

// shutdown performs the stopping -> stopped transition. Run reaches this
// exactly once, so the stopping event cannot be duplicated.
func (s *Supervisor) shutdown() error {
	s.mu.Lock()
	s.state = StateStopping
	s.mu.Unlock()

	s.emit(KindStopping, LevelInfo, "agent stopping")
	s.log.Debug().Str("run_id", s.runID).Msg("loop exited")

	s.mu.Lock()
	s.state = StateStopped
	s.mu.Unlock()
	return nil
}

func (s *Supervisor) emit(kind Kind, level Level, msg string) {
	s.sink.Emit(Event{
		Kind:      kind,
		Timestamp: time.Now(),
		Level:     level,
		Source:    Source,
		RunID:     s.runID,
		Message:   msg,
	})
}
