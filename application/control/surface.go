// Package control exposes the process control surface: start, stop, and
// read-only session stats, consumed by any presentation layer. A GUI and the
// headless driver both speak to the runner only through this surface.
package control

import (
	"fmt"
	"log/slog"
	"sync"

	"umapilot/core/command"
	"umapilot/core/event"
	"umapilot/core/eventbus"
	"umapilot/core/state"
)

// Runner is the slice of the automation runner the surface drives.
type Runner interface {
	Start() error
	RequestStop() error
	State() state.RunState
	StatsSnapshot() event.StatsSnapshot
}

// Surface dispatches commands to the runner and maintains a human-readable
// status string from bus events. It never mutates automation state directly;
// stop is always the cooperative request.
type Surface struct {
	runner Runner
	bus    eventbus.EventBus
	logger *slog.Logger

	mu     sync.RWMutex
	status string
	subID  string
}

// NewSurface creates a control surface over the runner and subscribes it to
// the event bus for status updates.
func NewSurface(runner Runner, bus eventbus.EventBus, logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Surface{
		runner: runner,
		bus:    bus,
		logger: logger,
		status: "Ready",
	}
	if bus != nil {
		s.subID = bus.Subscribe(s.handleEvent)
	}
	return s
}

// Execute dispatches a command to its handler.
func (s *Surface) Execute(cmd command.Command) error {
	s.logger.Debug("Dispatching command", "command", cmd.CommandName())

	switch cmd.(type) {
	case *command.StartAutomation:
		return s.runner.Start()
	case *command.StopAutomation:
		return s.runner.RequestStop()
	case *command.QueryStats:
		// Stats are answered synchronously via Stats(); the command is
		// accepted so callers can drive everything through Execute.
		return nil
	default:
		return fmt.Errorf("unknown command type: %T", cmd)
	}
}

// Stats returns a snapshot of the session counters.
func (s *Surface) Stats() event.StatsSnapshot {
	return s.runner.StatsSnapshot()
}

// State returns the runner's current run state.
func (s *Surface) State() state.RunState {
	return s.runner.State()
}

// Status returns the current human-readable status line. Presentation layers
// surface this string and the aggregate counters, never raw fault detail.
func (s *Surface) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Close detaches the surface from the event bus.
func (s *Surface) Close() {
	if s.bus != nil && s.subID != "" {
		s.bus.Unsubscribe(s.subID)
	}
}

func (s *Surface) handleEvent(e event.Event) {
	switch e := e.(type) {
	case *event.RunStarted:
		s.setStatus("Running")
	case *event.ScreenClassified:
		s.setStatus(fmt.Sprintf("Running - %s", e.Screen))
	case *event.ErrorBannerDetected:
		s.setStatus(fmt.Sprintf("Backing off - %s", e.Keyword))
	case *event.RunStopped:
		switch e.Reason {
		case event.StopReasonManual:
			s.setStatus("Stopped")
		case event.StopReasonClassifierDrift:
			s.setStatus("Stopped - unrecognized screens")
		default:
			s.setStatus("Stopped - fault")
		}
	}
}

func (s *Surface) setStatus(status string) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}
