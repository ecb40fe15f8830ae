// Package state defines the automation run state machine.
package state

import "fmt"

// RunState represents the state of the automation loop.
type RunState int

const (
	// StateIdle is the initial state before the loop starts.
	StateIdle RunState = iota
	// StateRunning indicates the loop worker is executing iterations.
	StateRunning
	// StateStopping indicates a cooperative stop has been requested and the
	// loop will exit at the next iteration boundary.
	StateStopping
	// StateStopped indicates the loop has terminated.
	StateStopped
)

// String returns the string representation of the state.
func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateStopped:
		return "Stopped"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// validTransitions defines the allowed state transitions.
// Key is the current state, value is a list of valid target states.
// Running -> Stopped covers the loop stopping itself (classifier drift or a
// fatal fault) without an external stop request.
var validTransitions = map[RunState][]RunState{
	StateIdle:     {StateRunning},
	StateRunning:  {StateStopping, StateStopped},
	StateStopping: {StateStopped},
	StateStopped:  {}, // Terminal state, no transitions allowed
}

// CanTransitionTo checks if transitioning from the current state to the target state is valid.
func (s RunState) CanTransitionTo(target RunState) bool {
	allowed, ok := validTransitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// ValidTransitions returns the list of valid target states from the current state.
func (s RunState) ValidTransitions() []RunState {
	return validTransitions[s]
}

// IsTerminal returns true if the state is a terminal state (no further transitions).
func (s RunState) IsTerminal() bool {
	return s == StateStopped
}

// IsActive returns true if the loop is in an active state (not idle or stopped).
func (s RunState) IsActive() bool {
	return s == StateRunning || s == StateStopping
}

// CanStart returns true if the loop can be started from this state.
func (s RunState) CanStart() bool {
	return s == StateIdle
}

// CanRequestStop returns true if a cooperative stop can be requested in this state.
func (s RunState) CanRequestStop() bool {
	return s == StateRunning
}

// TransitionError represents an invalid state transition attempt.
type TransitionError struct {
	From   RunState
	To     RunState
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid state transition from %s to %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// NewTransitionError creates a new TransitionError.
func NewTransitionError(from, to RunState, reason string) *TransitionError {
	return &TransitionError{From: from, To: to, Reason: reason}
}
