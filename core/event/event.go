// Package event defines all events published by the automation run.
// Events represent state changes and are consumed by presentation layers.
package event

import "umapilot/core/state"

// Event is the base interface for all events.
// Events are published by the application layer and consumed by subscribers.
type Event interface {
	// EventName returns the name of the event for logging/debugging
	EventName() string
}

// StatsSnapshot is a point-in-time copy of the session counters.
// Counters are monotonically non-decreasing for the lifetime of the process.
type StatsSnapshot struct {
	TrainingSessions  uint64
	RacesCompleted    uint64
	EventsHandled     uint64
	ErrorsEncountered uint64
}

// RunStarted is published when the automation loop starts.
type RunStarted struct {
	WindowTracking bool // whether window-region tracking is enabled for this run
}

func NewRunStarted(windowTracking bool) *RunStarted {
	return &RunStarted{WindowTracking: windowTracking}
}

func (e *RunStarted) EventName() string {
	return "RunStarted"
}

// RunStateChanged is published when the loop's run state changes.
type RunStateChanged struct {
	OldState state.RunState
	NewState state.RunState
}

func NewRunStateChanged(oldState, newState state.RunState) *RunStateChanged {
	return &RunStateChanged{OldState: oldState, NewState: newState}
}

func (e *RunStateChanged) EventName() string {
	return "RunStateChanged"
}

// StopReason indicates why the automation loop stopped.
type StopReason int

const (
	// StopReasonManual indicates the loop was stopped by an external request.
	StopReasonManual StopReason = iota
	// StopReasonClassifierDrift indicates the loop stopped itself after too
	// many consecutive unknown screen classifications.
	StopReasonClassifierDrift
	// StopReasonFault indicates the loop stopped due to an unrecoverable fault.
	StopReasonFault
)

func (r StopReason) String() string {
	switch r {
	case StopReasonManual:
		return "Manual"
	case StopReasonClassifierDrift:
		return "ClassifierDrift"
	case StopReasonFault:
		return "Fault"
	default:
		return "Unknown"
	}
}

// RunStopped is published when the automation loop terminates.
type RunStopped struct {
	Reason StopReason
	Stats  StatsSnapshot
	Error  error // Non-nil only if Reason is StopReasonFault
}

func NewRunStopped(reason StopReason, stats StatsSnapshot, err error) *RunStopped {
	return &RunStopped{Reason: reason, Stats: stats, Error: err}
}

func (e *RunStopped) EventName() string {
	return "RunStopped"
}

// StatsUpdated is published whenever a session counter changes.
type StatsUpdated struct {
	Stats StatsSnapshot
}

func NewStatsUpdated(stats StatsSnapshot) *StatsUpdated {
	return &StatsUpdated{Stats: stats}
}

func (e *StatsUpdated) EventName() string {
	return "StatsUpdated"
}
