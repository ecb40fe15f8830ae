package event

import (
	"errors"
	"testing"

	"umapilot/core/state"
)

func TestEvent_Names(t *testing.T) {
	tests := []struct {
		event    Event
		expected string
	}{
		{NewRunStarted(true), "RunStarted"},
		{NewRunStateChanged(state.StateIdle, state.StateRunning), "RunStateChanged"},
		{NewRunStopped(StopReasonManual, StatsSnapshot{}, nil), "RunStopped"},
		{NewStatsUpdated(StatsSnapshot{}), "StatsUpdated"},
		{NewScreenClassified("MainMenu", 0.93), "ScreenClassified"},
		{NewActionPerformed("MainMenu", "training_button", 120, 340), "ActionPerformed"},
		{NewErrorBannerDetected("connection lost"), "ErrorBannerDetected"},
		{NewIterationFault("dispatch", errors.New("test")), "IterationFault"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.event.EventName(); got != tt.expected {
				t.Errorf("EventName() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStopReason_String(t *testing.T) {
	tests := []struct {
		reason   StopReason
		expected string
	}{
		{StopReasonManual, "Manual"},
		{StopReasonClassifierDrift, "ClassifierDrift"},
		{StopReasonFault, "Fault"},
		{StopReason(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.reason.String(); got != tt.expected {
				t.Errorf("String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRunStopped_Fields(t *testing.T) {
	testErr := errors.New("test error")
	stats := StatsSnapshot{TrainingSessions: 3, RacesCompleted: 2, EventsHandled: 5, ErrorsEncountered: 1}
	e := NewRunStopped(StopReasonFault, stats, testErr)

	if e.Reason != StopReasonFault {
		t.Errorf("Reason = %v, want Fault", e.Reason)
	}
	if e.Stats != stats {
		t.Errorf("Stats = %+v, want %+v", e.Stats, stats)
	}
	if e.Error != testErr {
		t.Errorf("Error = %v, want %v", e.Error, testErr)
	}
}

func TestRunStateChanged_States(t *testing.T) {
	e := NewRunStateChanged(state.StateRunning, state.StateStopping)

	if e.OldState != state.StateRunning {
		t.Errorf("OldState = %v, want Running", e.OldState)
	}
	if e.NewState != state.StateStopping {
		t.Errorf("NewState = %v, want Stopping", e.NewState)
	}
}

func TestActionPerformed_Fields(t *testing.T) {
	e := NewActionPerformed("RaceScreen", "race_start_button", 412, 780)

	if e.Screen != "RaceScreen" {
		t.Errorf("Screen = %v, want RaceScreen", e.Screen)
	}
	if e.Template != "race_start_button" {
		t.Errorf("Template = %v, want race_start_button", e.Template)
	}
	if e.X != 412 || e.Y != 780 {
		t.Errorf("Click = (%d, %d), want (412, 780)", e.X, e.Y)
	}
}
