// Package command defines the commands accepted by the process control
// surface. Commands represent caller intentions (a GUI, a signal handler, a
// headless driver) and are processed by the application layer.
package command

// Command is the base interface for all commands.
type Command interface {
	// CommandName returns the name of the command for logging/debugging
	CommandName() string
}

// StartAutomation starts the automation loop.
type StartAutomation struct{}

func (c *StartAutomation) CommandName() string {
	return "StartAutomation"
}

// StopAutomation requests a cooperative stop of the automation loop. The
// loop observes the request at its next iteration boundary; an in-flight
// handler action always completes first.
type StopAutomation struct{}

func (c *StopAutomation) CommandName() string {
	return "StopAutomation"
}

// QueryStats requests a snapshot of the session counters. The surface
// answers synchronously via Surface.Stats; the command form exists so
// presentation layers can drive everything through one entry point.
type QueryStats struct{}

func (c *QueryStats) CommandName() string {
	return "QueryStats"
}
