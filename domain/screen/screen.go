// Package screen defines the recognizable screen states and the classifier
// that maps captured frames onto them.
package screen

import "fmt"

// State is the classifier's verdict for a single frame. It is derived fresh
// each iteration and never persisted, except as the loop's rolling count of
// consecutive Unknown results.
type State int

const (
	// Unknown means no screen-identifying template matched the frame.
	Unknown State = iota
	MainMenu
	TrainingScreen
	RaceScreen
	EventScreen
	RaceResult
	TrainingResult
	ChoiceScreen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Unknown:
		return "Unknown"
	case MainMenu:
		return "MainMenu"
	case TrainingScreen:
		return "TrainingScreen"
	case RaceScreen:
		return "RaceScreen"
	case EventScreen:
		return "EventScreen"
	case RaceResult:
		return "RaceResult"
	case TrainingResult:
		return "TrainingResult"
	case ChoiceScreen:
		return "ChoiceScreen"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// stateNames maps definition-file state names to State values.
var stateNames = map[string]State{
	"MainMenu":       MainMenu,
	"TrainingScreen": TrainingScreen,
	"RaceScreen":     RaceScreen,
	"EventScreen":    EventScreen,
	"RaceResult":     RaceResult,
	"TrainingResult": TrainingResult,
	"ChoiceScreen":   ChoiceScreen,
}

// ParseState resolves a state name from a screen definition file.
func ParseState(name string) (State, error) {
	s, ok := stateNames[name]
	if !ok {
		return Unknown, fmt.Errorf("unknown screen state %q", name)
	}
	return s, nil
}

// Definition ties a screen state to the template that identifies it. The
// order of definitions is a deliberate priority list: when two identifying
// templates could both match one frame, the earlier definition wins.
type Definition struct {
	Name      string  // template name in the library
	State     State   // state reported when the template matches
	Threshold float64 // per-screen match acceptance threshold
}
