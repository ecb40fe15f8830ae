// Package input injects simulated mouse clicks on the host OS. The
// automation loop is the sole producer of synthetic input.
package input

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// Clicker performs a single left click at absolute screen coordinates.
type Clicker interface {
	Click(x, y int) error
}

// RobotClicker injects clicks through robotgo.
type RobotClicker struct{}

// NewRobotClicker creates the OS-backed clicker.
func NewRobotClicker() *RobotClicker {
	return &RobotClicker{}
}

// Click moves the cursor to (x, y) and presses the left button once.
func (c *RobotClicker) Click(x, y int) error {
	if x < 0 || y < 0 {
		return fmt.Errorf("click target (%d, %d) is off-screen", x, y)
	}
	robotgo.Move(x, y)
	robotgo.Click("left")
	return nil
}
