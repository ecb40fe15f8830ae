package input

import "testing"

func TestRobotClicker_RejectsOffScreen(t *testing.T) {
	c := NewRobotClicker()
	if err := c.Click(-1, 100); err == nil {
		t.Error("Click() should reject a negative x coordinate")
	}
	if err := c.Click(100, -5); err == nil {
		t.Error("Click() should reject a negative y coordinate")
	}
}
