// Package window provides discovery and tracking of the target game
// window's on-screen rectangle, and the coordinate mapping between absolute
// screen points and window-local fractional points.
package window

import "errors"

// ErrWindowNotFound is returned by Locate when no window matches the target
// title. Callers fall back to full-display capture.
var ErrWindowNotFound = errors.New("target window not found")

// Region is the last known bounding box of the target window in screen
// pixel coordinates.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Valid reports whether the region has positive dimensions.
func (r Region) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// Contains reports whether the absolute point (x, y) lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Locator discovers the target application window. Implementations are
// platform-dependent; the automation loop depends only on this interface.
type Locator interface {
	// Locate attempts one or more OS-level window queries and returns the
	// first matching rectangle, or ErrWindowNotFound.
	Locate() (Region, error)

	// IsActive reports whether the target window has input focus. Best
	// effort: implementations that cannot determine focus return true so
	// callers never block on an unanswerable query.
	IsActive() bool

	// Focus asks the OS to bring the target window to the foreground. The
	// return value reports whether the request was accepted, not whether it
	// visually succeeded.
	Focus() bool
}

// Chain tries each locator in order and serves the first success. IsActive
// and Focus delegate to the first locator that can answer.
type Chain []Locator

func (c Chain) Locate() (Region, error) {
	for _, l := range c {
		if r, err := l.Locate(); err == nil {
			return r, nil
		}
	}
	return Region{}, ErrWindowNotFound
}

func (c Chain) IsActive() bool {
	for _, l := range c {
		return l.IsActive()
	}
	return true
}

func (c Chain) Focus() bool {
	for _, l := range c {
		if l.Focus() {
			return true
		}
	}
	return false
}
