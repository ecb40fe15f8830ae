package window

import (
	"strings"

	"github.com/go-vgo/robotgo"
)

// RobotLocator finds the target window through robotgo's cross-platform
// window APIs. It is the primary locator on every OS; ShellLocator covers
// hosts where the process-based lookup comes up empty.
type RobotLocator struct {
	// Target is the process/window name fragment to search for.
	Target string
}

// NewRobotLocator creates a locator for the given target name.
func NewRobotLocator(target string) *RobotLocator {
	return &RobotLocator{Target: target}
}

// Locate finds the first process matching the target name and returns its
// window bounds.
func (l *RobotLocator) Locate() (Region, error) {
	pids, err := robotgo.FindIds(l.Target)
	if err != nil || len(pids) == 0 {
		return Region{}, ErrWindowNotFound
	}

	for _, pid := range pids {
		x, y, w, h := robotgo.GetBounds(pid)
		r := Region{X: x, Y: y, Width: w, Height: h}
		if r.Valid() {
			return r, nil
		}
	}
	return Region{}, ErrWindowNotFound
}

// IsActive reports whether the frontmost window belongs to the target.
// Returns true when the active title cannot be read, so callers never treat
// an unanswerable query as "window lost".
func (l *RobotLocator) IsActive() bool {
	title := robotgo.GetTitle()
	if title == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(l.Target))
}

// Focus activates the first matching process. The OS may still refuse to
// raise the window; the return value only reports that the request was made.
func (l *RobotLocator) Focus() bool {
	pids, err := robotgo.FindIds(l.Target)
	if err != nil || len(pids) == 0 {
		return false
	}
	return robotgo.ActivePid(pids[0]) == nil
}
