package window

import (
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// ShellLocator finds the target window through per-OS shell utilities:
// osascript on macOS, wmctrl on X11 Linux. It exists as a fallback for
// hosts where the process-based lookup fails (e.g. the game runs under a
// wrapper process whose name does not match the window title). On other
// platforms every lookup reports not found.
type ShellLocator struct {
	// Target is the window/application name fragment to search for.
	Target string

	// run executes a command and returns its stdout; overridable in tests.
	run func(name string, args ...string) (string, error)
}

// NewShellLocator creates a shell-based locator for the given target name.
func NewShellLocator(target string) *ShellLocator {
	return &ShellLocator{Target: target, run: runCommand}
}

func runCommand(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	return string(out), err
}

// Locate dispatches to the platform strategy.
func (l *ShellLocator) Locate() (Region, error) {
	switch runtime.GOOS {
	case "darwin":
		return l.locateDarwin()
	case "linux":
		return l.locateLinux()
	default:
		return Region{}, ErrWindowNotFound
	}
}

// locateDarwin asks System Events for the frontmost window of the target
// process: "x, y, width, height".
func (l *ShellLocator) locateDarwin() (Region, error) {
	script := `tell application "System Events" to get position and size of window 1 of process "` + l.Target + `"`
	out, err := l.run("osascript", "-e", script)
	if err != nil {
		return Region{}, ErrWindowNotFound
	}

	parts := strings.Split(strings.TrimSpace(out), ", ")
	if len(parts) != 4 {
		return Region{}, ErrWindowNotFound
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Region{}, ErrWindowNotFound
		}
		vals[i] = v
	}

	r := Region{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
	if !r.Valid() {
		return Region{}, ErrWindowNotFound
	}
	return r, nil
}

// locateLinux scans `wmctrl -l -G` output for a title containing the target.
// Columns: id desktop x y width height host title...
func (l *ShellLocator) locateLinux() (Region, error) {
	out, err := l.run("wmctrl", "-l", "-G")
	if err != nil {
		return Region{}, ErrWindowNotFound
	}

	target := strings.ToLower(l.Target)
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 8 {
			continue
		}
		title := strings.ToLower(strings.Join(fields[7:], " "))
		if !strings.Contains(title, target) {
			continue
		}

		vals := make([]int, 4)
		ok := true
		for i, f := range fields[2:6] {
			v, err := strconv.Atoi(f)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}

		r := Region{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
		if r.Valid() {
			return r, nil
		}
	}
	return Region{}, ErrWindowNotFound
}

// IsActive checks the frontmost process name on macOS; elsewhere it reports
// true, the "assume usable" default.
func (l *ShellLocator) IsActive() bool {
	if runtime.GOOS != "darwin" {
		return true
	}
	out, err := l.run("osascript", "-e",
		`tell application "System Events" to get name of first process whose frontmost is true`)
	if err != nil {
		return true
	}
	return strings.Contains(strings.ToLower(out), strings.ToLower(l.Target))
}

// Focus activates the target application on macOS or raises the window via
// wmctrl on Linux.
func (l *ShellLocator) Focus() bool {
	switch runtime.GOOS {
	case "darwin":
		_, err := l.run("osascript", "-e", `tell application "`+l.Target+`" to activate`)
		return err == nil
	case "linux":
		_, err := l.run("wmctrl", "-a", l.Target)
		return err == nil
	default:
		return false
	}
}
