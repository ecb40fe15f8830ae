package window

import (
	"log/slog"
	"sync"
)

// Tracker caches the last successfully located window region and maps
// between absolute screen coordinates and window-local fractional
// coordinates. The cache is invalidated only by an explicit Refresh; callers
// needing freshness must re-query.
type Tracker struct {
	locator     Locator
	logger      *slog.Logger
	maxAttempts int

	// Fallback dimensions when no region is cached (full-display capture).
	displayW int
	displayH int

	mu     sync.RWMutex
	region Region
	known  bool
}

// NewTracker creates a tracker over the given locator. displayW/displayH are
// the full-display dimensions used as the coordinate-mapping fallback when
// the window has never been located. maxAttempts bounds the locate retries
// per Refresh call.
func NewTracker(locator Locator, displayW, displayH, maxAttempts int, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Tracker{
		locator:     locator,
		logger:      logger,
		maxAttempts: maxAttempts,
		displayW:    displayW,
		displayH:    displayH,
	}
}

// Refresh re-queries the locator and replaces the cached region on success.
// On failure the previous cache is kept: a transient lookup miss must not
// discard a usable rectangle.
func (t *Tracker) Refresh() (Region, bool) {
	for attempt := 1; attempt <= t.maxAttempts; attempt++ {
		r, err := t.locator.Locate()
		if err == nil && r.Valid() {
			t.mu.Lock()
			t.region = r
			t.known = true
			t.mu.Unlock()
			return r, true
		}
		if attempt == t.maxAttempts {
			t.logger.Debug("Window locate failed", "attempts", attempt, "error", err)
		}
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.region, t.known
}

// Region returns the cached rectangle and whether one is known. Unknown
// means "fall back to full-display capture".
func (t *Tracker) Region() (Region, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.region, t.known
}

// IsActive reports the target window's focus state via the locator.
func (t *Tracker) IsActive() bool {
	return t.locator.IsActive()
}

// Focus asks the locator to bring the target window to the foreground.
func (t *Tracker) Focus() bool {
	return t.locator.Focus()
}

// frame returns the rectangle used for coordinate mapping: the cached window
// region, or the full display when none is cached.
func (t *Tracker) frame() Region {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.known {
		return t.region
	}
	return Region{X: 0, Y: 0, Width: t.displayW, Height: t.displayH}
}

// ToRelative scales an absolute screen point into window-local fractional
// coordinates in [0,1]x[0,1] for points inside the rectangle.
func (t *Tracker) ToRelative(absX, absY int) (float64, float64) {
	f := t.frame()
	return float64(absX-f.X) / float64(f.Width), float64(absY-f.Y) / float64(f.Height)
}

// ToAbsolute is the inverse of ToRelative for the same rectangle snapshot.
// The round trip is exact to within one pixel per axis.
func (t *Tracker) ToAbsolute(fx, fy float64) (int, int) {
	f := t.frame()
	return f.X + int(fx*float64(f.Width)), f.Y + int(fy*float64(f.Height))
}
