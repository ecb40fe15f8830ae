// Package automation implements the perception-action loop: capture a
// frame, scan for error banners, classify the screen, dispatch the matching
// handler, pace, repeat. A single worker goroutine owns the loop; stop is
// cooperative and observed only at iteration boundaries.
package automation

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"umapilot/core/event"
	"umapilot/core/eventbus"
	"umapilot/core/state"
	"umapilot/domain/screen"
	"umapilot/domain/template"
	"umapilot/domain/vision"
	"umapilot/infrastructure/config"
	"umapilot/infrastructure/logging"
	"umapilot/infrastructure/window"
)

const (
	// captureRetryDelay paces retries after a failed frame capture.
	captureRetryDelay = time.Second
	// errorBackoff is the defensive pause after an error banner is detected.
	errorBackoff = 3 * time.Second
	// faultBackoff is the pause after an iteration is recovered from a panic.
	faultBackoff = 2 * time.Second
	// actionDelay is the short pause after a successful handler action.
	actionDelay = 500 * time.Millisecond
	// focusSettleDelay lets the OS finish raising the window before a click.
	focusSettleDelay = 100 * time.Millisecond
	// maxUnknownScreens is the consecutive-unknown ceiling; reaching it is
	// fatal to the run, not retried.
	maxUnknownScreens = 10
)

// errorKeywords are scanned (lowercased) in the full-frame OCR text. A hit
// triggers the defensive backoff without classification or dispatch.
var errorKeywords = []string{"error", "failed", "connection lost", "retry"}

// Capturer grabs pixels for a screen rectangle, or the whole display when
// region is nil.
type Capturer interface {
	Capture(region *window.Region) (image.Image, error)
}

// Clicker issues a simulated left click at absolute screen coordinates.
type Clicker interface {
	Click(x, y int) error
}

// Classifier maps a frame to a screen state with its match score.
type Classifier interface {
	Classify(frame image.Image) (screen.State, float64)
}

// TextExtractor recovers advisory text from a frame region; it never fails,
// returning "" on any problem.
type TextExtractor interface {
	ExtractText(ctx context.Context, frame image.Image, region *image.Rectangle) string
}

// WindowTracker supplies the freshest window region and focus control.
type WindowTracker interface {
	Refresh() (window.Region, bool)
	Region() (window.Region, bool)
	Focus() bool
}

// ElementMatcher finds a named UI-element template within a frame. An
// unknown name is "not found", never an error: absent templates mean the
// asset is not installed yet.
type ElementMatcher func(name string, frame image.Image, threshold float64) (vision.Result, bool)

// LibraryMatcher builds the production ElementMatcher over a template
// library.
func LibraryMatcher(lib *template.Library) ElementMatcher {
	return func(name string, frame image.Image, threshold float64) (vision.Result, bool) {
		tpl, ok := lib.Get(name)
		if !ok {
			return vision.Result{}, false
		}
		return vision.Match(tpl.Image, frame, threshold)
	}
}

// Deps are the collaborators the runner drives. All are required except
// Tracker, which may be nil when window detection is disabled.
type Deps struct {
	Capturer   Capturer
	Clicker    Clicker
	Classifier Classifier
	Extractor  TextExtractor
	Tracker    WindowTracker
	Match      ElementMatcher
	Bus        eventbus.EventBus
	Logger     *slog.Logger
}

// Runner owns the automation loop worker.
type Runner struct {
	capturer   Capturer
	clicker    Clicker
	classifier Classifier
	extractor  TextExtractor
	tracker    WindowTracker
	match      ElementMatcher
	bus        eventbus.EventBus
	logger     *slog.Logger

	automation config.AutomationConfig
	training   config.TrainingConfig

	stats *Stats
	sleep func(time.Duration)

	ctx context.Context

	mu         sync.Mutex
	st         state.RunState
	stopReason event.StopReason
	stopErr    error

	running atomic.Bool
	wg      sync.WaitGroup

	// Worker-local iteration state.
	unknownStreak int
	lastFP        vision.Fingerprint
	lastState     screen.State
	lastScore     float64
}

// NewRunner creates an idle runner.
func NewRunner(deps Deps, automationCfg config.AutomationConfig, trainingCfg config.TrainingConfig) *Runner {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		capturer:   deps.Capturer,
		clicker:    deps.Clicker,
		classifier: deps.Classifier,
		extractor:  deps.Extractor,
		tracker:    deps.Tracker,
		match:      deps.Match,
		bus:        deps.Bus,
		logger:     logger,
		automation: automationCfg,
		training:   trainingCfg,
		stats:      NewStats(),
		sleep:      time.Sleep,
		st:         state.StateIdle,
	}
}

// Start transitions Idle -> Running and spawns the loop worker.
func (r *Runner) Start() error {
	if err := r.transition(state.StateRunning); err != nil {
		return err
	}

	r.mu.Lock()
	r.stopReason = event.StopReasonManual
	r.stopErr = nil
	r.mu.Unlock()

	r.unknownStreak = 0
	r.lastFP = vision.Fingerprint{}
	r.lastState = screen.Unknown
	r.lastScore = 0

	r.ctx = logging.With(context.Background(), r.logger)
	r.running.Store(true)
	r.bus.Publish(event.NewRunStarted(r.automation.WindowDetectionEnabled))

	r.wg.Add(1)
	go r.run()

	r.logger.Info("Automation started",
		"window_tracking", r.automation.WindowDetectionEnabled)
	return nil
}

// RequestStop transitions Running -> Stopping. The worker observes the flag
// at the top of its next iteration; an in-flight handler always completes.
func (r *Runner) RequestStop() error {
	if err := r.transition(state.StateStopping); err != nil {
		return err
	}
	r.running.Store(false)
	r.logger.Info("Stop requested")
	return nil
}

// Wait blocks until the loop worker has exited.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// State returns the current run state.
func (r *Runner) State() state.RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st
}

// StatsSnapshot returns a copy of the session counters.
func (r *Runner) StatsSnapshot() event.StatsSnapshot {
	return r.stats.Snapshot()
}

// StopResult reports why the run ended; valid once State() is Stopped.
func (r *Runner) StopResult() (event.StopReason, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopReason, r.stopErr
}

func (r *Runner) transition(to state.RunState) error {
	r.mu.Lock()
	if !r.st.CanTransitionTo(to) {
		from := r.st
		r.mu.Unlock()
		return state.NewTransitionError(from, to, "")
	}
	old := r.st
	r.st = to
	r.mu.Unlock()

	r.bus.Publish(event.NewRunStateChanged(old, to))
	return nil
}

type iterationOutcome int

const (
	outcomeContinue iterationOutcome = iota
	outcomeDrift
)

// run is the loop worker.
func (r *Runner) run() {
	defer r.wg.Done()

	for r.running.Load() {
		if out := r.safeIterate(r.ctx); out == outcomeDrift {
			r.mu.Lock()
			r.stopReason = event.StopReasonClassifierDrift
			r.stopErr = fmt.Errorf("%d consecutive unknown screens", maxUnknownScreens)
			r.mu.Unlock()
			r.running.Store(false)
			r.logger.Error("Too many unknown screens, stopping automation",
				"ceiling", maxUnknownScreens)
		}
	}

	r.mu.Lock()
	old := r.st
	r.st = state.StateStopped
	reason, stopErr := r.stopReason, r.stopErr
	r.mu.Unlock()

	stats := r.stats.Snapshot()
	r.bus.Publish(event.NewRunStateChanged(old, state.StateStopped))
	r.bus.Publish(event.NewRunStopped(reason, stats, stopErr))
	r.logger.Info("Automation stopped",
		"reason", reason.String(),
		"training_sessions", stats.TrainingSessions,
		"races_completed", stats.RacesCompleted,
		"events_handled", stats.EventsHandled,
		"errors_encountered", stats.ErrorsEncountered)
}

// safeIterate recovers panics at the iteration boundary: the loop never
// terminates on a transient per-iteration fault.
func (r *Runner) safeIterate(ctx context.Context) (out iterationOutcome) {
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("panic: %v", rec)
			r.stats.incErrorsEncountered()
			r.bus.Publish(event.NewIterationFault("iteration", err))
			r.bus.Publish(event.NewStatsUpdated(r.stats.Snapshot()))
			r.logger.Error("Iteration fault recovered", "error", rec)
			r.sleep(faultBackoff)
			out = outcomeContinue
		}
	}()
	return r.iterate(ctx)
}

// iterate runs one perception-action cycle.
func (r *Runner) iterate(ctx context.Context) iterationOutcome {
	frame, origin, ok := r.captureFrame()
	if !ok {
		// Not an unknown screen and not a handler error, just retry.
		r.sleep(captureRetryDelay)
		return outcomeContinue
	}

	if keyword, found := r.scanForErrors(ctx, frame); found {
		r.logger.Warn("Error banner detected, backing off", "keyword", keyword)
		r.bus.Publish(event.NewErrorBannerDetected(keyword))
		r.sleep(errorBackoff)
		return outcomeContinue
	}

	current, score := r.classifyFrame(frame)
	r.bus.Publish(event.NewScreenClassified(current.String(), score))
	r.logger.Debug("Screen classified", "screen", current.String(), "score", score)

	if current == screen.Unknown {
		r.unknownStreak++
		if r.unknownStreak >= maxUnknownScreens {
			return outcomeDrift
		}
	} else {
		r.unknownStreak = 0
	}

	handled := r.dispatch(ctx, current, frame, origin)

	if handled {
		r.sleep(actionDelay)
	} else {
		r.sleep(r.automation.ScreenshotDelay)
	}
	return outcomeContinue
}

// captureFrame grabs the current frame using the freshest window region when
// tracking is enabled. The returned origin is the frame's offset in screen
// coordinates, needed to turn match locations into click targets.
func (r *Runner) captureFrame() (image.Image, image.Point, bool) {
	var region *window.Region
	if r.automation.WindowDetectionEnabled && r.tracker != nil {
		if reg, ok := r.tracker.Refresh(); ok {
			region = &reg
		}
	}

	frame, err := r.capturer.Capture(region)
	if err != nil || frame == nil {
		r.logger.Warn("Failed to capture frame", "error", err)
		return nil, image.Point{}, false
	}

	var origin image.Point
	if region != nil {
		origin = image.Point{X: region.X, Y: region.Y}
	}
	return frame, origin, true
}

// scanForErrors runs the full-frame OCR error scan.
func (r *Runner) scanForErrors(ctx context.Context, frame image.Image) (string, bool) {
	text := strings.ToLower(r.extractor.ExtractText(ctx, frame, nil))
	if text == "" {
		return "", false
	}
	for _, keyword := range errorKeywords {
		if strings.Contains(text, keyword) {
			return keyword, true
		}
	}
	return "", false
}

// classifyFrame classifies the frame, skipping the full template scan when
// the frame is perceptually identical to the previous one.
func (r *Runner) classifyFrame(frame image.Image) (screen.State, float64) {
	fp, fpErr := vision.NewFingerprint(frame)
	if fpErr == nil && !r.lastFP.IsZero() {
		if d, err := fp.Distance(r.lastFP); err == nil && d == 0 {
			return r.lastState, r.lastScore
		}
	}

	current, score := r.classifier.Classify(frame)
	if fpErr == nil {
		r.lastFP = fp
	}
	r.lastState, r.lastScore = current, score
	return current, score
}
