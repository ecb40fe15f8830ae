package automation

import (
	"context"
	"image"

	"umapilot/core/event"
	"umapilot/domain/screen"
	"umapilot/domain/vision"
)

// defaultTrainingOrder is the fallback scan order for training options not
// named in Training.priority_stats.
var defaultTrainingOrder = []string{
	"speed", "stamina", "power", "guts", "intelligence", "technique",
}

// dispatch routes the classified screen to its handler and reports whether
// an action was taken. Every known state has a handler; Unknown falls back
// to a generic continue click before giving up for this iteration.
func (r *Runner) dispatch(ctx context.Context, current screen.State, frame image.Image, origin image.Point) bool {
	switch current {
	case screen.MainMenu:
		return r.handleMainMenu(frame, origin)
	case screen.TrainingScreen:
		return r.handleTrainingScreen(frame, origin)
	case screen.RaceScreen:
		return r.handleRaceScreen(frame, origin)
	case screen.EventScreen:
		return r.handleEventScreen(frame, origin)
	case screen.RaceResult:
		return r.handleRaceResult(frame, origin)
	case screen.TrainingResult:
		return r.handleTrainingResult(frame, origin)
	case screen.ChoiceScreen:
		return r.handleChoiceScreen(ctx, frame, origin)
	case screen.Unknown:
		return r.handleUnknown(frame, origin)
	default:
		r.logger.Warn("No handler for screen", "screen", current.String())
		return false
	}
}

// handleMainMenu heads into training, or into a race first when fan farming
// is enabled.
func (r *Runner) handleMainMenu(frame image.Image, origin image.Point) bool {
	if r.training.FarmFans {
		if r.tryClick(screen.MainMenu, "race_button", frame, origin) {
			return true
		}
	}
	return r.tryClick(screen.MainMenu, "training_button", frame, origin)
}

// handleTrainingScreen clicks the first available training option, scanning
// the configured priority stats first and the remaining options after.
func (r *Runner) handleTrainingScreen(frame image.Image, origin image.Point) bool {
	for _, stat := range r.trainingOrder() {
		if r.tryClick(screen.TrainingScreen, stat+"_train", frame, origin) {
			return true
		}
	}
	return false
}

// trainingOrder returns priority stats followed by the unlisted defaults.
func (r *Runner) trainingOrder() []string {
	order := make([]string, 0, len(defaultTrainingOrder))
	seen := make(map[string]bool)
	for _, stat := range r.training.PriorityStats {
		if !seen[stat] {
			order = append(order, stat)
			seen[stat] = true
		}
	}
	for _, stat := range defaultTrainingOrder {
		if !seen[stat] {
			order = append(order, stat)
			seen[stat] = true
		}
	}
	return order
}

// handleRaceScreen skips the race when configured, otherwise starts it.
func (r *Runner) handleRaceScreen(frame image.Image, origin image.Point) bool {
	if r.training.SkipRaces {
		if r.tryClick(screen.RaceScreen, "skip_race_button", frame, origin) {
			return true
		}
	}
	return r.tryClick(screen.RaceScreen, "race_start_button", frame, origin)
}

func (r *Runner) handleEventScreen(frame image.Image, origin image.Point) bool {
	return r.tryClick(screen.EventScreen, "confirm_button", frame, origin)
}

// handleRaceResult advances past the result; one completed race per
// successful handling, never per race-screen visit.
func (r *Runner) handleRaceResult(frame image.Image, origin image.Point) bool {
	if !r.tryClick(screen.RaceResult, "continue_button", frame, origin) {
		return false
	}
	r.stats.incRacesCompleted()
	r.bus.Publish(event.NewStatsUpdated(r.stats.Snapshot()))
	return true
}

func (r *Runner) handleTrainingResult(frame image.Image, origin image.Point) bool {
	if !r.tryClick(screen.TrainingResult, "continue_button", frame, origin) {
		return false
	}
	r.stats.incTrainingSessions()
	r.bus.Publish(event.NewStatsUpdated(r.stats.Snapshot()))
	return true
}

// handleChoiceScreen logs the choice text (advisory only) and picks the
// first option.
func (r *Runner) handleChoiceScreen(ctx context.Context, frame image.Image, origin image.Point) bool {
	if text := r.extractor.ExtractText(ctx, frame, nil); text != "" {
		r.logger.Info("Choice text", "text", text)
	}

	if !r.tryClick(screen.ChoiceScreen, "choice_option_1", frame, origin) {
		return false
	}
	r.stats.incEventsHandled()
	r.bus.Publish(event.NewStatsUpdated(r.stats.Snapshot()))
	return true
}

// handleUnknown tries the generic continue element as a last resort.
func (r *Runner) handleUnknown(frame image.Image, origin image.Point) bool {
	return r.tryClick(screen.Unknown, "continue_button", frame, origin)
}

// tryClick finds the named element in the frame and clicks its centroid.
// A missing or unmatched template is a quiet no-op.
func (r *Runner) tryClick(current screen.State, name string, frame image.Image, origin image.Point) bool {
	res, ok := r.match(name, frame, vision.DefaultThreshold)
	if !ok {
		return false
	}
	c := res.Centroid()
	return r.clickAt(current, name, origin.X+c.X, origin.Y+c.Y)
}

// clickAt focuses the window when tracking is enabled, clicks, then pauses
// the configured click delay. Click injection failures count as handler
// errors but never abort the loop.
func (r *Runner) clickAt(current screen.State, name string, x, y int) bool {
	if r.automation.WindowDetectionEnabled && r.tracker != nil {
		r.tracker.Focus()
		r.sleep(focusSettleDelay)
	}

	if err := r.clicker.Click(x, y); err != nil {
		r.logger.Error("Click failed", "x", x, "y", y, "error", err)
		r.stats.incErrorsEncountered()
		r.bus.Publish(event.NewStatsUpdated(r.stats.Snapshot()))
		return false
	}

	r.logger.Info("Clicked", "screen", current.String(), "template", name, "x", x, "y", y)
	r.bus.Publish(event.NewActionPerformed(current.String(), name, x, y))
	r.sleep(r.automation.ClickDelay)
	return true
}
