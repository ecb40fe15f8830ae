package event

// ScreenClassified is published when an iteration classifies the current frame.
type ScreenClassified struct {
	Screen string // screen state name, "Unknown" when no template matched
	Score  float64
}

func NewScreenClassified(screen string, score float64) *ScreenClassified {
	return &ScreenClassified{Screen: screen, Score: score}
}

func (e *ScreenClassified) EventName() string {
	return "ScreenClassified"
}

// ActionPerformed is published after a handler issues a simulated click.
type ActionPerformed struct {
	Screen   string // screen state the handler was dispatched for
	Template string // element template whose centroid was clicked
	X, Y     int    // absolute click coordinates
}

func NewActionPerformed(screen, template string, x, y int) *ActionPerformed {
	return &ActionPerformed{Screen: screen, Template: template, X: x, Y: y}
}

func (e *ActionPerformed) EventName() string {
	return "ActionPerformed"
}

// ErrorBannerDetected is published when the OCR error scan finds a failure
// keyword in the captured frame. The loop backs off without dispatching.
type ErrorBannerDetected struct {
	Keyword string
}

func NewErrorBannerDetected(keyword string) *ErrorBannerDetected {
	return &ErrorBannerDetected{Keyword: keyword}
}

func (e *ErrorBannerDetected) EventName() string {
	return "ErrorBannerDetected"
}

// IterationFault is published when an iteration is recovered at the loop
// boundary. The loop continues; ErrorsEncountered is incremented.
type IterationFault struct {
	Stage string // which stage of the iteration faulted
	Error error
}

func NewIterationFault(stage string, err error) *IterationFault {
	return &IterationFault{Stage: stage, Error: err}
}

func (e *IterationFault) EventName() string {
	return "IterationFault"
}
