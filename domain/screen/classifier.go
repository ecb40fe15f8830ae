package screen

import (
	"image"

	"umapilot/domain/template"
	"umapilot/domain/vision"
)

// MatchFunc scores a template against a frame; the production implementation
// is vision.Match.
type MatchFunc func(tpl, frame image.Image, threshold float64) (vision.Result, bool)

// Classifier maps a frame to a State by evaluating an ordered list of
// screen-identifying templates. The first definition whose template matches
// above its threshold wins; reordering definitions changes observable
// automation behavior on ambiguous frames.
type Classifier struct {
	defs  []Definition
	lib   *template.Library
	match MatchFunc
}

// NewClassifier builds a classifier over the given priority-ordered
// definitions. Definitions whose template is absent from the library are
// skipped at classification time, not rejected here: absent templates mean
// "not installed yet", never a fault.
func NewClassifier(defs []Definition, lib *template.Library) *Classifier {
	return &Classifier{
		defs:  defs,
		lib:   lib,
		match: vision.Match,
	}
}

// SetMatchFunc overrides the matching primitive, for tests.
func (c *Classifier) SetMatchFunc(fn MatchFunc) {
	c.match = fn
}

// Definitions returns the classifier's priority list in evaluation order.
func (c *Classifier) Definitions() []Definition {
	return c.defs
}

// Classify returns the first state whose identifying template matches the
// frame, with its match score, or Unknown (score 0) when none match.
// Deterministic for a fixed frame and library.
func (c *Classifier) Classify(frame image.Image) (State, float64) {
	for _, def := range c.defs {
		tpl, ok := c.lib.Get(def.Name)
		if !ok {
			continue
		}
		threshold := def.Threshold
		if threshold <= 0 {
			threshold = vision.DefaultThreshold
		}
		if res, ok := c.match(tpl.Image, frame, threshold); ok {
			return def.State, res.Score
		}
	}
	return Unknown, 0
}
