// Package template holds the library of reference images used for screen
// classification and element matching. Template names double as the
// vocabulary of recognizable UI elements.
package template

import (
	"image"
	"sort"
)

// Template is a decoded reference image plus its pixel dimensions.
type Template struct {
	Name   string
	Image  image.Image
	Width  int
	Height int
}

// Library maps template names to decoded reference images. It is populated
// once at startup and immutable during a run; adding or removing asset files
// only takes effect on the next full load.
type Library struct {
	templates map[string]*Template
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{templates: make(map[string]*Template)}
}

// Register adds a decoded template. Later entries replace earlier ones with
// the same name. Intended for startup population only; the library is
// treated as immutable once the run begins.
func (l *Library) Register(name string, img image.Image) {
	b := img.Bounds()
	l.templates[name] = &Template{
		Name:   name,
		Image:  img,
		Width:  b.Dx(),
		Height: b.Dy(),
	}
}

// Get retrieves a template by name. The boolean reports presence; an absent
// template is a configuration gap, not an error.
func (l *Library) Get(name string) (*Template, bool) {
	t, ok := l.templates[name]
	return t, ok
}

// Has reports whether a template with the given name is loaded.
func (l *Library) Has(name string) bool {
	_, ok := l.templates[name]
	return ok
}

// Names returns all loaded template names, sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.templates))
	for name := range l.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of loaded templates.
func (l *Library) Len() int {
	return len(l.templates)
}
