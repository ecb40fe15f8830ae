// Package capture grabs raw pixels for the automation loop: the tracked
// window region when one is known, otherwise the full primary display.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/kbinani/screenshot"

	"umapilot/infrastructure/window"
)

// Capturer returns a decoded, addressable raster for a screen rectangle.
// A nil region means full-display capture. Every call re-captures; there is
// no frame caching.
type Capturer interface {
	Capture(region *window.Region) (image.Image, error)
}

// ScreenCapturer captures the primary display through the OS screenshot API.
type ScreenCapturer struct {
	// DisplayIndex selects the display for full-screen captures.
	DisplayIndex int
}

// NewScreenCapturer creates a capturer for the primary display.
func NewScreenCapturer() *ScreenCapturer {
	return &ScreenCapturer{DisplayIndex: 0}
}

// Capture grabs the given rectangle, or the whole display when region is
// nil. Decode errors surface as capture failures, never as partial frames.
func (c *ScreenCapturer) Capture(region *window.Region) (image.Image, error) {
	var bounds image.Rectangle
	if region != nil {
		if !region.Valid() {
			return nil, fmt.Errorf("capture region %+v has no area", *region)
		}
		bounds = image.Rect(region.X, region.Y, region.X+region.Width, region.Y+region.Height)
	} else {
		bounds = screenshot.GetDisplayBounds(c.DisplayIndex)
	}

	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to capture %v: %w", bounds, err)
	}
	if img == nil {
		return nil, fmt.Errorf("capture of %v returned no frame", bounds)
	}
	return img, nil
}

// DisplaySize returns the primary display dimensions, used as the
// coordinate-mapping fallback when no window region is known.
func DisplaySize() (int, int) {
	b := screenshot.GetDisplayBounds(0)
	return b.Dx(), b.Dy()
}

// SaveFrame writes a frame to dir as a timestamped PNG, for diagnosing
// classification misses. The directory is created if needed.
func SaveFrame(img image.Image, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create frame directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("frame_%d.png", time.Now().UnixMilli()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create frame file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("failed to encode frame: %w", err)
	}
	return path, nil
}

// Crop returns the sub-image of img bounded by rect, when the underlying
// type supports it.
func Crop(img image.Image, rect image.Rectangle) (image.Image, error) {
	sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		return nil, fmt.Errorf("image type %T does not support cropping", img)
	}
	return sub.SubImage(rect), nil
}
