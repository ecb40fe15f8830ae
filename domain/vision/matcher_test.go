package vision

import (
	"image"
	"image/color"
	"testing"
)

// noiseFrame fills a frame with deterministic pseudo-random gray values so
// that no structured template can correlate with the background.
func noiseFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	seed := uint32(12345)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			seed = seed*1664525 + 1013904223
			v := uint8(seed >> 24)
			img.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// checkerboard builds a high-contrast template that cannot occur in noise.
func checkerboard(w, h, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				img.Set(x, y, color.RGBA{A: 255})
			}
		}
	}
	return img
}

// paste copies src into dst with its top-left corner at (ox, oy).
func paste(dst *image.RGBA, src image.Image, ox, oy int) {
	b := src.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Set(ox+x, oy+y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
}

func TestMatch_FindsTemplate(t *testing.T) {
	tpl := checkerboard(16, 12, 4)
	frame := noiseFrame(120, 90)
	paste(frame, tpl, 37, 51)

	res, ok := Match(tpl, frame, DefaultThreshold)
	if !ok {
		t.Fatal("Match() did not find the pasted template")
	}

	wantRect := image.Rect(37, 51, 37+16, 51+12)
	if res.Rect != wantRect {
		t.Errorf("Rect = %v, want %v", res.Rect, wantRect)
	}
	if res.Score < 0.99 {
		t.Errorf("Score = %v, want ~1.0 for an exact paste", res.Score)
	}

	c := res.Centroid()
	if c.X != 45 || c.Y != 57 {
		t.Errorf("Centroid() = %v, want (45, 57)", c)
	}
}

func TestMatch_AbsentTemplateNotFound(t *testing.T) {
	tpl := checkerboard(16, 12, 4)
	frame := noiseFrame(120, 90)

	if res, ok := Match(tpl, frame, DefaultThreshold); ok {
		t.Errorf("Match() = %+v, want not found in pure noise", res)
	}
}

func TestMatch_ThresholdGates(t *testing.T) {
	tpl := checkerboard(16, 12, 4)
	frame := noiseFrame(120, 90)
	paste(frame, tpl, 10, 10)

	// A perfect paste passes even a very strict threshold.
	if _, ok := Match(tpl, frame, 0.99); !ok {
		t.Error("Match() with threshold 0.99 should accept an exact paste")
	}

	// An impossible threshold rejects everything.
	if _, ok := Match(tpl, frame, 1.01); ok {
		t.Error("Match() with threshold > 1 should never accept")
	}
}

func TestMatch_TemplateLargerThanFrame(t *testing.T) {
	tpl := checkerboard(50, 50, 5)
	frame := noiseFrame(20, 20)

	if _, ok := Match(tpl, frame, DefaultThreshold); ok {
		t.Error("Match() should not find a template larger than the frame")
	}
}

func TestMatch_FlatTemplateUnmatchable(t *testing.T) {
	flat := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			flat.Set(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}
	frame := noiseFrame(60, 60)
	paste(frame, flat, 5, 5)

	if _, ok := Match(flat, frame, DefaultThreshold); ok {
		t.Error("Match() should reject a zero-variance template")
	}
}

func TestMatch_Deterministic(t *testing.T) {
	tpl := checkerboard(16, 12, 4)
	frame := noiseFrame(120, 90)
	paste(frame, tpl, 60, 20)

	first, ok := Match(tpl, frame, DefaultThreshold)
	if !ok {
		t.Fatal("Match() did not find the template")
	}
	for i := 0; i < 5; i++ {
		res, ok := Match(tpl, frame, DefaultThreshold)
		if !ok || res != first {
			t.Fatalf("Match() call %d = %+v, %v; want %+v, true", i, res, ok, first)
		}
	}
}

func TestFingerprint(t *testing.T) {
	a := noiseFrame(64, 64)
	b := noiseFrame(64, 64) // same seed, identical content
	c := checkerboard(64, 64, 8)

	fa, err := NewFingerprint(a)
	if err != nil {
		t.Fatal(err)
	}
	fb, err := NewFingerprint(b)
	if err != nil {
		t.Fatal(err)
	}
	fc, err := NewFingerprint(c)
	if err != nil {
		t.Fatal(err)
	}

	if d, err := fa.Distance(fb); err != nil || d != 0 {
		t.Errorf("Distance(identical) = %d, %v; want 0, nil", d, err)
	}
	if d, err := fa.Distance(fc); err != nil || d == 0 {
		t.Errorf("Distance(different) = %d, %v; want > 0, nil", d, err)
	}

	if (Fingerprint{}).IsZero() != true {
		t.Error("zero Fingerprint should report IsZero")
	}
	if fa.IsZero() {
		t.Error("computed Fingerprint should not report IsZero")
	}
}
