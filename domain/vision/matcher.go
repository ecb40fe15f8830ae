// Package vision implements the image primitives behind screen
// classification: template matching by normalized cross-correlation,
// grayscale/Otsu preprocessing, and perceptual frame fingerprints.
package vision

import (
	"image"
	"math"
)

// DefaultThreshold is the match acceptance threshold used when a caller has
// no screen-specific override.
const DefaultThreshold = 0.8

// Result is the best match location for a template within a frame. Scores
// are normalized correlation values in [-1, 1]. Matches below the caller's
// threshold are not returned at all; absence signals "not found".
type Result struct {
	Rect  image.Rectangle // bounding box of the match, frame coordinates
	Score float64
}

// Centroid returns the center point of the matched rectangle, the point a
// handler clicks for button templates.
func (r Result) Centroid() image.Point {
	return image.Point{
		X: (r.Rect.Min.X + r.Rect.Max.X) / 2,
		Y: (r.Rect.Min.Y + r.Rect.Max.Y) / 2,
	}
}

// Match slides tpl over frame and returns the single best-scoring location,
// accepted only if its normalized cross-correlation score is >= threshold.
// When multiple locations score equally, any one of them may be returned;
// templates are assumed visually unique within a frame.
func Match(tpl, frame image.Image, threshold float64) (Result, bool) {
	t := intensity(tpl)
	f := intensity(frame)

	th := len(t)
	if th == 0 {
		return Result{}, false
	}
	tw := len(t[0])
	fh := len(f)
	if fh == 0 {
		return Result{}, false
	}
	fw := len(f[0])
	if tw == 0 || tw > fw || th > fh {
		return Result{}, false
	}

	n := float64(tw * th)

	// Template statistics are fixed for the whole scan.
	var tSum, tSumSq float64
	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			v := t[y][x]
			tSum += v
			tSumSq += v * v
		}
	}
	tMean := tSum / n
	tVar := tSumSq - n*tMean*tMean
	if tVar <= 0 {
		// A flat template correlates equally with everything; treat as unmatchable.
		return Result{}, false
	}
	tNorm := math.Sqrt(tVar)

	// Integral images over the frame give each window's sum and sum of
	// squares in constant time; only the cross term needs the inner scan.
	sum, sumSq := integrals(f, fw, fh)

	best := Result{Score: math.Inf(-1)}
	for y := 0; y+th <= fh; y++ {
		for x := 0; x+tw <= fw; x++ {
			wSum := rectSum(sum, x, y, tw, th)
			wSumSq := rectSum(sumSq, x, y, tw, th)
			wMean := wSum / n
			wVar := wSumSq - n*wMean*wMean
			if wVar <= 0 {
				continue // flat window cannot match a non-flat template
			}

			var cross float64
			for ty := 0; ty < th; ty++ {
				frow := f[y+ty]
				trow := t[ty]
				for tx := 0; tx < tw; tx++ {
					cross += frow[x+tx] * trow[tx]
				}
			}

			score := (cross - n*wMean*tMean) / (math.Sqrt(wVar) * tNorm)
			if score > best.Score {
				best.Score = score
				best.Rect = image.Rect(x, y, x+tw, y+th)
			}
		}
	}

	if best.Score < threshold {
		return Result{}, false
	}
	return best, true
}

// intensity converts an image to a row-major luma matrix normalized to [0, 255].
func intensity(img image.Image) [][]float64 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	m := make([][]float64, h)
	for y := 0; y < h; y++ {
		row := make([]float64, w)
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			row[x] = luma(r, g, bl)
		}
		m[y] = row
	}
	return m
}

// luma converts 16-bit RGB channels to an 8-bit-scale intensity value.
func luma(r, g, b uint32) float64 {
	return (0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8))
}

// integrals builds (w+1)x(h+1) summed-area tables of values and squares.
func integrals(f [][]float64, w, h int) ([][]float64, [][]float64) {
	sum := make([][]float64, h+1)
	sumSq := make([][]float64, h+1)
	sum[0] = make([]float64, w+1)
	sumSq[0] = make([]float64, w+1)
	for y := 1; y <= h; y++ {
		sum[y] = make([]float64, w+1)
		sumSq[y] = make([]float64, w+1)
		var rowSum, rowSumSq float64
		for x := 1; x <= w; x++ {
			v := f[y-1][x-1]
			rowSum += v
			rowSumSq += v * v
			sum[y][x] = sum[y-1][x] + rowSum
			sumSq[y][x] = sumSq[y-1][x] + rowSumSq
		}
	}
	return sum, sumSq
}

// rectSum reads a window total out of a summed-area table.
func rectSum(tbl [][]float64, x, y, w, h int) float64 {
	return tbl[y+h][x+w] - tbl[y][x+w] - tbl[y+h][x] + tbl[y][x]
}
