package vision

import (
	"image"
	"image/color"
)

// Grayscale converts an image to 8-bit grayscale using the standard luma
// weights.
func Grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			dst.SetGray(x, y, color.Gray{Y: uint8(luma(r, g, bl))})
		}
	}
	return dst
}

// Otsu binarizes a grayscale image with an automatically chosen global
// threshold that maximizes between-class variance. Stylized game UI text
// recognizes materially better after this step.
func Otsu(gray *image.Gray) *image.Gray {
	threshold := otsuThreshold(gray)

	b := gray.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if gray.GrayAt(x, y).Y > threshold {
				dst.SetGray(x, y, color.Gray{Y: 255})
			} else {
				dst.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return dst
}

// otsuThreshold computes the Otsu threshold from the intensity histogram.
func otsuThreshold(gray *image.Gray) uint8 {
	var hist [256]int
	b := gray.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			hist[gray.GrayAt(x, y).Y]++
		}
	}

	var sumAll float64
	for i, c := range hist {
		sumAll += float64(i) * float64(c)
	}

	var sumBelow float64
	var countBelow int
	var bestVar float64
	var best uint8

	for i := 0; i < 256; i++ {
		countBelow += hist[i]
		if countBelow == 0 {
			continue
		}
		countAbove := total - countBelow
		if countAbove == 0 {
			break
		}

		sumBelow += float64(i) * float64(hist[i])
		meanBelow := sumBelow / float64(countBelow)
		meanAbove := (sumAll - sumBelow) / float64(countAbove)

		diff := meanBelow - meanAbove
		betweenVar := float64(countBelow) * float64(countAbove) * diff * diff
		if betweenVar > bestVar {
			bestVar = betweenVar
			best = uint8(i)
		}
	}

	return best
}
