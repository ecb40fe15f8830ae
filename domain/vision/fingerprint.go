package vision

import (
	"image"

	"github.com/corona10/goimagehash"
)

// Fingerprint is a perceptual hash of a frame. The automation loop uses it
// to recognize that consecutive frames are visually identical and skip
// re-running the full template scan.
type Fingerprint struct {
	hash *goimagehash.ImageHash
}

// NewFingerprint computes the perceptual hash of an image.
func NewFingerprint(img image.Image) (Fingerprint, error) {
	h, err := goimagehash.AverageHash(img)
	if err != nil {
		return Fingerprint{}, err
	}
	return Fingerprint{hash: h}, nil
}

// IsZero reports whether the fingerprint is unset.
func (f Fingerprint) IsZero() bool {
	return f.hash == nil
}

// Distance returns the Hamming distance to another fingerprint. Distance 0
// means perceptually identical frames.
func (f Fingerprint) Distance(other Fingerprint) (int, error) {
	return f.hash.Distance(other.hash)
}
