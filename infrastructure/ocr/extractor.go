package ocr

import (
	"context"
	"image"
	"strings"

	"umapilot/domain/vision"
	"umapilot/infrastructure/logging"
)

// Extractor turns a frame region into plain text. It never fails: any
// capture, preprocessing, or service problem yields an empty string so the
// automation loop keeps running without OCR.
type Extractor struct {
	client              Client
	confidenceThreshold float64
}

// NewExtractor creates an extractor on top of an OCR client. Results below
// confidenceThreshold are discarded as noise.
func NewExtractor(client Client, confidenceThreshold float64) *Extractor {
	return &Extractor{
		client:              client,
		confidenceThreshold: confidenceThreshold,
	}
}

// ExtractText recognizes text inside region of frame, or the whole frame
// when region is nil. The crop is grayscaled and binarized before OCR.
func (e *Extractor) ExtractText(ctx context.Context, frame image.Image, region *image.Rectangle) string {
	if e.client == nil || frame == nil {
		return ""
	}

	logger := logging.From(ctx)

	src := frame
	if region != nil {
		sub, ok := frame.(interface {
			SubImage(r image.Rectangle) image.Image
		})
		if !ok {
			logger.Debug("frame type does not support region crop, skipping OCR")
			return ""
		}
		src = sub.SubImage(*region)
		if src.Bounds().Empty() {
			return ""
		}
	}

	prepared := vision.Otsu(vision.Grayscale(src))

	result, err := e.client.RecognizeText(ctx, prepared)
	if err != nil {
		logger.Debug("OCR recognition failed", "error", err)
		return ""
	}
	if result.Confidence < e.confidenceThreshold {
		logger.Debug("OCR result below confidence threshold",
			"confidence", result.Confidence, "threshold", e.confidenceThreshold)
		return ""
	}

	return strings.TrimSpace(result.Text)
}
