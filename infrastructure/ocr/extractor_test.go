package ocr

import (
	"context"
	"errors"
	"image"
	"testing"
)

type fakeClient struct {
	result  *TextResult
	err     error
	healthy bool
	calls   int
}

func (f *fakeClient) RecognizeText(ctx context.Context, img image.Image) (*TextResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeClient) IsHealthy() bool { return f.healthy }
func (f *fakeClient) Close()          {}

func TestExtractor_ExtractText(t *testing.T) {
	tests := []struct {
		name      string
		client    *fakeClient
		threshold float64
		want      string
	}{
		{
			name:      "confident result",
			client:    &fakeClient{result: &TextResult{Text: "  Training  ", Confidence: 0.9}, healthy: true},
			threshold: 0.7,
			want:      "Training",
		},
		{
			name:      "below confidence threshold",
			client:    &fakeClient{result: &TextResult{Text: "garbage", Confidence: 0.4}, healthy: true},
			threshold: 0.7,
			want:      "",
		},
		{
			name:      "service error",
			client:    &fakeClient{err: errors.New("connection refused"), healthy: true},
			threshold: 0.7,
			want:      "",
		},
	}

	frame := image.NewRGBA(image.Rect(0, 0, 20, 20))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(tt.client, tt.threshold)
			got := e.ExtractText(context.Background(), frame, nil)
			if got != tt.want {
				t.Errorf("ExtractText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractor_RegionCrop(t *testing.T) {
	client := &fakeClient{result: &TextResult{Text: "ok", Confidence: 1}, healthy: true}
	e := NewExtractor(client, 0.5)

	frame := image.NewRGBA(image.Rect(0, 0, 100, 100))
	region := image.Rect(10, 10, 50, 30)

	if got := e.ExtractText(context.Background(), frame, &region); got != "ok" {
		t.Errorf("ExtractText() = %q, want %q", got, "ok")
	}
	if client.calls != 1 {
		t.Errorf("client calls = %d, want 1", client.calls)
	}

	// Empty crop skips the service entirely.
	empty := image.Rect(200, 200, 200, 200)
	if got := e.ExtractText(context.Background(), frame, &empty); got != "" {
		t.Errorf("ExtractText() on empty region = %q, want empty", got)
	}
	if client.calls != 1 {
		t.Errorf("client calls after empty region = %d, want 1", client.calls)
	}
}

func TestExtractor_NilInputs(t *testing.T) {
	e := NewExtractor(nil, 0.7)
	if got := e.ExtractText(context.Background(), image.NewRGBA(image.Rect(0, 0, 4, 4)), nil); got != "" {
		t.Errorf("ExtractText() with nil client = %q, want empty", got)
	}

	e = NewExtractor(&fakeClient{healthy: true}, 0.7)
	if got := e.ExtractText(context.Background(), nil, nil); got != "" {
		t.Errorf("ExtractText() with nil frame = %q, want empty", got)
	}
}
