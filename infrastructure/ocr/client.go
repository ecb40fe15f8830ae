// Package ocr provides best-effort text recovery from captured frames via an
// OCR sidecar service. OCR output is advisory only: it feeds logging and the
// error-keyword scan, never the choice of which element to click.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Client recognizes text in images.
type Client interface {
	// RecognizeText recognizes text from an image.
	RecognizeText(ctx context.Context, img image.Image) (*TextResult, error)

	// IsHealthy returns true if the OCR service is available.
	IsHealthy() bool

	// Close releases resources.
	Close()
}

// TextResult contains the OCR recognition result.
type TextResult struct {
	Text       string
	Confidence float64
	ElapsedMs  float64
}

// ClientConfig contains configuration for the OCR client.
type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	HealthInterval time.Duration
	HealthTimeout  time.Duration
}

// DefaultClientConfig returns default OCR client configuration.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:        "http://localhost:8000",
		Timeout:        30 * time.Second,
		HealthInterval: 5 * time.Second,
		HealthTimeout:  3 * time.Second,
	}
}

// HTTPClient implements Client against an HTTP OCR service.
type HTTPClient struct {
	config       *ClientConfig
	httpClient   *http.Client
	healthy      atomic.Bool
	healthCtx    context.Context
	healthCancel context.CancelFunc
	healthWg     sync.WaitGroup
}

// NewHTTPClient creates a new HTTP-based OCR client and starts its
// background health-check loop.
func NewHTTPClient(config *ClientConfig) *HTTPClient {
	if config == nil {
		config = DefaultClientConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())

	client := &HTTPClient{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		healthCtx:    ctx,
		healthCancel: cancel,
	}

	client.performHealthCheck()

	client.healthWg.Add(1)
	go client.healthCheckLoop()

	return client
}

// RecognizeText posts the image as PNG and parses the recognized text.
func (c *HTTPClient) RecognizeText(ctx context.Context, img image.Image) (*TextResult, error) {
	if !c.IsHealthy() {
		return nil, fmt.Errorf("OCR service is currently unavailable")
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	requestURL := c.config.BaseURL + "/v1/text"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp struct {
		Text  string `json:"text"`
		Debug struct {
			Confidence float64 `json:"confidence"`
			ElapsedMs  float64 `json:"elapsed_ms"`
		} `json:"debug"`
	}
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &TextResult{
		Text:       apiResp.Text,
		Confidence: apiResp.Debug.Confidence,
		ElapsedMs:  apiResp.Debug.ElapsedMs,
	}, nil
}

// IsHealthy returns true if the OCR service is available.
func (c *HTTPClient) IsHealthy() bool {
	return c.healthy.Load()
}

// Close stops the health-check loop.
func (c *HTTPClient) Close() {
	if c.healthCancel != nil {
		c.healthCancel()
	}
	c.healthWg.Wait()
}

func (c *HTTPClient) healthCheckLoop() {
	defer c.healthWg.Done()

	ticker := time.NewTicker(c.config.HealthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.healthCtx.Done():
			return
		case <-ticker.C:
			c.performHealthCheck()
		}
	}
}

func (c *HTTPClient) performHealthCheck() {
	ctx, cancel := context.WithTimeout(c.healthCtx, c.config.HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/health", nil)
	if err != nil {
		c.healthy.Store(false)
		return
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.healthy.Store(false)
		return
	}
	defer resp.Body.Close()

	c.healthy.Store(resp.StatusCode == http.StatusOK)
}
