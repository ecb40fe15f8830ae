// Package config loads automation settings from an ini file. A missing file
// is synthesized with defaults on first run; missing keys fall back to
// in-code defaults rather than failing.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// OCRConfig configures the OCR sidecar client.
type OCRConfig struct {
	// ServiceURL is the base URL of the OCR HTTP service.
	ServiceURL string
	// ConfidenceThreshold discards OCR results scored below it.
	ConfidenceThreshold float64
}

// AutomationConfig paces and bounds the automation loop.
type AutomationConfig struct {
	// ClickDelay is the pause after each simulated click.
	ClickDelay time.Duration
	// ScreenshotDelay is the idle pause when no action was taken.
	ScreenshotDelay time.Duration
	// MaxRetries bounds window-locate attempts per refresh.
	MaxRetries int
	// WindowDetectionEnabled toggles window tracking; off means
	// full-display capture and no focus calls.
	WindowDetectionEnabled bool
}

// TrainingConfig steers the training-screen handler.
type TrainingConfig struct {
	// PriorityStats orders which stat to train first.
	PriorityStats []string
	// SkipRaces prefers the skip button on race screens.
	SkipRaces bool
	// FarmFans prefers racing over training on the main menu.
	FarmFans bool
}

// Config is the full application configuration.
type Config struct {
	OCR        OCRConfig
	Automation AutomationConfig
	Training   TrainingConfig

	// WindowTitle identifies the game window for the locator.
	WindowTitle string
	// TemplatesDir is the template image asset directory.
	TemplatesDir string
}

// Default returns the documented in-code defaults.
func Default() *Config {
	return &Config{
		OCR: OCRConfig{
			ServiceURL:          "http://localhost:8000",
			ConfidenceThreshold: 0.7,
		},
		Automation: AutomationConfig{
			ClickDelay:             500 * time.Millisecond,
			ScreenshotDelay:        time.Second,
			MaxRetries:             3,
			WindowDetectionEnabled: true,
		},
		Training: TrainingConfig{
			PriorityStats: []string{"speed", "stamina", "power"},
			SkipRaces:     false,
			FarmFans:      false,
		},
		WindowTitle:  "Umamusume",
		TemplatesDir: "templates",
	}
}

// Load reads configuration from the ini file at path. When the file does
// not exist it is created with defaults first, so users get an editable
// starting point.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := WriteDefault(path); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := &Config{
		OCR: OCRConfig{
			ServiceURL:          v.GetString("ocr.service_url"),
			ConfidenceThreshold: v.GetFloat64("ocr.confidence_threshold"),
		},
		Automation: AutomationConfig{
			ClickDelay:             v.GetDuration("automation.click_delay"),
			ScreenshotDelay:        v.GetDuration("automation.screenshot_delay"),
			MaxRetries:             v.GetInt("automation.max_retries"),
			WindowDetectionEnabled: v.GetBool("automation.window_detection_enabled"),
		},
		Training: TrainingConfig{
			PriorityStats: splitList(v.GetString("training.priority_stats")),
			SkipRaces:     v.GetBool("training.skip_races"),
			FarmFans:      v.GetBool("training.farm_fans"),
		},
		WindowTitle:  v.GetString("window.title"),
		TemplatesDir: v.GetString("templates.dir"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteDefault writes the default configuration as an ini file at path.
func WriteDefault(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")
	setDefaults(v)
	return v.WriteConfigAs(path)
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("ocr.service_url", d.OCR.ServiceURL)
	v.SetDefault("ocr.confidence_threshold", d.OCR.ConfidenceThreshold)
	v.SetDefault("automation.click_delay", d.Automation.ClickDelay.String())
	v.SetDefault("automation.screenshot_delay", d.Automation.ScreenshotDelay.String())
	v.SetDefault("automation.max_retries", d.Automation.MaxRetries)
	v.SetDefault("automation.window_detection_enabled", d.Automation.WindowDetectionEnabled)
	v.SetDefault("training.priority_stats", strings.Join(d.Training.PriorityStats, ","))
	v.SetDefault("training.skip_races", d.Training.SkipRaces)
	v.SetDefault("training.farm_fans", d.Training.FarmFans)
	v.SetDefault("window.title", d.WindowTitle)
	v.SetDefault("templates.dir", d.TemplatesDir)
}

func (c *Config) validate() error {
	if c.OCR.ConfidenceThreshold < 0 || c.OCR.ConfidenceThreshold > 1 {
		return fmt.Errorf("ocr.confidence_threshold %v must be in [0, 1]", c.OCR.ConfidenceThreshold)
	}
	if c.Automation.MaxRetries < 1 {
		return fmt.Errorf("automation.max_retries %d must be at least 1", c.Automation.MaxRetries)
	}
	if c.Automation.ClickDelay < 0 || c.Automation.ScreenshotDelay < 0 {
		return fmt.Errorf("automation delays must not be negative")
	}
	return nil
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
