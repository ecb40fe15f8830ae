package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoad_MissingFileSynthesizesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Load() should create the missing config file: %v", err)
	}

	want := Default()
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoad_PartialFileFallsBackPerKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	content := "" +
		"[automation]\n" +
		"click_delay = 250ms\n" +
		"[training]\n" +
		"priority_stats = guts, intelligence\n" +
		"skip_races = true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Automation.ClickDelay != 250*time.Millisecond {
		t.Errorf("ClickDelay = %v, want 250ms", cfg.Automation.ClickDelay)
	}
	if !cfg.Training.SkipRaces {
		t.Error("SkipRaces should be true")
	}
	if got, want := cfg.Training.PriorityStats, []string{"guts", "intelligence"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PriorityStats = %v, want %v", got, want)
	}

	// Untouched keys keep their defaults.
	if cfg.Automation.ScreenshotDelay != time.Second {
		t.Errorf("ScreenshotDelay = %v, want default 1s", cfg.Automation.ScreenshotDelay)
	}
	if cfg.OCR.ConfidenceThreshold != 0.7 {
		t.Errorf("ConfidenceThreshold = %v, want default 0.7", cfg.OCR.ConfidenceThreshold)
	}
	if !cfg.Automation.WindowDetectionEnabled {
		t.Error("WindowDetectionEnabled should default to true")
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"confidence out of range", "[ocr]\nconfidence_threshold = 1.5\n"},
		{"zero retries", "[automation]\nmax_retries = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.ini")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() should reject invalid config")
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"speed,stamina,power", []string{"speed", "stamina", "power"}},
		{" speed , stamina ", []string{"speed", "stamina"}},
		{"", nil},
		{",,", nil},
	}

	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
