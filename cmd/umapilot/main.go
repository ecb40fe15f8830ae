// Package main is the headless entry point for umapilot.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"umapilot/application/automation"
	"umapilot/application/control"
	"umapilot/core/command"
	"umapilot/core/event"
	"umapilot/core/eventbus"
	"umapilot/domain/screen"
	"umapilot/domain/template"
	"umapilot/infrastructure/capture"
	"umapilot/infrastructure/config"
	"umapilot/infrastructure/input"
	"umapilot/infrastructure/logging"
	"umapilot/infrastructure/ocr"
	"umapilot/infrastructure/window"
	"umapilot/resources"
)

const statsLogInterval = 30 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.ini", "path to the configuration file")
	templatesDir := flag.String("templates", "", "template image directory (overrides config)")
	windowTitle := flag.String("title", "", "game window title (overrides config)")
	screensPath := flag.String("screens", "", "screen definition YAML (overrides embedded defaults)")
	once := flag.Bool("once", false, "capture and classify a single frame, no clicks")
	flag.Parse()

	logger, closeLog, err := logging.Setup(nil)
	if err != nil {
		os.Stderr.WriteString("Failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer closeLog()

	logger.Info("Starting umapilot")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("Failed to load config", "path", *configPath, "error", err)
		return 1
	}
	if *templatesDir != "" {
		cfg.TemplatesDir = *templatesDir
	}
	if *windowTitle != "" {
		cfg.WindowTitle = *windowTitle
	}

	// Load template assets
	lib, loadErrs := template.Load(cfg.TemplatesDir)
	for _, e := range loadErrs {
		logger.Warn("Template skipped", "error", e)
	}
	logger.Info("Templates loaded", "count", lib.Len(), "dir", cfg.TemplatesDir)

	// Load screen definitions (embedded defaults or override file)
	var defs []screen.Definition
	if *screensPath != "" {
		defs, err = screen.LoadDefinitions(os.DirFS(filepath.Dir(*screensPath)), filepath.Base(*screensPath))
	} else {
		defs, err = screen.LoadDefinitions(resources.ScreenFiles, "screens/screens.yaml")
	}
	if err != nil {
		logger.Error("Failed to load screen definitions", "error", err)
		return 1
	}
	logger.Info("Screen definitions loaded", "count", len(defs))

	classifier := screen.NewClassifier(defs, lib)

	// Window tracking
	locator := window.Chain{
		window.NewRobotLocator(cfg.WindowTitle),
		window.NewShellLocator(cfg.WindowTitle),
	}
	displayW, displayH := capture.DisplaySize()
	tracker := window.NewTracker(locator, displayW, displayH, cfg.Automation.MaxRetries, logger)

	capturer := capture.NewScreenCapturer()

	if *once {
		return probeOnce(cfg, tracker, capturer, classifier, logger)
	}

	// OCR sidecar
	ocrCfg := ocr.DefaultClientConfig()
	ocrCfg.BaseURL = cfg.OCR.ServiceURL
	ocrClient := ocr.NewHTTPClient(ocrCfg)
	defer ocrClient.Close()
	extractor := ocr.NewExtractor(ocrClient, cfg.OCR.ConfidenceThreshold)

	bus := eventbus.New(100)
	defer bus.Close()

	runner := automation.NewRunner(automation.Deps{
		Capturer:   capturer,
		Clicker:    input.NewRobotClicker(),
		Classifier: classifier,
		Extractor:  extractor,
		Tracker:    tracker,
		Match:      automation.LibraryMatcher(lib),
		Bus:        bus,
		Logger:     logger,
	}, cfg.Automation, cfg.Training)

	surface := control.NewSurface(runner, bus, logger)
	defer surface.Close()

	if err := surface.Execute(&command.StartAutomation{}); err != nil {
		logger.Error("Failed to start automation", "error", err)
		return 1
	}

	// SIGINT/SIGTERM request a cooperative stop; the loop finishes its
	// current iteration first.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		runner.Wait()
		close(done)
	}()

	ticker := time.NewTicker(statsLogInterval)
	defer ticker.Stop()

	for {
		select {
		case sig := <-sigCh:
			logger.Info("Signal received, stopping", "signal", sig.String())
			if err := surface.Execute(&command.StopAutomation{}); err != nil {
				logger.Warn("Stop request rejected", "error", err)
			}
		case <-ticker.C:
			stats := surface.Stats()
			logger.Info("Session stats",
				"status", surface.Status(),
				"training_sessions", stats.TrainingSessions,
				"races_completed", stats.RacesCompleted,
				"events_handled", stats.EventsHandled,
				"errors_encountered", stats.ErrorsEncountered)
		case <-done:
			reason, stopErr := runner.StopResult()
			if reason != event.StopReasonManual {
				logger.Error("Run ended abnormally", "reason", reason.String(), "error", stopErr)
				return 1
			}
			logger.Info("Run complete")
			return 0
		}
	}
}

// probeOnce captures one frame and reports the classification verdict
// without dispatching any clicks, for diagnosing template sets.
func probeOnce(cfg *config.Config, tracker *window.Tracker, capturer *capture.ScreenCapturer, classifier *screen.Classifier, logger *slog.Logger) int {
	var region *window.Region
	if cfg.Automation.WindowDetectionEnabled {
		if reg, ok := tracker.Refresh(); ok {
			region = &reg
		} else {
			logger.Warn("Game window not detected, using full screen")
		}
	}

	frame, err := capturer.Capture(region)
	if err != nil {
		fmt.Fprintf(os.Stderr, "capture failed: %v\n", err)
		return 1
	}

	state, score := classifier.Classify(frame)
	fmt.Printf("screen=%s score=%.3f\n", state.String(), score)
	logger.Info("Probe complete", "screen", state.String(), "score", score)
	return 0
}
