package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/soniox/transcribe-go/internal/config"
	"github.com/soniox/transcribe-go/internal/formatting"
	"github.com/soniox/transcribe-go/internal/metrics"
	"github.com/soniox/transcribe-go/internal/server"
	"github.com/soniox/transcribe-go/internal/soniox"
	"github.com/soniox/transcribe-go/internal/transcribe"
)

const (
	toolName    = "soniox-transcribe"
	toolVersion = "1.0.0"
)

func main() {
	// Parse command line flags
	inputPath := flag.String("f", "", "Path to input audio file")
	audioURL := flag.String("u", "", "URL of remote audio (instead of -f)")
	format := flag.String("format", "", "Audio format tag of the input file (default: mp3)")
	outputPath := flag.String("o", "", "Path to output transcript file (default: stdout)")
	speakers := flag.Bool("speakers", false, "Render speaker-labeled transcript")
	configPath := flag.String("config", "", "Path to optional configuration file")
	model := flag.String("model", "", "Transcription model override")
	languages := flag.String("languages", "", "Comma-separated language hints override")
	flag.Parse()

	if (*inputPath == "") == (*audioURL == "") {
		fmt.Fprintln(os.Stderr, "Exactly one of -f or -u must be given")
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *model != "" {
		cfg.Transcription.Model = *model
	}
	if *languages != "" {
		cfg.Transcription.LanguageHints = strings.Split(*languages, ",")
	}

	// Initialize logger based on configuration
	logger := initLogger(cfg.Logging)

	logger.Info("Tool starting",
		slog.String("tool", toolName),
		slog.String("version", toolVersion),
		slog.String("model", cfg.Transcription.Model),
		slog.String("base_url", cfg.API.BaseURL),
	)

	// Initialize Prometheus metrics
	appMetrics := metrics.New()

	// Start the monitoring server when enabled
	if cfg.Monitor.Enabled {
		monitor := server.NewMonitorServer(server.MonitorServerConfig{
			Address: cfg.Monitor.Address,
			Port:    cfg.Monitor.Port,
		}, logger)
		if err := monitor.Start(); err != nil {
			logger.Error("Failed to start monitoring server", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := monitor.Stop(shutdownCtx); err != nil {
				logger.Error("Error stopping monitoring server", slog.String("error", err.Error()))
			}
		}()
	}

	// Build the job configuration
	jobCfg := &transcribe.JobConfig{
		AudioFormat:  *format,
		APIKey:       cfg.API.APIKey,
		BaseURL:      cfg.API.BaseURL,
		PollInterval: cfg.Polling.GetPollInterval(),
		PollTimeout:  cfg.Polling.GetPollTimeout(),
		Options:      jobOptions(cfg.Transcription),
	}
	if *audioURL != "" {
		jobCfg.Audio = *audioURL
	} else {
		data, err := os.ReadFile(*inputPath)
		if err != nil {
			logger.Error("Failed to read input file", slog.String("error", err.Error()))
			os.Exit(1)
		}
		jobCfg.Audio = data
	}

	orchestrator, err := transcribe.New(jobCfg,
		transcribe.WithLogger(logger),
		transcribe.WithMetrics(appMetrics),
	)
	if err != nil {
		logger.Error("Invalid job configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Cancel the run on interrupt; server-side cleanup still happens.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	docs, err := orchestrator.Transcribe(ctx)
	if err != nil {
		logger.Error("Transcription failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	text := docs[0].Content
	if *speakers {
		text = formatting.WithSpeakers(docs[0].Metadata)
	}

	if *outputPath == "" {
		fmt.Println(text)
	} else {
		if err := os.WriteFile(*outputPath, []byte(text), 0o644); err != nil {
			logger.Error("Failed to write transcript", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Transcript saved", slog.String("path", *outputPath))
	}
}

// loadConfig reads the config file when given, defaults otherwise.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// jobOptions maps the transcription config section onto job options.
func jobOptions(cfg config.TranscriptionConfig) transcribe.Options {
	opts := transcribe.Options{
		Model:                        cfg.Model,
		LanguageHints:                cfg.LanguageHints,
		Translation:                  cfg.Translation,
		EnableSpeakerDiarization:     cfg.EnableSpeakerDiarization,
		EnableLanguageIdentification: cfg.EnableLanguageIdentification,
		Context:                      cfg.Context,
		ClientReferenceID:            cfg.ClientReferenceID,
	}
	if cfg.WebhookURL != "" {
		opts.Webhook = &soniox.WebhookConfig{
			URL:             cfg.WebhookURL,
			AuthHeaderName:  cfg.WebhookAuthHeaderName,
			AuthHeaderValue: cfg.WebhookAuthHeaderValue,
		}
	}
	return opts
}

// initLogger creates the structured logger based on configuration.
func initLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var output *os.File
	switch cfg.Output {
	case "stdout":
		output = os.Stdout
	case "stderr", "":
		output = os.Stderr
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v, falling back to stderr\n", cfg.Output, err)
			output = os.Stderr
		} else {
			output = file
		}
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}
