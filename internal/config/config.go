package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete tool configuration.
type Config struct {
	API           APIConfig           `yaml:"api"`
	Polling       PollingConfig       `yaml:"polling"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Logging       LoggingConfig       `yaml:"logging"`
	Monitor       MonitorConfig       `yaml:"monitor"`
}

// APIConfig contains Soniox API connection settings.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// APIKey falls back to the SONIOX_API_KEY environment variable when empty.
	APIKey string `yaml:"api_key"`
}

// PollingConfig contains job status polling settings.
type PollingConfig struct {
	IntervalMs     int `yaml:"interval_ms"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// TranscriptionConfig contains transcription job options.
type TranscriptionConfig struct {
	Model                        string   `yaml:"model"`
	LanguageHints                []string `yaml:"language_hints"`
	Translation                  string   `yaml:"translation"`
	EnableSpeakerDiarization     bool     `yaml:"enable_speaker_diarization"`
	EnableLanguageIdentification bool     `yaml:"enable_language_identification"`
	Context                      string   `yaml:"context"`
	ClientReferenceID            string   `yaml:"client_reference_id"`
	WebhookURL                   string   `yaml:"webhook_url"`
	WebhookAuthHeaderName        string   `yaml:"webhook_auth_header_name"`
	WebhookAuthHeaderValue       string   `yaml:"webhook_auth_header_value"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// MonitorConfig contains the optional monitoring HTTP server configuration.
type MonitorConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

const apiKeyEnvVar = "SONIOX_API_KEY"

// Default returns a valid configuration with all defaults applied, so the
// CLI works without a config file.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://api.soniox.com/v1",
			APIKey:  os.Getenv(apiKeyEnvVar),
		},
		Polling: PollingConfig{
			IntervalMs:     2000,
			TimeoutSeconds: 1800,
		},
		Transcription: TranscriptionConfig{
			Model: "stt-async-preview",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Monitor: MonitorConfig{
			Enabled: false,
			Address: "127.0.0.1",
			Port:    9090,
		},
	}
}

// Load reads and parses the configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// The env var wins only when the file left the key empty.
	if config.API.APIKey == "" {
		config.API.APIKey = os.Getenv(apiKeyEnvVar)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate performs validation of the configuration.
func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("api config: %w", err)
	}

	if err := c.Polling.Validate(); err != nil {
		return fmt.Errorf("polling config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := c.Monitor.Validate(); err != nil {
		return fmt.Errorf("monitor config: %w", err)
	}

	return nil
}

// Validate validates API configuration.
func (a *APIConfig) Validate() error {
	if a.BaseURL == "" {
		return fmt.Errorf("base_url cannot be empty")
	}
	return nil
}

// Validate validates polling configuration.
func (p *PollingConfig) Validate() error {
	if p.IntervalMs < 1000 {
		return fmt.Errorf("interval_ms must be at least 1000, got %d", p.IntervalMs)
	}

	if p.TimeoutSeconds < 1 {
		return fmt.Errorf("timeout_seconds must be at least 1, got %d", p.TimeoutSeconds)
	}

	return nil
}

// Validate validates logging configuration.
func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("level must be one of [debug, info, warn, error], got '%s'", l.Level)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("format must be 'json' or 'text', got '%s'", l.Format)
	}

	return nil
}

// Validate validates the monitor configuration.
func (m *MonitorConfig) Validate() error {
	if m.Enabled {
		if m.Port < 1 || m.Port > 65535 {
			return fmt.Errorf("port must be between 1 and 65535, got %d", m.Port)
		}

		if m.Address == "" {
			return fmt.Errorf("address cannot be empty when monitoring is enabled")
		}
	}

	return nil
}

// GetPollInterval returns the polling interval as a time.Duration.
func (p *PollingConfig) GetPollInterval() time.Duration {
	return time.Duration(p.IntervalMs) * time.Millisecond
}

// GetPollTimeout returns the polling timeout as a time.Duration.
func (p *PollingConfig) GetPollTimeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}
