package transcribe

import (
	"time"

	"github.com/soniox/transcribe-go/internal/soniox"
)

const (
	// APIKeyEnvVar is the environment variable consulted when no API key
	// is supplied explicitly.
	APIKeyEnvVar = "SONIOX_API_KEY"

	// DefaultModel is used when the caller does not pick a model.
	DefaultModel = "stt-async-preview"

	// DefaultPollInterval is the delay between job status checks.
	DefaultPollInterval = 2 * time.Second

	// DefaultPollTimeout bounds the total time spent waiting for a job.
	DefaultPollTimeout = 30 * time.Minute

	// MinPollInterval is the smallest accepted polling interval.
	MinPollInterval = time.Second
)

// Options are the transcription parameters forwarded to job creation.
type Options struct {
	Model                        string
	LanguageHints                []string
	Translation                  string
	EnableSpeakerDiarization     bool
	EnableLanguageIdentification bool
	Context                      string
	ClientReferenceID            string
	Webhook                      *soniox.WebhookConfig
}

// JobConfig is the immutable input for one transcription job.
//
// Audio carries either a URL (string) or raw audio bytes ([]byte); the
// value type alone decides whether the job references remote audio or
// uploads a file first.
type JobConfig struct {
	Audio       any
	AudioFormat string

	// APIKey falls back to APIKeyEnvVar when empty.
	APIKey  string
	BaseURL string

	PollInterval time.Duration
	PollTimeout  time.Duration

	Options Options
}
