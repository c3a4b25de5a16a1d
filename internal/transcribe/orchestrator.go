package transcribe

import (
	"context"
	"encoding/hex"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"lukechampine.com/blake3"

	"github.com/soniox/transcribe-go/internal/metrics"
	"github.com/soniox/transcribe-go/internal/soniox"
)

// cleanupTimeout bounds the deletion calls issued after a run finishes,
// independently of the caller's context.
const cleanupTimeout = 30 * time.Second

// Document wraps one transcript for the caller: the full text as primary
// payload, the complete transcript object as metadata.
type Document struct {
	Content  string
	Metadata *soniox.Transcript
}

// Orchestrator runs exactly one transcription job per Transcribe call.
// Configuration is fixed at construction and not mutated afterwards, so
// concurrent Transcribe calls on one instance are independent.
type Orchestrator struct {
	audio        any
	audioFormat  string
	pollInterval time.Duration
	pollTimeout  time.Duration
	options      Options

	client     *soniox.Client
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithHTTPClient substitutes the HTTP transport used for all API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Orchestrator) {
		o.httpClient = client
	}
}

// WithMetrics attaches Prometheus metrics to the job lifecycle.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// New validates the configuration and builds an Orchestrator. No network
// calls are made here; every validation failure is a *ValidationError.
func New(cfg *JobConfig, opts ...Option) (*Orchestrator, error) {
	if cfg == nil {
		return nil, &ValidationError{Message: "No configuration provided"}
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(APIKeyEnvVar)
	}
	if apiKey == "" {
		return nil, &ValidationError{Message: "No API key provided"}
	}

	if cfg.PollInterval != 0 && cfg.PollInterval < MinPollInterval {
		return nil, &ValidationError{Message: "Polling interval should be longer than 1000 ms"}
	}

	o := &Orchestrator{
		audio:        cfg.Audio,
		audioFormat:  cfg.AudioFormat,
		pollInterval: cfg.PollInterval,
		pollTimeout:  cfg.PollTimeout,
		options:      cfg.Options,
		logger:       slog.Default(),
	}
	if o.pollInterval == 0 {
		o.pollInterval = DefaultPollInterval
	}
	if o.pollTimeout == 0 {
		o.pollTimeout = DefaultPollTimeout
	}
	if o.options.Model == "" {
		o.options.Model = DefaultModel
	}

	for _, opt := range opts {
		opt(o)
	}

	client, err := soniox.NewClient(soniox.Config{
		BaseURL:    cfg.BaseURL,
		APIKey:     apiKey,
		HTTPClient: o.httpClient,
	})
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	o.client = client

	return o, nil
}

// Transcribe runs the full job workflow and returns a single-element
// document slice on success. Server-side resources created along the way
// (uploaded file, transcription job) are deleted on every exit path;
// deletion failures are logged and never replace the primary outcome.
func (o *Orchestrator) Transcribe(ctx context.Context) ([]Document, error) {
	logger := o.logger.With(slog.String("run_id", uuid.NewString()))

	var created createdResources
	defer func() {
		o.cleanup(logger, &created)
	}()

	req := soniox.CreateTranscriptionRequest{
		Model:                        o.options.Model,
		LanguageHints:                o.options.LanguageHints,
		Translation:                  o.options.Translation,
		EnableSpeakerDiarization:     o.options.EnableSpeakerDiarization,
		EnableLanguageIdentification: o.options.EnableLanguageIdentification,
		Context:                      o.options.Context,
		ClientReferenceID:            o.options.ClientReferenceID,
		Webhook:                      o.options.Webhook,
	}

	// Audio source mode is decided by the value type alone: a string is a
	// remote URL, a byte slice is uploaded first.
	switch audio := o.audio.(type) {
	case string:
		req.AudioURL = audio
		if req.ClientReferenceID == "" {
			req.ClientReferenceID = contentReference([]byte(audio))
		}
		logger.Info("Using remote audio URL", slog.String("audio_url", audio))
	case []byte:
		if len(audio) == 0 {
			return nil, &ValidationError{Message: "Audio buffer is empty"}
		}
		if req.ClientReferenceID == "" {
			req.ClientReferenceID = contentReference(audio)
		}

		fileID, err := o.client.UploadFile(ctx, audio, o.audioFormat)
		if err != nil {
			if o.metrics != nil {
				o.metrics.RecordUploadFailure()
			}
			return nil, err
		}
		created.fileID = fileID
		req.FileID = fileID
		if o.metrics != nil {
			o.metrics.RecordFileUploaded()
		}
		logger.Info("Audio file uploaded",
			slog.String("file_id", fileID),
			slog.Int("size_bytes", len(audio)),
		)
	default:
		return nil, &ValidationError{Message: "No audio provided"}
	}

	jobID, err := o.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, err
	}
	created.jobID = jobID
	submittedAt := time.Now()
	if o.metrics != nil {
		o.metrics.RecordJobCreated()
	}
	logger.Info("Transcription job created",
		slog.String("job_id", jobID),
		slog.String("model", req.Model),
	)

	if err := o.waitForCompletion(ctx, logger, jobID, submittedAt); err != nil {
		if o.metrics != nil {
			o.metrics.RecordJobFailed(time.Since(submittedAt).Seconds())
		}
		return nil, err
	}
	if o.metrics != nil {
		o.metrics.RecordJobCompleted(time.Since(submittedAt).Seconds())
	}

	transcript, err := o.client.GetTranscript(ctx, jobID)
	if err != nil {
		return nil, err
	}
	logger.Info("Transcript fetched",
		slog.String("job_id", jobID),
		slog.Int("tokens", len(transcript.Tokens)),
	)

	return []Document{{Content: transcript.Text, Metadata: transcript}}, nil
}

// waitForCompletion polls the job at the configured interval until it
// reaches a terminal state or the elapsed time since submission exceeds
// the polling timeout.
func (o *Orchestrator) waitForCompletion(ctx context.Context, logger *slog.Logger, jobID string, submittedAt time.Time) error {
	deadline := submittedAt.Add(o.pollTimeout)

	for {
		job, err := o.client.GetTranscription(ctx, jobID)
		if err != nil {
			return err
		}
		if o.metrics != nil {
			o.metrics.RecordPollRequest()
		}
		logger.Debug("Job status", slog.String("job_id", jobID), slog.String("status", job.Status))

		switch job.Status {
		case soniox.StatusCompleted:
			return nil
		case soniox.StatusError:
			message := job.ErrorMessage
			if message == "" {
				message = "Unknown error"
			}
			return &soniox.APIError{Message: "Transcription failed: " + message}
		}

		if time.Now().After(deadline) {
			if o.metrics != nil {
				o.metrics.RecordPollTimeout()
			}
			return &TimeoutError{Message: "Transcription job polling timed out"}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(o.pollInterval):
		}
	}
}

// createdResources tracks the server-side resources one run acquired and
// still owes a deletion for.
type createdResources struct {
	fileID string
	jobID  string
}

// cleanup deletes the resources a run created. It runs on every exit path
// with a fresh context so caller cancellation cannot skip it, and failures
// are reported through the logger only.
func (o *Orchestrator) cleanup(logger *slog.Logger, created *createdResources) {
	if created.fileID == "" && created.jobID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	if created.fileID != "" {
		if err := o.client.DeleteFile(ctx, created.fileID); err != nil {
			if o.metrics != nil {
				o.metrics.RecordCleanupFailure()
			}
			logger.Warn("Failed to delete uploaded file",
				slog.String("file_id", created.fileID),
				slog.String("error", err.Error()),
			)
		} else {
			if o.metrics != nil {
				o.metrics.RecordFileDeleted()
			}
			logger.Debug("Uploaded file deleted", slog.String("file_id", created.fileID))
		}
	}

	if created.jobID != "" {
		if err := o.client.DeleteTranscription(ctx, created.jobID); err != nil {
			if o.metrics != nil {
				o.metrics.RecordCleanupFailure()
			}
			logger.Warn("Failed to delete transcription job",
				slog.String("job_id", created.jobID),
				slog.String("error", err.Error()),
			)
		} else {
			if o.metrics != nil {
				o.metrics.RecordJobDeleted()
			}
			logger.Debug("Transcription job deleted", slog.String("job_id", created.jobID))
		}
	}
}

// contentReference derives a stable client reference id from the audio
// content or URL.
func contentReference(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])[:32]
}
