package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the transcription workflow.
type Metrics struct {
	// File metrics
	FilesUploaded  prometheus.Counter
	UploadFailures prometheus.Counter
	FilesDeleted   prometheus.Counter

	// Job metrics
	JobsCreated   prometheus.Counter
	JobsCompleted prometheus.Counter
	JobsFailed    prometheus.Counter
	JobsDeleted   prometheus.Counter
	JobDuration   prometheus.Histogram

	// Polling metrics
	PollRequests prometheus.Counter
	PollTimeouts prometheus.Counter

	// Cleanup metrics
	CleanupFailures prometheus.Counter
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all metrics and registers them on the given registerer.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FilesUploaded: factory.NewCounter(prometheus.CounterOpts{
			Name: "soniox_files_uploaded_total",
			Help: "Total number of audio files uploaded",
		}),
		UploadFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "soniox_upload_failures_total",
			Help: "Total number of failed audio file uploads",
		}),
		FilesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "soniox_files_deleted_total",
			Help: "Total number of uploaded files deleted during cleanup",
		}),

		JobsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "soniox_jobs_created_total",
			Help: "Total number of transcription jobs created",
		}),
		JobsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "soniox_jobs_completed_total",
			Help: "Total number of transcription jobs that completed",
		}),
		JobsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "soniox_jobs_failed_total",
			Help: "Total number of transcription jobs that failed",
		}),
		JobsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "soniox_jobs_deleted_total",
			Help: "Total number of transcription jobs deleted during cleanup",
		}),
		JobDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "soniox_job_duration_seconds",
			Help:    "Wall-clock duration of transcription jobs from creation to terminal state",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~1 hour
		}),

		PollRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "soniox_poll_requests_total",
			Help: "Total number of job status polls",
		}),
		PollTimeouts: factory.NewCounter(prometheus.CounterOpts{
			Name: "soniox_poll_timeouts_total",
			Help: "Total number of jobs abandoned because polling timed out",
		}),

		CleanupFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "soniox_cleanup_failures_total",
			Help: "Total number of failed resource deletions during cleanup",
		}),
	}
}

// RecordFileUploaded increments the uploaded files counter.
func (m *Metrics) RecordFileUploaded() {
	m.FilesUploaded.Inc()
}

// RecordUploadFailure increments the upload failures counter.
func (m *Metrics) RecordUploadFailure() {
	m.UploadFailures.Inc()
}

// RecordFileDeleted increments the deleted files counter.
func (m *Metrics) RecordFileDeleted() {
	m.FilesDeleted.Inc()
}

// RecordJobCreated increments the created jobs counter.
func (m *Metrics) RecordJobCreated() {
	m.JobsCreated.Inc()
}

// RecordJobCompleted records a completed job and its duration.
func (m *Metrics) RecordJobCompleted(durationSeconds float64) {
	m.JobsCompleted.Inc()
	m.JobDuration.Observe(durationSeconds)
}

// RecordJobFailed records a failed job and its duration.
func (m *Metrics) RecordJobFailed(durationSeconds float64) {
	m.JobsFailed.Inc()
	m.JobDuration.Observe(durationSeconds)
}

// RecordJobDeleted increments the deleted jobs counter.
func (m *Metrics) RecordJobDeleted() {
	m.JobsDeleted.Inc()
}

// RecordPollRequest increments the poll requests counter.
func (m *Metrics) RecordPollRequest() {
	m.PollRequests.Inc()
}

// RecordPollTimeout increments the poll timeouts counter.
func (m *Metrics) RecordPollTimeout() {
	m.PollTimeouts.Inc()
}

// RecordCleanupFailure increments the cleanup failures counter.
func (m *Metrics) RecordCleanupFailure() {
	m.CleanupFailures.Inc()
}
