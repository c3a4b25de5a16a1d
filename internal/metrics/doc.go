// Package metrics defines Prometheus metrics for the transcription job
// lifecycle: uploads, job creation, polling, completion and cleanup.
package metrics
