// Package transcribe orchestrates one transcription job against the Soniox
// API: upload or reference audio, create the job, poll until a terminal
// state, fetch the transcript, and always release the server-side resources
// the run created, on success and on every failure path.
package transcribe
