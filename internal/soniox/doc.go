// Package soniox implements the HTTP client for the Soniox speech-to-text API.
// It covers the file upload, transcription job, transcript retrieval and
// resource deletion endpoints, sending bearer-authenticated JSON and
// multipart requests and decoding typed responses.
package soniox
