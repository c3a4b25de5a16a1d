package soniox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the well-known endpoint of the Soniox API.
	DefaultBaseURL = "https://api.soniox.com/v1"

	// DefaultAudioFormat is assumed for uploaded buffers without a format tag.
	DefaultAudioFormat = "mp3"

	userAgent = "soniox-transcribe-go/1.0"
)

// contentTypes maps audio format tags to MIME types for the upload part.
var contentTypes = map[string]string{
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"flac": "audio/flac",
	"ogg":  "audio/ogg",
	"m4a":  "audio/mp4",
	"mp4":  "audio/mp4",
	"aac":  "audio/aac",
	"webm": "audio/webm",
}

// Config contains API client configuration.
type Config struct {
	BaseURL string
	APIKey  string

	// HTTPClient overrides the default transport when set.
	HTTPClient *http.Client
}

// Client is a typed HTTP client for the Soniox REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Soniox API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key cannot be empty")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

// UploadFile uploads an audio buffer as a multipart file and returns the
// server-side file id. The format tag selects the part content type and
// defaults to DefaultAudioFormat.
func (c *Client) UploadFile(ctx context.Context, data []byte, format string) (string, error) {
	if format == "" {
		format = DefaultAudioFormat
	}

	body, contentType, err := buildFilePart(data, format)
	if err != nil {
		return "", &APIError{Message: "File upload failed", Err: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/files", body)
	if err != nil {
		return "", &APIError{Message: "File upload failed", Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	var file UploadedFile
	if err := c.do(req, "File upload failed", &file); err != nil {
		return "", err
	}
	return file.ID, nil
}

// CreateTranscription submits a new transcription job and returns its id.
func (c *Client) CreateTranscription(ctx context.Context, reqBody CreateTranscriptionRequest) (string, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", &APIError{Message: "Transcription creation failed", Err: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/transcriptions", bytes.NewReader(payload))
	if err != nil {
		return "", &APIError{Message: "Transcription creation failed", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var job Transcription
	if err := c.do(req, "Transcription creation failed", &job); err != nil {
		return "", err
	}
	return job.ID, nil
}

// GetTranscription fetches the current status of a transcription job.
func (c *Client) GetTranscription(ctx context.Context, id string) (*Transcription, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/transcriptions/"+id, nil)
	if err != nil {
		return nil, &APIError{Message: "Transcription status query failed", Err: err}
	}

	var job Transcription
	if err := c.do(req, "Transcription status query failed", &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// GetTranscript fetches the transcript of a completed transcription job.
func (c *Client) GetTranscript(ctx context.Context, id string) (*Transcript, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/transcriptions/"+id+"/transcript", nil)
	if err != nil {
		return nil, &APIError{Message: "Transcription transcript query failed", Err: err}
	}

	var transcript Transcript
	if err := c.do(req, "Transcription transcript query failed", &transcript); err != nil {
		return nil, err
	}
	return &transcript, nil
}

// DeleteFile deletes an uploaded file.
func (c *Client) DeleteFile(ctx context.Context, id string) error {
	return c.delete(ctx, "/files/"+id)
}

// DeleteTranscription deletes a transcription job.
func (c *Client) DeleteTranscription(ctx context.Context, id string) error {
	return c.delete(ctx, "/transcriptions/"+id)
}

// delete issues a DELETE request and reports non-2xx responses as errors.
func (c *Client) delete(ctx context.Context, path string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return fmt.Errorf("creating delete request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("delete %s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}

// newRequest builds an authenticated request against the configured base URL.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}

// do executes a request and decodes a JSON response into out. Transport
// failures and non-2xx statuses are reported as an APIError carrying msg;
// undecodable bodies as a parse APIError.
func (c *Client) do(req *http.Request, msg string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: msg, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Message: msg, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Message:    msg,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &APIError{Message: "Failed to parse API response", StatusCode: resp.StatusCode, Err: err}
		}
	}
	return nil
}

// buildFilePart assembles a multipart body with a single audio file part.
func buildFilePart(data []byte, format string) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	partType, ok := contentTypes[strings.ToLower(format)]
	if !ok {
		partType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="audio.%s"`, format))
	header.Set("Content-Type", partType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}
