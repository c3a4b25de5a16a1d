package soniox

// Transcription job statuses reported by the API.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// UploadedFile is the response to a file upload.
type UploadedFile struct {
	ID string `json:"id"`
}

// CreateTranscriptionRequest is the JSON body for creating a transcription job.
// FileID and AudioURL are mutually exclusive.
type CreateTranscriptionRequest struct {
	Model                        string         `json:"model"`
	FileID                       string         `json:"file_id,omitempty"`
	AudioURL                     string         `json:"audio_url,omitempty"`
	LanguageHints                []string       `json:"language_hints,omitempty"`
	Translation                  string         `json:"translation,omitempty"`
	EnableSpeakerDiarization     bool           `json:"enable_speaker_diarization,omitempty"`
	EnableLanguageIdentification bool           `json:"enable_language_identification,omitempty"`
	Context                      string         `json:"context,omitempty"`
	ClientReferenceID            string         `json:"client_reference_id,omitempty"`
	Webhook                      *WebhookConfig `json:"webhook,omitempty"`
}

// WebhookConfig describes an optional completion webhook for a job.
type WebhookConfig struct {
	URL             string `json:"url"`
	AuthHeaderName  string `json:"auth_header_name,omitempty"`
	AuthHeaderValue string `json:"auth_header_value,omitempty"`
}

// Transcription is the status of a transcription job.
type Transcription struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Transcript is the final result of a completed transcription job.
type Transcript struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Tokens []Token `json:"tokens"`
}

// Token is one unit of transcribed output with timing and confidence,
// plus optional speaker, language and translation annotations.
type Token struct {
	Text              string  `json:"text"`
	StartMs           int     `json:"start_ms"`
	EndMs             int     `json:"end_ms"`
	Confidence        float64 `json:"confidence"`
	Speaker           string  `json:"speaker,omitempty"`
	Language          string  `json:"language,omitempty"`
	TranslationStatus string  `json:"translation_status,omitempty"`
}
