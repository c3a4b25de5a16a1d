// Package formatting renders transcripts for output: plain text or a
// speaker-labeled layout built from diarized tokens.
package formatting

import (
	"fmt"
	"strings"

	"github.com/soniox/transcribe-go/internal/soniox"
)

// Text returns the plain transcript text.
func Text(t *soniox.Transcript) string {
	if t == nil {
		return ""
	}
	return t.Text
}

// WithSpeakers formats the transcript with speaker labels for better
// readability. Consecutive tokens of the same speaker form one paragraph;
// tokens without a speaker tag continue the current paragraph. Falls back
// to the plain text when no token carries a speaker.
func WithSpeakers(t *soniox.Transcript) string {
	if t == nil {
		return ""
	}

	diarized := false
	for _, token := range t.Tokens {
		if token.Speaker != "" {
			diarized = true
			break
		}
	}
	if !diarized {
		return t.Text
	}

	var formatted strings.Builder
	currentSpeaker := ""

	for _, token := range t.Tokens {
		if token.Speaker != "" && token.Speaker != currentSpeaker {
			currentSpeaker = token.Speaker
			if formatted.Len() > 0 {
				formatted.WriteString("\n\n")
			}
			formatted.WriteString(fmt.Sprintf("Speaker %s: ", currentSpeaker))
			// Tokens carry their own leading whitespace; drop it right
			// after a label.
			formatted.WriteString(strings.TrimLeft(token.Text, " "))
			continue
		}

		formatted.WriteString(token.Text)
	}

	return formatted.String()
}
