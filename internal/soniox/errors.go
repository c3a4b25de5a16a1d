package soniox

import "fmt"

// APIError reports a failed remote call: a non-2xx HTTP response, a
// transport-level failure, or an unparseable response body.
type APIError struct {
	Message    string
	StatusCode int
	Err        error
}

// Error formats the failure with its HTTP status when one was received.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *APIError) Unwrap() error {
	return e.Err
}
