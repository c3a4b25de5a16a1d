package transcribe

// ValidationError reports invalid input, detected before any network call.
type ValidationError struct {
	Message string
}

// Error returns the validation failure message.
func (e *ValidationError) Error() string {
	return e.Message
}

// TimeoutError reports that job polling exceeded the configured budget.
type TimeoutError struct {
	Message string
}

// Error returns the timeout message.
func (e *TimeoutError) Error() string {
	return e.Message
}
