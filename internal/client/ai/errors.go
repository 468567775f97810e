package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned before any attempt when no API key is set.
	ErrNotConfigured = errors.New("API key is not configured for this application. Set API_KEY or GEMINI_API_KEY and restart")

	ErrEmptyPrompt    = errors.New("prompt must not be empty")
	ErrSchemaRequired = errors.New("a response schema is required in JSON mode")

	// ErrRateLimited means the pacing limiter could not admit the call
	// before the context deadline.
	ErrRateLimited = errors.New("request would exceed the rate limit before the deadline")

	// Retryable.
	ErrEmptyResponse     = errors.New("empty response")
	ErrMalformedResponse = errors.New("malformed JSON response")

	ErrServiceUnavailable = errors.New("AI service unavailable")
)

// UnavailableError is returned once every attempt has failed. It matches
// ErrServiceUnavailable and the last attempt's error with errors.Is.
type UnavailableError struct {
	Attempts int
	Last     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("API request failed after %d retries. The AI service may be temporarily unavailable.", e.Attempts)
}

func (e *UnavailableError) Unwrap() []error {
	return []error{ErrServiceUnavailable, e.Last}
}
