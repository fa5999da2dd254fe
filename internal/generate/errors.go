// Package generate produces CV text (summaries, rewritten experience
// descriptions) with a language model.
package generate

import (
	"errors"
	"fmt"
)

// ErrUnavailable is matched by every error that means no text could be
// generated. Callers keep the user's existing text when they see it.
var ErrUnavailable = errors.New("text generation unavailable")

// ErrMissingAPIKey is returned when no API key was configured.
var ErrMissingAPIKey = fmt.Errorf("%w: API key is missing, set GEMINI_API_KEY", ErrUnavailable)

// UnavailableError represents a failed generation request
type UnavailableError struct {
	Message string
	Cause   error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation unavailable: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation unavailable: %s", e.Message)
}

// Unwrap exposes both ErrUnavailable and the underlying cause.
func (e *UnavailableError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrUnavailable}
	}
	return []error{ErrUnavailable, e.Cause}
}
