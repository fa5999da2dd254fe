// Package editor provides editing sessions over a CV document with undo/redo history.
package editor

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by session operations
var (
	// ErrBlankValue is returned when a required text value is empty after trimming.
	ErrBlankValue = errors.New("value must not be blank")
	// ErrNothingToEnhance is returned when an experience entry has no description to rewrite.
	ErrNothingToEnhance = errors.New("experience has no description to enhance")
	// ErrGenerationInProgress is returned while another generation request runs for the session.
	ErrGenerationInProgress = errors.New("a generation request is already in progress")
	// ErrSessionNotFound is returned by the Manager for unknown session ids.
	ErrSessionNotFound = errors.New("session not found")
)

// NotFoundError reports an entry id that does not exist in a section.
type NotFoundError struct {
	Section Section
	ID      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s entry not found: %s", e.Section, e.ID)
}

// ValidationError wraps a document that failed validation. The edit that
// produced it is discarded.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
