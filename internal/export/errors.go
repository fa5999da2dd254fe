// Package export prints rendered CV pages to PDF with a headless browser.
package export

import (
	"errors"
	"fmt"
)

// ErrExportInProgress is returned when an export is requested while
// another one is still running.
var ErrExportInProgress = errors.New("an export is already in progress")

// ExportError represents a failed PDF export
type ExportError struct {
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export failed: %s", e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
