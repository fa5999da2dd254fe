// Package rendering turns a CV document into HTML, plain text or LaTeX.
package rendering

import "fmt"

// TemplateError represents an error parsing or executing a layout template
type TemplateError struct {
	Template string
	Message  string
	Cause    error
}

func (e *TemplateError) Error() string {
	name := ""
	if e.Template != "" {
		name = " " + e.Template
	}
	if e.Cause != nil {
		return fmt.Sprintf("template error%s: %s: %v", name, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error%s: %s", name, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a general rendering failure
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
