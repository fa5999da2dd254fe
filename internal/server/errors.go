package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/cv-builder/internal/editor"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/generate"
	"github.com/jonathan/cv-builder/internal/rendering"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// validationError converts a validator or decoding error into *ErrValidation.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("failed on '%s'", fe.Tag())}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound    *editor.NotFoundError
		docInvalid  *editor.ValidationError
		reqInvalid  *ErrValidation
		templateErr *rendering.TemplateError
		exportErr   *export.ExportError
	)

	switch {
	case errors.Is(err, editor.ErrSessionNotFound), errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &docInvalid), errors.As(err, &reqInvalid), errors.As(err, &templateErr),
		errors.Is(err, editor.ErrBlankValue), errors.Is(err, editor.ErrNothingToEnhance):
		return http.StatusBadRequest
	case errors.Is(err, editor.ErrGenerationInProgress), errors.Is(err, export.ErrExportInProgress):
		return http.StatusConflict
	case errors.Is(err, generate.ErrUnavailable), errors.Is(err, editor.ErrEmptyResult):
		return http.StatusServiceUnavailable
	case errors.As(err, &exportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
