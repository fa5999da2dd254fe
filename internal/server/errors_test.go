package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/cv-builder/internal/editor"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/generate"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "color", Message: "invalid format"}
	assert.Equal(t, "validation error: color - invalid format", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"session not found", editor.ErrSessionNotFound, http.StatusNotFound},
		{"entry not found", &editor.NotFoundError{Section: editor.SectionSkills, ID: "x"}, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("edit: %w", &editor.NotFoundError{}), http.StatusNotFound},
		{"invalid document", &editor.ValidationError{Message: "bad"}, http.StatusBadRequest},
		{"blank value", editor.ErrBlankValue, http.StatusBadRequest},
		{"nothing to enhance", editor.ErrNothingToEnhance, http.StatusBadRequest},
		{"unknown template", &rendering.TemplateError{Template: "x", Message: "unknown"}, http.StatusBadRequest},
		{"generation busy", editor.ErrGenerationInProgress, http.StatusConflict},
		{"export busy", export.ErrExportInProgress, http.StatusConflict},
		{"missing key", generate.ErrMissingAPIKey, http.StatusServiceUnavailable},
		{"remote failure", &generate.UnavailableError{Message: "boom"}, http.StatusServiceUnavailable},
		{"empty result", editor.ErrEmptyResult, http.StatusServiceUnavailable},
		{"export failure", &export.ExportError{Message: "chrome crashed"}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
