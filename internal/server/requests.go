package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/cv-builder/internal/editor"
	"github.com/jonathan/cv-builder/internal/types"
)

// maxBodyBytes bounds request bodies; profile photos arrive as data URLs.
const maxBodyBytes = 8 << 20

// CreateSessionRequest is the optional body of POST /sessions.
type CreateSessionRequest struct {
	Document *types.Document `json:"document,omitempty"`
	Template string          `json:"template,omitempty" validate:"omitempty,oneof=modern sidebar classic"`
}

// AddEntryRequest is the body of POST /sessions/{id}/sections/{section}.
// Only skills use it.
type AddEntryRequest struct {
	Name string `json:"name"`
}

// CustomItemRequest is the body of POST /sessions/{id}/custom/{item_id}/items.
type CustomItemRequest struct {
	Value string `json:"value"`
}

// ImageRequest is the body of PUT /sessions/{id}/profile/image.
type ImageRequest struct {
	Image string `json:"image" validate:"required"`
}

// ThemeRequest is the body of PUT /sessions/{id}/theme.
type ThemeRequest struct {
	Color string `json:"color" validate:"required,themecolor"`
}

// TemplateRequest is the body of PUT /sessions/{id}/template.
type TemplateRequest struct {
	Template string `json:"template" validate:"required,oneof=modern sidebar classic"`
}

// SessionResponse carries a session's document and history state.
type SessionResponse struct {
	Document types.Document `json:"document"`
	State    editor.State   `json:"state"`
}

// MutationResponse is returned by edits that create an entry.
type MutationResponse struct {
	SessionResponse
	ItemID string `json:"item_id,omitempty"`
}

// GenerateResponse is returned by POST /sessions/{id}/generate.
type GenerateResponse struct {
	SessionResponse
	Text string `json:"text"`
}

// decodeJSON reads a JSON body into v. An empty body is reported as
// io.EOF so optional bodies can be detected.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// requireJSON decodes a JSON body that must be present.
func requireJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if err := decodeJSON(w, r, v); err != nil {
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Field: "body", Message: "request body is required"}
		}
		return err
	}
	return nil
}

// decodeRequest decodes a required JSON body and validates it.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, v any) error {
	if err := requireJSON(w, r, v); err != nil {
		return err
	}
	if err := s.validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

func sessionResponse(session *editor.Session) SessionResponse {
	doc, state := session.View()
	return SessionResponse{Document: doc, State: state}
}

// resultResponse builds the response from the view an operation returned.
func resultResponse(res editor.Result) SessionResponse {
	return SessionResponse{Document: res.Document, State: res.State}
}
