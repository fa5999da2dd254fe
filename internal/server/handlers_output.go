package server

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/jonathan/cv-builder/internal/editor"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
	"go.uber.org/zap"
)

// templateParam returns the layout named by the ?template= query
// parameter, or fallback when it is absent.
func templateParam(r *http.Request, fallback types.TemplateID) (types.TemplateID, error) {
	raw := r.URL.Query().Get("template")
	if raw == "" {
		return fallback, nil
	}
	id, err := types.ParseTemplateID(raw)
	if err != nil {
		return "", &ErrValidation{Field: "template", Message: err.Error()}
	}
	return id, nil
}

// handlePreview renders the current document with the session layout, or
// the layout given in the query, as html, text or latex.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request, session *editor.Session) {
	doc, state := session.View()

	id, err := templateParam(r, state.Template)
	if err != nil {
		s.writeError(w, err)
		return
	}
	format, err := rendering.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "format", Message: err.Error()})
		return
	}

	out, hit, err := s.previews.render(doc, id, format)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if hit {
		w.Header().Set("X-Preview-Cache", "hit")
	} else {
		w.Header().Set("X-Preview-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

// handleExport prints the document to an A4 PDF attachment named after
// the profile's full name.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, session *editor.Session) {
	doc, state := session.View()

	id, err := templateParam(r, state.Template)
	if err != nil {
		s.writeError(w, err)
		return
	}
	page, err := rendering.Render(doc, id, rendering.Options{ExportMode: true})
	if err != nil {
		s.writeError(w, err)
		return
	}

	pdf, err := s.exporter.Export(r.Context(), page)
	if err != nil {
		s.writeError(w, err)
		return
	}

	filename := export.Filename(doc.Profile.FullName)
	s.logger.Info("export served",
		zap.String("session", session.ID()),
		zap.String("template", string(id)),
		zap.Int("bytes", len(pdf)))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// handleGenerate drafts the summary or rewrites one experience
// description. The document changes only when generation succeeds.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request, session *editor.Session) {
	var req types.GenerateRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	var (
		text string
		res  editor.Result
		err  error
	)
	switch req.Action {
	case types.ActionSummarize:
		text, res, err = session.GenerateSummary(r.Context(), s.generator)
	case types.ActionEnhanceExperience:
		text, res, err = session.EnhanceExperience(r.Context(), s.generator, req.ExperienceID)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerateResponse{
		SessionResponse: resultResponse(res),
		Text:            text,
	})
}
