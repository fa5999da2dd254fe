package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/jonathan/cv-builder/internal/editor"
	"github.com/jonathan/cv-builder/internal/types"
)

// handleListTemplates returns the available layouts.
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": types.Templates(),
		"default":   types.DefaultTemplate,
	})
}

// handleListThemes returns the preset colour palette.
func (s *Server) handleListThemes(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"themes":  types.ThemeColors(),
		"default": types.DefaultThemeColor,
	})
}

// handleCreateSession starts a session from the request document, or from
// the seed document when the body is empty.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, err)
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.writeError(w, validationError(err))
		return
	}

	doc := s.seed()
	if req.Document != nil {
		doc = *req.Document
	}

	session, err := s.sessions.Create(doc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp := sessionResponse(session)
	if req.Template != "" {
		resp = resultResponse(session.SetTemplate(types.TemplateID(req.Template)))
	}

	s.jsonResponse(w, http.StatusCreated, resp)
}

// handleListSessions returns the ids of live sessions.
func (s *Server) handleListSessions(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"sessions": s.sessions.List()})
}

func (s *Server) handleGetSession(w http.ResponseWriter, _ *http.Request, session *editor.Session) {
	s.jsonResponse(w, http.StatusOK, sessionResponse(session))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, _ *http.Request, session *editor.Session) {
	if err := s.sessions.Delete(session.ID()); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondEdit applies edit and writes the document and state it produced,
// or the edit's error.
func (s *Server) respondEdit(w http.ResponseWriter, session *editor.Session, edit editor.Edit) {
	res, err := session.Apply(edit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resultResponse(res))
}

func (s *Server) handleReplaceDocument(w http.ResponseWriter, r *http.Request, session *editor.Session) {
	// The editor validates the normalized document, so blank optional
	// fields such as themeColor are accepted here.
	var doc types.Document
	if err := requireJSON(w, r, &doc); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondEdit(w, session, editor.ReplaceDocument(doc))
}

func (s *Server) handleSetProfile(w http.ResponseWriter, r *http.Request, session *editor.Session) {
	var profile types.Profile
	if err := s.decodeRequest(w, r, &profile); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondEdit(w, session, editor.SetProfile(profile))
}

func (s *Server) handleSetImage(w http.ResponseWriter, r *http.Request, session *editor.Session) {
	var req ImageRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondEdit(w, session, editor.SetProfileImage(req.Image))
}

func (s *Server) handleRemoveImage(w http.ResponseWriter, _ *http.Request, session *editor.Session) {
	s.respondEdit(w, session, editor.RemoveProfileImage())
}

// handleSetSection replaces a whole section array.
func (s *Server) handleSetSection(w http.ResponseWriter, r *http.Request, session *editor.Session) {
	section, err := editor.ParseSection(r.PathValue("section"))
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "section", Message: err.Error()})
		return
	}

	var edit editor.Edit
	switch section {
	case editor.SectionExperience:
		edit, err = setSection(w, r, editor.SetExperience)
	case editor.SectionEducation:
		edit, err = setSection(w, r, editor.SetEducation)
	case editor.SectionSkills:
		edit, err = setSection(w, r, editor.SetSkills)
	case editor.SectionLanguages:
		edit, err = setSection(w, r, editor.SetLanguages)
	case editor.SectionCustom:
		edit, err = setSection(w, r, editor.SetCustom)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respondEdit(w, session, edit)
}

// setSection decodes a JSON array body into the edit built by set.
func setSection[T any](w http.ResponseWriter, r *http.Request, set func([]T) editor.Edit) (editor.Edit, error) {
	var items []T
	if err := requireJSON(w, r, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return set(items), nil
}

// handleAddEntry appends a blank entry, or a named skill.
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request, session *editor.Session) {
	section, err := editor.ParseSection(r.PathValue("section"))
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "section", Message: err.Error()})
		return
	}

	var (
		edit editor.Edit
		id   string
	)
	if section == editor.SectionSkills {
		var req AddEntryRequest
		if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
			s.writeError(w, err)
			return
		}
		edit, id = editor.AddSkill(req.Name)
	} else {
		edit, id = editor.AddEntry(section)
	}
	res, err := session.Apply(edit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, MutationResponse{
		SessionResponse: resultResponse(res),
		ItemID:          id,
	})
}

func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request, session *editor.Session) {
	section, err := editor.ParseSection(r.PathValue("section"))
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "section", Message: err.Error()})
		return
	}
	s.respondEdit(w, session, editor.RemoveEntry(section, r.PathValue("item_id")))
}

func (s *Server) handleAddCustomItem(w http.ResponseWriter, r *http.Request, session *editor.Session) {
	var req CustomItemRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondEdit(w, session, editor.AddCustomItem(r.PathValue("item_id"), req.Value))
}

func (s *Server) handleRemoveCustomItem(w http.ResponseWriter, r *http.Request, session *editor.Session) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "index", Message: "must be an integer"})
		return
	}
	s.respondEdit(w, session, editor.RemoveCustomItem(r.PathValue("item_id"), index))
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request, session *editor.Session) {
	var req ThemeRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondEdit(w, session, editor.SetThemeColor(req.Color))
}

// handleSetTemplate selects the layout. It does not create a history entry.
func (s *Server) handleSetTemplate(w http.ResponseWriter, r *http.Request, session *editor.Session) {
	var req TemplateRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	id, err := types.ParseTemplateID(req.Template)
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "template", Message: err.Error()})
		return
	}
	s.jsonResponse(w, http.StatusOK, resultResponse(session.SetTemplate(id)))
}

func (s *Server) handleUndo(w http.ResponseWriter, _ *http.Request, session *editor.Session) {
	s.jsonResponse(w, http.StatusOK, resultResponse(session.Undo()))
}

func (s *Server) handleRedo(w http.ResponseWriter, _ *http.Request, session *editor.Session) {
	s.jsonResponse(w, http.StatusOK, resultResponse(session.Redo()))
}

func (s *Server) handleClearHistory(w http.ResponseWriter, _ *http.Request, session *editor.Session) {
	s.jsonResponse(w, http.StatusOK, resultResponse(session.ClearHistory()))
}
