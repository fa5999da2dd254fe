package editor

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonathan/cv-builder/internal/history"
	"github.com/jonathan/cv-builder/internal/types"
	"go.uber.org/zap"
)

// Session is one editing session: a document, its undo/redo history and
// the selected layout. All mutation goes through Apply, which serializes
// callers, snapshots a deep copy and pushes it onto the history.
type Session struct {
	id        string
	createdAt time.Time
	logger    *zap.Logger

	mu       sync.Mutex
	history  *history.Store[types.Document]
	template types.TemplateID

	generating atomic.Bool
}

// State summarizes a session for API responses.
type State struct {
	ID        string           `json:"id"`
	Template  types.TemplateID `json:"template"`
	CanUndo   bool             `json:"can_undo"`
	CanRedo   bool             `json:"can_redo"`
	UndoDepth int              `json:"undo_depth"`
	RedoDepth int              `json:"redo_depth"`
	CreatedAt time.Time        `json:"created_at"`
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTemplate sets the initially selected layout.
func WithTemplate(id types.TemplateID) Option {
	return func(s *Session) {
		s.template = id
	}
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// NewSession starts a session whose current document is a copy of initial.
func NewSession(initial types.Document, opts ...Option) *Session {
	doc := initial.Clone()
	doc.Normalize()

	s := &Session{
		id:        types.NewID(),
		createdAt: time.Now().UTC(),
		logger:    zap.NewNop(),
		history:   history.New(doc),
		template:  types.DefaultTemplate,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session", s.id))
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Document returns a copy of the current document.
func (s *Session) Document() types.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Current().Clone()
}

// State returns the history flags and selected layout.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// View returns the document and state observed under a single lock.
func (s *Session) View() (types.Document, State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Current().Clone(), s.stateLocked()
}

func (s *Session) stateLocked() State {
	return State{
		ID:        s.id,
		Template:  s.template,
		CanUndo:   s.history.CanUndo(),
		CanRedo:   s.history.CanRedo(),
		UndoDepth: s.history.UndoDepth(),
		RedoDepth: s.history.RedoDepth(),
		CreatedAt: s.createdAt,
	}
}

// Edit is a change to a working copy of the document. Returning an error
// discards the change.
type Edit func(*types.Document) error

// Result is the document and state right after an operation, read under
// the same lock that applied it.
type Result struct {
	Document types.Document
	State    State
}

func (s *Session) resultLocked() Result {
	return Result{Document: s.history.Current().Clone(), State: s.stateLocked()}
}

// Apply runs edit on a copy of the current document and records the result
// as a new history entry. The stored snapshot is deep-copied after edit
// returns, so values edit assigned from the caller stay independent of
// history. If edit fails or the result is invalid the history is left
// untouched.
func (s *Session) Apply(edit Edit) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.history.Current().Clone()
	if err := edit(&next); err != nil {
		return Result{}, err
	}
	next.Normalize()
	if err := next.Validate(); err != nil {
		return Result{}, &ValidationError{Message: "document rejected", Cause: err}
	}

	s.history.Set(next.Clone())
	s.logger.Debug("document updated", zap.Int("undo_depth", s.history.UndoDepth()))
	return s.resultLocked(), nil
}

// Update is Apply without the result.
func (s *Session) Update(fn func(*types.Document) error) error {
	_, err := s.Apply(fn)
	return err
}

// Replace swaps in a whole new document.
func (s *Session) Replace(doc types.Document) error {
	return s.Update(ReplaceDocument(doc))
}

// ReplaceDocument swaps in doc.
func ReplaceDocument(doc types.Document) Edit {
	return func(d *types.Document) error {
		*d = doc
		return nil
	}
}

// Undo steps the document back one edit. It is a no-op at the oldest edit.
func (s *Session) Undo() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Undo()
	return s.resultLocked()
}

// Redo re-applies the most recently undone edit, if any.
func (s *Session) Redo() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Redo()
	return s.resultLocked()
}

// ClearHistory forgets all undo and redo entries, keeping the document.
func (s *Session) ClearHistory() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.ClearHistory()
	s.logger.Debug("history cleared")
	return s.resultLocked()
}

// Template returns the selected layout.
func (s *Session) Template() types.TemplateID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.template
}

// SetTemplate selects a layout. Layout choice is view state and is not
// recorded in history.
func (s *Session) SetTemplate(id types.TemplateID) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.template = id
	return s.resultLocked()
}
