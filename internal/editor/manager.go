package editor

import (
	"sort"
	"sync"

	"github.com/jonathan/cv-builder/internal/types"
	"go.uber.org/zap"
)

// Manager keeps the editing sessions of a running server in memory.
// Sessions are discarded when deleted or when the process exits.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *zap.Logger
	template types.TemplateID
}

// NewManager creates an empty session registry. New sessions start with
// defaultTemplate selected.
func NewManager(logger *zap.Logger, defaultTemplate types.TemplateID) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultTemplate == "" {
		defaultTemplate = types.DefaultTemplate
	}
	return &Manager{
		sessions: make(map[string]*Session),
		logger:   logger,
		template: defaultTemplate,
	}
}

// Create validates initial and registers a new session for it.
func (m *Manager) Create(initial types.Document) (*Session, error) {
	doc := initial.Clone()
	doc.Normalize()
	if err := doc.Validate(); err != nil {
		return nil, &ValidationError{Message: "initial document rejected", Cause: err}
	}

	s := NewSession(doc, WithLogger(m.logger), WithTemplate(m.template))

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	m.logger.Info("session created", zap.String("session", s.ID()))
	return s, nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete discards a session and its history.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	m.logger.Info("session deleted", zap.String("session", id))
	return nil
}

// List returns the ids of all sessions in sorted order.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
