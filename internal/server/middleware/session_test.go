package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/cv-builder/internal/editor"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStatus(w http.ResponseWriter, err error) {
	if errors.Is(err, editor.ErrSessionNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func newRouter(t *testing.T, resolver SessionResolver) (*http.ServeMux, *bool) {
	t.Helper()
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		session, err := GetSession(r)
		require.NoError(t, err)
		_, _ = w.Write([]byte(session.ID()))
	})

	mux := http.NewServeMux()
	mux.Handle("GET /sessions/{id}", SessionMiddleware(resolver, writeStatus)(handler))
	return mux, &called
}

func TestSessionMiddleware_Resolves(t *testing.T) {
	manager := editor.NewManager(nil, "")
	session, err := manager.Create(types.SampleDocument())
	require.NoError(t, err)

	mux, called := newRouter(t, manager)
	req := httptest.NewRequest(http.MethodGet, "/sessions/"+session.ID(), nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *called)
	assert.Equal(t, session.ID(), w.Body.String())
}

func TestSessionMiddleware_UnknownSession(t *testing.T) {
	mux, called := newRouter(t, editor.NewManager(nil, ""))
	req := httptest.NewRequest(http.MethodGet, "/sessions/missing", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, *called)
}

func TestSessionMiddleware_NoWildcard(t *testing.T) {
	called := false
	handler := SessionMiddleware(editor.NewManager(nil, ""), writeStatus)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, called)
}

func TestGetSession_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetSession(req)
	assert.Error(t, err)
}

func TestGetSession_InvalidType(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), SessionKey(), "not-a-session"))
	_, err := GetSession(req)
	assert.Error(t, err)
}
