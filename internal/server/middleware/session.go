// Package middleware provides HTTP middleware for resolving editing sessions.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/cv-builder/internal/editor"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// sessionKey is the context key for storing the resolved session.
const sessionKey ContextKey = "session"

// SessionIDParam is the route wildcard holding the session id.
const SessionIDParam = "id"

// SessionResolver looks up an editing session by id.
// editor.Manager satisfies it.
type SessionResolver interface {
	Get(id string) (*editor.Session, error)
}

// ErrorWriter reports a failed lookup to the client.
type ErrorWriter func(w http.ResponseWriter, err error)

// SessionMiddleware creates middleware that resolves the {id} route
// wildcard to a session and adds it to the request context. It must wrap
// a handler registered on a pattern containing {id}.
func SessionMiddleware(sessions SessionResolver, onError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.PathValue(SessionIDParam))
			if id == "" {
				onError(w, editor.ErrSessionNotFound)
				return
			}

			session, err := sessions.Get(id)
			if err != nil {
				onError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession extracts the resolved session from the request context.
func GetSession(r *http.Request) (*editor.Session, error) {
	session, ok := r.Context().Value(sessionKey).(*editor.Session)
	if !ok || session == nil {
		return nil, fmt.Errorf("session not found in request context")
	}
	return session, nil
}

// SessionKey returns the context key for the session (for testing purposes).
func SessionKey() ContextKey {
	return sessionKey
}
