// Package server provides the HTTP REST API for editing CV sessions.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/cv-builder/internal/editor"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/generate"
	"github.com/jonathan/cv-builder/internal/server/middleware"
	"github.com/jonathan/cv-builder/internal/server/ratelimit"
	"github.com/jonathan/cv-builder/internal/types"
	"go.uber.org/zap"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 30 * time.Second

// Exporter prints a complete HTML page to PDF.
// *export.PDFExporter satisfies it.
type Exporter interface {
	Export(ctx context.Context, html string) ([]byte, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	logger      *zap.Logger
	sessions    *editor.Manager
	generator   editor.TextGenerator
	exporter    Exporter
	previews    *previewCache
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
	seed        func() types.Document
}

// Config holds server configuration. Nil collaborators get working
// defaults: a fresh session manager, a generator without an API key and
// a headless Chrome exporter.
type Config struct {
	Port             int
	Logger           *zap.Logger
	Sessions         *editor.Manager
	Generator        editor.TextGenerator
	Exporter         Exporter
	PreviewCacheSize int
	// RateLimit configures request limiting; nil disables it.
	RateLimit *ratelimit.Config
	// Seed returns the document a session starts from when the create
	// request has no body. Defaults to types.SampleDocument.
	Seed func() types.Document
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	previews, err := newPreviewCache(cfg.PreviewCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create preview cache: %w", err)
	}

	s := &Server{
		logger:    logger,
		sessions:  cfg.Sessions,
		generator: cfg.Generator,
		exporter:  cfg.Exporter,
		previews:  previews,
		validate:  types.NewValidator(),
		seed:      cfg.Seed,
	}
	if s.sessions == nil {
		s.sessions = editor.NewManager(logger, types.DefaultTemplate)
	}
	if s.generator == nil {
		s.generator = generate.New(nil, generate.WithLogger(logger))
	}
	if s.exporter == nil {
		s.exporter = export.NewPDFExporter(export.Options{Logger: logger})
	}
	if s.seed == nil {
		s.seed = types.SampleDocument
	}

	rateConfig := cfg.RateLimit
	if rateConfig == nil {
		rateConfig = &ratelimit.Config{Enabled: false}
	}
	s.rateLimiter = ratelimit.NewLimiter(rateConfig)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /templates", s.handleListTemplates)
	mux.HandleFunc("GET /themes", s.handleListThemes)

	// Sessions
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions", s.handleListSessions)
	s.handleSession(mux, "GET /sessions/{id}", s.handleGetSession)
	s.handleSession(mux, "DELETE /sessions/{id}", s.handleDeleteSession)

	// Document edits
	s.handleSession(mux, "PUT /sessions/{id}/document", s.handleReplaceDocument)
	s.handleSession(mux, "PUT /sessions/{id}/profile", s.handleSetProfile)
	s.handleSession(mux, "PUT /sessions/{id}/profile/image", s.handleSetImage)
	s.handleSession(mux, "DELETE /sessions/{id}/profile/image", s.handleRemoveImage)
	s.handleSession(mux, "PUT /sessions/{id}/sections/{section}", s.handleSetSection)
	s.handleSession(mux, "POST /sessions/{id}/sections/{section}", s.handleAddEntry)
	s.handleSession(mux, "DELETE /sessions/{id}/sections/{section}/{item_id}", s.handleRemoveEntry)
	s.handleSession(mux, "POST /sessions/{id}/custom/{item_id}/items", s.handleAddCustomItem)
	s.handleSession(mux, "DELETE /sessions/{id}/custom/{item_id}/items/{index}", s.handleRemoveCustomItem)
	s.handleSession(mux, "PUT /sessions/{id}/theme", s.handleSetTheme)
	s.handleSession(mux, "PUT /sessions/{id}/template", s.handleSetTemplate)

	// History
	s.handleSession(mux, "POST /sessions/{id}/undo", s.handleUndo)
	s.handleSession(mux, "POST /sessions/{id}/redo", s.handleRedo)
	s.handleSession(mux, "POST /sessions/{id}/history/clear", s.handleClearHistory)

	// Output
	s.handleSession(mux, "GET /sessions/{id}/preview", s.handlePreview)
	s.handleSession(mux, "POST /sessions/{id}/export", s.handleExport)
	s.handleSession(mux, "POST /sessions/{id}/generate", s.handleGenerate)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export and generation are slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// handleSession registers a handler that receives the session named by
// the {id} wildcard.
func (s *Server) handleSession(mux *http.ServeMux, pattern string, h func(http.ResponseWriter, *http.Request, *editor.Session)) {
	resolve := middleware.SessionMiddleware(s.sessions, s.writeError)
	mux.Handle(pattern, resolve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := middleware.GetSession(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		h(w, r, session)
	})))
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens for requests until ctx is cancelled or the process
// receives SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	<-errCh
	s.Close()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources. It does not stop a running listener.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logs.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("remote", r.RemoteAddr))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("error encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status with HTTPStatus and writes it.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Warn("request failed", zap.Int("status", status), zap.Error(err))
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; forwarding headers are ignored.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.logger.Info("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Int("remaining", info.Remaining))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
