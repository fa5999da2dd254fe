package generate

import (
	"context"
	"strings"
	"time"

	"github.com/jonathan/cv-builder/internal/editor"
	"github.com/jonathan/cv-builder/internal/llm"
	"github.com/jonathan/cv-builder/internal/prompts"
	"go.uber.org/zap"
)

const promptFile = "generation.json"

// Prompt keys in generation.json
const (
	promptSummary = "professional_summary"
	promptEnhance = "enhance_experience"
)

var _ editor.TextGenerator = (*Service)(nil)

// Service turns CV fields into model prompts and returns cleaned answers.
// A Service without a client reports ErrMissingAPIKey on every call.
type Service struct {
	client llm.Client
	tier   llm.ModelTier
	logger *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithTier selects the model tier used for requests.
func WithTier(tier llm.ModelTier) Option {
	return func(s *Service) { s.tier = tier }
}

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New wraps an existing client. client may be nil.
func New(client llm.Client, opts ...Option) *Service {
	s := &Service{
		client: client,
		tier:   llm.TierStandard,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromAPIKey creates a Gemini-backed service. An empty key is not an
// error: the service is created and reports ErrMissingAPIKey when used.
func NewFromAPIKey(ctx context.Context, cfg *llm.Config, apiKey string, opts ...Option) (*Service, error) {
	if apiKey == "" {
		s := New(nil, opts...)
		s.logger.Warn("no API key configured, text generation disabled")
		return s, nil
	}
	client, err := llm.NewClient(ctx, cfg, apiKey)
	if err != nil {
		return nil, &UnavailableError{Message: "creating model client", Cause: err}
	}
	return New(client, opts...), nil
}

// Available reports whether a model client is configured.
func (s *Service) Available() bool {
	return s.client != nil
}

// Model returns the model name requests are sent to, or "" when disabled.
func (s *Service) Model() string {
	if s.client == nil {
		return ""
	}
	return s.client.GetModel(s.tier)
}

// Close releases the model client.
func (s *Service) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// ProfessionalSummary writes a short CV summary for jobTitle mentioning
// keySkills.
func (s *Service) ProfessionalSummary(ctx context.Context, jobTitle, keySkills string) (string, error) {
	return s.generate(ctx, promptSummary, map[string]string{
		"JobTitle":  jobTitle,
		"KeySkills": keySkills,
	})
}

// EnhanceDescription rewrites an experience description for role as
// action-oriented bullet points.
func (s *Service) EnhanceDescription(ctx context.Context, text, role string) (string, error) {
	return s.generate(ctx, promptEnhance, map[string]string{
		"Text": text,
		"Role": role,
	})
}

// generate issues exactly one model request.
func (s *Service) generate(ctx context.Context, key string, data map[string]string) (string, error) {
	if s.client == nil {
		return "", ErrMissingAPIKey
	}

	prompt, err := prompts.Render(promptFile, key, data)
	if err != nil {
		return "", &UnavailableError{Message: "building prompt", Cause: err}
	}

	start := time.Now()
	text, err := s.client.GenerateContent(ctx, prompt, s.tier)
	if err != nil {
		s.logger.Warn("generation request failed",
			zap.String("prompt", key),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", &UnavailableError{Message: "model request failed", Cause: err}
	}

	text = strings.TrimSpace(llm.CleanText(text))
	if text == "" {
		return "", &UnavailableError{Message: "model returned no text"}
	}

	s.logger.Debug("generation complete",
		zap.String("prompt", key),
		zap.String("model", s.client.GetModel(s.tier)),
		zap.Int("chars", len(text)),
		zap.Duration("elapsed", time.Since(start)))
	return text, nil
}
