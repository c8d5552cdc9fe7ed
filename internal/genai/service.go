// Package genai adapts the text generation backend to the wizard. Every call
// is best effort: failures are logged and replaced by a deterministic
// fallback, never returned to the caller.
package genai

import (
	"context"
	"strings"
	"time"

	"github.com/gabrielmiguelok/sitewizard/internal/locale"
	"github.com/gabrielmiguelok/sitewizard/pkg/logging"
)

// DefaultTimeout bounds a single generation call.
const DefaultTimeout = 20 * time.Second

// Service produces site copy. A Service without a model runs offline.
type Service struct {
	model   Model
	timeout time.Duration
	logger  logging.Logger
	breaker *Breaker
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger used for failures.
func WithLogger(l logging.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBreaker skips the backend while b is open.
func WithBreaker(b *Breaker) Option {
	return func(s *Service) {
		s.breaker = b
	}
}

// NewService creates a service. A nil model yields an offline service.
func NewService(model Model, opts ...Option) *Service {
	s := &Service{
		model:   model,
		timeout: DefaultTimeout,
		logger:  logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Offline reports whether the service has no backend.
func (s *Service) Offline() bool {
	return s.model == nil
}

func (s *Service) generate(ctx context.Context, op string, lang locale.Lang, prompt string, format Format) (string, bool) {
	if s.breaker != nil {
		if err := s.breaker.Allow(); err != nil {
			s.logger.Debug("generation skipped", logging.String("op", op), logging.Err(err))
			return "", false
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.model.Generate(ctx, prompt, format)
	if s.breaker != nil {
		if err != nil {
			s.breaker.RecordError()
		} else {
			s.breaker.RecordSuccess()
		}
	}
	if err != nil {
		s.logger.Warn("generation failed",
			logging.String("op", op),
			logging.String("lang", string(lang)),
			logging.Duration("elapsed", time.Since(start)),
			logging.Err(err),
		)
		return "", false
	}
	return strings.TrimSpace(text), true
}

// GenerateDescription returns a two-sentence mission statement. Offline or
// on failure it returns a template built from name and topic.
func (s *Service) GenerateDescription(ctx context.Context, topic, name string, lang locale.Lang) string {
	fallback := locale.T(lang, "genai.fallbackDescription", name, topic)
	if s.Offline() {
		return fallback
	}
	text, ok := s.generate(ctx, "description", lang, locale.T(lang, "genai.description", name, topic), FormatText)
	if !ok || text == "" {
		return fallback
	}
	return text
}

// GenerateNameSuggestion returns a short brand name for topic.
func (s *Service) GenerateNameSuggestion(ctx context.Context, topic string, lang locale.Lang) string {
	if s.Offline() {
		return locale.T(lang, "genai.fallbackName")
	}
	text, ok := s.generate(ctx, "name", lang, locale.T(lang, "genai.name", topic), FormatText)
	text = strings.Trim(text, `"'`+"`*")
	if !ok || text == "" {
		return locale.T(lang, "genai.untitled")
	}
	return text
}

// PredictTopics returns niche suggestions for query. It returns an empty
// list offline, for an empty query and on any failure.
func (s *Service) PredictTopics(ctx context.Context, query string, lang locale.Lang) []string {
	query = strings.TrimSpace(query)
	if s.Offline() || query == "" {
		return []string{}
	}
	text, ok := s.generate(ctx, "topics", lang, locale.T(lang, "genai.topics", query), FormatJSONList)
	if !ok {
		return []string{}
	}
	topics, err := ParseTopics(text)
	if err != nil {
		s.logger.Warn("malformed topics", logging.String("lang", string(lang)), logging.Err(err))
		return []string{}
	}
	return topics
}

// GenerateTailoredContent returns a content bundle for the site, or nil
// offline, on failure, or when the response fails validation.
func (s *Service) GenerateTailoredContent(ctx context.Context, topic, name string, lang locale.Lang) *TailoredContent {
	if s.Offline() {
		return nil
	}
	text, ok := s.generate(ctx, "tailored", lang, locale.T(lang, "genai.tailored", topic, name), FormatTailored)
	if !ok {
		return nil
	}
	bundle, err := ParseTailored(text)
	if err != nil {
		s.logger.Warn("malformed bundle", logging.String("lang", string(lang)), logging.Err(err))
		return nil
	}
	return bundle
}

// Check reports whether generation calls currently reach the backend. An
// offline service always reports healthy.
func (s *Service) Check(ctx context.Context) error {
	if s.model == nil || s.breaker == nil {
		return nil
	}
	if s.breaker.State() == CircuitOpen {
		return ErrCircuitOpen
	}
	return nil
}
