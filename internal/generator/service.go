package generator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-microsite/internal/logging"
	"github.com/goliatone/go-microsite/internal/publish"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
)

var (
	// ErrGeneratorUnavailable is recorded when no content generator is wired.
	ErrGeneratorUnavailable = errors.New("generator: content generator not configured")
	// ErrGeneratedDocumentInvalid is recorded when the generator output fails validation.
	ErrGeneratedDocumentInvalid = errors.New("generator: generated document invalid")
)

// Result carries the document handed to the builder. Fallback is set when the
// static default replaced the generator output; Cause explains why.
type Result struct {
	Document website.Document
	Fallback bool
	Cause    error
}

// Service wraps an external content generator and guarantees a usable
// document: any failure is recovered by substituting the static default.
type Service struct {
	generator interfaces.ContentGenerator
	logger    interfaces.Logger
	now       func() time.Time
}

// Option configures the service.
type Option func(*Service)

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source for fallback documents.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs the service. A nil generator always falls back.
func NewService(generator interfaces.ContentGenerator, opts ...Option) *Service {
	s := &Service{
		generator: generator,
		logger:    logging.NoOp(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate never fails: onboarding must not be blocked by the generator.
func (s *Service) Generate(ctx context.Context, profile interfaces.Profile) Result {
	if s.generator == nil {
		return s.fallback(profile, ErrGeneratorUnavailable)
	}

	doc, err := s.generator.Generate(ctx, profile)
	if err != nil {
		return s.fallback(profile, err)
	}

	doc = s.complete(doc, profile)
	if err := website.Validate(doc).Err(); err != nil {
		return s.fallback(profile, errors.Join(ErrGeneratedDocumentInvalid, err))
	}

	s.logger.Info("generator.generated", "document_id", doc.Meta.ID, "sections", len(doc.Sections))
	return Result{Document: doc}
}

func (s *Service) fallback(profile interfaces.Profile, cause error) Result {
	s.logger.Warn("generator.fallback", "error", cause)
	return Result{
		Document: DefaultFor(profile, website.WithClock(s.now)),
		Fallback: true,
		Cause:    cause,
	}
}

// complete fills the bookkeeping a generator may leave out.
func (s *Service) complete(doc website.Document, profile interfaces.Profile) website.Document {
	next := doc.Clone()
	if strings.TrimSpace(next.Meta.Title) == "" {
		next.Meta.Title = CoupleTitle(profile)
	}
	if strings.TrimSpace(next.Meta.Slug) == "" {
		next.Meta.Slug = publish.Slugify(next.Meta.Title)
	}
	if next.Styles.Colors == (website.Colors{}) {
		if preset, ok := website.Preset(website.DefaultThemeName); ok {
			next.Styles.Colors = preset.Colors
			next.Styles.Theme = preset.Name
			if next.Meta.Theme == "" {
				next.Meta.Theme = preset.Name
			}
			if next.Styles.Fonts == (website.Fonts{}) {
				next.Styles.Fonts = preset.Fonts
			}
		}
	}
	now := s.now().UTC()
	if next.Meta.CreatedAt.IsZero() {
		next.Meta.CreatedAt = now
	}
	if next.Meta.UpdatedAt.IsZero() {
		next.Meta.UpdatedAt = now
	}
	return next
}
