package website

import (
	"strings"
	"time"

	"github.com/goliatone/go-microsite/internal/identity"
	"github.com/google/uuid"
)

const (
	DefaultTitle   = "Our Wedding"
	DefaultSlug    = "our-wedding"
	DefaultSpacing = "normal"
)

// DefaultOption customises NewDefault.
type DefaultOption func(*defaultOptions)

type defaultOptions struct {
	id    string
	title string
	slug  string
	now   func() time.Time
}

// WithDocumentID fixes the document id instead of generating one.
func WithDocumentID(id string) DefaultOption {
	return func(o *defaultOptions) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			o.id = trimmed
		}
	}
}

// WithTitle overrides the seed title.
func WithTitle(title string) DefaultOption {
	return func(o *defaultOptions) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			o.title = trimmed
		}
	}
}

// WithSlug overrides the seed slug.
func WithSlug(slug string) DefaultOption {
	return func(o *defaultOptions) {
		if trimmed := strings.TrimSpace(slug); trimmed != "" {
			o.slug = trimmed
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) DefaultOption {
	return func(o *defaultOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewDefault returns the static two-section template (hero, story) styled with
// the romantic preset. It is the fallback whenever content generation fails.
func NewDefault(opts ...DefaultOption) Document {
	cfg := defaultOptions{
		title: DefaultTitle,
		slug:  DefaultSlug,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.id == "" {
		cfg.id = "web_" + uuid.NewString()
	}
	now := cfg.now().UTC()
	preset, _ := Preset(DefaultThemeName)

	return Document{
		Meta: Meta{
			ID:        cfg.id,
			Title:     cfg.title,
			Slug:      cfg.slug,
			Theme:     preset.Name,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Sections: []Section{
			{
				ID:       identity.SectionID(cfg.id, string(SectionHero), 1),
				Type:     SectionHero,
				Order:    1,
				Visible:  true,
				Editable: true,
				Data: map[string]any{
					"title":           cfg.title,
					"subtitle":        "We're getting married",
					"date":            "",
					"backgroundImage": "",
					"showCountdown":   true,
				},
				Style: map[string]any{},
			},
			{
				ID:       identity.SectionID(cfg.id, string(SectionStory), 2),
				Type:     SectionStory,
				Order:    2,
				Visible:  true,
				Editable: true,
				Data: map[string]any{
					"title": "Our Story",
					"body":  "Tell your guests how it all began.",
					"image": "",
				},
				Style: map[string]any{},
			},
		},
		Styles: Styles{
			Theme:   preset.Name,
			Colors:  preset.Colors,
			Fonts:   preset.Fonts,
			Spacing: DefaultSpacing,
		},
	}
}
