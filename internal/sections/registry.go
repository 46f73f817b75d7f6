package sections

import (
	"github.com/goliatone/go-microsite/internal/render"
	"github.com/goliatone/go-microsite/pkg/interfaces"
)

// Option configures the built-in blocks.
type Option func(*options)

type options struct {
	markdown interfaces.MarkdownParser
}

// WithMarkdown renders rich-text fields through parser. Without it those
// fields are shown as plain paragraphs.
func WithMarkdown(parser interfaces.MarkdownParser) Option {
	return func(o *options) {
		o.markdown = parser
	}
}

// Builtin returns one renderer per shipped section type.
func Builtin(opts ...Option) []render.BlockRenderer {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return []render.BlockRenderer{
		Hero{},
		Story{markdown: cfg.markdown},
		EventInfo{markdown: cfg.markdown},
		Gallery{},
		RSVP{},
		Map{},
		Timeline{markdown: cfg.markdown},
		GiftList{},
	}
}

// NewRegistry returns a registry holding every built-in block.
func NewRegistry(opts ...Option) (*render.Registry, error) {
	return render.NewRegistry(Builtin(opts...)...)
}
