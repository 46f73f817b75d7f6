package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-microsite/pkg/interfaces"
)

var extensionsByName = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

var extensionAliases = map[string]string{
	"tables":   "table",
	"autolink": "linkify",
}

// DefaultExtensions is used when the options name none.
var DefaultExtensions = []string{"gfm", "typographer"}

// GoldmarkParser renders rich text with a goldmark engine built once at
// construction. It is safe for concurrent use.
type GoldmarkParser struct {
	engine   goldmark.Markdown
	sanitize bool
	policy   *bluemonday.Policy
}

// ParserOption customises the parser.
type ParserOption func(*GoldmarkParser)

// WithPolicy replaces the default UGC policy used when sanitising.
func WithPolicy(policy *bluemonday.Policy) ParserOption {
	return func(p *GoldmarkParser) {
		if policy != nil {
			p.policy = policy
		}
	}
}

// NewGoldmarkParser builds the parser. Unknown extension names are
// reported rather than skipped.
func NewGoldmarkParser(options interfaces.MarkdownOptions, opts ...ParserOption) (*GoldmarkParser, error) {
	extenders, err := resolveExtensions(options.Extensions)
	if err != nil {
		return nil, err
	}

	renderOpts := []renderer.Option{}
	if options.HardWraps {
		renderOpts = append(renderOpts, html.WithHardWraps())
	}
	if !options.SafeMode {
		renderOpts = append(renderOpts, html.WithUnsafe())
	}

	p := &GoldmarkParser{
		engine: goldmark.New(
			goldmark.WithExtensions(extenders...),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(renderOpts...),
		),
		sanitize: options.Sanitize,
		policy:   bluemonday.UGCPolicy(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Render converts text to HTML. Blank text renders as an empty string.
func (p *GoldmarkParser) Render(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := p.engine.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("markdown: render: %w", err)
	}
	out := buf.Bytes()
	if p.sanitize {
		out = p.policy.SanitizeBytes(out)
	}
	return strings.TrimSpace(string(out)), nil
}

func resolveExtensions(names []string) ([]goldmark.Extender, error) {
	if len(names) == 0 {
		names = DefaultExtensions
	}
	seen := make(map[string]bool, len(names))
	extenders := make([]goldmark.Extender, 0, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if alias, ok := extensionAliases[name]; ok {
			name = alias
		}
		if name == "" || seen[name] {
			continue
		}
		ext, ok := extensionsByName[name]
		if !ok {
			return nil, fmt.Errorf("markdown: unknown extension %q", raw)
		}
		seen[name] = true
		extenders = append(extenders, ext)
	}
	return extenders, nil
}
