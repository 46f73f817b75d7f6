package render

import (
	"fmt"
	"time"

	"github.com/goliatone/go-microsite/internal/logging"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
)

const (
	hiddenBadge   = "hidden"
	hiddenOpacity = 0.5
)

// Options controls a single render pass.
type Options struct {
	Mode Mode
	// OnChange receives every whole-document replacement produced by a block
	// edit. Nil disables editing even in edit mode.
	OnChange func(website.Document)
}

// Renderer composes a document into a Page using the registry.
type Renderer struct {
	registry *Registry
	logger   interfaces.Logger
	now      func() time.Time
}

// RendererOption configures the renderer instance.
type RendererOption func(*Renderer)

// WithLogger overrides the renderer logger.
func WithLogger(logger interfaces.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp meta.updatedAt.
func WithClock(now func() time.Time) RendererOption {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRenderer constructs a renderer over registry. A nil registry renders every
// section as a placeholder.
func NewRenderer(registry *Registry, opts ...RendererOption) *Renderer {
	if registry == nil {
		registry, _ = NewRegistry()
	}
	r := &Renderer{
		registry: registry,
		logger:   logging.NoOp(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry exposes the registry backing the renderer.
func (r *Renderer) Registry() *Registry {
	return r.registry
}

// Render projects doc. Sections are stably sorted by order; hidden sections are
// dropped in preview mode and kept with edit chrome in edit mode. Rendering
// never fails: unknown types and failing blocks become placeholders.
func (r *Renderer) Render(doc website.Document, opts Options) Page {
	mode := opts.Mode
	if mode != ModeEdit {
		mode = ModePreview
	}
	editMode := mode == ModeEdit

	tokens := TokensFor(doc.Styles)
	page := Page{
		Mode:     mode,
		Title:    doc.Meta.Title,
		Tokens:   tokens,
		Spacing:  doc.Styles.Spacing,
		Sections: make([]SectionNode, 0, len(doc.Sections)),
	}

	var emit func(website.Section)
	if editMode && opts.OnChange != nil {
		captured := doc.Clone()
		emit = func(section website.Section) {
			next, err := MergeSection(captured, section, r.now())
			if err != nil {
				r.logger.Warn("render.change.dropped", "document_id", captured.Meta.ID, "section_id", section.ID, "error", err)
				return
			}
			opts.OnChange(next)
		}
	}

	for _, section := range doc.SortedSections() {
		if !section.Visible && !editMode {
			continue
		}
		page.Sections = append(page.Sections, r.renderSection(doc, section, tokens, editMode, emit))
	}

	r.logger.Debug("render.page", "document_id", doc.Meta.ID, "mode", string(mode), "sections", len(page.Sections))
	return page
}

func (r *Renderer) renderSection(doc website.Document, section website.Section, tokens Tokens, editMode bool, emit func(website.Section)) SectionNode {
	editable := editMode && section.Editable
	node := SectionNode{
		ID:       section.ID,
		Type:     section.Type,
		Order:    section.Order,
		Editable: editable,
		Opacity:  1,
		section:  section,
	}
	if editable {
		node.emit = emit
	}
	if editMode && !section.Visible {
		node.Hidden = true
		node.Badge = hiddenBadge
		node.Opacity = hiddenOpacity
		node.Overlay = true
	}

	renderer, known := r.registry.Resolve(section.Type)
	if !known {
		node.Placeholder = true
		r.logger.Warn("render.section.unknown_type", "document_id", doc.Meta.ID, "section_id", section.ID, "type", string(section.Type))
	}

	ctx := BlockContext{
		Section:  section.Clone(),
		Editable: editable,
		Styles:   doc.Styles,
		Tokens:   tokens,
	}
	if editable {
		ctx.OnChange = emit
	}

	content, err := safeRender(renderer, ctx)
	if err != nil {
		r.logger.Error("render.section.failed", "document_id", doc.Meta.ID, "section_id", section.ID, "type", string(section.Type), "error", err)
		node.Placeholder = true
		content = PlaceholderNode(section)
	}
	node.Content = content.
		WithAttr("section-id", section.ID).
		WithAttr("section-type", string(section.Type))
	return node
}

func safeRender(renderer BlockRenderer, ctx BlockContext) (node Node, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("render: block %s panicked: %v", ctx.Section.Type, recovered)
		}
	}()
	return renderer.Render(ctx)
}
