package render

import (
	"sort"
	"sync"

	"github.com/goliatone/go-microsite/website"
)

// BlockContext is everything a block renderer may read. Section and Styles are
// copies; blocks push edits through Emit rather than mutating them.
type BlockContext struct {
	Section  website.Section
	Editable bool
	Styles   website.Styles
	Tokens   Tokens
	OnChange func(website.Section)
}

// Emit forwards an updated section to the change funnel when the block is
// editable. It is a no-op otherwise.
func (c BlockContext) Emit(section website.Section) {
	if !c.Editable || c.OnChange == nil {
		return
	}
	c.OnChange(section)
}

// BlockRenderer turns one section into a node tree.
type BlockRenderer interface {
	Type() website.SectionType
	Render(ctx BlockContext) (Node, error)
}

// SchemaProvider is implemented by block renderers that publish a JSON schema
// for their section data.
type SchemaProvider interface {
	Schema() map[string]any
}

// BlockFunc adapts a plain function into a BlockRenderer.
type BlockFunc struct {
	Tag website.SectionType
	Fn  func(ctx BlockContext) (Node, error)
}

func (b BlockFunc) Type() website.SectionType { return b.Tag }

func (b BlockFunc) Render(ctx BlockContext) (Node, error) {
	if b.Fn == nil {
		return Node{}, ErrInvalidRenderer
	}
	return b.Fn(ctx)
}

// Registry is the thread-safe lookup from section type to block renderer.
// Resolve never returns nil: unknown types fall back to the placeholder.
type Registry struct {
	mu        sync.RWMutex
	renderers map[website.SectionType]BlockRenderer
	fallback  BlockRenderer
}

// NewRegistry constructs a registry pre-populated with renderers.
func NewRegistry(renderers ...BlockRenderer) (*Registry, error) {
	r := &Registry{
		renderers: make(map[website.SectionType]BlockRenderer),
		fallback:  Placeholder{},
	}
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register stores a renderer if its type is not taken.
func (r *Registry) Register(renderer BlockRenderer) error {
	if renderer == nil {
		return ErrInvalidRenderer
	}
	key := renderer.Type().Normalize()
	if key == "" {
		return ErrInvalidRenderer
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[key]; exists {
		return ErrDuplicateRenderer
	}
	r.renderers[key] = renderer
	return nil
}

// Lookup returns the renderer registered for the type.
func (r *Registry) Lookup(sectionType website.SectionType) (BlockRenderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[sectionType.Normalize()]
	return renderer, ok
}

// Resolve returns the registered renderer or the placeholder.
func (r *Registry) Resolve(sectionType website.SectionType) (BlockRenderer, bool) {
	if renderer, ok := r.Lookup(sectionType); ok {
		return renderer, true
	}
	return r.fallback, false
}

// Schema returns the data schema of a registered type, when published.
func (r *Registry) Schema(sectionType website.SectionType) (map[string]any, bool) {
	renderer, ok := r.Lookup(sectionType)
	if !ok {
		return nil, false
	}
	provider, ok := renderer.(SchemaProvider)
	if !ok {
		return nil, false
	}
	schema := provider.Schema()
	return schema, schema != nil
}

// Types lists the registered types alphabetically.
func (r *Registry) Types() []website.SectionType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]website.SectionType, 0, len(r.renderers))
	for key := range r.renderers {
		types = append(types, key)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i] < types[j]
	})
	return types
}
