// Package builder holds the editable document behind the website builder
// and the panels that modify it.
package builder

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-microsite/internal/logging"
	"github.com/goliatone/go-microsite/internal/render"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
)

// Tab names one of the side panels.
type Tab string

const (
	TabSections Tab = "sections"
	TabColors   Tab = "colors"
	TabFonts    Tab = "fonts"
	TabImages   Tab = "images"
)

// Tabs lists the side panels in display order.
func Tabs() []Tab {
	return []Tab{TabSections, TabColors, TabFonts, TabImages}
}

var (
	// ErrUnknownTab is returned by SetTab for names outside Tabs().
	ErrUnknownTab = errors.New("builder: unknown tab")
	// ErrSectionNotFound indicates a panel addressed a missing section.
	ErrSectionNotFound = errors.New("builder: section not found")
)

const previewLabelLayout = "15:04:05"

// ChangeListener observes every accepted replacement.
type ChangeListener func(doc website.Document, revision uint64)

// Shell owns the document being edited. Every accepted replacement bumps the
// revision counter, which doubles as the preview generation.
type Shell struct {
	mu        sync.RWMutex
	doc       website.Document
	revision  uint64
	updatedAt time.Time
	tab       Tab
	mode      render.Mode

	renderer  *render.Renderer
	logger    interfaces.Logger
	now       func() time.Time
	listeners []ChangeListener
}

// Option configures the shell.
type Option func(*Shell)

// WithRenderer sets the composition renderer used by Render.
func WithRenderer(renderer *render.Renderer) Option {
	return func(s *Shell) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithLogger overrides the shell logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Shell) {
		if now != nil {
			s.now = now
		}
	}
}

// WithChangeListener registers a listener for accepted replacements.
func WithChangeListener(listener ChangeListener) Option {
	return func(s *Shell) {
		if listener != nil {
			s.listeners = append(s.listeners, listener)
		}
	}
}

// NewShell starts an editing session over doc in preview mode on the sections
// tab.
func NewShell(doc website.Document, opts ...Option) *Shell {
	s := &Shell{
		doc:    doc.Clone(),
		tab:    TabSections,
		mode:   render.ModePreview,
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = render.NewRenderer(nil, render.WithClock(s.now), render.WithLogger(s.logger))
	}
	s.updatedAt = s.now()
	return s
}

// Document returns a copy of the current document.
func (s *Shell) Document() website.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Revision reports the number of accepted replacements.
func (s *Shell) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// PreviewLabel is the status line shown above the preview.
func (s *Shell) PreviewLabel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return "updated at " + s.updatedAt.Format(previewLabelLayout)
}

// Tab returns the active side panel.
func (s *Shell) Tab() Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tab
}

// SetTab switches the active side panel.
func (s *Shell) SetTab(tab Tab) error {
	normalized := Tab(strings.ToLower(strings.TrimSpace(string(tab))))
	for _, known := range Tabs() {
		if known == normalized {
			s.mu.Lock()
			s.tab = normalized
			s.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownTab, tab)
}

// Mode returns the current render projection.
func (s *Shell) Mode() render.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// ToggleEdit flips between preview and edit. The document is not touched.
func (s *Shell) ToggleEdit() render.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == render.ModeEdit {
		s.mode = render.ModePreview
	} else {
		s.mode = render.ModeEdit
	}
	return s.mode
}

// Replace swaps in a whole new document and returns the new revision.
// Concurrent replacements resolve last writer wins.
func (s *Shell) Replace(doc website.Document) uint64 {
	s.mu.Lock()
	s.doc = doc.Clone()
	revision := s.commitLocked()
	snapshot := s.doc.Clone()
	listeners := append([]ChangeListener(nil), s.listeners...)
	s.mu.Unlock()

	s.notify(listeners, snapshot, revision)
	return revision
}

// Update derives the next document from the current one. A returned error or
// an unchanged flag leaves the shell untouched.
func (s *Shell) Update(fn func(website.Document) (website.Document, bool, error)) (uint64, error) {
	s.mu.Lock()
	next, changed, err := fn(s.doc.Clone())
	if err != nil || !changed {
		revision := s.revision
		s.mu.Unlock()
		return revision, err
	}
	s.doc = next.Clone()
	revision := s.commitLocked()
	snapshot := s.doc.Clone()
	listeners := append([]ChangeListener(nil), s.listeners...)
	s.mu.Unlock()

	s.notify(listeners, snapshot, revision)
	return revision, nil
}

// Render projects the current document. In edit mode block callbacks feed
// straight back into Replace.
func (s *Shell) Render() render.Page {
	s.mu.RLock()
	doc := s.doc.Clone()
	mode := s.mode
	s.mu.RUnlock()

	opts := render.Options{Mode: mode}
	if mode == render.ModeEdit {
		opts.OnChange = func(next website.Document) {
			s.Replace(next)
		}
	}
	return s.renderer.Render(doc, opts)
}

// Sections returns the section list panel.
func (s *Shell) Sections() *SectionListPanel {
	return &SectionListPanel{shell: s}
}

// Colors returns the color panel.
func (s *Shell) Colors() *ColorPanel {
	return &ColorPanel{shell: s}
}

// Fonts returns the font panel.
func (s *Shell) Fonts() *FontPanel {
	return &FontPanel{shell: s}
}

func (s *Shell) commitLocked() uint64 {
	s.revision++
	s.updatedAt = s.now()
	return s.revision
}

func (s *Shell) notify(listeners []ChangeListener, doc website.Document, revision uint64) {
	logging.WithDocumentContext(s.logger, doc.Meta.ID, "", revision).Debug("builder.document.replaced")
	for _, listener := range listeners {
		listener(doc, revision)
	}
}
