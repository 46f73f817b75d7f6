package microsite

import (
	"context"
	"net/http"

	"github.com/goliatone/go-microsite/internal/builder"
	websitecmd "github.com/goliatone/go-microsite/internal/commands/website"
	"github.com/goliatone/go-microsite/internal/di"
	"github.com/goliatone/go-microsite/internal/publish"
	"github.com/goliatone/go-microsite/internal/render"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
)

// Document exports the website document.
type Document = website.Document

// Profile exports the wedding profile used for generation.
type Profile = interfaces.Profile

// Page exports the rendered projection.
type Page = render.Page

// Mode exports the render mode.
type Mode = render.Mode

// Shell exports the builder session.
type Shell = builder.Shell

// ImagePanel exports the builder image panel.
type ImagePanel = builder.ImagePanel

// PublishWorkflow exports the publish lifecycle.
type PublishWorkflow = publish.Workflow

// PublishResult exports the outcome of a successful publish.
type PublishResult = publish.Result

const (
	ModePreview = render.ModePreview
	ModeEdit    = render.ModeEdit
)

// Module represents the top level website builder façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Generate creates the draft for a wedding from its profile. An existing
// draft is kept unless overwrite is set.
func (m *Module) Generate(ctx context.Context, ownerID, weddingID string, profile Profile, overwrite bool) (Document, error) {
	msg := websitecmd.GenerateWebsiteCommand{OwnerID: ownerID, WeddingID: weddingID, Profile: profile, Overwrite: overwrite}
	if err := m.container.Commands().Generate.Execute(ctx, msg); err != nil {
		return Document{}, err
	}
	return m.Load(ctx, ownerID, weddingID)
}

// Load returns the stored draft.
func (m *Module) Load(ctx context.Context, ownerID, weddingID string) (Document, error) {
	return m.container.DocumentStore().Load(ctx, ownerID, weddingID)
}

// Save validates and stores a draft.
func (m *Module) Save(ctx context.Context, ownerID, weddingID string, doc Document) error {
	msg := websitecmd.SaveWebsiteCommand{OwnerID: ownerID, WeddingID: weddingID, Document: doc}
	return m.container.Commands().Save.Execute(ctx, msg)
}

// Render projects doc in the requested mode.
func (m *Module) Render(doc Document, mode Mode) Page {
	return m.container.Renderer().Render(doc, render.Options{Mode: mode})
}

// OpenBuilder starts an editing session over doc.
func (m *Module) OpenBuilder(doc Document, opts ...builder.Option) *Shell {
	return m.container.NewShell(doc, opts...)
}

// Images returns the image panel for a builder session.
func (m *Module) Images(shell *Shell, opts ...builder.ImageOption) *ImagePanel {
	return m.container.NewImagePanel(shell, opts...)
}

// PublishWorkflow returns a fresh lifecycle for one website.
func (m *Module) PublishWorkflow() *PublishWorkflow {
	return m.container.NewPublishWorkflow()
}

// Publish publishes the stored draft in one step.
func (m *Module) Publish(ctx context.Context, ownerID, weddingID string) (PublishResult, error) {
	handler := m.container.Commands().Publish
	msg := websitecmd.PublishWebsiteCommand{OwnerID: ownerID, WeddingID: weddingID}
	if err := handler.Execute(ctx, msg); err != nil {
		return PublishResult{}, err
	}
	result, _ := handler.Result(ownerID, weddingID)
	return result, nil
}

// RegisterRoutes mounts the JSON API on mux.
func (m *Module) RegisterRoutes(mux *http.ServeMux) error {
	return m.container.API().Register(mux)
}

// Close releases resources held by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
