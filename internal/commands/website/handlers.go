package websitecmd

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/goliatone/go-microsite/internal/commands"
	"github.com/goliatone/go-microsite/internal/documents"
	"github.com/goliatone/go-microsite/internal/generator"
	"github.com/goliatone/go-microsite/internal/logging"
	"github.com/goliatone/go-microsite/internal/publish"
	"github.com/goliatone/go-microsite/internal/validation"
	"github.com/goliatone/go-microsite/internal/workflow/simple"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	generateOperation = "website.generate"
	saveOperation     = "website.save"
	publishOperation  = "website.publish"
)

var (
	// ErrStoreMissing is returned when a handler needs persistence that was not wired.
	ErrStoreMissing = errors.New("website command: document store not configured")
	// ErrPublishingDisabled is returned when publishing was not wired.
	ErrPublishingDisabled = errors.New("website command: publishing not configured")
)

var (
	_ command.Commander[GenerateWebsiteCommand] = (*GenerateWebsiteHandler)(nil)
	_ command.Commander[SaveWebsiteCommand]     = (*SaveWebsiteHandler)(nil)
	_ command.Commander[PublishWebsiteCommand]  = (*PublishWebsiteHandler)(nil)
)

func keyFields(ownerID, weddingID string) map[string]any {
	return map[string]any{
		"owner_id":   ownerID,
		"wedding_id": weddingID,
	}
}

// GenerateWebsiteHandler seeds and stores a draft from a profile.
type GenerateWebsiteHandler struct {
	inner *commands.Handler[GenerateWebsiteCommand]
}

// NewGenerateWebsiteHandler wires the generator service to the store.
func NewGenerateWebsiteHandler(service *generator.Service, store interfaces.DocumentStore, logger interfaces.Logger, opts ...commands.HandlerOption[GenerateWebsiteCommand]) *GenerateWebsiteHandler {
	baseLogger := commands.EnsureLogger(logger)
	if service == nil {
		service = generator.NewService(nil)
	}

	exec := func(ctx context.Context, msg GenerateWebsiteCommand) error {
		if store == nil {
			return ErrStoreMissing
		}
		if !msg.Overwrite {
			_, err := store.Load(ctx, msg.OwnerID, msg.WeddingID)
			if err == nil {
				logging.FromContext(baseLogger, ctx).Debug("website.command.generate.kept_existing")
				return nil
			}
			if !errors.Is(err, documents.ErrDocumentNotFound) {
				return err
			}
		}

		result := service.Generate(ctx, msg.Profile)
		if err := store.Save(ctx, msg.OwnerID, msg.WeddingID, result.Document); err != nil {
			return err
		}
		logging.WithFields(logging.FromContext(baseLogger, ctx), map[string]any{
			"document_id": result.Document.Meta.ID,
			"fallback":    result.Fallback,
		}).Info("website.command.generate.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[GenerateWebsiteCommand]{
		commands.WithLogger[GenerateWebsiteCommand](baseLogger),
		commands.WithOperation[GenerateWebsiteCommand](generateOperation),
		commands.WithMessageFields(func(msg GenerateWebsiteCommand) map[string]any {
			return keyFields(msg.OwnerID, msg.WeddingID)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[GenerateWebsiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &GenerateWebsiteHandler{inner: commands.NewHandler[GenerateWebsiteCommand](exec, handlerOpts...)}
}

// Execute satisfies command.Commander[GenerateWebsiteCommand].
func (h *GenerateWebsiteHandler) Execute(ctx context.Context, msg GenerateWebsiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SaveWebsiteHandler persists validated drafts.
type SaveWebsiteHandler struct {
	inner  *commands.Handler[SaveWebsiteCommand]
	logger interfaces.Logger
	checks validation.SchemaLookup
}

// NewSaveWebsiteHandler creates a handler bound to the store.
func NewSaveWebsiteHandler(store interfaces.DocumentStore, logger interfaces.Logger, opts ...commands.HandlerOption[SaveWebsiteCommand]) *SaveWebsiteHandler {
	h := &SaveWebsiteHandler{logger: commands.EnsureLogger(logger)}

	exec := func(ctx context.Context, msg SaveWebsiteCommand) error {
		if store == nil {
			return ErrStoreMissing
		}
		if err := store.Save(ctx, msg.OwnerID, msg.WeddingID, msg.Document); err != nil {
			return err
		}
		h.reportSchemaIssues(ctx, msg)
		return nil
	}

	handlerOpts := []commands.HandlerOption[SaveWebsiteCommand]{
		commands.WithLogger[SaveWebsiteCommand](h.logger),
		commands.WithOperation[SaveWebsiteCommand](saveOperation),
		commands.WithMessageFields(func(msg SaveWebsiteCommand) map[string]any {
			fields := keyFields(msg.OwnerID, msg.WeddingID)
			fields["document_id"] = msg.Document.Meta.ID
			fields["sections"] = len(msg.Document.Sections)
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SaveWebsiteCommand](h.logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	h.inner = commands.NewHandler[SaveWebsiteCommand](exec, handlerOpts...)
	return h
}

// WithSchemaChecks enables advisory payload checks after each save. Issues
// are logged and never fail the save.
func (h *SaveWebsiteHandler) WithSchemaChecks(lookup validation.SchemaLookup) *SaveWebsiteHandler {
	h.checks = lookup
	return h
}

func (h *SaveWebsiteHandler) reportSchemaIssues(ctx context.Context, msg SaveWebsiteCommand) {
	if h.checks == nil {
		return
	}
	logger := logging.FromContext(h.logger, ctx)
	for _, report := range validation.CheckSections(msg.Document, h.checks) {
		logger.Warn("website.command.save.schema_issues",
			"section_id", report.SectionID,
			"section_type", string(report.Type),
			"issues", len(report.Issues),
		)
	}
}

// Execute satisfies command.Commander[SaveWebsiteCommand].
func (h *SaveWebsiteHandler) Execute(ctx context.Context, msg SaveWebsiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// WorkflowFactory returns a fresh publish lifecycle.
type WorkflowFactory func() *publish.Workflow

// PublishWebsiteHandler drives one publish lifecycle per owner/wedding pair.
// A lifecycle that reached published is replaced on the next publish, while
// one in error is kept so the retry continues from it.
type PublishWebsiteHandler struct {
	inner       *commands.Handler[PublishWebsiteCommand]
	newWorkflow WorkflowFactory

	mu        sync.Mutex
	workflows map[string]*publish.Workflow
}

// NewPublishWebsiteHandler binds the workflow factory and, for draft
// publishing, the store.
func NewPublishWebsiteHandler(newWorkflow WorkflowFactory, store interfaces.DocumentStore, logger interfaces.Logger, opts ...commands.HandlerOption[PublishWebsiteCommand]) *PublishWebsiteHandler {
	baseLogger := commands.EnsureLogger(logger)
	h := &PublishWebsiteHandler{
		newWorkflow: newWorkflow,
		workflows:   make(map[string]*publish.Workflow),
	}

	exec := func(ctx context.Context, msg PublishWebsiteCommand) error {
		workflow, err := h.lifecycle(msg.OwnerID, msg.WeddingID)
		if err != nil {
			return err
		}
		doc := msg.Document
		if doc == nil {
			if store == nil {
				return ErrStoreMissing
			}
			loaded, err := store.Load(ctx, msg.OwnerID, msg.WeddingID)
			if err != nil {
				return err
			}
			doc = &loaded
		}
		if workflow.State() == simple.StateDraft {
			if err := workflow.Load(ctx, *doc); err != nil {
				return err
			}
		}
		result, err := workflow.Publish(ctx, msg.OwnerID, msg.WeddingID, *doc)
		if err != nil {
			return err
		}
		logging.FromContext(baseLogger, ctx).Info("website.command.publish.completed", "slug", result.Slug, "url", result.URL)
		return nil
	}

	handlerOpts := []commands.HandlerOption[PublishWebsiteCommand]{
		commands.WithLogger[PublishWebsiteCommand](baseLogger),
		commands.WithOperation[PublishWebsiteCommand](publishOperation),
		commands.WithMessageFields(func(msg PublishWebsiteCommand) map[string]any {
			fields := keyFields(msg.OwnerID, msg.WeddingID)
			fields["from_draft"] = msg.Document == nil
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PublishWebsiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)
	h.inner = commands.NewHandler[PublishWebsiteCommand](exec, handlerOpts...)
	return h
}

func (h *PublishWebsiteHandler) lifecycle(ownerID, weddingID string) (*publish.Workflow, error) {
	if h.newWorkflow == nil {
		return nil, ErrPublishingDisabled
	}
	key := lifecycleKey(ownerID, weddingID)
	h.mu.Lock()
	defer h.mu.Unlock()
	if workflow, ok := h.workflows[key]; ok && workflow.State() != simple.StatePublished {
		return workflow, nil
	}
	workflow := h.newWorkflow()
	if workflow == nil {
		return nil, ErrPublishingDisabled
	}
	h.workflows[key] = workflow
	return workflow, nil
}

func lifecycleKey(ownerID, weddingID string) string {
	return strings.TrimSpace(ownerID) + "/" + strings.TrimSpace(weddingID)
}

// Execute satisfies command.Commander[PublishWebsiteCommand].
func (h *PublishWebsiteHandler) Execute(ctx context.Context, msg PublishWebsiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Workflow returns the current lifecycle of a wedding, if one was started.
func (h *PublishWebsiteHandler) Workflow(ownerID, weddingID string) (*publish.Workflow, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	workflow, ok := h.workflows[lifecycleKey(ownerID, weddingID)]
	return workflow, ok
}

// Result returns the last successful publish of a wedding.
func (h *PublishWebsiteHandler) Result(ownerID, weddingID string) (publish.Result, bool) {
	workflow, ok := h.Workflow(ownerID, weddingID)
	if !ok {
		return publish.Result{}, false
	}
	return workflow.Result()
}
