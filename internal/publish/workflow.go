package publish

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-microsite/internal/logging"
	"github.com/goliatone/go-microsite/internal/workflow/simple"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
	"github.com/goliatone/go-slug"
)

// DefaultReservedSlugs are platform paths a wedding site may never claim.
var DefaultReservedSlugs = []string{"www", "api", "mg", "mail", "cdn", "static", "assets", "admin"}

// Workflow drives one website through draft, preview, edit and publish. It
// never modifies the caller's document; publishing works on a copy carrying
// the derived slug.
type Workflow struct {
	mu        sync.Mutex
	engine    interfaces.WorkflowEngine
	endpoint  interfaces.PublishEndpoint
	logger    interfaces.Logger
	reserved  map[string]struct{}
	slugLimit int

	documentID string
	state      interfaces.WorkflowState
	result     *Result
	lastError  string
}

// Option configures the workflow.
type Option func(*Workflow)

// WithEngine overrides the workflow engine executing transitions.
func WithEngine(engine interfaces.WorkflowEngine) Option {
	return func(w *Workflow) {
		if engine != nil {
			w.engine = engine
		}
	}
}

// WithLogger overrides the workflow logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(w *Workflow) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithReservedSlugs replaces the reserved slug list.
func WithReservedSlugs(slugs []string) Option {
	return func(w *Workflow) {
		if slugs == nil {
			return
		}
		w.reserved = reservedSet(slugs)
	}
}

// WithSlugLimit overrides MaxSlugLength.
func WithSlugLimit(limit int) Option {
	return func(w *Workflow) {
		if limit > 0 {
			w.slugLimit = limit
		}
	}
}

// New constructs a workflow in the draft state.
func New(endpoint interfaces.PublishEndpoint, opts ...Option) *Workflow {
	w := &Workflow{
		engine:    simple.New(),
		endpoint:  endpoint,
		logger:    logging.NoOp(),
		reserved:  reservedSet(DefaultReservedSlugs),
		slugLimit: MaxSlugLength,
		state:     simple.StateDraft,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns the current lifecycle state.
func (w *Workflow) State() interfaces.WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Result returns the publish outcome once the site is live.
func (w *Workflow) Result() (Result, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.result == nil {
		return Result{}, false
	}
	return *w.result, true
}

// LastError returns the verbatim message of the last failed publish.
func (w *Workflow) LastError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastError
}

// Load moves a fresh workflow to previewing once a document exists.
func (w *Workflow) Load(ctx context.Context, doc website.Document) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.documentID = doc.Meta.ID
	return w.transition(ctx, simple.TransitionLoad, nil)
}

// ToggleEdit flips between previewing and editing. From error it returns to
// the editable projection.
func (w *Workflow) ToggleEdit(ctx context.Context) (interfaces.WorkflowState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	name := simple.TransitionEdit
	if w.state == simple.StateEditing {
		name = simple.TransitionPreview
	}
	if err := w.transition(ctx, name, nil); err != nil {
		return w.state, err
	}
	return w.state, nil
}

// Available lists the transitions allowed from the current state.
func (w *Workflow) Available(ctx context.Context) ([]string, error) {
	w.mu.Lock()
	state := w.state
	w.mu.Unlock()
	transitions, err := w.engine.AvailableTransitions(ctx, interfaces.TransitionQuery{
		EntityType: simple.EntityTypeWebsite,
		State:      state,
	})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(transitions))
	for _, transition := range transitions {
		names = append(names, transition.Name)
	}
	return names, nil
}

// Prepare validates doc and returns the copy that would be sent to the
// endpoint, with meta.slug set to the derived slug.
func (w *Workflow) Prepare(doc website.Document) (website.Document, error) {
	if err := website.Validate(doc).Err(); err != nil {
		return doc, wrapValidation(err)
	}
	derived := SlugifyN(doc.Meta.Title, w.slugLimit)
	if derived == "" {
		if normalized, err := slug.Normalize(doc.Meta.Slug); err == nil && slug.IsValid(normalized) {
			derived = SlugifyN(normalized, w.slugLimit)
		}
	}
	if derived == "" {
		return doc, wrapValidation(fmt.Errorf("%w: title %q", ErrEmptySlug, doc.Meta.Title))
	}
	if _, reserved := w.reserved[derived]; reserved {
		return doc, wrapValidation(fmt.Errorf("%w: %s", ErrReservedSlug, derived))
	}
	next := doc.Clone()
	next.Meta.Slug = derived
	return next, nil
}

// Publish validates doc, derives its slug and calls the endpoint. Validation
// failures leave the state untouched. Endpoint failures move to error, keep
// the message verbatim and allow a retry. The lock is not held while the
// endpoint runs, so State reports publishing and a second Publish is rejected
// with ErrPublishInFlight until the first one settles.
func (w *Workflow) Publish(ctx context.Context, ownerID, weddingID string, doc website.Document) (Result, error) {
	prepared, meta, err := w.begin(ctx, ownerID, weddingID, doc)
	if err != nil {
		return Result{}, err
	}

	logger := logging.WithFields(w.logger, map[string]any{
		"document_id": prepared.Meta.ID,
		"slug":        prepared.Meta.Slug,
	})
	logger.Info("publish.started")

	response, err := w.endpoint.Publish(ctx, ownerID, weddingID, prepared)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.lastError = err.Error()
		if terr := w.transition(ctx, simple.TransitionFail, meta); terr != nil {
			logger.Error("publish.transition_failed", "error", terr)
		}
		logger.Error("publish.failed", "error", err)
		return Result{}, wrapPublishFailure(err)
	}

	if err := w.transition(ctx, simple.TransitionSucceed, meta); err != nil {
		return Result{}, err
	}
	result := Result{
		Slug:  strings.TrimSpace(response.Slug),
		URL:   strings.TrimSpace(response.URL),
		Title: prepared.Meta.Title,
	}
	if result.Slug == "" {
		result.Slug = prepared.Meta.Slug
	}
	w.result = &result
	w.lastError = ""
	logger.Info("publish.succeeded", "url", result.URL)
	return result, nil
}

// begin checks the lifecycle, prepares the document and fires the publish
// transition under the lock.
func (w *Workflow) begin(ctx context.Context, ownerID, weddingID string, doc website.Document) (website.Document, map[string]any, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.endpoint == nil:
		return doc, nil, ErrEndpointMissing
	case w.state == simple.StatePublishing:
		return doc, nil, wrapConflict(ErrPublishInFlight)
	case w.state == simple.StatePublished:
		return doc, nil, ErrAlreadyPublished
	case w.state == simple.StateDraft:
		return doc, nil, ErrNoDocument
	}

	prepared, err := w.Prepare(doc)
	if err != nil {
		w.logger.Warn("publish.validation_failed", "document_id", doc.Meta.ID, "error", err)
		return doc, nil, err
	}
	w.documentID = prepared.Meta.ID

	meta := map[string]any{"slug": prepared.Meta.Slug, "owner_id": ownerID, "wedding_id": weddingID}
	if err := w.transition(ctx, simple.TransitionPublish, meta); err != nil {
		return doc, nil, err
	}
	return prepared, meta, nil
}

func (w *Workflow) transition(ctx context.Context, name string, meta map[string]any) error {
	entityID := w.documentID
	if entityID == "" {
		entityID = simple.EntityTypeWebsite
	}
	res, err := w.engine.Transition(ctx, interfaces.TransitionInput{
		EntityID:     entityID,
		EntityType:   simple.EntityTypeWebsite,
		CurrentState: w.state,
		Transition:   name,
		Metadata:     meta,
	})
	if err != nil {
		return err
	}
	w.logger.Debug("publish.transition", "document_id", entityID, "transition", name, "from", string(res.FromState), "to", string(res.ToState))
	w.state = res.ToState
	return nil
}

func reservedSet(slugs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(slugs))
	for _, value := range slugs {
		if trimmed := strings.ToLower(strings.TrimSpace(value)); trimmed != "" {
			set[trimmed] = struct{}{}
		}
	}
	return set
}
