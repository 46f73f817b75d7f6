package publish

import (
	"context"
	"errors"
	"reflect"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-microsite/internal/workflow/simple"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
)

type stubEndpoint struct {
	calls []website.Document
	errs  []error
}

func (s *stubEndpoint) Publish(_ context.Context, ownerID, weddingID string, doc website.Document) (interfaces.PublishResponse, error) {
	s.calls = append(s.calls, doc)
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return interfaces.PublishResponse{}, err
		}
	}
	return interfaces.PublishResponse{
		Slug: doc.Meta.Slug,
		URL:  "https://" + doc.Meta.Slug + ".bodas.example.com",
	}, nil
}

type recordingClipboard struct {
	texts []string
}

func (c *recordingClipboard) WriteText(_ context.Context, text string) error {
	c.texts = append(c.texts, text)
	return nil
}

type stubSharer struct {
	available bool
	shared    []interfaces.ShareData
}

func (s *stubSharer) CanShare() bool { return s.available }

func (s *stubSharer) Share(_ context.Context, data interfaces.ShareData) error {
	s.shared = append(s.shared, data)
	return nil
}

func publishableDocument() website.Document {
	doc := website.NewDefault(website.WithDocumentID("web_publish"), website.WithTitle("¡Hola Mundo! 2024"))
	doc.Meta.Slug = "draft-slug"
	return doc
}

func loadedWorkflow(t *testing.T, endpoint interfaces.PublishEndpoint, opts ...Option) *Workflow {
	t.Helper()
	wf := New(endpoint, opts...)
	if err := wf.Load(context.Background(), publishableDocument()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if wf.State() != simple.StatePreviewing {
		t.Fatalf("expected previewing after load, got %s", wf.State())
	}
	return wf
}

func TestPublishSuccess(t *testing.T) {
	ctx := context.Background()
	endpoint := &stubEndpoint{}
	wf := loadedWorkflow(t, endpoint)
	doc := publishableDocument()

	result, err := wf.Publish(ctx, "owner-1", "wedding-1", doc)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if wf.State() != simple.StatePublished {
		t.Fatalf("expected published, got %s", wf.State())
	}
	if result.Slug != "hola-mundo-2024" || result.URL != "https://hola-mundo-2024.bodas.example.com" {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Stats != (Stats{}) {
		t.Fatalf("expected zero stats, got %+v", result.Stats)
	}
	if len(endpoint.calls) != 1 || endpoint.calls[0].Meta.Slug != "hola-mundo-2024" {
		t.Fatalf("expected endpoint to receive derived slug, got %+v", endpoint.calls)
	}
	if doc.Meta.Slug != "draft-slug" {
		t.Fatal("caller document must not be modified")
	}
	if stored, ok := wf.Result(); !ok || stored != result {
		t.Fatalf("expected stored result, got %+v", stored)
	}

	if _, err := wf.Publish(ctx, "owner-1", "wedding-1", doc); !errors.Is(err, ErrAlreadyPublished) {
		t.Fatalf("expected ErrAlreadyPublished, got %v", err)
	}
}

func TestPublishFailureKeepsDraftAndAllowsRetry(t *testing.T) {
	ctx := context.Background()
	endpoint := &stubEndpoint{errs: []error{errors.New("slug already taken by another couple")}}
	wf := loadedWorkflow(t, endpoint)
	doc := publishableDocument()
	before := doc.Clone()

	_, err := wf.Publish(ctx, "owner-1", "wedding-1", doc)
	if err == nil {
		t.Fatal("expected publish failure")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryExternal) {
		t.Fatalf("expected external category, got %v", err)
	}
	if wf.State() != simple.StateError {
		t.Fatalf("expected error state, got %s", wf.State())
	}
	if wf.LastError() != "slug already taken by another couple" {
		t.Fatalf("expected verbatim message, got %q", wf.LastError())
	}
	if !reflect.DeepEqual(doc, before) {
		t.Fatal("draft document must survive a failed publish")
	}
	if _, ok := wf.Result(); ok {
		t.Fatal("no result expected after failure")
	}

	available, err := wf.Available(ctx)
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	if !reflect.DeepEqual(available, []string{"publish", "edit", "preview"}) {
		t.Fatalf("unexpected transitions from error: %v", available)
	}

	result, err := wf.Publish(ctx, "owner-1", "wedding-1", doc)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if wf.State() != simple.StatePublished || wf.LastError() != "" {
		t.Fatalf("expected published after retry, got %s (%q)", wf.State(), wf.LastError())
	}
	if result.Slug != "hola-mundo-2024" {
		t.Fatalf("unexpected slug %s", result.Slug)
	}
}

type blockingEndpoint struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingEndpoint) Publish(_ context.Context, _, _ string, doc website.Document) (interfaces.PublishResponse, error) {
	close(b.entered)
	<-b.release
	return interfaces.PublishResponse{Slug: doc.Meta.Slug}, nil
}

func TestPublishReleasesLockWhileEndpointRuns(t *testing.T) {
	endpoint := &blockingEndpoint{entered: make(chan struct{}), release: make(chan struct{})}
	workflow := loadedWorkflow(t, endpoint)
	doc := publishableDocument()

	done := make(chan error, 1)
	go func() {
		_, err := workflow.Publish(context.Background(), "owner", "wedding", doc)
		done <- err
	}()
	<-endpoint.entered

	if state := workflow.State(); state != simple.StatePublishing {
		t.Fatalf("expected publishing while the endpoint runs, got %s", state)
	}
	if _, ok := workflow.Result(); ok {
		t.Fatalf("expected no result before the endpoint answers")
	}
	_, err := workflow.Publish(context.Background(), "owner", "wedding", doc)
	if !errors.Is(err, ErrPublishInFlight) || !goerrors.IsCategory(err, goerrors.CategoryConflict) {
		t.Fatalf("expected in-flight conflict, got %v", err)
	}

	close(endpoint.release)
	if err := <-done; err != nil {
		t.Fatalf("publish: %v", err)
	}
	if state := workflow.State(); state != simple.StatePublished {
		t.Fatalf("expected published, got %s", state)
	}
	if result, ok := workflow.Result(); !ok || result.Slug != "hola-mundo-2024" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestPublishValidationFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	endpoint := &stubEndpoint{}
	wf := loadedWorkflow(t, endpoint)

	doc := publishableDocument()
	doc.Sections = nil

	_, err := wf.Publish(ctx, "owner-1", "wedding-1", doc)
	if !errors.Is(err, website.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	var validationErr *website.ValidationError
	if !errors.As(err, &validationErr) || len(validationErr.Messages) != 1 {
		t.Fatalf("expected one validation message, got %v", err)
	}
	if wf.State() != simple.StatePreviewing {
		t.Fatalf("validation failure must not change state, got %s", wf.State())
	}
	if len(endpoint.calls) != 0 {
		t.Fatal("endpoint must not be called for an invalid document")
	}
}

func TestPublishRejectsReservedSlug(t *testing.T) {
	endpoint := &stubEndpoint{}
	wf := loadedWorkflow(t, endpoint)

	doc := publishableDocument()
	doc.Meta.Title = "Admin"
	if _, err := wf.Publish(context.Background(), "o", "w", doc); !errors.Is(err, ErrReservedSlug) {
		t.Fatalf("expected ErrReservedSlug, got %v", err)
	}
	if wf.State() != simple.StatePreviewing || len(endpoint.calls) != 0 {
		t.Fatal("reserved slug must be rejected before calling the endpoint")
	}
}

func TestPrepareFallsBackToMetaSlug(t *testing.T) {
	wf := New(&stubEndpoint{})
	doc := publishableDocument()
	doc.Meta.Title = "💍💍"
	doc.Meta.Slug = "ana-y-luis"

	prepared, err := wf.Prepare(doc)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if prepared.Meta.Slug != "ana-y-luis" {
		t.Fatalf("expected fallback slug, got %q", prepared.Meta.Slug)
	}

	doc.Meta.Slug = "💍"
	if _, err := wf.Prepare(doc); !errors.Is(err, ErrEmptySlug) {
		t.Fatalf("expected ErrEmptySlug, got %v", err)
	}
}

func TestPublishBeforeLoad(t *testing.T) {
	wf := New(&stubEndpoint{})
	if _, err := wf.Publish(context.Background(), "o", "w", publishableDocument()); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
	if _, err := New(nil).Publish(context.Background(), "o", "w", publishableDocument()); !errors.Is(err, ErrEndpointMissing) {
		t.Fatalf("expected ErrEndpointMissing, got %v", err)
	}
}

func TestToggleEdit(t *testing.T) {
	ctx := context.Background()
	wf := loadedWorkflow(t, &stubEndpoint{})

	state, err := wf.ToggleEdit(ctx)
	if err != nil || state != simple.StateEditing {
		t.Fatalf("expected editing, got %s (%v)", state, err)
	}
	state, err = wf.ToggleEdit(ctx)
	if err != nil || state != simple.StatePreviewing {
		t.Fatalf("expected previewing, got %s (%v)", state, err)
	}

	draft := New(&stubEndpoint{})
	if _, err := draft.ToggleEdit(ctx); !errors.Is(err, simple.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition from draft, got %v", err)
	}
}

func TestShareFallsBackToClipboard(t *testing.T) {
	ctx := context.Background()
	result := Result{Slug: "ana-luis", URL: "https://ana-luis.example.com", Title: "Ana & Luis"}
	clipboard := &recordingClipboard{}

	method, err := result.Share(ctx, &stubSharer{available: false}, clipboard)
	if err != nil || method != ShareClipboard {
		t.Fatalf("expected clipboard fallback, got %s (%v)", method, err)
	}
	if !reflect.DeepEqual(clipboard.texts, []string{"https://ana-luis.example.com"}) {
		t.Fatalf("unexpected clipboard contents %v", clipboard.texts)
	}

	method, err = result.Share(ctx, nil, clipboard)
	if err != nil || method != ShareClipboard {
		t.Fatalf("expected clipboard without sharer, got %s (%v)", method, err)
	}

	sharer := &stubSharer{available: true}
	method, err = result.Share(ctx, sharer, clipboard)
	if err != nil || method != ShareNative {
		t.Fatalf("expected native share, got %s (%v)", method, err)
	}
	if len(sharer.shared) != 1 || sharer.shared[0].URL != result.URL {
		t.Fatalf("unexpected share payload %+v", sharer.shared)
	}

	if err := result.CopyLink(ctx, nil); err == nil {
		t.Fatal("expected error without clipboard")
	}
}
