package microsite_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-microsite"
	"github.com/goliatone/go-microsite/internal/documents"
	"github.com/goliatone/go-microsite/internal/publish"
)

func newModule(t *testing.T) *microsite.Module {
	t.Helper()
	cfg := microsite.DefaultConfig()
	cfg.Publish.BaseURL = "https://sites.example.com"
	module, err := microsite.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })
	return module
}

func TestModuleGenerateEditPublish(t *testing.T) {
	ctx := context.Background()
	module := newModule(t)

	doc, err := module.Generate(ctx, "owner", "wedding", microsite.Profile{PartnerOne: "Ana", PartnerTwo: "Luis"}, false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	shell := module.OpenBuilder(doc)
	shell.ToggleEdit()
	page := shell.Render()
	story := page.Sections[1]
	if !story.Edit("title", "How we met") {
		t.Fatal("expected the story section to be editable")
	}
	if err := module.Save(ctx, "owner", "wedding", shell.Document()); err != nil {
		t.Fatalf("save: %v", err)
	}

	result, err := module.Publish(ctx, "owner", "wedding")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if result.Slug != "ana-luis" || result.URL != "https://sites.example.com/ana-luis" {
		t.Fatalf("unexpected result %+v", result)
	}

	preview := module.Render(shell.Document(), microsite.ModePreview)
	if preview.Mode != microsite.ModePreview {
		t.Fatalf("expected preview page, got %s", preview.Mode)
	}
}

func TestModulePublishWithoutDraft(t *testing.T) {
	module := newModule(t)
	_, err := module.Publish(context.Background(), "owner", "missing")
	if !errors.Is(err, documents.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestModulePublishRejectsReservedSlug(t *testing.T) {
	ctx := context.Background()
	module := newModule(t)
	doc, err := module.Generate(ctx, "owner", "wedding", microsite.Profile{}, false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	doc.Meta.Title = "Admin"
	if err := module.Save(ctx, "owner", "wedding", doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := module.Publish(ctx, "owner", "wedding"); !errors.Is(err, publish.ErrReservedSlug) {
		t.Fatalf("expected ErrReservedSlug, got %v", err)
	}
}

func TestModuleRegisterRoutes(t *testing.T) {
	module := newModule(t)
	mux := http.NewServeMux()
	if err := module.RegisterRoutes(mux); err != nil {
		t.Fatalf("register routes: %v", err)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/websites/presets", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
