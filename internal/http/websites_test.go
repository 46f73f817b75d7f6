package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goliatone/go-microsite/internal/adapters/publishapi"
	websitecmd "github.com/goliatone/go-microsite/internal/commands/website"
	"github.com/goliatone/go-microsite/internal/documents"
	"github.com/goliatone/go-microsite/internal/generator"
	"github.com/goliatone/go-microsite/internal/publish"
	"github.com/goliatone/go-microsite/internal/render"
	"github.com/goliatone/go-microsite/internal/sections"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
)

type apiFixture struct {
	mux      *http.ServeMux
	store    *documents.MemoryStore
	endpoint *publishapi.MemoryEndpoint
}

func newAPIFixture(t *testing.T) apiFixture {
	t.Helper()
	now := func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	store := documents.NewMemoryStore(documents.WithClock(now))
	endpoint := publishapi.NewMemoryEndpoint("https://sites.example.com")
	set, err := websitecmd.RegisterWebsiteCommands(nil, websitecmd.Dependencies{
		Generator:   generator.NewService(nil, generator.WithClock(now)),
		Store:       store,
		NewWorkflow: func() *publish.Workflow { return publish.New(endpoint) },
	}, nil)
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	registry, err := sections.NewRegistry()
	if err != nil {
		t.Fatalf("sections registry: %v", err)
	}
	api := NewWebsiteAPI(store, set,
		WithRenderer(render.NewRenderer(registry)),
		WithClock(now),
	)
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register api: %v", err)
	}
	return apiFixture{mux: mux, store: store, endpoint: endpoint}
}

func (f apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &payload)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return out
}

func TestWebsiteAPIGenerateThenFetch(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/api/websites/owner-1/wedding-1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before generation, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodPost, "/api/websites/owner-1/wedding-1/generate", generateRequest{
		Profile: interfaces.Profile{PartnerOne: "Ana", PartnerTwo: "Luis", WeddingDate: "2025-09-20"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate status %d: %s", rec.Code, rec.Body.String())
	}
	doc := decodeBody[website.Document](t, rec)
	if doc.Meta.Title != "Ana & Luis" {
		t.Fatalf("expected couple title, got %q", doc.Meta.Title)
	}

	rec = f.do(t, http.MethodGet, "/api/websites/owner-1/wedding-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status %d", rec.Code)
	}
	if got := decodeBody[website.Document](t, rec); got.Meta.ID != doc.Meta.ID {
		t.Fatalf("expected stored draft %s, got %s", doc.Meta.ID, got.Meta.ID)
	}
}

func TestWebsiteAPISaveRejectsInvalidDocument(t *testing.T) {
	f := newAPIFixture(t)
	doc := website.NewDefault()
	doc.Meta.Title = "  "

	rec := f.do(t, http.MethodPut, "/api/websites/owner-1/wedding-1", doc)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[errorResponse](t, rec)
	if resp.Error != "validation_failed" {
		t.Fatalf("expected validation_failed, got %+v", resp)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/websites/owner-1/wedding-1", bytes.NewBufferString("{"))
	bad := httptest.NewRecorder()
	f.mux.ServeHTTP(bad, req)
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed json, got %d", bad.Code)
	}
}

func TestWebsiteAPIRenderModes(t *testing.T) {
	f := newAPIFixture(t)
	doc := website.NewDefault()
	doc.Sections[1].Visible = false
	if rec := f.do(t, http.MethodPut, "/api/websites/o/w", doc); rec.Code != http.StatusOK {
		t.Fatalf("save status %d: %s", rec.Code, rec.Body.String())
	}

	preview := decodeBody[render.Page](t, f.do(t, http.MethodGet, "/api/websites/o/w/render", nil))
	if preview.Mode != render.ModePreview || len(preview.Sections) != 1 {
		t.Fatalf("expected one visible section in preview, got %+v", preview.SectionIDs())
	}

	edit := decodeBody[render.Page](t, f.do(t, http.MethodGet, "/api/websites/o/w/render?mode=edit", nil))
	if edit.Mode != render.ModeEdit || len(edit.Sections) != 2 {
		t.Fatalf("expected hidden section kept in edit mode, got %+v", edit.SectionIDs())
	}
	if !edit.Sections[1].Hidden {
		t.Fatal("expected hidden flag on the story section")
	}
}

func TestWebsiteAPIToggleAndReorder(t *testing.T) {
	f := newAPIFixture(t)
	doc := website.NewDefault()
	f.do(t, http.MethodPut, "/api/websites/o/w", doc)
	heroID := doc.Sections[0].ID

	rec := f.do(t, http.MethodPost, "/api/websites/o/w/sections/"+heroID+"/visibility", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status %d: %s", rec.Code, rec.Body.String())
	}
	toggled := decodeBody[website.Document](t, rec)
	if toggled.Sections[0].Visible {
		t.Fatal("expected hero to be hidden")
	}

	if rec := f.do(t, http.MethodPost, "/api/websites/o/w/sections/missing/visibility", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown section, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodPost, "/api/websites/o/w/reorder", map[string]int{"source": 0, "destination": 1})
	if rec.Code != http.StatusOK {
		t.Fatalf("reorder status %d: %s", rec.Code, rec.Body.String())
	}
	reordered := decodeBody[website.Document](t, rec)
	sorted := reordered.SortedSections()
	if sorted[0].Type != website.SectionStory || sorted[1].Type != website.SectionHero {
		t.Fatalf("unexpected order after drag: %s, %s", sorted[0].Type, sorted[1].Type)
	}
}

func TestWebsiteAPIPublishDraft(t *testing.T) {
	f := newAPIFixture(t)
	doc := website.NewDefault(website.WithTitle("Ana & Luis"))
	f.do(t, http.MethodPut, "/api/websites/o/w", doc)

	rec := f.do(t, http.MethodPost, "/api/websites/o/w/publish", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("publish status %d: %s", rec.Code, rec.Body.String())
	}
	result := decodeBody[publish.Result](t, rec)
	if result.Slug != "ana-luis" || result.URL != "https://sites.example.com/ana-luis" {
		t.Fatalf("unexpected result %+v", result)
	}
	if _, ok := f.endpoint.Page("ana-luis"); !ok {
		t.Fatal("expected page to be published")
	}

	other := website.NewDefault(website.WithTitle("Ana & Luis"))
	f.do(t, http.MethodPut, "/api/websites/o2/w2", other)
	rec = f.do(t, http.MethodPost, "/api/websites/o2/w2/publish", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for taken slug, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestWebsiteAPIPresetsAndSchemas(t *testing.T) {
	f := newAPIFixture(t)
	presets := decodeBody[[]presetResponse](t, f.do(t, http.MethodGet, "/api/websites/presets", nil))
	if len(presets) != len(website.PresetNames()) {
		t.Fatalf("expected %d presets, got %d", len(website.PresetNames()), len(presets))
	}
	schemas := decodeBody[map[string]any](t, f.do(t, http.MethodGet, "/api/websites/schemas", nil))
	if _, ok := schemas[string(website.SectionHero)]; !ok {
		t.Fatalf("expected hero schema, got %v", schemas)
	}
}

func TestRegisterRequiresMux(t *testing.T) {
	api := NewWebsiteAPI(documents.NewMemoryStore(), &websitecmd.HandlerSet{})
	if err := api.Register(nil); err == nil {
		t.Fatal("expected error for nil mux")
	}
}

func TestWebsiteAPIChecksReportPayloadIssues(t *testing.T) {
	f := newAPIFixture(t)
	doc := website.NewDefault()
	doc.Sections[0].Data["showCountdown"] = "soon"
	if rec := f.do(t, http.MethodPut, "/api/websites/o/w", doc); rec.Code != http.StatusOK {
		t.Fatalf("save status %d: %s", rec.Code, rec.Body.String())
	}

	reports := decodeBody[[]checkResponse](t, f.do(t, http.MethodGet, "/api/websites/o/w/checks", nil))
	if len(reports) != 1 || reports[0].SectionID != doc.Sections[0].ID {
		t.Fatalf("expected one hero report, got %+v", reports)
	}
}
