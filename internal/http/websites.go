package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	websitecmd "github.com/goliatone/go-microsite/internal/commands/website"
	"github.com/goliatone/go-microsite/internal/logging"
	"github.com/goliatone/go-microsite/internal/render"
	"github.com/goliatone/go-microsite/internal/reorder"
	"github.com/goliatone/go-microsite/internal/validation"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
)

// WebsiteAPI registers the builder endpoints.
type WebsiteAPI struct {
	basePath string
	store    interfaces.DocumentStore
	commands *websitecmd.HandlerSet
	renderer *render.Renderer
	logger   interfaces.Logger
	now      func() time.Time
}

// WebsiteOption mutates the WebsiteAPI configuration.
type WebsiteOption func(*WebsiteAPI)

// NewWebsiteAPI constructs a WebsiteAPI instance.
func NewWebsiteAPI(store interfaces.DocumentStore, set *websitecmd.HandlerSet, opts ...WebsiteOption) *WebsiteAPI {
	api := &WebsiteAPI{
		basePath: "/api/websites",
		store:    store,
		commands: set,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	if api.renderer == nil {
		api.renderer = render.NewRenderer(nil)
	}
	if api.logger == nil {
		api.logger = logging.NoOp()
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api/websites").
func WithBasePath(path string) WebsiteOption {
	return func(api *WebsiteAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithRenderer sets the renderer used by the render endpoint.
func WithRenderer(renderer *render.Renderer) WebsiteOption {
	return func(api *WebsiteAPI) {
		api.renderer = renderer
	}
}

// WithLogger overrides the API logger.
func WithLogger(logger interfaces.Logger) WebsiteOption {
	return func(api *WebsiteAPI) {
		api.logger = logger
	}
}

// WithClock overrides the clock used when toggling sections.
func WithClock(now func() time.Time) WebsiteOption {
	return func(api *WebsiteAPI) {
		if now != nil {
			api.now = now
		}
	}
}

// Register attaches the endpoints to the provided mux.
func (api *WebsiteAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil || api.commands == nil {
		return fmt.Errorf("http: website api requires command handlers")
	}
	root := routePrefix(api.basePath)
	item := root + "/{owner}/{wedding}"

	mux.HandleFunc("GET "+root+"/presets", api.handlePresets)
	mux.HandleFunc("GET "+root+"/schemas", api.handleSchemas)
	mux.HandleFunc("GET "+item, api.handleGet)
	mux.HandleFunc("PUT "+item, api.handleSave)
	mux.HandleFunc("POST "+item+"/generate", api.handleGenerate)
	mux.HandleFunc("GET "+item+"/render", api.handleRender)
	mux.HandleFunc("GET "+item+"/checks", api.handleChecks)
	mux.HandleFunc("POST "+item+"/sections/{id}/visibility", api.handleToggle)
	mux.HandleFunc("POST "+item+"/reorder", api.handleReorder)
	mux.HandleFunc("POST "+item+"/publish", api.handlePublish)
	return nil
}

type presetResponse struct {
	Name   string         `json:"name"`
	Label  string         `json:"label"`
	Colors website.Colors `json:"colors"`
	Fonts  website.Fonts  `json:"fonts"`
}

func (api *WebsiteAPI) handlePresets(w http.ResponseWriter, _ *http.Request) {
	out := []presetResponse{}
	for _, name := range website.PresetNames() {
		preset, _ := website.Preset(name)
		out = append(out, presetResponse{Name: preset.Name, Label: preset.Label, Colors: preset.Colors, Fonts: preset.Fonts})
	}
	writeJSON(w, http.StatusOK, out)
}

func (api *WebsiteAPI) handleSchemas(w http.ResponseWriter, _ *http.Request) {
	registry := api.renderer.Registry()
	out := map[website.SectionType]map[string]any{}
	for _, sectionType := range registry.Types() {
		if schema, ok := registry.Schema(sectionType); ok {
			out[sectionType] = schema
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (api *WebsiteAPI) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := api.store.Load(r.Context(), r.PathValue("owner"), r.PathValue("wedding"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (api *WebsiteAPI) handleSave(w http.ResponseWriter, r *http.Request) {
	var doc website.Document
	if err := decodeJSON(w, r, &doc); err != nil {
		badRequest(w, "invalid document payload", err)
		return
	}
	msg := websitecmd.SaveWebsiteCommand{OwnerID: r.PathValue("owner"), WeddingID: r.PathValue("wedding"), Document: doc}
	if err := api.commands.Save.Execute(r.Context(), msg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

type generateRequest struct {
	Profile   interfaces.Profile `json:"profile"`
	Overwrite bool               `json:"overwrite"`
}

func (api *WebsiteAPI) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, "invalid profile payload", err)
		return
	}
	owner, wedding := r.PathValue("owner"), r.PathValue("wedding")
	msg := websitecmd.GenerateWebsiteCommand{OwnerID: owner, WeddingID: wedding, Profile: req.Profile, Overwrite: req.Overwrite}
	if err := api.commands.Generate.Execute(r.Context(), msg); err != nil {
		writeError(w, err)
		return
	}
	api.respondWithDraft(r.Context(), w, owner, wedding, http.StatusCreated)
}

func (api *WebsiteAPI) handleRender(w http.ResponseWriter, r *http.Request) {
	doc, err := api.store.Load(r.Context(), r.PathValue("owner"), r.PathValue("wedding"))
	if err != nil {
		writeError(w, err)
		return
	}
	mode := render.ModePreview
	if strings.EqualFold(r.URL.Query().Get("mode"), string(render.ModeEdit)) {
		mode = render.ModeEdit
	}
	writeJSON(w, http.StatusOK, api.renderer.Render(doc, render.Options{Mode: mode}))
}

type checkResponse struct {
	SectionID string                       `json:"sectionId"`
	Type      website.SectionType          `json:"type"`
	Issues    []validation.ValidationIssue `json:"issues"`
}

func (api *WebsiteAPI) handleChecks(w http.ResponseWriter, r *http.Request) {
	doc, err := api.store.Load(r.Context(), r.PathValue("owner"), r.PathValue("wedding"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := []checkResponse{}
	for _, report := range validation.CheckSections(doc, api.renderer.Registry().Schema) {
		out = append(out, checkResponse{SectionID: report.SectionID, Type: report.Type, Issues: report.Issues})
	}
	writeJSON(w, http.StatusOK, out)
}

func (api *WebsiteAPI) handleToggle(w http.ResponseWriter, r *http.Request) {
	owner, wedding := r.PathValue("owner"), r.PathValue("wedding")
	api.mutate(w, r, owner, wedding, func(doc website.Document) (website.Document, error) {
		return render.ToggleVisibility(doc, r.PathValue("id"), api.now())
	})
}

func (api *WebsiteAPI) handleReorder(w http.ResponseWriter, r *http.Request) {
	var event reorder.DragEvent
	if err := decodeJSON(w, r, &event); err != nil {
		badRequest(w, "invalid drag payload", err)
		return
	}
	owner, wedding := r.PathValue("owner"), r.PathValue("wedding")
	api.mutate(w, r, owner, wedding, func(doc website.Document) (website.Document, error) {
		next, moved := reorder.Apply(doc, event)
		if moved {
			next.Meta.UpdatedAt = api.now().UTC()
		}
		return next, nil
	})
}

type publishRequest struct {
	Document *website.Document `json:"document,omitempty"`
}

func (api *WebsiteAPI) handlePublish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			badRequest(w, "invalid publish payload", err)
			return
		}
	}
	owner, wedding := r.PathValue("owner"), r.PathValue("wedding")
	msg := websitecmd.PublishWebsiteCommand{OwnerID: owner, WeddingID: wedding, Document: req.Document}
	if err := api.commands.Publish.Execute(r.Context(), msg); err != nil {
		writeError(w, err)
		return
	}
	result, _ := api.commands.Publish.Result(owner, wedding)
	writeJSON(w, http.StatusOK, result)
}

func (api *WebsiteAPI) mutate(w http.ResponseWriter, r *http.Request, owner, wedding string, fn func(website.Document) (website.Document, error)) {
	doc, err := api.store.Load(r.Context(), owner, wedding)
	if err != nil {
		writeError(w, err)
		return
	}
	next, err := fn(doc)
	if err != nil {
		writeError(w, err)
		return
	}
	msg := websitecmd.SaveWebsiteCommand{OwnerID: owner, WeddingID: wedding, Document: next}
	if err := api.commands.Save.Execute(r.Context(), msg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, next)
}

func (api *WebsiteAPI) respondWithDraft(ctx context.Context, w http.ResponseWriter, owner, wedding string, status int) {
	doc, err := api.store.Load(ctx, owner, wedding)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, doc)
}
