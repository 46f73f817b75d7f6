package builder

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-microsite/internal/render"
	"github.com/goliatone/go-microsite/internal/reorder"
	"github.com/goliatone/go-microsite/internal/sections"
	"github.com/goliatone/go-microsite/website"
)

type tickingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newClock() *tickingClock {
	return &tickingClock{now: time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)}
}

func threeSectionDocument() website.Document {
	doc := website.NewDefault(website.WithDocumentID("web_builder"))
	doc.Sections = append(doc.Sections, website.Section{
		ID:       "gallery_1",
		Type:     website.SectionGallery,
		Order:    3,
		Visible:  true,
		Editable: true,
		Data:     map[string]any{"layout": "grid", "images": []any{}},
	})
	return doc
}

func newShell(t *testing.T, opts ...Option) *Shell {
	t.Helper()
	registry, err := sections.NewRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	clock := newClock()
	base := []Option{
		WithClock(clock.Now),
		WithRenderer(render.NewRenderer(registry, render.WithClock(clock.Now))),
	}
	return NewShell(threeSectionDocument(), append(base, opts...)...)
}

func TestShellRevisionAndPreviewLabel(t *testing.T) {
	var seen []uint64
	shell := newShell(t, WithChangeListener(func(_ website.Document, revision uint64) {
		seen = append(seen, revision)
	}))
	if shell.Revision() != 0 {
		t.Fatalf("expected revision 0, got %d", shell.Revision())
	}
	if shell.PreviewLabel() != "updated at 14:30:01" {
		t.Fatalf("unexpected label %q", shell.PreviewLabel())
	}

	doc := shell.Document()
	doc.Meta.Title = "Ana & Luis"
	if rev := shell.Replace(doc); rev != 1 {
		t.Fatalf("expected revision 1, got %d", rev)
	}
	if shell.PreviewLabel() != "updated at 14:30:02" {
		t.Fatalf("unexpected label %q", shell.PreviewLabel())
	}
	if shell.Document().Meta.Title != "Ana & Luis" {
		t.Fatal("expected replacement to stick")
	}
	if !reflect.DeepEqual(seen, []uint64{1}) {
		t.Fatalf("unexpected listener revisions %v", seen)
	}
}

func TestShellTabsAndMode(t *testing.T) {
	shell := newShell(t)
	if shell.Tab() != TabSections {
		t.Fatalf("expected sections tab, got %s", shell.Tab())
	}
	if err := shell.SetTab("Colors"); err != nil || shell.Tab() != TabColors {
		t.Fatalf("expected colors tab, got %s (%v)", shell.Tab(), err)
	}
	if err := shell.SetTab("layout"); !errors.Is(err, ErrUnknownTab) {
		t.Fatalf("expected ErrUnknownTab, got %v", err)
	}

	before := shell.Document()
	if shell.ToggleEdit() != render.ModeEdit {
		t.Fatal("expected edit mode")
	}
	if shell.ToggleEdit() != render.ModePreview {
		t.Fatal("expected preview mode")
	}
	if !reflect.DeepEqual(before, shell.Document()) || shell.Revision() != 0 {
		t.Fatal("mode switches must not touch the document")
	}
}

func TestShellRenderEditFeedsReplace(t *testing.T) {
	shell := newShell(t)
	shell.ToggleEdit()

	page := shell.Render()
	hero, ok := page.Section(shell.Document().Sections[0].ID)
	if !ok {
		t.Fatal("expected hero in page")
	}
	if !hero.Edit("title", "Changed") {
		t.Fatal("expected editable hero")
	}
	if shell.Revision() != 1 {
		t.Fatalf("expected revision 1, got %d", shell.Revision())
	}
	updated, _ := shell.Document().SectionByID(hero.ID)
	if updated.Data["title"] != "Changed" {
		t.Fatalf("expected edit applied, got %v", updated.Data["title"])
	}
}

func TestSectionListToggleAndRender(t *testing.T) {
	shell := newShell(t)
	panel := shell.Sections()
	items := panel.Items()
	if len(items) != 3 || items[0].Label != "Cover" {
		t.Fatalf("unexpected items %+v", items)
	}

	target := items[1].ID
	if err := panel.ToggleVisibility(target); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := len(shell.Render().Sections); got != 2 {
		t.Fatalf("expected 2 sections in preview, got %d", got)
	}
	shell.ToggleEdit()
	page := shell.Render()
	if len(page.Sections) != 3 {
		t.Fatalf("expected 3 sections in edit, got %d", len(page.Sections))
	}
	node, _ := page.Section(target)
	if !node.Hidden || node.Badge != "hidden" {
		t.Fatalf("expected hidden chrome, got %+v", node)
	}

	if err := panel.ToggleVisibility(target); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	section, _ := shell.Document().SectionByID(target)
	if !section.Visible {
		t.Fatal("double toggle must restore visibility")
	}
	if err := panel.ToggleVisibility("missing"); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestSectionListReorder(t *testing.T) {
	shell := newShell(t)
	panel := shell.Sections()
	first := panel.Items()[0].ID

	if panel.Reorder(reorder.DragEvent{Source: 0}) {
		t.Fatal("drop outside a target must not move")
	}
	if shell.Revision() != 0 {
		t.Fatal("no-op drag must not bump the revision")
	}
	if !panel.Reorder(reorder.To(0, 2)) {
		t.Fatal("expected move")
	}
	items := panel.Items()
	if items[2].ID != first {
		t.Fatalf("expected %s last, got %+v", first, items)
	}
	for idx, item := range items {
		if item.Order != idx+1 {
			t.Fatalf("expected dense order, got %+v", items)
		}
	}
}

func TestColorPanel(t *testing.T) {
	shell := newShell(t)
	colors := shell.Colors()

	if err := colors.ApplyPreset("elegant"); err != nil {
		t.Fatalf("apply preset: %v", err)
	}
	preset, _ := website.Preset("elegant")
	if !reflect.DeepEqual(shell.Document().Styles.Colors, preset.Colors) {
		t.Fatal("expected palette to equal preset exactly")
	}

	if err := colors.SetColor(website.ColorAccent, "#abc"); err != nil {
		t.Fatalf("set color: %v", err)
	}
	if shell.Document().Styles.Colors.Accent != "#abc" {
		t.Fatal("expected accent updated")
	}

	err := colors.SetColor(website.ColorAccent, "tomato")
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := colors.SetColor("shadow", "#000000"); !errors.Is(err, ErrUnknownColorKey) {
		t.Fatalf("expected ErrUnknownColorKey, got %v", err)
	}
	if err := colors.ApplyPreset("gothic"); !errors.Is(err, website.ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
	if shell.Revision() != 2 {
		t.Fatalf("expected only accepted changes counted, got %d", shell.Revision())
	}
}

func TestFontPanel(t *testing.T) {
	shell := newShell(t)
	fonts := shell.Fonts()
	if err := fonts.ApplyPreset("modern"); err != nil {
		t.Fatalf("apply preset: %v", err)
	}
	preset, _ := website.Preset("modern")
	if shell.Document().Styles.Fonts != preset.Fonts {
		t.Fatal("expected fonts to equal preset exactly")
	}
	if err := fonts.SetFont(website.FontBody, "Lora"); err != nil {
		t.Fatalf("set font: %v", err)
	}
	if shell.Document().Styles.Fonts.Body != "Lora" {
		t.Fatal("expected body font updated")
	}
	if err := fonts.SetFont(website.FontBody, ""); !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := fonts.SetFont("mono", "Fira"); !errors.Is(err, ErrUnknownFontKey) {
		t.Fatalf("expected ErrUnknownFontKey, got %v", err)
	}
}
