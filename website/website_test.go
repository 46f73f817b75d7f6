package website

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
}

func TestNewDefaultSeedsHeroAndStory(t *testing.T) {
	doc := NewDefault(WithDocumentID("web_test"), WithClock(fixedClock))

	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 seed sections, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Type != SectionHero || doc.Sections[1].Type != SectionStory {
		t.Fatalf("unexpected seed types: %s, %s", doc.Sections[0].Type, doc.Sections[1].Type)
	}
	if doc.Sections[0].Order != 1 || doc.Sections[1].Order != 2 {
		t.Fatalf("unexpected seed order: %d, %d", doc.Sections[0].Order, doc.Sections[1].Order)
	}
	if doc.Styles.Theme != "romantic" || doc.Meta.Theme != "romantic" {
		t.Fatalf("expected romantic theme, got %q/%q", doc.Styles.Theme, doc.Meta.Theme)
	}
	if !doc.Meta.CreatedAt.Equal(fixedClock()) {
		t.Fatalf("unexpected createdAt %s", doc.Meta.CreatedAt)
	}
	if result := Validate(doc); !result.Valid {
		t.Fatalf("expected default document to validate, got %v", result.Errors)
	}

	again := NewDefault(WithDocumentID("web_test"), WithClock(fixedClock))
	if !reflect.DeepEqual(doc, again) {
		t.Fatal("expected default document to be deterministic for a fixed id and clock")
	}
}

func TestValidate(t *testing.T) {
	base := NewDefault(WithDocumentID("web_validate"), WithClock(fixedClock))

	cases := []struct {
		name   string
		mutate func(*Document)
		want   []string
	}{
		{name: "valid", mutate: func(*Document) {}},
		{name: "missing title", mutate: func(d *Document) { d.Meta.Title = "" }, want: []string{MessageTitleRequired}},
		{name: "missing slug", mutate: func(d *Document) { d.Meta.Slug = "" }, want: []string{MessageSlugRequired}},
		{name: "no sections", mutate: func(d *Document) { d.Sections = nil }, want: []string{MessageSectionsRequired}},
		{name: "duplicate order", mutate: func(d *Document) { d.Sections[1].Order = 1 }, want: []string{MessageOrderDuplicated}},
		{
			name: "everything wrong",
			mutate: func(d *Document) {
				d.Meta.Title = ""
				d.Meta.Slug = ""
				d.Sections = []Section{}
			},
			want: []string{MessageTitleRequired, MessageSlugRequired, MessageSectionsRequired},
		},
		{name: "sparse but unique order", mutate: func(d *Document) { d.Sections[1].Order = 7 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := base.Clone()
			tc.mutate(&doc)
			result := Validate(doc)
			if result.Valid != (len(tc.want) == 0) {
				t.Fatalf("valid = %v, errors %v", result.Valid, result.Errors)
			}
			if len(tc.want) == 0 {
				if result.Err() != nil {
					t.Fatalf("expected nil error, got %v", result.Err())
				}
				return
			}
			if !reflect.DeepEqual(result.Errors, tc.want) {
				t.Fatalf("errors = %v, want %v", result.Errors, tc.want)
			}
			err := result.Err()
			if !errors.Is(err, ErrInvalidDocument) {
				t.Fatalf("expected ErrInvalidDocument, got %v", err)
			}
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) || len(validationErr.Messages) != len(tc.want) {
				t.Fatalf("expected ValidationError with messages, got %v", err)
			}
		})
	}
}

func TestApplyColorPresetReplacesWholePalette(t *testing.T) {
	doc := NewDefault(WithClock(fixedClock))
	doc.Styles.Colors.Primary = "#000000"

	next, err := ApplyColorPreset(doc, "modern")
	if err != nil {
		t.Fatalf("apply preset: %v", err)
	}
	preset, _ := Preset("modern")
	if !reflect.DeepEqual(next.Styles.Colors, preset.Colors) {
		t.Fatalf("colors = %+v, want %+v", next.Styles.Colors, preset.Colors)
	}
	if next.Styles.Theme != "modern" {
		t.Fatalf("expected theme modern, got %s", next.Styles.Theme)
	}
	if doc.Styles.Colors.Primary != "#000000" {
		t.Fatal("expected source document to stay untouched")
	}
	if !reflect.DeepEqual(next.Styles.Fonts, doc.Styles.Fonts) {
		t.Fatal("expected fonts to be left alone by a color preset")
	}

	encoded, err := json.Marshal(next.Styles.Colors)
	if err != nil {
		t.Fatalf("marshal colors: %v", err)
	}
	var keys map[string]string
	if err := json.Unmarshal(encoded, &keys); err != nil {
		t.Fatalf("unmarshal colors: %v", err)
	}
	if len(keys) != 5 {
		t.Fatalf("expected exactly 5 color keys, got %v", keys)
	}
}

func TestApplyFontPreset(t *testing.T) {
	doc := NewDefault(WithClock(fixedClock))
	next, err := ApplyFontPreset(doc, "Elegant")
	if err != nil {
		t.Fatalf("apply font preset: %v", err)
	}
	preset, _ := Preset("elegant")
	if next.Styles.Fonts != preset.Fonts {
		t.Fatalf("fonts = %+v, want %+v", next.Styles.Fonts, preset.Fonts)
	}
	if next.Styles.Theme != doc.Styles.Theme {
		t.Fatal("font preset must not change the theme name")
	}

	if _, err := ApplyFontPreset(doc, "gothic"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestPresetNames(t *testing.T) {
	want := []string{"boho", "elegant", "modern", "romantic", "rustic"}
	if got := PresetNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("PresetNames() = %v, want %v", got, want)
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := NewDefault(WithClock(fixedClock))
	doc.Sections[0].Data["images"] = []any{map[string]any{"url": "a.png"}}

	clone := doc.Clone()
	clone.Sections[0].Data["title"] = "changed"
	clone.Sections[0].Data["images"].([]any)[0].(map[string]any)["url"] = "b.png"
	clone.Sections[1].Visible = false

	if doc.Sections[0].Data["title"] == "changed" {
		t.Fatal("expected top-level data to be copied")
	}
	if doc.Sections[0].Data["images"].([]any)[0].(map[string]any)["url"] != "a.png" {
		t.Fatal("expected nested data to be copied")
	}
	if !doc.Sections[1].Visible {
		t.Fatal("expected section slice to be copied")
	}
}

func TestSortedSectionsIsStable(t *testing.T) {
	doc := Document{Sections: []Section{
		{ID: "c", Order: 2},
		{ID: "a", Order: 1},
		{ID: "b", Order: 2},
	}}
	got := doc.SortedSections()
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	if !reflect.DeepEqual(ids, []string{"a", "c", "b"}) {
		t.Fatalf("unexpected order %v", ids)
	}
}

func TestDocumentJSONShape(t *testing.T) {
	doc := NewDefault(WithDocumentID("web_json"), WithClock(fixedClock))
	encoded, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var wire struct {
		Meta     map[string]any   `json:"meta"`
		Sections []map[string]any `json:"sections"`
		Styles   map[string]any   `json:"styles"`
	}
	if err := json.Unmarshal(encoded, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"id", "title", "slug", "theme", "createdAt", "updatedAt"} {
		if _, ok := wire.Meta[key]; !ok {
			t.Fatalf("expected meta key %q", key)
		}
	}
	for _, key := range []string{"id", "type", "order", "visible", "editable", "data"} {
		if _, ok := wire.Sections[0][key]; !ok {
			t.Fatalf("expected section key %q", key)
		}
	}
	for _, key := range []string{"theme", "colors", "fonts", "spacing"} {
		if _, ok := wire.Styles[key]; !ok {
			t.Fatalf("expected styles key %q", key)
		}
	}

	var decoded Document
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Meta.ID != "web_json" || len(decoded.Sections) != 2 {
		t.Fatalf("unexpected decoded document %+v", decoded.Meta)
	}
}
