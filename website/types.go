package website

import (
	"strings"
	"time"
)

// SectionType tags the content block a section renders as.
type SectionType string

const (
	SectionHero      SectionType = "hero"
	SectionStory     SectionType = "story"
	SectionEventInfo SectionType = "event_info"
	SectionGallery   SectionType = "gallery"
	SectionRSVP      SectionType = "rsvp"
	SectionMap       SectionType = "map"
	SectionTimeline  SectionType = "timeline"
	SectionGiftList  SectionType = "gift_list"
)

var knownSectionTypes = []SectionType{
	SectionHero,
	SectionStory,
	SectionEventInfo,
	SectionGallery,
	SectionRSVP,
	SectionMap,
	SectionTimeline,
	SectionGiftList,
}

// KnownSectionTypes lists the block types shipped with the engine.
func KnownSectionTypes() []SectionType {
	out := make([]SectionType, len(knownSectionTypes))
	copy(out, knownSectionTypes)
	return out
}

// Normalize returns the canonical registry key for the tag.
func (t SectionType) Normalize() SectionType {
	return SectionType(strings.ToLower(strings.TrimSpace(string(t))))
}

// Document is the single source of truth for a wedding microsite. It doubles as
// the JSON wire format shared with the generator, publish endpoint, storage
// and persistence collaborators.
type Document struct {
	Meta     Meta      `json:"meta"`
	Sections []Section `json:"sections"`
	Styles   Styles    `json:"styles"`
}

// Meta carries document identity and bookkeeping timestamps.
type Meta struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Theme     string    `json:"theme"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Section is one self-contained content block. Data and Style hold the
// type-specific payload and overrides.
type Section struct {
	ID       string         `json:"id"`
	Type     SectionType    `json:"type"`
	Order    int            `json:"order"`
	Visible  bool           `json:"visible"`
	Editable bool           `json:"editable"`
	Data     map[string]any `json:"data,omitempty"`
	Style    map[string]any `json:"style,omitempty"`
}

// Styles groups the style tokens threaded through every block.
type Styles struct {
	Theme   string `json:"theme"`
	Colors  Colors `json:"colors"`
	Fonts   Fonts  `json:"fonts"`
	Spacing string `json:"spacing,omitempty"`
}

// ColorKey names one of the five palette slots.
type ColorKey string

const (
	ColorPrimary    ColorKey = "primary"
	ColorSecondary  ColorKey = "secondary"
	ColorAccent     ColorKey = "accent"
	ColorBackground ColorKey = "background"
	ColorText       ColorKey = "text"
)

// ColorKeys returns the palette slots in display order.
func ColorKeys() []ColorKey {
	return []ColorKey{ColorPrimary, ColorSecondary, ColorAccent, ColorBackground, ColorText}
}

// Colors is the five-slot palette.
type Colors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// Get returns the value stored under key.
func (c Colors) Get(key ColorKey) (string, bool) {
	switch key {
	case ColorPrimary:
		return c.Primary, true
	case ColorSecondary:
		return c.Secondary, true
	case ColorAccent:
		return c.Accent, true
	case ColorBackground:
		return c.Background, true
	case ColorText:
		return c.Text, true
	default:
		return "", false
	}
}

// With returns a copy of the palette with key set to value.
func (c Colors) With(key ColorKey, value string) (Colors, bool) {
	switch key {
	case ColorPrimary:
		c.Primary = value
	case ColorSecondary:
		c.Secondary = value
	case ColorAccent:
		c.Accent = value
	case ColorBackground:
		c.Background = value
	case ColorText:
		c.Text = value
	default:
		return c, false
	}
	return c, true
}

// FontKey names one of the three typography slots.
type FontKey string

const (
	FontHeading FontKey = "heading"
	FontBody    FontKey = "body"
	FontAccent  FontKey = "accent"
)

// FontKeys returns the typography slots in display order.
func FontKeys() []FontKey {
	return []FontKey{FontHeading, FontBody, FontAccent}
}

// Fonts is the three-slot typography set.
type Fonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
	Accent  string `json:"accent"`
}

// Get returns the family stored under key.
func (f Fonts) Get(key FontKey) (string, bool) {
	switch key {
	case FontHeading:
		return f.Heading, true
	case FontBody:
		return f.Body, true
	case FontAccent:
		return f.Accent, true
	default:
		return "", false
	}
}

// With returns a copy of the font set with key set to family.
func (f Fonts) With(key FontKey, family string) (Fonts, bool) {
	switch key {
	case FontHeading:
		f.Heading = family
	case FontBody:
		f.Body = family
	case FontAccent:
		f.Accent = family
	default:
		return f, false
	}
	return f, true
}

// SectionByID returns the section with the given id.
func (d Document) SectionByID(id string) (Section, bool) {
	for _, section := range d.Sections {
		if section.ID == id {
			return section.Clone(), true
		}
	}
	return Section{}, false
}

// IndexOf returns the slice position of the section with the given id or -1.
func (d Document) IndexOf(id string) int {
	for idx, section := range d.Sections {
		if section.ID == id {
			return idx
		}
	}
	return -1
}
