package website

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultThemeName is the preset applied to freshly created documents.
const DefaultThemeName = "romantic"

// ThemePreset bundles a named palette and font set.
type ThemePreset struct {
	Name   string
	Label  string
	Colors Colors
	Fonts  Fonts
}

var themePresets = map[string]ThemePreset{
	"romantic": {
		Name:  "romantic",
		Label: "Romantic",
		Colors: Colors{
			Primary:    "#D4A5A5",
			Secondary:  "#F5E6E8",
			Accent:     "#B76E79",
			Background: "#FFF9F9",
			Text:       "#4A4A4A",
		},
		Fonts: Fonts{
			Heading: "Playfair Display",
			Body:    "Lato",
			Accent:  "Great Vibes",
		},
	},
	"elegant": {
		Name:  "elegant",
		Label: "Elegant",
		Colors: Colors{
			Primary:    "#2C3E50",
			Secondary:  "#ECF0F1",
			Accent:     "#C9A96E",
			Background: "#FFFFFF",
			Text:       "#2C3E50",
		},
		Fonts: Fonts{
			Heading: "Cormorant Garamond",
			Body:    "Montserrat",
			Accent:  "Pinyon Script",
		},
	},
	"rustic": {
		Name:  "rustic",
		Label: "Rustic",
		Colors: Colors{
			Primary:    "#8B5E3C",
			Secondary:  "#E8DCC4",
			Accent:     "#6B8E23",
			Background: "#FAF6EE",
			Text:       "#3E2C1C",
		},
		Fonts: Fonts{
			Heading: "Josefin Slab",
			Body:    "Open Sans",
			Accent:  "Amatic SC",
		},
	},
	"modern": {
		Name:  "modern",
		Label: "Modern",
		Colors: Colors{
			Primary:    "#111111",
			Secondary:  "#F2F2F2",
			Accent:     "#FF6F61",
			Background: "#FFFFFF",
			Text:       "#222222",
		},
		Fonts: Fonts{
			Heading: "Poppins",
			Body:    "Inter",
			Accent:  "Space Grotesk",
		},
	},
	"boho": {
		Name:  "boho",
		Label: "Boho",
		Colors: Colors{
			Primary:    "#C97B63",
			Secondary:  "#F3E3D3",
			Accent:     "#7A9E7E",
			Background: "#FFF8F0",
			Text:       "#5B4636",
		},
		Fonts: Fonts{
			Heading: "Cinzel",
			Body:    "Raleway",
			Accent:  "Dancing Script",
		},
	},
}

// Preset returns a copy of the named preset.
func Preset(name string) (ThemePreset, bool) {
	preset, ok := themePresets[strings.ToLower(strings.TrimSpace(name))]
	return preset, ok
}

// PresetNames lists the available presets alphabetically.
func PresetNames() []string {
	names := make([]string, 0, len(themePresets))
	for name := range themePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyColorPreset returns a new document whose palette is exactly the
// preset's palette. The colors object is replaced as a whole, never merged.
func ApplyColorPreset(doc Document, name string) (Document, error) {
	preset, ok := Preset(name)
	if !ok {
		return doc, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	next := doc.Clone()
	next.Styles.Colors = preset.Colors
	next.Styles.Theme = preset.Name
	next.Meta.Theme = preset.Name
	return next, nil
}

// ApplyFontPreset returns a new document whose fonts are exactly the preset's
// fonts. The theme name is left untouched.
func ApplyFontPreset(doc Document, name string) (Document, error) {
	preset, ok := Preset(name)
	if !ok {
		return doc, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	next := doc.Clone()
	next.Styles.Fonts = preset.Fonts
	return next, nil
}
