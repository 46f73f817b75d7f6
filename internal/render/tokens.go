package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-microsite/website"
)

const (
	colorTokenPrefix = "--ms-color-"
	fontTokenPrefix  = "--ms-font-"
)

// Tokens maps CSS custom property names to their values for one page.
type Tokens map[string]string

// ColorToken returns the custom property name of a palette entry.
func ColorToken(key website.ColorKey) string {
	return colorTokenPrefix + string(key)
}

// FontToken returns the custom property name of a font role.
func FontToken(key website.FontKey) string {
	return fontTokenPrefix + string(key)
}

// ColorVar is the only way blocks reference a palette colour.
func ColorVar(key website.ColorKey) string {
	return "var(" + ColorToken(key) + ")"
}

// FontVar is the only way blocks reference a font family.
func FontVar(key website.FontKey) string {
	return "var(" + FontToken(key) + ")"
}

// TokensFor derives the page-scoped variables from the document styles.
func TokensFor(styles website.Styles) Tokens {
	tokens := make(Tokens, len(website.ColorKeys())+len(website.FontKeys()))
	for _, key := range website.ColorKeys() {
		value, _ := styles.Colors.Get(key)
		tokens[ColorToken(key)] = value
	}
	for _, key := range website.FontKeys() {
		value, _ := styles.Fonts.Get(key)
		tokens[FontToken(key)] = value
	}
	return tokens
}

// Names returns the token names sorted alphabetically.
func (t Tokens) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CSS renders the tokens as a single rule scoped to selector.
func (t Tokens) CSS(selector string) string {
	if strings.TrimSpace(selector) == "" {
		selector = ":root"
	}
	var builder strings.Builder
	builder.WriteString(selector)
	builder.WriteString("{")
	for _, name := range t.Names() {
		builder.WriteString(name)
		builder.WriteString(":")
		builder.WriteString(t[name])
		builder.WriteString(";")
	}
	builder.WriteString("}")
	return builder.String()
}
