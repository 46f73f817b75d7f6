package render

import (
	"fmt"

	"github.com/goliatone/go-microsite/website"
)

// Placeholder is the default arm of the registry. It is rendered for unknown
// section types and for blocks that fail.
type Placeholder struct{}

func (Placeholder) Type() website.SectionType { return "" }

func (Placeholder) Render(ctx BlockContext) (Node, error) {
	return PlaceholderNode(ctx.Section), nil
}

// PlaceholderNode builds the notice shown in place of an unavailable block.
func PlaceholderNode(section website.Section) Node {
	return TextNode("placeholder", fmt.Sprintf("type %s not yet available", section.Type)).
		WithAttr("section-id", section.ID).
		WithAttr("section-type", string(section.Type)).
		WithStyle("color", ColorVar(website.ColorText)).
		WithStyle("border-color", ColorVar(website.ColorSecondary))
}
