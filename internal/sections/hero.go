package sections

import (
	"time"

	"github.com/goliatone/go-microsite/internal/render"
	"github.com/goliatone/go-microsite/website"
)

// Hero renders the cover block: couple title, subtitle, date and an optional
// countdown over a background image.
type Hero struct{}

func (Hero) Type() website.SectionType { return website.SectionHero }

func (Hero) Render(ctx render.BlockContext) (render.Node, error) {
	data := ctx.Section.Data
	title := stringField(data, "title")
	subtitle := stringField(data, "subtitle")
	date := stringField(data, "date")

	root := container(website.SectionHero, heading(ctx, title))
	if background := stringField(data, "backgroundImage"); background != "" {
		root = root.WithAttr("background-image", background)
	}
	if subtitle != "" || ctx.Editable {
		root = root.Append(editable(ctx, render.TextNode("subtitle", subtitle).
			WithStyle("font-family", render.FontVar(website.FontAccent)).
			WithStyle("color", render.ColorVar(website.ColorAccent)), "subtitle"))
	}
	if date != "" || ctx.Editable {
		root = root.Append(editable(ctx, render.TextNode("date", date).
			WithStyle("font-family", render.FontVar(website.FontBody)).
			WithStyle("color", render.ColorVar(website.ColorText)), "date"))
	}
	if boolField(data, "showCountdown", false) {
		if target, ok := parseDate(date); ok {
			root = root.Append(render.Node{Kind: "countdown"}.
				WithAttr("target", target.Format(time.RFC3339)).
				WithStyle("color", render.ColorVar(website.ColorPrimary)))
		}
	}
	return root, nil
}

func (Hero) Schema() map[string]any {
	return objectSchema(map[string]any{
		"title":           stringProp(),
		"subtitle":        stringProp(),
		"date":            stringProp(),
		"backgroundImage": stringProp(),
		"showCountdown":   map[string]any{"type": "boolean"},
		"images":          map[string]any{"type": "array"},
	}, "title")
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}
