package sections

import (
	"strconv"

	"github.com/goliatone/go-microsite/internal/render"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
)

// Timeline renders the schedule of the day or the couple's milestones.
type Timeline struct {
	markdown interfaces.MarkdownParser
}

func (Timeline) Type() website.SectionType { return website.SectionTimeline }

func (t Timeline) Render(ctx render.BlockContext) (render.Node, error) {
	data := ctx.Section.Data
	root := container(website.SectionTimeline, heading(ctx, stringField(data, "title")))

	list := render.Element("timeline").
		WithStyle("border-color", render.ColorVar(website.ColorAccent))
	for idx, item := range listField(data, "items") {
		entry := render.Element("entry",
			render.TextNode("time", stringField(item, "time")).
				WithStyle("font-family", render.FontVar(website.FontAccent)).
				WithStyle("color", render.ColorVar(website.ColorAccent)),
			render.TextNode("subheading", stringField(item, "title")).
				WithStyle("font-family", render.FontVar(website.FontHeading)).
				WithStyle("color", render.ColorVar(website.ColorPrimary)),
		)
		if description := stringField(item, "description"); description != "" {
			entry = entry.Append(richText(t.markdown, description))
		}
		if ctx.Editable {
			entry = entry.WithAttr("data-index", strconv.Itoa(idx))
		}
		list = list.Append(entry)
	}
	if ctx.Editable {
		list = list.WithAttr("data-field", "items")
	}
	return root.Append(list), nil
}

func (Timeline) Schema() map[string]any {
	return objectSchema(map[string]any{
		"title": stringProp(),
		"items": map[string]any{
			"type": "array",
			"items": objectSchema(map[string]any{
				"time":        stringProp(),
				"title":       stringProp(),
				"description": stringProp(),
			}, "title"),
		},
	})
}
