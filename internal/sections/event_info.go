package sections

import (
	"strconv"

	"github.com/goliatone/go-microsite/internal/render"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
)

// EventInfo lists the ceremony, reception and any other events with their
// time, venue and address.
type EventInfo struct {
	markdown interfaces.MarkdownParser
}

func (EventInfo) Type() website.SectionType { return website.SectionEventInfo }

func (e EventInfo) Render(ctx render.BlockContext) (render.Node, error) {
	data := ctx.Section.Data
	root := container(website.SectionEventInfo, heading(ctx, stringField(data, "title")))

	events := render.Element("list").WithRole("events")
	for idx, event := range listField(data, "events") {
		card := render.Element("card",
			render.TextNode("subheading", stringField(event, "name")).
				WithStyle("font-family", render.FontVar(website.FontHeading)).
				WithStyle("color", render.ColorVar(website.ColorAccent)),
		).WithStyle("border-color", render.ColorVar(website.ColorSecondary))
		for _, key := range []string{"time", "venue", "address"} {
			if value := stringField(event, key); value != "" {
				card = card.Append(paragraph(value).WithRole(key))
			}
		}
		if notes := stringField(event, "notes"); notes != "" {
			card = card.Append(richText(e.markdown, notes))
		}
		if ctx.Editable {
			card = card.WithAttr("data-index", strconv.Itoa(idx))
		}
		events = events.Append(card)
	}
	if len(events.Children) == 0 {
		events = events.Append(paragraph("Event details coming soon"))
	}
	if ctx.Editable {
		events = events.WithAttr("data-field", "events")
	}
	return root.Append(events), nil
}

func (EventInfo) Schema() map[string]any {
	return objectSchema(map[string]any{
		"title": stringProp(),
		"events": map[string]any{
			"type": "array",
			"items": objectSchema(map[string]any{
				"name":    stringProp(),
				"time":    stringProp(),
				"venue":   stringProp(),
				"address": stringProp(),
				"notes":   stringProp(),
			}, "name"),
		},
	})
}
