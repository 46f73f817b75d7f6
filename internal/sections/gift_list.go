package sections

import (
	"github.com/goliatone/go-microsite/internal/render"
	"github.com/goliatone/go-microsite/website"
)

// GiftList renders the registry links and bank transfer details.
type GiftList struct{}

func (GiftList) Type() website.SectionType { return website.SectionGiftList }

func (GiftList) Render(ctx render.BlockContext) (render.Node, error) {
	data := ctx.Section.Data
	root := container(website.SectionGiftList, heading(ctx, stringField(data, "title")))
	if message := stringField(data, "message"); message != "" {
		root = root.Append(editable(ctx, paragraph(message), "message"))
	}
	if account := stringField(data, "accountDetail"); account != "" {
		root = root.Append(editable(ctx, render.TextNode("account", account).
			WithStyle("font-family", render.FontVar(website.FontBody)).
			WithStyle("color", render.ColorVar(website.ColorText)).
			WithStyle("background-color", render.ColorVar(website.ColorSecondary)), "accountDetail"))
	}

	gifts := render.Element("list").WithRole("gifts")
	for _, item := range listField(data, "items") {
		name := stringField(item, "name")
		if name == "" {
			continue
		}
		gift := render.Element("card", render.TextNode("subheading", name).
			WithStyle("font-family", render.FontVar(website.FontHeading)).
			WithStyle("color", render.ColorVar(website.ColorPrimary)))
		if description := stringField(item, "description"); description != "" {
			gift = gift.Append(paragraph(description))
		}
		if link := stringField(item, "url"); link != "" {
			gift = gift.Append(render.TextNode("link", "View gift").
				WithAttr("href", link).
				WithStyle("color", render.ColorVar(website.ColorAccent)))
		}
		gifts = gifts.Append(gift)
	}
	if len(gifts.Children) > 0 {
		root = root.Append(gifts)
	}
	return root, nil
}

func (GiftList) Schema() map[string]any {
	return objectSchema(map[string]any{
		"title":         stringProp(),
		"message":       stringProp(),
		"accountDetail": stringProp(),
		"items": map[string]any{
			"type": "array",
			"items": objectSchema(map[string]any{
				"name":        stringProp(),
				"description": stringProp(),
				"url":         stringProp(),
			}, "name"),
		},
	})
}
