package sections

import (
	"strconv"

	"github.com/goliatone/go-microsite/internal/render"
	"github.com/goliatone/go-microsite/website"
)

const (
	galleryLayoutGrid     = "grid"
	galleryLayoutCarousel = "carousel"
)

// Gallery renders uploaded photos as a grid or carousel.
type Gallery struct{}

func (Gallery) Type() website.SectionType { return website.SectionGallery }

func (Gallery) Render(ctx render.BlockContext) (render.Node, error) {
	data := ctx.Section.Data
	root := container(website.SectionGallery, heading(ctx, stringField(data, "title")))

	layout := stringField(data, "layout")
	if layout != galleryLayoutCarousel {
		layout = galleryLayoutGrid
	}
	grid := render.Element(layout).WithRole("images")
	for idx, image := range listField(data, "images") {
		url := stringField(image, "url")
		if url == "" {
			continue
		}
		alt := stringField(image, "caption")
		if alt == "" {
			alt = stringField(image, "name")
		}
		node := imageNode(url, alt)
		if caption := stringField(image, "caption"); caption != "" {
			node = node.Append(render.TextNode("caption", caption).
				WithStyle("font-family", render.FontVar(website.FontBody)).
				WithStyle("color", render.ColorVar(website.ColorText)))
		}
		if ctx.Editable {
			node = node.WithAttr("data-index", strconv.Itoa(idx))
		}
		grid = grid.Append(node)
	}
	if len(grid.Children) == 0 {
		grid = grid.Append(paragraph("No photos yet"))
	}
	if ctx.Editable {
		grid = grid.WithAttr("data-field", "images")
	}
	return root.Append(grid), nil
}

func (Gallery) Schema() map[string]any {
	return objectSchema(map[string]any{
		"title":  stringProp(),
		"layout": map[string]any{"type": "string", "enum": []any{galleryLayoutGrid, galleryLayoutCarousel}},
		"images": map[string]any{
			"type": "array",
			"items": map[string]any{
				"anyOf": []any{
					stringProp(),
					objectSchema(map[string]any{
						"url":     stringProp(),
						"name":    stringProp(),
						"caption": stringProp(),
						"size":    map[string]any{"type": "number"},
						"type":    stringProp(),
					}, "url"),
				},
			},
		},
	})
}
