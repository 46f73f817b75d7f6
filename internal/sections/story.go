package sections

import (
	"github.com/goliatone/go-microsite/internal/render"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
)

// Story renders the couple's story. The body is Markdown.
type Story struct {
	markdown interfaces.MarkdownParser
}

func (Story) Type() website.SectionType { return website.SectionStory }

func (s Story) Render(ctx render.BlockContext) (render.Node, error) {
	data := ctx.Section.Data
	root := container(website.SectionStory, heading(ctx, stringField(data, "title")))
	if image := stringField(data, "image"); image != "" {
		root = root.Append(editable(ctx, imageNode(image, stringField(data, "title")), "image"))
	}
	root = root.Append(editable(ctx, richText(s.markdown, stringField(data, "body")), "body"))
	return root, nil
}

func (Story) Schema() map[string]any {
	return objectSchema(map[string]any{
		"title": stringProp(),
		"body":  stringProp(),
		"image": stringProp(),
	})
}
