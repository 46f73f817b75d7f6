package sections

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-microsite/internal/render"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
)

func stringField(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	switch typed := data[key].(type) {
	case string:
		return strings.TrimSpace(typed)
	case fmt.Stringer:
		return strings.TrimSpace(typed.String())
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(typed))
	}
}

func boolField(data map[string]any, key string, fallback bool) bool {
	if data == nil {
		return fallback
	}
	switch typed := data[key].(type) {
	case bool:
		return typed
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
		if err != nil {
			return fallback
		}
		return parsed
	default:
		return fallback
	}
}

func floatField(data map[string]any, key string) (float64, bool) {
	if data == nil {
		return 0, false
	}
	switch typed := data[key].(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

func listField(data map[string]any, key string) []map[string]any {
	if data == nil {
		return nil
	}
	switch typed := data[key].(type) {
	case []map[string]any:
		return typed
	case []any:
		out := make([]map[string]any, 0, len(typed))
		for _, entry := range typed {
			switch item := entry.(type) {
			case map[string]any:
				out = append(out, item)
			case string:
				out = append(out, map[string]any{"url": item})
			}
		}
		return out
	default:
		return nil
	}
}

// editable tags node with the data field it displays so hosts can bind inline
// editors in edit mode.
func editable(ctx render.BlockContext, node render.Node, field string) render.Node {
	if !ctx.Editable {
		return node
	}
	return node.WithAttr("data-field", field)
}

func heading(ctx render.BlockContext, text string) render.Node {
	node := render.TextNode("heading", text).
		WithStyle("font-family", render.FontVar(website.FontHeading)).
		WithStyle("color", render.ColorVar(website.ColorPrimary))
	return editable(ctx, node, "title")
}

func paragraph(text string) render.Node {
	return render.TextNode("paragraph", text).
		WithStyle("font-family", render.FontVar(website.FontBody)).
		WithStyle("color", render.ColorVar(website.ColorText))
}

func richText(parser interfaces.MarkdownParser, text string) render.Node {
	if parser == nil || text == "" {
		return paragraph(text)
	}
	html, err := parser.Render(text)
	if err != nil {
		return paragraph(text)
	}
	return render.Node{Kind: "richtext", HTML: html}.
		WithStyle("font-family", render.FontVar(website.FontBody)).
		WithStyle("color", render.ColorVar(website.ColorText))
}

func container(sectionType website.SectionType, children ...render.Node) render.Node {
	return render.Element("section", children...).
		WithRole(string(sectionType)).
		WithStyle("background-color", render.ColorVar(website.ColorBackground))
}

func imageNode(url, alt string) render.Node {
	return render.Node{Kind: "image"}.
		WithAttr("src", url).
		WithAttr("alt", alt)
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp() map[string]any {
	return map[string]any{"type": "string"}
}
