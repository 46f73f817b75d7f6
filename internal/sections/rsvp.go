package sections

import (
	"github.com/goliatone/go-microsite/internal/render"
	"github.com/goliatone/go-microsite/website"
)

const defaultRSVPButton = "Send RSVP"

// RSVP renders the guest response form. Submissions are handled by the host.
type RSVP struct{}

func (RSVP) Type() website.SectionType { return website.SectionRSVP }

func (RSVP) Render(ctx render.BlockContext) (render.Node, error) {
	data := ctx.Section.Data
	root := container(website.SectionRSVP, heading(ctx, stringField(data, "title")))
	if message := stringField(data, "message"); message != "" {
		root = root.Append(editable(ctx, paragraph(message), "message"))
	}
	if deadline := stringField(data, "deadline"); deadline != "" {
		root = root.Append(editable(ctx, paragraph(deadline).WithRole("deadline"), "deadline"))
	}

	form := render.Element("form",
		formField("name", "text", true),
		formField("email", "email", true),
		formField("attending", "choice", true).WithAttr("options", "yes,no"),
	).WithAttr("data-action", "rsvp")
	if boolField(data, "allowPlusOnes", true) {
		form = form.Append(formField("guests", "number", false))
	}
	if boolField(data, "askDietary", false) {
		form = form.Append(formField("dietary", "text", false))
	}
	form = form.Append(formField("message", "textarea", false))

	label := stringField(data, "buttonLabel")
	if label == "" {
		label = defaultRSVPButton
	}
	form = form.Append(editable(ctx, render.TextNode("button", label).
		WithStyle("background-color", render.ColorVar(website.ColorPrimary)).
		WithStyle("color", render.ColorVar(website.ColorBackground)).
		WithStyle("font-family", render.FontVar(website.FontBody)), "buttonLabel"))
	if ctx.Editable {
		// the live form is inert while editing
		form = form.WithAttr("disabled", "true")
	}
	return root.Append(form), nil
}

func formField(name, kind string, required bool) render.Node {
	node := render.Node{Kind: "field"}.
		WithAttr("name", name).
		WithAttr("input", kind).
		WithStyle("border-color", render.ColorVar(website.ColorSecondary)).
		WithStyle("font-family", render.FontVar(website.FontBody))
	if required {
		node = node.WithAttr("required", "true")
	}
	return node
}

func (RSVP) Schema() map[string]any {
	return objectSchema(map[string]any{
		"title":         stringProp(),
		"message":       stringProp(),
		"deadline":      stringProp(),
		"buttonLabel":   stringProp(),
		"allowPlusOnes": map[string]any{"type": "boolean"},
		"askDietary":    map[string]any{"type": "boolean"},
	})
}
