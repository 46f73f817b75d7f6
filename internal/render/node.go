package render

import "github.com/goliatone/go-microsite/website"

// Mode selects the projection produced by the renderer.
type Mode string

const (
	ModePreview Mode = "preview"
	ModeEdit    Mode = "edit"
)

// Node is a single element of the rendered tree. Hosts map Kind onto their
// own widgets; values in Style only ever reference page tokens.
type Node struct {
	Kind     string            `json:"kind"`
	Role     string            `json:"role,omitempty"`
	Text     string            `json:"text,omitempty"`
	HTML     string            `json:"html,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Style    map[string]string `json:"style,omitempty"`
	Children []Node            `json:"children,omitempty"`
}

// Element builds a node with the given kind and children.
func Element(kind string, children ...Node) Node {
	return Node{Kind: kind, Children: children}
}

// TextNode builds a text-bearing node.
func TextNode(kind, text string) Node {
	return Node{Kind: kind, Text: text}
}

// WithRole returns a copy of n tagged with role.
func (n Node) WithRole(role string) Node {
	n.Role = role
	return n
}

// WithAttr returns a copy of n carrying the attribute.
func (n Node) WithAttr(key, value string) Node {
	attrs := make(map[string]string, len(n.Attrs)+1)
	for k, v := range n.Attrs {
		attrs[k] = v
	}
	attrs[key] = value
	n.Attrs = attrs
	return n
}

// WithStyle returns a copy of n carrying the style declaration.
func (n Node) WithStyle(property, value string) Node {
	style := make(map[string]string, len(n.Style)+1)
	for k, v := range n.Style {
		style[k] = v
	}
	style[property] = value
	n.Style = style
	return n
}

// Append returns a copy of n with extra children.
func (n Node) Append(children ...Node) Node {
	merged := make([]Node, 0, len(n.Children)+len(children))
	merged = append(merged, n.Children...)
	merged = append(merged, children...)
	n.Children = merged
	return n
}

// SectionNode wraps the output of one block renderer with the chrome the
// builder needs in edit mode.
type SectionNode struct {
	ID          string              `json:"id"`
	Type        website.SectionType `json:"type"`
	Order       int                 `json:"order"`
	Editable    bool                `json:"editable"`
	Hidden      bool                `json:"hidden,omitempty"`
	Badge       string              `json:"badge,omitempty"`
	Opacity     float64             `json:"opacity"`
	Overlay     bool                `json:"overlay,omitempty"`
	Placeholder bool                `json:"placeholder,omitempty"`
	Content     Node                `json:"content"`

	section website.Section
	emit    func(website.Section)
}

// Edit sets a single data field of the section and pushes the updated section
// through the change funnel. It reports false when the section is not editable
// in the current projection.
func (s SectionNode) Edit(field string, value any) bool {
	if !s.Editable || s.emit == nil || field == "" {
		return false
	}
	next := s.section.Clone()
	if next.Data == nil {
		next.Data = map[string]any{}
	}
	next.Data[field] = value
	s.emit(next)
	return true
}

// Replace pushes a whole updated section through the change funnel. The
// section id is forced to the rendered one.
func (s SectionNode) Replace(section website.Section) bool {
	if !s.Editable || s.emit == nil {
		return false
	}
	next := section.Clone()
	next.ID = s.ID
	s.emit(next)
	return true
}

// Page is the rendered projection of a document.
type Page struct {
	Mode     Mode          `json:"mode"`
	Title    string        `json:"title"`
	Tokens   Tokens        `json:"tokens"`
	Spacing  string        `json:"spacing,omitempty"`
	Sections []SectionNode `json:"sections"`
}

// SectionIDs lists the rendered section ids in display order.
func (p Page) SectionIDs() []string {
	ids := make([]string, len(p.Sections))
	for idx, section := range p.Sections {
		ids[idx] = section.ID
	}
	return ids
}

// Section returns the rendered section with the given id.
func (p Page) Section(id string) (SectionNode, bool) {
	for _, section := range p.Sections {
		if section.ID == id {
			return section, true
		}
	}
	return SectionNode{}, false
}
