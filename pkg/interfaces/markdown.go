package interfaces

// MarkdownParser turns the rich-text fields of a section payload into an
// HTML fragment.
type MarkdownParser interface {
	Render(text string) (string, error)
}

// MarkdownOptions selects goldmark extensions and output handling.
type MarkdownOptions struct {
	Extensions []string
	// Sanitize runs the output through an HTML policy.
	Sanitize bool
	HardWraps bool
	// SafeMode drops raw HTML found in the source.
	SafeMode bool
}
