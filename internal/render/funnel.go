package render

import (
	"fmt"
	"time"

	"github.com/goliatone/go-microsite/website"
)

// MergeSection is the single mutation funnel for block edits. It replaces the
// section with the same id in a fresh copy of doc and stamps meta.updatedAt.
// The source document is never modified.
func MergeSection(doc website.Document, section website.Section, now time.Time) (website.Document, error) {
	idx := doc.IndexOf(section.ID)
	if idx < 0 {
		return doc, fmt.Errorf("%w: %s", ErrSectionNotFound, section.ID)
	}
	next := doc.Clone()
	next.Sections[idx] = section.Clone()
	next.Meta.UpdatedAt = now.UTC()
	return next, nil
}

// ToggleVisibility flips the visible flag of a section through MergeSection.
func ToggleVisibility(doc website.Document, sectionID string, now time.Time) (website.Document, error) {
	section, ok := doc.SectionByID(sectionID)
	if !ok {
		return doc, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}
	section.Visible = !section.Visible
	return MergeSection(doc, section, now)
}
