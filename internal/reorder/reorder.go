// Package reorder applies drag-and-drop moves to the section list.
package reorder

import "github.com/goliatone/go-microsite/website"

// DragEvent is a completed drag gesture over the section list. Indexes refer
// to positions in display order. A nil Destination means the drop landed
// outside any target.
type DragEvent struct {
	Source      int  `json:"source"`
	Destination *int `json:"destination,omitempty"`
}

// To is a convenience for building a DragEvent with a destination.
func To(source, destination int) DragEvent {
	return DragEvent{Source: source, Destination: &destination}
}

// Apply moves one section and renumbers every order to its 1-based position.
// It reports false, returning doc untouched, when the drop had no target, did
// not move, or pointed outside the list.
func Apply(doc website.Document, event DragEvent) (website.Document, bool) {
	if event.Destination == nil {
		return doc, false
	}
	src, dst := event.Source, *event.Destination
	count := len(doc.Sections)
	if src == dst || src < 0 || dst < 0 || src >= count || dst >= count {
		return doc, false
	}

	ordered := doc.SortedSections()
	moved := ordered[src]
	ordered = append(ordered[:src], ordered[src+1:]...)
	ordered = append(ordered[:dst], append([]website.Section{moved}, ordered[dst:]...)...)

	next := doc.Clone()
	next.Sections = Renumber(ordered)
	return next, true
}

// Renumber assigns order = position + 1 to every section.
func Renumber(sections []website.Section) []website.Section {
	out := make([]website.Section, len(sections))
	for idx, section := range sections {
		section.Order = idx + 1
		out[idx] = section
	}
	return out
}
