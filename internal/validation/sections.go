package validation

import (
	"github.com/goliatone/go-microsite/website"
)

// SchemaLookup resolves the payload schema registered for a section type.
type SchemaLookup func(sectionType website.SectionType) (map[string]any, bool)

// SectionReport collects payload issues for one section.
type SectionReport struct {
	SectionID string
	Type      website.SectionType
	Issues    []ValidationIssue
}

// CheckSections validates every section payload that has a registered schema.
// Sections of unknown type are skipped; they render as placeholders and carry
// no contract. The check is advisory and never blocks save or publish.
func CheckSections(doc website.Document, lookup SchemaLookup) []SectionReport {
	if lookup == nil {
		return nil
	}
	var reports []SectionReport
	for _, section := range doc.SortedSections() {
		schema, ok := lookup(section.Type.Normalize())
		if !ok || len(schema) == 0 {
			continue
		}
		if err := ValidatePartialPayload(schema, section.Data); err != nil {
			reports = append(reports, SectionReport{
				SectionID: section.ID,
				Type:      section.Type,
				Issues:    Issues(err),
			})
		}
	}
	return reports
}
