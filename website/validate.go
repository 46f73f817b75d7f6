package website

import (
	"errors"
	"strings"
)

var (
	ErrInvalidDocument = errors.New("website: invalid document")
	ErrUnknownPreset   = errors.New("website: unknown theme preset")
)

const (
	MessageTitleRequired    = "meta.title is required"
	MessageSlugRequired     = "meta.slug is required"
	MessageSectionsRequired = "sections must contain at least one section"
	MessageOrderDuplicated  = "sections order values must be unique"
)

// ValidationResult reports whether a document can be saved or published.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Err returns nil for a valid result and a *ValidationError otherwise.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	messages := make([]string, len(r.Errors))
	copy(messages, r.Errors)
	return &ValidationError{Messages: messages}
}

// ValidationError lists every reason a document was rejected.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Messages) == 0 {
		return ErrInvalidDocument.Error()
	}
	return ErrInvalidDocument.Error() + ": " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidDocument
}

// Validate checks the structural invariants of a document. Duplicate order
// values are detected by comparing the number of distinct orders against the
// section count.
func Validate(doc Document) ValidationResult {
	errs := []string{}
	if strings.TrimSpace(doc.Meta.Title) == "" {
		errs = append(errs, MessageTitleRequired)
	}
	if strings.TrimSpace(doc.Meta.Slug) == "" {
		errs = append(errs, MessageSlugRequired)
	}
	if len(doc.Sections) == 0 {
		errs = append(errs, MessageSectionsRequired)
	} else {
		orders := make(map[int]struct{}, len(doc.Sections))
		for _, section := range doc.Sections {
			orders[section.Order] = struct{}{}
		}
		if len(orders) != len(doc.Sections) {
			errs = append(errs, MessageOrderDuplicated)
		}
	}
	return ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}
