package render

import "errors"

var (
	// ErrDuplicateRenderer indicates an attempt to register a section type twice.
	ErrDuplicateRenderer = errors.New("render: duplicate block renderer")
	// ErrInvalidRenderer occurs when a renderer is nil or declares no type.
	ErrInvalidRenderer = errors.New("render: invalid block renderer")
	// ErrSectionNotFound is returned by MergeSection when no section matches the id.
	ErrSectionNotFound = errors.New("render: section not found")
)
