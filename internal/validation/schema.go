// Package validation checks section payloads against the JSON schemas their
// block renderers publish.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("validation: section schema invalid")
	ErrSchemaValidation = errors.New("validation: section payload rejected")
)

// ValidationIssue is one failing location inside a section payload.
type ValidationIssue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// PayloadValidationError lists every issue found in a payload.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := "#" + strings.TrimPrefix(strings.TrimSpace(issue.Location), "#")
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, location+": "+issue.Message)
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var schemaErr *jsonschema.ValidationError
	if errors.As(err, &schemaErr) && schemaErr != nil {
		return leafIssues(schemaErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// ValidateSchema reports whether schema compiles. An empty schema is valid.
func ValidateSchema(schema map[string]any) error {
	if len(schema) == 0 {
		return nil
	}
	if _, err := compiled.get(schema); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return nil
}

// ValidatePayload validates a section's data against schema.
func ValidatePayload(schema, payload map[string]any) error {
	return validate(schema, payload)
}

// ValidatePartialPayload validates payload while ignoring required fields,
// which suits drafts that are still being filled in.
func ValidatePartialPayload(schema, payload map[string]any) error {
	if len(schema) == 0 {
		return nil
	}
	relaxed := maps.Clone(schema)
	delete(relaxed, "required")
	return validate(relaxed, payload)
}

func validate(schema, payload map[string]any) error {
	if len(schema) == 0 {
		return nil
	}
	document, err := jsonDocument(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	sch, err := compiled.get(schema)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if err := sch.Validate(document); err != nil {
		return &PayloadValidationError{Issues: Issues(err), Cause: err}
	}
	return nil
}

// jsonDocument round-trips the payload through encoding/json so Go-native
// numbers and typed slices reach the validator as plain JSON values.
func jsonDocument(payload map[string]any) (any, error) {
	if payload == nil {
		return map[string]any{}, nil
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var document any
	if err := json.Unmarshal(encoded, &document); err != nil {
		return nil, err
	}
	return document, nil
}

// schemaCache keeps compiled schemas keyed by their canonical JSON. Block
// schemas are static, so every save after the first reuses the compiled form.
type schemaCache struct {
	mu     sync.Mutex
	byJSON map[string]*jsonschema.Schema
}

var compiled = &schemaCache{byJSON: map[string]*jsonschema.Schema{}}

func (c *schemaCache) get(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	key := string(encoded)

	c.mu.Lock()
	defer c.mu.Unlock()
	if sch, ok := c.byJSON[key]; ok {
		return sch, nil
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("section.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	sch, err := compiler.Compile("section.json")
	if err != nil {
		return nil, err
	}
	c.byJSON[key] = sch
	return sch, nil
}

func (c *schemaCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byJSON)
}

func leafIssues(err *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
