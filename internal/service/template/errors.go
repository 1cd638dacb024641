package template

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the template service layer.
var (
	ErrNotFound   = errors.New("template not found")
	ErrNameTaken  = errors.New("template name already in use in this workspace")
	ErrReferenced = errors.New("template is referenced by one or more campaigns")
)

// ValidationError carries field-keyed error messages back to the API layer.
// It is returned before storage is touched for malformed input, and after a
// persistence rejection for conflicts (keyed "name") and blocked deletes
// (keyed "template").
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates an empty validation error.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends a message for a field.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors reports whether any field has a message.
func (e *ValidationError) HasErrors() bool { return len(e.Fields) > 0 }

func (e *ValidationError) Error() string {
	var parts []string
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// fieldError builds a single-field validation error.
func fieldError(field, message string) *ValidationError {
	e := NewValidationError()
	e.Add(field, message)
	return e
}
