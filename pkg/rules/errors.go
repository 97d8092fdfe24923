package rules

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError describes a single validation failure. It is immutable
// once constructed; collaborators build new values instead of mutating.
type ValidationError struct {
	Kind      Kind
	Severity  Severity
	Field     string
	Message   string
	Timestamp time.Time
	Source    Source
	Details   map[string]any
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrorOption customizes a ValidationError at construction time.
type ErrorOption func(*ValidationError)

// WithSeverity overrides the default SeverityError.
func WithSeverity(s Severity) ErrorOption {
	return func(e *ValidationError) { e.Severity = s }
}

// WithSource overrides the default SourceClient. Server-rejection mapping
// uses this to mark externally injected errors.
func WithSource(s Source) ErrorOption {
	return func(e *ValidationError) { e.Source = s }
}

// WithDetails attaches structured detail values to the error.
func WithDetails(details map[string]any) ErrorOption {
	return func(e *ValidationError) { e.Details = details }
}

// NewError constructs a well-formed ValidationError with SourceClient and
// the current timestamp. Collaborators injecting errors outside the rule
// pipeline (server-rejection mapping, remote checks) should use this rather
// than building the struct by hand.
func NewError(kind Kind, field, message string, opts ...ErrorOption) ValidationError {
	e := ValidationError{
		Kind:      kind,
		Severity:  SeverityError,
		Field:     field,
		Message:   message,
		Timestamp: time.Now(),
		Source:    SourceClient,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// ValidationErrors is an ordered collection of validation failures. Order is
// significant: it matches rule evaluation order.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, err.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any error belongs to the given field.
func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns all messages recorded for the given field, in evaluation order.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

// Fields returns the distinct field names that have errors, in first-seen order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

// IsEmpty reports whether the collection holds no errors.
func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}
