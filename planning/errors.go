/*
errors.go - Error types for the planning package

PURPOSE:
  Sentinels for the repository contract plus a field-level validation
  error. Repository failures propagate unmodified through the service;
  detected conflicts are never errors.
*/
package planning

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEventNotFound is returned when a referenced event doesn't exist
	// in the organization.
	ErrEventNotFound = errors.New("event not found")

	// ErrInvalidEvent wraps all field-level validation failures.
	ErrInvalidEvent = errors.New("invalid event")
)

// =============================================================================
// VALIDATION ERROR - Accumulates field-level findings
// =============================================================================

// ValidationError collects per-field messages for one request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

func (e *ValidationError) hasErrors() bool { return len(e.Fields) > 0 }

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "invalid event: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidEvent }
