package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrConflict indicates the stored record changed status since it was read
	ErrConflict = errors.New("announcement was modified concurrently")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidTransition indicates a status change outside the transition table
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ValidationErrors collects every field problem found in one pass, keyed by field name.
// The zero value is ready to use.
type ValidationErrors map[string]string

// Add records a message for field. The first message for a field wins.
func (v ValidationErrors) Add(field, message string) {
	if _, exists := v[field]; exists {
		return
	}
	v[field] = message
}

// Merge copies a *ValidationError or another ValidationErrors into the collection.
// Other errors are ignored.
func (v ValidationErrors) Merge(err error) {
	var all ValidationErrors
	if errors.As(err, &all) {
		for f, msg := range all {
			v.Add(f, msg)
		}
		return
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		v.Add(ve.Field, ve.Message)
	}
}

// Err returns nil when nothing was collected, otherwise the collection itself.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Error lists the failing fields in a stable order.
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidationFailed) hold for collected validation errors.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

// TransitionError reports a rejected status change.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// Unwrap lets callers match ErrInvalidTransition.
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
