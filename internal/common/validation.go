package common

import (
	"sort"
	"strings"
)

// ValidationError collects per-field messages for a rejected request.
// The zero map is not usable; construct instances with NewValidationError.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends a message for the given field.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// Empty reports whether no violations were recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// ErrOrNil returns the error itself when violations were recorded, nil
// otherwise, so validators can end with `return verr.ErrOrNil()`.
func (e *ValidationError) ErrOrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed")
	for _, f := range fields {
		for _, msg := range e.Fields[f] {
			b.WriteString("; ")
			b.WriteString(f)
			b.WriteString(" ")
			b.WriteString(msg)
		}
	}
	return b.String()
}
