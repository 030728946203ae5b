// Package ingest reads election result files: the flat per-candidate CSV,
// the pre-computed JSON datasets, and municipality vote workbooks.
package ingest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedInput is returned when a file is readable but its content
	// does not have the expected shape.
	ErrMalformedInput = errors.New("malformed input")

	// ErrNoRows is returned when a CSV has a valid header but no usable rows.
	ErrNoRows = fmt.Errorf("%w: no rows", ErrMalformedInput)

	// ErrUnavailable marks a data source that could not be loaded. Callers
	// show a placeholder for it instead of failing the whole view.
	ErrUnavailable = errors.New("data unavailable")
)

// MissingColumnsError lists required CSV columns absent from the header.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}

func (e *MissingColumnsError) Unwrap() error { return ErrMalformedInput }

// SchemaError reports JSON Schema violations of one source.
type SchemaError struct {
	Source   string
	Kind     Kind
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: does not match %s schema: %s", e.Source, e.Kind, strings.Join(e.Problems, "; "))
}

func (e *SchemaError) Unwrap() error { return ErrMalformedInput }

func unavailable(source string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, source, err)
}
