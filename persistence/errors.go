package persistence

import (
	"fmt"
)

// SchemaError reports a metadata document that lacks a required field or
// carries an invalid one.
type SchemaError struct {
	Document string
	Field    string
	cause    error
}

func (e *SchemaError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("persistence: %s: invalid field %q: %v", e.Document, e.Field, e.cause)
	}
	return fmt.Sprintf("persistence: %s: missing required field %q", e.Document, e.Field)
}

func (e *SchemaError) Unwrap() error { return e.cause }

// MissingDataFileError reports a metadata document whose matrix container cannot be found.
//
// The original underlying error can be accessed via errors.Unwrap.
type MissingDataFileError struct {
	Document string
	DataFile string
	cause    error
}

func (e *MissingDataFileError) Error() string {
	return fmt.Sprintf("persistence: %s references missing data file %s", e.Document, e.DataFile)
}

func (e *MissingDataFileError) Unwrap() error { return e.cause }
