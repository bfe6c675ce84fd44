package frame

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidView is returned for object-view tuples that have neither 4 nor 5 elements.
	ErrInvalidView = errors.New("object view must have 4 or 5 elements")

	// ErrInvalidFilename is returned when label and timestamp cannot be extracted from a filename.
	ErrInvalidFilename = errors.New("could not extract label and time from name")

	// ErrNoViews is returned when reading features for a frame without object views.
	ErrNoViews = errors.New("frame has no object views")
)

// ManifestParseError reports a manifest line that cannot be turned into a Frame.
//
// The original underlying error can be accessed via errors.Unwrap.
type ManifestParseError struct {
	Line  int // 1-based line number, 0 if unknown
	Input string
	cause error
}

func (e *ManifestParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("manifest line %d: %q: %v", e.Line, e.Input, e.cause)
	}
	return fmt.Sprintf("manifest line %q: %v", e.Input, e.cause)
}

func (e *ManifestParseError) Unwrap() error { return e.cause }

// WithLine returns a copy of e annotated with a line number.
func (e *ManifestParseError) WithLine(line int) *ManifestParseError {
	c := *e
	c.Line = line
	return &c
}

// FeatureCountError reports a feature file whose line count does not match
// len(views) × feature types.
type FeatureCountError struct {
	Filename string
	Expected int
	Actual   int
}

func (e *FeatureCountError) Error() string {
	return fmt.Sprintf("wrong number of features in %s: expected %d lines, got %d", e.Filename, e.Expected, e.Actual)
}

// FeatureFileError reports a feature file that is missing, unreadable or undecodable.
//
// The original underlying error can be accessed via errors.Unwrap.
type FeatureFileError struct {
	Filename string
	Path     string
	cause    error
}

func (e *FeatureFileError) Error() string {
	return fmt.Sprintf("unreadable feature file %s: %v", e.Path, e.cause)
}

func (e *FeatureFileError) Unwrap() error { return e.cause }

// MissingFieldError reports a metadata record lacking a required field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("frame record: missing required field %q", e.Field)
}
