package matrix

import "errors"

var (
	// ErrNoTypes is returned when a registry is created without feature types.
	ErrNoTypes = errors.New("at least one feature type is required")

	// ErrDuplicateType is returned when a registry names a feature type twice.
	ErrDuplicateType = errors.New("duplicate feature type")

	// ErrEmptyTypeName is returned for an empty feature type name.
	ErrEmptyTypeName = errors.New("empty feature type name")

	// ErrUnknownType is returned when a feature type is not part of the registry.
	ErrUnknownType = errors.New("unknown feature type")

	// ErrWidthMismatch is returned when a row does not match the width of a dense matrix.
	ErrWidthMismatch = errors.New("row width does not match matrix width")

	// ErrTooWide is returned when a row exceeds the addressable column range.
	ErrTooWide = errors.New("row exceeds maximum column count")

	// ErrTypeCount is returned when a view does not carry one vector per feature type.
	ErrTypeCount = errors.New("view vector count does not match feature types")

	// ErrRowMismatch is returned when the matrices of a store disagree on their row count.
	ErrRowMismatch = errors.New("feature matrices have different row counts")

	// ErrInvalidArray is returned when an array cannot be turned into a matrix.
	ErrInvalidArray = errors.New("invalid matrix array")

	// ErrKindMismatch is returned when a matrix of the wrong layout is installed into a store.
	ErrKindMismatch = errors.New("matrix kind does not match store kind")
)
