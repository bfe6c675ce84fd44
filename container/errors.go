package container

import "errors"

var (
	// ErrInvalidMagic is returned when the file does not start with a known magic.
	ErrInvalidMagic = errors.New("container: invalid magic")

	// ErrInvalidVersion is returned for an unsupported format version.
	ErrInvalidVersion = errors.New("container: unsupported version")

	// ErrChecksum is returned when the stored checksum does not match the content.
	ErrChecksum = errors.New("container: checksum mismatch")

	// ErrCorrupt is returned when the content cannot be parsed.
	ErrCorrupt = errors.New("container: corrupt data")

	// ErrTooLarge is returned when a matrix payload exceeds the block size limit.
	ErrTooLarge = errors.New("container: matrix too large")

	// ErrDuplicateName is returned when two entries share a name.
	ErrDuplicateName = errors.New("container: duplicate matrix name")
)
