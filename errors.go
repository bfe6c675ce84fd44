package scenedb

import (
	"github.com/hupe1980/scenedb/blobstore"
	"github.com/hupe1980/scenedb/container"
	"github.com/hupe1980/scenedb/database"
	"github.com/hupe1980/scenedb/frame"
	"github.com/hupe1980/scenedb/ingest"
	"github.com/hupe1980/scenedb/matrix"
	"github.com/hupe1980/scenedb/persistence"
)

var (
	// ErrNotFound is returned when a blob does not exist.
	ErrNotFound = blobstore.ErrNotFound

	// ErrInconsistent is returned when frames and matrix rows do not line up.
	ErrInconsistent = database.ErrInconsistent

	// ErrNoViews is returned for frames without object views.
	ErrNoViews = frame.ErrNoViews

	// ErrInvalidView is returned for object views with neither 4 nor 5 elements.
	ErrInvalidView = frame.ErrInvalidView

	// ErrWidthMismatch is returned when a dense row does not match the matrix width.
	ErrWidthMismatch = matrix.ErrWidthMismatch

	// ErrChecksum is returned when a matrix container fails its integrity check.
	ErrChecksum = container.ErrChecksum
)

type (
	// ManifestParseError reports a malformed manifest line. It aborts Build.
	ManifestParseError = frame.ManifestParseError

	// FeatureCountError reports a feature file with the wrong number of lines.
	// The frame is skipped.
	FeatureCountError = frame.FeatureCountError

	// FeatureFileError reports a missing or unreadable feature file.
	// The frame is skipped.
	FeatureFileError = frame.FeatureFileError

	// SchemaError reports a metadata document lacking required fields.
	SchemaError = persistence.SchemaError

	// MissingDataFileError reports a metadata document whose matrix container is absent.
	MissingDataFileError = persistence.MissingDataFileError
)

// IsRecoverable reports whether err causes a frame to be skipped rather than
// aborting the build.
func IsRecoverable(err error) bool {
	return ingest.IsRecoverable(err)
}
