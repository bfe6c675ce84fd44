package ingest

import (
	"errors"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/scenedb/frame"
	"github.com/hupe1980/scenedb/matrix"
	"github.com/hupe1980/scenedb/metric"
)

// Skip records one skipped frame.
type Skip struct {
	// Index is the frame's 0-based position among the non-blank manifest lines.
	Index    int
	Filename string
	Err      error
}

// Report summarizes an ingestion run.
type Report struct {
	Total    int
	Accepted int
	Skipped  int
	// SkippedIndices holds the Index of every skipped frame.
	SkippedIndices *roaring.Bitmap
	Skips          []Skip
}

func newReport(total int) *Report {
	return &Report{Total: total, SkippedIndices: roaring.New()}
}

func (r *Report) skip(index int, filename string, err error) {
	r.Skipped++
	r.SkippedIndices.Add(uint32(index))
	r.Skips = append(r.Skips, Skip{Index: index, Filename: filename, Err: err})
}

// WasSkipped reports whether the frame at index was skipped.
func (r *Report) WasSkipped(index int) bool {
	return index >= 0 && r.SkippedIndices.Contains(uint32(index))
}

// IsRecoverable reports whether err only causes the current frame to be
// skipped rather than aborting ingestion.
func IsRecoverable(err error) bool {
	var countErr *frame.FeatureCountError
	var fileErr *frame.FeatureFileError
	switch {
	case errors.As(err, &countErr), errors.As(err, &fileErr):
		return true
	case errors.Is(err, frame.ErrNoViews),
		errors.Is(err, matrix.ErrWidthMismatch),
		errors.Is(err, matrix.ErrTooWide):
		return true
	default:
		return false
	}
}

func skipReason(err error) string {
	var countErr *frame.FeatureCountError
	var fileErr *frame.FeatureFileError
	switch {
	case errors.As(err, &countErr):
		return metric.ReasonFeatureCount
	case errors.As(err, &fileErr):
		return metric.ReasonFeatureFile
	case errors.Is(err, frame.ErrNoViews):
		return metric.ReasonNoViews
	default:
		return metric.ReasonWidth
	}
}
