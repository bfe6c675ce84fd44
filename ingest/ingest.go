package ingest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/scenedb/database"
	"github.com/hupe1980/scenedb/frame"
	"github.com/hupe1980/scenedb/internal/fs"
	"github.com/hupe1980/scenedb/metric"
)

// ReadManifest reads and parses every non-blank line of the manifest at path.
// A malformed line yields a *frame.ManifestParseError carrying its 1-based
// line number.
func ReadManifest(fsys fs.FileSystem, path string) ([]*frame.Frame, error) {
	if fsys == nil {
		fsys = fs.Default
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var frames []*frame.Frame
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		f, err := frame.ParseManifestLine(line)
		if err != nil {
			var pe *frame.ManifestParseError
			if errors.As(err, &pe) {
				return nil, pe.WithLine(i + 1)
			}
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// Build ingests the manifest at manifestPath into a new database.
//
// Feature files are read from <dir of manifest>/<FeatureDir>/<frame filename>.
// Fatal errors (unreadable manifest, malformed line, cancellation) discard
// the partial database and return a nil Report.
func Build(ctx context.Context, manifestPath string, optFns ...Option) (*database.DB, *Report, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()
	log := opts.Logger.WithManifest(manifestPath)

	frames, err := ReadManifest(opts.FileSystem, manifestPath)
	if err != nil {
		return nil, nil, err
	}

	db := database.New(opts.Types, opts.Kind, opts.ObjectNames)
	report := newReport(len(frames))
	base := filepath.Dir(manifestPath)

	skipLog := &rate.Sometimes{Every: 1}
	if opts.SkipReportBurst > 0 {
		skipLog = &rate.Sometimes{First: opts.SkipReportBurst, Interval: time.Second}
	}

	for i, f := range frames {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		err := ingestFrame(db, f, base, opts)
		if err == nil {
			report.Accepted++
			opts.Metrics.RecordFrame(true, metric.ReasonAccepted)
			continue
		}
		if !IsRecoverable(err) {
			return nil, nil, err
		}

		report.skip(i, f.Filename(), err)
		opts.Metrics.RecordFrame(false, skipReason(err))
		if opts.Verbosity == VerbosityVerbose {
			skipLog.Do(func() { log.LogSkip(ctx, f.Filename(), err) })
		}
	}

	duration := time.Since(start)
	opts.Metrics.RecordIngest(report.Total, report.Skipped, duration)

	if opts.Verbosity != VerbositySilent && report.Skipped > 0 {
		log.LogIngest(ctx, report.Total, report.Skipped, duration)
	}

	return db, report, nil
}

func ingestFrame(db *database.DB, f *frame.Frame, base string, opts Options) error {
	features, err := f.ReadFeatures(opts.FileSystem, f.FeaturePath(base, opts.FeatureDir), db.Types().Len())
	if err != nil {
		return err
	}
	return db.Ingest(f, features)
}
