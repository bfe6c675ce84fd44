package ingest

import (
	"fmt"
	"strings"

	"github.com/hupe1980/scenedb/frame"
	"github.com/hupe1980/scenedb/internal/fs"
	"github.com/hupe1980/scenedb/internal/logging"
	"github.com/hupe1980/scenedb/matrix"
	"github.com/hupe1980/scenedb/metric"
)

// Verbosity controls how skipped frames are reported. It never affects
// which frames are accepted.
type Verbosity int

const (
	// VerbosityQuiet logs the skip summary when at least one frame was skipped.
	VerbosityQuiet Verbosity = iota
	// VerbositySilent logs nothing.
	VerbositySilent
	// VerbosityVerbose logs every skipped frame and, like quiet, the summary
	// when at least one frame was skipped.
	VerbosityVerbose
)

func (v Verbosity) String() string {
	switch v {
	case VerbosityQuiet:
		return "quiet"
	case VerbositySilent:
		return "silent"
	case VerbosityVerbose:
		return "verbose"
	default:
		return fmt.Sprintf("Verbosity(%d)", int(v))
	}
}

// ParseVerbosity parses "quiet", "silent" or "verbose". The empty string selects quiet.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(s) {
	case "quiet", "":
		return VerbosityQuiet, nil
	case "silent":
		return VerbositySilent, nil
	case "verbose":
		return VerbosityVerbose, nil
	default:
		return 0, fmt.Errorf("ingest: unknown verbosity %q", s)
	}
}

// Options configures Build.
type Options struct {
	// Types is the feature-type registry. Defaults to matrix.DefaultTypes().
	Types *matrix.Types
	// Kind selects the matrix layout. Defaults to matrix.KindSparse.
	Kind matrix.Kind
	// FeatureDir is the feature directory relative to the manifest.
	FeatureDir string
	// ObjectNames is copied into the database unvalidated.
	ObjectNames []string
	Verbosity   Verbosity
	// SkipReportBurst limits per-skip log lines in verbose mode to the first
	// SkipReportBurst skips plus one per second afterwards. 0 logs every skip.
	SkipReportBurst int
	Logger          *logging.Logger
	Metrics         metric.Collector
	FileSystem      fs.FileSystem
}

// Option configures Build.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Types:      matrix.DefaultTypes(),
		Kind:       matrix.KindSparse,
		FeatureDir: frame.DefaultFeatureDir,
		Verbosity:  VerbosityQuiet,
		Logger:     logging.Noop(),
		Metrics:    metric.Noop{},
		FileSystem: fs.Default,
	}
}

// WithTypes sets the feature-type registry.
func WithTypes(types *matrix.Types) Option {
	return func(o *Options) {
		if types != nil {
			o.Types = types
		}
	}
}

// WithKind sets the matrix layout.
func WithKind(kind matrix.Kind) Option {
	return func(o *Options) { o.Kind = kind }
}

// WithFeatureDir sets the feature directory relative to the manifest.
func WithFeatureDir(dir string) Option {
	return func(o *Options) { o.FeatureDir = dir }
}

// WithObjectNames sets the descriptive object names stored in the database.
func WithObjectNames(names []string) Option {
	return func(o *Options) { o.ObjectNames = names }
}

// WithVerbosity sets the skip reporting level.
func WithVerbosity(v Verbosity) Option {
	return func(o *Options) { o.Verbosity = v }
}

// WithSkipReportBurst throttles per-skip log lines in verbose mode.
func WithSkipReportBurst(n int) Option {
	return func(o *Options) { o.SkipReportBurst = n }
}

// WithLogger sets the logger. nil keeps the no-op logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(c metric.Collector) Option {
	return func(o *Options) {
		if c != nil {
			o.Metrics = c
		}
	}
}

// WithFileSystem routes manifest and feature file reads through fsys.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *Options) {
		if fsys != nil {
			o.FileSystem = fsys
		}
	}
}
