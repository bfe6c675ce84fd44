package scenedb

import (
	"github.com/hupe1980/scenedb/codec"
	"github.com/hupe1980/scenedb/config"
	"github.com/hupe1980/scenedb/container"
	"github.com/hupe1980/scenedb/frame"
	"github.com/hupe1980/scenedb/ingest"
	"github.com/hupe1980/scenedb/internal/fs"
	"github.com/hupe1980/scenedb/matrix"
	"github.com/hupe1980/scenedb/persistence"
)

// Verbosity controls how skipped frames are reported.
type Verbosity = ingest.Verbosity

const (
	VerbosityQuiet   = ingest.VerbosityQuiet
	VerbositySilent  = ingest.VerbositySilent
	VerbosityVerbose = ingest.VerbosityVerbose
)

// Kind selects the matrix layout.
type Kind = matrix.Kind

const (
	KindDense  = matrix.KindDense
	KindSparse = matrix.KindSparse
)

// Format selects the matrix container encoding.
type Format = container.Format

const (
	FormatBinary = container.FormatBinary
	FormatCBOR   = container.FormatCBOR
)

// Compression selects the block compression of the binary container.
type Compression = container.Compression

const (
	CompressionNone = container.CompressionNone
	CompressionLZ4  = container.CompressionLZ4
	CompressionZSTD = container.CompressionZSTD
)

type options struct {
	types           *matrix.Types
	kind            matrix.Kind
	featureDir      string
	objectNames     []string
	verbosity       Verbosity
	skipReportBurst int
	codec           codec.Codec
	format          Format
	compression     Compression
	logger          *Logger
	metrics         MetricsCollector
	fileSystem      fs.FileSystem
	err             error
}

// Option configures Build, Save and Load.
type Option func(*options)

func newOptions(optFns []Option) (options, error) {
	o := options{
		kind:       matrix.KindSparse,
		featureDir: frame.DefaultFeatureDir,
		codec:      codec.Default,
		format:     FormatBinary,
		logger:     NoopLogger(),
		metrics:    NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o, o.err
}

func (o options) ingestOptions() []ingest.Option {
	return []ingest.Option{
		ingest.WithTypes(o.types),
		ingest.WithKind(o.kind),
		ingest.WithFeatureDir(o.featureDir),
		ingest.WithObjectNames(o.objectNames),
		ingest.WithVerbosity(o.verbosity),
		ingest.WithSkipReportBurst(o.skipReportBurst),
		ingest.WithLogger(o.logger),
		ingest.WithMetrics(o.metrics),
		ingest.WithFileSystem(o.fileSystem),
	}
}

func (o options) persistenceOptions() []persistence.Option {
	return []persistence.Option{
		persistence.WithTypes(o.types),
		persistence.WithCodec(o.codec),
		persistence.WithFormat(o.format),
		persistence.WithCompression(o.compression),
		persistence.WithLogger(o.logger),
		persistence.WithMetrics(o.metrics),
	}
}

// WithFeatureTypes sets the ordered feature-type registry.
//
// Default: SURF, color, SURF_pairs, color_pairs, color_triplets.
func WithFeatureTypes(names ...string) Option {
	return func(o *options) {
		types, err := matrix.NewTypes(names...)
		if err != nil {
			o.err = err
			return
		}
		o.types = types
	}
}

// WithKind selects dense or sparse feature matrices.
//
// Default: KindSparse.
func WithKind(kind Kind) Option {
	return func(o *options) { o.kind = kind }
}

// WithFeatureDir sets the feature directory relative to the manifest.
//
// Default: "histograms".
func WithFeatureDir(dir string) Option {
	return func(o *options) { o.featureDir = dir }
}

// WithObjectNames attaches descriptive object names to built databases.
func WithObjectNames(names []string) Option {
	return func(o *options) { o.objectNames = names }
}

// WithVerbosity sets how skipped frames are reported.
// It never changes which frames are accepted.
func WithVerbosity(v Verbosity) Option {
	return func(o *options) { o.verbosity = v }
}

// WithSkipReportBurst limits per-skip log lines in verbose mode to n,
// followed by at most one per second.
func WithSkipReportBurst(n int) Option {
	return func(o *options) { o.skipReportBurst = n }
}

// WithCodec configures the codec of the metadata document.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithFormat selects the matrix container encoding written by Save.
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithCompression selects the block compression of the binary container.
func WithCompression(c Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithLogger sets the logger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetricsCollector sets the metrics collector.
func WithMetricsCollector(c MetricsCollector) Option {
	return func(o *options) {
		if c != nil {
			o.metrics = c
		}
	}
}

// WithConfig applies every setting of cfg except storage, which is used by OpenStore.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		if err := cfg.Validate(); err != nil {
			o.err = err
			return
		}
		// Validate guarantees the accessors below succeed.
		o.types, _ = cfg.Types()
		o.kind, _ = cfg.Kind()
		o.verbosity, _ = cfg.VerbosityLevel()
		o.format, _ = cfg.ContainerFormat()
		o.compression, _ = cfg.Compression()
		o.codec, _ = cfg.MetadataCodec()
		o.featureDir = cfg.FeatureDir
		o.skipReportBurst = cfg.SkipReportBurst
		if len(cfg.ObjectNames) > 0 {
			o.objectNames = cfg.ObjectNames
		}
	}
}

func withFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) { o.fileSystem = fsys }
}
