package persistence

import (
	"github.com/hupe1980/scenedb/codec"
	"github.com/hupe1980/scenedb/container"
	"github.com/hupe1980/scenedb/internal/logging"
	"github.com/hupe1980/scenedb/matrix"
	"github.com/hupe1980/scenedb/metric"
)

// Options configures Save and Load.
type Options struct {
	// Codec encodes the metadata document. Defaults to codec.Default.
	Codec codec.Codec
	// Format selects the matrix container encoding written by Save.
	Format container.Format
	// Compression is the block compression of the binary container.
	Compression container.Compression
	// Types is used by Load for documents without feature_types.
	Types   *matrix.Types
	Logger  *logging.Logger
	Metrics metric.Collector
}

// Option configures Save and Load.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Codec:       codec.Default,
		Format:      container.FormatBinary,
		Compression: container.CompressionNone,
		Types:       matrix.DefaultTypes(),
		Logger:      logging.Noop(),
		Metrics:     metric.Noop{},
	}
}

// WithCodec sets the metadata document codec.
func WithCodec(c codec.Codec) Option {
	return func(o *Options) {
		if c != nil {
			o.Codec = c
		}
	}
}

// WithFormat sets the container format written by Save.
func WithFormat(f container.Format) Option {
	return func(o *Options) { o.Format = f }
}

// WithCompression sets the block compression of the binary container.
func WithCompression(c container.Compression) Option {
	return func(o *Options) { o.Compression = c }
}

// WithTypes sets the registry used for documents without feature_types.
func WithTypes(types *matrix.Types) Option {
	return func(o *Options) {
		if types != nil {
			o.Types = types
		}
	}
}

// WithLogger sets the logger.
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
