// Package config loads scene database settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/scenedb/codec"
	"github.com/hupe1980/scenedb/container"
	"github.com/hupe1980/scenedb/frame"
	"github.com/hupe1980/scenedb/ingest"
	"github.com/hupe1980/scenedb/matrix"
)

// Storage kinds.
const (
	StorageLocal  = "local"
	StorageMemory = "memory"
	StorageS3     = "s3"
	StorageMinIO  = "minio"
)

// Config represents the scene database configuration.
type Config struct {
	FeatureTypes    []string        `yaml:"feature_types"`
	FeatureDir      string          `yaml:"feature_dir"`
	MatrixKind      string          `yaml:"matrix_kind"`
	Verbosity       string          `yaml:"verbosity"`
	SkipReportBurst int             `yaml:"skip_report_burst,omitempty"`
	ObjectNames     []string        `yaml:"object_names,omitempty"`
	Container       ContainerConfig `yaml:"container"`
	Codec           string          `yaml:"codec"`
	Storage         StorageConfig   `yaml:"storage"`
}

// ContainerConfig selects the matrix container encoding.
type ContainerConfig struct {
	Format      string `yaml:"format"`      // "binary" or "cbor"
	Compression string `yaml:"compression"` // "none", "lz4" or "zstd"
}

// StorageConfig describes where databases are saved to and loaded from.
type StorageConfig struct {
	Kind            string `yaml:"kind"` // "local", "memory", "s3" or "minio"
	Path            string `yaml:"path,omitempty"`
	Bucket          string `yaml:"bucket,omitempty"`
	Prefix          string `yaml:"prefix,omitempty"`
	Endpoint        string `yaml:"endpoint,omitempty"`
	Region          string `yaml:"region,omitempty"`
	AccessKeyID     string `yaml:"access_key_id,omitempty"`     // Supports ${ENV_VAR} expansion
	SecretAccessKey string `yaml:"secret_access_key,omitempty"` // Supports ${ENV_VAR} expansion
	UseSSL          bool   `yaml:"use_ssl,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		FeatureTypes: matrix.DefaultTypes().Names(),
		FeatureDir:   frame.DefaultFeatureDir,
		MatrixKind:   matrix.KindSparse.String(),
		Verbosity:    ingest.VerbosityQuiet.String(),
		Container: ContainerConfig{
			Format:      container.FormatBinary.String(),
			Compression: container.CompressionNone.String(),
		},
		Codec: codec.Default.Name(),
		Storage: StorageConfig{
			Kind: StorageLocal,
			Path: ".",
		},
	}
}

// Load reads the YAML file at path on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default, expands ${ENV_VAR} references and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) expandEnvVars() {
	c.FeatureDir = os.ExpandEnv(c.FeatureDir)
	c.Storage.Path = os.ExpandEnv(c.Storage.Path)
	c.Storage.Bucket = os.ExpandEnv(c.Storage.Bucket)
	c.Storage.Prefix = os.ExpandEnv(c.Storage.Prefix)
	c.Storage.Endpoint = os.ExpandEnv(c.Storage.Endpoint)
	c.Storage.Region = os.ExpandEnv(c.Storage.Region)
	c.Storage.AccessKeyID = os.ExpandEnv(c.Storage.AccessKeyID)
	c.Storage.SecretAccessKey = os.ExpandEnv(c.Storage.SecretAccessKey)
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if _, err := c.Types(); err != nil {
		return err
	}
	if c.FeatureDir == "" {
		return errors.New("feature_dir must not be empty")
	}
	if _, err := c.Kind(); err != nil {
		return err
	}
	if _, err := c.VerbosityLevel(); err != nil {
		return err
	}
	if c.SkipReportBurst < 0 {
		return fmt.Errorf("skip_report_burst must not be negative, got %d", c.SkipReportBurst)
	}
	if _, err := c.ContainerFormat(); err != nil {
		return err
	}
	if _, err := c.Compression(); err != nil {
		return err
	}
	if _, err := c.MetadataCodec(); err != nil {
		return err
	}
	return c.Storage.Validate()
}

// Validate checks the storage settings for the selected kind.
func (s *StorageConfig) Validate() error {
	switch s.Kind {
	case StorageLocal:
		if s.Path == "" {
			return errors.New("storage.path is required for local storage")
		}
	case StorageMemory:
	case StorageS3:
		if s.Bucket == "" {
			return errors.New("storage.bucket is required for s3 storage")
		}
	case StorageMinIO:
		if s.Bucket == "" || s.Endpoint == "" {
			return errors.New("storage.bucket and storage.endpoint are required for minio storage")
		}
	default:
		return fmt.Errorf("unknown storage kind %q", s.Kind)
	}
	return nil
}

// Types returns the feature-type registry.
func (c *Config) Types() (*matrix.Types, error) {
	return matrix.NewTypes(c.FeatureTypes...)
}

// Kind returns the matrix layout.
func (c *Config) Kind() (matrix.Kind, error) {
	return matrix.ParseKind(c.MatrixKind)
}

// VerbosityLevel returns the skip reporting level.
func (c *Config) VerbosityLevel() (ingest.Verbosity, error) {
	return ingest.ParseVerbosity(c.Verbosity)
}

// ContainerFormat returns the matrix container format.
func (c *Config) ContainerFormat() (container.Format, error) {
	return container.ParseFormat(c.Container.Format)
}

// Compression returns the block compression of the binary container.
func (c *Config) Compression() (container.Compression, error) {
	return container.ParseCompression(c.Container.Compression)
}

// MetadataCodec returns the codec used for the metadata document.
func (c *Config) MetadataCodec() (codec.Codec, error) {
	if c.Codec == "" {
		return codec.Default, nil
	}
	cd, ok := codec.ByName(c.Codec)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q", c.Codec)
	}
	return cd, nil
}
