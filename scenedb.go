package scenedb

import (
	"context"
	"path/filepath"

	"github.com/hupe1980/scenedb/blobstore"
	"github.com/hupe1980/scenedb/database"
	"github.com/hupe1980/scenedb/ingest"
	"github.com/hupe1980/scenedb/persistence"
)

// DB is a scene feature database.
type DB = database.DB

// Report summarizes a Build run.
type Report = ingest.Report

// Build ingests the manifest at manifestPath and its feature files into a new database.
//
// Frames with missing, unreadable or miscounted feature files are skipped and
// listed in the Report. A malformed manifest line aborts the build.
func Build(ctx context.Context, manifestPath string, optFns ...Option) (*DB, *Report, error) {
	o, err := newOptions(optFns)
	if err != nil {
		return nil, nil, err
	}
	return ingest.Build(ctx, manifestPath, o.ingestOptions()...)
}

// Save writes db to store as <name>.json plus its matrix container.
func Save(ctx context.Context, store blobstore.BlobStore, name string, db *DB, optFns ...Option) error {
	o, err := newOptions(optFns)
	if err != nil {
		return err
	}
	return persistence.Save(ctx, store, name, db, o.persistenceOptions()...)
}

// Load reads the database saved as name, with or without the ".json" suffix.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*DB, error) {
	o, err := newOptions(optFns)
	if err != nil {
		return nil, err
	}
	return persistence.Load(ctx, store, name, o.persistenceOptions()...)
}

// SaveDir writes db into the local directory dir as <name>.json plus its matrix container.
func SaveDir(ctx context.Context, dir, name string, db *DB, optFns ...Option) error {
	return Save(ctx, blobstore.NewLocalStore(dir), name, db, optFns...)
}

// LoadFile reads the database whose metadata document is at path.
func LoadFile(ctx context.Context, path string, optFns ...Option) (*DB, error) {
	return Load(ctx, blobstore.NewLocalStore(filepath.Dir(path)), filepath.Base(path), optFns...)
}
