package persistence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/scenedb/blobstore"
	"github.com/hupe1980/scenedb/codec"
	"github.com/hupe1980/scenedb/container"
	"github.com/hupe1980/scenedb/database"
	"github.com/hupe1980/scenedb/frame"
	"github.com/hupe1980/scenedb/matrix"
)

// Save writes db as <name>.json plus a matrix container named after its
// content, <name>-<crc32>.fmat (or .cbor), into store.
//
// name may contain slash-separated directories and an optional ".json"
// suffix. The container is stored first and the document last, so the
// document is the commit point: a failed Save leaves the previously saved
// database loadable and unchanged. The container the old document referenced
// is deleted once the new document is stored.
func Save(ctx context.Context, store blobstore.BlobStore, name string, db *database.DB, optFns ...Option) (err error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()
	defer func() {
		opts.Metrics.RecordSave(time.Since(start), err)
		opts.Logger.LogSave(ctx, name, db.NumFrames(), err)
	}()

	if err := db.Check(); err != nil {
		return err
	}

	base := strings.TrimSuffix(name, DocumentExt)
	docName := base + DocumentExt

	entries := make([]container.Entry, 0, db.Types().Len())
	for featureType, m := range db.Features().All() {
		entries = append(entries, container.Entry{Name: featureType, Matrix: m})
	}

	var (
		payload  bytes.Buffer
		previous string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		if err := container.Encode(&payload, entries, container.Options{
			Format:      opts.Format,
			Compression: opts.Compression,
		}); err != nil {
			return fmt.Errorf("persistence: encode %s: %w", base+opts.Format.Extension(), err)
		}
		return nil
	})
	g.Go(func() error {
		previous = referencedDataFile(gctx, store, opts.Codec, docName)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	dataName := ContainerName(base, opts.Format, payload.Bytes())
	if err := store.Put(ctx, dataName, payload.Bytes()); err != nil {
		return fmt.Errorf("persistence: write %s: %w", dataName, err)
	}

	docBytes, err := codec.MarshalIndent(opts.Codec, NewDocument(db, path.Base(dataName)))
	if err != nil {
		return fmt.Errorf("persistence: encode %s: %w", docName, err)
	}
	if err := store.Put(ctx, docName, docBytes); err != nil {
		return fmt.Errorf("persistence: write %s: %w", docName, err)
	}

	if previous != "" && previous != dataName {
		if err := store.Delete(ctx, previous); err != nil {
			opts.Logger.LogCleanup(ctx, previous, err)
		}
	}
	return nil
}

// ContainerName returns the blob name Save uses for an encoded container:
// base, a dash, the CRC32 (IEEE) of data in hex, and the format extension.
func ContainerName(base string, format container.Format, data []byte) string {
	return fmt.Sprintf("%s-%08x%s", base, crc32.ChecksumIEEE(data), format.Extension())
}

// referencedDataFile returns the container referenced by the document stored
// under docName, or "" when there is no readable document.
func referencedDataFile(ctx context.Context, store blobstore.BlobStore, c codec.Codec, docName string) string {
	data, err := blobstore.ReadAll(ctx, store, docName)
	if err != nil {
		return ""
	}
	doc, err := DecodeDocument(c, docName, data)
	if err != nil {
		return ""
	}
	return path.Join(path.Dir(docName), doc.DataFile)
}

// Load reads the database saved under nameOrPath, with or without the
// ".json" suffix.
//
// A document without required fields yields *SchemaError, a missing matrix
// container *MissingDataFileError. A database whose rows do not line up with
// its frames fails with database.ErrInconsistent.
func Load(ctx context.Context, store blobstore.BlobStore, nameOrPath string, optFns ...Option) (db *database.DB, err error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()
	defer func() {
		frames := 0
		if db != nil {
			frames = db.NumFrames()
		}
		opts.Metrics.RecordLoad(time.Since(start), err)
		opts.Logger.LogLoad(ctx, nameOrPath, frames, err)
	}()

	docName := nameOrPath
	if !strings.HasSuffix(docName, DocumentExt) {
		docName += DocumentExt
	}

	data, err := blobstore.ReadAll(ctx, store, docName)
	if err != nil {
		return nil, fmt.Errorf("persistence: read %s: %w", docName, err)
	}

	doc, err := DecodeDocument(opts.Codec, docName, data)
	if err != nil {
		return nil, err
	}

	types := opts.Types
	if len(doc.FeatureTypes) > 0 {
		if types, err = matrix.NewTypes(doc.FeatureTypes...); err != nil {
			return nil, &SchemaError{Document: docName, Field: "feature_types", cause: err}
		}
	}

	dataName := path.Join(path.Dir(docName), doc.DataFile)
	matrices, err := readContainer(ctx, store, dataName)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, &MissingDataFileError{Document: docName, DataFile: dataName, cause: err}
		}
		return nil, fmt.Errorf("persistence: read %s: %w", dataName, err)
	}

	features, err := rehydrate(types, matrices)
	if err != nil {
		return nil, &SchemaError{Document: docName, Field: "data_file", cause: err}
	}

	var objectNames []string
	if doc.ObjectNames != nil {
		objectNames = append([]string{}, *doc.ObjectNames...)
	}
	db = database.FromStore(features, objectNames)
	for _, r := range doc.Frames {
		db.AddFrame(frame.FromRecord(r))
	}
	if err := db.Check(); err != nil {
		return nil, err
	}
	return db, nil
}

// List returns the names of the databases saved under prefix, without the ".json" suffix.
func List(ctx context.Context, store blobstore.BlobStore, prefix string) ([]string, error) {
	blobs, err := store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, b := range blobs {
		if name, ok := strings.CutSuffix(b, DocumentExt); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func readContainer(ctx context.Context, store blobstore.BlobStore, name string) (map[string]matrix.Matrix, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	if m, ok := blob.(blobstore.Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		return container.Decode(data)
	}

	r, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return container.Decode(data)
}

// rehydrate builds a store from decoded matrices. The layout of the first
// feature type's matrix decides the store kind.
func rehydrate(types *matrix.Types, matrices map[string]matrix.Matrix) (*matrix.Store, error) {
	first, ok := matrices[types.Name(0)]
	if !ok {
		return nil, fmt.Errorf("%w: %s not in data file", matrix.ErrUnknownType, types.Name(0))
	}

	store := matrix.NewStore(types, first.Kind())
	for _, name := range types.Names() {
		m, ok := matrices[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s not in data file", matrix.ErrUnknownType, name)
		}
		if err := store.Replace(name, m); err != nil {
			return nil, err
		}
	}
	return store, nil
}
