// Package database holds the in-memory scene feature database: the accepted
// frames, their feature matrices and optional object names.
package database

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hupe1980/scenedb/frame"
	"github.com/hupe1980/scenedb/matrix"
)

// ErrInconsistent is returned when the number of object views does not match
// the number of matrix rows.
var ErrInconsistent = errors.New("database: object views and feature rows disagree")

// DB is the scene feature database.
//
// Invariant: the total number of object views over Frames equals the row
// count of every feature matrix. DB is not safe for concurrent mutation.
type DB struct {
	frames      []*frame.Frame
	features    *matrix.Store
	objectNames []string
	views       int
}

// New creates an empty database.
func New(types *matrix.Types, kind matrix.Kind, objectNames []string) *DB {
	return FromStore(matrix.NewStore(types, kind), objectNames)
}

// FromStore creates a database without frames around an existing store.
// Frames must be added with AddFrame until Check succeeds. A nil objectNames
// means no names; an empty non-nil list is kept as such.
func FromStore(store *matrix.Store, objectNames []string) *DB {
	return &DB{features: store, objectNames: slices.Clone(objectNames)}
}

// Frames returns the accepted frames in insertion order.
func (db *DB) Frames() []*frame.Frame { return slices.Clone(db.frames) }

// NumFrames returns the number of accepted frames.
func (db *DB) NumFrames() int { return len(db.frames) }

// NumViews returns the total number of accepted object views.
func (db *DB) NumViews() int { return db.views }

// Features returns the feature matrix store.
func (db *DB) Features() *matrix.Store { return db.features }

// Types returns the feature type registry.
func (db *DB) Types() *matrix.Types { return db.features.Types() }

// ObjectNames returns the optional human-readable ground-truth class names.
func (db *DB) ObjectNames() []string { return slices.Clone(db.objectNames) }

// Matrix returns the matrix of a feature type.
func (db *DB) Matrix(featureType string) (matrix.Matrix, error) {
	return db.features.Matrix(featureType)
}

// AddFrame appends a frame whose rows are already in the store.
func (db *DB) AddFrame(f *frame.Frame) {
	db.frames = append(db.frames, f)
	db.views += f.NumViews()
}

// Ingest appends the feature vectors of f and then f itself.
// On error neither the store nor the frame list is modified.
func (db *DB) Ingest(f *frame.Frame, features [][][]float64) error {
	if len(features) != f.NumViews() {
		return fmt.Errorf("%w: %s has %d views but %d feature sets", ErrInconsistent, f.Filename(), f.NumViews(), len(features))
	}
	if err := db.features.AppendFrame(features); err != nil {
		return err
	}
	db.AddFrame(f)
	return nil
}

// Check verifies the row-alignment invariant.
func (db *DB) Check() error {
	if err := db.features.Check(); err != nil {
		return err
	}
	if rows := db.features.Rows(); rows != db.views {
		return fmt.Errorf("%w: %d views, %d rows", ErrInconsistent, db.views, rows)
	}
	return nil
}

// Equal reports whether two databases hold the same frames, object names,
// feature types and matrix contents.
func (db *DB) Equal(other *DB) bool {
	if (db.objectNames == nil) != (other.objectNames == nil) || !slices.Equal(db.objectNames, other.objectNames) {
		return false
	}
	if !slices.EqualFunc(db.frames, other.frames, (*frame.Frame).Equal) {
		return false
	}
	if !db.Types().Equal(other.Types()) {
		return false
	}
	for name, m := range db.features.All() {
		om, err := other.features.Matrix(name)
		if err != nil || !matrix.Equal(m, om) {
			return false
		}
	}
	return true
}
