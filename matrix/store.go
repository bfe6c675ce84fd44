package matrix

import (
	"fmt"
	"iter"
)

// Store is the feature matrix store: one growing matrix per feature type,
// row-aligned with object-view occurrences.
//
// Store is not safe for concurrent mutation.
type Store struct {
	types    *Types
	kind     Kind
	matrices []Matrix
}

// NewStore creates an empty store with one matrix of the given kind per feature type.
func NewStore(types *Types, kind Kind) *Store {
	s := &Store{
		types:    types,
		kind:     kind,
		matrices: make([]Matrix, types.Len()),
	}
	for i := range s.matrices {
		s.matrices[i] = New(kind)
	}
	return s
}

// Types returns the feature type registry.
func (s *Store) Types() *Types { return s.types }

// Kind returns the layout of the store's matrices.
func (s *Store) Kind() Kind { return s.kind }

// Rows returns the row count shared by all matrices.
func (s *Store) Rows() int { return s.matrices[0].Rows() }

// Matrix returns the matrix of a feature type.
func (s *Store) Matrix(featureType string) (Matrix, error) {
	i, ok := s.types.Index(featureType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, featureType)
	}
	return s.matrices[i], nil
}

// All iterates over feature types and their matrices in registry order.
func (s *Store) All() iter.Seq2[string, Matrix] {
	return func(yield func(string, Matrix) bool) {
		for i, m := range s.matrices {
			if !yield(s.types.Name(i), m) {
				return
			}
		}
	}
}

// AppendRow appends one row to a single feature type's matrix.
//
// Callers must append to every feature type, in registry order, for each
// object view to keep the matrices aligned. AppendFrame does this atomically.
func (s *Store) AppendRow(featureType string, row []float64) error {
	m, err := s.Matrix(featureType)
	if err != nil {
		return err
	}
	return m.AppendRow(row)
}

// AppendFrame appends the vectors of all object views of one frame, where
// views[v][t] is the vector of view v for the t-th feature type.
//
// Rows are appended as A(v0), B(v0), A(v1), B(v1), ... Every row is validated
// before the first append, so on error the store is left unchanged.
func (s *Store) AppendFrame(views [][][]float64) error {
	n := s.types.Len()
	for v, vecs := range views {
		if len(vecs) != n {
			return fmt.Errorf("%w: view %d has %d vectors, want %d", ErrTypeCount, v, len(vecs), n)
		}
	}

	column := make([][]float64, len(views))
	for t, m := range s.matrices {
		for v := range views {
			column[v] = views[v][t]
		}
		if err := m.Validate(column); err != nil {
			return fmt.Errorf("feature type %s: %w", s.types.Name(t), err)
		}
	}

	for _, vecs := range views {
		for t, m := range s.matrices {
			if err := m.AppendRow(vecs[t]); err != nil {
				return fmt.Errorf("feature type %s: %w", s.types.Name(t), err)
			}
		}
	}
	return nil
}

// Replace installs m as the matrix of a feature type. It is used when
// rehydrating a store from persisted arrays.
func (s *Store) Replace(featureType string, m Matrix) error {
	i, ok := s.types.Index(featureType)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownType, featureType)
	}
	if m.Kind() != s.kind {
		return fmt.Errorf("%w: %s is %s, store is %s", ErrKindMismatch, featureType, m.Kind(), s.kind)
	}
	s.matrices[i] = m
	return nil
}

// Check verifies that every matrix has the same number of rows.
func (s *Store) Check() error {
	rows := s.matrices[0].Rows()
	for i, m := range s.matrices[1:] {
		if m.Rows() != rows {
			return fmt.Errorf("%w: %s has %d rows, %s has %d",
				ErrRowMismatch, s.types.Name(i+1), m.Rows(), s.types.Name(0), rows)
		}
	}
	return nil
}
