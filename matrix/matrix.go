package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies the storage layout of a Matrix.
type Kind uint8

const (
	// KindDense stores rows in one contiguous buffer.
	KindDense Kind = 1
	// KindSparse stores only the non-zero entries of each row.
	KindSparse Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindDense:
		return "dense"
	case KindSparse:
		return "sparse"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind parses "dense" or "sparse".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "dense":
		return KindDense, nil
	case "sparse", "":
		return KindSparse, nil
	default:
		return 0, fmt.Errorf("matrix: unknown kind %q", s)
	}
}

// Matrix is an append-only numeric matrix that grows one row at a time.
//
// Implementations are not safe for concurrent mutation.
type Matrix interface {
	// Kind returns the storage layout.
	Kind() Kind
	// Rows returns the number of rows appended so far.
	Rows() int
	// Cols returns the current width.
	Cols() int
	// At returns the element at row i, column j. Columns beyond a row's stored
	// length read as zero.
	At(i, j int) float64
	// Row returns a dense copy of row i with Cols() elements.
	Row(i int) []float64
	// Validate reports whether rows could be appended in order without error.
	// It does not modify the matrix.
	Validate(rows [][]float64) error
	// AppendRow appends one row in amortized O(1).
	AppendRow(row []float64) error
	// Array converts the matrix to its static array representation.
	Array() Array
}

// New returns an empty matrix of the given kind.
func New(kind Kind) Matrix {
	if kind == KindDense {
		return NewDense()
	}
	return NewSparse()
}

// FromArray rehydrates a matrix from its array representation.
func FromArray(a Array) (Matrix, error) {
	switch arr := a.(type) {
	case *DenseArray:
		return DenseFromArray(arr)
	case *CSRArray:
		return SparseFromArray(arr)
	default:
		return nil, fmt.Errorf("%w: unsupported array %T", ErrInvalidArray, a)
	}
}

// Equal reports whether two matrices have the same shape and bit-identical
// elements, regardless of their layout. NaN equals NaN; -0 differs from +0.
func Equal(a, b Matrix) bool {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	for i := range a.Rows() {
		ra, rb := a.Row(i), b.Row(i)
		for j := range ra {
			if math.Float64bits(ra[j]) != math.Float64bits(rb[j]) {
				return false
			}
		}
	}
	return true
}
