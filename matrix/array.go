package matrix

import "fmt"

// Array is the static representation of a matrix used for serialization.
type Array interface {
	// Shape returns rows and columns.
	Shape() (rows, cols int)
	// Validate checks internal consistency.
	Validate() error
}

// DenseArray is a row-major dense matrix.
type DenseArray struct {
	Rows int
	Cols int
	Data []float64
}

// Shape implements Array.
func (a *DenseArray) Shape() (int, int) { return a.Rows, a.Cols }

// Validate implements Array.
func (a *DenseArray) Validate() error {
	if a.Rows < 0 || a.Cols < 0 {
		return fmt.Errorf("%w: negative shape %dx%d", ErrInvalidArray, a.Rows, a.Cols)
	}
	if len(a.Data) != a.Rows*a.Cols {
		return fmt.Errorf("%w: %dx%d dense array holds %d values", ErrInvalidArray, a.Rows, a.Cols, len(a.Data))
	}
	return nil
}

// CSRArray is a compressed sparse row matrix.
// Row i owns Indices[IndPtr[i]:IndPtr[i+1]] and the matching Data entries;
// column indices are strictly increasing within a row.
type CSRArray struct {
	Rows    int
	Cols    int
	IndPtr  []uint64
	Indices []uint32
	Data    []float64
}

// Shape implements Array.
func (a *CSRArray) Shape() (int, int) { return a.Rows, a.Cols }

// NNZ returns the number of stored entries.
func (a *CSRArray) NNZ() int { return len(a.Data) }

// Validate implements Array.
func (a *CSRArray) Validate() error {
	if a.Rows < 0 || a.Cols < 0 {
		return fmt.Errorf("%w: negative shape %dx%d", ErrInvalidArray, a.Rows, a.Cols)
	}
	if len(a.IndPtr) != a.Rows+1 {
		return fmt.Errorf("%w: indptr has %d entries for %d rows", ErrInvalidArray, len(a.IndPtr), a.Rows)
	}
	if len(a.Indices) != len(a.Data) {
		return fmt.Errorf("%w: %d indices for %d values", ErrInvalidArray, len(a.Indices), len(a.Data))
	}
	if a.IndPtr[0] != 0 || a.IndPtr[a.Rows] != uint64(len(a.Data)) {
		return fmt.Errorf("%w: indptr does not span the data", ErrInvalidArray)
	}
	for i := range a.Rows {
		lo, hi := a.IndPtr[i], a.IndPtr[i+1]
		if lo > hi {
			return fmt.Errorf("%w: indptr decreases at row %d", ErrInvalidArray, i)
		}
		for k := lo; k < hi; k++ {
			col := a.Indices[k]
			if int64(col) >= int64(a.Cols) {
				return fmt.Errorf("%w: column %d out of range in row %d", ErrInvalidArray, col, i)
			}
			if k > lo && a.Indices[k-1] >= col {
				return fmt.Errorf("%w: columns not increasing in row %d", ErrInvalidArray, i)
			}
		}
	}
	return nil
}
