package matrix

import (
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// sparseRow keeps the non-zero columns of a row in a roaring bitmap and their
// values in ascending column order.
type sparseRow struct {
	cols   *roaring.Bitmap // nil for an all-zero row
	values []float64
}

// Sparse is a growing list-of-rows matrix storing only non-zero entries.
//
// The width is the length of the longest row appended so far; shorter rows
// are implicitly zero-padded.
type Sparse struct {
	rows []sparseRow
	cols int
}

// NewSparse creates an empty sparse matrix.
func NewSparse() *Sparse {
	return &Sparse{}
}

// SparseFromArray creates a sparse matrix holding the entries of a.
func SparseFromArray(a *CSRArray) (*Sparse, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	s := &Sparse{rows: make([]sparseRow, a.Rows), cols: a.Cols}
	for i := range a.Rows {
		lo, hi := a.IndPtr[i], a.IndPtr[i+1]
		if lo == hi {
			continue
		}
		s.rows[i] = sparseRow{
			cols:   roaring.BitmapOf(a.Indices[lo:hi]...),
			values: slices.Clone(a.Data[lo:hi]),
		}
	}
	return s, nil
}

// Kind implements Matrix.
func (s *Sparse) Kind() Kind { return KindSparse }

// Rows implements Matrix.
func (s *Sparse) Rows() int { return len(s.rows) }

// Cols implements Matrix.
func (s *Sparse) Cols() int { return s.cols }

// NNZ returns the number of stored entries.
func (s *Sparse) NNZ() int {
	n := 0
	for _, r := range s.rows {
		n += len(r.values)
	}
	return n
}

// At implements Matrix.
func (s *Sparse) At(i, j int) float64 {
	r := s.rows[i]
	if r.cols == nil || j < 0 || uint64(j) > math.MaxUint32 || !r.cols.Contains(uint32(j)) {
		return 0
	}
	return r.values[r.cols.Rank(uint32(j))-1]
}

// Row implements Matrix.
func (s *Sparse) Row(i int) []float64 {
	out := make([]float64, s.cols)
	r := s.rows[i]
	if r.cols == nil {
		return out
	}
	it := r.cols.Iterator()
	for k := 0; it.HasNext(); k++ {
		out[it.Next()] = r.values[k]
	}
	return out
}

// Validate implements Matrix.
func (s *Sparse) Validate(rows [][]float64) error {
	for _, row := range rows {
		if uint64(len(row)) > math.MaxUint32 {
			return ErrTooWide
		}
	}
	return nil
}

// AppendRow implements Matrix.
func (s *Sparse) AppendRow(row []float64) error {
	if uint64(len(row)) > math.MaxUint32 {
		return ErrTooWide
	}
	var r sparseRow
	for j, x := range row {
		// Only +0 is implicit; -0 keeps its sign.
		if math.Float64bits(x) == 0 {
			continue
		}
		if r.cols == nil {
			r.cols = roaring.New()
		}
		r.cols.Add(uint32(j))
		r.values = append(r.values, x)
	}
	if r.cols != nil {
		r.cols.RunOptimize()
	}
	s.rows = append(s.rows, r)
	s.cols = max(s.cols, len(row))
	return nil
}

// Array implements Matrix. It returns a CSRArray.
func (s *Sparse) Array() Array {
	nnz := s.NNZ()
	a := &CSRArray{
		Rows:    len(s.rows),
		Cols:    s.cols,
		IndPtr:  make([]uint64, len(s.rows)+1),
		Indices: make([]uint32, 0, nnz),
		Data:    make([]float64, 0, nnz),
	}
	for i, r := range s.rows {
		if r.cols != nil {
			a.Indices = append(a.Indices, r.cols.ToArray()...)
			a.Data = append(a.Data, r.values...)
		}
		a.IndPtr[i+1] = uint64(len(a.Data))
	}
	return a
}
