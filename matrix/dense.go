package matrix

import "slices"

// Dense is a growing row-major matrix backed by one contiguous buffer.
//
// Rows are stored as data[i*cols : (i+1)*cols]. The first appended row fixes
// the width; later rows of a different width are rejected with ErrWidthMismatch.
type Dense struct {
	rows int
	cols int
	data []float64
}

// NewDense creates an empty dense matrix.
func NewDense() *Dense {
	return &Dense{}
}

// DenseFromArray creates a dense matrix holding a copy of a.
func DenseFromArray(a *DenseArray) (*Dense, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &Dense{rows: a.Rows, cols: a.Cols, data: slices.Clone(a.Data)}, nil
}

// Kind implements Matrix.
func (d *Dense) Kind() Kind { return KindDense }

// Rows implements Matrix.
func (d *Dense) Rows() int { return d.rows }

// Cols implements Matrix.
func (d *Dense) Cols() int { return d.cols }

// At implements Matrix.
func (d *Dense) At(i, j int) float64 {
	return d.data[i*d.cols+j]
}

// Row implements Matrix.
func (d *Dense) Row(i int) []float64 {
	return slices.Clone(d.data[i*d.cols : (i+1)*d.cols])
}

// Validate implements Matrix.
func (d *Dense) Validate(rows [][]float64) error {
	width, n := d.cols, d.rows
	for _, row := range rows {
		if n == 0 {
			width = len(row)
		} else if len(row) != width {
			return ErrWidthMismatch
		}
		n++
	}
	return nil
}

// AppendRow implements Matrix.
func (d *Dense) AppendRow(row []float64) error {
	if d.rows == 0 {
		d.cols = len(row)
	} else if len(row) != d.cols {
		return ErrWidthMismatch
	}
	d.data = append(d.data, row...)
	d.rows++
	return nil
}

// Array implements Matrix.
func (d *Dense) Array() Array {
	return &DenseArray{Rows: d.rows, Cols: d.cols, Data: slices.Clone(d.data)}
}
