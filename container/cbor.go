package container

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/hupe1980/scenedb/internal/conv"
	"github.com/hupe1980/scenedb/matrix"
)

// RFC 8746 tag numbers.
const (
	tagMultiDimArray = 40
	tagUint32LE      = 70
	tagUint64LE      = 71
	tagFloat64LE     = 86
)

const cborFormatName = "scenedb-matrices"

type cborDocument struct {
	Format   string                     `cbor:"format"`
	Version  uint16                     `cbor:"version"`
	Matrices map[string]cbor.RawMessage `cbor:"matrices"`
}

// cborSparse is the CSR layout of a sparse entry. Dense entries are encoded
// as a bare tag 40 array instead.
type cborSparse struct {
	Shape   []uint64 `cbor:"shape"`
	IndPtr  cbor.Tag `cbor:"indptr"`
	Indices cbor.Tag `cbor:"indices"`
	Values  cbor.Tag `cbor:"values"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = cbor.CanonicalEncOptions().EncMode(); err != nil {
		panic(err)
	}
	if decMode, err = (cbor.DecOptions{}).DecMode(); err != nil {
		panic(err)
	}
}

func encodeCBOR(w io.Writer, entries []Entry) error {
	doc := cborDocument{
		Format:   cborFormatName,
		Version:  Version,
		Matrices: make(map[string]cbor.RawMessage, len(entries)),
	}

	for _, e := range entries {
		var v any
		switch a := e.Matrix.Array().(type) {
		case *matrix.DenseArray:
			v = cbor.Tag{
				Number: tagMultiDimArray,
				Content: []any{
					[]uint64{uint64(a.Rows), uint64(a.Cols)},
					cbor.Tag{Number: tagFloat64LE, Content: appendFloat64s([]byte{}, a.Data)},
				},
			}
		case *matrix.CSRArray:
			v = cborSparse{
				Shape:   []uint64{uint64(a.Rows), uint64(a.Cols)},
				IndPtr:  cbor.Tag{Number: tagUint64LE, Content: appendUint64s([]byte{}, a.IndPtr)},
				Indices: cbor.Tag{Number: tagUint32LE, Content: appendUint32s([]byte{}, a.Indices)},
				Values:  cbor.Tag{Number: tagFloat64LE, Content: appendFloat64s([]byte{}, a.Data)},
			}
		default:
			return fmt.Errorf("container: matrix %q: unsupported array %T", e.Name, a)
		}

		raw, err := encMode.Marshal(v)
		if err != nil {
			return fmt.Errorf("container: matrix %q: %w", e.Name, err)
		}
		doc.Matrices[e.Name] = raw
	}

	return encMode.NewEncoder(w).Encode(doc)
}

func decodeCBOR(data []byte) (map[string]matrix.Matrix, error) {
	var doc cborDocument
	if err := decMode.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if doc.Format != cborFormatName {
		return nil, fmt.Errorf("%w: format %q", ErrInvalidMagic, doc.Format)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVersion, doc.Version)
	}

	out := make(map[string]matrix.Matrix, len(doc.Matrices))
	for name, raw := range doc.Matrices {
		m, err := decodeCBOREntry(raw)
		if err != nil {
			return nil, fmt.Errorf("matrix %q: %w", name, err)
		}
		out[name] = m
	}
	return out, nil
}

func decodeCBOREntry(raw cbor.RawMessage) (matrix.Matrix, error) {
	var v any
	if err := decMode.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	if tag, ok := v.(cbor.Tag); ok {
		return decodeMultiDimArray(tag)
	}

	var s cborSparse
	if err := decMode.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if len(s.Shape) != 2 {
		return nil, fmt.Errorf("%w: invalid sparse shape", ErrCorrupt)
	}
	rows, err := toInt(s.Shape[0])
	if err != nil {
		return nil, err
	}
	cols, err := toInt(s.Shape[1])
	if err != nil {
		return nil, err
	}
	indptr, err := typedBytes(s.IndPtr, tagUint64LE, 8)
	if err != nil {
		return nil, err
	}
	indices, err := typedBytes(s.Indices, tagUint32LE, 4)
	if err != nil {
		return nil, err
	}
	values, err := typedBytes(s.Values, tagFloat64LE, 8)
	if err != nil {
		return nil, err
	}

	return matrix.FromArray(&matrix.CSRArray{
		Rows:    rows,
		Cols:    cols,
		IndPtr:  bytesToUint64(indptr),
		Indices: bytesToUint32(indices),
		Data:    bytesToFloat64(values),
	})
}

func decodeMultiDimArray(tag cbor.Tag) (matrix.Matrix, error) {
	if tag.Number != tagMultiDimArray {
		return nil, fmt.Errorf("%w: expected multidim tag 40, got %d", ErrCorrupt, tag.Number)
	}
	items, ok := tag.Content.([]any)
	if !ok || len(items) != 2 {
		return nil, fmt.Errorf("%w: invalid multidim array content", ErrCorrupt)
	}
	dims, ok := items[0].([]any)
	if !ok || len(dims) != 2 {
		return nil, fmt.Errorf("%w: invalid multidim dimensions", ErrCorrupt)
	}
	rows, err := toInt(dims[0])
	if err != nil {
		return nil, err
	}
	cols, err := toInt(dims[1])
	if err != nil {
		return nil, err
	}
	flat, ok := items[1].(cbor.Tag)
	if !ok {
		return nil, fmt.Errorf("%w: expected typed array tag", ErrCorrupt)
	}
	data, err := typedBytes(flat, tagFloat64LE, 8)
	if err != nil {
		return nil, err
	}
	return matrix.FromArray(&matrix.DenseArray{Rows: rows, Cols: cols, Data: bytesToFloat64(data)})
}

func typedBytes(tag cbor.Tag, number uint64, elemSize int) ([]byte, error) {
	if tag.Number != number {
		return nil, fmt.Errorf("%w: expected typed array tag %d, got %d", ErrCorrupt, number, tag.Number)
	}
	b, ok := tag.Content.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported typed array content %T", ErrCorrupt, tag.Content)
	}
	if len(b)%elemSize != 0 {
		return nil, fmt.Errorf("%w: typed array of %d bytes", ErrCorrupt, len(b))
	}
	return b, nil
}

func toInt(v any) (int, error) {
	var (
		n   int
		err error
	)
	switch d := v.(type) {
	case uint64:
		n, err = conv.Uint64ToDim(d)
	case int64:
		n, err = conv.Int64ToDim(d)
	default:
		return 0, fmt.Errorf("%w: unsupported dimension type %T", ErrCorrupt, v)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return n, nil
}
