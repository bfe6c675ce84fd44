package container

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/hupe1980/scenedb/internal/conv"
	"github.com/hupe1980/scenedb/matrix"
)

// Version is the current binary format version.
const Version uint16 = 1

var magicBytes = [4]byte{'F', 'M', 'A', 'T'}

// FileHeader is the fixed-size binary header.
type FileHeader struct {
	Magic       [4]byte
	Version     uint16
	Compression Compression
	_           uint8
	Count       uint32
}

const (
	headerSize   = 12
	checksumSize = 4
)

// entryHeader precedes the payload block of each matrix. The name bytes
// follow it directly.
type entryHeader struct {
	NameLen uint16
	Kind    matrix.Kind
	_       uint8
	Rows    uint64
	Cols    uint64
}

const entryHeaderSize = 20

// checksumWriter computes a running CRC32 of everything written through it.
type checksumWriter struct {
	w   io.Writer
	crc uint32
}

func (cw *checksumWriter) Write(p []byte) (int, error) {
	cw.crc = crc32.Update(cw.crc, crc32.IEEETable, p)
	return cw.w.Write(p)
}

func encodeBinary(w io.Writer, entries []Entry, c Compression) error {
	bw := bufio.NewWriter(w)
	cw := &checksumWriter{w: bw}

	count, err := conv.IntToUint32(len(entries))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTooLarge, err)
	}
	header := FileHeader{Magic: magicBytes, Version: Version, Compression: c, Count: count}
	if err := binary.Write(cw, binary.LittleEndian, &header); err != nil {
		return err
	}

	var block []byte
	for _, e := range entries {
		nameLen, err := conv.IntToUint16(len(e.Name))
		if err != nil {
			return fmt.Errorf("%w: name of entry %q: %w", ErrTooLarge, e.Name, err)
		}
		eh := entryHeader{
			NameLen: nameLen,
			Kind:    e.Matrix.Kind(),
			Rows:    uint64(e.Matrix.Rows()),
			Cols:    uint64(e.Matrix.Cols()),
		}
		if err := binary.Write(cw, binary.LittleEndian, &eh); err != nil {
			return err
		}
		if _, err := io.WriteString(cw, e.Name); err != nil {
			return err
		}

		block, err = appendBlock(block[:0], payload(e.Matrix), c)
		if err != nil {
			return fmt.Errorf("matrix %q: %w", e.Name, err)
		}
		if _, err := cw.Write(block); err != nil {
			return err
		}
	}

	if err := binary.Write(bw, binary.LittleEndian, cw.crc); err != nil {
		return err
	}
	return bw.Flush()
}

// payload serializes the array form of m. Dense matrices are rows*cols
// float64 values; sparse matrices are [nnz u64][indptr u64...][indices u32...][values f64...].
func payload(m matrix.Matrix) []byte {
	switch a := m.Array().(type) {
	case *matrix.DenseArray:
		return appendFloat64s(make([]byte, 0, len(a.Data)*8), a.Data)
	case *matrix.CSRArray:
		nnz := a.NNZ()
		buf := make([]byte, 0, 8+len(a.IndPtr)*8+nnz*12)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(nnz))
		buf = appendUint64s(buf, a.IndPtr)
		buf = appendUint32s(buf, a.Indices)
		return appendFloat64s(buf, a.Data)
	default:
		return nil
	}
}

func decodeBinary(data []byte) (map[string]matrix.Matrix, error) {
	if len(data) < headerSize+checksumSize {
		return nil, fmt.Errorf("%w: file too small", ErrCorrupt)
	}

	body := data[:len(data)-checksumSize]
	expected := binary.LittleEndian.Uint32(data[len(body):])
	if actual := crc32.ChecksumIEEE(body); actual != expected {
		return nil, fmt.Errorf("%w: expected 0x%08x, got 0x%08x", ErrChecksum, expected, actual)
	}

	var header FileHeader
	if _, err := binary.Decode(body, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if header.Magic != magicBytes {
		return nil, ErrInvalidMagic
	}
	if header.Version != Version {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVersion, header.Version)
	}

	out := make(map[string]matrix.Matrix, header.Count)
	off := headerSize
	for i := uint32(0); i < header.Count; i++ {
		var eh entryHeader
		if _, err := binary.Decode(body[off:], binary.LittleEndian, &eh); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrCorrupt, i, err)
		}
		off += entryHeaderSize
		if len(body)-off < int(eh.NameLen) {
			return nil, fmt.Errorf("%w: entry %d: truncated name", ErrCorrupt, i)
		}
		name := string(body[off : off+int(eh.NameLen)])
		off += int(eh.NameLen)
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}

		raw, n, err := readBlock(body[off:], header.Compression)
		if err != nil {
			return nil, fmt.Errorf("matrix %q: %w", name, err)
		}
		off += n

		m, err := fromPayload(eh, raw)
		if err != nil {
			return nil, fmt.Errorf("matrix %q: %w", name, err)
		}
		out[name] = m
	}
	if off != len(body) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(body)-off)
	}
	return out, nil
}

func fromPayload(eh entryHeader, raw []byte) (matrix.Matrix, error) {
	rows, err := conv.Uint64ToDim(eh.Rows)
	if err != nil {
		return nil, fmt.Errorf("%w: rows: %w", ErrCorrupt, err)
	}
	cols, err := conv.Uint64ToDim(eh.Cols)
	if err != nil {
		return nil, fmt.Errorf("%w: cols: %w", ErrCorrupt, err)
	}

	switch eh.Kind {
	case matrix.KindDense:
		if uint64(len(raw)) != eh.Rows*eh.Cols*8 {
			return nil, fmt.Errorf("%w: dense payload of %d bytes for %dx%d", ErrCorrupt, len(raw), rows, cols)
		}
		return matrix.FromArray(&matrix.DenseArray{Rows: rows, Cols: cols, Data: bytesToFloat64(raw)})
	case matrix.KindSparse:
		if len(raw) < 8 {
			return nil, fmt.Errorf("%w: sparse payload too small", ErrCorrupt)
		}
		nnz := binary.LittleEndian.Uint64(raw)
		want := 8 + (eh.Rows+1)*8 + nnz*12
		if nnz > uint64(len(raw)) || uint64(len(raw)) != want {
			return nil, fmt.Errorf("%w: sparse payload of %d bytes for %d rows, %d values", ErrCorrupt, len(raw), rows, nnz)
		}
		raw = raw[8:]
		indptr := bytesToUint64(raw[:(rows+1)*8])
		raw = raw[(rows+1)*8:]
		indices := bytesToUint32(raw[:nnz*4])
		values := bytesToFloat64(raw[nnz*4:])
		return matrix.FromArray(&matrix.CSRArray{Rows: rows, Cols: cols, IndPtr: indptr, Indices: indices, Data: values})
	default:
		return nil, fmt.Errorf("%w: unknown matrix kind %d", ErrCorrupt, eh.Kind)
	}
}
