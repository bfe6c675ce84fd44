package container

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/scenedb/matrix"
)

func buildMatrix(t *testing.T, kind matrix.Kind, rows ...[]float64) matrix.Matrix {
	t.Helper()
	m := matrix.New(kind)
	for _, r := range rows {
		require.NoError(t, m.AppendRow(r))
	}
	return m
}

func sampleEntries(t *testing.T) []Entry {
	t.Helper()
	return []Entry{
		{Name: "SURF", Matrix: buildMatrix(t, matrix.KindSparse,
			[]float64{0, 1.5, 0, 0},
			[]float64{},
			[]float64{2, 0, 0, -3.25},
		)},
		{Name: "color", Matrix: buildMatrix(t, matrix.KindDense,
			[]float64{0.1, 0.2, 0.3},
			[]float64{1e-300, 0, 7},
			[]float64{-1, 2, 1e300},
		)},
		{Name: "empty", Matrix: matrix.New(matrix.KindDense)},
		{Name: "special_sparse", Matrix: buildMatrix(t, matrix.KindSparse,
			[]float64{math.Copysign(0, -1), math.NaN(), math.Inf(1)},
		)},
		{Name: "special_dense", Matrix: buildMatrix(t, matrix.KindDense,
			[]float64{math.Copysign(0, -1), math.NaN(), math.Inf(-1)},
		)},
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []Options{
		{Format: FormatBinary, Compression: CompressionNone},
		{Format: FormatBinary, Compression: CompressionLZ4},
		{Format: FormatBinary, Compression: CompressionZSTD},
		{Format: FormatCBOR},
	}

	for _, opts := range cases {
		t.Run(opts.Format.String()+"/"+opts.Compression.String(), func(t *testing.T) {
			entries := sampleEntries(t)

			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, entries, opts))

			f, err := DetectFormat(buf.Bytes())
			require.NoError(t, err)
			assert.Equal(t, opts.Format, f)

			got, err := Decode(buf.Bytes())
			require.NoError(t, err)
			require.Len(t, got, len(entries))

			for _, e := range entries {
				m, ok := got[e.Name]
				require.True(t, ok, e.Name)
				assert.Equal(t, e.Matrix.Kind(), m.Kind(), e.Name)
				assert.True(t, matrix.Equal(e.Matrix, m), e.Name)
			}
		})
	}
}

func TestCompressionShrinksRepetitiveData(t *testing.T) {
	m := matrix.NewDense()
	for range 256 {
		require.NoError(t, m.AppendRow(make([]float64, 64)))
	}
	entries := []Entry{{Name: "zeros", Matrix: m}}

	var raw, lz, zs bytes.Buffer
	require.NoError(t, Encode(&raw, entries, Options{}))
	require.NoError(t, Encode(&lz, entries, Options{Compression: CompressionLZ4}))
	require.NoError(t, Encode(&zs, entries, Options{Compression: CompressionZSTD}))

	assert.Less(t, lz.Len(), raw.Len())
	assert.Less(t, zs.Len(), raw.Len())

	got, err := Decode(zs.Bytes())
	require.NoError(t, err)
	assert.True(t, matrix.Equal(m, got["zeros"]))
}

func TestDecodeBinaryErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleEntries(t), Options{Compression: CompressionLZ4}))
	data := buf.Bytes()

	t.Run("checksum", func(t *testing.T) {
		corrupt := bytes.Clone(data)
		corrupt[len(corrupt)/2] ^= 0xff
		_, err := Decode(corrupt)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("magic", func(t *testing.T) {
		corrupt := bytes.Clone(data)
		corrupt[0] = 'X'
		_, err := Decode(corrupt)
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("version", func(t *testing.T) {
		corrupt := bytes.Clone(data)
		binary.LittleEndian.PutUint16(corrupt[4:], 9)
		body := corrupt[:len(corrupt)-checksumSize]
		binary.LittleEndian.PutUint32(corrupt[len(body):], crc(body))
		_, err := Decode(corrupt)
		assert.ErrorIs(t, err, ErrInvalidVersion)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Decode(data[:6])
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestEncodeRejectsDuplicateNames(t *testing.T) {
	m := matrix.NewDense()
	err := Encode(&bytes.Buffer{}, []Entry{{Name: "a", Matrix: m}, {Name: "a", Matrix: m}}, Options{})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestCBORUsesTypedArrays(t *testing.T) {
	entries := []Entry{{Name: "color", Matrix: buildMatrix(t, matrix.KindDense, []float64{1, 2}, []float64{3, 4})}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, entries, Options{Format: FormatCBOR}))

	var doc map[string]any
	require.NoError(t, cbor.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, cborFormatName, doc["format"])

	matrices, ok := doc["matrices"].(map[any]any)
	require.True(t, ok)
	tag, ok := matrices["color"].(cbor.Tag)
	require.True(t, ok)
	assert.Equal(t, uint64(tagMultiDimArray), tag.Number)

	items := tag.Content.([]any)
	assert.Equal(t, []any{uint64(2), uint64(2)}, items[0])
	assert.Equal(t, uint64(tagFloat64LE), items[1].(cbor.Tag).Number)
}

func TestDecodeCBORWrongFormat(t *testing.T) {
	b, err := cbor.Marshal(map[string]any{"format": "other", "version": 1, "matrices": map[string]any{}})
	require.NoError(t, err)
	_, err = Decode(b)
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestParse(t *testing.T) {
	f, err := ParseFormat("CBOR")
	require.NoError(t, err)
	assert.Equal(t, FormatCBOR, f)
	assert.Equal(t, ".cbor", f.Extension())
	assert.Equal(t, ".fmat", FormatBinary.Extension())

	_, err = ParseFormat("hdf5")
	assert.Error(t, err)

	c, err := ParseCompression("zstd")
	require.NoError(t, err)
	assert.Equal(t, CompressionZSTD, c)

	_, err = ParseCompression("gzip")
	assert.Error(t, err)
}

func crc(b []byte) uint32 {
	cw := &checksumWriter{w: &bytes.Buffer{}}
	_, _ = cw.Write(b)
	return cw.crc
}
