package container

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/scenedb/matrix"
)

// Format identifies a container encoding.
type Format uint8

const (
	// FormatBinary is the FMAT binary format.
	FormatBinary Format = 1
	// FormatCBOR is the CBOR format.
	FormatCBOR Format = 2
)

func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatCBOR:
		return "cbor"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// Extension returns the file extension used for the format, including the dot.
func (f Format) Extension() string {
	if f == FormatCBOR {
		return ".cbor"
	}
	return ".fmat"
}

// ParseFormat parses "binary" or "cbor". The empty string selects binary.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "binary", "fmat", "":
		return FormatBinary, nil
	case "cbor":
		return FormatCBOR, nil
	default:
		return 0, fmt.Errorf("container: unknown format %q", s)
	}
}

// Compression defines the block compression used by the binary format.
type Compression uint8

const (
	// CompressionNone stores blocks raw.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression.
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression.
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression parses "none", "lz4" or "zstd". The empty string selects none.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("container: unknown compression %q", s)
	}
}

// Options configures Encode.
type Options struct {
	Format      Format
	Compression Compression // binary format only
}

// Entry is one named matrix.
type Entry struct {
	Name   string
	Matrix matrix.Matrix
}

// Encode writes entries to w in the format selected by opts.
// Entry order is preserved by the binary format; CBOR sorts names canonically.
func Encode(w io.Writer, entries []Entry, opts Options) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
		}
		seen[e.Name] = struct{}{}
	}

	switch opts.Format {
	case FormatBinary, 0:
		return encodeBinary(w, entries, opts.Compression)
	case FormatCBOR:
		return encodeCBOR(w, entries)
	default:
		return fmt.Errorf("container: unknown format %v", opts.Format)
	}
}

// Decode parses a container produced by Encode in either format.
func Decode(data []byte) (map[string]matrix.Matrix, error) {
	f, err := DetectFormat(data)
	if err != nil {
		return nil, err
	}
	if f == FormatCBOR {
		return decodeCBOR(data)
	}
	return decodeBinary(data)
}

// DetectFormat inspects the leading bytes of data.
func DetectFormat(data []byte) (Format, error) {
	if bytes.HasPrefix(data, magicBytes[:]) {
		return FormatBinary, nil
	}
	// Canonical CBOR map header (major type 5) holding the three top-level keys.
	if len(data) > 0 && data[0] == 0xa3 {
		return FormatCBOR, nil
	}
	return 0, ErrInvalidMagic
}
