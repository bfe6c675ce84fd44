// Package codec centralizes metadata document encoding.
//
// The codec only affects how bytes are produced; every built-in codec reads
// and writes plain JSON, so documents written with one can be read with another.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// IndentMarshaler is implemented by codecs that can produce indented output.
type IndentMarshaler interface {
	MarshalIndent(v any, prefix, indent string) ([]byte, error)
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MarshalIndent encodes v with two-space indentation when c supports it and
// falls back to c.Marshal otherwise.
func MarshalIndent(c Codec, v any) ([]byte, error) {
	if c == nil {
		c = Default
	}
	if im, ok := c.(IndentMarshaler); ok {
		return im.MarshalIndent(v, "", "  ")
	}
	return c.Marshal(v)
}
