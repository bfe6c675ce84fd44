// Package container encodes a named set of feature matrices into a single
// self-describing file and decodes it back.
//
// Two formats are supported:
//
//   - Binary ("FMAT"): little-endian header, one block per matrix with optional
//     LZ4 or ZSTD compression, and a trailing CRC32 over the whole file.
//   - CBOR: a canonical CBOR map whose matrices use RFC 8746 typed arrays
//     (tag 40 multi-dimensional arrays over little-endian typed arrays).
//
// Decode detects the format from the first bytes of the file.
package container
