// Package persistence saves a scene database as a metadata document plus a
// matrix container and loads it back.
//
// A database named "kitchen" is stored as two blobs:
//
//	kitchen.json            object names, feature types, data file reference, frames
//	kitchen-<crc32>.fmat    one matrix per feature type (.cbor for the CBOR format)
//
// The container name carries the CRC32 of its content, so saving over a
// database never overwrites the container the current document points at.
// The document is written last and commits the save.
//
// The data file reference is resolved relative to the directory of the
// metadata document, so both blobs can be moved together.
package persistence
