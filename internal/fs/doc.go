// Package fs provides filesystem abstractions for testability and fault injection.
//
// The package defines two key interfaces:
//
//   - [File]: Represents an open file with read/write/sync capabilities
//   - [FileSystem]: Abstracts filesystem operations (open, rename, temp files, etc.)
//
// # Implementations
//
//   - [LocalFS]: Production implementation using standard os package
//   - [FaultyFS]: Test utility for fault injection (simulate I/O errors)
//
// Production code should use fs.Default (which is [LocalFS]):
//
//	f, err := fs.Default.Open(path)
//
// Tests can inject [FaultyFS] to simulate unreadable feature files or failing writes:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("frame_o1_0.5", fs.Fault{FailOnRead: true})
//
// Filesystem operations take no context.Context. Slow remote storage goes through
// the blobstore package instead.
package fs
