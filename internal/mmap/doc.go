// Package mmap maps files read-only into memory.
//
// The local blob store uses it so that loading a container does not copy the
// file through a read buffer first.
//
//	f, err := mmap.Open("db.fmat")
//	if err != nil { ... }
//	defer f.Close()
//	data := f.Bytes()
//
// On Unix the mapping uses mmap(2) with madvise(2) hints; on Windows it uses
// CreateFileMapping/MapViewOfFile and hints are ignored.
package mmap
