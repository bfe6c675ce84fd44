// Package blobstore provides the storage abstraction behind saved scene
// databases: the metadata document and the matrix container are blobs.
//
// BlobStore implementations must be safe for concurrent use; Save writes the
// two blobs of a database in parallel.
//
// # Built-in Implementations
//
//   - LocalStore: local directory, atomic writes, mmap reads
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 via aws-sdk-go-v2
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Create(ctx, name) (WritableBlob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
