// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "scenes/")
//	err = persistence.Save(ctx, store, "kitchen", db)
//
// Reads use ranged GetObject requests; writes stream through the multipart
// upload manager.
package s3
