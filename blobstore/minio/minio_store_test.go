package minio

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/scenedb/blobstore"
)

func TestKeyAndContentType(t *testing.T) {
	s := NewStore(nil, "bucket", "scenes/")
	assert.Equal(t, "scenes/db.json", s.key("db.json"))
	assert.Equal(t, "scenes/runs/db.fmat", s.key("runs/db.fmat"))

	assert.Equal(t, "application/json", contentType("db.json"))
	assert.Equal(t, "application/cbor", contentType("db.cbor"))
	assert.Equal(t, "application/octet-stream", contentType("db.fmat"))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
}

// TestStore_Integration requires a running MinIO instance at MINIO_ENDPOINT.
func TestStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("Skipping MinIO integration test: MINIO_ENDPOINT not set")
	}
	bucket := "test-scenedb"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err)

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "test.json", data))

	got, err := blobstore.ReadAll(ctx, store, "test.json")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	blob, err := store.Open(ctx, "test.json")
	require.NoError(t, err)
	rc, err := blob.ReadRange(ctx, 6, 5)
	require.NoError(t, err)
	part, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "minio", string(part))
	require.NoError(t, rc.Close())
	require.NoError(t, blob.Close())

	w, err := store.Create(ctx, "stream.fmat")
	require.NoError(t, err)
	_, err = w.Write([]byte("streamed data"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "test.json")
	assert.Contains(t, names, "stream.fmat")

	require.NoError(t, store.Delete(ctx, "test.json"))
	require.NoError(t, store.Delete(ctx, "stream.fmat"))
	_, err = store.Open(ctx, "test.json")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
