package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte("0123456789")
	require.NoError(t, store.Put(ctx, "a/x", data))
	data[0] = 'X'

	w, err := store.Create(ctx, "a/y")
	require.NoError(t, err)
	_, err = w.Write([]byte("streamed"))
	require.NoError(t, err)

	_, err = store.Open(ctx, "a/y")
	assert.ErrorIs(t, err, ErrNotFound, "not visible before close")
	require.NoError(t, w.Close())

	names, err := store.List(ctx, "a/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/x", "a/y"}, names)

	got, err := ReadAll(ctx, store, "a/x")
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(got))

	blob, err := store.Open(ctx, "a/x")
	require.NoError(t, err)
	defer blob.Close()

	r, err := blob.ReadRange(ctx, 8, 5)
	require.NoError(t, err)
	tail, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "89", string(tail))

	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 8)
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, io.EOF)

	require.NoError(t, store.Delete(ctx, "a/x"))
	_, err = store.Open(ctx, "a/x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore()
	assert.ErrorIs(t, store.Put(ctx, "x", nil), context.Canceled)
	_, err := store.Open(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
