package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/scenedb/internal/fs"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root)
	ctx := context.Background()

	data := []byte("metadata document for a scene database")
	require.NoError(t, store.Put(ctx, "db.json", data))

	_, err := os.Stat(filepath.Join(root, "db.json"))
	require.NoError(t, err)

	blob, err := store.Open(ctx, "db.json")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())
	_, ok := blob.(Mappable)
	assert.True(t, ok)

	buf := make([]byte, 8)
	n, err := blob.ReadAt(ctx, buf, 9)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, "document", string(buf))

	r, err := blob.ReadRange(ctx, 31, 100)
	require.NoError(t, err)
	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "database", string(rest))
	require.NoError(t, r.Close())
	require.NoError(t, blob.Close())

	got, err := ReadAll(ctx, store, "db.json")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.Delete(ctx, "db.json"))
	require.NoError(t, store.Delete(ctx, "db.json"))
	_, err = store.Open(ctx, "db.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_NestedNamesAndList(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"b.fmat", "runs/a.json", "runs/a.fmat"} {
		w, err := store.Create(ctx, name)
		require.NoError(t, err)
		_, err = w.Write([]byte(name))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.fmat", "runs/a.fmat", "runs/a.json"}, all)

	runs, err := store.List(ctx, "runs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"runs/a.fmat", "runs/a.json"}, runs)

	empty, err := NewLocalStore(filepath.Join(t.TempDir(), "missing")).List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLocalStore_FailedWriteLeavesNoBlob(t *testing.T) {
	root := t.TempDir()
	faulty := fs.NewFaultyFS(nil)
	faulty.AddRule("db.fmat", fs.Fault{FailOnSync: true, FailAfterBytes: -1})
	store := NewLocalStore(root, WithFileSystem(faulty))
	ctx := context.Background()

	err := store.Put(ctx, "db.fmat", []byte("payload"))
	require.ErrorIs(t, err, fs.ErrInjected)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp file must be removed")
	assert.Zero(t, faulty.OpenHandles())
}

func TestLocalStore_FileSystemReads(t *testing.T) {
	faulty := fs.NewFaultyFS(nil)
	store := NewLocalStore(t.TempDir(), WithFileSystem(faulty))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "db.json", []byte("{}")))

	got, err := ReadAll(ctx, store, "db.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), got)
	assert.Zero(t, faulty.OpenHandles())

	faulty.AddRule("db.json", fs.Fault{FailOnRead: true, FailAfterBytes: -1})
	_, err = ReadAll(ctx, store, "db.json")
	assert.ErrorIs(t, err, fs.ErrInjected)
	assert.Zero(t, faulty.OpenHandles())
}
