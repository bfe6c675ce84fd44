package persistence

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/scenedb/blobstore"
	"github.com/hupe1980/scenedb/codec"
	"github.com/hupe1980/scenedb/container"
	"github.com/hupe1980/scenedb/database"
	"github.com/hupe1980/scenedb/frame"
	"github.com/hupe1980/scenedb/matrix"
	"github.com/hupe1980/scenedb/metric"
)

func intPtr(i int) *int { return &i }

// dataFileOf returns the container blob referenced by the stored document.
func dataFileOf(t *testing.T, store blobstore.BlobStore, docName string) string {
	t.Helper()
	data, err := blobstore.ReadAll(context.Background(), store, docName)
	require.NoError(t, err)
	doc, err := DecodeDocument(codec.Default, docName, data)
	require.NoError(t, err)
	return path.Join(path.Dir(docName), doc.DataFile)
}

var errUpload = errors.New("upload failed")

// failingStore fails every Put whose name has the given suffix while armed.
type failingStore struct {
	*blobstore.MemoryStore
	suffix string
	armed  bool
}

func (s *failingStore) Put(ctx context.Context, name string, data []byte) error {
	if s.armed && strings.HasSuffix(name, s.suffix) {
		return errUpload
	}
	return s.MemoryStore.Put(ctx, name, data)
}

func singleFrameDB(t *testing.T, filename string, value float64) *database.DB {
	t.Helper()
	types, err := matrix.NewTypes("SURF")
	require.NoError(t, err)

	db := database.New(types, matrix.KindDense, nil)
	require.NoError(t, db.Ingest(
		frame.New(filename, 1, 1.0, []frame.View{{ViewID: 0, ObjectID: 0, X: 1, Y: 1}}),
		[][][]float64{{{value}}},
	))
	return db
}

func sampleDB(t *testing.T, kind matrix.Kind, objectNames []string) *database.DB {
	t.Helper()
	types, err := matrix.NewTypes("SURF", "color")
	require.NoError(t, err)

	db := database.New(types, kind, objectNames)
	require.NoError(t, db.Ingest(
		frame.New("kitchen_o1_0.5", 1, 0.5, []frame.View{
			{Label: intPtr(4), ViewID: 0, ObjectID: 0, X: 10, Y: 20},
			{ViewID: 1, ObjectID: 2, X: 30, Y: 40},
		}),
		[][][]float64{
			{{1, 0, 0.25}, {0, 7}},
			{{0, 0, 0}, {1e-300, -3.5}},
		},
	))
	require.NoError(t, db.Ingest(
		frame.New("kitchen_o2_1.5", 2, 1.5, []frame.View{{ViewID: 0, ObjectID: 1, X: 1, Y: 2}}),
		[][][]float64{{{2, 4, 8}, {0.1, 0.2}}},
	))
	return db
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	for _, kind := range []matrix.Kind{matrix.KindSparse, matrix.KindDense} {
		for _, format := range []container.Format{container.FormatBinary, container.FormatCBOR} {
			t.Run(kind.String()+"/"+format.String(), func(t *testing.T) {
				ctx := context.Background()
				store := blobstore.NewMemoryStore()
				db := sampleDB(t, kind, []string{"cup", "plate", "bowl"})

				require.NoError(t, Save(ctx, store, "runs/kitchen", db,
					WithFormat(format),
					WithCompression(container.CompressionZSTD),
				))

				dataFile := dataFileOf(t, store, "runs/kitchen.json")
				assert.Regexp(t, `^runs/kitchen-[0-9a-f]{8}\`+format.Extension()+`$`, dataFile)

				names, err := store.List(ctx, "runs/")
				require.NoError(t, err)
				assert.ElementsMatch(t, []string{dataFile, "runs/kitchen.json"}, names)

				loaded, err := Load(ctx, store, "runs/kitchen.json")
				require.NoError(t, err)
				assert.True(t, db.Equal(loaded))
				assert.Equal(t, kind, loaded.Features().Kind())
				assert.Equal(t, 3, loaded.NumViews())

				frames := loaded.Frames()
				require.Len(t, frames, 2)
				views := frames[0].Views()
				require.True(t, views[0].HasLabel())
				assert.Equal(t, 4, *views[0].Label)
				assert.False(t, views[1].HasLabel())

				color, err := loaded.Matrix("color")
				require.NoError(t, err)
				assert.Equal(t, 1e-300, color.At(1, 0))
			})
		}
	}
}

func TestSave_DocumentLayout(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	db := sampleDB(t, matrix.KindSparse, nil)

	require.NoError(t, Save(ctx, store, "kitchen", db, WithCodec(codec.JSON{})))

	data, err := blobstore.ReadAll(ctx, store, "kitchen.json")
	require.NoError(t, err)

	doc := string(data)
	assert.NotContains(t, doc, "object_names")
	assert.Regexp(t, `"data_file": "kitchen-[0-9a-f]{8}\.fmat"`, doc)
	assert.Contains(t, doc, `"object-views"`)
	assert.Contains(t, doc, "\n  \"frames\"")
	assert.Contains(t, doc, "null")

	var generic map[string]any
	require.NoError(t, codec.JSON{}.Unmarshal(data, &generic))
	assert.Equal(t, []any{"SURF", "color"}, generic["feature_types"])
}

func TestSaveLoad_LocalStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := blobstore.NewLocalStore(dir)
	db := sampleDB(t, matrix.KindDense, []string{"cup"})
	collector := &metric.Basic{}

	require.NoError(t, Save(ctx, store, "db", db,
		WithCompression(container.CompressionLZ4),
		WithMetrics(collector),
	))
	assert.FileExists(t, filepath.Join(dir, "db.json"))
	assert.FileExists(t, filepath.Join(dir, dataFileOf(t, store, "db.json")))

	loaded, err := Load(ctx, store, "db", WithMetrics(collector))
	require.NoError(t, err)
	assert.True(t, db.Equal(loaded))

	stats := collector.Stats()
	assert.Equal(t, int64(1), stats.SaveCount)
	assert.Equal(t, int64(1), stats.LoadCount)
	assert.Zero(t, stats.LoadErrors)

	names, err := List(ctx, store, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"db"}, names)
}

func TestSaveLoad_EmptyDatabase(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	db := database.New(matrix.DefaultTypes(), matrix.KindSparse, nil)

	require.NoError(t, Save(ctx, store, "empty", db))

	data, err := blobstore.ReadAll(ctx, store, "empty.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"frames": []`)

	loaded, err := Load(ctx, store, "empty")
	require.NoError(t, err)
	assert.Zero(t, loaded.NumFrames())
	assert.True(t, db.Equal(loaded))
}

func TestLoad_LegacyDocumentUsesConfiguredTypes(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	db := sampleDB(t, matrix.KindSparse, nil)
	require.NoError(t, Save(ctx, store, "legacy", db))

	doc := `{
  "data_file": "` + path.Base(dataFileOf(t, store, "legacy.json")) + `",
  "frames": [
    {"filename": "kitchen_o1_0.5", "label": 1, "timestamp": 0.5, "object-views": [[4, 0, 0, 10, 20], [null, 1, 2, 30, 40]]},
    {"filename": "kitchen_o2_1.5", "label": 2, "timestamp": 1.5, "object-views": [[0, 1, 1, 2]]}
  ]
}`
	require.NoError(t, store.Put(ctx, "legacy.json", []byte(doc)))

	_, err := Load(ctx, store, "legacy")
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr, "default registry is not in the data file")
	assert.ErrorIs(t, err, matrix.ErrUnknownType)

	loaded, err := Load(ctx, store, "legacy", WithTypes(db.Types()))
	require.NoError(t, err)
	assert.True(t, db.Equal(loaded))
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing document", func(t *testing.T) {
		_, err := Load(ctx, blobstore.NewMemoryStore(), "nothing")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("missing data file", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		require.NoError(t, Save(ctx, store, "db", sampleDB(t, matrix.KindSparse, nil)))
		dataFile := dataFileOf(t, store, "db.json")
		require.NoError(t, store.Delete(ctx, dataFile))

		_, err := Load(ctx, store, "db")
		var missing *MissingDataFileError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, dataFile, missing.DataFile)
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("missing data file on disk", func(t *testing.T) {
		dir := t.TempDir()
		store := blobstore.NewLocalStore(dir)
		require.NoError(t, Save(ctx, store, "db", sampleDB(t, matrix.KindSparse, nil)))
		require.NoError(t, os.Remove(filepath.Join(dir, dataFileOf(t, store, "db.json"))))

		_, err := Load(ctx, store, "db")
		var missing *MissingDataFileError
		assert.ErrorAs(t, err, &missing)
	})

	schemaCases := []struct {
		name  string
		doc   string
		field string
	}{
		{"no frames", `{"data_file": "db.fmat"}`, "frames"},
		{"no data file", `{"frames": []}`, "data_file"},
		{"empty data file", `{"data_file": "", "frames": []}`, "data_file"},
		{"frame without label", `{"data_file": "db.fmat", "frames": [{"filename": "a_o1_0.5", "timestamp": 0.5, "object-views": []}]}`, "frames"},
		{"bad view", `{"data_file": "db.fmat", "frames": [{"filename": "a_o1_0.5", "label": 1, "timestamp": 0.5, "object-views": [[1, 2]]}]}`, "frames"},
		{"duplicate feature types", `{"feature_types": ["SURF", "SURF"], "data_file": "db.fmat", "frames": []}`, "feature_types"},
	}
	for _, tc := range schemaCases {
		t.Run(tc.name, func(t *testing.T) {
			store := blobstore.NewMemoryStore()
			require.NoError(t, store.Put(ctx, "db.json", []byte(tc.doc)))

			_, err := Load(ctx, store, "db.json")
			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tc.field, schemaErr.Field)
			assert.Equal(t, "db.json", schemaErr.Document)
		})
	}

	t.Run("frames do not match rows", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		db := sampleDB(t, matrix.KindSparse, nil)
		require.NoError(t, Save(ctx, store, "db", db))

		doc := NewDocument(db, dataFileOf(t, store, "db.json"))
		doc.Frames = append(doc.Frames, doc.Frames[1])
		data, err := codec.MarshalIndent(nil, doc)
		require.NoError(t, err)
		require.NoError(t, store.Put(ctx, "db.json", data))

		_, err = Load(ctx, store, "db")
		assert.ErrorIs(t, err, database.ErrInconsistent)
	})

	t.Run("corrupt data file", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		require.NoError(t, Save(ctx, store, "db", sampleDB(t, matrix.KindSparse, nil)))

		dataFile := dataFileOf(t, store, "db.json")
		data, err := blobstore.ReadAll(ctx, store, dataFile)
		require.NoError(t, err)
		data[len(data)/2] ^= 0xff
		require.NoError(t, store.Put(ctx, dataFile, data))

		_, err = Load(ctx, store, "db")
		assert.ErrorIs(t, err, container.ErrChecksum)
	})
}

func TestSave_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := blobstore.NewMemoryStore()
	err := Save(ctx, store, "db", sampleDB(t, matrix.KindSparse, nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSave_Overwrite(t *testing.T) {
	ctx := context.Background()

	t.Run("replaced container is removed", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		require.NoError(t, Save(ctx, store, "db", singleFrameDB(t, "old_o1_1.0", 1)))
		oldData := dataFileOf(t, store, "db.json")

		next := singleFrameDB(t, "new_o1_1.0", 2)
		require.NoError(t, Save(ctx, store, "db", next))
		newData := dataFileOf(t, store, "db.json")
		assert.NotEqual(t, oldData, newData)

		names, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{newData, "db.json"}, names)

		loaded, err := Load(ctx, store, "db")
		require.NoError(t, err)
		assert.True(t, next.Equal(loaded))
	})

	t.Run("same content keeps the container", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		db := singleFrameDB(t, "same_o1_1.0", 1)
		require.NoError(t, Save(ctx, store, "db", db))
		require.NoError(t, Save(ctx, store, "db", db))

		loaded, err := Load(ctx, store, "db")
		require.NoError(t, err)
		assert.True(t, db.Equal(loaded))
	})

	for _, suffix := range []string{".fmat", DocumentExt} {
		t.Run(fmt.Sprintf("failed %s write keeps previous database", suffix), func(t *testing.T) {
			store := &failingStore{MemoryStore: blobstore.NewMemoryStore(), suffix: suffix}
			prev := singleFrameDB(t, "old_o1_1.0", 1)
			require.NoError(t, Save(ctx, store, "db", prev))

			store.armed = true
			err := Save(ctx, store, "db", singleFrameDB(t, "new_o1_1.0", 2))
			require.ErrorIs(t, err, errUpload)

			loaded, err := Load(ctx, store, "db")
			require.NoError(t, err)
			assert.True(t, prev.Equal(loaded))
			assert.Equal(t, "old_o1_1.0", loaded.Frames()[0].Filename())

			m, err := loaded.Matrix("SURF")
			require.NoError(t, err)
			assert.Equal(t, 1.0, m.At(0, 0))
		})
	}
}

func TestContainerName(t *testing.T) {
	a := ContainerName("runs/db", container.FormatBinary, []byte("one"))
	b := ContainerName("runs/db", container.FormatBinary, []byte("two"))
	assert.Regexp(t, `^runs/db-[0-9a-f]{8}\.fmat$`, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, ContainerName("runs/db", container.FormatBinary, []byte("one")))
	assert.Regexp(t, `\.cbor$`, ContainerName("db", container.FormatCBOR, nil))
}

func TestSaveLoad_ObjectNames(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		names   []string
		present bool
	}{
		{"absent", nil, false},
		{"empty", []string{}, true},
		{"listed", []string{"cup", "plate"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := blobstore.NewMemoryStore()
			db := sampleDB(t, matrix.KindDense, tc.names)
			require.NoError(t, Save(ctx, store, "db", db))

			data, err := blobstore.ReadAll(ctx, store, "db.json")
			require.NoError(t, err)
			if tc.present {
				assert.Contains(t, string(data), `"object_names"`)
			} else {
				assert.NotContains(t, string(data), `"object_names"`)
			}

			loaded, err := Load(ctx, store, "db")
			require.NoError(t, err)
			assert.True(t, db.Equal(loaded))
			assert.Equal(t, tc.names == nil, loaded.ObjectNames() == nil)
		})
	}
}
