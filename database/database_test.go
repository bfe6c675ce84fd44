package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/scenedb/frame"
	"github.com/hupe1980/scenedb/matrix"
)

func twoTypes(t *testing.T) *matrix.Types {
	t.Helper()
	types, err := matrix.NewTypes("A", "B")
	require.NoError(t, err)
	return types
}

func TestIngestKeepsInvariant(t *testing.T) {
	db := New(twoTypes(t), matrix.KindSparse, []string{"cup", "ball"})

	f1 := frame.New("s_o1_0.5", 1, 0.5, []frame.View{{ViewID: 0}, {ViewID: 1}})
	require.NoError(t, db.Ingest(f1, [][][]float64{{{1}, {2}}, {{3}, {4}}}))

	f2 := frame.New("s_o2_1.5", 2, 1.5, []frame.View{{ViewID: 0}})
	require.NoError(t, db.Ingest(f2, [][][]float64{{{5, 6}, {7}}}))

	assert.Equal(t, 2, db.NumFrames())
	assert.Equal(t, 3, db.NumViews())
	assert.Equal(t, 3, db.Features().Rows())
	assert.NoError(t, db.Check())
	assert.Equal(t, []string{"cup", "ball"}, db.ObjectNames())
}

func TestIngestRejectsMismatch(t *testing.T) {
	db := New(twoTypes(t), matrix.KindDense, nil)
	require.NoError(t, db.Ingest(frame.New("s_o1_0.5", 1, 0.5, []frame.View{{}}), [][][]float64{{{1, 1}, {2}}}))

	f := frame.New("s_o1_1.5", 1, 1.5, []frame.View{{}, {}})
	assert.ErrorIs(t, db.Ingest(f, [][][]float64{{{1, 1}, {2}}}), ErrInconsistent)
	assert.ErrorIs(t, db.Ingest(f, [][][]float64{{{1, 1}, {2}}, {{1}, {2}}}), matrix.ErrWidthMismatch)

	assert.Equal(t, 1, db.NumFrames())
	assert.Equal(t, 1, db.Features().Rows())
	assert.NoError(t, db.Check())
}

func TestCheckDetectsMissingRows(t *testing.T) {
	db := New(twoTypes(t), matrix.KindSparse, nil)
	db.AddFrame(frame.New("s_o1_0.5", 1, 0.5, []frame.View{{}}))
	assert.ErrorIs(t, db.Check(), ErrInconsistent)
}

func TestEqual(t *testing.T) {
	build := func(x float64) *DB {
		db := New(twoTypes(t), matrix.KindSparse, nil)
		require.NoError(t, db.Ingest(frame.New("s_o1_0.5", 1, 0.5, []frame.View{{}}), [][][]float64{{{x}, {2}}}))
		return db
	}
	assert.True(t, build(1).Equal(build(1)))
	assert.False(t, build(1).Equal(build(3)))
}

func TestObjectNamesKeepEmptyList(t *testing.T) {
	none := New(twoTypes(t), matrix.KindSparse, nil)
	empty := New(twoTypes(t), matrix.KindSparse, []string{})

	assert.Nil(t, none.ObjectNames())
	assert.NotNil(t, empty.ObjectNames())
	assert.Empty(t, empty.ObjectNames())
	assert.False(t, none.Equal(empty))
	assert.True(t, empty.Equal(New(twoTypes(t), matrix.KindSparse, []string{})))
}
