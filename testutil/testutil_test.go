package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogram(t *testing.T) {
	rng := NewRNG(42)
	h := rng.Histogram(64, 0.1)
	require.Len(t, h, 64)

	var sum float64
	for _, x := range h {
		assert.GreaterOrEqual(t, x, 0.0)
		sum += x
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	// A zero density still yields one bin.
	h = rng.Histogram(8, 0)
	sum = 0
	for _, x := range h {
		sum += x
	}
	assert.Equal(t, 1.0, sum)
}

func TestReset(t *testing.T) {
	rng := NewRNG(7)
	first := rng.Histogram(16, 0.5)
	rng.Reset()
	assert.Equal(t, first, rng.Histogram(16, 0.5))
	assert.Equal(t, int64(7), rng.Seed())
}

func TestWriteRecording(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewRNG(1).WriteRecording(dir, RecordingOptions{Frames: 40, BrokenRate: 0.25})
	require.NoError(t, err)

	assert.Len(t, rec.Filenames, 40)
	assert.Equal(t, 2, rec.Types.Len())
	assert.NotEmpty(t, rec.Broken)
	assert.Positive(t, rec.Views)

	data, err := os.ReadFile(rec.Manifest)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 40)

	for i, name := range rec.Filenames {
		_, err := os.Stat(filepath.Join(dir, "histograms", name))
		if err != nil {
			assert.Contains(t, rec.Broken, i, "only broken frames may lack a feature file")
		}
	}
}
