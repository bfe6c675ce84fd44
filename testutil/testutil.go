package testutil

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hupe1980/scenedb/matrix"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Histogram returns a normalized histogram of dim bins where roughly
// density of the bins are non-zero. At least one bin is always set.
func (r *RNG) Histogram(dim int, density float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := make([]float64, dim)
	var sum float64
	for i := range h {
		if r.rand.Float64() < density {
			h[i] = float64(1 + r.rand.Intn(255))
			sum += h[i]
		}
	}
	if sum == 0 {
		i := r.rand.Intn(dim)
		h[i] = 1
		sum = 1
	}
	for i := range h {
		h[i] /= sum
	}
	return h
}

// RecordingOptions shapes a synthetic recording.
type RecordingOptions struct {
	// Frames is the number of manifest lines. Default 10.
	Frames int
	// MaxViews is the largest number of object views per frame. Default 3.
	MaxViews int
	// Dims are the histogram sizes, one per feature type. Default 16, 8.
	Dims []int
	// Density is the fraction of non-zero histogram bins. Default 0.2.
	Density float64
	// BrokenRate is the probability that a frame's feature file is truncated
	// or missing.
	BrokenRate float64
}

func (o *RecordingOptions) defaults() {
	if o.Frames <= 0 {
		o.Frames = 10
	}
	if o.MaxViews <= 0 {
		o.MaxViews = 3
	}
	if len(o.Dims) == 0 {
		o.Dims = []int{16, 8}
	}
	if o.Density <= 0 {
		o.Density = 0.2
	}
}

// Recording describes a synthetic recording on disk.
type Recording struct {
	Dir      string
	Manifest string
	Types    *matrix.Types
	// Filenames lists every frame in manifest order.
	Filenames []string
	// Broken holds the manifest indices of frames ingestion must skip, sorted.
	Broken []int
	// Views is the number of views of every accepted frame, summed.
	Views int
}

// WriteRecording writes stats.txt and histograms/<frame> files into dir.
func (r *RNG) WriteRecording(dir string, opts RecordingOptions) (*Recording, error) {
	opts.defaults()

	names := make([]string, len(opts.Dims))
	for i := range names {
		names[i] = fmt.Sprintf("feature%d", i)
	}
	types, err := matrix.NewTypes(names...)
	if err != nil {
		return nil, err
	}

	featureDir := filepath.Join(dir, "histograms")
	if err := os.MkdirAll(featureDir, 0o755); err != nil {
		return nil, err
	}

	rec := &Recording{
		Dir:      dir,
		Manifest: filepath.Join(dir, "stats.txt"),
		Types:    types,
	}

	var manifest strings.Builder
	for i := range opts.Frames {
		filename := fmt.Sprintf("frame%05d_o%d_%d.%03d", i, r.Intn(10), i/4, (i%4)*250)
		rec.Filenames = append(rec.Filenames, filename)

		views := 1 + r.Intn(opts.MaxViews)
		manifest.WriteString(filename + ":")
		for v := range views {
			if v > 0 {
				manifest.WriteString(" |")
			}
			if r.Intn(2) == 0 {
				fmt.Fprintf(&manifest, " %d", r.Intn(10))
			}
			fmt.Fprintf(&manifest, " %d %d %d %d", v, r.Intn(10), r.Intn(640), r.Intn(480))
		}
		manifest.WriteString("\n")

		var lines []string
		for range views {
			for _, dim := range opts.Dims {
				lines = append(lines, formatHistogram(r.Histogram(dim, opts.Density)))
			}
		}

		if opts.BrokenRate > 0 && r.Float64() < opts.BrokenRate {
			rec.Broken = append(rec.Broken, i)
			if r.Intn(2) == 0 {
				continue // missing feature file
			}
			lines = lines[:len(lines)-1]
		} else {
			rec.Views += views
		}

		content := strings.Join(lines, "\n") + "\n"
		if err := os.WriteFile(filepath.Join(featureDir, filename), []byte(content), 0o644); err != nil {
			return nil, err
		}
	}

	if err := os.WriteFile(rec.Manifest, []byte(manifest.String()), 0o644); err != nil {
		return nil, err
	}
	sort.Ints(rec.Broken)
	return rec, nil
}

func formatHistogram(h []float64) string {
	fields := make([]string, len(h))
	for i, x := range h {
		fields[i] = fmt.Sprintf("%g", x)
	}
	return strings.Join(fields, " ")
}
