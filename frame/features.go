package frame

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hupe1980/scenedb/internal/fs"
)

// DefaultFeatureDir is the directory, relative to the manifest, that holds feature files.
const DefaultFeatureDir = "histograms"

// FeaturePath returns the location of the frame's feature file.
func (f *Frame) FeaturePath(base, featureDir string) string {
	return filepath.Join(base, featureDir, f.filename)
}

// ReadFeatures reads the frame's feature file at path and returns one vector
// per view and feature type: out[view][featureType].
//
// The file must hold exactly NumViews() × numTypes non-blank lines; trailing
// blank lines are ignored. A count mismatch yields *FeatureCountError, an
// open, read or number-format failure yields *FeatureFileError.
func (f *Frame) ReadFeatures(fsys fs.FileSystem, path string, numTypes int) ([][][]float64, error) {
	if len(f.views) == 0 {
		return nil, ErrNoViews
	}
	if numTypes <= 0 {
		return nil, errors.New("frame: feature type count must be positive")
	}
	if fsys == nil {
		fsys = fs.Default
	}

	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, &FeatureFileError{Filename: f.filename, Path: path, cause: err}
	}

	lines := strings.Split(string(data), "\n")
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}

	expected := len(f.views) * numTypes
	nonBlank := 0
	for _, l := range lines {
		if !isBlank(l) {
			nonBlank++
		}
	}
	if len(lines) != expected || nonBlank != expected {
		return nil, &FeatureCountError{Filename: f.filename, Expected: expected, Actual: nonBlank}
	}

	out := make([][][]float64, len(f.views))
	next := 0
	for v := range out {
		out[v] = make([][]float64, numTypes)
		for t := range numTypes {
			vec, err := parseFloats(lines[next])
			if err != nil {
				return nil, &FeatureFileError{Filename: f.filename, Path: path, cause: err}
			}
			out[v][t] = vec
			next++
		}
	}
	return out, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func parseFloats(s string) ([]float64, error) {
	fields := strings.Fields(s)
	vec := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		vec[i] = x
	}
	return vec, nil
}
