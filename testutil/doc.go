// Package testutil provides testing utilities for scenedb.
//
// This package is intended for use in tests and benchmarks only.
// It generates synthetic recordings: a manifest plus one feature file per
// frame, optionally with broken frames that ingestion must skip.
//
// # Synthetic Recordings
//
//	rng := testutil.NewRNG(seed)
//	rec, _ := rng.WriteRecording(t.TempDir(), testutil.RecordingOptions{Frames: 100})
//	db, report, _ := ingest.Build(ctx, rec.Manifest, ingest.WithTypes(rec.Types))
//	// report.Skipped == len(rec.Broken)
package testutil
