// Package ingest builds a scene database from a manifest file and the
// per-frame feature files next to it.
//
// Every manifest line is parsed before any feature file is read; a malformed
// line aborts the build. Frames whose feature files are missing, unreadable
// or hold the wrong number of vectors are skipped and counted in the Report
// without touching the database.
package ingest
