// Package frame models one labeled scene occurrence and its recognized object views.
//
// A Frame is built either from a manifest line ([ParseManifestLine]) or from a
// persisted metadata record ([FromRecord]); both constructors converge on the
// same immutable value.
//
// # Manifest lines
//
// Fields are separated by '|'. The first field starts with the filename marker,
// a feature file name followed by a one-character suffix (usually ':'). Each
// remaining field is a whitespace-separated integer tuple describing one view:
//
//	scene_o3_1.250: 10 0 0 1 2 | 11 1 0 3 4
//	scene_o3_1.250:|0 0 1 2|1 0 3 4
//
// The file name must end in _o<label>_<seconds>.<fraction>; label and
// timestamp are parsed from it.
//
// # Feature files
//
// A feature file holds len(views) × feature-types lines of floats in
// view-major order. Blank lines are tolerated only at the very end.
package frame
