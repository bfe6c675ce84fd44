// Package matrix provides append-only growing matrices and the feature matrix store.
//
// A [Store] keeps one growing [Matrix] per feature type of a fixed, ordered
// [Types] registry. Rows are appended in lockstep across all feature types so
// that row i of every matrix belongs to the same object view.
//
// Two matrix layouts are available:
//
//   - [Dense]: a single contiguous row-major []float64 buffer; the first row fixes the width.
//   - [Sparse]: list-of-rows where each row keeps a roaring bitmap of its non-zero
//     columns; the width grows to the longest row appended so far.
//
// Both convert to and from an [Array] ([DenseArray] or [CSRArray]), the
// representation written by the container package.
package matrix
