// Package conv provides bounds-checked integer conversions for values read
// from or written to matrix containers.
//
// Matrix dimensions are limited to math.MaxInt32 so that shapes decode to the
// same int on every platform.
package conv
