package conv

import (
	"errors"
	"fmt"
	"math"
)

// MaxDim is the largest row or column count of a matrix.
const MaxDim = math.MaxInt32

// ErrOverflow is returned when a value does not fit the target type.
var ErrOverflow = errors.New("integer overflow")

// IntToUint16 converts int to uint16 safely.
func IntToUint16(v int) (uint16, error) {
	if v < 0 || v > math.MaxUint16 {
		return 0, fmt.Errorf("%w: %d does not fit uint16", ErrOverflow, v)
	}
	return uint16(v), nil
}

// IntToUint32 converts int to uint32 safely.
func IntToUint32(v int) (uint32, error) {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d does not fit uint32", ErrOverflow, v)
	}
	return uint32(v), nil
}

// Uint64ToDim converts a persisted dimension to int.
func Uint64ToDim(v uint64) (int, error) {
	if v > MaxDim {
		return 0, fmt.Errorf("%w: dimension %d exceeds %d", ErrOverflow, v, MaxDim)
	}
	return int(v), nil
}

// Int64ToDim converts a persisted dimension to int.
func Int64ToDim(v int64) (int, error) {
	if v < 0 || v > MaxDim {
		return 0, fmt.Errorf("%w: dimension %d out of range", ErrOverflow, v)
	}
	return int(v), nil
}
