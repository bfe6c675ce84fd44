package matrix

import (
	"fmt"
	"slices"
)

// Default feature types, in their fixed order.
const (
	SURF          = "SURF"
	Color         = "color"
	SURFPairs     = "SURF_pairs"
	ColorPairs    = "color_pairs"
	ColorTriplets = "color_triplets"
)

// Types is the fixed, ordered registry of feature type names.
// It is immutable and safe for concurrent use.
type Types struct {
	names []string
	index map[string]int
}

// NewTypes creates a registry. Order is significant and fixed for the lifetime of a database.
func NewTypes(names ...string) (*Types, error) {
	if len(names) == 0 {
		return nil, ErrNoTypes
	}
	t := &Types{
		names: slices.Clone(names),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if name == "" {
			return nil, ErrEmptyTypeName
		}
		if _, ok := t.index[name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateType, name)
		}
		t.index[name] = i
	}
	return t, nil
}

// DefaultTypes returns the registry SURF, color, SURF_pairs, color_pairs, color_triplets.
func DefaultTypes() *Types {
	t, _ := NewTypes(SURF, Color, SURFPairs, ColorPairs, ColorTriplets)
	return t
}

// Len returns the number of feature types.
func (t *Types) Len() int { return len(t.names) }

// Names returns a copy of the ordered feature type names.
func (t *Types) Names() []string { return slices.Clone(t.names) }

// Name returns the i-th feature type.
func (t *Types) Name(i int) string { return t.names[i] }

// Index returns the position of a feature type.
func (t *Types) Index(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Equal reports whether both registries list the same names in the same order.
func (t *Types) Equal(other *Types) bool {
	return other != nil && slices.Equal(t.names, other.names)
}
