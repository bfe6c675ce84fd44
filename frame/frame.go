package frame

import (
	"slices"
	"strconv"
)

// View is one recognized object instance within a frame, in canonical
// 5-tuple form (label_or_none, view_id, object_id, position_x, position_y).
type View struct {
	// Label is the ground-truth object label, nil when the manifest did not carry one.
	Label    *int
	ViewID   int
	ObjectID int
	X        int
	Y        int
}

// NormalizeView converts a raw integer tuple into a View.
// A 4-element tuple (view, object, x, y) gets no label; a 5-element tuple
// carries the label in front. Any other length is rejected with ErrInvalidView.
func NormalizeView(tuple []int) (View, error) {
	switch len(tuple) {
	case 4:
		return View{ViewID: tuple[0], ObjectID: tuple[1], X: tuple[2], Y: tuple[3]}, nil
	case 5:
		label := tuple[0]
		return View{Label: &label, ViewID: tuple[1], ObjectID: tuple[2], X: tuple[3], Y: tuple[4]}, nil
	default:
		return View{}, ErrInvalidView
	}
}

// HasLabel reports whether the view carries a ground-truth label.
func (v View) HasLabel() bool { return v.Label != nil }

// clone returns a copy that shares no memory with v.
func (v View) clone() View {
	if v.Label != nil {
		label := *v.Label
		v.Label = &label
	}
	return v
}

// MarshalJSON encodes the view as [label|null, view_id, object_id, x, y].
func (v View) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, 32)
	b = append(b, '[')
	if v.Label != nil {
		b = strconv.AppendInt(b, int64(*v.Label), 10)
	} else {
		b = append(b, "null"...)
	}
	for _, n := range [...]int{v.ViewID, v.ObjectID, v.X, v.Y} {
		b = append(b, ',')
		b = strconv.AppendInt(b, int64(n), 10)
	}
	return append(b, ']'), nil
}

// Frame is one labeled scene occurrence. It is immutable once constructed.
type Frame struct {
	filename  string
	label     int
	timestamp float64
	views     []View
}

// New creates a Frame from already normalized views.
func New(filename string, label int, timestamp float64, views []View) *Frame {
	f := &Frame{
		filename:  filename,
		label:     label,
		timestamp: timestamp,
		views:     make([]View, len(views)),
	}
	for i, v := range views {
		f.views[i] = v.clone()
	}
	return f
}

// Filename returns the feature file name of the frame.
func (f *Frame) Filename() string { return f.filename }

// Label returns the ground-truth class of the scene.
func (f *Frame) Label() int { return f.label }

// Timestamp returns the capture time in seconds.
func (f *Frame) Timestamp() float64 { return f.timestamp }

// NumViews returns the number of object views.
func (f *Frame) NumViews() int { return len(f.views) }

// Views returns a copy of the object views.
func (f *Frame) Views() []View {
	out := make([]View, len(f.views))
	for i, v := range f.views {
		out[i] = v.clone()
	}
	return out
}

// Equal reports whether two frames hold the same values.
func (f *Frame) Equal(other *Frame) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.filename != other.filename || f.label != other.label || f.timestamp != other.timestamp {
		return false
	}
	return slices.EqualFunc(f.views, other.views, func(a, b View) bool {
		if (a.Label == nil) != (b.Label == nil) {
			return false
		}
		if a.Label != nil && *a.Label != *b.Label {
			return false
		}
		return a.ViewID == b.ViewID && a.ObjectID == b.ObjectID && a.X == b.X && a.Y == b.Y
	})
}
