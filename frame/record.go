package frame

import (
	gojson "github.com/goccy/go-json"
)

// Record is the persisted metadata form of a Frame.
type Record struct {
	Filename  string  `json:"filename"`
	Label     int     `json:"label"`
	Timestamp float64 `json:"timestamp"`
	Views     []View  `json:"object-views"`
}

// Record returns the metadata record of the frame.
func (f *Frame) Record() Record {
	return Record{
		Filename:  f.filename,
		Label:     f.label,
		Timestamp: f.timestamp,
		Views:     f.Views(),
	}
}

// FromRecord rebuilds a Frame from its metadata record.
func FromRecord(r Record) *Frame {
	return New(r.Filename, r.Label, r.Timestamp, r.Views)
}

// UnmarshalJSON decodes a record and rejects it if a field is missing.
func (r *Record) UnmarshalJSON(data []byte) error {
	var aux struct {
		Filename  *string   `json:"filename"`
		Label     *int      `json:"label"`
		Timestamp *float64  `json:"timestamp"`
		Views     *[][]*int `json:"object-views"`
	}
	if err := gojson.Unmarshal(data, &aux); err != nil {
		return err
	}

	switch {
	case aux.Filename == nil:
		return &MissingFieldError{Field: "filename"}
	case aux.Label == nil:
		return &MissingFieldError{Field: "label"}
	case aux.Timestamp == nil:
		return &MissingFieldError{Field: "timestamp"}
	case aux.Views == nil:
		return &MissingFieldError{Field: "object-views"}
	}

	views := make([]View, len(*aux.Views))
	for i, raw := range *aux.Views {
		v, err := viewFromNullable(raw)
		if err != nil {
			return err
		}
		views[i] = v
	}

	*r = Record{
		Filename:  *aux.Filename,
		Label:     *aux.Label,
		Timestamp: *aux.Timestamp,
		Views:     views,
	}
	return nil
}

// viewFromNullable accepts the persisted [label|null, v, o, x, y] form as well
// as an unlabeled 4-element tuple.
func viewFromNullable(raw []*int) (View, error) {
	var offset int
	var label *int
	switch len(raw) {
	case 4:
	case 5:
		offset = 1
		if raw[0] != nil {
			l := *raw[0]
			label = &l
		}
	default:
		return View{}, ErrInvalidView
	}
	tuple := raw[offset:]
	for _, n := range tuple {
		if n == nil {
			return View{}, ErrInvalidView
		}
	}
	return View{Label: label, ViewID: *tuple[0], ObjectID: *tuple[1], X: *tuple[2], Y: *tuple[3]}, nil
}
