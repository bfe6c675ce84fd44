package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/hupe1980/scenedb/codec"
	"github.com/hupe1980/scenedb/database"
	"github.com/hupe1980/scenedb/frame"
)

// DocumentExt is the extension of metadata documents.
const DocumentExt = ".json"

// Document is the persisted metadata of a database.
type Document struct {
	// ObjectNames is nil when the database has no object names.
	ObjectNames  *[]string      `json:"object_names,omitempty"`
	FeatureTypes []string       `json:"feature_types,omitempty"`
	DataFile     string         `json:"data_file"`
	Frames       []frame.Record `json:"frames"`
}

// NewDocument builds the metadata document of db referencing dataFile.
func NewDocument(db *database.DB, dataFile string) *Document {
	frames := db.Frames()
	doc := &Document{
		FeatureTypes: db.Types().Names(),
		DataFile:     dataFile,
		Frames:       make([]frame.Record, len(frames)),
	}
	if names := db.ObjectNames(); names != nil {
		doc.ObjectNames = &names
	}
	for i, f := range frames {
		doc.Frames[i] = f.Record()
	}
	return doc
}

// DecodeDocument decodes a metadata document and checks its required fields.
// name is used in error messages only.
func DecodeDocument(c codec.Codec, name string, data []byte) (*Document, error) {
	if c == nil {
		c = codec.Default
	}

	var raw struct {
		ObjectNames  *[]string          `json:"object_names"`
		FeatureTypes []string           `json:"feature_types"`
		DataFile     *string            `json:"data_file"`
		Frames       *[]json.RawMessage `json:"frames"`
	}
	if err := c.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("persistence: decode %s: %w", name, err)
	}

	switch {
	case raw.Frames == nil:
		return nil, &SchemaError{Document: name, Field: "frames"}
	case raw.DataFile == nil || *raw.DataFile == "":
		return nil, &SchemaError{Document: name, Field: "data_file"}
	}

	frames := make([]frame.Record, len(*raw.Frames))
	for i, msg := range *raw.Frames {
		if err := frames[i].UnmarshalJSON(msg); err != nil {
			return nil, &SchemaError{Document: name, Field: "frames", cause: fmt.Errorf("frame %d: %w", i, err)}
		}
	}

	return &Document{
		ObjectNames:  raw.ObjectNames,
		FeatureTypes: raw.FeatureTypes,
		DataFile:     *raw.DataFile,
		Frames:       frames,
	}, nil
}
