package breed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RecordID is an external identifier. Sources send it either as a JSON
// string or as a JSON number; both decode to the same textual form.
type RecordID string

// UnmarshalJSON accepts a string or a number.
func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = RecordID(n.String())
	return nil
}

// String returns the trimmed identifier.
func (id RecordID) String() string { return strings.TrimSpace(string(id)) }

// LifeRange is the nested life-expectancy object.
type LifeRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// ImageRef is the nested image wrapper.
type ImageRef struct {
	URL *string `json:"url,omitempty"`
}

// RawAttributes is the nested attributes object of ShapeNested records.
type RawAttributes struct {
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Life        *LifeRange `json:"life,omitempty"`
	Image       *ImageRef  `json:"image,omitempty"`
}

// RawBreedRecord is a record as received from an external source, before
// normalization. Attributes is populated for ShapeNested records; the flat
// fields are populated for ShapeFlat records.
type RawBreedRecord struct {
	ID         RecordID       `json:"id"`
	Attributes *RawAttributes `json:"attributes,omitempty"`

	Name        string  `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	LifeMin     *int    `json:"life_min,omitempty"`
	LifeMax     *int    `json:"life_max,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// UnmarshalJSON decodes a record leniently: a field whose value has an
// unexpected JSON type is left absent instead of failing the record. Only a
// value that is not an object, or an id that is neither a string nor a
// number, rejects the record.
func (r *RawBreedRecord) UnmarshalJSON(data []byte) error {
	fields, ok := objectFields(data)
	if !ok {
		return errors.New("breed record is not a json object")
	}

	var rec RawBreedRecord
	if raw, ok := fields["id"]; ok {
		if err := rec.ID.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("breed record id: %w", err)
		}
	}
	rec.Attributes = decodeAttributes(fields["attributes"])
	rec.Name = deref(optString(fields["name"]))
	rec.Description = optString(fields["description"])
	rec.LifeMin = optInt(fields["life_min"])
	rec.LifeMax = optInt(fields["life_max"])
	rec.ImageURL = optString(fields["image_url"])

	*r = rec
	return nil
}

func decodeAttributes(raw json.RawMessage) *RawAttributes {
	fields, ok := objectFields(raw)
	if !ok {
		return nil
	}
	attrs := &RawAttributes{
		Name:        deref(optString(fields["name"])),
		Description: optString(fields["description"]),
	}
	if life, ok := objectFields(fields["life"]); ok {
		attrs.Life = &LifeRange{Min: optInt(life["min"]), Max: optInt(life["max"])}
	}
	if image, ok := objectFields(fields["image"]); ok {
		attrs.Image = &ImageRef{URL: optString(image["url"])}
	}
	return attrs
}

// objectFields splits a JSON object into its members. null and non-objects
// report false.
func objectFields(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

func optString(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

// optInt accepts whole numbers, also when sent as numeric strings.
// Fractions and other types are absent.
func optInt(raw json.RawMessage) *int {
	if len(raw) == 0 {
		return nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		raw = json.RawMessage(strings.TrimSpace(text))
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	if i, err := strconv.Atoi(n.String()); err == nil {
		return &i
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}
	i := int(f)
	return &i
}
