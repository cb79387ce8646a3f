package breed

import "fmt"

// Breed is the canonical breed representation used by every consumer.
// Optional fields are pointers: nil means absent, which is distinct from zero
// or the empty string.
type Breed struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	LifeExpectancyMin *int    `json:"life_expectancy_min,omitempty"`
	LifeExpectancyMax *int    `json:"life_expectancy_max,omitempty"`
	ImageURL          *string `json:"image_url,omitempty"`
}

// SourceShape names a known wire shape of an external breed record.
type SourceShape string

const (
	// ShapeNested is the dogapi.dog v2 shape: {id, attributes:{name, description, life:{min,max}, image:{url}}}.
	ShapeNested SourceShape = "nested"
	// ShapeFlat is the hosted-table row shape: {id, name, description, life_min, life_max, image_url}.
	ShapeFlat SourceShape = "flat"
)

// IsValid returns true if the shape is one of the known shapes.
func (s SourceShape) IsValid() bool {
	switch s {
	case ShapeNested, ShapeFlat:
		return true
	}
	return false
}

// ParseSourceShape converts a configuration string to a SourceShape.
func ParseSourceShape(s string) (SourceShape, error) {
	shape := SourceShape(s)
	if !shape.IsValid() {
		return "", fmt.Errorf("unknown breed source shape: %q", s)
	}
	return shape, nil
}
