package breed

// Normalize maps a raw record of the given shape to a canonical Breed.
// It never fails: missing nested objects or fields yield absent canonical
// fields. An unknown shape yields a Breed carrying only the identifier.
func Normalize(shape SourceShape, raw RawBreedRecord) Breed {
	b := Breed{ID: raw.ID.String()}

	switch shape {
	case ShapeNested:
		attrs := raw.Attributes
		if attrs == nil {
			return b
		}
		b.Name = attrs.Name
		b.Description = deref(attrs.Description)
		if attrs.Life != nil {
			b.LifeExpectancyMin = nonNegative(attrs.Life.Min)
			b.LifeExpectancyMax = nonNegative(attrs.Life.Max)
		}
		if attrs.Image != nil {
			b.ImageURL = nonEmpty(attrs.Image.URL)
		}
	case ShapeFlat:
		b.Name = raw.Name
		b.Description = deref(raw.Description)
		b.LifeExpectancyMin = nonNegative(raw.LifeMin)
		b.LifeExpectancyMax = nonNegative(raw.LifeMax)
		b.ImageURL = nonEmpty(raw.ImageURL)
	}

	return b
}

// NormalizeAll normalizes records in order.
func NormalizeAll(shape SourceShape, raws []RawBreedRecord) []Breed {
	out := make([]Breed, len(raws))
	for i, r := range raws {
		out[i] = Normalize(shape, r)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nonNegative copies v, dropping negative values which are not valid year counts.
func nonNegative(v *int) *int {
	if v == nil || *v < 0 {
		return nil
	}
	n := *v
	return &n
}

// nonEmpty copies s; an empty URL is treated as absent.
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
