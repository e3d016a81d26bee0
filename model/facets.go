package model

import "time"

// Facets refines a DataType with length, value, pattern, or time bounds.
// Every field is optional. An all-default Facets is represented as absence
// (a nil pointer), never as an empty object; decoders use IsZero to decide.
type Facets struct {
	MinLength  *int
	MaxLength  *int
	MinValue   *float64
	MaxValue   *float64
	StartValue *float64
	EndValue   *float64
	Decimals   *int
	Pattern    string
	StartTime  *time.Time
	EndTime    *time.Time
	IsSequence bool
}

// IsZero reports whether no facet is set.
func (f *Facets) IsZero() bool {
	if f == nil {
		return true
	}
	return f.MinLength == nil && f.MaxLength == nil &&
		f.MinValue == nil && f.MaxValue == nil &&
		f.StartValue == nil && f.EndValue == nil &&
		f.Decimals == nil && f.Pattern == "" &&
		f.StartTime == nil && f.EndTime == nil && !f.IsSequence
}

// OrNil returns f, or nil when f carries no facet. Decoders call this so an
// empty facet bag never survives into the canonical model.
func (f *Facets) OrNil() *Facets {
	if f.IsZero() {
		return nil
	}
	return f
}
