package model

// Role distinguishes the three component kinds of a data structure.
type Role string

const (
	RoleDimension Role = "D"
	RoleMeasure   Role = "M"
	RoleAttribute Role = "A"
)

// Attachment levels for attributes. An attribute may instead attach to a
// set of dimensions, expressed as their comma-joined IDs.
const (
	AttachObservation = "O"
	AttachDataset     = "D"
)

// ArrayBoundaries bounds the cardinality of a repeatable component value.
// Max nil means unbounded.
type ArrayBoundaries struct {
	Min int
	Max *int
}

// Component is one dimension, measure, or attribute of a data structure.
//
// The Local* fields override the concept's core representation when set;
// the derived accessors (Dtype, Facets, Enumeration) apply that precedence
// so callers never need to.
type Component struct {
	ID       string
	Required bool
	Role     Role
	Concept  Concept

	LocalDtype  DataType
	LocalFacets *Facets
	LocalCodes  *Codelist

	// ArrayDef is set only when the component is repeatable (max occurs
	// above one, or explicitly bounded).
	ArrayDef *ArrayBoundaries

	// AttachmentLevel is meaningful for attributes only: "O" observation,
	// "D" dataset, or comma-joined dimension IDs for group attachment.
	AttachmentLevel string
}

// Dtype resolves the component's data type: local wins over the concept's
// core representation, with String as the terminal default.
func (c Component) Dtype() DataType {
	if c.LocalDtype != "" {
		return c.LocalDtype
	}
	if c.Concept.Dtype != "" {
		return c.Concept.Dtype
	}
	return String
}

// Facets resolves the component's facets with the same local-over-core
// precedence; nil when neither level declares any.
func (c Component) Facets() *Facets {
	if c.LocalFacets != nil {
		return c.LocalFacets
	}
	return c.Concept.Facets
}

// Enumeration resolves the component's codelist with the same precedence;
// nil for an unenumerated component.
func (c Component) Enumeration() *Codelist {
	if c.LocalCodes != nil {
		return c.LocalCodes
	}
	return c.Concept.Codes
}
