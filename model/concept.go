package model

// Concept is the semantic definition a component refers to, together with
// its core representation (data type, facets, codes).
type Concept struct {
	ID          string
	Name        string
	Description string
	// Dtype is the core representation's data type; the zero value means
	// the concept declares none.
	Dtype  DataType
	Facets *Facets
	Codes  *Codelist
	// EnumRef keeps the codelist URN when the referenced list was not
	// present in the same message and could not be resolved locally.
	EnumRef string
}

// ConceptScheme is a maintainable, versioned, agency-owned ordered sequence
// of concepts with IDs unique within the scheme.
type ConceptScheme struct {
	Agency      string
	ID          string
	Version     string
	Name        string
	Description string
	Concepts    []Concept
}

// Identity returns the maintainable identity tuple.
func (cs ConceptScheme) Identity() (agency, id, version string) {
	return cs.Agency, cs.ID, cs.Version
}

// Get returns the concept with the given ID, or nil when absent.
func (cs ConceptScheme) Get(id string) *Concept {
	for i := range cs.Concepts {
		if cs.Concepts[i].ID == id {
			return &cs.Concepts[i]
		}
	}
	return nil
}
