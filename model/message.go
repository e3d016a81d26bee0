package model

// Agency is an organisation maintaining artefacts. Artefacts hold their
// agency as the plain ID string; Identity() absorbs the difference for
// callers that carry the full organisation record.
type Agency struct {
	ID          string
	Name        string
	Description string
}

// DataStructureDefinition declares a dataset's dimensions, attributes and
// measures.
type DataStructureDefinition struct {
	Agency      string
	ID          string
	Version     string
	Name        string
	Description string
	Components  *Components
}

// Identity returns the maintainable identity tuple.
func (d DataStructureDefinition) Identity() (agency, id, version string) {
	return d.Agency, d.ID, d.Version
}

// Dataflow is a published data collection referencing a data structure.
type Dataflow struct {
	Agency      string
	ID          string
	Version     string
	Name        string
	Description string
	// Structure is the URN of the data structure the flow is built on.
	Structure string
	// Components is populated when the message carried the referenced
	// structure; nil otherwise.
	Components *Components
}

// Identity returns the maintainable identity tuple.
func (d Dataflow) Identity() (agency, id, version string) {
	return d.Agency, d.ID, d.Version
}

// StructureMessage is the canonical result of decoding one structural
// metadata payload, whatever dialect it arrived in.
type StructureMessage struct {
	DataStructures []DataStructureDefinition
	Dataflows      []Dataflow
	Codelists      []Codelist
	ConceptSchemes []ConceptScheme
}

// DataStructure returns the structure with the given ID, or nil.
func (m *StructureMessage) DataStructure(id string) *DataStructureDefinition {
	for i := range m.DataStructures {
		if m.DataStructures[i].ID == id {
			return &m.DataStructures[i]
		}
	}
	return nil
}

// Codelist returns the codelist with the given ID, or nil.
func (m *StructureMessage) Codelist(id string) *Codelist {
	for i := range m.Codelists {
		if m.Codelists[i].ID == id {
			return &m.Codelists[i]
		}
	}
	return nil
}

// ConceptScheme returns the scheme with the given ID, or nil.
func (m *StructureMessage) ConceptScheme(id string) *ConceptScheme {
	for i := range m.ConceptSchemes {
		if m.ConceptSchemes[i].ID == id {
			return &m.ConceptSchemes[i]
		}
	}
	return nil
}
