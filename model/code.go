package model

import "time"

// Code is one member of a controlled vocabulary. Immutable once decoded.
type Code struct {
	ID          string
	Name        string
	Description string
	ValidFrom   *time.Time
	ValidTo     *time.Time
}

// CodelistKind distinguishes closed codelists from open valuelists. The two
// share a shape; valuelists have extensible semantics.
type CodelistKind string

const (
	KindCodelist  CodelistKind = "codelist"
	KindValuelist CodelistKind = "valuelist"
)

// Codelist is a maintainable, versioned, agency-owned ordered sequence of
// codes with IDs unique within the list.
type Codelist struct {
	Agency      string
	ID          string
	Version     string
	Name        string
	Description string
	SdmxType    CodelistKind
	Codes       []Code
}

// Identity returns the maintainable identity tuple.
func (c Codelist) Identity() (agency, id, version string) {
	return c.Agency, c.ID, c.Version
}

// Get returns the code with the given ID, or nil when absent.
func (c Codelist) Get(id string) *Code {
	for i := range c.Codes {
		if c.Codes[i].ID == id {
			return &c.Codes[i]
		}
	}
	return nil
}

// Filter returns a copy of the codelist keeping only the allowed code IDs,
// preserving declaration order. An empty allowed set keeps every code: an
// absent constraint means no filtering.
func (c Codelist) Filter(allowed []string) Codelist {
	if len(allowed) == 0 {
		return c
	}
	keep := make(map[string]struct{}, len(allowed))
	for _, id := range allowed {
		keep[id] = struct{}{}
	}
	out := c
	out.Codes = make([]Code, 0, len(allowed))
	for _, code := range c.Codes {
		if _, ok := keep[code.ID]; ok {
			out.Codes = append(out.Codes, code)
		}
	}
	return out
}
