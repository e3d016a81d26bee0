package rest

// RefMetaDetail selects how much of each metadata set the response
// carries.
type RefMetaDetail string

const (
	RefMetaFull     RefMetaDetail = "full" // default
	RefMetaAllStubs RefMetaDetail = "allstubs"
)

// RefMetaByStructureQuery asks for the reference metadata attached to
// the artefacts a structure query would return. Reference metadata
// endpoints exist from API version 2.0.0 only.
type RefMetaByStructureQuery struct {
	ArtefactType StructureType
	AgencyIDs    []string
	ResourceIDs  []string
	Versions     []string
	Detail       RefMetaDetail
}

// Validate checks the query against the targeted API version.
func (q RefMetaByStructureQuery) Validate(v Version) error {
	if v < V2_0_0 {
		return invalidBefore("reference metadata queries", v, V2_0_0)
	}
	t := q.artefactType()
	if min, ok := structureTypeMin[t]; ok && v < min {
		return invalidBefore(string(t)+" queries", v, min)
	}
	if max, ok := structureTypeMax[t]; ok && v > max {
		return invalidField("artefact type", string(t))
	}
	return nil
}

func (q RefMetaByStructureQuery) artefactType() StructureType {
	if q.ArtefactType == "" {
		return DataStructure
	}
	return q.ArtefactType
}

// URL validates against v and renders the query.
func (q RefMetaByStructureQuery) URL(v Version, omitDefaults bool) (string, error) {
	if err := q.Validate(v); err != nil {
		return "", err
	}
	segs := []segment{
		{value: string(q.artefactType())},
		listSegment(q.AgencyIDs, v),
		listSegment(q.ResourceIDs, v),
		versionSegment(q.Versions, v),
	}
	detail := q.Detail
	if detail == "" {
		detail = RefMetaFull
	}
	ps := params{
		{name: "detail", value: string(detail), isDefault: detail == RefMetaFull},
	}
	return joinSegments("/metadata/structure", segs, omitDefaults) + ps.render(omitDefaults), nil
}
