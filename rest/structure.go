package rest

import (
	"github.com/bis-med-it/gosdmx/errors"
	"github.com/bis-med-it/gosdmx/model"
)

// StructureType is the resource name of a maintainable artefact kind in
// the SDMX-REST structure endpoint.
type StructureType string

const (
	AgencyScheme               StructureType = "agencyscheme"
	Categorisation             StructureType = "categorisation"
	CategoryScheme             StructureType = "categoryscheme"
	Codelist                   StructureType = "codelist"
	ConceptScheme              StructureType = "conceptscheme"
	ContentConstraint          StructureType = "contentconstraint"
	DataConstraint             StructureType = "dataconstraint"
	Dataflow                   StructureType = "dataflow"
	DataProviderScheme         StructureType = "dataproviderscheme"
	DataStructure              StructureType = "datastructure"
	HierarchicalCodelist       StructureType = "hierarchicalcodelist"
	Hierarchy                  StructureType = "hierarchy"
	Metadataflow               StructureType = "metadataflow"
	MetadataStructure          StructureType = "metadatastructure"
	MetadataProvisionAgreement StructureType = "metadataprovisionagreement"
	ProvisionAgreement         StructureType = "provisionagreement"
	StructureMap               StructureType = "structuremap"
	TransformationScheme       StructureType = "transformationscheme"
	ValueList                  StructureType = "valuelist"
)

// Artefact kinds that only exist from, or only until, a given API
// version. Anything absent from both maps is valid everywhere.
var (
	structureTypeMin = map[StructureType]Version{
		DataConstraint:             V2_0_0,
		Hierarchy:                  V2_0_0,
		MetadataProvisionAgreement: V2_0_0,
		StructureMap:               V2_0_0,
		ValueList:                  V2_0_0,
	}
	structureTypeMax = map[StructureType]Version{
		ContentConstraint:    V1_5_0,
		HierarchicalCodelist: V1_5_0,
	}
)

// classToType maps SDMX artefact class names, as they appear in URNs, to
// their resource name. Item classes map to their parent scheme's
// resource.
var classToType = map[string]StructureType{
	"AgencyScheme":               AgencyScheme,
	"Agency":                     AgencyScheme,
	"Categorisation":             Categorisation,
	"CategoryScheme":             CategoryScheme,
	"Category":                   CategoryScheme,
	"Codelist":                   Codelist,
	"Code":                       Codelist,
	"ConceptScheme":              ConceptScheme,
	"Concept":                    ConceptScheme,
	"ContentConstraint":          ContentConstraint,
	"DataConstraint":             DataConstraint,
	"Dataflow":                   Dataflow,
	"DataProviderScheme":         DataProviderScheme,
	"DataProvider":               DataProviderScheme,
	"DataStructure":              DataStructure,
	"HierarchicalCodelist":       HierarchicalCodelist,
	"Hierarchy":                  Hierarchy,
	"Metadataflow":               Metadataflow,
	"MetadataStructure":          MetadataStructure,
	"MetadataProvisionAgreement": MetadataProvisionAgreement,
	"ProvisionAgreement":         ProvisionAgreement,
	"StructureMap":               StructureMap,
	"TransformationScheme":       TransformationScheme,
	"Transformation":             TransformationScheme,
	"ValueList":                  ValueList,
	"ValueItem":                  ValueList,
}

// StructureDetail selects how much of each artefact the response carries.
type StructureDetail string

const (
	DetailFull             StructureDetail = "full" // default
	DetailAllStubs         StructureDetail = "allstubs"
	DetailReferenceStubs   StructureDetail = "referencestubs"
	DetailReferencePartial StructureDetail = "referencepartial"
	DetailAllCompleteStubs StructureDetail = "allcompletestubs"
	DetailRefCompleteStubs StructureDetail = "referencecompletestubs"
	DetailRaw              StructureDetail = "raw"
)

// StructureReference selects which referenced artefacts come along.
type StructureReference string

const (
	RefNone               StructureReference = "none" // default
	RefParents            StructureReference = "parents"
	RefParentsAndSiblings StructureReference = "parentsandsiblings"
	RefAncestors          StructureReference = "ancestors"
	RefChildren           StructureReference = "children"
	RefDescendants        StructureReference = "descendants"
	RefAll                StructureReference = "all"
)

// StructureQuery addresses structural metadata.
type StructureQuery struct {
	ArtefactType StructureType
	AgencyIDs    []string
	ResourceIDs  []string
	Versions     []string
	// ItemIDs narrows an item-scheme query to specific items.
	ItemIDs    []string
	Detail     StructureDetail
	References StructureReference
}

// StructureQueryFromRef builds a query from a parsed artefact reference.
// The artefact class name selects the resource; item references populate
// the item ID. Unrecognized class names fail with Invalid.
func StructureQueryFromRef(urn string) (StructureQuery, error) {
	ref, err := model.ParseReference(urn)
	if err != nil {
		return StructureQuery{}, err
	}
	t, ok := classToType[ref.Class]
	if !ok {
		return StructureQuery{}, errors.Invalid("Invalid artefact class",
			"%q is not a known SDMX artefact class name", ref.Class)
	}
	q := StructureQuery{
		ArtefactType: t,
		AgencyIDs:    []string{ref.Agency},
		ResourceIDs:  []string{ref.ID},
		Versions:     []string{ref.Version},
	}
	if ref.ItemID != "" {
		q.ItemIDs = []string{ref.ItemID}
	}
	return q, nil
}

// Validate checks the query against the targeted API version.
func (q StructureQuery) Validate(v Version) error {
	t := q.artefactType()
	if min, ok := structureTypeMin[t]; ok && v < min {
		return errors.Invalid("Invalid artefact type",
			"%s requires API version %s or later, targeting %s", t, min, v)
	}
	if max, ok := structureTypeMax[t]; ok && v > max {
		return errors.Invalid("Invalid artefact type",
			"%s was removed after API version %s, targeting %s", t, max, v)
	}
	for _, check := range []struct {
		field  string
		values []string
	}{
		{"agency", q.AgencyIDs},
		{"resource", q.ResourceIDs},
		{"version", q.Versions},
		{"item", q.ItemIDs},
	} {
		if err := checkMulti(check.field, check.values, v, V1_3_0); err != nil {
			return err
		}
	}
	return nil
}

func (q StructureQuery) artefactType() StructureType {
	if q.ArtefactType == "" {
		return DataStructure
	}
	return q.ArtefactType
}

// URL validates against v and renders the query.
func (q StructureQuery) URL(v Version, omitDefaults bool) (string, error) {
	if err := q.Validate(v); err != nil {
		return "", err
	}
	base := ""
	if v >= V2_0_0 {
		base = "/structure"
	}
	segs := []segment{
		{value: string(q.artefactType())},
		listSegment(q.AgencyIDs, v),
		listSegment(q.ResourceIDs, v),
		versionSegment(q.Versions, v),
	}
	if len(q.ItemIDs) > 0 {
		segs = append(segs, listSegment(q.ItemIDs, v))
	}
	detail := q.Detail
	if detail == "" {
		detail = DetailFull
	}
	refs := q.References
	if refs == "" {
		refs = RefNone
	}
	ps := params{
		{name: "detail", value: string(detail), isDefault: detail == DetailFull},
		{name: "references", value: string(refs), isDefault: refs == RefNone},
	}
	return joinSegments(base, segs, omitDefaults) + ps.render(omitDefaults), nil
}
