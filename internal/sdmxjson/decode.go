package sdmxjson

import (
	"time"

	json "github.com/goccy/go-json"

	"github.com/bis-med-it/gosdmx/errors"
	"github.com/bis-med-it/gosdmx/internal/assemble"
	"github.com/bis-med-it/gosdmx/model"
)

// DecodeStructures decodes an SDMX-JSON 2.0 structure message into the
// canonical model. One broken cross-reference fails the whole decode.
func DecodeStructures(text string) (*model.StructureMessage, error) {
	var raw envelope
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, errors.Invalid("Invalid SDMX-JSON payload", "%v", err)
	}

	out := &model.StructureMessage{}
	for _, cl := range raw.Data.Codelists {
		out.Codelists = append(out.Codelists, cl.toModel(model.KindCodelist))
	}
	for _, vl := range raw.Data.Valuelists {
		out.Codelists = append(out.Codelists, vl.toModel(model.KindValuelist))
	}
	for _, cs := range raw.Data.ConceptSchemes {
		out.ConceptSchemes = append(out.ConceptSchemes, cs.toModel(out.Codelists))
	}
	for _, ds := range raw.Data.DataStructures {
		dsd, err := ds.toModel(out.ConceptSchemes, out.Codelists, constraintMapFor(ds, raw.Data.Constraints))
		if err != nil {
			return nil, err
		}
		out.DataStructures = append(out.DataStructures, dsd)
	}
	for _, df := range raw.Data.Dataflows {
		out.Dataflows = append(out.Dataflows, df.toModel(out.DataStructures))
	}
	return out, nil
}

func (cl jsonCodelist) toModel(kind model.CodelistKind) model.Codelist {
	out := model.Codelist{
		Agency:      cl.Agency,
		ID:          cl.ID,
		Version:     cl.Version,
		Name:        cl.Name,
		Description: cl.Description,
		SdmxType:    kind,
	}
	for _, c := range cl.Codes {
		out.Codes = append(out.Codes, c.toModel())
	}
	return out
}

func (c jsonCode) toModel() model.Code {
	return model.Code{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ValidFrom:   epochMillis(c.ValidFrom),
		ValidTo:     epochMillis(c.ValidTo),
	}
}

// epochMillis converts a millisecond epoch to UTC. time.UnixMilli handles
// pre-1970 (negative) values exactly.
func epochMillis(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}

func (cs jsonConceptScheme) toModel(lists []model.Codelist) model.ConceptScheme {
	out := model.ConceptScheme{
		Agency:      cs.Agency,
		ID:          cs.ID,
		Version:     cs.Version,
		Name:        cs.Name,
		Description: cs.Description,
	}
	for _, c := range cs.Concepts {
		out.Concepts = append(out.Concepts, c.toModel(lists))
	}
	return out
}

func (c jsonConcept) toModel(lists []model.Codelist) model.Concept {
	out := model.Concept{ID: c.ID, Name: c.Name, Description: c.Description}
	if rep := c.CoreRepresentation; rep != nil {
		if rep.Format != nil {
			out.Dtype = rep.Format.dtype()
			out.Facets = rep.Format.facets()
		}
		if rep.Enumeration != "" {
			cl, err := assemble.ResolveEnumeration(rep.Enumeration, lists)
			if err != nil {
				out.EnumRef = rep.Enumeration
			} else {
				out.Codes = cl
			}
		}
	}
	return out
}

func (f *format) dtype() model.DataType {
	if f.DataType == "" {
		return ""
	}
	return model.ParseDataType(f.DataType)
}

func (f *format) facets() *model.Facets {
	out := &model.Facets{
		MinLength:  f.MinLength,
		MaxLength:  f.MaxLength,
		MinValue:   f.MinValue,
		MaxValue:   f.MaxValue,
		StartValue: f.StartValue,
		EndValue:   f.EndValue,
		Decimals:   f.Decimals,
		Pattern:    f.Pattern,
		IsSequence: f.IsSequence,
	}
	if t, err := time.Parse(time.RFC3339, f.StartTime); err == nil && f.StartTime != "" {
		u := t.UTC()
		out.StartTime = &u
	}
	if t, err := time.Parse(time.RFC3339, f.EndTime); err == nil && f.EndTime != "" {
		u := t.UTC()
		out.EndTime = &u
	}
	return out.OrNil()
}

func constraintMapFor(ds jsonDataStructure, constraints []jsonConstraint) assemble.ConstraintMap {
	cmap := assemble.ConstraintMap{}
	for _, cc := range constraints {
		if !cc.appliesTo(ds) {
			continue
		}
		cmap.Merge(cc.toMap())
	}
	return cmap
}

func (cc jsonConstraint) appliesTo(ds jsonDataStructure) bool {
	if cc.Attachment == nil || len(cc.Attachment.DataStructures) == 0 {
		return true
	}
	for _, urn := range cc.Attachment.DataStructures {
		ref, err := model.ParseReference(urn)
		if err != nil {
			continue
		}
		if ref.Agency == ds.Agency && ref.ID == ds.ID && ref.Version == ds.Version {
			return true
		}
	}
	return false
}

func (cc jsonConstraint) toMap() assemble.ConstraintMap {
	cmap := assemble.ConstraintMap{}
	for _, region := range cc.CubeRegions {
		if !region.Include {
			continue
		}
		for _, comp := range region.Components {
			cmap[comp.ID] = append(cmap[comp.ID], comp.Values...)
		}
	}
	return cmap
}

// toModel assembles dimensions (declared, then time dimensions), measures,
// and attributes, in that order.
func (ds jsonDataStructure) toModel(schemes []model.ConceptScheme, lists []model.Codelist, cmap assemble.ConstraintMap) (model.DataStructureDefinition, error) {
	groups := make(map[string][]string, len(ds.Components.Groups))
	for _, g := range ds.Components.Groups {
		groups[g.ID] = g.GroupDimensions
	}

	components := &model.Components{}
	dims := append(append([]jsonDimension{}, ds.Components.DimensionList.Dimensions...),
		ds.Components.DimensionList.TimeDimensions...)
	for _, d := range dims {
		c, err := buildComponent(d.ID, d.ConceptIdentity, d.LocalRepresentation, model.RoleDimension, true, schemes, lists, cmap)
		if err != nil {
			return model.DataStructureDefinition{}, err
		}
		if err := components.Append(c); err != nil {
			return model.DataStructureDefinition{}, err
		}
	}
	for _, m := range ds.Components.MeasureList.Measures {
		c, err := buildComponent(m.ID, m.ConceptIdentity, m.LocalRepresentation, model.RoleMeasure, m.Usage == "mandatory", schemes, lists, cmap)
		if err != nil {
			return model.DataStructureDefinition{}, err
		}
		if err := components.Append(c); err != nil {
			return model.DataStructureDefinition{}, err
		}
	}
	for _, a := range ds.Components.AttributeList.Attributes {
		c, err := buildComponent(a.ID, a.ConceptIdentity, a.LocalRepresentation, model.RoleAttribute, a.Usage == "mandatory", schemes, lists, cmap)
		if err != nil {
			return model.DataStructureDefinition{}, err
		}
		c.AttachmentLevel, err = a.attachmentLevel(c.ID, groups)
		if err != nil {
			return model.DataStructureDefinition{}, err
		}
		if err := components.Append(c); err != nil {
			return model.DataStructureDefinition{}, err
		}
	}

	return model.DataStructureDefinition{
		Agency:      ds.Agency,
		ID:          ds.ID,
		Version:     ds.Version,
		Name:        ds.Name,
		Description: ds.Description,
		Components:  components,
	}, nil
}

// attachmentLevel maps the attributeRelationship alternatives onto the
// shared assembly vocabulary before inference.
func (a jsonAttribute) attachmentLevel(id string, groups map[string][]string) (string, error) {
	rel := a.AttributeRelationship
	if rel == nil {
		return assemble.AttachmentLevel(id, "", "", nil, groups)
	}
	switch {
	case rel.Observation != nil:
		return assemble.AttachmentLevel(id, assemble.LevelObservation, "", nil, groups)
	case rel.Dataflow != nil:
		return assemble.AttachmentLevel(id, assemble.LevelDataset, "", nil, groups)
	case rel.Group != "":
		return assemble.AttachmentLevel(id, assemble.LevelGroup, rel.Group, nil, groups)
	default:
		return assemble.AttachmentLevel(id, "", "", rel.Dimensions, groups)
	}
}

func (df jsonDataflow) toModel(structures []model.DataStructureDefinition) model.Dataflow {
	out := model.Dataflow{
		Agency:      df.Agency,
		ID:          df.ID,
		Version:     df.Version,
		Name:        df.Name,
		Description: df.Description,
		Structure:   df.Structure,
	}
	if df.Structure != "" {
		if dsd, err := model.FindByURN(df.Structure, structures); err == nil {
			out.Components = dsd.Components
		}
	}
	return out
}

func buildComponent(id, conceptURN string, rep *representation, role model.Role, required bool, schemes []model.ConceptScheme, lists []model.Codelist, cmap assemble.ConstraintMap) (model.Component, error) {
	concept, err := model.FindConcept(conceptURN, schemes)
	if err != nil {
		return model.Component{}, err
	}
	if id == "" {
		id = concept.ID
	}
	out := model.Component{ID: id, Required: required, Role: role, Concept: *concept}

	if rep != nil {
		if rep.Format != nil {
			out.LocalDtype = rep.Format.dtype()
			out.LocalFacets = rep.Format.facets()
		}
		if rep.Enumeration != "" {
			cl, err := assemble.ResolveEnumeration(rep.Enumeration, lists)
			if err != nil {
				return model.Component{}, err
			}
			out.LocalCodes = cmap.Filter(cl, id)
		}
		if rep.MinOccurs != nil || rep.MaxOccurs != nil {
			minOccurs := 0
			if rep.MinOccurs != nil {
				minOccurs = *rep.MinOccurs
			}
			var maxOccurs *int
			if rep.MaxOccurs != nil {
				maxOccurs = rep.MaxOccurs.n
			} else {
				one := 1
				maxOccurs = &one
			}
			out.ArrayDef = assemble.Bounds(minOccurs, maxOccurs)
		}
	}
	if out.LocalCodes == nil && concept.Codes != nil {
		if filtered := cmap.Filter(concept.Codes, id); filtered != concept.Codes {
			out.LocalCodes = filtered
		}
	}
	return out, nil
}
