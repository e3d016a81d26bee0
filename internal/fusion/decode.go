package fusion

import (
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/bis-med-it/gosdmx/errors"
	"github.com/bis-med-it/gosdmx/internal/assemble"
	"github.com/bis-med-it/gosdmx/model"
)

// DecodeStructures decodes a Fusion-JSON structure message into the
// canonical model. Every cross-reference is resolved within the message;
// one broken reference fails the whole decode.
func DecodeStructures(text string) (*model.StructureMessage, error) {
	var raw structureMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, errors.Invalid("Invalid Fusion-JSON payload", "%v", err)
	}

	out := &model.StructureMessage{}
	for _, cl := range raw.Codelists {
		m, err := cl.toModel(model.KindCodelist)
		if err != nil {
			return nil, err
		}
		out.Codelists = append(out.Codelists, m)
	}
	for _, vl := range raw.ValueLists {
		m, err := vl.toModel(model.KindValuelist)
		if err != nil {
			return nil, err
		}
		out.Codelists = append(out.Codelists, m)
	}
	for _, cs := range raw.ConceptSchemes {
		out.ConceptSchemes = append(out.ConceptSchemes, cs.toModel(out.Codelists))
	}
	for _, ds := range raw.DataStructures {
		dsd, err := ds.toModel(out.ConceptSchemes, out.Codelists, constraintMapFor(ds, raw.Constraints))
		if err != nil {
			return nil, err
		}
		out.DataStructures = append(out.DataStructures, dsd)
	}
	for _, df := range raw.Dataflows {
		out.Dataflows = append(out.Dataflows, df.toModel(out.DataStructures))
	}
	return out, nil
}

func (cl fusionCodelist) toModel(kind model.CodelistKind) (model.Codelist, error) {
	out := model.Codelist{
		Agency:      cl.Agency,
		ID:          cl.ID,
		Version:     cl.Version,
		Name:        firstValue(cl.Names),
		Description: firstValue(cl.Descriptions),
		SdmxType:    kind,
	}
	for _, c := range cl.Items {
		code, err := c.toModel()
		if err != nil {
			return model.Codelist{}, err
		}
		out.Codes = append(out.Codes, code)
	}
	return out, nil
}

func (c fusionCode) toModel() (model.Code, error) {
	out := model.Code{
		ID:          c.ID,
		Name:        firstValue(c.Names),
		Description: firstValue(c.Descriptions),
	}
	for _, a := range c.Annotations {
		if a.Type != validityAnnotation {
			continue
		}
		from, to, err := parseValidity(a.Title)
		if err != nil {
			return model.Code{}, err
		}
		out.ValidFrom, out.ValidTo = from, to
		break
	}
	return out, nil
}

// parseValidity splits a "from/to" validity title. Either side may be
// empty, meaning unbounded on that side.
func parseValidity(title string) (from, to *time.Time, err error) {
	i := strings.Index(title, "/")
	if i < 0 {
		return nil, nil, errors.Invalid("Invalid validity period",
			"annotation title %q is not a from/to pair", title)
	}
	if from, err = parseValidityEdge(title[:i]); err != nil {
		return nil, nil, err
	}
	if to, err = parseValidityEdge(title[i+1:]); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func parseValidityEdge(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, errors.Invalid("Invalid validity period", "%q is not an RFC 3339 timestamp", s)
	}
	t = t.UTC()
	return &t, nil
}

func (cs fusionConceptScheme) toModel(lists []model.Codelist) model.ConceptScheme {
	out := model.ConceptScheme{
		Agency:      cs.Agency,
		ID:          cs.ID,
		Version:     cs.Version,
		Name:        firstValue(cs.Names),
		Description: firstValue(cs.Descriptions),
	}
	for _, c := range cs.Items {
		out.Concepts = append(out.Concepts, c.toModel(lists))
	}
	return out
}

func (c fusionConcept) toModel(lists []model.Codelist) model.Concept {
	out := model.Concept{
		ID:          c.ID,
		Name:        firstValue(c.Names),
		Description: firstValue(c.Descriptions),
	}
	if rep := c.Representation; rep != nil {
		if rep.TextFormat != nil {
			out.Dtype = rep.TextFormat.dtype()
			out.Facets = rep.TextFormat.facets()
		}
		if rep.Representation != "" {
			cl, err := assemble.ResolveEnumeration(rep.Representation, lists)
			if err != nil {
				// The scheme may ship without its codelists; keep the URN
				// so callers can fetch the list separately.
				out.EnumRef = rep.Representation
			} else {
				out.Codes = cl
			}
		}
	}
	return out
}

func (tf *textFormat) dtype() model.DataType {
	if tf.TextType == "" {
		return ""
	}
	return model.ParseDataType(tf.TextType)
}

func (tf *textFormat) facets() *model.Facets {
	f := &model.Facets{
		MinLength:  tf.MinLength,
		MaxLength:  tf.MaxLength,
		MinValue:   tf.MinValue,
		MaxValue:   tf.MaxValue,
		StartValue: tf.StartValue,
		EndValue:   tf.EndValue,
		Decimals:   tf.Decimals,
		Pattern:    tf.Pattern,
		IsSequence: tf.IsSequence,
	}
	if t, err := time.Parse(time.RFC3339, tf.StartTime); err == nil && tf.StartTime != "" {
		u := t.UTC()
		f.StartTime = &u
	}
	if t, err := time.Parse(time.RFC3339, tf.EndTime); err == nil && tf.EndTime != "" {
		u := t.UTC()
		f.EndTime = &u
	}
	return f.OrNil()
}

func (df fusionDataflow) toModel(structures []model.DataStructureDefinition) model.Dataflow {
	out := model.Dataflow{
		Agency:      df.Agency,
		ID:          df.ID,
		Version:     df.Version,
		Name:        firstValue(df.Names),
		Description: firstValue(df.Descriptions),
		Structure:   df.Structure,
	}
	if df.Structure != "" {
		if dsd, err := model.FindByURN(df.Structure, structures); err == nil {
			out.Components = dsd.Components
		}
	}
	return out
}

// constraintMapFor folds every constraint attached to the given structure
// (or attached to nothing, which applies message-wide) into one map.
func constraintMapFor(ds fusionDataStructure, constraints []fusionConstraint) assemble.ConstraintMap {
	cmap := assemble.ConstraintMap{}
	for _, cc := range constraints {
		if !cc.appliesTo(ds) {
			continue
		}
		cmap.Merge(cc.toMap())
	}
	return cmap
}

func (cc fusionConstraint) appliesTo(ds fusionDataStructure) bool {
	if len(cc.Attachment) == 0 {
		return true
	}
	for _, urn := range cc.Attachment {
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

// toMap flattens the constraint's including cube regions into
// component ID -> allowed code IDs.
func (cc fusionConstraint) toMap() assemble.ConstraintMap {
	cmap := assemble.ConstraintMap{}
	for _, region := range cc.CubeRegions {
		if !region.Include {
			continue
		}
		for _, kv := range region.KeyValues {
			cmap[kv.ID] = append(cmap[kv.ID], kv.Values...)
		}
	}
	return cmap
}

// toModel assembles the canonical components for one data structure:
// dimensions first, then measures, then attributes. The order is part of
// the observable contract.
func (ds fusionDataStructure) toModel(schemes []model.ConceptScheme, lists []model.Codelist, cmap assemble.ConstraintMap) (model.DataStructureDefinition, error) {
	groups := make(map[string][]string, len(ds.Groups))
	for _, g := range ds.Groups {
		groups[g.ID] = g.DimensionReferences
	}

	components := &model.Components{}
	for _, d := range ds.DimensionList {
		c, err := buildComponent(d.ID, d.Concept, d.Representation, model.RoleDimension, true, schemes, lists, cmap)
		if err != nil {
			return model.DataStructureDefinition{}, err
		}
		if err := components.Append(c); err != nil {
			return model.DataStructureDefinition{}, err
		}
	}
	for _, m := range ds.Measures {
		c, err := buildComponent(m.ID, m.Concept, m.Representation, model.RoleMeasure, m.Mandatory, schemes, lists, cmap)
		if err != nil {
			return model.DataStructureDefinition{}, err
		}
		if err := components.Append(c); err != nil {
			return model.DataStructureDefinition{}, err
		}
	}
	for _, a := range ds.AttributeList {
		c, err := buildComponent(a.ID, a.Concept, a.Representation, model.RoleAttribute, a.Mandatory, schemes, lists, cmap)
		if err != nil {
			return model.DataStructureDefinition{}, err
		}
		c.AttachmentLevel, err = assemble.AttachmentLevel(c.ID, normalizeLevel(a.AttachmentLevel), a.AttachmentGroup, a.DimensionReferences, groups)
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
		Name:        firstValue(ds.Names),
		Description: firstValue(ds.Descriptions),
		Components:  components,
	}, nil
}

// normalizeLevel maps the Fusion attachment markers onto the shared
// assembly vocabulary. Unknown markers fall through to dimension-reference
// inference.
func normalizeLevel(level string) string {
	switch strings.ToUpper(level) {
	case "OBSERVATION":
		return assemble.LevelObservation
	case "DATA_SET", "DATASET":
		return assemble.LevelDataset
	case "GROUP":
		return assemble.LevelGroup
	}
	return ""
}

func buildComponent(id, conceptURN string, rep *fusionRepresentation, role model.Role, required bool, schemes []model.ConceptScheme, lists []model.Codelist, cmap assemble.ConstraintMap) (model.Component, error) {
	concept, err := model.FindConcept(conceptURN, schemes)
	if err != nil {
		return model.Component{}, err
	}
	if id == "" {
		id = concept.ID
	}
	out := model.Component{ID: id, Required: required, Role: role, Concept: *concept}

	if rep != nil {
		if rep.TextFormat != nil {
			out.LocalDtype = rep.TextFormat.dtype()
			out.LocalFacets = rep.TextFormat.facets()
		}
		if rep.Representation != "" {
			cl, err := assemble.ResolveEnumeration(rep.Representation, lists)
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
	// A constraint narrows the concept-level enumeration too; materialize
	// the filtered list locally so the precedence chain reports it.
	if out.LocalCodes == nil && concept.Codes != nil {
		if filtered := cmap.Filter(concept.Codes, id); filtered != concept.Codes {
			out.LocalCodes = filtered
		}
	}
	return out, nil
}
