// Package sdmxml decodes SDMX-ML structure messages into the canonical
// model. Element matching is by local name, which lets one decoder serve
// the 2.1, 3.0, and 3.1 namespaces: the shapes that matter here (codelist,
// concept scheme, data structure, content constraint) are stable across
// them, with only the attribute-relationship and measure spellings
// differing, and both spellings are accepted.
package sdmxml

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bis-med-it/gosdmx/errors"
	"github.com/bis-med-it/gosdmx/internal/assemble"
	"github.com/bis-med-it/gosdmx/model"
)

// DecodeStructures decodes an SDMX-ML structure message into the
// canonical model.
func DecodeStructures(text string) (*model.StructureMessage, error) {
	var raw structureDocument
	if err := xml.Unmarshal([]byte(text), &raw); err != nil {
		return nil, errors.Invalid("Invalid SDMX-ML payload", "%v", err)
	}

	out := &model.StructureMessage{}
	for _, cl := range raw.Structures.Codelists {
		m, err := cl.toModel(model.KindCodelist)
		if err != nil {
			return nil, err
		}
		out.Codelists = append(out.Codelists, m)
	}
	for _, vl := range raw.Structures.ValueLists {
		m, err := vl.toModel(model.KindValuelist)
		if err != nil {
			return nil, err
		}
		out.Codelists = append(out.Codelists, m)
	}
	for _, cs := range raw.Structures.ConceptSchemes {
		out.ConceptSchemes = append(out.ConceptSchemes, cs.toModel(out.Codelists))
	}
	for _, ds := range raw.Structures.DataStructures {
		dsd, err := ds.toModel(out.ConceptSchemes, out.Codelists, constraintMapFor(ds, raw.Structures.Constraints))
		if err != nil {
			return nil, err
		}
		out.DataStructures = append(out.DataStructures, dsd)
	}
	for _, df := range raw.Structures.Dataflows {
		out.Dataflows = append(out.Dataflows, df.toModel(out.DataStructures))
	}
	return out, nil
}

// ---- document shape ----

type structureDocument struct {
	XMLName    xml.Name      `xml:"Structure"`
	Structures xmlStructures `xml:"Structures"`
}

type xmlStructures struct {
	Codelists      []xmlCodelist      `xml:"Codelists>Codelist"`
	ValueLists     []xmlCodelist      `xml:"ValueLists>ValueList"`
	ConceptSchemes []xmlConceptScheme `xml:"Concepts>ConceptScheme"`
	DataStructures []xmlDataStructure `xml:"DataStructures>DataStructure"`
	Dataflows      []xmlDataflow      `xml:"Dataflows>Dataflow"`
	Constraints    []xmlConstraint    `xml:"Constraints>ContentConstraint"`
}

// intlString is one localized Name or Description element; decoding picks
// the first entry, as everywhere else.
type intlString struct {
	Lang  string `xml:"lang,attr"`
	Value string `xml:",chardata"`
}

func firstValue(ls []intlString) string {
	if len(ls) == 0 {
		return ""
	}
	return strings.TrimSpace(ls[0].Value)
}

// ref is the attribute form of an SDMX-ML reference.
type ref struct {
	Class         string `xml:"class,attr"`
	Agency        string `xml:"agencyID,attr"`
	ID            string `xml:"id,attr"`
	Version       string `xml:"version,attr"`
	ParentID      string `xml:"maintainableParentID,attr"`
	ParentVersion string `xml:"maintainableParentVersion,attr"`
}

// reference accepts both reference spellings: a nested Ref element (2.1)
// or a URN as element text (3.0+).
type reference struct {
	Text string `xml:",chardata"`
	Ref  *ref   `xml:"Ref"`
}

// urn renders the reference as a short URN for the shared resolver. Item
// references (concepts) point into their maintainable parent.
func (r reference) urn() string {
	if t := strings.TrimSpace(r.Text); t != "" {
		return t
	}
	if r.Ref == nil {
		return ""
	}
	if r.Ref.ParentID != "" {
		return fmt.Sprintf("%s=%s:%s(%s).%s",
			r.Ref.Class, r.Ref.Agency, r.Ref.ParentID, r.Ref.ParentVersion, r.Ref.ID)
	}
	return fmt.Sprintf("%s=%s:%s(%s)", r.Ref.Class, r.Ref.Agency, r.Ref.ID, r.Ref.Version)
}

// localID extracts a bare in-structure ID (dimension references inside
// groups and attribute relationships).
func (r reference) localID() string {
	if r.Ref != nil && r.Ref.ID != "" {
		return r.Ref.ID
	}
	return strings.TrimSpace(r.Text)
}

type xmlCode struct {
	ID           string       `xml:"id,attr"`
	ValidFrom    string       `xml:"validFrom,attr"`
	ValidTo      string       `xml:"validTo,attr"`
	Names        []intlString `xml:"Name"`
	Descriptions []intlString `xml:"Description"`
}

type xmlCodelist struct {
	ID           string       `xml:"id,attr"`
	Agency       string       `xml:"agencyID,attr"`
	Version      string       `xml:"version,attr"`
	Names        []intlString `xml:"Name"`
	Descriptions []intlString `xml:"Description"`
	Codes        []xmlCode    `xml:"Code"`
}

type xmlTextFormat struct {
	TextType   string   `xml:"textType,attr"`
	MinLength  *int     `xml:"minLength,attr"`
	MaxLength  *int     `xml:"maxLength,attr"`
	MinValue   *float64 `xml:"minValue,attr"`
	MaxValue   *float64 `xml:"maxValue,attr"`
	StartValue *float64 `xml:"startValue,attr"`
	EndValue   *float64 `xml:"endValue,attr"`
	Decimals   *int     `xml:"decimals,attr"`
	Pattern    string   `xml:"pattern,attr"`
	StartTime  string   `xml:"startTime,attr"`
	EndTime    string   `xml:"endTime,attr"`
	IsSequence bool     `xml:"isSequence,attr"`
}

type xmlRepresentation struct {
	TextFormat  *xmlTextFormat `xml:"TextFormat"`
	Enumeration *reference     `xml:"Enumeration"`
}

type xmlConcept struct {
	ID                 string             `xml:"id,attr"`
	Names              []intlString       `xml:"Name"`
	Descriptions       []intlString       `xml:"Description"`
	CoreRepresentation *xmlRepresentation `xml:"CoreRepresentation"`
}

type xmlConceptScheme struct {
	ID           string       `xml:"id,attr"`
	Agency       string       `xml:"agencyID,attr"`
	Version      string       `xml:"version,attr"`
	Names        []intlString `xml:"Name"`
	Descriptions []intlString `xml:"Description"`
	Concepts     []xmlConcept `xml:"Concept"`
}

type xmlDimension struct {
	ID                  string             `xml:"id,attr"`
	Position            int                `xml:"position,attr"`
	ConceptIdentity     reference          `xml:"ConceptIdentity"`
	LocalRepresentation *xmlRepresentation `xml:"LocalRepresentation"`
}

type xmlDimensionList struct {
	Dimensions     []xmlDimension `xml:"Dimension"`
	TimeDimensions []xmlDimension `xml:"TimeDimension"`
}

type xmlMeasure struct {
	ID                  string             `xml:"id,attr"`
	Usage               string             `xml:"usage,attr"`
	MinOccurs           *int               `xml:"minOccurs,attr"`
	MaxOccurs           string             `xml:"maxOccurs,attr"`
	ConceptIdentity     reference          `xml:"ConceptIdentity"`
	LocalRepresentation *xmlRepresentation `xml:"LocalRepresentation"`
}

type xmlMeasureList struct {
	Measures        []xmlMeasure `xml:"Measure"`
	PrimaryMeasures []xmlMeasure `xml:"PrimaryMeasure"`
}

// xmlAttributeRelationship covers both generations: None/PrimaryMeasure
// are the 2.1 spellings, Dataflow/Observation the 3.0+ ones.
type xmlAttributeRelationship struct {
	None           *struct{}   `xml:"None"`
	Dataflow       *struct{}   `xml:"Dataflow"`
	PrimaryMeasure *reference  `xml:"PrimaryMeasure"`
	Observation    *struct{}   `xml:"Observation"`
	Group          *reference  `xml:"Group"`
	Dimensions     []reference `xml:"Dimension"`
}

type xmlAttribute struct {
	ID                  string                    `xml:"id,attr"`
	AssignmentStatus    string                    `xml:"assignmentStatus,attr"`
	Usage               string                    `xml:"usage,attr"`
	ConceptIdentity     reference                 `xml:"ConceptIdentity"`
	Relationship        *xmlAttributeRelationship `xml:"AttributeRelationship"`
	LocalRepresentation *xmlRepresentation        `xml:"LocalRepresentation"`
}

type xmlGroup struct {
	ID         string      `xml:"id,attr"`
	Dimensions []reference `xml:"GroupDimension>DimensionReference"`
}

type xmlComponents struct {
	DimensionList xmlDimensionList `xml:"DimensionList"`
	Groups        []xmlGroup       `xml:"Group"`
	AttributeList []xmlAttribute   `xml:"AttributeList>Attribute"`
	MeasureList   xmlMeasureList   `xml:"MeasureList"`
}

type xmlDataStructure struct {
	ID           string        `xml:"id,attr"`
	Agency       string        `xml:"agencyID,attr"`
	Version      string        `xml:"version,attr"`
	Names        []intlString  `xml:"Name"`
	Descriptions []intlString  `xml:"Description"`
	Components   xmlComponents `xml:"DataStructureComponents"`
}

type xmlDataflow struct {
	ID           string       `xml:"id,attr"`
	Agency       string       `xml:"agencyID,attr"`
	Version      string       `xml:"version,attr"`
	Names        []intlString `xml:"Name"`
	Descriptions []intlString `xml:"Description"`
	Structure    reference    `xml:"Structure"`
}

type xmlKeyValue struct {
	ID     string   `xml:"id,attr"`
	Values []string `xml:"Value"`
}

type xmlCubeRegion struct {
	Include   *bool         `xml:"include,attr"`
	KeyValues []xmlKeyValue `xml:"KeyValue"`
}

type xmlConstraintAttachment struct {
	DataStructures []reference `xml:"DataStructure"`
	Dataflows      []reference `xml:"Dataflow"`
}

type xmlConstraint struct {
	ID          string                   `xml:"id,attr"`
	Agency      string                   `xml:"agencyID,attr"`
	Version     string                   `xml:"version,attr"`
	Attachment  *xmlConstraintAttachment `xml:"ConstraintAttachment"`
	CubeRegions []xmlCubeRegion          `xml:"CubeRegion"`
}

// ---- conversion ----

func (cl xmlCodelist) toModel(kind model.CodelistKind) (model.Codelist, error) {
	out := model.Codelist{
		Agency:      cl.Agency,
		ID:          cl.ID,
		Version:     cl.Version,
		Name:        firstValue(cl.Names),
		Description: firstValue(cl.Descriptions),
		SdmxType:    kind,
	}
	for _, c := range cl.Codes {
		code := model.Code{
			ID:          c.ID,
			Name:        firstValue(c.Names),
			Description: firstValue(c.Descriptions),
		}
		var err error
		if code.ValidFrom, err = parseValidityAttr(c.ValidFrom); err != nil {
			return model.Codelist{}, err
		}
		if code.ValidTo, err = parseValidityAttr(c.ValidTo); err != nil {
			return model.Codelist{}, err
		}
		out.Codes = append(out.Codes, code)
	}
	return out, nil
}

func parseValidityAttr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, errors.Invalid("Invalid validity period", "%q is not an RFC 3339 timestamp", s)
	}
	u := t.UTC()
	return &u, nil
}

func (cs xmlConceptScheme) toModel(lists []model.Codelist) model.ConceptScheme {
	out := model.ConceptScheme{
		Agency:      cs.Agency,
		ID:          cs.ID,
		Version:     cs.Version,
		Name:        firstValue(cs.Names),
		Description: firstValue(cs.Descriptions),
	}
	for _, c := range cs.Concepts {
		concept := model.Concept{
			ID:          c.ID,
			Name:        firstValue(c.Names),
			Description: firstValue(c.Descriptions),
		}
		if rep := c.CoreRepresentation; rep != nil {
			if rep.TextFormat != nil {
				concept.Dtype = rep.TextFormat.dtype()
				concept.Facets = rep.TextFormat.facets()
			}
			if rep.Enumeration != nil {
				urn := rep.Enumeration.urn()
				if cl, err := assemble.ResolveEnumeration(urn, lists); err != nil {
					concept.EnumRef = urn
				} else {
					concept.Codes = cl
				}
			}
		}
		out.Concepts = append(out.Concepts, concept)
	}
	return out
}

func (tf *xmlTextFormat) dtype() model.DataType {
	if tf.TextType == "" {
		return ""
	}
	return model.ParseDataType(tf.TextType)
}

func (tf *xmlTextFormat) facets() *model.Facets {
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

func constraintMapFor(ds xmlDataStructure, constraints []xmlConstraint) assemble.ConstraintMap {
	cmap := assemble.ConstraintMap{}
	for _, cc := range constraints {
		if !cc.appliesTo(ds) {
			continue
		}
		cmap.Merge(cc.toMap())
	}
	return cmap
}

func (cc xmlConstraint) appliesTo(ds xmlDataStructure) bool {
	if cc.Attachment == nil || len(cc.Attachment.DataStructures) == 0 {
		return true
	}
	for _, r := range cc.Attachment.DataStructures {
		ref, err := model.ParseReference(r.urn())
		if err != nil {
			continue
		}
		if ref.Agency == ds.Agency && ref.ID == ds.ID && ref.Version == ds.Version {
			return true
		}
	}
	return false
}

func (cc xmlConstraint) toMap() assemble.ConstraintMap {
	cmap := assemble.ConstraintMap{}
	for _, region := range cc.CubeRegions {
		if region.Include != nil && !*region.Include {
			continue
		}
		for _, kv := range region.KeyValues {
			cmap[kv.ID] = append(cmap[kv.ID], kv.Values...)
		}
	}
	return cmap
}

func (ds xmlDataStructure) toModel(schemes []model.ConceptScheme, lists []model.Codelist, cmap assemble.ConstraintMap) (model.DataStructureDefinition, error) {
	groups := make(map[string][]string, len(ds.Components.Groups))
	for _, g := range ds.Components.Groups {
		ids := make([]string, 0, len(g.Dimensions))
		for _, d := range g.Dimensions {
			ids = append(ids, d.localID())
		}
		groups[g.ID] = ids
	}

	dims := append(append([]xmlDimension{}, ds.Components.DimensionList.Dimensions...),
		ds.Components.DimensionList.TimeDimensions...)
	// Declared position wins over document order when present.
	sort.SliceStable(dims, func(i, j int) bool { return dims[i].Position < dims[j].Position })

	components := &model.Components{}
	for _, d := range dims {
		c, err := buildComponent(d.ID, d.ConceptIdentity, d.LocalRepresentation, model.RoleDimension, true, nil, "", schemes, lists, cmap)
		if err != nil {
			return model.DataStructureDefinition{}, err
		}
		if err := components.Append(c); err != nil {
			return model.DataStructureDefinition{}, err
		}
	}
	measures := append(append([]xmlMeasure{}, ds.Components.MeasureList.PrimaryMeasures...),
		ds.Components.MeasureList.Measures...)
	for _, m := range measures {
		required := m.Usage == "mandatory" || m.Usage == ""
		c, err := buildComponent(m.ID, m.ConceptIdentity, m.LocalRepresentation, model.RoleMeasure, required, m.MinOccurs, m.MaxOccurs, schemes, lists, cmap)
		if err != nil {
			return model.DataStructureDefinition{}, err
		}
		if err := components.Append(c); err != nil {
			return model.DataStructureDefinition{}, err
		}
	}
	for _, a := range ds.Components.AttributeList {
		required := a.AssignmentStatus == "Mandatory" || a.Usage == "mandatory"
		c, err := buildComponent(a.ID, a.ConceptIdentity, a.LocalRepresentation, model.RoleAttribute, required, nil, "", schemes, lists, cmap)
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
		Name:        firstValue(ds.Names),
		Description: firstValue(ds.Descriptions),
		Components:  components,
	}, nil
}

func (a xmlAttribute) attachmentLevel(id string, groups map[string][]string) (string, error) {
	rel := a.Relationship
	if rel == nil {
		return assemble.AttachmentLevel(id, "", "", nil, groups)
	}
	switch {
	case rel.PrimaryMeasure != nil || rel.Observation != nil:
		return assemble.AttachmentLevel(id, assemble.LevelObservation, "", nil, groups)
	case rel.None != nil || rel.Dataflow != nil:
		return assemble.AttachmentLevel(id, assemble.LevelDataset, "", nil, groups)
	case rel.Group != nil:
		return assemble.AttachmentLevel(id, assemble.LevelGroup, rel.Group.localID(), nil, groups)
	default:
		ids := make([]string, 0, len(rel.Dimensions))
		for _, d := range rel.Dimensions {
			ids = append(ids, d.localID())
		}
		return assemble.AttachmentLevel(id, "", "", ids, groups)
	}
}

func (df xmlDataflow) toModel(structures []model.DataStructureDefinition) model.Dataflow {
	out := model.Dataflow{
		Agency:      df.Agency,
		ID:          df.ID,
		Version:     df.Version,
		Name:        firstValue(df.Names),
		Description: firstValue(df.Descriptions),
		Structure:   df.Structure.urn(),
	}
	if out.Structure != "" {
		if dsd, err := model.FindByURN(out.Structure, structures); err == nil {
			out.Components = dsd.Components
		}
	}
	return out
}

func buildComponent(id string, identity reference, rep *xmlRepresentation, role model.Role, required bool, minOccurs *int, maxOccurs string, schemes []model.ConceptScheme, lists []model.Codelist, cmap assemble.ConstraintMap) (model.Component, error) {
	concept, err := model.FindConcept(identity.urn(), schemes)
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
		if rep.Enumeration != nil {
			cl, err := assemble.ResolveEnumeration(rep.Enumeration.urn(), lists)
			if err != nil {
				return model.Component{}, err
			}
			out.LocalCodes = cmap.Filter(cl, id)
		}
	}
	if minOccurs != nil || maxOccurs != "" {
		lo := 0
		if minOccurs != nil {
			lo = *minOccurs
		}
		var hi *int
		if maxOccurs == "" {
			one := 1
			hi = &one
		} else if maxOccurs != "unbounded" {
			var v int
			if _, err := fmt.Sscanf(maxOccurs, "%d", &v); err != nil {
				return model.Component{}, errors.Invalid("Invalid occurrence count", "maxOccurs %q is neither a number nor unbounded", maxOccurs)
			}
			hi = &v
		}
		out.ArrayDef = assemble.Bounds(lo, hi)
	}
	if out.LocalCodes == nil && concept.Codes != nil {
		if filtered := cmap.Filter(concept.Codes, id); filtered != concept.Codes {
			out.LocalCodes = filtered
		}
	}
	return out, nil
}
