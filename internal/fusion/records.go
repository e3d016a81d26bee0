// Package fusion decodes Fusion-JSON structural metadata into the
// canonical model. Fusion-JSON carries artefacts at the top level of the
// message, without the meta/data envelope SDMX-JSON wraps them in.
package fusion

import "strconv"

// localised is one entry of an internationalized string. Decoding picks
// entry 0; locale-preference resolution is deliberately not implemented.
type localised struct {
	Locale string `json:"locale"`
	Value  string `json:"value"`
}

func firstValue(ls []localised) string {
	if len(ls) == 0 {
		return ""
	}
	return ls[0].Value
}

type annotation struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// validityAnnotation marks the annotation carrying a code's validity
// window as a "from/to" title, either side optionally empty.
const validityAnnotation = "FR_VALIDITY_PERIOD"

type fusionCode struct {
	ID           string       `json:"id"`
	Names        []localised  `json:"names"`
	Descriptions []localised  `json:"descriptions"`
	Annotations  []annotation `json:"annotations"`
}

type fusionCodelist struct {
	ID           string       `json:"id"`
	Agency       string       `json:"agencyId"`
	Version      string       `json:"version"`
	Names        []localised  `json:"names"`
	Descriptions []localised  `json:"descriptions"`
	Items        []fusionCode `json:"items"`
}

// occurs is an occurrence count that arrives either as a number or as the
// keyword "unbounded". A nil inner value means unbounded.
type occurs struct {
	n *int
}

func (o *occurs) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == `"unbounded"` {
		o.n = nil
		return nil
	}
	s = trimQuotes(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	o.n = &v
	return nil
}

func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

type textFormat struct {
	TextType   string   `json:"textType"`
	MinLength  *int     `json:"minLength"`
	MaxLength  *int     `json:"maxLength"`
	MinValue   *float64 `json:"minValue"`
	MaxValue   *float64 `json:"maxValue"`
	StartValue *float64 `json:"startValue"`
	EndValue   *float64 `json:"endValue"`
	Decimals   *int     `json:"decimals"`
	Pattern    string   `json:"pattern"`
	StartTime  string   `json:"startTime"`
	EndTime    string   `json:"endTime"`
	IsSequence bool     `json:"isSequence"`
}

type fusionRepresentation struct {
	TextFormat *textFormat `json:"textFormat"`
	// Representation is the URN of the codelist or valuelist enumerating
	// the allowed values.
	Representation string  `json:"representation"`
	MinOccurs      *int    `json:"minOccurs"`
	MaxOccurs      *occurs `json:"maxOccurs"`
}

type fusionConcept struct {
	ID             string                `json:"id"`
	Names          []localised           `json:"names"`
	Descriptions   []localised           `json:"descriptions"`
	Representation *fusionRepresentation `json:"representation"`
}

type fusionConceptScheme struct {
	ID           string          `json:"id"`
	Agency       string          `json:"agencyId"`
	Version      string          `json:"version"`
	Names        []localised     `json:"names"`
	Descriptions []localised     `json:"descriptions"`
	Items        []fusionConcept `json:"items"`
}

type fusionDimension struct {
	ID             string                `json:"id"`
	Concept        string                `json:"concept"`
	Representation *fusionRepresentation `json:"representation"`
}

type fusionMeasure struct {
	ID             string                `json:"id"`
	Concept        string                `json:"concept"`
	Mandatory      bool                  `json:"mandatory"`
	Representation *fusionRepresentation `json:"representation"`
}

type fusionAttribute struct {
	ID                  string                `json:"id"`
	Concept             string                `json:"concept"`
	Mandatory           bool                  `json:"mandatory"`
	AttachmentLevel     string                `json:"attachmentLevel"`
	AttachmentGroup     string                `json:"attachmentGroup"`
	DimensionReferences []string              `json:"dimensionReferences"`
	Representation      *fusionRepresentation `json:"representation"`
}

type fusionGroup struct {
	ID                  string   `json:"id"`
	DimensionReferences []string `json:"dimensionReferences"`
}

type fusionDataStructure struct {
	ID            string            `json:"id"`
	Agency        string            `json:"agencyId"`
	Version       string            `json:"version"`
	Names         []localised       `json:"names"`
	Descriptions  []localised       `json:"descriptions"`
	DimensionList []fusionDimension `json:"dimensionList"`
	Measures      []fusionMeasure   `json:"measures"`
	AttributeList []fusionAttribute `json:"attributeList"`
	Groups        []fusionGroup     `json:"groups"`
}

type fusionDataflow struct {
	ID           string      `json:"id"`
	Agency       string      `json:"agencyId"`
	Version      string      `json:"version"`
	Names        []localised `json:"names"`
	Descriptions []localised `json:"descriptions"`
	Structure    string      `json:"structure"`
}

type keyValues struct {
	ID     string   `json:"id"`
	Values []string `json:"values"`
}

type cubeRegion struct {
	Include   bool        `json:"include"`
	KeyValues []keyValues `json:"keyValues"`
}

type fusionConstraint struct {
	ID      string `json:"id"`
	Agency  string `json:"agencyId"`
	Version string `json:"version"`
	// Attachment lists the URNs of the artefacts the constraint narrows.
	// An empty list applies the constraint to every structure in the
	// message.
	Attachment  []string     `json:"attachment"`
	CubeRegions []cubeRegion `json:"cubeRegions"`
}

// structureMessage mirrors the top level of a Fusion-JSON structure
// message.
type structureMessage struct {
	DataStructures []fusionDataStructure `json:"DataStructure"`
	Dataflows      []fusionDataflow      `json:"Dataflow"`
	Codelists      []fusionCodelist      `json:"Codelist"`
	ValueLists     []fusionCodelist      `json:"ValueList"`
	ConceptSchemes []fusionConceptScheme `json:"ConceptScheme"`
	Constraints    []fusionConstraint    `json:"ContentConstraint"`
}
