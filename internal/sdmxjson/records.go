// Package sdmxjson decodes SDMX-JSON 2.0 structure messages into the
// canonical model. SDMX-JSON wraps artefacts in a meta/data envelope and
// nests structure components under dataStructureComponents.
package sdmxjson

import (
	"strconv"

	json "github.com/goccy/go-json"
)

type envelope struct {
	Meta json.RawMessage `json:"meta"`
	Data payload         `json:"data"`
}

type payload struct {
	DataStructures []jsonDataStructure `json:"dataStructures"`
	Dataflows      []jsonDataflow      `json:"dataflows"`
	Codelists      []jsonCodelist      `json:"codelists"`
	Valuelists     []jsonCodelist      `json:"valuelists"`
	ConceptSchemes []jsonConceptScheme `json:"conceptSchemes"`
	Constraints    []jsonConstraint    `json:"contentConstraints"`
}

type jsonCode struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Validity edges arrive as millisecond epochs. Values before 1970 are
	// negative and must round-trip exactly.
	ValidFrom *int64 `json:"validFrom"`
	ValidTo   *int64 `json:"validTo"`
}

type jsonCodelist struct {
	ID          string     `json:"id"`
	Agency      string     `json:"agencyID"`
	Version     string     `json:"version"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Codes       []jsonCode `json:"codes"`
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
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	o.n = &v
	return nil
}

type format struct {
	DataType   string   `json:"dataType"`
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

type representation struct {
	Enumeration string  `json:"enumeration"`
	Format      *format `json:"format"`
	MinOccurs   *int    `json:"minOccurs"`
	MaxOccurs   *occurs `json:"maxOccurs"`
}

type jsonConcept struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	CoreRepresentation *representation `json:"coreRepresentation"`
}

type jsonConceptScheme struct {
	ID          string        `json:"id"`
	Agency      string        `json:"agencyID"`
	Version     string        `json:"version"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Concepts    []jsonConcept `json:"concepts"`
}

type jsonDimension struct {
	ID                  string          `json:"id"`
	ConceptIdentity     string          `json:"conceptIdentity"`
	LocalRepresentation *representation `json:"localRepresentation"`
}

type jsonMeasure struct {
	ID                  string          `json:"id"`
	ConceptIdentity     string          `json:"conceptIdentity"`
	Usage               string          `json:"usage"`
	LocalRepresentation *representation `json:"localRepresentation"`
}

// attributeRelationship tells where an attribute attaches. Exactly one of
// the alternatives is populated in a well-formed document.
type attributeRelationship struct {
	Observation json.RawMessage `json:"observation"`
	Dataflow    json.RawMessage `json:"dataflow"`
	Group       string          `json:"group"`
	Dimensions  []string        `json:"dimensions"`
}

type jsonAttribute struct {
	ID                    string                 `json:"id"`
	ConceptIdentity       string                 `json:"conceptIdentity"`
	Usage                 string                 `json:"usage"`
	AttributeRelationship *attributeRelationship `json:"attributeRelationship"`
	LocalRepresentation   *representation        `json:"localRepresentation"`
}

type jsonGroup struct {
	ID              string   `json:"id"`
	GroupDimensions []string `json:"groupDimensions"`
}

type dimensionList struct {
	Dimensions     []jsonDimension `json:"dimensions"`
	TimeDimensions []jsonDimension `json:"timeDimensions"`
}

type measureList struct {
	Measures []jsonMeasure `json:"measures"`
}

type attributeList struct {
	Attributes []jsonAttribute `json:"attributes"`
}

type dataStructureComponents struct {
	DimensionList dimensionList `json:"dimensionList"`
	MeasureList   measureList   `json:"measureList"`
	AttributeList attributeList `json:"attributeList"`
	Groups        []jsonGroup   `json:"groups"`
}

type jsonDataStructure struct {
	ID          string                  `json:"id"`
	Agency      string                  `json:"agencyID"`
	Version     string                  `json:"version"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Components  dataStructureComponents `json:"dataStructureComponents"`
}

type jsonDataflow struct {
	ID          string `json:"id"`
	Agency      string `json:"agencyID"`
	Version     string `json:"version"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Structure   string `json:"structure"`
}

type constraintComponent struct {
	ID     string   `json:"id"`
	Values []string `json:"values"`
}

type jsonCubeRegion struct {
	Include    bool                  `json:"include"`
	Components []constraintComponent `json:"components"`
}

type constraintAttachment struct {
	DataStructures []string `json:"dataStructures"`
	Dataflows      []string `json:"dataflows"`
}

type jsonConstraint struct {
	ID          string                `json:"id"`
	Agency      string                `json:"agencyID"`
	Version     string                `json:"version"`
	Attachment  *constraintAttachment `json:"constraintAttachment"`
	CubeRegions []jsonCubeRegion      `json:"cubeRegions"`
}
