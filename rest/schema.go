package rest

import (
	"fmt"

	"github.com/bis-med-it/gosdmx/errors"
)

// SchemaContext selects what kind of artefact a schema query addresses.
type SchemaContext string

const (
	SchemaDataflowContext            SchemaContext = "dataflow"
	SchemaDataStructureContext       SchemaContext = "datastructure"
	SchemaProvisionAgreement         SchemaContext = "provisionagreement"
	SchemaMetadataProvisionAgreement SchemaContext = "metadataprovisionagreement"
	SchemaMetadataflowContext        SchemaContext = "metadataflow"
	SchemaMetadataStructureContext   SchemaContext = "metadatastructure"
)

// SchemaQuery asks for the validation schema a single artefact implies.
// Unlike the other query kinds it addresses exactly one artefact, so
// agency, resource and version are scalars.
type SchemaQuery struct {
	Context  SchemaContext
	AgencyID string
	ID       string
	Version  string
	// DimensionAtObservation pivots the schema on one dimension.
	DimensionAtObservation string
	// Explicit requests explicit measures; pre-2.0.0 APIs only.
	Explicit bool
}

// Validate checks the query against the targeted API version.
func (q SchemaQuery) Validate(v Version) error {
	switch q.Context {
	case SchemaDataflowContext, SchemaDataStructureContext, SchemaProvisionAgreement:
	case SchemaMetadataProvisionAgreement, SchemaMetadataflowContext, SchemaMetadataStructureContext:
		if v < V2_0_0 {
			return errors.Invalid("Invalid schema context",
				"context %q requires API version %s or later, targeting %s", q.Context, V2_0_0, v)
		}
	default:
		return errors.Invalid("Invalid schema context", "%q is not a schema query context", q.Context)
	}
	if q.AgencyID == "" || q.ID == "" {
		return errors.Invalid("Invalid schema query", "agency and resource IDs are required")
	}
	if q.Explicit && v >= V2_0_0 {
		return errors.Invalid("Invalid parameter",
			"the explicit flag was removed in API version %s, targeting %s", V2_0_0, v)
	}
	return nil
}

// URL validates against v and renders the query.
func (q SchemaQuery) URL(v Version, omitDefaults bool) (string, error) {
	if err := q.Validate(v); err != nil {
		return "", err
	}
	voc := vocabularyFor(v)
	version := q.Version
	if version == "" {
		version = voc.Latest
	} else {
		version = translate(version, v)
	}
	segs := []segment{
		{value: string(q.Context)},
		{value: q.AgencyID},
		{value: q.ID},
		{value: version, isDefault: version == voc.Latest},
	}
	ps := params{}
	if q.DimensionAtObservation != "" {
		ps = append(ps, param{name: "dimensionAtObservation", value: q.DimensionAtObservation})
	}
	if v < V2_0_0 {
		ps = append(ps, param{name: "explicit", value: fmt.Sprintf("%t", q.Explicit), isDefault: !q.Explicit})
	}
	return joinSegments("/schema", segs, omitDefaults) + ps.render(omitDefaults), nil
}
