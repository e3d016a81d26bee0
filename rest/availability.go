package rest

import (
	"strings"
	"time"
)

// AvailabilityMode selects how the returned constraint is computed.
type AvailabilityMode string

const (
	ModeExact     AvailabilityMode = "exact" // default
	ModeAvailable AvailabilityMode = "available"
)

// AvailabilityQuery asks which codes actually occur in the data matching
// a series key. Supported from API version 1.3.0; the context form and
// multi-value lists arrive with 2.0.0.
type AvailabilityQuery struct {
	Context     DataContext
	AgencyIDs   []string
	ResourceIDs []string
	Versions    []string
	Key         string
	// ComponentID narrows the answer to one dimension.
	ComponentID  string
	Mode         AvailabilityMode
	References   StructureReference
	UpdatedAfter *time.Time
}

func (q AvailabilityQuery) context() DataContext {
	if q.Context == "" {
		return DataflowContext
	}
	return q.Context
}

// Validate checks the query against the targeted API version.
func (q AvailabilityQuery) Validate(v Version) error {
	if v < V1_3_0 {
		return invalidBefore("availability queries", v, V1_3_0)
	}
	switch q.context() {
	case DataflowContext, DataStructureContext, ProvisionAgreementContext:
	default:
		return invalidField("availability context", string(q.Context))
	}
	if v < V2_0_0 && q.context() != DataflowContext {
		return invalidBefore("availability contexts other than dataflow", v, V2_0_0)
	}
	for _, check := range []struct {
		field  string
		values []string
	}{
		{"agency", q.AgencyIDs},
		{"resource", q.ResourceIDs},
		{"version", q.Versions},
	} {
		if err := checkMulti(check.field, check.values, v, V2_0_0); err != nil {
			return err
		}
	}
	return nil
}

// URL validates against v and renders the query.
func (q AvailabilityQuery) URL(v Version, omitDefaults bool) (string, error) {
	if err := q.Validate(v); err != nil {
		return "", err
	}
	if v >= V2_0_0 {
		return q.url2(v, omitDefaults), nil
	}
	return q.url1(v, omitDefaults), nil
}

func (q AvailabilityQuery) url2(v Version, omitDefaults bool) string {
	voc := vocabularyFor(v)
	key := q.Key
	if key == "" {
		key = voc.All
	}
	componentID := q.ComponentID
	if componentID == "" {
		componentID = voc.All
	}
	segs := []segment{
		{value: string(q.context())},
		listSegment(q.AgencyIDs, v),
		listSegment(q.ResourceIDs, v),
		listSegment(q.Versions, v),
		{value: key, isDefault: key == voc.All},
		{value: componentID, isDefault: componentID == voc.All},
	}
	return joinSegments("/availability", segs, omitDefaults) + q.queryParams().render(omitDefaults)
}

// url1 renders the pre-2.0.0 form: a comma-joined flow reference, then
// key, provider and component.
func (q AvailabilityQuery) url1(v Version, omitDefaults bool) string {
	flow := []string{"all"}
	if len(q.AgencyIDs) == 1 || len(q.ResourceIDs) == 1 || len(q.Versions) == 1 {
		flow = []string{translate(firstOr(q.AgencyIDs, "all"), v), translate(firstOr(q.ResourceIDs, "all"), v)}
		if len(q.Versions) == 1 {
			flow = append(flow, translate(q.Versions[0], v))
		}
	}
	key := q.Key
	if key == "" {
		key = "all"
	}
	componentID := q.ComponentID
	if componentID == "" {
		componentID = "all"
	}
	segs := []segment{
		{value: strings.Join(flow, ","), isDefault: len(flow) == 1 && flow[0] == "all"},
		{value: key, isDefault: key == "all"},
		{value: "all", isDefault: true}, // provider reference
		{value: componentID, isDefault: componentID == "all"},
	}
	return joinSegments("/availableconstraint", segs, omitDefaults) + q.queryParams().render(omitDefaults)
}

func (q AvailabilityQuery) queryParams() params {
	mode := q.Mode
	if mode == "" {
		mode = ModeExact
	}
	refs := q.References
	if refs == "" {
		refs = RefNone
	}
	ps := params{
		{name: "mode", value: string(mode), isDefault: mode == ModeExact},
		{name: "references", value: string(refs), isDefault: refs == RefNone},
	}
	if q.UpdatedAfter != nil {
		ps = append(ps, param{name: "updatedAfter", value: timeParam(q.UpdatedAfter)})
	}
	return ps
}
