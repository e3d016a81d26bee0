package rest

import (
	"fmt"
	"strings"
	"time"

	"github.com/bis-med-it/gosdmx/errors"
)

// DataContext selects what kind of artefact a data query addresses.
type DataContext string

const (
	DataflowContext           DataContext = "dataflow"
	DataStructureContext      DataContext = "datastructure"
	ProvisionAgreementContext DataContext = "provisionagreement"
)

// DataQuery addresses observation data. The zero value queries every
// dataflow with all defaults.
type DataQuery struct {
	Context     DataContext
	AgencyIDs   []string
	ResourceIDs []string
	Versions    []string
	// Key filters series, dot-separated dimension values.
	Key          string
	UpdatedAfter *time.Time
	FirstNObs    *int
	LastNObs     *int
	// Attributes defaults to "dsd", Measures to "all".
	Attributes     string
	Measures       string
	IncludeHistory bool
}

func (q DataQuery) context() DataContext {
	if q.Context == "" {
		return DataflowContext
	}
	return q.Context
}

// Validate checks the query against the targeted API version.
func (q DataQuery) Validate(v Version) error {
	switch q.context() {
	case DataflowContext, DataStructureContext, ProvisionAgreementContext:
	default:
		return errors.Invalid("Invalid data context", "%q is not a data query context", q.Context)
	}
	if v < V2_0_0 && q.context() != DataflowContext {
		return errors.Invalid("Invalid data context",
			"context %q requires API version %s or later, targeting %s", q.context(), V2_0_0, v)
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
	if v < V2_0_0 && (q.Attributes != "" || q.Measures != "") {
		return errors.Invalid("Invalid parameter",
			"attributes and measures selection requires API version %s or later, targeting %s", V2_0_0, v)
	}
	return nil
}

// URL validates against v and renders the query. Full rendering shows
// every positional segment and every defaulted parameter; short
// rendering collapses trailing defaults right-to-left and omits
// parameters equal to their default.
func (q DataQuery) URL(v Version, omitDefaults bool) (string, error) {
	if err := q.Validate(v); err != nil {
		return "", err
	}
	if v >= V2_0_0 {
		return q.url2(v, omitDefaults), nil
	}
	return q.url1(v, omitDefaults), nil
}

func (q DataQuery) url2(v Version, omitDefaults bool) string {
	voc := vocabularyFor(v)
	key := q.Key
	if key == "" {
		key = voc.All
	}
	segs := []segment{
		{value: string(q.context())},
		listSegment(q.AgencyIDs, v),
		listSegment(q.ResourceIDs, v),
		listSegment(q.Versions, v),
		{value: key, isDefault: key == voc.All},
	}
	ps := params{
		{name: "attributes", value: orDefault(q.Attributes, "dsd"), isDefault: q.Attributes == "" || q.Attributes == "dsd"},
		{name: "measures", value: orDefault(q.Measures, "all"), isDefault: q.Measures == "" || q.Measures == "all"},
		{name: "includeHistory", value: fmt.Sprintf("%t", q.IncludeHistory), isDefault: !q.IncludeHistory},
	}
	ps = q.appendWindow(ps)
	return joinSegments("/data", segs, omitDefaults) + ps.render(omitDefaults)
}

func (q DataQuery) url1(v Version, omitDefaults bool) string {
	flow := []string{"all"}
	if len(q.AgencyIDs) == 1 || len(q.ResourceIDs) == 1 || len(q.Versions) == 1 {
		agency := firstOr(q.AgencyIDs, "all")
		resource := firstOr(q.ResourceIDs, "all")
		flow = []string{translate(agency, v), translate(resource, v)}
		if len(q.Versions) == 1 {
			flow = append(flow, translate(q.Versions[0], v))
		}
	}
	key := q.Key
	if key == "" {
		key = "all"
	}
	segs := []segment{
		{value: strings.Join(flow, ","), isDefault: len(flow) == 1 && flow[0] == "all"},
		{value: key, isDefault: key == "all"},
		{value: "all", isDefault: true}, // provider reference
	}
	ps := params{
		{name: "includeHistory", value: fmt.Sprintf("%t", q.IncludeHistory), isDefault: !q.IncludeHistory},
	}
	ps = q.appendWindow(ps)
	return joinSegments("/data", segs, omitDefaults) + ps.render(omitDefaults)
}

func (q DataQuery) appendWindow(ps params) params {
	if q.UpdatedAfter != nil {
		ps = append(ps, param{name: "updatedAfter", value: timeParam(q.UpdatedAfter)})
	}
	if q.FirstNObs != nil {
		ps = append(ps, param{name: "firstNObservations", value: fmt.Sprintf("%d", *q.FirstNObs)})
	}
	if q.LastNObs != nil {
		ps = append(ps, param{name: "lastNObservations", value: fmt.Sprintf("%d", *q.LastNObs)})
	}
	return ps
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func firstOr(values []string, def string) string {
	if len(values) == 0 {
		return def
	}
	return values[0]
}
