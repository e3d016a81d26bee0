package rest

import (
	"time"

	"github.com/bis-med-it/gosdmx/errors"
)

// Registration queries address data registrations in a registry.
// Registration endpoints exist from API version 2.1.0 only.

// RegistrationByIDQuery fetches one registration by its registry ID.
type RegistrationByIDQuery struct {
	ID string
}

// Validate checks the query against the targeted API version.
func (q RegistrationByIDQuery) Validate(v Version) error {
	if v < V2_1_0 {
		return invalidBefore("registration queries", v, V2_1_0)
	}
	if q.ID == "" {
		return errors.Invalid("Invalid registration query", "a registration ID is required")
	}
	return nil
}

// URL validates against v and renders the query.
func (q RegistrationByIDQuery) URL(v Version, omitDefaults bool) (string, error) {
	if err := q.Validate(v); err != nil {
		return "", err
	}
	return "/registration/id/" + q.ID, nil
}

// RegistrationByProviderQuery lists registrations made by a data
// provider.
type RegistrationByProviderQuery struct {
	AgencyID      string
	ProviderID    string
	UpdatedAfter  *time.Time
	UpdatedBefore *time.Time
}

// Validate checks the query against the targeted API version.
func (q RegistrationByProviderQuery) Validate(v Version) error {
	if v < V2_1_0 {
		return invalidBefore("registration queries", v, V2_1_0)
	}
	return checkWindow(q.UpdatedAfter, q.UpdatedBefore)
}

// URL validates against v and renders the query.
func (q RegistrationByProviderQuery) URL(v Version, omitDefaults bool) (string, error) {
	if err := q.Validate(v); err != nil {
		return "", err
	}
	voc := vocabularyFor(v)
	segs := []segment{
		scalarSegment(q.AgencyID, voc.All, v),
		scalarSegment(q.ProviderID, voc.All, v),
	}
	ps := windowParams(q.UpdatedAfter, q.UpdatedBefore)
	return joinSegments("/registration/provider", segs, omitDefaults) + ps.render(omitDefaults), nil
}

// RegistrationByContextQuery lists registrations for the data matching a
// context reference.
type RegistrationByContextQuery struct {
	Context       DataContext
	AgencyID      string
	ResourceID    string
	Version       string
	UpdatedAfter  *time.Time
	UpdatedBefore *time.Time
}

func (q RegistrationByContextQuery) context() DataContext {
	if q.Context == "" {
		return DataflowContext
	}
	return q.Context
}

// Validate checks the query against the targeted API version.
func (q RegistrationByContextQuery) Validate(v Version) error {
	if v < V2_1_0 {
		return invalidBefore("registration queries", v, V2_1_0)
	}
	switch q.context() {
	case DataflowContext, DataStructureContext, ProvisionAgreementContext:
	default:
		return invalidField("registration context", string(q.Context))
	}
	return checkWindow(q.UpdatedAfter, q.UpdatedBefore)
}

// URL validates against v and renders the query.
func (q RegistrationByContextQuery) URL(v Version, omitDefaults bool) (string, error) {
	if err := q.Validate(v); err != nil {
		return "", err
	}
	voc := vocabularyFor(v)
	segs := []segment{
		{value: string(q.context())},
		scalarSegment(q.AgencyID, voc.All, v),
		scalarSegment(q.ResourceID, voc.All, v),
		scalarSegment(q.Version, voc.Latest, v),
	}
	ps := windowParams(q.UpdatedAfter, q.UpdatedBefore)
	return joinSegments("/registration", segs, omitDefaults) + ps.render(omitDefaults), nil
}

// checkWindow rejects an inverted update window regardless of version.
func checkWindow(after, before *time.Time) error {
	if after != nil && before != nil && before.Before(*after) {
		return errors.Invalid("Invalid time range",
			"updatedBefore (%s) precedes updatedAfter (%s)",
			before.UTC().Format(time.RFC3339), after.UTC().Format(time.RFC3339))
	}
	return nil
}

func windowParams(after, before *time.Time) params {
	ps := params{}
	if after != nil {
		ps = append(ps, param{name: "updatedAfter", value: timeParam(after)})
	}
	if before != nil {
		ps = append(ps, param{name: "updatedBefore", value: timeParam(before)})
	}
	return ps
}

// scalarSegment renders one positional value, defaulting to def.
func scalarSegment(value, def string, v Version) segment {
	if value == "" {
		return segment{value: def, isDefault: true}
	}
	t := translate(value, v)
	return segment{value: t, isDefault: t == def}
}
