// Package assemble holds the component-assembly rules shared by every
// dialect decoder: constraint-derived code filtering, attribute
// attachment-level inference, and array-cardinality derivation.
package assemble

import (
	"strings"

	"github.com/bis-med-it/gosdmx/errors"
	"github.com/bis-med-it/gosdmx/model"
)

// ConstraintMap maps a component ID to the code IDs a content constraint
// allows for it. It is built once per data structure and threaded through
// dimension, measure, and attribute conversion so all three roles see the
// same reading of what is allowed. An empty map filters nothing.
type ConstraintMap map[string][]string

// Merge folds other into m, concatenating allowed-code lists per component.
func (m ConstraintMap) Merge(other ConstraintMap) {
	for id, codes := range other {
		m[id] = append(m[id], codes...)
	}
}

// Filter applies the constraint for componentID to cl. A missing entry
// keeps every declared code.
func (m ConstraintMap) Filter(cl *model.Codelist, componentID string) *model.Codelist {
	if cl == nil {
		return nil
	}
	allowed, ok := m[componentID]
	if !ok || len(allowed) == 0 {
		return cl
	}
	filtered := cl.Filter(allowed)
	return &filtered
}

// Attachment kinds as normalized from the dialects.
const (
	LevelObservation = "OBSERVATION"
	LevelDataset     = "DATA_SET"
	LevelGroup       = "GROUP"
)

// AttachmentLevel infers where an attribute attaches. kind is the
// dialect's normalized marker; groupID and dims are the attribute's own
// group/dimension references; groups maps a group ID to its declared
// dimension references.
//
// No inferable level is an Internal error: the metadata document is
// malformed upstream, the caller did not cause it.
func AttachmentLevel(attrID, kind, groupID string, dims []string, groups map[string][]string) (string, error) {
	switch kind {
	case LevelObservation:
		return model.AttachObservation, nil
	case LevelDataset:
		return model.AttachDataset, nil
	case LevelGroup:
		groupDims, ok := groups[groupID]
		if !ok {
			return "", errors.NotFound("Group not found",
				"attribute %q references group %q, which the data structure does not declare", attrID, groupID)
		}
		return strings.Join(groupDims, ","), nil
	}
	if len(dims) > 0 {
		return strings.Join(dims, ","), nil
	}
	return "", errors.Internal("No attachment level",
		"attribute %q declares no observation, dataset, group, or dimension attachment", attrID)
}

// ResolveEnumeration finds the codelist a representation references among
// the lists decoded from the same message. An empty URN means the
// representation is unenumerated. A miss is NotFound, carrying the URN and
// the candidates considered; concept decoding catches it and keeps the URN
// instead, component decoding propagates it.
func ResolveEnumeration(urn string, lists []model.Codelist) (*model.Codelist, error) {
	if urn == "" {
		return nil, nil
	}
	cl, err := model.FindByURN(urn, lists)
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

// Bounds derives array boundaries from declared occurrence counts; max
// nil means unbounded. A component is repeatable when max occurs is above
// one or unbounded; a max of one yields no boundaries. Callers only invoke
// Bounds when the dialect declared occurrences at all.
func Bounds(minOccurs int, maxOccurs *int) *model.ArrayBoundaries {
	if maxOccurs != nil && *maxOccurs == 1 {
		return nil
	}
	return &model.ArrayBoundaries{Min: minOccurs, Max: maxOccurs}
}
