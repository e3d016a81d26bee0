package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bis-med-it/gosdmx/errors"
	"github.com/bis-med-it/gosdmx/model"
)

func TestConstraintMapMerge(t *testing.T) {
	m := ConstraintMap{"FREQ": {"A"}}
	m.Merge(ConstraintMap{"FREQ": {"M"}, "REF_AREA": {"DE"}})

	assert.Equal(t, []string{"A", "M"}, m["FREQ"])
	assert.Equal(t, []string{"DE"}, m["REF_AREA"])
}

func TestConstraintMapFilter(t *testing.T) {
	cl := &model.Codelist{ID: "CL_FREQ", Codes: []model.Code{{ID: "A"}, {ID: "M"}, {ID: "Q"}}}

	m := ConstraintMap{"FREQ": {"A", "Q"}}
	filtered := m.Filter(cl, "FREQ")
	require.Len(t, filtered.Codes, 2)

	// A missing entry returns the codelist untouched, same pointer.
	assert.Same(t, cl, m.Filter(cl, "REF_AREA"))
	assert.Nil(t, m.Filter(nil, "FREQ"))
}

func TestAttachmentLevel(t *testing.T) {
	groups := map[string][]string{"SIBLING": {"A", "B"}}

	tests := []struct {
		name    string
		kind    string
		groupID string
		dims    []string
		want    string
	}{
		{name: "observation", kind: LevelObservation, want: "O"},
		{name: "dataset", kind: LevelDataset, want: "D"},
		{name: "group resolves declared dimensions", kind: LevelGroup, groupID: "SIBLING", want: "A,B"},
		{name: "direct dimension references", dims: []string{"FREQ", "REF_AREA"}, want: "FREQ,REF_AREA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AttachmentLevel("ATTR", tt.kind, tt.groupID, tt.dims, groups)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttachmentLevelFailures(t *testing.T) {
	// An undeclared group is a broken reference.
	_, err := AttachmentLevel("ATTR", LevelGroup, "NOPE", nil, map[string][]string{})
	assert.True(t, errors.IsNotFound(err))

	// Nothing to infer from means the upstream metadata is malformed.
	_, err = AttachmentLevel("ATTR", "", "", nil, nil)
	assert.True(t, errors.IsInternal(err))
}

func TestResolveEnumeration(t *testing.T) {
	lists := []model.Codelist{{Agency: "SDMX", ID: "CL_FREQ", Version: "2.0"}}

	cl, err := ResolveEnumeration("Codelist=SDMX:CL_FREQ(2.0)", lists)
	require.NoError(t, err)
	assert.Equal(t, "CL_FREQ", cl.ID)

	cl, err = ResolveEnumeration("", lists)
	require.NoError(t, err)
	assert.Nil(t, cl)

	_, err = ResolveEnumeration("Codelist=SDMX:CL_NOPE(1.0)", lists)
	assert.True(t, errors.IsNotFound(err))
}

func TestBounds(t *testing.T) {
	one := 1
	four := 4

	assert.Nil(t, Bounds(0, &one))

	b := Bounds(1, &four)
	require.NotNil(t, b)
	assert.Equal(t, 1, b.Min)
	assert.Equal(t, 4, *b.Max)

	unbounded := Bounds(0, nil)
	require.NotNil(t, unbounded)
	assert.Nil(t, unbounded.Max)
}
