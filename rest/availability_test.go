package rest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bis-med-it/gosdmx/errors"
)

func TestAvailabilityQueryUnsupportedBefore130(t *testing.T) {
	q := AvailabilityQuery{AgencyIDs: []string{"BIS"}}

	_, err := q.URL(V1_2_0, false)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))

	_, err = q.URL(V1_3_0, false)
	require.NoError(t, err)
}

func TestAvailabilityQueryPre20Rendering(t *testing.T) {
	q := AvailabilityQuery{AgencyIDs: []string{"BIS"}, ResourceIDs: []string{"CBS"}, Key: "Q.DE", ComponentID: "FREQ"}

	url, err := q.URL(V1_5_0, false)
	require.NoError(t, err)
	assert.Equal(t, "/availableconstraint/BIS,CBS/Q.DE/all/FREQ?mode=exact&references=none", url)

	url, err = q.URL(V1_5_0, true)
	require.NoError(t, err)
	assert.Equal(t, "/availableconstraint/BIS,CBS/Q.DE/all/FREQ", url)
}

func TestAvailabilityQuery20Rendering(t *testing.T) {
	q := AvailabilityQuery{AgencyIDs: []string{"BIS"}, ResourceIDs: []string{"CBS"}, ComponentID: "FREQ"}

	url, err := q.URL(V2_0_0, false)
	require.NoError(t, err)
	assert.Equal(t, "/availability/dataflow/BIS/CBS/*/*/FREQ?mode=exact&references=none", url)

	url, err = q.URL(V2_0_0, true)
	require.NoError(t, err)
	assert.Equal(t, "/availability/dataflow/BIS/CBS/*/*/FREQ", url)
}

func TestAvailabilityQueryModeAndReferences(t *testing.T) {
	q := AvailabilityQuery{AgencyIDs: []string{"BIS"}, Mode: ModeAvailable, References: RefAll}

	url, err := q.URL(V2_0_0, true)
	require.NoError(t, err)
	assert.Equal(t, "/availability/dataflow/BIS?mode=available&references=all", url)
}

func TestAvailabilityQueryGates(t *testing.T) {
	// Multi-value lists arrive with 2.0.0.
	multi := AvailabilityQuery{AgencyIDs: []string{"BIS", "SDMX"}}
	_, err := multi.URL(V1_5_0, false)
	assert.True(t, errors.IsInvalid(err))
	_, err = multi.URL(V2_0_0, false)
	require.NoError(t, err)

	// Non-dataflow contexts arrive with 2.0.0 too.
	ctx := AvailabilityQuery{Context: DataStructureContext}
	_, err = ctx.URL(V1_5_0, false)
	assert.True(t, errors.IsInvalid(err))
	url, err := ctx.URL(V2_0_0, true)
	require.NoError(t, err)
	assert.Equal(t, "/availability/datastructure", url)
}
