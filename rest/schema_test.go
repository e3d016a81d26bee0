package rest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bis-med-it/gosdmx/errors"
)

func TestSchemaQueryRendering(t *testing.T) {
	q := SchemaQuery{Context: SchemaDataflowContext, AgencyID: "BIS", ID: "CBS"}

	url, err := q.URL(V2_0_0, false)
	require.NoError(t, err)
	assert.Equal(t, "/schema/dataflow/BIS/CBS/~", url)

	url, err = q.URL(V2_0_0, true)
	require.NoError(t, err)
	assert.Equal(t, "/schema/dataflow/BIS/CBS", url)

	url, err = q.URL(V1_5_0, false)
	require.NoError(t, err)
	assert.Equal(t, "/schema/dataflow/BIS/CBS/latest?explicit=false", url)
}

func TestSchemaQueryDimensionAtObservation(t *testing.T) {
	q := SchemaQuery{
		Context: SchemaDataStructureContext, AgencyID: "BIS", ID: "BIS_CBS",
		Version: "1.0", DimensionAtObservation: "TIME_PERIOD",
	}

	url, err := q.URL(V2_0_0, true)
	require.NoError(t, err)
	assert.Equal(t, "/schema/datastructure/BIS/BIS_CBS/1.0?dimensionAtObservation=TIME_PERIOD", url)
}

func TestSchemaQueryExplicitFlagRemovedIn20(t *testing.T) {
	q := SchemaQuery{Context: SchemaDataflowContext, AgencyID: "BIS", ID: "CBS", Explicit: true}

	url, err := q.URL(V1_5_0, false)
	require.NoError(t, err)
	assert.Equal(t, "/schema/dataflow/BIS/CBS/latest?explicit=true", url)

	_, err = q.URL(V2_0_0, false)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestSchemaQueryMetadataContextsGate(t *testing.T) {
	q := SchemaQuery{Context: SchemaMetadataProvisionAgreement, AgencyID: "BIS", ID: "MPA"}

	_, err := q.URL(V1_5_0, false)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))

	url, err := q.URL(V2_0_0, true)
	require.NoError(t, err)
	assert.Equal(t, "/schema/metadataprovisionagreement/BIS/MPA", url)
}

func TestSchemaQueryRequiresTarget(t *testing.T) {
	_, err := SchemaQuery{Context: SchemaDataflowContext}.URL(V2_0_0, false)
	assert.True(t, errors.IsInvalid(err))

	_, err = SchemaQuery{Context: "bogus", AgencyID: "BIS", ID: "X"}.URL(V2_0_0, false)
	assert.True(t, errors.IsInvalid(err))
}
