package sdmxjson

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bis-med-it/gosdmx/model"
)

const envelopeFixture = `{
  "meta": {"schema": "https://json.sdmx.org/2.0/sdmx-json-structure-schema.json"},
  "data": {
    "codelists": [
      {
        "id": "CL_DECIMALS", "agencyID": "TEST", "version": "1.0",
        "name": "Decimals",
        "codes": [
          {"id": "0", "name": "Zero"},
          {"id": "2", "name": "Two", "validFrom": 1149120000000},
          {"id": "OLD", "name": "Pre-epoch", "validTo": -86400000}
        ]
      }
    ],
    "conceptSchemes": [
      {
        "id": "CS_TEST", "agencyID": "TEST", "version": "1.0",
        "name": "Test concepts",
        "concepts": [
          {"id": "DECIMALS",
           "coreRepresentation": {"enumeration": "Codelist=TEST:CL_DECIMALS(1.0)"}},
          {"id": "OBS_VALUE",
           "coreRepresentation": {"format": {"dataType": "Double"}}},
          {"id": "OBS_CONF"},
          {"id": "TITLE"}
        ]
      }
    ],
    "dataStructures": [
      {
        "id": "DSD_TEST", "agencyID": "TEST", "version": "1.0",
        "name": "Test structure",
        "dataStructureComponents": {
          "dimensionList": {
            "dimensions": [
              {"id": "DECIMALS", "conceptIdentity": "Concept=TEST:CS_TEST(1.0).DECIMALS"}
            ],
            "timeDimensions": [
              {"id": "TIME_PERIOD", "conceptIdentity": "Concept=TEST:CS_TEST(1.0).TITLE",
               "localRepresentation": {"format": {"dataType": "ObservationalTimePeriod"}}}
            ]
          },
          "measureList": {
            "measures": [
              {"id": "OBS_VALUE", "conceptIdentity": "Concept=TEST:CS_TEST(1.0).OBS_VALUE",
               "usage": "mandatory"}
            ]
          },
          "attributeList": {
            "attributes": [
              {"id": "OBS_CONF", "conceptIdentity": "Concept=TEST:CS_TEST(1.0).OBS_CONF",
               "usage": "optional",
               "attributeRelationship": {"observation": {}}},
              {"id": "TITLE", "conceptIdentity": "Concept=TEST:CS_TEST(1.0).TITLE",
               "attributeRelationship": {"dimensions": ["DECIMALS", "TIME_PERIOD"]}}
            ]
          },
          "groups": []
        }
      }
    ],
    "dataflows": [
      {"id": "DF_TEST", "agencyID": "TEST", "version": "1.0",
       "structure": "DataStructure=TEST:DSD_TEST(1.0)"}
    ]
  }
}`

func TestDecodeStructures(t *testing.T) {
	msg, err := DecodeStructures(envelopeFixture)
	require.NoError(t, err)

	dsd := msg.DataStructure("DSD_TEST")
	require.NotNil(t, dsd)

	cs := dsd.Components
	require.Equal(t, 5, cs.Len())
	// Declared dimensions first, then time dimensions.
	assert.Equal(t, "DECIMALS", cs.At(0).ID)
	assert.Equal(t, "TIME_PERIOD", cs.At(1).ID)
	assert.Equal(t, model.ObsTimePeriod, cs.At(1).Dtype())

	obs := cs.Get("OBS_VALUE")
	require.NotNil(t, obs)
	assert.Equal(t, model.RoleMeasure, obs.Role)
	assert.True(t, obs.Required)
	assert.Equal(t, model.Double, obs.Dtype())

	conf := cs.Get("OBS_CONF")
	require.NotNil(t, conf)
	assert.Equal(t, model.AttachObservation, conf.AttachmentLevel)
	assert.False(t, conf.Required)

	title := cs.Get("TITLE")
	require.NotNil(t, title)
	assert.Equal(t, "DECIMALS,TIME_PERIOD", title.AttachmentLevel)
}

func TestEpochMillisValidity(t *testing.T) {
	msg, err := DecodeStructures(envelopeFixture)
	require.NoError(t, err)

	cl := msg.Codelist("CL_DECIMALS")
	require.NotNil(t, cl)

	two := cl.Get("2")
	require.NotNil(t, two)
	require.NotNil(t, two.ValidFrom)
	assert.Equal(t, time.Date(2006, 6, 1, 0, 0, 0, 0, time.UTC), two.ValidFrom.UTC())

	// Negative epochs are dates before 1970 and must survive exactly.
	old := cl.Get("OLD")
	require.NotNil(t, old)
	require.NotNil(t, old.ValidTo)
	assert.Equal(t, time.Date(1969, 12, 31, 0, 0, 0, 0, time.UTC), old.ValidTo.UTC())
}

func TestConceptCoreEnumerationResolves(t *testing.T) {
	msg, err := DecodeStructures(envelopeFixture)
	require.NoError(t, err)

	dec := msg.DataStructure("DSD_TEST").Components.Get("DECIMALS")
	require.NotNil(t, dec)
	enum := dec.Enumeration()
	require.NotNil(t, enum)
	assert.Equal(t, "CL_DECIMALS", enum.ID)
	assert.Len(t, enum.Codes, 3)
}

func TestDataflowConstraintAttachment(t *testing.T) {
	payload := `{
	  "data": {
	    "codelists": [
	      {"id": "CL_FREQ", "agencyID": "TEST", "version": "1.0",
	       "codes": [{"id": "A"}, {"id": "M"}]}
	    ],
	    "conceptSchemes": [
	      {"id": "CS", "agencyID": "TEST", "version": "1.0",
	       "concepts": [{"id": "FREQ",
	         "coreRepresentation": {"enumeration": "Codelist=TEST:CL_FREQ(1.0)"}}]}
	    ],
	    "dataStructures": [
	      {"id": "DSD", "agencyID": "TEST", "version": "1.0",
	       "dataStructureComponents": {
	         "dimensionList": {"dimensions": [
	           {"id": "FREQ", "conceptIdentity": "Concept=TEST:CS(1.0).FREQ"}]}}}
	    ],
	    "contentConstraints": [
	      {"id": "CC", "agencyID": "TEST", "version": "1.0",
	       "constraintAttachment": {"dataStructures": ["DataStructure=TEST:DSD(1.0)"]},
	       "cubeRegions": [{"include": true,
	         "components": [{"id": "FREQ", "values": ["M"]}]}]}
	    ]
	  }
	}`

	msg, err := DecodeStructures(payload)
	require.NoError(t, err)

	freq := msg.DataStructure("DSD").Components.Get("FREQ")
	require.NotNil(t, freq)
	enum := freq.Enumeration()
	require.NotNil(t, enum)
	require.Len(t, enum.Codes, 1)
	assert.Equal(t, "M", enum.Codes[0].ID)
}

func TestEpochMillisNil(t *testing.T) {
	assert.Nil(t, epochMillis(nil))
}
