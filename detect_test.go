package sdmx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdmx "github.com/bis-med-it/gosdmx"
	"github.com/bis-med-it/gosdmx/errors"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    sdmx.Format
	}{
		{
			name:    "fusion json has no envelope",
			payload: `{"Codelist": [], "ConceptScheme": []}`,
			want:    sdmx.FusionJSON,
		},
		{
			name:    "sdmx-json 2.0 structure envelope",
			payload: `{"meta": {}, "data": {"codelists": []}}`,
			want:    sdmx.SDMXJSON20,
		},
		{
			name:    "sdmx-json 1.0 data message",
			payload: `{"meta": {}, "dataSets": [], "structure": {}}`,
			want:    sdmx.SDMXJSON10,
		},
		{
			name:    "sdmx-ml 2.1 structure",
			payload: `<?xml version="1.0"?><mes:Structure xmlns:mes="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/message"/>`,
			want:    sdmx.SDMXML21Structure,
		},
		{
			name:    "sdmx-ml 3.0 structure",
			payload: `<?xml version="1.0"?><mes:Structure xmlns:mes="http://www.sdmx.org/resources/sdmxml/schemas/v3_0/message"/>`,
			want:    sdmx.SDMXML30Structure,
		},
		{
			name:    "sdmx-ml 3.1 structure",
			payload: `<?xml version="1.0"?><mes:Structure xmlns:mes="http://www.sdmx.org/resources/sdmxml/schemas/v3_1/message"/>`,
			want:    sdmx.SDMXML31Structure,
		},
		{
			name:    "sdmx-ml 2.1 generic data",
			payload: `<?xml version="1.0"?><mes:GenericData xmlns:mes="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/message"/>`,
			want:    sdmx.SDMXML21Generic,
		},
		{
			name:    "structure-specific data beats the structure token",
			payload: `<?xml version="1.0"?><mes:StructureSpecificData xmlns:mes="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/message"/>`,
			want:    sdmx.SDMXML21StructureSpecific,
		},
		{
			name:    "registry interface",
			payload: `<?xml version="1.0"?><mes:RegistryInterface xmlns:mes="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/message"/>`,
			want:    sdmx.SDMXML21RegistryInterface,
		},
		{
			name:    "error message",
			payload: `<?xml version="1.0"?><mes:Error xmlns:mes="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/message"/>`,
			want:    sdmx.SDMXML21Error,
		},
		{
			name:    "csv v1 dataflow header",
			payload: "DATAFLOW,FREQ,TIME_PERIOD,OBS_VALUE\nTEST:DF(1.0),A,2020,1.5\n",
			want:    sdmx.SDMXCSV10,
		},
		{
			name:    "csv v2 structure header",
			payload: "STRUCTURE,STRUCTURE_ID,FREQ,TIME_PERIOD,OBS_VALUE\ndataflow,TEST:DF(1.0),A,2020,1.5\n",
			want:    sdmx.SDMXCSV20,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got, err := sdmx.Detect([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectStripsBOM(t *testing.T) {
	text, got, err := sdmx.Detect([]byte("\uFEFF{\"Codelist\": []}"))
	require.NoError(t, err)
	assert.Equal(t, sdmx.FusionJSON, got)
	assert.Equal(t, `{"Codelist": []}`, text)
}

func TestDetectRejectsUnknownPayloads(t *testing.T) {
	for _, payload := range []string{
		"just some text",
		`<unknown xmlns="http://example.com"/>`,
		"A,B\n1,2\n",
		`[1, 2, 3]`,
		`null`,
	} {
		_, _, err := sdmx.Detect([]byte(payload))
		require.Error(t, err, "payload %q", payload)
		assert.True(t, errors.IsInvalid(err))
	}
}

func TestFormatPredicates(t *testing.T) {
	assert.True(t, sdmx.SDMXML21Structure.IsStructure())
	assert.True(t, sdmx.FusionJSON.IsStructure())
	assert.False(t, sdmx.SDMXCSV10.IsStructure())
	assert.False(t, sdmx.SDMXML21Generic.IsStructure())

	assert.Equal(t, "sdmx-json-2.0", sdmx.SDMXJSON20.String())
	assert.Equal(t, "unknown", sdmx.Format(99).String())
}

func TestAcceptHeader(t *testing.T) {
	assert.Equal(t, "application/vnd.sdmx.structure+json;version=2.0.0", sdmx.AcceptHeader(sdmx.SDMXJSON20))
	assert.Equal(t, "", sdmx.AcceptHeader(sdmx.FormatInvalid))
}
