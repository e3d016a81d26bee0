package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bis-med-it/gosdmx/errors"
	"github.com/bis-med-it/gosdmx/validate"
)

const codelistSchema = `{
  "type": "object",
  "properties": {
    "id": {"type": "string"},
    "version": {"type": "string", "pattern": "^[0-9]+\\.[0-9]+$"},
    "codes": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {"id": {"type": "string"}},
        "required": ["id"],
        "additionalProperties": false
      }
    }
  },
  "required": ["id"]
}`

func TestJSONValidatorAcceptsValidPayload(t *testing.T) {
	v, err := validate.NewJSONValidator([]byte(codelistSchema))
	require.NoError(t, err)

	err = v.Validate([]byte(`{"id": "CL_FREQ", "version": "1.0", "codes": [{"id": "A"}]}`))
	assert.NoError(t, err)
}

func TestJSONValidatorReportsMissingProperty(t *testing.T) {
	v, err := validate.NewJSONValidator([]byte(codelistSchema))
	require.NoError(t, err)

	err = v.Validate([]byte(`{"version": "1.0"}`))
	require.Error(t, err)

	iss, ok := errors.AsIssues(err)
	require.True(t, ok)
	require.NotEmpty(t, iss)
	assert.Equal(t, errors.CodeRequired, iss[0].Code)
	assert.Equal(t, "/", iss[0].Path)
}

func TestJSONValidatorPointsOneLevelUp(t *testing.T) {
	v, err := validate.NewJSONValidator([]byte(codelistSchema))
	require.NoError(t, err)

	err = v.Validate([]byte(`{"id": "CL_FREQ", "codes": [{"id": 7}]}`))
	require.Error(t, err)

	iss, ok := errors.AsIssues(err)
	require.True(t, ok)
	require.NotEmpty(t, iss)
	assert.Equal(t, errors.CodeInvalidType, iss[0].Code)
	// The pointer names the offending node's parent.
	assert.Equal(t, "/codes/0", iss[0].Path)
}

func TestJSONValidatorReportsPatternMismatch(t *testing.T) {
	v, err := validate.NewJSONValidator([]byte(codelistSchema))
	require.NoError(t, err)

	err = v.Validate([]byte(`{"id": "CL_FREQ", "version": "not-a-version"}`))
	require.Error(t, err)

	iss, ok := errors.AsIssues(err)
	require.True(t, ok)
	require.NotEmpty(t, iss)
	assert.Equal(t, errors.CodePattern, iss[0].Code)
}

func TestJSONValidatorRejectsUnparseablePayload(t *testing.T) {
	v, err := validate.NewJSONValidator([]byte(codelistSchema))
	require.NoError(t, err)

	err = v.Validate([]byte(`{not json`))
	require.Error(t, err)

	iss, ok := errors.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeParseError, iss[0].Code)
}

func TestJSONValidatorRejectsBrokenSchema(t *testing.T) {
	_, err := validate.NewJSONValidator([]byte(`{"type": 42}`))
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

const noteSchema = `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="note">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="to" type="xs:string"/>
        <xs:element name="body" type="xs:string"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`

func TestXMLValidator(t *testing.T) {
	v, err := validate.NewXMLValidator([]byte(noteSchema))
	require.NoError(t, err)

	err = v.Validate([]byte(`<note><to>BIS</to><body>hello</body></note>`))
	assert.NoError(t, err)

	err = v.Validate([]byte(`<note><body>hello</body></note>`))
	require.Error(t, err)
	iss, ok := errors.AsIssues(err)
	require.True(t, ok)
	assert.NotEmpty(t, iss)
}

func TestXMLValidatorRejectsBrokenSchema(t *testing.T) {
	_, err := validate.NewXMLValidator([]byte(`<xs:schema`))
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}
