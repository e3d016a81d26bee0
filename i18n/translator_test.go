package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bis-med-it/gosdmx/i18n"
)

func TestBuiltinMessages(t *testing.T) {
	assert.Equal(t, "missing property 'id'", i18n.T("required", map[string]string{"property": "'id'"}))
	assert.Equal(t, "missing property", i18n.T("required", nil))
	assert.Equal(t, "value not in enumeration", i18n.T("invalid_enum", nil))
	// Unknown codes fall through verbatim.
	assert.Equal(t, "whatever", i18n.T("whatever", nil))
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, _ map[string]string) string { return "CODE:" + code }

func TestSetTranslator(t *testing.T) {
	i18n.SetTranslator(upperTranslator{})
	defer i18n.SetTranslator(nil)

	assert.Equal(t, "CODE:required", i18n.T("required", nil))

	i18n.SetTranslator(nil)
	assert.Equal(t, "missing property", i18n.T("required", nil))
}
