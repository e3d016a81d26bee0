// Package i18n maps issue codes to human-readable reasons.
package i18n

// Translator retrieves a message for an issue code. data provides optional
// metadata to embed in the message (for example "property" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{}

func (dictTranslator) Message(code string, data map[string]string) string {
	switch code {
	case "required":
		if p := data["property"]; p != "" {
			return "missing property " + p
		}
		return "missing property"
	case "unexpected":
		if p := data["property"]; p != "" {
			return "unexpected property " + p
		}
		return "unexpected property"
	case "invalid_type":
		if e := data["expected"]; e != "" {
			return "wrong type, expected " + e
		}
		return "wrong type"
	case "invalid_enum":
		return "value not in enumeration"
	case "pattern":
		return "value does not match pattern"
	case "union_mismatch":
		return "value matches no schema alternative"
	case "parse_error":
		return "parse error"
	}
	return code
}

var currentTranslator Translator = dictTranslator{}

// SetTranslator replaces the Translator implementation; nil restores the
// built-in dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
