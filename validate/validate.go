// Package validate adapts external schema validators to the decode
// pipeline. Validation is a pre-check: it runs on the raw payload before
// semantic decoding and reports violations as pointer+reason pairs, never
// performing any decoding itself.
package validate

import (
	"bytes"
	"context"
	"strings"

	json "github.com/goccy/go-json"
	xsd "github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/xsderrors"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/bis-med-it/gosdmx/errors"
	"github.com/bis-med-it/gosdmx/i18n"
)

// JSONValidator validates SDMX-JSON payloads against a JSON Schema
// document. Safe for concurrent use once built.
type JSONValidator struct {
	schema *jsonschema.Schema
}

// NewJSONValidator compiles the given schema document.
func NewJSONValidator(schemaDoc []byte) (*JSONValidator, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", bytes.NewReader(schemaDoc)); err != nil {
		return nil, errors.Invalid("Invalid JSON schema", "%v", err)
	}
	schema, err := c.Compile("schema.json")
	if err != nil {
		return nil, errors.Invalid("Invalid JSON schema", "%v", err)
	}
	return &JSONValidator{schema: schema}, nil
}

// Validate returns nil for a valid payload, or Issues listing each
// violation's pointer and reason, deduplicated.
func (v *JSONValidator) Validate(payload []byte) error {
	var instance any
	if err := json.Unmarshal(payload, &instance); err != nil {
		return errors.Issues{{Path: "/", Code: errors.CodeParseError, Message: i18n.T(errors.CodeParseError, nil)}}
	}
	err := v.schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return errors.Issues{{Path: "/", Code: errors.CodeParseError, Message: err.Error()}}
	}
	var iss errors.Issues
	collectLeaves(ve, &iss)
	if iss = iss.Dedupe(); len(iss) == 0 {
		return nil
	}
	return iss
}

// collectLeaves walks the cause tree; only leaves carry the concrete
// violation.
func collectLeaves(ve *jsonschema.ValidationError, iss *errors.Issues) {
	if len(ve.Causes) == 0 {
		*iss = append(*iss, toIssue(ve))
		return
	}
	for _, c := range ve.Causes {
		collectLeaves(c, iss)
	}
}

// toIssue maps a schema violation to a pointer+reason pair. The pointer
// names the offending node's parent, one level up in the document.
func toIssue(ve *jsonschema.ValidationError) errors.Issue {
	code, data := classify(ve.Message)
	return errors.Issue{
		Path:    parentPointer(ve.InstanceLocation),
		Code:    code,
		Message: i18n.T(code, data),
	}
}

func classify(message string) (string, map[string]string) {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "missing propert"):
		return errors.CodeRequired, map[string]string{"property": quoted(message)}
	case strings.Contains(m, "additionalproperties") || strings.Contains(m, "not allowed"):
		return errors.CodeUnexpected, map[string]string{"property": quoted(message)}
	case strings.Contains(m, "expected"):
		return errors.CodeInvalidType, nil
	case strings.Contains(m, "enum"):
		return errors.CodeInvalidEnum, nil
	case strings.Contains(m, "pattern"):
		return errors.CodePattern, nil
	case strings.Contains(m, "anyof") || strings.Contains(m, "oneof"):
		return errors.CodeUnionMatch, nil
	}
	return errors.CodeParseError, nil
}

// quoted extracts the first single-quoted token from a validator message.
func quoted(message string) string {
	i := strings.Index(message, "'")
	if i < 0 {
		return ""
	}
	j := strings.Index(message[i+1:], "'")
	if j < 0 {
		return ""
	}
	return message[i+1 : i+1+j]
}

func parentPointer(ptr string) string {
	if ptr == "" {
		return "/"
	}
	i := strings.LastIndex(ptr, "/")
	if i <= 0 {
		return "/"
	}
	return ptr[:i]
}

// XMLValidator validates SDMX-ML payloads against a compiled XSD. Safe
// for concurrent use once built.
type XMLValidator struct {
	engine *xsd.Engine
}

// NewXMLValidator compiles the given schema document.
func NewXMLValidator(schemaDoc []byte) (*XMLValidator, error) {
	engine, err := xsd.Compile(context.Background(), xsd.Bytes("schema.xsd", schemaDoc))
	if err != nil {
		return nil, errors.Invalid("Invalid XML schema", "%v", err)
	}
	return &XMLValidator{engine: engine}, nil
}

// Validate returns nil for a valid payload, or Issues listing each
// violation's element path and reason.
func (v *XMLValidator) Validate(payload []byte) error {
	err := v.engine.Validate(context.Background(), bytes.NewReader(payload))
	if err == nil {
		return nil
	}
	var list xsderrors.Errors
	if !errors.As(err, &list) {
		return errors.Issues{{Path: "/", Code: errors.CodeParseError, Message: err.Error()}}
	}
	iss := make(errors.Issues, 0, len(list))
	for _, e := range list {
		item, ok := e.(*xsderrors.Error)
		if !ok {
			iss = append(iss, errors.Issue{Path: "/", Code: errors.CodeParseError, Message: e.Error()})
			continue
		}
		path := item.Path
		if path == "" {
			path = "/"
		}
		iss = append(iss, errors.Issue{Path: path, Code: string(item.Code), Message: item.Message})
	}
	return iss.Dedupe()
}
