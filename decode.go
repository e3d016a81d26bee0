package sdmx

import (
	"strings"

	"github.com/bis-med-it/gosdmx/errors"
	"github.com/bis-med-it/gosdmx/internal/fusion"
	"github.com/bis-med-it/gosdmx/internal/sdmxjson"
	"github.com/bis-med-it/gosdmx/internal/sdmxml"
	"github.com/bis-med-it/gosdmx/model"
)

// Validator is the schema-validation collaborator run before semantic
// decoding when configured. Implementations return nil for a valid
// payload or an error carrying pointer+reason pairs (see the validate
// package).
type Validator interface {
	Validate(payload []byte) error
}

// DecodeOpt bundles decoding options. The zero value auto-detects the
// format and skips schema validation.
type DecodeOpt struct {
	// Format skips auto-detection when set.
	Format Format
	// Validator, when set, is run as a pre-check on the raw payload;
	// validation failures abort the decode.
	Validator Validator
}

// structureDecoder decodes one dialect's normalized text into the
// canonical model.
type structureDecoder func(text string) (*model.StructureMessage, error)

// structureDecoders is the explicit format-to-decoder table consulted by
// DecodeStructures. It is built per call: no import-time registration,
// no mutable package state.
func structureDecoders() map[Format]structureDecoder {
	return map[Format]structureDecoder{
		FusionJSON:        fusion.DecodeStructures,
		SDMXJSON20:        sdmxjson.DecodeStructures,
		SDMXML21Structure: sdmxml.DecodeStructures,
		SDMXML30Structure: sdmxml.DecodeStructures,
		SDMXML31Structure: sdmxml.DecodeStructures,
	}
}

// DecodeStructures decodes a structural metadata payload, in any
// supported dialect, into the canonical model. The format is
// auto-detected unless supplied; when a Validator is configured it runs
// first and its failure aborts the decode.
func DecodeStructures(payload []byte, opts ...DecodeOpt) (*model.StructureMessage, error) {
	var opt DecodeOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}

	text := strings.TrimPrefix(string(payload), "\uFEFF")
	format := opt.Format
	if format == FormatInvalid {
		var err error
		text, format, err = Detect(payload)
		if err != nil {
			return nil, err
		}
	}

	if opt.Validator != nil {
		if err := opt.Validator.Validate([]byte(text)); err != nil {
			return nil, err
		}
	}

	decode, ok := structureDecoders()[format]
	if !ok {
		return nil, errors.Invalid("Unsupported format",
			"%s is not a structural metadata format", format)
	}
	return decode(text)
}
