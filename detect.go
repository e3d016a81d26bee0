package sdmx

import (
	"strings"

	json "github.com/goccy/go-json"

	"github.com/bis-med-it/gosdmx/errors"
)

// Detect classifies a raw payload into one of the supported (format,
// version) tags and returns the BOM-stripped text alongside it. It is a
// pure classification: no side effects, no partial decoding beyond what
// sniffing requires.
//
// Classification order: JSON-parseable payloads are disambiguated by
// their top-level keys (Fusion-JSON lacks the meta/data envelope); XML
// payloads by the namespace tokens in their first ~1000 characters; the
// rest by the SDMX-CSV header columns.
func Detect(payload []byte) (string, Format, error) {
	text := strings.TrimPrefix(string(payload), "\uFEFF")

	if json.Valid([]byte(text)) {
		f, err := detectJSON(text)
		return text, f, err
	}
	if strings.HasPrefix(strings.TrimSpace(text), "<?xml") || strings.HasPrefix(strings.TrimSpace(text), "<") {
		f, err := detectXML(text)
		return text, f, err
	}
	if f, err := detectCSV(text); err == nil {
		return text, f, nil
	}
	return text, FormatInvalid, errors.Invalid("Unknown payload format",
		"payload is neither JSON, SDMX-ML, nor SDMX-CSV")
}

func detectJSON(text string) (Format, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &top); err != nil {
		// Valid JSON that is not an object cannot be an SDMX message.
		return FormatInvalid, errors.Invalid("Unknown payload format",
			"JSON payload is not an SDMX message object")
	}
	if top == nil {
		// A bare null unmarshals into a nil map without error.
		return FormatInvalid, errors.Invalid("Unknown payload format",
			"JSON payload is not an SDMX message object")
	}
	_, hasMeta := top["meta"]
	_, hasData := top["data"]
	if hasMeta || hasData {
		if _, hasDataSets := top["dataSets"]; hasDataSets {
			return SDMXJSON10, nil
		}
		if _, hasStructure := top["structure"]; hasStructure {
			return SDMXJSON10, nil
		}
		return SDMXJSON20, nil
	}
	// Fusion-JSON message classes carry their artefacts at the top level
	// without an envelope.
	return FusionJSON, nil
}

// xml namespace tokens, checked in order against the lowercased head of
// the document. StructureSpecificData must precede Structure: the former
// contains the latter as a prefix.
func detectXML(text string) (Format, error) {
	head := strings.ToLower(text)
	if len(head) > 1000 {
		head = head[:1000]
	}
	switch {
	case strings.Contains(head, ":generic"):
		return SDMXML21Generic, nil
	case strings.Contains(head, ":structurespecificdata"):
		return SDMXML21StructureSpecific, nil
	case strings.Contains(head, ":registryinterface"):
		return SDMXML21RegistryInterface, nil
	case strings.Contains(head, ":error"):
		return SDMXML21Error, nil
	case strings.Contains(head, ":structure"):
		switch {
		case strings.Contains(head, "/v3_1") || strings.Contains(head, "/3.1"):
			return SDMXML31Structure, nil
		case strings.Contains(head, "/v3_0") || strings.Contains(head, "/3.0"):
			return SDMXML30Structure, nil
		default:
			return SDMXML21Structure, nil
		}
	}
	return FormatInvalid, errors.Invalid("Unknown payload format",
		"XML payload matches no known SDMX-ML namespace")
}

func detectCSV(text string) (Format, error) {
	lines := strings.Split(strings.TrimRight(text, "\r\n"), "\n")
	if len(lines) < 2 && strings.Count(lines[0], ",") < 2 {
		return FormatInvalid, errors.Invalid("Unknown payload format",
			"payload is too short to be SDMX-CSV")
	}
	header := strings.Split(strings.TrimRight(lines[0], "\r"), ",")
	var hasDataflow, hasStructure, hasStructureID bool
	for _, col := range header {
		switch strings.TrimSpace(col) {
		case "DATAFLOW":
			hasDataflow = true
		case "STRUCTURE":
			hasStructure = true
		case "STRUCTURE_ID":
			hasStructureID = true
		}
	}
	if hasStructure && hasStructureID {
		return SDMXCSV20, nil
	}
	if hasDataflow {
		return SDMXCSV10, nil
	}
	return FormatInvalid, errors.Invalid("Unknown payload format",
		"CSV header matches neither the v1 DATAFLOW nor the v2 STRUCTURE/STRUCTURE_ID signature")
}
