package sdmx

// Format tags a payload with its wire format and SDMX version, as
// produced by Detect and consumed by the decoder table.
type Format int

const (
	// FormatInvalid means the payload matched no known signature.
	FormatInvalid Format = iota

	FusionJSON
	SDMXJSON10
	SDMXJSON20

	SDMXML21Generic
	SDMXML21StructureSpecific
	SDMXML21Structure
	SDMXML21RegistryInterface
	SDMXML21Error
	SDMXML30Structure
	SDMXML31Structure

	SDMXCSV10
	SDMXCSV20
)

var formatNames = map[Format]string{
	FormatInvalid:             "invalid",
	FusionJSON:                "fusion-json",
	SDMXJSON10:                "sdmx-json-1.0",
	SDMXJSON20:                "sdmx-json-2.0",
	SDMXML21Generic:           "sdmx-ml-2.1-generic",
	SDMXML21StructureSpecific: "sdmx-ml-2.1-structurespecific",
	SDMXML21Structure:         "sdmx-ml-2.1-structure",
	SDMXML21RegistryInterface: "sdmx-ml-2.1-registryinterface",
	SDMXML21Error:             "sdmx-ml-2.1-error",
	SDMXML30Structure:         "sdmx-ml-3.0-structure",
	SDMXML31Structure:         "sdmx-ml-3.1-structure",
	SDMXCSV10:                 "sdmx-csv-1.0",
	SDMXCSV20:                 "sdmx-csv-2.0",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "unknown"
}

// IsStructure reports whether the format carries structural metadata that
// DecodeStructures can handle, as opposed to observation data.
func (f Format) IsStructure() bool {
	switch f {
	case FusionJSON, SDMXJSON20, SDMXML21Structure, SDMXML30Structure, SDMXML31Structure:
		return true
	}
	return false
}
