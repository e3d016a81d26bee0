package sdmx

// SDMX media types, one per (artefact kind, format, version). A client
// pairs the URL built by the rest package with the Accept header matching
// the response format it wants.
const (
	MediaTypeFusionJSON          = "application/vnd.fusion.json"
	MediaTypeStructureJSON10     = "application/vnd.sdmx.structure+json;version=1.0.0"
	MediaTypeStructureJSON20     = "application/vnd.sdmx.structure+json;version=2.0.0"
	MediaTypeStructureXML21      = "application/vnd.sdmx.structure+xml;version=2.1"
	MediaTypeStructureXML30      = "application/vnd.sdmx.structure+xml;version=3.0.0"
	MediaTypeStructureXML31      = "application/vnd.sdmx.structure+xml;version=3.1.0"
	MediaTypeGenericDataXML21    = "application/vnd.sdmx.genericdata+xml;version=2.1"
	MediaTypeStructSpecDataXML21 = "application/vnd.sdmx.structurespecificdata+xml;version=2.1"
	MediaTypeDataCSV10           = "application/vnd.sdmx.data+csv;version=1.0.0"
	MediaTypeDataCSV20           = "application/vnd.sdmx.data+csv;version=2.0.0"
	MediaTypeDataJSON10          = "application/vnd.sdmx.data+json;version=1.0.0"
	MediaTypeDataJSON20          = "application/vnd.sdmx.data+json;version=2.0.0"
	MediaTypeRegistryXML21       = "application/vnd.sdmx.registry+xml;version=2.1"
)

var acceptHeaders = map[Format]string{
	FusionJSON:                MediaTypeFusionJSON,
	SDMXJSON10:                MediaTypeDataJSON10,
	SDMXJSON20:                MediaTypeStructureJSON20,
	SDMXML21Generic:           MediaTypeGenericDataXML21,
	SDMXML21StructureSpecific: MediaTypeStructSpecDataXML21,
	SDMXML21Structure:         MediaTypeStructureXML21,
	SDMXML21RegistryInterface: MediaTypeRegistryXML21,
	SDMXML30Structure:         MediaTypeStructureXML30,
	SDMXML31Structure:         MediaTypeStructureXML31,
	SDMXCSV10:                 MediaTypeDataCSV10,
	SDMXCSV20:                 MediaTypeDataCSV20,
}

// AcceptHeader returns the Accept media type requesting the given format
// from an SDMX-REST endpoint; empty for FormatInvalid.
func AcceptHeader(f Format) string {
	return acceptHeaders[f]
}
