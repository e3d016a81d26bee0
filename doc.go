// Package sdmx decodes SDMX structural metadata and builds SDMX-REST
// query URLs.
//
// - Multi-format decoding: Fusion-JSON, SDMX-JSON 2.0, and SDMX-ML
//   2.1/3.0/3.1 structure messages all converge on one canonical model
//   (model.StructureMessage and its Components collections).
// - Format detection: Detect classifies a raw payload into a (format,
//   version) tag by sniffing content; DecodeStructures dispatches on it.
// - Query building: the rest package renders version-correct URLs for
//   data, structure, schema, availability, reference-metadata, and
//   registration queries.
//
// Design policy:
// - Keep only public APIs in the root package; put the dialect decoders
//   under internal/.
// - The core performs no I/O: payloads arrive as bytes, URLs leave as
//   strings, and an HTTP client supplies the transport around both.
// - Decoding is all-or-nothing: one broken cross-reference fails the
//   whole message rather than producing a partial model.
//
// Typical usage:
//
//	msg, err := sdmx.DecodeStructures(payload)
//	dsd := msg.DataStructure("BIS_MACRO")
//	for _, d := range dsd.Components.Dimensions() { ... }
//
//	q := rest.DataQuery{Context: rest.DataflowContext, AgencyIDs: []string{"BIS"}}
//	url, err := q.URL(rest.V2_0_0, false)
package sdmx
