// Package rest builds SDMX-REST query URLs. Each query kind is a value
// object that validates itself against a target API version and renders
// to a path+query string; the HTTP client prepends the registry endpoint
// and pairs the URL with an Accept header.
package rest

import "github.com/bis-med-it/gosdmx/errors"

// Version is one release of the SDMX-REST API specification. Values are
// ordered, so version gates are plain comparisons.
type Version int

const (
	V1_0_0 Version = iota + 1
	V1_0_1
	V1_0_2
	V1_1_0
	V1_2_0
	V1_3_0
	V1_4_0
	V1_5_0
	V2_0_0
	V2_1_0
	V2_2_0
)

var versionNames = map[Version]string{
	V1_0_0: "1.0.0",
	V1_0_1: "1.0.1",
	V1_0_2: "1.0.2",
	V1_1_0: "1.1.0",
	V1_2_0: "1.2.0",
	V1_3_0: "1.3.0",
	V1_4_0: "1.4.0",
	V1_5_0: "1.5.0",
	V2_0_0: "2.0.0",
	V2_1_0: "2.1.0",
	V2_2_0: "2.2.0",
}

func (v Version) String() string {
	if s, ok := versionNames[v]; ok {
		return s
	}
	return "unknown"
}

// ParseVersion maps a dotted version string to its Version.
func ParseVersion(s string) (Version, error) {
	for v, name := range versionNames {
		if name == s {
			return v, nil
		}
	}
	return 0, errors.Invalid("Invalid API version", "%q is not a supported SDMX-REST version", s)
}

// Query is the contract every query kind satisfies: validate against a
// target version, then render. URL performs both.
type Query interface {
	Validate(v Version) error
	URL(v Version, omitDefaults bool) (string, error)
}
