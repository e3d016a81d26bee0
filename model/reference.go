package model

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bis-med-it/gosdmx/errors"
)

// Reference identifies an SDMX artefact, optionally down to one of its
// items, as parsed from a URN.
type Reference struct {
	Class   string
	Agency  string
	ID      string
	Version string
	ItemID  string
}

// IsItem reports whether the reference points at an item within a
// maintainable artefact rather than the artefact itself.
func (r Reference) IsItem() bool { return r.ItemID != "" }

func (r Reference) String() string {
	s := fmt.Sprintf("%s=%s:%s(%s)", r.Class, r.Agency, r.ID, r.Version)
	if r.ItemID != "" {
		s += "." + r.ItemID
	}
	return s
}

// The four recognized URN shapes, tried in order: full maintainable, full
// item, short maintainable (no urn: prefix), short item.
var (
	urnMaintainable = regexp.MustCompile(
		`^urn:sdmx:org\.sdmx\.infomodel\.[^.]+\.([^=]+)=([^:]+):([^(]+)\(([^)]+)\)$`)
	urnItem = regexp.MustCompile(
		`^urn:sdmx:org\.sdmx\.infomodel\.[^.]+\.([^=]+)=([^:]+):([^(]+)\(([^)]+)\)\.(.+)$`)
	shortMaintainable = regexp.MustCompile(
		`^([^=:.]+)=([^:]+):([^(]+)\(([^)]+)\)$`)
	shortItem = regexp.MustCompile(
		`^([^=:.]+)=([^:]+):([^(]+)\(([^)]+)\)\.(.+)$`)
)

// ParseReference parses a URN in any of the four recognized shapes. It
// fails with Invalid only after all four patterns are exhausted.
func ParseReference(urn string) (Reference, error) {
	urn = strings.TrimSpace(urn)
	for _, re := range []*regexp.Regexp{urnMaintainable, urnItem, shortMaintainable, shortItem} {
		m := re.FindStringSubmatch(urn)
		if m == nil {
			continue
		}
		r := Reference{Class: m[1], Agency: m[2], ID: m[3], Version: m[4]}
		if len(m) > 5 {
			r.ItemID = m[5]
		}
		return r, nil
	}
	return Reference{}, errors.Invalid("Invalid URN",
		"%q matches none of the recognized URN patterns", urn)
}

// Maintainable is any artefact addressable by an (agency, id, version)
// identity tuple.
type Maintainable interface {
	Identity() (agency, id, version string)
}

// FindByURN resolves urn against candidates, matching on the identity
// tuple. When several candidates share an identity the first one in
// iteration order wins; duplicate-keyed artefacts in one message are not
// treated as an error.
func FindByURN[T Maintainable](urn string, candidates []T) (T, error) {
	var zero T
	ref, err := ParseReference(urn)
	if err != nil {
		return zero, err
	}
	for _, c := range candidates {
		if matches(c, ref) {
			return c, nil
		}
	}
	return zero, errors.NotFound("Reference not found",
		"no artefact matches %q among candidates [%s]", urn, identities(candidates))
}

// FindConcept resolves an item URN for a concept against the supplied
// schemes: first the owning scheme, then the item within it.
func FindConcept(urn string, schemes []ConceptScheme) (*Concept, error) {
	ref, err := ParseReference(urn)
	if err != nil {
		return nil, err
	}
	scheme, err := FindByURN(urn, schemes)
	if err != nil {
		return nil, err
	}
	if ref.ItemID == "" {
		return nil, errors.Invalid("Invalid concept reference",
			"%q does not reference an item within a concept scheme", urn)
	}
	if c := scheme.Get(ref.ItemID); c != nil {
		return c, nil
	}
	return nil, errors.NotFound("Concept not found",
		"scheme %s:%s(%s) has no concept %q", scheme.Agency, scheme.ID, scheme.Version, ref.ItemID)
}

func matches[T Maintainable](c T, ref Reference) bool {
	agency, id, version := c.Identity()
	return agency == ref.Agency && id == ref.ID && version == ref.Version
}

func identities[T Maintainable](candidates []T) string {
	parts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		agency, id, version := c.Identity()
		parts = append(parts, fmt.Sprintf("%s:%s(%s)", agency, id, version))
	}
	return strings.Join(parts, ", ")
}
