package rest

import (
	"strings"
	"time"

	"github.com/bis-med-it/gosdmx/errors"
)

// vocabulary is the wildcard token set one API generation understands.
type vocabulary struct {
	All    string // every artefact / agency / version
	Latest string // latest version
	Sep    string // multi-value separator
}

// vocabularyFor is the single lookup every renderer consults. Pre-2.0.0
// APIs speak all/latest with +-joined lists; 2.0.0 and later speak */~
// with comma-joined lists.
func vocabularyFor(v Version) vocabulary {
	if v < V2_0_0 {
		return vocabulary{All: "all", Latest: "latest", Sep: "+"}
	}
	return vocabulary{All: "*", Latest: "~", Sep: ","}
}

// translate rewrites caller-supplied 2.0-style wildcard tokens into the
// textual keywords pre-2.0.0 APIs expect; 2.0.0+ leaves tokens as-is.
func translate(token string, v Version) string {
	if v >= V2_0_0 {
		return token
	}
	switch token {
	case "*":
		return "all"
	case "~":
		return "latest"
	}
	return token
}

// segment is one positional URL element plus whether it equals its
// default for the targeted version.
type segment struct {
	value     string
	isDefault bool
}

// joinSegments renders positional segments after a base path. Short
// rendering collapses right-to-left: a default segment is omitted only
// when every segment after it is also default; full rendering always
// shows every segment.
func joinSegments(base string, segs []segment, omitDefaults bool) string {
	n := len(segs)
	if omitDefaults {
		for n > 0 && segs[n-1].isDefault {
			n--
		}
	}
	b := &strings.Builder{}
	b.WriteString(base)
	for i := 0; i < n; i++ {
		b.WriteString("/")
		b.WriteString(segs[i].value)
	}
	return b.String()
}

// listSegment renders a multi-value positional parameter with the
// version's separator, translating wildcard tokens. An empty list is the
// version's all-wildcard and counts as default.
func listSegment(values []string, v Version) segment {
	voc := vocabularyFor(v)
	if len(values) == 0 {
		return segment{value: voc.All, isDefault: true}
	}
	parts := make([]string, len(values))
	for i, val := range values {
		parts[i] = translate(val, v)
	}
	joined := strings.Join(parts, voc.Sep)
	return segment{value: joined, isDefault: joined == voc.All}
}

// versionSegment renders a version list, defaulting to the version's
// latest-wildcard.
func versionSegment(values []string, v Version) segment {
	voc := vocabularyFor(v)
	if len(values) == 0 {
		return segment{value: voc.Latest, isDefault: true}
	}
	seg := listSegment(values, v)
	seg.isDefault = seg.value == voc.Latest
	return seg
}

// checkMulti fails when a multi-value list targets a version that does
// not yet support one.
func checkMulti(field string, values []string, v, threshold Version) error {
	if len(values) > 1 && v < threshold {
		return errors.Invalid("Invalid parameter",
			"multiple %s values require API version %s or later, got %d values targeting %s",
			field, threshold, len(values), v)
	}
	return nil
}

// invalidBefore fails a feature that the targeted version predates.
func invalidBefore(what string, v, threshold Version) error {
	return errors.Invalid("Invalid parameter",
		"%s require API version %s or later, targeting %s", what, threshold, v)
}

func invalidField(field, value string) error {
	return errors.Invalid("Invalid parameter", "%q is not a valid %s", value, field)
}

// param is one query-string entry plus whether it equals its documented
// default.
type param struct {
	name      string
	value     string
	isDefault bool
}

// params renders accumulated query-string entries. Short rendering drops
// entries equal to their default; entries without a documented default
// are only added when set, so they always render.
type params []param

func (ps params) render(omitDefaults bool) string {
	b := &strings.Builder{}
	for _, p := range ps {
		if omitDefaults && p.isDefault {
			continue
		}
		if b.Len() == 0 {
			b.WriteString("?")
		} else {
			b.WriteString("&")
		}
		b.WriteString(p.name)
		b.WriteString("=")
		b.WriteString(p.value)
	}
	return b.String()
}

func timeParam(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
