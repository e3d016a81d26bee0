package errors

import (
	"fmt"
	"strings"
)

// Issue codes produced by the schema-validation adapters.
const (
	CodeRequired    = "required"
	CodeUnexpected  = "unexpected"
	CodeInvalidType = "invalid_type"
	CodeInvalidEnum = "invalid_enum"
	CodePattern     = "pattern"
	CodeUnionMatch  = "union_mismatch"
	CodeParseError  = "parse_error"
)

// Issue is a single schema violation: a JSON-pointer (or XML element) path
// plus a short reason.
type Issue struct {
	Path    string // e.g. /data/codelists/0/codes
	Code    string
	Message string
}

// Issues is a collection of schema violations that implements error.
type Issues []Issue

// Error summarizes the first three issues; the rest are counted.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(iss)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Message, it.Path)
	}
	if n := len(iss) - lim; n > 0 {
		fmt.Fprintf(b, "; +%d more", n)
	}
	return b.String()
}

// Dedupe removes repeated (path, code) pairs, preserving first occurrence
// order.
func (iss Issues) Dedupe() Issues {
	if len(iss) < 2 {
		return iss
	}
	type key struct{ path, code string }
	seen := make(map[key]struct{}, len(iss))
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		k := key{it.Path, it.Code}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}

// AsIssues extracts Issues from an error.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if As(err, &iss) {
		return iss, true
	}
	return nil, false
}
