// Package errors defines the error model shared by every gosdmx package.
//
// Failures fall into two families. Kind-coded errors (Invalid, NotFound,
// Internal) describe a single problem with a short title and a longer
// description naming the offending value. Issues describe payload-level
// schema violations as a list of pointer+reason pairs.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error by who can fix it.
type Kind int

const (
	// KindInvalid marks client-input errors: malformed parameter
	// combinations, unparseable payloads, unrecognized URNs.
	KindInvalid Kind = iota + 1
	// KindNotFound marks a reference that matched no candidate artefact
	// supplied in the same message.
	KindNotFound
	// KindInternal marks structurally well-formed but semantically
	// inconsistent upstream metadata. The caller did not cause it.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not found"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error carries a short title plus a longer description naming the
// offending value, field, or version so the caller can correct the input
// without inspecting internal state.
type Error struct {
	Kind        Kind
	Title       string
	Description string
}

func (e *Error) Error() string {
	if e.Description == "" {
		return e.Title
	}
	return e.Title + ": " + e.Description
}

// Invalid builds a client-input error.
func Invalid(title, format string, args ...any) *Error {
	return &Error{Kind: KindInvalid, Title: title, Description: fmt.Sprintf(format, args...)}
}

// NotFound builds a missing-reference error.
func NotFound(title, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Title: title, Description: fmt.Sprintf(format, args...)}
}

// Internal builds an inconsistent-metadata error.
func Internal(title, format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Title: title, Description: fmt.Sprintf(format, args...)}
}

// IsInvalid reports whether err is kind-coded as client input.
func IsInvalid(err error) bool { return hasKind(err, KindInvalid) }

// IsNotFound reports whether err is kind-coded as a missing reference.
func IsNotFound(err error) bool { return hasKind(err, KindNotFound) }

// IsInternal reports whether err is kind-coded as inconsistent metadata.
func IsInternal(err error) bool { return hasKind(err, KindInternal) }

func hasKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}
