package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bis-med-it/gosdmx/errors"
)

func TestKindPredicates(t *testing.T) {
	invalid := errors.Invalid("Invalid URN", "bad value %q", "x")
	notFound := errors.NotFound("Reference not found", "no match")
	internal := errors.Internal("Malformed metadata", "no attachment level")

	assert.True(t, errors.IsInvalid(invalid))
	assert.False(t, errors.IsInvalid(notFound))
	assert.True(t, errors.IsNotFound(notFound))
	assert.True(t, errors.IsInternal(internal))

	// Predicates see through wrapping.
	wrapped := fmt.Errorf("decoding: %w", notFound)
	assert.True(t, errors.IsNotFound(wrapped))
	assert.False(t, errors.IsInvalid(wrapped))
}

func TestErrorMessageCarriesTitleAndDescription(t *testing.T) {
	err := errors.Invalid("Invalid API version", "%q is not supported", "9.9.9")
	assert.Contains(t, err.Error(), "Invalid API version")
	assert.Contains(t, err.Error(), `"9.9.9"`)
}

func TestIssuesErrorCapsAtThree(t *testing.T) {
	iss := errors.Issues{
		{Path: "/a", Code: errors.CodeRequired, Message: "missing a"},
		{Path: "/b", Code: errors.CodeRequired, Message: "missing b"},
		{Path: "/c", Code: errors.CodeInvalidType, Message: "wrong type"},
		{Path: "/d", Code: errors.CodePattern, Message: "bad pattern"},
		{Path: "/e", Code: errors.CodeInvalidEnum, Message: "not in enum"},
	}
	msg := iss.Error()
	assert.Contains(t, msg, "/a")
	assert.Contains(t, msg, "/b")
	assert.Contains(t, msg, "/c")
	assert.NotContains(t, msg, "/d")
	assert.Contains(t, msg, "+2 more")
}

func TestIssuesDedupeByPathAndCode(t *testing.T) {
	iss := errors.Issues{
		{Path: "/a", Code: errors.CodeRequired, Message: "first"},
		{Path: "/a", Code: errors.CodeRequired, Message: "second"},
		{Path: "/a", Code: errors.CodeInvalidType, Message: "third"},
	}
	deduped := iss.Dedupe()
	require.Len(t, deduped, 2)
	assert.Equal(t, "first", deduped[0].Message)
}

func TestAsIssues(t *testing.T) {
	iss := errors.Issues{{Path: "/a", Code: errors.CodeRequired}}
	wrapped := fmt.Errorf("validation: %w", iss)

	got, ok := errors.AsIssues(wrapped)
	require.True(t, ok)
	assert.Len(t, got, 1)

	_, ok = errors.AsIssues(errors.New("plain"))
	assert.False(t, ok)
}
