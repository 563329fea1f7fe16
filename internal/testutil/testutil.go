// Package testutil defines support code for unit tests.
package testutil

import (
	"testing"

	"github.com/creachadair/jdoc"
)

// MustParse parses text as a single JSON value, or fails t.
func MustParse(t testing.TB, text string) *jdoc.Value {
	t.Helper()
	v, err := jdoc.Parse(text)
	if err != nil {
		t.Fatalf("Parse %#q: unexpected error: %v", text, err)
	}
	return v
}

// MustParseAll parses each of texts as a single JSON value, or fails t.
func MustParseAll(t testing.TB, texts ...string) []*jdoc.Value {
	t.Helper()
	out := make([]*jdoc.Value, len(texts))
	for i, text := range texts {
		out[i] = MustParse(t, text)
	}
	return out
}
