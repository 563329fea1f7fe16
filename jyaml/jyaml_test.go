// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jyaml_test

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/creachadair/jdoc"
	"github.com/creachadair/jdoc/internal/testutil"
	"github.com/creachadair/jdoc/jyaml"
	"github.com/google/go-cmp/cmp"
)

func TestFromYAML(t *testing.T) {
	tests := []struct {
		name, input, want string
	}{
		{"Empty", "", "null"},
		{"Null", "~", "null"},
		{"Scalars", `
s: hello
q: "123"
i: 42
h: 0x1f
f: 2.5
b: yes-not-a-bool
t: true
n: null
`, `{"b":"yes-not-a-bool","f":2.5,"h":31,"i":42,"n":null,"q":"123","s":"hello","t":true}`},
		{"Sequence", "- 1\n- [2, 3]\n- {a: b}\n", `[1,[2,3],{"a":"b"}]`},
		{"Nested", `
server:
  ports: [80, 443]
  tls:
    enabled: false
`, `{"server":{"ports":[80,443],"tls":{"enabled":false}}}`},
		{"Alias", `
base: &b {x: 1, y: 2}
copy: *b
`, `{"base":{"x":1,"y":2},"copy":{"x":1,"y":2}}`},
		{"Merge", `
base: &b {x: 1, y: 2}
derived:
  <<: *b
  y: 3
  z: 4
`, `{"base":{"x":1,"y":2},"derived":{"x":1,"y":3,"z":4}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := jyaml.FromYAML([]byte(tc.input))
			if err != nil {
				t.Fatalf("FromYAML: unexpected error: %v", err)
			}
			if diff := cmp.Diff(testutil.MustParse(t, tc.want), got); diff != "" {
				t.Errorf("FromYAML (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestFromYAMLErrors(t *testing.T) {
	_, err := jyaml.FromYAML([]byte("a: 1\nb: 2\na: 3\n"))
	var dk *jyaml.DuplicateKeyError
	if !errors.As(err, &dk) {
		t.Fatalf("FromYAML: got %v, want *DuplicateKeyError", err)
	}
	if dk.Key != "a" || dk.Line != 3 || dk.FirstLine != 1 {
		t.Errorf("DuplicateKeyError: got %+v", dk)
	}

	for _, input := range []string{
		"? [1, 2]\n: x\n",    // non-scalar key
		"a: [1, 2\n",          // syntax error
		"<<: 5\n",             // merge of a non-mapping
		"a: !!int notanumber", // bad integer
		"a: &a [1, *a]\n",     // self-referential anchor
	} {
		if v, err := jyaml.FromYAML([]byte(input)); err == nil {
			t.Errorf("FromYAML %#q: got %v, want error", input, v)
		}
	}
}

func TestFromYAMLWideInt(t *testing.T) {
	for _, lit := range []string{
		"170141183460469231731687303715884105727",
		"-170141183460469231731687303715884105728",
	} {
		got, err := jyaml.FromYAML([]byte("!!int " + lit))
		if err != nil {
			t.Errorf("FromYAML %s: unexpected error: %v", lit, err)
			continue
		}
		if diff := cmp.Diff(testutil.MustParse(t, lit), got); diff != "" {
			t.Errorf("FromYAML %s (-want, +got):\n%s", lit, diff)
		}
	}

	for _, lit := range []string{
		"170141183460469231731687303715884105728",
		"-170141183460469231731687303715884105729",
		"0x1_0000_0000_0000_0000_0000_0000_0000_0000",
	} {
		v, err := jyaml.FromYAML([]byte("!!int " + lit))
		if !errors.Is(err, strconv.ErrRange) {
			t.Errorf("FromYAML %s: got (%v, %v), want %v", lit, v, err, strconv.ErrRange)
		}

		// The JSON parser rejects the same literals.
		if lit[0] != '0' {
			if _, err := jdoc.Parse(lit); !errors.Is(err, strconv.ErrRange) {
				t.Errorf("Parse %s: got %v, want %v", lit, err, strconv.ErrRange)
			}
		}
	}
}

// laughs returns a YAML document of the given depth in which each level is a
// sequence of ten aliases to the level below, so that it expands to 10^depth
// scalars.
func laughs(depth int) string {
	var sb strings.Builder
	sb.WriteString("l0: &l0 [lol, lol, lol, lol, lol, lol, lol, lol, lol, lol]\n")
	for i := 1; i <= depth; i++ {
		p := fmt.Sprintf("*l%d", i-1)
		fmt.Fprintf(&sb, "l%d: &l%d [%s]\n", i, i, strings.TrimSuffix(strings.Repeat(p+", ", 10), ", "))
	}
	return sb.String()
}

func TestFromYAMLAliasing(t *testing.T) {
	// Moderate aliasing is fine.
	v, err := jyaml.FromYAML([]byte(laughs(2)))
	if err != nil {
		t.Fatalf("FromYAML: unexpected error: %v", err)
	}
	if n, _ := v.Get("l2").Len(); n != 10 {
		t.Errorf("Len(l2): got %d, want 10", n)
	}

	// Exponential expansion is not.
	input := laughs(6)
	_, err = jyaml.FromYAML([]byte(input))
	if !errors.Is(err, jyaml.ErrExcessiveAliasing) {
		t.Errorf("FromYAML (%d bytes): got error %v, want %v", len(input), err, jyaml.ErrExcessiveAliasing)
	}
}

func TestReader(t *testing.T) {
	const input = "a: 1\n---\n- x\n---\ntrue\n"
	vs, err := jyaml.NewReader(strings.NewReader(input)).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: unexpected error: %v", err)
	}
	want := testutil.MustParseAll(t, `{"a":1}`, `["x"]`, `true`)
	if diff := cmp.Diff(want, vs); diff != "" {
		t.Errorf("ReadAll (-want, +got):\n%s", diff)
	}
}

func TestToYAML(t *testing.T) {
	v := testutil.MustParse(t, `{
  "name": "frob",
  "count": 3,
  "ratio": 1.0,
  "flags": [true, null, "true", "3"],
  "nested": {"empty": [], "obj": {}}
}`)
	data, err := jyaml.ToYAML(v)
	if err != nil {
		t.Fatalf("ToYAML: unexpected error: %v", err)
	}

	// Converting back yields the same value, including the distinction
	// between integers, floats, and strings that look like them.
	back, err := jyaml.FromYAML(data)
	if err != nil {
		t.Fatalf("FromYAML: unexpected error: %v\n%s", err, data)
	}
	if diff := cmp.Diff(v, back); diff != "" {
		t.Errorf("Round trip (-want, +got):\n%s\nYAML:\n%s", diff, data)
	}
}

func TestToYAMLFloats(t *testing.T) {
	for _, f := range []float64{0, -2, 1e21, 3.25, math.Inf(1), math.Inf(-1)} {
		data, err := jyaml.ToYAML(jdoc.Float(f))
		if err != nil {
			t.Fatalf("ToYAML(%v): unexpected error: %v", f, err)
		}
		back, err := jyaml.FromYAML(data)
		if err != nil {
			t.Fatalf("FromYAML(%q): unexpected error: %v", data, err)
		}
		if got, err := back.AsFloat(); err != nil || got != f {
			t.Errorf("Round trip %v: got %v, %v (YAML %q)", f, back, err, data)
		}
	}

	data, err := jyaml.ToYAML(jdoc.Float(math.NaN()))
	if err != nil {
		t.Fatalf("ToYAML(NaN): unexpected error: %v", err)
	}
	back, err := jyaml.FromYAML(data)
	if err != nil {
		t.Fatalf("FromYAML(%q): unexpected error: %v", data, err)
	}
	if got, err := back.AsFloat(); err != nil || !math.IsNaN(got) {
		t.Errorf("Round trip NaN: got %v, %v (YAML %q)", back, err, data)
	}
}
