// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc_test

import (
	"errors"
	"math/big"
	"slices"
	"testing"

	"github.com/creachadair/jdoc"
	"github.com/creachadair/jdoc/internal/testutil"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		input *jdoc.Value
		kind  jdoc.Kind
		len   int
		ok    bool
		truth bool
	}{
		{nil, jdoc.NullKind, 0, true, false},
		{new(jdoc.Value), jdoc.NullKind, 0, true, false},
		{jdoc.Null(), jdoc.NullKind, 0, true, false},
		{jdoc.Bool(false), jdoc.BoolKind, 0, false, false},
		{jdoc.Bool(true), jdoc.BoolKind, 0, false, true},
		{jdoc.Int(0), jdoc.IntegerKind, 0, false, true},
		{jdoc.Float(0), jdoc.FloatKind, 0, false, true},
		{jdoc.String(""), jdoc.StringKind, 0, true, true},
		{jdoc.String("héllo"), jdoc.StringKind, 6, true, true},
		{jdoc.Array(), jdoc.ArrayKind, 0, true, true},
		{jdoc.Array(nil, jdoc.Int(1)), jdoc.ArrayKind, 2, true, true},
		{jdoc.Object(), jdoc.ObjectKind, 0, true, true},
		{jdoc.Object(jdoc.Field("a", nil)), jdoc.ObjectKind, 1, true, true},
	}
	for _, tc := range tests {
		var doc jdoc.Document = tc.input
		if got := doc.Kind(); got != tc.kind {
			t.Errorf("Kind %v: got %v, want %v", tc.input, got, tc.kind)
		}
		if n, ok := doc.Len(); n != tc.len || ok != tc.ok {
			t.Errorf("Len %v: got (%d, %v), want (%d, %v)", tc.input, n, ok, tc.len, tc.ok)
		}
		if got := tc.input.Truthy(); got != tc.truth {
			t.Errorf("Truthy %v: got %v, want %v", tc.input, got, tc.truth)
		}
	}
}

func TestExtract(t *testing.T) {
	v := testutil.MustParse(t, `[true, -12, 2.5, "s", [1], {"k": null}]`)
	arr, err := v.AsArray()
	if err != nil {
		t.Fatalf("AsArray: unexpected error: %v", err)
	}

	if b, err := arr[0].AsBool(); err != nil || !b {
		t.Errorf("AsBool: got %v, %v; want true", b, err)
	}
	if z, err := arr[1].AsInt64(); err != nil || z != -12 {
		t.Errorf("AsInt64: got %v, %v; want -12", z, err)
	}
	if z, err := arr[1].AsBigInt(); err != nil || z.Int64() != -12 {
		t.Errorf("AsBigInt: got %v, %v; want -12", z, err)
	}
	if f, err := arr[2].AsFloat(); err != nil || f != 2.5 {
		t.Errorf("AsFloat: got %v, %v; want 2.5", f, err)
	}
	if s, err := arr[3].AsString(); err != nil || s != "s" {
		t.Errorf("AsString: got %q, %v; want s", s, err)
	}
	if obj, err := arr[5].AsObject(); err != nil || len(obj) != 1 || obj[0].Key != "k" {
		t.Errorf("AsObject: got %v, %v", obj, err)
	}

	// Extracting the wrong kind reports a type error.
	_, err = arr[3].AsFloat()
	var te *jdoc.TypeError
	if !errors.As(err, &te) {
		t.Fatalf("AsFloat(string): got %v, want *TypeError", err)
	}
	if te.Want != jdoc.FloatKind || te.Got != jdoc.StringKind {
		t.Errorf("TypeError: got %+v", te)
	}
	if _, err := arr[2].AsInt64(); err == nil {
		t.Error("AsInt64(float): got nil, want error")
	}
	if _, err := jdoc.Int128(new(big.Int).Lsh(big.NewInt(1), 100)).AsInt64(); err == nil {
		t.Error("AsInt64(2^100): got nil, want error")
	}
}

func TestInt128Wrap(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "0"},
		{"170141183460469231731687303715884105727", "170141183460469231731687303715884105727"},
		{"170141183460469231731687303715884105728", "-170141183460469231731687303715884105728"},
		{"340282366920938463463374607431768211456", "0"},
		{"-170141183460469231731687303715884105729", "170141183460469231731687303715884105727"},
	}
	for _, tc := range tests {
		z, _ := new(big.Int).SetString(tc.input, 10)
		if got := jdoc.Int128(z).String(); got != tc.want {
			t.Errorf("Int128(%s): got %s, want %s", tc.input, got, tc.want)
		}
		if got := z.String(); got != tc.input {
			t.Errorf("Int128 modified its argument: got %s, want %s", got, tc.input)
		}
	}
}

func TestSetPanics(t *testing.T) {
	mtest.MustPanic(t, func() { jdoc.Array().Set("x", nil) })
	mtest.MustPanic(t, func() { jdoc.String("s").Set("x", nil) })
	mtest.MustPanic(t, func() { jdoc.Null().Set("x", nil) })
}

func TestCompare(t *testing.T) {
	// Values in increasing order.
	ordered := testutil.MustParseAll(t,
		`null`, `false`, `true`,
		`-5`, `0`, `170141183460469231731687303715884105727`,
		`-1.5`, `0.0`, `1e10`,
		`""`, `"a"`, `"ab"`, `"b"`,
		`[]`, `[1]`, `[1, 2]`, `[2]`,
		`{}`, `{"a": 1}`, `{"a": 2}`, `{"a": 2, "b": 0}`, `{"b": 0}`,
	)
	for i, v := range ordered {
		for j, w := range ordered {
			if got, want := jdoc.Compare(v, w), cmpInt(i, j); got != want {
				t.Errorf("Compare(%v, %v): got %d, want %d", v, w, got, want)
			}
		}
	}

	if jdoc.Int(1).Equal(jdoc.Float(1)) {
		t.Error("Int(1) equals Float(1), want unequal")
	}
	shuffled := slices.Clone(ordered)
	slices.Reverse(shuffled)
	slices.SortFunc(shuffled, jdoc.Compare)
	if diff := cmp.Diff(ordered, shuffled); diff != "" {
		t.Errorf("Sorted values (-want, +got):\n%s", diff)
	}
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

func TestClone(t *testing.T) {
	v := testutil.MustParse(t, `{"a": [1, {"b": "c"}], "d": 2.5}`)
	c := v.Clone()
	if !v.Equal(c) {
		t.Fatalf("Clone: got %v, want %v", c, v)
	}

	c.Path("a").AppendValues(jdoc.Int(3))
	c.Path("a", 1).Set("b", jdoc.Null())
	c.Set("e", jdoc.Bool(true))
	if got, want := v.String(), `{"a":[1,{"b":"c"}],"d":2.5e0}`; got != want {
		t.Errorf("Original after modifying clone: got %#q, want %#q", got, want)
	}
	if got, want := c.String(), `{"a":[1,{"b":null},3],"d":2.5e0,"e":true}`; got != want {
		t.Errorf("Modified clone: got %#q, want %#q", got, want)
	}
}

func TestIteration(t *testing.T) {
	var runes []*jdoc.Value
	for r := range jdoc.String("aé☃").Elements() {
		runes = append(runes, r)
	}
	want := []*jdoc.Value{jdoc.Int('a'), jdoc.Int('é'), jdoc.Int('☃')}
	if diff := cmp.Diff(want, runes); diff != "" {
		t.Errorf("String elements (-want, +got):\n%s", diff)
	}

	arr := testutil.MustParse(t, `[1, "two", null]`)
	var elts []*jdoc.Value
	for e := range arr.Elements() {
		elts = append(elts, e)
	}
	if diff := cmp.Diff(testutil.MustParseAll(t, "1", `"two"`, "null"), elts); diff != "" {
		t.Errorf("Array elements (-want, +got):\n%s", diff)
	}

	obj := testutil.MustParse(t, `{"c": 3, "a": 1, "b": 2}`)
	var keys []string
	for key, val := range obj.Members() {
		keys = append(keys, key+"="+val.String())
	}
	if diff := cmp.Diff([]string{"a=1", "b=2", "c=3"}, keys); diff != "" {
		t.Errorf("Object members (-want, +got):\n%s", diff)
	}

	for range jdoc.Int(5).Elements() {
		t.Error("Integer has elements")
	}
}
