// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"cmp"
	"fmt"
	"iter"
	"math/big"
	"strings"
)

// Kind identifies the type of a JSON value.
type Kind byte

// Constants defining the valid Kind values, in comparison order.
const (
	NullKind Kind = iota
	BoolKind
	IntegerKind
	FloatKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindStr = [...]string{
	NullKind:    "null",
	BoolKind:    "bool",
	IntegerKind: "integer",
	FloatKind:   "float",
	StringKind:  "string",
	ArrayKind:   "array",
	ObjectKind:  "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindStr[k]
}

// Document is the capability interface through which a pipeline or query
// layer manipulates a document tree.
type Document interface {
	// Kind reports the kind of the document.
	Kind() Kind

	// Len reports the length of a string (in bytes), array, object, or null
	// (zero). It reports false for other kinds.
	Len() (int, bool)

	// Set adds or replaces the member of an object with the given key.
	// It panics if the document is not an object.
	Set(key string, value *Value)
}

var _ Document = (*Value)(nil)

// A Value is a node in a JSON document tree. The zero Value is null.
//
// A container exclusively owns its children: a *Value must not be added to
// more than one container. Use Clone to copy a value into a second place.
type Value struct {
	kind Kind
	b    bool
	i    *big.Int // IntegerKind, never modified
	f    float64
	s    string
	arr  []*Value
	obj  Members
}

// Null returns a new null value.
func Null() *Value { return &Value{kind: NullKind} }

// Bool returns a new Boolean value.
func Bool(b bool) *Value { return &Value{kind: BoolKind, b: b} }

// Int returns a new integer value.
func Int(z int64) *Value { return &Value{kind: IntegerKind, i: big.NewInt(z)} }

// Int128 returns a new integer value from z, which is truncated to 128 bits
// in two's complement.
func Int128(z *big.Int) *Value {
	return &Value{kind: IntegerKind, i: wrap128(new(big.Int).Set(z))}
}

// intValue wraps z, which the caller must not retain.
func intValue(z *big.Int) *Value { return &Value{kind: IntegerKind, i: wrap128(z)} }

// Float returns a new floating-point value.
func Float(f float64) *Value { return &Value{kind: FloatKind, f: f} }

// String returns a new string value.
func String(s string) *Value { return &Value{kind: StringKind, s: s} }

// Array returns a new array value containing vs. Nil elements are stored as
// null.
func Array(vs ...*Value) *Value {
	arr := make([]*Value, len(vs))
	for i, v := range vs {
		if v == nil {
			v = Null()
		}
		arr[i] = v
	}
	return &Value{kind: ArrayKind, arr: arr}
}

// Object returns a new object value containing ms. The members are sorted by
// key and, if several members share a key, the last one wins.
func Object(ms ...Member) *Value {
	return &Value{kind: ObjectKind, obj: newMembers(ms)}
}

// Kind reports the kind of v. A nil *Value has kind NullKind.
func (v *Value) Kind() Kind {
	if v == nil {
		return NullKind
	}
	return v.kind
}

// Len reports the length of v if v is a string (in bytes), array, object, or
// null. For other kinds it reports false.
func (v *Value) Len() (int, bool) {
	switch v.Kind() {
	case NullKind:
		return 0, true
	case StringKind:
		return len(v.s), true
	case ArrayKind:
		return len(v.arr), true
	case ObjectKind:
		return len(v.obj), true
	}
	return 0, false
}

// Set adds or replaces the member of object v with the given key. It panics
// if v is not an object.
func (v *Value) Set(key string, value *Value) {
	if v.Kind() != ObjectKind {
		panic(fmt.Sprintf("cannot set %q on %v", key, v.Kind()))
	}
	v.obj.Insert(Field(key, value))
}

// IsNull reports whether v is null.
func (v *Value) IsNull() bool { return v.Kind() == NullKind }

// Truthy reports the Boolean coercion of v: null and false are false, all
// other values are true.
func (v *Value) Truthy() bool {
	switch v.Kind() {
	case NullKind:
		return false
	case BoolKind:
		return v.b
	}
	return true
}

func (v *Value) typeError(want Kind) error { return &TypeError{Want: want, Got: v.Kind()} }

// AsBool returns the value of a Boolean.
func (v *Value) AsBool() (bool, error) {
	if v.Kind() != BoolKind {
		return false, v.typeError(BoolKind)
	}
	return v.b, nil
}

// AsInt64 returns the value of an integer that fits in 64 bits.
func (v *Value) AsInt64() (int64, error) {
	if v.Kind() != IntegerKind {
		return 0, v.typeError(IntegerKind)
	} else if !v.i.IsInt64() {
		return 0, fmt.Errorf("integer %v overflows int64", v.i)
	}
	return v.i.Int64(), nil
}

// AsBigInt returns a copy of the value of an integer.
func (v *Value) AsBigInt() (*big.Int, error) {
	if v.Kind() != IntegerKind {
		return nil, v.typeError(IntegerKind)
	}
	return new(big.Int).Set(v.i), nil
}

// AsFloat returns the value of a floating-point number.
func (v *Value) AsFloat() (float64, error) {
	if v.Kind() != FloatKind {
		return 0, v.typeError(FloatKind)
	}
	return v.f, nil
}

// AsString returns the value of a string.
func (v *Value) AsString() (string, error) {
	if v.Kind() != StringKind {
		return "", v.typeError(StringKind)
	}
	return v.s, nil
}

// AsArray returns the elements of an array. The slice is shared with v.
func (v *Value) AsArray() ([]*Value, error) {
	if v.Kind() != ArrayKind {
		return nil, v.typeError(ArrayKind)
	}
	return v.arr, nil
}

// AsObject returns the members of an object. The slice is shared with v.
func (v *Value) AsObject() (Members, error) {
	if v.Kind() != ObjectKind {
		return nil, v.typeError(ObjectKind)
	}
	return v.obj, nil
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	c := *v
	switch v.kind {
	case ArrayKind:
		c.arr = make([]*Value, len(v.arr))
		for i, elt := range v.arr {
			c.arr[i] = elt.Clone()
		}
	case ObjectKind:
		c.obj = v.obj.clone()
	}
	return &c
}

// Elements returns a sequence of the elements of an array, or of the code
// points of a string as integers. For other kinds the sequence is empty.
func (v *Value) Elements() iter.Seq[*Value] {
	return func(yield func(*Value) bool) {
		switch v.Kind() {
		case ArrayKind:
			for _, elt := range v.arr {
				if !yield(elt) {
					return
				}
			}
		case StringKind:
			for _, r := range v.s {
				if !yield(Int(int64(r))) {
					return
				}
			}
		}
	}
}

// Members returns a sequence of the members of an object in key order. For
// other kinds the sequence is empty.
func (v *Value) Members() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		if v.Kind() != ObjectKind {
			return
		}
		for _, m := range v.obj {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

// Equal reports whether v and w are structurally equal. Values of different
// kinds are never equal, so Int(1) and Float(1) differ.
func (v *Value) Equal(w *Value) bool { return Compare(v, w) == 0 }

// Compare compares v and w, returning -1, 0, or +1. Values of different kinds
// order by kind (null < bool < integer < float < string < array < object).
// Arrays compare element-wise, objects member-wise by key then value.
func Compare(v, w *Value) int {
	if c := cmp.Compare(v.Kind(), w.Kind()); c != 0 {
		return c
	}
	switch v.Kind() {
	case BoolKind:
		if v.b == w.b {
			return 0
		} else if w.b {
			return -1
		}
		return 1
	case IntegerKind:
		return v.i.Cmp(w.i)
	case FloatKind:
		return cmp.Compare(v.f, w.f)
	case StringKind:
		return strings.Compare(v.s, w.s)
	case ArrayKind:
		for i := 0; i < len(v.arr) && i < len(w.arr); i++ {
			if c := Compare(v.arr[i], w.arr[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(v.arr), len(w.arr))
	case ObjectKind:
		for i := 0; i < len(v.obj) && i < len(w.obj); i++ {
			if c := strings.Compare(v.obj[i].Key, w.obj[i].Key); c != 0 {
				return c
			}
			if c := Compare(v.obj[i].Value, w.obj[i].Value); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(v.obj), len(w.obj))
	}
	return 0 // null
}
