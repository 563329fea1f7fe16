// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"fmt"
	"iter"
	"unicode/utf8"

	"github.com/creachadair/mds/stack"
)

// normIndex resolves an offset into a sequence of length n. Negative offsets
// count backward from the end (-1 is last).
func normIndex(off, n int) (int, bool) {
	if off < 0 {
		off += n
	}
	return off, off >= 0 && off < n
}

// sliceRange resolves a half-open range [start, end) in a sequence of length
// n. Negative bounds count backward from the end, and bounds are clamped to
// the sequence. It reports false if the resulting range is empty.
func sliceRange(start, end, n int) (int, int, bool) {
	clamp := func(i int) int {
		if i < 0 {
			i += n
		}
		return min(max(i, 0), n)
	}
	a, z := clamp(start), clamp(end)
	return a, z, a < z
}

// Index returns the element of array v at offset off. Negative offsets count
// backward from the end of the array. Index returns nil if v is not an array
// or off is out of range.  The element is shared with v.
func (v *Value) Index(off int) *Value {
	if v.Kind() != ArrayKind {
		return nil
	}
	if i, ok := normIndex(off, len(v.arr)); ok {
		return v.arr[i]
	}
	return nil
}

// Get returns the value of the member of object v with the given key, or nil
// if v is not an object or has no such member. The result is shared with v.
func (v *Value) Get(key string) *Value {
	if v.Kind() != ObjectKind {
		return nil
	}
	if m := v.obj.Find(key); m != nil {
		return m.Value
	}
	return nil
}

// GetCopy is as Get, but returns a deep copy of the member value.
func (v *Value) GetCopy(key string) *Value { return v.Get(key).Clone() }

// Remove removes the member of object v with the given key, and returns its
// value. It returns nil if v is not an object or has no such member.
func (v *Value) Remove(key string) *Value {
	if v.Kind() != ObjectKind {
		return nil
	}
	return v.obj.Delete(key)
}

// Lookup returns the value of the member of object v with the given key. If
// there is no such member, it reports a *KeyMissingError giving the position
// where the key would be inserted. If v is not an object, it reports a
// *TypeError.
func (v *Value) Lookup(key string) (*Value, error) {
	if v.Kind() != ObjectKind {
		return nil, v.typeError(ObjectKind)
	}
	i, ok := v.obj.Search(key)
	if !ok {
		return nil, &KeyMissingError{At: i, Key: key}
	}
	return v.obj[i].Value, nil
}

// Slice returns a new array or string holding the half-open range [start,
// end) of array or string v. Negative bounds count backward from the end,
// and bounds are clamped to the length of v. Slice returns nil if v is not
// an array or string, or if the range is empty. String bounds are byte
// offsets and must not split an encoded rune.
func (v *Value) Slice(start, end int) *Value {
	w, _ := v.SliceRange(start, end)
	return w
}

// SliceRange is as Slice, but reports why no slice is available: a
// *TypeError if v is not an array or string, or an *IndexError if the range
// is empty or cuts a string within a rune.
func (v *Value) SliceRange(start, end int) (*Value, error) {
	switch v.Kind() {
	case ArrayKind:
		a, z, ok := sliceRange(start, end, len(v.arr))
		if !ok {
			return nil, &IndexError{Start: start, End: end}
		}
		out := make([]*Value, z-a)
		for i, elt := range v.arr[a:z] {
			out[i] = elt.Clone()
		}
		return &Value{kind: ArrayKind, arr: out}, nil
	case StringKind:
		a, z, ok := sliceRange(start, end, len(v.s))
		if !ok || !runeBoundary(v.s, a) || !runeBoundary(v.s, z) {
			return nil, &IndexError{Start: start, End: end}
		}
		return String(v.s[a:z]), nil
	}
	return nil, v.typeError(ArrayKind)
}

func runeBoundary(s string, off int) bool { return off == len(s) || utf8.RuneStart(s[off]) }

// Recurse returns v followed by all its descendants in depth-first pre-order.
// Arrays and objects precede their contents; for objects only the member
// values are visited. The results are shared with v.
func (v *Value) Recurse() []*Value {
	var out []*Value
	for w := range v.Walk() {
		out = append(out, w)
	}
	return out
}

// Walk returns a sequence of v and all its descendants in the same order as
// Recurse.
func (v *Value) Walk() iter.Seq[*Value] {
	return func(yield func(*Value) bool) {
		if v == nil {
			return
		}
		stk := stack.New[*Value]()
		stk.Add(v)
		for !stk.IsEmpty() {
			next, _ := stk.Pop()
			if !yield(next) {
				return
			}

			// N.B. Push in reverse order, so we visit in lexical order.
			switch next.kind {
			case ArrayKind:
				for i := len(next.arr) - 1; i >= 0; i-- {
					stk.Add(next.arr[i])
				}
			case ObjectKind:
				for i := len(next.obj) - 1; i >= 0; i-- {
					stk.Add(next.obj[i].Value)
				}
			}
		}
	}
}

// AppendString appends s to string v. It panics if v is not a string.
func (v *Value) AppendString(s string) {
	v.mustBe(StringKind, "append")
	v.s += s
}

// AppendValues appends vs to array v, which takes ownership of them. It
// panics if v is not an array.
func (v *Value) AppendValues(vs ...*Value) {
	v.mustBe(ArrayKind, "append")
	for _, elt := range vs {
		if elt == nil {
			elt = Null()
		}
		v.arr = append(v.arr, elt)
	}
}

// AppendMembers adds ms to object v, replacing any existing members with the
// same keys. It panics if v is not an object.
func (v *Value) AppendMembers(ms ...Member) {
	v.mustBe(ObjectKind, "append")
	for _, m := range ms {
		v.obj.Insert(Field(m.Key, m.Value))
	}
}

// Append appends the contents of w to v, which must have the same kind: the
// text of a string, the elements of an array, or the members of an object.
// The contents of w are copied. Append panics if v and w have different
// kinds, or are not strings, arrays, or objects.
func (v *Value) Append(w *Value) {
	if v.Kind() != w.Kind() {
		panic(fmt.Sprintf("cannot append %v to %v", w.Kind(), v.Kind()))
	}
	w = w.Clone()
	switch v.Kind() {
	case StringKind:
		v.AppendString(w.s)
	case ArrayKind:
		v.AppendValues(w.arr...)
	case ObjectKind:
		v.AppendMembers(w.obj...)
	default:
		panic(fmt.Sprintf("cannot append to %v", v.Kind()))
	}
}

func (v *Value) mustBe(k Kind, op string) {
	if v.Kind() != k {
		panic(fmt.Sprintf("cannot %s to %v", op, v.Kind()))
	}
}

// Mixin returns a new object that deep-merges object w into object v: a
// member of w whose key is absent from v is added, members that are objects
// on both sides are merged recursively, and otherwise the member of w
// replaces that of v. Neither input is modified. If either argument is not
// an object, Mixin returns nil.
func Mixin(v, w *Value) *Value {
	if v.Kind() != ObjectKind || w.Kind() != ObjectKind {
		return nil
	}
	return &Value{kind: ObjectKind, obj: mixinMembers(v.obj.clone(), w.obj)}
}

// mixinMembers merges other into this, which it takes ownership of.
func mixinMembers(this, other Members) Members {
	for _, m := range other {
		i, ok := this.Search(m.Key)
		if !ok {
			this.Insert(Member{Key: m.Key, Value: m.Value.Clone()})
		} else if cur := this[i].Value; cur.Kind() == ObjectKind && m.Value.Kind() == ObjectKind {
			cur.obj = mixinMembers(cur.obj, m.Value.obj)
		} else {
			this[i].Value = m.Value.Clone()
		}
	}
	return this
}

// Path traverses a sequential path through the structure of v, where path
// elements are either strings (denoting object keys) or integers (denoting
// offsets into arrays, negative from the end). It returns the value reached,
// shared with v, or nil if some step of the path is absent.  Path panics if
// an element is neither a string nor an int.
func (v *Value) Path(path ...any) *Value {
	cur := v
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			cur = cur.Get(t)
		case int:
			cur = cur.Index(t)
		default:
			panic(fmt.Sprintf("invalid path element %T", elt))
		}
		if cur == nil {
			return nil
		}
	}
	return cur
}
