// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"slices"
	"strings"
)

// A Member is a single key-value pair belonging to an object.
type Member struct {
	Key   string
	Value *Value
}

// Field constructs an object member with the given key and value.
// A nil value is treated as null.
func Field(key string, value *Value) Member {
	if value == nil {
		value = Null()
	}
	return Member{Key: key, Value: value}
}

// Members is the member store of an object: a slice of members ordered by
// byte-wise comparison of their keys, with no duplicate keys.
type Members []Member

// Search looks for key in ms. If found, it returns the offset of the
// matching member and true; otherwise it returns the offset where a member
// with that key would be inserted and false.
func (ms Members) Search(key string) (int, bool) {
	return slices.BinarySearchFunc(ms, key, func(m Member, key string) int {
		return strings.Compare(m.Key, key)
	})
}

// Find returns the member of ms with the given key, or nil.
func (ms Members) Find(key string) *Member {
	if i, ok := ms.Search(key); ok {
		return &ms[i]
	}
	return nil
}

// Insert adds m to *ms. If a member with the same key is present it is
// replaced in place, otherwise m is inserted in key order.
func (ms *Members) Insert(m Member) {
	i, ok := ms.Search(m.Key)
	if ok {
		(*ms)[i] = m
		return
	}
	*ms = slices.Insert(*ms, i, m)
}

// Delete removes the member with the given key from *ms, and returns its
// value. If there is no such member, Delete returns nil.
func (ms *Members) Delete(key string) *Value {
	i, ok := ms.Search(key)
	if !ok {
		return nil
	}
	v := (*ms)[i].Value
	*ms = slices.Delete(*ms, i, i+1)
	return v
}

// Keys returns the keys of ms in order.
func (ms Members) Keys() []string {
	keys := make([]string, len(ms))
	for i, m := range ms {
		keys[i] = m.Key
	}
	return keys
}

// clone returns a deep copy of ms.
func (ms Members) clone() Members {
	if ms == nil {
		return nil
	}
	out := make(Members, len(ms))
	for i, m := range ms {
		out[i] = Member{Key: m.Key, Value: m.Value.Clone()}
	}
	return out
}

// newMembers builds a sorted store from ms, in which the last of any members
// sharing a key wins.
func newMembers(ms []Member) Members {
	out := make(Members, 0, len(ms))
	for _, m := range ms {
		out.Insert(Field(m.Key, m.Value))
	}
	return out
}
