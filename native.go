// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// FromGo converts a Go value into a Value. The conversion follows the rules
// of encoding/json: x is marshaled to JSON text, which is then parsed.
// Struct tags and custom json.Marshaler implementations are honored.
func FromGo(x any) (*Value, error) {
	if v, ok := x.(*Value); ok {
		return v.Clone(), nil
	}
	data, err := json.Marshal(x)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", x, err)
	}
	return ParseBytes(data)
}

// MustFromGo is as FromGo, but panics if the conversion fails.
func MustFromGo(x any) *Value {
	v, err := FromGo(x)
	if err != nil {
		panic(err)
	}
	return v
}

// Decode unpacks v into dst, which must be a non-nil pointer, following the
// rules of encoding/json.Unmarshal.
func (v *Value) Decode(dst any) error {
	if err := json.Unmarshal(v.AppendJSON(nil), dst); err != nil {
		return fmt.Errorf("decode into %T: %w", dst, err)
	}
	return nil
}
