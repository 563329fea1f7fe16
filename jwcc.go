// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"bytes"

	"github.com/tailscale/hujson"
)

// ParseJWCC parses a single value from text in the JSON With Commas and
// Comments (JWCC) format, which extends JSON with line and block comments
// and allows a trailing comma after the last element of an array or object.
//
// Comments and trailing commas are replaced with spaces before parsing, so
// the positions reported by a *SyntaxError refer to the original text.
// The contents of text are not modified.
func ParseJWCC(text []byte) (*Value, error) {
	std, err := hujson.Standardize(bytes.Clone(text))
	if err != nil {
		return nil, err
	}
	return ParseBytes(std)
}
