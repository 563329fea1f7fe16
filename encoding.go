// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"errors"

	"github.com/creachadair/jdoc/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. Control characters, double
// quotation marks, and backslashes are escaped, and double quotation marks
// are added. All other bytes are copied unchanged.
func Quote(src string) string { return string(escape.Quote(nil, mem.S(src))) }

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
// Unquote reports an error for an invalid or incomplete escape sequence, an
// unpaired UTF-16 surrogate, or text following the closing quotation mark.
func Unquote(src string) (string, error) {
	s, n, err := escape.Unquote(mem.S(src))
	if err != nil {
		return "", err
	} else if n != len(src) {
		return "", errors.New("extra text after closing quotation")
	}
	return s, nil
}
