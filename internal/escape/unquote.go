// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"go4.org/mem"
)

// ErrIncomplete is reported when the input ends before the closing quotation
// mark of a string.
var ErrIncomplete = errors.New("incomplete string")

// Unquote decodes the JSON string at the front of src, which must begin with
// a double quotation mark. It returns the decoded string and the number of
// bytes of src consumed, including both quotation marks.
//
// Bytes other than escape sequences are copied verbatim. In case of error,
// the returned offset is the position in src where decoding failed.
func Unquote(src mem.RO) (string, int, error) {
	if src.Len() == 0 || src.At(0) != '"' {
		return "", 0, errors.New("not a string")
	}
	dec := make([]byte, 0, src.Len())
	i := 1
	for i < src.Len() {
		// Copy the run of bytes up to the next quote or escape.
		j := i
		for j < src.Len() && src.At(j) != '"' && src.At(j) != '\\' {
			j++
		}
		dec = mem.Append(dec, src.SliceTo(j).SliceFrom(i))
		if j == src.Len() {
			break
		} else if src.At(j) == '"' {
			return string(dec), j + 1, nil
		}

		// We are at a \-escape.
		if j+1 >= src.Len() {
			return "", src.Len(), fmt.Errorf("incomplete escape sequence: %w", ErrIncomplete)
		}
		i = j + 2
		switch c := src.At(j + 1); c {
		case '"', '\\', '/':
			dec = append(dec, c)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			r, n, err := decodeUnicode(src, j)
			if err != nil {
				return "", n, err
			}
			dec = utf8.AppendRune(dec, r)
			i = n
		default:
			return "", j + 1, fmt.Errorf("invalid escape %q", c)
		}
	}
	return "", src.Len(), ErrIncomplete
}

// decodeUnicode decodes the \u escape at offset pos of src, combining a
// UTF-16 surrogate pair into a single code point. It returns the rune and
// the offset just past the escape. In case of error, the offset reports
// where the failure occurred.
func decodeUnicode(src mem.RO, pos int) (rune, int, error) {
	c1, err := parseHex4(src, pos+2)
	if err != nil {
		return 0, pos + 2, err
	}
	end := pos + 6
	switch {
	case c1 >= 0xDC00 && c1 <= 0xDFFF:
		return 0, pos, fmt.Errorf("invalid string codepoint %04x", c1)
	case c1 < 0xD800 || c1 > 0xDBFF:
		return rune(c1), end, nil
	}

	// A high surrogate must be followed immediately by a low surrogate.
	for i, want := range []byte{'\\', 'u'} {
		if end+i >= src.Len() {
			return 0, end, fmt.Errorf("incomplete surrogate pair: %w", ErrIncomplete)
		} else if src.At(end+i) != want {
			return 0, end, fmt.Errorf("unpaired surrogate %04x", c1)
		}
	}
	c2, err := parseHex4(src, end+2)
	if err != nil {
		return 0, end + 2, err
	} else if c2 < 0xDC00 || c2 > 0xDFFF {
		return 0, end, fmt.Errorf("invalid string codepoint %04x", c2)
	}
	return (rune(c1-0xD800)<<10 | rune(c2-0xDC00)) + 0x10000, end + 6, nil
}

// parseHex4 parses exactly four hexadecimal digits at offset pos of src.
func parseHex4(src mem.RO, pos int) (uint16, error) {
	if src.Len()-pos < 4 {
		return 0, fmt.Errorf("incomplete Unicode escape: %w", ErrIncomplete)
	}
	var v uint16
	for i := pos; i < pos+4; i++ {
		b := src.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += uint16(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += uint16(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += uint16(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
