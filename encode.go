// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"io"
	"math"
	"strconv"

	"github.com/creachadair/jdoc/internal/escape"

	"go4.org/mem"
)

// String renders v as compact JSON text.  Object members are written in key
// order.
func (v *Value) String() string { return string(v.AppendJSON(nil)) }

// MarshalJSON implements the json.Marshaler interface.
func (v *Value) MarshalJSON() ([]byte, error) { return v.AppendJSON(nil), nil }

// UnmarshalJSON implements the json.Unmarshaler interface.
func (v *Value) UnmarshalJSON(data []byte) error {
	w, err := ParseBytes(data)
	if err != nil {
		return err
	}
	*v = *w
	return nil
}

// WriteTo writes the compact JSON text of v to w.
func (v *Value) WriteTo(w io.Writer) (int64, error) {
	nw, err := w.Write(v.AppendJSON(nil))
	return int64(nw), err
}

// AppendJSON appends the compact JSON text of v to buf and returns the
// extended slice.
func (v *Value) AppendJSON(buf []byte) []byte {
	switch v.Kind() {
	case NullKind:
		return append(buf, "null"...)
	case BoolKind:
		return strconv.AppendBool(buf, v.b)
	case IntegerKind:
		return v.i.Append(buf, 10)
	case FloatKind:
		return appendFloat(buf, v.f)
	case StringKind:
		return escape.Quote(buf, mem.S(v.s))
	case ArrayKind:
		if len(v.arr) == 0 {
			return append(buf, "[]"...)
		}
		buf = append(buf, '[')
		for i, elt := range v.arr {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = elt.AppendJSON(buf)
		}
		return append(buf, ']')
	case ObjectKind:
		if len(v.obj) == 0 {
			return append(buf, "{}"...)
		}
		buf = append(buf, '{')
		for i, m := range v.obj {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = escape.Quote(buf, mem.S(m.Key))
			buf = append(buf, ':')
			buf = m.Value.AppendJSON(buf)
		}
		return append(buf, '}')
	}
	panic("invalid kind " + v.Kind().String())
}

// appendFloat appends the shortest exponential form of f that parses back to
// the same value, with an unpadded exponent: 10.2 is "1.02e1", 0.001 is
// "1e-3".  NaN and infinities have no JSON form and are written as null.
func appendFloat(buf []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(buf, "null"...)
	}
	start := len(buf)
	buf = strconv.AppendFloat(buf, f, 'e', -1, 64)

	// Rewrite the exponent "e+05" as "e5" and "e-05" as "e-5".
	e := start
	for buf[e] != 'e' {
		e++
	}
	exp := e + 1
	neg := buf[exp] == '-'
	digits := exp + 1
	for digits < len(buf)-1 && buf[digits] == '0' {
		digits++
	}
	out := buf[:exp]
	if neg {
		out = append(out, '-')
	}
	return append(out, buf[digits:]...)
}
