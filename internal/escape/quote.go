// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import "go4.org/mem"

// escapes maps each byte to its escaped form, or "" if the byte is copied
// verbatim. Only control bytes, '"', and '\\' are escaped.
var escapes = func() (t [256]string) {
	const hexDigit = "0123456789abcdef"
	for b := range ' ' {
		t[b] = `\u00` + string(hexDigit[b>>4]) + string(hexDigit[b&15])
	}
	t['\b'] = `\b`
	t['\f'] = `\f`
	t['\n'] = `\n`
	t['\r'] = `\r`
	t['\t'] = `\t`
	t['"'] = `\"`
	t['\\'] = `\\`
	return
}()

// Quote appends the JSON encoding of src to buf, including the enclosing
// double quotation marks, and returns the extended slice.
func Quote(buf []byte, src mem.RO) []byte {
	buf = append(buf, '"')
	start := 0
	for i := 0; i < src.Len(); i++ {
		esc := escapes[src.At(i)]
		if esc == "" {
			continue
		}
		buf = mem.Append(buf, src.SliceTo(i).SliceFrom(start))
		buf = append(buf, esc...)
		start = i + 1
	}
	buf = mem.Append(buf, src.SliceFrom(start))
	return append(buf, '"')
}
