// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"bytes"
	"fmt"
	"io"
	"text/tabwriter"
)

// A Formatter carries the settings for pretty-printing values as JSON text.
// A zero value is ready for use with default settings.
type Formatter struct {
	// Indent is the indentation added for each level of nesting.
	// If empty, two spaces are used.
	Indent string

	// MaxLineItems is the largest number of elements an array may have and
	// still be rendered on a single line. If zero, 3 is used.
	MaxLineItems int
}

func (f Formatter) indent() string {
	if f.Indent == "" {
		return "  "
	}
	return f.Indent
}

func (f Formatter) maxLineItems() int {
	if f.MaxLineItems <= 0 {
		return 3
	}
	return f.MaxLineItems
}

// Format renders a pretty-printed representation of v to w with default
// settings.
func Format(w io.Writer, v *Value) error {
	var f Formatter
	return f.Format(w, v)
}

// FormatToString formats v to a string with default settings.
// In case of error in formatting, it returns an empty string.
func FormatToString(v *Value) string {
	var buf bytes.Buffer
	if Format(&buf, v) != nil {
		return ""
	}
	return buf.String()
}

// Format renders a pretty-printed representation of v to w using the settings
// from f. Simple values are kept on one line, and the values of consecutive
// simple object members are aligned in a column.
func (f Formatter) Format(w io.Writer, v *Value) error {
	tw := tabwriter.NewWriter(w, 4, 4, 1, ' ', 0)
	f.formatValue(tw, v, "", "")
	return tw.Flush()
}

type writeFlusher interface {
	io.Writer
	Flush() error
}

// formatValue writes a representation of v to w indented by indent.
func (f Formatter) formatValue(w writeFlusher, v *Value, init, indent string) {
	switch v.Kind() {
	case ArrayKind:
		f.formatArray(w, v, init, indent)
	case ObjectKind:
		f.formatObject(w, v, init, indent)
	default:
		fmt.Fprint(w, init, v.String())
	}
}

func (f Formatter) formatArray(w writeFlusher, a *Value, init, indent string) {
	if f.isBoring(a) {
		fmt.Fprint(w, init, "[")
		for i, v := range a.arr {
			if i > 0 {
				io.WriteString(w, ", ")
			}
			f.formatValue(w, v, "", "")
		}
		io.WriteString(w, "]")
		return
	}

	fmt.Fprint(w, init, "[\n")
	adent := indent + f.indent()
	for i, v := range a.arr {
		f.formatValue(w, v, adent, adent)
		io.WriteString(w, separator(i, len(a.arr)))
	}
	w.Flush()
	fmt.Fprint(w, indent, "]")
}

func (f Formatter) formatObject(w writeFlusher, o *Value, init, indent string) {
	if f.isBoring(o) {
		fmt.Fprint(w, init, "{")
		for i, m := range o.obj {
			if i > 0 {
				io.WriteString(w, ", ")
			}
			fmt.Fprint(w, Quote(m.Key), ": ")
			f.formatValue(w, m.Value, "", "")
		}
		io.WriteString(w, "}")
		return
	}

	fmt.Fprint(w, init, "{\n")
	mdent := indent + f.indent()
	prevBoring, curBoring := true, true
	for i, m := range o.obj {
		// Leave extra space before the next member if either it or its
		// predecessor was non-boring.
		prevBoring, curBoring = curBoring, f.isBoring(m.Value)
		if i != 0 && !(prevBoring && curBoring) {
			io.WriteString(w, "\n")
		}

		fmt.Fprint(w, mdent, Quote(m.Key), f.objSep(m.Value))
		f.formatValue(w, m.Value, "", mdent)
		io.WriteString(w, separator(i, len(o.obj)))
	}
	w.Flush()
	fmt.Fprint(w, indent, "}")
}

// separator returns the text that follows element i of n.
func separator(i, n int) string {
	if i+1 < n {
		return ",\n"
	}
	return "\n"
}

// objSep returns a key-value separator for the given value.
// Boring values get indented so they line up in columns;
// non-boring values are stapled directly to the key.
func (f Formatter) objSep(v *Value) string {
	if f.isBoring(v) {
		return ":\t"
	}
	return ": "
}

// isBoring reports whether v has a simple enough structure that it can be
// rendered on one line.
func (f Formatter) isBoring(v *Value) bool {
	switch v.Kind() {
	case ArrayKind:
		if len(v.arr) > f.maxLineItems() {
			return false
		}
		for _, elt := range v.arr {
			if !f.isBoring(elt) {
				return false
			}
		}
		return true
	case ObjectKind:
		if len(v.obj) == 1 {
			return f.isBoring(v.obj[0].Value)
		}
		return len(v.obj) == 0
	default:
		return true
	}
}
