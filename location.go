// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"fmt"

	"go4.org/mem"
)

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

func (s Span) String() string { return fmt.Sprintf("%d-%d", s.Pos, s.End) }

// A LineCol describes the line number and column of a location in source
// text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // column in line
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Pos is the position of the parser within its input. The zero Pos is not
// a valid starting point; parsing begins at startPos.
type Pos struct {
	Offset int // byte offset, 0-based
	LineCol
}

var startPos = Pos{Offset: 0, LineCol: LineCol{Line: 1, Column: 1}}

func (p Pos) String() string { return p.LineCol.String() }

// reset moves p to the given offset, line, and column.
func (p *Pos) reset(off, line, col int) {
	p.Offset, p.Line, p.Column = off, line, col
}

// advance moves p forward over n bytes that contain no line breaks.
func (p *Pos) advance(n int) {
	p.Offset += n
	p.Column += n
}

// skipSpace moves p over any whitespace at its offset in text, stopping at
// the first non-space byte or the end of text.
func (p *Pos) skipSpace(text mem.RO) {
	for p.Offset < text.Len() {
		switch text.At(p.Offset) {
		case ' ', '\t', '\r':
			p.Column++
		case '\n':
			p.Line++
			p.Column = 0
		default:
			return
		}
		p.Offset++
	}
}

// errorf constructs a *SyntaxError annotated with the current position of p.
func (p Pos) errorf(err error, msg string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: p, Message: fmt.Sprintf(msg, args...), err: err}
}
