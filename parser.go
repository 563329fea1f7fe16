// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"errors"
	"io"
	"strconv"

	"github.com/creachadair/jdoc/internal/escape"

	"go4.org/mem"
)

// MaxDepth is the default limit on the nesting depth of arrays and objects
// accepted by the parser.
const MaxDepth = 10000

// Parse parses a single JSON value from text. Only whitespace may follow the
// value. In case of a syntax error, the returned error has concrete type
// *SyntaxError or *NumberError.
func Parse(text string) (*Value, error) { return parseText(mem.S(text)) }

// ParseBytes is as Parse, but consumes its input from a slice.
func ParseBytes(text []byte) (*Value, error) { return parseText(mem.B(text)) }

// ParsePrefix parses a single JSON value from the front of text, and reports
// the number of bytes consumed. Text after the value is not examined.
func ParsePrefix(text string) (*Value, int, error) {
	p := newParser(mem.S(text), MaxDepth)
	v, err := p.parse()
	return v, p.pos.Offset, err
}

// ParseAll parses all the whitespace-separated JSON values in text.  In case
// of error, any complete values already parsed are returned along with the
// error.
func ParseAll(text string) ([]*Value, error) {
	p := newParser(mem.S(text), MaxDepth)
	var vs []*Value
	for {
		p.pos.skipSpace(p.text)
		if p.atEOF() {
			return vs, nil
		}
		v, err := p.parse()
		if err != nil {
			return vs, err
		}
		vs = append(vs, v)
	}
}

func parseText(text mem.RO) (*Value, error) {
	p := newParser(text, MaxDepth)
	v, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.pos.skipSpace(text)
	if !p.atEOF() {
		return nil, p.pos.errorf(ErrExtraInput, "%v", ErrExtraInput)
	}
	return v, nil
}

// A parser is a recursive-descent parser for a single JSON value.  Errors are
// reported by panicking with a *SyntaxError or *NumberError, which parse
// recovers and returns.
type parser struct {
	text     mem.RO
	pos      Pos
	depth    int
	maxDepth int
}

func newParser(text mem.RO, maxDepth int) *parser {
	return &parser{text: text, pos: startPos, maxDepth: maxDepth}
}

// parse parses one value starting at the current position.
func (p *parser) parse() (_ *Value, err error) {
	defer func() {
		if x := recover(); x != nil {
			switch e := x.(type) {
			case *SyntaxError:
				err = e
			case *NumberError:
				err = e
			default:
				panic(x)
			}
		}
	}()
	p.depth = 0
	return p.value(), nil
}

func (p *parser) fail(err error, msg string, args ...any) {
	panic(p.pos.errorf(err, msg, args...))
}

func (p *parser) atEOF() bool { return p.pos.Offset >= p.text.Len() }

func (p *parser) rest() mem.RO { return p.text.SliceFrom(p.pos.Offset) }

// peek reports whether the next byte of input is b.
func (p *parser) peek(b byte) bool { return !p.atEOF() && p.text.At(p.pos.Offset) == b }

func (p *parser) requireMore(what string) {
	if p.atEOF() {
		p.fail(io.ErrUnexpectedEOF, "unexpected end of input in %s", what)
	}
}

// value consumes a single value of any type, after optional whitespace.
func (p *parser) value() *Value {
	p.pos.skipSpace(p.text)
	p.requireMore("value")

	switch ch := p.text.At(p.pos.Offset); ch {
	case 'n':
		return p.literal("null", Null())
	case 't':
		return p.literal("true", Bool(true))
	case 'f':
		return p.literal("false", Bool(false))
	case '"':
		return String(p.str())
	case '[':
		return p.array()
	case '{':
		return p.object()
	default:
		if !isNumByte(ch) {
			p.fail(nil, "invalid token %q", ch)
		}
		return p.number()
	}
}

// literal consumes the constant word and returns v.  Only the word itself is
// checked; the enclosing structure rejects any trailing garbage.
func (p *parser) literal(word string, v *Value) *Value {
	rest := p.rest()
	if !mem.HasPrefix(rest, mem.S(word)) {
		if rest.Len() < len(word) && mem.HasPrefix(mem.S(word), rest) {
			p.fail(io.ErrUnexpectedEOF, "incomplete %s", word)
		}
		p.fail(nil, "expected %s", word)
	}
	p.pos.advance(len(word))
	return v
}

// number consumes a run of number bytes and converts it to an integer, or to
// a float if the run contains a decimal point or exponent.
func (p *parser) number() *Value {
	start, end := p.pos.Offset, p.pos.Offset
	var isFloat bool
	for ; end < p.text.Len(); end++ {
		c := p.text.At(end)
		if c == '.' || c == 'e' || c == 'E' {
			isFloat = true
		} else if !isNumByte(c) {
			break
		}
	}
	lit := p.text.SliceTo(end).SliceFrom(start).StringCopy()
	at := p.pos
	p.pos.advance(end - start)

	if isFloat {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			panic(&NumberError{Pos: at, Text: lit, Err: err})
		}
		return Float(f)
	}
	z, err := parseInt128(lit)
	if err != nil {
		panic(&NumberError{Pos: at, Text: lit, Err: err})
	}
	return &Value{kind: IntegerKind, i: z}
}

// str consumes a quoted string and returns its decoded contents.
func (p *parser) str() string {
	s, n, err := escape.Unquote(p.rest())
	p.pos.advance(n)
	if errors.Is(err, escape.ErrIncomplete) {
		p.fail(io.ErrUnexpectedEOF, "%v", err)
	} else if err != nil {
		p.fail(nil, "%v", err)
	}
	return s
}

// array consumes an array. Elements may be separated by a single comma.
// Precondition: next byte == '['.
func (p *parser) array() *Value {
	p.enter()
	p.pos.advance(1)
	p.pos.skipSpace(p.text)
	if p.peek(',') {
		p.fail(nil, `unexpected ","`)
	}

	arr := []*Value{}
	for {
		p.requireMore("array")
		if p.peek(']') {
			p.pos.advance(1)
			p.depth--
			return &Value{kind: ArrayKind, arr: arr}
		}
		arr = append(arr, p.value())

		p.pos.skipSpace(p.text)
		if p.peek(',') {
			p.pos.advance(1)
			p.pos.skipSpace(p.text)
		}
	}
}

// object consumes an object. If a key occurs more than once, the last value
// wins. Precondition: next byte == '{'.
func (p *parser) object() *Value {
	p.enter()
	p.pos.advance(1)
	p.pos.skipSpace(p.text)

	obj := Members{}
	if p.peek('}') {
		p.pos.advance(1)
		p.depth--
		return &Value{kind: ObjectKind, obj: obj}
	}
	for {
		// Parse a single member: "key": value
		p.pos.skipSpace(p.text)
		p.requireMore("object")
		if !p.peek('"') {
			p.fail(nil, "expected string key, got %q", p.text.At(p.pos.Offset))
		}
		key := p.str()
		p.pos.skipSpace(p.text)
		p.require(':')
		obj.Insert(Member{Key: key, Value: p.value()})

		// Check whether we have more members (",") or are done ("}").
		p.pos.skipSpace(p.text)
		p.requireMore("object")
		switch ch := p.text.At(p.pos.Offset); ch {
		case '}':
			p.pos.advance(1)
			p.depth--
			return &Value{kind: ObjectKind, obj: obj}
		case ',':
			p.pos.advance(1)
		default:
			p.fail(nil, `expected "," or "}", got %q`, ch)
		}
	}
}

// require consumes the byte b, or fails.
func (p *parser) require(b byte) {
	if p.atEOF() {
		p.fail(io.ErrUnexpectedEOF, "missing %q", b)
	} else if ch := p.text.At(p.pos.Offset); ch != b {
		p.fail(nil, "expected %q, got %q", b, ch)
	}
	p.pos.advance(1)
}

// enter records the start of a nested array or object.
func (p *parser) enter() {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		p.fail(nil, "nesting depth exceeds %d", p.maxDepth)
	}
}

func isNumByte(ch byte) bool {
	return ('0' <= ch && ch <= '9') || ch == '+' || ch == '-' || ch == '.' || ch == 'e' || ch == 'E'
}
