// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrExtraInput is reported (wrapped) by Parse when non-whitespace text
	// follows the first complete value of its input.
	ErrExtraInput = errors.New("extra input after value")

	// ErrInputTooLarge is reported by a Decoder whose buffered input exceeds
	// its configured limit without yielding a complete value.
	ErrInputTooLarge = errors.New("input too large")
)

// SyntaxError is the concrete type of lexical and structural errors reported
// by the parser.
type SyntaxError struct {
	Pos     Pos
	Message string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Pos, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// NumberError reports a number literal that could not be converted. Err is
// the *strconv.NumError from the conversion; its Func field is "ParseInt"
// for integer literals and "ParseFloat" for floating-point literals.
type NumberError struct {
	Pos  Pos
	Text string // the literal as written
	Err  error
}

// Error satisfies the error interface.
func (n *NumberError) Error() string {
	label := "integer"
	if n.IsFloat() {
		label = "float"
	}
	return fmt.Sprintf("at %s: invalid %s %q: %v", n.Pos, label, n.Text, n.Err)
}

// Unwrap supports error wrapping.
func (n *NumberError) Unwrap() error { return n.Err }

// IsFloat reports whether n arose from a floating-point literal.
func (n *NumberError) IsFloat() bool {
	var ne *strconv.NumError
	return errors.As(n.Err, &ne) && ne.Func == "ParseFloat"
}

// TypeError reports an attempt to extract a native value from a Value of the
// wrong kind.
type TypeError struct {
	Want, Got Kind
}

// Error satisfies the error interface.
func (t *TypeError) Error() string {
	return fmt.Sprintf("got %v, want %v", t.Got, t.Want)
}

// KeyMissingError reports that an object has no member with Key. At is the
// offset where a member with that key would be inserted.
type KeyMissingError struct {
	At  int
	Key string
}

// Error satisfies the error interface.
func (k *KeyMissingError) Error() string { return fmt.Sprintf("missing key %q", k.Key) }

// IndexError reports an index or slice range outside its target.
type IndexError struct {
	Start, End int
}

// Error satisfies the error interface.
func (x *IndexError) Error() string {
	return fmt.Sprintf("index out of bounds %d..%d", x.Start, x.End)
}
