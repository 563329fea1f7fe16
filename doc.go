// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jdoc implements a JSON document model with a parser, a streaming
// decoder, a serializer, and an algebra of operations over documents.
//
// # Values
//
// A *Value is a JSON document: null, a Boolean, a 128-bit signed integer, a
// 64-bit float, a string, an array, or an object. Object members are kept
// sorted by key, and keys are unique. Each container owns its children
// exclusively, so a document is always a tree; use Clone to copy one.
//
//	v := jdoc.Object(
//	   jdoc.Field("name", jdoc.String("gizmo")),
//	   jdoc.Field("sizes", jdoc.Array(jdoc.Int(1), jdoc.Int(2))),
//	)
//	fmt.Println(v) // {"name":"gizmo","sizes":[1,2]}
//
// # Parsing
//
// Parse reads a single value from a string. Numbers containing a decimal
// point or exponent are floats; others are integers. In case of error, the
// concrete type of the error is *SyntaxError or *NumberError, and the error
// reports the line and column where parsing failed:
//
//	v, err := jdoc.Parse(`{"a": [1, 2.5, "three"]}`)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// ParsePrefix parses one value from the front of its input, and ParseAll
// parses a sequence of whitespace-separated values. ParseJWCC accepts JSON
// extended with comments and trailing commas.
//
// # Streaming
//
// The Decoder type reads a sequence of values from an io.Reader, buffering
// input until each value is complete. Next returns io.EOF at the end of the
// input:
//
//	dec := jdoc.NewDecoder(r)
//	for v := range dec.All() {
//	   process(v)
//	}
//	if err := dec.Err(); err != nil {
//	   log.Fatalf("Decoding failed: %v", err)
//	}
//
// # Operations
//
// Values support indexing (Index, Get, Path), slicing (Slice), traversal
// (Recurse, Walk), in-place extension (Append), and deep merging (Mixin).
// The Apply function implements arithmetic, string, array, object, bitwise,
// and logical operators over pairs of values:
//
//	jdoc.Apply(jdoc.OpAdd, jdoc.Int(2), jdoc.Float(0.5))      // 2.5
//	jdoc.Apply(jdoc.OpMul, jdoc.String("ab"), jdoc.Int(3))    // "ababab"
//	jdoc.Apply(jdoc.OpDiv, jdoc.String("a,b"), jdoc.String(",")) // ["a","b"]
//
// Combinations an operator does not define, and division by zero, yield null.
package jdoc
