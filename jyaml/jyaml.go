// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jyaml converts between YAML documents and jdoc values.
//
// YAML mappings become objects, sequences become arrays, and scalars become
// null, Boolean, integer, float, or string values according to their
// resolved tags. Aliases are expanded and merge keys ("<<") are applied.
// Mapping keys must be scalars, and a key may not occur twice in the same
// mapping.
package jyaml

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/creachadair/jdoc"
	"gopkg.in/yaml.v3"
)

// DuplicateKeyError reports a key that occurs more than once in a mapping.
type DuplicateKeyError struct {
	Key                    string
	Line, Column           int // location of the duplicate
	FirstLine, FirstColumn int // location of the first occurrence
}

// Error satisfies the error interface.
func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q at %d:%d (first at %d:%d)",
		e.Key, e.Line, e.Column, e.FirstLine, e.FirstColumn)
}

// FromYAML converts the first YAML document in data to a value. An empty
// document converts to null.
func FromYAML(data []byte) (*jdoc.Value, error) {
	v, err := NewReader(strings.NewReader(string(data))).Next()
	if errors.Is(err, io.EOF) {
		return jdoc.Null(), nil
	}
	return v, err
}

// A Reader converts a stream of YAML documents to values.
type Reader struct {
	dec *yaml.Decoder
}

// NewReader constructs a Reader that consumes YAML text from r.
func NewReader(r io.Reader) *Reader { return &Reader{dec: yaml.NewDecoder(r)} }

// ErrExcessiveAliasing is reported when expanding the aliases of a document
// would build a value out of proportion to the size of the document.
var ErrExcessiveAliasing = errors.New("document contains excessive aliasing")

// Next returns the next document from the stream. At the end of the stream
// it returns nil, io.EOF.
func (r *Reader) Next() (*jdoc.Value, error) {
	var root yaml.Node
	if err := r.dec.Decode(&root); err != nil {
		return nil, err
	}
	c := &converter{expanding: make(map[*yaml.Node]bool)}
	return c.fromNode(&root)
}

// A converter builds values from the nodes of one document. It counts the
// values it builds, and how many of those come from alias expansion, so that
// a small document cannot expand without bound.
type converter struct {
	count      int // values built
	aliasCount int // values built while expanding an alias
	aliasDepth int
	expanding  map[*yaml.Node]bool // anchors whose expansion is in progress
}

// allowedAliasRatio returns the largest fraction of count values that may
// come from alias expansion. Small documents may alias freely, and the
// allowance shrinks as the document grows. The thresholds match the ones
// gopkg.in/yaml.v3 applies when decoding into Go values.
func allowedAliasRatio(count int) float64 {
	switch {
	case count <= 400_000:
		return 0.99
	case count >= 4_000_000:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(count-400_000)/3_600_000)
	}
}

// built records the construction of one value and reports whether the alias
// budget is exhausted.
func (c *converter) built(n *yaml.Node) error {
	c.count++
	if c.aliasDepth > 0 {
		c.aliasCount++
	}
	if c.aliasCount > 100 && c.count > 1000 &&
		float64(c.aliasCount)/float64(c.count) > allowedAliasRatio(c.count) {
		return fmt.Errorf("at %d:%d: %w", n.Line, n.Column, ErrExcessiveAliasing)
	}
	return nil
}

// ReadAll returns all the remaining documents in the stream.
func (r *Reader) ReadAll() ([]*jdoc.Value, error) {
	var out []*jdoc.Value
	for {
		v, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		} else if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func (c *converter) fromNode(n *yaml.Node) (*jdoc.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return jdoc.Null(), nil
		}
		return c.fromNode(n.Content[0])
	case yaml.AliasNode:
		if c.expanding[n.Alias] {
			return nil, fmt.Errorf("at %d:%d: anchor %q contains itself", n.Line, n.Column, n.Value)
		}
		c.expanding[n.Alias] = true
		c.aliasDepth++
		defer func() {
			c.aliasDepth--
			delete(c.expanding, n.Alias)
		}()
		return c.fromNode(n.Alias)
	}

	if err := c.built(n); err != nil {
		return nil, err
	}
	switch n.Kind {
	case yaml.SequenceNode:
		arr := make([]*jdoc.Value, len(n.Content))
		for i, elt := range n.Content {
			v, err := c.fromNode(elt)
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return jdoc.Array(arr...), nil
	case yaml.MappingNode:
		return c.fromMapping(n)
	case yaml.ScalarNode:
		return fromScalar(n)
	}
	return nil, fmt.Errorf("at %d:%d: unsupported YAML node kind %v", n.Line, n.Column, n.Kind)
}

func (c *converter) fromMapping(n *yaml.Node) (*jdoc.Value, error) {
	obj := jdoc.Object()
	first := make(map[string]*yaml.Node)
	var merges []*jdoc.Value
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, kv := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("at %d:%d: mapping key is not a scalar", k.Line, k.Column)
		}
		v, err := c.fromNode(kv)
		if err != nil {
			return nil, err
		}
		if k.ShortTag() == "!!merge" {
			merges = append(merges, v)
			continue
		}
		if prev, ok := first[k.Value]; ok {
			return nil, &DuplicateKeyError{
				Key: k.Value, Line: k.Line, Column: k.Column,
				FirstLine: prev.Line, FirstColumn: prev.Column,
			}
		}
		first[k.Value] = k
		obj.Set(k.Value, v)
	}

	// Merged members do not replace keys given explicitly, and earlier merge
	// sources take precedence over later ones.
	for _, m := range merges {
		srcs := []*jdoc.Value{m}
		if m.Kind() == jdoc.ArrayKind {
			srcs, _ = m.AsArray()
		}
		for _, src := range srcs {
			if src.Kind() != jdoc.ObjectKind {
				return nil, fmt.Errorf("at %d:%d: merge source is %v, not a mapping", n.Line, n.Column, src.Kind())
			}
			for key, val := range src.Members() {
				if obj.Get(key) == nil {
					obj.Set(key, val.Clone())
				}
			}
		}
	}
	return obj, nil
}

var (
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

func fromScalar(n *yaml.Node) (*jdoc.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return jdoc.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return jdoc.Bool(b), nil
	case "!!int":
		var z int64
		if err := n.Decode(&z); err == nil {
			return jdoc.Int(z), nil
		}
		w, ok := new(big.Int).SetString(strings.ReplaceAll(n.Value, "_", ""), 0)
		if !ok {
			return nil, fmt.Errorf("at %d:%d: invalid integer %q", n.Line, n.Column, n.Value)
		} else if w.Cmp(minInt128) < 0 || w.Cmp(maxInt128) > 0 {
			return nil, fmt.Errorf("at %d:%d: %w", n.Line, n.Column,
				&strconv.NumError{Func: "ParseInt", Num: n.Value, Err: strconv.ErrRange})
		}
		return jdoc.Int128(w), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return jdoc.Float(f), nil
	}
	return jdoc.String(n.Value), nil
}

// ToYAML renders v as a YAML document. Object members are written in key
// order.
func ToYAML(v *jdoc.Value) ([]byte, error) { return yaml.Marshal(toNode(v)) }

func toNode(v *jdoc.Value) *yaml.Node {
	scalar := func(tag, text string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
	}
	switch v.Kind() {
	case jdoc.BoolKind:
		b, _ := v.AsBool()
		return scalar("!!bool", strconv.FormatBool(b))
	case jdoc.IntegerKind:
		z, _ := v.AsBigInt()
		return scalar("!!int", z.String())
	case jdoc.FloatKind:
		f, _ := v.AsFloat()
		return scalar("!!float", formatFloat(f))
	case jdoc.StringKind:
		s, _ := v.AsString()
		return scalar("!!str", s)
	case jdoc.ArrayKind:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for elt := range v.Elements() {
			seq.Content = append(seq.Content, toNode(elt))
		}
		return seq
	case jdoc.ObjectKind:
		obj := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for key, val := range v.Members() {
			obj.Content = append(obj.Content, scalar("!!str", key), toNode(val))
		}
		return obj
	}
	return scalar("!!null", "null")
}

// formatFloat renders f so that YAML resolves it as a float.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
