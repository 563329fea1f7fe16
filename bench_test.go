package jdoc_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jdoc"
)

// benchInput returns a stream of n JSON objects of moderate complexity.
func benchInput(n int) []byte {
	var buf bytes.Buffer
	for i := range n {
		fmt.Fprintf(&buf, `{"id": %d, "name": "item é %d", "score": %d.%02d, `+
			`"tags": ["alpha", "beta", "gamma"], "active": %v, "parent": null, `+
			`"dims": {"w": %d, "h": %d, "label": "a\tb\nc"}}`+"\n",
			i, i, i%100, i%97, i%2 == 0, i*3, i*7)
	}
	return buf.Bytes()
}

func BenchmarkDecoder(b *testing.B) {
	input := benchInput(2000)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Std", func(b *testing.B) {
		for b.Loop() {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				var v any
				if err := dec.Decode(&v); err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Decoder", func(b *testing.B) {
		for b.Loop() {
			dec := jdoc.NewDecoder(bytes.NewReader(input))
			for range dec.All() {
			}
			if err := dec.Err(); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("ParseAll", func(b *testing.B) {
		text := string(input)
		for b.Loop() {
			if _, err := jdoc.ParseAll(text); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}

func BenchmarkString(b *testing.B) {
	vs, err := jdoc.ParseAll(string(benchInput(500)))
	if err != nil {
		b.Fatalf("Parse input: %v", err)
	}
	v := jdoc.Array(vs...)
	var buf []byte
	for b.Loop() {
		buf = v.AppendJSON(buf[:0])
	}
}

func BenchmarkApply(b *testing.B) {
	lhs, err := jdoc.Parse(`{"a": {"x": 1, "y": [1, 2, 3]}, "b": "text"}`)
	if err != nil {
		b.Fatalf("Parse: %v", err)
	}
	rhs, err := jdoc.Parse(`{"a": {"y": [4], "z": true}, "c": 2.5}`)
	if err != nil {
		b.Fatalf("Parse: %v", err)
	}
	for _, op := range []jdoc.Op{jdoc.OpAdd, jdoc.OpMul} {
		b.Run(op.String(), func(b *testing.B) {
			for b.Loop() {
				jdoc.Apply(op, lhs, rhs)
			}
		})
	}
	b.Run("Repeat", func(b *testing.B) {
		s, n := jdoc.String(strings.Repeat("x", 16)), jdoc.Int(64)
		for b.Loop() {
			jdoc.Apply(jdoc.OpMul, s, n)
		}
	})
}
