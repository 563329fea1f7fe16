// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"errors"
	"io"
	"iter"
	"log/slog"

	"go4.org/mem"
)

const (
	// DefaultBlockSize is the default size in bytes of each read a Decoder
	// issues to its underlying reader.
	DefaultBlockSize = 1024

	// DefaultMaxBuffer is the default limit on the number of bytes a Decoder
	// will buffer while looking for a complete value.
	DefaultMaxBuffer = 64 << 20
)

// A Decoder reads a stream of whitespace-separated JSON values from an
// io.Reader. Input is read in blocks and buffered until a complete value is
// available, so a value may be split arbitrarily across reads.
type Decoder struct {
	r     io.Reader
	buf   []byte // buffered input not yet consumed
	stage []byte // the most recent block read
	eof   bool   // the reader has reported io.EOF
	err   error  // sticky error

	// Location in the stream of buf[0].
	base      int
	line, col int

	span      Span
	maxBuffer int
	maxDepth  int
	log       *slog.Logger
}

// NewDecoder constructs a new Decoder that consumes input from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:         r,
		stage:     make([]byte, DefaultBlockSize),
		line:      startPos.Line,
		col:       startPos.Column,
		maxBuffer: DefaultMaxBuffer,
		maxDepth:  MaxDepth,
		log:       slog.New(slog.DiscardHandler),
	}
}

// SetBlockSize sets the size in bytes of each read d issues to its reader.
// If n <= 0, DefaultBlockSize is used.
func (d *Decoder) SetBlockSize(n int) *Decoder {
	if n <= 0 {
		n = DefaultBlockSize
	}
	d.stage = make([]byte, n)
	return d
}

// SetMaxBuffer sets the limit on the number of bytes d will buffer while
// looking for a complete value. If n <= 0, DefaultMaxBuffer is used.
func (d *Decoder) SetMaxBuffer(n int) *Decoder {
	if n <= 0 {
		n = DefaultMaxBuffer
	}
	d.maxBuffer = n
	return d
}

// SetMaxDepth sets the limit on the nesting depth of values decoded by d.
// If n <= 0, nesting depth is not limited.
func (d *Decoder) SetMaxDepth(n int) *Decoder { d.maxDepth = n; return d }

// SetLogger sets the logger to which d writes debug logs. If lg == nil, logs
// are discarded.
func (d *Decoder) SetLogger(lg *slog.Logger) *Decoder {
	if lg == nil {
		lg = slog.New(slog.DiscardHandler)
	}
	d.log = lg
	return d
}

// Span reports the location in the stream of the value most recently
// returned by Next.
func (d *Decoder) Span() Span { return d.span }

// Next decodes and returns the next value from the stream. At the end of the
// input, Next returns nil, io.EOF.
//
// If the input ends partway through a value, Next reports a *SyntaxError
// wrapping io.ErrUnexpectedEOF. A syntax error or a read error other than
// io.EOF ends the stream, and is reported by each subsequent call.
func (d *Decoder) Next() (*Value, error) {
	if d.err != nil {
		return nil, d.err
	}
	for {
		p := newParser(mem.B(d.buf), d.maxDepth)
		p.pos.reset(0, d.line, d.col)
		p.pos.skipSpace(p.text)
		start := p.pos.Offset

		if p.atEOF() {
			if d.eof {
				d.drain(p.pos)
				d.log.Debug("decoder: end of input", "offset", d.base)
				return nil, io.EOF
			}
		} else if v, err := p.parse(); err == nil {
			// A number that runs to the end of the buffer may continue in the
			// next block, so it is not complete until more input or EOF.
			if d.eof || !isNumber(v) || p.pos.Offset < len(d.buf) {
				d.span = Span{Pos: d.base + start, End: d.base + p.pos.Offset}
				d.drain(p.pos)
				return v, nil
			}
		} else if d.eof || !d.incomplete(err) {
			d.err = d.rebase(err)
			d.log.Debug("decoder: parse failed", "offset", d.base, "error", d.err)
			return nil, d.err
		}

		// Reaching here, the buffer does not yet hold a complete value.
		if err := d.fill(); err != nil {
			d.err = err
			return nil, err
		}
	}
}

// All returns a sequence of the values remaining in the stream. The sequence
// ends at the end of the input or at the first error; use Err to check which.
func (d *Decoder) All() iter.Seq[*Value] {
	return func(yield func(*Value) bool) {
		for {
			v, err := d.Next()
			if err != nil || !yield(v) {
				return
			}
		}
	}
}

// Err reports the error that ended the stream, or nil if the stream ended at
// the end of the input or has not ended.
func (d *Decoder) Err() error { return d.err }

// incomplete reports whether err could be resolved by reading more input.
func (d *Decoder) incomplete(err error) bool {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var ne *NumberError
	return errors.As(err, &ne) && ne.Pos.Offset+len(ne.Text) == len(d.buf)
}

// fill reads the next block of input into the buffer.
func (d *Decoder) fill() error {
	if len(d.buf) >= d.maxBuffer {
		d.log.Debug("decoder: buffer limit exceeded", "buffered", len(d.buf), "limit", d.maxBuffer)
		return ErrInputTooLarge
	}
	for range maxEmptyReads {
		nr, err := d.r.Read(d.stage)
		d.buf = append(d.buf, d.stage[:nr]...)
		if nr > 0 {
			d.log.Debug("decoder: read block", "bytes", nr, "buffered", len(d.buf))
		}
		if err == io.EOF {
			d.eof = true
			return nil
		} else if err != nil {
			d.log.Debug("decoder: read failed", "error", err)
			return err
		} else if nr > 0 {
			return nil
		}
	}
	d.log.Debug("decoder: no progress", "reads", maxEmptyReads)
	return io.ErrNoProgress
}

// maxEmptyReads is the number of consecutive empty reads fill tolerates
// before it gives up on the reader.
const maxEmptyReads = 100

// drain discards the buffered input before pos, which becomes the start of
// the buffer.
func (d *Decoder) drain(pos Pos) {
	n := copy(d.buf, d.buf[pos.Offset:])
	d.buf = d.buf[:n]
	d.base += pos.Offset
	d.line, d.col = pos.Line, pos.Column
}

// rebase converts the buffer offset of a parse error into a stream offset.
func (d *Decoder) rebase(err error) error {
	var se *SyntaxError
	var ne *NumberError
	if errors.As(err, &se) {
		se.Pos.Offset += d.base
	} else if errors.As(err, &ne) {
		ne.Pos.Offset += d.base
	}
	return err
}
