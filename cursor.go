// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jlex

import (
	"bufio"
	"io"
	"unicode/utf8"

	"go4.org/mem"
)

// A Cursor reads Unicode scalar values from UTF-8 input, with one codepoint of
// lookahead. A Cursor owns its read position; it must not be shared among
// concurrent lexers.
//
// The position of a Cursor never moves backward. Once the input is exhausted,
// every further read reports EOF.
type Cursor struct {
	src mem.RO        // in-memory input, if br == nil
	pos int           // offset in src of the next unread byte
	br  *bufio.Reader // buffered input, or nil
	err error         // sticky read error

	pend    Code // lookahead, valid if hasPend
	psize   int  // encoded size in bytes of pend
	hasPend bool

	cur  Pos // position of the next unread byte
	mark Pos // position of the most recently decoded code
}

// NewCursor constructs a Cursor that consumes input from r. The input is
// buffered; if r is already a *bufio.Reader it is used directly.
func NewCursor(r io.Reader) *Cursor {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Cursor{br: br, cur: startPos}
}

// NewCursorString constructs a Cursor that reads from s without copying.
func NewCursorString(s string) *Cursor { return &Cursor{src: mem.S(s), cur: startPos} }

// NewCursorBytes constructs a Cursor that reads from b without copying. The
// caller must not modify b while the cursor is in use.
func NewCursorBytes(b []byte) *Cursor { return &Cursor{src: mem.B(b), cur: startPos} }

var startPos = Pos{LineCol: LineCol{Line: 1}}

// Peek returns the next code of the input without consuming it.
//
// If the next code is a scalar value, it remains pending and will be reported
// again by the next call of Peek or Next. If it is an error (EOF,
// TruncatedSequence, or InvalidByte), the bytes that produced it are consumed
// when it is reported, so that the following read resumes after them.
func (c *Cursor) Peek() Code {
	if c.hasPend {
		return c.pend
	}
	c.mark = c.cur
	code, n := Decode(c.window())
	if code.v < 0 {
		c.consume(code, n)
		return code
	}
	c.pend, c.psize, c.hasPend = code, n, true
	return code
}

// Next reads and consumes the next code of the input.
func (c *Cursor) Next() Code {
	code := c.Peek()
	c.advance()
	return code
}

// Pos returns the position of the next unread byte of the input. If a scalar
// value is pending, this is the position of its first byte.
func (c *Cursor) Pos() Pos { return c.cur }

// Mark returns the position of the first byte of the most recently decoded
// code, whether or not it has been consumed.
func (c *Cursor) Mark() Pos { return c.mark }

// Err returns the error that ended a read from the underlying reader, if any.
// Once a read fails, the cursor reports EOF. End of input is not an error.
func (c *Cursor) Err() error { return c.err }

// advance consumes the pending scalar value, if any.
func (c *Cursor) advance() {
	if c.hasPend {
		c.hasPend = false
		c.consume(c.pend, c.psize)
	}
}

func (c *Cursor) consume(code Code, n int) {
	if n == 0 {
		return
	}
	if c.br != nil {
		c.br.Discard(n) // the bytes are already buffered by window
	} else {
		c.pos += n
	}
	c.cur.Offset += int64(n)
	if code.v == '\n' {
		c.cur.Line++
		c.cur.Column = 0
	} else {
		c.cur.Column += n
	}
}

// window returns a view of at least the next utf8.UTFMax bytes of input, or
// all the remaining input if it is shorter.
func (c *Cursor) window() mem.RO {
	if c.br == nil {
		return c.src.SliceFrom(c.pos)
	} else if c.err != nil {
		return mem.RO{}
	}
	buf, err := c.br.Peek(utf8.UTFMax)
	if err != nil && err != io.EOF {
		c.err = err
		return mem.RO{}
	}
	return mem.B(buf)
}
