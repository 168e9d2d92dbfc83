// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jlex

import (
	"errors"
	"fmt"
	"io"
)

// ErrTrailingData is reported by Parse when a complete value is followed by
// input other than whitespace.
var ErrTrailingData = errors.New("unexpected data after JSON text")

// ParseOne lexes a single value from the front of the input and delivers
// events to the visitor until the value is complete or an error occurs. If no
// further value is available from the input, ParseOne returns io.EOF.
//
// A successful ParseOne leaves the input following the value pending, so that
// a stream of concatenated values may be consumed by repeated calls. In case
// of a syntax error, the returned error has type [*SyntaxError].
func (lx *Lexer) ParseOne() error {
	c := lx.Lex()
	switch {
	case lx.done && (c.IsRune() || c.IsEOF()):
		return lx.cur.Err()
	case c.IsEOF() && !lx.started:
		if err := lx.cur.Err(); err != nil {
			return err
		}
		return io.EOF
	case c.IsEOF():
		if err := lx.cur.Err(); err != nil {
			return err
		}
		return lx.syntaxError(io.ErrUnexpectedEOF, "unexpected end of input")
	}
	return lx.syntaxError(c.Kind(), "%v", c.Kind())
}

// Parse lexes exactly one value from the input, which must contain nothing
// else but whitespace, and delivers events to the visitor. In case of a syntax
// error, the returned error has type [*SyntaxError]. An input holding no value
// is reported as an error wrapping io.ErrUnexpectedEOF.
func (lx *Lexer) Parse() error {
	if err := lx.ParseOne(); err == io.EOF {
		return lx.syntaxError(io.ErrUnexpectedEOF, "no value in input")
	} else if err != nil {
		return err
	}
	if c := lx.cur.Peek(); c.IsRune() {
		return lx.syntaxError(ErrTrailingData, "%v", ErrTrailingData)
	}
	return nil
}

// Valid reports whether data is a single well-formed JSON text.
func Valid(data []byte) bool {
	return NewLexer(NewCursorBytes(data), NopVisitor{}).Parse() == nil
}

func (lx *Lexer) syntaxError(err error, msg string, args ...any) error {
	return &SyntaxError{
		Pos:     lx.cur.Mark(),
		Message: fmt.Sprintf(msg, args...),
		err:     err,
	}
}

// SyntaxError is the concrete type of errors reported by the parsing methods
// of a Lexer. It wraps the ErrorKind of the failure, or io.ErrUnexpectedEOF if
// the input ended inside a value, or ErrTrailingData.
type SyntaxError struct {
	Pos     Pos // the position of the code that caused the error
	Message string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Pos.LineCol, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
