// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jlex

import "fmt"

// An ErrorKind identifies the reason a Code is not a scalar value.  The
// values of ErrorKind are disjoint, so that the kind reported at the top level
// identifies the earliest cause of a failure. An ErrorKind satisfies the
// error interface and can be matched with errors.Is.
type ErrorKind int8

// Constants defining the valid ErrorKind values. The zero value NoError is the
// kind of every scalar Code.
const (
	NoError ErrorKind = 0

	// Reported by the decoder.
	EOF               ErrorKind = 1 // end of input
	TruncatedSequence ErrorKind = 2 // input ended inside a multi-byte sequence
	InvalidByte       ErrorKind = 3 // ill-formed UTF-8

	// Reported by the lexer.
	BadValue             ErrorKind = 10 // no value may start here
	BadLiteral           ErrorKind = 11 // mismatch inside true, false, or null
	BadMember            ErrorKind = 12 // expected '"' to begin an object member
	MissingNameSeparator ErrorKind = 13 // expected ':' after a member name
	MissingObjectEnd     ErrorKind = 14 // expected '}' or ','
	MissingArrayEnd      ErrorKind = 15 // expected ']' or ','
	BadHexDigit          ErrorKind = 16 // non-hex digit in a \u escape
	BadDigit             ErrorKind = 17 // expected at least one digit
	BadEscape            ErrorKind = 18 // unknown character after '\'
	ControlCharacter     ErrorKind = 19 // unescaped control character in a string
	DepthExceeded        ErrorKind = 20 // nesting exceeds the configured limit
)

var kindStr = [...]string{
	NoError:              "no error",
	EOF:                  "end of input",
	TruncatedSequence:    "truncated UTF-8 sequence",
	InvalidByte:          "invalid UTF-8 byte",
	BadValue:             "invalid value",
	BadLiteral:           "invalid literal",
	BadMember:            "expected string to begin object member",
	MissingNameSeparator: `expected ":" after member name`,
	MissingObjectEnd:     `expected "}" or ","`,
	MissingArrayEnd:      `expected "]" or ","`,
	BadHexDigit:          "invalid hex digit in Unicode escape",
	BadDigit:             "expected digit",
	BadEscape:            "invalid escape character",
	ControlCharacter:     "unescaped control character in string",
	DepthExceeded:        "nesting depth exceeded",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindStr) || kindStr[k] == "" {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return kindStr[k]
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// Code returns the Code that reports k. It returns a Code for U+0000 if k ==
// NoError.
func (k ErrorKind) Code() Code { return Code{v: -int32(k)} }

// A Code is the result of decoding or lexing: either a Unicode scalar value,
// or an ErrorKind explaining why no value is available. The zero Code is the
// scalar U+0000.
type Code struct {
	v int32 // >= 0 scalar; < 0 negated ErrorKind
}

var (
	codeEOF       = EOF.Code()
	codeTruncated = TruncatedSequence.Code()
	codeInvalid   = InvalidByte.Code()
)

// Rune returns the scalar value of c and true, or -1 and false if c reports an
// error.
func (c Code) Rune() (rune, bool) {
	if c.v < 0 {
		return -1, false
	}
	return c.v, true
}

// IsRune reports whether c is a scalar value.
func (c Code) IsRune() bool { return c.v >= 0 }

// IsEOF reports whether c reports the end of input.
func (c Code) IsEOF() bool { return c == codeEOF }

// Kind returns the error kind of c, or NoError if c is a scalar value.
func (c Code) Kind() ErrorKind {
	if c.v >= 0 {
		return NoError
	}
	return ErrorKind(-c.v)
}

// Err returns the error kind of c as an error, or nil if c is a scalar value.
func (c Code) Err() error {
	if c.v >= 0 {
		return nil
	}
	return ErrorKind(-c.v)
}

// Int returns c as a single signed integer: a scalar value is non-negative,
// and an error kind k is reported as -k.
func (c Code) Int() int { return int(c.v) }

func (c Code) String() string {
	if c.v >= 0 {
		return fmt.Sprintf("%U %q", c.v, c.v)
	}
	return ErrorKind(-c.v).String()
}
