// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape implements the escaping of string content for display as
// quoted JSON strings.
package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote returns a copy of src enclosed in quotation marks, with characters
// escaped as needed for inclusion in a JSON string.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len()+2)
	buf = append(buf, '"')
	for src.Len() > 0 {
		r, n := mem.DecodeRune(src)
		buf = AppendRune(buf, r)
		src = src.SliceFrom(n)
	}
	return append(buf, '"')
}

// AppendRune appends the escaped form of r to buf, and returns the updated
// slice. Characters that need no escape are appended in UTF-8.
func AppendRune(buf []byte, r rune) []byte {
	if r < utf8.RuneSelf {
		if r < ' ' {
			if b := controlEsc[r]; b != 0 {
				return append(buf, '\\', b)
			}
			return AppendUnit(buf, uint16(r))
		} else if r == '\\' || r == '"' {
			return append(buf, '\\', byte(r))
		}
		return append(buf, byte(r))
	}

	switch r {
	case utf8.RuneError, '\u2028', '\u2029':
		return AppendUnit(buf, uint16(r))
	}
	return utf8.AppendRune(buf, r)
}

// AppendUnit appends a \uXXXX escape for the UTF-16 code unit u to buf, and
// returns the updated slice.
func AppendUnit(buf []byte, u uint16) []byte {
	return append(buf, '\\', 'u',
		hexDigit[u>>12], hexDigit[(u>>8)&15], hexDigit[(u>>4)&15], hexDigit[u&15])
}
