// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jlex

import "go4.org/mem"

// Decode decodes the first UTF-8 encoded scalar value in src, and reports the
// number of bytes consumed. It never allocates.
//
// If src is empty, Decode returns EOF and 0.
//
// If src ends before a multi-byte sequence is complete, Decode returns
// TruncatedSequence and src.Len(), so that a subsequent decode of the
// remaining input reports EOF.
//
// If src begins with an ill-formed sequence, Decode returns InvalidByte and
// the length of the prefix that was examined and rejected: 1 for a byte that
// cannot begin a sequence or is followed by a non-continuation byte; 2 for a
// lead byte whose second byte is outside its permitted range (which excludes
// overlong forms, surrogates, and values above U+10FFFF); and 2 or 3 when a
// later continuation byte is malformed. The malformed continuation byte itself
// is never consumed.
func Decode(src mem.RO) (Code, int) {
	n := src.Len()
	if n == 0 {
		return codeEOF, 0
	}

	// 00..7F
	a := rune(src.At(0))
	if a < 0x80 {
		return Code{v: a}, 1
	}
	if a < 0xC2 || a > 0xF4 {
		return codeInvalid, 1
	}

	if n < 2 {
		return codeTruncated, n
	}
	b := rune(src.At(1)) ^ 0x80
	if b>>6 != 0 {
		return codeInvalid, 1
	}
	cp := a<<6 ^ b
	if a < 0xE0 {
		// C2..DF     80..BF
		return Code{v: cp ^ 0xC0<<6}, 2
	}

	switch a {
	case 0xE0: // E0  A0..BF  80..BF
		if b < 0x20 {
			return codeInvalid, 2
		}
	case 0xED: // ED  80..9F  80..BF
		if b >= 0x20 {
			return codeInvalid, 2
		}
	case 0xF0: // F0  90..BF  80..BF  80..BF
		if b < 0x10 {
			return codeInvalid, 2
		}
	case 0xF4: // F4  80..8F  80..BF  80..BF
		if b >= 0x10 {
			return codeInvalid, 2
		}
	}

	if n < 3 {
		return codeTruncated, n
	}
	c := rune(src.At(2)) ^ 0x80
	if c>>6 != 0 {
		return codeInvalid, 2
	}
	cp = cp<<6 ^ c
	if a < 0xF0 {
		// E0..EF     80..BF     80..BF  (narrowed above)
		return Code{v: cp ^ 0xE0<<12}, 3
	}

	if n < 4 {
		return codeTruncated, n
	}
	d := rune(src.At(3)) ^ 0x80
	if d>>6 != 0 {
		return codeInvalid, 3
	}
	cp = cp<<6 ^ d
	// F0..F4     80..BF     80..BF     80..BF  (narrowed above)
	return Code{v: cp ^ 0xF0<<18}, 4
}

// DecodeString is a convenience wrapper for Decode on a string.
func DecodeString(s string) (Code, int) { return Decode(mem.S(s)) }

// DecodeBytes is a convenience wrapper for Decode on a byte slice.
func DecodeBytes(b []byte) (Code, int) { return Decode(mem.B(b)) }
