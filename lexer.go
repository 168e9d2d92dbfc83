// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jlex

import "go4.org/mem"

const byteOrderMark = 0xFEFF

// A Lexer recognizes JSON text (RFC 8259) from a Cursor and reports its
// structure to a Visitor. It does not construct any representation of the
// input; it retains only a stack recording the kind of each open container.
type Lexer struct {
	cur      *Cursor
	v        Visitor
	esc      EscapeVisitor // v, if it implements EscapeVisitor
	stk      []frame
	maxDepth int
	started  bool // the current value has begun
	done     bool // the current value is complete
}

type frame byte

const (
	inArray frame = iota
	inObject
)

// NewLexer constructs a Lexer that reads from cur and reports events to v.
func NewLexer(cur *Cursor, v Visitor) *Lexer {
	lx := new(Lexer)
	lx.Reset(cur, v)
	return lx
}

// Reset discards the state of lx and reconfigures it to read from cur and
// report events to v. The depth limit is preserved.
func (lx *Lexer) Reset(cur *Cursor, v Visitor) {
	esc, _ := v.(EscapeVisitor)
	*lx = Lexer{cur: cur, v: v, esc: esc, stk: lx.stk[:0], maxDepth: lx.maxDepth}
}

// LimitDepth limits the nesting depth of arrays and objects to n. If n <= 0
// there is no limit. Exceeding the limit reports DepthExceeded.
func (lx *Lexer) LimitDepth(n int) { lx.maxDepth = n }

// Done reports whether the most recent call of Lex recognized a complete
// value.  Lex reports EOF both for a complete value at the end of input and
// for a value cut off by the end of input; Done distinguishes these cases.
func (lx *Lexer) Done() bool { return lx.done }

// Lex is a convenience function that lexes a single JSON text from cur with a
// new Lexer reporting to v.
func Lex(cur *Cursor, v Visitor) Code { return NewLexer(cur, v).Lex() }

// Lex recognizes one JSON value surrounded by whitespace, and returns the code
// following it. A byte order mark is skipped only at the start of the input.
//
// If the input holds exactly one value, Lex returns EOF. If the value is
// followed by other input, Lex returns the first scalar value after the
// trailing whitespace; that value is not consumed, so that a further call of
// Lex will begin with it. Once the input is exhausted, Lex returns EOF.
//
// Otherwise, Lex returns the kind of the first error found. An error reported
// by the Cursor is returned unchanged. If the error is in the grammar, the
// offending scalar value is consumed.
func (lx *Lexer) Lex() Code {
	lx.stk = lx.stk[:0]
	lx.started, lx.done = false, false
	lx.v.BeginText()
	c := lx.text()
	lx.v.EndText()
	return c
}

func (lx *Lexer) text() Code {
	c := lx.cur.Peek()
	if c.v == byteOrderMark && lx.cur.Pos().Offset == 0 {
		lx.v.BOM()
		c = lx.next()
	}
	c = lx.whitespace(c)

value:
	for {
		// Precondition: c is not whitespace, and a value is required.
		if c.v < 0 {
			return c
		}
		lx.started = true
		ok := true
		switch c.v {
		case '{':
			if !lx.push(inObject) {
				return lx.fail(DepthExceeded)
			}
			lx.v.BeginObject()
			if c = lx.whitespace(lx.next()); c.v == '}' {
				lx.pop()
				lx.v.EndObject()
				c = lx.next()
				break // done with this value
			}
			if c = lx.member(c); c.v < 0 {
				return c
			}
			continue value

		case '[':
			if !lx.push(inArray) {
				return lx.fail(DepthExceeded)
			}
			lx.v.BeginArray()
			if c = lx.whitespace(lx.next()); c.v == ']' {
				lx.pop()
				lx.v.EndArray()
				c = lx.next()
				break
			}
			continue value

		case '"':
			c, ok = lx.quoted()
		case 't':
			c, ok = lx.literal(True)
		case 'f':
			c, ok = lx.literal(False)
		case 'n':
			c, ok = lx.literal(Null)
		default:
			if c.v != '-' && !isDigit(c.v) {
				return lx.fail(BadValue)
			}
			c, ok = lx.number(c)
		}
		if !ok {
			return c
		}

		// A value is complete. Close any containers it completes, and find
		// where the next value (if any) begins.
		for {
			c = lx.whitespace(c)
			if len(lx.stk) == 0 {
				lx.done = true
				return c
			} else if c.v < 0 {
				return c
			}

			if lx.stk[len(lx.stk)-1] == inArray {
				switch c.v {
				case ',':
					c = lx.whitespace(lx.next())
					continue value
				case ']':
					lx.pop()
					lx.v.EndArray()
					c = lx.next()
				default:
					return lx.fail(MissingArrayEnd)
				}
				continue
			}

			switch c.v {
			case ',':
				lx.v.EndMember()
				if c = lx.member(lx.whitespace(lx.next())); c.v < 0 {
					return c
				}
				continue value
			case '}':
				lx.v.EndMember()
				lx.pop()
				lx.v.EndObject()
				c = lx.next()
			default:
				return lx.fail(MissingObjectEnd)
			}
		}
	}
}

// member recognizes the name and separator of an object member beginning at
// c, and returns the code at which its value must begin.
func (lx *Lexer) member(c Code) Code {
	if c.v < 0 {
		return c
	} else if c.v != '"' {
		return lx.fail(BadMember)
	}
	lx.v.BeginMember()
	c, _ = lx.quoted()
	if c = lx.whitespace(c); c.v < 0 {
		return c
	} else if c.v != ':' {
		return lx.fail(MissingNameSeparator)
	}
	return lx.whitespace(lx.next())
}

// whitespace skips whitespace beginning at c, and returns the first code that
// is not whitespace.
func (lx *Lexer) whitespace(c Code) Code {
	if !isSpace(c.v) {
		return c
	}
	lx.v.BeginWhitespace()
	for isSpace(c.v) {
		c = lx.next()
	}
	lx.v.EndWhitespace()
	return c
}

var literalText = [...]mem.RO{True: mem.S("true"), False: mem.S("false"), Null: mem.S("null")}

// literal recognizes the remainder of lit, whose first letter is pending.
// It reports whether the literal is complete.
func (lx *Lexer) literal(lit Literal) (Code, bool) {
	lx.v.BeginLiteral(lit)
	want := literalText[lit].SliceFrom(1)
	c := lx.next()
	for i := 0; i < want.Len(); i++ {
		if c.v < 0 {
			return c, false
		} else if c.v != rune(want.At(i)) {
			return lx.fail(BadLiteral), false
		}
		c = lx.next()
	}
	lx.v.EndLiteral(lit)
	return c, true
}

// quoted recognizes a string, whose opening quotation mark is pending. It
// reports whether the string is complete.
func (lx *Lexer) quoted() (Code, bool) {
	lx.v.BeginString()
	for {
		c := lx.next()
		switch {
		case c.v < 0:
			return c, false
		case c.v == '"':
			lx.v.EndString()
			return lx.next(), true
		case c.v == '\\':
			if c = lx.escape(); c.v < 0 {
				return c, false
			}
		case c.v < ' ':
			return lx.fail(ControlCharacter), false
		default:
			lx.v.Codepoint(c.v)
		}
	}
}

// escape recognizes an escape sequence whose backslash is pending. It leaves
// the last code of the sequence pending.
func (lx *Lexer) escape() Code {
	c := lx.next()
	switch c.v {
	case '"', '\\', '/':
		lx.v.Codepoint(c.v)
	case 'b':
		lx.v.Codepoint('\b')
	case 'f':
		lx.v.Codepoint('\f')
	case 'n':
		lx.v.Codepoint('\n')
	case 'r':
		lx.v.Codepoint('\r')
	case 't':
		lx.v.Codepoint('\t')
	case 'u':
		var unit uint16
		for i := 0; i < 4; i++ {
			c = lx.next()
			d, ok := hexValue(c.v)
			if c.v < 0 {
				return c
			} else if !ok {
				return lx.fail(BadHexDigit)
			}
			unit = unit<<4 | d
		}
		if lx.esc != nil {
			lx.esc.UnicodeEscape(unit)
		}
	default:
		if c.v < 0 {
			return c
		}
		return lx.fail(BadEscape)
	}
	return c
}

// number recognizes a number whose first code (a sign or digit) is pending,
// and returns the first code following it. It reports whether the number is
// complete.
//
//	number = [ minus ] int [ frac ] [ exp ]
func (lx *Lexer) number(c Code) (Code, bool) {
	sign := NoSign
	if c.v == '-' {
		sign = Minus
		if c = lx.next(); c.v < 0 {
			return c, false
		} else if !isDigit(c.v) {
			return lx.fail(BadDigit), false
		}
	}

	// int = zero / ( digit1-9 *DIGIT )
	lx.v.BeginInt(sign)
	first := c.v
	lx.v.Digit(byte(first))
	c = lx.next()
	if first != '0' {
		for isDigit(c.v) {
			lx.v.Digit(byte(c.v))
			c = lx.next()
		}
	}
	lx.v.EndInt()

	// frac = decimal-point 1*DIGIT
	if c.v == '.' {
		lx.v.BeginFrac()
		var ok bool
		if c, ok = lx.digits(lx.next()); !ok {
			return c, false
		}
		lx.v.EndFrac()
	}

	// exp = e [ minus / plus ] 1*DIGIT
	if c.v == 'e' || c.v == 'E' {
		sign := NoSign
		switch c = lx.next(); c.v {
		case '-':
			sign = Minus
			c = lx.next()
		case '+':
			sign = Plus
			c = lx.next()
		}
		lx.v.BeginExp(sign)
		var ok bool
		if c, ok = lx.digits(c); !ok {
			return c, false
		}
		lx.v.EndExp()
	}
	return c, true
}

// digits recognizes one or more digits beginning at c. It reports false if
// c is not a digit.
func (lx *Lexer) digits(c Code) (Code, bool) {
	if c.v < 0 {
		return c, false
	} else if !isDigit(c.v) {
		return lx.fail(BadDigit), false
	}
	for isDigit(c.v) {
		lx.v.Digit(byte(c.v))
		c = lx.next()
	}
	return c, true
}

// next consumes the pending code and returns the one following it.
func (lx *Lexer) next() Code {
	lx.cur.advance()
	return lx.cur.Peek()
}

// fail consumes the pending code, and reports an error of kind k.
func (lx *Lexer) fail(k ErrorKind) Code {
	lx.cur.advance()
	return k.Code()
}

func (lx *Lexer) push(f frame) bool {
	if lx.maxDepth > 0 && len(lx.stk) >= lx.maxDepth {
		return false
	}
	lx.stk = append(lx.stk, f)
	return true
}

func (lx *Lexer) pop() { lx.stk = lx.stk[:len(lx.stk)-1] }

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }

func hexValue(ch rune) (uint16, bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return uint16(ch - '0'), true
	case 'a' <= ch && ch <= 'f':
		return uint16(ch - 'a' + 10), true
	case 'A' <= ch && ch <= 'F':
		return uint16(ch - 'A' + 10), true
	}
	return 0, false
}
