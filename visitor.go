// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jlex

// A Visitor receives events from a Lexer describing the structure and content
// of its input. Begin and End methods bracket the span of each recognized
// production; content methods (Codepoint, Digit) are called in input order
// within their span.
//
// End methods are called only for spans that were fully recognized, so when
// lexing stops on an error the visitor may see a Begin without its End. The
// exception is the number productions, which end at the first code that is
// not part of the number, including the end of input or an error.
//
// Implementations that need only some events can embed NopVisitor.
type Visitor interface {
	// BeginText and EndText bracket each call of Lex, whatever its outcome.
	BeginText()
	EndText()

	// BOM reports a byte order mark (U+FEFF) skipped at the start of the text.
	BOM()

	// BeginWhitespace and EndWhitespace bracket a non-empty run of
	// insignificant whitespace.
	BeginWhitespace()
	EndWhitespace()

	// BeginLiteral and EndLiteral bracket one of true, false, or null.
	BeginLiteral(lit Literal)
	EndLiteral(lit Literal)

	// BeginString and EndString bracket a quoted string. Codepoint reports each
	// character of the string content, with escapes other than \u decoded.
	BeginString()
	Codepoint(r rune)
	EndString()

	// BeginArray and EndArray bracket an array.
	BeginArray()
	EndArray()

	// BeginObject and EndObject bracket an object.
	BeginObject()
	EndObject()

	// BeginMember and EndMember bracket one "name": value member of an object.
	// The member name is reported as a string.
	BeginMember()
	EndMember()

	// BeginInt and EndInt bracket the integer part of a number, including its
	// sign, which is either NoSign or Minus.
	BeginInt(sign Sign)
	EndInt()

	// BeginFrac and EndFrac bracket the fraction part of a number, following
	// the decimal point.
	BeginFrac()
	EndFrac()

	// BeginExp and EndExp bracket the exponent of a number, following the
	// exponent marker. Leading zeroes are permitted in an exponent.
	BeginExp(sign Sign)
	EndExp()

	// Digit reports each decimal digit of a number, as an ASCII byte.
	Digit(d byte)
}

// EscapeVisitor is an optional interface that a Visitor may implement to
// receive \uXXXX escapes from string content. The lexer checks only that the
// escape has four hex digits; it does not combine surrogate pairs. If the
// Visitor does not implement this interface, \u escapes are validated and
// otherwise discarded.
type EscapeVisitor interface {
	// UnicodeEscape reports the UTF-16 code unit of a \u escape.
	UnicodeEscape(unit uint16)
}

// NopVisitor implements Visitor with methods that do nothing. Lexing with a
// NopVisitor validates the syntax of its input.
type NopVisitor struct{}

func (NopVisitor) BeginText()           {}
func (NopVisitor) EndText()             {}
func (NopVisitor) BOM()                 {}
func (NopVisitor) BeginWhitespace()     {}
func (NopVisitor) EndWhitespace()       {}
func (NopVisitor) BeginLiteral(Literal) {}
func (NopVisitor) EndLiteral(Literal)   {}
func (NopVisitor) BeginString()         {}
func (NopVisitor) Codepoint(rune)       {}
func (NopVisitor) EndString()           {}
func (NopVisitor) BeginArray()          {}
func (NopVisitor) EndArray()            {}
func (NopVisitor) BeginObject()         {}
func (NopVisitor) EndObject()           {}
func (NopVisitor) BeginMember()         {}
func (NopVisitor) EndMember()           {}
func (NopVisitor) BeginInt(Sign)        {}
func (NopVisitor) EndInt()              {}
func (NopVisitor) BeginFrac()           {}
func (NopVisitor) EndFrac()             {}
func (NopVisitor) BeginExp(Sign)        {}
func (NopVisitor) EndExp()              {}
func (NopVisitor) Digit(byte)           {}

// Literal identifies one of the JSON constants.
type Literal byte

// Constants defining the valid Literal values.
const (
	True Literal = iota
	False
	Null
)

var literalStr = [...]string{True: "true", False: "false", Null: "null"}

// String returns the JSON text of the literal.
func (l Literal) String() string {
	if int(l) >= len(literalStr) {
		return "invalid literal"
	}
	return literalStr[l]
}

// Sign identifies the sign of the integer part or exponent of a number.
type Sign byte

// Constants defining the valid Sign values.
const (
	NoSign Sign = iota
	Plus        // only in exponents
	Minus
)

// String returns the JSON text of the sign, which is empty for NoSign.
func (s Sign) String() string {
	switch s {
	case Plus:
		return "+"
	case Minus:
		return "-"
	}
	return ""
}
