// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jlex implements a streaming UTF-8 decoder and a JSON recognizer.
//
// # Decoding
//
// The Decode function decodes a single Unicode scalar value from the front of
// a UTF-8 input, rejecting overlong forms, surrogates, and values beyond
// U+10FFFF. It reports its result as a Code, which is either a scalar value or
// an ErrorKind:
//
//	c, n := jlex.DecodeString("\xe4\xba\x8c")
//	if r, ok := c.Rune(); ok {
//	   log.Printf("Decoded %q from %d bytes", r, n)
//	}
//
// A Cursor wraps a string, byte slice, or io.Reader and reads one code at a
// time, with one code of lookahead:
//
//	cur := jlex.NewCursor(os.Stdin)
//	for c := cur.Next(); c.IsRune(); c = cur.Next() {
//	   // ...
//	}
//
// # Lexing
//
// The Lexer type recognizes the JSON grammar (RFC 8259) over the codes of a
// Cursor. It does not construct a representation of the input. Instead, it
// calls the methods of a Visitor to report each construct as it is
// recognized:
//
//	JSON syntax    | Methods
//	-------------- | ------------------------------------------------
//	text           | BeginText, BOM, EndText
//	whitespace     | BeginWhitespace, EndWhitespace
//	object         | BeginObject, EndObject
//	member         | BeginMember, EndMember
//	array          | BeginArray, EndArray
//	string         | BeginString, Codepoint, EndString
//	number         | BeginInt, BeginFrac, BeginExp, Digit, End...
//	true/false/null| BeginLiteral, EndLiteral
//
// To recognize a single JSON text, construct a Lexer and call its Lex method:
//
//	lx := jlex.NewLexer(jlex.NewCursorString(input), visitor)
//	if c := lx.Lex(); !c.IsEOF() {
//	   log.Printf("Lex stopped at %v", c)
//	}
//
// Lex reports its outcome as a single Code: EOF if the input held a value
// and nothing more, the first scalar value following the value, or the kind
// of the first error found. Errors are never recovered or corrected.
//
// The Parse and ParseOne methods of a Lexer wrap Lex to report errors of
// concrete type *jlex.SyntaxError, including the position of the failure.
//
// # Visitors
//
// A Visitor may embed NopVisitor to receive only the events it needs.
// Lexing with a plain NopVisitor validates the input:
//
//	ok := jlex.Valid(data)
//
// The diag package provides a Visitor that prints a trace of the events, and
// the ast package provides a Visitor that constructs a syntax tree.
package jlex
