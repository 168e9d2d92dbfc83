// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package diag implements a jlex.Visitor that prints a trace of the events it
// receives, for debugging and diagnostics.
package diag

import (
	"io"

	"github.com/creachadair/jlex"
	"github.com/creachadair/jlex/internal/escape"
)

// A Printer is a jlex.Visitor that writes one line of text to a writer for
// each structural event, indented to show nesting. Strings are collected and
// printed as a single quoted value, with \u escapes shown as written. The
// parts of a number are printed as separate Int, Frac, and Exp lines.
// Whitespace is not reported.
//
// A trace for the input {"a": [1.5, true]} is:
//
//	Object {
//	  Member "a"
//	    Array [
//	      Int 1
//	      Frac 5
//	      Literal true
//	    ]
//	}
type Printer struct {
	w     io.Writer
	depth int
	key   bool   // the next string is a member name
	str   []byte // quoted content of the current string
	num   []byte // text of the current number part
	line  []byte
	err   error
}

// NewPrinter constructs a Printer that writes to w.
func NewPrinter(w io.Writer) *Printer { return &Printer{w: w} }

// Err reports the first error from writing to the underlying writer.
// Once a write has failed, no further output is written.
func (p *Printer) Err() error { return p.err }

func (p *Printer) writeLine(label string, text []byte) {
	if p.err != nil {
		return
	}
	p.line = p.line[:0]
	for range p.depth {
		p.line = append(p.line, ' ', ' ')
	}
	p.line = append(p.line, label...)
	if len(text) != 0 {
		p.line = append(p.line, ' ')
		p.line = append(p.line, text...)
	}
	p.line = append(p.line, '\n')
	_, p.err = p.w.Write(p.line)
}

func (p *Printer) open(label string) { p.writeLine(label, nil); p.depth++ }

func (p *Printer) close(label string) { p.unindent(); p.writeLine(label, nil) }

func (p *Printer) unindent() {
	if p.depth > 0 {
		p.depth--
	}
}

// BeginText satisfies the jlex.Visitor interface.
func (p *Printer) BeginText() { p.depth = 0; p.key = false }

// EndText satisfies the jlex.Visitor interface.
func (p *Printer) EndText() {}

// BOM satisfies the jlex.Visitor interface.
func (p *Printer) BOM() { p.writeLine("BOM", nil) }

// BeginWhitespace satisfies the jlex.Visitor interface.
func (p *Printer) BeginWhitespace() {}

// EndWhitespace satisfies the jlex.Visitor interface.
func (p *Printer) EndWhitespace() {}

// BeginLiteral satisfies the jlex.Visitor interface.
func (p *Printer) BeginLiteral(jlex.Literal) {}

// EndLiteral satisfies the jlex.Visitor interface.
func (p *Printer) EndLiteral(lit jlex.Literal) { p.writeLine("Literal", []byte(lit.String())) }

// BeginString satisfies the jlex.Visitor interface.
func (p *Printer) BeginString() { p.str = append(p.str[:0], '"') }

// Codepoint satisfies the jlex.Visitor interface.
func (p *Printer) Codepoint(r rune) { p.str = escape.AppendRune(p.str, r) }

// UnicodeEscape satisfies the jlex.EscapeVisitor interface.
func (p *Printer) UnicodeEscape(unit uint16) { p.str = escape.AppendUnit(p.str, unit) }

// EndString satisfies the jlex.Visitor interface.
func (p *Printer) EndString() {
	p.str = append(p.str, '"')
	if p.key {
		p.key = false
		p.writeLine("Member", p.str)
		p.depth++
		return
	}
	p.writeLine("String", p.str)
}

// BeginArray satisfies the jlex.Visitor interface.
func (p *Printer) BeginArray() { p.open("Array [") }

// EndArray satisfies the jlex.Visitor interface.
func (p *Printer) EndArray() { p.close("]") }

// BeginObject satisfies the jlex.Visitor interface.
func (p *Printer) BeginObject() { p.open("Object {") }

// EndObject satisfies the jlex.Visitor interface.
func (p *Printer) EndObject() { p.close("}") }

// BeginMember satisfies the jlex.Visitor interface.
func (p *Printer) BeginMember() { p.key = true }

// EndMember satisfies the jlex.Visitor interface.
func (p *Printer) EndMember() { p.unindent() }

// BeginInt satisfies the jlex.Visitor interface.
func (p *Printer) BeginInt(sign jlex.Sign) { p.num = append(p.num[:0], sign.String()...) }

// EndInt satisfies the jlex.Visitor interface.
func (p *Printer) EndInt() { p.writeLine("Int", p.num) }

// BeginFrac satisfies the jlex.Visitor interface.
func (p *Printer) BeginFrac() { p.num = p.num[:0] }

// EndFrac satisfies the jlex.Visitor interface.
func (p *Printer) EndFrac() { p.writeLine("Frac", p.num) }

// BeginExp satisfies the jlex.Visitor interface.
func (p *Printer) BeginExp(sign jlex.Sign) { p.num = append(p.num[:0], sign.String()...) }

// EndExp satisfies the jlex.Visitor interface.
func (p *Printer) EndExp() { p.writeLine("Exp", p.num) }

// Digit satisfies the jlex.Visitor interface.
func (p *Printer) Digit(d byte) { p.num = append(p.num, d) }

var (
	_ jlex.Visitor       = (*Printer)(nil)
	_ jlex.EscapeVisitor = (*Printer)(nil)
)
