// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"fmt"
	"strings"

	"github.com/creachadair/jlex"
)

// A Recorder is a jlex.Visitor that records a compact label for each event it
// receives. Begin events are labeled "name(" and end events ")name". Each
// codepoint is recorded as a quoted character, each digit as itself, and each
// \u escape as "u+XXXX".
type Recorder struct {
	Events []string
}

// String returns the recorded events separated by spaces.
func (r *Recorder) String() string { return strings.Join(r.Events, " ") }

// Reset discards the recorded events.
func (r *Recorder) Reset() { r.Events = r.Events[:0] }

func (r *Recorder) add(s string) { r.Events = append(r.Events, s) }

func (r *Recorder) BeginText()                  { r.add("text(") }
func (r *Recorder) EndText()                    { r.add(")text") }
func (r *Recorder) BOM()                        { r.add("bom") }
func (r *Recorder) BeginWhitespace()            { r.add("ws(") }
func (r *Recorder) EndWhitespace()              { r.add(")ws") }
func (r *Recorder) BeginLiteral(l jlex.Literal) { r.add("lit(" + l.String()) }
func (r *Recorder) EndLiteral(l jlex.Literal)   { r.add(l.String() + ")lit") }
func (r *Recorder) BeginString()                { r.add("str(") }
func (r *Recorder) Codepoint(c rune)            { r.add(fmt.Sprintf("%q", c)) }
func (r *Recorder) EndString()                  { r.add(")str") }
func (r *Recorder) BeginArray()                 { r.add("arr(") }
func (r *Recorder) EndArray()                   { r.add(")arr") }
func (r *Recorder) BeginObject()                { r.add("obj(") }
func (r *Recorder) EndObject()                  { r.add(")obj") }
func (r *Recorder) BeginMember()                { r.add("mem(") }
func (r *Recorder) EndMember()                  { r.add(")mem") }
func (r *Recorder) BeginInt(s jlex.Sign)        { r.add("int(" + s.String()) }
func (r *Recorder) EndInt()                     { r.add(")int") }
func (r *Recorder) BeginFrac()                  { r.add("frac(") }
func (r *Recorder) EndFrac()                    { r.add(")frac") }
func (r *Recorder) BeginExp(s jlex.Sign)        { r.add("exp(" + s.String()) }
func (r *Recorder) EndExp()                     { r.add(")exp") }
func (r *Recorder) Digit(d byte)                { r.add(string(d)) }
func (r *Recorder) UnicodeEscape(u uint16)      { r.add(fmt.Sprintf("u+%04x", u)) }

var (
	_ jlex.Visitor       = (*Recorder)(nil)
	_ jlex.EscapeVisitor = (*Recorder)(nil)
)
