// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"io"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/creachadair/jlex"
)

// Parse parses and returns the JSON values from r, which may contain any
// number of concatenated values. In case of error, any complete values already
// parsed are returned along with the error.
func Parse(r io.Reader) ([]Value, error) {
	b := new(Builder)
	lx := jlex.NewLexer(jlex.NewCursor(r), b)
	var vs []Value
	for {
		if err := lx.ParseOne(); err == io.EOF {
			return vs, nil
		} else if err != nil {
			return vs, err
		}
		vs = append(vs, b.Value())
	}
}

// ParseSingle parses and returns a single JSON value from r. It reports an
// error if r contains anything other than whitespace after the value.
func ParseSingle(r io.Reader) (Value, error) {
	b := new(Builder)
	if err := jlex.NewLexer(jlex.NewCursor(r), b).Parse(); err != nil {
		return nil, err
	}
	return b.Value(), nil
}

// ParseString parses and returns a single JSON value from s.
func ParseString(s string) (Value, error) {
	b := new(Builder)
	if err := jlex.NewLexer(jlex.NewCursorString(s), b).Parse(); err != nil {
		return nil, err
	}
	return b.Value(), nil
}

// MustParse parses a single JSON value from s. It panics if s is not valid.
func MustParse(s string) Value {
	v, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// A Builder implements the jlex.Visitor interface to construct abstract syntax
// trees for JSON values. Each call of BeginText discards the previous value.
//
// The Builder reassembles surrogate pairs written as \u escapes into the
// characters they encode. An unpaired surrogate is replaced by U+FFFD.
type Builder struct {
	jlex.NopVisitor

	stk  []Value // open containers and members
	root Value
	key  bool   // the next string is a member name
	str  []byte // content of the current string
	hi   rune   // pending high surrogate, or 0
	num  []byte // text of the current number
}

// Value returns the most recent complete value constructed by b, or nil if
// there is none.
func (b *Builder) Value() Value { return b.root }

func (b *Builder) push(v Value) { b.stk = append(b.stk, v) }

func (b *Builder) top() Value { return b.stk[len(b.stk)-1] }

// reduce closes the container or member atop the stack.
func (b *Builder) reduce() {
	v := b.top()
	b.stk = b.stk[:len(b.stk)-1]
	switch t := v.(type) {
	case *Object:
		b.attach(*t)
	case *Array:
		b.attach(*t)
	}
	// A member is attached to its object when it begins.
}

// attach adds a complete value to the innermost open container, or makes it
// the root if none is open.
func (b *Builder) attach(v Value) {
	if len(b.stk) == 0 {
		b.root = v
		return
	}
	switch t := b.top().(type) {
	case *Member:
		t.Value = v
	case *Array:
		*t = append(*t, v)
	}
}

// BeginText satisfies the jlex.Visitor interface.
func (b *Builder) BeginText() {
	b.stk = b.stk[:0]
	b.root = nil
	b.key = false
}

// BeginObject satisfies the jlex.Visitor interface.
func (b *Builder) BeginObject() { b.push(new(Object)) }

// EndObject satisfies the jlex.Visitor interface.
func (b *Builder) EndObject() { b.reduce() }

// BeginArray satisfies the jlex.Visitor interface.
func (b *Builder) BeginArray() { b.push(new(Array)) }

// EndArray satisfies the jlex.Visitor interface.
func (b *Builder) EndArray() { b.reduce() }

// BeginMember satisfies the jlex.Visitor interface.
func (b *Builder) BeginMember() {
	// The object this member belongs to is atop the stack. Add the member to it
	// eagerly, so that its value can be filled in when it is complete.
	m := new(Member)
	obj := b.top().(*Object)
	*obj = append(*obj, m)
	b.push(m)
	b.key = true
}

// EndMember satisfies the jlex.Visitor interface.
func (b *Builder) EndMember() { b.reduce() }

// BeginString satisfies the jlex.Visitor interface.
func (b *Builder) BeginString() { b.str = b.str[:0]; b.hi = 0 }

// Codepoint satisfies the jlex.Visitor interface.
func (b *Builder) Codepoint(r rune) {
	b.flushSurrogate()
	b.str = utf8.AppendRune(b.str, r)
}

// UnicodeEscape satisfies the jlex.EscapeVisitor interface.
func (b *Builder) UnicodeEscape(unit uint16) {
	r := rune(unit)
	if b.hi != 0 {
		if dec := utf16.DecodeRune(b.hi, r); dec != utf8.RuneError {
			b.str = utf8.AppendRune(b.str, dec)
			b.hi = 0
			return
		}
		b.flushSurrogate()
	}
	switch {
	case 0xd800 <= r && r < 0xdc00:
		b.hi = r
	case utf16.IsSurrogate(r):
		b.str = utf8.AppendRune(b.str, utf8.RuneError)
	default:
		b.str = utf8.AppendRune(b.str, r)
	}
}

func (b *Builder) flushSurrogate() {
	if b.hi != 0 {
		b.str = utf8.AppendRune(b.str, utf8.RuneError)
		b.hi = 0
	}
}

// EndString satisfies the jlex.Visitor interface.
func (b *Builder) EndString() {
	b.flushSurrogate()
	if b.key {
		b.top().(*Member).Key = string(b.str)
		b.key = false
		return
	}
	b.attach(String(b.str))
}

// EndLiteral satisfies the jlex.Visitor interface.
func (b *Builder) EndLiteral(lit jlex.Literal) {
	switch lit {
	case jlex.True:
		b.attach(Bool(true))
	case jlex.False:
		b.attach(Bool(false))
	default:
		b.attach(Null)
	}
}

// BeginInt satisfies the jlex.Visitor interface.
func (b *Builder) BeginInt(sign jlex.Sign) { b.num = append(b.num[:0], sign.String()...) }

// Digit satisfies the jlex.Visitor interface.
func (b *Builder) Digit(d byte) { b.num = append(b.num, d) }

// BeginFrac satisfies the jlex.Visitor interface.
func (b *Builder) BeginFrac() { b.num = append(b.num, '.') }

// BeginExp satisfies the jlex.Visitor interface. The exponent marker is
// written as "e" whatever its case in the input.
func (b *Builder) BeginExp(sign jlex.Sign) {
	b.num = append(b.num, 'e')
	b.num = append(b.num, sign.String()...)
}

// EndInt satisfies the jlex.Visitor interface. The number is attached when
// its integer part ends, and its text is updated by the optional parts.
func (b *Builder) EndInt() { b.attach(Number(b.num)) }

// EndFrac satisfies the jlex.Visitor interface.
func (b *Builder) EndFrac() { b.setNumber() }

// EndExp satisfies the jlex.Visitor interface.
func (b *Builder) EndExp() { b.setNumber() }

// setNumber replaces the number most recently attached with the current text.
func (b *Builder) setNumber() {
	if len(b.stk) == 0 {
		b.root = Number(b.num)
		return
	}
	switch t := b.top().(type) {
	case *Member:
		t.Value = Number(b.num)
	case *Array:
		(*t)[len(*t)-1] = Number(b.num)
	}
}

var _ jlex.EscapeVisitor = (*Builder)(nil)
