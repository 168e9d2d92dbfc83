// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an abstract syntax tree for JSON values, and a Visitor
// that constructs syntax trees from the events of a jlex.Lexer.
package ast

import (
	"strconv"
	"strings"

	"github.com/creachadair/jlex/internal/escape"
	"go4.org/mem"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// JSON returns the compact JSON encoding of the value.
	JSON() string

	// Interface converts the value into a plain Go value of the kind produced
	// by encoding/json when decoding into an empty interface.
	Interface() any
}

// An Object is a collection of key-value members, in input order.
// Keys are not required to be unique.
type Object []*Member

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// JSON satisfies the Value interface.
func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Interface satisfies the Value interface. If o contains duplicate keys, the
// last member with a given key determines its value.
func (o Object) Interface() any {
	m := make(map[string]any, len(o))
	for _, e := range o {
		m[e.Key] = e.Value.Interface()
	}
	return m
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, val Value) *Member { return &Member{Key: key, Value: val} }

// JSON satisfies the Value interface. It encodes the member as it would appear
// in an object.
func (m *Member) JSON() string {
	return String(m.Key).JSON() + ":" + m.Value.JSON()
}

// Interface satisfies the Value interface, converting the value of m.
func (m *Member) Interface() any { return m.Value.Interface() }

// An Array is a sequence of values.
type Array []Value

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// JSON satisfies the Value interface.
func (a Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Interface satisfies the Value interface.
func (a Array) Interface() any {
	out := make([]any, len(a))
	for i, v := range a {
		out[i] = v.Interface()
	}
	return out
}

// A String is a string value, holding its unescaped content.
type String string

// Len reports the length of s in bytes.
func (s String) Len() int { return len(s) }

// JSON satisfies the Value interface.
func (s String) JSON() string { return string(escape.Quote(mem.S(string(s)))) }

// Interface satisfies the Value interface.
func (s String) Interface() any { return string(s) }

// A Number is a numeric value, holding its text as written in the input,
// except that a Builder always writes the exponent marker as "e".
type Number string

// Int returns a Number with the value of z.
func Int(z int64) Number { return Number(strconv.FormatInt(z, 10)) }

// Float returns a Number with the value of f, which must be finite.
func Float(f float64) Number { return Number(strconv.FormatFloat(f, 'g', -1, 64)) }

// IsInt reports whether n is written without a fraction or exponent.
func (n Number) IsInt() bool { return !strings.ContainsAny(string(n), ".eE") }

// Int64 returns the value of n as an integer. It reports an error if n is not
// an integer or is out of range.
func (n Number) Int64() (int64, error) { return mem.ParseInt(mem.S(string(n)), 10, 64) }

// Float64 returns the value of n as a floating-point value, rounded to the
// nearest representable value.
func (n Number) Float64() (float64, error) { return mem.ParseFloat(mem.S(string(n)), 64) }

// JSON satisfies the Value interface.
func (n Number) JSON() string { return string(n) }

// Interface satisfies the Value interface, returning a float64.
func (n Number) Interface() any {
	f, _ := n.Float64() // out of range values report an infinity
	return f
}

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string { return strconv.FormatBool(bool(b)) }

// Interface satisfies the Value interface.
func (b Bool) Interface() any { return bool(b) }

// Null is the null constant.
var Null nullValue

type nullValue struct{}

// JSON satisfies the Value interface.
func (nullValue) JSON() string { return "null" }

// Interface satisfies the Value interface.
func (nullValue) Interface() any { return nil }
