// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jlex_test

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/creachadair/jlex"
	"github.com/creachadair/jlex/internal/escape"
	"github.com/creachadair/jlex/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func lexTrace(input string) (string, jlex.Code, bool) {
	var rec testutil.Recorder
	lx := jlex.NewLexer(jlex.NewCursorString(input), &rec)
	c := lx.Lex()
	return rec.String(), c, lx.Done()
}

func TestLexEvents(t *testing.T) {
	tests := []struct {
		name, input string
		want        string
	}{
		{"True", "true", "text( lit(true true)lit )text"},
		{"False", "false", "text( lit(false false)lit )text"},
		{"Null", "null", "text( lit(null null)lit )text"},
		{"Int", "42", "text( int( 4 2 )int )text"},
		{"Zero", "0", "text( int( 0 )int )text"},
		{"Number", "-10.001e+00000112",
			"text( int(- 1 0 )int frac( 0 0 1 )frac exp(+ 0 0 0 0 0 1 1 2 )exp )text"},
		{"ExpMinus", "0E-0", "text( int( 0 )int exp(- 0 )exp )text"},
		{"String", `"a\"b"`, `text( str( 'a' '"' 'b' )str )text`},
		{"Escapes", `"\"\\\/\b\f\n\r\t"`,
			`text( str( '"' '\\' '/' '\b' '\f' '\n' '\r' '\t' )str )text`},
		{"UnicodeEscape", `"x\u00E9\ud83c\udf55"`,
			`text( str( 'x' u+00e9 u+d83c u+df55 )str )text`},
		{"Multibyte", "\"\xc3\xb1\xe4\xba\x8c\"", `text( str( 'ñ' '二' )str )text`},
		{"EmptyString", `""`, "text( str( )str )text"},
		{"Whitespace", " \t[ ]\r\n", "text( ws( )ws arr( ws( )ws )arr ws( )ws )text"},
		{"EmptyObject", "{}", "text( obj( )obj )text"},
		{"EmptyArray", "[]", "text( arr( )arr )text"},
		{"BOM", "\xef\xbb\xbf[]", "text( bom arr( )arr )text"},
		{"BOMSpace", "\xef\xbb\xbf 1", "text( bom ws( )ws int( 1 )int )text"},
		{"Array", "[1, true]",
			"text( arr( int( 1 )int ws( )ws lit(true true)lit )arr )text"},
		{"Object", `{"k": [null], "z":"q" }`,
			`text( obj( mem( str( 'k' )str ws( )ws arr( lit(null null)lit )arr )mem ` +
				`ws( )ws mem( str( 'z' )str str( 'q' )str ws( )ws )mem )obj )text`},
		{"Nested", `[[],{"a":{}}]`,
			`text( arr( arr( )arr obj( mem( str( 'a' )str obj( )obj )mem )obj )arr )text`},

		// Partial spans are not closed.
		{"PartialLiteral", "tru", "text( lit(true )text"},
		{"PartialString", `"ab`, `text( str( 'a' 'b' )text`},
		{"PartialObject", `{"a":}`, `text( obj( mem( str( 'a' )str )text`},
		{"PartialArray", `[1,]`, `text( arr( int( 1 )int )text`},

		// A number ends at the first code that is not part of it.
		{"NumberEOF", "12", "text( int( 1 2 )int )text"},
		{"NumberError", "7\xff", "text( int( 7 )int )text"},
		{"PartialFrac", "1.", "text( int( 1 )int frac( )text"},
		{"PartialExp", "1e+", "text( int( 1 )int exp(+ )text"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, _, _ := lexTrace(tc.input)
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("Lex %#q events (-got, +want):\n%s", tc.input, diff)
			}
		})
	}
}

func TestLexResult(t *testing.T) {
	tests := []struct {
		input string
		want  jlex.Code
		done  bool
	}{
		// Complete values.
		{"true", jlex.EOF.Code(), true},
		{" false ", jlex.EOF.Code(), true},
		{"null\n", jlex.EOF.Code(), true},
		{"42", jlex.EOF.Code(), true},
		{"-10.001e+00000112", jlex.EOF.Code(), true},
		{`{"a":[1,{"b":null}],"c":"d"}`, jlex.EOF.Code(), true},
		{"\xef\xbb\xbf{}", jlex.EOF.Code(), true},

		// Values followed by other input.
		{"1 2", rc('2'), true},
		{"01", rc('1'), true},
		{"-0.5.1", rc('.'), true},
		{"[1]]", rc(']'), true},
		{"[1,2]x", rc('x'), true},
		{"\"a\"\"b\"", rc('"'), true},
		{"true\xc3\xb1", rc(0xf1), true},
		{"1\xff", jlex.InvalidByte.Code(), true},

		// No value.
		{"", jlex.EOF.Code(), false},
		{" \t\r\n ", jlex.EOF.Code(), false},
		{"\xef\xbb\xbf", jlex.EOF.Code(), false},

		// Truncated values report EOF.
		{"tru", jlex.EOF.Code(), false},
		{"nul", jlex.EOF.Code(), false},
		{"-", jlex.EOF.Code(), false},
		{"1.", jlex.EOF.Code(), false},
		{"1e", jlex.EOF.Code(), false},
		{"1e-", jlex.EOF.Code(), false},
		{`"abc`, jlex.EOF.Code(), false},
		{`"\`, jlex.EOF.Code(), false},
		{`"\u12`, jlex.EOF.Code(), false},
		{"[", jlex.EOF.Code(), false},
		{"[1", jlex.EOF.Code(), false},
		{"[1,", jlex.EOF.Code(), false},
		{"{", jlex.EOF.Code(), false},
		{`{"a"`, jlex.EOF.Code(), false},
		{`{"a":`, jlex.EOF.Code(), false},
		{`{"a":1`, jlex.EOF.Code(), false},

		// Grammar errors.
		{`{"a":}`, jlex.BadValue.Code(), false},
		{"[1,]", jlex.BadValue.Code(), false},
		{"]", jlex.BadValue.Code(), false},
		{"+1", jlex.BadValue.Code(), false},
		{".5", jlex.BadValue.Code(), false},
		{"'a'", jlex.BadValue.Code(), false},
		{"True", jlex.BadValue.Code(), false},
		{"tRue", jlex.BadLiteral.Code(), false},
		{"nulx", jlex.BadLiteral.Code(), false},
		{"fals e", jlex.BadLiteral.Code(), false},
		{"{1:2}", jlex.BadMember.Code(), false},
		{`{"a":1,}`, jlex.BadMember.Code(), false},
		{"{,}", jlex.BadMember.Code(), false},
		{`{"a" 1}`, jlex.MissingNameSeparator.Code(), false},
		{`{"a"=1}`, jlex.MissingNameSeparator.Code(), false},
		{`{"a":1 "b":2}`, jlex.MissingObjectEnd.Code(), false},
		{`{"a":1]`, jlex.MissingObjectEnd.Code(), false},
		{"[1 2]", jlex.MissingArrayEnd.Code(), false},
		{"[1}", jlex.MissingArrayEnd.Code(), false},
		{`"\u12g4"`, jlex.BadHexDigit.Code(), false},
		{`"\u 123"`, jlex.BadHexDigit.Code(), false},
		{"-a", jlex.BadDigit.Code(), false},
		{"1.x", jlex.BadDigit.Code(), false},
		{"1ex", jlex.BadDigit.Code(), false},
		{"1.5e-x", jlex.BadDigit.Code(), false},
		{"-.5", jlex.BadDigit.Code(), false},
		{`"\x"`, jlex.BadEscape.Code(), false},
		{`"\U0041"`, jlex.BadEscape.Code(), false},
		{"\"ab\x01\"", jlex.ControlCharacter.Code(), false},
		{"\"\t\"", jlex.ControlCharacter.Code(), false},
		{"\"\n\"", jlex.ControlCharacter.Code(), false},

		// Decoder errors propagate unchanged.
		{"\xff", jlex.InvalidByte.Code(), false},
		{"[\xc0\x80]", jlex.InvalidByte.Code(), false},
		{"\"\xed\xa0\x80\"", jlex.InvalidByte.Code(), false},
		{"\"ab\xe4\xba\"", jlex.InvalidByte.Code(), false},
		{"t\xff", jlex.InvalidByte.Code(), false},
		{"\"ab\xe4", jlex.TruncatedSequence.Code(), false},
		{"[1, \xf0\x90", jlex.TruncatedSequence.Code(), false},
	}
	for _, tc := range tests {
		_, got, done := lexTrace(tc.input)
		if got != tc.want || done != tc.done {
			t.Errorf("Lex(%#q): got %v, done=%v; want %v, done=%v", tc.input, got, done, tc.want, tc.done)
		}
	}
}

func TestLexBOM(t *testing.T) {
	for _, input := range []string{"true", `{"a": [1, "b"]}`, " 15 "} {
		plain, pc, _ := lexTrace(input)
		bom, bc, _ := lexTrace("\xef\xbb\xbf" + input)
		if pc != bc {
			t.Errorf("Lex(%#q): got %v without BOM, %v with BOM", input, pc, bc)
		}
		if want := strings.Replace(bom, "text( bom", "text(", 1); plain != want {
			t.Errorf("Lex(%#q) events:\n without BOM: %s\n    with BOM: %s", input, plain, bom)
		}
	}

	// A BOM is skipped only at the start of the input.
	var rec testutil.Recorder
	lx := jlex.NewLexer(jlex.NewCursorString("1\xef\xbb\xbf2"), &rec)
	if c := lx.Lex(); c != rc(0xfeff) || !lx.Done() {
		t.Errorf("Lex: got %v, want U+FEFF", c)
	}
	rec.Reset()
	if c := lx.Lex(); c.Kind() != jlex.BadValue {
		t.Errorf("Lex after value: got %v, want %v", c, jlex.BadValue)
	}
	if got, want := rec.String(), "text( )text"; got != want {
		t.Errorf("Lex after value: got events %q, want %q", got, want)
	}

	// Only one leading BOM is skipped.
	if _, c, _ := lexTrace("\xef\xbb\xbf\xef\xbb\xbf1"); c.Kind() != jlex.BadValue {
		t.Errorf("Lex with two BOM: got %v, want %v", c, jlex.BadValue)
	}
}

func TestLexExhausted(t *testing.T) {
	cur := jlex.NewCursorString(" [1] ")
	if c := jlex.Lex(cur, jlex.NopVisitor{}); !c.IsEOF() {
		t.Fatalf("Lex: got %v, want EOF", c)
	}
	for range 5 {
		lx := jlex.NewLexer(cur, jlex.NopVisitor{})
		if c := lx.Lex(); !c.IsEOF() {
			t.Errorf("Lex after EOF: got %v, want EOF", c)
		}
		if lx.Done() {
			t.Error("Lex after EOF reports a complete value")
		}
	}
}

func TestLexConcatenated(t *testing.T) {
	const input = `{"a":1} [2,3]"x"4 true` + "\n"
	var rec testutil.Recorder
	lx := jlex.NewLexer(jlex.NewCursorString(input), &rec)

	var got []string
	for {
		rec.Reset()
		c := lx.Lex()
		if !lx.Done() {
			if !c.IsEOF() {
				t.Fatalf("Lex: unexpected error: %v", c)
			}
			break
		}
		got = append(got, rec.String())
	}
	want := []string{
		`text( obj( mem( str( 'a' )str int( 1 )int )mem )obj ws( )ws )text`,
		`text( arr( int( 2 )int int( 3 )int )arr )text`,
		`text( str( 'x' )str )text`,
		`text( int( 4 )int ws( )ws )text`,
		`text( lit(true true)lit ws( )ws )text`,
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Documents (-got, +want):\n%s", diff)
	}
}

func TestLexDepth(t *testing.T) {
	nest := func(n int) string {
		return strings.Repeat(`[{"a":`, n) + "1" + strings.Repeat("}]", n)
	}

	lx := jlex.NewLexer(jlex.NewCursorString(nest(2)), jlex.NopVisitor{})
	lx.LimitDepth(4)
	if c := lx.Lex(); !c.IsEOF() || !lx.Done() {
		t.Errorf("Lex depth 4: got %v, want EOF", c)
	}

	lx.Reset(jlex.NewCursorString(nest(3)), jlex.NopVisitor{})
	if c := lx.Lex(); c.Kind() != jlex.DepthExceeded {
		t.Errorf("Lex depth 6: got %v, want %v", c, jlex.DepthExceeded)
	}

	// Without a limit, deep nesting does not exhaust the call stack.
	const deep = 1 << 20
	lx = jlex.NewLexer(jlex.NewCursorString(nest(deep)), jlex.NopVisitor{})
	if c := lx.Lex(); !c.IsEOF() || !lx.Done() {
		t.Errorf("Lex depth %d: got %v, want EOF", 2*deep, c)
	}
	lx.Reset(jlex.NewCursorString(strings.Repeat("[", deep)), jlex.NopVisitor{})
	if c := lx.Lex(); !c.IsEOF() || lx.Done() {
		t.Errorf("Lex open depth %d: got %v, want EOF", deep, c)
	}
}

func TestLexAllocs(t *testing.T) {
	input, err := os.ReadFile("testdata/image.json")
	if err != nil {
		t.Fatalf("Reading test input: %v", err)
	}
	const runs = 50
	curs := make([]*jlex.Cursor, runs+1)
	for i := range curs {
		curs[i] = jlex.NewCursorBytes(input)
	}
	var lx jlex.Lexer
	lx.Reset(jlex.NewCursorBytes(input), jlex.NopVisitor{})
	lx.Lex() // grow the stack

	i := 0
	allocs := testing.AllocsPerRun(runs, func() {
		lx.Reset(curs[i], jlex.NopVisitor{})
		i++
		if c := lx.Lex(); !c.IsEOF() {
			t.Fatalf("Lex: got %v, want EOF", c)
		}
	})
	if allocs != 0 {
		t.Errorf("Lex: got %v allocations per run, want 0", allocs)
	}
}

// echo is a jlex.Visitor that reconstructs the compact form of its input,
// which must not contain escapes or exponents.
type echo struct {
	jlex.NopVisitor
	buf bytes.Buffer
	stk []*level
	key bool
}

type level struct {
	array bool
	n     int
}

func (e *echo) value() {
	if len(e.stk) == 0 {
		return
	}
	if top := e.stk[len(e.stk)-1]; top.array {
		if top.n > 0 {
			e.buf.WriteByte(',')
		}
		top.n++
	}
}

func (e *echo) open(array bool, ch byte) {
	e.value()
	e.buf.WriteByte(ch)
	e.stk = append(e.stk, &level{array: array})
}

func (e *echo) close(ch byte) {
	e.stk = e.stk[:len(e.stk)-1]
	e.buf.WriteByte(ch)
}

func (e *echo) BeginObject() { e.open(false, '{') }
func (e *echo) EndObject()   { e.close('}') }
func (e *echo) BeginArray()  { e.open(true, '[') }
func (e *echo) EndArray()    { e.close(']') }

func (e *echo) BeginMember() {
	top := e.stk[len(e.stk)-1]
	if top.n > 0 {
		e.buf.WriteByte(',')
	}
	top.n++
	e.key = true
}

func (e *echo) BeginString() {
	if !e.key {
		e.value()
	}
	e.buf.WriteByte('"')
}

func (e *echo) Codepoint(r rune) { e.buf.Write(escape.AppendRune(nil, r)) }

func (e *echo) EndString() {
	e.buf.WriteByte('"')
	if e.key {
		e.buf.WriteByte(':')
		e.key = false
	}
}

func (e *echo) BeginLiteral(lit jlex.Literal) { e.value(); e.buf.WriteString(lit.String()) }
func (e *echo) BeginInt(sign jlex.Sign)       { e.value(); e.buf.WriteString(sign.String()) }
func (e *echo) BeginFrac()                    { e.buf.WriteByte('.') }
func (e *echo) Digit(d byte)                  { e.buf.WriteByte(d) }

func TestLexContent(t *testing.T) {
	for _, name := range []string{"testdata/image.json", "testdata/sf.json"} {
		input, err := os.ReadFile(name)
		if err != nil {
			t.Fatalf("Reading test input: %v", err)
		}
		var want bytes.Buffer
		if err := json.Compact(&want, input); err != nil {
			t.Fatalf("Compact %s: %v", name, err)
		}

		var e echo
		if c := jlex.Lex(jlex.NewCursorBytes(input), &e); !c.IsEOF() {
			t.Fatalf("Lex %s: got %v, want EOF", name, c)
		}
		if diff := cmp.Diff(e.buf.String(), want.String()); diff != "" {
			t.Errorf("Lex %s content (-got, +want):\n%s", name, diff)
		}
	}
}

// On well-formed UTF-8, Valid agrees with the standard library.
func TestLexAgreesWithStdlib(t *testing.T) {
	inputs := []string{
		`{"a":[1,2,{"b":null}],"c":"d\te"}`,
		`[1e5, -0.0, 0.1E+2, 3e-07]`,
		`"\ud83c\udf55 \u0000"`,
		"[1,]", `{"a":1,}`, "01", "1.", "[01]", "-", "--1", `"\a"`,
		"\"\x7f\"", "\"\xc3\xb1\"",
		" \t\n\r null \r\n", "\v1", "\f1", "1 2", "{} {}", "nulll",
	}
	for _, input := range inputs {
		want := json.Valid([]byte(input))
		if got := jlex.Valid([]byte(input)); got != want {
			t.Errorf("Valid(%#q): got %v, want %v", input, got, want)
		}
	}
}
