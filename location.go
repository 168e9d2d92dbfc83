// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jlex

import "fmt"

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Pos describes the position of a byte in the input consumed by a Cursor.
type Pos struct {
	Offset int64 // byte offset from the start of input, 0-based
	LineCol
}

func (p Pos) String() string { return fmt.Sprintf("%s (offset %d)", p.LineCol, p.Offset) }
