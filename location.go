// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import "fmt"

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // character offset of column in line, 1-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Position records how far a walker has read into its input.
//
// Current is the location of the next unread character. Previous is the
// location of the most recently read character; errors about a character
// already consumed are reported there.
type Position struct {
	Index    int // bytes consumed, 0-based
	Current  LineCol
	Previous LineCol
}

func startPosition() Position {
	return Position{Current: LineCol{Line: 1, Column: 1}}
}

// advance records the consumption of r, encoded in size bytes.
func (p *Position) advance(r rune, size int) {
	p.Index += size
	p.Previous = p.Current
	if r == '\n' {
		p.Current.Line++
		p.Current.Column = 1
	} else {
		p.Current.Column++
	}
}
