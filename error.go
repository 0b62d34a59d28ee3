// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// EOF is the Actual text of a SyntaxError reported because the input ended.
const EOF = "EOF"

// SyntaxError is the concrete type of errors reported by a Walker.
type SyntaxError struct {
	Actual   string // the offending input, or EOF
	Expected string // what the walker wanted instead
	Location LineCol
}

// IsEOF reports whether e was caused by the end of the input.
func (e *SyntaxError) IsEOF() bool { return e.Actual == EOF }

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	got := EOF
	if !e.IsEOF() {
		got = strconv.Quote(e.Actual)
	}
	return fmt.Sprintf("at %s: expected %s, got %s", e.Location, label(e.Expected), got)
}

// label quotes single characters and leaves names like "value" as they are.
func label(s string) string {
	if utf8.RuneCountInString(s) == 1 {
		return strconv.Quote(s)
	}
	return s
}
