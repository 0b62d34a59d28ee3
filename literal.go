// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import "github.com/creachadair/jstream/internal/buffer"

// litMatch tracks progress through the spelling of true, false or null.
type litMatch struct {
	tail  string       // expected characters after the first
	next  int          // offset in tail of the next expected character
	value any          // true, false, or nil
	wrong *SyntaxError // the first mismatch, if any
}

// beginLiteral starts a constant whose first character has been consumed,
// with tail the rest of its spelling.
func (w *Walker) beginLiteral(tail string, v any) {
	w.state = stLiteral
	w.lit = litMatch{tail: tail, value: v}
}

// literal matches one character of a constant, or completes it.
//
// After a mismatch, the rest of the expected length is still consumed, so a
// malformed constant yields a single error.
func (w *Walker) literal() action {
	lit := &w.lit
	if lit.next == len(lit.tail) {
		w.state = stEndValue
		if lit.wrong != nil {
			w.h.Error(lit.wrong)
		} else {
			w.h.Literal(lit.value, w.start)
		}
		return proceed
	}

	r, st := w.next()
	switch st {
	case buffer.Starved:
		return suspend
	case buffer.Exhausted:
		if lit.wrong != nil {
			w.h.Error(lit.wrong)
		} else {
			w.failAt(EOF, lit.tail[lit.next:lit.next+1], w.pos.Current)
		}
		return w.finish()
	}

	want := rune(lit.tail[lit.next])
	lit.next++
	if lit.wrong == nil && r != want {
		lit.wrong = &SyntaxError{Actual: string(r), Expected: string(want), Location: w.pos.Previous}
	}
	return proceed
}
