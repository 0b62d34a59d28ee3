// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import "github.com/creachadair/jstream/internal/buffer"

// peek reports the next character without consuming it.
func (w *Walker) peek() (rune, buffer.Status) {
	r, _, st := w.buf.Peek()
	return r, st
}

// next consumes and returns the next character, if one is available.
func (w *Walker) next() (rune, buffer.Status) {
	r, n, st := w.buf.Peek()
	if st == buffer.Ready {
		w.buf.Consume(n)
		w.pos.advance(r, n)
	}
	return r, st
}

// atEnd reports whether all the input pushed so far has been consumed. It
// does not consider whether more input may arrive.
func (w *Walker) atEnd() bool { return w.buf.AtEnd() }

// wait handles a read that found no character: either park until more input
// arrives, or end the walk.
func (w *Walker) wait(st buffer.Status) action {
	if st == buffer.Exhausted {
		return w.finish()
	}
	return suspend
}

// skipSpace peeks at the next character. If it is whitespace, skipSpace
// consumes it and reports false; the caller should proceed to another step.
func (w *Walker) skipSpace() (rune, buffer.Status, bool) {
	r, st := w.peek()
	if st == buffer.Ready && isSpace(r) {
		w.next()
		return r, st, false
	}
	return r, st, true
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\r' || r == '\n' }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
