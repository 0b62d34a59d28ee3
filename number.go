// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"strconv"

	"github.com/creachadair/jstream/internal/buffer"
)

// A numPhase is the part of a number being scanned.
type numPhase byte

const (
	numInt     numPhase = iota // integer digits
	numFrac                    // digits after the decimal point
	numExpSign                 // after the exponent marker
	numExp                     // exponent digits
)

// beginNumber starts a number whose first character, first, has been
// consumed.
func (w *Walker) beginNumber(first rune) {
	w.state = stNumber
	w.num = numInt
	w.text = append(w.text[:0], byte(first))
}

// number consumes one character of a number, or completes it.
//
// Grammar: -? digits [. digits] [(e|E) [+|-] digits]
func (w *Walker) number() action {
	r, st := w.peek()
	if st == buffer.Starved {
		return suspend
	}
	ready := st == buffer.Ready

	switch w.num {
	case numInt, numFrac:
		switch {
		case ready && isDigit(r):
		case ready && r == '.' && w.num == numInt:
			w.num = numFrac
		case ready && (r == 'e' || r == 'E'):
			w.num = numExpSign
		default:
			return w.endNumber()
		}

	case numExpSign:
		if !ready {
			w.failAt(EOF, "exponent", w.pos.Current)
			return w.finish()
		}
		w.num = numExp
		if r != '+' && r != '-' {
			return proceed // no sign; scan digits
		}

	case numExp:
		if !ready || !isDigit(r) {
			return w.endNumber()
		}
	}
	w.next()
	w.text = append(w.text, byte(r))
	return proceed
}

// endNumber reports the number scanned so far. Text the grammar accepts but
// that does not denote a float64, such as "-" or "1e999", is reported as an
// error instead.
func (w *Walker) endNumber() action {
	w.state = stEndValue
	text := string(w.text)
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		w.failAt(text, "number", w.start)
	} else {
		w.h.Number(v, text, w.start)
	}
	return proceed
}
