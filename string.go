// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"unicode/utf8"

	"github.com/creachadair/jstream/internal/buffer"
	"github.com/creachadair/jstream/internal/escape"
)

// beginString starts a string whose opening quote has been consumed. If
// member is true, the string is the name of an object member.
func (w *Walker) beginString(member bool) {
	w.state = stString
	w.inString = true
	w.member = member
	w.text = w.text[:0]
	w.units = escape.Units{}
}

// stringChar consumes one character of a string.
func (w *Walker) stringChar() action {
	r, st := w.next()
	if st != buffer.Ready {
		return w.wait(st)
	}
	switch r {
	case '\\':
		w.state = stEscape
	case '"':
		w.endString()
	default:
		w.text = utf8.AppendRune(w.units.Flush(w.text), r)
	}
	return proceed
}

func (w *Walker) endString() {
	w.text = w.units.Flush(w.text)
	w.inString = false
	s := string(w.text)
	if w.member {
		w.state = stColon
		w.h.Property(s, w.start)
	} else {
		w.state = stEndValue
		w.h.String(s, w.start)
	}
}

// escapeChar consumes the specifier of an escape sequence.
func (w *Walker) escapeChar() action {
	r, st := w.next()
	if st != buffer.Ready {
		return w.wait(st)
	}
	w.state = stString
	if b, ok := escape.Simple(r); ok {
		w.text = append(w.units.Flush(w.text), b)
	} else if r == 'u' {
		w.state = stHex
		w.hex = w.hex[:0]
		w.hexRead = 0
	} else {
		// Keep the invalid escape as written.
		w.text = utf8.AppendRune(append(w.units.Flush(w.text), '\\'), r)
		w.fail(r, "escape character")
	}
	return proceed
}

// hexChar consumes one of the four characters following "\u".
func (w *Walker) hexChar() action {
	r, st := w.next()
	if st != buffer.Ready {
		return w.wait(st)
	}
	w.hexRead++
	if escape.IsHexDigit(r) {
		w.hex = append(w.hex, byte(r))
	}
	if w.hexRead < 4 {
		return proceed
	}

	w.state = stString
	if u, ok := escape.Hex4(w.hex); ok {
		w.text = w.units.Add(w.text, u)
		return proceed
	}

	// Keep the text of the escape, less whatever was not a hex digit among
	// the first three characters.
	w.text = append(w.units.Flush(w.text), '\\', 'u')
	w.text = utf8.AppendRune(append(w.text, w.hex...), r)
	w.fail(r, "hex digit")
	return proceed
}
