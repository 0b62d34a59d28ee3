// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import "github.com/creachadair/jstream/internal/buffer"

// A scope is an array or object awaiting its terminator.
type scope byte

const (
	arrayScope scope = iota
	objectScope
)

func (s scope) terminator() string {
	if s == arrayScope {
		return "]"
	}
	return "}"
}

// content is the state that parses the next element of s.
func (s scope) content() state {
	if s == arrayScope {
		return stValue
	}
	return stProperty
}

// value dispatches on the first character of a value.
func (w *Walker) value() action {
	r, st, ok := w.skipSpace()
	if !ok {
		return proceed
	} else if st != buffer.Ready {
		return w.wait(st)
	}
	w.next()
	w.start = w.pos.Previous

	switch r {
	case '[':
		w.openScope(arrayScope)
	case '{':
		w.openScope(objectScope)
	case '"':
		w.beginString(false)
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '-', '.':
		w.beginNumber(r)
	case 'f':
		w.beginLiteral("alse", false)
	case 'n':
		w.beginLiteral("ull", nil)
	case 't':
		w.beginLiteral("rue", true)
	default:
		// Report the character and try again at the next one.
		w.fail(r, "value")
	}
	return proceed
}

func (w *Walker) openScope(s scope) {
	w.scopes.Push(s)
	w.state = stOpen
	if s == arrayScope {
		w.h.BeginArray(w.start)
	} else {
		w.h.BeginObject(w.start)
	}
}

// open checks for the terminator of a scope that has just been opened.
func (w *Walker) open() action {
	r, st, ok := w.skipSpace()
	if !ok {
		return proceed
	} else if st != buffer.Ready {
		return w.wait(st)
	}
	top := w.scopes.Top()
	if string(r) == top.terminator() {
		w.closeScope(top)
	} else {
		w.state = top.content()
	}
	return proceed
}

// closeScope consumes the terminator of s, which must be the next character.
func (w *Walker) closeScope(s scope) {
	w.next()
	w.scopes.Pop()
	w.state = stEndValue
	if s == arrayScope {
		w.h.EndArray(w.pos.Previous)
	} else {
		w.h.EndObject(w.pos.Previous)
	}
}

// endValue handles what follows a complete value: the end of the input, the
// end of a scope, or a separator.
func (w *Walker) endValue() action {
	r, st, ok := w.skipSpace()
	if !ok {
		return proceed
	} else if st != buffer.Ready {
		return w.wait(st)
	}

	if w.scopes.IsEmpty() {
		// Only whitespace may follow a top-level value.
		w.state = stValue
		w.failAt(string(r), EOF, w.pos.Current)
		return proceed
	}
	top := w.scopes.Top()
	switch {
	case string(r) == top.terminator():
		w.closeScope(top)
	case r == ',':
		w.next()
		w.state = top.content()
	default:
		w.state = top.content()
		w.failAt(string(r), ",", w.pos.Current)
	}
	return proceed
}

// property reads the opening quote of an object member name.
func (w *Walker) property() action {
	r, st, ok := w.skipSpace()
	if !ok {
		return proceed
	} else if st != buffer.Ready {
		return w.wait(st)
	}
	w.next()
	w.start = w.pos.Previous
	w.beginString(true)
	if r != '"' {
		w.fail(r, `"`)
	}
	return proceed
}

// colon reads the separator between a member name and its value.
func (w *Walker) colon() action {
	r, st, ok := w.skipSpace()
	if !ok {
		return proceed
	} else if st != buffer.Ready {
		return w.wait(st)
	}
	w.next()
	w.state = stValue
	if r != ':' {
		w.fail(r, ":")
	}
	return proceed
}
