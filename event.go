// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"fmt"

	"github.com/creachadair/jstream/internal/escape"
	"go4.org/mem"
)

// Kind identifies the type of an Event.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid     Kind = iota // invalid event
	BeginArray              // open bracket "["
	EndArray                // close bracket "]"
	BeginObject             // open brace "{"
	EndObject               // close brace "}"
	Property                // object member name
	String                  // string value
	Number                  // number value
	Literal                 // constant: true, false, null
	Error                   // syntax error
	End                     // end of input
)

var kindStr = [...]string{
	Invalid:     "Invalid",
	BeginArray:  "BeginArray",
	EndArray:    "EndArray",
	BeginObject: "BeginObject",
	EndObject:   "EndObject",
	Property:    "Property",
	String:      "String",
	Number:      "Number",
	Literal:     "Literal",
	Error:       "Error",
	End:         "End",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[k]
}

// An Event is a single notification from a Walker.
type Event struct {
	Kind Kind
	Pos  LineCol // where the token begins

	// Text is the decoded name of a Property, the decoded contents of a
	// String, the source text of a Number, or the spelling of a Literal.
	Text string

	// Value is the string, float64, bool or nil value of a data event.
	Value any

	Err *SyntaxError // for Error events only
}

func (e Event) String() string {
	switch e.Kind {
	case Property, String:
		return fmt.Sprintf("%s %s", e.Kind, quote(e.Text))
	case Number, Literal:
		return fmt.Sprintf("%s %s", e.Kind, e.Text)
	case Error:
		return fmt.Sprintf("%s %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func quote(s string) string { return `"` + string(escape.Quote(mem.S(s))) + `"` }

// A Handler receives events from a Walker, in document order. Each method is
// passed the location where the corresponding token begins.
//
// Error events are diagnostic: the walker continues after reporting them.
// End is called exactly once, after every other event.
type Handler interface {
	// Begin a new array, whose open bracket is at pos.
	BeginArray(pos LineCol)

	// End the most-recently-opened array, whose close bracket is at pos.
	EndArray(pos LineCol)

	// Begin a new object, whose open brace is at pos.
	BeginObject(pos LineCol)

	// End the most-recently-opened object, whose close brace is at pos.
	EndObject(pos LineCol)

	// Report the decoded name of an object member. The member's value is
	// reported by the next value event.
	Property(name string, pos LineCol)

	// Report a decoded string value.
	String(s string, pos LineCol)

	// Report a number value along with its source text.
	Number(v float64, text string, pos LineCol)

	// Report a constant: true, false, or nil for null.
	Literal(v any, pos LineCol)

	// Report a syntax error.
	Error(err *SyntaxError)

	// End reports the end of the input stream.
	End(pos LineCol)
}

// HandlerFunc adapts a function receiving Event values to the Handler
// interface.
type HandlerFunc func(Event)

func (f HandlerFunc) BeginArray(pos LineCol)  { f(Event{Kind: BeginArray, Pos: pos}) }
func (f HandlerFunc) EndArray(pos LineCol)    { f(Event{Kind: EndArray, Pos: pos}) }
func (f HandlerFunc) BeginObject(pos LineCol) { f(Event{Kind: BeginObject, Pos: pos}) }
func (f HandlerFunc) EndObject(pos LineCol)   { f(Event{Kind: EndObject, Pos: pos}) }
func (f HandlerFunc) End(pos LineCol)         { f(Event{Kind: End, Pos: pos}) }

func (f HandlerFunc) Property(name string, pos LineCol) {
	f(Event{Kind: Property, Pos: pos, Text: name, Value: name})
}

func (f HandlerFunc) String(s string, pos LineCol) {
	f(Event{Kind: String, Pos: pos, Text: s, Value: s})
}

func (f HandlerFunc) Number(v float64, text string, pos LineCol) {
	f(Event{Kind: Number, Pos: pos, Text: text, Value: v})
}

func (f HandlerFunc) Literal(v any, pos LineCol) {
	f(Event{Kind: Literal, Pos: pos, Text: literalText(v), Value: v})
}

func (f HandlerFunc) Error(err *SyntaxError) {
	f(Event{Kind: Error, Pos: err.Location, Err: err})
}

func literalText(v any) string {
	switch v {
	case true:
		return "true"
	case false:
		return "false"
	}
	return "null"
}

// A Recorder is a Handler that saves every event it receives.
type Recorder struct {
	Events []Event
}

// Handler returns a Handler that appends to r.Events.
func (r *Recorder) Handler() Handler {
	return HandlerFunc(func(e Event) { r.Events = append(r.Events, e) })
}

// Errors returns the syntax errors recorded so far, in order.
func (r *Recorder) Errors() []*SyntaxError {
	var errs []*SyntaxError
	for _, e := range r.Events {
		if e.Kind == Error {
			errs = append(errs, e.Err)
		}
	}
	return errs
}
