// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"github.com/creachadair/jstream/internal/buffer"
	"github.com/creachadair/jstream/internal/escape"
	"github.com/creachadair/jstream/internal/sched"
	"github.com/creachadair/mds/stack"
	"github.com/rs/zerolog"
)

// A state is the position of the walker in the grammar.
type state byte

const (
	stValue    state = iota // awaiting a value
	stOpen                  // just opened an aggregate
	stEndValue              // a value has completed
	stProperty              // awaiting the opening quote of a member name
	stColon                 // awaiting ":" after a member name
	stString                // inside a string
	stEscape                // after "\" in a string
	stHex                   // inside a "\u" escape
	stNumber                // inside a number
	stLiteral               // inside true, false or null
	stDone                  // End has been reported
)

var stateStr = [...]string{
	stValue:    "value",
	stOpen:     "open",
	stEndValue: "end-value",
	stProperty: "property",
	stColon:    "colon",
	stString:   "string",
	stEscape:   "escape",
	stHex:      "hex",
	stNumber:   "number",
	stLiteral:  "literal",
	stDone:     "done",
}

func (s state) String() string { return stateStr[s] }

// An action tells the scheduler what to do after a step.
type action byte

const (
	proceed action = iota // run another step on a later turn
	suspend               // park until more input or the end of input
	halt                  // the walk is finished
)

// A Walker is an incremental JSON parser. Text is pushed into the walker in
// chunks of any size, and the walker reports the structure of the text to a
// Handler as soon as each token is complete.
//
// The walker never fails: malformed input is reported to the handler as an
// Error event, and parsing continues. Every walk ends with exactly one End
// event, after the input source calls End or Close.
//
// A Walker is not safe for concurrent use.
type Walker struct {
	h      Handler
	log    zerolog.Logger
	debug  bool
	buf    *buffer.Buffer
	pos    Position
	scopes *stack.Stack[scope]
	sched  *sched.Scheduler
	stepFn sched.Task

	state state
	begun bool
	done  bool

	// Token scratch, reset at the start of each token.
	start    LineCol      // where the current token began
	inString bool         // a string is open
	member   bool         // the open string is a member name
	text     []byte       // decoded string, or number text
	units    escape.Units // pending surrogate in a string
	hex      []byte       // hex digits of a \u escape
	hexRead  int          // characters read in a \u escape
	num      numPhase
	lit      litMatch
}

// New constructs a Walker that reports events to h. If opts == nil, default
// options are used.
func New(h Handler, opts *Options) *Walker {
	w := &Walker{
		h:      h,
		log:    opts.logger(),
		debug:  opts != nil && opts.Debug,
		buf:    buffer.New(opts.discard()),
		pos:    startPosition(),
		scopes: stack.New[scope](),
		sched:  sched.New(),
	}
	w.stepFn = w.step
	return w
}

// Push delivers the next chunk of input text to w, and runs the walker until
// it needs more input. Empty chunks and chunks pushed after the walk has
// ended are ignored.
func (w *Walker) Push(chunk []byte) {
	if len(chunk) == 0 || w.done {
		return
	}
	w.buf.Append(chunk)
	w.resume()
}

// PushString delivers the next chunk of input text to w. It behaves like
// Push.
func (w *Walker) PushString(chunk string) {
	if len(chunk) == 0 || w.done {
		return
	}
	w.buf.AppendString(chunk)
	w.resume()
}

// Write implements io.Writer by pushing p to w. It never reports an error.
func (w *Walker) Write(p []byte) (int, error) { w.Push(p); return len(p), nil }

// End reports that no further input will be pushed to w. The walker consumes
// any remaining input, reports errors for any incomplete structure, and
// reports End. Calling End more than once has no further effect.
func (w *Walker) End() {
	if w.buf.Ended() {
		return
	}
	w.buf.End()
	w.resume()
}

// Close ends the input to w if that has not already been done, and releases
// the input buffer. It implements io.Closer, and always returns nil.
func (w *Walker) Close() error {
	w.End()
	if !w.done {
		// A handler method called Close while a walk was in progress.
		w.finish()
	}
	w.buf.Release()
	return nil
}

// Done reports whether w has reported End.
func (w *Walker) Done() bool { return w.done }

// Position reports how far w has read into its input.
func (w *Walker) Position() Position { return w.pos }

// Buffered reports the number of bytes of input text currently held by w.
func (w *Walker) Buffered() int { return w.buf.Retained() }

// Depth reports the number of arrays and objects currently open.
func (w *Walker) Depth() int { return w.scopes.Len() }

func (w *Walker) resume() {
	if !w.begun {
		w.begun = true
		w.sched.Defer(w.stepFn)
	} else {
		w.sched.Wake()
	}
	w.sched.Run()
}

// step runs the handler for the current state and schedules what follows.
func (w *Walker) step() {
	if w.debug {
		w.log.Debug().
			Stringer("state", w.state).
			Int("index", w.pos.Index).
			Int("line", w.pos.Current.Line).
			Int("column", w.pos.Current.Column).
			Int("depth", w.scopes.Len()).
			Bool("at_end", w.atEnd()).
			Msg("step")
	}
	switch w.dispatch() {
	case proceed:
		w.sched.Defer(w.stepFn)
	case suspend:
		w.sched.Delay(w.stepFn)
	}
}

func (w *Walker) dispatch() action {
	switch w.state {
	case stValue:
		return w.value()
	case stOpen:
		return w.open()
	case stEndValue:
		return w.endValue()
	case stProperty:
		return w.property()
	case stColon:
		return w.colon()
	case stString:
		return w.stringChar()
	case stEscape:
		return w.escapeChar()
	case stHex:
		return w.hexChar()
	case stNumber:
		return w.number()
	case stLiteral:
		return w.literal()
	}
	return halt
}

// finish reports errors for whatever structure is still open, then End.
func (w *Walker) finish() action {
	if w.done {
		return halt
	}
	if w.inString {
		w.inString = false
		w.failAt(EOF, `"`, w.pos.Current)
	}
	for {
		s, ok := w.scopes.Pop()
		if !ok {
			break
		}
		w.failAt(EOF, s.terminator(), w.pos.Current)
	}
	w.state, w.done = stDone, true
	w.sched.Stop()
	w.log.Debug().Int("index", w.pos.Index).Msg("end")

	// Nothing is reported after End, even if a handler re-enters the walker.
	h := w.h
	w.h = discard
	h.End(w.pos.Current)
	return halt
}

var discard Handler = HandlerFunc(func(Event) {})

// fail reports that the character just consumed was not what was expected.
func (w *Walker) fail(actual rune, expected string) {
	w.failAt(string(actual), expected, w.pos.Previous)
}

func (w *Walker) failAt(actual, expected string, at LineCol) {
	w.h.Error(&SyntaxError{Actual: actual, Expected: expected, Location: at})
}
