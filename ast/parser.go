// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/eventify"
	"github.com/creachadair/mds/stack"
)

// ErrIncomplete is reported by Result if the walker has not yet reported the
// end of its input.
var ErrIncomplete = errors.New("incomplete input")

// Parse parses and returns the JSON value from r. It returns the first syntax
// error in the input, if any, as a *jstream.SyntaxError. If r is empty or
// contains only whitespace, Parse returns nil, nil.
func Parse(r io.Reader, opts *jstream.Options) (Value, error) {
	return ParseContext(context.Background(), r, opts)
}

// ParseContext is as Parse, but stops reading when ctx ends.
func ParseContext(ctx context.Context, r io.Reader, opts *jstream.Options) (Value, error) {
	red := NewReducer()
	if err := jstream.Walk(ctx, r, red, opts); err != nil {
		return nil, err
	}
	return red.Result()
}

// ParseString parses and returns the JSON value in s.
func ParseString(s string, opts *jstream.Options) (Value, error) {
	return Parse(strings.NewReader(s), opts)
}

// ReadFile parses and returns the JSON value stored in the named file.
func ReadFile(path string, opts *jstream.Options) (Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	v, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// FromValue constructs a syntax tree for the JSON structure of v, as
// reported by eventify.Walk. Locations in the tree are all zero.
func FromValue(v any, opts *eventify.Options) (Value, error) {
	r := NewReducer()
	eventify.Walk(v, r, opts)
	return r.Result()
}

// A Reducer implements the jstream.Handler interface to construct a syntax
// tree from the events of a walker. Once the reducer has seen an error, it
// ignores further structural events. The result is available from Result
// after the walker reports End.
type Reducer struct {
	root   Value
	open   *stack.Stack[Value] // unclosed arrays and objects
	member *Member             // a property awaiting its value
	err    *jstream.SyntaxError
	done   bool
}

// NewReducer constructs a new empty Reducer.
func NewReducer() *Reducer { return &Reducer{open: stack.New[Value]()} }

// Result reports the root value constructed by r, or the first syntax error
// reported to it. It reports ErrIncomplete if r has not received End.
func (r *Reducer) Result() (Value, error) {
	if !r.done {
		return nil, ErrIncomplete
	} else if r.err != nil {
		return nil, r.err
	}
	return r.root, nil
}

// add attaches v to the innermost open aggregate, or records it as the root.
func (r *Reducer) add(v Value) {
	if r.open.IsEmpty() {
		if r.root == nil {
			r.root = v
		}
		return
	}
	switch t := r.open.Top().(type) {
	case *Array:
		t.Values = append(t.Values, v)
	case *Object:
		if r.member != nil {
			r.member.Value = v
			r.member = nil
		}
	}
}

func (r *Reducer) skip() bool { return r.err != nil || r.done }

// BeginArray implements part of jstream.Handler.
func (r *Reducer) BeginArray(at jstream.LineCol) {
	if r.skip() {
		return
	}
	a := &Array{pos: pos(at)}
	r.add(a)
	r.open.Push(a)
}

// EndArray implements part of jstream.Handler.
func (r *Reducer) EndArray(jstream.LineCol) {
	if !r.skip() {
		r.open.Pop()
	}
}

// BeginObject implements part of jstream.Handler.
func (r *Reducer) BeginObject(at jstream.LineCol) {
	if r.skip() {
		return
	}
	o := &Object{pos: pos(at)}
	r.add(o)
	r.open.Push(o)
}

// EndObject implements part of jstream.Handler.
func (r *Reducer) EndObject(jstream.LineCol) {
	if !r.skip() {
		r.open.Pop()
		r.member = nil
	}
}

// Property implements part of jstream.Handler.
func (r *Reducer) Property(name string, at jstream.LineCol) {
	if r.skip() {
		return
	}
	if !r.open.IsEmpty() {
		if o, ok := r.open.Top().(*Object); ok {
			m := &Member{pos: pos(at), Key: name}
			o.Members = append(o.Members, m)
			r.member = m
		}
	}
}

// String implements part of jstream.Handler.
func (r *Reducer) String(s string, at jstream.LineCol) {
	if !r.skip() {
		r.add(&String{pos: pos(at), Value: s})
	}
}

// Number implements part of jstream.Handler.
func (r *Reducer) Number(v float64, text string, at jstream.LineCol) {
	if !r.skip() {
		r.add(&Number{pos: pos(at), Text: text, Value: v})
	}
}

// Literal implements part of jstream.Handler.
func (r *Reducer) Literal(v any, at jstream.LineCol) {
	if r.skip() {
		return
	}
	switch t := v.(type) {
	case bool:
		r.add(&Bool{pos: pos(at), Value: t})
	default:
		r.add(&Null{pos: pos(at)})
	}
}

// Error implements part of jstream.Handler. Only the first error is kept.
func (r *Reducer) Error(err *jstream.SyntaxError) {
	if r.err == nil && !r.done {
		r.err = err
	}
}

// End implements part of jstream.Handler.
func (r *Reducer) End(jstream.LineCol) { r.done = true }
