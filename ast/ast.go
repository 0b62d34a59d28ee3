// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a syntax tree for JSON values, and a Reducer that
// builds syntax trees from the events of a jstream.Walker.
package ast

import (
	"math"

	"github.com/creachadair/jstream"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// Pos reports the location where the value begins in its source.
	Pos() jstream.LineCol

	// Interface returns the value as a plain Go value, of the types the
	// encoding/json package produces when decoding into an empty interface:
	// map[string]any, []any, string, float64, bool, or nil.
	Interface() any
}

type pos jstream.LineCol

// Pos satisfies part of the Value interface.
func (p pos) Pos() jstream.LineCol { return jstream.LineCol(p) }

// An Object is a collection of key-value members, in source order.
type Object struct {
	pos
	Members []*Member
}

// Find returns the member of o with the given key, or nil. If o has more than
// one member with that key, Find returns the last, as Interface does.
func (o *Object) Find(key string) *Member {
	for i := len(o.Members) - 1; i >= 0; i-- {
		if o.Members[i].Key == key {
			return o.Members[i]
		}
	}
	return nil
}

// Len reports the number of members of o.
func (o *Object) Len() int { return len(o.Members) }

// Interface satisfies the Value interface.
func (o *Object) Interface() any {
	m := make(map[string]any, len(o.Members))
	for _, mem := range o.Members {
		m[mem.Key] = mem.Interface()
	}
	return m
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	pos
	Key   string
	Value Value
}

// Interface returns the plain value of m.Value. A member whose value was
// never reported has value nil.
func (m *Member) Interface() any {
	if m.Value == nil {
		return nil
	}
	return m.Value.Interface()
}

// An Array is a sequence of values.
type Array struct {
	pos
	Values []Value
}

// Len reports the number of elements of a.
func (a *Array) Len() int { return len(a.Values) }

// Interface satisfies the Value interface.
func (a *Array) Interface() any {
	vs := make([]any, len(a.Values))
	for i, v := range a.Values {
		vs[i] = v.Interface()
	}
	return vs
}

// A String is a string value, with escapes decoded.
type String struct {
	pos
	Value string
}

// Interface satisfies the Value interface.
func (s *String) Interface() any { return s.Value }

// A Number is a numeric value.
type Number struct {
	pos
	Text  string // as written in the source
	Value float64
}

// Interface satisfies the Value interface.
func (n *Number) Interface() any { return n.Value }

// IsInt reports whether n is an integer representable as an int64.
func (n *Number) IsInt() bool {
	return n.Value == math.Trunc(n.Value) && n.Value >= math.MinInt64 && n.Value < math.MaxInt64
}

// A Bool is a Boolean constant, true or false.
type Bool struct {
	pos
	Value bool
}

// Interface satisfies the Value interface.
func (b *Bool) Interface() any { return b.Value }

// Null represents the null constant.
type Null struct{ pos }

// Interface satisfies the Value interface.
func (Null) Interface() any { return nil }
