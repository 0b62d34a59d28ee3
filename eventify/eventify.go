// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package eventify reports the structure of in-memory Go values as
// jstream events, in the same vocabulary a jstream.Walker uses for JSON text.
//
// The events for a value v match those a walker reports for the output of
// json.Marshal(v), apart from their locations, which are all zero.
package eventify

import (
	"encoding/base64"
	"encoding/json"
	"math"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/creachadair/jstream"
	"github.com/rs/zerolog"
)

// A Policy says how values of a particular type are handled.
type Policy int

const (
	Coerce Policy = iota // convert to a JSON value (the default)
	Ignore               // skip the value entirely
)

// Options control the behavior of Walk. A nil *Options is ready for use and
// provides default values.
type Options struct {
	// Dates controls how time.Time values are reported. When coerced, they
	// are reported as strings in RFC 3339 format.
	Dates Policy

	// Maps controls how maps are reported. When coerced, maps with string or
	// integer keys are reported as objects whose members are in key order.
	Maps Policy

	// Iterables controls how channels and iterator functions are reported.
	// When coerced, a channel that can receive, or a function with the shape
	// of an iter.Seq, is reported as an array of the values it produces. An
	// iter.Seq2 is reported as an array of two-element [key, value] arrays.
	// Walk receives from a channel until it is closed.
	Iterables Policy

	// If true, log each value visited at debug level.
	Debug bool

	// Logger receives debug logs when Debug is true. If nil, logs are written
	// to stderr.
	Logger *zerolog.Logger
}

func (o *Options) dates() Policy {
	if o == nil {
		return Coerce
	}
	return o.Dates
}

func (o *Options) maps() Policy {
	if o == nil {
		return Coerce
	}
	return o.Maps
}

func (o *Options) iterables() Policy {
	if o == nil {
		return Coerce
	}
	return o.Iterables
}

func (o *Options) logger() zerolog.Logger {
	if o == nil || !o.Debug {
		return zerolog.Nop()
	} else if o.Logger != nil {
		return o.Logger.With().Str("component", "eventify").Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Str("component", "eventify").Logger()
}

// Walk traverses v depth-first and reports its structure to h, followed by
// a single End event. Values with no JSON form (functions other than
// iterators, send-only or nil channels, complex numbers, and anything the
// options say to ignore) are skipped: an object member whose value is
// skipped is not reported at all.
//
// A value that implements json.Marshaler is reported as the events of its
// encoding. Cycles through pointers are broken by skipping the repeated
// value.
func Walk(v any, h jstream.Handler, opts *Options) {
	w := &walker{
		h:     h,
		opts:  opts,
		log:   opts.logger(),
		debug: opts != nil && opts.Debug,
		seen:  make(map[uintptr]bool),
	}
	if v != nil {
		w.value(reflect.ValueOf(v))
	} else {
		w.h.Literal(nil, zero)
	}
	w.log.Debug().Msg("end")
	h.End(zero)
}

var zero jstream.LineCol

var (
	timeType      = reflect.TypeFor[time.Time]()
	numberType    = reflect.TypeFor[json.Number]()
	marshalerType = reflect.TypeFor[json.Marshaler]()
)

type walker struct {
	h     jstream.Handler
	opts  *Options
	log   zerolog.Logger
	debug bool
	seen  map[uintptr]bool // pointers on the current path
}

// skip reports whether v produces no events at all.
func (w *walker) skip(v reflect.Value) bool {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return false
		}
		if v.Kind() == reflect.Pointer && w.seen[v.Pointer()] {
			return true
		}
		if v.Type() == reflect.PointerTo(timeType) {
			return w.opts.dates() == Ignore
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Invalid, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Chan:
		return v.IsNil() || v.Type().ChanDir()&reflect.RecvDir == 0 || w.opts.iterables() == Ignore
	case reflect.Func:
		return v.IsNil() || seqArity(v.Type()) == 0 || w.opts.iterables() == Ignore
	case reflect.Map:
		if w.opts.maps() == Ignore {
			return true
		}
		switch v.Type().Key().Kind() {
		case reflect.String,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return false
		}
		return true
	case reflect.Struct:
		return v.Type() == timeType && w.opts.dates() == Ignore
	}
	return false
}

func (w *walker) value(v reflect.Value) {
	if w.skip(v) {
		if w.debug {
			w.log.Debug().Stringer("kind", v.Kind()).Msg("skip")
		}
		return
	}
	if w.debug {
		w.log.Debug().Stringer("kind", v.Kind()).Msg("value")
	}

	// Special cases, before unwrapping.
	switch {
	case v.Type() == timeType:
		w.h.String(v.Interface().(time.Time).Format(time.RFC3339Nano), zero)
		return
	case v.Type() == numberType:
		if v.String() == "" {
			w.number("0")
		} else {
			w.number(v.String())
		}
		return
	case v.Type().Implements(marshalerType) && !isNil(v):
		w.marshal(v.Interface().(json.Marshaler))
		return
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			w.h.Literal(nil, zero)
		} else {
			w.value(v.Elem())
		}

	case reflect.Pointer:
		if v.IsNil() {
			w.h.Literal(nil, zero)
			return
		}
		p := v.Pointer()
		w.seen[p] = true
		w.value(v.Elem())
		delete(w.seen, p)

	case reflect.Bool:
		w.h.Literal(v.Bool(), zero)

	case reflect.String:
		w.h.String(v.String(), zero)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w.number(strconv.FormatInt(v.Int(), 10))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		w.number(strconv.FormatUint(v.Uint(), 10))

	case reflect.Float32, reflect.Float64:
		w.float(v.Float(), v.Type().Bits())

	case reflect.Slice:
		if v.IsNil() {
			w.h.Literal(nil, zero)
		} else if v.Type().Elem().Kind() == reflect.Uint8 {
			w.h.String(base64.StdEncoding.EncodeToString(v.Bytes()), zero)
		} else {
			w.array(v)
		}

	case reflect.Array:
		w.array(v)

	case reflect.Map:
		if v.IsNil() {
			w.h.Literal(nil, zero)
		} else {
			w.object(v)
		}

	case reflect.Struct:
		w.h.BeginObject(zero)
		w.fields(v)
		w.h.EndObject(zero)

	case reflect.Chan:
		w.h.BeginArray(zero)
		for elt := range v.Seq() {
			w.value(elt)
		}
		w.h.EndArray(zero)

	case reflect.Func:
		w.h.BeginArray(zero)
		if seqArity(v.Type()) == 1 {
			for elt := range v.Seq() {
				w.value(elt)
			}
		} else {
			for key, elt := range v.Seq2() {
				w.h.BeginArray(zero)
				w.value(key)
				w.value(elt)
				w.h.EndArray(zero)
			}
		}
		w.h.EndArray(zero)
	}
}

// seqArity reports 1 if t has the shape of an iter.Seq, 2 if it has the shape
// of an iter.Seq2, and otherwise 0.
func seqArity(t reflect.Type) int {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 || t.IsVariadic() {
		return 0
	}
	yield := t.In(0)
	if yield.Kind() != reflect.Func || yield.IsVariadic() ||
		yield.NumOut() != 1 || yield.Out(0).Kind() != reflect.Bool {
		return 0
	}
	if n := yield.NumIn(); n == 1 || n == 2 {
		return n
	}
	return 0
}

func (w *walker) array(v reflect.Value) {
	w.h.BeginArray(zero)
	for i := range v.Len() {
		w.value(v.Index(i))
	}
	w.h.EndArray(zero)
}

func (w *walker) object(v reflect.Value) {
	type member struct {
		key string
		val reflect.Value
	}
	var mems []member
	iter := v.MapRange()
	for iter.Next() {
		k := iter.Key()
		var key string
		switch k.Kind() {
		case reflect.String:
			key = k.String()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			key = strconv.FormatInt(k.Int(), 10)
		default:
			key = strconv.FormatUint(k.Uint(), 10)
		}
		mems = append(mems, member{key, iter.Value()})
	}
	slices.SortFunc(mems, func(a, b member) int { return strings.Compare(a.key, b.key) })

	w.h.BeginObject(zero)
	for _, m := range mems {
		w.member(m.key, m.val)
	}
	w.h.EndObject(zero)
}

// fields reports the exported fields of struct v. Untagged embedded structs
// contribute their fields directly.
func (w *walker) fields(v reflect.Value) {
	t := v.Type()
	for i := range t.NumField() {
		ft := t.Field(i)
		tag := ft.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fv := v.Field(i)
		if ft.Anonymous && name == "" {
			et := ft.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if et.Kind() == reflect.Struct {
				w.fields(fv)
				continue
			}
		}
		if !ft.IsExported() {
			continue
		}
		if name == "" {
			name = ft.Name
		}
		if hasOption(opts, "omitempty") && isEmpty(fv) {
			continue
		}
		if hasOption(opts, "omitzero") && fv.IsZero() {
			continue
		}
		w.member(name, fv)
	}
}

func (w *walker) member(key string, v reflect.Value) {
	if w.skip(v) {
		return
	}
	w.h.Property(key, zero)
	w.value(v)
}

func (w *walker) number(text string) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		w.h.Error(&jstream.SyntaxError{Actual: text, Expected: "number"})
		return
	}
	w.h.Number(f, text, zero)
}

// float reports f formatted as encoding/json does.
func (w *walker) float(f float64, bits int) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		w.h.Error(&jstream.SyntaxError{Actual: strconv.FormatFloat(f, 'g', -1, bits), Expected: "number"})
		return
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) || bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}
	b := strconv.AppendFloat(nil, f, format, -1, bits)
	if format == 'e' {
		// Trim a leading zero from a two-digit exponent: e-07 → e-7.
		if n := len(b); n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	w.number(string(b))
}

// marshal reports the events of the JSON encoding of m.
func (w *walker) marshal(m json.Marshaler) {
	data, err := m.MarshalJSON()
	if err != nil {
		w.log.Debug().Err(err).Msg("marshal failed")
		w.h.Error(&jstream.SyntaxError{Actual: err.Error(), Expected: "value"})
		return
	}
	jstream.WalkString(string(data), relay{w.h}, nil)
}

// relay forwards events to a handler, except for End.
type relay struct{ jstream.Handler }

func (relay) End(jstream.LineCol) {}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}
