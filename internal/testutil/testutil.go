// Package testutil defines support code for unit tests.
package testutil

import (
	"math/rand/v2"

	"github.com/creachadair/jstream"
)

// Walk pushes each of chunks to a new walker in turn, ends the input, and
// returns the events reported.
func Walk(opts *jstream.Options, chunks ...string) []jstream.Event {
	var rec jstream.Recorder
	w := jstream.New(rec.Handler(), opts)
	for _, c := range chunks {
		w.PushString(c)
	}
	w.End()
	return rec.Events
}

// Render returns the string form of each event, or nil if there are none.
func Render(evs []jstream.Event) []string {
	if len(evs) == 0 {
		return nil
	}
	out := make([]string, len(evs))
	for i, e := range evs {
		out[i] = e.String()
	}
	return out
}

// Chunks splits s into pieces of n bytes each, except possibly the last.
// Pieces may split multi-byte characters.
func Chunks(s string, n int) []string {
	var out []string
	for len(s) > n {
		out = append(out, s[:n])
		s = s[n:]
	}
	if s != "" {
		out = append(out, s)
	}
	return out
}

// RandomChunks splits s into non-empty pieces of random lengths, using a
// generator seeded with seed.
func RandomChunks(s string, seed uint64) []string {
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))
	var out []string
	for s != "" {
		n := 1 + rng.IntN(min(len(s), 8))
		out = append(out, s[:n])
		s = s[n:]
	}
	return out
}
