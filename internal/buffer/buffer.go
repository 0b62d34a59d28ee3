// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package buffer implements the append-only input buffer of a walker.
//
// Text is appended in chunks and consumed from the front. Once more than a
// threshold of bytes has been consumed, the consumed prefix is dropped on the
// next append. Offsets reported by the buffer are absolute: they count every
// byte ever consumed, and are not affected by trimming.
package buffer

import (
	"fmt"

	"go4.org/mem"
)

// Status reports the availability of the next character.
type Status byte

const (
	Ready     Status = iota // a complete character is available
	Starved                 // more input may arrive
	Exhausted               // the input has ended
)

var statusStr = [...]string{Ready: "ready", Starved: "starved", Exhausted: "exhausted"}

func (s Status) String() string {
	if int(s) >= len(statusStr) {
		return fmt.Sprintf("Status(%d)", s)
	}
	return statusStr[s]
}

// A Buffer holds input text that has not yet been consumed.
type Buffer struct {
	data    []byte
	off     int // consumed offset within data
	base    int // absolute offset of data[0]
	discard int // trim threshold; <= 0 means never
	ended   bool
}

// New constructs an empty buffer that drops consumed text once more than
// discard bytes of it have accumulated. If discard <= 0, consumed text is
// never dropped.
func New(discard int) *Buffer { return &Buffer{discard: discard} }

// Append adds a copy of p to the end of the buffer.
func (b *Buffer) Append(p []byte) { b.trim(); b.data = append(b.data, p...) }

// AppendString adds a copy of s to the end of the buffer.
func (b *Buffer) AppendString(s string) { b.trim(); b.data = append(b.data, s...) }

func (b *Buffer) trim() {
	if b.discard <= 0 || b.off <= b.discard {
		return
	}
	n := copy(b.data, b.data[b.off:])
	clear(b.data[n:])
	b.data = b.data[:n]
	b.base += b.off
	b.off = 0
}

// End records that no further text will be appended.
func (b *Buffer) End() { b.ended = true }

// Ended reports whether End has been called.
func (b *Buffer) Ended() bool { return b.ended }

// Len reports the number of unconsumed bytes.
func (b *Buffer) Len() int { return len(b.data) - b.off }

// Retained reports the number of bytes held by the buffer, including consumed
// bytes not yet discarded.
func (b *Buffer) Retained() int { return len(b.data) }

// Offset reports the absolute offset of the next unconsumed byte.
func (b *Buffer) Offset() int { return b.base + b.off }

// Unread returns a read-only view of the unconsumed text. The view is only
// valid until the next call to Append.
func (b *Buffer) Unread() mem.RO { return mem.B(b.data[b.off:]) }

// Peek decodes the next character without consuming it, reporting its size
// in bytes. If the status is not Ready, no character is available.
//
// A character split across appends is not Ready until it is complete. At the
// end of input, an invalid or truncated encoding is reported as a single
// byte of utf8.RuneError.
func (b *Buffer) Peek() (rune, int, Status) {
	u := b.Unread()
	if u.Len() == 0 {
		if b.ended {
			return 0, 0, Exhausted
		}
		return 0, 0, Starved
	} else if !b.ended && !mem.FullRune(u) {
		return 0, 0, Starved
	}
	r, n := mem.DecodeRune(u)
	return r, n, Ready
}

// AtEnd reports whether every byte appended so far has been consumed. It does
// not block or consider whether more input may arrive.
func (b *Buffer) AtEnd() bool { return b.off == len(b.data) }

// Consume discards the next n bytes. It panics if fewer than n bytes are
// unconsumed.
func (b *Buffer) Consume(n int) {
	if n < 0 || n > b.Len() {
		panic(fmt.Sprintf("buffer: consume %d of %d bytes", n, b.Len()))
	}
	b.off += n
}

// Release drops all buffered text and marks the buffer ended.
func (b *Buffer) Release() {
	b.base += len(b.data)
	b.data, b.off = nil, 0
	b.ended = true
}
