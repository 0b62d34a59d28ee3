// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package buffer_test

import (
	"testing"
	"unicode/utf8"

	"github.com/creachadair/jstream/internal/buffer"
	"github.com/creachadair/mds/mtest"
)

func TestPeek(t *testing.T) {
	b := buffer.New(0)
	if _, _, st := b.Peek(); st != buffer.Starved {
		t.Errorf("Peek empty: got %v, want %v", st, buffer.Starved)
	}

	// A character split across appends is not ready until it is complete.
	b.AppendString("a\xc3")
	if r, n, st := b.Peek(); r != 'a' || n != 1 || st != buffer.Ready {
		t.Errorf("Peek: got %q, %d, %v; want 'a', 1, ready", r, n, st)
	}
	b.Consume(1)
	if _, _, st := b.Peek(); st != buffer.Starved {
		t.Errorf("Peek partial: got %v, want %v", st, buffer.Starved)
	}
	b.Append([]byte{0xa9})
	if r, n, st := b.Peek(); r != 'é' || n != 2 || st != buffer.Ready {
		t.Errorf("Peek: got %q, %d, %v; want 'é', 2, ready", r, n, st)
	}
	b.Consume(2)
	if !b.AtEnd() {
		t.Error("AtEnd: got false, want true")
	}

	// At the end of input, a truncated character is reported as an error.
	b.AppendString("\xe2\x82")
	b.End()
	if r, n, st := b.Peek(); r != utf8.RuneError || n != 1 || st != buffer.Ready {
		t.Errorf("Peek truncated: got %q, %d, %v; want RuneError, 1, ready", r, n, st)
	}
	b.Consume(2)
	if _, _, st := b.Peek(); st != buffer.Exhausted {
		t.Errorf("Peek ended: got %v, want %v", st, buffer.Exhausted)
	}
	if got := b.Offset(); got != 5 {
		t.Errorf("Offset: got %d, want 5", got)
	}
}

func TestDiscard(t *testing.T) {
	b := buffer.New(4)
	b.AppendString("abcdef")
	b.Consume(5)
	if got := b.Retained(); got != 6 {
		t.Errorf("Retained before trim: got %d, want 6", got)
	}

	// The consumed prefix is dropped on the next append.
	b.AppendString("gh")
	if got := b.Retained(); got != 3 {
		t.Errorf("Retained after trim: got %d, want 3", got)
	}
	if got := b.Unread().StringCopy(); got != "fgh" {
		t.Errorf("Unread: got %q, want %q", got, "fgh")
	}
	if got := b.Offset(); got != 5 {
		t.Errorf("Offset: got %d, want 5", got)
	}

	// Below the threshold, nothing is dropped.
	b.Consume(2)
	b.AppendString("i")
	if got := b.Retained(); got != 4 {
		t.Errorf("Retained below threshold: got %d, want 4", got)
	}
	if got, want := b.Offset(), 7; got != want {
		t.Errorf("Offset: got %d, want %d", got, want)
	}
}

func TestNoDiscard(t *testing.T) {
	b := buffer.New(-1)
	for range 100 {
		b.AppendString("xyz")
		b.Consume(3)
	}
	if got := b.Retained(); got != 300 {
		t.Errorf("Retained: got %d, want 300", got)
	}
}

func TestRelease(t *testing.T) {
	b := buffer.New(0)
	b.AppendString("abc")
	b.Consume(1)
	b.Release()
	if !b.Ended() {
		t.Error("Ended after Release: got false, want true")
	}
	if b.Retained() != 0 || b.Len() != 0 {
		t.Errorf("After Release: retained %d, len %d; want 0, 0", b.Retained(), b.Len())
	}
}

func TestConsumeTooMuch(t *testing.T) {
	b := buffer.New(0)
	b.AppendString("ab")
	mtest.MustPanic(t, func() { b.Consume(3) })
	mtest.MustPanic(t, func() { b.Consume(-1) })
}
