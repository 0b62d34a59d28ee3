// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

const streamInput = `{"list": [{"x": 1}, {"x": 2}], "y": {"hello": "there"},
  "o": ["hi", "yourself"], "xyz": {"p": true, "d": null, "q": false}}`

func TestWalk(t *testing.T) {
	want := testutil.Walk(nil, streamInput)

	readers := map[string]func() io.Reader{
		"Whole":   func() io.Reader { return strings.NewReader(streamInput) },
		"OneByte": func() io.Reader { return iotest.OneByteReader(strings.NewReader(streamInput)) },
		"Half":    func() io.Reader { return iotest.HalfReader(strings.NewReader(streamInput)) },
		"DataErr": func() io.Reader { return iotest.DataErrReader(strings.NewReader(streamInput)) },
	}
	for name, newReader := range readers {
		t.Run(name, func(t *testing.T) {
			var rec jstream.Recorder
			err := jstream.Walk(context.Background(), newReader(), rec.Handler(), &jstream.Options{ChunkSize: 5})
			if err != nil {
				t.Fatalf("Walk: unexpected error: %v", err)
			}
			if diff := cmp.Diff(want, rec.Events); diff != "" {
				t.Errorf("Events: (-want, +got)\n%s", diff)
			}
		})
	}
}

func TestWalkErrors(t *testing.T) {
	t.Run("ReadError", func(t *testing.T) {
		boom := errors.New("boom")
		r := io.MultiReader(strings.NewReader(`[1, 2`), iotest.ErrReader(boom))

		var rec jstream.Recorder
		err := jstream.Walk(context.Background(), r, rec.Handler(), nil)
		if !errors.Is(err, boom) {
			t.Errorf("Walk: got error %v, want %v", err, boom)
		}
		want := []string{
			"BeginArray",
			"Number 1",
			"Number 2",
			`Error at 1:6: expected "]", got EOF`,
			"End",
		}
		if diff := cmp.Diff(want, testutil.Render(rec.Events)); diff != "" {
			t.Errorf("Events: (-want, +got)\n%s", diff)
		}
	})

	t.Run("Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var rec jstream.Recorder
		err := jstream.Walk(ctx, strings.NewReader(streamInput), rec.Handler(), nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Walk: got error %v, want %v", err, context.Canceled)
		}
		if diff := cmp.Diff([]string{"End"}, testutil.Render(rec.Events)); diff != "" {
			t.Errorf("Events: (-want, +got)\n%s", diff)
		}
	})
}

func TestWalkerWriter(t *testing.T) {
	var rec jstream.Recorder
	w := jstream.New(rec.Handler(), nil)
	if _, err := io.Copy(w, iotest.OneByteReader(strings.NewReader(streamInput))); err != nil {
		t.Fatalf("Copy: unexpected error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: unexpected error: %v", err)
	}
	if diff := cmp.Diff(testutil.Walk(nil, streamInput), rec.Events); diff != "" {
		t.Errorf("Events: (-want, +got)\n%s", diff)
	}
}
