// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"context"
	"fmt"
	"io"
)

// Walk reads text from r and reports its structure to h, until r is
// exhausted, a read fails, or ctx ends. Text is read in chunks of
// opts.ChunkSize bytes, and events are reported as soon as each chunk has
// been read. If opts == nil, default options are used.
//
// Walk reports an error only if reading r fails or ctx ends; syntax errors
// in the text are reported to h. In every case, h receives End before Walk
// returns.
func Walk(ctx context.Context, r io.Reader, h Handler, opts *Options) error {
	w := New(h, opts)
	defer w.Close()

	buf := make([]byte, opts.chunkSize())
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		nr, err := r.Read(buf)
		w.Push(buf[:nr])
		if err == io.EOF {
			w.End()
			return nil
		} else if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}
}

// WalkString reports the structure of s to h. It is a convenience for
// pushing s to a new walker in a single chunk and ending the input.
func WalkString(s string, h Handler, opts *Options) {
	w := New(h, opts)
	w.PushString(s)
	w.Close()
}
