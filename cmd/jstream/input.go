// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/tailscale/hujson"
	"golang.org/x/time/rate"
)

// An input is a source of JSON text along with the resources that must be
// released when it is no longer needed.
type input struct {
	io.Reader
	closers []io.Closer
}

func (in *input) Close() error {
	var errs []error
	for i := len(in.closers) - 1; i >= 0; i-- {
		errs = append(errs, in.closers[i].Close())
	}
	return errors.Join(errs...)
}

// openInput opens the named file, or stdin if name == "". Compressed files
// are decompressed according to their extension. If hujson is enabled, the
// whole input is read and standardized to plain JSON. If a rate limit is
// set, reads are throttled to that many bytes per second.
func (s *settings) openInput(ctx context.Context, name string) (*input, error) {
	in := &input{Reader: os.Stdin}
	if name != "" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		in.Reader = f
		in.closers = append(in.closers, f)

		if err := in.decompress(filepath.Ext(name)); err != nil {
			in.Close()
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
	}

	if s.hujson {
		data, err := io.ReadAll(in.Reader)
		if err != nil {
			in.Close()
			return nil, fmt.Errorf("read input: %w", err)
		}
		std, err := hujson.Standardize(data)
		if err != nil {
			in.Close()
			return nil, fmt.Errorf("standardize input: %w", err)
		}
		s.log.Debug().Int("bytes", len(data)).Msg("standardized JWCC input")
		in.Reader = bytes.NewReader(std)
	}

	if s.rate > 0 {
		burst := max(s.chunk, 1)
		in.Reader = &throttled{
			ctx: ctx,
			r:   in.Reader,
			lim: rate.NewLimiter(rate.Limit(s.rate), burst),
		}
	}
	return in, nil
}

func (in *input) decompress(ext string) error {
	switch ext {
	case ".gz":
		zr, err := gzip.NewReader(in.Reader)
		if err != nil {
			return err
		}
		in.Reader = zr
		in.closers = append(in.closers, zr)

	case ".zst":
		zr, err := zstd.NewReader(in.Reader, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return err
		}
		rc := zr.IOReadCloser()
		in.Reader = rc
		in.closers = append(in.closers, rc)

	case ".lz4":
		in.Reader = lz4.NewReader(in.Reader)
	}
	return nil
}

// throttled is an io.Reader that delivers at most the limiter's rate of
// bytes per second.
type throttled struct {
	ctx context.Context
	r   io.Reader
	lim *rate.Limiter
}

func (t *throttled) Read(p []byte) (int, error) {
	if n := t.lim.Burst(); len(p) > n {
		p = p[:n]
	}
	if err := t.lim.WaitN(t.ctx, len(p)); err != nil {
		return 0, err
	}
	return t.r.Read(p)
}
