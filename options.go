// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"os"

	"github.com/rs/zerolog"
)

const (
	// DefaultDiscard is the default number of consumed bytes a walker retains
	// before dropping them.
	DefaultDiscard = 16384

	// DefaultChunkSize is the default number of bytes Walk reads at a time.
	DefaultChunkSize = 4096
)

// Options control the behavior of a Walker. A nil *Options is ready for use
// and provides default values. No option changes which events are reported.
type Options struct {
	// Discard is the number of consumed bytes retained before the walker
	// drops them to reclaim memory. If zero, DefaultDiscard is used.
	// If negative, consumed text is kept until the walker is closed.
	Discard int

	// ChunkSize is the number of bytes Walk reads from its input at a time.
	// If zero or negative, DefaultChunkSize is used.
	ChunkSize int

	// If true, log each step of the walker at debug level.
	Debug bool

	// Logger receives debug logs when Debug is true. If nil, logs are written
	// to stderr.
	Logger *zerolog.Logger
}

func (o *Options) discard() int {
	if o == nil || o.Discard == 0 {
		return DefaultDiscard
	}
	return o.Discard
}

func (o *Options) chunkSize() int {
	if o == nil || o.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return o.ChunkSize
}

func (o *Options) logger() zerolog.Logger {
	if o == nil || !o.Debug {
		return zerolog.Nop()
	} else if o.Logger != nil {
		return o.Logger.With().Str("component", "jstream").Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Str("component", "jstream").Logger()
}
