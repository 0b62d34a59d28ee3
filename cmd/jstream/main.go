// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jstream reports the structure of JSON text, either as a stream of
// events or as a reduced value.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/creachadair/jstream"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// settings are the flags shared by all subcommands.
type settings struct {
	discard int
	chunk   int
	debug   bool
	timing  bool
	rate    float64
	hujson  bool

	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	s := new(settings)
	cmd := &cobra.Command{
		Use:          "jstream",
		Short:        "Report the structure of JSON text",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			s.log = newLogger(cmd.ErrOrStderr(), s.debug)
		},
	}

	pf := cmd.PersistentFlags()
	pf.IntVar(&s.discard, "discard", jstream.DefaultDiscard, "consumed bytes retained before trimming (negative to never trim)")
	pf.IntVar(&s.chunk, "chunk", jstream.DefaultChunkSize, "bytes read from the input at a time")
	pf.BoolVar(&s.debug, "debug", false, "log each step of the walker")
	pf.BoolVar(&s.timing, "time", false, "log the elapsed time to process the input")
	pf.Float64Var(&s.rate, "rate", 0, "limit input to this many bytes per second (0 for no limit)")
	pf.BoolVar(&s.hujson, "hujson", false, "accept comments and trailing commas (JWCC) in the input")

	cmd.AddCommand(newEventsCmd(s), newParseCmd(s))
	return cmd
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
		cw.Out = w
		cw.TimeFormat = time.TimeOnly
	})
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// options returns walker options for the current settings.
func (s *settings) options() *jstream.Options {
	return &jstream.Options{
		Discard:   s.discard,
		ChunkSize: s.chunk,
		Debug:     s.debug,
		Logger:    &s.log,
	}
}

// timed runs f and, if timing is enabled, logs how long it took.
func (s *settings) timed(name, what string, f func() error) error {
	start := time.Now()
	err := f()
	if s.timing {
		s.log.Info().Str("input", name).Dur("elapsed", time.Since(start)).Msg(what)
	}
	return err
}

// inputName returns the input path named by args, or "" for stdin.
func inputName(args []string) string {
	if len(args) == 0 || args[0] == "-" {
		return ""
	}
	return args[0]
}
