// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bufio"
	"fmt"

	"github.com/creachadair/jstream"
	"github.com/spf13/cobra"
)

func newEventsCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "events [file]",
		Short: "Print the events reported for JSON text",
		Long: `Print one line for each event reported while walking the input.
The command fails if the input contains any syntax errors.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := inputName(args)
			in, err := s.openInput(cmd.Context(), name)
			if err != nil {
				return err
			}
			defer in.Close()

			out := bufio.NewWriter(cmd.OutOrStdout())
			var nerr int
			h := jstream.HandlerFunc(func(e jstream.Event) {
				if e.Kind == jstream.Error {
					nerr++
				}
				fmt.Fprintln(out, e)
			})
			if err := s.timed(name, "walked input", func() error {
				return jstream.Walk(cmd.Context(), in, h, s.options())
			}); err != nil {
				return err
			}
			if err := out.Flush(); err != nil {
				return err
			}
			if nerr > 0 {
				return fmt.Errorf("input has %d syntax errors", nerr)
			}
			return nil
		},
	}
}
