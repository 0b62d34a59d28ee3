// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/creachadair/jstream/ast"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

func newParseCmd(s *settings) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse JSON text and print the resulting value",
		Long: `Parse the input to a single value and print it as indented JSON,
or as YAML if --yaml is set. Object members are printed in input order.
The command fails at the first syntax error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := inputName(args)
			in, err := s.openInput(cmd.Context(), name)
			if err != nil {
				return err
			}
			defer in.Close()

			var v ast.Value
			if err := s.timed(name, "parsed input", func() (err error) {
				v, err = ast.ParseContext(cmd.Context(), in, s.options())
				return
			}); err != nil {
				return err
			}

			var out []byte
			if asYAML {
				out, err = yaml.Marshal(toYAML(v))
			} else {
				out, err = json.MarshalIndent(ordered{v}, "", "  ")
				out = append(out, '\n')
			}
			if err != nil {
				return fmt.Errorf("format output: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the value as YAML")
	return cmd
}

// ordered encodes a syntax tree as JSON, keeping object members in their
// original order and numbers in their original spelling where it is valid.
type ordered struct{ v ast.Value }

func (o ordered) MarshalJSON() ([]byte, error) {
	switch t := o.v.(type) {
	case nil:
		return []byte("null"), nil
	case *ast.Number:
		// The walker accepts some spellings JSON does not, such as "007" or ".5".
		if json.Valid([]byte(t.Text)) {
			return []byte(t.Text), nil
		}
		return strconv.AppendFloat(nil, t.Value, 'g', -1, 64), nil
	case *ast.Array:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elt := range t.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeTo(&buf, ordered{elt}); err != nil {
				return nil, err
			}
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case *ast.Object:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, m := range t.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeTo(&buf, m.Key); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if err := encodeTo(&buf, ordered{m.Value}); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return json.Marshal(t.Interface())
	}
}

func encodeTo(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

// toYAML converts a syntax tree to values that marshal as YAML with object
// members in their original order.
func toYAML(v ast.Value) any {
	switch t := v.(type) {
	case nil:
		return nil
	case *ast.Object:
		ms := make(yaml.MapSlice, len(t.Members))
		for i, m := range t.Members {
			ms[i] = yaml.MapItem{Key: m.Key, Value: toYAML(m.Value)}
		}
		return ms
	case *ast.Array:
		vs := make([]any, len(t.Values))
		for i, elt := range t.Values {
			vs[i] = toYAML(elt)
		}
		return vs
	case *ast.Number:
		if t.IsInt() {
			return int64(t.Value)
		}
		return t.Value
	default:
		return t.Interface()
	}
}
