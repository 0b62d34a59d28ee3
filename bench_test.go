package jstream_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/creachadair/jstream"
)

func benchInput() []byte {
	var sb strings.Builder
	sb.WriteString("[")
	for i := range 2000 {
		if i > 0 {
			sb.WriteString(",\n")
		}
		fmt.Fprintf(&sb, `{"id": %d, "name": "item é %d", "score": %g, "tags": ["a", "b"], "ok": %v}`,
			i, i, float64(i)/3, i%2 == 0)
	}
	sb.WriteString("]")
	return []byte(sb.String())
}

func BenchmarkWalker(b *testing.B) {
	input := benchInput()
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for b.Loop() {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Walker", func(b *testing.B) {
		discard := jstream.HandlerFunc(func(e jstream.Event) {
			if e.Kind == jstream.Error {
				b.Fatalf("Unexpected error: %v", e.Err)
			}
		})
		for b.Loop() {
			w := jstream.New(discard, nil)
			for chunk := range slices.Chunk(input, 4096) {
				w.Push(chunk)
			}
			w.Close()
		}
	})
}
