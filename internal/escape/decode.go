// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles the escape sequences of JSON strings.
package escape

import (
	"unicode/utf16"
	"unicode/utf8"
)

var simple = [...]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// Simple reports the character denoted by the single-character escape
// specifier r, and whether r is one.
func Simple(r rune) (byte, bool) {
	if r < 0 || int(r) >= len(simple) || simple[r] == 0 {
		return 0, false
	}
	return simple[r], true
}

// IsHexDigit reports whether r is a hexadecimal digit.
func IsHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// Hex4 decodes exactly four hexadecimal digits. It reports false if hex has
// the wrong length or contains anything other than hex digits.
func Hex4(hex []byte) (rune, bool) {
	if len(hex) != 4 {
		return 0, false
	}
	var v rune
	for _, b := range hex {
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}

// A Units accumulates decoded UTF-16 code units into UTF-8 text, pairing
// surrogates. An unpaired surrogate is written as the replacement rune.
//
// The zero value is ready for use.
type Units struct {
	high rune // pending high surrogate, or 0
}

// Add appends the encoding of code unit u to buf.
func (s *Units) Add(buf []byte, u rune) []byte {
	if s.high != 0 {
		hi := s.high
		s.high = 0
		if r := utf16.DecodeRune(hi, u); r != utf8.RuneError {
			return utf8.AppendRune(buf, r)
		}
		buf = utf8.AppendRune(buf, utf8.RuneError)
	}
	if utf16.IsSurrogate(u) && u < 0xdc00 {
		s.high = u
		return buf
	}
	return utf8.AppendRune(buf, u)
}

// Flush appends any pending unpaired surrogate to buf as the replacement
// rune. It must be called before writing anything other than a code unit.
func (s *Units) Flush(buf []byte) []byte {
	if s.high != 0 {
		s.high = 0
		buf = utf8.AppendRune(buf, utf8.RuneError)
	}
	return buf
}
