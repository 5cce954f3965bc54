// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"math"
	"strconv"
	"strings"

	"cogentcore.org/vrml/base/errors"
)

var errUnexpectedEnd = errors.New("unexpected end of input")

// scanner splits field text into tokens. Commas are whitespace
// and '#' starts a comment that runs to the end of the line.
type scanner struct {
	src string
	pos int
}

func (s *scanner) skip() {
	for s.pos < len(s.src) {
		switch c := s.src[s.pos]; c {
		case ' ', '\t', '\n', '\r', ',':
			s.pos++
		case '#':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' && s.src[s.pos] != '\r' {
				s.pos++
			}
		default:
			return
		}
	}
}

// atEnd skips whitespace and returns whether no tokens remain.
func (s *scanner) atEnd() bool {
	s.skip()
	return s.pos >= len(s.src)
}

// peek returns the next non whitespace byte, or 0 at the end.
func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.pos]
}

// accept consumes c if it is the next non whitespace byte.
func (s *scanner) accept(c byte) bool {
	if s.peek() == c {
		s.pos++
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', ',', '#', '[', ']', '"', '{', '}':
		return true
	}
	return false
}

// word returns the next bare token.
func (s *scanner) word() (string, error) {
	if s.atEnd() {
		return "", errUnexpectedEnd
	}
	start := s.pos
	for s.pos < len(s.src) && !isDelim(s.src[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return "", errors.Errorf("unexpected %q", s.src[s.pos])
	}
	return s.src[start:s.pos], nil
}

// quoted returns the contents of the next double quoted string.
func (s *scanner) quoted() (string, error) {
	if s.atEnd() {
		return "", errUnexpectedEnd
	}
	if s.src[s.pos] != '"' {
		return "", errors.Errorf("expected '\"', got %q", s.src[s.pos])
	}
	s.pos++
	var b strings.Builder
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		s.pos++
		switch c {
		case '"':
			return b.String(), nil
		case '\\':
			if s.pos < len(s.src) {
				c = s.src[s.pos]
				s.pos++
			}
		}
		b.WriteByte(c)
	}
	return "", errors.New("unterminated string")
}

func (s *scanner) bool() (bool, error) {
	w, err := s.word()
	if err != nil {
		return false, err
	}
	switch w {
	case "TRUE":
		return true, nil
	case "FALSE":
		return false, nil
	}
	return false, errors.Errorf("invalid boolean %q", w)
}

func (s *scanner) float32() (float32, error) {
	w, err := s.word()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(w, 32)
	if err != nil {
		return 0, errors.Errorf("invalid number %q", w)
	}
	return float32(f), nil
}

func (s *scanner) float64() (float64, error) {
	w, err := s.word()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return 0, errors.Errorf("invalid number %q", w)
	}
	return f, nil
}

// int64 reads a decimal or 0x prefixed hexadecimal integer.
func (s *scanner) int64() (int64, error) {
	w, err := s.word()
	if err != nil {
		return 0, err
	}
	digits, neg := w, false
	if strings.HasPrefix(digits, "-") {
		digits, neg = digits[1:], true
	} else if strings.HasPrefix(digits, "+") {
		digits = digits[1:]
	}
	var u uint64
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		u, err = strconv.ParseUint(digits[2:], 16, 32)
	} else {
		u, err = strconv.ParseUint(digits, 10, 32)
	}
	if err != nil {
		return 0, errors.Errorf("invalid integer %q", w)
	}
	if neg {
		return -int64(u), nil
	}
	return int64(u), nil
}

func (s *scanner) int32() (int32, error) {
	i, err := s.int64()
	if err != nil {
		return 0, err
	}
	switch {
	case i >= math.MinInt32 && i <= math.MaxInt32:
		return int32(i), nil
	case i > math.MaxInt32 && i <= math.MaxUint32:
		// hexadecimal bit patterns such as 0xFFFFFFFF
		return int32(uint32(i)), nil
	}
	return 0, errors.Errorf("integer %d out of range", i)
}

func (s *scanner) floats(n int) ([]float32, error) {
	fs := make([]float32, n)
	for i := range fs {
		f, err := s.float32()
		if err != nil {
			return nil, err
		}
		fs[i] = f
	}
	return fs, nil
}

// formatFloat formats f in its shortest form, with a ".0" suffix
// when it would otherwise read as an integer. Exponents are only
// used for very large or very small magnitudes.
func formatFloat(f float64, bits int) string {
	format := byte('f')
	if a := math.Abs(f); a >= 1e21 || (a != 0 && a < 1e-6) {
		format = 'g'
	}
	s := strconv.FormatFloat(f, format, -1, bits)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

func formatString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}
