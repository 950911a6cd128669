/*
Package charset handles charset files of msdf-atlas-gen.

A charset file lists the code points to put into a font atlas. Entries are
separated by commas or whitespace and may be

  - single code points: decimal (65), hexadecimal (0x41) or character
    literals ('A'),
  - inclusive ranges of code points: [0x20, 0x7e],
  - string literals, contributing every character: "Ёё№₽°".

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package charset

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'psdf.charset'
func tracer() tracing.Trace {
	return tracing.Select("psdf.charset")
}

// Default returns the default charset: printable Basic Latin, the Russian
// Cyrillic alphabet and a few extra symbols.
func Default() string {
	parts := []string{
		"[0x20, 0x7e]",
		"[0x0410, 0x044f]",
		`"Ёё№₽°"`,
	}
	return strings.Join(parts, "\n") + "\n"
}

// Set is a sorted list of distinct code points.
type Set []rune

// Contains reports whether r is part of the set.
func (s Set) Contains(r rune) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= r })
	return i < len(s) && s[i] == r
}

// ReadFile parses a charset file.
func ReadFile(path string) (Set, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	set, err := Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Parse parses charset text.
func Parse(text string) (Set, error) {
	p := &parser{src: text}
	seen := make(map[rune]struct{})
	add := func(r rune) { seen[r] = struct{}{} }
	for {
		p.skipSeparators()
		if p.eof() {
			break
		}
		switch c := p.peek(); c {
		case '[':
			p.pos++
			from, err := p.codepoint()
			if err != nil {
				return nil, err
			}
			p.skipSeparators()
			to, err := p.codepoint()
			if err != nil {
				return nil, err
			}
			p.skipSpace()
			if p.eof() || p.peek() != ']' {
				return nil, p.errorf("missing ']' to close range")
			}
			p.pos++
			if to < from {
				return nil, p.errorf("empty range [%#x, %#x]", from, to)
			}
			for r := from; r <= to; r++ {
				add(r)
			}
		case '"':
			s, err := p.quoted('"')
			if err != nil {
				return nil, err
			}
			for _, r := range s {
				add(r)
			}
		default:
			r, err := p.codepoint()
			if err != nil {
				return nil, err
			}
			add(r)
		}
	}
	set := make(Set, 0, len(seen))
	for r := range seen {
		set = append(set, r)
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	tracer().Debugf("charset has %d code points", len(set))
	return set, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool  { return p.pos >= len(p.src) }
func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("charset: offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) skipSpace() {
	for !p.eof() && strings.IndexByte(" \t\r\n", p.peek()) >= 0 {
		p.pos++
	}
}

func (p *parser) skipSeparators() {
	for !p.eof() && strings.IndexByte(" \t\r\n,", p.peek()) >= 0 {
		p.pos++
	}
}

// codepoint reads a numeric code point or a character literal.
func (p *parser) codepoint() (rune, error) {
	p.skipSpace()
	if p.eof() {
		return 0, p.errorf("unexpected end of charset")
	}
	if p.peek() == '\'' {
		s, err := p.quoted('\'')
		if err != nil {
			return 0, err
		}
		if utf8.RuneCountInString(s) != 1 {
			return 0, p.errorf("character literal must hold exactly one character: %q", s)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
	start := p.pos
	for !p.eof() && strings.IndexByte(" \t\r\n,[]\"'", p.peek()) < 0 {
		p.pos++
	}
	token := p.src[start:p.pos]
	n, err := strconv.ParseInt(token, 0, 32)
	if err != nil || n < 0 || n > utf8.MaxRune {
		p.pos = start
		return 0, p.errorf("invalid code point %q", token)
	}
	return rune(n), nil
}

// quoted reads a literal enclosed in quote characters, honouring backslash
// escapes of the quote and of the backslash itself.
func (p *parser) quoted(quote byte) (string, error) {
	p.pos++ // opening quote
	var sb strings.Builder
	for !p.eof() {
		c := p.peek()
		switch {
		case c == quote:
			p.pos++
			return sb.String(), nil
		case c == '\\' && p.pos+1 < len(p.src):
			sb.WriteByte(p.src[p.pos+1])
			p.pos += 2
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", p.errorf("unterminated literal")
}
