package dot

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const eofRune rune = -1

type position struct {
	offset int
	line   int
	column int
}

// parser holds the input and the current position. Grammar rules live in parser.go, the generic combinators in
// combinators.go.
type parser struct {
	filename  string
	input     string
	pos       position
	graphType GraphType
	// furthest is the mismatch that happened furthest into the input. It is what gets reported if the
	// document does not parse, since that is where the input stopped making sense.
	furthest *ParseError
}

func newParser(input string, filename string) *parser {
	return &parser{
		filename: filename,
		input:    input,
		pos:      position{offset: 0, line: 1, column: 1},
	}
}

func (p *parser) eof() bool {
	return p.pos.offset >= len(p.input)
}

func (p *parser) rest() string {
	return p.input[p.pos.offset:]
}

func (p *parser) peek() rune {
	if p.eof() {
		return eofRune
	}
	r, _ := utf8.DecodeRuneInString(p.rest())
	return r
}

// advance consumes one character and keeps line and column up to date. A CR LF pair counts as a single line break.
func (p *parser) advance() rune {
	if p.eof() {
		return eofRune
	}
	r, size := utf8.DecodeRuneInString(p.rest())
	p.pos.offset += size
	switch {
	case r == '\r' && strings.HasPrefix(p.rest(), "\n"):
		p.pos.column++
	case isLineTerminator(r):
		p.pos.line++
		p.pos.column = 1
	default:
		p.pos.column++
	}
	return r
}

func (p *parser) advanceString(s string) {
	end := p.pos.offset + len(s)
	for p.pos.offset < end {
		p.advance()
	}
}

// skipSpace skips whitespace and comments. Comments are C and C++ style, and lines starting with #.
func (p *parser) skipSpace() error {
	for !p.eof() {
		rest := p.rest()
		switch {
		case unicode.IsSpace(p.peek()):
			p.advance()
		case strings.HasPrefix(rest, "//") || strings.HasPrefix(rest, "#"):
			for !p.eof() && !isLineTerminator(p.peek()) {
				p.advance()
			}
		case strings.HasPrefix(rest, "/*"):
			start := p.pos
			p.advanceString("/*")
			for !strings.HasPrefix(p.rest(), "*/") {
				if p.eof() {
					return p.fatalAt(start, "unterminated comment")
				}
				p.advance()
			}
			p.advanceString("*/")
		default:
			return nil
		}
	}
	return nil
}

// fail records a recoverable mismatch at the current position.
func (p *parser) fail(expected ...string) *ParseError {
	err := &ParseError{
		Filename: p.filename,
		Offset:   p.pos.offset,
		Line:     p.pos.line,
		Column:   p.pos.column,
		Expected: expected,
		Found:    p.found(),
	}
	switch {
	case p.furthest == nil || p.furthest.Offset < err.Offset:
		p.furthest = &ParseError{
			Filename: err.Filename,
			Offset:   err.Offset,
			Line:     err.Line,
			Column:   err.Column,
			Expected: append([]string(nil), expected...),
			Found:    err.Found,
		}
	case p.furthest.Offset == err.Offset:
		for _, e := range expected {
			if !containsString(p.furthest.Expected, e) {
				p.furthest.Expected = append(p.furthest.Expected, e)
			}
		}
	}
	return err
}

// fatalAt creates an error that stops parsing immediately.
func (p *parser) fatalAt(pos position, format string, args ...any) *ParseError {
	return &ParseError{
		Filename: p.filename,
		Offset:   pos.offset,
		Line:     pos.line,
		Column:   pos.column,
		Message:  fmt.Sprintf(format, args...),
		fatal:    true,
	}
}

// found returns the word or character at the current position for error messages.
func (p *parser) found() string {
	if p.eof() {
		return ""
	}
	rest := p.rest()
	first, size := utf8.DecodeRuneInString(rest)
	if !isIdentPart(first) {
		return rest[:size]
	}
	end := 0
	for i, r := range rest {
		if !isIdentPart(r) || i >= 32 {
			break
		}
		end = i + utf8.RuneLen(r)
	}
	return rest[:end]
}

// symbol skips whitespace and consumes the exact text.
func (p *parser) symbol(text string) error {
	if err := p.skipSpace(); err != nil {
		return err
	}
	if !strings.HasPrefix(p.rest(), text) {
		return p.fail(fmt.Sprintf("%q", text))
	}
	p.advanceString(text)
	return nil
}

// keyword skips whitespace and consumes one of the case-insensitive keywords, returning it in lower case. A
// keyword must not be directly followed by an identifier character.
func (p *parser) keyword(keywords ...string) (string, error) {
	if err := p.skipSpace(); err != nil {
		return "", err
	}
	word := p.word()
	for _, kw := range keywords {
		if strings.EqualFold(word, kw) {
			p.advanceString(word)
			return kw, nil
		}
	}
	expected := make([]string, len(keywords))
	for i, kw := range keywords {
		expected[i] = fmt.Sprintf("%q", kw)
	}
	return "", p.fail(expected...)
}

// word returns the identifier starting at the current position without consuming it.
func (p *parser) word() string {
	rest := p.rest()
	end := 0
	for i, r := range rest {
		if (i == 0 && !isIdentStart(r)) || !isIdentPart(r) {
			break
		}
		end = i + utf8.RuneLen(r)
	}
	return rest[:end]
}

func isLineTerminator(r rune) bool {
	switch r {
	case '\n', '\v', '\f', '\r', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || (r >= 0x80 && r != utf8.RuneError && !unicode.IsSpace(r))
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
