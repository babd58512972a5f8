package dot

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// kind is a lexical token class of the DOT language.
type kind int

const (
	illegal kind = iota
	eof

	ident // identifier, numeral, "quoted" or <html> string

	lbrace   // {
	rbrace   // }
	lbracket // [
	rbracket // ]
	semi     // ;
	colon    // :
	comma    // ,
	equal    // =
	arrow    // ->
	dashdash // --
)

var kindNames = [...]string{
	illegal:  "ILLEGAL",
	eof:      "EOF",
	ident:    "ID",
	lbrace:   "{",
	rbrace:   "}",
	lbracket: "[",
	rbracket: "]",
	semi:     ";",
	colon:    ":",
	comma:    ",",
	equal:    "=",
	arrow:    "->",
	dashdash: "--",
}

func (k kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Position is a 1-indexed line and column in the source.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type item struct {
	pos    Position
	kind   kind
	lit    string
	quoted bool
}

// keyword reports whether an unquoted identifier is the given keyword.
// Keywords are case-insensitive.
func (it item) keyword(kw string) bool {
	return it.kind == ident && !it.quoted && strings.EqualFold(it.lit, kw)
}

type scanner struct {
	src      []byte
	ch       rune
	offset   int
	rdOffset int
	line     int
	column   int
	filename string
	errs     []error
}

func newScanner(filename string, src []byte) *scanner {
	s := &scanner{src: src, filename: filename, line: 1}
	s.next()
	return s
}

func (s *scanner) next() {
	if s.rdOffset >= len(s.src) {
		s.ch = -1
		s.offset = len(s.src)
		return
	}
	s.offset = s.rdOffset
	if s.ch == '\n' {
		s.line++
		s.column = 0
	}
	r, w := utf8.DecodeRune(s.src[s.rdOffset:])
	s.rdOffset += w
	s.column++
	s.ch = r
}

func (s *scanner) peek() rune {
	if s.rdOffset >= len(s.src) {
		return -1
	}
	r, _ := utf8.DecodeRune(s.src[s.rdOffset:])
	return r
}

func (s *scanner) pos() Position {
	return Position{Filename: s.filename, Line: s.line, Column: s.column}
}

func (s *scanner) errorf(pos Position, format string, args ...any) {
	s.errs = append(s.errs, fmt.Errorf("%s: %s", pos, fmt.Sprintf(format, args...)))
}

// skip consumes whitespace, comments and '#' preprocessor lines.
func (s *scanner) skip() {
	for {
		switch {
		case s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r':
			s.next()
		case s.ch == '#' || (s.ch == '/' && s.peek() == '/'):
			for s.ch != '\n' && s.ch != -1 {
				s.next()
			}
		case s.ch == '/' && s.peek() == '*':
			pos := s.pos()
			s.next()
			s.next()
			for !(s.ch == '*' && s.peek() == '/') {
				if s.ch == -1 {
					s.errorf(pos, "unterminated block comment")
					return
				}
				s.next()
			}
			s.next()
			s.next()
		default:
			return
		}
	}
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch >= 0x80
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func (s *scanner) scan() item {
	s.skip()
	it := item{pos: s.pos()}

	switch ch := s.ch; {
	case ch == -1:
		it.kind = eof
	case isLetter(ch):
		start := s.offset
		for isLetter(s.ch) || isDigit(s.ch) {
			s.next()
		}
		it.kind, it.lit = ident, string(s.src[start:s.offset])
	case isDigit(ch) || (ch == '-' && (isDigit(s.peek()) || s.peek() == '.')) || (ch == '.' && isDigit(s.peek())):
		start := s.offset
		if s.ch == '-' {
			s.next()
		}
		for isDigit(s.ch) || s.ch == '.' {
			s.next()
		}
		it.kind, it.lit = ident, string(s.src[start:s.offset])
	case ch == '"':
		s.next()
		it.kind, it.lit, it.quoted = ident, s.quoted(it.pos), true
	case ch == '<':
		s.next()
		it.kind, it.lit, it.quoted = ident, s.html(it.pos), true
	case ch == '-' && s.peek() == '>':
		s.next()
		s.next()
		it.kind = arrow
	case ch == '-' && s.peek() == '-':
		s.next()
		s.next()
		it.kind = dashdash
	default:
		it.kind = punct(ch)
		if it.kind == illegal {
			s.errorf(it.pos, "unexpected character %q", ch)
		}
		s.next()
	}
	return it
}

func punct(ch rune) kind {
	switch ch {
	case '{':
		return lbrace
	case '}':
		return rbrace
	case '[':
		return lbracket
	case ']':
		return rbracket
	case ';':
		return semi
	case ':':
		return colon
	case ',':
		return comma
	case '=':
		return equal
	}
	return illegal
}

// quoted reads the rest of a "..." string. Only \" is an escape; a
// backslash-newline continues the line.
func (s *scanner) quoted(pos Position) string {
	var sb strings.Builder
	for {
		switch s.ch {
		case -1:
			s.errorf(pos, "unterminated string")
			return sb.String()
		case '"':
			s.next()
			return sb.String()
		case '\\':
			s.next()
			switch s.ch {
			case '"':
				sb.WriteRune('"')
			case '\n':
			case -1:
				continue
			default:
				sb.WriteRune('\\')
				sb.WriteRune(s.ch)
			}
		default:
			sb.WriteRune(s.ch)
		}
		s.next()
	}
}

func (s *scanner) html(pos Position) string {
	var sb strings.Builder
	depth := 1
	for {
		switch s.ch {
		case -1:
			s.errorf(pos, "unterminated HTML string")
			return sb.String()
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				s.next()
				return sb.String()
			}
		}
		sb.WriteRune(s.ch)
		s.next()
	}
}
