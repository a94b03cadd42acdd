package codeconsole

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// argumentPair is one `-tag value` occurrence, in input order.
type argumentPair struct {
	Tag   string
	Value string
}

// commandLine is the tokenized form of an input line.
type commandLine struct {
	Name  string
	Pairs []argumentPair
}

// tokenize splits a line following the grammar
//
//	command_line := WS* command_name (WS+ argument)* WS*
//	argument     := tag WS+ value
//	tag          := '-' word
//	value        := '"' (not '"')* '"' | non-whitespace+
//
// where word characters are letters, digits and underscore.
func tokenize(line string) (*commandLine, error) {
	s := &scanner{line: line}

	s.skipSpace()
	name := s.word()
	if name == "" {
		return nil, s.malformed(s.pos, "expected command name")
	}

	cl := &commandLine{Name: name}
	for {
		spaced := s.skipSpace()
		if s.eof() {
			return cl, nil
		}
		if !spaced {
			return nil, s.malformed(s.pos, "unexpected character "+s.quoteNext())
		}

		start := s.pos
		if s.next() != '-' {
			return nil, s.malformed(start, "expected argument tag")
		}
		s.pos++

		id := s.word()
		if id == "" {
			return nil, s.malformed(start, "expected argument tag")
		}
		tag := "-" + id

		spaced = s.skipSpace()
		if s.eof() {
			return nil, s.malformed(s.pos, "missing value for "+tag)
		}
		if !spaced {
			return nil, s.malformed(s.pos, "unexpected character "+s.quoteNext()+" after "+tag)
		}

		value, err := s.value()
		if err != nil {
			return nil, err
		}

		cl.Pairs = append(cl.Pairs, argumentPair{Tag: tag, Value: value})
	}
}

type scanner struct {
	line string
	pos  int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.line)
}

func (s *scanner) next() rune {
	r, _ := utf8.DecodeRuneInString(s.line[s.pos:])
	return r
}

func (s *scanner) quoteNext() string {
	return "'" + string(s.next()) + "'"
}

// skipSpace advances over whitespace and reports whether any was consumed.
func (s *scanner) skipSpace() bool {
	start := s.pos
	for !s.eof() {
		r, size := utf8.DecodeRuneInString(s.line[s.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		s.pos += size
	}
	return s.pos > start
}

func (s *scanner) word() string {
	start := s.pos
	for !s.eof() {
		r, size := utf8.DecodeRuneInString(s.line[s.pos:])
		if !isWordRune(r) {
			break
		}
		s.pos += size
	}
	return s.line[start:s.pos]
}

func (s *scanner) value() (string, error) {
	if s.next() == '"' {
		start := s.pos
		end := strings.IndexByte(s.line[start+1:], '"')
		if end < 0 {
			return "", s.malformed(start, "unterminated quoted value")
		}
		s.pos = start + 1 + end + 1
		return s.line[start+1 : start+1+end], nil
	}

	start := s.pos
	for !s.eof() {
		r, size := utf8.DecodeRuneInString(s.line[s.pos:])
		if unicode.IsSpace(r) {
			break
		}
		s.pos += size
	}
	return s.line[start:s.pos], nil
}

func (s *scanner) malformed(offset int, reason string) error {
	return &MalformedCommandError{Line: s.line, Offset: offset, Reason: reason}
}
