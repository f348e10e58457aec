// The line scanner follows the state-function approach described in
// Rob Pike's "Lexical Scanning in Go" talk.

package budgie

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	delimParam    = ' ' // parameter delimiter
	delimTag      = ';' // message tag delimiter
	delimTagValue = '=' // tag key/value delimiter
	startTags     = '@' // marks the start of the tags section
	startPrefix   = ':' // marks the start of the prefix section
	startTrailing = ':' // marks the start of the trailing parameter
)

// token is a single lexed element of an IRC line.
type token struct {
	kind tokenKind
	val  string
}

type tokenKind int

const (
	tokenError tokenKind = iota // val holds the error text
	tokenTagKey
	tokenTagValue // always follows tokenTagKey
	tokenNick
	tokenUser
	tokenHost
	tokenCommand
	tokenParam
	tokenEOF
)

const eof = -1

// scanFn is a lexer state. It returns the next state, or nil to stop.
type scanFn func(*lineScanner) scanFn

// lineScanner walks one IRC line and emits tokens.
type lineScanner struct {
	input  string
	start  int
	pos    int
	width  int
	tokens []token
}

func scanLine(input string) *lineScanner {
	s := &lineScanner{input: input}
	for state := scanStart; state != nil; {
		state = state(s)
	}
	return s
}

func (s *lineScanner) emit(k tokenKind) {
	s.tokens = append(s.tokens, token{k, s.input[s.start:s.pos]})
	s.start = s.pos
}

func (s *lineScanner) errorf(format string, args ...interface{}) scanFn {
	s.tokens = append(s.tokens, token{tokenError, fmt.Sprintf(format, args...)})
	return nil
}

func (s *lineScanner) next() (r rune) {
	if s.pos >= len(s.input) {
		s.width = 0
		return eof
	}
	r, s.width = utf8.DecodeRuneInString(s.input[s.pos:])
	s.pos += s.width
	return r
}

func (s *lineScanner) peek() rune {
	r := s.next()
	s.backup()
	return r
}

// backup steps back one rune. Valid once per call of next.
func (s *lineScanner) backup() {
	s.pos -= s.width
}

func (s *lineScanner) ignore() {
	s.start = s.pos
}

func (s *lineScanner) skipRun(valid string) {
	for strings.ContainsRune(valid, s.next()) {
	}
	s.backup()
	s.ignore()
}

func scanStart(s *lineScanner) scanFn {
	switch s.peek() {
	case startTags:
		s.pos++ // delimiters are single-byte; the protocol predates multibyte text
		s.ignore()
		return scanTagKey
	case startPrefix:
		s.pos++
		s.ignore()
		return scanNick
	}
	return scanCommand
}

// scanTagKey reads one IRCv3 message tag key.
// The caller is responsible for discarding empty keys.
func scanTagKey(s *lineScanner) scanFn {
	for {
		switch r := s.next(); {
		case r == delimTagValue:
			s.backup()
			s.emit(tokenTagKey)
			s.pos++
			s.ignore()
			return scanTagValue
		case r == delimTag || r == delimParam:
			s.backup()
			s.emit(tokenTagKey)
			return scanTagValue
		case r == eof:
			return s.errorf("unexpected end of input while reading tag name")
		case badTagNameRune(r):
			return s.errorf("invalid character %q in tag name", r)
		}
	}
}

func badTagNameRune(r rune) bool {
	// <key_name> ::= <non-empty sequence of ascii letters, digits, hyphens>
	// plus the client-prefix, vendor, and separator characters.
	// https://ircv3.net/specs/extensions/message-tags.html
	switch r {
	case '+', '/', '.':
		return false
	}
	return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-')
}

func scanTagValue(s *lineScanner) scanFn {
	for {
		switch r := s.next(); {
		case r == delimTag:
			s.backup()
			s.emit(tokenTagValue)
			s.pos++
			s.ignore()
			if s.peek() == delimParam {
				return scanAfterTags
			}
			return scanTagKey
		case r == delimParam:
			s.backup()
			s.emit(tokenTagValue)
			return scanAfterTags
		case r == eof:
			return s.errorf("unexpected end of input while reading tag value")
		}
	}
}

func scanAfterTags(s *lineScanner) scanFn {
	s.skipRun(" ")
	if s.peek() == eof {
		return s.errorf("unexpected end of input after message tags")
	}
	if s.peek() == startPrefix {
		s.pos++
		s.ignore()
		return scanNick
	}
	return scanCommand
}

// scanNick reads the nickname portion of a prefix. A '.' means the prefix
// was in the :server form, a '!' means the full nick!user@host form.
func scanNick(s *lineScanner) scanFn {
	for {
		switch r := s.next(); {
		case r == delimParam:
			s.backup()
			s.emit(tokenNick)
			s.skipRun(" ")
			if s.peek() == eof {
				return s.errorf("unexpected end of input; expected command")
			}
			return scanCommand
		case r == '.':
			return scanHost
		case r == '!':
			s.backup()
			s.emit(tokenNick)
			s.pos++
			s.ignore()
			return scanUser
		case r == eof:
			return s.errorf("unexpected end of input in prefix")
		}
	}
}

func scanUser(s *lineScanner) scanFn {
	for {
		switch r := s.next(); {
		case r == '@':
			s.backup()
			s.emit(tokenUser)
			s.pos++
			s.ignore()
			return scanHost
		case r == delimParam:
			return s.errorf("expected host, found end of prefix")
		case r == eof:
			return s.errorf("unexpected end of input in prefix user")
		}
	}
}

func scanHost(s *lineScanner) scanFn {
	for {
		switch r := s.next(); {
		case r == delimParam:
			s.backup()
			s.emit(tokenHost)
			s.skipRun(" ")
			return scanCommand
		case r == eof:
			return s.errorf("expected command, found end of input")
		}
	}
}

func scanCommand(s *lineScanner) scanFn {
	for {
		switch r := s.next(); {
		case r == delimParam:
			s.backup()
			if s.pos == s.start {
				return s.errorf("empty command")
			}
			s.emit(tokenCommand)
			s.skipRun(" ")
			return scanParam
		case r == eof:
			if s.pos == s.start {
				return s.errorf("empty command at end of input")
			}
			s.emit(tokenCommand)
			s.emit(tokenEOF)
			return nil
		}
	}
}

func scanParam(s *lineScanner) scanFn {
	if s.peek() == startTrailing {
		s.pos++
		s.ignore()
		// the trailing parameter runs to the end of the line
		s.pos += len(s.input[s.pos:])
		s.emit(tokenParam)
		s.emit(tokenEOF)
		return nil
	}

	for {
		switch r := s.next(); {
		case r == delimParam:
			s.backup()
			s.emit(tokenParam)
			s.skipRun(" ")
			return scanParam
		case r == eof:
			// A trailing delimiter before eof emits an empty parameter.
			// Position-based readers treat missing and empty parameters
			// identically, so this is harmless.
			s.emit(tokenParam)
			s.emit(tokenEOF)
			return nil
		}
	}
}
