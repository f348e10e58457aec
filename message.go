package budgie

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"strings"
)

// warnTruncate indicates that an encoded IRC message exceeds the protocol's
// 512-byte line limit. The message is still written; the server is likely to
// truncate it before relaying. Callers that know their server accepts longer
// lines may discard the error with errors.Is.
var warnTruncate = errors.New("message length exceeds IRC limit and may be truncated")

// parameterLimit is the maximum parameter count defined by the protocol.
// Clients should never send more, but must accept any number.
const parameterLimit = 15

// Message represents one incoming or outgoing IRC line: tags, prefix
// (source), command (verb or numeric), and parameters.
type Message struct {

	// Tags contains IRCv3 message tags, if the line carried any.
	Tags Tags

	// Source is where the message originated from, set from the line prefix.
	// Leave empty for outgoing messages; servers discard client lines that
	// carry any prefix other than the client's own nickname.
	Source Prefix

	// Command is the IRC verb or numeric, such as PRIVMSG, NOTICE, or 001.
	Command Command

	// Params holds the message parameters. A trailing parameter is included
	// without special treatment. For outgoing messages only the last
	// parameter may contain a space.
	Params Params

	// includePrefix controls whether MarshalText writes the Source.
	includePrefix bool
}

// NewMessage constructs an outgoing Message with cmd as the verb and args as
// the parameters. Only the last argument may contain spaces.
func NewMessage(cmd Command, args ...string) *Message {
	p := make(Params, len(args), parameterLimit)
	copy(p, args)
	cmd.normalize()
	return &Message{
		Command: cmd,
		Params:  p,
	}
}

// ParseLine parses one raw IRC line, without its trailing CR-LF.
//
// ParseLine never fails: a line the scanner cannot make sense of degrades to
// a Message with an empty Command and the raw text as its only parameter, so
// callers can still surface it in a diagnostic trace.
func ParseLine(line string) *Message {
	m := new(Message)
	m.includePrefix = true
	if err := m.UnmarshalText([]byte(line)); err != nil {
		return &Message{
			Command: "",
			Params:  Params{line},
		}
	}
	return m
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting a line read
// from an IRC stream. text must not include the trailing CR-LF pair.
func (m *Message) UnmarshalText(text []byte) error {
	// reusing a message must clear fields from the previous line
	m.Source = Prefix{}
	m.Command = ""
	m.Params = nil
	m.Tags = nil

	s := scanLine(string(text))
	for i := 0; i < len(s.tokens); i++ {
		t := s.tokens[i]
		switch t.kind {
		case tokenEOF:
			return nil
		case tokenError:
			return errors.New(t.val)
		case tokenTagKey:
			// tokenTagValue always follows tokenTagKey
			i++
			if t.val == "" {
				continue
			}
			m.Tags.Set(t.val, unescaper.Replace(s.tokens[i].val))
		case tokenNick:
			m.Source.Nick = Nickname(t.val)
		case tokenUser:
			m.Source.User = t.val
		case tokenHost:
			m.Source.Host = t.val
		case tokenCommand:
			m.Command = Command(t.val)
		case tokenParam:
			m.Params = append(m.Params, t.val)
		}
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler for writing the message to
// an IRC connection.
func (m *Message) MarshalText() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 1024))
	var err error
	var tagLen int

	if m.Tags != nil {
		buf.WriteRune(startTags)
		first := true
		for k, v := range m.Tags {
			if !first {
				buf.WriteRune(delimTag)
			}
			first = false
			buf.WriteString(k)
			if v != "" {
				buf.WriteRune(delimTagValue)
				buf.WriteString(escaper.Replace(v))
			}
		}
		buf.WriteRune(delimParam)
		tagLen = buf.Len()
	}

	if m.includePrefix && m.Source != (Prefix{}) {
		buf.WriteRune(startPrefix)
		buf.WriteString(m.Source.String())
		buf.WriteRune(delimParam)
	}

	buf.WriteString(m.Command.String())

	for i := 0; i < len(m.Params); i++ {
		buf.WriteRune(delimParam)
		// the last param is always written in the trailing form;
		// conforming parsers handle this without ambiguity
		if i == len(m.Params)-1 {
			buf.WriteRune(startTrailing)
		}
		buf.WriteString(m.Params[i])
	}
	buf.WriteString("\r\n")

	if l := buf.Len() - tagLen; l > 512 {
		err = fmt.Errorf("%w: message length is %d bytes", warnTruncate, l)
	}
	return buf.Bytes(), err
}

// IncludePrefix marks the Source field for inclusion by MarshalText.
// It is enabled automatically for parsed incoming messages and disabled for
// new outgoing messages.
func (m *Message) IncludePrefix() {
	m.includePrefix = true
}

// unescaper reverses message tag value escaping.
var unescaper = strings.NewReplacer(
	"\\:", ";",
	"\\r", "\r",
	"\\n", "\n",
	"\\s", " ",
	"\\\\", "\\",
	"\\", "",
)

// escaper escapes message tag values for transmission.
var escaper = strings.NewReplacer(
	";", "\\:",
	"\r", "\\r",
	"\n", "\\n",
	" ", "\\s",
	"\\", "\\\\",
)

// Tags holds the IRCv3 message tags of a line.
type Tags map[string]string

// Set stores the tag key k with value v, allocating the map if needed.
func (t *Tags) Set(k, v string) {
	if *t == nil {
		*t = make(Tags)
	}
	(*t)[k] = v
}

// Get returns the tag value for key, or "" when absent.
func (t Tags) Get(key string) string {
	return t[key]
}

// Has reports whether key was present in the message tags.
func (t Tags) Has(key string) bool {
	_, ok := t[key]
	return ok
}

// Command is an IRC verb or numeric such as PRIVMSG, NOTICE, or 001.
type Command string

// String implements fmt.Stringer.
func (c Command) String() string {
	return string(c)
}

func (c *Command) normalize() {
	*c = Command(strings.ToUpper(c.String()))
}

// is compares two commands case-insensitively.
func (c Command) is(oc Command) bool {
	return strings.EqualFold(string(c), string(oc))
}

// IsNumeric reports whether the command is a 3-digit numeric reply.
func (c Command) IsNumeric() bool {
	if len(c) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if c[i] < '0' || c[i] > '9' {
			return false
		}
	}
	return true
}

// Prefix is the optional source of an IRC line: a bare server host, a bare
// nickname, or the full nick!user@host address.
type Prefix struct {
	Nick Nickname
	User string
	Host string
}

// IsServer reports whether the message originated from a server rather than
// a user. The server name is carried in the Host field.
func (p Prefix) IsServer() bool {
	return p.Host != "" && p.Nick == ""
}

// String implements fmt.Stringer.
func (p Prefix) String() string {
	switch {
	case p.Nick == "" && p.User == "" && p.Host == "":
		return ""
	case p.Nick == "" && p.User == "":
		return p.Host
	case p.User == "":
		return p.Nick.String()
	default:
		return p.Nick.String() + "!" + p.User + "@" + p.Host
	}
}

// Params is the parameter list of a message. Prefer Get over direct
// indexing; parameters have positional meaning and Get returns "" for
// positions that were not sent.
type Params []string

// Get returns the nth parameter, counting from 1, or "" if absent.
// Callers don't need to distinguish missing from empty parameters.
func (p Params) Get(n int) string {
	if n > len(p) || n < 1 {
		return ""
	}
	return p[n-1]
}

// Nickname is an IRC nickname.
type Nickname string

func (n Nickname) String() string {
	return string(n)
}

// Is compares the nickname against a string using Unicode case folding.
func (n Nickname) Is(other string) bool {
	return strings.EqualFold(n.String(), other)
}

// MessageWriter writes IRC messages to a connection.
type MessageWriter interface {

	// WriteMessage writes one message. The marshaler must produce a byte
	// slice conforming to the IRC protocol; a missing "\r\n" terminator is
	// appended by the writer.
	WriteMessage(encoding.TextMarshaler)
}
