package budgie

import (
	"fmt"
	"strings"
	"testing"
)

func mkMessage(tags map[string]string, prefix struct{ nick, user, host string }, command Command, params []string) *Message {
	p := make(Params, 0, len(params))
	p = append(p, params...)
	return &Message{
		Tags: tags,
		Source: Prefix{
			Nickname(prefix.nick),
			prefix.user,
			prefix.host},
		Command: command,
		Params:  p,
	}
}

func assertMessageEquals(t *testing.T, expected *Message, got *Message) {
	t.Helper()
	assertTagsEqual(t, expected.Tags, got.Tags)
	if expected.Source != got.Source {
		t.Errorf("prefix didn't match; got %q wanted %q", got.Source, expected.Source)
	}
	if !got.Command.is(expected.Command) {
		t.Errorf("command didn't match; got %q wanted %q", got.Command, expected.Command)
	}
	assertParamsEqual(t, expected.Params, got.Params)
}

func assertTagsEqual(t *testing.T, expected Tags, got Tags) {
	t.Helper()
	if len(expected) != len(got) {
		t.Errorf("tag count mismatch: expected %#v, got %#v", expected, got)
	}
	for key, want := range expected {
		v, ok := got[key]
		if !ok {
			t.Errorf("missing tag key %q: expected: %#v, got: %#v", key, expected, got)
			continue
		}
		if want != v {
			t.Errorf("tag %q: got %q, want %q", key, v, want)
		}
	}
}

func assertParamsEqual(t *testing.T, expected Params, got Params) {
	t.Helper()
	if len(got) != len(expected) {
		t.Errorf("param count mismatch: got %#v(%d), want %#v(%d)", got, len(got), expected, len(expected))
		return
	}
	for i, v := range got {
		if v != expected[i] {
			t.Errorf("param %d: got %q, want %q", i, v, expected[i])
		}
	}
}

func fromBytes(b []byte) (*Message, error) {
	m := &Message{}
	err := m.UnmarshalText(b)
	return m, err
}

func TestParseMessage(t *testing.T) {
	var tags = []struct {
		raw      string
		expected map[string]string
	}{
		{"", map[string]string{}},
		{"@ ", map[string]string{}},
		{"@; ", map[string]string{}},
		{"@k ", map[string]string{"k": ""}},
		{"@k= ", map[string]string{"k": ""}},
		{"@k; ", map[string]string{"k": ""}},
		{"@k;l= ", map[string]string{"k": "", "l": ""}},
		{"@k=v ", map[string]string{"k": "v"}},
		{"@k=v; ", map[string]string{"k": "v"}},
		{"@k=\\s; ", map[string]string{"k": " "}},
		{"@k=\\: ", map[string]string{"k": ";"}},
		{"@k=\\\\ ", map[string]string{"k": "\\"}},
		{"@k=\\r ", map[string]string{"k": "\r"}},
		{"@k=\\n ", map[string]string{"k": "\n"}},
		{"@k=1;k=2; ", map[string]string{"k": "2"}},
		{"@u==; ", map[string]string{"u": "="}},
		{"@draft/metadata-2 ", map[string]string{"draft/metadata-2": ""}},
		{"@+typing=active ", map[string]string{"+typing": "active"}},
		{"@time=2026-01-02T15:04:05.000Z;msgid=abc ", map[string]string{"time": "2026-01-02T15:04:05.000Z", "msgid": "abc"}},
	}

	var prefixes = []struct {
		raw      string
		expected struct {
			nick string
			user string
			host string
		}
	}{
		{"", struct{ nick, user, host string }{"", "", ""}},
		{":ana ", struct{ nick, user, host string }{"ana", "", ""}},
		{":ana  ", struct{ nick, user, host string }{"ana", "", ""}},
		{":ana!~u@host.example ", struct{ nick, user, host string }{"ana", "~u", "host.example"}},
		{":ana!@host.example ", struct{ nick, user, host string }{"ana", "", "host.example"}},
		{":irc.example.net ", struct{ nick, user, host string }{"", "", "irc.example.net"}},
	}

	var commands = []struct {
		raw      string
		expected Command
	}{
		{"001", RplWelcome},
		{"PRIVMSG", CmdPrivmsg},
		{"privmsg", CmdPrivmsg},
		{"Privmsg", Command("PRIVMSG")},
		{"METADATA", CmdMetadata},
	}

	var params = []struct {
		raw      string
		expected []string
	}{
		{"", []string{}},
		{" ", []string{""}},
		{" :", []string{""}},
		{" ::p1", []string{":p1"}},
		{" :p1", []string{"p1"}},
		{" p1", []string{"p1"}},
		{" p1 p2", []string{"p1", "p2"}},
		{" p1  p2", []string{"p1", "p2"}},
		{" p1 :trailing with spaces", []string{"p1", "trailing with spaces"}},
		{" p1  p2 :p3 :p3 ", []string{"p1", "p2", "p3 :p3 "}},
		{" :" + strings.Repeat("a", 513), []string{strings.Repeat("a", 513)}}, // don't blow up for lines exceeding protocol-defined length
	}

	for _, tt := range tags {
		for _, p := range prefixes {
			for _, c := range commands {
				for _, pa := range params {
					raw := fmt.Sprintf("%s%s%s%s", tt.raw, p.raw, c.raw, pa.raw)
					m, err := fromBytes([]byte(raw))
					if err != nil {
						t.Errorf("expected no error; got %v: %q", err, raw)
					}
					assertMessageEquals(t, mkMessage(tt.expected, p.expected, c.expected, pa.expected), m)
				}
			}
		}
	}
}

func TestParseErrors(t *testing.T) {
	var parseErrors = []string{
		"@badge-info=;color=#FF0000;display-name=bot;user-type=",
		"@badge-info=;color=#FF0000;display-name=bot;user-type= ",
		"@badge-info=;user-type=; ",
		":irc.example.net",
		"@",
		"@;",
		"@=",
		"@ ",
		"@; ",
		":",
		":.",
		":. ",
		":! ",
		":!@ ",
		": ",
		" ",
	}
	for _, raw := range parseErrors {
		m, err := fromBytes([]byte(raw))
		if err == nil {
			t.Errorf("expected parse error; got err == nil. raw line: %q, parsed: %#v", raw, m)
		}
	}
}

func TestParseLineNeverFails(t *testing.T) {
	for _, raw := range []string{
		"@ ",
		": ",
		":!@ ",
		" ",
	} {
		m := ParseLine(raw)
		if m.Command != "" {
			t.Errorf("ParseLine(%q): expected empty command, got %q", raw, m.Command)
		}
		if m.Params.Get(1) != raw {
			t.Errorf("ParseLine(%q): expected raw line as sole param, got %#v", raw, m.Params)
		}
	}

	m := ParseLine(":ana!u@h PRIVMSG #go :hello")
	if m.Command != CmdPrivmsg || m.Params.Get(2) != "hello" {
		t.Errorf("well-formed line parsed wrong: %#v", m)
	}
}

func TestMarshalText(t *testing.T) {
	for _, tt := range []struct {
		m    *Message
		want string
	}{
		{Msg("#go", "hello world"), "PRIVMSG #go :hello world\r\n"},
		{Join("#go", "#irc"), "JOIN :#go,#irc\r\n"},
		{Pong("irc.example.net"), "PONG :irc.example.net\r\n"},
		{Topic("#go", "new topic"), "TOPIC #go :new topic\r\n"},
		{Metadata("ana", "get", "avatar"), "METADATA ana GET :avatar\r\n"},
		{UserCmd("ana", "Ana Doe"), "USER ana 0 * :Ana Doe\r\n"},
	} {
		got, err := tt.m.MarshalText()
		if err != nil {
			t.Errorf("MarshalText(%#v): %v", tt.m, err)
		}
		if string(got) != tt.want {
			t.Errorf("MarshalText: got %q, want %q", got, tt.want)
		}
	}
}

func TestMarshalTags(t *testing.T) {
	m := TypingTag("#go", "active")
	got, err := m.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "@+typing=active TAGMSG :#go\r\n" {
		t.Errorf("got %q", got)
	}
}

func TestMarshalWarnsOnLongLines(t *testing.T) {
	m := Msg("#go", strings.Repeat("a", 600))
	out, err := m.MarshalText()
	if err == nil {
		t.Error("expected a truncation warning for a 600-byte message")
	}
	if len(out) == 0 {
		t.Error("the line should still be written despite the warning")
	}
}

func TestRoundTrip(t *testing.T) {
	lines := []string{
		"@time=2026-01-02T15:04:05.000Z :ana!~u@host.example PRIVMSG #go :hello there",
		":irc.example.net 332 ana #go :welcome to #go",
		"@+typing=active :ana!~u@host.example TAGMSG :#go",
	}
	for _, line := range lines {
		m := ParseLine(line)
		out, err := m.MarshalText()
		if err != nil {
			t.Errorf("marshal %q: %v", line, err)
			continue
		}
		again := ParseLine(strings.TrimRight(string(out), "\r\n"))
		assertMessageEquals(t, m, again)
	}
}
