package budgie

import (
	"fmt"
	"strings"
)

// Text returns the free-form text portion of a message for the well-known
// (named) IRC commands: the message body for PRIVMSG and NOTICE, the reason
// for PART, KICK, and QUIT, the new topic for TOPIC.
//
// An error is returned for unsupported message types; Text then contains
// the entire parameter list joined as one string. The error may be
// discarded when the command is known, for example inside a handler only
// ever called for PRIVMSG events.
func (m *Message) Text() (string, error) {
	switch m.Command {
	case CmdQuit, CmdError:
		return m.Params.Get(1), nil
	case CmdPrivmsg, CmdNotice, CTCPAction, CmdTopic, CmdKick, CmdPart:
		return m.Params.Get(2), nil
	default:
		return strings.Join(m.Params, " "), fmt.Errorf("text: command %s is not supported", m.Command)
	}
}

// Target returns the intended target of a message: the channel name for
// channel messages, or our own nickname for direct messages (queries).
// On servers advertising STATUSMSG the channel may carry a leading
// membership prefix, e.g. "+#foo" for everyone voiced on #foo.
func (m *Message) Target() (string, error) {
	switch m.Command {
	case CmdPrivmsg, CmdNotice, CTCPAction, CmdTagMsg, CmdInvite, CmdTopic, CmdKick, CmdPart, CmdMode, CmdJoin:
		return m.Params.Get(1), nil
	default:
		return "", fmt.Errorf("%s: target method not supported", m.Command)
	}
}
