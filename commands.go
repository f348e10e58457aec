package budgie

import "strings"

// Msg constructs a PRIVMSG to target, which may be a channel or a nickname.
func Msg(target, message string) *Message {
	return NewMessage(CmdPrivmsg, target, message)
}

// Notice constructs a NOTICE to target.
func Notice(target, message string) *Message {
	return NewMessage(CmdNotice, target, message)
}

// Describe constructs a CTCP ACTION message, equivalent to the "/me" command
// of most IRC clients. By convention actions are written in third person and
// rendered with distinct formatting by receiving clients.
func Describe(target, action string) *Message {
	return CTCP(target, "ACTION", action)
}

// CTCP constructs a Client-to-Client Protocol encoded message to target,
// with command as the CTCP subcommand.
func CTCP(target, command, message string) *Message {
	return NewMessage(CmdPrivmsg, target, "\x01"+command+" "+message+"\x01")
}

// CTCPReply constructs a reply in the CTCP format. target should be the
// nickname that queried us, and command the subcommand it sent.
func CTCPReply(target, command, message string) *Message {
	return NewMessage(CmdNotice, target, "\x01"+command+" "+message+"\x01")
}

// Nick constructs a nickname change command.
func Nick(name string) *Message {
	return NewMessage(CmdNick, name)
}

// Join constructs a join command for one or more channels.
func Join(channels ...string) *Message {
	return NewMessage(CmdJoin, strings.Join(channels, ","))
}

// Part constructs a command to leave channel.
func Part(channel string) *Message {
	return NewMessage(CmdPart, channel)
}

// PartWithReason is the same as Part, but with a departure message that may
// be shown to other clients.
func PartWithReason(channel, reason string) *Message {
	return NewMessage(CmdPart, channel, reason)
}

// Quit constructs a command that terminates the connection server-side, with
// a quit message that may be displayed to other clients.
func Quit(message string) *Message {
	return NewMessage(CmdQuit, message)
}

// Topic constructs a command to set the topic of channel.
func Topic(channel, topic string) *Message {
	return NewMessage(CmdTopic, channel, topic)
}

// Mode constructs a command to change a mode on a channel or nickname.
// flag is the signed mode letter, e.g. "+o" or "-v".
func Mode(target, flag, flagParam string) *Message {
	return NewMessage(CmdMode, target, flag, flagParam)
}

// Whois constructs a WHOIS query for nick.
func Whois(nick string) *Message {
	return NewMessage(CmdWhoIs, nick)
}

// List constructs a channel LIST query. Servers may respond with thousands
// of 322 replies; callers should send this through the outbound queue.
func List() *Message {
	return NewMessage(CmdList)
}

// Names constructs a NAMES query for channel.
func Names(channel string) *Message {
	return NewMessage(CmdNames, channel)
}

// Protoctl constructs a PROTOCTL negotiation command, e.g. Protoctl("NAMESX")
// to request multi-prefix NAMES replies on servers predating the IRCv3 cap.
func Protoctl(options ...string) *Message {
	return NewMessage(CmdProtoctl, options...)
}

// Metadata constructs a METADATA command. subcommand is one of GET, SET, SUB,
// or LIST; args are the key and optional value.
func Metadata(target, subcommand string, args ...string) *Message {
	params := append([]string{target, strings.ToUpper(subcommand)}, args...)
	return NewMessage(CmdMetadata, params...)
}

// TypingTag constructs a TAGMSG carrying the "+typing" client tag with the
// given state ("active", "paused", or "done").
func TypingTag(target, state string) *Message {
	return &Message{
		Tags:    Tags{"+typing": state},
		Command: CmdTagMsg,
		Params:  Params{target},
	}
}

// Ping constructs a connection PING. This is distinct from a CTCP ping,
// which is a PRIVMSG; see CTCP.
func Ping(message string) *Message {
	return NewMessage(CmdPing, message)
}

// Pong constructs the reply to a PING from the connection. The reply
// parameter must echo the original PING message.
func Pong(reply string) *Message {
	return NewMessage(CmdPong, reply)
}

// CapLS requests the capability list from the server. version is the
// negotiation protocol version, e.g. "302" for version 3.2.
func CapLS(version string) *Message {
	return Cap("LS", version)
}

// CapReq requests that capability cap be enabled for the connection.
func CapReq(cap string) *Message {
	return Cap("REQ", cap)
}

// CapEnd ends capability negotiation.
func CapEnd() *Message {
	return Cap("END")
}

// Cap constructs a CAP command; args are the subcommand and its parameters.
func Cap(args ...string) *Message {
	return NewMessage(CmdCap, args...)
}

// UserCmd registers the username and realname of a new connection.
// realname may contain spaces.
func UserCmd(user, realname string) *Message {
	// The mode and unused parameters are sent as "0" and "*",
	// matching what mIRC and the modern client docs recommend.
	return NewMessage(CmdUser, user, "0", "*", realname)
}

// Pass specifies the connection password.
func Pass(password string) *Message {
	return NewMessage(CmdPass, password)
}
