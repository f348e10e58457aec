/*
Package budgie implements the protocol engine of an IRC chat client: the
connection, the message parser, and the live channel and user state that a
user interface renders.

This overview provides brief introductions for types and concepts.
The godoc for each type contains expanded documentation.

# Session

The Session type is the engine's front door. It owns one server connection
and interprets every inbound message on a single goroutine, updating its two
stores as it goes:

	session := budgie.NewSession(budgie.TCPDialer("irc.example.net:6697", true), budgie.Options{
		Nick: "ana",
	})
	go session.Run(ctx)

	session.Join("#go")
	session.SendMessage("#go", "hello")

Interfaces read state from session.Channels and session.Users. Both stores
replace whole objects on every mutation, so a renderer can compare pointers
to decide whether anything changed, and the OnChange hook reports which
channels a message touched.

# Transport

The Transport below the session manages the socket: registration, the
inbound read loop, a paced outbound queue for flood protection, and an
inactivity watchdog. The dialer is injected, so a session can run over
plain TCP, TLS, a websocket, or an in-memory pipe from the irctest package.

# Messages

Message represents one parsed IRC line: tags, source prefix, command, and
parameters. ParseLine never fails; lines the scanner cannot make sense of
degrade to a Message holding the raw text, which keeps the debug trace
complete. Constructor helpers such as Msg, Join, and Topic build outgoing
messages.

# Formatting

The format subpackage decodes mIRC formatting control codes into styled
text segments and resolves color codes against the standard palettes.
*/
package budgie
