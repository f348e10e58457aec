package budgie

import (
	"context"
	"encoding"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Handler is the extension point for application code. The session calls
// SpeakIRC for every inbound message after its own bookkeeping has run, so
// handlers observe stores that already reflect the message.
type Handler interface {
	SpeakIRC(w MessageWriter, m *Message)
}

// The HandlerFunc type is an adapter to allow the usage of ordinary
// functions as handlers, following the same pattern as http.HandlerFunc.
type HandlerFunc func(MessageWriter, *Message)

// SpeakIRC calls f(w, m).
func (f HandlerFunc) SpeakIRC(w MessageWriter, m *Message) {
	f(w, m)
}

// capabilities we ask the server for when it advertises them.
var wantedCaps = []string{
	"message-tags",
	"server-time",
	"multi-prefix",
	"away-notify",
	"account-notify",
	"setname",
	"echo-message",
	"draft/metadata-2",
}

// profile keys fetched for users we start chatting with.
var metadataKeys = []string{"avatar", "color", "display-name", "status", "homepage"}

// typingInterval is the minimum spacing between outbound "+typing=active"
// notifications for the same conversation.
const typingInterval = 3 * time.Second

// Session is the protocol engine: it owns the transport, interprets every
// inbound message, and maintains the channel and user stores. All
// interpretation happens on the single goroutine running Run, so handlers
// and store updates never race.
type Session struct {
	Transport *Transport
	Channels  *ChannelStore
	Users     *UserStore
	Log       zerolog.Logger

	// Handler, when set, receives every inbound message after the session's
	// own bookkeeping. It runs on the session goroutine.
	Handler Handler

	// OnChange, when set, is called with the names of channels whose state
	// changed, after the message that changed them is fully processed.
	OnChange func(channels []string)

	// Reconnect, when set, is consulted after an unexpected disconnect. It
	// returns the delay before the next attempt, or a negative duration to
	// give up. A nil Reconnect disables automatic reconnection.
	Reconnect func(attempt int) time.Duration

	opts Options

	// mu guards everything below. Inbound interpretation runs on the Run
	// goroutine, but the Send* methods are called from whatever goroutine
	// drives the UI, so the mutable session state needs a lock.
	mu   sync.Mutex
	nick string

	availableCaps map[string]string
	enabledCaps   map[string]bool
	capsEnding    bool

	chanModes chanModeTypes

	typing map[string]*rate.Limiter

	pendingChanges map[string]struct{}
	userQuit       bool
	attempts       int
}

// NewSession wires a session around a dialer. The session is inert until
// Run is called.
func NewSession(dial DialFn, opts Options) *Session {
	opts = opts.withDefaults()
	s := &Session{
		Transport:      NewTransport(dial, opts),
		Channels:       NewChannelStore(opts.MessageLimit),
		Users:          NewUserStore(),
		Log:            zerolog.Nop(),
		opts:           opts,
		nick:           opts.Nick,
		availableCaps:  make(map[string]string),
		enabledCaps:    make(map[string]bool),
		chanModes:      defaultChanModeTypes,
		typing:         make(map[string]*rate.Limiter),
		pendingChanges: make(map[string]struct{}),
	}
	s.Users.Notify = func(channels []string) {
		for _, ch := range channels {
			s.pendingChanges[ch] = struct{}{}
		}
	}
	return s
}

// Nick returns the nickname the session currently holds on the server.
func (s *Session) Nick() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nick
}

// CapEnabled reports whether the named capability was acknowledged by the
// server for this connection.
func (s *Session) CapEnabled(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabledCaps[name]
}

// Run connects and processes events until the context is cancelled or the
// connection ends without a reconnect policy. It is the session's main
// loop; all stores are mutated only from here.
func (s *Session) Run(ctx context.Context) error {
	if err := s.Transport.Connect(); err != nil {
		return err
	}
	s.mu.Lock()
	s.postStatus("connecting", MsgDefault)
	changed := s.takeChanges()
	s.mu.Unlock()
	s.notifyChanges(changed)
	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.userQuit = true
			s.mu.Unlock()
			s.Transport.Disconnect()
			return ctx.Err()
		case ev := <-s.Transport.Events():
			if done := s.handleEvent(ctx, ev); done {
				return nil
			}
		}
	}
}

// handleEvent returns true when the run loop should exit. State mutation
// happens in applyEvent under the lock; the change notification and the
// Handler call run unlocked so they may call back into the session.
func (s *Session) handleEvent(ctx context.Context, ev Event) bool {
	s.mu.Lock()
	exit, delay, msg := s.applyEvent(ev)
	changed := s.takeChanges()
	s.mu.Unlock()

	s.notifyChanges(changed)
	if msg != nil && s.Handler != nil {
		s.Handler.SpeakIRC(s, msg)
	}
	if exit {
		return true
	}
	if delay >= 0 {
		select {
		case <-ctx.Done():
			return true
		case <-time.After(delay):
		}
		if err := s.Transport.Connect(); err != nil {
			s.Log.Error().Err(err).Msg("reconnect failed")
			s.mu.Lock()
			s.postStatus("reconnect failed: "+err.Error(), MsgError)
			changed := s.takeChanges()
			s.mu.Unlock()
			s.notifyChanges(changed)
		}
	}
	return false
}

// applyEvent runs with s.mu held. It returns whether the run loop should
// exit, the delay before a reconnect attempt (negative for none), and the
// interpreted message to hand to the Handler.
func (s *Session) applyEvent(ev Event) (exit bool, delay time.Duration, msg *Message) {
	delay = -1
	switch ev.Type {
	case EventConnected:
		s.attempts = 0
		if len(ev.Msg.Params) > 0 {
			s.nick = ev.Msg.Params.Get(1)
		}
		s.postStatus("connected as "+s.nick, MsgDefault)
	case EventRaw:
		msg = s.dispatch(ev.Raw, ev.Msg)
	case EventTimeout:
		s.postStatus("no data from server in "+s.opts.Watchdog.String(), MsgError)
		s.Transport.SendNow(Ping(strconv.FormatInt(time.Now().Unix(), 10)))
	case EventError:
		s.Log.Error().Err(ev.Err).Msg("transport error")
		s.postStatus("connection error: "+ev.Err.Error(), MsgError)
	case EventClosed:
		s.Channels.Broadcast(NewChatMessage("", "", "disconnected", MsgError))
		s.resetConnectionState()
		if s.userQuit || s.Reconnect == nil {
			return true, -1, msg
		}
		s.attempts++
		delay = s.Reconnect(s.attempts)
		if delay < 0 {
			return true, -1, msg
		}
	}
	return false, delay, msg
}

func (s *Session) resetConnectionState() {
	s.availableCaps = make(map[string]string)
	s.enabledCaps = make(map[string]bool)
	s.capsEnding = false
}

// dispatch interprets one inbound message and returns the message the
// Handler should see, or nil when there is nothing to hand over. The debug
// echo always runs first, verbatim, so the trace shows every wire line
// exactly as received even when the line is malformed.
func (s *Session) dispatch(raw string, m *Message) *Message {
	s.Channels.Append(DebugChannel, NewChatMessage(DebugChannel, "", raw, MsgDefault))
	s.markChanged(DebugChannel)
	if m.Command == "" {
		// unparseable line, surfaced in the trace above; nothing to interpret
		s.Log.Debug().Str("raw", raw).Msg("discarding malformed line")
		return nil
	}

	m = unwrapCTCP(m)

	switch m.Command {
	case CmdPing:
		s.Transport.SendNow(Pong(m.Params.Get(1)))
	case CmdCap:
		s.handleCap(m)
	case CmdPrivmsg:
		s.handleChat(m, MsgDefault)
	case CTCPAction:
		s.handleChat(m, MsgAction)
	case CmdNotice:
		s.handleChat(m, MsgNotice)
	case CmdTagMsg:
		s.handleTagMsg(m)
	case CmdJoin:
		s.handleJoin(m)
	case CmdPart:
		s.handlePart(m)
	case CmdQuit:
		s.handleQuit(m)
	case CmdNick:
		s.handleNick(m)
	case CmdMode:
		s.handleMode(m)
	case CmdTopic:
		s.handleTopic(m)
	case CmdAway:
		s.Users.SetAway(m.Source.Nick.String(), m.Params.Get(1) != "")
	case CmdAccount:
		account := m.Params.Get(1)
		if account == "*" {
			account = ""
		}
		s.Users.SetAccount(m.Source.Nick.String(), account)
	case CmdSetName:
		s.Users.SetProfile(m.Source.Nick.String(), "realname", m.Params.Get(1))
	case CmdMetadata:
		s.handleMetadata(m)
	case CmdError:
		s.postStatus("server error: "+m.Params.Get(1), MsgError)
	default:
		if m.Command.IsNumeric() {
			s.handleNumeric(m)
		}
	}
	return m
}

func (s *Session) handleNumeric(m *Message) {
	switch m.Command {
	case RplWelcome:
		// the transport latches the connected event; here we only record
		// the nickname the server actually assigned
		s.nick = m.Params.Get(1)
	case RplISupport:
		s.handleISupport(m)
	case RplTopic:
		s.Channels.SetTopic(m.Params.Get(2), m.Params.Get(3))
		s.markChanged(m.Params.Get(2))
	case RplTopicWhoTime:
		setAt := time.Time{}
		if secs, err := strconv.ParseInt(m.Params.Get(4), 10, 64); err == nil {
			setAt = time.Unix(secs, 0)
		}
		s.Channels.SetTopicMeta(m.Params.Get(2), m.Params.Get(3), setAt)
		s.markChanged(m.Params.Get(2))
	case RplNoTopic:
		s.Channels.SetTopic(m.Params.Get(2), "")
		s.markChanged(m.Params.Get(2))
	case RplNamReply:
		s.handleNames(m)
	case RplEndOfNames:
		s.markChanged(m.Params.Get(2))
	case RplAway:
		s.Users.SetAway(m.Params.Get(2), true)
	case RplKeyValue, RplWhoisKeyValue:
		s.Users.SetProfile(m.Params.Get(2), m.Params.Get(3), m.Params.Get(5))
	case RplMetadataEnd, RplErrKeyNotSet, RplErrKeyInvalid:
		// terminators and soft failures for metadata queries; nothing to do
	case RplMOTD, RplMOTDStart, RplEndOfMOTD, RplYourHost, RplCreated, RplMyInfo:
		s.postStatus(m.Params.Get(len(m.Params)), MsgDefault)
	default:
		if len(m.Params) < 2 {
			return
		}
		text := strings.Join(m.Params[1:], " ")
		if m.Command[0] == '4' || m.Command[0] == '5' {
			s.postStatus(text, MsgError)
			return
		}
		s.postStatus(text, MsgDefault)
	}
}

// handleISupport records the 005 features we care about: the PREFIX
// privilege alphabet and the CHANMODES argument classes.
func (s *Session) handleISupport(m *Message) {
	// params: <nick> <feature>... :are supported by this server
	for _, p := range m.Params[1:] {
		name, value, ok := strings.Cut(p, "=")
		if !ok {
			continue
		}
		switch name {
		case "PREFIX":
			if t, ok := ParsePrefix(value); ok {
				s.Users.SetModeTable(t)
			}
		case "CHANMODES":
			if cm, ok := parseChanModes(value); ok {
				s.chanModes = cm
			}
		}
	}
}

func (s *Session) handleCap(m *Message) {
	// params: <nick> <subcommand> [*] :<caps>
	sub := m.Params.Get(2)
	args := m.Params.Get(len(m.Params))
	more := m.Params.Get(3) == "*"
	switch sub {
	case "LS":
		for _, c := range strings.Fields(args) {
			name, value, _ := strings.Cut(c, "=")
			s.availableCaps[name] = value
		}
		if more {
			return
		}
		var req []string
		for _, want := range wantedCaps {
			if _, ok := s.availableCaps[want]; ok {
				req = append(req, want)
			}
		}
		if _, ok := s.availableCaps["multi-prefix"]; !ok {
			// older servers stack NAMES prefixes behind this extension instead
			s.Transport.SendNow(Protoctl("NAMESX"))
		}
		if len(req) == 0 {
			s.Transport.SendNow(CapEnd())
			return
		}
		s.capsEnding = true
		s.Transport.SendNow(CapReq(strings.Join(req, " ")))
	case "ACK":
		for _, c := range strings.Fields(args) {
			s.enabledCaps[strings.TrimPrefix(c, "-")] = !strings.HasPrefix(c, "-")
		}
		if s.capsEnding {
			s.capsEnding = false
			s.Transport.SendNow(CapEnd())
		}
	case "NAK":
		if s.capsEnding {
			s.capsEnding = false
			s.Transport.SendNow(CapEnd())
		}
	case "NEW":
		for _, c := range strings.Fields(args) {
			name, value, _ := strings.Cut(c, "=")
			s.availableCaps[name] = value
			for _, want := range wantedCaps {
				if want == name {
					s.Transport.SendNow(CapReq(name))
				}
			}
		}
	case "DEL":
		for _, c := range strings.Fields(args) {
			delete(s.availableCaps, c)
			delete(s.enabledCaps, c)
		}
	}
}

// handleChat routes PRIVMSG, NOTICE, and unwrapped CTCP actions into the
// right channel buffer, creating a private-chat buffer keyed by the remote
// nick when the target is us.
func (s *Session) handleChat(m *Message, category MessageCategory) {
	target, _ := m.Target()
	text, _ := m.Text()
	from := m.Source.Nick.String()
	echoed := m.Source.Nick.Is(s.nick)

	// direct messages land in a buffer named after the peer: the sender,
	// or the recipient when the server is echoing our own message back
	buffer := target
	if !isChannelName(target) {
		buffer = from
		if echoed {
			buffer = target
		}
	}
	if m.Source.IsServer() {
		buffer = StatusChannel
	}

	if !s.Channels.Has(buffer) {
		s.Channels.Add(buffer, categoryFor(buffer))
		if !echoed && !m.Source.IsServer() {
			s.fetchProfile(from)
		}
	}

	msg := NewChatMessage(buffer, from, text, category)
	msg.Echoed = echoed
	if at, ok := serverTime(m.Tags); ok {
		msg.Time = at
	}
	if u := s.Users.Get(from); u != nil && u.Color != "" {
		msg.Color = u.Color
	}
	s.Channels.Append(buffer, msg)
	if !echoed {
		s.Channels.IncrementUnread(buffer)
		s.Channels.SetTyping(buffer, from, TypingDone)
	}
	s.markChanged(buffer)
}

func (s *Session) handleTagMsg(m *Message) {
	state, ok := m.Tags["+typing"]
	if !ok || m.Source.Nick.Is(s.nick) {
		return
	}
	target := m.Params.Get(1)
	if Nickname(target).Is(s.nick) {
		target = m.Source.Nick.String()
	}
	switch state {
	case "active":
		s.Channels.SetTyping(target, m.Source.Nick.String(), TypingActive)
	case "paused":
		s.Channels.SetTyping(target, m.Source.Nick.String(), TypingPaused)
	default:
		s.Channels.SetTyping(target, m.Source.Nick.String(), TypingDone)
	}
	s.markChanged(target)
}

func (s *Session) handleJoin(m *Message) {
	channel := m.Params.Get(1)
	nick := m.Source.Nick.String()
	if m.Source.Nick.Is(s.nick) {
		s.Channels.Add(channel, CategoryChannel)
	}
	s.Users.Add(nick, channel, "")
	s.Users.SetHostmask(nick, m.Source.User, m.Source.Host)
	// extended-join carries the account and realname as extra params
	if account := m.Params.Get(2); account != "" && account != "*" {
		s.Users.SetAccount(nick, account)
	}
	s.Channels.Append(channel,
		NewChatMessage(channel, nick, "joined "+channel, MsgJoin))
	s.markChanged(channel)
}

func (s *Session) handlePart(m *Message) {
	channel := m.Params.Get(1)
	nick := m.Source.Nick.String()
	if m.Source.Nick.Is(s.nick) {
		s.Channels.Remove(channel)
		s.forgetChannelMembers(channel)
		s.markChanged(channel)
		return
	}
	s.Users.RemoveFromChannel(nick, channel)
	s.Channels.SetTyping(channel, nick, TypingDone)
	text := "left " + channel
	if reason := m.Params.Get(2); reason != "" {
		text += " (" + reason + ")"
	}
	s.Channels.Append(channel, NewChatMessage(channel, nick, text, MsgPart))
	s.markChanged(channel)
}

func (s *Session) forgetChannelMembers(channel string) {
	for _, u := range s.Users.Members(channel) {
		s.Users.RemoveFromChannel(u.Nick, channel)
	}
}

func (s *Session) handleQuit(m *Message) {
	nick := m.Source.Nick.String()
	channels := s.Users.Quit(nick)
	s.Channels.ClearTyping(nick)
	text := "quit"
	if reason := m.Params.Get(1); reason != "" {
		text = "quit (" + reason + ")"
	}
	for _, ch := range channels {
		s.Channels.Append(ch, NewChatMessage(ch, nick, text, MsgQuit))
		s.markChanged(ch)
	}
}

func (s *Session) handleNick(m *Message) {
	oldNick := m.Source.Nick.String()
	newNick := m.Params.Get(1)
	if m.Source.Nick.Is(s.nick) {
		s.nick = newNick
	}
	channels := s.Users.Rename(oldNick, newNick)
	for _, ch := range channels {
		s.Channels.Append(ch,
			NewChatMessage(ch, oldNick, "is now known as "+newNick, MsgDefault))
		s.markChanged(ch)
	}
}

// handleMode applies channel membership mode changes. Flags in the
// server's PREFIX table update the member's privilege; other modes are
// shown in the channel but not tracked, though any argument they carry
// still has to be consumed to keep later nicknames aligned.
func (s *Session) handleMode(m *Message) {
	target := m.Params.Get(1)
	if !isChannelName(target) {
		return
	}
	modes := m.Params.Get(2)
	modeTable := s.Users.Modes()
	argIdx := 3
	add := true
	for i := 0; i < len(modes); i++ {
		switch modes[i] {
		case '+':
			add = true
		case '-':
			add = false
		default:
			if modeTable.SymbolFor(modes[i]) == 0 {
				if s.chanModes.takesArg(modes[i], add) {
					argIdx++
				}
				continue
			}
			nick := m.Params.Get(argIdx)
			argIdx++
			if nick == "" {
				continue
			}
			s.Users.UpdateFlag(nick, target, add, modes[i])
		}
	}
	s.Channels.Append(target,
		NewChatMessage(target, m.Source.Nick.String(),
			"set mode "+strings.Join(m.Params[1:], " "), MsgDefault))
	s.markChanged(target)
}

func (s *Session) handleTopic(m *Message) {
	channel := m.Params.Get(1)
	topic := m.Params.Get(2)
	s.Channels.SetTopic(channel, topic)
	s.Channels.SetTopicMeta(channel, m.Source.Nick.String(), time.Now())
	s.Channels.Append(channel,
		NewChatMessage(channel, m.Source.Nick.String(), "changed the topic to: "+topic, MsgDefault))
	s.markChanged(channel)
}

func (s *Session) handleNames(m *Message) {
	// params: <nick> <symbol> <channel> :<entries>
	channel := m.Params.Get(3)
	modes := s.Users.Modes()
	for _, entry := range strings.Fields(m.Params.Get(4)) {
		nick, flags := modes.StripNick(entry)
		if nick == "" {
			continue
		}
		s.Users.Add(nick, channel, flags)
	}
}

func (s *Session) handleMetadata(m *Message) {
	// METADATA <target> <key> <visibility> :<value>  (server notification)
	s.Users.SetProfile(m.Params.Get(1), m.Params.Get(2), m.Params.Get(4))
}

// fetchProfile asks the server for the peer's profile keys when the
// metadata capability is available.
func (s *Session) fetchProfile(nick string) {
	if !s.enabledCaps["draft/metadata-2"] {
		return
	}
	s.Transport.Send(Metadata(nick, "GET", metadataKeys...))
}

// unwrapCTCP rewrites a CTCP-formatted PRIVMSG or NOTICE into one of the
// CTCP pseudo-commands, leaving other messages untouched.
func unwrapCTCP(m *Message) *Message {
	if m.Command != CmdPrivmsg && m.Command != CmdNotice {
		return m
	}
	text := m.Params.Get(2)
	if len(text) < 2 || text[0] != 0x01 {
		return m
	}
	text = strings.Trim(text, "\x01")
	sub, rest, _ := strings.Cut(text, " ")
	kind := "_CTCP_QUERY_"
	if m.Command == CmdNotice {
		kind = "_CTCP_REPLY_"
	}
	out := *m
	out.Command = Command(kind + strings.ToUpper(sub))
	out.Params = Params{m.Params.Get(1), rest}
	return &out
}

// serverTime extracts the IRCv3 server-time tag.
func serverTime(tags Tags) (time.Time, bool) {
	v := tags.Get("time")
	if v == "" {
		return time.Time{}, false
	}
	at, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, false
	}
	return at.Local(), true
}

func isChannelName(name string) bool {
	return name != "" && (name[0] == '#' || name[0] == '&')
}

func categoryFor(name string) ChannelCategory {
	if isChannelName(name) {
		return CategoryChannel
	}
	return CategoryPrivate
}

func (s *Session) postStatus(text string, category MessageCategory) {
	if text == "" {
		return
	}
	s.Channels.Append(StatusChannel, NewChatMessage(StatusChannel, "", text, category))
	s.markChanged(StatusChannel)
}

func (s *Session) markChanged(channel string) {
	s.pendingChanges[channel] = struct{}{}
}

// takeChanges drains the pending change set. Runs with s.mu held.
func (s *Session) takeChanges() []string {
	if len(s.pendingChanges) == 0 {
		return nil
	}
	changed := make([]string, 0, len(s.pendingChanges))
	for ch := range s.pendingChanges {
		changed = append(changed, ch)
	}
	s.pendingChanges = make(map[string]struct{})
	return changed
}

// notifyChanges invokes OnChange outside the lock, so the callback is free
// to call back into the session.
func (s *Session) notifyChanges(changed []string) {
	if s.OnChange != nil && len(changed) > 0 {
		s.OnChange(changed)
	}
}

// WriteMessage implements MessageWriter by sending through the paced
// outbound queue.
func (s *Session) WriteMessage(m encoding.TextMarshaler) {
	out, err := m.MarshalText()
	if err != nil {
		s.Log.Warn().Err(err).Msg("dropping unmarshalable message")
		return
	}
	s.Transport.SendRaw(strings.TrimRight(string(out), "\r\n"), true)
}

// SendMessage sends a PRIVMSG and echoes it into the local buffer, unless
// the server echoes messages itself.
func (s *Session) SendMessage(target, text string) {
	s.Transport.Send(Msg(target, text))
	s.mu.Lock()
	s.recordOutbound(target, text, MsgDefault)
	changed := s.takeChanges()
	s.mu.Unlock()
	s.notifyChanges(changed)
}

// SendAction sends a CTCP ACTION ("/me") and echoes it locally under the
// same rule as SendMessage.
func (s *Session) SendAction(target, text string) {
	s.Transport.Send(Describe(target, text))
	s.mu.Lock()
	s.recordOutbound(target, text, MsgAction)
	changed := s.takeChanges()
	s.mu.Unlock()
	s.notifyChanges(changed)
}

// recordOutbound echoes one of our own messages into the target buffer,
// creating the buffer if needed. Runs with s.mu held.
func (s *Session) recordOutbound(target, text string, category MessageCategory) {
	if !s.Channels.Has(target) {
		s.Channels.Add(target, categoryFor(target))
	}
	if !s.enabledCaps["echo-message"] {
		msg := NewChatMessage(target, s.nick, text, category)
		msg.Echoed = true
		s.Channels.Append(target, msg)
	}
	s.markChanged(target)
}

// SendTyping emits a "+typing" notification for the conversation, rate
// limited per target. Notifications are suppressed entirely when the
// server never acknowledged message-tags.
func (s *Session) SendTyping(target, state string) {
	s.mu.Lock()
	if !s.enabledCaps["message-tags"] {
		s.mu.Unlock()
		return
	}
	lim, ok := s.typing[target]
	if !ok {
		lim = rate.NewLimiter(rate.Every(typingInterval), 1)
		s.typing[target] = lim
	}
	allowed := state != "active" || lim.Allow()
	s.mu.Unlock()
	if !allowed {
		return
	}
	s.Transport.Send(TypingTag(target, state))
}

// Join asks the server to join one or more channels. The channel buffer is
// created when the server confirms with a JOIN echo.
func (s *Session) Join(channels ...string) { s.Transport.Send(Join(channels...)) }

// Part leaves a channel with an optional reason.
func (s *Session) Part(channel, reason string) {
	if reason == "" {
		s.Transport.Send(Part(channel))
		return
	}
	s.Transport.Send(PartWithReason(channel, reason))
}

// SetTopic asks the server to change a channel topic.
func (s *Session) SetTopic(channel, topic string) { s.Transport.Send(Topic(channel, topic)) }

// SetNick requests a nickname change. The local nick updates when the
// server confirms.
func (s *Session) SetNick(nick string) { s.Transport.Send(Nick(nick)) }

// ChangeMode requests a mode change on a channel member, e.g.
// ChangeMode("#go", "+o", "ana").
func (s *Session) ChangeMode(channel, flag, nick string) {
	s.Transport.Send(Mode(channel, flag, nick))
}

// SetMetadata publishes one of our own profile keys.
func (s *Session) SetMetadata(key, value string) {
	if !s.CapEnabled("draft/metadata-2") {
		return
	}
	s.Transport.Send(Metadata("*", "SET", key, value))
}

// RequestMetadata fetches the profile keys of a user.
func (s *Session) RequestMetadata(nick string) {
	s.Transport.Send(Metadata(nick, "GET", metadataKeys...))
}

// Whois queries the server about a nickname.
func (s *Session) Whois(nick string) { s.Transport.Send(Whois(nick)) }

// List requests the server's channel list through the paced queue, since
// the reply can run to thousands of lines.
func (s *Session) List() { s.Transport.Send(List()) }

// Quit disconnects from the server with a quit message and prevents
// automatic reconnection.
func (s *Session) Quit(message string) {
	s.mu.Lock()
	s.userQuit = true
	s.mu.Unlock()
	s.Transport.SendNow(Quit(message))
	s.Transport.Disconnect()
}
