package budgie

import (
	"bufio"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// DialFn opens the underlying connection. Supplying the dialer rather than
// an address lets callers wrap the stream however they like: TLS, a
// websocket bridge, a debug tee, or an in-memory pipe for tests.
type DialFn func() (io.ReadWriteCloser, error)

// EventType discriminates transport events.
type EventType int

const (
	// EventConnected fires once per connection, on the first 001 welcome.
	EventConnected EventType = iota

	// EventRaw fires for every inbound line, parsed.
	EventRaw

	// EventTimeout fires when the watchdog interval passes with no inbound
	// traffic. The connection stays open; it is advisory only.
	EventTimeout

	// EventClosed fires exactly once when the connection ends, whether by
	// Disconnect or by the peer.
	EventClosed

	// EventError reports a read or write failure.
	EventError
)

// Event is one item on the transport's event stream. Raw carries the
// verbatim wire line for raw and connected events, exactly as received.
type Event struct {
	Type EventType
	Msg  *Message
	Raw  string
	Err  error
}

// Transport owns one server connection: the socket, the inbound read loop,
// the paced outbound queue, and the inactivity watchdog. It performs
// registration (CAP LS, NICK, USER) but interprets nothing beyond the 001
// welcome; interpretation is the Session's job.
type Transport struct {
	Dial DialFn
	Log  zerolog.Logger

	opts Options

	mu        sync.Mutex
	conn      io.ReadWriteCloser
	connected bool // read loop running
	welcomed  bool // 001 seen on this connection
	closing   bool

	events chan Event
	sendq  chan string
	done   chan struct{}

	watchdog *time.Timer
	decoder  *encoding.Decoder
}

// NewTransport creates a transport that dials with dial and registers using
// the nick and realname in opts.
func NewTransport(dial DialFn, opts Options) *Transport {
	opts = opts.withDefaults()
	t := &Transport{
		Dial:   dial,
		Log:    zerolog.Nop(),
		opts:   opts,
		events: make(chan Event, 64),
		sendq:  make(chan string, 256),
	}
	if enc := lookupEncoding(opts.Encoding); enc != nil {
		t.decoder = enc.NewDecoder()
	}
	return t
}

// Events returns the stream the transport reports on. The channel is never
// closed; EventClosed marks the end of a connection.
func (t *Transport) Events() <-chan Event {
	return t.events
}

// Connect dials and starts the read, drain, and watchdog loops, then sends
// the registration sequence. Calling Connect while already connected is a
// no-op.
func (t *Transport) Connect() error {
	t.mu.Lock()
	if t.connected {
		t.mu.Unlock()
		return nil
	}
	if t.Dial == nil {
		t.mu.Unlock()
		return ErrNoAddress
	}
	conn, err := t.Dial()
	if err != nil {
		t.mu.Unlock()
		return err
	}
	done := make(chan struct{})
	t.conn = conn
	t.connected = true
	t.welcomed = false
	t.closing = false
	t.done = done
	t.watchdog = time.AfterFunc(t.opts.Watchdog, t.watchdogFired)
	t.mu.Unlock()

	go t.readLoop(conn)
	go t.drainLoop(done)

	t.register()
	return nil
}

func (t *Transport) register() {
	t.SendNow(CapLS("302"))
	t.SendNow(Nick(t.opts.Nick))
	t.SendNow(UserCmd(t.opts.Nick, t.opts.Realname))
}

// SendRaw writes one line to the server. When queued is true the line joins
// the paced outbound queue, which drains one line per DrainInterval; this is
// what chat traffic should use to stay under server flood limits. Unqueued
// lines are written immediately.
func (t *Transport) SendRaw(line string, queued bool) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return
	}
	if queued {
		select {
		case t.sendq <- line:
		default:
			t.Log.Warn().Str("line", line).Msg("send queue full, dropping line")
		}
		return
	}
	t.write(line)
}

// Send marshals and writes the message through the paced queue.
func (t *Transport) Send(m *Message) {
	out, err := m.MarshalText()
	if err != nil {
		t.Log.Warn().Err(err).Msg("dropping unmarshalable message")
		return
	}
	t.SendRaw(string(out), true)
}

// SendNow marshals and writes the message immediately, bypassing the queue.
// Used for PONG and protocol handshake traffic.
func (t *Transport) SendNow(m *Message) {
	out, err := m.MarshalText()
	if err != nil {
		t.Log.Warn().Err(err).Msg("dropping unmarshalable message")
		return
	}
	t.SendRaw(string(out), false)
}

func (t *Transport) write(line string) {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		t.Log.Warn().Str("line", line).Msg("not connected, dropping line")
		return
	}
	if _, err := io.WriteString(conn, line+"\r\n"); err != nil {
		t.emit(Event{Type: EventError, Err: err})
	}
}

// Disconnect closes the connection and stops all loops. Safe to call more
// than once.
func (t *Transport) Disconnect() {
	t.mu.Lock()
	if !t.connected || t.closing {
		t.mu.Unlock()
		return
	}
	t.closing = true
	conn := t.conn
	t.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}

func (t *Transport) readLoop(conn io.ReadWriteCloser) {
	scanner := bufio.NewScanner(conn)
	scanner.Split(scanLines)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if t.decoder != nil {
			if decoded, err := t.decoder.String(line); err == nil {
				line = decoded
			}
		}
		t.mu.Lock()
		if t.watchdog != nil {
			t.watchdog.Reset(t.opts.Watchdog)
		}
		t.mu.Unlock()

		msg := ParseLine(line)
		if msg.Command.is(RplWelcome) {
			t.mu.Lock()
			first := !t.welcomed
			t.welcomed = true
			t.mu.Unlock()
			if first {
				t.emit(Event{Type: EventConnected, Msg: msg, Raw: line})
			}
		}
		t.emit(Event{Type: EventRaw, Msg: msg, Raw: line})
	}
	if err := scanner.Err(); err != nil {
		t.mu.Lock()
		closing := t.closing
		t.mu.Unlock()
		if !closing {
			t.emit(Event{Type: EventError, Err: err})
		}
	}
	t.teardown()
}

// scanLines splits on \r\n but tolerates bare \n, which some bouncers send.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	advance, token, err = bufio.ScanLines(data, atEOF)
	if token != nil {
		token = []byte(strings.TrimRight(string(token), "\r"))
	}
	return
}

// drainLoop takes done rather than reading t.done so that a reconnecting
// Connect reassigning the field cannot race with a drain loop from the
// previous connection.
func (t *Transport) drainLoop(done <-chan struct{}) {
	ticker := time.NewTicker(t.opts.DrainInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			select {
			case line := <-t.sendq:
				t.write(line)
			default:
			}
		}
	}
}

func (t *Transport) watchdogFired() {
	t.mu.Lock()
	if !t.connected || t.closing {
		t.mu.Unlock()
		return
	}
	t.watchdog.Reset(t.opts.Watchdog)
	t.mu.Unlock()
	t.Log.Warn().Dur("interval", t.opts.Watchdog).Msg("no traffic from server")
	t.emit(Event{Type: EventTimeout})
}

func (t *Transport) teardown() {
	t.mu.Lock()
	if !t.connected {
		t.mu.Unlock()
		return
	}
	t.connected = false
	t.welcomed = false
	if t.watchdog != nil {
		t.watchdog.Stop()
		t.watchdog = nil
	}
	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
	}
	close(t.done)
	t.mu.Unlock()
	t.emit(Event{Type: EventClosed})
}

func (t *Transport) emit(ev Event) {
	select {
	case t.events <- ev:
	default:
		t.Log.Warn().Int("type", int(ev.Type)).Msg("event channel full, dropping event")
	}
}

// lookupEncoding maps a configured encoding name to its character map.
// Unknown names fall back to UTF-8 passthrough.
func lookupEncoding(name string) encoding.Encoding {
	switch strings.ToLower(name) {
	case "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1
	case "cp1252", "windows-1252":
		return charmap.Windows1252
	case "koi8-r":
		return charmap.KOI8R
	default:
		return nil
	}
}
