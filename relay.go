package budgie

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// relayEnvelope is the framing a relay gateway speaks: every websocket
// frame is one JSON envelope naming the event it carries.
type relayEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// relayConnect is the payload of the initial "connect" envelope, telling
// the gateway which IRC server to bridge to on our behalf.
type relayConnect struct {
	Nick   string      `json:"nick"`
	Server relayServer `json:"server"`
}

type relayServer struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Encoding string `json:"encoding,omitempty"`
	TLS      bool   `json:"tls"`
}

// RelayDialer returns a DialFn that connects through a websocket relay
// gateway instead of directly to the IRC server. The gateway holds the IRC
// socket; we exchange "message" envelopes carrying one raw IRC line each.
func RelayDialer(url, nick string, server ServerConfig) DialFn {
	return func() (io.ReadWriteCloser, error) {
		if len(server.Addrs) == 0 {
			return nil, ErrNoAddress
		}
		host, port, err := splitHostPort(withDefaultPort(server.Addrs[0]))
		if err != nil {
			return nil, err
		}
		dialer := websocket.Dialer{HandshakeTimeout: 15 * time.Second}
		ws, _, err := dialer.Dial(url, nil)
		if err != nil {
			return nil, fmt.Errorf("relay dial %s: %w", url, err)
		}
		c := &relayConn{ws: ws}
		if err := c.writeEnvelope("connect", relayConnect{
			Nick: nick,
			Server: relayServer{
				Host:     host,
				Port:     port,
				Encoding: server.Encoding,
				TLS:      server.TLS,
			},
		}); err != nil {
			ws.Close()
			return nil, err
		}
		return c, nil
	}
}

func splitHostPort(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("relay server address %q: %w", addr, err)
	}
	var port int
	if _, err := fmt.Sscanf(portStr, "%d", &port); err != nil {
		return "", 0, fmt.Errorf("relay server port %q: %w", portStr, err)
	}
	return host, port, nil
}

// relayConn adapts the envelope protocol to the byte-stream interface the
// transport reads. Only "message" envelopes become stream data; "error"
// envelopes end the stream.
type relayConn struct {
	ws  *websocket.Conn
	buf []byte
}

func (c *relayConn) Read(p []byte) (int, error) {
	for len(c.buf) == 0 {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return 0, err
		}
		var env relayEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue
		}
		switch env.Event {
		case "message":
			var line string
			if err := json.Unmarshal(env.Data, &line); err != nil {
				continue
			}
			c.buf = append([]byte(line), '\r', '\n')
		case "error":
			return 0, fmt.Errorf("relay error: %s", string(env.Data))
		case "disconnected":
			return 0, io.EOF
		}
	}
	n := copy(p, c.buf)
	c.buf = c.buf[n:]
	return n, nil
}

func (c *relayConn) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\r\n")
	if err := c.writeEnvelope("message", line); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *relayConn) writeEnvelope(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.ws.WriteJSON(relayEnvelope{Event: event, Data: payload})
}

func (c *relayConn) Close() error {
	c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return c.ws.Close()
}
