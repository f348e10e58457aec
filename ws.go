package budgie

import (
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

// TCPDialer returns a DialFn for a plain or TLS TCP connection to addr.
// An address without a port gets the default IRC TLS port.
func TCPDialer(addr string, useTLS bool) DialFn {
	return func() (io.ReadWriteCloser, error) {
		addr := withDefaultPort(addr)
		if useTLS {
			return tls.DialWithDialer(&net.Dialer{Timeout: 15 * time.Second}, "tcp", addr, nil)
		}
		return net.DialTimeout("tcp", addr, 15*time.Second)
	}
}

// FirstDialer tries each address in order and returns the first connection
// that succeeds. An empty list yields ErrNoAddress.
func FirstDialer(addrs []string, useTLS bool) DialFn {
	return func() (io.ReadWriteCloser, error) {
		if len(addrs) == 0 {
			return nil, ErrNoAddress
		}
		var lastErr error
		for _, addr := range addrs {
			conn, err := TCPDialer(addr, useTLS)()
			if err == nil {
				return conn, nil
			}
			lastErr = err
		}
		return nil, fmt.Errorf("all addresses failed: %w", lastErr)
	}
}

func withDefaultPort(addr string) string {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return net.JoinHostPort(addr, strconv.Itoa(DefaultPort))
	}
	return addr
}

// WSDialer returns a DialFn that connects over a websocket, for servers or
// bouncers exposing the IRCv3 websocket transport. Each websocket text
// frame carries one IRC line.
func WSDialer(url string) DialFn {
	return func() (io.ReadWriteCloser, error) {
		dialer := websocket.Dialer{
			HandshakeTimeout: 15 * time.Second,
			Subprotocols:     []string{"text.ircv3.net"},
		}
		ws, _, err := dialer.Dial(url, nil)
		if err != nil {
			return nil, fmt.Errorf("websocket dial %s: %w", url, err)
		}
		return &wsConn{ws: ws}, nil
	}
}

// wsConn adapts a message-framed websocket to the stream interface the
// transport reads. Frames are rejoined with line terminators so the
// scanner sees one line per frame.
type wsConn struct {
	ws  *websocket.Conn
	buf []byte
}

func (c *wsConn) Read(p []byte) (int, error) {
	if len(c.buf) == 0 {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return 0, err
		}
		c.buf = append(data, '\r', '\n')
	}
	n := copy(p, c.buf)
	c.buf = c.buf[n:]
	return n, nil
}

func (c *wsConn) Write(p []byte) (int, error) {
	// The transport writes whole lines; strip the terminator because the
	// frame is the delimiter on this transport.
	line := p
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	if err := c.ws.WriteMessage(websocket.TextMessage, line); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *wsConn) Close() error {
	c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return c.ws.Close()
}
