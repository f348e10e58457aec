package budgie

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{}

// wsEcho upgrades the request and hands the connection to fn.
func wsEcho(t *testing.T, fn func(*websocket.Conn)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		defer ws.Close()
		fn(ws)
	}))
}

func wsURL(s *httptest.Server) string {
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

func TestWSDialerFramesLines(t *testing.T) {
	srv := wsEcho(t, func(ws *websocket.Conn) {
		// one text frame per IRC line, no terminator on the wire
		mt, frame, err := ws.ReadMessage()
		if err != nil {
			return
		}
		assert.Equal(t, websocket.TextMessage, mt)
		assert.Equal(t, "NICK ana", string(frame))
		ws.WriteMessage(websocket.TextMessage, []byte(":irc.example.net 001 ana :Welcome"))
	})
	defer srv.Close()

	conn, err := WSDialer(wsURL(srv))()
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("NICK ana\r\n"))
	require.NoError(t, err)

	line, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ":irc.example.net 001 ana :Welcome\r\n", line)
}

func TestRelayDialerHandshake(t *testing.T) {
	srv := wsEcho(t, func(ws *websocket.Conn) {
		var env relayEnvelope
		if err := ws.ReadJSON(&env); err != nil {
			return
		}
		assert.Equal(t, "connect", env.Event)
		var c relayConnect
		require.NoError(t, json.Unmarshal(env.Data, &c))
		assert.Equal(t, "ana", c.Nick)
		assert.Equal(t, "irc.example.net", c.Server.Host)
		assert.Equal(t, 6697, c.Server.Port)
		assert.True(t, c.Server.TLS)

		// a line from the client arrives as a message envelope
		require.NoError(t, ws.ReadJSON(&env))
		assert.Equal(t, "message", env.Event)
		var line string
		require.NoError(t, json.Unmarshal(env.Data, &line))
		assert.Equal(t, "NICK ana", line)

		payload, _ := json.Marshal(":irc.example.net 001 ana :Welcome")
		ws.WriteJSON(relayEnvelope{Event: "message", Data: payload})
	})
	defer srv.Close()

	dial := RelayDialer(wsURL(srv), "ana", ServerConfig{
		Addrs: []string{"irc.example.net:6697"},
		TLS:   true,
	})
	conn, err := dial()
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("NICK ana\r\n"))
	require.NoError(t, err)

	line, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ":irc.example.net 001 ana :Welcome\r\n", line)
}

func TestRelayDialerDefaultPort(t *testing.T) {
	srv := wsEcho(t, func(ws *websocket.Conn) {
		var env relayEnvelope
		if err := ws.ReadJSON(&env); err != nil {
			return
		}
		var c relayConnect
		require.NoError(t, json.Unmarshal(env.Data, &c))
		assert.Equal(t, "irc.example.net", c.Server.Host)
		assert.Equal(t, DefaultPort, c.Server.Port)
	})
	defer srv.Close()

	// an address without a port gets the default, same as the TCP dialer
	dial := RelayDialer(wsURL(srv), "ana", ServerConfig{
		Addrs: []string{"irc.example.net"},
	})
	conn, err := dial()
	require.NoError(t, err)
	conn.Close()
}

func TestRelayDialerRequiresAddress(t *testing.T) {
	_, err := RelayDialer("ws://unused", "ana", ServerConfig{})()
	assert.ErrorIs(t, err, ErrNoAddress)
}
