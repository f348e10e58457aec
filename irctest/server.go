// Package irctest provides an in-memory mock IRC server implementing
// io.ReadWriteCloser, for driving a Transport or Session in tests without a
// network.
package irctest

import (
	"bufio"
	"encoding"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/budgie-irc/budgie"
)

// NewServer creates a new mock irc server that implements
// io.ReadWriteCloser. Don't forget to close.
func NewServer() *Server {
	s := &Server{}
	s.sendReader, s.sendWriter = io.Pipe()
	s.recvReader, s.recvWriter = io.Pipe()

	s.recv = make(chan []byte, 1)

	// both exit when Close() is called
	go s.read()
	go s.write()
	return s
}

// Server is the mock. Lines written by the client are parsed and routed to
// Handler; WriteString plays the server's side of the conversation.
type Server struct {
	// Handler receives every message the client sends. A nil Handler
	// discards them.
	Handler budgie.Handler

	mu       sync.Mutex
	received []*budgie.Message

	rs   sync.Once
	recv chan []byte

	recvReader *io.PipeReader
	recvWriter *io.PipeWriter

	sendReader *io.PipeReader
	sendWriter *io.PipeWriter
}

// Read is how the client reads lines from the server.
func (s *Server) Read(p []byte) (int, error) {
	return s.sendReader.Read(p)
}

// Write is how a client sends messages to the server.
func (s *Server) Write(p []byte) (int, error) {
	s.recv <- p
	return len(p), nil
}

func (s *Server) Close() error {
	_ = s.recvWriter.Close()
	_ = s.sendWriter.Close()
	s.rs.Do(func() {
		close(s.recv)
	})
	return nil
}

// WriteString sends one line from the server to the client.
func (s *Server) WriteString(str string) {
	if !strings.HasSuffix(str, "\r\n") {
		str = str + "\r\n"
	}
	if _, err := s.sendWriter.Write([]byte(str)); err != nil {
		log.Println("mock server write error:", err)
	}
}

// WriteMessage sends a message from the server to the client, implementing
// budgie.MessageWriter so a Handler can reply directly.
func (s *Server) WriteMessage(m encoding.TextMarshaler) {
	b, err := m.MarshalText()
	if err != nil {
		log.Println("marshaler:", err)
		return
	}
	if _, err := s.sendWriter.Write(b); err != nil {
		log.Println("mock server write error:", err)
	}
}

// Received returns every message the client has sent so far, in order.
func (s *Server) Received() []*budgie.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*budgie.Message(nil), s.received...)
}

func (s *Server) read() {
	scanner := bufio.NewScanner(s.recvReader)

	for scanner.Scan() {
		m := budgie.ParseLine(scanner.Text())
		s.mu.Lock()
		s.received = append(s.received, m)
		s.mu.Unlock()
		if s.Handler != nil {
			s.Handler.SpeakIRC(s, m)
		}
	}
}

func (s *Server) write() {
	for b := range s.recv {
		if _, err := s.recvWriter.Write(b); err != nil {
			log.Println("server mock write error:", err)
		}
	}
}
