package budgie

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults applied wherever the corresponding Options field is zero.
const (
	DefaultPort         = 6697
	DefaultMessageLimit = 200
	DefaultWatchdog     = 120 * time.Second
	DefaultDrain        = 300 * time.Millisecond
)

// ErrNoAddress is returned by Connect when the server configuration
// contains no address to dial.
var ErrNoAddress = errors.New("no server address configured")

// Config is the on-disk configuration file.
type Config struct {
	Nick     string         `toml:"nick"`
	Realname string         `toml:"realname"`
	Servers  []ServerConfig `toml:"servers"`
	Listen   ListenConfig   `toml:"listen"`
}

// ServerConfig describes one server to connect to.
type ServerConfig struct {
	Name     string   `toml:"name"`
	Addrs    []string `toml:"addrs"`
	TLS      bool     `toml:"tls"`
	Encoding string   `toml:"encoding"`
	Channels []string `toml:"channels"`
}

// ListenConfig configures the websocket relay listener.
type ListenConfig struct {
	Addr string `toml:"addr"`
}

// LoadConfig reads and decodes a TOML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Options tunes a Session. The zero value is usable; zero fields take the
// package defaults.
type Options struct {
	// Nick is the nickname requested at registration.
	Nick string

	// Realname is sent in the USER command. Defaults to Nick.
	Realname string

	// MessageLimit bounds each channel's message buffer.
	MessageLimit int

	// Watchdog is how long the connection may stay silent before a timeout
	// event is emitted. The connection is not closed.
	Watchdog time.Duration

	// DrainInterval is the pacing interval of the outbound send queue.
	DrainInterval time.Duration

	// Encoding names a legacy character encoding (e.g. "latin1") to decode
	// inbound lines with. Empty means UTF-8 passthrough.
	Encoding string
}

func (o Options) withDefaults() Options {
	if o.Realname == "" {
		o.Realname = o.Nick
	}
	if o.MessageLimit <= 0 {
		o.MessageLimit = DefaultMessageLimit
	}
	if o.Watchdog <= 0 {
		o.Watchdog = DefaultWatchdog
	}
	if o.DrainInterval <= 0 {
		o.DrainInterval = DefaultDrain
	}
	return o
}
