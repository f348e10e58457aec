// Command budgie is a terminal IRC client built on the budgie engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/budgie-irc/budgie"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a TOML config file")
		server     = flag.String("server", "", "server address (host:port)")
		useTLS     = flag.Bool("tls", true, "connect with TLS")
		nick       = flag.String("nick", "", "nickname")
		logPath    = flag.String("log", "", "write engine logs to this file")
	)
	flag.Parse()

	var opts budgie.Options
	var addrs []string
	var channels []string

	if *configPath != "" {
		cfg, err := budgie.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		opts.Nick = cfg.Nick
		opts.Realname = cfg.Realname
		if len(cfg.Servers) > 0 {
			addrs = cfg.Servers[0].Addrs
			*useTLS = cfg.Servers[0].TLS
			opts.Encoding = cfg.Servers[0].Encoding
			channels = cfg.Servers[0].Channels
		}
	}
	if *server != "" {
		addrs = []string{*server}
	}
	if *nick != "" {
		opts.Nick = *nick
	}
	if opts.Nick == "" || len(addrs) == 0 {
		fmt.Fprintln(os.Stderr, "budgie: a nick and a server are required; see -help")
		os.Exit(2)
	}

	logger := zerolog.Nop()
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		logger = zerolog.New(f).With().Timestamp().Logger()
	}

	session := budgie.NewSession(budgie.FirstDialer(addrs, *useTLS), opts)
	session.Log = logger
	session.Transport.Log = logger
	session.Reconnect = func(attempt int) time.Duration {
		if attempt > 5 {
			return -1
		}
		return time.Duration(attempt) * 2 * time.Second
	}

	p := tea.NewProgram(newModel(session, channels), tea.WithAltScreen())
	session.OnChange = func(changed []string) {
		p.Send(stateChanged(changed))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := session.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("session ended")
		}
		p.Send(sessionEnded{})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
