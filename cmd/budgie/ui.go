package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/budgie-irc/budgie"
	"github.com/budgie-irc/budgie/format"
)

// stateChanged carries the channel names whose state changed since the last
// render.
type stateChanged []string

// sessionEnded tells the UI the connection is gone for good.
type sessionEnded struct{}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	nickStyle   = lipgloss.NewStyle().Bold(true)
	actionStyle = lipgloss.NewStyle().Italic(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	eventStyle  = lipgloss.NewStyle().Faint(true)
	unreadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	typingStyle = lipgloss.NewStyle().Faint(true).Italic(true)
)

type model struct {
	session  *budgie.Session
	active   string
	autojoin []string
	joined   bool
	ended    bool

	viewport viewport.Model
	input    textinput.Model
	width    int
	height   int
	ready    bool
}

func newModel(session *budgie.Session, autojoin []string) model {
	input := textinput.New()
	input.Prompt = "> "
	input.Focus()
	return model{
		session:  session,
		active:   budgie.StatusChannel,
		autojoin: autojoin,
		input:    input,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-3)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 3
		}
		m.refresh()
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.session.Quit("bye")
			return m, tea.Quit
		case tea.KeyTab:
			m.cycleChannel(1)
			m.refresh()
		case tea.KeyShiftTab:
			m.cycleChannel(-1)
			m.refresh()
		case tea.KeyEnter:
			m.submit(m.input.Value())
			m.input.Reset()
			m.refresh()
		default:
			prev := m.input.Value()
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			if m.input.Value() != prev && !strings.HasPrefix(m.input.Value(), "/") {
				m.session.SendTyping(m.active, "active")
			}
			return m, cmd
		}
	case stateChanged:
		if !m.joined {
			m.joined = true
			if len(m.autojoin) > 0 {
				m.session.Join(m.autojoin...)
			}
		}
		for _, ch := range msg {
			if ch == m.active {
				m.refresh()
				break
			}
		}
	case sessionEnded:
		m.ended = true
		m.refresh()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) submit(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if !strings.HasPrefix(line, "/") {
		m.session.SendTyping(m.active, "done")
		m.session.SendMessage(m.active, line)
		return
	}
	cmd, rest, _ := strings.Cut(line[1:], " ")
	switch strings.ToLower(cmd) {
	case "join", "j":
		m.session.Join(strings.Fields(rest)...)
	case "part":
		target := m.active
		if rest != "" {
			target = rest
		}
		m.session.Part(target, "")
	case "me":
		m.session.SendAction(m.active, rest)
	case "msg", "query":
		target, text, _ := strings.Cut(rest, " ")
		m.session.SendMessage(target, text)
	case "nick":
		m.session.SetNick(rest)
	case "topic":
		m.session.SetTopic(m.active, rest)
	case "whois":
		m.session.Whois(rest)
	case "quit":
		m.session.Quit(rest)
	}
}

func (m *model) cycleChannel(dir int) {
	list := m.session.Channels.List()
	if len(list) == 0 {
		return
	}
	idx := 0
	for i, c := range list {
		if c.Name == m.active {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(list)) % len(list)
	m.active = list[idx].Name
	m.session.Channels.ClearUnread(m.active)
}

func (m *model) refresh() {
	if !m.ready {
		return
	}
	ch := m.session.Channels.Get(m.active)
	if ch == nil {
		m.active = budgie.StatusChannel
		ch = m.session.Channels.Get(m.active)
	}
	var b strings.Builder
	for _, msg := range ch.Messages {
		b.WriteString(renderMessage(msg))
		b.WriteByte('\n')
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
	m.session.Channels.ClearUnread(m.active)
}

func renderMessage(msg budgie.ChatMessage) string {
	stamp := msg.Time.Format("15:04")
	text := format.Render(msg.Text)
	nick := msg.Nick
	if msg.Color != "" {
		nick = lipgloss.NewStyle().Foreground(lipgloss.Color(msg.Color)).Bold(true).Render(nick)
	} else if nick != "" {
		nick = nickStyle.Render(nick)
	}
	switch msg.Category {
	case budgie.MsgAction:
		return fmt.Sprintf("%s %s", stamp, actionStyle.Render("* "+msg.Nick+" "+format.Strip(msg.Text)))
	case budgie.MsgNotice:
		return fmt.Sprintf("%s -%s- %s", stamp, nick, noticeStyle.Render(format.Strip(msg.Text)))
	case budgie.MsgError:
		return fmt.Sprintf("%s %s", stamp, errorStyle.Render(format.Strip(msg.Text)))
	case budgie.MsgJoin, budgie.MsgPart, budgie.MsgQuit:
		return fmt.Sprintf("%s %s", stamp, eventStyle.Render(msg.Nick+" "+format.Strip(msg.Text)))
	default:
		if msg.Nick == "" {
			return fmt.Sprintf("%s %s", stamp, text)
		}
		return fmt.Sprintf("%s <%s> %s", stamp, nick, text)
	}
}

func (m model) View() string {
	if !m.ready {
		return "connecting..."
	}
	var tabs []string
	for _, c := range m.session.Channels.List() {
		label := c.Name
		if c.Unread > 0 {
			label = unreadStyle.Render(fmt.Sprintf("%s(%d)", c.Name, c.Unread))
		}
		if c.Name == m.active {
			label = titleStyle.Render("[" + c.Name + "]")
		}
		tabs = append(tabs, label)
	}
	header := strings.Join(tabs, " ")

	status := ""
	if ch := m.session.Channels.Get(m.active); ch != nil {
		switch {
		case len(ch.Typing) == 1:
			status = typingStyle.Render(ch.Typing[0] + " is typing...")
		case len(ch.Typing) > 1:
			status = typingStyle.Render(strings.Join(ch.Typing, ", ") + " are typing...")
		case ch.Topic != "":
			status = eventStyle.Render(format.Strip(ch.Topic))
		}
	}
	if m.ended {
		status = errorStyle.Render("disconnected")
	}

	return header + "\n" + m.viewport.View() + "\n" + status + "\n" + m.input.View()
}
