package budgie

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Names of the two pseudo-channels created at session start. They live for
// the whole session and are never removed.
const (
	StatusChannel = "*status"
	DebugChannel  = "*debug"
)

// ChannelCategory classifies an open channel buffer.
type ChannelCategory int

const (
	CategoryChannel ChannelCategory = iota
	CategoryPrivate
	CategoryStatus
	CategoryDebug
)

// MessageCategory classifies a buffered message for display purposes.
type MessageCategory int

const (
	MsgDefault MessageCategory = iota
	MsgJoin
	MsgPart
	MsgQuit
	MsgNotice
	MsgError
	MsgAction
)

// ChatMessage is one entry in a channel's message buffer. Messages are
// immutable once created.
type ChatMessage struct {
	ID       string
	Target   string
	Nick     string
	Text     string
	Time     time.Time
	Category MessageCategory
	Color    string
	Echoed   bool
}

// NewChatMessage builds a message with a fresh unique id and the current
// time.
func NewChatMessage(target, nick, text string, category MessageCategory) ChatMessage {
	return ChatMessage{
		ID:       uuid.NewString(),
		Target:   target,
		Nick:     nick,
		Text:     text,
		Time:     time.Now(),
		Category: category,
	}
}

// Channel is one open buffer: a joined channel, a private chat, or one of
// the status/debug pseudo-channels.
//
// Channel values handed out by the store are never mutated in place. Every
// store mutation replaces the whole object, so consumers may compare
// pointers to detect change.
type Channel struct {
	Name       string
	Category   ChannelCategory
	Topic      string
	TopicSetBy string
	TopicSetAt time.Time
	Messages   []ChatMessage
	Typing     []string
	Unread     int
}

func (c *Channel) clone() *Channel {
	cp := *c
	cp.Messages = append([]ChatMessage(nil), c.Messages...)
	cp.Typing = append([]string(nil), c.Typing...)
	return &cp
}

// ChannelStore holds every open channel buffer. Mutation happens only
// through its methods; reads are safe from any goroutine.
type ChannelStore struct {
	mu       sync.RWMutex
	limit    int
	channels map[string]*Channel
}

// NewChannelStore creates a store whose per-channel message buffers hold at
// most limit entries. The status and debug pseudo-channels are created
// immediately.
func NewChannelStore(limit int) *ChannelStore {
	if limit <= 0 {
		limit = DefaultMessageLimit
	}
	s := &ChannelStore{
		limit:    limit,
		channels: make(map[string]*Channel),
	}
	s.channels[StatusChannel] = &Channel{Name: StatusChannel, Category: CategoryStatus}
	s.channels[DebugChannel] = &Channel{Name: DebugChannel, Category: CategoryDebug}
	return s
}

// Add opens a channel buffer. Adding a name that is already open is a no-op,
// which makes duplicate JOIN confirmations harmless.
func (s *ChannelStore) Add(name string, category ChannelCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.channels[name]; ok {
		return
	}
	s.channels[name] = &Channel{Name: name, Category: category}
}

// Remove closes a channel buffer. The status and debug pseudo-channels
// cannot be removed.
func (s *ChannelStore) Remove(name string) {
	if name == StatusChannel || name == DebugChannel {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.channels, name)
}

// Get returns the channel buffer, or nil when it is not open.
func (s *ChannelStore) Get(name string) *Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.channels[name]
}

// Has reports whether the named channel buffer is open.
func (s *ChannelStore) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.channels[name]
	return ok
}

// List returns every open channel, pseudo-channels first, then the rest
// sorted by name.
func (s *ChannelStore) List() []*Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Channel, 0, len(s.channels))
	for _, c := range s.channels {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := out[i], out[j]
		if (ci.Category >= CategoryStatus) != (cj.Category >= CategoryStatus) {
			return ci.Category >= CategoryStatus
		}
		return ci.Name < cj.Name
	})
	return out
}

// Append adds a message to the named channel's buffer, evicting the oldest
// entry once the buffer is full. Appending to a channel that is not open is
// a no-op.
func (s *ChannelStore) Append(name string, msg ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(name, msg)
}

func (s *ChannelStore) appendLocked(name string, msg ChatMessage) {
	c, ok := s.channels[name]
	if !ok {
		return
	}
	next := c.clone()
	next.Messages = append(next.Messages, msg)
	if over := len(next.Messages) - s.limit; over > 0 {
		next.Messages = next.Messages[over:]
	}
	s.channels[name] = next
}

// Broadcast appends the message to every open channel's buffer, under the
// same bounded-buffer rule as Append. Used for connect/disconnect notices.
func (s *ChannelStore) Broadcast(msg ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.channels {
		m := msg
		m.Target = name
		s.appendLocked(name, m)
	}
}

// Messages returns the buffered messages of a channel in insertion order.
// An unknown channel yields an empty slice.
func (s *ChannelStore) Messages(name string) []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.channels[name]
	if !ok {
		return nil
	}
	return c.Messages
}

// SetTopic replaces the channel topic.
func (s *ChannelStore) SetTopic(name, topic string) {
	s.mutate(name, func(c *Channel) {
		c.Topic = topic
	})
}

// SetTopicMeta records who set the topic and when.
func (s *ChannelStore) SetTopicMeta(name, setBy string, setAt time.Time) {
	s.mutate(name, func(c *Channel) {
		c.TopicSetBy = setBy
		c.TopicSetAt = setAt
	})
}

// TypingState is a "+typing" client-tag value.
type TypingState int

const (
	TypingActive TypingState = iota
	TypingPaused
	TypingDone
)

// SetTyping transitions a nick's typing indicator in a channel. Active and
// paused insert the nick if absent; done removes it.
func (s *ChannelStore) SetTyping(name, nick string, state TypingState) {
	s.mutate(name, func(c *Channel) {
		idx := -1
		for i, n := range c.Typing {
			if n == nick {
				idx = i
				break
			}
		}
		switch state {
		case TypingActive, TypingPaused:
			if idx < 0 {
				c.Typing = append(c.Typing, nick)
			}
		case TypingDone:
			if idx >= 0 {
				c.Typing = append(c.Typing[:idx], c.Typing[idx+1:]...)
			}
		}
	})
}

// ClearTyping removes the nick's typing indicator from every open channel,
// used when a user quits or disconnects.
func (s *ChannelStore) ClearTyping(nick string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, c := range s.channels {
		for i, n := range c.Typing {
			if n == nick {
				next := c.clone()
				next.Typing = append(next.Typing[:i], next.Typing[i+1:]...)
				s.channels[name] = next
				break
			}
		}
	}
}

// IncrementUnread bumps the channel's unread counter.
func (s *ChannelStore) IncrementUnread(name string) {
	s.mutate(name, func(c *Channel) {
		c.Unread++
	})
}

// ClearUnread resets the channel's unread counter, typically when the
// channel becomes the active view.
func (s *ChannelStore) ClearUnread(name string) {
	s.mutate(name, func(c *Channel) {
		c.Unread = 0
	})
}

// mutate applies fn to a copy of the named channel and swaps the copy in.
func (s *ChannelStore) mutate(name string, fn func(*Channel)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.channels[name]
	if !ok {
		return
	}
	next := c.clone()
	fn(next)
	s.channels[name] = next
}
