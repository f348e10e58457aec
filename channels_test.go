package budgie

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelStorePseudoChannels(t *testing.T) {
	s := NewChannelStore(0)
	require.NotNil(t, s.Get(StatusChannel))
	require.NotNil(t, s.Get(DebugChannel))

	// pseudo-channels survive removal attempts
	s.Remove(StatusChannel)
	s.Remove(DebugChannel)
	assert.NotNil(t, s.Get(StatusChannel))
	assert.NotNil(t, s.Get(DebugChannel))
}

func TestChannelStoreAddIsIdempotent(t *testing.T) {
	s := NewChannelStore(0)
	s.Add("#go", CategoryChannel)
	s.Append("#go", NewChatMessage("#go", "ana", "hi", MsgDefault))

	// a duplicate JOIN confirmation must not wipe the buffer
	s.Add("#go", CategoryChannel)
	assert.Len(t, s.Messages("#go"), 1)
}

func TestChannelStoreAppendOrder(t *testing.T) {
	s := NewChannelStore(0)
	s.Add("#go", CategoryChannel)
	for i := 0; i < 3; i++ {
		s.Append("#go", NewChatMessage("#go", "ana", fmt.Sprintf("msg %d", i), MsgDefault))
	}
	msgs := s.Messages("#go")
	require.Len(t, msgs, 3)
	for i, m := range msgs {
		assert.Equal(t, fmt.Sprintf("msg %d", i), m.Text)
		assert.NotEmpty(t, m.ID)
	}
}

func TestChannelStoreBoundedBuffer(t *testing.T) {
	s := NewChannelStore(5)
	s.Add("#go", CategoryChannel)
	for i := 0; i < 8; i++ {
		s.Append("#go", NewChatMessage("#go", "ana", fmt.Sprintf("msg %d", i), MsgDefault))
	}
	msgs := s.Messages("#go")
	require.Len(t, msgs, 5)
	assert.Equal(t, "msg 3", msgs[0].Text)
	assert.Equal(t, "msg 7", msgs[4].Text)
}

func TestChannelStoreAppendUnknownChannel(t *testing.T) {
	s := NewChannelStore(0)
	s.Append("#nowhere", NewChatMessage("#nowhere", "ana", "hi", MsgDefault))
	assert.Nil(t, s.Get("#nowhere"))
	assert.Empty(t, s.Messages("#nowhere"))
}

func TestChannelStoreCopyOnWrite(t *testing.T) {
	s := NewChannelStore(0)
	s.Add("#go", CategoryChannel)
	before := s.Get("#go")

	s.Append("#go", NewChatMessage("#go", "ana", "hi", MsgDefault))
	after := s.Get("#go")

	// mutation replaces the object; the old snapshot is untouched
	assert.NotSame(t, before, after)
	assert.Empty(t, before.Messages)
	assert.Len(t, after.Messages, 1)
}

func TestChannelStoreBroadcast(t *testing.T) {
	s := NewChannelStore(0)
	s.Add("#go", CategoryChannel)
	s.Add("#irc", CategoryChannel)
	s.Broadcast(NewChatMessage("", "", "disconnected", MsgError))

	for _, name := range []string{"#go", "#irc", StatusChannel, DebugChannel} {
		msgs := s.Messages(name)
		require.Len(t, msgs, 1, name)
		assert.Equal(t, name, msgs[0].Target)
	}
}

func TestChannelStoreTyping(t *testing.T) {
	s := NewChannelStore(0)
	s.Add("#go", CategoryChannel)

	s.SetTyping("#go", "ana", TypingActive)
	s.SetTyping("#go", "ana", TypingActive)
	assert.Equal(t, []string{"ana"}, s.Get("#go").Typing)

	// paused keeps the indicator
	s.SetTyping("#go", "ana", TypingPaused)
	assert.Equal(t, []string{"ana"}, s.Get("#go").Typing)

	s.SetTyping("#go", "bob", TypingActive)
	s.SetTyping("#go", "ana", TypingDone)
	assert.Equal(t, []string{"bob"}, s.Get("#go").Typing)

	s.ClearTyping("bob")
	assert.Empty(t, s.Get("#go").Typing)
}

func TestChannelStoreUnread(t *testing.T) {
	s := NewChannelStore(0)
	s.Add("#go", CategoryChannel)
	s.IncrementUnread("#go")
	s.IncrementUnread("#go")
	assert.Equal(t, 2, s.Get("#go").Unread)
	s.ClearUnread("#go")
	assert.Equal(t, 0, s.Get("#go").Unread)
}

func TestChannelStoreTopic(t *testing.T) {
	s := NewChannelStore(0)
	s.Add("#go", CategoryChannel)
	at := time.Unix(1700000000, 0)
	s.SetTopic("#go", "all things Go")
	s.SetTopicMeta("#go", "ana", at)

	ch := s.Get("#go")
	assert.Equal(t, "all things Go", ch.Topic)
	assert.Equal(t, "ana", ch.TopicSetBy)
	assert.Equal(t, at, ch.TopicSetAt)
}

func TestChannelStoreListOrder(t *testing.T) {
	s := NewChannelStore(0)
	s.Add("#zeta", CategoryChannel)
	s.Add("#alpha", CategoryChannel)
	s.Add("bob", CategoryPrivate)

	list := s.List()
	require.Len(t, list, 5)
	// pseudo-channels first, the rest by name
	assert.Equal(t, DebugChannel, list[0].Name)
	assert.Equal(t, StatusChannel, list[1].Name)
	assert.Equal(t, "#alpha", list[2].Name)
	assert.Equal(t, "#zeta", list[3].Name)
	assert.Equal(t, "bob", list[4].Name)
}
