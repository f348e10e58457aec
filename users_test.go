package budgie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStoreAddAndLookup(t *testing.T) {
	s := NewUserStore()
	s.Add("Ana", "#go", "o")

	// lookup is case-insensitive but the display nick keeps its case
	u := s.Get("ana")
	require.NotNil(t, u)
	assert.Equal(t, "Ana", u.Nick)
	assert.True(t, u.On("#go"))
	assert.Equal(t, "o", u.FlagsOn("#go"))

	// adding a second channel extends the same user
	s.Add("ana", "#irc", "")
	u = s.Get("Ana")
	require.NotNil(t, u)
	assert.Len(t, u.Channels, 2)
}

func TestUserStoreDerivedRank(t *testing.T) {
	s := NewUserStore()
	s.Add("ana", "#go", "o")

	u := s.Get("ana")
	assert.Equal(t, DefaultModeTable.Rank('o'), u.Channels[0].MaxPermission)

	// -o then +v leaves voice as the highest flag
	s.UpdateFlag("ana", "#go", false, 'o')
	s.UpdateFlag("ana", "#go", true, 'v')
	u = s.Get("ana")
	assert.Equal(t, "v", u.FlagsOn("#go"))
	assert.Equal(t, DefaultModeTable.Rank('v'), u.Channels[0].MaxPermission)

	// losing the last flag drops to the no-flags rank
	s.UpdateFlag("ana", "#go", false, 'v')
	u = s.Get("ana")
	assert.Equal(t, -1, u.Channels[0].MaxPermission)
}

func TestUserStoreSetModeTableRecomputes(t *testing.T) {
	s := NewUserStore()
	s.Add("ana", "#go", "h")
	assert.Equal(t, DefaultModeTable.Rank('h'), s.Get("ana").Channels[0].MaxPermission)

	// a server without halfop demotes 'h' to an unknown flag
	table, _ := ParsePrefix("(ov)@+")
	s.SetModeTable(table)
	assert.Equal(t, 0, s.Get("ana").Channels[0].MaxPermission)
}

func TestUserStoreRemoveAndGC(t *testing.T) {
	s := NewUserStore()
	s.Add("ana", "#go", "")
	s.Add("ana", "#irc", "")

	s.RemoveFromChannel("ana", "#go")
	require.NotNil(t, s.Get("ana"))
	assert.False(t, s.Get("ana").On("#go"))

	// a user with no remaining shared channels is forgotten
	s.RemoveFromChannel("ana", "#irc")
	assert.Nil(t, s.Get("ana"))
}

func TestUserStoreQuit(t *testing.T) {
	s := NewUserStore()
	s.Add("ana", "#go", "")
	s.Add("ana", "#irc", "")

	channels := s.Quit("ana")
	assert.ElementsMatch(t, []string{"#go", "#irc"}, channels)
	assert.Nil(t, s.Get("ana"))
	assert.Nil(t, s.Quit("ghost"))
}

func TestUserStoreRename(t *testing.T) {
	s := NewUserStore()
	s.Add("ana", "#go", "o")

	channels := s.Rename("ana", "ana_away")
	assert.Equal(t, []string{"#go"}, channels)
	assert.Nil(t, s.Get("ana"))
	u := s.Get("ana_away")
	require.NotNil(t, u)
	assert.Equal(t, "o", u.FlagsOn("#go"))

	// renaming onto an existing nick replaces the old entry
	s.Add("bob", "#go", "")
	s.Rename("ana_away", "bob")
	u = s.Get("bob")
	require.NotNil(t, u)
	assert.Equal(t, "o", u.FlagsOn("#go"))
}

func TestUserStoreCopyOnWrite(t *testing.T) {
	s := NewUserStore()
	s.Add("ana", "#go", "")
	before := s.Get("ana")

	s.UpdateFlag("ana", "#go", true, 'o')
	after := s.Get("ana")

	assert.NotSame(t, before, after)
	assert.Equal(t, "", before.FlagsOn("#go"))
	assert.Equal(t, "o", after.FlagsOn("#go"))
}

func TestUserStoreProfileAndPresence(t *testing.T) {
	s := NewUserStore()
	s.Add("ana", "#go", "")

	s.SetAway("ana", true)
	s.SetAccount("ana", "ana")
	s.SetProfile("ana", "avatar", "https://example.com/a.png")
	s.SetProfile("ana", "color", "#AA33FF")
	s.SetProfile("ana", "bogus-key", "ignored")

	u := s.Get("ana")
	assert.True(t, u.Away)
	assert.True(t, u.Registered)
	assert.Equal(t, "https://example.com/a.png", u.Avatar)
	assert.Equal(t, "#AA33FF", u.Color)

	s.SetAccount("ana", "")
	assert.False(t, s.Get("ana").Registered)
}

func TestUserStoreSortedViews(t *testing.T) {
	s := NewUserStore()
	s.Add("zoe", "#go", "v")
	s.Add("Ana", "#go", "")
	s.Add("bob", "#go", "o")
	s.Add("carl", "#go", "v")
	s.Add("dee", "#other", "q")

	byMode := s.SortedByMode("#go")
	require.Len(t, byMode, 4)
	assert.Equal(t, "bob", byMode[0].Nick)  // op first
	assert.Equal(t, "carl", byMode[1].Nick) // voiced, tie broken by nick
	assert.Equal(t, "zoe", byMode[2].Nick)
	assert.Equal(t, "Ana", byMode[3].Nick) // no flags last

	alpha := s.SortedAlphabetical("#go")
	require.Len(t, alpha, 4)
	assert.Equal(t, "Ana", alpha[0].Nick)
	assert.Equal(t, "bob", alpha[1].Nick)
	assert.Equal(t, "carl", alpha[2].Nick)
	assert.Equal(t, "zoe", alpha[3].Nick)
}

func TestUserStoreNotify(t *testing.T) {
	s := NewUserStore()
	var got []string
	s.Notify = func(channels []string) { got = append(got, channels...) }

	s.Add("ana", "#go", "")
	s.UpdateFlag("ana", "#go", true, 'o')
	s.Quit("ana")

	assert.Equal(t, []string{"#go", "#go", "#go"}, got)
}
