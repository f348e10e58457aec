package budgie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrefix(t *testing.T) {
	table, ok := ParsePrefix("(ov)@+")
	require.True(t, ok)
	require.Len(t, table, 2)
	assert.Equal(t, byte('@'), table[0].Symbol)
	assert.Equal(t, byte('o'), table[0].Flag)
	assert.Equal(t, byte('+'), table[1].Symbol)
	assert.Equal(t, byte('v'), table[1].Flag)

	for _, bad := range []string{"", "(", "(ov)@", "ov)@+", "()"} {
		_, ok := ParsePrefix(bad)
		assert.False(t, ok, "ParsePrefix(%q) should fail", bad)
	}
}

func TestRankOrdering(t *testing.T) {
	table, _ := ParsePrefix("(qaohv)~&@%+")

	// advertisement order defines privilege, highest first
	assert.Equal(t, 5, table.Rank('q'))
	assert.Equal(t, 3, table.Rank('o'))
	assert.Equal(t, 1, table.Rank('v'))

	// unknown flags rank below every known flag
	assert.Equal(t, 0, table.Rank('z'))

	// no flags at all ranks below unknown flags
	assert.Equal(t, -1, table.MaxRank(""))

	assert.Equal(t, 3, table.MaxRank("vo"))
	assert.Equal(t, 5, table.MaxRank("vq"))
	assert.Equal(t, 0, table.MaxRank("z"))
}

func TestStripNick(t *testing.T) {
	table := DefaultModeTable

	nick, flags := table.StripNick("@ana")
	assert.Equal(t, "ana", nick)
	assert.Equal(t, "o", flags)

	// multi-prefix stacks symbols highest first
	nick, flags = table.StripNick("~@+ana")
	assert.Equal(t, "ana", nick)
	assert.Equal(t, "qov", flags)

	nick, flags = table.StripNick("ana")
	assert.Equal(t, "ana", nick)
	assert.Equal(t, "", flags)
}

func TestFlagSetHelpers(t *testing.T) {
	assert.Equal(t, "ov", addFlag("o", 'v'))
	assert.Equal(t, "o", addFlag("o", 'o'))
	assert.Equal(t, "v", removeFlag("ov", 'o'))
	assert.Equal(t, "ov", removeFlag("ov", 'z'))
}

func TestParseChanModes(t *testing.T) {
	cm, ok := parseChanModes("beI,k,l,imnpst")
	require.True(t, ok)
	assert.True(t, cm.takesArg('b', true))
	assert.True(t, cm.takesArg('b', false))
	assert.True(t, cm.takesArg('k', false))
	assert.True(t, cm.takesArg('l', true))
	assert.False(t, cm.takesArg('l', false))
	assert.False(t, cm.takesArg('i', true))

	_, ok = parseChanModes("beI,k")
	assert.False(t, ok)
}
