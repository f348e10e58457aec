package budgie

import "strings"

// UserMode pairs a channel membership prefix symbol with its mode flag,
// e.g. '@' with 'o'. The server advertises these in its 005 PREFIX feature,
// ordered from most to least privileged.
type UserMode struct {
	Symbol byte
	Flag   byte
}

// ModeTable is the privilege alphabet advertised by the server, highest
// rank first. Advertisement order defines sort priority.
type ModeTable []UserMode

// DefaultModeTable covers the common "(qaohv)~&@%+" hierarchy, used until
// the server advertises its own PREFIX feature.
var DefaultModeTable = ModeTable{
	{'~', 'q'},
	{'&', 'a'},
	{'@', 'o'},
	{'%', 'h'},
	{'+', 'v'},
}

// ParsePrefix parses an 005 PREFIX feature value of the form "(ov)@+".
// It returns false when the value is malformed or the counts don't match.
func ParsePrefix(value string) (ModeTable, bool) {
	if len(value) < 2 || value[0] != '(' {
		return nil, false
	}
	end := strings.IndexByte(value, ')')
	if end < 0 {
		return nil, false
	}
	flags := value[1:end]
	symbols := value[end+1:]
	if len(flags) == 0 || len(flags) != len(symbols) {
		return nil, false
	}
	t := make(ModeTable, len(flags))
	for i := range flags {
		t[i] = UserMode{Symbol: symbols[i], Flag: flags[i]}
	}
	return t, true
}

// Rank returns the integer rank of a single mode flag. The least privileged
// known flag ranks 1 and ranks increase with privilege. Flags the server
// never advertised rank 0, below every known flag. Use -1 for "no flags";
// see MaxRank.
func (t ModeTable) Rank(flag byte) int {
	for i, m := range t {
		if m.Flag == flag {
			return len(t) - i
		}
	}
	return 0
}

// MaxRank returns the highest rank among the given flag letters, or -1 when
// the set is empty. This is the derived permission value stored on channel
// memberships; it must be recomputed whenever the flag set changes.
func (t ModeTable) MaxRank(flags string) int {
	if flags == "" {
		return -1
	}
	max := 0
	for i := 0; i < len(flags); i++ {
		if r := t.Rank(flags[i]); r > max {
			max = r
		}
	}
	return max
}

// FlagFor maps a membership prefix symbol to its mode flag, or 0 when the
// symbol is not part of the table.
func (t ModeTable) FlagFor(symbol byte) byte {
	for _, m := range t {
		if m.Symbol == symbol {
			return m.Flag
		}
	}
	return 0
}

// SymbolFor maps a mode flag to its membership prefix symbol, or 0.
func (t ModeTable) SymbolFor(flag byte) byte {
	for _, m := range t {
		if m.Flag == flag {
			return m.Symbol
		}
	}
	return 0
}

// StripNick splits a NAMES-reply entry into the bare nickname and the mode
// flags represented by its leading prefix symbols. Servers with NAMESX or
// multi-prefix may stack several symbols on one entry.
func (t ModeTable) StripNick(entry string) (nick, flags string) {
	i := 0
	for i < len(entry) {
		f := t.FlagFor(entry[i])
		if f == 0 {
			break
		}
		flags += string(f)
		i++
	}
	return entry[i:], flags
}

// chanModeTypes partitions channel modes by argument behavior, from the
// 005 CHANMODES feature. Type D modes (the fourth class) never take an
// argument and need no tracking here.
type chanModeTypes struct {
	list    string // type A: always takes an argument (ban masks and such)
	always  string // type B: always takes an argument
	setOnly string // type C: takes an argument only when setting
}

// defaultChanModeTypes covers the common mode classes, used until the
// server advertises its own CHANMODES feature.
var defaultChanModeTypes = chanModeTypes{list: "beI", always: "k", setOnly: "l"}

// parseChanModes parses an 005 CHANMODES value of the form
// "beI,k,l,imnpst". It returns false when fewer than four classes appear.
func parseChanModes(value string) (chanModeTypes, bool) {
	parts := strings.Split(value, ",")
	if len(parts) < 4 {
		return chanModeTypes{}, false
	}
	return chanModeTypes{list: parts[0], always: parts[1], setOnly: parts[2]}, true
}

// takesArg reports whether the mode flag consumes an argument in a MODE
// change with the given direction.
func (t chanModeTypes) takesArg(flag byte, add bool) bool {
	if strings.IndexByte(t.list, flag) >= 0 || strings.IndexByte(t.always, flag) >= 0 {
		return true
	}
	return add && strings.IndexByte(t.setOnly, flag) >= 0
}

// addFlag returns flags with f added, keeping the set free of duplicates.
func addFlag(flags string, f byte) string {
	if strings.IndexByte(flags, f) >= 0 {
		return flags
	}
	return flags + string(f)
}

// removeFlag returns flags with f removed.
func removeFlag(flags string, f byte) string {
	i := strings.IndexByte(flags, f)
	if i < 0 {
		return flags
	}
	return flags[:i] + flags[i+1:]
}
