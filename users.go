package budgie

import (
	"sort"
	"strings"
	"sync"
)

// UserChannel records one channel membership of a user, including the mode
// flags held there and the rank derived from them.
type UserChannel struct {
	Name          string
	Flags         string
	MaxPermission int
}

// User is a known network user: someone sharing at least one channel with
// us, or someone we have an open private chat with.
//
// Like channels, user objects handed out by the store are immutable; every
// mutation swaps in a fresh copy.
type User struct {
	Nick        string
	Ident       string
	Hostname    string
	Account     string
	Realname    string
	DisplayName string
	Avatar      string
	Color       string
	Status      string
	Homepage    string
	Away        bool
	Registered  bool
	Channels    []UserChannel
}

func (u *User) clone() *User {
	cp := *u
	cp.Channels = append([]UserChannel(nil), u.Channels...)
	return &cp
}

// On reports whether the user shares the named channel with us.
func (u *User) On(channel string) bool {
	return u.channelIndex(channel) >= 0
}

// FlagsOn returns the user's mode flags on the named channel.
func (u *User) FlagsOn(channel string) string {
	if i := u.channelIndex(channel); i >= 0 {
		return u.Channels[i].Flags
	}
	return ""
}

func (u *User) channelIndex(channel string) int {
	for i, uc := range u.Channels {
		if uc.Name == channel {
			return i
		}
	}
	return -1
}

// UserStore tracks every known user, keyed by lowercased nick. It derives
// per-channel rank from mode flags using the ModeTable configured on it.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*User
	modes ModeTable

	// Notify, when set, is called after every mutation with the affected
	// channel names. It runs with the store lock held, so it must not call
	// back into the store.
	Notify func(channels []string)
}

// NewUserStore creates an empty store using the standard prefix table until
// SetModeTable replaces it from server ISUPPORT.
func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[string]*User),
		modes: DefaultModeTable,
	}
}

// SetModeTable installs the server's PREFIX ordering and recomputes every
// stored rank under it.
func (s *UserStore) SetModeTable(t ModeTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes = t
	for key, u := range s.users {
		next := u.clone()
		for i := range next.Channels {
			next.Channels[i].MaxPermission = t.MaxRank(next.Channels[i].Flags)
		}
		s.users[key] = next
	}
}

// Modes returns the prefix table currently in effect.
func (s *UserStore) Modes() ModeTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modes
}

// Get returns the user, or nil if unknown. Lookup is case-insensitive.
func (s *UserStore) Get(nick string) *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[strings.ToLower(nick)]
}

// Add records a user joining a channel, creating the user if needed. Flags
// are the mode flags already held, as for a NAMES entry. Re-adding an
// existing membership replaces its flags.
func (s *UserStore) Add(nick, channel, flags string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(nick)
	u, ok := s.users[key]
	if !ok {
		u = &User{Nick: nick}
	}
	next := u.clone()
	uc := UserChannel{Name: channel, Flags: flags, MaxPermission: s.modes.MaxRank(flags)}
	if i := next.channelIndex(channel); i >= 0 {
		next.Channels[i] = uc
	} else {
		next.Channels = append(next.Channels, uc)
	}
	s.users[key] = next
	s.notify(channel)
}

// SetHostmask fills in ident and hostname, typically learned from a JOIN or
// WHOIS reply.
func (s *UserStore) SetHostmask(nick, ident, hostname string) {
	s.update(nick, func(u *User) []string {
		u.Ident = ident
		u.Hostname = hostname
		return nil
	})
}

// RemoveFromChannel drops the user's membership of one channel. A user left
// with no memberships is forgotten entirely.
func (s *UserStore) RemoveFromChannel(nick, channel string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(nick)
	u, ok := s.users[key]
	if !ok {
		return
	}
	i := u.channelIndex(channel)
	if i < 0 {
		return
	}
	next := u.clone()
	next.Channels = append(next.Channels[:i], next.Channels[i+1:]...)
	if len(next.Channels) == 0 {
		delete(s.users, key)
	} else {
		s.users[key] = next
	}
	s.notify(channel)
}

// Quit forgets the user entirely and returns the channels they were on, so
// the caller can post quit notices to each.
func (s *UserStore) Quit(nick string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(nick)
	u, ok := s.users[key]
	if !ok {
		return nil
	}
	delete(s.users, key)
	channels := make([]string, len(u.Channels))
	for i, uc := range u.Channels {
		channels[i] = uc.Name
	}
	s.notifyAll(channels)
	return channels
}

// Rename moves a user to a new nick. If the new nick is already known, the
// renamed user replaces it. Returns the channels the user is on.
func (s *UserStore) Rename(oldNick, newNick string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	oldKey := strings.ToLower(oldNick)
	u, ok := s.users[oldKey]
	if !ok {
		return nil
	}
	delete(s.users, oldKey)
	next := u.clone()
	next.Nick = newNick
	s.users[strings.ToLower(newNick)] = next
	channels := make([]string, len(next.Channels))
	for i, uc := range next.Channels {
		channels[i] = uc.Name
	}
	s.notifyAll(channels)
	return channels
}

// UpdateFlag applies one mode change (+flag or -flag) to the user's
// membership of a channel and recomputes the derived rank in the same step.
func (s *UserStore) UpdateFlag(nick, channel string, add bool, flag byte) {
	s.update(nick, func(u *User) []string {
		i := u.channelIndex(channel)
		if i < 0 {
			return nil
		}
		if add {
			u.Channels[i].Flags = addFlag(u.Channels[i].Flags, flag)
		} else {
			u.Channels[i].Flags = removeFlag(u.Channels[i].Flags, flag)
		}
		u.Channels[i].MaxPermission = s.modes.MaxRank(u.Channels[i].Flags)
		return []string{channel}
	})
}

// SetAway flips the user's away marker.
func (s *UserStore) SetAway(nick string, away bool) {
	s.update(nick, func(u *User) []string {
		u.Away = away
		return u.channelNames()
	})
}

// SetAccount records the user's services account. An empty account means
// logged out.
func (s *UserStore) SetAccount(nick, account string) {
	s.update(nick, func(u *User) []string {
		u.Account = account
		u.Registered = account != ""
		return nil
	})
}

// SetProfile applies metadata key/value pairs to the user's profile.
// Unknown keys are ignored.
func (s *UserStore) SetProfile(nick, key, value string) {
	s.update(nick, func(u *User) []string {
		switch key {
		case "avatar":
			u.Avatar = value
		case "color":
			u.Color = value
		case "display-name":
			u.DisplayName = value
		case "status":
			u.Status = value
		case "homepage":
			u.Homepage = value
		case "realname":
			u.Realname = value
		default:
			return nil
		}
		return u.channelNames()
	})
}

func (u *User) channelNames() []string {
	names := make([]string, len(u.Channels))
	for i, uc := range u.Channels {
		names[i] = uc.Name
	}
	return names
}

// Members returns every user on the named channel, unsorted.
func (s *UserStore) Members(channel string) []*User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*User
	for _, u := range s.users {
		if u.On(channel) {
			out = append(out, u)
		}
	}
	return out
}

// SortedByMode returns the channel's members ordered by rank, highest first,
// breaking ties by case-insensitive nick.
func (s *UserStore) SortedByMode(channel string) []*User {
	out := s.Members(channel)
	sort.Slice(out, func(i, j int) bool {
		ri := out[i].Channels[out[i].channelIndex(channel)].MaxPermission
		rj := out[j].Channels[out[j].channelIndex(channel)].MaxPermission
		if ri != rj {
			return ri > rj
		}
		return strings.ToLower(out[i].Nick) < strings.ToLower(out[j].Nick)
	})
	return out
}

// SortedAlphabetical returns the channel's members ordered by
// case-insensitive nick alone.
func (s *UserStore) SortedAlphabetical(channel string) []*User {
	out := s.Members(channel)
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Nick) < strings.ToLower(out[j].Nick)
	})
	return out
}

// update clones, mutates, and swaps one user. fn returns the channels whose
// member lists changed as a result.
func (s *UserStore) update(nick string, fn func(*User) []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(nick)
	u, ok := s.users[key]
	if !ok {
		return
	}
	next := u.clone()
	changed := fn(next)
	s.users[key] = next
	s.notifyAll(changed)
}

func (s *UserStore) notify(channel string) {
	if s.Notify != nil {
		s.Notify([]string{channel})
	}
}

func (s *UserStore) notifyAll(channels []string) {
	if s.Notify != nil && len(channels) > 0 {
		s.Notify(channels)
	}
}
