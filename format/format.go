// Package format implements the mIRC-style inline text formatting codec:
// decoding control bytes into styled segments, stripping formatting, and
// encoding styled text for transmission.
package format

import "strings"

// Control bytes recognized inside message text.
const (
	ctrlBold          = 0x02
	ctrlColor         = 0x03
	ctrlHexColor      = 0x04
	ctrlReset         = 0x0F
	ctrlMonospace     = 0x11
	ctrlReverse       = 0x16
	ctrlItalic        = 0x1D
	ctrlStrikethrough = 0x1E
	ctrlUnderline     = 0x1F
)

// State is the formatting state applied to a run of text. Colors are hex
// strings of the form "#RRGGBB", or "" for no color. Reverse is carried as a
// flag only; swapping foreground and background is a rendering concern.
type State struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Monospace     bool
	Reverse       bool
	Foreground    string
	Background    string
}

// zero reports whether the state is the default state.
func (s State) zero() bool {
	return s == State{}
}

// Segment is a run of text with the formatting state in effect for it.
// The State is a copy; segments never share state.
type Segment struct {
	Text string
	State
}

// Decode scans text left to right and returns its styled segments.
// Text without any control bytes decodes to a single segment with the
// default state. Malformed or truncated directives degrade to their
// consumed characters as plain text rather than failing.
func Decode(text string) []Segment {
	var (
		segs  []Segment
		buf   strings.Builder
		state State
	)

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		segs = append(segs, Segment{Text: buf.String(), State: state})
		buf.Reset()
	}

	for i := 0; i < len(text); {
		c := text[i]
		switch c {
		case ctrlBold:
			flush()
			state.Bold = !state.Bold
			i++
		case ctrlItalic:
			flush()
			state.Italic = !state.Italic
			i++
		case ctrlUnderline:
			flush()
			state.Underline = !state.Underline
			i++
		case ctrlStrikethrough:
			flush()
			state.Strikethrough = !state.Strikethrough
			i++
		case ctrlMonospace:
			flush()
			state.Monospace = !state.Monospace
			i++
		case ctrlReverse:
			flush()
			state.Reverse = !state.Reverse
			i++
		case ctrlReset:
			flush()
			state = State{}
			i++
		case ctrlColor:
			flush()
			i += decodeColor(text[i:], &state)
		case ctrlHexColor:
			flush()
			n, ok := decodeHexColor(text[i:], &state)
			if !ok {
				// keep the consumed run as literal text
				buf.WriteString(text[i+1 : i+n])
			}
			i += n
		default:
			buf.WriteByte(c)
			i++
		}
	}
	flush()

	if segs == nil {
		return []Segment{{Text: text, State: State{}}}
	}
	return segs
}

// decodeColor consumes a color directive starting at the control byte and
// updates state. It returns the number of bytes consumed. A bare directive
// with no digits clears both colors.
func decodeColor(text string, state *State) int {
	i := 1
	fg, n := readColorNumber(text[i:])
	if n == 0 {
		state.Foreground = ""
		state.Background = ""
		return i
	}
	i += n
	state.Foreground = paletteColor(fg)

	// a comma only belongs to the directive when digits follow it
	if i < len(text) && text[i] == ',' {
		bg, n := readColorNumber(text[i+1:])
		if n > 0 {
			i += 1 + n
			state.Background = paletteColor(bg)
		}
	}
	return i
}

// readColorNumber reads 1-2 decimal digits and returns the value and the
// number of bytes consumed.
func readColorNumber(text string) (val, n int) {
	for n < 2 && n < len(text) && text[n] >= '0' && text[n] <= '9' {
		val = val*10 + int(text[n]-'0')
		n++
	}
	return val, n
}

// decodeHexColor consumes a hex color directive: exactly 6 hex digits for
// the foreground, optionally a comma and 6 more for the background. It
// returns the bytes consumed and whether the directive was well formed.
func decodeHexColor(text string, state *State) (n int, ok bool) {
	i := 1
	fg, ok := readHex6(text[i:])
	if !ok {
		// consume the partial run so it can degrade to literal text
		for i < len(text) && isHexDigit(text[i]) {
			i++
		}
		return i, false
	}
	i += 6
	state.Foreground = "#" + strings.ToUpper(fg)

	if i < len(text) && text[i] == ',' {
		if bg, ok := readHex6(text[i+1:]); ok {
			i += 7
			state.Background = "#" + strings.ToUpper(bg)
		}
	}
	return i, true
}

func readHex6(text string) (string, bool) {
	if len(text) < 6 {
		return "", false
	}
	for i := 0; i < 6; i++ {
		if !isHexDigit(text[i]) {
			return "", false
		}
	}
	return text[:6], true
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// Strip removes all formatting directives from text, returning the plain
// text content. Stripping is the concatenation of all decoded segment texts.
func Strip(text string) string {
	segs := Decode(text)
	if len(segs) == 1 {
		return segs[0].Text
	}
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

// IsFormatted reports whether text contains any formatting directives.
func IsFormatted(text string) bool {
	return strings.IndexAny(text, "\x02\x03\x04\x0f\x11\x16\x1d\x1e\x1f") >= 0
}

// Bold wraps text in bold toggles.
func Bold(text string) string {
	return string(rune(ctrlBold)) + text + string(rune(ctrlBold))
}

// Italic wraps text in italic toggles.
func Italic(text string) string {
	return string(rune(ctrlItalic)) + text + string(rune(ctrlItalic))
}

// Underline wraps text in underline toggles.
func Underline(text string) string {
	return string(rune(ctrlUnderline)) + text + string(rune(ctrlUnderline))
}

// Colorize wraps text in a color directive for palette index fg and an
// optional bg (pass -1 for no background), terminated by a bare directive.
func Colorize(text string, fg, bg int) string {
	var b strings.Builder
	b.WriteByte(ctrlColor)
	b.WriteString(pad2(fg))
	if bg >= 0 {
		b.WriteByte(',')
		b.WriteString(pad2(bg))
	}
	b.WriteString(text)
	b.WriteByte(ctrlColor)
	return b.String()
}

func pad2(n int) string {
	if n < 10 {
		return "0" + string(rune('0'+n))
	}
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}
