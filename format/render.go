package format

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style converts the segment's formatting state to a lipgloss style.
// The Reverse flag is resolved here by swapping foreground and background.
func (s Segment) Style() lipgloss.Style {
	st := lipgloss.NewStyle().
		Bold(s.Bold).
		Italic(s.Italic).
		Underline(s.Underline).
		Strikethrough(s.Strikethrough)

	fg, bg := s.Foreground, s.Background
	if s.Reverse {
		fg, bg = bg, fg
	}
	if fg != "" {
		st = st.Foreground(lipgloss.Color(fg))
	}
	if bg != "" {
		st = st.Background(lipgloss.Color(bg))
	}
	return st
}

// Render decodes text and returns it styled for terminal output.
func Render(text string) string {
	segs := Decode(text)
	if len(segs) == 1 && segs[0].State.zero() {
		return segs[0].Text
	}
	var b strings.Builder
	for _, seg := range segs {
		b.WriteString(seg.Style().Render(seg.Text))
	}
	return b.String()
}
