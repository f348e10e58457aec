package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodePlainText(t *testing.T) {
	segs := Decode("just words")
	assert.Len(t, segs, 1)
	assert.Equal(t, "just words", segs[0].Text)
	assert.Equal(t, State{}, segs[0].State)
}

func TestDecodeBoldAndColor(t *testing.T) {
	segs := Decode("\x02bold\x02 \x034red")
	if assert.Len(t, segs, 3) {
		assert.Equal(t, "bold", segs[0].Text)
		assert.True(t, segs[0].State.Bold)
		assert.Equal(t, " ", segs[1].Text)
		assert.Equal(t, State{}, segs[1].State)
		assert.Equal(t, "red", segs[2].Text)
		assert.Equal(t, "#FF0000", segs[2].State.Foreground)
		assert.False(t, segs[2].State.Bold)
	}
}

func TestDecodeColorPairs(t *testing.T) {
	// foreground and background
	segs := Decode("\x030,1white on black")
	if assert.Len(t, segs, 1) {
		assert.Equal(t, "#FFFFFF", segs[0].State.Foreground)
		assert.Equal(t, "#000000", segs[0].State.Background)
	}

	// two-digit codes, extended palette
	segs = Decode("\x0316deep red")
	if assert.Len(t, segs, 1) {
		assert.Equal(t, "#470000", segs[0].State.Foreground)
	}

	// 99 explicitly means no color
	segs = Decode("\x0399none")
	if assert.Len(t, segs, 1) {
		assert.Equal(t, "", segs[0].State.Foreground)
	}

	// bare color code clears both colors
	segs = Decode("\x034red\x03plain")
	if assert.Len(t, segs, 2) {
		assert.Equal(t, "#FF0000", segs[0].State.Foreground)
		assert.Equal(t, State{}, segs[1].State)
	}
}

func TestDecodeColorDigitLimit(t *testing.T) {
	// at most two digits belong to the code; the third is text
	segs := Decode("\x030055")
	if assert.Len(t, segs, 1) {
		assert.Equal(t, "55", segs[0].Text)
		assert.Equal(t, "#FFFFFF", segs[0].State.Foreground)
	}
}

func TestDecodeMalformedColorStaysLiteral(t *testing.T) {
	// a comma with no digits after it belongs to the text
	segs := Decode("\x034,words")
	if assert.Len(t, segs, 1) {
		assert.Equal(t, ",words", segs[0].Text)
		assert.Equal(t, "#FF0000", segs[0].State.Foreground)
	}
}

func TestDecodeHexColor(t *testing.T) {
	segs := Decode("\x04FF0000red")
	if assert.Len(t, segs, 1) {
		assert.Equal(t, "red", segs[0].Text)
		assert.Equal(t, "#FF0000", segs[0].State.Foreground)
	}

	segs = Decode("\x04FF0000,00FF00both")
	if assert.Len(t, segs, 1) {
		assert.Equal(t, "#FF0000", segs[0].State.Foreground)
		assert.Equal(t, "#00FF00", segs[0].State.Background)
	}

	// too few hex digits degrades to literal text
	segs = Decode("\x04FFnope")
	if assert.Len(t, segs, 1) {
		assert.Equal(t, State{}, segs[0].State)
	}
}

func TestDecodeReset(t *testing.T) {
	segs := Decode("\x02\x1fboth\x0fnone")
	if assert.Len(t, segs, 2) {
		assert.True(t, segs[0].State.Bold)
		assert.True(t, segs[0].State.Underline)
		assert.Equal(t, State{}, segs[1].State)
	}
}

func TestDecodeTogglesOffAndOn(t *testing.T) {
	segs := Decode("a\x1ditalic\x1db")
	if assert.Len(t, segs, 3) {
		assert.False(t, segs[0].State.Italic)
		assert.True(t, segs[1].State.Italic)
		assert.False(t, segs[2].State.Italic)
	}
}

func TestStrip(t *testing.T) {
	assert.Equal(t, "bold red", Strip("\x02bold\x02 \x034red"))
	assert.Equal(t, "plain", Strip("plain"))
	assert.Equal(t, "hex", Strip("\x04FF0000,00FF00hex"))
}

func TestIsFormatted(t *testing.T) {
	assert.True(t, IsFormatted("\x02bold"))
	assert.False(t, IsFormatted("plain"))
}

func TestEncodeHelpers(t *testing.T) {
	assert.Equal(t, "\x02hi\x02", Bold("hi"))
	assert.Equal(t, "\x1dhi\x1d", Italic("hi"))
	assert.Equal(t, "\x1fhi\x1f", Underline("hi"))
	assert.Equal(t, "\x0304,01hi\x03", Colorize("hi", 4, 1))

	// encode then decode lands on the same palette entries
	segs := Decode(Colorize("hi", 4, 1))
	if assert.Len(t, segs, 1) {
		assert.Equal(t, "#FF0000", segs[0].State.Foreground)
		assert.Equal(t, "#000000", segs[0].State.Background)
	}
}

func TestPaletteBounds(t *testing.T) {
	assert.Equal(t, "#FFFFFF", paletteColor(0))
	assert.Equal(t, "#D2D2D2", paletteColor(15))
	assert.Equal(t, "#470000", paletteColor(16))
	assert.Equal(t, "#FFFFFF", paletteColor(98))
	assert.Equal(t, "", paletteColor(99))
	assert.Equal(t, "", paletteColor(-1))
}
