package format

// corePalette is the classic mIRC 16-color palette.
var corePalette = [16]string{
	"#FFFFFF", // 00 white
	"#000000", // 01 black
	"#00007F", // 02 blue
	"#009300", // 03 green
	"#FF0000", // 04 red
	"#7F0000", // 05 brown
	"#9C009C", // 06 magenta
	"#FC7F00", // 07 orange
	"#FFFF00", // 08 yellow
	"#00FC00", // 09 light green
	"#009393", // 10 cyan
	"#00FFFF", // 11 light cyan
	"#0000FC", // 12 light blue
	"#FF00FF", // 13 pink
	"#7F7F7F", // 14 grey
	"#D2D2D2", // 15 light grey
}

// extendedPalette maps color numbers 16-98, as standardized by the modern
// client-protocol documentation. Number 99 means "default/no color".
var extendedPalette = [83]string{
	"#470000", "#472100", "#474700", "#324700", "#004700", "#00472C",
	"#004747", "#002747", "#000047", "#2E0047", "#470047", "#47002A",
	"#740000", "#743A00", "#747400", "#517400", "#007400", "#007449",
	"#007474", "#004074", "#000074", "#4B0074", "#740074", "#740045",
	"#B50000", "#B56300", "#B5B500", "#7DB500", "#00B500", "#00B571",
	"#00B5B5", "#0063B5", "#0000B5", "#7500B5", "#B500B5", "#B5006B",
	"#FF0000", "#FF8C00", "#FFFF00", "#B2FF00", "#00FF00", "#00FFA0",
	"#00FFFF", "#008CFF", "#0000FF", "#A500FF", "#FF00FF", "#FF0098",
	"#FF5959", "#FFB459", "#FFFF71", "#9FFF59", "#65FF59", "#65FFC9",
	"#65FFFF", "#59B4FF", "#5959FF", "#C459FF", "#FF66FF", "#FF59BC",
	"#FF9C9C", "#FFD39C", "#FFFF9C", "#D2FF9C", "#9CFF9C", "#9CFFDB",
	"#9CFFFF", "#9CD3FF", "#9C9CFF", "#DC9CFF", "#FF9CFF", "#FF94D3",
	"#000000", "#131313", "#282828", "#363636", "#4D4D4D", "#656565",
	"#818181", "#9F9F9F", "#BCBCBC", "#E2E2E2", "#FFFFFF",
}

// paletteColor maps a numeric color code to its hex value. Code 99 and any
// number past the extended palette mean "no color".
func paletteColor(n int) string {
	switch {
	case n < 0:
		return ""
	case n < 16:
		return corePalette[n]
	case n < 99:
		return extendedPalette[n-16]
	default:
		return ""
	}
}
