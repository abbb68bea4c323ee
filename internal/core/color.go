package core

// Color represents a foreground color for a screen cell.
// Frontends map it to ANSI codes or RGB values.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
)

// ColorFromRGB picks the terminal color closest to a block color whose
// channels are each either 0 or 255. Any other triple maps to gray.
func ColorFromRGB(r, g, b uint8) Color {
	on := func(v uint8) bool { return v == 255 }
	off := func(v uint8) bool { return v == 0 }
	if !(on(r) || off(r)) || !(on(g) || off(g)) || !(on(b) || off(b)) {
		return ColorGray
	}

	switch {
	case on(r) && on(g) && on(b):
		return ColorWhite
	case on(r) && on(g):
		return ColorYellow
	case on(r) && on(b):
		return ColorMagenta
	case on(g) && on(b):
		return ColorCyan
	case on(r):
		return ColorRed
	case on(g):
		return ColorGreen
	case on(b):
		return ColorBlue
	default:
		return ColorGray
	}
}
