package breakout

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

// Level is a block layout: a width x height array of 4-bit ids in
// row-major order. It is the unit the level file format stores and the
// source every Grid is built from.
type Level struct {
	ID     string
	Name   string
	Width  int
	Height int
	IDs    []uint8
}

// NewLevel creates an empty level.
func NewLevel(id, name string, width, height int) *Level {
	return &Level{
		ID:     id,
		Name:   name,
		Width:  width,
		Height: height,
		IDs:    make([]uint8, width*height),
	}
}

// FilledLevel creates a level with every cell set to the same id.
func FilledLevel(id, name string, width, height int, fill uint8) *Level {
	l := NewLevel(id, name, width, height)
	for i := range l.IDs {
		l.IDs[i] = fill
	}
	return l
}

// Clone creates a deep copy of the level.
func (l *Level) Clone() *Level {
	clone := *l
	clone.IDs = make([]uint8, len(l.IDs))
	copy(clone.IDs, l.IDs)
	return &clone
}

// At returns the id at cell coordinates, IDEmpty outside the level.
func (l *Level) At(x, y int) uint8 {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return IDEmpty
	}
	return l.IDs[y*l.Width+x]
}

// CountBreakable returns the number of breakable blocks in the layout.
func (l *Level) CountBreakable() int {
	n := 0
	for _, id := range l.IDs {
		if id != IDEmpty && IsBreakable(id) {
			n++
		}
	}
	return n
}

// Fits checks that every cell of the layout lies on the field described by
// cfg. Blocks outside the field can never be hit, so such a level could not
// be cleared.
func (l *Level) Fits(cfg config.BreakoutConfig) error {
	if cfg.Blocks.CellSize <= 0 {
		return fmt.Errorf("%w: cell size %v", ErrDimensions, cfg.Blocks.CellSize)
	}
	cols := int(cfg.Field.Width / cfg.Blocks.CellSize)
	rows := int(cfg.Field.Height / cfg.Blocks.CellSize)
	if l.Width > cols || l.Height > rows {
		return fmt.Errorf("%w: %dx%d level does not fit a %dx%d cell field",
			ErrDimensions, l.Width, l.Height, cols, rows)
	}
	return nil
}

// Grid builds a fresh grid from the layout.
func (l *Level) Grid(geom Geometry) *Grid {
	g := NewGrid(l.Width, l.Height, geom)
	for i, id := range l.IDs {
		if id != IDEmpty {
			g.Place(i%l.Width, i/l.Width, id)
		}
	}
	return g
}

// String renders the layout as text, one glyph per cell: '.' for empty,
// '1'-'7' for breakable colours and 'X' for unbreakable blocks.
func (l *Level) String() string {
	buf := make([]byte, 0, (l.Width+1)*l.Height)
	for y := range l.Height {
		for x := range l.Width {
			buf = append(buf, idGlyph(l.At(x, y)))
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

func idGlyph(id uint8) byte {
	switch {
	case id == IDEmpty:
		return '.'
	case !IsBreakable(id):
		return 'X'
	default:
		return '0' + id
	}
}

// Built-in layouts are drawn with one glyph per two cells and start a few
// rows below the top so balls can get behind them.
const (
	glyphWidth     = 2
	levelTopMargin = 3
)

// rowColors cycles '#' glyphs through the palette by row.
var rowColors = []uint8{1, 3, 2, 6, 4, 5, 7}

// ParseLevel creates a Level from an ASCII map.
// Characters:
//
//	'#' = breakable block, coloured by row
//	'.' = empty
//	'1'-'7' = breakable block with that colour id
//	'H' = white breakable block
//	'X' = unbreakable block
func ParseLevel(id, name string, lines []string) *Level {
	if len(lines) == 0 {
		return NewLevel(id, name, 0, 0)
	}

	// Find max width
	maxWidth := 0
	for _, line := range lines {
		maxWidth = max(maxWidth, len(line))
	}

	level := NewLevel(id, name, maxWidth*glyphWidth, len(lines)+levelTopMargin)

	for row, line := range lines {
		y := row + levelTopMargin
		for col := range len(line) {
			var blockID uint8
			switch ch := line[col]; {
			case ch == '#':
				blockID = rowColors[row%len(rowColors)]
			case ch >= '1' && ch <= '7':
				blockID = ch - '0'
			case ch == 'H' || ch == 'h':
				blockID = 7
			case ch == 'X' || ch == 'x':
				blockID = IDUnbreakable
			default:
				continue
			}
			for dx := range glyphWidth {
				level.IDs[y*level.Width+col*glyphWidth+dx] = blockID
			}
		}
	}

	return level
}

// BuiltinLevels returns all built-in levels.
func BuiltinLevels() []*Level {
	return []*Level{
		// Level 1: Classic
		ParseLevel("classic", "Classic", []string{
			"####################",
			"####################",
			"####################",
			"####################",
			"####################",
		}),

		// Level 2: Pyramid
		ParseLevel("pyramid", "Pyramid", []string{
			"........####........",
			"......########......",
			"....############....",
			"..################..",
			"####################",
		}),

		// Level 3: Checkerboard
		ParseLevel("checker", "Checkerboard", []string{
			"#.#.#.#.#.#.#.#.#.#.",
			".#.#.#.#.#.#.#.#.#.#",
			"#.#.#.#.#.#.#.#.#.#.",
			".#.#.#.#.#.#.#.#.#.#",
			"#.#.#.#.#.#.#.#.#.#.",
			".#.#.#.#.#.#.#.#.#.#",
		}),

		// Level 4: Diamond
		ParseLevel("diamond", "Diamond", []string{
			".........##.........",
			"........####........",
			".......######.......",
			"......########......",
			".....##########.....",
			"......########......",
			".......######.......",
			"........####........",
			".........##.........",
		}),

		// Level 5: Fortress
		ParseLevel("fortress", "Fortress", []string{
			"XXXXXXXXX..XXXXXXXXX",
			"X..................X",
			"X.1111111111111111.X",
			"X.3333333333333333.X",
			"X.2222222222222222.X",
			"X..................X",
			"XXXXXXX......XXXXXXX",
		}),

		// Level 6: Striped
		ParseLevel("striped", "Striped", []string{
			"11111111111111111111",
			"....................",
			"33333333333333333333",
			"....................",
			"22222222222222222222",
			"....................",
			"66666666666666666666",
		}),

		// Level 7: Invaders
		ParseLevel("invaders", "Invaders", []string{
			"..#..........#......",
			".###........###.....",
			"#####......#####....",
			"#.#.#......#.#.#....",
			"#####......#####....",
			"....................",
			"......#..........#..",
			".....###........###.",
			"....#####......#####",
			"....#.#.#......#.#.#",
			"....#####......#####",
		}),

		// Level 8: Heart
		ParseLevel("heart", "Heart", []string{
			"....##....##........",
			"...####..####.......",
			"..############......",
			"..############......",
			"...##########.......",
			"....########........",
			".....######.........",
			"......####..........",
			".......##...........",
		}),

		// Level 9: Castle (with unbreakable blocks)
		ParseLevel("castle", "Castle", []string{
			"X..X....X..X....X..X",
			"XXXX....XXXX....XXXX",
			"X..X....X..X....X..X",
			"....................",
			"####################",
			"####################",
			"####################",
			"####################",
		}),

		// Level 10: Final Boss
		ParseLevel("boss", "Final Boss", []string{
			"HHHHHHHHHHHHHHHHHHHH",
			"H##################H",
			"H#XX############XX#H",
			"H##################H",
			"H#XX############XX#H",
			"H##################H",
			"HHHHHHHHHHHHHHHHHHHH",
		}),
	}
}

// GetLevelByID returns a level by its ID.
func GetLevelByID(id string) (*Level, bool) {
	for _, level := range BuiltinLevels() {
		if level.ID == id {
			return level, true
		}
	}
	return nil, false
}

// GetLevel returns a level by index (wraps around if index >= len).
func GetLevel(index int) *Level {
	levels := BuiltinLevels()
	if len(levels) == 0 {
		return ParseLevel("empty", "Empty", []string{})
	}
	return levels[index%len(levels)]
}

// LevelCount returns the total number of available levels.
func LevelCount() int {
	return len(BuiltinLevels())
}

// ResolveLevel finds a built-in level by ID or by 1-based number.
func ResolveLevel(ref string) (int, error) {
	for i, level := range BuiltinLevels() {
		if level.ID == ref {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= LevelCount() {
			return n - 1, nil
		}
		return 0, fmt.Errorf("level %d out of range 1-%d", n, LevelCount())
	}
	return 0, fmt.Errorf("unknown level %q", ref)
}
