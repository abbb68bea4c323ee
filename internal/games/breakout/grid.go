package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Geometry describes how grid cells map to field units.
type Geometry struct {
	CellSize float64 // Side of one square cell
	Spacing  float64 // Gap between the cell edge and the block inside it
}

// HalfSize returns the half side of a block.
func (g Geometry) HalfSize() float64 {
	return g.CellSize/2 - g.Spacing
}

// Grid stores the blocks of a level in a flat row-major array of ids, where
// IDEmpty marks an empty cell. Blocks are placed at load time and only ever
// removed afterwards.
type Grid struct {
	width     int
	height    int
	cells     []uint8
	geom      Geometry
	remaining int // Breakable blocks still present
}

// NewGrid creates an empty grid.
func NewGrid(width, height int, geom Geometry) *Grid {
	width = max(width, 0)
	height = max(height, 0)
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]uint8, width*height),
		geom:   geom,
	}
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// Geometry returns the cell geometry.
func (g *Grid) Geometry() Geometry { return g.geom }

// Index converts cell coordinates to a cell index.
func (g *Grid) Index(x, y int) int {
	return y*g.width + x
}

// Coords converts a cell index to cell coordinates.
func (g *Grid) Coords(index int) (x, y int) {
	if g.width == 0 {
		return 0, 0
	}
	return index % g.width, index / g.width
}

// InBounds reports whether the cell coordinates are inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Center returns the centre of a cell in field units.
func (g *Grid) Center(index int) core.Vec2 {
	x, y := g.Coords(index)
	return core.V2(
		(float64(x)+0.5)*g.geom.CellSize,
		(float64(y)+0.5)*g.geom.CellSize,
	)
}

// Place puts a block into a cell during level construction. Id 0 clears the
// cell. Returns false if the cell is outside the grid or the id does not fit
// in four bits.
func (g *Grid) Place(x, y int, id uint8) bool {
	if !g.InBounds(x, y) || id > IDMax {
		return false
	}
	idx := g.Index(x, y)
	if old := g.cells[idx]; old != IDEmpty && IsBreakable(old) {
		g.remaining--
	}
	g.cells[idx] = id
	if id != IDEmpty && IsBreakable(id) {
		g.remaining++
	}
	return true
}

// At returns the block at a cell index, if present.
func (g *Grid) At(index int) (Block, bool) {
	if index < 0 || index >= len(g.cells) || g.cells[index] == IDEmpty {
		return Block{}, false
	}
	return Block{
		Index:    index,
		Position: g.Center(index),
		ID:       g.cells[index],
	}, true
}

// BlockAt returns the block at cell coordinates, if present.
func (g *Grid) BlockAt(x, y int) (Block, bool) {
	if !g.InBounds(x, y) {
		return Block{}, false
	}
	return g.At(g.Index(x, y))
}

// ID returns the id stored at a cell index, IDEmpty if absent or out of range.
func (g *Grid) ID(index int) uint8 {
	if index < 0 || index >= len(g.cells) {
		return IDEmpty
	}
	return g.cells[index]
}

// GetSubset returns the present blocks whose cells intersect the square of
// half side reach around pos. With reach set to the ball radius and the
// radius below half a cell this is the covering 2x2 neighbourhood of the
// ball, clipped to the grid, which contains every block the ball can touch.
func (g *Grid) GetSubset(pos core.Vec2, reach float64) []Block {
	return g.AppendSubset(nil, pos, reach)
}

// AppendSubset is GetSubset appending into dst, so callers can reuse a buffer.
func (g *Grid) AppendSubset(dst []Block, pos core.Vec2, reach float64) []Block {
	if g.width == 0 || g.height == 0 || g.geom.CellSize <= 0 {
		return dst
	}

	minX := g.cellCoord(pos.X - reach)
	maxX := g.cellCoord(pos.X + reach)
	minY := g.cellCoord(pos.Y - reach)
	maxY := g.cellCoord(pos.Y + reach)

	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, g.width-1)
	maxY = min(maxY, g.height-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if b, ok := g.At(g.Index(x, y)); ok {
				dst = append(dst, b)
			}
		}
	}
	return dst
}

// cellCoord floors a field coordinate to a cell coordinate. Values far
// outside the grid are clamped before conversion so they cannot overflow.
func (g *Grid) cellCoord(v float64) int {
	c := math.Floor(v / g.geom.CellSize)
	limit := float64(max(g.width, g.height) + 1)
	return int(core.ClampF(c, -1, limit))
}

// Remove drops the block at a cell index. Removing an empty or out-of-range
// cell is a no-op. Returns true if a block was removed.
func (g *Grid) Remove(index int) bool {
	if index < 0 || index >= len(g.cells) || g.cells[index] == IDEmpty {
		return false
	}
	if IsBreakable(g.cells[index]) {
		g.remaining--
	}
	g.cells[index] = IDEmpty
	return true
}

// Finished reports whether no breakable blocks remain. Unbreakable blocks
// never count.
func (g *Grid) Finished() bool {
	return g.remaining == 0
}

// Remaining returns the number of breakable blocks left.
func (g *Grid) Remaining() int {
	return g.remaining
}

// Count returns the number of present blocks, breakable or not.
func (g *Grid) Count() int {
	n := 0
	for _, id := range g.cells {
		if id != IDEmpty {
			n++
		}
	}
	return n
}

// Blocks returns every present block in cell index order.
func (g *Grid) Blocks() []Block {
	out := make([]Block, 0, len(g.cells))
	for i := range g.cells {
		if b, ok := g.At(i); ok {
			out = append(out, b)
		}
	}
	return out
}

// IDs returns a copy of the raw cell ids in row-major order.
func (g *Grid) IDs() []uint8 {
	out := make([]uint8, len(g.cells))
	copy(out, g.cells)
	return out
}

// Clone creates a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	clone := *g
	clone.cells = g.IDs()
	return &clone
}
