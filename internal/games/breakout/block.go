// Package breakout implements a Breakout game: a paddle deflects one or
// more balls into a grid of blocks loaded from a packed binary level.
package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// Block ids are 4 bits wide. Id 0 is an empty cell, ids 1-7 are breakable
// and coloured by their low three bits, and any id with bit 3 set is
// unbreakable.
const (
	IDEmpty       uint8 = 0
	IDUnbreakable uint8 = 1 << 3
	IDMax         uint8 = 15
)

// Block is a read-only view of one grid cell. Position is the centre of the
// block in field units.
type Block struct {
	Index    int // Cell index, y*width + x
	Position core.Vec2
	ID       uint8
}

// Breakable reports whether a ball hit removes the block.
func (b Block) Breakable() bool {
	return IsBreakable(b.ID)
}

// RGB returns the block colour.
func (b Block) RGB() (r, g, bl uint8) {
	return BlockRGB(b.ID)
}

// IsBreakable reports whether an id denotes a breakable block.
func IsBreakable(id uint8) bool {
	return id&IDUnbreakable == 0
}

// BlockRGB maps an id to its colour. Breakable ids use bit 2 for red,
// bit 1 for green and bit 0 for blue, each fully on or off. Unbreakable
// blocks are grey.
func BlockRGB(id uint8) (r, g, b uint8) {
	if !IsBreakable(id) {
		return 127, 127, 127
	}
	channel := func(bit uint8) uint8 {
		if id&bit != 0 {
			return 255
		}
		return 0
	}
	return channel(4), channel(2), channel(1)
}

// BlockColor maps an id to the nearest terminal colour.
func BlockColor(id uint8) core.Color {
	return core.ColorFromRGB(BlockRGB(id))
}
