package breakout

import (
	"slices"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

func fullGrid(id uint8) *Grid {
	g := NewGrid(40, 12, Geometry{CellSize: 20, Spacing: 1})
	for y := range 12 {
		for x := range 40 {
			g.Place(x, y, id)
		}
	}
	return g
}

func indices(blocks []Block) []int {
	out := make([]int, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.Index)
	}
	return out
}

func TestGridPlaceAndLookup(t *testing.T) {
	g := NewGrid(40, 12, Geometry{CellSize: 20, Spacing: 1})

	if !g.Place(3, 2, 5) {
		t.Fatal("Place inside the grid should succeed")
	}
	if g.Index(3, 2) != 83 {
		t.Errorf("Index(3, 2) = %d, expected 83", g.Index(3, 2))
	}
	if x, y := g.Coords(83); x != 3 || y != 2 {
		t.Errorf("Coords(83) = (%d, %d), expected (3, 2)", x, y)
	}

	b, ok := g.At(83)
	if !ok {
		t.Fatal("block should be present")
	}
	if b.ID != 5 || b.Position != core.V2(70, 50) {
		t.Errorf("block = %+v, expected id 5 at (70, 50)", b)
	}
	if g.Geometry().HalfSize() != 9 {
		t.Errorf("HalfSize = %v, expected 9", g.Geometry().HalfSize())
	}

	if g.Place(40, 0, 1) || g.Place(0, -1, 1) {
		t.Error("Place outside the grid should fail")
	}
	if g.Place(0, 0, 16) {
		t.Error("Place with a 5-bit id should fail")
	}
	if _, ok := g.At(-1); ok {
		t.Error("At(-1) should miss")
	}
	if _, ok := g.At(84); ok {
		t.Error("empty cell should miss")
	}
}

func TestGridGetSubset(t *testing.T) {
	tests := []struct {
		name string
		pos  core.Vec2
		want [][2]int
	}{
		{"inside one cell", core.V2(50, 50), [][2]int{{2, 2}}},
		{"on a cell corner", core.V2(60, 60), [][2]int{{2, 2}, {3, 2}, {2, 3}, {3, 3}}},
		{"straddling columns", core.V2(58, 50), [][2]int{{2, 2}, {3, 2}}},
		{"straddling rows", core.V2(50, 43), [][2]int{{2, 1}, {2, 2}}},
		{"clipped at the origin", core.V2(2, 2), [][2]int{{0, 0}}},
		{"clipped at the right edge", core.V2(798, 30), [][2]int{{39, 1}}},
		{"below the grid", core.V2(400, 500), nil},
	}

	g := fullGrid(1)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var want []int
			for _, xy := range tc.want {
				want = append(want, g.Index(xy[0], xy[1]))
			}
			slices.Sort(want)

			got := indices(g.GetSubset(tc.pos, 5))
			if !slices.Equal(got, want) {
				t.Errorf("GetSubset(%+v) = %v, expected %v", tc.pos, got, want)
			}
		})
	}
}

func TestGridGetSubsetSkipsRemoved(t *testing.T) {
	g := fullGrid(1)
	g.Remove(g.Index(3, 3))

	got := indices(g.GetSubset(core.V2(60, 60), 5))
	want := []int{g.Index(2, 2), g.Index(3, 2), g.Index(2, 3)}
	if !slices.Equal(got, want) {
		t.Errorf("GetSubset = %v, expected %v", got, want)
	}
}

func TestGridGetSubsetCoversReach(t *testing.T) {
	// Every block whose square is within reach of the ball must be a
	// candidate, wherever the ball sits inside its cell.
	g := fullGrid(1)
	h := g.Geometry().HalfSize()
	const r = 5

	for py := 20.0; py < 220; py += 1.5 {
		for px := 20.0; px < 220; px += 1.5 {
			pos := core.V2(px, py)
			got := indices(g.GetSubset(pos, r))
			for _, b := range g.Blocks() {
				dx := b.Position.X - px
				dy := b.Position.Y - py
				if dx < 0 {
					dx = -dx
				}
				if dy < 0 {
					dy = -dy
				}
				if dx <= h+r && dy <= h+r && !slices.Contains(got, b.Index) {
					t.Fatalf("block %d within reach of %+v missing from %v", b.Index, pos, got)
				}
			}
		}
	}
}

func TestGridRemove(t *testing.T) {
	g := NewGrid(4, 2, Geometry{CellSize: 20, Spacing: 1})
	g.Place(0, 0, 1)
	g.Place(1, 0, 7)
	g.Place(2, 0, IDUnbreakable)
	g.Place(3, 1, 15)

	if g.Remaining() != 2 {
		t.Fatalf("Remaining = %d, expected 2", g.Remaining())
	}
	if g.Count() != 4 {
		t.Fatalf("Count = %d, expected 4", g.Count())
	}

	if !g.Remove(0) {
		t.Error("Remove of a present block should report true")
	}
	if g.Remove(0) {
		t.Error("second Remove should be a no-op")
	}
	if g.Remove(99) || g.Remove(-3) {
		t.Error("Remove out of range should be a no-op")
	}
	if g.Remaining() != 1 || g.Finished() {
		t.Errorf("Remaining = %d, expected 1 and not finished", g.Remaining())
	}

	g.Remove(1)
	if !g.Finished() {
		t.Error("grid with only unbreakable blocks left should be finished")
	}
	if g.Count() != 2 {
		t.Errorf("Count = %d, unbreakable blocks should remain", g.Count())
	}
}

func TestGridPlaceReplacesCount(t *testing.T) {
	g := NewGrid(2, 1, Geometry{CellSize: 20, Spacing: 1})
	g.Place(0, 0, 1)
	g.Place(0, 0, 2)
	if g.Remaining() != 1 {
		t.Errorf("Remaining = %d after replacing a block, expected 1", g.Remaining())
	}
	g.Place(0, 0, IDUnbreakable)
	if g.Remaining() != 0 {
		t.Errorf("Remaining = %d after making it unbreakable, expected 0", g.Remaining())
	}
	g.Place(0, 0, IDEmpty)
	if g.Count() != 0 {
		t.Error("placing id 0 should clear the cell")
	}
}

func TestGridClone(t *testing.T) {
	g := fullGrid(3)
	clone := g.Clone()
	clone.Remove(0)

	if _, ok := g.At(0); !ok {
		t.Error("removing from the clone changed the original")
	}
	if clone.Remaining() != g.Remaining()-1 {
		t.Errorf("clone remaining = %d, expected %d", clone.Remaining(), g.Remaining()-1)
	}
}

func TestBlockColors(t *testing.T) {
	tests := []struct {
		id        uint8
		r, g, b   uint8
		breakable bool
	}{
		{1, 0, 0, 255, true},
		{2, 0, 255, 0, true},
		{4, 255, 0, 0, true},
		{6, 255, 255, 0, true},
		{7, 255, 255, 255, true},
		{8, 127, 127, 127, false},
		{15, 127, 127, 127, false},
	}

	for _, tc := range tests {
		blk := Block{ID: tc.id}
		r, g, b := blk.RGB()
		if r != tc.r || g != tc.g || b != tc.b {
			t.Errorf("RGB(%d) = (%d,%d,%d), expected (%d,%d,%d)", tc.id, r, g, b, tc.r, tc.g, tc.b)
		}
		if blk.Breakable() != tc.breakable {
			t.Errorf("Breakable(%d) = %v, expected %v", tc.id, blk.Breakable(), tc.breakable)
		}
	}

	if BlockColor(4) != core.ColorRed || BlockColor(8) != core.ColorGray {
		t.Error("terminal colours do not follow the RGB palette")
	}
}
