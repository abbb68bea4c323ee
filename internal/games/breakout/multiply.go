package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

// Heading offsets applied to each copy when balls multiply.
var (
	PairOffsets  = []float64{2 * math.Pi / 3, -2 * math.Pi / 3}
	TriadOffsets = []float64{math.Pi / 2, math.Pi, 3 * math.Pi / 2}
)

// MultiplyOffsets returns the offsets for a configured pattern name.
// Unknown names fall back to the pair pattern.
func MultiplyOffsets(pattern string) []float64 {
	if pattern == config.MultiplyTriad {
		return TriadOffsets
	}
	return PairOffsets
}

// Multiply spawns, for every live ball, one copy per offset at the same
// position with the heading rotated by that offset. Originals are kept.
// Copies are collected first and merged after the pass, so they are never
// part of the iteration that created them. Returns the new ids.
func Multiply(set *BallSet, offsets []float64) []BallID {
	spawned := make([]Ball, 0, set.Len()*len(offsets))
	for i := range set.Len() {
		_, src := set.At(i)
		for _, off := range offsets {
			b := NewBall(src.Position(), src.Angle()+off, src.phys)
			spawned = append(spawned, b)
		}
	}

	ids := make([]BallID, 0, len(spawned))
	for _, b := range spawned {
		ids = append(ids, set.Add(b))
	}
	return ids
}
