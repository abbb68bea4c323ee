package breakout

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

func TestBallSetAddRemove(t *testing.T) {
	s := NewBallSet()
	phys := testPhysics()

	a := s.Add(NewBall(core.V2(10, 10), 0, phys))
	b := s.Add(NewBall(core.V2(20, 20), 0, phys))
	c := s.Add(NewBall(core.V2(30, 30), 0, phys))

	if a == b || b == c || a == c {
		t.Fatalf("ids not distinct: %d %d %d", a, b, c)
	}
	if s.Len() != 3 {
		t.Fatalf("Len = %d, expected 3", s.Len())
	}

	if !s.Remove(a) {
		t.Fatal("Remove of a live id should succeed")
	}
	if s.Remove(a) {
		t.Error("second Remove should be a no-op")
	}
	if _, ok := s.Get(a); ok {
		t.Error("removed id should miss")
	}

	// The survivors keep their ids and data after the swap.
	for id, want := range map[BallID]core.Vec2{b: core.V2(20, 20), c: core.V2(30, 30)} {
		ball, ok := s.Get(id)
		if !ok {
			t.Fatalf("id %d lost after removing another ball", id)
		}
		if ball.Position() != want {
			t.Errorf("ball %d at %+v, expected %+v", id, ball.Position(), want)
		}
	}

	for i := range s.Len() {
		id, ball := s.At(i)
		got, _ := s.Get(id)
		if got != ball {
			t.Errorf("slot %d and id %d disagree", i, id)
		}
	}
}

func TestBallSetIDsNotReused(t *testing.T) {
	s := NewBallSet()
	phys := testPhysics()

	first := s.Add(NewBall(core.V2(0, 0), 0, phys))
	s.Remove(first)
	second := s.Add(NewBall(core.V2(0, 0), 0, phys))
	s.Clear()
	third := s.Add(NewBall(core.V2(0, 0), 0, phys))

	if second <= first || third <= second {
		t.Errorf("ids should keep increasing: %d %d %d", first, second, third)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d after Clear and Add, expected 1", s.Len())
	}
	if _, ok := s.Get(first); ok {
		t.Error("stale id should miss")
	}
}

func TestMultiply(t *testing.T) {
	tests := []struct {
		name    string
		offsets []float64
	}{
		{"pair", PairOffsets},
		{"triad", TriadOffsets},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewBallSet()
			origin := core.V2(300, 200)
			src := s.Add(NewBall(origin, -math.Pi/3, testPhysics()))

			ids := Multiply(s, tc.offsets)
			if len(ids) != len(tc.offsets) {
				t.Fatalf("spawned %d balls, expected %d", len(ids), len(tc.offsets))
			}
			if s.Len() != 1+len(tc.offsets) {
				t.Fatalf("Len = %d, expected %d", s.Len(), 1+len(tc.offsets))
			}

			seen := map[BallID]bool{src: true}
			for i, id := range ids {
				if seen[id] {
					t.Errorf("duplicate id %d", id)
				}
				seen[id] = true

				b, ok := s.Get(id)
				if !ok {
					t.Fatalf("spawned id %d missing", id)
				}
				if b.Position() != origin {
					t.Errorf("spawned ball at %+v, expected %+v", b.Position(), origin)
				}
				want := core.FromAngle(-math.Pi/3+tc.offsets[i], 5)
				v := b.Velocity()
				if math.Abs(v.X-want.X) > tolerance || math.Abs(v.Y-want.Y) > tolerance {
					t.Errorf("spawned velocity %+v, expected %+v", v, want)
				}
				checkBallInvariants(t, b, 5)
			}

			if orig, ok := s.Get(src); !ok || math.Abs(orig.Angle()-(-math.Pi/3)) > tolerance {
				t.Error("original ball should be kept unchanged")
			}
		})
	}
}

func TestMultiplyDoesNotCascade(t *testing.T) {
	s := NewBallSet()
	s.Add(NewBall(core.V2(100, 100), -1, testPhysics()))
	s.Add(NewBall(core.V2(200, 100), -2, testPhysics()))

	ids := Multiply(s, PairOffsets)
	if len(ids) != 4 || s.Len() != 6 {
		t.Errorf("spawned %d (total %d), expected 4 (total 6)", len(ids), s.Len())
	}
}

func TestMultiplyOffsets(t *testing.T) {
	if len(MultiplyOffsets("pair")) != 2 {
		t.Error("pair pattern should spawn two balls")
	}
	if len(MultiplyOffsets("triad")) != 3 {
		t.Error("triad pattern should spawn three balls")
	}
	if len(MultiplyOffsets("")) != 2 {
		t.Error("unknown pattern should fall back to pair")
	}
}
