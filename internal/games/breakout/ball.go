package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Paddle deflection never leaves this range, so a ball coming off the
// paddle always travels upward and never flat.
const (
	MinDeflectAngle = -9 * math.Pi / 10
	MaxDeflectAngle = -math.Pi / 10

	// LaunchAngle is straight up.
	LaunchAngle = -math.Pi / 2
)

// Physics holds the constants every ball shares.
type Physics struct {
	FieldWidth  float64
	FieldHeight float64
	Radius      float64
	Speed       float64
	Geometry    Geometry
}

// Collision classifies a ball/block contact by which velocity axis flips.
type Collision int

const (
	CollisionNone       Collision = iota
	CollisionVertical             // Hit the top or bottom face, y velocity flips
	CollisionHorizontal           // Hit the left or right face, x velocity flips
	CollisionCorner               // Reflected about the centre-to-centre normal
)

// String returns a human-readable name for the collision.
func (c Collision) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionVertical:
		return "vertical"
	case CollisionHorizontal:
		return "horizontal"
	case CollisionCorner:
		return "corner"
	default:
		return "unknown"
	}
}

// Hit describes the outcome of one grid collision check.
type Hit struct {
	Block     Block
	Kind      Collision
	Destroyed bool
}

// Ball is a circle moving at constant speed. The angle is canonical: the
// velocity is always (cos, sin)(angle) * speed, and every operation that
// changes direction re-derives one from the other before returning.
type Ball struct {
	position core.Vec2
	velocity core.Vec2
	angle    float64
	phys     Physics

	scratch []Block // Reused broad phase buffer
}

// NewBall creates a ball at pos heading at angle.
func NewBall(pos core.Vec2, angle float64, phys Physics) Ball {
	b := Ball{position: pos, phys: phys}
	b.SetAngle(angle)
	return b
}

// Position returns the ball centre.
func (b *Ball) Position() core.Vec2 { return b.position }

// Velocity returns the per-tick displacement.
func (b *Ball) Velocity() core.Vec2 { return b.velocity }

// Angle returns the heading in radians, in [-π, π].
func (b *Ball) Angle() float64 { return b.angle }

// Radius returns the ball radius.
func (b *Ball) Radius() float64 { return b.phys.Radius }

// Place moves the ball without touching its heading.
func (b *Ball) Place(pos core.Vec2) {
	b.position = pos
}

// SetAngle sets the heading and re-derives the velocity.
func (b *Ball) SetAngle(angle float64) {
	b.angle = math.Remainder(angle, 2*math.Pi)
	b.velocity = core.FromAngle(b.angle, b.phys.Speed)
}

// syncAngle re-derives the heading from a velocity that was just mirrored,
// then rebuilds the velocity from it so the magnitude stays exact.
func (b *Ball) syncAngle() {
	b.SetAngle(b.velocity.Angle())
}

// Move advances the ball by one tick and bounces it off the top, left and
// right field edges. The bottom is open. Returns true if an edge was hit.
func (b *Ball) Move() bool {
	b.position = b.position.Add(b.velocity)
	return b.edgeCollision()
}

// edgeCollision clamps the ball inside the field and points the relevant
// velocity component away from the edge it touched.
func (b *Ball) edgeCollision() bool {
	r := b.phys.Radius
	hit := false

	if b.position.Y-r <= 0 {
		b.position.Y = r
		b.velocity.Y = math.Abs(b.velocity.Y)
		hit = true
	}
	if b.position.X-r <= 0 {
		b.position.X = r
		b.velocity.X = math.Abs(b.velocity.X)
		hit = true
	} else if b.position.X+r >= b.phys.FieldWidth {
		b.position.X = b.phys.FieldWidth - r
		b.velocity.X = -math.Abs(b.velocity.X)
		hit = true
	}

	if hit {
		b.syncAngle()
	}
	return hit
}

// OutOfBounds reports whether the ball has left through the bottom.
func (b *Ball) OutOfBounds() bool {
	return b.position.Y >= b.phys.FieldHeight
}

// PlayerCollision deflects a falling ball that overlaps the paddle band.
// The outgoing angle depends only on where the ball meets the paddle:
// the centre sends it straight up and the ends towards the clamp limits.
func (b *Ball) PlayerCollision(p *Paddle) bool {
	if b.velocity.Y <= 0 {
		return false
	}
	if b.position.Y < p.Position.Y-b.phys.Radius || b.position.Y > p.Position.Y+p.Height {
		return false
	}
	offset := b.position.X - p.Position.X
	if offset <= -p.HalfWidth() || offset >= p.HalfWidth() {
		return false
	}

	b.SetAngle(DeflectAngle(offset, p.Width))
	return true
}

// DeflectAngle maps a horizontal offset from the paddle centre linearly
// onto [-π, 0] and clamps the result to the deflection range.
func DeflectAngle(offset, width float64) float64 {
	angle := math.Pi/width*offset - math.Pi/2
	return core.ClampF(angle, MinDeflectAngle, MaxDeflectAngle)
}

// GridCollision resolves at most one block contact per tick: the nearest
// block around the ball. Breakable blocks are removed from the grid.
func (b *Ball) GridCollision(grid *Grid) Hit {
	b.scratch = grid.AppendSubset(b.scratch[:0], b.position, b.phys.Radius)
	if len(b.scratch) == 0 {
		return Hit{}
	}

	// Candidates come in index order, so ties keep the lowest index.
	nearest := b.scratch[0]
	best := b.position.Distance(nearest.Position)
	for _, blk := range b.scratch[1:] {
		if d := b.position.Distance(blk.Position); d < best {
			nearest, best = blk, d
		}
	}

	kind := b.BlockCollision(nearest, grid.Geometry().HalfSize())
	switch kind {
	case CollisionNone:
		return Hit{}

	case CollisionVertical:
		// Sign is set away from the block centre rather than flipped, so a
		// ball still inside after the snap cannot be turned back in.
		b.snap(&b.position.Y, nearest.Position.Y, grid.Geometry().HalfSize())
		b.velocity.Y = awayFrom(b.velocity.Y, b.position.Y, nearest.Position.Y)

	case CollisionHorizontal:
		// Same as above: away from the centre, not a plain flip.
		b.snap(&b.position.X, nearest.Position.X, grid.Geometry().HalfSize())
		b.velocity.X = awayFrom(b.velocity.X, b.position.X, nearest.Position.X)

	case CollisionCorner:
		n, ok := b.position.Sub(nearest.Position).Normalize()
		if !ok || b.velocity.Dot(n) >= 0 {
			// Concentric or already separating: no reflection and the
			// block survives.
			return Hit{}
		}
		b.velocity = b.velocity.Reflect(n)
	}
	b.syncAngle()

	hit := Hit{Block: nearest, Kind: kind}
	if nearest.Breakable() {
		hit.Destroyed = grid.Remove(nearest.Index)
	}
	return hit
}

// BlockCollision classifies the contact between the ball and a block with
// half side h.
func (b *Ball) BlockCollision(blk Block, h float64) Collision {
	dx := math.Abs(blk.Position.X - b.position.X)
	dy := math.Abs(blk.Position.Y - b.position.Y)
	reach := h + b.phys.Radius

	switch {
	case dx > reach || dy > reach:
		return CollisionNone
	case dx <= h:
		return CollisionVertical
	case dy <= h:
		return CollisionHorizontal
	default:
		return CollisionCorner
	}
}

// snap pushes one coordinate out of the block along its axis. The
// correction is applied twice, mirroring the ball across the contact edge
// rather than leaving it on the edge.
func (b *Ball) snap(coord *float64, center, h float64) {
	reach := h + b.phys.Radius
	edge := center - reach
	if *coord > center {
		edge = center + reach
	}
	*coord += 2 * (edge - *coord)
}

// awayFrom returns v with its sign pointing from center towards pos. For a
// ball approaching the face this is the plain sign flip.
func awayFrom(v, pos, center float64) float64 {
	if pos > center {
		return math.Abs(v)
	}
	return -math.Abs(v)
}
