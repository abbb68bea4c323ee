package core

import "math"

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-9

// Vec2 is a 2D vector used for positions and velocities in field space.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromAngle returns the vector of the given length pointing at angle (radians).
func FromAngle(angle, length float64) Vec2 {
	return Vec2{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

// Add returns a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Scale returns a * s.
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// Dot returns the dot product a · b.
func (a Vec2) Dot(b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Len returns the magnitude of the vector.
func (a Vec2) Len() float64 {
	return math.Hypot(a.X, a.Y)
}

// Distance returns the distance between two points.
func (a Vec2) Distance(b Vec2) float64 {
	return a.Sub(b).Len()
}

// Normalize returns the unit vector in the direction of a.
// The second result is false when a is too short to have a direction.
func (a Vec2) Normalize() (Vec2, bool) {
	l := a.Len()
	if l < Epsilon {
		return Vec2{}, false
	}
	return Vec2{a.X / l, a.Y / l}, true
}

// Angle returns the heading of the vector in radians, as atan2(y, x).
func (a Vec2) Angle() float64 {
	return math.Atan2(a.Y, a.X)
}

// Reflect mirrors a across the unit normal n: a - 2(a·n)n.
func (a Vec2) Reflect(n Vec2) Vec2 {
	return a.Sub(n.Scale(2 * a.Dot(n)))
}
