// Package core provides fundamental types and utilities for the duel platform.
// It contains no external dependencies (especially no Bubble Tea) to keep
// simulation logic pure and testable.
package core

import "math"

// Vec2 represents a 2D point or displacement in arena coordinates.
type Vec2 struct {
	X, Y float64
}

// V creates a new vector.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the component-wise sum of two vectors.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns the vector multiplied by a scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of the vector.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle returns the direction of the vector in radians.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Heading returns a unit vector pointing in the given direction (radians).
func Heading(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Vec2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// NormalizeAngle wraps an angle into the (-π, π] range.
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// RayCircleIntersect reports whether a ray starting at origin and travelling
// in direction dir (radians) passes within radius of center.
// Points behind the ray origin do not count as hits.
func RayCircleIntersect(origin Vec2, dir float64, center Vec2, radius float64) bool {
	to := center.Sub(origin)
	h := Heading(dir)

	// Projection of the center onto the ray.
	t := to.X*h.X + to.Y*h.Y
	if t < 0 {
		// Circle is behind the origin; only a hit if the origin itself is inside it.
		return to.Len() <= radius
	}

	closest := origin.Add(h.Scale(t))
	return Distance(closest, center) <= radius
}

// Bounds is a fixed axis-aligned square arena centered on the origin.
type Bounds struct {
	HalfExtent float64
}

// NewBounds creates arena bounds with the given half-extent.
func NewBounds(halfExtent float64) Bounds {
	return Bounds{HalfExtent: halfExtent}
}

// Contains reports whether the point lies inside the arena square.
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= -b.HalfExtent && p.X <= b.HalfExtent &&
		p.Y >= -b.HalfExtent && p.Y <= b.HalfExtent
}

// ClampPoint restricts a point component-wise to the arena square.
func (b Bounds) ClampPoint(p Vec2) Vec2 {
	return Vec2{
		X: ClampF(p.X, -b.HalfExtent, b.HalfExtent),
		Y: ClampF(p.Y, -b.HalfExtent, b.HalfExtent),
	}
}

// Width returns the full side length of the arena square.
func (b Bounds) Width() float64 {
	return 2 * b.HalfExtent
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
