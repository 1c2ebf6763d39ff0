// Package geometry implements the 2D vector primitives the visibility
// graph builder and toolpath emitter are built on: distance, polar
// transforms, and the strict segment-circle intersection test.
package geometry

import "math"

// Point is a position in the plane.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Dot returns the dot product of p and q treated as vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the scalar cross product (p.X*q.Y - p.Y*q.X).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Norm returns the Euclidean length of p treated as a vector.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// V2VAngle returns the angle of the vector (to - from), measured
// counter-clockwise from the positive x-axis, in (-pi, pi].
func V2VAngle(from, to Point) float64 {
	d := to.Sub(from)
	return math.Atan2(d.Y, d.X)
}

// PolarOffset returns the point at distance r from origin in direction theta.
func PolarOffset(origin Point, r, theta float64) Point {
	return Point{
		X: origin.X + r*math.Cos(theta),
		Y: origin.Y + r*math.Sin(theta),
	}
}

// NormalizeAngle0to2Pi shifts theta into [0, 2*pi).
func NormalizeAngle0to2Pi(theta float64) float64 {
	const twoPi = 2 * math.Pi
	theta = math.Mod(theta, twoPi)
	if theta < 0 {
		theta += twoPi
	}
	return theta
}

// Segment is a closed line segment between two points.
type Segment struct {
	A, B Point
}

// SegmentCircleIntersects reports whether the closed segment enters the
// open interior of the circle of radius r centered at center. Touching
// (distance == r) is not an intersection — the comparison is strict.
//
// Uses the projection-of-center-onto-segment-line approach: if the
// projection falls outside the segment, the relevant distance is to the
// nearer endpoint instead of the perpendicular distance to the line.
func SegmentCircleIntersects(seg Segment, center Point, r float64) bool {
	ab := seg.B.Sub(seg.A)
	lenSq := ab.Dot(ab)

	if lenSq == 0 {
		// Degenerate segment: both endpoints coincide.
		return Dist(seg.A, center) < r
	}

	ac := center.Sub(seg.A)
	bc := center.Sub(seg.B)
	ba := seg.A.Sub(seg.B)

	var d float64
	switch {
	case ac.Dot(ab) < 0:
		// Center projects before A.
		d = Dist(center, seg.A)
	case bc.Dot(ba) < 0:
		// Center projects after B.
		d = Dist(center, seg.B)
	default:
		// Perpendicular distance: |ab x ac| / |ab|.
		d = math.Abs(ab.Cross(ac)) / math.Sqrt(lenSq)
	}

	return d < r
}

// ClampUnit clamps x into [-1, 1], absorbing floating-point drift that
// would otherwise push an arccos argument outside its domain.
func ClampUnit(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}
