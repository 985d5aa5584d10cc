// Package geom defines the plain geometric value types that travel through
// codec tokens: points, vectors, lines, planes, circles, arcs, boxes,
// rectangles, intervals, colors, and width/height bounds.
//
// These are pure value types with no behavior beyond a few degenerate-value
// checks. They deliberately carry no reference to any live host object so
// they can round-trip through JSON documents without ownership questions.
package geom

import "math"

// Point3 is a position in 3-D space.
type Point3 struct {
	X, Y, Z float64
}

// Vector3 is a direction with magnitude in 3-D space.
type Vector3 struct {
	X, Y, Z float64
}

// Length returns the Euclidean magnitude of the vector.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// IsZero reports whether all three vector fields are exactly zero.
// Zero vectors are degenerate as plane axes and circle normals.
func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Line is a finite segment between two points.
type Line struct {
	From, To Point3
}

// Plane is an origin with two axis vectors. The normal is implied by the
// cross product of XAxis and YAxis and is never serialized.
type Plane struct {
	Origin Point3
	XAxis  Vector3
	YAxis  Vector3
}

// IsDegenerate reports whether either axis is the zero vector.
func (p Plane) IsDegenerate() bool {
	return p.XAxis.IsZero() || p.YAxis.IsZero()
}

// Circle is stored as the minimum data sufficient to rebuild it: center,
// normal, radius, and a start point on the circumference used to recover
// orientation. Hosts that model circles with an internal reference frame
// rebuild that frame from these four fields.
type Circle struct {
	Center Point3
	Normal Vector3
	Radius float64
	Start  Point3
}

// IsDegenerate reports whether the circle cannot describe a curve:
// non-positive radius or zero normal.
func (c Circle) IsDegenerate() bool {
	return c.Radius <= 0 || c.Normal.IsZero()
}

// Arc is a circular arc: center, normal, radius, and start/end angles in
// radians measured on the circle's plane.
type Arc struct {
	Center     Point3
	Normal     Vector3
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

// IsDegenerate reports whether the arc cannot describe a curve.
func (a Arc) IsDegenerate() bool {
	return a.Radius <= 0 || a.Normal.IsZero()
}

// Box is an axis-aligned bounding box described by two corner points.
type Box struct {
	Min, Max Point3
}

// Rectangle is a plane with an extent interval along each axis.
type Rectangle struct {
	Plane Plane
	X     Interval
	Y     Interval
}

// Interval is a closed numeric range.
type Interval struct {
	Min, Max float64
}

// Length returns Max - Min. Negative lengths indicate a decreasing interval,
// which is legal (hosts use them for reversed domains).
func (i Interval) Length() float64 {
	return i.Max - i.Min
}

// Bounds is a width/height pair, used for canvas extents and viewport sizes.
type Bounds struct {
	Width, Height float64
}

// Color is an ARGB color with 8-bit channels.
type Color struct {
	A, R, G, B uint8
}
