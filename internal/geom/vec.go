package geom

import "math"

// Vec2 is a point or direction in screen space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Length() float64      { return math.Hypot(v.X, v.Y) }

func (v Vec2) DistanceTo(o Vec2) float64 { return v.Sub(o).Length() }

// Vec3 is a point or direction in world space.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) DistanceTo(o Vec3) float64 { return v.Sub(o).Length() }

// ccw reports whether the triangle p0, p1, p2 winds counter-clockwise.
func ccw(p0, p1, p2 Vec2) bool {
	return (p2.Y-p0.Y)*(p1.X-p0.X) > (p1.Y-p0.Y)*(p2.X-p0.X)
}

// SegmentsIntersect reports whether segment a-b crosses segment c-d.
// Endpoint touches and collinear overlaps do not count as crossings.
func SegmentsIntersect(a, b, c, d Vec2) bool {
	return ccw(a, c, d) != ccw(b, c, d) && ccw(a, b, c) != ccw(a, b, d)
}
