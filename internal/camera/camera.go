// Package camera maps cloth world coordinates to screen space and back.
//
// The projection is a plain perspective divide with asymmetric screen
// anchoring: X is centered while Y is anchored near the top of the
// frame. Unprojection is exact for a known depth, which is what the
// interaction layer needs to drag a particle at its current z.
package camera

import "github.com/san-kum/clothsim/internal/geom"

// Depth shading window: intensity ramps over z in [-ShadeNear,
// ShadeRange-ShadeNear]. Closer constraints render brighter.
const (
	ShadeNear  = 100.0
	ShadeRange = 400.0
)

// Camera holds the projection constants. AnchorX and AnchorY are the
// viewport divisors for the screen offset; they differ on purpose (the
// cloth hangs from near the top of the frame) and must stay distinct.
type Camera struct {
	FocalLength float64
	Depth       float64
	AnchorX     float64
	AnchorY     float64
}

// New returns a camera with the standard constants.
func New() Camera {
	return Camera{FocalLength: 900, Depth: 500, AnchorX: 2, AnchorY: 10}
}

// Scale returns the perspective factor for a world depth. It is finite
// and positive for z > -(FocalLength+Depth).
func (c Camera) Scale(z float64) float64 {
	return c.FocalLength / (c.FocalLength + z + c.Depth)
}

// Project maps a world position to screen coordinates for the given
// viewport size.
func (c Camera) Project(p geom.Vec3, viewport geom.Vec2) geom.Vec2 {
	scale := c.Scale(p.Z)
	return geom.Vec2{
		X: viewport.X/c.AnchorX + p.X*scale,
		Y: viewport.Y/c.AnchorY + p.Y*scale,
	}
}

// Unproject recovers world X and Y from a screen position at a known
// depth, inverting Project exactly.
func (c Camera) Unproject(s geom.Vec2, z float64, viewport geom.Vec2) (x, y float64) {
	scale := c.Scale(z)
	x = (s.X - viewport.X/c.AnchorX) / scale
	y = (s.Y - viewport.Y/c.AnchorY) / scale
	return x, y
}

// Intensity maps a depth to [0,1] for line shading; 0 is nearest and
// brightest.
func (c Camera) Intensity(z float64) float64 {
	v := (z + ShadeNear) / ShadeRange
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
