// Package interact translates pointer input into mesh mutations.
//
// The controller is a two-state machine (idle / grabbing one particle)
// plus a stateless cut test. It never fails: a pick with no candidate
// in range simply stays idle, and out-of-viewport pointer positions are
// absorbed by the projection math.
package interact

import (
	"github.com/san-kum/clothsim/internal/camera"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/geom"
)

// DefaultPickupRadius is the screen-space distance within which a grab
// can latch onto a particle.
const DefaultPickupRadius = 50.0

// Frame is one tick's worth of pointer input.
type Frame struct {
	Pointer      geom.Vec2
	Viewport     geom.Vec2
	GrabPressed  bool // grab button went down this tick
	GrabReleased bool // grab button went up this tick
	Cutting      bool // cut button held this tick
}

// Controller owns the single-pointer interaction state: at most one
// grabbed particle and the previous pointer position used to form the
// cut segment.
type Controller struct {
	mesh *cloth.Mesh
	cam  camera.Camera

	PickupRadius float64

	grabbed     int
	lastPointer geom.Vec2
	hasPointer  bool
}

// New wires a controller to a mesh and camera.
func New(mesh *cloth.Mesh, cam camera.Camera) *Controller {
	return &Controller{
		mesh:         mesh,
		cam:          cam,
		PickupRadius: DefaultPickupRadius,
		grabbed:      -1,
	}
}

// Grabbed returns the held particle index and whether one is held.
func (c *Controller) Grabbed() (int, bool) { return c.grabbed, c.grabbed >= 0 }

// Reset drops any held particle and forgets the pointer trail. Used
// when the mesh is rebuilt.
func (c *Controller) Reset(mesh *cloth.Mesh) {
	c.mesh = mesh
	c.grabbed = -1
	c.hasPointer = false
}

// Handle consumes one frame of input, in press → drag → release → cut
// order, and records the pointer position for the next frame's cut
// segment.
func (c *Controller) Handle(f Frame) {
	if f.GrabPressed && c.grabbed < 0 {
		c.pick(f)
	}
	if c.grabbed >= 0 {
		c.drag(f)
	}
	if f.GrabReleased && c.grabbed >= 0 {
		c.mesh.Particles[c.grabbed].Grabbed = false
		c.grabbed = -1
	}
	if f.Cutting && c.hasPointer {
		c.cut(f)
	}

	c.lastPointer = f.Pointer
	c.hasPointer = true
}

// pick selects the unlocked particle whose projection is nearest the
// pointer, if any lies within the pickup radius. Ties keep the earliest
// particle in row-major order. Already-grabbed particles are skipped so
// a second pointer could never steal a held one.
func (c *Controller) pick(f Frame) {
	best := c.PickupRadius
	found := -1
	for i := range c.mesh.Particles {
		p := &c.mesh.Particles[i]
		if p.Locked || p.Grabbed {
			continue
		}
		d := c.cam.Project(p.Pos, f.Viewport).DistanceTo(f.Pointer)
		if d < best {
			best = d
			found = i
		}
	}
	if found < 0 {
		return
	}
	c.grabbed = found
	c.mesh.Particles[found].Grabbed = true
}

// drag pins the held particle to the unprojected pointer position at the
// particle's current depth. Collapsing Prev onto Pos zeroes the implicit
// velocity so releasing does not launch the particle.
func (c *Controller) drag(f Frame) {
	p := &c.mesh.Particles[c.grabbed]
	x, y := c.cam.Unproject(f.Pointer, p.Pos.Z, f.Viewport)
	p.Pos.X = x
	p.Pos.Y = y
	p.Prev = p.Pos
}

// cut marks every active constraint whose projected segment crosses the
// pointer's path since the previous frame. Removal happens in the
// solver's prune step, shared with tearing.
func (c *Controller) cut(f Frame) {
	for i := range c.mesh.Constraints {
		link := &c.mesh.Constraints[i]
		if link.Broken {
			continue
		}
		a := c.cam.Project(c.mesh.Particles[link.A].Pos, f.Viewport)
		b := c.cam.Project(c.mesh.Particles[link.B].Pos, f.Viewport)
		if geom.SegmentsIntersect(c.lastPointer, f.Pointer, a, b) {
			link.Broken = true
		}
	}
}
