package cloth

import (
	"math"

	"github.com/san-kum/clothsim/internal/geom"
)

// Depth oscillation constants. The sine term produces a lightweight wind
// effect without separate wind state; the 0.99 factor bounds long-run
// drift along the depth axis.
const (
	windFrequency = 0.05
	windAmplitude = 0.15
	depthDamping  = 0.99
)

// Particle is a point mass with Verlet position history. Locked marks a
// permanently pinned particle (the anchored row); Grabbed marks one held
// by the pointer. Either flag excludes the particle from integration and
// from constraint correction.
type Particle struct {
	Pos     geom.Vec3
	Prev    geom.Vec3
	Locked  bool
	Grabbed bool
}

// Pinned reports whether the particle is excluded from physics.
func (p *Particle) Pinned() bool { return p.Locked || p.Grabbed }

// Integrate advances the particle one tick. Implicit velocity is the
// damped difference between current and previous position; gravity pulls
// along +Y and the wind term perturbs Z.
func (p *Particle) Integrate(t, damping, gravity float64) {
	if p.Pinned() {
		return
	}

	vel := p.Pos.Sub(p.Prev).Scale(damping)
	p.Prev = p.Pos
	p.Pos = p.Pos.Add(vel)
	p.Pos.Y += gravity

	p.Pos.Z += math.Sin(t+p.Pos.X*windFrequency) * windAmplitude
	p.Pos.Z *= depthDamping
}
