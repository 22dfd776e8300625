package cloth

// minSolveDistance guards the correction against near-coincident
// endpoints, where the 1/d term blows up.
const minSolveDistance = 0.1

// Constraint is a distance link between two particles, referenced by
// index into the owning mesh's particle store. Rest is the endpoint
// distance at construction time. Broken is a one-way transition: a
// broken constraint never corrects again and is removed by Mesh.Prune.
type Constraint struct {
	A, B   int
	Rest   float64
	Broken bool
}

// Solve applies one relaxation step. If the current distance exceeds
// Rest*stretchLimit the constraint tears: it is marked broken and no
// correction happens on that call. Otherwise both endpoints split the
// correction equally; a pinned endpoint keeps its position, leaving the
// other to absorb the full correction over subsequent passes.
func (c *Constraint) Solve(particles []Particle, stretchLimit float64) {
	if c.Broken {
		return
	}

	a, b := &particles[c.A], &particles[c.B]
	diff := a.Pos.Sub(b.Pos)
	dist := diff.Length()

	if dist > c.Rest*stretchLimit {
		c.Broken = true
		return
	}
	if dist < minSolveDistance {
		return
	}

	factor := (c.Rest - dist) / dist * 0.5
	offset := diff.Scale(factor)
	if !a.Pinned() {
		a.Pos = a.Pos.Add(offset)
	}
	if !b.Pinned() {
		b.Pos = b.Pos.Sub(offset)
	}
}
