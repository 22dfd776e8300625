// Package metrics provides per-tick scalar observations of a cloth mesh
// for headless runs and live plotting.
package metrics

import (
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/solver"
)

// ActiveConstraints counts the links still holding the cloth together.
type ActiveConstraints struct {
	count float64
}

func (a *ActiveConstraints) Name() string { return "active_constraints" }

func (a *ActiveConstraints) Observe(m *cloth.Mesh, t float64) {
	a.count = float64(len(m.Constraints))
}

func (a *ActiveConstraints) Value() float64 { return a.count }
func (a *ActiveConstraints) Reset()         { a.count = 0 }

// TornConstraints reports how many links have been lost since the first
// observation. The baseline latches on the first tick after a Reset.
type TornConstraints struct {
	baseline float64
	current  float64
	seeded   bool
}

func (c *TornConstraints) Name() string { return "torn_constraints" }

func (c *TornConstraints) Observe(m *cloth.Mesh, t float64) {
	n := float64(len(m.Constraints))
	if !c.seeded {
		c.baseline = n
		c.seeded = true
	}
	c.current = n
}

func (c *TornConstraints) Value() float64 { return c.baseline - c.current }

func (c *TornConstraints) Reset() {
	c.baseline = 0
	c.current = 0
	c.seeded = false
}

// MeanStretch is the average ratio of current length to rest length over
// the active constraints. 1.0 means a fully relaxed cloth; values climb
// toward the tear threshold under load.
type MeanStretch struct {
	mean float64
}

func (s *MeanStretch) Name() string { return "mean_stretch" }

func (s *MeanStretch) Observe(m *cloth.Mesh, t float64) {
	if len(m.Constraints) == 0 {
		s.mean = 0
		return
	}
	sum := 0.0
	for i := range m.Constraints {
		c := &m.Constraints[i]
		d := m.Particles[c.A].Pos.DistanceTo(m.Particles[c.B].Pos)
		sum += d / c.Rest
	}
	s.mean = sum / float64(len(m.Constraints))
}

func (s *MeanStretch) Value() float64 { return s.mean }
func (s *MeanStretch) Reset()         { s.mean = 0 }

// MaxStretch is the worst ratio of current length to rest length, the
// leading indicator of an imminent tear.
type MaxStretch struct {
	max float64
}

func (s *MaxStretch) Name() string { return "max_stretch" }

func (s *MaxStretch) Observe(m *cloth.Mesh, t float64) {
	s.max = 0
	for i := range m.Constraints {
		c := &m.Constraints[i]
		d := m.Particles[c.A].Pos.DistanceTo(m.Particles[c.B].Pos)
		if r := d / c.Rest; r > s.max {
			s.max = r
		}
	}
}

func (s *MaxStretch) Value() float64 { return s.max }
func (s *MaxStretch) Reset()         { s.max = 0 }

// MeanSpeed is the mean per-tick displacement of the free particles, a
// proxy for kinetic energy. A settling cloth drives this toward zero.
type MeanSpeed struct {
	mean float64
}

func (s *MeanSpeed) Name() string { return "mean_speed" }

func (s *MeanSpeed) Observe(m *cloth.Mesh, t float64) {
	free := 0
	sum := 0.0
	for i := range m.Particles {
		p := &m.Particles[i]
		if p.Locked {
			continue
		}
		free++
		sum += p.Pos.Sub(p.Prev).Length()
	}
	if free == 0 {
		s.mean = 0
		return
	}
	s.mean = sum / float64(free)
}

func (s *MeanSpeed) Value() float64 { return s.mean }
func (s *MeanSpeed) Reset()         { s.mean = 0 }

// Standard returns the metric set recorded by headless runs.
func Standard() []solver.Metric {
	return []solver.Metric{
		&ActiveConstraints{},
		&TornConstraints{},
		&MeanStretch{},
		&MaxStretch{},
		&MeanSpeed{},
	}
}
