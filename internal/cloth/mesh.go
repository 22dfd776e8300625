package cloth

import (
	"fmt"

	"github.com/san-kum/clothsim/internal/geom"
)

// Mesh is an ordered rows x cols grid of particles plus the active set
// of constraints linking each particle to its right and lower neighbor.
// Row 0 is the anchored edge. Particle count is fixed for the session;
// only constraints are removed.
type Mesh struct {
	Rows, Cols  int
	Spacing     float64
	Particles   []Particle
	Constraints []Constraint
}

// NewMesh builds the grid centered on X with row 0 at y=0, locks row 0,
// and links neighbors in row-major order. Constraint order is the
// construction order; the solver relies on it for reproducible stiffness.
func NewMesh(rows, cols int, spacing float64) (*Mesh, error) {
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("%w (got %dx%d)", ErrGridSize, rows, cols)
	}
	if spacing <= 0 {
		return nil, fmt.Errorf("%w (got %g)", ErrSpacing, spacing)
	}

	m := &Mesh{
		Rows:        rows,
		Cols:        cols,
		Spacing:     spacing,
		Particles:   make([]Particle, 0, rows*cols),
		Constraints: make([]Constraint, 0, rows*(cols-1)+cols*(rows-1)),
	}

	halfWidth := float64(cols) * spacing / 2
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			pos := geom.Vec3{
				X: float64(col)*spacing - halfWidth,
				Y: float64(row) * spacing,
			}
			m.Particles = append(m.Particles, Particle{
				Pos:    pos,
				Prev:   pos,
				Locked: row == 0,
			})
		}
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			i := m.Index(row, col)
			if col < cols-1 {
				m.link(i, m.Index(row, col+1))
			}
			if row < rows-1 {
				m.link(i, m.Index(row+1, col))
			}
		}
	}

	return m, nil
}

func (m *Mesh) link(a, b int) {
	rest := m.Particles[a].Pos.DistanceTo(m.Particles[b].Pos)
	m.Constraints = append(m.Constraints, Constraint{A: a, B: b, Rest: rest})
}

// Index maps a grid coordinate to its particle slot.
func (m *Mesh) Index(row, col int) int { return row*m.Cols + col }

// At returns the particle at a grid coordinate.
func (m *Mesh) At(row, col int) *Particle { return &m.Particles[m.Index(row, col)] }

// Prune removes broken constraints from the active set, preserving the
// order of the survivors. It returns the number removed.
func (m *Mesh) Prune() int {
	kept := m.Constraints[:0]
	for _, c := range m.Constraints {
		if !c.Broken {
			kept = append(kept, c)
		}
	}
	removed := len(m.Constraints) - len(kept)
	m.Constraints = kept
	return removed
}

// Grabbed returns the index of the grabbed particle, or -1 when none is
// held.
func (m *Mesh) Grabbed() int {
	for i := range m.Particles {
		if m.Particles[i].Grabbed {
			return i
		}
	}
	return -1
}
