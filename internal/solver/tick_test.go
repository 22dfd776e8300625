package solver_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/solver"
)

var _ = Describe("tick pipeline", func() {
	var (
		mesh *cloth.Mesh
		s    *solver.Solver
	)

	BeforeEach(func() {
		var err error
		mesh, err = cloth.NewMesh(4, 4, 10)
		Expect(err).NotTo(HaveOccurred())
		s, err = solver.New(mesh, solver.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	It("relaxes before integrating, so a resting mesh falls by exactly one gravity unit", func() {
		s.Step(0)
		Expect(mesh.At(1, 0).Pos.Y).To(BeNumerically("~", 10+s.Config().Gravity, 1e-9))
	})

	It("removes an overstretched constraint in the tick it tears", func() {
		mesh.At(3, 3).Pos.X = 1e4
		mesh.At(3, 3).Prev.X = 1e4
		before := len(mesh.Constraints)

		s.Step(0)

		Expect(len(mesh.Constraints)).To(Equal(before - 2))
		for _, c := range mesh.Constraints {
			Expect(c.Broken).To(BeFalse())
		}
	})

	It("removes a cut constraint through the same pruning path", func() {
		mesh.Constraints[5].Broken = true
		before := len(mesh.Constraints)

		s.Step(0)

		Expect(len(mesh.Constraints)).To(Equal(before - 1))
	})

	It("never revives a pruned constraint", func() {
		mesh.Constraints[0].Broken = true
		s.Step(0)
		count := len(mesh.Constraints)

		for i := 1; i <= 30; i++ {
			s.Step(float64(i) / 60)
		}

		Expect(len(mesh.Constraints)).To(BeNumerically("<=", count))
	})

	It("holds the pinned row fixed indefinitely", func() {
		for i := 0; i < 300; i++ {
			s.Step(float64(i) / 60)
		}
		for col := 0; col < mesh.Cols; col++ {
			p := mesh.At(0, col)
			Expect(p.Pos.Y).To(BeZero())
			Expect(p.Pos.Z).To(BeZero())
		}
	})

	It("keeps a grabbed particle stationary through relaxation and integration", func() {
		p := mesh.At(2, 2)
		p.Grabbed = true
		held := p.Pos

		for i := 0; i < 50; i++ {
			s.Step(float64(i) / 60)
		}

		Expect(p.Pos).To(Equal(held))
	})
})
