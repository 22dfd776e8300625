package solver

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/clothsim/internal/cloth"
)

func newTestMesh(t *testing.T, rows, cols int, spacing float64) *cloth.Mesh {
	t.Helper()
	m, err := cloth.NewMesh(rows, cols, spacing)
	if err != nil {
		t.Fatalf("NewMesh failed: %v", err)
	}
	return m
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"default ok", func(c *Config) {}, nil},
		{"damping one", func(c *Config) { c.Damping = 1.0 }, ErrDamping},
		{"damping above one", func(c *Config) { c.Damping = 1.5 }, ErrDamping},
		{"damping negative", func(c *Config) { c.Damping = -0.1 }, ErrDamping},
		{"zero iterations", func(c *Config) { c.Iterations = 0 }, ErrIterations},
		{"stretch limit one", func(c *Config) { c.StretchLimit = 1.0 }, ErrStretchLimit},
		{"zero time scale", func(c *Config) { c.TimeScale = 0 }, ErrTimeScale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	m := newTestMesh(t, 2, 2, 10)
	cfg := DefaultConfig()
	cfg.Damping = 1.0
	if _, err := New(m, cfg); err == nil {
		t.Fatal("expected config error")
	}
}

// 2x2 grid, spacing 10, one tick with no input. Relaxation runs first
// on a mesh at rest (no-op), then gravity pulls the free row down by
// one gravity unit.
func TestStepGravityOnRestMesh(t *testing.T) {
	m := newTestMesh(t, 2, 2, 10)
	s, err := New(m, DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s.Step(0)

	for col := 0; col < 2; col++ {
		if y := m.At(1, col).Pos.Y; math.Abs(y-10.35) > 1e-9 {
			t.Errorf("row 1 col %d: expected y 10.35, got %f", col, y)
		}
		if y := m.At(0, col).Pos.Y; y != 0 {
			t.Errorf("row 0 col %d: pinned particle moved to y=%f", col, y)
		}
	}
}

func TestStepPrunesTornConstraints(t *testing.T) {
	m := newTestMesh(t, 2, 2, 10)
	s, err := New(m, DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// drag the bottom-right particle far past the 5x stretch limit
	m.At(1, 1).Pos.X = 500
	m.At(1, 1).Prev.X = 500

	before := len(m.Constraints)
	s.Step(0)

	if len(m.Constraints) != before-2 {
		t.Errorf("expected both links to the displaced particle removed, have %d of %d",
			len(m.Constraints), before)
	}
	for _, c := range m.Constraints {
		if c.Broken {
			t.Error("broken constraint survived pruning")
		}
	}
}

func TestStepLockedRowInvariant(t *testing.T) {
	m := newTestMesh(t, 4, 5, 18)
	s, err := New(m, DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	initial := make([]float64, m.Cols)
	for col := 0; col < m.Cols; col++ {
		initial[col] = m.At(0, col).Pos.X
	}

	for i := 0; i < 100; i++ {
		s.Step(float64(i) / 60)
	}

	for col := 0; col < m.Cols; col++ {
		p := m.At(0, col)
		if p.Pos.X != initial[col] || p.Pos.Y != 0 || p.Pos.Z != 0 {
			t.Errorf("locked particle %d drifted to %+v", col, p.Pos)
		}
	}
}

func TestRunRecordsMetrics(t *testing.T) {
	m := newTestMesh(t, 3, 3, 10)
	s, err := New(m, DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.AddMetric(&countMetric{})

	result, err := s.Run(context.Background(), 25, 1.0/60)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Ticks != 25 {
		t.Errorf("expected 25 ticks, got %d", result.Ticks)
	}
	if len(result.Series["ticks"]) != 25 {
		t.Errorf("expected 25 samples, got %d", len(result.Series["ticks"]))
	}
	if result.Metrics["ticks"] != 25 {
		t.Errorf("expected final metric 25, got %f", result.Metrics["ticks"])
	}
}

func TestRunValidatesArgs(t *testing.T) {
	m := newTestMesh(t, 2, 2, 10)
	s, err := New(m, DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := s.Run(context.Background(), 0, 0.01); err == nil {
		t.Error("expected error for zero ticks")
	}
	if _, err := s.Run(context.Background(), 10, 0); err == nil {
		t.Error("expected error for zero dt")
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	m := newTestMesh(t, 2, 2, 10)
	s, err := New(m, DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, 1000, 0.01)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.Ticks != 0 {
		t.Errorf("expected no ticks after pre-canceled context, got %d", result.Ticks)
	}
}

func TestStepDeterminism(t *testing.T) {
	run := func() *cloth.Mesh {
		m := newTestMesh(t, 6, 8, 12)
		s, err := New(m, DefaultConfig())
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		for i := 0; i < 200; i++ {
			s.Step(float64(i) / 60)
		}
		return m
	}

	a, b := run(), run()
	for i := range a.Particles {
		if a.Particles[i].Pos != b.Particles[i].Pos {
			t.Fatalf("particle %d diverged: %+v vs %+v",
				i, a.Particles[i].Pos, b.Particles[i].Pos)
		}
	}
	if len(a.Constraints) != len(b.Constraints) {
		t.Fatalf("constraint counts diverged: %d vs %d",
			len(a.Constraints), len(b.Constraints))
	}
}

type countMetric struct{ n int }

func (c *countMetric) Name() string                 { return "ticks" }
func (c *countMetric) Observe(*cloth.Mesh, float64) { c.n++ }
func (c *countMetric) Value() float64               { return float64(c.n) }
func (c *countMetric) Reset()                       { c.n = 0 }
