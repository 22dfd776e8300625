package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Configuration errors.
var (
	ErrDamping      = errors.New("solver: damping must be in [0, 1)")
	ErrIterations   = errors.New("solver: iterations must be at least 1")
	ErrStretchLimit = errors.New("solver: stretch limit must exceed 1")
	ErrTimeScale    = errors.New("solver: time scale must be positive")
)

// Config holds the per-tick physics parameters.
type Config struct {
	Damping      float64
	Gravity      float64
	StretchLimit float64
	TimeScale    float64
	Iterations   int
}

// DefaultConfig returns the standard cloth tuning.
func DefaultConfig() Config {
	return Config{
		Damping:      0.98,
		Gravity:      0.35,
		StretchLimit: 5.0,
		TimeScale:    1.5,
		Iterations:   8,
	}
}

// Validate rejects physically unstable or nonsensical parameters.
func (c Config) Validate() error {
	if c.Damping < 0 || c.Damping >= 1 {
		return fmt.Errorf("%w (got %g)", ErrDamping, c.Damping)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("%w (got %d)", ErrIterations, c.Iterations)
	}
	if c.StretchLimit <= 1 {
		return fmt.Errorf("%w (got %g)", ErrStretchLimit, c.StretchLimit)
	}
	if c.TimeScale <= 0 {
		return fmt.Errorf("%w (got %g)", ErrTimeScale, c.TimeScale)
	}
	return nil
}

// Metric observes the mesh once per tick and reduces to a scalar.
type Metric interface {
	Name() string
	Observe(m *cloth.Mesh, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed tick.
type Observer interface {
	OnTick(m *cloth.Mesh, tick int, t float64)
}

// Solver advances a mesh one tick at a time: constraint relaxation in
// construction order, pruning of broken links, then Verlet integration.
// The fixed ordering lives here so callers cannot get it wrong.
type Solver struct {
	cfg       Config
	mesh      *cloth.Mesh
	metrics   []Metric
	observers []Observer
}

// New validates the config and wraps the mesh.
func New(mesh *cloth.Mesh, cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{cfg: cfg, mesh: mesh}, nil
}

func (s *Solver) Mesh() *cloth.Mesh { return s.mesh }
func (s *Solver) Config() Config    { return s.cfg }

func (s *Solver) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Solver) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Step advances one simulation tick. elapsed is wall-clock (or
// simulated) seconds since start; it only drives the wind phase.
func (s *Solver) Step(elapsed float64) {
	for pass := 0; pass < s.cfg.Iterations; pass++ {
		for i := range s.mesh.Constraints {
			s.mesh.Constraints[i].Solve(s.mesh.Particles, s.cfg.StretchLimit)
		}
	}

	s.mesh.Prune()

	t := elapsed * s.cfg.TimeScale
	for i := range s.mesh.Particles {
		s.mesh.Particles[i].Integrate(t, s.cfg.Damping, s.cfg.Gravity)
	}
}

// Result collects the per-tick metric series of a headless run.
type Result struct {
	Ticks   int
	Times   []float64
	Series  map[string][]float64
	Metrics map[string]float64
}

// Run executes ticks steps of dt simulated seconds each, recording every
// registered metric per tick. It stops early if the context is canceled,
// returning the partial result alongside the context error.
func (s *Solver) Run(ctx context.Context, ticks int, dt float64) (*Result, error) {
	if ticks <= 0 {
		return nil, fmt.Errorf("solver: ticks must be positive, got %d", ticks)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("solver: dt must be positive, got %g", dt)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{
		Times:   make([]float64, 0, ticks),
		Series:  make(map[string][]float64, len(s.metrics)),
		Metrics: make(map[string]float64, len(s.metrics)),
	}

	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		elapsed := float64(i) * dt
		s.Step(elapsed)
		result.Ticks++
		result.Times = append(result.Times, elapsed)

		for _, m := range s.metrics {
			m.Observe(s.mesh, elapsed)
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
		}
		for _, o := range s.observers {
			o.OnTick(s.mesh, i, elapsed)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
