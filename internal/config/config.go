package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/clothsim/internal/camera"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/interact"
	"github.com/san-kum/clothsim/internal/solver"
)

const (
	DefaultRows    = 45
	DefaultCols    = 70
	DefaultSpacing = 18.0
	DefaultFPS     = 60
)

// Config is the full tunable surface of a simulation session.
type Config struct {
	Rows    int     `yaml:"rows"`
	Cols    int     `yaml:"cols"`
	Spacing float64 `yaml:"spacing"`

	Gravity      float64 `yaml:"gravity"`
	Damping      float64 `yaml:"damping"`
	StretchLimit float64 `yaml:"stretch_limit"`
	Iterations   int     `yaml:"iterations"`
	TimeScale    float64 `yaml:"time_scale"`

	PickupRadius float64 `yaml:"pickup_radius"`

	FocalLength float64 `yaml:"focal_length"`
	CameraDepth float64 `yaml:"camera_depth"`

	FPS int `yaml:"fps"`
}

func DefaultConfig() *Config {
	s := solver.DefaultConfig()
	cam := camera.New()
	return &Config{
		Rows:         DefaultRows,
		Cols:         DefaultCols,
		Spacing:      DefaultSpacing,
		Gravity:      s.Gravity,
		Damping:      s.Damping,
		StretchLimit: s.StretchLimit,
		Iterations:   s.Iterations,
		TimeScale:    s.TimeScale,
		PickupRadius: interact.DefaultPickupRadius,
		FocalLength:  cam.FocalLength,
		CameraDepth:  cam.Depth,
		FPS:          DefaultFPS,
	}
}

// Load reads a yaml file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as yaml.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate fails fast on operator errors before any mesh or solver is
// built. Grid and solver checks delegate to the owning packages so a
// config cannot pass here and fail there.
func (c *Config) Validate() error {
	if c.Rows < 2 || c.Cols < 2 {
		return fmt.Errorf("%w (got %dx%d)", cloth.ErrGridSize, c.Rows, c.Cols)
	}
	if c.Spacing <= 0 {
		return fmt.Errorf("%w (got %g)", cloth.ErrSpacing, c.Spacing)
	}
	if err := c.Solver().Validate(); err != nil {
		return err
	}
	if c.PickupRadius <= 0 {
		return fmt.Errorf("config: pickup radius must be positive, got %g", c.PickupRadius)
	}
	if c.FocalLength <= 0 {
		return fmt.Errorf("config: focal length must be positive, got %g", c.FocalLength)
	}
	if c.FPS < 1 {
		return fmt.Errorf("config: fps must be at least 1, got %d", c.FPS)
	}
	return nil
}

// Solver returns the solver parameters.
func (c *Config) Solver() solver.Config {
	return solver.Config{
		Damping:      c.Damping,
		Gravity:      c.Gravity,
		StretchLimit: c.StretchLimit,
		TimeScale:    c.TimeScale,
		Iterations:   c.Iterations,
	}
}

// Camera returns the projection constants.
func (c *Config) Camera() camera.Camera {
	cam := camera.New()
	cam.FocalLength = c.FocalLength
	cam.Depth = c.CameraDepth
	return cam
}

// Mesh builds a fresh cloth grid from the config.
func (c *Config) Mesh() (*cloth.Mesh, error) {
	return cloth.NewMesh(c.Rows, c.Cols, c.Spacing)
}
