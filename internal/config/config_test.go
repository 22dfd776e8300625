package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Rows != 45 || cfg.Cols != 70 {
		t.Errorf("expected 45x70 grid, got %dx%d", cfg.Rows, cfg.Cols)
	}
	if cfg.Damping != 0.98 {
		t.Errorf("expected damping 0.98, got %f", cfg.Damping)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"one row", func(c *Config) { c.Rows = 1 }},
		{"zero cols", func(c *Config) { c.Cols = 0 }},
		{"zero spacing", func(c *Config) { c.Spacing = 0 }},
		{"damping one", func(c *Config) { c.Damping = 1.0 }},
		{"damping above one", func(c *Config) { c.Damping = 1.2 }},
		{"zero iterations", func(c *Config) { c.Iterations = 0 }},
		{"stretch limit one", func(c *Config) { c.StretchLimit = 1.0 }},
		{"zero pickup radius", func(c *Config) { c.PickupRadius = 0 }},
		{"zero focal length", func(c *Config) { c.FocalLength = 0 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloth.yaml")
	data := []byte("rows: 10\ncols: 12\ngravity: 0.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Rows != 10 || cfg.Cols != 12 {
		t.Errorf("expected 10x12 grid, got %dx%d", cfg.Rows, cfg.Cols)
	}
	if cfg.Gravity != 0.5 {
		t.Errorf("expected gravity 0.5, got %f", cfg.Gravity)
	}
	// untouched keys keep defaults
	if cfg.Damping != 0.98 {
		t.Errorf("expected default damping, got %f", cfg.Damping)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Rows = 7

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Rows != 7 {
		t.Errorf("expected rows 7, got %d", loaded.Rows)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("small")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Rows != 20 || cfg.Cols != 30 {
		t.Errorf("expected 20x30, got %dx%d", cfg.Rows, cfg.Cols)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestAllPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestMeshFromConfig(t *testing.T) {
	cfg := GetPreset("small")
	m, err := cfg.Mesh()
	if err != nil {
		t.Fatalf("Mesh failed: %v", err)
	}
	if len(m.Particles) != 20*30 {
		t.Errorf("expected 600 particles, got %d", len(m.Particles))
	}
}
