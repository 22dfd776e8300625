package config

// Presets are named tunings layered over the defaults.
var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"small": func(c *Config) {
		c.Rows, c.Cols = 20, 30
	},
	"dense": func(c *Config) {
		c.Rows, c.Cols, c.Spacing = 60, 90, 14
		c.Iterations = 12
	},
	"rubbery": func(c *Config) {
		c.Iterations = 3
	},
	"stiff": func(c *Config) {
		c.Iterations = 16
	},
	"fragile": func(c *Config) {
		c.StretchLimit = 2.0
	},
	"heavy": func(c *Config) {
		c.Gravity = 0.8
	},
}

// GetPreset returns a config for the named preset, or nil if unknown.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
