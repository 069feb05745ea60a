package config

import (
	"fmt"
	"os"

	"github.com/san-kum/lifesim/internal/controller"
	"github.com/san-kum/lifesim/internal/engine"
	"github.com/san-kum/lifesim/internal/geometry"
	"github.com/san-kum/lifesim/internal/rate"
	"github.com/san-kum/lifesim/internal/telemetry"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEngine  = "life"
	DefaultDensity = 50.0
	DefaultPattern = "glider"
	DefaultTheme   = "moss"
	DefaultTPS     = 60
)

type Config struct {
	Engine    string            `yaml:"engine"`
	Geometry  geometry.Geometry `yaml:"geometry"`
	Speed     float64           `yaml:"speed"`
	Density   float64           `yaml:"density"`
	AutoStart bool              `yaml:"auto_start"`
	Window    int               `yaml:"telemetry_window"`
	TPS       int               `yaml:"tps"`
	Seed      int64             `yaml:"seed"`
	Theme     string            `yaml:"theme"`
	Insertion InsertionConfig   `yaml:"insertion"`
}

type InsertionConfig struct {
	Mode             string `yaml:"mode"`
	Pattern          string `yaml:"pattern"`
	engine.Transform `yaml:",inline"`
}

func DefaultConfig() *Config {
	return &Config{
		Engine:   DefaultEngine,
		Geometry: geometry.Default(),
		Speed:    rate.ControlNormal,
		Density:  DefaultDensity,
		Window:   telemetry.DefaultWindow,
		TPS:      DefaultTPS,
		Theme:    DefaultTheme,
		Insertion: InsertionConfig{
			Mode:    "toggle",
			Pattern: DefaultPattern,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Normalize pulls every field back into range the same way live input is
// treated: bad geometry fields fall back to the defaults, other values are
// clamped.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Engine == "" {
		c.Engine = def.Engine
	}
	c.Geometry, _ = geometry.Validate(geometry.Request{
		Width:    float64(c.Geometry.Width),
		Height:   float64(c.Geometry.Height),
		CellSize: float64(c.Geometry.CellSize),
	}, def.Geometry)
	c.Speed = min(max(c.Speed, rate.ControlMin), rate.ControlMax)
	c.Density = min(max(c.Density, 0), 100)
	if c.Window < 1 {
		c.Window = def.Window
	}
	if c.TPS < 1 {
		c.TPS = def.TPS
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.Insertion.Mode != "seed" {
		c.Insertion.Mode = "toggle"
	}
	if c.Insertion.Pattern == "" {
		c.Insertion.Pattern = def.Insertion.Pattern
	}
}

func (c *Config) ControllerOptions() controller.Options {
	mode := controller.Toggle
	if c.Insertion.Mode == "seed" {
		mode = controller.Seed
	}
	return controller.Options{
		Geometry:  c.Geometry,
		Speed:     c.Speed,
		Density:   c.Density,
		AutoStart: c.AutoStart,
		Window:    c.Window,
		Seed:      c.Seed,
		Insertion: controller.Insertion{
			Mode:      mode,
			Pattern:   c.Insertion.Pattern,
			Transform: c.Insertion.Transform,
		},
	}
}
