package config

import (
	"sort"

	"github.com/san-kum/lifesim/internal/geometry"
)

var Presets = map[string]*Config{
	"small": {
		Engine: "life", Geometry: geometry.Geometry{Width: 64, Height: 64, CellSize: 5},
		Speed: 50, Density: 50, Window: 100, TPS: 60,
	},
	"wide": {
		Engine: "life", Geometry: geometry.Geometry{Width: 200, Height: 60, CellSize: 3},
		Speed: 60, Density: 35, Window: 100, TPS: 60,
	},
	"large": {
		Engine: "life", Geometry: geometry.Geometry{Width: 768, Height: 768, CellSize: 4},
		Speed: 50, Density: 25, Window: 30, TPS: 30,
	},
	"crawl": {
		Engine: "life", Geometry: geometry.Geometry{Width: 40, Height: 40, CellSize: 8},
		Speed: 10, Density: 40, Window: 30, TPS: 30,
		Insertion: InsertionConfig{Mode: "seed", Pattern: "glider"},
	},
	"gliders": {
		Engine: "life", Geometry: geometry.Geometry{Width: 128, Height: 96, CellSize: 4},
		Speed: 70, Density: 0, Window: 100, TPS: 60, AutoStart: true,
		Insertion: InsertionConfig{Mode: "seed", Pattern: "lwss"},
	},
}

// GetPreset returns a normalised copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Normalize()
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
