package config

import "sort"

var Presets = map[string]*Config{
	"classic": {
		Width: DefaultWidth, Height: DefaultHeight, Speed: "medium", Mode: "alternate", Tail: 0,
	},
	"matrix": {
		Width: DefaultWidth, Height: DefaultHeight, Speed: "fast", Mode: "matrix", Tail: 8,
	},
	"neon": {
		Width: 100, Height: 30, Speed: "medium", Mode: "neon", Tail: 12,
	},
	"snow": {
		Width: DefaultWidth, Height: DefaultHeight, Speed: "slow", Mode: "snow", Tail: 2,
	},
	"drizzle": {
		Width: 40, Height: 12, Speed: "slow", Mode: "alternate", Tail: 4,
	},
}

// GetPreset returns a copy of the named preset, or nil if there is none.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
