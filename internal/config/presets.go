package config

import "sort"

// Presets are representative aquifer materials. Mass and cross-section keep
// the reference release; the hydraulic triple (porosity, velocity,
// dispersion) characterizes the material.
var Presets = map[string]AquiferConfig{
	"sand": {
		Mass: 100, Area: 2, Porosity: 0.25, Velocity: 0.5, Dispersion: 1.0,
	},
	"clay": {
		Mass: 100, Area: 2, Porosity: 0.15, Velocity: 0.01, Dispersion: 0.1,
	},
	"fractured": {
		Mass: 100, Area: 2, Porosity: 0.05, Velocity: 1.0, Dispersion: 5.0,
	},
	"gravel": {
		Mass: 100, Area: 2, Porosity: 0.35, Velocity: 2.0, Dispersion: 10.0,
	},
}

var presetInfo = map[string]string{
	"sand":      "typical sandy aquifer",
	"clay":      "low-permeability clay",
	"fractured": "fractured rock",
	"gravel":    "high-permeability gravel",
}

func GetPreset(name string) *AquiferConfig {
	aq, ok := Presets[name]
	if !ok {
		return nil
	}
	return &aq
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func PresetInfo(name string) string {
	return presetInfo[name]
}
