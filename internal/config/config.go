package config

import (
	"os"

	"github.com/neo2035/groundwater-calculator/internal/transport"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMass       = 100.0
	DefaultArea       = 2.0
	DefaultPorosity   = 0.3
	DefaultVelocity   = 0.1
	DefaultDispersion = 0.5

	DefaultStandardLimit  = 0.5
	DefaultDetectionLimit = 0.05

	DefaultXMin  = -50.0
	DefaultXMax  = 100.0
	DefaultXStep = 1.0
	DefaultTMax  = 365.0
	DefaultTStep = 1.0
)

type Config struct {
	Aquifer AquiferConfig `yaml:"aquifer"`
	Limits  LimitsConfig  `yaml:"limits"`
	Grid    GridConfig    `yaml:"grid"`
}

// AquiferConfig mirrors transport.Parameters in yaml form.
type AquiferConfig struct {
	Mass       float64 `yaml:"mass"`
	Area       float64 `yaml:"area"`
	Porosity   float64 `yaml:"porosity"`
	Velocity   float64 `yaml:"velocity"`
	Dispersion float64 `yaml:"dispersion"`
	Decay      float64 `yaml:"decay"`
}

// LimitsConfig holds the regulatory thresholds (mg/L).
type LimitsConfig struct {
	Standard  float64 `yaml:"standard"`
	Detection float64 `yaml:"detection"`
}

// GridConfig holds the default sample grids: the spatial window for profile
// runs and the time horizon for breakthrough runs.
type GridConfig struct {
	XMin  float64 `yaml:"xmin"`
	XMax  float64 `yaml:"xmax"`
	XStep float64 `yaml:"xstep"`
	TMax  float64 `yaml:"tmax"`
	TStep float64 `yaml:"tstep"`
}

func DefaultConfig() *Config {
	return &Config{
		Aquifer: AquiferConfig{
			Mass:       DefaultMass,
			Area:       DefaultArea,
			Porosity:   DefaultPorosity,
			Velocity:   DefaultVelocity,
			Dispersion: DefaultDispersion,
		},
		Limits: LimitsConfig{
			Standard:  DefaultStandardLimit,
			Detection: DefaultDetectionLimit,
		},
		Grid: GridConfig{
			XMin:  DefaultXMin,
			XMax:  DefaultXMax,
			XStep: DefaultXStep,
			TMax:  DefaultTMax,
			TStep: DefaultTStep,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Parameters converts the aquifer section to the transport parameter set.
// Validation happens in transport.New, not here.
func (a AquiferConfig) Parameters() transport.Parameters {
	return transport.Parameters{
		Mass:       a.Mass,
		Area:       a.Area,
		Porosity:   a.Porosity,
		Velocity:   a.Velocity,
		Dispersion: a.Dispersion,
		Decay:      a.Decay,
	}
}
