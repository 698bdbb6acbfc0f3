// Package scenario runs scripted analysis sequences loaded from yaml, so a
// site assessment (several times, several monitoring wells, a preset per
// aquifer layer) can be reproduced with one command.
package scenario

import (
	"fmt"
	"os"

	"github.com/neo2035/groundwater-calculator/internal/config"
	"github.com/neo2035/groundwater-calculator/internal/grid"
	"github.com/neo2035/groundwater-calculator/internal/storage"
	"github.com/neo2035/groundwater-calculator/internal/transport"
	"gopkg.in/yaml.v3"
)

type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single analysis in a scenario. Aquifer parameters come from the
// preset when named, overridden by an explicit aquifer section; limits and
// grid fall back to the defaults when omitted.
type Step struct {
	Name     string                `yaml:"name"`
	Mode     string                `yaml:"mode"` // profile | breakthrough
	Preset   string                `yaml:"preset"`
	Aquifer  *config.AquiferConfig `yaml:"aquifer"`
	Time     float64               `yaml:"time"`     // profile: evaluation time (d)
	Position float64               `yaml:"position"` // breakthrough: monitoring position (m)
	Limits   *config.LimitsConfig  `yaml:"limits"`
	Grid     *config.GridConfig    `yaml:"grid"`
	Save     bool                  `yaml:"save"`
}

// StepResult carries a completed step: its samples, the concentration field
// and whichever statistics the mode produces.
type StepResult struct {
	Step           Step
	Samples        []float64
	Concentrations []float64
	Summary        *transport.Summary            // profile steps
	Breakthrough   *transport.BreakthroughSummary // breakthrough steps
	RunID          string                        // set when the step was saved
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &sc, nil
}

func (s Step) resolve() (transport.Parameters, config.LimitsConfig, config.GridConfig, error) {
	defaults := config.DefaultConfig()

	aquifer := defaults.Aquifer
	if s.Preset != "" {
		p := config.GetPreset(s.Preset)
		if p == nil {
			return transport.Parameters{}, config.LimitsConfig{}, config.GridConfig{},
				fmt.Errorf("unknown preset: %s (available: %v)", s.Preset, config.ListPresets())
		}
		aquifer = *p
	}
	if s.Aquifer != nil {
		aquifer = *s.Aquifer
	}

	limits := defaults.Limits
	if s.Limits != nil {
		limits = *s.Limits
	}
	gridCfg := defaults.Grid
	if s.Grid != nil {
		gridCfg = *s.Grid
	}

	return aquifer.Parameters(), limits, gridCfg, nil
}

func runStep(step Step, st *storage.Store) (*StepResult, error) {
	params, limits, gridCfg, err := step.resolve()
	if err != nil {
		return nil, err
	}

	m, err := transport.New(params)
	if err != nil {
		return nil, err
	}

	res := &StepResult{Step: step}
	var run *storage.Run

	switch step.Mode {
	case storage.ModeProfile:
		res.Samples, err = grid.Positions(gridCfg.XMin, gridCfg.XMax, gridCfg.XStep)
		if err != nil {
			return nil, err
		}
		res.Concentrations = m.Profile(res.Samples, step.Time)
		res.Summary, err = transport.Summarize(res.Samples, res.Concentrations, limits.Standard, limits.Detection)
		if err != nil {
			return nil, err
		}
		run = &storage.Run{
			Mode:  storage.ModeProfile,
			Time:  step.Time,
			Stats: profileStats(res.Summary),
		}
	case storage.ModeBreakthrough:
		res.Samples, err = grid.Times(gridCfg.TStep, gridCfg.TMax)
		if err != nil {
			return nil, err
		}
		res.Concentrations = m.Breakthrough(step.Position, res.Samples)
		res.Breakthrough, err = transport.BreakthroughStats(res.Samples, res.Concentrations, limits.Standard, limits.Detection)
		if err != nil {
			return nil, err
		}
		run = &storage.Run{
			Mode:     storage.ModeBreakthrough,
			Position: step.Position,
			Stats:    breakthroughStats(res.Breakthrough),
		}
	default:
		return nil, fmt.Errorf("unknown mode: %q (want %q or %q)",
			step.Mode, storage.ModeProfile, storage.ModeBreakthrough)
	}

	if step.Save && st != nil {
		run.Parameters = params
		run.StandardLimit = limits.Standard
		run.DetectionLimit = limits.Detection
		run.Samples = res.Samples
		run.Concentrations = res.Concentrations
		res.RunID, err = st.Save(run)
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

// Run executes every step in order, failing fast on the first bad step.
func Run(sc *Scenario, st *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		res, err := runStep(step, st)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Name, err)
		}
		results = append(results, *res)
	}
	return results, nil
}

func profileStats(sum *transport.Summary) map[string]float64 {
	stats := map[string]float64{
		"peak":          sum.Max,
		"peak_position": sum.MaxPosition,
	}
	if sum.Exceedance != nil {
		stats["exceedance_start"] = sum.Exceedance.Start
		stats["exceedance_end"] = sum.Exceedance.End
	}
	if sum.Influence != nil {
		stats["influence_start"] = sum.Influence.Start
		stats["influence_end"] = sum.Influence.End
	}
	return stats
}

func breakthroughStats(bs *transport.BreakthroughSummary) map[string]float64 {
	stats := map[string]float64{
		"peak":      bs.Peak,
		"peak_time": bs.PeakTime,
	}
	if bs.FirstDetection.Reached {
		stats["first_detection"] = bs.FirstDetection.Time
	}
	if bs.FirstExceedance.Reached {
		stats["first_exceedance"] = bs.FirstExceedance.Time
	}
	return stats
}
