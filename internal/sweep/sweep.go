// Package sweep runs one-parameter sensitivity analyses. Each variant gets
// a freshly constructed model; the base parameter set is never mutated.
package sweep

import (
	"fmt"

	"github.com/neo2035/groundwater-calculator/internal/transport"
)

// Factor tables for the multiplicative sweeps; decay sweeps absolute values
// since the base decay is commonly zero.
var (
	velocityFactors   = []float64{0.5, 0.8, 1.0, 1.5, 2.0}
	dispersionFactors = []float64{0.2, 0.5, 1.0, 2.0, 5.0}
	decayValues       = []float64{0, 0.001, 0.005, 0.01, 0.02}
)

// Variant is one sweep member: its parameter set, the profile it produced
// and the derived statistics.
type Variant struct {
	Label          string
	Params         transport.Parameters
	Concentrations []float64
	Summary        *transport.Summary
}

// Params lists the sweepable parameter names.
func Params() []string {
	return []string{"velocity", "dispersion", "decay"}
}

func variants(base transport.Parameters, param string) ([]transport.Parameters, []string, error) {
	switch param {
	case "velocity":
		ps := make([]transport.Parameters, len(velocityFactors))
		labels := make([]string, len(velocityFactors))
		for i, f := range velocityFactors {
			p := base
			p.Velocity = base.Velocity * f
			ps[i] = p
			labels[i] = fmt.Sprintf("u = %.2f m/d", p.Velocity)
		}
		return ps, labels, nil
	case "dispersion":
		ps := make([]transport.Parameters, len(dispersionFactors))
		labels := make([]string, len(dispersionFactors))
		for i, f := range dispersionFactors {
			p := base
			p.Dispersion = base.Dispersion * f
			ps[i] = p
			labels[i] = fmt.Sprintf("DL = %.2f m²/d", p.Dispersion)
		}
		return ps, labels, nil
	case "decay":
		ps := make([]transport.Parameters, len(decayValues))
		labels := make([]string, len(decayValues))
		for i, v := range decayValues {
			p := base
			p.Decay = v
			ps[i] = p
			labels[i] = fmt.Sprintf("λ = %.3f 1/d", v)
		}
		return ps, labels, nil
	default:
		return nil, nil, fmt.Errorf("unknown sweep parameter: %s (available: %v)", param, Params())
	}
}

// Run sweeps one parameter of base, evaluating the spatial profile of each
// variant at time t and summarizing it against the limits.
func Run(base transport.Parameters, param string, positions []float64, t, standardLimit, detectionLimit float64) ([]Variant, error) {
	ps, labels, err := variants(base, param)
	if err != nil {
		return nil, err
	}

	out := make([]Variant, 0, len(ps))
	for i, p := range ps {
		m, err := transport.New(p)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", labels[i], err)
		}
		conc := m.Profile(positions, t)
		sum, err := transport.Summarize(positions, conc, standardLimit, detectionLimit)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", labels[i], err)
		}
		out = append(out, Variant{
			Label:          labels[i],
			Params:         p,
			Concentrations: conc,
			Summary:        sum,
		})
	}
	return out, nil
}
