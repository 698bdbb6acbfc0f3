package transport

import "math"

// maxExponent bounds the argument handed to math.Exp. float64 overflows past
// roughly ±709, and any exponent beyond ±700 already rounds to 0 or +Inf, so
// the clamp changes no result that was representable to begin with.
const maxExponent = 700.0

// Model evaluates the analytic advection-dispersion-reaction solution for a
// fixed parameter set. Parameters are validated once at construction and
// never mutated; sensitivity sweeps build a fresh Model per variant.
type Model struct {
	params Parameters
}

// New validates params and returns a model over them.
func New(params Parameters) (*Model, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Model{params: params}, nil
}

// Params returns a copy of the model's parameter set.
func (m *Model) Params() Parameters { return m.params }

// Concentration returns the contaminant concentration (mg/L) at position x
// (m) and time t (d) after the release:
//
//	c(x,t) = m / (2·n·W·sqrt(π·DL·t)) · exp(−λt − (x−ut)² / (4·DL·t))
//
// For t ≤ 0 the release has not begun and the concentration is exactly 0.
func (m *Model) Concentration(x, t float64) float64 {
	if t <= 0 {
		return 0
	}
	p := m.params
	coeff := p.Mass / (2 * p.Porosity * p.Area * math.Sqrt(math.Pi*p.Dispersion*t))
	drift := x - p.Velocity*t
	exponent := -p.Decay*t - drift*drift/(4*p.Dispersion*t)
	if exponent > maxExponent {
		exponent = maxExponent
	} else if exponent < -maxExponent {
		exponent = -maxExponent
	}
	c := coeff * math.Exp(exponent)
	if c < 0 {
		c = 0
	}
	return c
}

// Profile evaluates the concentration at every position for a single time.
func (m *Model) Profile(positions []float64, t float64) []float64 {
	out := make([]float64, len(positions))
	for i, x := range positions {
		out[i] = m.Concentration(x, t)
	}
	return out
}

// Breakthrough evaluates the concentration at a single monitoring position
// for every sampling time. This is the symmetric counterpart of Profile.
func (m *Model) Breakthrough(x float64, times []float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = m.Concentration(x, t)
	}
	return out
}

// PlumeCenter returns the advective center of the plume at time t.
func (m *Model) PlumeCenter(t float64) float64 {
	return m.params.Velocity * t
}
