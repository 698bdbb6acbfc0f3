// Package transport evaluates the closed-form solution of the
// one-dimensional advection-dispersion-reaction equation for an
// instantaneous contaminant release, and derives summary statistics from
// the resulting concentration fields.
//
// A [Model] is built once from a validated [Parameters] set and is pure:
// every operation is a deterministic function of its inputs and the fixed
// parameters, so models are safe to share and to evaluate concurrently.
//
//	m, err := transport.New(transport.Parameters{
//	    Mass: 100, Area: 2, Porosity: 0.3,
//	    Velocity: 0.1, Dispersion: 0.5,
//	})
//	conc := m.Profile(positions, 100)
//	sum, err := transport.Summarize(positions, conc, 0.5, 0.05)
//
// [Model.Profile] evaluates over positions at a fixed time and
// [Model.Breakthrough] over times at a fixed monitoring position; the two
// explicit variants replace shape-dependent broadcasting.
package transport
