// Package grid builds the ordered sample grids fed to the transport model.
package grid

import "fmt"

// Positions returns the ordered position samples min, min+step, ..., max.
// The endpoint is included when it lands on a step (within a small
// tolerance, so fractional steps do not drop it).
func Positions(min, max, step float64) ([]float64, error) {
	if step <= 0 {
		return nil, fmt.Errorf("grid step must be positive, got %g", step)
	}
	if max <= min {
		return nil, fmt.Errorf("grid max must exceed min, got [%g, %g]", min, max)
	}
	n := int((max-min)/step) + 1
	out := make([]float64, 0, n+1)
	for i := 0; ; i++ {
		v := min + float64(i)*step
		if v > max+step*1e-9 {
			break
		}
		out = append(out, v)
	}
	return out, nil
}

// Times returns the ordered sampling instants step, 2·step, ..., max. The
// grid deliberately starts at step rather than 0: the concentration at t=0
// is identically zero and carries no information.
func Times(step, max float64) ([]float64, error) {
	if step <= 0 {
		return nil, fmt.Errorf("time step must be positive, got %g", step)
	}
	if max < step {
		return nil, fmt.Errorf("time horizon %g shorter than step %g", max, step)
	}
	n := int(max / step)
	out := make([]float64, 0, n+1)
	for i := 1; ; i++ {
		v := float64(i) * step
		if v > max+step*1e-9 {
			break
		}
		out = append(out, v)
	}
	return out, nil
}
