package transport

import "fmt"

// Parameters describes an instantaneous contaminant release into a
// one-dimensional aquifer. Units follow the g / m / d convention, which
// makes the resulting concentrations come out in mg/L (1:1 with g/m³).
type Parameters struct {
	Mass       float64 `json:"mass" yaml:"mass"`             // released mass (g)
	Area       float64 `json:"area" yaml:"area"`             // aquifer cross-section (m²)
	Porosity   float64 `json:"porosity" yaml:"porosity"`     // effective porosity, dimensionless
	Velocity   float64 `json:"velocity" yaml:"velocity"`     // mean linear groundwater velocity (m/d)
	Dispersion float64 `json:"dispersion" yaml:"dispersion"` // longitudinal dispersion coefficient (m²/d)
	Decay      float64 `json:"decay" yaml:"decay"`           // first-order reaction constant (1/d)
}

// ValidationError reports a physical parameter outside its valid domain.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Message)
}

// Validate checks every field against its domain constraint and returns a
// *ValidationError naming the first offending field.
func (p Parameters) Validate() error {
	if p.Mass <= 0 {
		return &ValidationError{Field: "mass", Message: "must be positive"}
	}
	if p.Area <= 0 {
		return &ValidationError{Field: "area", Message: "must be positive"}
	}
	if p.Porosity <= 0 || p.Porosity > 1 {
		return &ValidationError{Field: "porosity", Message: "must lie in (0, 1]"}
	}
	if p.Velocity < 0 {
		return &ValidationError{Field: "velocity", Message: "must not be negative"}
	}
	if p.Dispersion <= 0 {
		return &ValidationError{Field: "dispersion", Message: "must be positive"}
	}
	if p.Decay < 0 {
		return &ValidationError{Field: "decay", Message: "must not be negative"}
	}
	return nil
}
