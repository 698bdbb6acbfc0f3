package transport

import (
	"errors"
	"math"
	"testing"
)

func referenceParams() Parameters {
	return Parameters{
		Mass:       100,
		Area:       2,
		Porosity:   0.3,
		Velocity:   0.1,
		Dispersion: 0.5,
	}
}

func positionsRange(min, max, step float64) []float64 {
	var out []float64
	for x := min; x <= max+step/2; x += step {
		out = append(out, x)
	}
	return out
}

func TestNew_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Parameters)
		field  string
	}{
		{"zero mass", func(p *Parameters) { p.Mass = 0 }, "mass"},
		{"negative mass", func(p *Parameters) { p.Mass = -1 }, "mass"},
		{"zero area", func(p *Parameters) { p.Area = 0 }, "area"},
		{"zero porosity", func(p *Parameters) { p.Porosity = 0 }, "porosity"},
		{"porosity above one", func(p *Parameters) { p.Porosity = 1.01 }, "porosity"},
		{"negative velocity", func(p *Parameters) { p.Velocity = -0.1 }, "velocity"},
		{"zero dispersion", func(p *Parameters) { p.Dispersion = 0 }, "dispersion"},
		{"negative decay", func(p *Parameters) { p.Decay = -0.01 }, "decay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := referenceParams()
			tt.mutate(&p)
			_, err := New(p)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestNew_PorosityOfOneIsValid(t *testing.T) {
	p := referenceParams()
	p.Porosity = 1.0
	if _, err := New(p); err != nil {
		t.Fatalf("porosity 1.0 should be valid: %v", err)
	}
}

func TestConcentration_ZeroBeforeRelease(t *testing.T) {
	m, err := New(referenceParams())
	if err != nil {
		t.Fatal(err)
	}

	for _, tval := range []float64{0, -1, -100} {
		for _, x := range []float64{-50, 0, 10, 100} {
			if c := m.Concentration(x, tval); c != 0 {
				t.Errorf("Concentration(%g, %g) = %g, want 0", x, tval, c)
			}
		}
	}
}

func TestConcentration_ReferenceValue(t *testing.T) {
	m, err := New(referenceParams())
	if err != nil {
		t.Fatal(err)
	}

	// At x = u·t the exponent vanishes and the value is the coefficient
	// m / (2·n·W·sqrt(π·DL·t)).
	got := m.Concentration(10, 100)
	want := 100.0 / (2 * 0.3 * 2 * math.Sqrt(math.Pi*0.5*100))
	if math.Abs(got-want)/want > 1e-12 {
		t.Errorf("Concentration(10, 100) = %v, want %v", got, want)
	}
	if math.Abs(got-6.649038006690545)/got > 1e-9 {
		t.Errorf("Concentration(10, 100) = %v, want 6.649038006690545", got)
	}
}

func TestConcentration_NonNegative(t *testing.T) {
	m, err := New(Parameters{
		Mass: 500, Area: 1.5, Porosity: 0.2,
		Velocity: 0.8, Dispersion: 2.0, Decay: 0.01,
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, tval := range []float64{0.001, 1, 50, 365, 10000} {
		for x := -500.0; x <= 500.0; x += 7.3 {
			if c := m.Concentration(x, tval); c < 0 {
				t.Fatalf("Concentration(%g, %g) = %g, negative", x, tval, c)
			}
		}
	}
}

func TestConcentration_FarFieldUnderflowsToZero(t *testing.T) {
	m, err := New(referenceParams())
	if err != nil {
		t.Fatal(err)
	}

	// Exponent far below -700 must clamp and underflow cleanly, not panic
	// or go negative.
	c := m.Concentration(1e6, 1)
	if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
		t.Errorf("far-field concentration = %v, want small finite non-negative", c)
	}
}

func TestConcentration_SymmetricAboutPlumeCenter(t *testing.T) {
	m, err := New(referenceParams())
	if err != nil {
		t.Fatal(err)
	}

	tval := 100.0
	center := m.PlumeCenter(tval)
	if center != 10 {
		t.Fatalf("PlumeCenter(100) = %g, want 10", center)
	}
	for _, d := range []float64{0.5, 1, 5, 20, 50} {
		left := m.Concentration(center-d, tval)
		right := m.Concentration(center+d, tval)
		if math.Abs(left-right) > 1e-12*math.Max(left, 1) {
			t.Errorf("offset %g: left %v != right %v", d, left, right)
		}
	}
}

func TestConcentration_DecayMonotonicity(t *testing.T) {
	decays := []float64{0, 0.001, 0.005, 0.01, 0.02}
	prev := math.Inf(1)
	for _, lambda := range decays {
		p := referenceParams()
		p.Decay = lambda
		m, err := New(p)
		if err != nil {
			t.Fatal(err)
		}
		c := m.Concentration(10, 100)
		if c >= prev {
			t.Errorf("decay %g: concentration %v not strictly below %v", lambda, c, prev)
		}
		prev = c
	}
}

func TestProfile_MatchesScalarKernel(t *testing.T) {
	m, err := New(referenceParams())
	if err != nil {
		t.Fatal(err)
	}

	xs := positionsRange(-50, 100, 1)
	conc := m.Profile(xs, 100)
	if len(conc) != len(xs) {
		t.Fatalf("expected %d samples, got %d", len(xs), len(conc))
	}
	for i, x := range xs {
		if conc[i] != m.Concentration(x, 100) {
			t.Fatalf("Profile[%d] != Concentration(%g, 100)", i, x)
		}
	}
}

func TestBreakthrough_MatchesScalarKernel(t *testing.T) {
	m, err := New(referenceParams())
	if err != nil {
		t.Fatal(err)
	}

	ts := positionsRange(1, 365, 1)
	conc := m.Breakthrough(10, ts)
	if len(conc) != len(ts) {
		t.Fatalf("expected %d samples, got %d", len(ts), len(conc))
	}
	for i, tval := range ts {
		if conc[i] != m.Concentration(10, tval) {
			t.Fatalf("Breakthrough[%d] != Concentration(10, %g)", i, tval)
		}
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	m, err := New(referenceParams())
	if err != nil {
		t.Fatal(err)
	}

	xs := positionsRange(-50, 100, 1)
	first := m.Profile(xs, 100)
	second := m.Profile(xs, 100)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d differs between identical calls: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestMassRecovered_ApproachesReleasedMass(t *testing.T) {
	m, err := New(referenceParams())
	if err != nil {
		t.Fatal(err)
	}

	// Plume at t=50 is centered at x=5 with spread sqrt(2·DL·t) ≈ 7 m, so
	// ±200 m captures essentially all of the mass.
	xs := positionsRange(-200, 200, 0.05)
	conc := m.Profile(xs, 50)
	got, err := m.MassRecovered(xs, conc)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-100) > 0.01 {
		t.Errorf("recovered mass = %v g, want ~100 g", got)
	}
}

func TestMassRecovered_InputErrors(t *testing.T) {
	m, err := New(referenceParams())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.MassRecovered([]float64{0, 1}, []float64{1}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
	if _, err := m.MassRecovered([]float64{0}, []float64{1}); err == nil {
		t.Error("expected error for single sample")
	}
}
