package grid

import (
	"math"
	"testing"
)

func TestPositions(t *testing.T) {
	xs, err := Positions(-50, 100, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(xs) != 151 {
		t.Fatalf("expected 151 samples, got %d", len(xs))
	}
	if xs[0] != -50 || xs[len(xs)-1] != 100 {
		t.Errorf("endpoints = [%g, %g], want [-50, 100]", xs[0], xs[len(xs)-1])
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			t.Fatalf("grid not strictly increasing at %d: %g <= %g", i, xs[i], xs[i-1])
		}
	}
}

func TestPositions_FractionalStep(t *testing.T) {
	xs, err := Positions(0, 1, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if len(xs) != 11 {
		t.Fatalf("expected 11 samples, got %d", len(xs))
	}
	if math.Abs(xs[10]-1) > 1e-12 {
		t.Errorf("endpoint = %g, want 1", xs[10])
	}
}

func TestPositions_Invalid(t *testing.T) {
	tests := []struct {
		name           string
		min, max, step float64
	}{
		{"zero step", 0, 10, 0},
		{"negative step", 0, 10, -1},
		{"max below min", 10, 0, 1},
		{"max equals min", 5, 5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Positions(tt.min, tt.max, tt.step); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestTimes(t *testing.T) {
	ts, err := Times(1, 365)
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 365 {
		t.Fatalf("expected 365 samples, got %d", len(ts))
	}
	if ts[0] != 1 || ts[len(ts)-1] != 365 {
		t.Errorf("endpoints = [%g, %g], want [1, 365]", ts[0], ts[len(ts)-1])
	}
}

func TestTimes_NeverZero(t *testing.T) {
	ts, err := Times(0.5, 10)
	if err != nil {
		t.Fatal(err)
	}
	if ts[0] <= 0 {
		t.Errorf("first sample = %g, must be positive", ts[0])
	}
}

func TestTimes_Invalid(t *testing.T) {
	if _, err := Times(0, 10); err == nil {
		t.Error("expected error for zero step")
	}
	if _, err := Times(5, 1); err == nil {
		t.Error("expected error for horizon shorter than step")
	}
}
