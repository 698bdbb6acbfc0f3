package export

import (
	"strings"
	"testing"
)

func testCurve() *Curve {
	return &Curve{
		Samples:        []float64{-50, 0, 10, 50, 100},
		Concentrations: []float64{0, 2, 6.6, 1, 0},
		StandardLimit:  0.5,
		DetectionLimit: 0.05,
		Markers:        []float64{0, 10},
		Title:          "profile t = 100 d",
	}
}

func TestSVG(t *testing.T) {
	out, err := SVG(testCurve(), 800, 400)
	if err != nil {
		t.Fatalf("svg failed: %v", err)
	}

	if !strings.HasPrefix(out, `<?xml version="1.0"`) {
		t.Error("missing xml header")
	}
	if !strings.Contains(out, "</svg>") {
		t.Error("unterminated svg document")
	}
	if !strings.Contains(out, `<path fill="none"`) {
		t.Error("missing concentration path")
	}
	// Two threshold lines plus two markers.
	if n := strings.Count(out, "<line "); n != 4 {
		t.Errorf("expected 4 reference lines, got %d", n)
	}
	if !strings.Contains(out, "profile t = 100 d") {
		t.Error("missing title")
	}
}

func TestSVG_MarkerOutsideWindowSkipped(t *testing.T) {
	c := testCurve()
	c.Markers = []float64{-100, 500}
	out, err := SVG(c, 800, 400)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(out, "stroke-dasharray=\"2,4\""); n != 0 {
		t.Errorf("expected no marker lines, got %d", n)
	}
}

func TestSVG_InputErrors(t *testing.T) {
	c := testCurve()
	c.Samples = c.Samples[:1]
	c.Concentrations = c.Concentrations[:1]
	if _, err := SVG(c, 800, 400); err == nil {
		t.Error("expected error for single sample")
	}

	c = testCurve()
	c.Concentrations = c.Concentrations[:3]
	if _, err := SVG(c, 800, 400); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}
