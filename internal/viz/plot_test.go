package viz

import (
	"strings"
	"testing"

	"github.com/neo2035/groundwater-calculator/internal/transport"
)

func TestFormatRange(t *testing.T) {
	r := &transport.Range{Start: -12, End: 32}
	if got := FormatRange(r, "none"); got != "-12 m to 32 m" {
		t.Errorf("FormatRange = %q", got)
	}
	if got := FormatRange(nil, "no exceedance"); got != "no exceedance" {
		t.Errorf("FormatRange(nil) = %q", got)
	}
}

func TestFormatCrossing(t *testing.T) {
	c := transport.Crossing{Reached: true, Time: 7, Concentration: 0.052}
	if got := FormatCrossing(c, "never"); got != "day 7 (0.052 mg/L)" {
		t.Errorf("FormatCrossing = %q", got)
	}
	if got := FormatCrossing(transport.Crossing{}, "not detected"); got != "not detected" {
		t.Errorf("FormatCrossing(zero) = %q", got)
	}
}

func TestPlotProfile(t *testing.T) {
	positions := []float64{-2, -1, 0, 1, 2}
	conc := []float64{0, 0.5, 1, 0.5, 0}
	out := PlotProfile(positions, conc, 10)
	if !strings.Contains(out, "t = 10 d") {
		t.Errorf("caption missing from plot:\n%s", out)
	}
}
