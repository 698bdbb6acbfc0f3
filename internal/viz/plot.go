package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/neo2035/groundwater-calculator/internal/transport"
)

const (
	PlotWidth  = 80
	PlotHeight = 12
)

// PlotProfile charts a spatial concentration distribution.
func PlotProfile(positions, concentrations []float64, t float64) string {
	caption := fmt.Sprintf("concentration (mg/L) vs distance, x = %g..%g m, t = %g d",
		positions[0], positions[len(positions)-1], t)
	return asciigraph.Plot(concentrations,
		asciigraph.Height(PlotHeight),
		asciigraph.Width(PlotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotBreakthrough charts a breakthrough curve at a monitoring position.
func PlotBreakthrough(times, concentrations []float64, x float64) string {
	caption := fmt.Sprintf("concentration (mg/L) vs time, t = %g..%g d, x = %g m",
		times[0], times[len(times)-1], x)
	return asciigraph.Plot(concentrations,
		asciigraph.Height(PlotHeight),
		asciigraph.Width(PlotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotSeries overlays several concentration series (multi-time comparison,
// sensitivity sweeps) in one chart.
func PlotSeries(series [][]float64, caption string) string {
	return asciigraph.PlotMany(series,
		asciigraph.Height(PlotHeight),
		asciigraph.Width(PlotWidth),
		asciigraph.Caption(caption),
	)
}

// FormatRange renders an exceedance range, or the fallback when the
// threshold was never crossed.
func FormatRange(r *transport.Range, fallback string) string {
	if r == nil {
		return fallback
	}
	return fmt.Sprintf("%.0f m to %.0f m", r.Start, r.End)
}

// FormatCrossing renders a threshold crossing, or the fallback when it was
// never reached.
func FormatCrossing(c transport.Crossing, fallback string) string {
	if !c.Reached {
		return fallback
	}
	return fmt.Sprintf("day %.0f (%.3f mg/L)", c.Time, c.Concentration)
}

// RenderSummary renders the statistics block of a spatial profile.
func RenderSummary(sum *transport.Summary, standardLimit, detectionLimit float64) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("  %s %s at %s\n",
		Dim.Render("peak"),
		Magenta.Render(fmt.Sprintf("%.3f mg/L", sum.Max)),
		White.Render(fmt.Sprintf("%.1f m", sum.MaxPosition))))

	exceed := FormatRange(sum.Exceedance, "no exceedance")
	style := Red
	if sum.Exceedance == nil {
		style = Green
	}
	b.WriteString(fmt.Sprintf("  %s %s\n",
		Dim.Render(fmt.Sprintf("exceedance (> %g mg/L)", standardLimit)),
		style.Render(exceed)))

	influence := FormatRange(sum.Influence, "below detection")
	style = Yellow
	if sum.Influence == nil {
		style = Green
	}
	b.WriteString(fmt.Sprintf("  %s %s\n",
		Dim.Render(fmt.Sprintf("influence (> %g mg/L)", detectionLimit)),
		style.Render(influence)))

	return b.String()
}

// RenderBreakthrough renders the statistics block of a breakthrough curve.
func RenderBreakthrough(bs *transport.BreakthroughSummary, standardLimit, detectionLimit float64) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("  %s %s\n",
		Dim.Render(fmt.Sprintf("first detection (> %g mg/L)", detectionLimit)),
		Yellow.Render(FormatCrossing(bs.FirstDetection, "not detected"))))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		Dim.Render(fmt.Sprintf("first exceedance (> %g mg/L)", standardLimit)),
		Red.Render(FormatCrossing(bs.FirstExceedance, "never exceeded"))))
	b.WriteString(fmt.Sprintf("  %s %s on day %s\n",
		Dim.Render("peak"),
		Magenta.Render(fmt.Sprintf("%.3f mg/L", bs.Peak)),
		White.Render(fmt.Sprintf("%.0f", bs.PeakTime))))

	return b.String()
}
