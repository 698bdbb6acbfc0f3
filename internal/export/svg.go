// Package export renders concentration curves as standalone SVG figures.
package export

import (
	"fmt"
	"strings"
)

// Curve holds one concentration series plus the reference lines drawn with
// it. Threshold lines are horizontal; Markers draw vertical lines at the
// given sample coordinates (injection point, plume center).
type Curve struct {
	Samples        []float64
	Concentrations []float64
	StandardLimit  float64
	DetectionLimit float64
	Markers        []float64
	Title          string
}

const (
	background    = "#0a0a0a"
	curveColor    = "#00ccff"
	standardColor = "#ff4444"
	detectColor   = "#00ff88"
	markerColor   = "#888899"
	textColor     = "#cccccc"
)

// SVG renders the curve into a width×height SVG document. Vertical scale
// runs from 0 to the larger of the curve maximum and the standard limit,
// with 10% headroom, mirroring the original figures.
func SVG(c *Curve, width, height int) (string, error) {
	if len(c.Samples) < 2 {
		return "", fmt.Errorf("need at least 2 samples, got %d", len(c.Samples))
	}
	if len(c.Samples) != len(c.Concentrations) {
		return "", fmt.Errorf("samples and concentrations differ in length: %d vs %d",
			len(c.Samples), len(c.Concentrations))
	}

	minX, maxX := c.Samples[0], c.Samples[len(c.Samples)-1]
	rangeX := maxX - minX
	if rangeX == 0 {
		rangeX = 1
	}

	maxY := c.StandardLimit
	for _, v := range c.Concentrations {
		if v > maxY {
			maxY = v
		}
	}
	if maxY == 0 {
		maxY = 1
	}
	maxY *= 1.1

	toX := func(v float64) float64 { return (v - minX) / rangeX * float64(width) }
	toY := func(v float64) float64 { return float64(height) - v/maxY*float64(height) }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	if c.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="16" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 8, textColor, c.Title))
	}

	for _, m := range c.Markers {
		if m < minX || m > maxX {
			continue
		}
		x := toX(m)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="0" x2="%.1f" y2="%d" stroke="%s" stroke-width="1" stroke-dasharray="2,4"/>
`, x, x, height, markerColor))
	}

	for _, tl := range []struct {
		limit float64
		color string
	}{
		{c.StandardLimit, standardColor},
		{c.DetectionLimit, detectColor},
	} {
		if tl.limit <= 0 || tl.limit > maxY {
			continue
		}
		y := toY(tl.limit)
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="%s" stroke-width="1" stroke-dasharray="6,4"/>
`, y, width, y, tl.color))
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, curveColor))
	for i := range c.Samples {
		x := toX(c.Samples[i])
		y := toY(c.Concentrations[i])
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n</svg>")

	return sb.String(), nil
}
