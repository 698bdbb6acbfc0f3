// Package viz renders concentration fields and their statistics for the
// terminal: asciigraph charts for spatial profiles, breakthrough curves and
// sensitivity sweeps, plus lipgloss-styled summary blocks shared by the CLI
// commands and the interactive dashboard.
package viz
