package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/neo2035/groundwater-calculator/internal/config"
	"github.com/neo2035/groundwater-calculator/internal/export"
	"github.com/neo2035/groundwater-calculator/internal/grid"
	"github.com/neo2035/groundwater-calculator/internal/scenario"
	"github.com/neo2035/groundwater-calculator/internal/storage"
	"github.com/neo2035/groundwater-calculator/internal/sweep"
	"github.com/neo2035/groundwater-calculator/internal/transport"
	"github.com/neo2035/groundwater-calculator/internal/tui"
	"github.com/neo2035/groundwater-calculator/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir string

	mass       float64
	area       float64
	porosity   float64
	velocity   float64
	dispersion float64
	decay      float64

	standardLimit  float64
	detectionLimit float64

	xMin  float64
	xMax  float64
	xStep float64
	tMax  float64
	tStep float64

	evalTime  float64
	times     string // comma-separated list for multi-time comparison
	position  float64
	positions string // comma-separated list for multi-well comparison

	configFile string
	preset     string

	svgOut    string
	svgWidth  int
	svgHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gwcalc",
		Short: "1-d groundwater contaminant transport calculator",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive dashboard when no command given
			return tui.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gwcalc", "data directory")

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "spatial concentration profile at fixed time",
		RunE:  runProfile,
	}
	addModelFlags(profileCmd)
	profileCmd.Flags().Float64Var(&evalTime, "time", 100.0, "evaluation time (d)")
	profileCmd.Flags().StringVar(&times, "times", "", "comma-separated times for comparison (overrides --time)")
	profileCmd.Flags().Float64Var(&xMin, "xmin", config.DefaultXMin, "window start (m)")
	profileCmd.Flags().Float64Var(&xMax, "xmax", config.DefaultXMax, "window end (m)")
	profileCmd.Flags().Float64Var(&xStep, "xstep", config.DefaultXStep, "sample spacing (m)")

	breakthroughCmd := &cobra.Command{
		Use:   "breakthrough",
		Short: "breakthrough curve at a monitoring position",
		RunE:  runBreakthrough,
	}
	addModelFlags(breakthroughCmd)
	breakthroughCmd.Flags().Float64Var(&position, "position", 10.0, "monitoring position (m)")
	breakthroughCmd.Flags().StringVar(&positions, "positions", "", "comma-separated positions for comparison (overrides --position)")
	breakthroughCmd.Flags().Float64Var(&tMax, "tmax", config.DefaultTMax, "time horizon (d)")
	breakthroughCmd.Flags().Float64Var(&tStep, "tstep", config.DefaultTStep, "time spacing (d)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [velocity|dispersion|decay]",
		Short: "one-parameter sensitivity sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addModelFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&evalTime, "time", 100.0, "evaluation time (d)")
	sweepCmd.Flags().Float64Var(&xMin, "xmin", config.DefaultXMin, "window start (m)")
	sweepCmd.Flags().Float64Var(&xMax, "xmax", config.DefaultXMax, "window end (m)")
	sweepCmd.Flags().Float64Var(&xStep, "xstep", config.DefaultXStep, "sample spacing (m)")

	runCmd := &cobra.Command{
		Use:   "run [profile|breakthrough]",
		Short: "run an analysis and save it to the data directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runAndSave,
	}
	addModelFlags(runCmd)
	runCmd.Flags().Float64Var(&evalTime, "time", 100.0, "evaluation time (d, profile)")
	runCmd.Flags().Float64Var(&position, "position", 10.0, "monitoring position (m, breakthrough)")
	runCmd.Flags().Float64Var(&xMin, "xmin", config.DefaultXMin, "window start (m)")
	runCmd.Flags().Float64Var(&xMax, "xmax", config.DefaultXMax, "window end (m)")
	runCmd.Flags().Float64Var(&xStep, "xstep", config.DefaultXStep, "sample spacing (m)")
	runCmd.Flags().Float64Var(&tMax, "tmax", config.DefaultTMax, "time horizon (d)")
	runCmd.Flags().Float64Var(&tStep, "tstep", config.DefaultTStep, "time spacing (d)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a saved run as an SVG figure",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 900, "figure width (px)")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 500, "figure height (px)")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list aquifer presets",
		RunE:  listAquiferPresets,
	}

	rootCmd.AddCommand(profileCmd, breakthroughCmd, sweepCmd, runCmd, listCmd,
		plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, batchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "released mass (g)")
	cmd.Flags().Float64Var(&area, "area", config.DefaultArea, "flow cross-section (m²)")
	cmd.Flags().Float64Var(&porosity, "porosity", config.DefaultPorosity, "effective porosity")
	cmd.Flags().Float64Var(&velocity, "velocity", config.DefaultVelocity, "seepage velocity (m/d)")
	cmd.Flags().Float64Var(&dispersion, "dispersion", config.DefaultDispersion, "longitudinal dispersion (m²/d)")
	cmd.Flags().Float64Var(&decay, "decay", 0.0, "first-order decay rate (1/d)")
	cmd.Flags().Float64Var(&standardLimit, "standard", config.DefaultStandardLimit, "quality standard (mg/L)")
	cmd.Flags().Float64Var(&detectionLimit, "detection", config.DefaultDetectionLimit, "detection limit (mg/L)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "aquifer preset")
}

// resolveParams merges preset, config file and flags into the model inputs.
// Precedence follows the run workflow: preset first, config file next, and
// explicitly set flags always win.
func resolveParams(cmd *cobra.Command) (transport.Parameters, error) {
	if preset != "" {
		pre := config.GetPreset(preset)
		if pre == nil {
			return transport.Parameters{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		applyAquifer(cmd, *pre)
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return transport.Parameters{}, fmt.Errorf("failed to load config: %w", err)
		}
		applyAquifer(cmd, cfg.Aquifer)
		if !cmd.Flags().Changed("standard") {
			standardLimit = cfg.Limits.Standard
		}
		if !cmd.Flags().Changed("detection") {
			detectionLimit = cfg.Limits.Detection
		}
		applyGrid(cmd, cfg.Grid)
	}

	return transport.Parameters{
		Mass:       mass,
		Area:       area,
		Porosity:   porosity,
		Velocity:   velocity,
		Dispersion: dispersion,
		Decay:      decay,
	}, nil
}

func applyAquifer(cmd *cobra.Command, a config.AquiferConfig) {
	if !cmd.Flags().Changed("mass") {
		mass = a.Mass
	}
	if !cmd.Flags().Changed("area") {
		area = a.Area
	}
	if !cmd.Flags().Changed("porosity") {
		porosity = a.Porosity
	}
	if !cmd.Flags().Changed("velocity") {
		velocity = a.Velocity
	}
	if !cmd.Flags().Changed("dispersion") {
		dispersion = a.Dispersion
	}
	if !cmd.Flags().Changed("decay") {
		decay = a.Decay
	}
}

func applyGrid(cmd *cobra.Command, g config.GridConfig) {
	if f := cmd.Flags().Lookup("xmin"); f != nil && !f.Changed {
		xMin = g.XMin
	}
	if f := cmd.Flags().Lookup("xmax"); f != nil && !f.Changed {
		xMax = g.XMax
	}
	if f := cmd.Flags().Lookup("xstep"); f != nil && !f.Changed {
		xStep = g.XStep
	}
	if f := cmd.Flags().Lookup("tmax"); f != nil && !f.Changed {
		tMax = g.TMax
	}
	if f := cmd.Flags().Lookup("tstep"); f != nil && !f.Changed {
		tStep = g.TStep
	}
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", p, err)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	params, err := resolveParams(cmd)
	if err != nil {
		return err
	}
	model, err := transport.New(params)
	if err != nil {
		return err
	}
	positions, err := grid.Positions(xMin, xMax, xStep)
	if err != nil {
		return err
	}

	evalTimes := []float64{evalTime}
	if times != "" {
		if evalTimes, err = parseFloats(times); err != nil {
			return err
		}
	}

	if len(evalTimes) > 1 {
		series := make([][]float64, len(evalTimes))
		for i, t := range evalTimes {
			series[i] = model.Profile(positions, t)
		}
		fmt.Println(viz.PlotSeries(series, fmt.Sprintf("profiles at t = %v d", evalTimes)))
		fmt.Println()
		for i, t := range evalTimes {
			sum, err := transport.Summarize(positions, series[i], standardLimit, detectionLimit)
			if err != nil {
				return err
			}
			fmt.Printf("t = %.0f d: peak %.4f mg/L at x = %.1f m, exceedance %s\n",
				t, sum.Max, sum.MaxPosition, viz.FormatRange(sum.Exceedance, "none"))
		}
		return nil
	}

	t := evalTimes[0]
	conc := model.Profile(positions, t)
	sum, err := transport.Summarize(positions, conc, standardLimit, detectionLimit)
	if err != nil {
		return err
	}

	fmt.Println(viz.PlotProfile(positions, conc, t))
	fmt.Println()
	fmt.Println(viz.RenderSummary(sum, standardLimit, detectionLimit))

	recovered, err := model.MassRecovered(positions, conc)
	if err == nil {
		fmt.Printf("\nmass in window: %.2f g of %.2f g released\n", recovered, params.Mass)
	}
	return nil
}

func runBreakthrough(cmd *cobra.Command, args []string) error {
	params, err := resolveParams(cmd)
	if err != nil {
		return err
	}
	model, err := transport.New(params)
	if err != nil {
		return err
	}
	ts, err := grid.Times(tStep, tMax)
	if err != nil {
		return err
	}

	wells := []float64{position}
	if positions != "" {
		if wells, err = parseFloats(positions); err != nil {
			return err
		}
	}

	if len(wells) > 1 {
		series := make([][]float64, len(wells))
		for i, x := range wells {
			series[i] = model.Breakthrough(x, ts)
		}
		fmt.Println(viz.PlotSeries(series, fmt.Sprintf("breakthrough at x = %v m", wells)))
		fmt.Println()
		for i, x := range wells {
			bs, err := transport.BreakthroughStats(ts, series[i], standardLimit, detectionLimit)
			if err != nil {
				return err
			}
			fmt.Printf("x = %.1f m: peak %.4f mg/L on day %.0f, detection %s, exceedance %s\n",
				x, bs.Peak, bs.PeakTime,
				viz.FormatCrossing(bs.FirstDetection, "never"),
				viz.FormatCrossing(bs.FirstExceedance, "never"))
		}
		return nil
	}

	conc := model.Breakthrough(wells[0], ts)
	bs, err := transport.BreakthroughStats(ts, conc, standardLimit, detectionLimit)
	if err != nil {
		return err
	}

	fmt.Println(viz.PlotBreakthrough(ts, conc, wells[0]))
	fmt.Println()
	fmt.Println(viz.RenderBreakthrough(bs, standardLimit, detectionLimit))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	param := args[0]
	base, err := resolveParams(cmd)
	if err != nil {
		return err
	}
	positions, err := grid.Positions(xMin, xMax, xStep)
	if err != nil {
		return err
	}

	variants, err := sweep.Run(base, param, positions, evalTime, standardLimit, detectionLimit)
	if err != nil {
		return err
	}

	series := make([][]float64, len(variants))
	for i, v := range variants {
		series[i] = v.Concentrations
	}
	fmt.Println(viz.PlotSeries(series, fmt.Sprintf("%s sweep, t = %.0f d", param, evalTime)))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tPEAK\tAT\tEXCEEDANCE\tINFLUENCE")
	for _, v := range variants {
		fmt.Fprintf(w, "%s\t%.4f mg/L\t%.1f m\t%s\t%s\n",
			v.Label,
			v.Summary.Max,
			v.Summary.MaxPosition,
			viz.FormatRange(v.Summary.Exceedance, "none"),
			viz.FormatRange(v.Summary.Influence, "none"),
		)
	}
	return w.Flush()
}

func runAndSave(cmd *cobra.Command, args []string) error {
	mode := args[0]
	params, err := resolveParams(cmd)
	if err != nil {
		return err
	}
	model, err := transport.New(params)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	run := &storage.Run{
		Mode:           mode,
		Parameters:     params,
		StandardLimit:  standardLimit,
		DetectionLimit: detectionLimit,
		Stats:          map[string]float64{},
	}

	switch mode {
	case storage.ModeProfile:
		positions, err := grid.Positions(xMin, xMax, xStep)
		if err != nil {
			return err
		}
		conc := model.Profile(positions, evalTime)
		sum, err := transport.Summarize(positions, conc, standardLimit, detectionLimit)
		if err != nil {
			return err
		}
		run.Time = evalTime
		run.Samples = positions
		run.Concentrations = conc
		run.Stats["peak"] = sum.Max
		run.Stats["peak_position"] = sum.MaxPosition
		if sum.Exceedance != nil {
			run.Stats["exceedance_start"] = sum.Exceedance.Start
			run.Stats["exceedance_end"] = sum.Exceedance.End
		}
		if sum.Influence != nil {
			run.Stats["influence_start"] = sum.Influence.Start
			run.Stats["influence_end"] = sum.Influence.End
		}
	case storage.ModeBreakthrough:
		ts, err := grid.Times(tStep, tMax)
		if err != nil {
			return err
		}
		conc := model.Breakthrough(position, ts)
		bs, err := transport.BreakthroughStats(ts, conc, standardLimit, detectionLimit)
		if err != nil {
			return err
		}
		run.Position = position
		run.Samples = ts
		run.Concentrations = conc
		run.Stats["peak"] = bs.Peak
		run.Stats["peak_time"] = bs.PeakTime
		if bs.FirstDetection.Reached {
			run.Stats["first_detection"] = bs.FirstDetection.Time
		}
		if bs.FirstExceedance.Reached {
			run.Stats["first_exceedance"] = bs.FirstExceedance.Time
		}
	default:
		return fmt.Errorf("unknown mode: %s (want profile or breakthrough)", mode)
	}

	runID, err := st.Save(run)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(run.Samples))
	fmt.Println("\nstats:")
	for name, val := range run.Stats {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tTIME\tVELOCITY\tDISPERSION\tPEAK")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3f m/d\t%.3f m²/d\t%.4f mg/L\n",
			run.ID,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Parameters.Velocity,
			run.Parameters.Dispersion,
			run.Stats["peak"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, conc, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s\n", meta.Mode)
	fmt.Printf("samples: %d\n\n", len(samples))

	switch meta.Mode {
	case storage.ModeBreakthrough:
		fmt.Println(viz.PlotBreakthrough(samples, conc, meta.Position))
		bs, err := transport.BreakthroughStats(samples, conc, meta.StandardLimit, meta.DetectionLimit)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(viz.RenderBreakthrough(bs, meta.StandardLimit, meta.DetectionLimit))
	default:
		fmt.Println(viz.PlotProfile(samples, conc, meta.Time))
		sum, err := transport.Summarize(samples, conc, meta.StandardLimit, meta.DetectionLimit)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(viz.RenderSummary(sum, meta.StandardLimit, meta.DetectionLimit))
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, conc, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}

	col := "position"
	if meta.Mode == storage.ModeBreakthrough {
		col = "time"
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{col, "concentration"}); err != nil {
		return err
	}
	for i := range samples {
		row := []string{
			strconv.FormatFloat(samples[i], 'f', 6, 64),
			strconv.FormatFloat(conc[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, conc, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, samples, conc)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, conc, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	curve := &export.Curve{
		Samples:        samples,
		Concentrations: conc,
		StandardLimit:  meta.StandardLimit,
		DetectionLimit: meta.DetectionLimit,
	}
	switch meta.Mode {
	case storage.ModeBreakthrough:
		curve.Title = fmt.Sprintf("breakthrough at x = %g m", meta.Position)
	default:
		curve.Title = fmt.Sprintf("profile at t = %g d", meta.Time)
		// Injection point and plume center as vertical reference lines.
		curve.Markers = []float64{0, meta.Parameters.Velocity * meta.Time}
	}

	doc, err := export.SVG(curve, svgWidth, svgHeight)
	if err != nil {
		return err
	}

	out := svgOut
	if out == "" {
		out = runID + ".svg"
	}
	if err := os.WriteFile(out, []byte(doc), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	fmt.Println()

	results, err := scenario.Run(sc, st)
	if err != nil {
		return err
	}

	for i, res := range results {
		fmt.Printf("[%d] %s (%s)\n", i+1, res.Step.Name, res.Step.Mode)
		switch {
		case res.Summary != nil:
			fmt.Printf("    peak %.4f mg/L at x = %.1f m, exceedance %s, influence %s\n",
				res.Summary.Max, res.Summary.MaxPosition,
				viz.FormatRange(res.Summary.Exceedance, "none"),
				viz.FormatRange(res.Summary.Influence, "none"))
		case res.Breakthrough != nil:
			fmt.Printf("    peak %.4f mg/L on day %.0f, detection %s, exceedance %s\n",
				res.Breakthrough.Peak, res.Breakthrough.PeakTime,
				viz.FormatCrossing(res.Breakthrough.FirstDetection, "never"),
				viz.FormatCrossing(res.Breakthrough.FirstExceedance, "never"))
		}
		if res.RunID != "" {
			fmt.Printf("    saved as %s\n", res.RunID)
		}
	}
	return nil
}

func listAquiferPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPOROSITY\tVELOCITY\tDISPERSION\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		pre := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.2f\t%.2f m/d\t%.2f m²/d\t%s\n",
			name, pre.Porosity, pre.Velocity, pre.Dispersion, config.PresetInfo(name))
	}
	return w.Flush()
}
