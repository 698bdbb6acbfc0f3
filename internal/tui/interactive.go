package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/neo2035/groundwater-calculator/internal/config"
	"github.com/neo2035/groundwater-calculator/internal/grid"
	"github.com/neo2035/groundwater-calculator/internal/sweep"
	"github.com/neo2035/groundwater-calculator/internal/transport"
	"github.com/neo2035/groundwater-calculator/internal/viz"
)

var modeInfo = map[string]string{
	"profile":          "concentration vs distance",
	"breakthrough":     "concentration vs time",
	"sweep velocity":   "seepage velocity sensitivity",
	"sweep dispersion": "dispersion sensitivity",
	"sweep decay":      "decay sensitivity",
}

type state int

const (
	stateMenu state = iota
	stateConfig
	stateView
)

type model struct {
	state    state
	cursor   int
	modes    []string
	selected string

	params      map[string]float64
	paramNames  []string
	paramCursor int
	editing     bool
	editBuf     string

	presets     []string
	presetIdx   int // -1 when params were edited away from any preset
	resultView  string
	computeErr  error

	width  int
	height int
}

func NewInteractiveApp() *model {
	cfg := config.DefaultConfig()
	return &model{
		state: stateMenu,
		modes: []string{"profile", "breakthrough", "sweep velocity", "sweep dispersion", "sweep decay"},
		params: map[string]float64{
			"mass":       cfg.Aquifer.Mass,
			"area":       cfg.Aquifer.Area,
			"porosity":   cfg.Aquifer.Porosity,
			"velocity":   cfg.Aquifer.Velocity,
			"dispersion": cfg.Aquifer.Dispersion,
			"decay":      cfg.Aquifer.Decay,
			"standard":   cfg.Limits.Standard,
			"detection":  cfg.Limits.Detection,
			"time":       100.0,
			"position":   10.0,
			"xmin":       cfg.Grid.XMin,
			"xmax":       cfg.Grid.XMax,
			"xstep":      cfg.Grid.XStep,
			"tmax":       cfg.Grid.TMax,
			"tstep":      cfg.Grid.TStep,
		},
		presets:   config.ListPresets(),
		presetIdx: -1,
		width:     80,
		height:    24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateView:
		return m.viewKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.modes)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.modes[m.cursor]
		m.state = stateConfig
		m.paramCursor = 0
		m.computeErr = nil
		m.setParamsForMode()
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			// Keep the old value when the buffer never became a number
			// ("-", ".", empty).
			if val, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				m.params[m.paramNames[m.paramCursor]] = val
				m.presetIdx = -1
			}
			m.editing = false
			m.editBuf = ""
		case "escape":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "escape":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = fmt.Sprintf("%.3f", m.params[m.paramNames[m.paramCursor]])
	case "p":
		m.cyclePreset()
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(1)
	case "s":
		m.compute()
		if m.computeErr == nil {
			m.state = stateView
			return m, tea.ClearScreen
		}
	}
	return m, nil
}

func (m model) viewKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "escape":
		m.state = stateMenu
		m.resultView = ""
		return m, tea.ClearScreen
	case "r":
		m.compute()
		return m, tea.ClearScreen
	case "c":
		m.state = stateConfig
		m.resultView = ""
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m *model) setParamsForMode() {
	common := []string{"mass", "area", "porosity", "velocity", "dispersion", "decay", "standard", "detection"}
	switch m.selected {
	case "breakthrough":
		m.paramNames = append(common, "position", "tmax", "tstep")
	default:
		m.paramNames = append(common, "time", "xmin", "xmax", "xstep")
	}
}

// nudge adjusts the selected parameter by 10% of its magnitude, which keeps
// small values (porosity, decay) editable without a dozen keypresses.
func (m *model) nudge(dir int) {
	name := m.paramNames[m.paramCursor]
	v := m.params[name]
	delta := v * 0.1
	if delta < 0 {
		delta = -delta
	}
	if delta == 0 {
		delta = 0.1
	}
	m.params[name] = v + float64(dir)*delta
	m.presetIdx = -1
}

func (m *model) cyclePreset() {
	if len(m.presets) == 0 {
		return
	}
	m.presetIdx = (m.presetIdx + 1) % len(m.presets)
	pre := config.GetPreset(m.presets[m.presetIdx])
	if pre == nil {
		return
	}
	m.params["mass"] = pre.Mass
	m.params["area"] = pre.Area
	m.params["porosity"] = pre.Porosity
	m.params["velocity"] = pre.Velocity
	m.params["dispersion"] = pre.Dispersion
	m.params["decay"] = pre.Decay
}

func (m *model) parameters() transport.Parameters {
	return transport.Parameters{
		Mass:       m.params["mass"],
		Area:       m.params["area"],
		Porosity:   m.params["porosity"],
		Velocity:   m.params["velocity"],
		Dispersion: m.params["dispersion"],
		Decay:      m.params["decay"],
	}
}

func (m *model) compute() {
	m.computeErr = nil
	switch m.selected {
	case "profile":
		m.resultView, m.computeErr = m.computeProfile()
	case "breakthrough":
		m.resultView, m.computeErr = m.computeBreakthrough()
	default:
		param := strings.TrimPrefix(m.selected, "sweep ")
		m.resultView, m.computeErr = m.computeSweep(param)
	}
}

func (m *model) computeProfile() (string, error) {
	tm, err := transport.New(m.parameters())
	if err != nil {
		return "", err
	}
	positions, err := grid.Positions(m.params["xmin"], m.params["xmax"], m.params["xstep"])
	if err != nil {
		return "", err
	}
	t := m.params["time"]
	conc := tm.Profile(positions, t)
	sum, err := transport.Summarize(positions, conc, m.params["standard"], m.params["detection"])
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(viz.PlotProfile(positions, conc, t))
	b.WriteString("\n\n")
	b.WriteString(viz.RenderSummary(sum, m.params["standard"], m.params["detection"]))
	return b.String(), nil
}

func (m *model) computeBreakthrough() (string, error) {
	tm, err := transport.New(m.parameters())
	if err != nil {
		return "", err
	}
	times, err := grid.Times(m.params["tstep"], m.params["tmax"])
	if err != nil {
		return "", err
	}
	x := m.params["position"]
	conc := tm.Breakthrough(x, times)
	bs, err := transport.BreakthroughStats(times, conc, m.params["standard"], m.params["detection"])
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(viz.PlotBreakthrough(times, conc, x))
	b.WriteString("\n\n")
	b.WriteString(viz.RenderBreakthrough(bs, m.params["standard"], m.params["detection"]))
	return b.String(), nil
}

func (m *model) computeSweep(param string) (string, error) {
	positions, err := grid.Positions(m.params["xmin"], m.params["xmax"], m.params["xstep"])
	if err != nil {
		return "", err
	}
	t := m.params["time"]
	variants, err := sweep.Run(m.parameters(), param, positions, t, m.params["standard"], m.params["detection"])
	if err != nil {
		return "", err
	}

	series := make([][]float64, len(variants))
	for i, v := range variants {
		series[i] = v.Concentrations
	}
	caption := fmt.Sprintf("%s sweep, t = %.0f d", param, t)

	var b strings.Builder
	b.WriteString(viz.PlotSeries(series, caption))
	b.WriteString("\n\n")
	for _, v := range variants {
		b.WriteString("   " + viz.Cyan.Render(fmt.Sprintf("%-16s", v.Label)))
		b.WriteString(viz.White.Render(fmt.Sprintf("peak %.4f mg/L", v.Summary.Max)))
		b.WriteString(viz.Dim.Render(fmt.Sprintf("  at x = %.1f m", v.Summary.MaxPosition)))
		b.WriteString(viz.Dim.Render("  exceedance " + viz.FormatRange(v.Summary.Exceedance, "none")))
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateView:
		return m.viewResult()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(viz.Dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + viz.Cyan.Render("g w c a l c") + "\n")
	b.WriteString(viz.Dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.modes {
		desc := modeInfo[name]
		if i == m.cursor {
			b.WriteString("      " + viz.Cyan.Render("▸ ") + viz.White.Render(fmt.Sprintf("%-18s", name)) + viz.Dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + viz.Dim.Render(fmt.Sprintf("%-18s", name)) + viz.Dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(viz.Dim.Render("      ↑↓ select   enter configure   q quit") + "\n")

	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + viz.Cyan.Render(m.selected) + "  " + viz.Dim.Render(modeInfo[m.selected]) + "\n")
	b.WriteString(viz.Dimmer.Render("      "+strings.Repeat("─", 34)) + "\n\n")

	for i, name := range m.paramNames {
		val := fmt.Sprintf("%10.3f", m.params[name])
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%10s", m.editBuf+"▋")
		}
		if i == m.paramCursor {
			b.WriteString("      " + viz.Cyan.Render("▸ ") + viz.White.Render(fmt.Sprintf("%-12s", name)) + viz.Magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + viz.Dim.Render(fmt.Sprintf("%-12s", name)) + viz.Dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	if m.presetIdx >= 0 {
		b.WriteString("      " + viz.Dim.Render("preset ") + viz.Green.Render(m.presets[m.presetIdx]) +
			"  " + viz.Dimmer.Render(config.PresetInfo(m.presets[m.presetIdx])) + "\n")
	} else {
		b.WriteString("      " + viz.Dimmer.Render("preset custom") + "\n")
	}
	if m.computeErr != nil {
		b.WriteString("      " + viz.Red.Render(m.computeErr.Error()) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(viz.Dim.Render("      ↑↓ select  ←→ adjust  enter edit  p preset  s run  esc back") + "\n")

	return b.String()
}

func (m model) viewResult() string {
	var b strings.Builder

	b.WriteString("\n   " + viz.Green.Render("●") + " " + viz.Cyan.Render(m.selected) + "\n\n")
	b.WriteString(m.resultView)
	b.WriteString("\n\n" + viz.Dim.Render("   r rerun  c config  q menu") + "\n")

	return b.String()
}

func RunInteractive() error {
	p := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
