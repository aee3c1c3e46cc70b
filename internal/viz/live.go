// Package viz is the terminal front end: a live view of the water surface
// while the solver runs.
package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/hydrolab/swe1d/internal/grid"
	"github.com/hydrolab/swe1d/internal/swe"
)

const (
	graphWidth  = 80
	graphHeight = 16
	wallFPS     = 30
)

type TickMsg time.Time

// Model advances the simulation a batch of steps per animation frame and
// redraws the surface profile.
type Model struct {
	flux       *swe.Flux
	integrator swe.Integrator
	diff       swe.Differencer
	g          *grid.Grid

	initial swe.State
	state   swe.State
	t       float64
	dt      float64
	steps   int

	stepsPerFrame int
	running       bool
	blownUp       bool

	scenario    string
	spatial     string
	integName   string
	initialMass float64
}

func NewModel(fx *swe.Flux, ig swe.Integrator, sd swe.Differencer, g *grid.Grid, x0 swe.State, dt float64, scenario, spatial, integName string) Model {
	// Track wall-clock time: one frame of simulated time per frame drawn,
	// within reason.
	spf := int(1.0 / (wallFPS * dt))
	if spf < 1 {
		spf = 1
	}
	if spf > 2000 {
		spf = 2000
	}

	return Model{
		flux:          fx,
		integrator:    ig,
		diff:          sd,
		g:             g,
		initial:       x0.Clone(),
		state:         x0.Clone(),
		dt:            dt,
		stepsPerFrame: spf,
		running:       true,
		scenario:      scenario,
		spatial:       spatial,
		integName:     integName,
		initialMass:   x0.H.Sum() * g.Dx,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/wallFPS, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.state = m.initial.Clone()
			m.t = 0
			m.steps = 0
			m.blownUp = false
		}
	case TickMsg:
		if m.running && !m.blownUp {
			for i := 0; i < m.stepsPerFrame; i++ {
				m.state = m.integrator.Step(m.flux, m.state, m.g.Dx, m.dt, m.diff)
				m.steps++
			}
			m.t = float64(m.steps) * m.dt
			if !m.state.IsValid() {
				m.blownUp = true
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	header := HeaderStyle.Render(fmt.Sprintf("swe1d live · %s · %s + %s", m.scenario, m.spatial, m.integName))

	graph := asciigraph.Plot(m.state.H,
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption("water height h(x)"),
	)

	status := StatusRunning.Render("running")
	if m.blownUp {
		status = StatusPaused.Render("BLOWN UP (press r)")
	} else if !m.running {
		status = StatusPaused.Render("paused")
	}

	mass := m.state.H.Sum() * m.g.Dx
	drift := 0.0
	if m.initialMass != 0 {
		drift = (mass - m.initialMass) / m.initialMass
	}
	courant := m.flux.MaxWaveSpeed(m.state) * m.dt / m.g.Dx

	stats := StatsPanel.Render(lipgloss.JoinVertical(lipgloss.Left,
		MetricLabel.Render("status")+status,
		MetricLabel.Render("t")+MetricValue.Render(fmt.Sprintf("%.3f s", m.t)),
		MetricLabel.Render("steps")+MetricValue.Render(fmt.Sprintf("%d", m.steps)),
		MetricLabel.Render("dt")+MetricValue.Render(fmt.Sprintf("%.2e", m.dt)),
		MetricLabel.Render("max h")+MetricValue.Render(fmt.Sprintf("%.4f", m.state.H.Max())),
		MetricLabel.Render("mass drift")+MetricValue.Render(fmt.Sprintf("%+.2e", drift)),
		MetricLabel.Render("courant")+MetricValue.Render(fmt.Sprintf("%.3f ", courant)+ProgressBar(courant, 12)),
	))

	help := KeyHint.Render("space pause · r reset · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		GraphStyle.Render(graph),
		stats,
		help,
	)
}
