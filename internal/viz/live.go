package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sparks/internal/metrics"
	"github.com/san-kum/sparks/internal/physics"
	"github.com/san-kum/sparks/internal/scenario"
	"github.com/san-kum/sparks/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	minExtent       = 10.0
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Factory builds a fresh scenario; the live view calls it on every restart.
type Factory func() (scenario.Scenario, error)

// Model steps one scenario per tick and draws it.
type Model struct {
	name    string
	factory Factory
	cfg     sim.Config

	sc     scenario.Scenario
	world  *physics.World
	t      float64
	steps  int
	err    error
	energy *metrics.KineticEnergy
	peak   *metrics.PeakHeight

	canvas   *Canvas
	camera   *Camera
	extent   float64
	drawn    int
	running  bool
	showAxes bool
	showHelp bool

	countHistory  []float64
	energyHistory []float64
}

func NewModel(name string, factory Factory, cfg sim.Config) (Model, error) {
	m := Model{
		name:          name,
		factory:       factory,
		cfg:           cfg,
		energy:        metrics.NewKineticEnergy(),
		peak:          metrics.NewPeakHeight(),
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(),
		running:       true,
		countHistory:  make([]float64, 0, historyCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the scenario.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
			}
		case "p", "enter":
			if r, ok := m.sc.(*scenario.Race); ok {
				r.Press()
			}
		case "a":
			m.showAxes = !m.showAxes
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			NextTheme()
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "c":
			m.camera.Reset()
		}
	case TickMsg:
		if m.running && m.err == nil && !m.sc.Done() {
			m.step()
		}
		m.draw()
		return m, tick()
	}
	return m, nil
}

func (m *Model) reset() error {
	sc, err := m.factory()
	if err != nil {
		return err
	}
	m.sc = sc
	m.world = physics.NewWorld(m.cfg.World)
	m.sc.Setup(m.world, rand.New(rand.NewSource(m.cfg.Seed)))
	m.t, m.steps, m.err = 0, 0, nil
	m.energy.Reset()
	m.peak.Reset()
	m.countHistory = m.countHistory[:0]
	m.energyHistory = m.energyHistory[:0]
	m.extent = 0
	m.draw()
	return nil
}

// step advances the scenario and world by one tick.
func (m *Model) step() {
	m.sc.Step(m.world, m.cfg.Dt)
	m.world.Update(m.cfg.Dt)
	m.t += m.cfg.Dt
	m.steps++

	if err := m.world.Validate(); err != nil {
		m.err = sim.SimError{Time: m.t, Step: m.steps, Message: err.Error()}
		m.running = false
		return
	}

	sprites := m.sc.Sprites()
	m.energy.Observe(m.world, sprites, m.t)
	m.peak.Observe(m.world, sprites, m.t)

	m.countHistory = appendCapped(m.countHistory, float64(len(sprites)))
	m.energyHistory = appendCapped(m.energyHistory, m.energy.Value())
}

func appendCapped(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyCapacity {
		hist = hist[1:]
	}
	return hist
}

// draw renders the current sprites, growing the fitted extent as they
// spread.
func (m *Model) draw() {
	m.canvas.Clear()
	sprites := m.sc.Sprites()
	if ext := Extent(sprites) * 1.2; ext > m.extent {
		m.extent = ext
	}
	if m.extent < minExtent {
		m.extent = minExtent
	}
	m.camera.Fit(m.extent)

	if m.showAxes {
		RenderWireframe(m.canvas, CreateAxesWireframe(m.extent/2), m.camera)
	}
	m.drawn = RenderSprites(m.canvas, sprites, m.camera)
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return StatusError.Render("ERROR")
	case m.sc.Done():
		return StatusPaused.Render("DONE")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	}
	return StatusRunning.Render("RUNNING")
}

// View renders the canvas and the stats panel side by side.
func (m Model) View() string {
	canvasView := canvasStyle.Render(sparkStyle().Render(m.canvas.String()))

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.countHistory) > 1 {
		chart := asciigraph.Plot(m.countHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Particles"))
		s.WriteString(graphStyle().Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.t))
	row("Particles", fmt.Sprintf("%d (%d drawn)", m.world.Len(), m.drawn))
	row("Peak", fmt.Sprintf("%.1f", m.peak.Value()))
	row("Energy", fmt.Sprintf("%.1f", m.energy.Value()))
	row("Theme", CurrentTheme.Name)

	if r, ok := m.sc.(*scenario.Race); ok {
		s.WriteString("\n" + Separator(36) + "\n")
		s.WriteString(raceView(r))
	}
	if m.err != nil {
		s.WriteString("\n" + StatusError.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nP:Press A:Axes T:Theme ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

func raceView(r *scenario.Race) string {
	var b strings.Builder
	track := r.TrackLength()
	for _, st := range r.Runners() {
		mark := " "
		switch {
		case st.Finished:
			mark = "✓"
		case st.Boosted:
			mark = "»"
		}
		name := st.Name
		if st.Player {
			name += "*"
		}
		b.WriteString(fmt.Sprintf("%-8s %s %s\n", name, ProgressBar(st.Distance/track, 20), mark))
	}
	for i, f := range r.Standings() {
		b.WriteString(fmt.Sprintf("%d. %-8s %.2fs\n", i+1, f.Name, f.Time))
	}
	return b.String()
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Restart scenario         ║
║  Q        - Quit                     ║
║  P/Enter  - Press (race player)      ║
║  A        - Toggle axes              ║
║  x y z    - Rotate camera            ║
║  + -      - Zoom                     ║
║  C        - Reset camera             ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// RunLive opens the live view for one scenario.
func RunLive(name string, factory Factory, cfg sim.Config) error {
	m, err := NewModel(name, factory, cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
