package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sparks/internal/config"
	"github.com/san-kum/sparks/internal/scenario"
	"github.com/san-kum/sparks/internal/sim"
)

var scenarioInfo = map[string]string{
	"fountain": "upward spark waves",
	"eruption": "sideways burst",
	"race":     "boost vs button mashing",
	"bounce":   "balls on a ground plane",
}

const defaultPreset = "(defaults)"

const (
	stateMenu = iota
	statePreset
	stateSim
)

var (
	menuTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKey      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// Menu picks a scenario and preset, then runs the live view.
type Menu struct {
	registry *scenario.Registry
	base     *config.Config

	state     int
	cursor    int
	scenarios []string
	selected  string
	presets   []string
	err       error
	live      Model
}

func NewMenu(registry *scenario.Registry, base *config.Config) *Menu {
	return &Menu{
		registry:  registry,
		base:      base,
		scenarios: registry.List(),
	}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			m.state = statePreset
			return m, nil
		}
		live, cmd := m.live.Update(msg)
		m.live = live.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options())-1 {
			m.cursor++
		}
	case "esc":
		if m.state == statePreset {
			m.state, m.cursor = stateMenu, 0
		}
	case "enter", " ":
		return m.choose()
	}
	return m, nil
}

func (m Menu) options() []string {
	if m.state == statePreset {
		return m.presets
	}
	return m.scenarios
}

func (m Menu) choose() (Menu, tea.Cmd) {
	if m.state == stateMenu {
		m.selected = m.scenarios[m.cursor]
		m.presets = append([]string{defaultPreset}, config.ListPresets(m.selected)...)
		m.state, m.cursor, m.err = statePreset, 0, nil
		return m, nil
	}

	cfg := m.base.Clone()
	if name := m.presets[m.cursor]; name != defaultPreset {
		cfg = config.GetPreset(m.selected, name)
	}
	cfg.Scenario = m.selected

	name := m.selected
	factory := func() (scenario.Scenario, error) { return m.registry.Get(name, cfg) }
	live, err := NewModel(name, factory, sim.FromConfig(cfg))
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live, m.state = live, stateSim
	return m, m.live.Init()
}

func (m Menu) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	var b strings.Builder
	title, sub := "SPARKS", "particle effects"
	if m.state == statePreset {
		title, sub = strings.ToUpper(m.selected), scenarioInfo[m.selected]
	}
	b.WriteString("\n\n    " + menuTitle.Render(title) + "\n    " + menuSub.Render(sub) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")

	for i, name := range m.options() {
		desc := ""
		if m.state == stateMenu {
			desc = scenarioInfo[name]
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuSelected.Render(fmt.Sprintf("%-16s", name)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-16s", name)), menuIdle.Render(desc)))
		}
	}

	if m.err != nil {
		b.WriteString("\n    " + StatusError.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuSub.Render(" navigate  ") + menuKey.Render("enter") + menuSub.Render(" select  ") + menuKey.Render("esc") + menuSub.Render(" back  ") + menuKey.Render("q") + menuSub.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive opens the scenario picker.
func RunInteractive(registry *scenario.Registry, base *config.Config) error {
	_, err := tea.NewProgram(NewMenu(registry, base), tea.WithAltScreen()).Run()
	return err
}
