package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/sparks/internal/config"
	"github.com/san-kum/sparks/internal/scenario"
	"github.com/san-kum/sparks/internal/sim"
)

func newTestModel(t *testing.T, name string) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	reg := scenario.NewRegistry()
	m, err := NewModel(name, func() (scenario.Scenario, error) { return reg.Get(name, cfg) }, sim.FromConfig(cfg))
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_TickSteps(t *testing.T) {
	m := newTestModel(t, "bounce")
	for i := 0; i < 10; i++ {
		m = send(m, TickMsg(time.Now()))
	}

	if m.steps != 10 {
		t.Errorf("expected 10 steps, got %d", m.steps)
	}
	if len(m.countHistory) != 10 {
		t.Errorf("expected 10 history samples, got %d", len(m.countHistory))
	}
	if m.drawn == 0 {
		t.Error("expected sprites on the canvas")
	}
}

func TestModel_PauseAndReset(t *testing.T) {
	m := newTestModel(t, "fountain")
	m = send(m, TickMsg(time.Now()))
	m = send(m, key(" "))
	if m.running {
		t.Fatal("space should pause")
	}

	m = send(m, TickMsg(time.Now()))
	if m.steps != 1 {
		t.Errorf("paused model stepped: %d", m.steps)
	}

	m = send(m, key("r"))
	if m.steps != 0 || m.t != 0 {
		t.Errorf("reset left steps=%d t=%f", m.steps, m.t)
	}
}

func TestModel_RacePress(t *testing.T) {
	m := newTestModel(t, "race")
	m = send(m, key("p"))
	m = send(m, TickMsg(time.Now()))

	view := m.View()
	for _, name := range []string{"Red", "Purple*"} {
		if !strings.Contains(view, name) {
			t.Errorf("race view missing %s", name)
		}
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, "bounce")
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModel_FactoryError(t *testing.T) {
	_, err := NewModel("broken", func() (scenario.Scenario, error) {
		return nil, errors.New("no such scenario")
	}, sim.DefaultConfig())
	if err == nil {
		t.Error("expected factory error")
	}
}

func TestModel_ViewShowsStatus(t *testing.T) {
	m := newTestModel(t, "bounce")
	if !strings.Contains(m.View(), "RUNNING") {
		t.Error("expected running status")
	}
	m = send(m, key(" "))
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected paused status")
	}
}

func TestNextTheme(t *testing.T) {
	defer SetTheme(ThemeEmber.Name)

	seen := map[string]bool{CurrentTheme.Name: true}
	for range Themes {
		NextTheme()
		seen[CurrentTheme.Name] = true
	}
	if len(seen) != len(Themes) {
		t.Errorf("cycled through %d of %d themes", len(seen), len(Themes))
	}
	if GetTheme("missing").Name != ThemeEmber.Name {
		t.Error("unknown theme should fall back to ember")
	}
}

func TestMenu_SelectScenario(t *testing.T) {
	menu := NewMenu(scenario.NewRegistry(), config.DefaultConfig())

	next, _ := menu.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m := next.(Menu)
	if m.state != statePreset || m.selected != m.scenarios[0] {
		t.Fatalf("enter should open presets, state=%d selected=%q", m.state, m.selected)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Menu)
	if m.state != stateSim {
		t.Fatalf("expected live view, state=%d err=%v", m.state, m.err)
	}
	if cmd == nil {
		t.Error("expected tick command")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(Menu).state != statePreset {
		t.Error("esc should leave the live view")
	}
}
