package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/flowdraw/pkg/graph"
)

func inspectLayout() graph.Layout {
	return graph.Layout{
		VizType: graph.VizTypeFlow,
		Workflow: graph.Workflow{
			Tasks: []graph.Task{
				{ID: "a", Inputs: []string{}, Outputs: []string{"x"}},
				{ID: "b", Inputs: []string{"x"}, Outputs: []string{"y"}},
				{ID: "c", Inputs: []string{"y"}, Outputs: []string{}},
			},
		},
		Layers:    [][]string{{"a"}, {"b", "c"}},
		Positions: map[string][2]float64{"a": {50, 0}, "b": {750, 55}, "c": {750, -55}},
		Paths: []graph.Path{
			{Source: "a", SourcePort: "x", Target: "b", TargetPort: "x", Strategy: "forward"},
			{Source: "b", SourcePort: "y", Target: "c", TargetPort: "y", Strategy: "back", Cut: true},
		},
	}
}

func TestTaskRows(t *testing.T) {
	rows := taskRows(inspectLayout())
	var ids []string
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	if got := strings.Join(ids, ","); got != "a,b,c" {
		t.Errorf("row order = %s, want a,b,c", got)
	}
	if rows[1].Layer != 1 || rows[1].X != 750 || rows[1].Inputs != 1 || rows[1].Outputs != 1 {
		t.Errorf("rows[1] = %+v", rows[1])
	}
}

func TestTaskRowsWithoutLayers(t *testing.T) {
	l := inspectLayout()
	l.Layers = nil
	rows := taskRows(l)
	if len(rows) != 3 || rows[0].Layer != -1 {
		t.Errorf("rows = %+v, want 3 unlayered rows", rows)
	}
}

func TestLinksOf(t *testing.T) {
	l := inspectLayout()
	if got := len(linksOf(l, "b")); got != 2 {
		t.Errorf("linksOf(b) = %d links, want 2", got)
	}
	if got := len(linksOf(l, "a")); got != 1 {
		t.Errorf("linksOf(a) = %d links, want 1", got)
	}
}

func TestInspectModelNavigation(t *testing.T) {
	var m tea.Model = NewInspectModel(inspectLayout())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.(InspectModel).Cursor; got != 2 {
		t.Errorf("Cursor = %d, want 2 (clamped)", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.(InspectModel).Cursor; got != 1 {
		t.Errorf("Cursor = %d, want 1", got)
	}

	view := m.View()
	for _, want := range []string{"Layout", "b", "2 links", "[2/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q should quit")
	}
}

func TestInspectModelEmpty(t *testing.T) {
	m := NewInspectModel(graph.Layout{})
	if !strings.Contains(m.View(), "no tasks") {
		t.Error("empty layout should say so")
	}
}
