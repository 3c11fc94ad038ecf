package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/flowdraw/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	tableHeaderStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// headerRow is the row index lipgloss tables pass for the header.
const headerRow = -1

// =============================================================================
// Rows
// =============================================================================

// taskRow is one task of a flow layout as shown by inspect.
type taskRow struct {
	ID      string
	Layer   int
	X, Y    float64
	Inputs  int
	Outputs int
}

// taskRows lists the tasks of l column by column, in layer order.
// Tasks without a layer (nodelink layouts) follow in workflow order.
func taskRows(l graph.Layout) []taskRow {
	ports := make(map[string][2]int, len(l.Workflow.Tasks))
	for _, t := range l.Workflow.Tasks {
		ports[t.ID] = [2]int{len(t.Inputs), len(t.Outputs)}
	}

	rows := make([]taskRow, 0, len(ports))
	seen := make(map[string]bool, len(ports))
	for i, layer := range l.Layers {
		for _, id := range layer {
			p := l.Positions[id]
			rows = append(rows, taskRow{
				ID: id, Layer: i, X: p[0], Y: p[1],
				Inputs: ports[id][0], Outputs: ports[id][1],
			})
			seen[id] = true
		}
	}
	for _, t := range l.Workflow.Tasks {
		if !seen[t.ID] {
			rows = append(rows, taskRow{ID: t.ID, Layer: -1, Inputs: len(t.Inputs), Outputs: len(t.Outputs)})
		}
	}
	return rows
}

// linksOf returns the paths that start or end at id.
func linksOf(l graph.Layout, id string) []graph.Path {
	var out []graph.Path
	for _, p := range l.Paths {
		if p.Source == id || p.Target == id {
			out = append(out, p)
		}
	}
	return out
}

// =============================================================================
// Tables
// =============================================================================

// renderTaskTable draws rows as a table; the row at cursor is highlighted.
// A negative cursor highlights nothing.
func renderTaskTable(rows []taskRow, cursor int) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		layer := "—"
		pos := "—"
		if r.Layer >= 0 {
			layer = fmt.Sprint(r.Layer)
			pos = fmt.Sprintf("%.1f, %.1f", r.X, r.Y)
		}
		data[i] = []string{marker, r.ID, layer, pos, fmt.Sprintf("%d/%d", r.Inputs, r.Outputs)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Task", "Layer", "Position", "In/Out").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow:
				return tableHeaderStyle
			case row == cursor:
				return listSelectedStyle
			case col == 2 || col == 3:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// renderLinkTable draws routed links; cut links are highlighted.
func renderLinkTable(paths []graph.Path) string {
	data := make([][]string, len(paths))
	for i, p := range paths {
		cut := ""
		if p.Cut {
			cut = "cut"
		}
		data[i] = []string{
			p.Source + "." + p.SourcePort,
			p.Target + "." + p.TargetPort,
			p.Strategy,
			cut,
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("From", "To", "Path", "").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return tableHeaderStyle
			}
			if paths[row].Cut {
				return lipgloss.NewStyle().Foreground(colorYellow)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// =============================================================================
// InspectModel - Interactive layout browser
// =============================================================================

// InspectModel is the bubbletea model for browsing a layout task by task.
// The links of the selected task are shown below the task table.
type InspectModel struct {
	Layout graph.Layout
	Rows   []taskRow
	Cursor int
	Height int
	Offset int
}

// NewInspectModel creates a new inspect model.
func NewInspectModel(l graph.Layout) InspectModel {
	return InspectModel{
		Layout: l,
		Rows:   taskRows(l),
		Height: 15,
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height / 2
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout"))
	b.WriteString(" ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d tasks · %d layers · %d cut", len(m.Rows), len(m.Layout.Layers), m.Layout.CutCount())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  (no tasks)"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))
	b.WriteString(renderTaskTable(m.Rows[m.Offset:end], m.Cursor-m.Offset))
	b.WriteString("\n\n")

	selected := m.Rows[m.Cursor]
	links := linksOf(m.Layout, selected.ID)
	b.WriteString(StyleHighlight.Render(selected.ID))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d links", len(links))))
	b.WriteString("\n")
	if len(links) > 0 {
		b.WriteString(renderLinkTable(links))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}
