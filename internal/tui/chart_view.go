package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jbonatakis/skinwell/internal/category"
	"github.com/jbonatakis/skinwell/internal/chart"
	"github.com/jbonatakis/skinwell/internal/surface"
)

const (
	// chartTop is the screen row of the first chart row, below the header.
	chartTop       = 1
	minChartHeight = 6
)

// chartRows leaves room for the header, the status line, the bottom bar and
// one spare row so the frame never fills the terminal exactly.
func (m Model) chartRows() int {
	rows := m.windowHeight - 4
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) chartGrid() chart.Grid {
	return chart.Fit(m.windowWidth, m.chartRows())
}

func (m Model) renderChartView() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	header := headerStyle.Render("skinwell")
	if m.session.ID != "" {
		header += " " + mutedStyle.Render(fmt.Sprintf("%s · %s", m.session.Patient, shortID(m.session.ID)))
	}

	frame := chart.Raster(m.surface.Scene(), m.chartGrid())
	lines := make([]string, 0, len(frame.Lines)+2)
	lines = append(lines, truncateStyled(header, m.windowWidth))
	lines = append(lines, frame.Lines...)
	lines = append(lines, RenderActionOutput(m.actionOutput, m.windowWidth))
	return strings.Join(lines, "\n")
}

// handleChartClick resolves a terminal cell against the chart. Label text is
// checked first because it may overhang its pill in cell space; any cell of
// the chart area that hits nothing counts as background.
func (m Model) handleChartClick(x, y int) (Model, tea.Cmd) {
	row := y - chartTop
	if row < 0 || row >= m.chartRows() || x < 0 || x >= m.windowWidth {
		return m, nil
	}
	grid := m.chartGrid()
	frame := chart.Raster(m.surface.Scene(), grid)

	var ev surface.Event
	if id, ok := frame.LabelAt(x, row); ok {
		ev = m.surface.Select(id)
	} else {
		hit, clicked := m.surface.Click(grid.CellCenter(x, row))
		ev = clicked
		if hit.Kind == surface.HitNone {
			ev = m.surface.Deselect()
		}
	}
	m.actionOutput = nil
	return m, eventCmd(ev)
}

func (m Model) handleChartKey(key string) (Model, tea.Cmd) {
	active := m.surface.ActiveID()
	switch key {
	case "q":
		return m, tea.Quit
	case "right", "l", "tab":
		return m, eventCmd(m.surface.Select(neighbor(active, 1)))
	case "left", "h", "shift+tab":
		return m, eventCmd(m.surface.Select(neighbor(active, -1)))
	case "enter", " ":
		if active == "" {
			return m, eventCmd(m.surface.Select(category.At(0).ID))
		}
		return m, emit(ViewDetailsMsg{CategoryID: active})
	case "d":
		if active == "" {
			return m, nil
		}
		return m, emit(ViewDetailsMsg{CategoryID: active})
	case "+", "=", "up", "k":
		if active == "" {
			return m, nil
		}
		return m, eventCmd(m.surface.Adjust(active, 1))
	case "-", "_", "down", "j":
		if active == "" {
			return m, nil
		}
		return m, eventCmd(m.surface.Adjust(active, -1))
	case "esc":
		return m, eventCmd(m.surface.Deselect())
	case "n":
		form := NewSessionForm()
		form.SetSize(m.windowWidth, m.windowHeight)
		m.sessionForm = &form
		m.actionMode = ActionModeNewSession
		return m, nil
	}
	return m, nil
}

// neighbor steps through the registry from the active category, wrapping.
// With nothing active it starts at the first or last category.
func neighbor(active string, step int) string {
	n := category.Count()
	idx := category.Index(active)
	if idx < 0 {
		if step > 0 {
			return category.At(0).ID
		}
		return category.At(n - 1).ID
	}
	return category.At(((idx+step)%n + n) % n).ID
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
