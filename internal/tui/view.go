package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/akasprzok/parcoords/internal/render"
)

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(BarStyle.Width(m.width).Render(m.statusText()))
	s.WriteString("\n")

	switch m.state {
	case StateLoading:
		s.WriteString(lipgloss.NewStyle().Padding(2, 4).Render(m.spinner.View() + " Fetching rows..."))
		s.WriteString("\n")
	case StateError:
		s.WriteString(lipgloss.NewStyle().Padding(1, 2).Render(ErrorStyle.Render("Error: ") + m.err.Error()))
		s.WriteString("\n")
	case StateResults:
		s.WriteString(m.renderResults())
	}

	s.WriteString(m.renderHelpBar())
	return s.String()
}

func (m Model) renderResults() string {
	var s strings.Builder

	chartStyle := paneStyle
	if m.focusedPane == PaneChart {
		chartStyle = chartStyle.BorderForeground(focusedBorder)
	}
	frame := render.Frame{
		Scene:   m.scene,
		Styles:  m.ctrl.Styles(m.now()),
		Tooltip: m.ctrl.Tooltip(),
	}
	s.WriteString(chartStyle.Render(m.surface.Draw(frame)))
	s.WriteString("\n")

	if legend := m.surface.Legend(m.scene); legend != "" {
		s.WriteString(" ")
		s.WriteString(strings.ReplaceAll(legend, "\n", "  "))
	} else if len(m.scene.Paths) == 0 {
		s.WriteString(MutedStyle.Render(" No rows"))
	}
	s.WriteString("\n")

	if len(m.scene.Paths) > 0 {
		tableStyle := paneStyle
		if m.focusedPane == PaneRows {
			tableStyle = tableStyle.BorderForeground(focusedBorder)
		}
		s.WriteString(tableStyle.Render(m.rowsTable.View()))
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) renderHelpBar() string {
	var help string
	if m.focusedPane == PaneRows {
		help = "j/k: hover row | h/l: page | tab/esc: back to chart | r: refresh | q: quit"
	} else {
		help = "mouse: hover row | tab: rows | r: refresh | q: quit"
	}
	return BarStyle.Width(m.width).Render(help)
}
