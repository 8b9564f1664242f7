package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/akasprzok/parcoords/internal/interact"
	"github.com/akasprzok/parcoords/internal/scene"
	"github.com/akasprzok/parcoords/internal/tables"
	"github.com/akasprzok/parcoords/internal/timers"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.fetch()}
	if m.refresh > 0 {
		cmds = append(cmds, m.scheduleRefresh())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case dataMsg:
		return m.handleData(msg)

	case timerMsg:
		// Timers of a replaced scene reuse IDs of the new controller.
		if m.ctrl == nil || msg.generation != m.generation || !m.ctrl.Fire(msg.id, m.now()) {
			return m, nil
		}
		cmd := m.animate()
		return m, cmd

	case frameMsg:
		if m.ctrl != nil && m.ctrl.Animating(m.now()) {
			return m, frameTick()
		}
		m.animating = false
		return m, nil

	case refreshTickMsg:
		if m.refreshing {
			return m, m.scheduleRefresh()
		}
		m.refreshing = true
		return m, tea.Batch(m.fetch(), m.scheduleRefresh(), m.spinner.Tick)

	case spinner.TickMsg:
		if m.state == StateLoading || m.refreshing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// fetch refreshes the shim's rows off the event loop.
func (m Model) fetch() tea.Cmd {
	shim, timeout := m.shim, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()
		s, err := shim.Refresh(ctx)
		return dataMsg{scene: s, err: err, duration: time.Since(start)}
	}
}

func (m Model) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.refresh, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func frameTick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// schedule turns controller timers into Bubble Tea ticks.
func (m Model) schedule(armed []timers.Timer) tea.Cmd {
	gen := m.generation
	cmds := make([]tea.Cmd, 0, len(armed))
	for _, t := range armed {
		id := t.ID
		cmds = append(cmds, tea.Tick(t.Delay, func(time.Time) tea.Msg {
			return timerMsg{generation: gen, id: id}
		}))
	}
	return tea.Batch(cmds...)
}

// animate starts frame ticks if a transition is running and none are pending.
func (m *Model) animate() tea.Cmd {
	if m.animating || m.ctrl == nil || !m.ctrl.Animating(m.now()) {
		return nil
	}
	m.animating = true
	return frameTick()
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	s, err := m.shim.Resize(m.chartSize())
	if m.state == StateLoading {
		return m, nil
	}
	if err != nil {
		m.state, m.err = StateError, err
		return m, nil
	}
	m = m.setScene(s)
	return m, nil
}

func (m Model) handleData(msg dataMsg) (tea.Model, tea.Cmd) {
	m.refreshing = false
	m.lastFetch = msg.duration
	if msg.err != nil {
		m.logger.Error("loading chart", "error", msg.err)
		m.state, m.err = StateError, msg.err
		return m, nil
	}
	m.logger.Debug("chart loaded", "rows", len(msg.scene.Paths), "took", msg.duration)
	m.state, m.err = StateResults, nil

	// A resize may have happened while the fetch ran.
	if size := m.chartSize(); size != msg.scene.Size {
		s, err := m.shim.Resize(size)
		if err != nil {
			m.state, m.err = StateError, err
			return m, nil
		}
		msg.scene = s
	}
	m = m.setScene(msg.scene)
	return m, nil
}

// setScene replaces the scene on screen. Hover state starts over.
func (m Model) setScene(s *scene.Scene) Model {
	m.scene = s
	m.ctrl = interact.New(s, interact.Config{TooltipOffset: TooltipOffset})
	m.generation++
	m.animating = false
	m.rowsTable = tables.Rows(s).WithPageSize(TableMaxRows).Focused(m.focusedPane == PaneRows)
	return m
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		if m.refreshing {
			return m, nil
		}
		m.refreshing = true
		return m, tea.Batch(m.fetch(), m.spinner.Tick)
	}

	if m.state != StateResults || m.scene == nil {
		return m, nil
	}

	switch msg.String() {
	case "tab":
		if m.focusedPane == PaneRows {
			return m.leaveRows()
		}
		if len(m.scene.Paths) == 0 {
			return m, nil
		}
		m.focusedPane = PaneRows
		m.rowsTable = m.rowsTable.Focused(true)
		return m.hoverHighlightedRow()
	case "esc":
		if m.focusedPane == PaneRows {
			return m.leaveRows()
		}
		return m, nil
	}

	if m.focusedPane != PaneRows {
		return m, nil
	}

	var tableCmd tea.Cmd
	switch msg.String() {
	case "j":
		m.rowsTable, tableCmd = m.rowsTable.Update(tea.KeyMsg{Type: tea.KeyDown})
	case "k":
		m.rowsTable, tableCmd = m.rowsTable.Update(tea.KeyMsg{Type: tea.KeyUp})
	case "h":
		m.rowsTable, tableCmd = m.rowsTable.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	case "l":
		m.rowsTable, tableCmd = m.rowsTable.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	default:
		m.rowsTable, tableCmd = m.rowsTable.Update(msg)
	}

	next, hoverCmd := m.hoverHighlightedRow()
	return next, tea.Batch(tableCmd, hoverCmd)
}

func (m Model) leaveRows() (tea.Model, tea.Cmd) {
	m.focusedPane = PaneChart
	m.rowsTable = m.rowsTable.Focused(false)
	return m, m.schedule(m.ctrl.HoverExit(m.now()))
}

// hoverHighlightedRow hovers the row under the table cursor, pointing at the
// middle of its path.
func (m Model) hoverHighlightedRow() (tea.Model, tea.Cmd) {
	idx, ok := tables.RowIndex(m.rowsTable.HighlightedRow())
	if !ok || idx < 0 || idx >= len(m.scene.Paths) {
		return m, nil
	}
	if cur, hovering := m.ctrl.Hovered(); hovering && cur == idx {
		return m, nil
	}
	points := m.scene.Paths[idx].Points
	var at scene.Point
	if len(points) > 0 {
		at = points[len(points)/2]
	}
	if err := m.ctrl.HoverEnter(idx, at, m.now()); err != nil {
		m.logger.Warn("hover", "error", err)
		return m, nil
	}
	cmd := m.animate()
	return m, cmd
}

// handleMouse turns pointer motion over the chart into hover enter and exit.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state != StateResults || m.ctrl == nil || m.focusedPane == PaneRows {
		return m, nil
	}
	if msg.Action != tea.MouseActionMotion {
		return m, nil
	}

	origin := m.scene.Size.Origin()
	p := scene.Point{
		X: float64(msg.X-chartLeft) - origin.X,
		Y: float64(msg.Y-chartTop) - origin.Y,
	}
	now := m.now()

	idx, hit := m.scene.HitTest(p, HoverTolerance)
	cur, hovering := m.ctrl.Hovered()
	switch {
	case hit && (!hovering || cur != idx):
		if err := m.ctrl.HoverEnter(idx, p, now); err != nil {
			m.logger.Warn("hover", "error", err)
			return m, nil
		}
		cmd := m.animate()
		return m, cmd
	case !hit && hovering:
		cmd := tea.Batch(m.schedule(m.ctrl.HoverExit(now)), m.animate())
		return m, cmd
	}
	return m, nil
}

func (m Model) statusText() string {
	switch m.state {
	case StateLoading:
		return fmt.Sprintf("%s loading", m.spinner.View())
	case StateError:
		return "error"
	}
	text := fmt.Sprintf("%d rows, %d measures, fetched in %s", len(m.scene.Paths), len(m.scene.Measures), m.lastFetch.Round(time.Millisecond))
	if m.refreshing {
		text = m.spinner.View() + " " + text
	}
	return text
}
