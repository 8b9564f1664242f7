// Package tui is the interactive terminal chart.
package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	teatable "github.com/evertras/bubble-table/table"

	"github.com/akasprzok/parcoords/internal/host"
	"github.com/akasprzok/parcoords/internal/interact"
	"github.com/akasprzok/parcoords/internal/render"
	"github.com/akasprzok/parcoords/internal/scene"
	"github.com/akasprzok/parcoords/internal/timers"
)

// State is the loading state of the chart.
type State int

const (
	StateLoading State = iota
	StateResults
	StateError
)

// FocusedPane tracks which pane has focus.
type FocusedPane int

const (
	PaneChart FocusedPane = iota
	PaneRows
)

// TooltipOffset places the tooltip box above and right of the pointer cell.
var TooltipOffset = scene.Point{X: 2, Y: -4}

// dataMsg carries the result of a refresh.
type dataMsg struct {
	scene    *scene.Scene
	err      error
	duration time.Duration
}

// timerMsg is sent when a controller timer is due. generation names the
// scene whose controller armed it.
type timerMsg struct {
	generation uint64
	id         timers.ID
}

// frameMsg redraws a running transition.
type frameMsg time.Time

// refreshTickMsg triggers a periodic refetch.
type refreshTickMsg struct{}

// Options configure the TUI. Zero fields take defaults.
type Options struct {
	Timeout time.Duration
	Refresh time.Duration
	Logger  *slog.Logger
	Now     func() time.Time
}

// Model is the Bubble Tea model of the interactive chart.
type Model struct {
	shim    *host.Shim
	timeout time.Duration
	refresh time.Duration
	logger  *slog.Logger
	now     func() time.Time

	state      State
	err        error
	refreshing bool
	lastFetch  time.Duration

	scene      *scene.Scene
	ctrl       *interact.Controller
	generation uint64
	surface render.Terminal

	rowsTable   teatable.Model
	focusedPane FocusedPane
	animating   bool

	width   int
	height  int
	spinner spinner.Model
}

// New creates a model that draws the chart held by shim.
func New(shim *host.Shim, opts Options) Model {
	if opts.Timeout <= 0 {
		opts.Timeout = time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return Model{
		shim:    shim,
		timeout: opts.Timeout,
		refresh: opts.Refresh,
		logger:  opts.Logger,
		now:     opts.Now,
		state:   StateLoading,
		surface: render.NewTerminal(),
		spinner: NewLoadingSpinner(),
		width:   DefaultTerminalWidth,
		height:  DefaultTerminalHeight,
	}
}

func (m Model) chartSize() scene.Size {
	return ChartSize(m.width, m.height)
}

// ChartSize is the scene size that fits a terminal of the given size next to
// the status bar, legend, row table and help bar.
func ChartSize(termWidth, termHeight int) scene.Size {
	width := termWidth - ChartWidthPadding
	height := termHeight - ChromeLines - ChartBorderLines - TableMaxRows - TableChromeLines
	return scene.Size{
		Width:  float64(max(width, MinChartWidth)),
		Height: float64(max(height, MinChartHeight)),
		Margin: render.TerminalMargin,
	}
}

// Scene returns the scene on screen, nil before the first successful load.
func (m Model) Scene() *scene.Scene {
	return m.scene
}

// Controller returns the hover controller of the scene on screen.
func (m Model) Controller() *interact.Controller {
	return m.ctrl
}

// State returns the loading state.
func (m Model) State() State {
	return m.state
}
