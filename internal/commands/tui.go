package commands

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/akasprzok/parcoords/internal/host"
	"github.com/akasprzok/parcoords/internal/render"
	"github.com/akasprzok/parcoords/internal/scene"
	"github.com/akasprzok/parcoords/internal/tui"
)

// TUICmd is the Kong command for the interactive TUI mode.
type TUICmd struct {
	SourceFlags `embed:""`

	Refresh time.Duration `name:"refresh" help:"Refetch the rows at this interval. Disabled when zero."`
}

// Run starts the interactive TUI.
func (t *TUICmd) Run(ctx *Context) error {
	src, err := t.Source(ctx)
	if err != nil {
		return err
	}

	w, h := render.TerminalSize(tui.DefaultTerminalWidth, tui.DefaultTerminalHeight)
	shim := host.New(src, tui.ChartSize(w, h), ctx.Logger)
	shim.OnDataChanged(func(s *scene.Scene, err error) {
		if err != nil {
			return
		}
		ctx.Logger.Info("data changed", "rows", len(s.Paths), "measures", len(s.Measures))
	})
	shim.OnResize(func(s *scene.Scene, err error) {
		if err != nil {
			ctx.Logger.Warn("resize render failed", "error", err)
		}
	})

	model := tui.New(shim, tui.Options{
		Timeout: ctx.Timeout,
		Refresh: t.Refresh,
		Logger:  ctx.Logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	_, err = p.Run()
	return err
}
