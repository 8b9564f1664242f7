package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/akasprzok/parcoords/internal/host"
	"github.com/akasprzok/parcoords/internal/interact"
	"github.com/akasprzok/parcoords/internal/render"
	"github.com/akasprzok/parcoords/internal/scene"
	"github.com/akasprzok/parcoords/internal/tables"
	"github.com/akasprzok/parcoords/internal/tui"
)

const (
	// DefaultSVGWidth and DefaultSVGHeight size SVG output.
	DefaultSVGWidth  = 960
	DefaultSVGHeight = 500
)

type RenderCmd struct {
	SourceFlags `embed:""`

	Format string `name:"format" short:"o" help:"Output format." default:"svg" enum:"svg,text,table,json,yaml"`
	Width  int    `name:"width" help:"Chart width in pixels, or cells for text. Defaults to the terminal size for text."`
	Height int    `name:"height" help:"Chart height in pixels, or cells for text."`
	Output string `name:"output" help:"Write to this file instead of stdout." type:"path"`
	Hover  int    `name:"hover" help:"Draw the chart with this row hovered." default:"-1"`
}

func (r *RenderCmd) size() scene.Size {
	if r.Format == "text" {
		w, h := render.TerminalSize(tui.DefaultTerminalWidth, tui.DefaultTerminalHeight)
		if r.Width > 0 {
			w = r.Width
		}
		if r.Height > 0 {
			h = r.Height
		}
		return scene.Size{Width: float64(w), Height: float64(h - 1), Margin: render.TerminalMargin}
	}

	w, h := DefaultSVGWidth, DefaultSVGHeight
	if r.Width > 0 {
		w = r.Width
	}
	if r.Height > 0 {
		h = r.Height
	}
	return scene.Size{Width: float64(w), Height: float64(h), Margin: scene.DefaultMargin}
}

// frame is the scene as drawn after the hover transition has settled.
func (r *RenderCmd) frame(s *scene.Scene) (render.Frame, error) {
	f := render.Frame{Scene: s}
	if r.Hover < 0 {
		return f, nil
	}

	cfg := interact.Config{}
	if r.Format == "text" {
		cfg.TooltipOffset = tui.TooltipOffset
	}
	ctrl := interact.New(s, cfg)

	start := time.Time{}
	var at scene.Point
	if r.Hover < len(s.Paths) {
		if points := s.Paths[r.Hover].Points; len(points) > 0 {
			at = points[len(points)/2]
		}
	}
	if err := ctrl.HoverEnter(r.Hover, at, start); err != nil {
		return f, err
	}
	f.Styles = ctrl.Styles(start.Add(interact.TransitionDuration))
	f.Tooltip = ctrl.Tooltip()
	return f, nil
}

func (r *RenderCmd) Run(ctx *Context) error {
	src, err := r.Source(ctx)
	if err != nil {
		return err
	}

	fetchCtx, cancel := context.WithTimeout(context.Background(), ctx.Timeout)
	defer cancel()

	shim := host.New(src, r.size(), ctx.Logger)
	s, err := shim.Refresh(fetchCtx)
	if err != nil {
		return err
	}

	var w io.Writer = ctx.Stdout
	if r.Output != "" {
		f, err := os.Create(r.Output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch r.Format {
	case "json", "yaml":
		var b []byte
		if r.Format == "json" {
			b, err = render.ToJSON(s)
		} else {
			b, err = render.ToYAML(s)
		}
		if err != nil {
			return fmt.Errorf("encoding scene: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err

	case "table":
		_, err = fmt.Fprintln(w, tables.Rows(s).View())
		return err
	}

	frame, err := r.frame(s)
	if err != nil {
		return err
	}
	if r.Format == "svg" {
		return render.SVG(w, frame)
	}

	surface := render.NewTerminal()
	out := surface.Draw(frame)
	if legend := surface.Legend(s); legend != "" {
		out += "\n" + legend
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
