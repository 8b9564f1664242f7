package render

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/akasprzok/parcoords/internal/palette"
	"github.com/akasprzok/parcoords/internal/scene"
)

// TerminalMargin fits the scene into a grid of cells: one row for axis
// labels and room on the left for tick labels.
var TerminalMargin = scene.Margin{Top: 2, Right: 2, Bottom: 1, Left: 8}

// AxisColor is the color used for chart axes.
var AxisColor = lipgloss.Color("#CCBB44")

// LabelColor is the color used for axis and tick labels.
var LabelColor = lipgloss.Color("#66CCEE")

// Terminal draws frames onto a grid of cells, one scene unit per cell.
type Terminal struct {
	// Background is blended with path strokes to show opacity.
	Background string

	AxisStyle    lipgloss.Style
	LabelStyle   lipgloss.Style
	TooltipStyle lipgloss.Style
}

// NewTerminal returns a terminal surface for a dark background.
func NewTerminal() Terminal {
	return Terminal{
		Background:   "#000000",
		AxisStyle:    lipgloss.NewStyle().Foreground(AxisColor),
		LabelStyle:   lipgloss.NewStyle().Foreground(LabelColor),
		TooltipStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
	}
}

// TerminalSize returns the size of the terminal on stdout, or the fallback
// when stdout is not a terminal.
func TerminalSize(fallbackWidth, fallbackHeight int) (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

// Draw renders f. Paths are drawn faintest first so highlighted rows end up
// on top.
func (t Terminal) Draw(f Frame) string {
	s := f.Scene
	w, h := int(s.Size.Width), int(s.Size.Height)
	if w <= 0 || h <= 0 {
		return ""
	}
	c := canvas.New(w, h)
	origin := s.Size.Origin()

	order := make([]int, len(s.Paths))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return f.Style(order[a]).Opacity < f.Style(order[b]).Opacity
	})
	for _, i := range order {
		style := f.Style(i)
		fg := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Blend(style.Stroke, t.Background, style.Opacity)))
		points := s.Paths[i].Points
		for j := 1; j < len(points); j++ {
			if !finite(points[j-1]) || !finite(points[j]) {
				continue
			}
			drawLine(&c, cellOf(points[j-1].Add(origin)), cellOf(points[j].Add(origin)), fg)
		}
	}

	for _, a := range s.Axes {
		x := int(math.Round(origin.X + a.X))
		top := int(math.Round(origin.Y + a.Top))
		bottom := int(math.Round(origin.Y + a.Bottom))
		for y := top; y <= bottom; y++ {
			c.SetCell(canvas.Point{X: x, Y: y}, canvas.NewCellWithStyle('│', t.AxisStyle))
		}

		lastRow := -1
		for _, tick := range a.Ticks {
			y := int(math.Round(origin.Y + tick.Y))
			if y == lastRow {
				continue
			}
			lastRow = y
			c.SetCell(canvas.Point{X: x, Y: y}, canvas.NewCellWithStyle('┤', t.AxisStyle))
			setText(&c, x-1-utf8.RuneCountInString(tick.Label), y, tick.Label, t.LabelStyle)
		}

		label := a.Label
		setText(&c, x-utf8.RuneCountInString(label)/2, max(0, top-1), label, t.LabelStyle)
	}

	if tip := f.Tooltip; tip.Visible && len(tip.Lines) > 0 {
		t.drawTooltip(&c, tip.At.Add(origin), tip.Lines, w, h)
	}

	return c.View()
}

// Legend lists the color groups of s, one per line.
func (t Terminal) Legend(s *scene.Scene) string {
	var b strings.Builder
	for i, e := range s.Legend {
		if i > 0 {
			b.WriteString("\n")
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color))
		b.WriteString(style.Render(fmt.Sprintf("%c %s", runes.FullBlock, e.Label)))
	}
	return b.String()
}

func (t Terminal) drawTooltip(c *canvas.Model, at scene.Point, lines []string, w, h int) {
	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	boxW, boxH := width+2, len(lines)+2
	x := clampInt(int(math.Round(at.X)), 0, max(0, w-boxW))
	y := clampInt(int(math.Round(at.Y)), 0, max(0, h-boxH))

	border := lipgloss.RoundedBorder()
	edge := func(s string) rune {
		r, _ := utf8.DecodeRuneInString(s)
		return r
	}
	for col := 0; col < boxW; col++ {
		for row := 0; row < boxH; row++ {
			r := ' '
			switch {
			case row == 0 && col == 0:
				r = edge(border.TopLeft)
			case row == 0 && col == boxW-1:
				r = edge(border.TopRight)
			case row == boxH-1 && col == 0:
				r = edge(border.BottomLeft)
			case row == boxH-1 && col == boxW-1:
				r = edge(border.BottomRight)
			case row == 0:
				r = edge(border.Top)
			case row == boxH-1:
				r = edge(border.Bottom)
			case col == 0:
				r = edge(border.Left)
			case col == boxW-1:
				r = edge(border.Right)
			}
			c.SetCell(canvas.Point{X: x + col, Y: y + row}, canvas.NewCellWithStyle(r, t.TooltipStyle))
		}
	}
	for i, l := range lines {
		setText(c, x+1, y+1+i, l, t.TooltipStyle)
	}
}

func setText(c *canvas.Model, x, y int, s string, style lipgloss.Style) {
	for _, r := range s {
		if x >= 0 {
			c.SetCell(canvas.Point{X: x, Y: y}, canvas.NewCellWithStyle(r, style))
		}
		x++
	}
}

func finite(p scene.Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func cellOf(p scene.Point) canvas.Point {
	return canvas.Point{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// drawLine plots a Bresenham line between two cells, picking the rune from
// the direction of each step.
func drawLine(c *canvas.Model, from, to canvas.Point, style lipgloss.Style) {
	dx := abs(to.X - from.X)
	dy := -abs(to.Y - from.Y)
	sx, sy := sign(to.X-from.X), sign(to.Y-from.Y)
	err := dx + dy

	x, y := from.X, from.Y
	for {
		e2 := 2 * err
		stepX, stepY := false, false
		if x != to.X || y != to.Y {
			if e2 >= dy {
				stepX = true
			}
			if e2 <= dx {
				stepY = true
			}
		}
		c.SetCell(canvas.Point{X: x, Y: y}, canvas.NewCellWithStyle(lineRune(stepX, stepY, sx, sy), style))
		if !stepX && !stepY {
			return
		}
		if stepX {
			err += dy
			x += sx
		}
		if stepY {
			err += dx
			y += sy
		}
	}
}

func lineRune(stepX, stepY bool, sx, sy int) rune {
	switch {
	case stepX && stepY && sx == sy:
		return '╲'
	case stepX && stepY:
		return '╱'
	case stepY:
		return '│'
	default:
		return '─'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
