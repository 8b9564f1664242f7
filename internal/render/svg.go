// Package render draws scenes as SVG documents, terminal text and encoded
// data.
package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/akasprzok/parcoords/internal/interact"
	"github.com/akasprzok/parcoords/internal/scene"
)

// Frame is one drawable state of a chart: the scene, the style of each path
// at the moment of drawing and the tooltip.
type Frame struct {
	Scene *scene.Scene

	// Styles overrides the path styles. Nil draws every path with its
	// assigned style.
	Styles  []scene.Style
	Tooltip interact.Tooltip
}

// Style returns the style of path i in f.
func (f Frame) Style(i int) scene.Style {
	if i < len(f.Styles) {
		return f.Styles[i]
	}
	return f.Scene.Paths[i].Style
}

const svgTemplate = `<svg width="{{.Width}}" height="{{.Height}}" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <style>
      .axis { font: 10px sans-serif; fill: #000000; }
      .axis line { stroke: #000000; shape-rendering: crispEdges; }
      .axis-label { font: 12px sans-serif; text-anchor: middle; fill: #000000; }
      .line { fill: none; stroke-width: 1.5px; }
      .legend, .tooltip { font: 11px sans-serif; fill: #000000; }
    </style>
  </defs>
  <g transform="translate({{.Left}},{{.Top}})">
    {{range .Paths}}<path class="{{.Class}}" stroke="{{.Stroke}}" stroke-opacity="{{.Opacity}}" d="{{.D}}"></path>
    {{end}}
    {{range .Axes}}<g class="axis" transform="translate({{.X}},0)">
      <line x1="0" x2="0" y1="{{.Top}}" y2="{{.Bottom}}"></line>
      {{range .Ticks}}<line x1="0" x2="-6" y1="{{.Y}}" y2="{{.Y}}"></line><text x="-9" y="{{.Y}}" dy="0.32em" text-anchor="end">{{.Label}}</text>
      {{end}}<text class="axis-label" x="0" y="{{.LabelY}}">{{.Label}}</text>
    </g>
    {{end}}
  </g>
  {{if .Legend}}<g class="legend" transform="translate({{.LegendX}},{{.Top}})">
    {{range .Legend}}<rect class="{{.Group}}" x="0" y="{{.Y}}" width="10" height="10" fill="{{.Color}}"></rect><text x="14" y="{{.TextY}}">{{.Label}}</text>
    {{end}}
  </g>{{end}}
  {{with .Tooltip}}<g class="tooltip" opacity="{{.Opacity}}" transform="translate({{.X}},{{.Y}})">
    <rect x="0" y="0" width="{{.Width}}" height="{{.Height}}" fill="#FFFFFF" stroke="#000000"></rect>
    {{range .Lines}}<text x="4" y="{{.Y}}">{{.Text}}</text>
    {{end}}
  </g>{{end}}
</svg>
`

var svgTmpl = template.Must(template.New("svg").Parse(svgTemplate))

type svgPath struct {
	Class   string
	Stroke  string
	Opacity string
	D       string
}

type svgTick struct {
	Y     string
	Label string
}

type svgAxis struct {
	X      string
	Top    string
	Bottom string
	Ticks  []svgTick
	Label  string
	LabelY string
}

type svgLegend struct {
	Group string
	Label string
	Color string
	Y     string
	TextY string
}

type svgLine struct {
	Y    string
	Text string
}

type svgTooltip struct {
	X, Y          string
	Width, Height string
	Opacity       string
	Lines         []svgLine
}

type svgData struct {
	Width, Height string
	Left, Top     string
	Paths         []svgPath
	Axes          []svgAxis
	Legend        []svgLegend
	LegendX       string
	Tooltip       *svgTooltip
}

const (
	legendRowHeight  = 14
	tooltipLineRows  = 14
	tooltipCharWidth = 6.5
)

// SVG writes f as a standalone SVG document.
func SVG(w io.Writer, f Frame) error {
	s := f.Scene
	d := svgData{
		Width:   num(s.Size.Width),
		Height:  num(s.Size.Height),
		Left:    num(s.Size.Margin.Left),
		Top:     num(s.Size.Margin.Top),
		LegendX: num(s.Size.Width - s.Size.Margin.Right - 80),
	}

	for i, p := range s.Paths {
		style := f.Style(i)
		d.Paths = append(d.Paths, svgPath{
			Class:   strings.Join(p.Classes, " "),
			Stroke:  style.Stroke,
			Opacity: num(style.Opacity),
			D:       pathData(p.Points),
		})
	}

	for _, a := range s.Axes {
		ax := svgAxis{
			X:      num(a.X),
			Top:    num(a.Top),
			Bottom: num(a.Bottom),
			Label:  a.Label,
			LabelY: num(a.LabelAt.Y),
		}
		for _, t := range a.Ticks {
			ax.Ticks = append(ax.Ticks, svgTick{Y: num(t.Y), Label: t.Label})
		}
		d.Axes = append(d.Axes, ax)
	}

	for i, e := range s.Legend {
		y := float64(i * legendRowHeight)
		d.Legend = append(d.Legend, svgLegend{
			Group: e.Group,
			Label: e.Label,
			Color: e.Color,
			Y:     num(y),
			TextY: num(y + 9),
		})
	}

	if t := f.Tooltip; t.Visible && len(t.Lines) > 0 {
		widest := 0
		tip := &svgTooltip{Opacity: num(t.Opacity)}
		for i, line := range t.Lines {
			widest = max(widest, len([]rune(line)))
			tip.Lines = append(tip.Lines, svgLine{Y: num(float64((i + 1) * tooltipLineRows)), Text: line})
		}
		boxW := float64(widest)*tooltipCharWidth + 8
		boxH := float64(len(t.Lines)*tooltipLineRows + 6)
		tip.Width, tip.Height = num(boxW), num(boxH)

		// The tooltip is drawn outside the plot group and kept on the canvas.
		at := t.At.Add(s.Size.Origin())
		tip.X = num(clamp(at.X, 0, max(0, s.Size.Width-boxW)))
		tip.Y = num(clamp(at.Y, 0, max(0, s.Size.Height-boxH)))
		d.Tooltip = tip
	}

	if err := svgTmpl.Execute(w, d); err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

// pathData is the SVG path of a polyline with straight segments.
func pathData(points []scene.Point) string {
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString("L")
		}
		b.WriteString(num(p.X))
		b.WriteString(",")
		b.WriteString(num(p.Y))
	}
	return b.String()
}

// num formats v with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}
