// Package scene describes a rendered parallel-coordinates chart as plain data.
// Surfaces (SVG, terminal) translate a Scene into their own draw calls.
package scene

import (
	"github.com/akasprzok/parcoords/internal/data"
)

// RowClass is the class every row path carries.
const RowClass = "line"

// Point is a position on the canvas, origin top-left.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Margin is the space reserved around the plotting area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargin leaves room for axis labels above and tick labels at the sides.
var DefaultMargin = Margin{Top: 30, Right: 10, Bottom: 30, Left: 10}

// Size is the outer size of the content area plus its margin.
type Size struct {
	Width, Height float64
	Margin        Margin
}

// InnerWidth is the width of the plotting area, never negative.
func (s Size) InnerWidth() float64 {
	return max(0, s.Width-s.Margin.Left-s.Margin.Right)
}

// InnerHeight is the height of the plotting area, never negative.
func (s Size) InnerHeight() float64 {
	return max(0, s.Height-s.Margin.Top-s.Margin.Bottom)
}

// Origin is the top-left corner of the plotting area in outer coordinates.
func (s Size) Origin() Point {
	return Point{X: s.Margin.Left, Y: s.Margin.Top}
}

// Tick is one labelled mark on an axis.
type Tick struct {
	Value float64
	Y     float64
	Label string
}

// Axis is the vertical axis of one measure.
type Axis struct {
	Measure string
	X       float64
	Top     float64
	Bottom  float64
	Ticks   []Tick
	Label   string
	LabelAt Point
}

// Style is how a path is stroked.
type Style struct {
	Stroke  string
	Opacity float64
}

// Path is the polyline of one row.
type Path struct {
	Row      int
	Points   []Point
	Classes  []string
	Group    string
	Category string
	Style    Style
	Fields   data.Row
}

// Segments returns the number of straight segments in the polyline.
func (p Path) Segments() int {
	return max(0, len(p.Points)-1)
}

// HasClass reports whether the path carries class c.
func (p Path) HasClass(c string) bool {
	for _, cls := range p.Classes {
		if cls == c {
			return true
		}
	}
	return false
}

// LegendEntry describes one color group.
type LegendEntry struct {
	Group string
	Label string
	Color string
}

// Scene is everything a surface needs to draw a chart. Coordinates of axes
// and paths are relative to Size.Origin().
type Scene struct {
	Size     Size
	Measures []string
	Axes     []Axis
	Paths    []Path
	Colored  bool
	Legend   []LegendEntry
}

// Group returns the indices of all paths in the given color group.
func (s *Scene) Group(group string) []int {
	var idx []int
	for i, p := range s.Paths {
		if p.Group == group {
			idx = append(idx, i)
		}
	}
	return idx
}
