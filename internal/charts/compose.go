package charts

import (
	"errors"
	"fmt"

	"github.com/akasprzok/parcoords/internal/data"
	"github.com/akasprzok/parcoords/internal/palette"
	"github.com/akasprzok/parcoords/internal/scale"
	"github.com/akasprzok/parcoords/internal/scene"
)

// ErrTooFewMeasures is returned when the rows carry fewer than MinMeasures
// measure fields.
var ErrTooFewMeasures = errors.New("too few measures")

// RowError reports the row that could not be placed on the chart.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Input is everything a render pass depends on.
type Input struct {
	Rows      []data.Row
	Encodings data.EncodingMap
	Size      scene.Size

	// Schema lists the field names when there may be no rows to take them
	// from. It is ignored when Rows is not empty.
	Schema []string
}

// Measures returns the measure names for in: every field except the
// dimension and color fields, in the order of the first row.
func (in Input) Measures() []string {
	if len(in.Rows) > 0 {
		return in.Encodings.Measures(in.Rows[0])
	}
	row := make(data.Row, 0, len(in.Schema))
	for _, name := range in.Schema {
		row = append(row, data.Field{Name: name})
	}
	return in.Encodings.Measures(row)
}

// Compose builds the scene for one render pass. It is a pure function of in:
// scales are rebuilt from scratch every time.
func Compose(in Input) (*scene.Scene, error) {
	s := &scene.Scene{
		Size:    in.Size,
		Colored: in.Encodings.HasColor(),
	}
	if len(in.Rows) == 0 && len(in.Schema) == 0 {
		return s, nil
	}

	measures := in.Measures()
	if len(measures) < MinMeasures {
		return nil, fmt.Errorf("%w: got %d, want at least %d", ErrTooFewMeasures, len(measures), MinMeasures)
	}
	s.Measures = measures

	width, height := in.Size.InnerWidth(), in.Size.InnerHeight()

	var colors *palette.Scale
	if s.Colored {
		colors = colorScale(in.Rows, in.Encodings.Color())
		s.Legend = legend(colors)
	}

	ys, err := measureScales(in.Rows, measures, height)
	if err != nil {
		return nil, err
	}
	x := scale.NewPoint(measures, 0, width)

	s.Paths = make([]scene.Path, 0, len(in.Rows))
	for i, row := range in.Rows {
		points, err := scene.PathPoints(row, measures, x, ys)
		if err != nil {
			return nil, &RowError{Row: i, Err: err}
		}
		path := scene.Path{
			Row:     i,
			Points:  points,
			Classes: []string{scene.RowClass},
			Style:   scene.Style{Stroke: palette.DefaultStroke, Opacity: 1},
			Fields:  row,
		}
		if s.Colored {
			v, _ := row.Get(in.Encodings.Color())
			path.Category = category(v)
			path.Group = data.GroupKey(v)
			path.Classes = append(path.Classes, path.Group)
			path.Style.Stroke = colors.Color(path.Category)
		}
		s.Paths = append(s.Paths, path)
	}

	s.Axes = make([]scene.Axis, 0, len(measures))
	for _, m := range measures {
		ax, _ := x.Scale(m)
		s.Axes = append(s.Axes, axis(m, ax, ys[m]))
	}

	return s, nil
}

// category is the color-scale key of a color value. Absent values share the
// empty key.
func category(v data.Value) string {
	return v.String()
}

func colorScale(rows []data.Row, field string) *palette.Scale {
	domain := make([]string, 0, len(rows))
	for _, row := range rows {
		v, _ := row.Get(field)
		domain = append(domain, category(v))
	}
	return palette.NewScale(domain)
}

func legend(colors *palette.Scale) []scene.LegendEntry {
	entries := make([]scene.LegendEntry, 0, colors.Len())
	for _, c := range colors.Domain() {
		label := c
		if label == "" {
			label = data.UncategorizedLabel
		}
		entries = append(entries, scene.LegendEntry{
			Group: data.GroupKey(data.Text(c)),
			Label: label,
			Color: colors.Color(c),
		})
	}
	return entries
}

func measureScales(rows []data.Row, measures []string, height float64) (map[string]scale.Linear, error) {
	ys := make(map[string]scale.Linear, len(measures))
	for _, m := range measures {
		values := make([]float64, 0, len(rows))
		for i, row := range rows {
			v, ok := row.Get(m)
			if !ok || v.Absent() {
				return nil, &RowError{Row: i, Err: &scene.MeasureError{Measure: m, Err: scene.ErrMissingMeasure}}
			}
			n, ok := v.Number()
			if !ok {
				return nil, &RowError{Row: i, Err: &scene.MeasureError{Measure: m, Err: scene.ErrNotNumeric}}
			}
			values = append(values, n)
		}
		lo, hi, ok := scale.Extent(values)
		if !ok {
			lo, hi = scale.DefaultDomain[0], scale.DefaultDomain[1]
		}
		ys[m] = scale.NewLinear(lo, hi, height, 0)
	}
	return ys, nil
}

func axis(measure string, x float64, y scale.Linear) scene.Axis {
	r0, r1 := y.Range()
	top, bottom := min(r0, r1), max(r0, r1)

	format := y.TickFormat(TickCount)
	values := y.Ticks(TickCount)
	ticks := make([]scene.Tick, 0, len(values))
	for _, v := range values {
		ticks = append(ticks, scene.Tick{Value: v, Y: y.Scale(v), Label: format(v)})
	}

	return scene.Axis{
		Measure: measure,
		X:       x,
		Top:     top,
		Bottom:  bottom,
		Ticks:   ticks,
		Label:   measure,
		LabelAt: scene.Point{X: x, Y: top - AxisLabelOffset},
	}
}
