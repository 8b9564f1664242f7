package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/akasprzok/parcoords/internal/data"
	"github.com/akasprzok/parcoords/internal/scale"
)

var (
	// ErrMissingMeasure is returned when a row has no value for a measure.
	ErrMissingMeasure = errors.New("missing measure")

	// ErrNotNumeric is returned when a measure value is not a number.
	ErrNotNumeric = errors.New("measure is not numeric")
)

// MeasureError reports which measure of a row could not be placed.
type MeasureError struct {
	Measure string
	Err     error
}

func (e *MeasureError) Error() string {
	return fmt.Sprintf("measure %q: %v", e.Measure, e.Err)
}

func (e *MeasureError) Unwrap() error {
	return e.Err
}

// PathPoints places a row on the chart: one point per measure, in measure
// order, at the measure's axis position and the row's scaled value.
func PathPoints(row data.Row, measures []string, x scale.Point, ys map[string]scale.Linear) ([]Point, error) {
	points := make([]Point, 0, len(measures))
	for _, m := range measures {
		v, ok := row.Get(m)
		if !ok || v.Absent() {
			return nil, &MeasureError{Measure: m, Err: ErrMissingMeasure}
		}
		n, ok := v.Number()
		if !ok {
			return nil, &MeasureError{Measure: m, Err: ErrNotNumeric}
		}
		px, ok := x.Scale(m)
		if !ok {
			return nil, &MeasureError{Measure: m, Err: ErrMissingMeasure}
		}
		y, ok := ys[m]
		if !ok {
			return nil, &MeasureError{Measure: m, Err: ErrMissingMeasure}
		}
		points = append(points, Point{X: px, Y: y.Scale(n)})
	}
	return points, nil
}

// HitTest returns the index of the path closest to p, provided it lies within
// tolerance of one of its segments. Later paths are drawn on top and win ties.
func (s *Scene) HitTest(p Point, tolerance float64) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	for i, path := range s.Paths {
		d := distanceToPolyline(p, path.Points)
		if d <= tolerance && d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

func distanceToPolyline(p Point, points []Point) float64 {
	switch len(points) {
	case 0:
		return math.Inf(1)
	case 1:
		return math.Hypot(p.X-points[0].X, p.Y-points[0].Y)
	}
	d := math.Inf(1)
	for i := 1; i < len(points); i++ {
		d = math.Min(d, distanceToSegment(p, points[i-1], points[i]))
	}
	return d
}

func distanceToSegment(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	if dx == 0 && dy == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / (dx*dx + dy*dy)
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}
