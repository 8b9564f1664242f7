package interact

import (
	"time"

	"github.com/akasprzok/parcoords/internal/palette"
	"github.com/akasprzok/parcoords/internal/scene"
)

// transition moves a path from one style to another over dur, starting at start.
type transition struct {
	from, to scene.Style
	start    time.Time
	dur      time.Duration
}

func steady(s scene.Style) transition {
	return transition{from: s, to: s}
}

func (t transition) progress(now time.Time) float64 {
	if t.dur <= 0 || !now.Before(t.start.Add(t.dur)) {
		return 1
	}
	if now.Before(t.start) {
		return 0
	}
	return easeCubicInOut(float64(now.Sub(t.start)) / float64(t.dur))
}

func (t transition) running(now time.Time) bool {
	return t.from != t.to && t.progress(now) < 1
}

func (t transition) at(now time.Time) scene.Style {
	p := t.progress(now)
	switch {
	case p >= 1:
		return t.to
	case p <= 0:
		return t.from
	}
	return scene.Style{
		Stroke:  palette.Mix(t.from.Stroke, t.to.Stroke, p),
		Opacity: t.from.Opacity + (t.to.Opacity-t.from.Opacity)*p,
	}
}

func easeCubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
