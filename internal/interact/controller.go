// Package interact implements hover highlighting and the tooltip of a chart.
//
// The Controller never reads the clock and never sleeps. Callers pass the
// current time to every method and schedule the timers it returns; when a
// timer is due they hand its ID back through Fire.
package interact

import (
	"fmt"
	"strings"
	"time"

	"github.com/akasprzok/parcoords/internal/palette"
	"github.com/akasprzok/parcoords/internal/scene"
	"github.com/akasprzok/parcoords/internal/timers"
)

const (
	// TransitionDuration is how long a style change takes.
	TransitionDuration = 200 * time.Millisecond

	// ExitDelay is how long after a hover exit the row styles are restored.
	ExitDelay = 1000 * time.Millisecond

	// TooltipHideDelay is how long after a hover exit the tooltip disappears.
	TooltipHideDelay = 1000 * time.Millisecond

	// DimmedOpacity is the opacity of rows outside the hovered group.
	DimmedOpacity = 0.2
)

// DefaultTooltipOffset places the tooltip above and to the left of the pointer.
var DefaultTooltipOffset = scene.Point{X: -25, Y: -75}

// DimmedStyle is applied to every row outside the hovered group.
var DimmedStyle = scene.Style{Stroke: palette.DimmedStroke, Opacity: DimmedOpacity}

const (
	restoreKeyPrefix = "restore/"
	tooltipKey       = "tooltip/hide"
)

// Config tunes the controller. Zero fields take the package defaults.
type Config struct {
	TooltipOffset    scene.Point
	Transition       time.Duration
	ExitDelay        time.Duration
	TooltipHideDelay time.Duration
}

func (c Config) withDefaults() Config {
	if c.TooltipOffset == (scene.Point{}) {
		c.TooltipOffset = DefaultTooltipOffset
	}
	if c.Transition <= 0 {
		c.Transition = TransitionDuration
	}
	if c.ExitDelay <= 0 {
		c.ExitDelay = ExitDelay
	}
	if c.TooltipHideDelay <= 0 {
		c.TooltipHideDelay = TooltipHideDelay
	}
	return c
}

// Tooltip is the tooltip state.
type Tooltip struct {
	Visible bool
	Opacity float64
	Lines   []string
	At      scene.Point
	Row     int
}

// Text joins the tooltip lines.
func (t Tooltip) Text() string {
	return strings.Join(t.Lines, "\n")
}

// Controller owns the hover state of one scene.
type Controller struct {
	scene   *scene.Scene
	cfg     Config
	timers  timers.Set
	trans   []transition
	hovered int
	group   string
	tooltip Tooltip
}

// New returns a controller for s with every row at its assigned style.
func New(s *scene.Scene, cfg Config) *Controller {
	c := &Controller{
		scene:   s,
		cfg:     cfg.withDefaults(),
		trans:   make([]transition, len(s.Paths)),
		hovered: -1,
		tooltip: Tooltip{Row: -1},
	}
	for i, p := range s.Paths {
		c.trans[i] = steady(p.Style)
	}
	return c
}

// Hovered returns the hovered path index.
func (c *Controller) Hovered() (int, bool) {
	return c.hovered, c.hovered >= 0
}

// Tooltip returns the current tooltip state.
func (c *Controller) Tooltip() Tooltip {
	return c.tooltip
}

// HoverEnter highlights the color group of path and shows its tooltip at
// pointer. Pending restores and tooltip hides are cancelled.
func (c *Controller) HoverEnter(path int, pointer scene.Point, now time.Time) error {
	if path < 0 || path >= len(c.scene.Paths) {
		return fmt.Errorf("hover enter: path %d out of range [0,%d)", path, len(c.scene.Paths))
	}
	c.timers.CancelPrefix(restoreKeyPrefix)
	c.timers.Cancel(tooltipKey)

	c.hovered = path
	p := c.scene.Paths[path]

	if c.scene.Colored {
		c.group = p.Group
		highlighted := make(map[int]bool)
		for _, i := range c.scene.Group(c.group) {
			highlighted[i] = true
		}
		for i, other := range c.scene.Paths {
			target := DimmedStyle
			if highlighted[i] {
				target = other.Style
			}
			c.transitionTo(i, target, now)
		}
	}

	c.tooltip = Tooltip{
		Visible: true,
		Opacity: 1,
		Lines:   TooltipLines(p),
		At:      pointer.Add(c.cfg.TooltipOffset),
		Row:     p.Row,
	}
	return nil
}

// HoverExit arms the delayed restore of every row and the delayed tooltip
// hide. The returned timers must be scheduled by the caller.
func (c *Controller) HoverExit(now time.Time) []timers.Timer {
	if c.hovered < 0 {
		return nil
	}
	c.hovered = -1

	var armed []timers.Timer
	if c.scene.Colored {
		armed = append(armed, c.timers.Arm(restoreKeyPrefix+c.group, c.cfg.ExitDelay, now))
	}
	armed = append(armed, c.timers.Arm(tooltipKey, c.cfg.TooltipHideDelay, now))
	return armed
}

// Fire runs the action of a due timer. Stale timers are ignored; Fire reports
// whether the timer was still current.
func (c *Controller) Fire(id timers.ID, now time.Time) bool {
	if !c.timers.Fire(id) {
		return false
	}
	switch {
	case id.Key == tooltipKey:
		c.tooltip.Visible = false
		c.tooltip.Opacity = 0
	case strings.HasPrefix(id.Key, restoreKeyPrefix):
		for i, p := range c.scene.Paths {
			c.transitionTo(i, p.Style, now)
		}
		c.group = ""
	}
	return true
}

// StyleAt returns the style of path at now, mid-transition if one is running.
func (c *Controller) StyleAt(path int, now time.Time) scene.Style {
	if path < 0 || path >= len(c.trans) {
		return scene.Style{}
	}
	return c.trans[path].at(now)
}

// Styles returns the style of every path at now.
func (c *Controller) Styles(now time.Time) []scene.Style {
	styles := make([]scene.Style, len(c.trans))
	for i, t := range c.trans {
		styles[i] = t.at(now)
	}
	return styles
}

// Animating reports whether any transition is still running at now.
func (c *Controller) Animating(now time.Time) bool {
	for _, t := range c.trans {
		if t.running(now) {
			return true
		}
	}
	return false
}

// Pending returns the timers armed and not yet fired.
func (c *Controller) Pending() []timers.Timer {
	return c.timers.All()
}

func (c *Controller) transitionTo(path int, target scene.Style, now time.Time) {
	c.trans[path] = transition{
		from:  c.trans[path].at(now),
		to:    target,
		start: now,
		dur:   c.cfg.Transition,
	}
}

// TooltipLines lists every field of the path's row as "name: formatted".
func TooltipLines(p scene.Path) []string {
	lines := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		lines = append(lines, fmt.Sprintf("%s: %s", f.Name, f.Value.Formatted))
	}
	return lines
}
