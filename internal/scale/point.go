package scale

// DefaultPadding is the outer padding of a Point scale, in steps.
const DefaultPadding = 1.0

// Point is an ordinal scale that spreads a list of names evenly over a range,
// leaving the same padding before the first and after the last point.
type Point struct {
	domain  []string
	index   map[string]int
	start   float64
	step    float64
	r0, r1  float64
	padding float64
}

// NewPoint returns a point scale over domain with range [r0, r1] and
// DefaultPadding.
func NewPoint(domain []string, r0, r1 float64) Point {
	return NewPointPadded(domain, r0, r1, DefaultPadding)
}

// NewPointPadded returns a point scale with the given outer padding, expressed
// as a fraction of the step between two points.
func NewPointPadded(domain []string, r0, r1, padding float64) Point {
	p := Point{
		domain:  append([]string(nil), domain...),
		index:   make(map[string]int, len(domain)),
		r0:      r0,
		r1:      r1,
		padding: padding,
	}
	for i, name := range p.domain {
		if _, ok := p.index[name]; !ok {
			p.index[name] = i
		}
	}

	n := float64(len(p.domain))
	p.step = (r1 - r0) / max(1, n-1+2*padding)
	p.start = r0 + ((r1-r0)-p.step*(n-1))/2
	return p
}

// Scale returns the coordinate of name. ok is false for names outside the
// domain.
func (p Point) Scale(name string) (float64, bool) {
	i, ok := p.index[name]
	if !ok {
		return 0, false
	}
	return p.start + p.step*float64(i), true
}

// Domain returns the names in scale order.
func (p Point) Domain() []string {
	return append([]string(nil), p.domain...)
}

// Range returns the range bounds.
func (p Point) Range() (float64, float64) {
	return p.r0, p.r1
}
