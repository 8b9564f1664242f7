// Package scale maps data values to canvas coordinates.
package scale

import (
	"math"
	"strconv"
)

// DefaultDomain is used when there are no values to take an extent from.
var DefaultDomain = [2]float64{0, 1}

// Linear is a continuous scale mapping a numeric domain onto a range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear returns a linear scale from domain [d0, d1] onto range [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Extent returns the minimum and maximum of values. ok is false when values
// is empty.
func Extent(values []float64) (lo, hi float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, true
}

// Domain returns the domain bounds.
func (l Linear) Domain() (float64, float64) {
	return l.d0, l.d1
}

// Range returns the range bounds.
func (l Linear) Range() (float64, float64) {
	return l.r0, l.r1
}

// Degenerate reports whether the domain has zero width.
func (l Linear) Degenerate() bool {
	return l.d0 == l.d1
}

// Scale maps v into the range. A zero-width domain maps everything to the
// middle of the range.
func (l Linear) Scale(v float64) float64 {
	if l.Degenerate() {
		return (l.r0 + l.r1) / 2
	}
	t := (v - l.d0) / (l.d1 - l.d0)
	return l.r0 + t*(l.r1-l.r0)
}

// WithRange returns a copy of the scale with a new range and the same domain.
func (l Linear) WithRange(r0, r1 float64) Linear {
	l.r0, l.r1 = r0, r1
	return l
}

// Ticks returns roughly count evenly spaced, human friendly values inside
// the domain. Steps are 1, 2 or 5 times a power of ten.
func (l Linear) Ticks(count int) []float64 {
	lo, hi := l.d0, l.d1
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi || count <= 0 {
		return []float64{lo}
	}

	inc := tickIncrement(lo, hi, count)
	if inc == 0 || math.IsInf(inc, 0) || math.IsNaN(inc) {
		return nil
	}

	var ticks []float64
	if inc > 0 {
		i0, i1 := math.Ceil(lo/inc), math.Floor(hi/inc)
		for i := i0; i <= i1; i++ {
			ticks = append(ticks, i*inc)
		}
		return ticks
	}

	// Negative increments are inverted powers of ten, which keeps
	// fractional ticks free of float noise.
	inv := -inc
	i0, i1 := math.Ceil(lo*inv), math.Floor(hi*inv)
	for i := i0; i <= i1; i++ {
		ticks = append(ticks, i/inv)
	}
	return ticks
}

// TickFormat returns a formatter with enough decimals to tell apart ticks
// produced by Ticks(count).
func (l Linear) TickFormat(count int) func(float64) string {
	lo, hi := l.d0, l.d1
	if lo > hi {
		lo, hi = hi, lo
	}
	precision := 0
	if lo != hi && count > 0 {
		step := tickStep(lo, hi, count)
		if step > 0 {
			precision = max(0, -int(math.Floor(math.Log10(step))))
		}
	}
	return func(v float64) string {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickIncrement returns the tick step as a positive number, or as the
// negated inverse for steps below one.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	errRatio := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case errRatio >= e10:
		factor = 10
	case errRatio >= e5:
		factor = 5
	case errRatio >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

func tickStep(start, stop float64, count int) float64 {
	inc := tickIncrement(start, stop, count)
	if inc < 0 {
		return -1 / inc
	}
	return inc
}
