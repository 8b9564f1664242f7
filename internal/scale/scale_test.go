package scale

import (
	"math"
	"reflect"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestExtent(t *testing.T) {
	tests := []struct {
		name           string
		values         []float64
		wantLo, wantHi float64
		wantOK         bool
	}{
		{"empty", nil, 0, 0, false},
		{"single", []float64{3}, 3, 3, true},
		{"unsorted", []float64{5, -2, 9, 0}, -2, 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := Extent(tt.values)
			if lo != tt.wantLo || hi != tt.wantHi || ok != tt.wantOK {
				t.Errorf("Extent() = %v, %v, %v, want %v, %v, %v", lo, hi, ok, tt.wantLo, tt.wantHi, tt.wantOK)
			}
		})
	}
}

func TestLinearScaleInvertedRange(t *testing.T) {
	// Canvas y grows downward, so larger values plot higher.
	l := NewLinear(0, 100, 400, 0)

	tests := []struct {
		value float64
		want  float64
	}{
		{0, 400},
		{100, 0},
		{50, 200},
		{25, 300},
	}

	for _, tt := range tests {
		if got := l.Scale(tt.value); !almostEqual(got, tt.want) {
			t.Errorf("Scale(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestLinearScaleDegenerateDomain(t *testing.T) {
	// A constant measure collapses to the middle of the axis instead of failing.
	l := NewLinear(7, 7, 400, 0)

	if !l.Degenerate() {
		t.Fatal("Degenerate() = false, want true")
	}
	for _, v := range []float64{7, 0, 1000} {
		if got := l.Scale(v); got != 200 {
			t.Errorf("Scale(%v) = %v, want 200", v, got)
		}
	}
	if got := l.Ticks(5); !reflect.DeepEqual(got, []float64{7}) {
		t.Errorf("Ticks(5) = %v, want [7]", got)
	}
}

func TestLinearWithRange(t *testing.T) {
	l := NewLinear(0, 10, 100, 0).WithRange(200, 0)

	if got := l.Scale(5); got != 100 {
		t.Errorf("Scale(5) = %v, want 100", got)
	}
	if d0, d1 := l.Domain(); d0 != 0 || d1 != 10 {
		t.Errorf("Domain() = %v, %v, want 0, 10", d0, d1)
	}
}

func TestLinearTicks(t *testing.T) {
	tests := []struct {
		name   string
		d0, d1 float64
		count  int
		want   []float64
		labels []string
	}{
		{
			name: "integers", d0: 10, d1: 250, count: 5,
			want:   []float64{50, 100, 150, 200, 250},
			labels: []string{"50", "100", "150", "200", "250"},
		},
		{
			name: "unit interval", d0: 0, d1: 1, count: 5,
			want:   []float64{0, 0.2, 0.4, 0.6, 0.8, 1},
			labels: []string{"0.0", "0.2", "0.4", "0.6", "0.8", "1.0"},
		},
		{
			name: "halves", d0: 0, d1: 2.5, count: 5,
			want:   []float64{0, 0.5, 1, 1.5, 2, 2.5},
			labels: []string{"0.0", "0.5", "1.0", "1.5", "2.0", "2.5"},
		},
		{
			name: "negative", d0: -20, d1: 20, count: 4,
			want:   []float64{-20, -10, 0, 10, 20},
			labels: []string{"-20", "-10", "0", "10", "20"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLinear(tt.d0, tt.d1, 100, 0)
			got := l.Ticks(tt.count)
			if len(got) != len(tt.want) {
				t.Fatalf("Ticks(%d) = %v, want %v", tt.count, got, tt.want)
			}
			format := l.TickFormat(tt.count)
			for i := range got {
				if !almostEqual(got[i], tt.want[i]) {
					t.Errorf("Ticks(%d)[%d] = %v, want %v", tt.count, i, got[i], tt.want[i])
				}
				if label := format(got[i]); label != tt.labels[i] {
					t.Errorf("TickFormat(%d)(%v) = %q, want %q", tt.count, got[i], label, tt.labels[i])
				}
			}
		})
	}
}

func TestPointScaleEvenSpacing(t *testing.T) {
	measures := []string{"Sales", "Profit", "Quantity", "Discount"}
	p := NewPoint(measures, 0, 500)

	want := []float64{100, 200, 300, 400}
	for i, m := range measures {
		got, ok := p.Scale(m)
		if !ok {
			t.Fatalf("Scale(%q) not found", m)
		}
		if !almostEqual(got, want[i]) {
			t.Errorf("Scale(%q) = %v, want %v", m, got, want[i])
		}
	}

	// Equal padding at both ends, neither end flush with the range.
	first, _ := p.Scale(measures[0])
	last, _ := p.Scale(measures[len(measures)-1])
	if first <= 0 || last >= 500 {
		t.Errorf("points flush against range: first=%v last=%v", first, last)
	}
	if !almostEqual(first-0, 500-last) {
		t.Errorf("padding not equal: left=%v right=%v", first, 500-last)
	}
	second, _ := p.Scale(measures[1])
	if !almostEqual(second-first, 100) {
		t.Errorf("step = %v, want 100", second-first)
	}
}

func TestPointScaleSingleAndUnknown(t *testing.T) {
	p := NewPoint([]string{"only"}, 0, 300)
	if got, _ := p.Scale("only"); got != 150 {
		t.Errorf("Scale(only) = %v, want 150", got)
	}
	if _, ok := p.Scale("missing"); ok {
		t.Error("Scale(missing) reported ok")
	}
}

func TestPointScaleRescalesProportionally(t *testing.T) {
	measures := []string{"a", "b", "c"}
	small := NewPoint(measures, 0, 400)
	large := NewPoint(measures, 0, 800)

	for _, m := range measures {
		s, _ := small.Scale(m)
		l, _ := large.Scale(m)
		if !almostEqual(l, 2*s) {
			t.Errorf("Scale(%q) at 800 = %v, want %v", m, l, 2*s)
		}
	}
}
