package data

import (
	"math"
	"strconv"
	"strings"
)

// Encoding roles a host can assign to a field.
const (
	RoleDimensions = "dimensions"
	RoleColor      = "color"
)

const (
	// UncategorizedGroup is the color group for rows without a color value.
	// GroupKey never emits '-', so no color value can share this key.
	UncategorizedGroup = "-uncategorized"

	// UncategorizedLabel names that group in legends.
	UncategorizedLabel = "uncategorized"
)

// Value is a single cell: the native value and its display string.
type Value struct {
	Native    any
	Formatted string
}

// Absent reports whether the value carries no native value.
func (v Value) Absent() bool {
	return v.Native == nil
}

// Number returns the native value as a float64. Numeric strings are parsed.
// NaN and infinities are not numbers a measure can be plotted at.
func (v Value) Number() (float64, bool) {
	f, ok := v.number()
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (v Value) number() (float64, bool) {
	switch n := v.Native.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// String returns the native value as text, or "" when absent.
func (v Value) String() string {
	switch n := v.Native.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		if f, ok := v.Number(); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return v.Formatted
	}
}

// Text builds a string Value that formats as itself.
func Text(s string) Value {
	return Value{Native: s, Formatted: s}
}

// Number builds a numeric Value with the given display string.
// An empty display string falls back to the plain number.
func Number(f float64, formatted string) Value {
	if formatted == "" {
		formatted = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return Value{Native: f, Formatted: formatted}
}

// Field is a named cell of a Row.
type Field struct {
	Name  string
	Value Value
}

// Row is an ordered list of fields. Field order is the iteration order used
// for measures and tooltips.
type Row []Field

// Get returns the value of the named field.
func (r Row) Get(name string) (Value, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Names returns the field names in row order.
func (r Row) Names() []string {
	names := make([]string, 0, len(r))
	for _, f := range r {
		names = append(names, f.Name)
	}
	return names
}

// EncodingMap maps encoding roles to field names. Unassigned roles are absent.
type EncodingMap map[string]string

// Dimension returns the field assigned to the dimensions role.
func (e EncodingMap) Dimension() string {
	return e[RoleDimensions]
}

// Color returns the field assigned to the color role.
func (e EncodingMap) Color() string {
	return e[RoleColor]
}

// HasColor reports whether a color field is configured.
func (e EncodingMap) HasColor() bool {
	return e.Color() != ""
}

// Measures returns the row's field names that are neither the dimension nor the
// color field, in row order.
func (e EncodingMap) Measures(r Row) []string {
	measures := make([]string, 0, len(r))
	for _, f := range r {
		if f.Name == e.Dimension() || f.Name == e.Color() {
			continue
		}
		measures = append(measures, f.Name)
	}
	return measures
}

// GroupKey sanitizes a categorical value into a color group identifier:
// every rune that is not an ASCII letter or digit becomes an underscore.
func GroupKey(v Value) string {
	if v.Absent() {
		return UncategorizedGroup
	}
	s := v.String()
	if s == "" {
		return UncategorizedGroup
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
