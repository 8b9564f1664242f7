package palette

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Base is Paul Tol's qualitative color palette, designed for colorblind accessibility.
// See: https://personal.sron.nl/~pault/
var Base = []string{
	"#4477AA", // Blue
	"#EE6677", // Rose
	"#228833", // Green
	"#CCBB44", // Olive/Yellow
	"#66CCEE", // Cyan
	"#AA3377", // Purple
	"#BBBBBB", // Grey
	"#EE8866", // Orange
	"#44BB99", // Teal
	"#FFAABB", // Pink
}

// DefaultStroke is used for every row when no color field is configured.
const DefaultStroke = "#4477AA"

// DimmedStroke is the neutral stroke of rows outside a highlighted group.
const DimmedStroke = "#D3D3D3"

// BrightnessStep is the per-channel offset added each time the palette wraps.
const BrightnessStep = 5

// Allocate returns n colors. Up to len(Base) colors are taken from the start
// of Base. Beyond that, hues repeat every len(Base)-1 entries and each
// wrap lightens every RGB channel by BrightnessStep.
func Allocate(n int) []string {
	if n <= 0 {
		return nil
	}
	if n <= len(Base) {
		colors := make([]string, n)
		copy(colors, Base[:n])
		return colors
	}

	cycle := len(Base) - 1
	colors := make([]string, n)
	for i := range colors {
		colors[i] = Shift(Base[i%cycle], BrightnessStep*(i/cycle))
	}
	return colors
}

// Shift adds offset to every RGB channel of a hex color, clamping each
// channel to [0,255]. Negative offsets darken. Unparseable colors are
// returned unchanged.
func Shift(hex string, offset int) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	r, g, b := c.RGB255()
	return hexOf(colorful.Color{
		R: float64(clamp(int(r)+offset)) / 255,
		G: float64(clamp(int(g)+offset)) / 255,
		B: float64(clamp(int(b)+offset)) / 255,
	})
}

// Blend mixes a stroke color towards a background by 1-opacity. It is how
// surfaces without an alpha channel render partially transparent strokes.
func Blend(stroke, background string, opacity float64) string {
	fg, err := colorful.Hex(stroke)
	if err != nil {
		return stroke
	}
	bg, err := colorful.Hex(background)
	if err != nil {
		return stroke
	}
	if opacity >= 1 {
		return hexOf(fg)
	}
	if opacity <= 0 {
		return hexOf(bg)
	}
	return hexOf(bg.BlendRgb(fg, opacity).Clamped())
}

// Mix interpolates between two hex colors, t in [0,1].
func Mix(from, to string, t float64) string {
	return Blend(to, from, t)
}

func hexOf(c colorful.Color) string {
	return strings.ToUpper(c.Hex())
}

func clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return v
	}
}
