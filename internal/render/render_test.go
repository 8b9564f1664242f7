package render

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/akasprzok/parcoords/internal/charts"
	"github.com/akasprzok/parcoords/internal/data"
	"github.com/akasprzok/parcoords/internal/interact"
	"github.com/akasprzok/parcoords/internal/scene"
)

func salesScene(t *testing.T, size scene.Size) *scene.Scene {
	t.Helper()
	rows := []data.Row{
		{
			{Name: "Region", Value: data.Text("East")},
			{Name: "Category", Value: data.Text("Office Supplies")},
			{Name: "Sales", Value: data.Number(120, "$120")},
			{Name: "Profit", Value: data.Number(30, "")},
		},
		{
			{Name: "Region", Value: data.Text("West")},
			{Name: "Category", Value: data.Text("<Tables>")},
			{Name: "Sales", Value: data.Number(80, "$80")},
			{Name: "Profit", Value: data.Number(10, "")},
		},
	}
	s, err := charts.Compose(charts.Input{
		Rows:      rows,
		Encodings: data.EncodingMap{data.RoleDimensions: "Region", data.RoleColor: "Category"},
		Size:      size,
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	return s
}

func TestSVG(t *testing.T) {
	s := salesScene(t, scene.Size{Width: 420, Height: 260, Margin: scene.DefaultMargin})

	var buf bytes.Buffer
	if err := SVG(&buf, Frame{Scene: s}); err != nil {
		t.Fatalf("SVG() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`<svg width="420" height="260"`,
		`<g transform="translate(10,30)">`,
		`class="line Office_Supplies"`,
		`class="line _Tables_"`,
		`stroke="#4477AA"`,
		`stroke="#EE6677"`,
		`&lt;Tables&gt;`,
		`>Sales</text>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG() output missing %q", want)
		}
	}
	if got := strings.Count(out, `<path class="line`); got != 2 {
		t.Errorf("SVG() paths = %d, want 2", got)
	}
	if strings.Contains(out, `class="tooltip"`) {
		t.Error("SVG() drew a hidden tooltip")
	}
}

func TestSVGHoverFrame(t *testing.T) {
	s := salesScene(t, scene.Size{Width: 420, Height: 260, Margin: scene.DefaultMargin})

	styles := []scene.Style{s.Paths[0].Style, interact.DimmedStyle}
	tip := interact.Tooltip{Visible: true, Opacity: 1, Lines: interact.TooltipLines(s.Paths[0]), At: scene.Point{X: 50, Y: 20}}

	var buf bytes.Buffer
	if err := SVG(&buf, Frame{Scene: s, Styles: styles, Tooltip: tip}); err != nil {
		t.Fatalf("SVG() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`stroke="#D3D3D3" stroke-opacity="0.2"`,
		`class="tooltip" opacity="1" transform="translate(60,50)"`,
		`>Sales: $120</text>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG() output missing %q", want)
		}
	}
}

var tooltipBox = regexp.MustCompile(`class="tooltip" opacity="[^"]*" transform="translate\(([-0-9.]+),([-0-9.]+)\)">\s*<rect x="0" y="0" width="([0-9.]+)" height="([0-9.]+)"`)

func TestSVGTooltipStaysOnCanvas(t *testing.T) {
	s := salesScene(t, scene.Size{Width: 420, Height: 260, Margin: scene.DefaultMargin})

	tests := []struct {
		name string
		at   scene.Point
	}{
		{"above the top axis end", scene.Point{X: 400, Y: 0}.Add(interact.DefaultTooltipOffset)},
		{"past the right edge", scene.Point{X: 600, Y: 100}},
		{"below the bottom", scene.Point{X: 10, Y: 400}},
		{"left of the canvas", scene.Point{X: -200, Y: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tip := interact.Tooltip{Visible: true, Opacity: 1, Lines: interact.TooltipLines(s.Paths[0]), At: tt.at}

			var buf bytes.Buffer
			if err := SVG(&buf, Frame{Scene: s, Tooltip: tip}); err != nil {
				t.Fatalf("SVG() error = %v", err)
			}
			m := tooltipBox.FindStringSubmatch(buf.String())
			if m == nil {
				t.Fatalf("SVG() output has no tooltip box:\n%s", buf.String())
			}
			var box [4]float64
			for i := range box {
				v, err := strconv.ParseFloat(m[i+1], 64)
				if err != nil {
					t.Fatalf("parsing %q: %v", m[i+1], err)
				}
				box[i] = v
			}
			x, y, w, h := box[0], box[1], box[2], box[3]
			if x < 0 || y < 0 || x+w > s.Size.Width || y+h > s.Size.Height {
				t.Errorf("tooltip box x=%v y=%v w=%v h=%v outside %vx%v canvas", x, y, w, h, s.Size.Width, s.Size.Height)
			}
		})
	}
}

func TestPathData(t *testing.T) {
	got := pathData([]scene.Point{{X: 0, Y: 10}, {X: 12.5, Y: 0}, {X: 25.126, Y: 5}})
	if want := "M0,10L12.5,0L25.13,5"; got != want {
		t.Errorf("pathData() = %q, want %q", got, want)
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{10, "10"},
		{1.5, "1.5"},
		{-0.001, "0"},
		{2.346, "2.35"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestTerminalDraw(t *testing.T) {
	s := salesScene(t, scene.Size{Width: 60, Height: 16, Margin: TerminalMargin})

	out := ansi.ReplaceAllString(NewTerminal().Draw(Frame{Scene: s}), "")
	if rows := strings.Count(strings.TrimRight(out, "\n"), "\n") + 1; rows != 16 {
		t.Fatalf("Draw() rows = %d, want 16", rows)
	}
	if !strings.Contains(out, "Sales") || !strings.Contains(out, "Profit") {
		t.Errorf("Draw() missing axis labels:\n%s", out)
	}
	if !strings.Contains(out, "│") {
		t.Errorf("Draw() missing axis lines:\n%s", out)
	}
}

func TestTerminalTooltipStaysOnCanvas(t *testing.T) {
	s := salesScene(t, scene.Size{Width: 60, Height: 16, Margin: TerminalMargin})
	tip := interact.Tooltip{
		Visible: true,
		Opacity: 1,
		Lines:   interact.TooltipLines(s.Paths[0]),
		At:      scene.Point{X: 500, Y: -500},
	}

	out := ansi.ReplaceAllString(NewTerminal().Draw(Frame{Scene: s, Tooltip: tip}), "")
	if !strings.Contains(out, "Sales: $120") {
		t.Errorf("Draw() missing tooltip line:\n%s", out)
	}
	if !strings.Contains(out, "╭") {
		t.Errorf("Draw() missing tooltip border:\n%s", out)
	}
}

func TestTerminalSkipsNonFinitePoints(t *testing.T) {
	s := salesScene(t, scene.Size{Width: 60, Height: 16, Margin: TerminalMargin})
	s.Paths[1].Points[1].Y = math.NaN()
	s.Paths[0].Points[0].X = math.Inf(-1)

	done := make(chan string, 1)
	go func() { done <- NewTerminal().Draw(Frame{Scene: s}) }()
	select {
	case out := <-done:
		if !strings.Contains(ansi.ReplaceAllString(out, ""), "Sales") {
			t.Errorf("Draw() missing axis labels:\n%s", out)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Draw() did not return")
	}
}

func TestTerminalEmpty(t *testing.T) {
	if got := NewTerminal().Draw(Frame{Scene: &scene.Scene{}}); got != "" {
		t.Errorf("Draw() = %q, want empty", got)
	}
}

func TestLegend(t *testing.T) {
	s := salesScene(t, scene.Size{Width: 60, Height: 16, Margin: TerminalMargin})
	out := ansi.ReplaceAllString(NewTerminal().Legend(s), "")
	if want := "█ Office Supplies\n█ <Tables>"; out != want {
		t.Errorf("Legend() = %q, want %q", out, want)
	}
}

func TestEncode(t *testing.T) {
	s := salesScene(t, scene.Size{Width: 420, Height: 260, Margin: scene.DefaultMargin})

	b, err := ToJSON(s)
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	var fromJSON sceneDoc
	if err := json.Unmarshal(b, &fromJSON); err != nil {
		t.Fatalf("unmarshal json: %v", err)
	}
	if len(fromJSON.Paths) != 2 || fromJSON.Paths[0].Stroke != "#4477AA" {
		t.Errorf("ToJSON() paths = %+v", fromJSON.Paths)
	}
	if fromJSON.Paths[0].Fields[2].Formatted != "$120" {
		t.Errorf("ToJSON() field = %+v, want formatted $120", fromJSON.Paths[0].Fields[2])
	}

	y, err := ToYAML(s)
	if err != nil {
		t.Fatalf("ToYAML() error = %v", err)
	}
	if !strings.Contains(string(y), "measures:\n- Sales\n- Profit\n") {
		t.Errorf("ToYAML() missing measures:\n%s", y)
	}
	var fromYAML sceneDoc
	if err := yaml.Unmarshal(y, &fromYAML); err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}
	if len(fromYAML.Axes) != 2 || fromYAML.Axes[1].Measure != "Profit" {
		t.Errorf("ToYAML() axes = %+v", fromYAML.Axes)
	}
}
