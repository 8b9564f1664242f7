package host

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/akasprzok/parcoords/internal/charts"
	"github.com/akasprzok/parcoords/internal/data"
	"github.com/akasprzok/parcoords/internal/scene"
	"github.com/akasprzok/parcoords/internal/source"
)

func salesRows() []data.Row {
	return []data.Row{
		{
			{Name: "Region", Value: data.Text("East")},
			{Name: "Category", Value: data.Text("Chairs")},
			{Name: "Sales", Value: data.Number(120, "$120")},
			{Name: "Profit", Value: data.Number(30, "")},
		},
		{
			{Name: "Region", Value: data.Text("West")},
			{Name: "Category", Value: data.Text("Tables")},
			{Name: "Sales", Value: data.Number(80, "$80")},
			{Name: "Profit", Value: data.Number(10, "")},
		},
	}
}

var salesEncodings = data.EncodingMap{data.RoleDimensions: "Region", data.RoleColor: "Category"}

// countingSource counts fetches and can be told to fail.
type countingSource struct {
	source.Static
	rowFetches atomic.Int32
	err        error
}

func (c *countingSource) FetchRows(ctx context.Context) ([]data.Row, error) {
	c.rowFetches.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return c.Static.FetchRows(ctx)
}

func size(w, h float64) scene.Size {
	return scene.Size{Width: w, Height: h, Margin: scene.DefaultMargin}
}

func TestRefresh(t *testing.T) {
	src := &countingSource{Static: source.Static{Rows: salesRows(), Encodings: salesEncodings}}
	h := New(src, size(420, 260), nil)

	var notified []*scene.Scene
	h.OnDataChanged(func(s *scene.Scene, err error) {
		if err != nil {
			t.Errorf("OnDataChanged() err = %v", err)
		}
		notified = append(notified, s)
	})

	s, err := h.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(s.Paths) != 2 {
		t.Errorf("len(Paths) = %d, want 2", len(s.Paths))
	}
	if len(notified) != 1 || notified[0] != s {
		t.Errorf("OnDataChanged called %d times, want once with the rendered scene", len(notified))
	}

	ctx := h.Context()
	if len(ctx.Rows) != 2 || ctx.Encodings.Color() != "Category" {
		t.Errorf("Context() = %+v", ctx)
	}
}

func TestResizeUsesRetainedRows(t *testing.T) {
	src := &countingSource{Static: source.Static{Rows: salesRows(), Encodings: salesEncodings}}
	h := New(src, size(420, 260), nil)

	var resized int
	h.OnResize(func(*scene.Scene, error) { resized++ })

	before, err := h.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	after, err := h.Resize(size(840, 520))
	if err != nil {
		t.Fatalf("Resize() error = %v", err)
	}

	if got := src.rowFetches.Load(); got != 1 {
		t.Errorf("row fetches = %d, want 1", got)
	}
	if resized != 1 {
		t.Errorf("OnResize called %d times, want 1", resized)
	}
	if len(after.Paths) != len(before.Paths) {
		t.Fatalf("len(Paths) = %d, want %d", len(after.Paths), len(before.Paths))
	}
	for i := range after.Paths {
		if after.Paths[i].Style != before.Paths[i].Style {
			t.Errorf("path %d style = %v, want %v", i, after.Paths[i].Style, before.Paths[i].Style)
		}
	}
	if after.Axes[0].X == before.Axes[0].X {
		t.Errorf("axis x = %v after resize, want it to move", after.Axes[0].X)
	}
}

func TestRefreshErrorKeepsContext(t *testing.T) {
	src := &countingSource{Static: source.Static{Rows: salesRows(), Encodings: salesEncodings}}
	h := New(src, size(420, 260), nil)
	if _, err := h.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	boom := errors.New("boom")
	src.err = boom

	var gotErr error
	h.OnDataChanged(func(_ *scene.Scene, err error) { gotErr = err })

	if _, err := h.Refresh(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Refresh() error = %v, want %v", err, boom)
	}
	if !errors.Is(gotErr, boom) {
		t.Errorf("listener error = %v, want %v", gotErr, boom)
	}
	if got := len(h.Context().Rows); got != 2 {
		t.Errorf("len(Rows) = %d after failed refresh, want 2", got)
	}
}

func TestRefreshEmptyWithSchema(t *testing.T) {
	src := &source.Static{
		Encodings: salesEncodings,
		Fields:    []string{"Region", "Category", "Sales", "Profit"},
	}
	h := New(src, size(420, 260), nil)

	s, err := h.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(s.Paths) != 0 || len(s.Axes) != 2 {
		t.Errorf("scene = %d paths, %d axes, want 0 and 2", len(s.Paths), len(s.Axes))
	}
}

func TestRefreshRenderError(t *testing.T) {
	rows := []data.Row{{{Name: "Region", Value: data.Text("East")}, {Name: "Sales", Value: data.Number(1, "")}}}
	h := New(&source.Static{Rows: rows, Encodings: data.EncodingMap{data.RoleDimensions: "Region"}}, size(100, 100), nil)

	if _, err := h.Refresh(context.Background()); !errors.Is(err, charts.ErrTooFewMeasures) {
		t.Errorf("Refresh() error = %v, want %v", err, charts.ErrTooFewMeasures)
	}
}
