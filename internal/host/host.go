// Package host holds the chart context and re-renders it when data or size
// change.
package host

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/akasprzok/parcoords/internal/charts"
	"github.com/akasprzok/parcoords/internal/data"
	"github.com/akasprzok/parcoords/internal/scene"
)

// Source supplies the rows and encodings of a chart.
type Source interface {
	FetchRows(ctx context.Context) ([]data.Row, error)
	FetchEncodings(ctx context.Context) (data.EncodingMap, error)
}

// Schemer is implemented by sources that know their field names even when
// they return no rows.
type Schemer interface {
	Schema() []string
}

// Context is everything a render depends on.
type Context struct {
	Rows      []data.Row
	Encodings data.EncodingMap
	Schema    []string
	Size      scene.Size
}

// Input returns the composer input for c.
func (c Context) Input() charts.Input {
	return charts.Input{
		Rows:      c.Rows,
		Encodings: c.Encodings,
		Size:      c.Size,
		Schema:    c.Schema,
	}
}

// Listener receives the result of a render.
type Listener func(s *scene.Scene, err error)

// Shim owns the Context of one chart. Refresh replaces the rows and
// encodings, Resize replaces the size; both render and notify listeners.
type Shim struct {
	source Source
	logger *slog.Logger

	mu          sync.Mutex
	current     Context
	dataChanged []Listener
	resized     []Listener
}

// New returns a shim for source with the given initial size. A nil logger
// discards log output.
func New(source Source, size scene.Size, logger *slog.Logger) *Shim {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Shim{
		source:  source,
		logger:  logger,
		current: Context{Size: size},
	}
}

// OnDataChanged registers fn to be called after every Refresh.
func (h *Shim) OnDataChanged(fn Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dataChanged = append(h.dataChanged, fn)
}

// OnResize registers fn to be called after every Resize.
func (h *Shim) OnResize(fn Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resized = append(h.resized, fn)
}

// Context returns a copy of the current context.
func (h *Shim) Context() Context {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Render composes the scene of the current context.
func (h *Shim) Render() (*scene.Scene, error) {
	return charts.Compose(h.Context().Input())
}

// Refresh fetches rows and encodings concurrently, replaces the context on
// success and renders. On a fetch error the previous context is kept.
func (h *Shim) Refresh(ctx context.Context) (*scene.Scene, error) {
	start := time.Now()

	var (
		rows      []data.Row
		encodings data.EncodingMap
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = h.source.FetchRows(gctx)
		if err != nil {
			return fmt.Errorf("fetching rows: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		encodings, err = h.source.FetchEncodings(gctx)
		if err != nil {
			return fmt.Errorf("fetching encodings: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		h.logger.Error("refresh failed", "error", err)
		h.notify(h.listeners(true), nil, err)
		return nil, err
	}

	var schema []string
	if s, ok := h.source.(Schemer); ok {
		schema = s.Schema()
	}

	h.mu.Lock()
	h.current.Rows = rows
	h.current.Encodings = encodings
	h.current.Schema = schema
	h.mu.Unlock()

	h.logger.Debug("refreshed", "rows", len(rows), "encodings", encodings, "took", time.Since(start))

	s, err := h.Render()
	if err != nil {
		h.logger.Warn("render failed", "error", err)
	}
	h.notify(h.listeners(true), s, err)
	return s, err
}

// Resize replaces the size and renders the retained rows. No fetch happens.
func (h *Shim) Resize(size scene.Size) (*scene.Scene, error) {
	h.mu.Lock()
	h.current.Size = size
	h.mu.Unlock()

	h.logger.Debug("resized", "width", size.Width, "height", size.Height)

	s, err := h.Render()
	h.notify(h.listeners(false), s, err)
	return s, err
}

func (h *Shim) listeners(dataChanged bool) []Listener {
	h.mu.Lock()
	defer h.mu.Unlock()
	if dataChanged {
		return append([]Listener(nil), h.dataChanged...)
	}
	return append([]Listener(nil), h.resized...)
}

func (h *Shim) notify(fns []Listener, s *scene.Scene, err error) {
	for _, fn := range fns {
		fn(s, err)
	}
}
