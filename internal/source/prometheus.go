package source

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/common/model"
	"golang.org/x/sync/errgroup"

	"github.com/akasprzok/parcoords/internal/data"
	"github.com/akasprzok/parcoords/internal/prometheus"
)

// Measure is a named PromQL instant query.
type Measure struct {
	Name  string
	Query string
}

// ParseMeasure parses "name=query".
func ParseMeasure(s string) (Measure, error) {
	name, query, ok := strings.Cut(s, "=")
	name, query = strings.TrimSpace(name), strings.TrimSpace(query)
	if !ok || name == "" || query == "" {
		return Measure{}, fmt.Errorf("measure %q: want name=query", s)
	}
	if err := prometheus.ValidateQuery(query); err != nil {
		return Measure{}, fmt.Errorf("measure %q: %w", name, err)
	}
	return Measure{Name: name, Query: query}, nil
}

// Prometheus builds one row per value of a dimension label. Every measure is
// an instant query; samples are joined on the dimension label, and the color
// label, when set, is taken from the first sample of each row.
type Prometheus struct {
	Client    prometheus.Client
	Measures  []Measure
	Dimension string
	Color     string
	Timeout   time.Duration
	Logger    *slog.Logger

	// Now returns the evaluation time of the queries. Defaults to time.Now.
	Now func() time.Time
}

func (p *Prometheus) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

func (p *Prometheus) PageCount(_ context.Context) (int, error) {
	return 1, nil
}

func (p *Prometheus) Page(ctx context.Context, index int) ([]data.Row, error) {
	if index != 0 {
		return nil, fmt.Errorf("page %d out of range", index)
	}
	return p.query(ctx)
}

// FetchRows runs every measure query and joins the results.
func (p *Prometheus) FetchRows(ctx context.Context) ([]data.Row, error) {
	return Collect(ctx, p)
}

// FetchEncodings maps the dimension and color labels to their roles.
func (p *Prometheus) FetchEncodings(_ context.Context) (data.EncodingMap, error) {
	enc := data.EncodingMap{data.RoleDimensions: p.Dimension}
	if p.Color != "" {
		enc[data.RoleColor] = p.Color
	}
	return enc, nil
}

// Schema lists the dimension, the color label and the measures.
func (p *Prometheus) Schema() []string {
	fields := []string{p.Dimension}
	if p.Color != "" {
		fields = append(fields, p.Color)
	}
	for _, m := range p.Measures {
		fields = append(fields, m.Name)
	}
	return fields
}

func (p *Prometheus) query(ctx context.Context) ([]data.Row, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	at := now()

	results := make([]model.Vector, len(p.Measures))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range p.Measures {
		g.Go(func() error {
			vector, warnings, err := p.Client.Query(gctx, m.Query, at, p.Timeout)
			if err != nil {
				return fmt.Errorf("querying measure %q: %w", m.Name, err)
			}
			for _, w := range warnings {
				p.logger().Warn("query warning", "measure", m.Name, "warning", w)
			}
			results[i] = vector
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return p.join(results), nil
}

type joined struct {
	color  model.LabelValue
	values []*model.SampleValue
}

func (p *Prometheus) join(results []model.Vector) []data.Row {
	dim := model.LabelName(p.Dimension)
	color := model.LabelName(p.Color)

	byKey := make(map[model.LabelValue]*joined)
	for i, vector := range results {
		for _, sample := range vector {
			key, ok := sample.Metric[dim]
			if !ok {
				p.logger().Debug("sample without dimension label", "measure", p.Measures[i].Name, "metric", sample.Metric.String())
				continue
			}
			j, ok := byKey[key]
			if !ok {
				j = &joined{values: make([]*model.SampleValue, len(results))}
				byKey[key] = j
			}
			if p.Color != "" && j.color == "" {
				j.color = sample.Metric[color]
			}
			v := sample.Value
			j.values[i] = &v
		}
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	rows := make([]data.Row, 0, len(keys))
	for _, k := range keys {
		j := byKey[model.LabelValue(k)]
		row := data.Row{{Name: p.Dimension, Value: data.Text(k)}}
		if p.Color != "" {
			cv := data.Value{}
			if j.color != "" {
				cv = data.Text(string(j.color))
			}
			row = append(row, data.Field{Name: p.Color, Value: cv})
		}
		complete := true
		for i, m := range p.Measures {
			if j.values[i] == nil {
				complete = false
				p.logger().Warn("dropping row without measure", "dimension", k, "measure", m.Name)
				break
			}
			v := *j.values[i]
			if f := float64(v); math.IsNaN(f) || math.IsInf(f, 0) {
				complete = false
				p.logger().Warn("dropping row with non-finite measure", "dimension", k, "measure", m.Name, "value", v.String())
				break
			}
			row = append(row, data.Field{Name: m.Name, Value: data.Number(float64(v), v.String())})
		}
		if complete {
			rows = append(rows, row)
		}
	}
	return rows
}
