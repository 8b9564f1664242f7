package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/akasprzok/parcoords/internal/data"
	"github.com/akasprzok/parcoords/internal/host"
	"github.com/akasprzok/parcoords/internal/prometheus"
	"github.com/akasprzok/parcoords/internal/source"
)

var errNoSource = errors.New("no row source: set --file, --prometheus-url or --chart")

// SourceFlags select where the chart rows come from. Flags override the
// settings of a chart file.
type SourceFlags struct {
	Chart         string   `name:"chart" short:"c" help:"YAML chart file with source and encoding settings." type:"existingfile"`
	File          string   `name:"file" short:"f" help:"YAML, JSON or XLSX file with the rows."`
	Sheet         string   `name:"sheet" help:"Sheet of an XLSX file. Defaults to the first sheet."`
	PrometheusURL string   `name:"prometheus-url" short:"p" help:"URL of the Prometheus endpoint."`
	Measures      []string `name:"measure" short:"m" help:"Prometheus measure as name=query. Repeat for every measure." sep:"none"`
	Dimension     string   `name:"dimension" short:"d" help:"Field naming each row, or the Prometheus label to join on."`
	Color         string   `name:"color" help:"Field that colors the rows."`
	PageSize      int      `name:"page-size" help:"Rows read per page." default:"1000"`
}

type chartMeasure struct {
	Name  string `yaml:"name"`
	Query string `yaml:"query"`
}

type chartFile struct {
	File       string            `yaml:"file"`
	Sheet      string            `yaml:"sheet"`
	PageSize   int               `yaml:"pageSize"`
	Encodings  map[string]string `yaml:"encodings"`
	Prometheus struct {
		URL      string         `yaml:"url"`
		Measures []chartMeasure `yaml:"measures"`
	} `yaml:"prometheus"`
}

func loadChart(path string) (chartFile, error) {
	var c chartFile
	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("reading chart file: %w", err)
	}
	if err := yaml.UnmarshalStrict(b, &c); err != nil {
		return c, fmt.Errorf("parsing chart file %s: %w", path, err)
	}
	// Relative row files are relative to the chart file.
	if c.File != "" && !filepath.IsAbs(c.File) {
		c.File = filepath.Join(filepath.Dir(path), c.File)
	}
	return c, nil
}

// resolve merges the chart file into the flags.
func (f SourceFlags) resolve() (SourceFlags, error) {
	if f.Chart == "" {
		return f, nil
	}
	c, err := loadChart(f.Chart)
	if err != nil {
		return f, err
	}
	if f.File == "" {
		f.File = c.File
	}
	if f.Sheet == "" {
		f.Sheet = c.Sheet
	}
	if f.PrometheusURL == "" {
		f.PrometheusURL = c.Prometheus.URL
	}
	if len(f.Measures) == 0 {
		for _, m := range c.Prometheus.Measures {
			f.Measures = append(f.Measures, m.Name+"="+m.Query)
		}
	}
	if f.Dimension == "" {
		f.Dimension = c.Encodings[data.RoleDimensions]
	}
	if f.Color == "" {
		f.Color = c.Encodings[data.RoleColor]
	}
	if c.PageSize > 0 && (f.PageSize == 0 || f.PageSize == source.DefaultPageSize) {
		f.PageSize = c.PageSize
	}
	return f, nil
}

func (f SourceFlags) encodings() data.EncodingMap {
	enc := data.EncodingMap{}
	if f.Dimension != "" {
		enc[data.RoleDimensions] = f.Dimension
	}
	if f.Color != "" {
		enc[data.RoleColor] = f.Color
	}
	return enc
}

// Source builds the row source the flags select.
func (f SourceFlags) Source(ctx *Context) (host.Source, error) {
	f, err := f.resolve()
	if err != nil {
		return nil, err
	}

	switch {
	case f.File != "" && f.PrometheusURL != "":
		return nil, errors.New("--file and --prometheus-url are mutually exclusive")

	case f.File != "":
		switch ext := strings.ToLower(filepath.Ext(f.File)); ext {
		case ".yaml", ".yml", ".json":
			return source.NewFile(f.File, f.PageSize, f.encodings()), nil
		case ".xlsx":
			return source.NewWorkbook(f.File, f.Sheet, f.PageSize, f.encodings()), nil
		default:
			return nil, fmt.Errorf("unsupported row file type %q", ext)
		}

	case f.PrometheusURL != "":
		if f.Dimension == "" {
			return nil, errors.New("--dimension is required with --prometheus-url")
		}
		if len(f.Measures) == 0 {
			return nil, errors.New("at least one --measure is required with --prometheus-url")
		}
		measures := make([]source.Measure, 0, len(f.Measures))
		for _, s := range f.Measures {
			m, err := source.ParseMeasure(s)
			if err != nil {
				return nil, err
			}
			measures = append(measures, m)
		}
		client, err := prometheus.NewClient(f.PrometheusURL)
		if err != nil {
			return nil, err
		}
		return &source.Prometheus{
			Client:    client,
			Measures:  measures,
			Dimension: f.Dimension,
			Color:     f.Color,
			Timeout:   ctx.Timeout,
			Logger:    ctx.Logger.With("source", "prometheus"),
		}, nil
	}

	return nil, errNoSource
}
