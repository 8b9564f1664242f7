package source

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v2"

	"github.com/akasprzok/parcoords/internal/data"
)

// File reads rows from a YAML or JSON document:
//
//	encodings:
//	  dimensions: Region
//	  color: Category
//	fields: [Region, Category, Sales, Profit]
//	rows:
//	  - Region: East
//	    Category: Chairs
//	    Sales: {value: 120, formatted: "$120"}
//	    Profit: 30
//
// Field order within a row is kept. A cell is either a plain scalar or a
// mapping with value and formatted keys. The file is read again on every
// fetch so edits show up on refresh.
type File struct {
	path      string
	pageSize  int
	overrides data.EncodingMap

	mu     sync.Mutex
	fields []string
}

// NewFile returns a source for the document at path. Non-empty overrides
// replace the encodings found in the file.
func NewFile(path string, pageSize int, overrides data.EncodingMap) *File {
	return &File{path: path, pageSize: pageSize, overrides: overrides}
}

type fileDoc struct {
	Encodings map[string]string `yaml:"encodings"`
	Fields    []string          `yaml:"fields"`
	Rows      []yaml.MapSlice   `yaml:"rows"`
}

func (f *File) load() (fileDoc, error) {
	var doc fileDoc
	b, err := os.ReadFile(f.path)
	if err != nil {
		return doc, fmt.Errorf("reading %s: %w", f.path, err)
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return doc, fmt.Errorf("parsing %s: %w", f.path, err)
	}
	return doc, nil
}

func (f *File) rows() ([]data.Row, error) {
	doc, err := f.load()
	if err != nil {
		return nil, err
	}

	rows := make([]data.Row, 0, len(doc.Rows))
	for i, item := range doc.Rows {
		row, err := decodeRow(item)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", f.path, i, err)
		}
		rows = append(rows, row)
	}

	fields := doc.Fields
	if len(fields) == 0 && len(rows) > 0 {
		fields = rows[0].Names()
	}
	f.mu.Lock()
	f.fields = fields
	f.mu.Unlock()

	return rows, nil
}

func (f *File) PageCount(ctx context.Context) (int, error) {
	rows, err := f.rows()
	if err != nil {
		return 0, err
	}
	return paginate(rows, f.pageSize).PageCount(ctx)
}

func (f *File) Page(ctx context.Context, index int) ([]data.Row, error) {
	rows, err := f.rows()
	if err != nil {
		return nil, err
	}
	return paginate(rows, f.pageSize).Page(ctx, index)
}

// FetchRows reads the document and returns every row.
func (f *File) FetchRows(ctx context.Context) ([]data.Row, error) {
	rows, err := f.rows()
	if err != nil {
		return nil, err
	}
	return Collect(ctx, paginate(rows, f.pageSize))
}

// FetchEncodings returns the document's encodings with overrides applied.
func (f *File) FetchEncodings(_ context.Context) (data.EncodingMap, error) {
	doc, err := f.load()
	if err != nil {
		return nil, err
	}
	return mergeEncodings(doc.Encodings, f.overrides), nil
}

// Schema returns the field names of the last read.
func (f *File) Schema() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fields...)
}

func decodeRow(item yaml.MapSlice) (data.Row, error) {
	row := make(data.Row, 0, len(item))
	for _, cell := range item {
		name, ok := cell.Key.(string)
		if !ok {
			name = fmt.Sprint(cell.Key)
		}
		v, err := decodeCell(cell.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		row = append(row, data.Field{Name: name, Value: v})
	}
	return row, nil
}

func decodeCell(raw any) (data.Value, error) {
	switch c := raw.(type) {
	case nil:
		return data.Value{}, nil
	case string:
		return data.Text(c), nil
	case int:
		return data.Number(float64(c), ""), nil
	case int64:
		return data.Number(float64(c), ""), nil
	case uint64:
		return data.Number(float64(c), ""), nil
	case float64:
		return data.Number(c, ""), nil
	case bool:
		s := fmt.Sprint(c)
		return data.Value{Native: s, Formatted: s}, nil
	case yaml.MapSlice:
		var v data.Value
		var formatted string
		for _, kv := range c {
			switch kv.Key {
			case "value":
				inner, err := decodeCell(kv.Value)
				if err != nil {
					return data.Value{}, err
				}
				v = inner
			case "formatted":
				formatted = fmt.Sprint(kv.Value)
			default:
				return data.Value{}, fmt.Errorf("unknown cell key %v", kv.Key)
			}
		}
		if formatted != "" {
			v.Formatted = formatted
		}
		return v, nil
	case map[any]any:
		var ms yaml.MapSlice
		for k, v := range c {
			ms = append(ms, yaml.MapItem{Key: k, Value: v})
		}
		return decodeCell(ms)
	default:
		return data.Value{}, fmt.Errorf("unsupported cell type %T", raw)
	}
}

func mergeEncodings(base, overrides data.EncodingMap) data.EncodingMap {
	merged := make(data.EncodingMap, len(base)+len(overrides))
	for role, field := range base {
		if field != "" {
			merged[role] = field
		}
	}
	for role, field := range overrides {
		if field != "" {
			merged[role] = field
		}
	}
	return merged
}
