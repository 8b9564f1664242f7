package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/akasprzok/parcoords/internal/data"
)

// Workbook reads rows from one sheet of an xlsx file. The first row holds the
// field names. Native values come from the raw cell contents and display
// values from the cell number formats.
type Workbook struct {
	path      string
	sheet     string
	pageSize  int
	encodings data.EncodingMap

	mu     sync.Mutex
	fields []string
}

// NewWorkbook returns a source for sheet of the workbook at path. An empty
// sheet selects the first one.
func NewWorkbook(path, sheet string, pageSize int, encodings data.EncodingMap) *Workbook {
	return &Workbook{path: path, sheet: sheet, pageSize: pageSize, encodings: encodings}
}

func (w *Workbook) rows() ([]data.Row, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", w.path, err)
	}
	defer f.Close()

	sheet := w.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: %w", w.path, ErrNoRows)
		}
		sheet = sheets[0]
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	formatted, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("sheet %q: %w", sheet, ErrNoRows)
	}

	header := make([]string, len(raw[0]))
	for i, name := range raw[0] {
		header[i] = strings.TrimSpace(name)
	}
	w.mu.Lock()
	w.fields = header
	w.mu.Unlock()

	rows := make([]data.Row, 0, len(raw)-1)
	for r := 1; r < len(raw); r++ {
		if blank(raw[r]) {
			continue
		}
		row := make(data.Row, 0, len(header))
		for c, name := range header {
			nativeText := cell(raw, r, c)
			display := cell(formatted, r, c)
			if display == "" {
				display = nativeText
			}
			row = append(row, data.Field{Name: name, Value: cellValue(nativeText, display)})
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cell(rows [][]string, r, c int) string {
	if r >= len(rows) || c >= len(rows[r]) {
		return ""
	}
	return rows[r][c]
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cellValue(native, display string) data.Value {
	if native == "" {
		return data.Value{Formatted: display}
	}
	if f, err := strconv.ParseFloat(native, 64); err == nil {
		return data.Number(f, display)
	}
	return data.Value{Native: native, Formatted: display}
}

func (w *Workbook) PageCount(ctx context.Context) (int, error) {
	rows, err := w.rows()
	if err != nil {
		return 0, err
	}
	return paginate(rows, w.pageSize).PageCount(ctx)
}

func (w *Workbook) Page(ctx context.Context, index int) ([]data.Row, error) {
	rows, err := w.rows()
	if err != nil {
		return nil, err
	}
	return paginate(rows, w.pageSize).Page(ctx, index)
}

// FetchRows reads the sheet and returns every row.
func (w *Workbook) FetchRows(ctx context.Context) ([]data.Row, error) {
	rows, err := w.rows()
	if err != nil {
		return nil, err
	}
	return Collect(ctx, paginate(rows, w.pageSize))
}

// FetchEncodings returns the configured encodings.
func (w *Workbook) FetchEncodings(_ context.Context) (data.EncodingMap, error) {
	return mergeEncodings(nil, w.encodings), nil
}

// Schema returns the header of the last read.
func (w *Workbook) Schema() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.fields...)
}
