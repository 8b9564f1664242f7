// Package tables lists chart rows in a table.
package tables

import (
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"

	"github.com/akasprzok/parcoords/internal/scene"
)

const (
	// RowIndexKey holds the path index of a table row.
	RowIndexKey = "__row"

	// ColorKey holds the color swatch of a table row.
	ColorKey = "__color"
)

const (
	minColumnWidth = 6
	maxColumnWidth = 30
)

// Rows returns a table with one row per path of s: a color swatch followed by
// the formatted value of every field, in field order.
func Rows(s *scene.Scene) table.Model {
	var columns []table.Column
	if len(s.Paths) > 0 {
		columns = append(columns, table.NewColumn(ColorKey, "", 3))
		for _, f := range s.Paths[0].Fields {
			width := utf8.RuneCountInString(f.Name)
			for _, p := range s.Paths {
				if v, ok := p.Fields.Get(f.Name); ok {
					width = max(width, utf8.RuneCountInString(v.Formatted))
				}
			}
			columns = append(columns, table.NewColumn(f.Name, f.Name, min(max(width+1, minColumnWidth), maxColumnWidth)))
		}
	}

	rows := make([]table.Row, 0, len(s.Paths))
	for i, p := range s.Paths {
		data := table.RowData{
			RowIndexKey: i,
			ColorKey:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Style.Stroke)).Render("█"),
		}
		for _, f := range p.Fields {
			data[f.Name] = f.Value.Formatted
		}
		rows = append(rows, table.NewRow(data))
	}

	return table.New(columns).WithRows(rows)
}

// RowIndex returns the path index of a table row.
func RowIndex(row table.Row) (int, bool) {
	idx, ok := row.Data[RowIndexKey].(int)
	return idx, ok
}
