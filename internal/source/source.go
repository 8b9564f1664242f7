// Package source fetches chart rows from files, workbooks and Prometheus.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/akasprzok/parcoords/internal/data"
)

// DefaultPageSize is the number of rows per page when none is configured.
const DefaultPageSize = 1000

// ErrNoRows is returned when a source has no header or rows to read.
var ErrNoRows = errors.New("no rows")

// Pager reads rows one page at a time.
type Pager interface {
	PageCount(ctx context.Context) (int, error)
	Page(ctx context.Context, index int) ([]data.Row, error)
}

// Collect reads every page of p. Pages are concatenated in page order and
// rows keep their source order within a page: pages [A B] and [C D] collect
// to [A B C D].
func Collect(ctx context.Context, p Pager) ([]data.Row, error) {
	n, err := p.PageCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting pages: %w", err)
	}

	var rows []data.Row
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := p.Page(ctx, i)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", i, err)
		}
		rows = append(rows, page...)
	}
	return rows, nil
}

// pages splits rows into fixed-size pages.
type pages struct {
	rows []data.Row
	size int
}

func paginate(rows []data.Row, size int) pages {
	if size <= 0 {
		size = DefaultPageSize
	}
	return pages{rows: rows, size: size}
}

func (p pages) PageCount(_ context.Context) (int, error) {
	return (len(p.rows) + p.size - 1) / p.size, nil
}

func (p pages) Page(_ context.Context, index int) ([]data.Row, error) {
	start := index * p.size
	if index < 0 || start >= len(p.rows) {
		return nil, fmt.Errorf("page %d out of range", index)
	}
	end := min(start+p.size, len(p.rows))
	return p.rows[start:end], nil
}

// Static serves a fixed set of rows and encodings.
type Static struct {
	Rows      []data.Row
	Encodings data.EncodingMap
	Fields    []string
	PageSize  int
}

func (s *Static) PageCount(ctx context.Context) (int, error) {
	return paginate(s.Rows, s.PageSize).PageCount(ctx)
}

func (s *Static) Page(ctx context.Context, index int) ([]data.Row, error) {
	return paginate(s.Rows, s.PageSize).Page(ctx, index)
}

// FetchRows returns every row.
func (s *Static) FetchRows(ctx context.Context) ([]data.Row, error) {
	return Collect(ctx, s)
}

// FetchEncodings returns the configured encodings.
func (s *Static) FetchEncodings(_ context.Context) (data.EncodingMap, error) {
	return s.Encodings, nil
}

// Schema returns the configured field names.
func (s *Static) Schema() []string {
	return s.Fields
}
