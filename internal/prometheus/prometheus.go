package prometheus

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"

	"github.com/prometheus/prometheus/promql/parser"
)

type prometheusClient struct {
	v1api v1.API
}

// Client runs the instant queries that back chart measures.
type Client interface {
	Query(ctx context.Context, query string, at time.Time, timeout time.Duration) (model.Vector, v1.Warnings, error)
}

func NewClient(url string) (Client, error) {
	client, err := api.NewClient(api.Config{
		Address: url,
	})
	if err != nil {
		return nil, fmt.Errorf("creating prometheus client: %w", err)
	}
	v1api := v1.NewAPI(client)
	return &prometheusClient{v1api: v1api}, nil
}

func (c *prometheusClient) Query(ctx context.Context, query string, at time.Time, timeout time.Duration) (model.Vector, v1.Warnings, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	result, warnings, err := c.v1api.Query(ctx, query, at, v1.WithTimeout(timeout))
	if err != nil {
		return nil, warnings, err
	}

	switch result.Type() {
	case model.ValVector:
		return result.(model.Vector), warnings, nil
	case model.ValNone, model.ValScalar, model.ValMatrix, model.ValString:
		return nil, warnings, fmt.Errorf("unexpected result type: %s", result.Type())
	default:
		return nil, warnings, fmt.Errorf("unknown result type: %s", result.Type())
	}
}

// ValidateQuery parses query as PromQL.
func ValidateQuery(query string) error {
	if _, err := parser.ParseExpr(query); err != nil {
		return fmt.Errorf("parsing query %q: %w", query, err)
	}
	return nil
}

// FormatQuery pretty-prints query, or returns it unchanged if it does not parse.
func FormatQuery(query string) string {
	ast, err := parser.ParseExpr(query)
	if err != nil {
		return query
	}
	return ast.Pretty(0)
}
