package prometheus

import (
	"context"
	"time"

	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
)

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	QueryFunc func(ctx context.Context, query string, at time.Time, timeout time.Duration) (model.Vector, v1.Warnings, error)
}

func (m *MockClient) Query(ctx context.Context, query string, at time.Time, timeout time.Duration) (model.Vector, v1.Warnings, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, query, at, timeout)
	}
	return nil, nil, nil
}
