package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/dm/mistinfo/internal/model"
)

// MockMistClient implements client.MistClient for testing.
// Kinds without an entry in Values return an empty object.
type MockMistClient struct {
	Values map[model.ResourceKind]model.Value
	Errs   map[model.ResourceKind]error
	// GetFn, if set, overrides Values and Errs.
	GetFn func(ctx context.Context, kind model.ResourceKind) (model.Value, error)

	mu    sync.Mutex
	calls []model.ResourceKind
}

func (m *MockMistClient) GetResource(ctx context.Context, kind model.ResourceKind) (model.Value, error) {
	m.mu.Lock()
	m.calls = append(m.calls, kind)
	m.mu.Unlock()

	if m.GetFn != nil {
		return m.GetFn(ctx, kind)
	}
	if err := m.Errs[kind]; err != nil {
		return nil, err
	}
	if v, ok := m.Values[kind]; ok {
		return v, nil
	}
	return map[string]any{}, nil
}

func (m *MockMistClient) BaseURL() string {
	return "https://mock.mist.test/api/v1/"
}

func (m *MockMistClient) SiteID() string {
	return "S1"
}

// Calls returns the kinds requested so far, in call order.
func (m *MockMistClient) Calls() []model.ResourceKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ResourceKind, len(m.calls))
	copy(out, m.calls)
	return out
}

var errMockFailure = errors.New("mock failure")
