package mockengine

import (
	"context"

	"github.com/stretchr/testify/mock"

	"outreach-analytics-service/internal/model"
)

type Engine struct {
	mock.Mock
}

func (m *Engine) Calculate(ctx context.Context, opts model.AnalyticsOptions) model.AnalyticsResult {
	args := m.Called(ctx, opts)
	return args.Get(0).(model.AnalyticsResult)
}

func (m *Engine) RawData(ctx context.Context, startMs, endMs int64) []model.Event {
	args := m.Called(ctx, startMs, endMs)
	var events []model.Event
	if v := args.Get(0); v != nil {
		events = v.([]model.Event)
	}
	return events
}

func (m *Engine) ClearCache() {
	m.Called()
}
