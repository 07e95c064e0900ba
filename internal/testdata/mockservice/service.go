package mockservice

import (
	"context"

	"github.com/stretchr/testify/mock"

	"outreach-analytics-service/internal/model"
)

type Service struct {
	mock.Mock
}

func (m *Service) BuildEvent(req model.EventRequest) (model.Event, error) {
	args := m.Called(req)
	return args.Get(0).(model.Event), args.Error(1)
}

func (m *Service) ProcessEvent(ctx context.Context, event model.Event) model.EventResult {
	args := m.Called(ctx, event)
	return args.Get(0).(model.EventResult)
}
