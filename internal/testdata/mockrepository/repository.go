package mockrepository

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"outreach-analytics-service/internal/model"
	"outreach-analytics-service/internal/repository"
)

type Repository struct {
	mock.Mock
}

// Interface compliance check
var _ repository.EventRepository = &Repository{}

func (m *Repository) Create(ctx context.Context, event model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *Repository) CreateBatch(ctx context.Context, events []model.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *Repository) FetchRange(ctx context.Context, from, to time.Time) ([]model.Event, error) {
	args := m.Called(ctx, from, to)
	var events []model.Event
	if v := args.Get(0); v != nil {
		events = v.([]model.Event)
	}
	return events, args.Error(1)
}
