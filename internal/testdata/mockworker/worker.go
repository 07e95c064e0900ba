package mockworker

import (
	"github.com/stretchr/testify/mock"

	"outreach-analytics-service/internal/model"
)

type Worker struct {
	mock.Mock
}

func (m *Worker) Enqueue(event model.Event) {
	m.Called(event)
}

func (m *Worker) Shutdown() {
	m.Called()
}
