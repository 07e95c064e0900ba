package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"outreach-analytics-service/internal/model"
	"outreach-analytics-service/internal/testdata/mockworker"
)

type EventServiceTestSuite struct {
	suite.Suite

	worker *mockworker.Worker

	// We hold a pointer to the concrete struct (not just the interface)
	// to access private fields like 'now' and 'futureTolerance'.
	service *eventService
}

func TestEventServiceSuite(t *testing.T) {
	suite.Run(t, new(EventServiceTestSuite))
}

func (s *EventServiceTestSuite) SetupTest() {
	s.worker = &mockworker.Worker{}

	svc := NewEventService(s.worker, 0)
	s.service = svc.(*eventService)

	// Freeze time to a deterministic value for all tests.
	s.service.now = func() time.Time { return time.UnixMilli(1_000_000).UTC() }
}

func (s *EventServiceTestSuite) TestBuildEvent_ValidationErrors() {
	tests := []struct {
		name      string
		req       model.EventRequest
		errMsg    string
		tolerance time.Duration
	}{
		{
			name:   "Missing Type",
			req:    model.EventRequest{Timestamp: 1_000_000},
			errMsg: "type is required",
		},
		{
			name:   "Missing Timestamp",
			req:    model.EventRequest{Type: model.EventConnectionSent},
			errMsg: "timestamp is required",
		},
		{
			name:   "Negative Timestamp",
			req:    model.EventRequest{Type: model.EventConnectionSent, Timestamp: -1},
			errMsg: "timestamp is required",
		},
		{
			name: "Future Timestamp Error",
			req: model.EventRequest{
				Type:      model.EventConnectionSent,
				Timestamp: 1_005_000, // 5s ahead of frozen time
			},
			errMsg:    "timestamp cannot be in the future",
			tolerance: 2 * time.Second,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.service.futureTolerance = tt.tolerance

			_, err := s.service.BuildEvent(tt.req)

			s.Error(err)
			s.IsType(&ValidationError{}, err)
			s.EqualError(err, tt.errMsg)
		})
	}
}

func (s *EventServiceTestSuite) TestBuildEvent_Success() {
	req := model.EventRequest{
		Type:         model.EventConnectionSent,
		Timestamp:    1_000_000,
		ProfileID:    "profile-1",
		TemplateID:   "tpl-a",
		TemplateName: "Intro",
		CampaignID:   "cmp-1",
	}

	event, err := s.service.BuildEvent(req)

	s.NoError(err)
	s.Equal(model.EventConnectionSent, event.Type)
	s.Equal(int64(1_000_000), event.Timestamp)
	s.Equal("profile-1", event.ProfileID)
	s.Equal("tpl-a", event.TemplateID)
	s.NotEmpty(event.ID, "an id should be assigned when the client sends none")
}

func (s *EventServiceTestSuite) TestBuildEvent_KeepsClientID() {
	req := model.EventRequest{
		ID:        "evt-42",
		Type:      model.EventMessageSent,
		Timestamp: 1_000_000,
		MessageID: "msg-1",
	}

	event, err := s.service.BuildEvent(req)

	s.NoError(err)
	s.Equal("evt-42", event.ID)
	s.Equal("msg-1", event.MessageID)
}

func (s *EventServiceTestSuite) TestBuildEvent_FutureToleranceDisabled() {
	s.service.futureTolerance = 0

	req := model.EventRequest{
		Type:      model.EventConnectionSent,
		Timestamp: s.service.now().Add(time.Hour).UnixMilli(),
	}

	_, err := s.service.BuildEvent(req)
	s.NoError(err, "future timestamps should be allowed when tolerance is 0")
}

func (s *EventServiceTestSuite) TestProcessEvent() {
	ctx := context.Background()
	event := model.Event{ID: "evt-1", Type: model.EventConnectionSent, Timestamp: 1}

	s.worker.On("Enqueue", event).Return()

	result := s.service.ProcessEvent(ctx, event)

	s.Equal("evt-1", result.ID)
	s.Equal("accepted", result.Status)
	s.worker.AssertExpectations(s.T())
}

func (s *EventServiceTestSuite) TestValidateTimestamp_Helper() {
	now := time.Unix(1000, 0)

	s.NoError(ValidateTimestamp(now.Add(1*time.Second), now, 5*time.Second))
	s.Error(ValidateTimestamp(now.Add(10*time.Second), now, 5*time.Second))
	s.NoError(ValidateTimestamp(now.Add(100*time.Hour), now, 0))
}
