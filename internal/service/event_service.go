package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"outreach-analytics-service/internal/model"
)

// ValidationError represents user input issues.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// EventService validates incoming payloads and hands events to the
// ingestion worker.
type EventService interface {
	BuildEvent(req model.EventRequest) (model.Event, error)
	ProcessEvent(ctx context.Context, event model.Event) model.EventResult
}

// eventService wires ingestion business logic.
type eventService struct {
	worker          BatchEventWorker
	now             func() time.Time
	futureTolerance time.Duration
}

// NewEventService constructs an eventService.
func NewEventService(worker BatchEventWorker, futureTolerance time.Duration) EventService {
	return &eventService{
		worker:          worker,
		now:             time.Now,
		futureTolerance: futureTolerance,
	}
}

// BuildEvent validates and constructs an Event from an incoming
// request, assigning an id when the client sent none.
func (s *eventService) BuildEvent(req model.EventRequest) (model.Event, error) {
	if req.Type == "" {
		return model.Event{}, &ValidationError{Message: "type is required"}
	}

	if req.Timestamp <= 0 {
		return model.Event{}, &ValidationError{Message: "timestamp is required"}
	}

	if s.futureTolerance > 0 {
		ts := time.UnixMilli(req.Timestamp).UTC()
		if err := ValidateTimestamp(ts, s.now(), s.futureTolerance); err != nil {
			return model.Event{}, &ValidationError{Message: err.Error()}
		}
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	event := model.Event{
		ID:           id,
		Type:         req.Type,
		Timestamp:    req.Timestamp,
		ProfileID:    req.ProfileID,
		TemplateID:   req.TemplateID,
		TemplateName: req.TemplateName,
		CampaignID:   req.CampaignID,
		MessageID:    req.MessageID,
		ResultType:   req.ResultType,
	}

	return event, nil
}

// ProcessEvent enqueues a validated event for batched persistence.
func (s *eventService) ProcessEvent(ctx context.Context, event model.Event) model.EventResult {
	s.worker.Enqueue(event)
	return model.EventResult{ID: event.ID, Status: "accepted"}
}

// ValidateTimestamp ensures timestamps are not too far in the future.
func ValidateTimestamp(ts time.Time, now time.Time, tolerance time.Duration) error {
	if tolerance <= 0 {
		return nil
	}
	if ts.After(now.Add(tolerance)) {
		return errors.New("timestamp cannot be in the future")
	}
	return nil
}
