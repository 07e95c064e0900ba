package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"outreach-analytics-service/internal/model"
)

// EventRepository defines storage operations for outreach events. The
// store is append-only: events are never mutated after insertion.
type EventRepository interface {
	// Create inserts a single event.
	Create(ctx context.Context, event model.Event) error

	// CreateBatch inserts multiple events via a prepared batch.
	CreateBatch(ctx context.Context, events []model.Event) error

	// FetchRange returns events with from <= ts <= to, ordered by ts.
	FetchRange(ctx context.Context, from, to time.Time) ([]model.Event, error)
}

type eventRepository struct {
	conn clickhouse.Conn
}

// NewEventRepository creates an EventRepository backed by ClickHouse.
func NewEventRepository(conn clickhouse.Conn) EventRepository {
	return &eventRepository{conn: conn}
}

const insertEventQuery = `
	INSERT INTO outreach_events (id, event_type, ts, profile_id, template_id, template_name, campaign_id, message_id, result_type)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

const batchEventQuery = `
	INSERT INTO outreach_events (id, event_type, ts, profile_id, template_id, template_name, campaign_id, message_id, result_type)
`

const fetchRangeQuery = `
	SELECT id, event_type, ts, profile_id, template_id, template_name, campaign_id, message_id, result_type
	FROM outreach_events
	WHERE ts >= $1 AND ts <= $2
	ORDER BY ts
`

func (r *eventRepository) Create(ctx context.Context, event model.Event) error {
	return r.conn.Exec(ctx, insertEventQuery,
		event.ID,
		event.Type,
		time.UnixMilli(event.Timestamp).UTC(),
		event.ProfileID,
		event.TemplateID,
		event.TemplateName,
		event.CampaignID,
		event.MessageID,
		event.ResultType,
	)
}

func (r *eventRepository) CreateBatch(ctx context.Context, events []model.Event) error {
	if len(events) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, batchEventQuery)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, event := range events {
		err := batch.Append(
			event.ID,
			event.Type,
			time.UnixMilli(event.Timestamp).UTC(),
			event.ProfileID,
			event.TemplateID,
			event.TemplateName,
			event.CampaignID,
			event.MessageID,
			event.ResultType,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

func (r *eventRepository) FetchRange(ctx context.Context, from, to time.Time) ([]model.Event, error) {
	rows, err := r.conn.Query(ctx, fetchRangeQuery, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("fetch range: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var (
			ev model.Event
			ts time.Time
		)
		err := rows.Scan(
			&ev.ID,
			&ev.Type,
			&ts,
			&ev.ProfileID,
			&ev.TemplateID,
			&ev.TemplateName,
			&ev.CampaignID,
			&ev.MessageID,
			&ev.ResultType,
		)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Timestamp = ts.UnixMilli()
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
