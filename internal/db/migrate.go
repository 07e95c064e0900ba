package db

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// RunMigrations ensures required tables exist. This keeps the service
// self-contained without an external migration step.
func RunMigrations(ctx context.Context, conn clickhouse.Conn) error {
	err := conn.Exec(ctx, `
CREATE TABLE IF NOT EXISTS outreach_events
(
	id              String,
	event_type      String,
	ts              DateTime64(3, 'UTC'),
	profile_id      String DEFAULT '',
	template_id     String DEFAULT '',
	template_name   String DEFAULT '',
	campaign_id     String DEFAULT '',
	message_id      String DEFAULT '',
	result_type     String DEFAULT '',
	ingested_at     DateTime DEFAULT now()
)
ENGINE = ReplacingMergeTree
PARTITION BY toYYYYMMDD(ts)
ORDER BY (ts, event_type, id)
SETTINGS
    index_granularity = 8192;
`)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
