package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

// EventLog appends every published domain event to the domain_events table.
// It is the durable audit trail; the broker publisher runs next to it.
type EventLog struct {
	db DB
}

func NewEventLog(db DB) *EventLog {
	return &EventLog{db: db}
}

const insertEvent = `
	INSERT INTO domain_events (event_id, event_type, aggregate_type, aggregate_id, event_version, occurred_on, payload)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (event_id) DO NOTHING
`

func (l *EventLog) Publish(ctx context.Context, events ...shared.Event) error {
	if len(events) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range events {
		payload, err := json.Marshal(e.EventData)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", e.EventType, err)
		}
		batch.Queue(insertEvent, e.EventID, string(e.EventType), e.AggregateType, e.AggregateID, e.EventVersion, e.OccurredOn, payload)
	}
	br := l.db.SendBatch(ctx, batch)
	defer func() { _ = br.Close() }()
	for range events {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert domain event: %w", err)
		}
	}
	return nil
}
