// Package shared holds the building blocks every bounded context uses:
// the domain event envelope, change tracking, identifiers, the domain error
// base and repository query options.
package shared

import (
	"time"

	"github.com/google/uuid"
)

// EventType is the past-tense name of a domain event, e.g. "StoreCreated".
type EventType string

// Event is an immutable record of a business-significant state change.
type Event struct {
	EventID       string    `json:"event_id"`
	EventType     EventType `json:"event_type"`
	AggregateID   string    `json:"aggregate_id"`
	AggregateType string    `json:"aggregate_type"`
	EventVersion  int       `json:"event_version"`
	OccurredOn    time.Time `json:"occurred_on"`
	EventData     any       `json:"event_data"`
}

// NewEvent builds an event envelope with a fresh id and version 1.
// Contexts call it only from their named event factories.
func NewEvent(eventType EventType, aggregateType, aggregateID string, data any) Event {
	return Event{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventVersion:  1,
		OccurredOn:    Now(),
		EventData:     data,
	}
}

// Change is a single field transition carried by "updated" events.
type Change struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// Changes maps a field name to its transition.
type Changes map[string]Change

// Empty reports whether no tracked field changed.
func (c Changes) Empty() bool { return len(c) == 0 }

// Track records field only when from and to differ.
func Track[T comparable](c Changes, field string, from, to T) {
	if from != to {
		c[field] = Change{From: from, To: to}
	}
}

// TrackOptional records an optional field; absent values are reported as nil.
func TrackOptional[T comparable](c Changes, field string, from, to *T) {
	switch {
	case from == nil && to == nil:
		return
	case from != nil && to != nil && *from == *to:
		return
	}
	c[field] = Change{From: deref(from), To: deref(to)}
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// EventRecorder is the pending-event queue carried by an aggregate. Record
// never touches the receiver's backing array, so copies of an aggregate taken
// before a mutation keep observing their own queue.
type EventRecorder struct {
	pending []Event
}

// Record returns a recorder holding the receiver's events followed by e.
func (r EventRecorder) Record(e Event) EventRecorder {
	next := make([]Event, len(r.pending), len(r.pending)+1)
	copy(next, r.pending)
	return EventRecorder{pending: append(next, e)}
}

// Events returns a defensive copy of the pending events.
func (r EventRecorder) Events() []Event {
	out := make([]Event, len(r.pending))
	copy(out, r.pending)
	return out
}

// Len returns the number of pending events.
func (r EventRecorder) Len() int { return len(r.pending) }
