// Package messaging moves domain events over RabbitMQ. Events that cannot be
// delivered are spooled to a local bbolt file and redelivered later.
package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

// Message is a domain event as read back off the wire. EventData stays raw
// until a handler knows which payload type to expect.
type Message struct {
	EventID       string           `json:"event_id"`
	EventType     shared.EventType `json:"event_type"`
	AggregateID   string           `json:"aggregate_id"`
	AggregateType string           `json:"aggregate_type"`
	EventVersion  int              `json:"event_version"`
	OccurredOn    time.Time        `json:"occurred_on"`
	EventData     json.RawMessage  `json:"event_data"`
}

func Encode(e shared.Event) ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.EventType, err)
	}
	return b, nil
}

func Decode(body []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(body, &m); err != nil {
		return Message{}, fmt.Errorf("decode event: %w", err)
	}
	if m.EventID == "" || m.EventType == "" {
		return Message{}, fmt.Errorf("decode event: missing id or type")
	}
	return m, nil
}

// Data unmarshals the event payload into v.
func (m Message) Data(v any) error {
	return json.Unmarshal(m.EventData, v)
}
