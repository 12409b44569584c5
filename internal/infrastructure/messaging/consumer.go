package messaging

import (
	"context"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// ErrSkip tells Consume to drop a message without retrying it.
var ErrSkip = errors.New("skip message")

// Handler processes one decoded event.
type Handler func(ctx context.Context, m Message) error

// Consume runs handle for every delivery until ctx is done or the channel
// closes. A failed message is requeued once; a second failure or ErrSkip
// drops it.
func Consume(ctx context.Context, deliveries <-chan amqp.Delivery, handle Handler, logger logrus.FieldLogger) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			process(ctx, d, handle, logger)
		}
	}
}

func process(ctx context.Context, d amqp.Delivery, handle Handler, logger logrus.FieldLogger) {
	m, err := Decode(d.Body)
	if err != nil {
		logger.WithError(err).WithField("message_id", d.MessageId).Error("bad event message")
		_ = d.Nack(false, false)
		return
	}
	log := logger.WithFields(logrus.Fields{
		"event_id":     m.EventID,
		"event_type":   m.EventType,
		"aggregate_id": m.AggregateID,
	})

	err = handle(ctx, m)
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, ErrSkip):
		log.WithError(err).Debug("event skipped")
		_ = d.Nack(false, false)
	case d.Redelivered:
		log.WithError(err).Error("event handling failed twice, dropping")
		_ = d.Nack(false, false)
	default:
		log.WithError(err).Warn("event handling failed, requeueing")
		_ = d.Nack(false, true)
	}
}
