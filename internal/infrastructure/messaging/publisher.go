package messaging

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-studio/internal/application"
	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

const defaultDrainBatch = 100

// Sender is the broker side of the publisher; *helpers.RabbitPublisher
// satisfies it.
type Sender interface {
	Publish(ctx context.Context, msgID, msgType string, body []byte) error
}

// Publisher sends domain events to RabbitMQ. When the broker rejects a
// send, that event and every later one in the batch go to the spool. While
// the spool holds anything, new events are appended behind it instead of
// being sent, so Drain delivers them in publish order.
type Publisher struct {
	out    Sender
	spool  *Spool
	logger logrus.FieldLogger
}

func NewPublisher(out Sender, spool *Spool, logger logrus.FieldLogger) *Publisher {
	return &Publisher{out: out, spool: spool, logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, events ...shared.Event) error {
	bodies := make([][]byte, len(events))
	for i, e := range events {
		b, err := Encode(e)
		if err != nil {
			return err
		}
		bodies[i] = b
	}
	if p.spool != nil {
		pending, err := p.spool.Pending()
		if err != nil {
			return fmt.Errorf("check spool: %w", err)
		}
		if pending {
			if err := p.spool.Put(bodies...); err != nil {
				return fmt.Errorf("spool %d events: %w", len(bodies), err)
			}
			p.logger.WithField("spooled", len(bodies)).Debug("spool not drained, events queued behind it")
			return nil
		}
	}
	for i, e := range events {
		err := p.out.Publish(ctx, e.EventID, string(e.EventType), bodies[i])
		if err == nil {
			continue
		}
		if p.spool == nil {
			return fmt.Errorf("publish %s: %w", e.EventType, err)
		}
		if serr := p.spool.Put(bodies[i:]...); serr != nil {
			return fmt.Errorf("spool %d events after publish error %v: %w", len(bodies)-i, err, serr)
		}
		p.logger.WithError(err).WithField("spooled", len(bodies)-i).Warn("broker unavailable, events spooled")
		return nil
	}
	return nil
}

// Drain redelivers spooled events oldest first and stops at the first send
// error. It returns how many were delivered.
func (p *Publisher) Drain(ctx context.Context) (int, error) {
	if p.spool == nil {
		return 0, nil
	}
	batch, err := p.spool.Batch(defaultDrainBatch)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, item := range batch {
		if err := p.out.Publish(ctx, item.msg.EventID, string(item.msg.EventType), item.body); err != nil {
			return sent, err
		}
		if err := p.spool.remove(item.key); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

var _ application.EventPublisher = (*Publisher)(nil)
