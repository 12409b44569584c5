package helpers

import (
	"context"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitPublisher wraps an AMQP channel and queue for publishing messages.
// A closed channel is redialed on the next Publish.
type RabbitPublisher struct {
	url   string
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	Queue string
}

// dialQueue opens a connection and channel and declares queue as durable.
func dialQueue(url, queue string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

func closeAll(ch *amqp.Channel, conn *amqp.Connection) {
	if ch != nil {
		_ = ch.Close()
	}
	if conn != nil {
		_ = conn.Close()
	}
}

func NewRabbitPublisher(url, queue string) (*RabbitPublisher, error) {
	conn, ch, err := dialQueue(url, queue)
	if err != nil {
		return nil, err
	}
	return &RabbitPublisher{url: url, conn: conn, ch: ch, Queue: queue}, nil
}

func (p *RabbitPublisher) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	closeAll(p.ch, p.conn)
	p.ch, p.conn = nil, nil
}

// channel returns a live channel, redialing when the broker dropped the old one.
func (p *RabbitPublisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	closeAll(p.ch, p.conn)
	conn, ch, err := dialQueue(p.url, p.Queue)
	if err != nil {
		p.ch, p.conn = nil, nil
		return nil, err
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

// Publish sends a persistent JSON message to the queue. msgType lands in the
// AMQP type property so consumers can route without decoding the body.
func (p *RabbitPublisher) Publish(ctx context.Context, msgID, msgType string, body []byte) error {
	ch, err := p.channel()
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msgID,
			Type:         msgType,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

// RabbitConsumer reads manually acknowledged deliveries from one queue.
type RabbitConsumer struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	Queue string
}

func NewRabbitConsumer(url, queue string, prefetch int) (*RabbitConsumer, error) {
	conn, ch, err := dialQueue(url, queue)
	if err != nil {
		return nil, err
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		closeAll(ch, conn)
		return nil, err
	}
	return &RabbitConsumer{conn: conn, ch: ch, Queue: queue}, nil
}

func (c *RabbitConsumer) Deliveries(consumer string) (<-chan amqp.Delivery, error) {
	return c.ch.Consume(c.Queue, consumer, false, false, false, false, nil)
}

func (c *RabbitConsumer) Close() {
	if c == nil {
		return
	}
	closeAll(c.ch, c.conn)
}
