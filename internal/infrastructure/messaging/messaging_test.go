package messaging

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

type flakySender struct {
	down bool
	sent []string
}

func (f *flakySender) Publish(_ context.Context, msgID, _ string, _ []byte) error {
	if f.down {
		return errors.New("connection refused")
	}
	f.sent = append(f.sent, msgID)
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func openSpool(t *testing.T) *Spool {
	t.Helper()
	s, err := OpenSpool(filepath.Join(t.TempDir(), "spool", "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func events(n int) []shared.Event {
	out := make([]shared.Event, n)
	for i := range out {
		out[i] = shared.NewEvent("StoreUpdated", "Store", "store_1", map[string]any{"n": i})
	}
	return out
}

func TestPublisherSpoolsWhenBrokerIsDownAndDrainsInOrder(t *testing.T) {
	sender := &flakySender{down: true}
	spool := openSpool(t)
	pub := NewPublisher(sender, spool, quietLogger())
	ctx := context.Background()
	evs := events(3)

	require.NoError(t, pub.Publish(ctx, evs...))
	n, err := spool.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	sent, err := pub.Drain(ctx)
	assert.Error(t, err)
	assert.Zero(t, sent)

	sender.down = false
	sent, err = pub.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, sent)
	assert.Equal(t, []string{evs[0].EventID, evs[1].EventID, evs[2].EventID}, sender.sent)

	n, err = spool.Size()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPublisherQueuesBehindUndrainedSpool(t *testing.T) {
	sender := &flakySender{down: true}
	spool := openSpool(t)
	pub := NewPublisher(sender, spool, quietLogger())
	ctx := context.Background()
	older, newer := events(2), events(1)

	require.NoError(t, pub.Publish(ctx, older...))
	sender.down = false
	require.NoError(t, pub.Publish(ctx, newer...))
	assert.Empty(t, sender.sent)

	sent, err := pub.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, sent)
	assert.Equal(t, []string{older[0].EventID, older[1].EventID, newer[0].EventID}, sender.sent)

	require.NoError(t, pub.Publish(ctx, events(1)...))
	assert.Len(t, sender.sent, 4)
}

func TestSpoolKeysFollowInsertionOrder(t *testing.T) {
	spool := openSpool(t)
	var bodies [][]byte
	for _, e := range events(300) {
		b, err := Encode(e)
		require.NoError(t, err)
		bodies = append(bodies, b)
	}
	require.NoError(t, spool.Put(bodies[:150]...))
	require.NoError(t, spool.Put(bodies[150:]...))

	batch, err := spool.Batch(300)
	require.NoError(t, err)
	require.Len(t, batch, 300)
	for i, item := range batch {
		assert.Equal(t, bodies[i], item.body)
	}
}

func TestPublisherWithoutSpoolReturnsError(t *testing.T) {
	pub := NewPublisher(&flakySender{down: true}, nil, quietLogger())
	assert.Error(t, pub.Publish(context.Background(), events(1)...))
}

func TestDecode(t *testing.T) {
	e := shared.NewEvent("ModelCreated", "Model", "model_1", map[string]string{"name": "Mara"})
	body, err := Encode(e)
	require.NoError(t, err)

	m, err := Decode(body)
	require.NoError(t, err)
	assert.Equal(t, e.EventID, m.EventID)
	assert.Equal(t, shared.EventType("ModelCreated"), m.EventType)
	var data map[string]string
	require.NoError(t, m.Data(&data))
	assert.Equal(t, "Mara", data["name"])

	_, err = Decode([]byte(`{"event_data":{}}`))
	assert.Error(t, err)
	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

type ackRecorder struct {
	acks, nacks int
	requeued    bool
}

func (a *ackRecorder) Ack(uint64, bool) error { a.acks++; return nil }
func (a *ackRecorder) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacks++
	a.requeued = requeue
	return nil
}
func (a *ackRecorder) Reject(uint64, bool) error { return nil }

func TestConsumeAcknowledgement(t *testing.T) {
	body, err := Encode(events(1)[0])
	require.NoError(t, err)
	failing := func(context.Context, Message) error { return errors.New("es down") }

	tests := []struct {
		name        string
		body        []byte
		redelivered bool
		handle      Handler
		acks, nacks int
		requeued    bool
	}{
		{name: "handled", body: body, handle: func(context.Context, Message) error { return nil }, acks: 1},
		{name: "undecodable", body: []byte("{}"), handle: failing, nacks: 1},
		{name: "first failure requeues", body: body, handle: failing, nacks: 1, requeued: true},
		{name: "second failure drops", body: body, redelivered: true, handle: failing, nacks: 1},
		{name: "skip drops", body: body, handle: func(context.Context, Message) error { return ErrSkip }, nacks: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &ackRecorder{}
			ch := make(chan amqp.Delivery, 1)
			ch <- amqp.Delivery{Acknowledger: rec, Body: tt.body, Redelivered: tt.redelivered}
			close(ch)

			Consume(context.Background(), ch, tt.handle, quietLogger())
			assert.Equal(t, tt.acks, rec.acks)
			assert.Equal(t, tt.nacks, rec.nacks)
			assert.Equal(t, tt.requeued, rec.requeued)
		})
	}
}
