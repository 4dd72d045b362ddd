package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaTransport_SendMessage(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	w := &fakeWriter{}
	k := newKafkaTransport(w)
	k.nowFunc = func() time.Time { return now }

	require.NoError(t, k.SendMessage(context.Background(), "175928847299117063", "Price alert for service 42"))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "175928847299117063", string(msg.Key))
	assert.Equal(t, now, msg.Time)

	var ev NotificationEvent
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	assert.Equal(t, "Price alert for service 42", ev.Text)
	assert.Equal(t, now, ev.SentAt)

	require.NoError(t, k.Close())
	assert.True(t, w.closed)
}

func TestKafkaTransport_WriteError(t *testing.T) {
	t.Parallel()

	k := newKafkaTransport(&fakeWriter{err: errors.New("broker unavailable")})
	err := k.SendMessage(context.Background(), "1", "x")
	require.ErrorIs(t, err, ErrDelivery)
	assert.Contains(t, err.Error(), "broker unavailable")
}

func TestNewKafkaTransport(t *testing.T) {
	t.Parallel()

	k := NewKafkaTransport([]string{"localhost:9092"}, "price-alerts")
	w, ok := k.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "price-alerts", w.Topic)
}
