package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// messageWriter is the subset of *kafka.Writer used by KafkaTransport.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NotificationEvent is the JSON value published for each notification.
type NotificationEvent struct {
	UserID domain.UserID `json:"user_id"`
	Text   string        `json:"text"`
	SentAt time.Time     `json:"sent_at"`
}

// KafkaTransport implements Transport by publishing one event per recipient
// to a Kafka topic, for delivery by a downstream consumer. Messages are keyed
// by user id so a user's notifications stay ordered within a partition.
type KafkaTransport struct {
	writer  messageWriter
	nowFunc func() time.Time
}

// NewKafkaTransport creates a transport writing to topic on brokers.
func NewKafkaTransport(brokers []string, topic string) *KafkaTransport {
	return newKafkaTransport(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
	})
}

func newKafkaTransport(w messageWriter) *KafkaTransport {
	return &KafkaTransport{writer: w, nowFunc: time.Now}
}

// SendMessage publishes the notification event.
func (k *KafkaTransport) SendMessage(ctx context.Context, userID domain.UserID, text string) error {
	now := k.nowFunc().UTC()
	value, err := json.Marshal(NotificationEvent{UserID: userID, Text: text, SentAt: now})
	if err != nil {
		return fmt.Errorf("marshaling notification event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(userID),
		Value: value,
		Time:  now,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("price_alert")},
		},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: publishing to kafka: %w", ErrDelivery, err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (k *KafkaTransport) Close() error {
	return k.writer.Close()
}
