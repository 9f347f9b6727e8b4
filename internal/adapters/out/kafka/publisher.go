// Package kafka publishes order lifecycle events to the order-changed topic.
// Messages are keyed by order number so consumers see each order's events in
// order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// Publisher writes JSON event payloads through a kafka-go writer.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher for the given broker host and topic.
func NewPublisher(host, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(host),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &Publisher{writer: writer}
}

// Publish marshals the payload and writes it keyed by the order number.
func (p *Publisher) Publish(ctx context.Context, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write event to kafka: %w", err)
	}
	return nil
}

// Close releases the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
