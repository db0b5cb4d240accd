package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-service/internal/service"

	"github.com/segmentio/kafka-go"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// Envelope is the value of every message on the orders topic.
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderEventProducer publishes order events to kafka, keyed by order id.
type OrderEventProducer struct {
	writer messageWriter
	now    func() time.Time
}

func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	return &OrderEventProducer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
		now: time.Now,
	}
}

func newWithWriter(w messageWriter) *OrderEventProducer {
	return &OrderEventProducer{writer: w, now: time.Now}
}

func (p *OrderEventProducer) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	return p.publish(ctx, EventOrderCreated, e.OrderID, e)
}

func (p *OrderEventProducer) PublishOrderStatusChanged(ctx context.Context, e service.OrderStatusChangedEvent) error {
	return p.publish(ctx, EventOrderStatusChanged, e.OrderID, e)
}

func (p *OrderEventProducer) publish(ctx context.Context, typ, key string, payload any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", typ, err)
	}
	value, err := json.Marshal(Envelope{Type: typ, OccurredAt: p.now().UTC(), Payload: raw})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(typ)},
		},
	})
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}
