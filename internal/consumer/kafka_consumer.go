package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"storefront-service/internal/producer"
	"storefront-service/internal/service"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type OrderCreatedHandler interface {
	NotifyOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error
}

// OrderEventConsumer reads the orders topic and hands new orders to the notifier.
type OrderEventConsumer struct {
	reader  *kafka.Reader
	handler OrderCreatedHandler
	log     *zap.Logger
}

func NewOrderEventConsumer(brokers []string, groupID, topic string, h OrderCreatedHandler, log *zap.Logger) *OrderEventConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		MinBytes:          1,
		MaxBytes:          10e6,
		CommitInterval:    time.Second,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
	return &OrderEventConsumer{reader: r, handler: h, log: log}
}

func (c *OrderEventConsumer) Run(ctx context.Context) error {
	c.log.Info("kafka consumer started", zap.String("topic", c.reader.Config().Topic))
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			c.log.Error("read message", zap.Error(err))
			continue
		}
		if err := c.handle(ctx, m.Value); err != nil {
			c.log.Error("handle order event", zap.ByteString("key", m.Key), zap.Error(err))
		}
	}
}

// handle ignores event types other than order.created.
func (c *OrderEventConsumer) handle(ctx context.Context, value []byte) error {
	var env producer.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		return fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Type != producer.EventOrderCreated {
		return nil
	}
	var e service.OrderCreatedEvent
	if err := json.Unmarshal(env.Payload, &e); err != nil {
		return fmt.Errorf("unmarshal %s: %w", env.Type, err)
	}
	if e.OrderID == "" {
		return errors.New("order.created without order_id")
	}
	return c.handler.NotifyOrderCreated(ctx, e)
}

func (c *OrderEventConsumer) Close() error { return c.reader.Close() }
