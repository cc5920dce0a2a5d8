package mq

import (
	"context"
	"errors"
	"time"

	"lokma/internal/event"
	"lokma/internal/logger"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OrderUpdateHandler processes one decoded order change.
type OrderUpdateHandler interface {
	HandleOrderUpdate(ctx context.Context, change *event.OrderChange) error
}

// MessageReader is the subset of *kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func NewKafkaReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0,
	})
}

// OrderEventConsumer feeds order-update messages to the handler. Offsets are committed
// after handling, so a crash redelivers the message.
type OrderEventConsumer struct {
	reader  MessageReader
	handler OrderUpdateHandler
	log     zerolog.Logger
}

func NewOrderEventConsumer(reader MessageReader, handler OrderUpdateHandler) *OrderEventConsumer {
	return &OrderEventConsumer{reader: reader, handler: handler, log: logger.Component("kafka-consumer")}
}

// Run blocks until ctx is cancelled.
func (c *OrderEventConsumer) Run(ctx context.Context) error {
	defer c.reader.Close()
	c.log.Info().Msg("order event consumer started")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.log.Info().Msg("order event consumer stopped")
				return nil
			}
			c.log.Error().Err(err).Msg("fetch message")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		c.process(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil && !errors.Is(err, context.Canceled) {
			c.log.Error().Err(err).Int64("offset", msg.Offset).Msg("commit message")
		}
	}
}

// process never fails the loop: undecodable or rejected messages are logged and committed.
func (c *OrderEventConsumer) process(parent context.Context, msg kafka.Message) {
	carrier := KafkaHeaderCarrier(msg.Headers)
	ctx := otel.GetTextMapPropagator().Extract(parent, &carrier)
	ctx, span := otel.Tracer("lokma/mq").Start(ctx, "OrderEventConsumer.process",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", msg.Topic),
			attribute.Int("messaging.kafka.partition", msg.Partition),
			attribute.Int64("messaging.kafka.message.offset", msg.Offset),
		),
	)
	defer span.End()

	change, err := event.DecodeChange(msg.Value)
	if err != nil {
		c.log.Error().Err(err).Int64("offset", msg.Offset).Msg("skipping undecodable message")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	if err := c.handler.HandleOrderUpdate(ctx, change); err != nil {
		c.log.Error().Err(err).Str("order_id", change.OrderID).Msg("handle order update")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
