package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"referral-server/internal/observability"

	"github.com/segmentio/kafka-go"
)

// MessageReader is the subset of *kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer handles consuming events from Kafka
type Consumer struct {
	reader MessageReader
	logger *observability.Logger
}

// ConsumerConfig contains configuration for Kafka consumer
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// NewConsumer creates a consumer that starts at the newest offset when its
// group has no committed position.
func NewConsumer(config ConsumerConfig, logger *observability.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     config.Brokers,
		Topic:       config.Topic,
		GroupID:     config.GroupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})

	return NewConsumerWithReader(reader, logger)
}

// NewConsumerWithReader creates a consumer around an existing reader
func NewConsumerWithReader(reader MessageReader, logger *observability.Logger) *Consumer {
	return &Consumer{
		reader: reader,
		logger: logger,
	}
}

// ConsumeEvents consumes events until ctx is done. Messages are committed after
// handler succeeds; undecodable messages are committed and skipped. A message
// whose handler fails is logged and left uncommitted, but the reader does not
// redeliver it and the next commit moves past it, so handlers retry on their own.
func (c *Consumer) ConsumeEvents(ctx context.Context, handler func(context.Context, EventMessage) error) error {
	c.logger.Info(ctx, "Starting Kafka consumer")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info(ctx, "Stopping Kafka consumer")
			return ctx.Err()
		default:
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() == nil {
					c.logger.Error(ctx, "failed to fetch message from kafka", err)
				}
				continue
			}

			var event EventMessage
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error(ctx, "failed to unmarshal event", err)
				c.reader.CommitMessages(ctx, msg)
				continue
			}

			msgCtx := observability.WithFields(ctx,
				observability.Field{Key: "event_type", Value: event.Type},
				observability.Field{Key: "event_id", Value: event.ID},
				observability.Field{Key: "partition", Value: msg.Partition},
				observability.Field{Key: "offset", Value: msg.Offset},
			)

			if err := handler(msgCtx, event); err != nil {
				c.logger.Error(msgCtx, "failed to process event", err)
				continue
			}

			if err := c.reader.CommitMessages(msgCtx, msg); err != nil {
				c.logger.Error(msgCtx, "failed to commit message", err)
			}

			c.logger.Debug(msgCtx, fmt.Sprintf("processed event %s", event.Type))
		}
	}
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	return c.reader.Close()
}
