package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/b3erp/backend/internal/infrastructure/config"
	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaWriter is the subset of *kafka.Writer the forwarder needs
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Envelope is the message value written for each event
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// KafkaForwarder publishes every domain event to a Kafka topic keyed by aggregate id
type KafkaForwarder struct {
	writer      KafkaWriter
	logger      *zap.Logger
	maxAttempts uint64
}

// NewKafkaForwarder creates a forwarder writing to cfg.Topic on cfg.Brokers
func NewKafkaForwarder(cfg config.KafkaConfig, logger *zap.Logger) *KafkaForwarder {
	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = 50 * time.Millisecond
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           batchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return NewKafkaForwarderWithWriter(w, cfg.MaxAttempts, logger)
}

// NewKafkaForwarderWithWriter creates a forwarder over an existing writer
func NewKafkaForwarderWithWriter(w KafkaWriter, maxAttempts int, logger *zap.Logger) *KafkaForwarder {
	if maxAttempts < 1 {
		maxAttempts = 3
	}
	return &KafkaForwarder{
		writer:      w,
		logger:      logger.Named("kafka_forwarder"),
		maxAttempts: uint64(maxAttempts),
	}
}

// EventTypes subscribes to all events
func (f *KafkaForwarder) EventTypes() []string {
	return nil
}

// Handle writes the event, retrying transient failures with exponential backoff
func (f *KafkaForwarder) Handle(ctx context.Context, event shared.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	value, err := json.Marshal(Envelope{
		EventID:       event.EventID().String(),
		EventType:     event.EventType(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID().String(),
		OccurredAt:    event.OccurredAt(),
		Payload:       payload,
	})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(event.AggregateID().String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType())},
		},
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), f.maxAttempts-1), ctx)
	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		werr := f.writer.WriteMessages(ctx, msg)
		if werr != nil {
			f.logger.Warn("kafka write failed",
				zap.Int("attempt", attempt),
				zap.String("event_type", event.EventType()),
				zap.Error(werr),
			)
		}
		return werr
	}, bo)
	if err != nil {
		return fmt.Errorf("forward %s to kafka: %w", event.EventType(), err)
	}
	return nil
}

// Close flushes and closes the writer
func (f *KafkaForwarder) Close() error {
	return f.writer.Close()
}

var _ shared.EventHandler = (*KafkaForwarder)(nil)
