package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/career-os/internal/application/service"
	"github.com/khoahotran/career-os/internal/config"
	"github.com/khoahotran/career-os/pkg/logger"
)

const TopicCareerEvents = "career.events"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes change events to career.events. The writer is async,
// so Publish returns before delivery and failures surface only in the log.
type KafkaPublisher struct {
	writer messageWriter
	logger logger.Logger
}

// NewKafkaPublisher returns a no-op publisher when no brokers are configured.
func NewKafkaPublisher(cfg config.Config, log logger.Logger) (service.EventPublisher, func() error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		log.Info("Kafka disabled: no brokers configured")
		return service.NopPublisher(), func() error { return nil }
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        TopicCareerEvents,
		Balancer:     &kafka.Hash{},
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Warn("Failed to deliver events", zap.Int("count", len(messages)), zap.Error(err))
			}
		},
	}

	log.Info("Initialize Kafka Producer successfully.", zap.Strings("brokers", brokers), zap.String("topic", TopicCareerEvents))
	p := newKafkaPublisher(writer, log)
	return p, p.Close
}

func newKafkaPublisher(w messageWriter, log logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, logger: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e service.Event) {
	value, err := json.Marshal(e)
	if err != nil {
		p.logger.Warn("Failed to encode event", zap.String("type", e.Type), zap.Error(err))
		return
	}

	msg := kafka.Message{
		Key:   []byte(eventKey(e)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
		Time: e.OccurredAt,
	}
	if err := p.writer.WriteMessages(context.WithoutCancel(ctx), msg); err != nil {
		p.logger.Warn("Failed to publish event", zap.String("type", e.Type), zap.Error(err))
	}
}

func (p *KafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}
	p.logger.Info("Closed Kafka Producer")
	return nil
}

// eventKey keeps every event of one record on the same partition.
func eventKey(e service.Event) string {
	if e.ID == "" {
		return e.Entity
	}
	return e.Entity + ":" + e.ID
}
