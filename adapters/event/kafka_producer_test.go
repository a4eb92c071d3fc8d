package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/khoahotran/career-os/internal/application/service"
	"github.com/khoahotran/career-os/internal/config"
	"github.com/khoahotran/career-os/pkg/logger"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishEncodesEvent(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, logger.NewNop())
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	p.Publish(context.Background(), service.Event{
		Type:       service.EventRecordCreated,
		Entity:     "Skill",
		ID:         "42",
		Payload:    map[string]string{"name": "Go"},
		OccurredAt: at,
	})

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, "Skill:42", string(msg.Key))
	assert.Equal(t, at, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, service.EventRecordCreated, string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "record.created", decoded["type"])
	assert.Equal(t, "Skill", decoded["entity"])
	assert.Equal(t, map[string]any{"name": "Go"}, decoded["payload"])
}

func TestPublishFailureIsLoggedNotReturned(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w := &fakeWriter{err: errors.New("kafka: broker unreachable")}
	p := newKafkaPublisher(w, logger.NewFromZap(zap.New(core)))

	p.Publish(context.Background(), service.Event{Type: service.EventDocumentGenerated, Entity: "resume"})

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Failed to publish event", logs.All()[0].Message)
	assert.Equal(t, "resume", string(w.messages[0].Key))
}

func TestCloseClosesWriter(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, newKafkaPublisher(w, logger.NewNop()).Close())
	assert.True(t, w.closed)
}

func TestNoBrokersGivesNopPublisher(t *testing.T) {
	p, closeFn := NewKafkaPublisher(config.Config{}, logger.NewNop())

	assert.Equal(t, service.NopPublisher(), p)
	assert.NoError(t, closeFn())
}
