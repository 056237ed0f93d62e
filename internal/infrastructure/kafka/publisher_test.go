package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loanscore/pkg/events"
	pkgkafka "github.com/bibbank/loanscore/pkg/kafka"
)

type mockProducer struct {
	err      error
	topic    string
	messages []pkgkafka.Message
	calls    int
}

func (m *mockProducer) Publish(_ context.Context, topic string, messages ...pkgkafka.Message) error {
	m.calls++
	m.topic = topic
	m.messages = append(m.messages, messages...)
	return m.err
}

func testLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestPublisher_Publish(t *testing.T) {
	prod := &mockProducer{}
	pub := NewPublisher(prod, "loanscore.assessments", testLogger())

	aggID := uuid.New()
	evt, err := events.NewJSONEvent("loanscore.assessment.completed", aggID, "loan_assessment", map[string]string{"variant": "basic-binary"})
	require.NoError(t, err)

	require.NoError(t, pub.Publish(context.Background(), evt))

	assert.Equal(t, 1, prod.calls)
	assert.Equal(t, "loanscore.assessments", prod.topic)
	require.Len(t, prod.messages, 1)

	msg := prod.messages[0]
	assert.Equal(t, aggID.String(), string(msg.Key))
	assert.Equal(t, "loanscore.assessment.completed", msg.Headers["event_type"])
	assert.Equal(t, evt.EventID().String(), msg.Headers["event_id"])

	var env events.Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, aggID, env.AggregateID)
	assert.JSONEq(t, `{"variant":"basic-binary"}`, string(env.Payload))
}

func TestPublisher_NoEvents(t *testing.T) {
	prod := &mockProducer{}
	require.NoError(t, NewPublisher(prod, "t", testLogger()).Publish(context.Background()))
	assert.Zero(t, prod.calls)
}

func TestPublisher_ProducerError(t *testing.T) {
	boom := errors.New("broker unavailable")
	prod := &mockProducer{err: boom}

	evt := events.NewBaseEvent("x", uuid.New(), "loan_assessment", nil)
	err := NewPublisher(prod, "t", testLogger()).Publish(context.Background(), evt)
	require.ErrorIs(t, err, boom)
}
